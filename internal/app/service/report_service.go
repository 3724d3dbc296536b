package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ikkim/storerate-backend/internal/app/repository"
	"github.com/ikkim/storerate-backend/internal/storage"
	"github.com/ikkim/storerate-backend/pkg/logger"
	"github.com/ikkim/storerate-backend/pkg/util"
	"github.com/xuri/excelize/v2"
)

const (
	XLSXContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	storesSheet       = "Stores"
	summarySheet      = "Summary"
	storeReportFolder = "reports/stores"
)

var storeReportHeaders = []interface{}{"ID", "Name", "Email", "Address", "Average Rating", "Total Ratings", "Created At"}

// ReportStorage archives generated reports
type ReportStorage interface {
	Upload(ctx context.Context, folder, filename, contentType string, body io.Reader) (*storage.StoredObject, error)
}

type ReportService interface {
	// StoresWorkbook renders every store with its rating aggregate as xlsx
	StoresWorkbook(ctx context.Context) ([]byte, string, error)
	// ArchiveStoresReport uploads the workbook to report storage
	ArchiveStoresReport(ctx context.Context) (*storage.StoredObject, error)
}

type reportService struct {
	storeRepo    repository.StoreRepository
	adminService AdminService
	storage      ReportStorage
	now          func() time.Time
}

// NewReportService builds the report service. reports may be nil, in which
// case archiving is unavailable.
func NewReportService(storeRepo repository.StoreRepository, adminService AdminService, reports ReportStorage) ReportService {
	return &reportService{
		storeRepo:    storeRepo,
		adminService: adminService,
		storage:      reports,
		now:          time.Now,
	}
}

func (s *reportService) StoresWorkbook(ctx context.Context) ([]byte, string, error) {
	stores, err := s.storeRepo.ListWithRatings(ctx, repository.StoreFilter{SortBy: "name", SortOrder: repository.SortAsc})
	if err != nil {
		return nil, "", err
	}
	stats, err := s.adminService.DashboardStats(ctx)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", storesSheet); err != nil {
		return nil, "", fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(storesSheet, "A1", &storeReportHeaders); err != nil {
		return nil, "", fmt.Errorf("failed to write header: %w", err)
	}
	for i, store := range stores {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, "", err
		}
		row := []interface{}{
			store.ID,
			store.Name,
			store.Email,
			store.Address,
			util.FormatRating(store.AverageRating, listingRatingDecimals),
			store.TotalRatings,
			store.CreatedAt.Format(time.RFC3339),
		}
		if err := f.SetSheetRow(storesSheet, cell, &row); err != nil {
			return nil, "", fmt.Errorf("failed to write store row: %w", err)
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, "", fmt.Errorf("failed to create summary sheet: %w", err)
	}
	summary := [][]interface{}{
		{"Generated At", s.now().Format(time.RFC3339)},
		{"Total Users", stats.TotalUsers},
		{"Total Stores", stats.TotalStores},
		{"Total Ratings", stats.TotalRatings},
	}
	for i, row := range summary {
		r := row
		if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", i+1), &r); err != nil {
			return nil, "", fmt.Errorf("failed to write summary: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to render workbook: %w", err)
	}

	filename := fmt.Sprintf("stores-report-%s.xlsx", s.now().Format("20060102-150405"))
	logger.Info("Stores report generated", map[string]interface{}{
		"stores": len(stores),
		"bytes":  buf.Len(),
	})
	return buf.Bytes(), filename, nil
}

func (s *reportService) ArchiveStoresReport(ctx context.Context) (*storage.StoredObject, error) {
	if s.storage == nil {
		return nil, ErrReportStorageDisabled
	}

	data, filename, err := s.StoresWorkbook(ctx)
	if err != nil {
		return nil, err
	}

	obj, err := s.storage.Upload(ctx, storeReportFolder, filename, XLSXContentType, bytes.NewReader(data))
	if err != nil {
		logger.Error("Failed to archive stores report", err)
		return nil, err
	}

	logger.Info("Stores report archived", map[string]interface{}{
		"key": obj.Key,
	})
	return obj, nil
}
