package main

import (
	"fmt"
	"strings"

	"github.com/ikkim/storerate-backend/internal/app/service"
	"github.com/ikkim/storerate-backend/internal/validation"
	"github.com/xuri/excelize/v2"
)

// Sheet columns: store name, store email, store address, owner name, owner password.
// The last two may be empty.
const minColumns = 3

type storeRow struct {
	Line      int    `json:"-"`
	Name      string `json:"name" binding:"required,max=255"`
	Email     string `json:"email" binding:"required,email"`
	Address   string `json:"address" binding:"required,max=400"`
	OwnerName string `json:"owner_name" binding:"omitempty,min=20,max=60"`
	Password  string `json:"password" binding:"omitempty,min=8,max=16,strongpassword"`
}

func (r storeRow) input() service.StoreInput {
	return service.StoreInput{
		Name:      r.Name,
		Email:     r.Email,
		Address:   r.Address,
		Password:  r.Password,
		OwnerName: r.OwnerName,
	}
}

type rowProblem struct {
	Line   int
	Reason string
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

// readStoresFromXLSX parses the first sheet. The first row is a header.
// Invalid and duplicate rows are reported instead of imported.
func readStoresFromXLSX(filePath string) ([]storeRow, []rowProblem, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("no data found in XLSX file")
	}

	var stores []storeRow
	var problems []rowProblem
	seenEmails := make(map[string]int)

	for i, row := range rows {
		if i == 0 {
			continue
		}
		line := i + 1
		if len(row) < minColumns {
			problems = append(problems, rowProblem{Line: line, Reason: "missing columns"})
			continue
		}

		r := storeRow{
			Line:      line,
			Name:      cell(row, 0),
			Email:     strings.ToLower(cell(row, 1)),
			Address:   cell(row, 2),
			OwnerName: cell(row, 3),
			Password:  cell(row, 4),
		}
		if err := validation.ValidateStruct(&r); err != nil {
			problems = append(problems, rowProblem{Line: line, Reason: strings.Join(validation.Messages(err, nil), ", ")})
			continue
		}
		if first, ok := seenEmails[r.Email]; ok {
			problems = append(problems, rowProblem{Line: line, Reason: fmt.Sprintf("duplicate email (first on line %d)", first)})
			continue
		}
		seenEmails[r.Email] = line
		stores = append(stores, r)
	}

	return stores, problems, nil
}
