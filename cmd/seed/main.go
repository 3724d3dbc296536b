package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/ikkim/storerate-backend/config"
	"github.com/ikkim/storerate-backend/internal/app/repository"
	"github.com/ikkim/storerate-backend/internal/app/service"
	"github.com/ikkim/storerate-backend/internal/db"
	"github.com/ikkim/storerate-backend/pkg/util"
)

func main() {
	assumeYes := flag.Bool("y", false, "import without asking for confirmation")
	flag.Usage = func() {
		fmt.Println("Usage: go run cmd/seed/main.go [-y] [xlsx_file_path]")
		fmt.Println("Seeds the default admin and, when a file is given, imports stores with their owner accounts.")
	}
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(db.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	hasher := util.NewPasswordHasher(cfg.Security.BcryptCost)
	created, err := db.SeedAdmin(db.GetDB(), cfg.Admin, hasher)
	if err != nil {
		log.Fatal("Failed to seed admin:", err)
	}
	if created {
		fmt.Printf("Admin account created: %s\n", cfg.Admin.Email)
	}

	if flag.NArg() == 0 {
		return
	}
	filePath := flag.Arg(0)

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	stores, problems, err := readStoresFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}
	for _, p := range problems {
		fmt.Printf("  skipped line %d: %s\n", p.Line, p.Reason)
	}
	fmt.Printf("Total stores to import: %d (skipped %d)\n", len(stores), len(problems))
	if len(stores) == 0 {
		return
	}

	if !*assumeYes {
		fmt.Print("Do you want to proceed with the import? (yes/no): ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "yes" && confirm != "y" {
			fmt.Println("Import cancelled.")
			return
		}
	}

	adminService := service.NewAdminService(
		repository.NewUserRepository(db.GetDB()),
		repository.NewStoreRepository(db.GetDB()),
		repository.NewRatingRepository(db.GetDB()),
		hasher,
	)
	imported, failed := importStores(context.Background(), adminService, stores)

	fmt.Println("Import completed.")
	fmt.Printf("Total stores imported: %d, failed: %d\n", len(imported), failed)
	for _, c := range imported {
		if c.generated {
			fmt.Printf("  %s -> %s / %s\n", c.store, c.email, c.password)
		}
	}
}

type importedStore struct {
	store     string
	email     string
	password  string
	generated bool
}

// importStores creates each store with a new owner account. Rows that fail
// are reported and skipped.
func importStores(ctx context.Context, admin service.AdminService, stores []storeRow) ([]importedStore, int) {
	var imported []importedStore
	failed := 0
	for _, row := range stores {
		result, err := admin.CreateStore(ctx, row.input())
		if err != nil {
			fmt.Printf("  line %d (%s): %v\n", row.Line, row.Email, err)
			failed++
			continue
		}
		imported = append(imported, importedStore{
			store:     result.Store.Name,
			email:     result.Owner.Email,
			password:  result.OwnerPassword,
			generated: row.Password == "",
		})
	}
	return imported, failed
}
