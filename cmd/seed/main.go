package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/hjakub/drive-backend/config"
	"github.com/hjakub/drive-backend/internal/app/model"
	"github.com/hjakub/drive-backend/internal/app/repository"
	"github.com/hjakub/drive-backend/internal/app/service"
	"github.com/hjakub/drive-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Seeds the baseline catalog and optionally imports extra products
// from an XLSX file.
//
// Usage:
//   go run cmd/seed/main.go              # baseline only
//   go run cmd/seed/main.go extra.xlsx   # baseline + XLSX import
//
// XLSX columns (first row is a header):
//   slug | name | price_cents | image | hover_image | description | features
// features is a semicolon-separated list.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	productRepo := repository.NewProductRepository(db.GetDB())
	catalogService := service.NewCatalogService(productRepo)

	inserted, err := catalogService.SeedBaseline()
	if err != nil {
		log.Fatal("Failed to seed baseline catalog:", err)
	}
	fmt.Printf("Baseline catalog seeded (%d new products)\n", inserted)

	if len(os.Args) < 2 {
		return
	}

	filePath := os.Args[1]
	fmt.Printf("Reading XLSX file: %s\n", filePath)

	products, err := readProductsFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}
	fmt.Printf("Products found in file: %d\n", len(products))

	imported, err := productRepo.CreateMissing(products)
	if err != nil {
		log.Fatal("Failed to import products:", err)
	}
	fmt.Printf("Import completed: %d inserted, %d already existed\n", imported, len(products)-imported)
}

func readProductsFromXLSX(filePath string) ([]model.Product, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("no data rows found in XLSX file")
	}

	var products []model.Product
	seenSlugs := make(map[string]bool)
	skipped := 0

	for i, row := range rows[1:] {
		if len(row) < 3 {
			skipped++
			continue
		}

		slug := strings.TrimSpace(row[0])
		name := strings.TrimSpace(row[1])
		if slug == "" || name == "" || seenSlugs[slug] {
			skipped++
			continue
		}

		priceCents, err := strconv.ParseInt(strings.TrimSpace(row[2]), 10, 64)
		if err != nil || priceCents < 0 {
			fmt.Printf("Row %d: invalid price %q, skipping\n", i+2, row[2])
			skipped++
			continue
		}

		product := model.Product{
			Slug:       slug,
			Name:       name,
			PriceCents: priceCents,
		}
		if len(row) > 3 {
			product.Image = strings.TrimSpace(row[3])
		}
		if len(row) > 4 {
			product.HoverImage = strings.TrimSpace(row[4])
		}
		if len(row) > 5 {
			product.Description = strings.TrimSpace(row[5])
		}
		if len(row) > 6 && strings.TrimSpace(row[6]) != "" {
			for _, feature := range strings.Split(row[6], ";") {
				if trimmed := strings.TrimSpace(feature); trimmed != "" {
					product.Features = append(product.Features, trimmed)
				}
			}
		}

		seenSlugs[slug] = true
		products = append(products, product)
	}

	if skipped > 0 {
		fmt.Printf("Skipped %d invalid or duplicate rows\n", skipped)
	}
	return products, nil
}
