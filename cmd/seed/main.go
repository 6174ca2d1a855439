package main

import (
	"context"
	"log"
	"os"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"printlab/internal/config"
	"printlab/internal/db"
	"printlab/internal/model"
	"printlab/internal/repository"
)

// seedProduct describes one starter catalog entry.
type seedProduct struct {
	Name        string
	Description string
	BasePrice   string
	Variants    []seedVariant
}

type seedVariant struct {
	SKU   string
	Color string
	Size  string
	Price string
	Stock int
}

var starterCatalog = []seedProduct{
	{
		Name:        "Classic T-Shirt",
		Description: "Heavyweight cotton tee, front and back print areas.",
		BasePrice:   "120000",
		Variants: []seedVariant{
			{SKU: "TS-WHT-S", Color: "white", Size: "S", Price: "120000", Stock: 100},
			{SKU: "TS-WHT-M", Color: "white", Size: "M", Price: "120000", Stock: 100},
			{SKU: "TS-BLK-M", Color: "black", Size: "M", Price: "130000", Stock: 80},
			{SKU: "TS-BLK-L", Color: "black", Size: "L", Price: "130000", Stock: 80},
		},
	},
	{
		Name:        "Ceramic Mug",
		Description: "330ml mug with wrap-around print.",
		BasePrice:   "80000",
		Variants: []seedVariant{
			{SKU: "MUG-WHT", Color: "white", Size: "330ml", Price: "80000", Stock: 200},
		},
	},
	{
		Name:        "Poster A3",
		Description: "Matte poster print.",
		BasePrice:   "60000",
		Variants: []seedVariant{
			{SKU: "PST-A3", Color: "", Size: "A3", Price: "60000", Stock: 500},
		},
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Variant{},
		&model.Asset{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)

	adminEmail := getEnv("ADMIN_EMAIL", "admin@printlab.local")
	adminPassword := getEnv("ADMIN_PASSWORD", "change-me-now")

	if _, err := userRepo.FindByEmail(ctx, adminEmail); err == gorm.ErrRecordNotFound {
		admin := &model.User{
			Email:    adminEmail,
			Password: adminPassword,
			FullName: "Super Admin",
			Role:     model.RoleSuperAdmin,
			IsActive: true,
		}
		if err := userRepo.Create(ctx, admin); err != nil {
			log.Fatalf("seed super admin: %v", err)
		}
		log.Printf("Created super admin %s", adminEmail)
	} else if err != nil {
		log.Fatalf("check super admin: %v", err)
	} else {
		log.Printf("Super admin %s already exists, skipping", adminEmail)
	}

	productRepo := repository.NewProductRepository(gormDB)
	variantRepo := repository.NewVariantRepository(gormDB)

	created := 0
	for _, sp := range starterCatalog {
		var existing model.Product
		err := gormDB.WithContext(ctx).Where("name = ?", sp.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("check product %q: %v", sp.Name, err)
		}

		price, err := decimal.NewFromString(sp.BasePrice)
		if err != nil {
			log.Fatalf("parse base price for %q: %v", sp.Name, err)
		}
		product := &model.Product{
			Name:        sp.Name,
			Description: sp.Description,
			BasePrice:   price,
			IsActive:    true,
		}
		if err := productRepo.Create(ctx, product); err != nil {
			log.Fatalf("seed product %q: %v", sp.Name, err)
		}

		for _, sv := range sp.Variants {
			vprice, err := decimal.NewFromString(sv.Price)
			if err != nil {
				log.Fatalf("parse price for %q: %v", sv.SKU, err)
			}
			variant := &model.Variant{
				ProductID: product.ID,
				SKU:       sv.SKU,
				Color:     sv.Color,
				Size:      sv.Size,
				Price:     vprice,
				Stock:     sv.Stock,
			}
			if err := variantRepo.Create(ctx, variant); err != nil {
				log.Fatalf("seed variant %q: %v", sv.SKU, err)
			}
		}
		created++
	}

	log.Printf("Seed complete: %d products created", created)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
