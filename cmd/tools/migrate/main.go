// Command migrate creates the storefront tables and, with -seed, a demo
// product. -image uploads a local file as the demo product's image.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/MikeOwino/hydrogen/internal/config"
	"github.com/MikeOwino/hydrogen/internal/modules/cart"
	"github.com/MikeOwino/hydrogen/internal/modules/content"
	"github.com/MikeOwino/hydrogen/internal/modules/products"
	"github.com/MikeOwino/hydrogen/internal/shared/slug"
	"github.com/MikeOwino/hydrogen/internal/storage"
)

func main() {
	seed := flag.Bool("seed", false, "insert a demo product")
	image := flag.String("image", "", "image file for the demo product")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	db, err := gorm.Open(gormmysql.Open(cfg.DBDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&products.Product{}, &products.Variant{}, &products.Image{},
		&cart.Cart{}, &cart.Line{},
		&content.Collection{}, &content.Page{},
	)
	if err != nil {
		log.Fatalf("Failed: %v", err)
	}

	// lines reference variants without a gorm association
	err = db.Exec(`ALTER TABLE cart_lines ADD CONSTRAINT fk_cart_lines_variant
		FOREIGN KEY (variant_id) REFERENCES product_variants(id) ON DELETE CASCADE`).Error
	if err != nil && !isDuplicate(err) {
		log.Fatalf("Failed: %v", err)
	}

	if *seed {
		p := demoProduct()
		if *image != "" {
			st, err := storage.New(ctx, cfg.Storage)
			if err != nil {
				log.Fatalf("storage: %v", err)
			}
			if err := attachImage(ctx, st, &p, *image); err != nil {
				log.Fatalf("upload: %v", err)
			}
		}
		if err := db.WithContext(ctx).Create(&p).Error; err != nil {
			log.Fatalf("seed: %v", err)
		}
	}
	log.Println("Migration applied.")
}

// 1826: duplicate foreign key constraint name, 1061: duplicate key name
func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && (me.Number == 1826 || me.Number == 1061)
}

// attachImage uploads the file at path and makes it the product's first image.
func attachImage(ctx context.Context, st storage.Storage, p *products.Product, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	res, err := st.Put(ctx, f, storage.PutInput{
		Filename:      filepath.Base(path),
		ProductHandle: p.Handle,
		Size:          info.Size(),
	})
	if err != nil {
		return err
	}
	log.Printf("Uploaded %s (%s) to %v", res.Key, res.ContentType, st)

	img := products.Image{ID: uuid.NewString(), ProductID: p.ID, URL: res.URL, AltText: p.Title}
	p.Images = append([]products.Image{img}, p.Images...)
	for i := range p.Images {
		p.Images[i].Position = i
	}
	return nil
}

func demoProduct() products.Product {
	title := "The Hydrogen Snowboard"
	id := uuid.NewString()
	return products.Product{
		ID:          id,
		Title:       title,
		Handle:      slug.FromName(title),
		Description: "A board for every slope.",
		Vendor:      "Hydrogen",
		Status:      "active",
		Images: []products.Image{
			{ID: uuid.NewString(), ProductID: id, URL: "/static/snowboard.jpg", AltText: title},
		},
		Variants: []products.Variant{
			{ID: uuid.NewString(), ProductID: id, SKU: "HSB-150", Title: "150cm", Options: datatypes.JSON(`{"size":"150"}`), PriceCents: 60000, Currency: "USD", AvailableForSale: false, Position: 0},
			{ID: uuid.NewString(), ProductID: id, SKU: "HSB-160", Title: "160cm", Options: datatypes.JSON(`{"size":"160"}`), PriceCents: 62000, Currency: "USD", Stock: 5, AvailableForSale: true, Position: 1},
		},
	}
}
