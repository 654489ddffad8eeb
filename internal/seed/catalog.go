package seed

import (
	"fmt"
	"os"

	"storefront/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BuiltInCategory is a permanent catalog category.
type BuiltInCategory struct {
	Name string
	Slug string
}

// BuiltInCategories defines the permanent catalog categories.
var BuiltInCategories = []BuiltInCategory{
	{Name: "Apparel", Slug: "apparel"},
	{Name: "Electronics", Slug: "electronics"},
	{Name: "Home & Kitchen", Slug: "home-kitchen"},
	{Name: "Books", Slug: "books"},
	{Name: "Toys & Games", Slug: "toys-games"},
	{Name: "Outdoors", Slug: "outdoors"},
	{Name: "Beauty", Slug: "beauty"},
	{Name: "Grocery", Slug: "grocery"},
}

// Categories seeds the permanent categories, updating names in place on
// slug conflicts so re-running is safe.
func Categories(db *gorm.DB) error {
	for _, item := range BuiltInCategories {
		category := models.Category{Name: item.Name, Slug: item.Slug}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "updated_at"}),
		}).Create(&category).Error
		if err != nil {
			return fmt.Errorf("seed category %q: %w", item.Slug, err)
		}
	}
	return nil
}

// fixtureCatalog is the on-disk shape of a product fixture file.
type fixtureCatalog struct {
	Products []struct {
		Name        string `yaml:"name"`
		Slug        string `yaml:"slug"`
		Description string `yaml:"description"`
		PriceCents  int64  `yaml:"price_cents"`
		Stock       int    `yaml:"stock"`
		ImageURL    string `yaml:"image_url"`
		Category    string `yaml:"category"`
	} `yaml:"products"`
}

// ProductsFromFile loads a YAML product fixture and upserts every product
// by slug. Category is referenced by slug and must already exist.
func ProductsFromFile(db *gorm.DB, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read product fixtures: %w", err)
	}

	var catalog fixtureCatalog
	if err := yaml.Unmarshal(raw, &catalog); err != nil {
		return fmt.Errorf("parse product fixtures: %w", err)
	}

	for _, p := range catalog.Products {
		var category models.Category
		if err := db.Where("slug = ?", p.Category).First(&category).Error; err != nil {
			return fmt.Errorf("fixture product %q references unknown category %q: %w", p.Slug, p.Category, err)
		}

		product := models.Product{
			Name:        p.Name,
			Slug:        p.Slug,
			Description: p.Description,
			PriceCents:  p.PriceCents,
			Stock:       p.Stock,
			ImageURL:    p.ImageURL,
			Active:      true,
			CategoryID:  category.ID,
		}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "description", "price_cents", "stock", "image_url", "category_id", "updated_at"}),
		}).Create(&product).Error
		if err != nil {
			return fmt.Errorf("seed product %q: %w", p.Slug, err)
		}
	}
	return nil
}
