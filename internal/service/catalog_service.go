package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"storefront/internal/cache"
	"storefront/internal/models"
	"storefront/internal/repository"

	"gorm.io/gorm"
)

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases a name and collapses non-alphanumeric runs to hyphens.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugStrip.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// CatalogService serves the public storefront catalog and the admin
// product and category management behind it. Product and category reads
// go through the Redis cache; every write invalidates the affected keys.
type CatalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

type ListProductsInput struct {
	CategorySlug string
	Limit        int
	Offset       int
	IncludeAll   bool // admin listings include inactive products
}

type CreateProductInput struct {
	Name        string
	Description string
	PriceCents  int64
	Stock       int
	ImageURL    string
	Active      bool
	CategoryID  uint
}

type UpdateProductInput struct {
	ProductID   uint
	Name        *string
	Description *string
	PriceCents  *int64
	Stock       *int
	ImageURL    *string
	Active      *bool
	CategoryID  *uint
}

func NewCatalogService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *CatalogService {
	return &CatalogService{productRepo: productRepo, categoryRepo: categoryRepo}
}

func (s *CatalogService) ListProducts(ctx context.Context, in ListProductsInput) (*models.ProductListResponse, error) {
	if in.Limit <= 0 || in.Limit > 100 {
		in.Limit = 20
	}
	if in.Offset < 0 {
		in.Offset = 0
	}

	if in.CategorySlug != "" {
		if _, err := s.categoryRepo.GetBySlug(ctx, in.CategorySlug); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.NewNotFoundError("Category", in.CategorySlug)
			}
			return nil, err
		}
	}

	products, total, err := s.productRepo.List(ctx, repository.ProductFilter{
		CategorySlug: in.CategorySlug,
		ActiveOnly:   !in.IncludeAll,
		Limit:        in.Limit,
		Offset:       in.Offset,
	})
	if err != nil {
		return nil, err
	}

	return &models.ProductListResponse{
		Products: products,
		Total:    total,
		Limit:    in.Limit,
		Offset:   in.Offset,
	}, nil
}

func (s *CatalogService) SearchProducts(ctx context.Context, query string, limit, offset int) ([]*models.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.productRepo.Search(ctx, query, limit, offset)
}

// GetProductBySlug is the public product detail read, cached by slug.
// Inactive products are hidden from the public path.
func (s *CatalogService) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var cached models.Product
	if cache.GetJSON(ctx, cache.ProductKey(slug), &cached) && cached.Active {
		return &cached, nil
	}

	product, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Product", slug)
		}
		return nil, err
	}
	if !product.Active {
		return nil, models.NewNotFoundError("Product", slug)
	}

	cache.SetJSON(ctx, cache.ProductKey(slug), product, cache.ProductTTL)
	return product, nil
}

// GetProduct is the admin read; inactive products are visible.
func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Product", id)
		}
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, models.NewValidationError("Product name is required")
	}
	if in.PriceCents < 0 {
		return nil, models.NewValidationError("Price cannot be negative")
	}
	if in.Stock < 0 {
		return nil, models.NewValidationError("Stock cannot be negative")
	}

	if _, err := s.categoryRepo.GetByID(ctx, in.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Category", in.CategoryID)
		}
		return nil, err
	}

	slug := Slugify(in.Name)
	if existing, err := s.productRepo.GetBySlug(ctx, slug); err == nil && existing != nil {
		return nil, models.NewConflictError("A product with this name already exists")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	product := &models.Product{
		Name:        in.Name,
		Slug:        slug,
		Description: in.Description,
		PriceCents:  in.PriceCents,
		Stock:       in.Stock,
		ImageURL:    in.ImageURL,
		Active:      in.Active,
		CategoryID:  in.CategoryID,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, product.ID)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, in UpdateProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Product", in.ProductID)
		}
		return nil, err
	}
	oldSlug := product.Slug

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, models.NewValidationError("Product name is required")
		}
		product.Name = *in.Name
		product.Slug = Slugify(*in.Name)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.PriceCents != nil {
		if *in.PriceCents < 0 {
			return nil, models.NewValidationError("Price cannot be negative")
		}
		product.PriceCents = *in.PriceCents
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, models.NewValidationError("Stock cannot be negative")
		}
		product.Stock = *in.Stock
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	if in.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *in.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.NewNotFoundError("Category", *in.CategoryID)
			}
			return nil, err
		}
		product.CategoryID = *in.CategoryID
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	cache.InvalidateProduct(ctx, oldSlug)
	if product.Slug != oldSlug {
		cache.InvalidateProduct(ctx, product.Slug)
	}

	return s.productRepo.GetByID(ctx, product.ID)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Product", id)
		}
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	cache.InvalidateProduct(ctx, product.Slug)
	return nil
}

// ListCategories is cached as a single list; categories change rarely.
func (s *CatalogService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	var cached []*models.Category
	if cache.GetJSON(ctx, cache.CategoryListKey(), &cached) {
		return cached, nil
	}

	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	cache.SetJSON(ctx, cache.CategoryListKey(), categories, cache.CategoryTTL)
	return categories, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, models.NewValidationError("Category name is required")
	}

	slug := Slugify(name)
	if existing, err := s.categoryRepo.GetBySlug(ctx, slug); err == nil && existing != nil {
		return nil, models.NewConflictError("A category with this name already exists")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category := &models.Category{Name: name, Slug: slug}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	cache.InvalidateCategories(ctx)
	return category, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uint, name string) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Category", id)
		}
		return nil, err
	}

	if strings.TrimSpace(name) == "" {
		return nil, models.NewValidationError("Category name is required")
	}

	category.Name = name
	category.Slug = Slugify(name)
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	cache.InvalidateCategories(ctx)
	return category, nil
}

// DeleteCategory refuses to remove a category that still has products.
func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	if _, err := s.categoryRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Category", id)
		}
		return err
	}

	count, err := s.categoryRepo.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return models.NewConflictError("Category still has products assigned")
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}

	cache.InvalidateCategories(ctx)
	return nil
}
