// Package seed provides helpers to create demo and test data. These
// helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"storefront/internal/models"
	"storefront/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rnd *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// demo accounts share one password so local logins are easy
const demoPassword = "DemoPassword1!"

// CreateUser persists a fake user with the demo password.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: fmt.Sprintf("%s%d", gofakeit.Username(), f.rnd.Intn(10000)),
		Email:    gofakeit.Email(),
		Password: string(hashed),
		Role:     models.RoleUser,
		FullName: gofakeit.Name(),
	}
	user.CreatedAt = f.pastTime(180)

	for _, override := range overrides {
		override(user)
	}
	return user, f.db.Create(user).Error
}

// CreateProduct persists a fake product in the given category.
func (f *Factory) CreateProduct(categoryID uint, overrides ...func(*models.Product)) (*models.Product, error) {
	name := fmt.Sprintf("%s %s", gofakeit.AdjectiveDescriptive(), gofakeit.ProductName())
	product := &models.Product{
		Name:        name,
		Slug:        fmt.Sprintf("%s-%d", service.Slugify(name), f.rnd.Intn(100000)),
		Description: gofakeit.ProductDescription(),
		PriceCents:  int64(f.rnd.Intn(20000) + 199),
		Stock:       f.rnd.Intn(120),
		ImageURL:    fmt.Sprintf("https://picsum.photos/seed/%s/600/600", gofakeit.UUID()),
		Active:      true,
		CategoryID:  categoryID,
	}

	for _, override := range overrides {
		override(product)
	}
	return product, f.db.Create(product).Error
}

// CreateReview persists a review for the user/product pair.
func (f *Factory) CreateReview(userID, productID uint) (*models.Review, error) {
	review := &models.Review{
		UserID:    userID,
		ProductID: productID,
		Rating:    f.rnd.Intn(5) + 1,
		Title:     gofakeit.Sentence(4),
		Body:      gofakeit.Paragraph(1, 2, 8, " "),
	}
	return review, f.db.Create(review).Error
}

// CreateBlogPost persists a published fake post by the given author.
func (f *Factory) CreateBlogPost(authorID uint) (*models.BlogPost, error) {
	title := gofakeit.Sentence(6)
	publishedAt := f.pastTime(90)
	post := &models.BlogPost{
		AuthorID:    authorID,
		Title:       title,
		Slug:        fmt.Sprintf("%s-%d", service.Slugify(title), f.rnd.Intn(100000)),
		Body:        gofakeit.Paragraph(3, 4, 10, "\n\n"),
		CoverURL:    fmt.Sprintf("https://picsum.photos/seed/%s/1200/630", gofakeit.UUID()),
		Published:   true,
		PublishedAt: &publishedAt,
	}
	return post, f.db.Create(post).Error
}

// CreateComment persists a comment; parentID may be nil for a root.
func (f *Factory) CreateComment(userID, postID uint, parentID *uint) (*models.Comment, error) {
	comment := &models.Comment{
		Content:  gofakeit.Sentence(f.rnd.Intn(15) + 3),
		UserID:   userID,
		PostID:   postID,
		ParentID: parentID,
	}
	return comment, f.db.Create(comment).Error
}

func (f *Factory) pastTime(maxDays int) time.Time {
	daysBack := f.rnd.Intn(maxDays)
	hoursBack := f.rnd.Intn(24)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)
}
