package seed

import (
	"fmt"
	"log"

	"storefront/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers           int
	ProductsPerCat     int
	NumPosts           int
	ProductFixturePath string
}

// Run populates the database with demo data: built-in categories, fake
// products, users, reviews, blog posts, and threaded comments.
func Run(db *gorm.DB, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 25
	}
	if opts.ProductsPerCat <= 0 {
		opts.ProductsPerCat = 6
	}
	if opts.NumPosts <= 0 {
		opts.NumPosts = 8
	}

	if err := Categories(db); err != nil {
		return err
	}
	if opts.ProductFixturePath != "" {
		if err := ProductsFromFile(db, opts.ProductFixturePath); err != nil {
			return err
		}
	}

	f := NewFactory(db)

	var categories []*models.Category
	if err := db.Find(&categories).Error; err != nil {
		return err
	}

	var products []*models.Product
	for _, cat := range categories {
		for i := 0; i < opts.ProductsPerCat; i++ {
			p, err := f.CreateProduct(cat.ID)
			if err != nil {
				return fmt.Errorf("seed product: %w", err)
			}
			products = append(products, p)
		}
	}

	var users []*models.User
	for i := 0; i < opts.NumUsers; i++ {
		u, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, u)
	}

	// one manager for blog authoring
	manager, err := f.CreateUser(func(u *models.User) {
		u.Role = models.RoleManager
	})
	if err != nil {
		return fmt.Errorf("seed manager: %w", err)
	}

	// scatter reviews, at most one per user/product pair
	for _, u := range users {
		for _, p := range products {
			if f.rnd.Intn(10) != 0 {
				continue
			}
			if _, err := f.CreateReview(u.ID, p.ID); err != nil {
				return fmt.Errorf("seed review: %w", err)
			}
		}
	}

	for i := 0; i < opts.NumPosts; i++ {
		post, err := f.CreateBlogPost(manager.ID)
		if err != nil {
			return fmt.Errorf("seed post: %w", err)
		}

		// a few root comments, each with occasional replies
		numRoots := f.rnd.Intn(4) + 1
		for r := 0; r < numRoots; r++ {
			rootAuthor := users[f.rnd.Intn(len(users))]
			root, err := f.CreateComment(rootAuthor.ID, post.ID, nil)
			if err != nil {
				return fmt.Errorf("seed comment: %w", err)
			}
			numReplies := f.rnd.Intn(3)
			for j := 0; j < numReplies; j++ {
				replyAuthor := users[f.rnd.Intn(len(users))]
				if _, err := f.CreateComment(replyAuthor.ID, post.ID, &root.ID); err != nil {
					return fmt.Errorf("seed reply: %w", err)
				}
			}
		}
	}

	log.Printf("seeded %d users, %d products, %d posts", len(users), len(products), opts.NumPosts)
	return nil
}
