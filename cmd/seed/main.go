// Command main runs the database seeder for the storefront.
package main

import (
	"flag"
	"log"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	perCat := flag.Int("products", 6, "Number of products per category")
	numPosts := flag.Int("posts", 8, "Number of blog posts to create")
	fixtures := flag.String("fixtures", "", "Optional YAML product fixture file")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = seed.Run(db, seed.Options{
		NumUsers:           *numUsers,
		ProductsPerCat:     *perCat,
		NumPosts:           *numPosts,
		ProductFixturePath: *fixtures,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Println("Seeding complete")
}
