// Package main provides role management utilities for the storefront.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/models"

	"gorm.io/gorm"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run ./cmd/admin promote <user_id>            - Promote user to admin")
		fmt.Println("  go run ./cmd/admin set-role <user_id> <role>    - Set a user's role")
		fmt.Println("  go run ./cmd/admin list-staff                   - List admins and managers")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	switch os.Args[1] {
	case "promote":
		if len(os.Args) < 3 {
			fmt.Println("Usage: go run ./cmd/admin promote <user_id>")
			os.Exit(1)
		}
		setRole(db, os.Args[2], models.RoleAdmin)

	case "set-role":
		if len(os.Args) < 4 {
			fmt.Println("Usage: go run ./cmd/admin set-role <user_id> <role>")
			os.Exit(1)
		}
		setRole(db, os.Args[2], os.Args[3])

	case "list-staff":
		listStaff(db)

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}
}

func setRole(db *gorm.DB, userID, role string) {
	if !models.ValidRole(role) {
		fmt.Printf("Unknown role %q (valid: %s, %s, %s)\n",
			role, models.RoleUser, models.RoleManager, models.RoleAdmin)
		os.Exit(1)
	}

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fmt.Printf("User with ID %s not found\n", userID)
		} else {
			log.Fatalf("Database error: %v", err)
		}
		os.Exit(1)
	}

	if user.Role == role {
		fmt.Printf("User %s (ID: %d) already has role %s\n", user.Username, user.ID, role)
		return
	}

	user.Role = role
	if err := db.Save(&user).Error; err != nil {
		log.Fatalf("Failed to update role: %v", err)
	}
	fmt.Printf("User %s (ID: %d) is now %s\n", user.Username, user.ID, role)
}

func listStaff(db *gorm.DB) {
	var users []models.User
	err := db.Where("role IN ?", []string{models.RoleAdmin, models.RoleManager}).
		Order("role, id").Find(&users).Error
	if err != nil {
		log.Fatalf("Database error: %v", err)
	}

	if len(users) == 0 {
		fmt.Println("No staff users found")
		return
	}
	for _, u := range users {
		fmt.Printf("%-8s %5d  %-30s %s\n", u.Role, u.ID, u.Username, u.Email)
	}
}
