package main

import (
	"fmt"
	"log"
	"os"

	"campuscare/backend/internal/models"
	"campuscare/backend/internal/storage"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	store := storage.NewService(db, nil, nil) // no redis needed for the admin CLI

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: promote <email> <role> | stats")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "promote":
		if len(os.Args) != 4 {
			fmt.Println("Usage: admin promote <email> <STUDENT|WARDEN|FACULTY|ADMIN>")
			os.Exit(1)
		}
		role, ok := models.ParseRole(os.Args[3])
		if !ok {
			fmt.Printf("Unknown role %q\n", os.Args[3])
			os.Exit(1)
		}
		if err := promoteUser(store, os.Args[2], role); err != nil {
			log.Fatalf("Error promoting user: %v", err)
		}
		fmt.Printf("User %s is now %s.\n", os.Args[2], role)
	case "stats":
		if err := printStats(store); err != nil {
			log.Fatalf("Error collecting stats: %v", err)
		}
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func promoteUser(s storage.Storage, email string, role models.Role) error {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		return err
	}
	user.Role = role
	return s.UpdateUser(user)
}

func printStats(s storage.Storage) error {
	statuses := []models.Status{
		models.StatusNew,
		models.StatusInProgress,
		models.StatusResolved,
		models.StatusRejected,
	}
	for _, status := range statuses {
		list, err := s.ListComplaints(status)
		if err != nil {
			return err
		}
		fmt.Printf("%-12s %d\n", status, len(list))
	}
	return nil
}
