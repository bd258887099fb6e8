// Command main runs the database seeder for the post service.
package main

import (
	"context"
	"flag"
	"log"

	"postservice/internal/config"
	"postservice/internal/database"
	"postservice/internal/seed"
)

func main() {
	numAuthors := flag.Int("authors", 20, "Number of authors to generate")
	numPosts := flag.Int("posts", 100, "Number of posts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d authors, %d posts, clean=%v", *numAuthors, *numPosts, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if err := s.Seed(context.Background(), seed.Options{
		NumAuthors: *numAuthors,
		NumPosts:   *numPosts,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
