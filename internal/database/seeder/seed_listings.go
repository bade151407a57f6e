package seeder

import (
	"context"
	"fmt"

	"collablearn/internal/database"
)

type ListingsSeeder struct{}

func (ListingsSeeder) Name() string { return "listings" }

type demoListing struct {
	OwnerEmail  string
	Name        string
	Category    string
	SubCategory string
	Tags        []string
	Price       float64
	Level       string
}

var demoListings = []demoListing{
	{OwnerEmail: "maya@collablearn.dev", Name: "Go Fundamentals", Category: "Programming", SubCategory: "Backend", Tags: []string{"go", "backend"}, Price: 35, Level: "beginner"},
	{OwnerEmail: "maya@collablearn.dev", Name: "Concurrent Go Patterns", Category: "Programming", SubCategory: "Backend", Tags: []string{"go", "concurrency"}, Price: 55, Level: "advanced"},
	{OwnerEmail: "daniel@collablearn.dev", Name: "Watercolor Basics", Category: "Art", SubCategory: "Painting", Tags: []string{"watercolor"}, Price: 20, Level: "beginner"},
	{OwnerEmail: "daniel@collablearn.dev", Name: "Figure Drawing Studio", Category: "Art", SubCategory: "Drawing", Tags: []string{"drawing", "anatomy"}, Price: 30, Level: "intermediate"},
	{OwnerEmail: "sofia@collablearn.dev", Name: "Conversational Spanish", Category: "Languages", SubCategory: "Spanish", Tags: []string{"spanish", "conversation"}, Price: 25, Level: "beginner"},
	{OwnerEmail: "sofia@collablearn.dev", Name: "Spanish for Travel", Category: "Languages", SubCategory: "Spanish", Tags: []string{"spanish", "travel"}, Price: 0, Level: "beginner"},
	{OwnerEmail: "theo@collablearn.dev", Name: "Acoustic Guitar Starter", Category: "Music", SubCategory: "Guitar", Tags: []string{"guitar"}, Price: 28, Level: "beginner"},
	{OwnerEmail: "theo@collablearn.dev", Name: "Music Theory Crash Course", Category: "Music", SubCategory: "Theory", Tags: []string{"theory"}, Price: 0, Level: "intermediate"},
}

func (ListingsSeeder) Run(ctx context.Context, db database.DB) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, l := range demoListings {
		_, err := tx.Exec(ctx,
			`INSERT INTO listings (id, user_id, name, category, sub_category, tags, price, level, source, external_id)
			 SELECT uuid_generate_v4(), u.id, $2, $3, $4, $5, $6, $7, 'seed', $1
			 FROM users u WHERE u.email = $8
			 ON CONFLICT (source, external_id) DO NOTHING`,
			l.Name, l.Name, l.Category, l.SubCategory, l.Tags, l.Price, l.Level, l.OwnerEmail,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
