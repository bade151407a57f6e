package seeder

import (
	"context"
	"fmt"

	"collablearn/internal/database"

	"golang.org/x/crypto/bcrypt"
)

type UsersSeeder struct{}

func (UsersSeeder) Name() string { return "users" }

type demoUser struct {
	Email       string
	Password    string
	DisplayName string
	Rating      float64
}

var demoUsers = []demoUser{
	{Email: "maya@collablearn.dev", Password: "maya-demo-pass", DisplayName: "Maya Chen", Rating: 4.9},
	{Email: "daniel@collablearn.dev", Password: "daniel-demo-pass", DisplayName: "Daniel Okafor", Rating: 4.6},
	{Email: "sofia@collablearn.dev", Password: "sofia-demo-pass", DisplayName: "Sofia Alvarez", Rating: 4.8},
	{Email: "theo@collablearn.dev", Password: "theo-demo-pass", DisplayName: "Theo Lindgren", Rating: 4.2},
	{Email: "amara@collablearn.dev", Password: "amara-demo-pass", DisplayName: "Amara Diallo", Rating: 0},
}

func (UsersSeeder) Run(ctx context.Context, db database.DB) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, u := range demoUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO users (id, email, password_hash, display_name, rating)
			 VALUES (uuid_generate_v4(), $1, $2, $3, $4)
			 ON CONFLICT (email) DO NOTHING`,
			u.Email, string(hash), u.DisplayName, u.Rating,
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
