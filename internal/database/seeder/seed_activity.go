package seeder

import (
	"context"
	"fmt"

	"collablearn/internal/database"
)

// ActivitySeeder gives the demo learner (amara) enough history for the
// recommendation profile to be non-trivial: owned skills, learning goals,
// completed bookings and community posts.
type ActivitySeeder struct{}

func (ActivitySeeder) Name() string { return "activity" }

func (ActivitySeeder) Run(ctx context.Context, db database.DB) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	skills := []struct {
		Name     string
		Category string
		Level    string
	}{
		{Name: "Python", Category: "Programming", Level: "intermediate"},
		{Name: "SQL", Category: "Programming", Level: "beginner"},
	}
	for _, s := range skills {
		_, err := tx.Exec(ctx,
			`INSERT INTO user_skills (id, user_id, name, category, level)
			 SELECT uuid_generate_v4(), u.id, $1, $2, $3 FROM users u WHERE u.email = 'amara@collablearn.dev'
			 ON CONFLICT (user_id, name) DO NOTHING`,
			s.Name, s.Category, s.Level,
		)
		if err != nil {
			return err
		}
	}

	for _, goal := range []string{"Go Fundamentals", "Conversational Spanish"} {
		_, err := tx.Exec(ctx,
			`INSERT INTO learning_goals (id, user_id, skill_name)
			 SELECT uuid_generate_v4(), u.id, $1 FROM users u WHERE u.email = 'amara@collablearn.dev'
			 ON CONFLICT (user_id, skill_name) DO NOTHING`,
			goal,
		)
		if err != nil {
			return err
		}
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO bookings (id, user_id, listing_id, instructor_id, category, price, status, completed_at)
		 SELECT uuid_generate_v4(), learner.id, l.id, l.user_id, l.category, l.price, 'completed', now() - interval '10 days'
		 FROM users learner, listings l
		 WHERE learner.email = 'amara@collablearn.dev'
		   AND l.name IN ('Watercolor Basics', 'Conversational Spanish')
		   AND NOT EXISTS (
			SELECT 1 FROM bookings b WHERE b.user_id = learner.id AND b.listing_id = l.id
		 )`,
	)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO posts (id, user_id, category, body)
		 SELECT uuid_generate_v4(), u.id, 'Programming', 'Looking for Go study partners'
		 FROM users u
		 WHERE u.email = 'amara@collablearn.dev'
		   AND NOT EXISTS (SELECT 1 FROM posts p WHERE p.user_id = u.id)`,
	)
	if err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
