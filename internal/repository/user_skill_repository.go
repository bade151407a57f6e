package repository

import (
	"context"

	"collablearn/internal/database"

	"github.com/google/uuid"
)

type OwnedSkill struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Name     string
	Category string
	Level    string
}

// UserSkillRepository reads the skills a user offers and the skills they
// have marked as wanting to learn.
type UserSkillRepository interface {
	FindOwnedByUserID(ctx context.Context, userID uuid.UUID) ([]OwnedSkill, error)
	FindLearningGoals(ctx context.Context, userID uuid.UUID) ([]string, error)
}

type PostgresUserSkillRepository struct {
	db database.DB
}

func NewPostgresUserSkillRepository(db database.DB) *PostgresUserSkillRepository {
	return &PostgresUserSkillRepository{db: db}
}

func (r *PostgresUserSkillRepository) FindOwnedByUserID(ctx context.Context, userID uuid.UUID) ([]OwnedSkill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, name, category, COALESCE(level, 'beginner')
		 FROM user_skills
		 WHERE user_id = $1
		 ORDER BY name ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]OwnedSkill, 0)
	for rows.Next() {
		var s OwnedSkill
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.Category, &s.Level); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresUserSkillRepository) FindLearningGoals(ctx context.Context, userID uuid.UUID) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT skill_name FROM learning_goals WHERE user_id = $1 ORDER BY skill_name ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
