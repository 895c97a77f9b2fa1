package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"quizforge/internal/domain"
	"quizforge/internal/repository/models"
	"quizforge/internal/util"

	"github.com/jmoiron/sqlx"
)

// UserDatabaseAdapter implements domain.UserRepository using sqlx.DB
type UserDatabaseAdapter struct {
	db *sqlx.DB
}

// NewUserDatabaseAdapter creates a new instance of UserDatabaseAdapter
func NewUserDatabaseAdapter(db *sqlx.DB) domain.UserRepository {
	return &UserDatabaseAdapter{db: db}
}

const userColumns = `
	id "id",
	email "email",
	name "name",
	picture "picture",
	created_at "created_at",
	updated_at "updated_at"`

// GetUserByEmail implements domain.UserRepository
func (a *UserDatabaseAdapter) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var model models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE email = :1`

	err := a.db.GetContext(ctx, &model, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return toDomainUser(&model), nil
}

// GetUserByID implements domain.UserRepository
func (a *UserDatabaseAdapter) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	var model models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = :1`

	err := a.db.GetContext(ctx, &model, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}
	return toDomainUser(&model), nil
}

// UpsertUser implements domain.UserRepository. New users receive a ULID;
// existing users get their profile fields refreshed.
func (a *UserDatabaseAdapter) UpsertUser(ctx context.Context, user *domain.User) error {
	existing, err := a.GetUserByEmail(ctx, user.Email)
	if err != nil {
		return err
	}

	now := time.Now()
	if existing == nil {
		user.ID = util.NewULID()
		query := `INSERT INTO users (id, email, name, picture, created_at, updated_at)
			VALUES (:1, :2, :3, :4, :5, :6)`
		if _, err := a.db.ExecContext(ctx, query, user.ID, user.Email,
			nullable(user.Name), nullable(user.Picture), now, now); err != nil {
			return fmt.Errorf("failed to insert user: %w", err)
		}
		return nil
	}

	user.ID = existing.ID
	query := `UPDATE users SET name = :1, picture = :2, updated_at = :3 WHERE id = :4`
	if _, err := a.db.ExecContext(ctx, query,
		nullable(user.Name), nullable(user.Picture), now, user.ID); err != nil {
		return fmt.Errorf("failed to update user %s: %w", user.ID, err)
	}
	return nil
}

func toDomainUser(model *models.User) *domain.User {
	user := &domain.User{
		ID:    model.ID,
		Email: model.Email,
	}
	if model.Name.Valid {
		user.Name = model.Name.String
	}
	if model.Picture.Valid {
		user.Picture = model.Picture.String
	}
	return user
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
