package models

import (
	"database/sql"
	"time"
)

// User is the database row shape for the users table.
type User struct {
	ID        string         `db:"id"`
	Email     string         `db:"email"`
	Name      sql.NullString `db:"name"`
	Picture   sql.NullString `db:"picture"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}
