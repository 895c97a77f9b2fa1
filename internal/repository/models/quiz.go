package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quizforge/internal/domain"
)

// StringSlice stores a string array as a JSON text column.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("StringSlice Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*s = StringSlice{}
		return nil
	}
	return json.Unmarshal(bytesToParse, s)
}

// QuestionsJSON stores the full question list as a JSON text column. The
// questions were validated before persistence, so reads trust the payload.
type QuestionsJSON []domain.Question

// Value implements the driver.Valuer interface
func (q QuestionsJSON) Value() (driver.Value, error) {
	if q == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(q)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (q *QuestionsJSON) Scan(value interface{}) error {
	if value == nil {
		*q = QuestionsJSON{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("QuestionsJSON Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*q = QuestionsJSON{}
		return nil
	}
	return json.Unmarshal(bytesToParse, q)
}

// Quiz is the database row shape for the quizzes table.
type Quiz struct {
	ID           string         `db:"id"`
	Title        string         `db:"title"`
	Description  sql.NullString `db:"description"`
	Category     sql.NullString `db:"category"`
	QuestionType sql.NullString `db:"question_type"`
	Difficulty   sql.NullString `db:"difficulty"`
	Status       string         `db:"status"`
	TimeLimit    sql.NullInt64  `db:"time_limit"`
	IsPublic     int            `db:"is_public"` // Oracle has no native boolean
	Tags         StringSlice    `db:"tags"`
	FolderID     sql.NullInt64  `db:"folder_id"`
	UserID       string         `db:"user_id"`
	Questions    QuestionsJSON  `db:"questions"`
	AIGenerated  int            `db:"ai_generated"`
	GeneratedAt  sql.NullTime   `db:"generated_at"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
	DeletedAt    sql.NullTime   `db:"deleted_at"`
}
