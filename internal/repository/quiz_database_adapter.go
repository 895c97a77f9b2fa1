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

const quizColumns = `
	id "id",
	title "title",
	description "description",
	category "category",
	question_type "question_type",
	difficulty "difficulty",
	status "status",
	time_limit "time_limit",
	is_public "is_public",
	tags "tags",
	folder_id "folder_id",
	user_id "user_id",
	questions "questions",
	ai_generated "ai_generated",
	generated_at "generated_at",
	created_at "created_at",
	updated_at "updated_at",
	deleted_at "deleted_at"`

// QuizDatabaseAdapter implements domain.QuizRepository using sqlx.DB
type QuizDatabaseAdapter struct {
	db *sqlx.DB
}

// NewQuizDatabaseAdapter creates a new instance of QuizDatabaseAdapter
func NewQuizDatabaseAdapter(db *sqlx.DB) domain.QuizRepository {
	return &QuizDatabaseAdapter{db: db}
}

// SaveQuiz implements domain.QuizRepository
func (a *QuizDatabaseAdapter) SaveQuiz(ctx context.Context, quiz *domain.Quiz) error {
	if quiz == nil {
		return fmt.Errorf("cannot save nil quiz")
	}
	model := toModelQuiz(quiz)
	model.ID = util.NewULID()
	model.CreatedAt = time.Now()
	model.UpdatedAt = model.CreatedAt

	query := `INSERT INTO quizzes (
		id, title, description, category, question_type, difficulty, status,
		time_limit, is_public, tags, folder_id, user_id, questions,
		ai_generated, generated_at, created_at, updated_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8, :9, :10, :11, :12, :13, :14, :15, :16, :17
	)`

	_, err := a.db.ExecContext(ctx, query,
		model.ID,
		model.Title,
		model.Description,
		model.Category,
		model.QuestionType,
		model.Difficulty,
		model.Status,
		model.TimeLimit,
		model.IsPublic,
		model.Tags,
		model.FolderID,
		model.UserID,
		model.Questions,
		model.AIGenerated,
		model.GeneratedAt,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save quiz: %w", err)
	}

	quiz.ID = model.ID
	quiz.CreatedAt = model.CreatedAt
	quiz.UpdatedAt = model.UpdatedAt
	return nil
}

// GetQuizByID implements domain.QuizRepository
func (a *QuizDatabaseAdapter) GetQuizByID(ctx context.Context, id string) (*domain.Quiz, error) {
	var model models.Quiz
	query := `SELECT ` + quizColumns + `
	FROM quizzes
	WHERE id = :1
	AND deleted_at IS NULL`

	err := a.db.GetContext(ctx, &model, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by ID %s: %w", id, err)
	}
	return toDomainQuiz(&model), nil
}

// GetQuizzesByUser implements domain.QuizRepository
func (a *QuizDatabaseAdapter) GetQuizzesByUser(ctx context.Context, userID string) ([]*domain.Quiz, error) {
	var rows []models.Quiz
	query := `SELECT ` + quizColumns + `
	FROM quizzes
	WHERE user_id = :1
	AND deleted_at IS NULL
	ORDER BY created_at DESC`

	if err := a.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get quizzes for user %s: %w", userID, err)
	}

	quizzes := make([]*domain.Quiz, 0, len(rows))
	for i := range rows {
		quizzes = append(quizzes, toDomainQuiz(&rows[i]))
	}
	return quizzes, nil
}

// UpdateQuiz implements domain.QuizRepository
func (a *QuizDatabaseAdapter) UpdateQuiz(ctx context.Context, quiz *domain.Quiz) error {
	if quiz == nil {
		return fmt.Errorf("cannot update nil quiz")
	}
	if quiz.ID == "" {
		return fmt.Errorf("cannot update quiz with empty ID")
	}
	model := toModelQuiz(quiz)
	model.UpdatedAt = time.Now()

	query := `UPDATE quizzes SET
		title = :1,
		description = :2,
		category = :3,
		question_type = :4,
		difficulty = :5,
		status = :6,
		time_limit = :7,
		is_public = :8,
		tags = :9,
		folder_id = :10,
		questions = :11,
		updated_at = :12
	WHERE id = :13
	AND deleted_at IS NULL`

	result, err := a.db.ExecContext(ctx, query,
		model.Title,
		model.Description,
		model.Category,
		model.QuestionType,
		model.Difficulty,
		model.Status,
		model.TimeLimit,
		model.IsPublic,
		model.Tags,
		model.FolderID,
		model.Questions,
		model.UpdatedAt,
		model.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update quiz %s: %w", quiz.ID, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return domain.NewQuizNotFoundError(quiz.ID)
	}

	quiz.UpdatedAt = model.UpdatedAt
	return nil
}

// DeleteQuiz implements domain.QuizRepository as a soft delete
func (a *QuizDatabaseAdapter) DeleteQuiz(ctx context.Context, id string) error {
	query := `UPDATE quizzes SET deleted_at = :1 WHERE id = :2 AND deleted_at IS NULL`

	result, err := a.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete quiz %s: %w", id, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return domain.NewQuizNotFoundError(id)
	}
	return nil
}

func toModelQuiz(quiz *domain.Quiz) *models.Quiz {
	model := &models.Quiz{
		ID:        quiz.ID,
		Title:     quiz.Title,
		Status:    string(quiz.Status),
		UserID:    quiz.UserID,
		Tags:      models.StringSlice(quiz.Tags),
		Questions: models.QuestionsJSON(quiz.Questions),
		CreatedAt: quiz.CreatedAt,
		UpdatedAt: quiz.UpdatedAt,
	}
	if model.Status == "" {
		model.Status = string(domain.StatusDraft)
	}
	if quiz.Description != "" {
		model.Description = sql.NullString{String: quiz.Description, Valid: true}
	}
	if quiz.Category != "" {
		model.Category = sql.NullString{String: quiz.Category, Valid: true}
	}
	if quiz.QuestionType != "" {
		model.QuestionType = sql.NullString{String: string(quiz.QuestionType), Valid: true}
	}
	if quiz.Difficulty != "" {
		model.Difficulty = sql.NullString{String: string(quiz.Difficulty), Valid: true}
	}
	if quiz.TimeLimit != nil {
		model.TimeLimit = sql.NullInt64{Int64: int64(*quiz.TimeLimit), Valid: true}
	}
	if quiz.IsPublic {
		model.IsPublic = 1
	}
	if quiz.FolderID != nil {
		model.FolderID = sql.NullInt64{Int64: *quiz.FolderID, Valid: true}
	}
	if quiz.Metadata.AIGenerated {
		model.AIGenerated = 1
		model.GeneratedAt = sql.NullTime{Time: quiz.Metadata.GeneratedAt, Valid: true}
	}
	return model
}

func toDomainQuiz(model *models.Quiz) *domain.Quiz {
	quiz := &domain.Quiz{
		ID:        model.ID,
		Title:     model.Title,
		Status:    domain.QuizStatus(model.Status),
		IsPublic:  model.IsPublic != 0,
		Tags:      []string(model.Tags),
		UserID:    model.UserID,
		Questions: []domain.Question(model.Questions),
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
	if model.Description.Valid {
		quiz.Description = model.Description.String
	}
	if model.Category.Valid {
		quiz.Category = model.Category.String
	}
	if model.QuestionType.Valid {
		quiz.QuestionType = domain.QuestionType(model.QuestionType.String)
	}
	if model.Difficulty.Valid {
		quiz.Difficulty = domain.Difficulty(model.Difficulty.String)
	}
	if model.TimeLimit.Valid {
		limit := int(model.TimeLimit.Int64)
		quiz.TimeLimit = &limit
	}
	if model.FolderID.Valid {
		folderID := model.FolderID.Int64
		quiz.FolderID = &folderID
	}
	quiz.Metadata = domain.QuizMetadata{
		QuestionTypes: quiz.QuestionTypeCounts(),
		AIGenerated:   model.AIGenerated != 0,
	}
	if model.GeneratedAt.Valid {
		quiz.Metadata.GeneratedAt = model.GeneratedAt.Time
	}
	return quiz
}
