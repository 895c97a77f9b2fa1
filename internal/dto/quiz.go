package dto

import (
	"fmt"
	"time"

	"quizforge/internal/domain"
)

// GenerateQuizRequest is the request body for quiz generation
// @Description Parameters for generating a quiz with the LLM
type GenerateQuizRequest struct {
	Content           string `json:"content,omitempty"`
	Topic             string `json:"topic,omitempty"`
	QuestionType      string `json:"question_type,omitempty"`
	NumberOfQuestions int    `json:"number_of_questions,omitempty"`
	Difficulty        string `json:"difficulty,omitempty"`
	Language          string `json:"language,omitempty"`
	Category          string `json:"category,omitempty"`
	Instructions      string `json:"instructions,omitempty"`
}

// Validate checks the request fields before the pipeline runs.
func (r *GenerateQuizRequest) Validate() domain.FieldErrors {
	var errs domain.FieldErrors
	if r.Content == "" && r.Topic == "" {
		errs = append(errs, domain.FieldError{
			Field:   "content",
			Message: "either content or topic must be provided",
		})
	}
	if r.QuestionType != "" && !domain.QuestionType(r.QuestionType).IsValid() {
		errs = append(errs, domain.FieldError{
			Field:   "question_type",
			Message: fmt.Sprintf("unknown question type: %s", r.QuestionType),
		})
	}
	if r.NumberOfQuestions < 0 {
		errs = append(errs, domain.FieldError{
			Field:   "number_of_questions",
			Message: "number of questions must not be negative",
		})
	}
	if r.Category != "" && !domain.IsValidCategory(r.Category) {
		errs = append(errs, domain.FieldError{
			Field:   "category",
			Message: fmt.Sprintf("unknown category: %s", r.Category),
		})
	}
	return errs
}

// ToParameters converts the request into domain generation parameters.
func (r *GenerateQuizRequest) ToParameters() domain.GenerationParameters {
	return domain.GenerationParameters{
		Content:           r.Content,
		Topic:             r.Topic,
		QuestionType:      domain.QuestionType(r.QuestionType),
		NumberOfQuestions: r.NumberOfQuestions,
		Difficulty:        domain.ParseDifficulty(r.Difficulty),
		Language:          domain.Language(r.Language),
		Category:          r.Category,
		Instructions:      r.Instructions,
	}
}

// RegenerateQuestionsRequest asks to replace specific questions of a quiz
// @Description Indices of the questions to replace and the reason why
type RegenerateQuestionsRequest struct {
	Indices  []int  `json:"indices"`
	Reason   string `json:"reason,omitempty"`
	Topic    string `json:"topic,omitempty"`
	Content  string `json:"content,omitempty"`
	Language string `json:"language,omitempty"`
}

func (r *RegenerateQuestionsRequest) Validate() domain.FieldErrors {
	var errs domain.FieldErrors
	if len(r.Indices) == 0 {
		errs = append(errs, domain.FieldError{
			Field:   "indices",
			Message: "at least one question index is required",
		})
	}
	return errs
}

// ToParameters converts the request into domain generation parameters.
// The question count is set by the service from the index list.
func (r *RegenerateQuestionsRequest) ToParameters() domain.GenerationParameters {
	return domain.GenerationParameters{
		Content:  r.Content,
		Topic:    r.Topic,
		Language: domain.Language(r.Language),
	}
}

// ImproveQuestionsRequest asks the model to revise a set of questions
type ImproveQuestionsRequest struct {
	Questions []domain.Question `json:"questions"`
	Targets   []string          `json:"targets,omitempty"`
	Issues    []string          `json:"issues,omitempty"`
	Language  string            `json:"language,omitempty"`
}

func (r *ImproveQuestionsRequest) Validate() domain.FieldErrors {
	var errs domain.FieldErrors
	if len(r.Questions) == 0 {
		errs = append(errs, domain.FieldError{
			Field:   "questions",
			Message: "at least one question is required",
		})
	}
	return errs
}

// CreateQuizRequest is the request body for manual quiz creation
type CreateQuizRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Category    string            `json:"category,omitempty"`
	Difficulty  string            `json:"difficulty,omitempty"`
	TimeLimit   *int              `json:"time_limit,omitempty"`
	IsPublic    bool              `json:"is_public"`
	Tags        []string          `json:"tags,omitempty"`
	FolderID    *int64            `json:"folder_id,omitempty"`
	Questions   []domain.Question `json:"questions"`
	Language    string            `json:"language,omitempty"`
}

// ToDomain converts the request into a domain quiz. Rule validation happens
// in the service; only shape conversion happens here.
func (r *CreateQuizRequest) ToDomain(userID string) *domain.Quiz {
	quiz := &domain.Quiz{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Difficulty:  domain.ParseDifficulty(r.Difficulty),
		TimeLimit:   r.TimeLimit,
		IsPublic:    r.IsPublic,
		Tags:        r.Tags,
		FolderID:    r.FolderID,
		UserID:      userID,
		Questions:   r.Questions,
	}
	quiz.Metadata.QuestionTypes = quiz.QuestionTypeCounts()
	return quiz
}

// UpdateQuizRequest is the request body for partial quiz updates.
// Absent fields are left untouched.
type UpdateQuizRequest struct {
	Title       *string           `json:"title,omitempty"`
	Description *string           `json:"description,omitempty"`
	Category    *string           `json:"category,omitempty"`
	Difficulty  *string           `json:"difficulty,omitempty"`
	Status      *string           `json:"status,omitempty"`
	TimeLimit   *int              `json:"time_limit,omitempty"`
	IsPublic    *bool             `json:"is_public,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	FolderID    *int64            `json:"folder_id,omitempty"`
	Questions   []domain.Question `json:"questions,omitempty"`
	Language    string            `json:"language,omitempty"`
}

// ToDomain converts the request into a domain partial update.
func (r *UpdateQuizRequest) ToDomain() *domain.QuizUpdate {
	update := &domain.QuizUpdate{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		TimeLimit:   r.TimeLimit,
		IsPublic:    r.IsPublic,
		Tags:        r.Tags,
		FolderID:    r.FolderID,
		Questions:   r.Questions,
	}
	if r.Difficulty != nil {
		d := domain.ParseDifficulty(*r.Difficulty)
		update.Difficulty = &d
	}
	if r.Status != nil {
		s := domain.QuizStatus(*r.Status)
		update.Status = &s
	}
	return update
}

// ValidateQuizRequest carries a quiz to validate without persisting it
type ValidateQuizRequest struct {
	Quiz     domain.Quiz `json:"quiz"`
	Language string      `json:"language,omitempty"`
}

// QuizResponse represents a quiz in the API response
// @Description Full quiz with questions and metadata
type QuizResponse struct {
	ID           string              `json:"id"`
	Title        string              `json:"title"`
	Description  string              `json:"description,omitempty"`
	Category     string              `json:"category,omitempty"`
	QuestionType string              `json:"question_type,omitempty"`
	Difficulty   string              `json:"difficulty,omitempty"`
	Status       string              `json:"status"`
	TimeLimit    *int                `json:"time_limit,omitempty"`
	IsPublic     bool                `json:"is_public"`
	Tags         []string            `json:"tags,omitempty"`
	FolderID     *int64              `json:"folder_id,omitempty"`
	UserID       string              `json:"user_id,omitempty"`
	Questions    []domain.Question   `json:"questions"`
	Metadata     domain.QuizMetadata `json:"metadata"`
	CreatedAt    time.Time           `json:"created_at,omitempty"`
	UpdatedAt    time.Time           `json:"updated_at,omitempty"`
}

// NewQuizResponse converts a domain quiz into its API representation.
func NewQuizResponse(quiz *domain.Quiz) QuizResponse {
	return QuizResponse{
		ID:           quiz.ID,
		Title:        quiz.Title,
		Description:  quiz.Description,
		Category:     quiz.Category,
		QuestionType: string(quiz.QuestionType),
		Difficulty:   string(quiz.Difficulty),
		Status:       string(quiz.Status),
		TimeLimit:    quiz.TimeLimit,
		IsPublic:     quiz.IsPublic,
		Tags:         quiz.Tags,
		FolderID:     quiz.FolderID,
		UserID:       quiz.UserID,
		Questions:    quiz.Questions,
		Metadata:     quiz.Metadata,
		CreatedAt:    quiz.CreatedAt,
		UpdatedAt:    quiz.UpdatedAt,
	}
}

// NewQuizListResponse converts a slice of domain quizzes.
func NewQuizListResponse(quizzes []*domain.Quiz) []QuizResponse {
	out := make([]QuizResponse, 0, len(quizzes))
	for _, quiz := range quizzes {
		out = append(out, NewQuizResponse(quiz))
	}
	return out
}

// GeneratedQuizResponse pairs a freshly generated quiz with its quality report
type GeneratedQuizResponse struct {
	Quiz    QuizResponse          `json:"quiz"`
	Quality QualityReportResponse `json:"quality"`
}

// ValidationResultResponse represents a validation outcome in the API response
type ValidationResultResponse struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

// NewValidationResultResponse converts a domain validation result.
func NewValidationResultResponse(result domain.ValidationResult) ValidationResultResponse {
	errs := result.Errors
	if errs == nil {
		errs = []string{}
	}
	return ValidationResultResponse{IsValid: result.IsValid, Errors: errs}
}

// QualityReportResponse represents the advisory quality assessment
type QualityReportResponse struct {
	QualityScore int                     `json:"quality_score"`
	QualityLevel string                  `json:"quality_level"`
	Issues       []string                `json:"issues"`
	Suggestions  []string                `json:"suggestions"`
	Analytics    domain.QualityAnalytics `json:"analytics"`
}

// NewQualityReportResponse converts a domain quality report.
func NewQualityReportResponse(report domain.QualityReport) QualityReportResponse {
	issues := report.Issues
	if issues == nil {
		issues = []string{}
	}
	suggestions := report.Suggestions
	if suggestions == nil {
		suggestions = []string{}
	}
	return QualityReportResponse{
		QualityScore: report.QualityScore,
		QualityLevel: string(report.QualityLevel),
		Issues:       issues,
		Suggestions:  suggestions,
		Analytics:    report.Analytics,
	}
}

// PublicationCheckResponse represents the publication gate outcome
type PublicationCheckResponse struct {
	IsReadyForPublication bool                            `json:"is_ready_for_publication"`
	Errors                []string                        `json:"errors"`
	Requirements          []domain.PublicationRequirement `json:"requirements"`
}

// NewPublicationCheckResponse converts a domain publication check.
func NewPublicationCheckResponse(check domain.PublicationCheck) PublicationCheckResponse {
	errs := check.Errors
	if errs == nil {
		errs = []string{}
	}
	return PublicationCheckResponse{
		IsReadyForPublication: check.IsReadyForPublication,
		Errors:                errs,
		Requirements:          check.Requirements,
	}
}

// QuestionsResponse wraps a revised question list
type QuestionsResponse struct {
	Questions []domain.Question `json:"questions"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
