package service_test

import (
	"context"
	"errors"
	"testing"

	"quizforge/internal/config"
	"quizforge/internal/domain"
	"quizforge/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedQuiz() *domain.Quiz {
	timeLimit := 30
	return &domain.Quiz{
		ID:          "quiz-1",
		Title:       "Solar System Basics",
		Description: "A quiz about the planets of our solar system.",
		Category:    "science",
		Difficulty:  domain.DifficultyMedium,
		Status:      domain.StatusDraft,
		UserID:      "user-a",
		TimeLimit:   &timeLimit,
		Questions: []domain.Question{
			{
				Type:          domain.QuestionMultipleChoice,
				Text:          "Which planet is known as the Red Planet?",
				Options:       []string{"Venus", "Mars", "Jupiter", "Saturn"},
				CorrectOption: 1,
				Explanation:   "Iron oxide colors the surface of Mars.",
			},
			{
				Type:        domain.QuestionTrueFalse,
				Text:        "The Sun is a star.",
				CorrectBool: true,
				Explanation: "The Sun is a main-sequence star.",
			},
		},
	}
}

func TestCreateQuizDefaultsToDraft(t *testing.T) {
	var saved *domain.Quiz
	repo := &mockQuizRepo{
		SaveQuizFunc: func(_ context.Context, quiz *domain.Quiz) error {
			quiz.ID = "quiz-1"
			saved = quiz
			return nil
		},
	}
	svc := service.NewQuizService(repo, newMockCache(), config.DefaultValidation())

	quiz := storedQuiz()
	quiz.ID = ""
	quiz.Status = ""
	created, err := svc.CreateQuiz(context.Background(), quiz, "en")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusDraft, created.Status)
	require.NotNil(t, saved)
	assert.Equal(t, "quiz-1", created.ID)
}

func TestCreateQuizValidationFailure(t *testing.T) {
	saveCalled := false
	repo := &mockQuizRepo{
		SaveQuizFunc: func(_ context.Context, _ *domain.Quiz) error {
			saveCalled = true
			return nil
		},
	}
	svc := service.NewQuizService(repo, newMockCache(), config.DefaultValidation())

	quiz := storedQuiz()
	quiz.Title = "ab"
	_, err := svc.CreateQuiz(context.Background(), quiz, "en")
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeValidation, domainErr.Code)
	assert.False(t, saveCalled)
}

func TestGetQuizNotFound(t *testing.T) {
	svc := service.NewQuizService(&mockQuizRepo{}, newMockCache(), config.DefaultValidation())

	_, err := svc.GetQuiz(context.Background(), "missing")
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeQuizNotFound, domainErr.Code)
}

func TestGetQuizCacheAside(t *testing.T) {
	repoCalls := 0
	repo := &mockQuizRepo{
		GetQuizByIDFunc: func(_ context.Context, _ string) (*domain.Quiz, error) {
			repoCalls++
			return storedQuiz(), nil
		},
	}
	svc := service.NewQuizService(repo, newMockCache(), config.DefaultValidation())

	first, err := svc.GetQuiz(context.Background(), "quiz-1")
	require.NoError(t, err)

	// The second read is served from the cache.
	second, err := svc.GetQuiz(context.Background(), "quiz-1")
	require.NoError(t, err)

	assert.Equal(t, 1, repoCalls)
	assert.Equal(t, first.Title, second.Title)
	assert.Len(t, second.Questions, 2)
}

func TestGetQuizWorksWithoutCache(t *testing.T) {
	repo := &mockQuizRepo{
		GetQuizByIDFunc: func(_ context.Context, _ string) (*domain.Quiz, error) {
			return storedQuiz(), nil
		},
	}
	svc := service.NewQuizService(repo, nil, config.DefaultValidation())

	quiz, err := svc.GetQuiz(context.Background(), "quiz-1")
	require.NoError(t, err)
	assert.Equal(t, "Solar System Basics", quiz.Title)
}

func TestUpdateQuizAppliesPartialChanges(t *testing.T) {
	var updated *domain.Quiz
	repo := &mockQuizRepo{
		GetQuizByIDFunc: func(_ context.Context, _ string) (*domain.Quiz, error) {
			return storedQuiz(), nil
		},
		UpdateQuizFunc: func(_ context.Context, quiz *domain.Quiz) error {
			updated = quiz
			return nil
		},
	}
	svc := service.NewQuizService(repo, newMockCache(), config.DefaultValidation())

	title := "Planets and Moons"
	isPublic := false
	quiz, err := svc.UpdateQuiz(context.Background(), "quiz-1", &domain.QuizUpdate{
		Title:    &title,
		IsPublic: &isPublic,
	}, "en")
	require.NoError(t, err)

	assert.Equal(t, "Planets and Moons", quiz.Title)
	assert.Equal(t, "A quiz about the planets of our solar system.", quiz.Description, "absent fields stay untouched")
	require.NotNil(t, updated)
}

func TestUpdateQuizRejectsInvalidFields(t *testing.T) {
	repo := &mockQuizRepo{
		GetQuizByIDFunc: func(_ context.Context, _ string) (*domain.Quiz, error) {
			return storedQuiz(), nil
		},
	}
	svc := service.NewQuizService(repo, newMockCache(), config.DefaultValidation())

	title := "ab"
	_, err := svc.UpdateQuiz(context.Background(), "quiz-1", &domain.QuizUpdate{Title: &title}, "en")
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeValidation, domainErr.Code)
}

func TestUpdateQuizInvalidatesCache(t *testing.T) {
	repo := &mockQuizRepo{
		GetQuizByIDFunc: func(_ context.Context, _ string) (*domain.Quiz, error) {
			return storedQuiz(), nil
		},
	}
	cache := newMockCache()
	svc := service.NewQuizService(repo, cache, config.DefaultValidation())

	// Prime the cache, then update.
	_, err := svc.GetQuiz(context.Background(), "quiz-1")
	require.NoError(t, err)

	title := "Planets and Moons"
	_, err = svc.UpdateQuiz(context.Background(), "quiz-1", &domain.QuizUpdate{Title: &title}, "en")
	require.NoError(t, err)

	assert.Empty(t, cache.entries, "the stale entry is dropped on update")
}

func TestDeleteQuizInvalidatesCache(t *testing.T) {
	deleted := ""
	repo := &mockQuizRepo{
		GetQuizByIDFunc: func(_ context.Context, _ string) (*domain.Quiz, error) {
			return storedQuiz(), nil
		},
		DeleteQuizFunc: func(_ context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	cache := newMockCache()
	svc := service.NewQuizService(repo, cache, config.DefaultValidation())

	_, err := svc.GetQuiz(context.Background(), "quiz-1")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteQuiz(context.Background(), "quiz-1"))
	assert.Equal(t, "quiz-1", deleted)
	assert.Empty(t, cache.entries)
}

func TestValidateQuizIsSideEffectFree(t *testing.T) {
	svc := service.NewQuizService(&mockQuizRepo{}, newMockCache(), config.DefaultValidation())

	quiz := storedQuiz()
	quiz.Title = ""
	result := svc.ValidateQuiz(quiz, "en")

	assert.False(t, result.IsValid)
	assert.NotEmpty(t, result.Errors)
}

func TestGetQualityReportForStoredQuiz(t *testing.T) {
	repo := &mockQuizRepo{
		GetQuizByIDFunc: func(_ context.Context, _ string) (*domain.Quiz, error) {
			return storedQuiz(), nil
		},
	}
	svc := service.NewQuizService(repo, newMockCache(), config.DefaultValidation())

	report, err := svc.GetQualityReport(context.Background(), "quiz-1", "en")
	require.NoError(t, err)
	assert.Greater(t, report.QualityScore, 0)
	assert.NotEmpty(t, report.QualityLevel)
}

func TestPublishQuizGateFailure(t *testing.T) {
	quiz := storedQuiz()
	quiz.Description = "short"
	updateCalled := false
	repo := &mockQuizRepo{
		GetQuizByIDFunc: func(_ context.Context, _ string) (*domain.Quiz, error) {
			return quiz, nil
		},
		UpdateQuizFunc: func(_ context.Context, _ *domain.Quiz) error {
			updateCalled = true
			return nil
		},
	}
	svc := service.NewQuizService(repo, newMockCache(), config.DefaultValidation())

	_, err := svc.PublishQuiz(context.Background(), "quiz-1", "en")
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeBusinessRule, domainErr.Code)
	assert.False(t, updateCalled, "a quiz failing the gate is never published")
}

func TestPublishQuizSuccess(t *testing.T) {
	quiz := storedQuiz()
	quiz.Questions = append(quiz.Questions, domain.Question{
		Type:        domain.QuestionEssay,
		Text:        "Describe the asteroid belt.",
		Explanation: "Open ended, graded by rubric.",
	})
	var updated *domain.Quiz
	repo := &mockQuizRepo{
		GetQuizByIDFunc: func(_ context.Context, _ string) (*domain.Quiz, error) {
			return quiz, nil
		},
		UpdateQuizFunc: func(_ context.Context, q *domain.Quiz) error {
			updated = q
			return nil
		},
	}
	svc := service.NewQuizService(repo, newMockCache(), config.DefaultValidation())

	published, err := svc.PublishQuiz(context.Background(), "quiz-1", "en")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPublished, published.Status)
	require.NotNil(t, updated)
	assert.Equal(t, domain.StatusPublished, updated.Status)
}

func TestCheckPublicationForStoredQuiz(t *testing.T) {
	quiz := storedQuiz()
	quiz.TimeLimit = nil
	repo := &mockQuizRepo{
		GetQuizByIDFunc: func(_ context.Context, _ string) (*domain.Quiz, error) {
			return quiz, nil
		},
	}
	svc := service.NewQuizService(repo, newMockCache(), config.DefaultValidation())

	check, err := svc.CheckPublication(context.Background(), "quiz-1", "en")
	require.NoError(t, err)
	assert.False(t, check.IsReadyForPublication)
	assert.NotEmpty(t, check.Errors)
}

func TestListUserQuizzes(t *testing.T) {
	repo := &mockQuizRepo{
		GetQuizzesByUserFunc: func(_ context.Context, userID string) ([]*domain.Quiz, error) {
			require.Equal(t, "user-a", userID)
			return []*domain.Quiz{storedQuiz()}, nil
		},
	}
	svc := service.NewQuizService(repo, newMockCache(), config.DefaultValidation())

	quizzes, err := svc.ListUserQuizzes(context.Background(), "user-a")
	require.NoError(t, err)
	require.Len(t, quizzes, 1)
	assert.Equal(t, "quiz-1", quizzes[0].ID)
}
