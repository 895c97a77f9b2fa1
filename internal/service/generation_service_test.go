package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"quizforge/internal/config"
	"quizforge/internal/domain"
	"quizforge/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Manual Mocks ---

type mockGenerator struct {
	mu       sync.Mutex
	response string
	err      error
	calls    int
	prompts  []string
}

func (m *mockGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.prompts = append(m.prompts, prompt)
	return m.response, m.err
}

type mockCache struct {
	mu      sync.Mutex
	entries map[string]string
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string]string)}
}

func (m *mockCache) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.entries[key]; ok {
		return v, nil
	}
	return "", domain.ErrCacheMiss
}

func (m *mockCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

func (m *mockCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *mockCache) Ping(_ context.Context) error { return nil }

type mockQuizRepo struct {
	SaveQuizFunc         func(ctx context.Context, quiz *domain.Quiz) error
	GetQuizByIDFunc      func(ctx context.Context, id string) (*domain.Quiz, error)
	GetQuizzesByUserFunc func(ctx context.Context, userID string) ([]*domain.Quiz, error)
	UpdateQuizFunc       func(ctx context.Context, quiz *domain.Quiz) error
	DeleteQuizFunc       func(ctx context.Context, id string) error
}

func (m *mockQuizRepo) SaveQuiz(ctx context.Context, quiz *domain.Quiz) error {
	if m.SaveQuizFunc != nil {
		return m.SaveQuizFunc(ctx, quiz)
	}
	quiz.ID = "01HZXC5T7N3V9K2M4P6Q8R0S1T"
	return nil
}

func (m *mockQuizRepo) GetQuizByID(ctx context.Context, id string) (*domain.Quiz, error) {
	if m.GetQuizByIDFunc != nil {
		return m.GetQuizByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockQuizRepo) GetQuizzesByUser(ctx context.Context, userID string) ([]*domain.Quiz, error) {
	if m.GetQuizzesByUserFunc != nil {
		return m.GetQuizzesByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockQuizRepo) UpdateQuiz(ctx context.Context, quiz *domain.Quiz) error {
	if m.UpdateQuizFunc != nil {
		return m.UpdateQuizFunc(ctx, quiz)
	}
	return nil
}

func (m *mockQuizRepo) DeleteQuiz(ctx context.Context, id string) error {
	if m.DeleteQuizFunc != nil {
		return m.DeleteQuizFunc(ctx, id)
	}
	return nil
}

const generatedQuizJSON = `{
	"title": "Solar System",
	"description": "A quiz about the planets and the Sun, written for beginners.",
	"questions": [
		{
			"question": "Which planet is known as the Red Planet?",
			"type": "multiple_choice",
			"options": ["Venus", "Mars", "Jupiter", "Saturn"],
			"correctAnswer": 1,
			"explanation": "Iron oxide colors the surface of Mars.",
			"points": 1
		},
		{
			"question": "The Sun is a star.",
			"type": "true_false",
			"correctAnswer": true,
			"explanation": "The Sun is a main-sequence star.",
			"points": 1
		}
	]
}`

func generationParams() domain.GenerationParameters {
	return domain.GenerationParameters{
		Topic:             "Solar System",
		QuestionType:      domain.QuestionMultipleChoice,
		NumberOfQuestions: 2,
		Difficulty:        domain.DifficultyMedium,
		Language:          domain.LanguageEnglish,
		Category:          "science",
	}
}

func TestGenerateQuizHappyPath(t *testing.T) {
	gen := &mockGenerator{response: generatedQuizJSON}
	var saved *domain.Quiz
	repo := &mockQuizRepo{
		SaveQuizFunc: func(_ context.Context, quiz *domain.Quiz) error {
			quiz.ID = "quiz-1"
			saved = quiz
			return nil
		},
	}
	svc := service.NewGenerationService(gen, config.DefaultValidation(), repo, newMockCache())

	quiz, report, err := svc.GenerateQuiz(context.Background(), generationParams(), "user-42")
	require.NoError(t, err)

	assert.Equal(t, "quiz-1", quiz.ID)
	assert.Equal(t, "user-42", quiz.UserID)
	assert.Equal(t, domain.StatusDraft, quiz.Status)
	assert.Equal(t, "science", quiz.Category)
	assert.Len(t, quiz.Questions, 2)
	assert.True(t, quiz.Metadata.AIGenerated)

	require.NotNil(t, saved)
	assert.Greater(t, report.QualityScore, 0)
	assert.Equal(t, 1, gen.calls)
}

func TestGenerateQuizUsesCachedCandidate(t *testing.T) {
	gen := &mockGenerator{response: generatedQuizJSON}
	repo := &mockQuizRepo{}
	cache := newMockCache()
	svc := service.NewGenerationService(gen, config.DefaultValidation(), repo, cache)

	_, _, err := svc.GenerateQuiz(context.Background(), generationParams(), "user-a")
	require.NoError(t, err)
	require.Equal(t, 1, gen.calls)

	// Identical parameters hit the candidate cache; the model is not called again.
	quiz, _, err := svc.GenerateQuiz(context.Background(), generationParams(), "user-b")
	require.NoError(t, err)
	assert.Equal(t, 1, gen.calls)

	// Ownership is stamped per request, never shared through the cache.
	assert.Equal(t, "user-b", quiz.UserID)
}

func TestGenerateQuizDifferentParamsMissCache(t *testing.T) {
	gen := &mockGenerator{response: generatedQuizJSON}
	svc := service.NewGenerationService(gen, config.DefaultValidation(), &mockQuizRepo{}, newMockCache())

	_, _, err := svc.GenerateQuiz(context.Background(), generationParams(), "user-a")
	require.NoError(t, err)

	params := generationParams()
	params.NumberOfQuestions = 10
	_, _, err = svc.GenerateQuiz(context.Background(), params, "user-a")
	require.NoError(t, err)

	assert.Equal(t, 2, gen.calls)
}

func TestGenerateQuizLLMFailure(t *testing.T) {
	gen := &mockGenerator{err: domain.NewLLMServiceError(errors.New("connection refused"))}
	svc := service.NewGenerationService(gen, config.DefaultValidation(), &mockQuizRepo{}, newMockCache())

	_, _, err := svc.GenerateQuiz(context.Background(), generationParams(), "user-a")
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeLLMService, domainErr.Code)
}

func TestGenerateQuizValidationFailure(t *testing.T) {
	// Parseable reply whose title is below the validator's minimum length.
	gen := &mockGenerator{response: `{"title": "ab", "questions": [{"question": "q", "type": "essay"}]}`}
	saveCalled := false
	repo := &mockQuizRepo{
		SaveQuizFunc: func(_ context.Context, _ *domain.Quiz) error {
			saveCalled = true
			return nil
		},
	}
	svc := service.NewGenerationService(gen, config.DefaultValidation(), repo, newMockCache())

	_, _, err := svc.GenerateQuiz(context.Background(), generationParams(), "user-a")
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeValidation, domainErr.Code)
	assert.False(t, saveCalled, "invalid quizzes are never persisted")
}

func TestGenerateQuizRejectedCandidateNotServedFromCache(t *testing.T) {
	// Parseable reply that the validator rejects: duplicate questions.
	gen := &mockGenerator{response: `{
		"title": "Solar System",
		"questions": [
			{"question": "Describe the Sun.", "type": "essay"},
			{"question": "describe the sun.", "type": "essay"}
		]
	}`}
	cache := newMockCache()
	svc := service.NewGenerationService(gen, config.DefaultValidation(), &mockQuizRepo{}, cache)

	_, _, err := svc.GenerateQuiz(context.Background(), generationParams(), "user-a")
	require.Error(t, err)
	assert.Empty(t, cache.entries, "a rejected candidate is dropped from the cache")

	// A retry with the same parameters reaches the model again instead of
	// replaying the rejected candidate for the rest of its TTL.
	_, _, err = svc.GenerateQuiz(context.Background(), generationParams(), "user-a")
	require.Error(t, err)
	assert.Equal(t, 2, gen.calls)
}

func TestGenerateQuizParseFailure(t *testing.T) {
	gen := &mockGenerator{response: "sorry, no quiz today"}
	svc := service.NewGenerationService(gen, config.DefaultValidation(), &mockQuizRepo{}, newMockCache())

	_, _, err := svc.GenerateQuiz(context.Background(), generationParams(), "user-a")
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeParseFailure, domainErr.Code)
}

func TestRegenerateQuestions(t *testing.T) {
	stored := &domain.Quiz{
		ID:          "quiz-1",
		Title:       "Solar System",
		Description: "A quiz about the planets.",
		UserID:      "user-a",
		Status:      domain.StatusDraft,
		Questions: []domain.Question{
			{Type: domain.QuestionEssay, Text: "Describe the Sun."},
			{Type: domain.QuestionEssay, Text: "Describe the Moon."},
		},
	}
	gen := &mockGenerator{response: `[{"question": "Explain solar wind.", "type": "essay", "rubric": "Mention charged particles."}]`}
	updated := false
	repo := &mockQuizRepo{
		GetQuizByIDFunc: func(_ context.Context, id string) (*domain.Quiz, error) {
			require.Equal(t, "quiz-1", id)
			return stored, nil
		},
		UpdateQuizFunc: func(_ context.Context, quiz *domain.Quiz) error {
			updated = true
			return nil
		},
	}
	svc := service.NewGenerationService(gen, config.DefaultValidation(), repo, newMockCache())

	quiz, err := svc.RegenerateQuestions(context.Background(), "quiz-1", []int{1}, "too easy", generationParams())
	require.NoError(t, err)

	assert.True(t, updated)
	assert.Equal(t, "Explain solar wind.", quiz.Questions[1].Text)
	assert.Equal(t, "Describe the Sun.", quiz.Questions[0].Text, "untouched questions stay in place")
}

func TestRegenerateQuestionsIndexOutOfRange(t *testing.T) {
	repo := &mockQuizRepo{
		GetQuizByIDFunc: func(_ context.Context, _ string) (*domain.Quiz, error) {
			return &domain.Quiz{ID: "quiz-1", Questions: []domain.Question{{Type: domain.QuestionEssay, Text: "q"}}}, nil
		},
	}
	svc := service.NewGenerationService(&mockGenerator{}, config.DefaultValidation(), repo, newMockCache())

	_, err := svc.RegenerateQuestions(context.Background(), "quiz-1", []int{3}, "", generationParams())
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeInvalidInput, domainErr.Code)
}

func TestRegenerateQuestionsQuizNotFound(t *testing.T) {
	svc := service.NewGenerationService(&mockGenerator{}, config.DefaultValidation(), &mockQuizRepo{}, newMockCache())

	_, err := svc.RegenerateQuestions(context.Background(), "missing", []int{0}, "", generationParams())
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeQuizNotFound, domainErr.Code)
}

func TestImproveQuestions(t *testing.T) {
	gen := &mockGenerator{response: `[{"question": "What is the precise boiling point of water at sea level?", "type": "short_answer", "correctAnswers": ["100 C"]}]`}
	svc := service.NewGenerationService(gen, config.DefaultValidation(), &mockQuizRepo{}, newMockCache())

	questions := []domain.Question{{Type: domain.QuestionShortAnswer, Text: "Boiling point of water?"}}
	improved, err := svc.ImproveQuestions(context.Background(), questions, nil, nil, generationParams())
	require.NoError(t, err)

	require.Len(t, improved, 1)
	assert.Contains(t, improved[0].Text, "precise boiling point")
}

func TestImproveQuestionsRequiresInput(t *testing.T) {
	svc := service.NewGenerationService(&mockGenerator{}, config.DefaultValidation(), &mockQuizRepo{}, newMockCache())

	_, err := svc.ImproveQuestions(context.Background(), nil, nil, nil, generationParams())
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeInvalidInput, domainErr.Code)
}
