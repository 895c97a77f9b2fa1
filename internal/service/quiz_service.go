package service

import (
	"context"
	"encoding/json"
	"time"

	"quizforge/internal/cache"
	"quizforge/internal/config"
	"quizforge/internal/domain"
	"quizforge/internal/logger"
	"quizforge/internal/validator"

	"go.uber.org/zap"
)

const quizCacheTTL = 10 * time.Minute

// QuizService covers the storage-facing quiz operations. The same validator
// gates both direct API input and AI-generated candidates.
type QuizService interface {
	CreateQuiz(ctx context.Context, quiz *domain.Quiz, locale string) (*domain.Quiz, error)
	GetQuiz(ctx context.Context, id string) (*domain.Quiz, error)
	ListUserQuizzes(ctx context.Context, userID string) ([]*domain.Quiz, error)
	UpdateQuiz(ctx context.Context, id string, update *domain.QuizUpdate, locale string) (*domain.Quiz, error)
	DeleteQuiz(ctx context.Context, id string) error

	// ValidateQuiz runs full validation without persisting anything.
	ValidateQuiz(quiz *domain.Quiz, locale string) domain.ValidationResult

	// GetQualityReport computes the advisory quality report for a stored quiz.
	GetQualityReport(ctx context.Context, id string, locale string) (domain.QualityReport, error)

	// CheckPublication reports whether a stored quiz meets the publication gate.
	CheckPublication(ctx context.Context, id string, locale string) (domain.PublicationCheck, error)

	// PublishQuiz flips a quiz to published after the publication gate passes.
	PublishQuiz(ctx context.Context, id string, locale string) (*domain.Quiz, error)
}

type quizService struct {
	repo   domain.QuizRepository
	cache  domain.Cache
	valCfg config.ValidationConfig
}

// NewQuizService creates the storage-facing quiz service.
func NewQuizService(repo domain.QuizRepository, cacheClient domain.Cache, valCfg config.ValidationConfig) QuizService {
	return &quizService{repo: repo, cache: cacheClient, valCfg: valCfg}
}

func (s *quizService) CreateQuiz(ctx context.Context, quiz *domain.Quiz, locale string) (*domain.Quiz, error) {
	if quiz.Status == "" {
		quiz.Status = domain.StatusDraft
	}

	v := validator.New(s.valCfg, locale)
	if result := v.ValidateQuizData(quiz); !result.IsValid {
		return nil, domain.NewQuizValidationError(result)
	}

	if err := s.repo.SaveQuiz(ctx, quiz); err != nil {
		return nil, domain.NewInternalError("failed to save quiz", err)
	}
	return quiz, nil
}

func (s *quizService) GetQuiz(ctx context.Context, id string) (*domain.Quiz, error) {
	key := cache.GenerateCacheKey(cache.ServiceQuiz, "id", id)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil {
			var quiz domain.Quiz
			if err := json.Unmarshal([]byte(cached), &quiz); err == nil {
				return &quiz, nil
			}
		}
	}

	quiz, err := s.repo.GetQuizByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("failed to load quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(id)
	}

	if s.cache != nil {
		if encoded, err := json.Marshal(quiz); err == nil {
			if err := s.cache.Set(ctx, key, string(encoded), quizCacheTTL); err != nil {
				logger.Get().Warn("Failed to cache quiz", zap.String("quiz_id", id), zap.Error(err))
			}
		}
	}
	return quiz, nil
}

func (s *quizService) ListUserQuizzes(ctx context.Context, userID string) ([]*domain.Quiz, error) {
	quizzes, err := s.repo.GetQuizzesByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list quizzes", err)
	}
	return quizzes, nil
}

func (s *quizService) UpdateQuiz(ctx context.Context, id string, update *domain.QuizUpdate, locale string) (*domain.Quiz, error) {
	v := validator.New(s.valCfg, locale)
	if result := v.ValidateUpdateData(update); !result.IsValid {
		return nil, domain.NewQuizValidationError(result)
	}

	quiz, err := s.repo.GetQuizByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("failed to load quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(id)
	}

	applyUpdate(quiz, update)

	// The merged quiz must still satisfy the full rule set, business rules
	// included, before it replaces the stored row.
	if result := v.ValidateQuizData(quiz); !result.IsValid {
		return nil, domain.NewQuizValidationError(result)
	}

	if err := s.repo.UpdateQuiz(ctx, quiz); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return quiz, nil
}

func (s *quizService) DeleteQuiz(ctx context.Context, id string) error {
	if err := s.repo.DeleteQuiz(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *quizService) ValidateQuiz(quiz *domain.Quiz, locale string) domain.ValidationResult {
	return validator.New(s.valCfg, locale).ValidateQuizData(quiz)
}

func (s *quizService) GetQualityReport(ctx context.Context, id string, locale string) (domain.QualityReport, error) {
	quiz, err := s.GetQuiz(ctx, id)
	if err != nil {
		return domain.QualityReport{}, err
	}
	return validator.New(s.valCfg, locale).ValidateQuizQuality(quiz), nil
}

func (s *quizService) CheckPublication(ctx context.Context, id string, locale string) (domain.PublicationCheck, error) {
	quiz, err := s.GetQuiz(ctx, id)
	if err != nil {
		return domain.PublicationCheck{}, err
	}
	return validator.New(s.valCfg, locale).ValidateForPublication(quiz), nil
}

func (s *quizService) PublishQuiz(ctx context.Context, id string, locale string) (*domain.Quiz, error) {
	quiz, err := s.GetQuiz(ctx, id)
	if err != nil {
		return nil, err
	}

	v := validator.New(s.valCfg, locale)
	check := v.ValidateForPublication(quiz)
	if !check.IsReadyForPublication {
		result := domain.NewValidationResult()
		for _, msg := range check.Errors {
			result.AddError(msg)
		}
		return nil, domain.NewBusinessRuleError(result)
	}

	quiz.Status = domain.StatusPublished
	if err := s.repo.UpdateQuiz(ctx, quiz); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)

	logger.Get().Info("Quiz published", zap.String("quiz_id", id))
	return quiz, nil
}

func (s *quizService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	key := cache.GenerateCacheKey(cache.ServiceQuiz, "id", id)
	if err := s.cache.Delete(ctx, key); err != nil {
		logger.Get().Warn("Failed to invalidate quiz cache", zap.String("quiz_id", id), zap.Error(err))
	}
}

func applyUpdate(quiz *domain.Quiz, update *domain.QuizUpdate) {
	if update.Title != nil {
		quiz.Title = *update.Title
	}
	if update.Description != nil {
		quiz.Description = *update.Description
	}
	if update.Category != nil {
		quiz.Category = *update.Category
	}
	if update.Difficulty != nil {
		quiz.Difficulty = *update.Difficulty
	}
	if update.Status != nil {
		quiz.Status = *update.Status
	}
	if update.TimeLimit != nil {
		quiz.TimeLimit = update.TimeLimit
	}
	if update.IsPublic != nil {
		quiz.IsPublic = *update.IsPublic
	}
	if update.Tags != nil {
		quiz.Tags = update.Tags
	}
	if update.FolderID != nil {
		quiz.FolderID = update.FolderID
	}
	if update.Questions != nil {
		quiz.Questions = update.Questions
		quiz.Metadata.QuestionTypes = quiz.QuestionTypeCounts()
	}
}
