package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"quizforge/internal/cache"
	"quizforge/internal/config"
	"quizforge/internal/domain"
	"quizforge/internal/genai/parser"
	"quizforge/internal/genai/prompt"
	"quizforge/internal/logger"
	"quizforge/internal/validator"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const candidateCacheTTL = time.Hour

// GenerationService runs the full generation pipeline: prompt rendering, the
// LLM call, response parsing, validation, quality scoring and persistence.
type GenerationService interface {
	// GenerateQuiz produces, validates and stores a new quiz for the user.
	GenerateQuiz(ctx context.Context, params domain.GenerationParameters, userID string) (*domain.Quiz, domain.QualityReport, error)

	// RegenerateQuestions replaces the questions at the given indices of an
	// existing quiz with freshly generated ones.
	RegenerateQuestions(ctx context.Context, quizID string, indices []int, reason string, params domain.GenerationParameters) (*domain.Quiz, error)

	// ImproveQuestions asks the model to revise the given questions along
	// the requested aspects, validating the revised set before returning it.
	ImproveQuestions(ctx context.Context, questions []domain.Question, targets []prompt.ImprovementType, issues []string, params domain.GenerationParameters) ([]domain.Question, error)
}

type generationService struct {
	generator domain.TextGenerator
	prompts   *prompt.Builder
	parser    *parser.Parser
	valCfg    config.ValidationConfig
	quizRepo  domain.QuizRepository
	cache     domain.Cache
	group     singleflight.Group
}

// NewGenerationService wires the pipeline components together.
func NewGenerationService(
	generator domain.TextGenerator,
	valCfg config.ValidationConfig,
	quizRepo domain.QuizRepository,
	cacheClient domain.Cache,
) GenerationService {
	return &generationService{
		generator: generator,
		prompts:   prompt.NewBuilder(),
		parser:    parser.NewParser(),
		valCfg:    valCfg,
		quizRepo:  quizRepo,
		cache:     cacheClient,
	}
}

func (s *generationService) GenerateQuiz(ctx context.Context, params domain.GenerationParameters, userID string) (*domain.Quiz, domain.QualityReport, error) {
	candidate, err := s.obtainCandidate(ctx, params)
	if err != nil {
		return nil, domain.QualityReport{}, err
	}

	// The candidate may come from the cache and be shared between users;
	// ownership and request-scoped fields are stamped per invocation.
	candidate.UserID = userID
	candidate.Status = domain.StatusDraft
	candidate.Category = params.Category
	candidate.Difficulty = params.Difficulty
	candidate.QuestionType = params.QuestionType

	v := validator.New(s.valCfg, string(params.Language))
	if result := v.ValidateQuizData(candidate); !result.IsValid {
		logger.Get().Warn("Generated quiz failed validation",
			zap.Int("error_count", len(result.Errors)))
		// An invalid candidate must not be served to retries of the same
		// parameters; dropping it makes the retry issue a fresh LLM call.
		s.dropCandidate(ctx, params)
		return nil, domain.QualityReport{}, domain.NewQuizValidationError(result)
	}

	report := v.ValidateQuizQuality(candidate)

	if err := s.quizRepo.SaveQuiz(ctx, candidate); err != nil {
		return nil, domain.QualityReport{}, domain.NewInternalError("failed to persist generated quiz", err)
	}

	logger.Get().Info("Generated quiz accepted",
		zap.String("quiz_id", candidate.ID),
		zap.String("user_id", userID),
		zap.Int("questions", len(candidate.Questions)),
		zap.Int("quality_score", report.QualityScore))

	return candidate, report, nil
}

// obtainCandidate returns a parsed, unowned quiz candidate for the given
// parameters, consulting the cache first. Identical concurrent requests are
// collapsed onto a single LLM call; prompts are deterministic for identical
// parameters, which is what makes both the cache and the collapse sound.
func (s *generationService) obtainCandidate(ctx context.Context, params domain.GenerationParameters) (*domain.Quiz, error) {
	key := cache.GenerationParamsKey(params)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil {
			var quiz domain.Quiz
			if err := json.Unmarshal([]byte(cached), &quiz); err == nil {
				logger.Get().Debug("Generation cache hit", zap.String("key", key))
				return &quiz, nil
			}
			// A corrupt entry is dropped and regenerated.
			_ = s.cache.Delete(ctx, key)
		}
	}

	result, err, _ := s.group.Do(key, func() (interface{}, error) {
		promptText := s.prompts.BuildQuizPrompt(params)
		raw, err := s.generator.GenerateText(ctx, promptText)
		if err != nil {
			return nil, err
		}
		return s.parser.ParseQuizResponse(raw)
	})
	if err != nil {
		return nil, err
	}
	shared := result.(*domain.Quiz)

	// Each caller gets its own copy; the singleflight result is shared.
	clone := *shared
	clone.Questions = append([]domain.Question(nil), shared.Questions...)

	if s.cache != nil {
		if encoded, err := json.Marshal(&clone); err == nil {
			if err := s.cache.Set(ctx, key, string(encoded), candidateCacheTTL); err != nil {
				logger.Get().Warn("Failed to cache generated candidate", zap.Error(err))
			}
		}
	}

	return &clone, nil
}

func (s *generationService) RegenerateQuestions(ctx context.Context, quizID string, indices []int, reason string, params domain.GenerationParameters) (*domain.Quiz, error) {
	quiz, err := s.quizRepo.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(quizID)
	}

	toReplace := make([]domain.Question, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(quiz.Questions) {
			return nil, domain.NewInvalidInputError(fmt.Sprintf("question index %d is out of range", idx))
		}
		toReplace = append(toReplace, quiz.Questions[idx])
	}
	if len(toReplace) == 0 {
		return nil, domain.NewInvalidInputError("no questions selected for regeneration")
	}

	params.NumberOfQuestions = len(toReplace)
	promptText := s.prompts.BuildRegenerationPrompt(quiz, toReplace, reason, params)

	raw, err := s.generator.GenerateText(ctx, promptText)
	if err != nil {
		return nil, err
	}
	replacements, err := s.parser.ParseQuestionsResponse(raw)
	if err != nil {
		return nil, err
	}
	if len(replacements) < len(indices) {
		return nil, domain.NewInvalidInputError(fmt.Sprintf(
			"model returned %d questions, %d required", len(replacements), len(indices)))
	}

	for i, idx := range indices {
		quiz.Questions[idx] = replacements[i]
	}
	quiz.Metadata.QuestionTypes = quiz.QuestionTypeCounts()

	v := validator.New(s.valCfg, string(params.Language))
	if result := v.ValidateQuizData(quiz); !result.IsValid {
		return nil, domain.NewQuizValidationError(result)
	}

	if err := s.quizRepo.UpdateQuiz(ctx, quiz); err != nil {
		return nil, err
	}
	s.invalidateQuiz(ctx, quizID)

	logger.Get().Info("Regenerated quiz questions",
		zap.String("quiz_id", quizID),
		zap.Ints("indices", indices))

	return quiz, nil
}

func (s *generationService) ImproveQuestions(ctx context.Context, questions []domain.Question, targets []prompt.ImprovementType, issues []string, params domain.GenerationParameters) ([]domain.Question, error) {
	if len(questions) == 0 {
		return nil, domain.NewInvalidInputError("no questions supplied for improvement")
	}

	promptText := s.prompts.BuildImprovementPrompt(questions, targets, issues, params)

	raw, err := s.generator.GenerateText(ctx, promptText)
	if err != nil {
		return nil, err
	}
	improved, err := s.parser.ParseQuestionsResponse(raw)
	if err != nil {
		return nil, err
	}

	v := validator.New(s.valCfg, string(params.Language))
	if result := v.ValidateUpdateData(&domain.QuizUpdate{Questions: improved}); !result.IsValid {
		return nil, domain.NewQuizValidationError(result)
	}

	return improved, nil
}

func (s *generationService) dropCandidate(ctx context.Context, params domain.GenerationParameters) {
	if s.cache == nil {
		return
	}
	key := cache.GenerationParamsKey(params)
	if err := s.cache.Delete(ctx, key); err != nil {
		logger.Get().Warn("Failed to drop rejected candidate from cache",
			zap.String("key", key), zap.Error(err))
	}
}

func (s *generationService) invalidateQuiz(ctx context.Context, quizID string) {
	if s.cache == nil {
		return
	}
	key := cache.GenerateCacheKey(cache.ServiceQuiz, "id", quizID)
	if err := s.cache.Delete(ctx, key); err != nil {
		logger.Get().Warn("Failed to invalidate quiz cache",
			zap.String("quiz_id", quizID), zap.Error(err))
	}
}
