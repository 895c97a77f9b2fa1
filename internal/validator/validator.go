// Package validator is the authoritative gate between "structurally
// parseable" and "acceptable for storage or publication". It operates
// independently of where a quiz came from, so the same rules apply to AI
// generation and direct API input.
package validator

import (
	"regexp"
	"strings"

	"quizforge/internal/config"
	"quizforge/internal/domain"
	"quizforge/internal/logger"

	"go.uber.org/zap"
)

// allowedTextRe covers Thai script, Latin letters, digits, whitespace and
// basic punctuation.
var allowedTextRe = regexp.MustCompile(`^[\p{Thai}\p{Latin}0-9\s\p{P}\p{Sm}]+$`)

// Validator applies structural, business and quality rules. All numeric
// limits come from the configuration passed at construction; the validator
// itself is immutable and safe for concurrent use.
type Validator struct {
	cfg    config.ValidationConfig
	locale string
}

// New creates a Validator for the given limits and message locale. Unknown
// locales fall back to the configured default, then to Thai.
func New(cfg config.ValidationConfig, locale string) *Validator {
	if _, ok := catalogs[locale]; !ok {
		locale = cfg.DefaultLocale
	}
	if _, ok := catalogs[locale]; !ok {
		locale = "th"
	}
	return &Validator{cfg: cfg, locale: locale}
}

// ValidateQuizData runs all four rule groups and concatenates their error
// lists. Every group runs regardless of earlier failures so the caller gets
// the complete diagnostic in one pass.
func (v *Validator) ValidateQuizData(quiz *domain.Quiz) domain.ValidationResult {
	result := domain.NewValidationResult()
	result.Merge(v.validateBasicInfo(quiz))
	result.Merge(v.validateQuestions(quiz.Questions))
	result.Merge(v.validateAdvancedProperties(quiz))
	result.Merge(v.ValidateBusinessRules(quiz))
	return result
}

// ValidateUpdateData applies only the rule subsets for fields actually
// present in the partial payload, so PATCH-style updates never demand fields
// the caller did not intend to change.
func (v *Validator) ValidateUpdateData(update *domain.QuizUpdate) domain.ValidationResult {
	result := domain.NewValidationResult()

	if update.Title != nil {
		v.checkTitle(&result, *update.Title)
	}
	if update.Description != nil && len([]rune(*update.Description)) > v.cfg.MaxDescriptionLength {
		result.AddError(v.msg(msgDescTooLong, v.cfg.MaxDescriptionLength))
	}
	if update.Category != nil && *update.Category != "" && !domain.IsValidCategory(*update.Category) {
		result.AddError(v.msg(msgInvalidCategory, *update.Category))
	}
	if update.Difficulty != nil && !update.Difficulty.IsValid() {
		result.AddError(v.msg(msgInvalidDifficulty, string(*update.Difficulty)))
	}
	if update.Status != nil && !update.Status.IsValid() {
		result.AddError(v.msg(msgInvalidStatus, string(*update.Status)))
	}
	if update.TimeLimit != nil && (*update.TimeLimit < 1 || *update.TimeLimit > v.cfg.MaxTimeLimitMinutes) {
		result.AddError(v.msg(msgTimeLimitRange, v.cfg.MaxTimeLimitMinutes))
	}
	if update.Questions != nil {
		result.Merge(v.validateQuestions(update.Questions))
	}
	if update.Tags != nil {
		v.checkTags(&result, update.Tags)
	}
	if update.FolderID != nil && *update.FolderID <= 0 {
		result.AddError(v.msg(msgFolderIDPositive))
	}

	return result
}

// ValidateBusinessRules checks policy constraints on a structurally valid
// quiz: publication state, public visibility, and per-type option minimums.
func (v *Validator) ValidateBusinessRules(quiz *domain.Quiz) domain.ValidationResult {
	result := domain.NewValidationResult()

	if quiz.Status == domain.StatusPublished {
		if len(quiz.Questions) == 0 {
			result.AddError(v.msg(msgPublishedNeedsQuestions))
		}
		if quiz.TimeLimit == nil {
			// Advisory only: a published quiz without a time limit is legal
			// but worth surfacing in the logs.
			logger.Get().Warn("Published quiz has no time limit",
				zap.String("quiz_id", quiz.ID),
				zap.String("title", quiz.Title))
		}
	}

	if quiz.IsPublic {
		if strings.TrimSpace(quiz.Description) == "" {
			result.AddError(v.msg(msgPublicNeedsDescription))
		}
		if quiz.Status == domain.StatusDraft {
			result.AddError(v.msg(msgPublicMustNotBeDraft))
		}
	}

	for i, q := range quiz.Questions {
		switch q.Type {
		case domain.QuestionMultipleChoice:
			if len(q.Options) < v.cfg.MinOptionsPerQuestion {
				result.AddError(v.msg(msgChoiceMinOptions, i+1, v.cfg.MinOptionsPerQuestion))
			}
		case domain.QuestionTrueFalse:
			if len(q.Options) != 0 && len(q.Options) != 2 {
				result.AddError(v.msg(msgTrueFalseOptions, i+1))
			}
		}
	}

	return result
}

func (v *Validator) validateBasicInfo(quiz *domain.Quiz) domain.ValidationResult {
	result := domain.NewValidationResult()

	v.checkTitle(&result, quiz.Title)

	if len([]rune(quiz.Description)) > v.cfg.MaxDescriptionLength {
		result.AddError(v.msg(msgDescTooLong, v.cfg.MaxDescriptionLength))
	}
	if quiz.Category != "" && !domain.IsValidCategory(quiz.Category) {
		result.AddError(v.msg(msgInvalidCategory, quiz.Category))
	}
	if quiz.QuestionType != "" && !quiz.QuestionType.IsValid() {
		result.AddError(v.msg(msgInvalidType, string(quiz.QuestionType)))
	}
	if quiz.Difficulty != "" && !quiz.Difficulty.IsValid() {
		result.AddError(v.msg(msgInvalidDifficulty, string(quiz.Difficulty)))
	}
	if quiz.Status != "" && !quiz.Status.IsValid() {
		result.AddError(v.msg(msgInvalidStatus, string(quiz.Status)))
	}
	if quiz.TimeLimit != nil && (*quiz.TimeLimit < 1 || *quiz.TimeLimit > v.cfg.MaxTimeLimitMinutes) {
		result.AddError(v.msg(msgTimeLimitRange, v.cfg.MaxTimeLimitMinutes))
	}
	if strings.TrimSpace(quiz.UserID) == "" {
		result.AddError(v.msg(msgUserIDRequired))
	}

	return result
}

func (v *Validator) checkTitle(result *domain.ValidationResult, title string) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		result.AddError(v.msg(msgTitleRequired))
		return
	}
	length := len([]rune(trimmed))
	if length < v.cfg.MinTitleLength || length > v.cfg.MaxTitleLength {
		result.AddError(v.msg(msgTitleLength, v.cfg.MinTitleLength, v.cfg.MaxTitleLength))
	}
	if !allowedTextRe.MatchString(trimmed) {
		result.AddError(v.msg(msgTitleCharset))
	}
}

func (v *Validator) validateQuestions(questions []domain.Question) domain.ValidationResult {
	result := domain.NewValidationResult()

	if len(questions) < v.cfg.MinQuestionsPerQuiz {
		result.AddError(v.msg(msgTooFewQuestions, v.cfg.MinQuestionsPerQuiz))
	}
	if len(questions) > v.cfg.MaxQuestionsPerQuiz {
		result.AddError(v.msg(msgTooManyQuestions, v.cfg.MaxQuestionsPerQuiz))
	}

	// Duplicate detection: case-insensitive, whitespace-normalized exact
	// text comparison across all questions.
	seen := make(map[string]int, len(questions))

	for i, q := range questions {
		v.checkQuestion(&result, q, i)

		normalized := normalizeQuestionText(q.Text)
		if normalized == "" {
			continue
		}
		if first, dup := seen[normalized]; dup {
			result.AddError(v.msg(msgDuplicateQuestion, i+1, first+1))
		} else {
			seen[normalized] = i
		}
	}

	return result
}

func (v *Validator) checkQuestion(result *domain.ValidationResult, q domain.Question, i int) {
	text := strings.TrimSpace(q.Text)
	if text == "" {
		result.AddError(v.msg(msgQuestionTextMissing, i+1))
	} else if len([]rune(text)) > v.cfg.MaxQuestionLength {
		result.AddError(v.msg(msgQuestionTextTooLong, i+1, v.cfg.MaxQuestionLength))
	}

	// Common fields are checked for every question, even when the type is
	// unknown, so one pass reports the complete diagnostic.
	if len([]rune(q.Explanation)) > v.cfg.MaxExplanationLength {
		result.AddError(v.msg(msgExplanationTooLong, i+1, v.cfg.MaxExplanationLength))
	}
	if q.Points != 0 && (q.Points < v.cfg.MinPoints || q.Points > v.cfg.MaxPoints) {
		result.AddError(v.msg(msgPointsRange, i+1, v.cfg.MinPoints, v.cfg.MaxPoints))
	}

	if !q.Type.IsValid() {
		result.AddError(v.msg(msgQuestionTypeInvalid, i+1, string(q.Type)))
		return
	}

	switch q.Type {
	case domain.QuestionMultipleChoice:
		v.checkOptions(result, q, i)
	case domain.QuestionTrueFalse:
		// CorrectBool is structurally guaranteed; option-count policy lives
		// in the business rules.
	}
}

func (v *Validator) checkOptions(result *domain.ValidationResult, q domain.Question, i int) {
	if len(q.Options) < v.cfg.MinOptionsPerQuestion || len(q.Options) > v.cfg.MaxOptionsPerQuestion {
		result.AddError(v.msg(msgOptionsCount, i+1, v.cfg.MinOptionsPerQuestion, v.cfg.MaxOptionsPerQuestion))
	}

	unique := make(map[string]bool, len(q.Options))
	for _, opt := range q.Options {
		trimmed := strings.TrimSpace(opt)
		if trimmed == "" {
			result.AddError(v.msg(msgOptionEmpty, i+1))
			continue
		}
		if len([]rune(trimmed)) > v.cfg.MaxOptionLength {
			result.AddError(v.msg(msgOptionTooLong, i+1, v.cfg.MaxOptionLength))
		}
		if unique[trimmed] {
			result.AddError(v.msg(msgOptionsDuplicate, i+1))
		}
		unique[trimmed] = true
	}

	// The stored correct answer must always resolve to a member of options.
	if q.CorrectOption < 0 || q.CorrectOption >= len(q.Options) {
		result.AddError(v.msg(msgAnswerOutOfRange, i+1, q.CorrectOption, len(q.Options)))
	}
}

func (v *Validator) validateAdvancedProperties(quiz *domain.Quiz) domain.ValidationResult {
	result := domain.NewValidationResult()

	v.checkTags(&result, quiz.Tags)
	if quiz.FolderID != nil && *quiz.FolderID <= 0 {
		result.AddError(v.msg(msgFolderIDPositive))
	}

	return result
}

func (v *Validator) checkTags(result *domain.ValidationResult, tags []string) {
	if len(tags) > v.cfg.MaxTags {
		result.AddError(v.msg(msgTooManyTags, v.cfg.MaxTags))
	}
	for _, tag := range tags {
		if len([]rune(tag)) > v.cfg.MaxTagLength {
			result.AddError(v.msg(msgTagTooLong, v.cfg.MaxTagLength))
			break
		}
	}
}

// normalizeQuestionText lowercases and collapses whitespace so questions that
// differ only in case or spacing compare equal.
func normalizeQuestionText(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}
