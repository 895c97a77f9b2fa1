package prompt

import (
	"strings"
	"testing"

	"quizforge/internal/domain"

	"github.com/stretchr/testify/assert"
)

func baseParams() domain.GenerationParameters {
	return domain.GenerationParameters{
		Topic:             "Photosynthesis",
		QuestionType:      domain.QuestionMultipleChoice,
		NumberOfQuestions: 5,
		Difficulty:        domain.DifficultyMedium,
		Language:          domain.LanguageEnglish,
		Category:          "science",
	}
}

func TestBuildQuizPromptDeterministic(t *testing.T) {
	b := NewBuilder()
	params := baseParams()

	first := b.BuildQuizPrompt(params)
	second := b.BuildQuizPrompt(params)

	assert.Equal(t, first, second, "identical parameters must render identical prompts")
	assert.NotEmpty(t, first)
}

func TestBuildQuizPromptContainsAllSections(t *testing.T) {
	b := NewBuilder()
	out := b.BuildQuizPrompt(baseParams())

	v := vocabFor(domain.LanguageEnglish)
	assert.Contains(t, out, v.ContextHeader)
	assert.Contains(t, out, v.RequirementsHeader)
	assert.Contains(t, out, v.FormatHeader)
	assert.Contains(t, out, v.ExampleHeader)
	assert.Contains(t, out, v.RulesHeader)
	assert.Contains(t, out, v.RespondWithJSONNotice)

	assert.Contains(t, out, "Photosynthesis")
	assert.Contains(t, out, `"type": "multiple_choice"`)
}

func TestBuildQuizPromptDefaults(t *testing.T) {
	b := NewBuilder()
	out := b.BuildQuizPrompt(domain.GenerationParameters{Language: domain.LanguageEnglish})

	v := vocabFor(domain.LanguageEnglish)
	// Count defaults to 5, difficulty to medium, missing fields to the placeholder.
	assert.Contains(t, out, v.CountLabel+": 5")
	assert.Contains(t, out, v.DifficultyNames[domain.DifficultyMedium])
	assert.Contains(t, out, v.NotSpecified)
}

func TestBuildQuizPromptSkeletonPerType(t *testing.T) {
	b := NewBuilder()
	for _, qt := range domain.AllQuestionTypes {
		params := baseParams()
		params.QuestionType = qt
		out := b.BuildQuizPrompt(params)
		assert.Contains(t, out, `"type": "`+string(qt)+`"`, "skeleton for %s", qt)
	}
}

func TestBuildQuizPromptLanguageFallback(t *testing.T) {
	b := NewBuilder()
	params := baseParams()
	params.Language = domain.Language("de")
	unknown := b.BuildQuizPrompt(params)

	params.Language = domain.LanguageThai
	thai := b.BuildQuizPrompt(params)

	assert.Equal(t, thai, unknown, "unsupported language codes fall back to the Thai template")
}

func TestBuildRegenerationPrompt(t *testing.T) {
	b := NewBuilder()
	quiz := &domain.Quiz{Title: "Solar System Basics"}
	replaced := []domain.Question{{
		Type:    domain.QuestionMultipleChoice,
		Text:    "Which planet is largest?",
		Options: []string{"Earth", "Jupiter"},
	}}

	out := b.BuildRegenerationPrompt(quiz, replaced, "too easy", baseParams())

	v := vocabFor(domain.LanguageEnglish)
	assert.Contains(t, out, "Solar System Basics")
	assert.Contains(t, out, "Which planet is largest?")
	assert.Contains(t, out, v.ReplaceReasonLabel+": too easy")
	assert.Contains(t, out, v.AvoidDuplicateNotice)
}

func TestBuildRegenerationPromptEmptyReason(t *testing.T) {
	b := NewBuilder()
	out := b.BuildRegenerationPrompt(nil, nil, "  ", baseParams())

	v := vocabFor(domain.LanguageEnglish)
	assert.Contains(t, out, v.ReplaceReasonLabel+": "+v.NotSpecified)
	assert.Contains(t, out, v.ExistingQuizLabel+": "+v.NotSpecified)
}

func TestBuildImprovementPrompt(t *testing.T) {
	b := NewBuilder()
	questions := []domain.Question{{
		Type: domain.QuestionShortAnswer,
		Text: "Name the capital of France.",
	}}

	out := b.BuildImprovementPrompt(questions, []ImprovementType{ImproveClarity}, []string{"wording is ambiguous"}, baseParams())

	v := vocabFor(domain.LanguageEnglish)
	assert.Contains(t, out, v.ImproveIntro)
	assert.Contains(t, out, "Name the capital of France.")
	assert.Contains(t, out, v.Improvements[ImproveClarity])
	assert.Contains(t, out, "wording is ambiguous")
	assert.Contains(t, out, v.PreserveIntentNotice)
}

func TestBuildImprovementPromptDefaultsToAllTargets(t *testing.T) {
	b := NewBuilder()
	out := b.BuildImprovementPrompt([]domain.Question{{Text: "q"}}, nil, nil, baseParams())

	v := vocabFor(domain.LanguageEnglish)
	for _, target := range AllImprovementTypes {
		assert.Contains(t, out, v.Improvements[target])
	}
}

func TestPromptsDifferAcrossParameters(t *testing.T) {
	b := NewBuilder()
	a := b.BuildQuizPrompt(baseParams())

	params := baseParams()
	params.NumberOfQuestions = 10
	c := b.BuildQuizPrompt(params)

	assert.NotEqual(t, a, c)
	assert.True(t, strings.Contains(c, ": 10"))
}
