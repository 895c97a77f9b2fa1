package validator

import (
	"fmt"
	"testing"

	"quizforge/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateQuizQualityDeterministic(t *testing.T) {
	v := New(testConfig(), "en")
	quiz := validQuiz()

	first := v.ValidateQuizQuality(quiz)
	second := v.ValidateQuizQuality(quiz)

	assert.Equal(t, first, second, "the same quiz always yields the same report")
}

func TestValidateQuizQualityBonuses(t *testing.T) {
	v := New(testConfig(), "en")

	quiz := &domain.Quiz{
		Title:       "Well Prepared Quiz",
		Description: "A long and carefully written description of what this quiz is going to cover.",
		TimeLimit:   intPtr(30),
	}
	for i := 0; i < 5; i++ {
		quiz.Questions = append(quiz.Questions, domain.Question{
			Type:        domain.QuestionMultipleChoice,
			Text:        fmt.Sprintf("Question number %d about the subject?", i+1),
			Options:     []string{"A", "B", "C", "D"},
			// Spread answers so position bias stays low.
			CorrectOption: i % 4,
			Explanation:   "Because of the underlying principle.",
		})
	}

	report := v.ValidateQuizQuality(quiz)

	// No issues, every bonus granted, capped at 100.
	assert.Empty(t, report.Issues)
	assert.Equal(t, 100, report.QualityScore)
	assert.Equal(t, domain.QualityExcellent, report.QualityLevel)
}

func TestValidateQuizQualityNeverBlocks(t *testing.T) {
	v := New(testConfig(), "en")

	// Deliberately poor quiz: still yields a report, never an error.
	quiz := &domain.Quiz{Title: "x"}
	report := v.ValidateQuizQuality(quiz)

	assert.GreaterOrEqual(t, report.QualityScore, 0)
	assert.LessOrEqual(t, report.QualityScore, 100)
	assert.NotEmpty(t, report.QualityLevel)
}

func TestValidateQuizQualityAnswerPositionBias(t *testing.T) {
	v := New(testConfig(), "en")

	quiz := &domain.Quiz{Title: "Biased"}
	for i := 0; i < 6; i++ {
		quiz.Questions = append(quiz.Questions, domain.Question{
			Type:          domain.QuestionMultipleChoice,
			Text:          fmt.Sprintf("Question %d?", i+1),
			Options:       []string{"A", "B", "C", "D"},
			CorrectOption: 0, // every answer in the first slot
		})
	}

	report := v.ValidateQuizQuality(quiz)

	assert.InDelta(t, 1.0, report.Analytics.AnswerPositionBias, 1e-9)
	assert.Contains(t, report.Issues, "Correct answers cluster at the same option position")
	assert.Contains(t, report.Suggestions, "Distribute correct answers across all option positions")
}

func TestValidateQuizQualityLowTypeVariety(t *testing.T) {
	v := New(testConfig(), "en")

	quiz := &domain.Quiz{Title: "Monotone"}
	for i := 0; i < 6; i++ {
		quiz.Questions = append(quiz.Questions, domain.Question{
			Type: domain.QuestionEssay,
			Text: fmt.Sprintf("Essay prompt %d.", i+1),
		})
	}

	report := v.ValidateQuizQuality(quiz)

	// 1 type out of 6 supported = 1/6 < 0.3, and the quiz has > 5 questions.
	assert.Less(t, report.Analytics.TypeVariety, 0.3)
	assert.Contains(t, report.Issues, "The quiz uses too few question types for its size")
}

func TestValidateQuizQualityTypeVarietyIgnoredForSmallQuizzes(t *testing.T) {
	v := New(testConfig(), "en")

	quiz := &domain.Quiz{Title: "Small"}
	for i := 0; i < 3; i++ {
		quiz.Questions = append(quiz.Questions, domain.Question{
			Type: domain.QuestionEssay,
			Text: fmt.Sprintf("Essay prompt %d.", i+1),
		})
	}

	report := v.ValidateQuizQuality(quiz)
	assert.NotContains(t, report.Issues, "The quiz uses too few question types for its size")
}

func TestValidateQuizQualityDifficultyImbalance(t *testing.T) {
	v := New(testConfig(), "en")

	quiz := &domain.Quiz{Title: "Lopsided"}
	for i := 0; i < 15; i++ {
		quiz.Questions = append(quiz.Questions, domain.Question{
			Type:       domain.QuestionEssay,
			Text:       fmt.Sprintf("Prompt %d.", i+1),
			Difficulty: domain.DifficultyEasy,
		})
	}
	quiz.Questions = append(quiz.Questions, domain.Question{
		Type:       domain.QuestionEssay,
		Text:       "The single hard prompt.",
		Difficulty: domain.DifficultyHard,
	})

	report := v.ValidateQuizQuality(quiz)

	assert.Greater(t, report.Analytics.DifficultyBalance, 0.8)
	assert.Contains(t, report.Issues, "Question difficulties are unevenly distributed")
}

func TestValidateQuizQualityLengthInconsistency(t *testing.T) {
	v := New(testConfig(), "en")

	quiz := &domain.Quiz{Title: "Uneven"}
	quiz.Questions = append(quiz.Questions, domain.Question{Type: domain.QuestionEssay, Text: "ab"})
	long := make([]byte, 900)
	for i := range long {
		long[i] = 'y'
	}
	quiz.Questions = append(quiz.Questions, domain.Question{Type: domain.QuestionEssay, Text: string(long)})

	report := v.ValidateQuizQuality(quiz)

	assert.Greater(t, report.Analytics.LengthConsistency, 0.7)
	assert.Contains(t, report.Issues, "Question lengths vary widely")
}

func TestQualityLevelThresholds(t *testing.T) {
	cases := []struct {
		score int
		want  domain.QualityLevel
	}{
		{100, domain.QualityExcellent},
		{90, domain.QualityExcellent},
		{89, domain.QualityGood},
		{75, domain.QualityGood},
		{74, domain.QualityFair},
		{60, domain.QualityFair},
		{59, domain.QualityPoor},
		{0, domain.QualityPoor},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, qualityLevelFor(tc.score), "score %d", tc.score)
	}
}

func TestValidateQuizQualityLocalizedMessages(t *testing.T) {
	v := New(testConfig(), "th")

	quiz := &domain.Quiz{Title: "Biased"}
	for i := 0; i < 4; i++ {
		quiz.Questions = append(quiz.Questions, domain.Question{
			Type:          domain.QuestionMultipleChoice,
			Text:          fmt.Sprintf("Q%d?", i+1),
			Options:       []string{"A", "B", "C", "D"},
			CorrectOption: 0,
		})
	}

	report := v.ValidateQuizQuality(quiz)
	require.NotEmpty(t, report.Issues)
	assert.Contains(t, report.Issues, "คำตอบที่ถูกต้องกระจุกอยู่ที่ตำแหน่งตัวเลือกเดิมบ่อยเกินไป")
}
