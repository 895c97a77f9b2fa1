package validator

import (
	"math"

	"quizforge/internal/domain"
	"quizforge/internal/util"
)

// Fixed quality heuristics. The report is advisory and never blocks
// acceptance, so these thresholds are not part of ValidationConfig.
const (
	typeVarietyMinQuestions  = 5
	lowTypeVarietyThreshold  = 0.3
	difficultyImbalanceLimit = 0.8
	lengthInconsistencyLimit = 0.7
	answerPositionBiasLimit  = 0.6

	issueDeduction        = 10
	descriptionBonusChars = 50
	questionCountBonusAt  = 5
	explanationBonusMax   = 10
)

// ValidateQuizQuality computes the advisory quality report: four independent
// analytics folded into a 0-100 score with fixed deductions and bonuses.
// It never fails; the same quiz always yields the same score.
func (v *Validator) ValidateQuizQuality(quiz *domain.Quiz) domain.QualityReport {
	report := domain.QualityReport{
		QualityScore: 100,
		Issues:       []string{},
		Suggestions:  []string{},
	}

	report.Analytics.TypeVariety = v.typeVariety(quiz)
	report.Analytics.DifficultyBalance = v.difficultyImbalance(quiz)
	report.Analytics.LengthConsistency = v.lengthInconsistency(quiz)
	report.Analytics.AnswerPositionBias = v.answerPositionBias(quiz)

	if len(quiz.Questions) > typeVarietyMinQuestions && report.Analytics.TypeVariety < lowTypeVarietyThreshold {
		report.Issues = append(report.Issues, v.msg(qiLowTypeVariety))
		report.Suggestions = append(report.Suggestions, v.msg(qsLowTypeVariety))
	}
	if report.Analytics.DifficultyBalance > difficultyImbalanceLimit {
		report.Issues = append(report.Issues, v.msg(qiDifficultyImbalance))
		report.Suggestions = append(report.Suggestions, v.msg(qsDifficultyImbalance))
	}
	if report.Analytics.LengthConsistency > lengthInconsistencyLimit {
		report.Issues = append(report.Issues, v.msg(qiLengthInconsistency))
		report.Suggestions = append(report.Suggestions, v.msg(qsLengthInconsistency))
	}
	if report.Analytics.AnswerPositionBias > answerPositionBiasLimit {
		report.Issues = append(report.Issues, v.msg(qiAnswerPositionBias))
		report.Suggestions = append(report.Suggestions, v.msg(qsAnswerPositionBias))
	}

	score := 100 - issueDeduction*len(report.Issues)

	if len([]rune(quiz.Description)) > descriptionBonusChars {
		score += 5
	}
	if quiz.TimeLimit != nil {
		score += 5
	}
	if len(quiz.Questions) >= questionCountBonusAt {
		score += 5
	}
	if n := len(quiz.Questions); n > 0 {
		explained := 0
		for _, q := range quiz.Questions {
			if q.Explanation != "" {
				explained++
			}
		}
		score += int(math.Round(explanationBonusMax * float64(explained) / float64(n)))
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	report.QualityScore = score
	report.QualityLevel = qualityLevelFor(score)

	return report
}

func qualityLevelFor(score int) domain.QualityLevel {
	switch {
	case score >= 90:
		return domain.QualityExcellent
	case score >= 75:
		return domain.QualityGood
	case score >= 60:
		return domain.QualityFair
	default:
		return domain.QualityPoor
	}
}

// typeVariety is the ratio of distinct question types used to the number of
// supported types.
func (v *Validator) typeVariety(quiz *domain.Quiz) float64 {
	if len(quiz.Questions) == 0 {
		return 0
	}
	distinct := make(map[domain.QuestionType]bool)
	for _, q := range quiz.Questions {
		distinct[q.Type] = true
	}
	return float64(len(distinct)) / float64(len(domain.AllQuestionTypes))
}

// difficultyImbalance measures deviation from an even split across the
// difficulty buckets actually used, in [0,1].
func (v *Validator) difficultyImbalance(quiz *domain.Quiz) float64 {
	counts := make(map[domain.Difficulty]int)
	for _, q := range quiz.Questions {
		if q.Difficulty != "" {
			counts[q.Difficulty]++
		}
	}
	if len(counts) < 2 {
		return 0
	}
	buckets := make([]int, 0, len(counts))
	for _, d := range domain.AllDifficulties {
		if c, ok := counts[d]; ok {
			buckets = append(buckets, c)
		}
	}
	return util.MaxDeviationFromUniform(buckets)
}

// lengthInconsistency is the coefficient of variation of question text
// lengths, capped at 1.
func (v *Validator) lengthInconsistency(quiz *domain.Quiz) float64 {
	if len(quiz.Questions) < 2 {
		return 0
	}
	lengths := make([]float64, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		lengths = append(lengths, float64(len([]rune(q.Text))))
	}
	mean := util.Mean(lengths)
	if mean == 0 {
		return 0
	}
	cv := util.StdDev(lengths) / mean
	if cv > 1 {
		return 1
	}
	return cv
}

// answerPositionBias measures, for multiple-choice questions only, how far
// the correct-answer positions stray from a uniform spread over the
// positions available.
func (v *Validator) answerPositionBias(quiz *domain.Quiz) float64 {
	maxOptions := 0
	positions := make(map[int]int)
	total := 0
	for _, q := range quiz.Questions {
		if q.Type != domain.QuestionMultipleChoice || len(q.Options) == 0 {
			continue
		}
		if len(q.Options) > maxOptions {
			maxOptions = len(q.Options)
		}
		positions[q.CorrectOption]++
		total++
	}
	if total < 2 || maxOptions < 2 {
		return 0
	}
	buckets := make([]int, maxOptions)
	for pos, c := range positions {
		if pos >= 0 && pos < maxOptions {
			buckets[pos] = c
		}
	}
	return util.MaxDeviationFromUniform(buckets)
}
