package validator

import (
	"strings"

	"quizforge/internal/domain"
)

// Publication gate thresholds. Deliberately stricter than ValidateQuizData:
// a quiz can be storable as a draft without being ready to publish.
const (
	pubMinTitleLength       = 5
	pubMinDescriptionLength = 20
	pubMinQuestions         = 3
	pubMinExplainedPercent  = 50
)

// ValidateForPublication checks whether a quiz meets the publication
// criteria and reports each requirement individually so the caller can show
// a checklist.
func (v *Validator) ValidateForPublication(quiz *domain.Quiz) domain.PublicationCheck {
	check := domain.PublicationCheck{
		IsReadyForPublication: true,
		Errors:                []string{},
	}

	titleOK := len([]rune(strings.TrimSpace(quiz.Title))) >= pubMinTitleLength
	check.Requirements = append(check.Requirements, domain.PublicationRequirement{
		Name:   "title",
		Met:    titleOK,
		Detail: v.msg(reqTitle, pubMinTitleLength),
	})
	if !titleOK {
		check.Errors = append(check.Errors, v.msg(pubTitleTooShort, pubMinTitleLength))
	}

	descOK := len([]rune(strings.TrimSpace(quiz.Description))) >= pubMinDescriptionLength
	check.Requirements = append(check.Requirements, domain.PublicationRequirement{
		Name:   "description",
		Met:    descOK,
		Detail: v.msg(reqDescription, pubMinDescriptionLength),
	})
	if !descOK {
		check.Errors = append(check.Errors, v.msg(pubDescriptionTooShort, pubMinDescriptionLength))
	}

	questionsOK := len(quiz.Questions) >= pubMinQuestions
	check.Requirements = append(check.Requirements, domain.PublicationRequirement{
		Name:   "questions",
		Met:    questionsOK,
		Detail: v.msg(reqQuestions, pubMinQuestions),
	})
	if !questionsOK {
		check.Errors = append(check.Errors, v.msg(pubTooFewQuestions, pubMinQuestions))
	}

	timeLimitOK := quiz.TimeLimit != nil
	check.Requirements = append(check.Requirements, domain.PublicationRequirement{
		Name:   "timeLimit",
		Met:    timeLimitOK,
		Detail: v.msg(reqTimeLimit),
	})
	if !timeLimitOK {
		check.Errors = append(check.Errors, v.msg(pubNoTimeLimit))
	}

	explainedOK := false
	if n := len(quiz.Questions); n > 0 {
		explained := 0
		for _, q := range quiz.Questions {
			if strings.TrimSpace(q.Explanation) != "" {
				explained++
			}
		}
		explainedOK = explained*100 >= pubMinExplainedPercent*n
	}
	check.Requirements = append(check.Requirements, domain.PublicationRequirement{
		Name:   "explanations",
		Met:    explainedOK,
		Detail: v.msg(reqExplanations, pubMinExplainedPercent),
	})
	if !explainedOK {
		check.Errors = append(check.Errors, v.msg(pubFewExplanations, pubMinExplainedPercent))
	}

	check.IsReadyForPublication = len(check.Errors) == 0
	return check
}
