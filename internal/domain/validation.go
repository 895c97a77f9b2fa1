package domain

// ValidationResult collects human-readable rule violations in discovery
// order. The list is returned as data across the pipeline boundary.
type ValidationResult struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// NewValidationResult returns a passing result with no errors recorded.
func NewValidationResult() ValidationResult {
	return ValidationResult{IsValid: true}
}

// AddError records a violation and marks the result failed.
func (r *ValidationResult) AddError(message string) {
	r.IsValid = false
	r.Errors = append(r.Errors, message)
}

// Merge appends another result's errors, preserving order.
func (r *ValidationResult) Merge(other ValidationResult) {
	if !other.IsValid {
		r.IsValid = false
	}
	r.Errors = append(r.Errors, other.Errors...)
}

// QualityLevel is the coarse classification derived from the quality score.
type QualityLevel string

const (
	QualityExcellent QualityLevel = "excellent"
	QualityGood      QualityLevel = "good"
	QualityFair      QualityLevel = "fair"
	QualityPoor      QualityLevel = "poor"
)

// QualityAnalytics holds the four independent quality metrics, each in [0,1].
type QualityAnalytics struct {
	TypeVariety        float64 `json:"typeVariety"`
	DifficultyBalance  float64 `json:"difficultyImbalance"`
	LengthConsistency  float64 `json:"lengthInconsistency"`
	AnswerPositionBias float64 `json:"answerPositionBias"`
}

// QualityReport is an advisory heuristic assessment. It never blocks
// acceptance; a low score only produces issues and suggestions.
type QualityReport struct {
	QualityScore int              `json:"qualityScore"` // 0-100
	QualityLevel QualityLevel     `json:"qualityLevel"`
	Issues       []string         `json:"issues"`
	Suggestions  []string         `json:"suggestions"`
	Analytics    QualityAnalytics `json:"analytics"`
}

// PublicationRequirement is one named publication criterion and whether the
// quiz currently meets it.
type PublicationRequirement struct {
	Name   string `json:"name"`
	Met    bool   `json:"met"`
	Detail string `json:"detail,omitempty"`
}

// PublicationCheck is the result of the stricter publication gate. A quiz
// can be valid (storable as a draft) without being ready for publication.
type PublicationCheck struct {
	IsReadyForPublication bool                     `json:"isReadyForPublication"`
	Errors                []string                 `json:"errors"`
	Requirements          []PublicationRequirement `json:"requirements"`
}
