package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// QuestionType is the closed set of question variants the pipeline handles.
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionTrueFalse      QuestionType = "true_false"
	QuestionEssay          QuestionType = "essay"
	QuestionShortAnswer    QuestionType = "short_answer"
	QuestionFillInBlank    QuestionType = "fill_in_blank"
	QuestionMatching       QuestionType = "matching"
)

// AllQuestionTypes lists every supported variant, in a stable order.
var AllQuestionTypes = []QuestionType{
	QuestionMultipleChoice,
	QuestionTrueFalse,
	QuestionEssay,
	QuestionShortAnswer,
	QuestionFillInBlank,
	QuestionMatching,
}

// IsValid reports whether t is a member of the supported set.
func (t QuestionType) IsValid() bool {
	for _, known := range AllQuestionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Difficulty represents a quiz or question difficulty level
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyExpert Difficulty = "expert"
)

var AllDifficulties = []Difficulty{
	DifficultyEasy,
	DifficultyMedium,
	DifficultyHard,
	DifficultyExpert,
}

func (d Difficulty) IsValid() bool {
	for _, known := range AllDifficulties {
		if d == known {
			return true
		}
	}
	return false
}

// ParseDifficulty normalizes a free-form difficulty string, defaulting to medium.
func ParseDifficulty(s string) Difficulty {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if d.IsValid() {
		return d
	}
	return DifficultyMedium
}

// AllCategories is the fixed category enumeration quizzes may belong to.
var AllCategories = []string{
	"general",
	"science",
	"mathematics",
	"language",
	"history",
	"technology",
	"business",
	"other",
}

// IsValidCategory reports whether c is a member of the category enumeration.
func IsValidCategory(c string) bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Language selects the template and message vocabulary.
type Language string

const (
	LanguageThai    Language = "th"
	LanguageEnglish Language = "en"
)

// QuizStatus represents the lifecycle state of a stored quiz
type QuizStatus string

const (
	StatusDraft     QuizStatus = "draft"
	StatusPublished QuizStatus = "published"
	StatusArchived  QuizStatus = "archived"
)

var AllQuizStatuses = []QuizStatus{StatusDraft, StatusPublished, StatusArchived}

func (s QuizStatus) IsValid() bool {
	for _, known := range AllQuizStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// GenerationParameters describes one generation request. It is created per
// request, never mutated, and discarded once the prompt is rendered.
type GenerationParameters struct {
	Content           string
	Topic             string
	QuestionType      QuestionType
	NumberOfQuestions int
	Difficulty        Difficulty
	Language          Language
	Category          string
	Instructions      string
}

// MatchPair is one left/right pairing in a matching question.
type MatchPair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// Question is a tagged variant over Type. Common fields apply to every
// variant; the remaining fields are meaningful only for the variant noted.
//
// For multiple_choice the canonical correct-answer representation is
// CorrectOption, an index into Options. A literal answer string on input is
// resolved to its index during normalization; an answer that matches no
// option is a hard failure.
//
// On the wire both answer fields share the correctAnswer key: an option
// index for multiple_choice, a boolean for true_false, omitted for the
// other variants. The custom JSON methods below own that mapping.
type Question struct {
	Type        QuestionType `json:"type"`
	Text        string       `json:"question"`
	Explanation string       `json:"explanation,omitempty"`
	Points      int          `json:"points,omitempty"`
	Difficulty  Difficulty   `json:"difficulty,omitempty"`

	// multiple_choice
	Options       []string `json:"options,omitempty"`
	CorrectOption int      `json:"-"`

	// true_false
	CorrectBool bool `json:"-"`

	// essay
	Rubric   string   `json:"rubric,omitempty"`
	Keywords []string `json:"keywords,omitempty"`

	// short_answer, fill_in_blank
	CorrectAnswers []string `json:"correctAnswers,omitempty"`

	// matching
	Pairs []MatchPair `json:"pairs,omitempty"`
}

// questionWire is the JSON shape shared by storage, the HTTP DTOs and the
// prompt templates. It matches the skeleton the model is instructed to
// reply with, so a serialized quiz parses back through the response parser.
type questionWire struct {
	Type           QuestionType    `json:"type"`
	Text           string          `json:"question"`
	Explanation    string          `json:"explanation,omitempty"`
	Points         int             `json:"points,omitempty"`
	Difficulty     Difficulty      `json:"difficulty,omitempty"`
	Options        []string        `json:"options,omitempty"`
	CorrectAnswer  json.RawMessage `json:"correctAnswer,omitempty"`
	Rubric         string          `json:"rubric,omitempty"`
	Keywords       []string        `json:"keywords,omitempty"`
	CorrectAnswers []string        `json:"correctAnswers,omitempty"`
	Pairs          []MatchPair     `json:"pairs,omitempty"`
}

// MarshalJSON writes the variant-appropriate value under correctAnswer.
func (q Question) MarshalJSON() ([]byte, error) {
	w := questionWire{
		Type:           q.Type,
		Text:           q.Text,
		Explanation:    q.Explanation,
		Points:         q.Points,
		Difficulty:     q.Difficulty,
		Options:        q.Options,
		Rubric:         q.Rubric,
		Keywords:       q.Keywords,
		CorrectAnswers: q.CorrectAnswers,
		Pairs:          q.Pairs,
	}
	switch q.Type {
	case QuestionMultipleChoice:
		w.CorrectAnswer = json.RawMessage(strconv.Itoa(q.CorrectOption))
	case QuestionTrueFalse:
		w.CorrectAnswer = json.RawMessage(strconv.FormatBool(q.CorrectBool))
	}
	return json.Marshal(w)
}

// UnmarshalJSON reads correctAnswer per the declared type: a boolean for
// true_false, an option index otherwise.
func (q *Question) UnmarshalJSON(data []byte) error {
	var w questionWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*q = Question{
		Type:           w.Type,
		Text:           w.Text,
		Explanation:    w.Explanation,
		Points:         w.Points,
		Difficulty:     w.Difficulty,
		Options:        w.Options,
		Rubric:         w.Rubric,
		Keywords:       w.Keywords,
		CorrectAnswers: w.CorrectAnswers,
		Pairs:          w.Pairs,
	}
	if len(w.CorrectAnswer) == 0 {
		return nil
	}
	switch w.Type {
	case QuestionTrueFalse:
		if err := json.Unmarshal(w.CorrectAnswer, &q.CorrectBool); err != nil {
			return fmt.Errorf("true_false correct answer must be a boolean: %w", err)
		}
	default:
		if err := json.Unmarshal(w.CorrectAnswer, &q.CorrectOption); err != nil {
			return fmt.Errorf("correct answer must be an option index: %w", err)
		}
	}
	return nil
}

// QuizMetadata carries provenance information stamped by the parser.
type QuizMetadata struct {
	QuestionTypes map[QuestionType]int `json:"questionTypes"`
	AIGenerated   bool                 `json:"aiGenerated"`
	GeneratedAt   time.Time            `json:"generatedAt"`
}

// Quiz is the aggregate the pipeline produces and the store persists.
// A candidate coming out of the parser is owned exclusively by the pipeline
// invocation until it is accepted; it is never mutated after acceptance.
type Quiz struct {
	ID           string       `json:"id,omitempty"`
	Title        string       `json:"title"`
	Description  string       `json:"description,omitempty"`
	Category     string       `json:"category,omitempty"`
	QuestionType QuestionType `json:"questionType,omitempty"` // dominant type requested at generation
	Difficulty   Difficulty   `json:"difficulty,omitempty"`
	Status       QuizStatus   `json:"status,omitempty"`
	TimeLimit    *int         `json:"timeLimit,omitempty"` // minutes; nil when unset
	IsPublic     bool         `json:"isPublic"`
	Tags         []string     `json:"tags,omitempty"`
	FolderID     *int64       `json:"folderId,omitempty"`
	UserID       string       `json:"userId,omitempty"`
	Questions    []Question   `json:"questions"`
	Metadata     QuizMetadata `json:"metadata"`
	CreatedAt    time.Time    `json:"createdAt,omitempty"`
	UpdatedAt    time.Time    `json:"updatedAt,omitempty"`
}

// QuestionTypeCounts tallies questions per type discriminator.
func (q *Quiz) QuestionTypeCounts() map[QuestionType]int {
	counts := make(map[QuestionType]int)
	for _, question := range q.Questions {
		counts[question.Type]++
	}
	return counts
}

// QuizUpdate is a partial quiz for PATCH-style updates. Nil fields were not
// supplied by the caller and must not be validated or written.
type QuizUpdate struct {
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	Category    *string     `json:"category,omitempty"`
	Difficulty  *Difficulty `json:"difficulty,omitempty"`
	Status      *QuizStatus `json:"status,omitempty"`
	TimeLimit   *int        `json:"timeLimit,omitempty"`
	IsPublic    *bool       `json:"isPublic,omitempty"`
	Tags        []string    `json:"tags,omitempty"`
	FolderID    *int64      `json:"folderId,omitempty"`
	Questions   []Question  `json:"questions,omitempty"`
}
