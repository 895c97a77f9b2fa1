// Package parser turns raw AI reply text into a normalized quiz candidate.
// It tolerates the common failure modes of LLM output: markdown code fences,
// leading and trailing prose, single quotes, unquoted keys, trailing commas.
package parser

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"quizforge/internal/domain"
	"quizforge/internal/logger"

	"go.uber.org/zap"
)

var widestSpanRe = regexp.MustCompile(`(?s)\{.*\}|\[.*\]`)

// Parser recovers quiz structures from untrusted model output. It holds no
// state and is safe for concurrent use.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// rawQuestion is the permissive wire shape a model reply is decoded into
// before structural validation. correctAnswer may arrive as an index, a
// boolean, or (under the correct_answer key) a literal option string.
type rawQuestion struct {
	Question         string            `json:"question"`
	Type             string            `json:"type"`
	Options          []string          `json:"options"`
	CorrectAnswer    json.RawMessage   `json:"correctAnswer"`
	CorrectAnswerAlt json.RawMessage   `json:"correct_answer"`
	Explanation      string            `json:"explanation"`
	Points           int               `json:"points"`
	Difficulty       string            `json:"difficulty"`
	Rubric           string            `json:"rubric"`
	Keywords         []string          `json:"keywords"`
	CorrectAnswers   []string          `json:"correctAnswers"`
	Pairs            []domain.MatchPair `json:"pairs"`
}

type rawQuiz struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Questions   []rawQuestion `json:"questions"`
}

// ParseQuizResponse recovers a complete quiz from raw reply text. It cleans
// and extracts the JSON payload, decodes it, validates each question's
// type-specific contract fail-fast, and normalizes the result.
func (p *Parser) ParseQuizResponse(rawText string) (*domain.Quiz, error) {
	payload, err := p.extract(rawText)
	if err != nil {
		return nil, err
	}

	var raw rawQuiz
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, domain.NewParseFailureError(rawText, []string{"decode_quiz"}, err)
	}

	if strings.TrimSpace(raw.Title) == "" {
		return nil, p.reject("Quiz must have a title")
	}
	if len(raw.Questions) == 0 {
		return nil, p.reject("Quiz must have at least one question")
	}

	questions := make([]domain.Question, 0, len(raw.Questions))
	for i, rq := range raw.Questions {
		q, err := p.normalizeQuestion(rq, i)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	quiz := &domain.Quiz{
		Title:       strings.TrimSpace(raw.Title),
		Description: strings.TrimSpace(raw.Description),
		Questions:   questions,
	}
	quiz.Metadata = domain.QuizMetadata{
		QuestionTypes: quiz.QuestionTypeCounts(),
		AIGenerated:   true,
		GeneratedAt:   time.Now(),
	}

	logger.Get().Debug("Parsed quiz from AI response",
		zap.String("title", quiz.Title),
		zap.Int("questions", len(quiz.Questions)))

	return quiz, nil
}

// ParseQuestionsResponse recovers a bare question array. It also accepts an
// object carrying a questions field, since models frequently wrap arrays.
// Validation is fail-fast: the first invalid element rejects the whole reply.
func (p *Parser) ParseQuestionsResponse(rawText string) ([]domain.Question, error) {
	payload, err := p.extract(rawText)
	if err != nil {
		return nil, err
	}

	var rawQuestions []rawQuestion
	if err := json.Unmarshal(payload, &rawQuestions); err != nil {
		var wrapper struct {
			Questions []rawQuestion `json:"questions"`
		}
		if err2 := json.Unmarshal(payload, &wrapper); err2 != nil {
			return nil, domain.NewParseFailureError(rawText, []string{"decode_array", "decode_wrapper"}, err)
		}
		rawQuestions = wrapper.Questions
	}

	if len(rawQuestions) == 0 {
		return nil, p.reject("Response must contain at least one question")
	}

	questions := make([]domain.Question, 0, len(rawQuestions))
	for i, rq := range rawQuestions {
		q, err := p.normalizeQuestion(rq, i)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// CleanResponseText strips markdown fences and trims the text down to the
// span between the first opening brace or bracket and its matching closer.
// Running it on already-clean JSON returns the input unchanged.
func (p *Parser) CleanResponseText(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	objStart := strings.Index(s, "{")
	arrStart := strings.Index(s, "[")

	start, end := -1, -1
	switch {
	case objStart == -1 && arrStart == -1:
		return s
	case arrStart == -1 || (objStart != -1 && objStart < arrStart):
		start = objStart
		end = strings.LastIndex(s, "}")
	default:
		start = arrStart
		end = strings.LastIndex(s, "]")
	}

	if end > start {
		return s[start : end+1]
	}
	return s
}

// extract runs the full recovery chain: boundary-trimmed parse, widest-span
// regex fallback, then the named repair strategies over both candidates.
// Every attempted step is carried in the terminal error.
func (p *Parser) extract(rawText string) (json.RawMessage, error) {
	if strings.TrimSpace(rawText) == "" {
		return nil, domain.NewParseFailureError(rawText, nil, fmt.Errorf("empty response"))
	}

	attempts := []string{"boundary_trim"}
	cleaned := p.CleanResponseText(rawText)
	if json.Valid([]byte(cleaned)) {
		return json.RawMessage(cleaned), nil
	}

	// Boundary trim can mis-slice when prose around the payload contains
	// stray braces; retry with the widest span found anywhere in the text.
	attempts = append(attempts, "widest_span")
	widest := widestSpanRe.FindString(rawText)
	if widest != "" && json.Valid([]byte(widest)) {
		return json.RawMessage(widest), nil
	}

	// Repair pass, last resort: applied only after direct parsing failed so
	// the rewrites cannot corrupt an otherwise-valid payload.
	lastErr := fmt.Errorf("no valid JSON found in response")
	for _, candidate := range []string{cleaned, widest} {
		if candidate == "" {
			continue
		}
		repaired := candidate
		for _, strategy := range repairStrategies {
			repaired = strategy.apply(repaired)
			attempts = append(attempts, strategy.name)
			if json.Valid([]byte(repaired)) {
				logger.Get().Debug("Recovered JSON via repair pass",
					zap.String("strategy", strategy.name))
				return json.RawMessage(repaired), nil
			}
		}
	}

	logger.Get().Warn("Failed to extract JSON from AI response",
		zap.Strings("attempted", attempts),
		zap.Int("raw_length", len(rawText)))
	return nil, domain.NewParseFailureError(rawText, attempts, lastErr)
}

// normalizeQuestion validates one decoded question against its type-specific
// contract and converts it to the canonical domain shape. Fail-fast: the
// first violation rejects the reply.
func (p *Parser) normalizeQuestion(rq rawQuestion, index int) (domain.Question, error) {
	text := strings.TrimSpace(rq.Question)
	if text == "" {
		return domain.Question{}, p.reject(fmt.Sprintf("Question %d must have text", index+1))
	}
	if len([]rune(text)) > 1000 {
		return domain.Question{}, p.reject(fmt.Sprintf("Question %d text exceeds 1000 characters", index+1))
	}

	qType := domain.QuestionType(strings.ToLower(strings.TrimSpace(rq.Type)))
	if !qType.IsValid() {
		return domain.Question{}, p.reject(fmt.Sprintf("Question %d has unsupported type %q", index+1, rq.Type))
	}

	q := domain.Question{
		Type:        qType,
		Text:        text,
		Explanation: strings.TrimSpace(rq.Explanation),
		Points:      rq.Points,
	}
	if rq.Difficulty != "" {
		q.Difficulty = domain.ParseDifficulty(rq.Difficulty)
	}

	switch qType {
	case domain.QuestionMultipleChoice:
		options := make([]string, 0, len(rq.Options))
		for _, opt := range rq.Options {
			options = append(options, strings.TrimSpace(opt))
		}
		if len(options) < 2 || len(options) > 6 {
			return domain.Question{}, p.reject(fmt.Sprintf("Question %d must have between 2 and 6 options", index+1))
		}
		seen := make(map[string]bool, len(options))
		for _, opt := range options {
			if opt == "" {
				return domain.Question{}, p.reject(fmt.Sprintf("Question %d has an empty option", index+1))
			}
			if seen[opt] {
				return domain.Question{}, p.reject(fmt.Sprintf("Question %d has duplicate options", index+1))
			}
			seen[opt] = true
		}
		q.Options = options

		correct, err := p.resolveCorrectOption(rq, options)
		if err != nil {
			return domain.Question{}, p.reject(fmt.Sprintf("Question %d: %v", index+1, err))
		}
		q.CorrectOption = correct

	case domain.QuestionTrueFalse:
		value, err := p.resolveBool(rq.CorrectAnswer, rq.CorrectAnswerAlt)
		if err != nil {
			return domain.Question{}, p.reject(fmt.Sprintf("Question %d: %v", index+1, err))
		}
		q.CorrectBool = value

	case domain.QuestionEssay:
		q.Rubric = strings.TrimSpace(rq.Rubric)
		q.Keywords = trimAll(rq.Keywords)

	case domain.QuestionShortAnswer, domain.QuestionFillInBlank:
		q.CorrectAnswers = trimAll(rq.CorrectAnswers)

	case domain.QuestionMatching:
		if len(rq.Pairs) < 2 {
			return domain.Question{}, p.reject(fmt.Sprintf("Question %d must have at least 2 matching pairs", index+1))
		}
		pairs := make([]domain.MatchPair, 0, len(rq.Pairs))
		for _, pair := range rq.Pairs {
			left := strings.TrimSpace(pair.Left)
			right := strings.TrimSpace(pair.Right)
			if left == "" || right == "" {
				return domain.Question{}, p.reject(fmt.Sprintf("Question %d has an incomplete matching pair", index+1))
			}
			pairs = append(pairs, domain.MatchPair{Left: left, Right: right})
		}
		q.Pairs = pairs
	}

	return q, nil
}

// resolveCorrectOption accepts either an option index (correctAnswer) or a
// literal option string (correct_answer) and always returns the canonical
// index form. An answer matching no option is a hard failure.
func (p *Parser) resolveCorrectOption(rq rawQuestion, options []string) (int, error) {
	for _, raw := range []json.RawMessage{rq.CorrectAnswer, rq.CorrectAnswerAlt} {
		if len(raw) == 0 {
			continue
		}
		var idx int
		if err := json.Unmarshal(raw, &idx); err == nil {
			if idx < 0 || idx >= len(options) {
				return 0, fmt.Errorf("correct answer index %d is out of range for %d options", idx, len(options))
			}
			return idx, nil
		}
		var literal string
		if err := json.Unmarshal(raw, &literal); err == nil {
			literal = strings.TrimSpace(literal)
			for i, opt := range options {
				if opt == literal {
					return i, nil
				}
			}
			return 0, fmt.Errorf("correct answer %q does not match any option", literal)
		}
	}
	return 0, fmt.Errorf("missing correct answer")
}

// resolveBool accepts a JSON boolean or the strings "true"/"false", which
// models emit interchangeably.
func (p *Parser) resolveBool(candidates ...json.RawMessage) (bool, error) {
	for _, raw := range candidates {
		if len(raw) == 0 {
			continue
		}
		var b bool
		if err := json.Unmarshal(raw, &b); err == nil {
			return b, nil
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			switch strings.ToLower(strings.TrimSpace(s)) {
			case "true":
				return true, nil
			case "false":
				return false, nil
			}
		}
		return false, fmt.Errorf("correct answer must be a boolean")
	}
	return false, fmt.Errorf("missing correct answer")
}

func (p *Parser) reject(message string) error {
	result := domain.NewValidationResult()
	result.AddError(message)
	return domain.NewQuizValidationError(result)
}

func trimAll(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
