// Package prompt renders generation instructions for the external AI
// service. Rendering is deterministic for identical inputs and never fails:
// missing optional fields degrade to language-appropriate placeholders and
// unsupported language codes fall back to the default template.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"quizforge/internal/domain"
)

// ImprovementType names one aspect an improvement prompt may target.
type ImprovementType string

const (
	ImproveClarity           ImprovementType = "clarity"
	ImproveDifficulty        ImprovementType = "difficulty"
	ImproveGrammar           ImprovementType = "grammar"
	ImproveOptions           ImprovementType = "options"
	ImproveComprehensiveness ImprovementType = "comprehensiveness"
)

// AllImprovementTypes lists the supported improvement aspects in a stable order.
var AllImprovementTypes = []ImprovementType{
	ImproveClarity,
	ImproveDifficulty,
	ImproveGrammar,
	ImproveOptions,
	ImproveComprehensiveness,
}

// questionSkeletons gives the exact per-type JSON shape the parser expects.
// Field names here and in the parser must stay in sync.
var questionSkeletons = map[domain.QuestionType]string{
	domain.QuestionMultipleChoice: `    {
      "question": "...",
      "type": "multiple_choice",
      "options": ["...", "...", "...", "..."],
      "correctAnswer": 0,
      "explanation": "...",
      "points": 1
    }`,
	domain.QuestionTrueFalse: `    {
      "question": "...",
      "type": "true_false",
      "correctAnswer": true,
      "explanation": "...",
      "points": 1
    }`,
	domain.QuestionEssay: `    {
      "question": "...",
      "type": "essay",
      "rubric": "...",
      "keywords": ["...", "..."],
      "points": 5
    }`,
	domain.QuestionShortAnswer: `    {
      "question": "...",
      "type": "short_answer",
      "correctAnswers": ["...", "..."],
      "explanation": "...",
      "points": 2
    }`,
	domain.QuestionFillInBlank: `    {
      "question": "... ____ ...",
      "type": "fill_in_blank",
      "correctAnswers": ["..."],
      "explanation": "...",
      "points": 2
    }`,
	domain.QuestionMatching: `    {
      "question": "...",
      "type": "matching",
      "pairs": [{"left": "...", "right": "..."}, {"left": "...", "right": "..."}],
      "points": 3
    }`,
}

// questionExamples holds one illustrative "good" question per type, per
// language, shown to the model verbatim.
var questionExamples = map[domain.Language]map[domain.QuestionType]string{
	domain.LanguageEnglish: {
		domain.QuestionMultipleChoice: `{"question": "Which planet is known as the Red Planet?", "type": "multiple_choice", "options": ["Venus", "Mars", "Jupiter", "Saturn"], "correctAnswer": 1, "explanation": "Mars appears red due to iron oxide on its surface.", "points": 1}`,
		domain.QuestionTrueFalse:      `{"question": "Water boils at 100 degrees Celsius at sea level.", "type": "true_false", "correctAnswer": true, "explanation": "At standard atmospheric pressure the boiling point of water is 100 C.", "points": 1}`,
		domain.QuestionEssay:          `{"question": "Explain how photosynthesis converts light energy into chemical energy.", "type": "essay", "rubric": "Full credit requires mention of chlorophyll, light absorption, and glucose production.", "keywords": ["chlorophyll", "glucose", "light"], "points": 5}`,
		domain.QuestionShortAnswer:    `{"question": "What is the chemical symbol for gold?", "type": "short_answer", "correctAnswers": ["Au"], "explanation": "Au comes from the Latin aurum.", "points": 2}`,
		domain.QuestionFillInBlank:    `{"question": "The powerhouse of the cell is the ____.", "type": "fill_in_blank", "correctAnswers": ["mitochondria", "mitochondrion"], "explanation": "Mitochondria produce most of the cell's ATP.", "points": 2}`,
		domain.QuestionMatching:       `{"question": "Match each country to its capital city.", "type": "matching", "pairs": [{"left": "France", "right": "Paris"}, {"left": "Japan", "right": "Tokyo"}], "points": 3}`,
	},
	domain.LanguageThai: {
		domain.QuestionMultipleChoice: `{"question": "ดาวเคราะห์ดวงใดได้ชื่อว่าดาวเคราะห์สีแดง", "type": "multiple_choice", "options": ["ดาวศุกร์", "ดาวอังคาร", "ดาวพฤหัสบดี", "ดาวเสาร์"], "correctAnswer": 1, "explanation": "ดาวอังคารมีสีแดงจากสนิมเหล็กบนพื้นผิว", "points": 1}`,
		domain.QuestionTrueFalse:      `{"question": "น้ำเดือดที่อุณหภูมิ 100 องศาเซลเซียสที่ระดับน้ำทะเล", "type": "true_false", "correctAnswer": true, "explanation": "ที่ความดันบรรยากาศปกติ น้ำเดือดที่ 100 องศาเซลเซียส", "points": 1}`,
		domain.QuestionEssay:          `{"question": "อธิบายกระบวนการสังเคราะห์ด้วยแสงว่าเปลี่ยนพลังงานแสงเป็นพลังงานเคมีอย่างไร", "type": "essay", "rubric": "ต้องกล่าวถึงคลอโรฟิลล์ การดูดกลืนแสง และการสร้างกลูโคส", "keywords": ["คลอโรฟิลล์", "กลูโคส", "แสง"], "points": 5}`,
		domain.QuestionShortAnswer:    `{"question": "สัญลักษณ์ทางเคมีของทองคำคืออะไร", "type": "short_answer", "correctAnswers": ["Au"], "explanation": "Au มาจากคำละติน aurum", "points": 2}`,
		domain.QuestionFillInBlank:    `{"question": "ออร์แกเนลล์ที่เป็นแหล่งพลังงานของเซลล์คือ ____", "type": "fill_in_blank", "correctAnswers": ["ไมโทคอนเดรีย"], "explanation": "ไมโทคอนเดรียสร้าง ATP ส่วนใหญ่ของเซลล์", "points": 2}`,
		domain.QuestionMatching:       `{"question": "จับคู่ประเทศกับเมืองหลวง", "type": "matching", "pairs": [{"left": "ฝรั่งเศส", "right": "ปารีส"}, {"left": "ญี่ปุ่น", "right": "โตเกียว"}], "points": 3}`,
	},
}

// Builder renders prompts from structured parameters. It is stateless and
// safe for concurrent use.
type Builder struct{}

// NewBuilder creates a new prompt Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// BuildQuizPrompt renders the full generation instruction: source context,
// requirements, the per-type JSON skeleton, one example question, and the
// fixed rule list.
func (b *Builder) BuildQuizPrompt(params domain.GenerationParameters) string {
	v := vocabFor(params.Language)
	var sb strings.Builder

	b.writeContextSection(&sb, v, params)
	b.writeRequirementsSection(&sb, v, params)
	b.writeFormatSection(&sb, v, params)
	b.writeExampleSection(&sb, v, params)
	b.writeRulesSection(&sb, v)

	return sb.String()
}

// BuildRegenerationPrompt renders a prompt that replaces a subset of an
// existing quiz's questions. The questions being replaced are embedded as
// JSON so the model can see exactly what to avoid duplicating.
func (b *Builder) BuildRegenerationPrompt(quiz *domain.Quiz, questionsToReplace []domain.Question, reason string, params domain.GenerationParameters) string {
	v := vocabFor(params.Language)
	var sb strings.Builder

	b.writeContextSection(&sb, v, params)

	title := v.NotSpecified
	if quiz != nil && strings.TrimSpace(quiz.Title) != "" {
		title = quiz.Title
	}
	sb.WriteString(fmt.Sprintf("%s: %s\n", v.ExistingQuizLabel, title))

	replaced, err := json.Marshal(questionsToReplace)
	if err != nil {
		// Marshal of in-memory questions cannot realistically fail; degrade
		// to an empty set rather than aborting prompt rendering.
		replaced = []byte("[]")
	}
	sb.WriteString(fmt.Sprintf("%s:\n%s\n", v.ReplaceQuestionsLabel, string(replaced)))

	if strings.TrimSpace(reason) == "" {
		reason = v.NotSpecified
	}
	sb.WriteString(fmt.Sprintf("%s: %s\n", v.ReplaceReasonLabel, reason))
	sb.WriteString(v.AvoidDuplicateNotice + "\n\n")

	b.writeRequirementsSection(&sb, v, params)
	b.writeFormatSection(&sb, v, params)
	b.writeExampleSection(&sb, v, params)
	b.writeRulesSection(&sb, v)

	return sb.String()
}

// BuildImprovementPrompt renders a prompt asking the model to revise the
// given questions along the requested aspects while preserving intent.
func (b *Builder) BuildImprovementPrompt(questions []domain.Question, targets []ImprovementType, issues []string, params domain.GenerationParameters) string {
	v := vocabFor(params.Language)
	var sb strings.Builder

	sb.WriteString(v.ImproveIntro + "\n\n")

	encoded, err := json.Marshal(questions)
	if err != nil {
		encoded = []byte("[]")
	}
	sb.WriteString(string(encoded) + "\n\n")

	if len(targets) == 0 {
		targets = AllImprovementTypes
	}
	sb.WriteString(v.ImproveTargetsLabel + ":\n")
	for _, t := range targets {
		name, ok := v.Improvements[t]
		if !ok {
			name = string(t)
		}
		sb.WriteString(fmt.Sprintf("- %s\n", name))
	}

	if len(issues) > 0 {
		sb.WriteString("\n" + v.ImproveIssuesLabel + ":\n")
		for _, issue := range issues {
			sb.WriteString(fmt.Sprintf("- %s\n", issue))
		}
	}

	sb.WriteString("\n" + v.PreserveIntentNotice + "\n\n")
	b.writeFormatSection(&sb, v, params)
	b.writeRulesSection(&sb, v)

	return sb.String()
}

func (b *Builder) writeContextSection(sb *strings.Builder, v vocabulary, params domain.GenerationParameters) {
	sb.WriteString(v.ContextHeader + "\n")

	content := strings.TrimSpace(params.Content)
	topic := strings.TrimSpace(params.Topic)
	if content == "" && topic == "" {
		content = v.NotSpecified
		topic = v.NotSpecified
	}
	if content != "" {
		sb.WriteString(fmt.Sprintf("%s:\n%s\n", v.SourceContentLabel, content))
	}
	if topic != "" {
		sb.WriteString(fmt.Sprintf("%s: %s\n", v.TopicLabel, topic))
	}
	sb.WriteString("\n")
}

func (b *Builder) writeRequirementsSection(sb *strings.Builder, v vocabulary, params domain.GenerationParameters) {
	sb.WriteString(v.RequirementsHeader + "\n")

	count := params.NumberOfQuestions
	if count <= 0 {
		count = 5
	}
	sb.WriteString(fmt.Sprintf("%s: %d\n", v.CountLabel, count))

	sb.WriteString(fmt.Sprintf("%s: %s\n", v.TypeLabel, b.typeName(v, params.QuestionType)))

	difficulty := params.Difficulty
	if !difficulty.IsValid() {
		difficulty = domain.DifficultyMedium
	}
	sb.WriteString(fmt.Sprintf("%s: %s\n", v.DifficultyLabel, v.DifficultyNames[difficulty]))

	category := strings.TrimSpace(params.Category)
	if category == "" {
		category = v.NotSpecified
	}
	sb.WriteString(fmt.Sprintf("%s: %s\n", v.CategoryLabel, category))

	if instructions := strings.TrimSpace(params.Instructions); instructions != "" {
		sb.WriteString(fmt.Sprintf("%s: %s\n", v.InstructionsLabel, instructions))
	}
	sb.WriteString("\n")
}

func (b *Builder) writeFormatSection(sb *strings.Builder, v vocabulary, params domain.GenerationParameters) {
	sb.WriteString(v.FormatHeader + "\n")

	skeleton, ok := questionSkeletons[params.QuestionType]
	if !ok {
		skeleton = questionSkeletons[domain.QuestionMultipleChoice]
	}
	sb.WriteString("{\n")
	sb.WriteString("  \"title\": \"...\",\n")
	sb.WriteString("  \"description\": \"...\",\n")
	sb.WriteString("  \"questions\": [\n")
	sb.WriteString(skeleton + "\n")
	sb.WriteString("  ]\n")
	sb.WriteString("}\n\n")
}

func (b *Builder) writeExampleSection(sb *strings.Builder, v vocabulary, params domain.GenerationParameters) {
	lang := params.Language
	examples, ok := questionExamples[lang]
	if !ok {
		examples = questionExamples[domain.LanguageThai]
	}
	example, ok := examples[params.QuestionType]
	if !ok {
		example = examples[domain.QuestionMultipleChoice]
	}

	sb.WriteString(v.ExampleHeader + "\n")
	sb.WriteString(example + "\n\n")
}

func (b *Builder) writeRulesSection(sb *strings.Builder, v vocabulary) {
	sb.WriteString(v.RulesHeader + "\n")
	for i, rule := range v.Rules {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, rule))
	}
	sb.WriteString("\n" + v.RespondWithJSONNotice + "\n")
}

func (b *Builder) typeName(v vocabulary, t domain.QuestionType) string {
	if name, ok := v.TypeNames[t]; ok {
		return name
	}
	if t == "" {
		return v.TypeNames[domain.QuestionMultipleChoice]
	}
	return string(t)
}
