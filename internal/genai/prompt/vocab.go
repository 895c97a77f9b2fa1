package prompt

import "quizforge/internal/domain"

// vocabulary holds every language-dependent fragment of the prompt
// templates. One entry per supported language; unknown languages fall back
// to Thai, the application default.
type vocabulary struct {
	NotSpecified string

	ContextHeader      string
	RequirementsHeader string
	FormatHeader       string
	ExampleHeader      string
	RulesHeader        string

	SourceContentLabel string
	TopicLabel         string
	CategoryLabel      string
	CountLabel         string
	TypeLabel          string
	DifficultyLabel    string
	InstructionsLabel  string

	ExistingQuizLabel     string
	ReplaceQuestionsLabel string
	ReplaceReasonLabel    string
	AvoidDuplicateNotice  string

	ImproveIntro          string
	ImproveTargetsLabel   string
	ImproveIssuesLabel    string
	PreserveIntentNotice  string
	RespondWithJSONNotice string

	TypeNames       map[domain.QuestionType]string
	DifficultyNames map[domain.Difficulty]string
	Improvements    map[ImprovementType]string

	Rules []string
}

var vocabularies = map[domain.Language]vocabulary{
	domain.LanguageThai: {
		NotSpecified: "ไม่ระบุ",

		ContextHeader:      "## เนื้อหาต้นทาง",
		RequirementsHeader: "## ข้อกำหนดของควิซ",
		FormatHeader:       "## รูปแบบ JSON ที่ต้องตอบกลับ",
		ExampleHeader:      "## ตัวอย่างคำถามที่ดี",
		RulesHeader:        "## กฎการสร้างคำถาม",

		SourceContentLabel: "เนื้อหา",
		TopicLabel:         "หัวข้อ",
		CategoryLabel:      "หมวดหมู่",
		CountLabel:         "จำนวนคำถาม",
		TypeLabel:          "ประเภทคำถาม",
		DifficultyLabel:    "ระดับความยาก",
		InstructionsLabel:  "คำสั่งเพิ่มเติม",

		ExistingQuizLabel:     "ควิซเดิม",
		ReplaceQuestionsLabel: "คำถามที่ต้องการสร้างใหม่ (JSON)",
		ReplaceReasonLabel:    "เหตุผลในการสร้างใหม่",
		AvoidDuplicateNotice:  "ห้ามสร้างคำถามที่ซ้ำหรือใกล้เคียงกับข้อความคำถามเดิมข้างต้น",

		ImproveIntro:          "ปรับปรุงคำถามต่อไปนี้โดยคงเจตนาเดิมของคำถามไว้",
		ImproveTargetsLabel:   "ด้านที่ต้องการปรับปรุง",
		ImproveIssuesLabel:    "ปัญหาที่พบ",
		PreserveIntentNotice:  "รักษาเจตนาและเนื้อหาหลักของคำถามเดิม เปลี่ยนเฉพาะส่วนที่ระบุ",
		RespondWithJSONNotice: "ตอบกลับเป็น JSON เท่านั้น ห้ามมีข้อความอื่นนอก JSON",

		TypeNames: map[domain.QuestionType]string{
			domain.QuestionMultipleChoice: "ปรนัย (เลือกตอบ)",
			domain.QuestionTrueFalse:      "ถูก/ผิด",
			domain.QuestionEssay:          "อัตนัย (เรียงความ)",
			domain.QuestionShortAnswer:    "ตอบสั้น",
			domain.QuestionFillInBlank:    "เติมคำในช่องว่าง",
			domain.QuestionMatching:       "จับคู่",
		},
		DifficultyNames: map[domain.Difficulty]string{
			domain.DifficultyEasy:   "ง่าย",
			domain.DifficultyMedium: "ปานกลาง",
			domain.DifficultyHard:   "ยาก",
			domain.DifficultyExpert: "ยากมาก",
		},
		Improvements: map[ImprovementType]string{
			ImproveClarity:           "ความชัดเจนของคำถาม",
			ImproveDifficulty:        "ระดับความยากให้เหมาะสม",
			ImproveGrammar:           "ไวยากรณ์และการสะกดคำ",
			ImproveOptions:           "คุณภาพของตัวเลือก",
			ImproveComprehensiveness: "ความครอบคลุมของเนื้อหา",
		},
		Rules: []string{
			"ห้ามมีคำถามซ้ำกันภายในชุดเดียวกัน",
			"คำตอบที่ถูกต้องต้องตรวจสอบได้จากเนื้อหาที่ให้มา",
			"ใช้ภาษาเดียวกันทั้งคำถามและตัวเลือก ห้ามผสมหลายภาษา",
			"ตัวเลือกของข้อปรนัยต้องไม่ซ้ำกันและมีความยาวใกล้เคียงกัน",
			"ระบุ explanation สั้น ๆ ว่าทำไมคำตอบนั้นถูกต้อง",
		},
	},
	domain.LanguageEnglish: {
		NotSpecified: "not specified",

		ContextHeader:      "## Source material",
		RequirementsHeader: "## Quiz requirements",
		FormatHeader:       "## Required JSON response format",
		ExampleHeader:      "## Example of a good question",
		RulesHeader:        "## Generation rules",

		SourceContentLabel: "Content",
		TopicLabel:         "Topic",
		CategoryLabel:      "Category",
		CountLabel:         "Number of questions",
		TypeLabel:          "Question type",
		DifficultyLabel:    "Difficulty",
		InstructionsLabel:  "Additional instructions",

		ExistingQuizLabel:     "Existing quiz",
		ReplaceQuestionsLabel: "Questions to regenerate (JSON)",
		ReplaceReasonLabel:    "Reason for regeneration",
		AvoidDuplicateNotice:  "Do not duplicate or closely paraphrase the original question texts above.",

		ImproveIntro:          "Improve the following questions while preserving their original intent.",
		ImproveTargetsLabel:   "Aspects to improve",
		ImproveIssuesLabel:    "Known issues",
		PreserveIntentNotice:  "Keep the intent and core content of each question; change only the aspects listed.",
		RespondWithJSONNotice: "Respond with JSON only. Do not add any text outside the JSON.",

		TypeNames: map[domain.QuestionType]string{
			domain.QuestionMultipleChoice: "multiple choice",
			domain.QuestionTrueFalse:      "true/false",
			domain.QuestionEssay:          "essay",
			domain.QuestionShortAnswer:    "short answer",
			domain.QuestionFillInBlank:    "fill in the blank",
			domain.QuestionMatching:       "matching",
		},
		DifficultyNames: map[domain.Difficulty]string{
			domain.DifficultyEasy:   "easy",
			domain.DifficultyMedium: "medium",
			domain.DifficultyHard:   "hard",
			domain.DifficultyExpert: "expert",
		},
		Improvements: map[ImprovementType]string{
			ImproveClarity:           "question clarity",
			ImproveDifficulty:        "appropriate difficulty",
			ImproveGrammar:           "grammar and spelling",
			ImproveOptions:           "answer option quality",
			ImproveComprehensiveness: "content coverage",
		},
		Rules: []string{
			"No duplicate questions within the set.",
			"Every correct answer must be verifiable from the supplied material.",
			"Use a single language throughout; never mix languages within a question.",
			"Multiple-choice options must be unique and of comparable length.",
			"Include a short explanation of why the answer is correct.",
		},
	},
}

// vocabFor resolves the vocabulary for a language. Unsupported codes degrade
// to the Thai default rather than failing; prompt rendering is advisory,
// not authoritative.
func vocabFor(lang domain.Language) vocabulary {
	if v, ok := vocabularies[lang]; ok {
		return v
	}
	return vocabularies[domain.LanguageThai]
}
