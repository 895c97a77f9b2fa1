package validator

import "fmt"

// messageKey identifies one validator message in the locale catalogs.
type messageKey string

const (
	msgTitleRequired    messageKey = "title_required"
	msgTitleLength      messageKey = "title_length"
	msgTitleCharset     messageKey = "title_charset"
	msgDescTooLong      messageKey = "description_too_long"
	msgInvalidCategory  messageKey = "invalid_category"
	msgInvalidType      messageKey = "invalid_question_type"
	msgInvalidDifficulty messageKey = "invalid_difficulty"
	msgInvalidStatus    messageKey = "invalid_status"
	msgTimeLimitRange   messageKey = "time_limit_range"
	msgUserIDRequired   messageKey = "user_id_required"

	msgTooFewQuestions     messageKey = "too_few_questions"
	msgTooManyQuestions    messageKey = "too_many_questions"
	msgQuestionTextMissing messageKey = "question_text_missing"
	msgQuestionTextTooLong messageKey = "question_text_too_long"
	msgQuestionTypeInvalid messageKey = "question_type_invalid"
	msgOptionsCount        messageKey = "options_count"
	msgOptionEmpty         messageKey = "option_empty"
	msgOptionTooLong       messageKey = "option_too_long"
	msgOptionsDuplicate    messageKey = "options_duplicate"
	msgAnswerOutOfRange    messageKey = "answer_out_of_range"
	msgExplanationTooLong  messageKey = "explanation_too_long"
	msgPointsRange         messageKey = "points_range"
	msgDuplicateQuestion   messageKey = "duplicate_question"

	msgTooManyTags      messageKey = "too_many_tags"
	msgTagTooLong       messageKey = "tag_too_long"
	msgFolderIDPositive messageKey = "folder_id_positive"

	msgPublishedNeedsQuestions messageKey = "published_needs_questions"
	msgPublicNeedsDescription  messageKey = "public_needs_description"
	msgPublicMustNotBeDraft    messageKey = "public_must_not_be_draft"
	msgChoiceMinOptions        messageKey = "choice_min_options"
	msgTrueFalseOptions        messageKey = "true_false_options"

	pubTitleTooShort       messageKey = "pub_title_too_short"
	pubDescriptionTooShort messageKey = "pub_description_too_short"
	pubTooFewQuestions     messageKey = "pub_too_few_questions"
	pubNoTimeLimit         messageKey = "pub_no_time_limit"
	pubFewExplanations     messageKey = "pub_few_explanations"

	reqTitle        messageKey = "req_title"
	reqDescription  messageKey = "req_description"
	reqQuestions    messageKey = "req_questions"
	reqTimeLimit    messageKey = "req_time_limit"
	reqExplanations messageKey = "req_explanations"

	qiLowTypeVariety      messageKey = "qi_low_type_variety"
	qsLowTypeVariety      messageKey = "qs_low_type_variety"
	qiDifficultyImbalance messageKey = "qi_difficulty_imbalance"
	qsDifficultyImbalance messageKey = "qs_difficulty_imbalance"
	qiLengthInconsistency messageKey = "qi_length_inconsistency"
	qsLengthInconsistency messageKey = "qs_length_inconsistency"
	qiAnswerPositionBias  messageKey = "qi_answer_position_bias"
	qsAnswerPositionBias  messageKey = "qs_answer_position_bias"
)

type catalog map[messageKey]string

// catalogs holds every validator message keyed by locale. Thai is the
// application default; English is available for en requests.
var catalogs = map[string]catalog{
	"th": {
		msgTitleRequired:     "ต้องระบุชื่อควิซ",
		msgTitleLength:       "ชื่อควิซต้องมีความยาว %d-%d ตัวอักษร",
		msgTitleCharset:      "ชื่อควิซมีอักขระที่ไม่อนุญาต",
		msgDescTooLong:       "คำอธิบายต้องไม่เกิน %d ตัวอักษร",
		msgInvalidCategory:   "หมวดหมู่ %q ไม่ถูกต้อง",
		msgInvalidType:       "ประเภทคำถาม %q ไม่ถูกต้อง",
		msgInvalidDifficulty: "ระดับความยาก %q ไม่ถูกต้อง",
		msgInvalidStatus:     "สถานะ %q ไม่ถูกต้อง",
		msgTimeLimitRange:    "เวลาจำกัดต้องอยู่ระหว่าง 1-%d นาที",
		msgUserIDRequired:    "ต้องระบุผู้สร้างควิซ",

		msgTooFewQuestions:     "ควิซต้องมีอย่างน้อย %d คำถาม",
		msgTooManyQuestions:    "ควิซมีคำถามเกินจำนวนสูงสุด %d ข้อ",
		msgQuestionTextMissing: "คำถามข้อที่ %d ต้องมีข้อความ",
		msgQuestionTextTooLong: "คำถามข้อที่ %d ยาวเกิน %d ตัวอักษร",
		msgQuestionTypeInvalid: "คำถามข้อที่ %d มีประเภท %q ที่ไม่รองรับ",
		msgOptionsCount:        "คำถามข้อที่ %d ต้องมีตัวเลือก %d-%d ข้อ",
		msgOptionEmpty:         "คำถามข้อที่ %d มีตัวเลือกว่าง",
		msgOptionTooLong:       "คำถามข้อที่ %d มีตัวเลือกยาวเกิน %d ตัวอักษร",
		msgOptionsDuplicate:    "คำถามข้อที่ %d มีตัวเลือกซ้ำกัน",
		msgAnswerOutOfRange:    "คำถามข้อที่ %d มีคำตอบที่ถูกต้อง (%d) อยู่นอกช่วงตัวเลือก %d ข้อ",
		msgExplanationTooLong:  "คำอธิบายของคำถามข้อที่ %d ยาวเกิน %d ตัวอักษร",
		msgPointsRange:         "คะแนนของคำถามข้อที่ %d ต้องอยู่ระหว่าง %d-%d",
		msgDuplicateQuestion:   "คำถามข้อที่ %d ซ้ำกับข้อที่ %d",

		msgTooManyTags:      "แท็กต้องไม่เกิน %d รายการ",
		msgTagTooLong:       "แท็กแต่ละรายการต้องไม่เกิน %d ตัวอักษร",
		msgFolderIDPositive: "รหัสโฟลเดอร์ต้องเป็นจำนวนเต็มบวก",

		msgPublishedNeedsQuestions: "ควิซที่เผยแพร่แล้วต้องมีอย่างน้อย 1 คำถาม",
		msgPublicNeedsDescription:  "ควิซสาธารณะต้องมีคำอธิบาย",
		msgPublicMustNotBeDraft:    "ควิซสาธารณะต้องไม่อยู่ในสถานะฉบับร่าง",
		msgChoiceMinOptions:        "คำถามปรนัยข้อที่ %d ต้องมีอย่างน้อย %d ตัวเลือก",
		msgTrueFalseOptions:        "คำถามถูก/ผิดข้อที่ %d ต้องมีตัวเลือก 2 ข้อเท่านั้น",

		pubTitleTooShort:       "ชื่อควิซต้องยาวอย่างน้อย %d ตัวอักษรก่อนเผยแพร่",
		pubDescriptionTooShort: "คำอธิบายต้องยาวอย่างน้อย %d ตัวอักษรก่อนเผยแพร่",
		pubTooFewQuestions:     "ต้องมีอย่างน้อย %d คำถามก่อนเผยแพร่",
		pubNoTimeLimit:         "ต้องกำหนดเวลาจำกัดก่อนเผยแพร่",
		pubFewExplanations:     "อย่างน้อย %d%% ของคำถามต้องมีคำอธิบายก่อนเผยแพร่",

		reqTitle:        "ชื่อควิซยาวอย่างน้อย %d ตัวอักษร",
		reqDescription:  "คำอธิบายยาวอย่างน้อย %d ตัวอักษร",
		reqQuestions:    "มีคำถามอย่างน้อย %d ข้อ",
		reqTimeLimit:    "กำหนดเวลาจำกัด",
		reqExplanations: "คำถามอย่างน้อย %d%% มีคำอธิบาย",

		qiLowTypeVariety:      "ควิซใช้ประเภทคำถามน้อยเกินไปสำหรับจำนวนคำถามขนาดนี้",
		qsLowTypeVariety:      "เพิ่มประเภทคำถามให้หลากหลาย เช่น ถูก/ผิด หรือตอบสั้น",
		qiDifficultyImbalance: "การกระจายระดับความยากไม่สมดุล",
		qsDifficultyImbalance: "กระจายคำถามให้ครอบคลุมหลายระดับความยากมากขึ้น",
		qiLengthInconsistency: "ความยาวของคำถามแต่ละข้อแตกต่างกันมาก",
		qsLengthInconsistency: "ปรับความยาวของคำถามให้ใกล้เคียงกัน",
		qiAnswerPositionBias:  "คำตอบที่ถูกต้องกระจุกอยู่ที่ตำแหน่งตัวเลือกเดิมบ่อยเกินไป",
		qsAnswerPositionBias:  "สลับตำแหน่งคำตอบที่ถูกต้องให้กระจายทุกตัวเลือก",
	},
	"en": {
		msgTitleRequired:     "Quiz title is required",
		msgTitleLength:       "Quiz title must be between %d and %d characters",
		msgTitleCharset:      "Quiz title contains disallowed characters",
		msgDescTooLong:       "Description must not exceed %d characters",
		msgInvalidCategory:   "Invalid category %q",
		msgInvalidType:       "Invalid question type %q",
		msgInvalidDifficulty: "Invalid difficulty %q",
		msgInvalidStatus:     "Invalid status %q",
		msgTimeLimitRange:    "Time limit must be between 1 and %d minutes",
		msgUserIDRequired:    "Quiz owner is required",

		msgTooFewQuestions:     "Quiz must have at least %d question(s)",
		msgTooManyQuestions:    "Quiz exceeds the maximum of %d questions",
		msgQuestionTextMissing: "Question %d must have text",
		msgQuestionTextTooLong: "Question %d exceeds %d characters",
		msgQuestionTypeInvalid: "Question %d has unsupported type %q",
		msgOptionsCount:        "Question %d must have between %d and %d options",
		msgOptionEmpty:         "Question %d has an empty option",
		msgOptionTooLong:       "Question %d has an option longer than %d characters",
		msgOptionsDuplicate:    "Question %d has duplicate options",
		msgAnswerOutOfRange:    "Question %d has correct answer index %d out of range for %d options",
		msgExplanationTooLong:  "Question %d explanation exceeds %d characters",
		msgPointsRange:         "Question %d points must be between %d and %d",
		msgDuplicateQuestion:   "Question %d duplicates question %d",

		msgTooManyTags:      "No more than %d tags are allowed",
		msgTagTooLong:       "Each tag must not exceed %d characters",
		msgFolderIDPositive: "Folder ID must be a positive integer",

		msgPublishedNeedsQuestions: "A published quiz must have at least one question",
		msgPublicNeedsDescription:  "A public quiz must have a description",
		msgPublicMustNotBeDraft:    "A public quiz must not be in draft status",
		msgChoiceMinOptions:        "Multiple-choice question %d must have at least %d options",
		msgTrueFalseOptions:        "True/false question %d must have exactly 2 options",

		pubTitleTooShort:       "Title must be at least %d characters before publication",
		pubDescriptionTooShort: "Description must be at least %d characters before publication",
		pubTooFewQuestions:     "At least %d questions are required before publication",
		pubNoTimeLimit:         "A time limit must be set before publication",
		pubFewExplanations:     "At least %d%% of questions must carry an explanation before publication",

		reqTitle:        "Title at least %d characters",
		reqDescription:  "Description at least %d characters",
		reqQuestions:    "At least %d questions",
		reqTimeLimit:    "Time limit set",
		reqExplanations: "At least %d%% of questions explained",

		qiLowTypeVariety:      "The quiz uses too few question types for its size",
		qsLowTypeVariety:      "Mix in additional question types such as true/false or short answer",
		qiDifficultyImbalance: "Question difficulties are unevenly distributed",
		qsDifficultyImbalance: "Spread questions across more difficulty levels",
		qiLengthInconsistency: "Question lengths vary widely",
		qsLengthInconsistency: "Even out the length of question texts",
		qiAnswerPositionBias:  "Correct answers cluster at the same option position",
		qsAnswerPositionBias:  "Distribute correct answers across all option positions",
	},
}

// msg renders a catalog message for the validator's locale.
func (v *Validator) msg(key messageKey, args ...interface{}) string {
	template, ok := catalogs[v.locale][key]
	if !ok {
		template = catalogs["th"][key]
	}
	if len(args) == 0 {
		return template
	}
	return fmt.Sprintf(template, args...)
}
