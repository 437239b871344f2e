package dto

const (
	DailySetReady             = "READY"
	DailySetNoSubjectSelected = "NO_SUBJECT_SELECTED"
	DailySetBankExhausted     = "QUESTION_BANK_EXHAUSTED"
)

// DailyQuestionResponse is the student's view of a question: the answer and
// explanation appear only inside Attempt, once the question is answered.
type DailyQuestionResponse struct {
	ID           uint             `json:"id"`
	Title        string           `json:"title"`
	Content      string           `json:"content"`
	OptionA      string           `json:"optionA"`
	OptionB      string           `json:"optionB"`
	OptionC      string           `json:"optionC"`
	OptionD      string           `json:"optionD"`
	Difficulty   string           `json:"difficulty"`
	ExamCategory string           `json:"examCategory"`
	Year         *int             `json:"year,omitempty"`
	Source       *string          `json:"source,omitempty"`
	Attempt      *AttemptResponse `json:"attempt,omitempty"`
}

type DailySetResponse struct {
	Status      string                  `json:"status"`
	Date        string                  `json:"date"`
	SubjectID   *uint                   `json:"subjectId,omitempty"`
	SubjectName string                  `json:"subjectName,omitempty"`
	Questions   []DailyQuestionResponse `json:"questions"`
	Answered    int                     `json:"answered"`
	Completed   bool                    `json:"completed"`
	Score       *int                    `json:"score,omitempty"`
}
