package models

// AnswerOption is one of a question's four choices
type AnswerOption struct {
	Text      string `json:"text"`
	ImageURL  string `json:"image_url,omitempty"`
	IsCorrect bool   `json:"is_correct"`
}

// Question is a generated multiple-choice question. Never persisted;
// it exists only in the response.
type Question struct {
	QuestionText  string         `json:"question_text"`
	ImageURL      string         `json:"image_url,omitempty"`
	Options       []AnswerOption `json:"options"`
	CorrectAnswer string         `json:"correct_answer,omitempty"`
	Difficulty    string         `json:"difficulty,omitempty"`
}

// GameSession is the payload for a freshly started game. Progress and
// scoring happen client-side; the session id is just a handle.
type GameSession struct {
	SessionID            string     `json:"session_id"`
	Questions            []Question `json:"questions"`
	CurrentQuestionIndex int        `json:"current_question_index"`
	Score                int        `json:"score"`
}
