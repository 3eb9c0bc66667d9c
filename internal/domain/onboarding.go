package domain

import "time"

type Question struct {
	ID        string           `json:"id"`
	Text      string           `json:"text"`
	Position  int              `json:"position"`
	Options   []QuestionOption `json:"options,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

// QuestionOption carries a Reference tag; answer counts per tag feed the
// user's reference-priority table.
type QuestionOption struct {
	ID         string `json:"id"`
	QuestionID string `json:"questionId"`
	Text       string `json:"text"`
	Reference  string `json:"reference"`
}

// Selection is one submitted answer: which option was picked for a question.
type Selection struct {
	QuestionID string `json:"questionId"`
	OptionID   string `json:"selectedOptionId"`
}

type Answer struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	QuestionID string    `json:"questionId"`
	OptionID   string    `json:"selectedOptionId"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type ReferencePriority struct {
	UserID    string `json:"userId"`
	Reference string `json:"reference"`
	Count     int    `json:"count"`
}
