package entities

import "time"

// Question is an advisory question asked by a user
type Question struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags,omitempty"`
	AskedByID   string    `json:"askedById"`
	AskedByName string    `json:"askedByName"`
	AnswerCount int       `json:"answerCount"`
	Views       int64     `json:"views"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
