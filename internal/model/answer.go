package model

import (
	"time"

	"github.com/google/uuid"
)

type Answer struct {
	ID         uuid.UUID         `json:"id"`
	QuestionID uuid.UUID         `json:"question_id"`
	Content    string            `json:"content"`
	UserID     string            `json:"user_id"`
	IsAccepted bool              `json:"is_accepted"`
	Votes      int               `json:"votes"`
	Voters     map[string]string `json:"voters,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`

	// Derived at read time, never stored.
	Author       string `json:"author,omitempty"`
	AuthorAvatar string `json:"author_avatar,omitempty"`
}

type CreateAnswerRequest struct {
	Content string `json:"content" validate:"required"`
}
