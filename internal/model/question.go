package model

import (
	"time"

	"github.com/google/uuid"
)

// Question rows keep the author reference as plain text: rows imported from
// the legacy system can hold values that are not valid UUIDs, and reads must
// still succeed for them.
type Question struct {
	ID               uuid.UUID         `json:"id"`
	Title            string            `json:"title"`
	Description      string            `json:"description"`
	Tags             []string          `json:"tags"`
	UserID           string            `json:"user_id"`
	Votes            int               `json:"votes"`
	Voters           map[string]string `json:"voters,omitempty"`
	AcceptedAnswerID *uuid.UUID        `json:"accepted_answer_id"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`

	// Derived at read time, never stored.
	Author       string `json:"author,omitempty"`
	AuthorAvatar string `json:"author_avatar,omitempty"`
	AnswerCount  int    `json:"answer_count"`
}

type CreateQuestionRequest struct {
	Title       string   `json:"title" validate:"required,min=4"`
	Description string   `json:"description" validate:"required"`
	Tags        []string `json:"tags"`
}

type VoteRequest struct {
	Direction string `json:"direction" validate:"required,direction"`
}

type VoteResponse struct {
	Votes int `json:"votes"`
}
