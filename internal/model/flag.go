package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	FlagTargetQuestion = "question"
	FlagTargetAnswer   = "answer"
)

// Flag records are append-only; moderation reads them newest first.
type Flag struct {
	ID         uuid.UUID `json:"id"`
	TargetType string    `json:"target_type"`
	TargetID   string    `json:"target_id"`
	FlaggedBy  uuid.UUID `json:"flagged_by"`
	CreatedAt  time.Time `json:"created_at"`
}
