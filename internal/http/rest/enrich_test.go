package rest

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/qhub/qhub_api/internal/model"
)

func TestResolveAuthor(t *testing.T) {
	known := uuid.New()
	missing := uuid.New()

	find := func(_ context.Context, userID string) (model.User, error) {
		if userID == known.String() {
			return model.User{ID: known, Username: "gopher"}, nil
		}
		return model.User{}, errors.New("no such user")
	}

	tests := []struct {
		name       string
		userID     string
		wantAuthor string
		wantAvatar string
	}{
		{"resolved user", known.String(), "gopher", "GO"},
		{"blank author reference", "", "Anonymous", "A"},
		{"legacy non-uuid reference", "not-a-valid-id", "Legacy User", "LU"},
		{"deleted account", missing.String(), "Unknown User", "U"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			author, avatar := resolveAuthor(context.Background(), tt.userID, find)
			if author != tt.wantAuthor || avatar != tt.wantAvatar {
				t.Errorf("resolveAuthor(%q) = (%q, %q), want (%q, %q)",
					tt.userID, author, avatar, tt.wantAuthor, tt.wantAvatar)
			}
		})
	}
}

func TestAcceptedIDOf(t *testing.T) {
	if got := acceptedIDOf(model.Question{}); got != nil {
		t.Errorf("acceptedIDOf(no accepted answer) = %q, want nil", *got)
	}

	answerID := uuid.New()
	q := model.Question{AcceptedAnswerID: &answerID}
	got := acceptedIDOf(q)
	if got == nil || *got != answerID.String() {
		t.Errorf("acceptedIDOf = %v, want %s", got, answerID)
	}
}

// Acceptance is derived from the question's accepted_answer_id pointer at
// read time; the stored is_accepted flag on the answer row must never
// surface an answer the question does not point to.
func TestEnrichAnswerAcceptance(t *testing.T) {
	api := &API{}
	answerID := uuid.New()
	otherID := uuid.New()
	otherStr := otherID.String()
	matchStr := answerID.String()

	// Blank UserID keeps author resolution on the placeholder path, so no
	// user lookup happens.
	answer := model.Answer{ID: answerID, UserID: ""}

	tests := []struct {
		name         string
		storedFlag   bool
		acceptedID   *string
		wantAccepted bool
	}{
		{"question accepts nothing", false, nil, false},
		{"question points at this answer", false, &matchStr, true},
		{"question points at another answer", false, &otherStr, false},
		{"stale stored flag, question points elsewhere", true, &otherStr, false},
		{"stale stored flag, question accepts nothing", true, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := answer
			a.IsAccepted = tt.storedFlag
			got := api.enrichAnswer(context.Background(), a, tt.acceptedID)
			if got.IsAccepted != tt.wantAccepted {
				t.Errorf("IsAccepted = %v, want %v", got.IsAccepted, tt.wantAccepted)
			}
		})
	}
}

func TestBuildFanOut(t *testing.T) {
	questionAuthor := uuid.New()
	answerAuthor := uuid.New()
	alice := uuid.New()
	bob := uuid.New()

	users := map[string]uuid.UUID{
		"alice":    alice,
		"bob":      bob,
		"answerer": answerAuthor,
	}
	resolve := func(username string) (uuid.UUID, bool) {
		id, ok := users[username]
		return id, ok
	}

	question := model.Question{
		ID:     uuid.New(),
		Title:  "How do I parse JSON?",
		UserID: questionAuthor.String(),
	}

	t.Run("question author and mentions", func(t *testing.T) {
		answer := model.Answer{
			UserID:  answerAuthor.String(),
			Content: "ask @alice or @bob, also @alice again and @ghost",
		}
		targets := buildFanOut(question, answer, "answerer", resolve)
		if len(targets) != 3 {
			t.Fatalf("got %d targets, want 3", len(targets))
		}
		if targets[0].UserID != questionAuthor {
			t.Errorf("first target = %s, want question author", targets[0].UserID)
		}
		if want := "answerer answered your question: How do I parse JSON?"; targets[0].Message != want {
			t.Errorf("author message = %q, want %q", targets[0].Message, want)
		}
		if targets[1].UserID != alice || targets[2].UserID != bob {
			t.Errorf("mention targets = %s, %s; want alice, bob", targets[1].UserID, targets[2].UserID)
		}
		if want := "answerer mentioned you in an answer"; targets[1].Message != want {
			t.Errorf("mention message = %q, want %q", targets[1].Message, want)
		}
	})

	t.Run("self answer skips question author", func(t *testing.T) {
		answer := model.Answer{
			UserID:  question.UserID,
			Content: "answering my own question",
		}
		targets := buildFanOut(question, answer, "asker", resolve)
		if len(targets) != 0 {
			t.Fatalf("got %d targets, want 0", len(targets))
		}
	})

	t.Run("self mention is dropped", func(t *testing.T) {
		answer := model.Answer{
			UserID:  answerAuthor.String(),
			Content: "as @answerer I agree with @alice",
		}
		targets := buildFanOut(question, answer, "answerer", resolve)
		if len(targets) != 2 {
			t.Fatalf("got %d targets, want 2", len(targets))
		}
		if targets[1].UserID != alice {
			t.Errorf("mention target = %s, want alice", targets[1].UserID)
		}
	})

	t.Run("legacy question author gets no notification", func(t *testing.T) {
		legacy := model.Question{ID: uuid.New(), Title: "old", UserID: "legacy-author"}
		answer := model.Answer{
			UserID:  answerAuthor.String(),
			Content: "no mentions here",
		}
		targets := buildFanOut(legacy, answer, "answerer", resolve)
		if len(targets) != 0 {
			t.Fatalf("got %d targets, want 0", len(targets))
		}
	})
}
