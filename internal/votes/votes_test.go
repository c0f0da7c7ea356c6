package votes

import (
	"errors"
	"math/rand"
	"testing"
)

func TestDelta(t *testing.T) {
	testCases := []struct {
		name     string
		prev     string
		next     string
		expected int
		err      error
	}{
		{"first upvote", None, Up, 1, nil},
		{"first downvote", None, Down, -1, nil},
		{"flip up to down", Up, Down, -2, nil},
		{"flip down to up", Down, Up, 2, nil},
		{"duplicate up", Up, Up, 0, ErrDuplicateVote},
		{"duplicate down", Down, Down, 0, ErrDuplicateVote},
		{"invalid direction", None, "sideways", 0, ErrInvalidDirection},
		{"empty direction", Up, "", 0, ErrInvalidDirection},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			delta, err := Delta(tc.prev, tc.next)
			if !errors.Is(err, tc.err) {
				t.Fatalf("Delta(%q, %q) err = %v; want %v", tc.prev, tc.next, err, tc.err)
			}
			if delta != tc.expected {
				t.Errorf("Delta(%q, %q) = %d; want %d", tc.prev, tc.next, delta, tc.expected)
			}
		})
	}
}

func TestParseDirection(t *testing.T) {
	if _, err := ParseDirection("up"); err != nil {
		t.Errorf("ParseDirection(up) err = %v", err)
	}
	if _, err := ParseDirection("down"); err != nil {
		t.Errorf("ParseDirection(down) err = %v", err)
	}
	if _, err := ParseDirection("Up"); !errors.Is(err, ErrInvalidDirection) {
		t.Errorf("ParseDirection(Up) err = %v; want ErrInvalidDirection", err)
	}
	if _, err := ParseDirection(""); !errors.Is(err, ErrInvalidDirection) {
		t.Errorf("ParseDirection(\"\") err = %v; want ErrInvalidDirection", err)
	}
}

// The documented example: U1 upvotes (0->1), U2 downvotes (1->0),
// U1 flips to down (0->-2).
func TestVoteScenario(t *testing.T) {
	ledger := map[string]string{}
	count := 0

	apply := func(voter, direction string) error {
		delta, err := Delta(ledger[voter], direction)
		if err != nil {
			return err
		}
		count += delta
		ledger[voter] = direction
		return nil
	}

	if err := apply("U1", Up); err != nil {
		t.Fatalf("U1 up: %v", err)
	}
	if count != 1 {
		t.Fatalf("after U1 up, count = %d; want 1", count)
	}

	if err := apply("U2", Down); err != nil {
		t.Fatalf("U2 down: %v", err)
	}
	if count != 0 {
		t.Fatalf("after U2 down, count = %d; want 0", count)
	}

	if err := apply("U1", Down); err != nil {
		t.Fatalf("U1 flip: %v", err)
	}
	if count != -2 {
		t.Fatalf("after U1 flip, count = %d; want -2", count)
	}

	if got := Tally(ledger); got != count {
		t.Errorf("Tally = %d; incremental count = %d", got, count)
	}

	// A repeated downvote must be rejected and leave the count unchanged.
	if err := apply("U1", Down); !errors.Is(err, ErrDuplicateVote) {
		t.Fatalf("duplicate downvote err = %v; want ErrDuplicateVote", err)
	}
	if count != -2 {
		t.Errorf("count changed on duplicate vote: %d", count)
	}
}

// After any sequence of valid vote actions the incrementally maintained
// count must equal the ledger tally.
func TestIncrementalCountMatchesTally(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	voters := []string{"a", "b", "c", "d", "e", "f"}
	directions := []string{Up, Down}

	ledger := map[string]string{}
	count := 0

	for i := 0; i < 500; i++ {
		voter := voters[r.Intn(len(voters))]
		direction := directions[r.Intn(len(directions))]

		delta, err := Delta(ledger[voter], direction)
		if errors.Is(err, ErrDuplicateVote) {
			continue
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		count += delta
		ledger[voter] = direction

		if got := Tally(ledger); got != count {
			t.Fatalf("step %d: count = %d, tally = %d", i, count, got)
		}
	}
}
