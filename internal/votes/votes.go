// Package votes implements the vote-reconciliation rules shared by question
// and answer voting: given a voter's previous direction on an item and the
// direction they are requesting now, it yields the signed adjustment to the
// item's vote count. The persistence layer applies that delta and the ledger
// entry in a single conditional update.
package votes

import "errors"

const (
	Up   = "up"
	Down = "down"

	// None marks the absence of a prior vote in a ledger lookup.
	None = ""
)

var (
	ErrInvalidDirection = errors.New("direction must be 'up' or 'down'")
	ErrDuplicateVote    = errors.New("already voted in this direction")
)

// ParseDirection validates a requested direction string.
func ParseDirection(s string) (string, error) {
	if s != Up && s != Down {
		return "", ErrInvalidDirection
	}
	return s, nil
}

// Delta returns the signed vote-count adjustment for a voter moving from
// prev to next. prev is None when the voter has no ledger entry yet.
//
//	None -> up    +1
//	None -> down  -1
//	up   -> down  -2  (removes the +1, applies the -1)
//	down -> up    +2
//
// Requesting the direction already held is a duplicate and yields
// ErrDuplicateVote; no adjustment may be applied in that case.
func Delta(prev, next string) (int, error) {
	if next != Up && next != Down {
		return 0, ErrInvalidDirection
	}
	if prev == next {
		return 0, ErrDuplicateVote
	}

	switch {
	case prev == None && next == Up:
		return 1, nil
	case prev == None && next == Down:
		return -1, nil
	case prev == Up && next == Down:
		return -2, nil
	default: // down -> up
		return 2, nil
	}
}

// Tally recomputes a vote count from a full ledger. The stored count is
// maintained incrementally via Delta and must always equal this sum; the
// consistency tests rely on that.
func Tally(ledger map[string]string) int {
	total := 0
	for _, direction := range ledger {
		switch direction {
		case Up:
			total++
		case Down:
			total--
		}
	}
	return total
}
