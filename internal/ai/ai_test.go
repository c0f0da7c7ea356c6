package ai

import (
	"math"
	"reflect"
	"testing"
)

func TestCosineSimilarity(t *testing.T) {
	testCases := []struct {
		name     string
		a, b     []float32
		expected float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"length mismatch", []float32{1, 2}, []float32{1}, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
		{"empty", nil, nil, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := cosineSimilarity(tc.a, tc.b)
			if math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("cosineSimilarity = %f; want %f", got, tc.expected)
			}
		})
	}
}

func TestRankByScore(t *testing.T) {
	items := []string{"React", "JWT", "Python", "MongoDB"}
	scores := []float64{0.2, 0.9, 0.9, 0.5}

	got := rankByScore(items, scores)
	// Ties keep vocabulary order: JWT before Python.
	expected := []string{"JWT", "Python", "MongoDB", "React"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("rankByScore = %v; want %v", got, expected)
	}
}

func TestParseWordList(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected []string
	}{
		{"plain lines", "the\nquick\nbrown", []string{"the", "quick", "brown"}},
		{"numbered", "1. the\n2. a\n3. that", []string{"the", "a", "that"}},
		{"bulleted with punctuation", "- and,\n- but.\n- or", []string{"and", "but", "or"}},
		{"duplicates collapsed", "the\nThe\nthe\nend", []string{"the", "end"}},
		{"blank lines skipped", "\n\nword\n\n", []string{"word"}},
		{"extra words per line dropped", "the end of it\nnext", []string{"the", "next"}},
		{"empty", "", nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := parseWordList(tc.raw, 5)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("parseWordList(%q) = %v; want %v", tc.raw, got, tc.expected)
			}
		})
	}
}

func TestParseWordListLimit(t *testing.T) {
	got := parseWordList("a\nb\nc\nd\ne\nf\ng", 5)
	if len(got) != 5 {
		t.Errorf("expected 5 predictions, got %d: %v", len(got), got)
	}
}
