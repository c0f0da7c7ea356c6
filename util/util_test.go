package util

import (
	"net/http"
	"reflect"
	"testing"

	"github.com/qhub/qhub_api/util/values"
)

func TestExtractMentions(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		expected []string
	}{
		{"no mentions", "plain answer text", nil},
		{"single mention", "thanks @bob for the hint", []string{"bob"}},
		{"multiple mentions", "@alice and @bob should see this", []string{"alice", "bob"}},
		{"duplicate mention", "@bob @bob @bob", []string{"bob"}},
		{"mention with underscore and digits", "ping @dev_user42 here", []string{"dev_user42"}},
		{"bare at sign", "meet @ noon", nil},
		{"email is still a mention token", "mail me a@example.com", []string{"example"}},
		{"mention at end", "see you @carol", []string{"carol"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractMentions(tc.content)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("ExtractMentions(%q) = %v; want %v", tc.content, got, tc.expected)
			}
		})
	}
}

func TestAvatarInitials(t *testing.T) {
	testCases := []struct {
		username string
		expected string
	}{
		{"bob", "BO"},
		{"alice", "AL"},
		{"x", "X"},
		{"", ""},
		{"éva", "ÉV"},
	}

	for _, tc := range testCases {
		if got := AvatarInitials(tc.username); got != tc.expected {
			t.Errorf("AvatarInitials(%q) = %q; want %q", tc.username, got, tc.expected)
		}
	}
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" react ", "", "jwt"})
	if !reflect.DeepEqual(got, []string{"react", "jwt"}) {
		t.Errorf("NormalizeTags = %v", got)
	}

	got = NormalizeTags(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("NormalizeTags(nil) = %v; want empty non-nil slice", got)
	}
}

func TestStatusCode(t *testing.T) {
	testCases := []struct {
		status   string
		expected int
	}{
		{values.Success, http.StatusOK},
		{values.Created, http.StatusCreated},
		{values.Error, http.StatusInternalServerError},
		{values.NotFound, http.StatusNotFound},
		{values.Conflict, http.StatusConflict},
		{values.NotAllowed, http.StatusForbidden},
		{values.NotAuthorised, http.StatusUnauthorized},
		{values.TokenExpired, http.StatusUnauthorized},
		{values.BadRequestBody, http.StatusBadRequest},
		{"anything-else", http.StatusOK},
	}

	for _, tc := range testCases {
		if got := StatusCode(tc.status); got != tc.expected {
			t.Errorf("StatusCode(%q) = %d; want %d", tc.status, got, tc.expected)
		}
	}
}

func TestValidateStructDirection(t *testing.T) {
	type voteBody struct {
		Direction string `validate:"required,direction"`
	}

	if err := ValidateStruct(voteBody{Direction: "up"}); err != nil {
		t.Errorf("direction 'up' should validate: %v", err)
	}
	if err := ValidateStruct(voteBody{Direction: "down"}); err != nil {
		t.Errorf("direction 'down' should validate: %v", err)
	}
	if err := ValidateStruct(voteBody{Direction: "sideways"}); err == nil {
		t.Error("direction 'sideways' should fail validation")
	}
	if err := ValidateStruct(voteBody{}); err == nil {
		t.Error("missing direction should fail validation")
	}
}

func TestNotBlank(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"token", true},
		{"  token  ", true},
		{"", false},
		{"   ", false},
		{"\t\n", false},
	}

	for _, tt := range tests {
		if got := NotBlank(tt.value); got != tt.want {
			t.Errorf("NotBlank(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
