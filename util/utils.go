package util

import (
	"regexp"
	"strings"
)

var RgxMention = regexp.MustCompile(`@(\w+)`)

func NotBlank(value string) bool {
	return strings.TrimSpace(value) != ""
}

// ExtractMentions returns the distinct @-mentioned usernames in content,
// in order of first appearance, without the leading "@".
func ExtractMentions(content string) []string {
	matches := RgxMention.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	var usernames []string
	for _, m := range matches {
		name := m[1]
		if seen[name] {
			continue
		}
		seen[name] = true
		usernames = append(usernames, name)
	}
	return usernames
}

// AvatarInitials derives the two-character avatar shown next to a username.
func AvatarInitials(username string) string {
	runes := []rune(username)
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return strings.ToUpper(string(runes))
}

// NormalizeTags trims tag whitespace and drops empty entries, keeping order.
// A nil input yields an empty, non-nil slice so serialized questions always
// carry a tags array.
func NormalizeTags(tags []string) []string {
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		normalized = append(normalized, tag)
	}
	return normalized
}
