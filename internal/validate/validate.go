package validate

import (
	"fmt"
	"net/mail"
)

// Text field length limits, shared by the API and the frontend.
const (
	MaxCommentBodyLength = 5000
	MaxUsernameLength    = 50
	MaxEmailLength       = 320
	MaxAvatarURLLength   = 2048
	MaxSearchQueryLength = 200
	MaxCategoryLength    = 50
)

func checkLen(value string, max int, field string) string {
	if len(value) > max {
		return fmt.Sprintf("%s must be %d characters or fewer", field, max)
	}
	return ""
}

func CommentBody(s string) string { return checkLen(s, MaxCommentBodyLength, "comment") }
func Username(s string) string    { return checkLen(s, MaxUsernameLength, "username") }
func AvatarURL(s string) string   { return checkLen(s, MaxAvatarURLLength, "avatar URL") }
func SearchQuery(s string) string { return checkLen(s, MaxSearchQueryLength, "search query") }
func Category(s string) string    { return checkLen(s, MaxCategoryLength, "category") }

// Email checks length and address syntax.
func Email(s string) string {
	if msg := checkLen(s, MaxEmailLength, "email"); msg != "" {
		return msg
	}
	if _, err := mail.ParseAddress(s); err != nil {
		return "invalid email address"
	}
	return ""
}

// FieldLimits returns a map of field names to max lengths for the /api/limits endpoint.
func FieldLimits() map[string]int {
	return map[string]int{
		"commentBody": MaxCommentBodyLength,
		"username":    MaxUsernameLength,
		"email":       MaxEmailLength,
		"avatarURL":   MaxAvatarURLLength,
		"searchQuery": MaxSearchQueryLength,
		"category":    MaxCategoryLength,
	}
}
