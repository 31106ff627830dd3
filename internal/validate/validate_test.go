package validate

import (
	"strings"
	"testing"
)

func TestCommentBody(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"valid", "Nice video", ""},
		{"empty", "", ""},
		{"at limit", string(make([]byte, MaxCommentBodyLength)), ""},
		{"over limit", string(make([]byte, MaxCommentBodyLength+1)), "comment must be 5000 characters or fewer"},
	}
	for _, tt := range tests {
		if got := CommentBody(tt.input); got != tt.want {
			t.Errorf("CommentBody(%q [len=%d]) = %q, want %q", tt.name, len(tt.input), got, tt.want)
		}
	}
}

func TestUsername(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"valid", "TechGuru", ""},
		{"at limit", strings.Repeat("a", MaxUsernameLength), ""},
		{"over limit", strings.Repeat("a", MaxUsernameLength+1), "username must be 50 characters or fewer"},
	}
	for _, tt := range tests {
		if got := Username(tt.input); got != tt.want {
			t.Errorf("Username(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestSearchQuery(t *testing.T) {
	if got := SearchQuery("cats"); got != "" {
		t.Errorf("expected valid query, got %q", got)
	}
	if got := SearchQuery(strings.Repeat("q", MaxSearchQueryLength+1)); got != "search query must be 200 characters or fewer" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestCategory(t *testing.T) {
	if got := Category(strings.Repeat("c", MaxCategoryLength+1)); got == "" {
		t.Error("expected over-long category to be rejected")
	}
}

func TestAvatarURL(t *testing.T) {
	if got := AvatarURL(strings.Repeat("u", MaxAvatarURLLength+1)); got == "" {
		t.Error("expected over-long avatar URL to be rejected")
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"valid", "tech@example.com", ""},
		{"missing at", "tech.example.com", "invalid email address"},
		{"empty", "", "invalid email address"},
		{"too long", strings.Repeat("a", MaxEmailLength) + "@x.com", "email must be 320 characters or fewer"},
	}
	for _, tt := range tests {
		if got := Email(tt.input); got != tt.want {
			t.Errorf("Email(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestFieldLimits(t *testing.T) {
	limits := FieldLimits()
	if limits["commentBody"] != MaxCommentBodyLength {
		t.Errorf("expected commentBody limit %d, got %d", MaxCommentBodyLength, limits["commentBody"])
	}
	if len(limits) != 6 {
		t.Errorf("expected 6 limits, got %d", len(limits))
	}
}
