package game

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/bluetrivia/bluetrivia/internal/models"
)

func correctAt(handle string, position int) models.Response {
	return models.Response{Handle: handle, IsCorrect: true, Position: position}
}

func TestComposeResults_AllSectionsFit(t *testing.T) {
	top := []models.Response{
		correctAt("alice.bsky.social", 1),
		correctAt("bob.bsky.social", 2),
		correctAt("carol.bsky.social", 3),
	}
	tournament := &models.Tournament{Name: "Summer Cup"}

	text := composeResults(12, 67, "Inception", 3, top, tournament, 30*time.Minute)

	if utf8.RuneCountInString(text) > postBudget {
		t.Fatalf("post exceeds budget: %d runes", utf8.RuneCountInString(text))
	}
	for _, want := range []string{
		"Round 12 results! 67%",
		`The answer was "Inception" (3 guesses).`,
		"🥇 @alice.bsky.social",
		"🥈 @bob.bsky.social",
		"🥉 @carol.bsky.social",
		"Summer Cup",
		"Next round in 30 minutes!",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q in results post:\n%s", want, text)
		}
	}
}

func TestComposeResults_DropsLowerPrioritySections(t *testing.T) {
	// Handles long enough that the medal section cannot fit; it and
	// everything after it are dropped, but the headline and answer
	// stay.
	longHandle := strings.Repeat("x", 80) + ".bsky.social"
	top := []models.Response{
		correctAt(longHandle, 1),
		correctAt(longHandle, 2),
		correctAt(longHandle, 3),
	}
	answer := strings.Repeat("Very Long Movie Title ", 8)

	text := composeResults(3, 50, answer, 10, top, &models.Tournament{Name: "Cup"}, time.Hour)

	if utf8.RuneCountInString(text) > postBudget {
		t.Fatalf("post exceeds budget: %d runes", utf8.RuneCountInString(text))
	}
	if !strings.Contains(text, "Round 3 results! 50%") {
		t.Error("headline must never be dropped")
	}
	if strings.Contains(text, "🥇") {
		t.Error("medal section should have been dropped")
	}
	if strings.Contains(text, "Cup standings") {
		t.Error("tournament section should have been dropped with the medals")
	}
}

func TestComposeResults_NoOptionalSections(t *testing.T) {
	text := composeResults(1, 0, "Inception", 2, nil, nil, 30*time.Minute)

	if strings.Contains(text, "🥇") {
		t.Error("no medals without correct responses")
	}
	if strings.Contains(text, "🏆") {
		t.Error("no tournament banner without a tournament")
	}
	if !strings.Contains(text, "Next round") {
		t.Error("footer should fit when optional sections are empty")
	}
}

func TestComposeResults_SingularGuess(t *testing.T) {
	text := composeResults(1, 100, "Inception", 1, []models.Response{correctAt("a", 1)}, nil, time.Minute)
	if !strings.Contains(text, "(1 guess).") {
		t.Errorf("expected singular guess, got:\n%s", text)
	}
}

func TestComposeRoundPost(t *testing.T) {
	text := composeRoundPost(5, "Name this movie!", 30*time.Minute)
	for _, want := range []string{"Round 5", "Name this movie!", "30 minutes"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q in round post:\n%s", want, text)
		}
	}
}

func TestFormatWindow(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "30 seconds"},
		{time.Minute, "1 minute"},
		{30 * time.Minute, "30 minutes"},
		{time.Hour, "1 hour"},
		{3 * time.Hour, "3 hours"},
	}
	for _, tt := range tests {
		if got := formatWindow(tt.d); got != tt.want {
			t.Errorf("formatWindow(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
