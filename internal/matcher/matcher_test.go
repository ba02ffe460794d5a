package matcher

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase", "MATRIX", "matrix"},
		{"leading article", "The Matrix", "matrix"},
		{"article a", "A Quiet Place", "quiet place"},
		{"article an", "An American Werewolf", "american werewolf"},
		{"article only word kept", "The", "the"},
		{"punctuation", "Spider-Man: No Way Home!", "spiderman no way home"},
		{"diacritics", "Amélie", "amelie"},
		{"whitespace collapse", "  star   wars  ", "star wars"},
		{"digits kept", "Blade Runner 2049", "blade runner 2049"},
		{"empty", "", ""},
		{"punctuation only", "?!...", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.input); got != tt.expected {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestScore_IdentityIs100(t *testing.T) {
	for _, s := range []string{"Inception", "The Matrix", "Blade Runner 2049", "Amélie", "x"} {
		if got := Score(s, s); got != 100 {
			t.Errorf("Score(%q, %q) = %d, want 100", s, s, got)
		}
	}
}

func TestScore_EmptyGuessIs0(t *testing.T) {
	tests := []string{"", "   ", "?!."}
	for _, guess := range tests {
		if got := Score("Inception", guess); got != 0 {
			t.Errorf("Score(Inception, %q) = %d, want 0", guess, got)
		}
	}
}

func TestScore_CaseArticlePunctuationInvariant(t *testing.T) {
	tests := []struct {
		answer string
		guess  string
	}{
		{"The Matrix", "matrix"},
		{"The Matrix", "MATRIX!"},
		{"Se7en", "se7en"},
		{"Amélie", "amelie"},
	}

	for _, tt := range tests {
		if got := Score(tt.answer, tt.guess); got != 100 {
			t.Errorf("Score(%q, %q) = %d, want 100", tt.answer, tt.guess, got)
		}
	}
}

func TestScore_WordOrderInsensitive(t *testing.T) {
	if got := Score("Star Wars", "wars star"); got != 100 {
		t.Errorf("Score(Star Wars, wars star) = %d, want 100", got)
	}
	// duplicate words collapse in the token-set variant
	if got := Score("Star Wars", "star star wars"); got != 100 {
		t.Errorf("Score(Star Wars, star star wars) = %d, want 100", got)
	}
}

func TestScore_NearMissAboveThreshold(t *testing.T) {
	// one substitution in nine letters
	got := Score("Inception", "Inseption")
	if got < 80 {
		t.Errorf("Score(Inception, Inseption) = %d, want >= 80", got)
	}
	if got >= 100 {
		t.Errorf("Score(Inception, Inseption) = %d, want < 100", got)
	}
}

func TestScore_WrongAnswerBelowThreshold(t *testing.T) {
	tests := []struct {
		answer string
		guess  string
	}{
		{"Inception", "titanic"},
		{"The Matrix", "finding nemo"},
	}

	for _, tt := range tests {
		if got := Score(tt.answer, tt.guess); got >= 80 {
			t.Errorf("Score(%q, %q) = %d, want < 80", tt.answer, tt.guess, got)
		}
	}
}

func TestScore_SubsetGuessMatchesTokenSet(t *testing.T) {
	// guessing a strict word-subset of the answer maxes the token-set ratio
	if got := Score("The Lord of the Rings", "lord of the rings"); got != 100 {
		t.Errorf("Score = %d, want 100", got)
	}
}

func TestScore_Deterministic(t *testing.T) {
	first := Score("Pulp Fiction", "plup fiction")
	for i := 0; i < 10; i++ {
		if got := Score("Pulp Fiction", "plup fiction"); got != first {
			t.Fatalf("Score not deterministic: %d != %d", got, first)
		}
	}
}

func TestScore_Bounds(t *testing.T) {
	pairs := [][2]string{
		{"Inception", "zzzzzz"},
		{"a", "b"},
		{"The Godfather", "the godmother"},
		{"x", "xxxxxxxxxxxxxxxxxxxx"},
	}
	for _, p := range pairs {
		got := Score(p[0], p[1])
		if got < 0 || got > 100 {
			t.Errorf("Score(%q, %q) = %d, out of [0,100]", p[0], p[1], got)
		}
	}
}
