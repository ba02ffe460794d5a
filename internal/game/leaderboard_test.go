package game

import (
	"testing"

	"github.com/bluetrivia/bluetrivia/internal/models"
)

func resp(handle string, position int, correct bool) models.Response {
	return models.Response{Handle: handle, Position: position, IsCorrect: correct}
}

func TestRank_CorrectOnlyInArrivalOrder(t *testing.T) {
	responses := []models.Response{
		resp("a", 1, false),
		resp("b", 2, true),
		resp("c", 3, false),
		resp("d", 4, true),
	}

	ranked := Rank(responses)
	if len(ranked) != 2 {
		t.Fatalf("expected 2 ranked, got %d", len(ranked))
	}
	if ranked[0].Handle != "b" || ranked[1].Handle != "d" {
		t.Errorf("unexpected ranking order: %s, %s", ranked[0].Handle, ranked[1].Handle)
	}
}

func TestRank_Empty(t *testing.T) {
	if got := Rank(nil); len(got) != 0 {
		t.Errorf("expected empty ranking, got %d", len(got))
	}
}

func TestTournamentDelta_BonusTable(t *testing.T) {
	ranked := []models.Response{
		resp("first", 3, true),
		resp("second", 5, true),
		resp("third", 6, true),
		resp("fourth", 9, true),
	}

	deltas := TournamentDelta(ranked, []int{3, 2, 1})
	want := map[string]int{"first": 3, "second": 2, "third": 1, "fourth": 0}
	for handle, points := range want {
		if deltas[handle] != points {
			t.Errorf("%s: expected %d, got %d", handle, points, deltas[handle])
		}
	}
}

func TestTournamentDelta_ShortTable(t *testing.T) {
	ranked := []models.Response{resp("a", 1, true), resp("b", 2, true)}

	deltas := TournamentDelta(ranked, []int{5})
	if deltas["a"] != 5 {
		t.Errorf("expected 5 for first, got %d", deltas["a"])
	}
	if deltas["b"] != 0 {
		t.Errorf("expected 0 beyond the table, got %d", deltas["b"])
	}
}

func TestTournamentDelta_RepeatHandleAccumulates(t *testing.T) {
	// One handle may answer correctly more than once; each placement's
	// bonus counts toward their single delta.
	ranked := []models.Response{
		resp("alice", 1, true),
		resp("bob", 2, true),
		resp("carol", 3, true),
		resp("alice", 4, true),
	}

	deltas := TournamentDelta(ranked, []int{3, 2, 1})
	want := map[string]int{"alice": 3, "bob": 2, "carol": 1}
	for handle, points := range want {
		if deltas[handle] != points {
			t.Errorf("%s: expected %d, got %d", handle, points, deltas[handle])
		}
	}

	deltas = TournamentDelta([]models.Response{
		resp("alice", 1, true),
		resp("alice", 2, true),
		resp("bob", 3, true),
	}, []int{3, 2, 1})
	if deltas["alice"] != 5 {
		t.Errorf("expected alice to hold both bonuses for 5, got %d", deltas["alice"])
	}
	if deltas["bob"] != 1 {
		t.Errorf("expected 1 for bob, got %d", deltas["bob"])
	}
}

func TestSuccessPercent_RoundsHalfUp(t *testing.T) {
	tests := []struct {
		correct, total, want int
	}{
		{2, 3, 67},  // 66.67 rounds up
		{1, 3, 33},  // 33.33 rounds down
		{1, 2, 50},  // exact
		{1, 8, 13},  // 12.5 rounds half up
		{3, 3, 100}, // all correct
		{0, 5, 0},   // none correct
	}
	for _, tt := range tests {
		if got := successPercent(tt.correct, tt.total); got != tt.want {
			t.Errorf("successPercent(%d, %d) = %d, want %d", tt.correct, tt.total, got, tt.want)
		}
	}
}
