package repository

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/bluetrivia/bluetrivia/internal/models"
)

// newTestRepo creates a new in-memory repository for testing.
func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

// ==================== Round Tests ====================

func TestCreateRound_RoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.CreateRound(ctx, NewRound{
		Num:          1,
		State:        models.StateCollecting,
		Answer:       "The Matrix",
		Source:       "movie",
		RoundPostURI: "at://did:plc:abc/app.bsky.feed.post/1",
	})
	if err != nil {
		t.Fatalf("CreateRound failed: %v", err)
	}

	round, err := repo.GetRound(ctx, id)
	if err != nil {
		t.Fatalf("GetRound failed: %v", err)
	}
	if round.Num != 1 {
		t.Errorf("expected num 1, got %d", round.Num)
	}
	if round.State != models.StateCollecting {
		t.Errorf("expected collecting state, got %s", round.State)
	}
	if round.Answer != "The Matrix" {
		t.Errorf("expected answer 'The Matrix', got %q", round.Answer)
	}
	if round.Posts.Round != "at://did:plc:abc/app.bsky.feed.post/1" {
		t.Errorf("unexpected round post URI %q", round.Posts.Round)
	}
	if round.Percent != nil || round.Attempts != nil || round.EndedAt != nil {
		t.Error("expected nil percent, attempts, and ended_at on a fresh round")
	}
}

func TestGetRound_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetRound(context.Background(), 999)
	if !stderrors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateRound_DuplicateNum(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.CreateRound(ctx, NewRound{Num: 5, State: models.StateInitial, Answer: "a"})
	if err != nil {
		t.Fatalf("first CreateRound failed: %v", err)
	}
	_, err = repo.CreateRound(ctx, NewRound{Num: 5, State: models.StateInitial, Answer: "b"})
	if err == nil {
		t.Error("expected error creating round with duplicate num")
	}
}

func TestLastRound(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.LastRound(ctx)
	if !stderrors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty table, got %v", err)
	}

	for num := 1; num <= 3; num++ {
		if _, err := repo.CreateRound(ctx, NewRound{Num: num, State: models.StateResults, Answer: "x"}); err != nil {
			t.Fatalf("CreateRound %d failed: %v", num, err)
		}
	}

	round, err := repo.LastRound(ctx)
	if err != nil {
		t.Fatalf("LastRound failed: %v", err)
	}
	if round.Num != 3 {
		t.Errorf("expected last round num 3, got %d", round.Num)
	}
}

func TestLastCompletedNum(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	num, err := repo.LastCompletedNum(ctx)
	if err != nil {
		t.Fatalf("LastCompletedNum failed: %v", err)
	}
	if num != 0 {
		t.Errorf("expected 0 with no rounds, got %d", num)
	}

	// Terminal rounds count, a non-terminal one does not.
	if _, err := repo.CreateRound(ctx, NewRound{Num: 1, State: models.StateResults, Answer: "a"}); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.CreateRound(ctx, NewRound{Num: 2, State: models.StateSkipped, Answer: "b"}); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.CreateRound(ctx, NewRound{Num: 3, State: models.StateCollecting, Answer: "c"}); err != nil {
		t.Fatal(err)
	}

	num, err = repo.LastCompletedNum(ctx)
	if err != nil {
		t.Fatalf("LastCompletedNum failed: %v", err)
	}
	if num != 2 {
		t.Errorf("expected 2, got %d", num)
	}
}

func TestUpdateRoundState(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.CreateRound(ctx, NewRound{Num: 1, State: models.StateInitial, Answer: "a"})
	if err != nil {
		t.Fatal(err)
	}

	if err := repo.UpdateRoundState(ctx, id, models.StateCollecting); err != nil {
		t.Fatalf("UpdateRoundState failed: %v", err)
	}

	round, err := repo.GetRound(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if round.State != models.StateCollecting {
		t.Errorf("expected collecting, got %s", round.State)
	}
}

func TestUpdateRoundPosts_EmptyURIsStoredAsNull(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.CreateRound(ctx, NewRound{Num: 1, State: models.StateCollecting, Answer: "a", RoundPostURI: "at://r"})
	if err != nil {
		t.Fatal(err)
	}

	posts := models.PostRefs{Round: "at://r", End: "at://e", Results: ""}
	if err := repo.UpdateRoundPosts(ctx, id, posts); err != nil {
		t.Fatalf("UpdateRoundPosts failed: %v", err)
	}

	round, err := repo.GetRound(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if round.Posts.End != "at://e" {
		t.Errorf("expected end post URI preserved, got %q", round.Posts.End)
	}
	if round.Posts.Results != "" {
		t.Errorf("expected empty results URI, got %q", round.Posts.Results)
	}
}

func TestDeleteRound_CascadesResponses(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.CreateRound(ctx, NewRound{Num: 1, State: models.StateCollecting, Answer: "a"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := repo.CreateResponse(ctx, models.Response{
		RoundID: id, Handle: "alice.bsky.social", Text: "guess",
		Position: 1, RecordedAt: time.Now(),
	}); err != nil {
		t.Fatal(err)
	}

	if err := repo.DeleteRound(ctx, id); err != nil {
		t.Fatalf("DeleteRound failed: %v", err)
	}

	responses, err := repo.ResponsesByRound(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if len(responses) != 0 {
		t.Errorf("expected responses cascade-deleted, got %d", len(responses))
	}
}

// ==================== SaveRoundOutcome Tests ====================

func TestSaveRoundOutcome_AppliesEverything(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tournamentID, err := repo.CreateTournament(ctx, "August Cup", 20, 7*24*time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	roundID, err := repo.CreateRound(ctx, NewRound{
		Num: 1, State: models.StateScoring, Answer: "Inception",
		TournamentID: &tournamentID,
	})
	if err != nil {
		t.Fatal(err)
	}

	now := time.Now()
	outcome := RoundOutcome{
		RoundID:        roundID,
		State:          models.StateResults,
		Percent:        67,
		Attempts:       3,
		EndedAt:        now,
		ResultsPostURI: "at://results",
		TournamentID:   &tournamentID,
		Responses: []models.Response{
			{RoundID: roundID, Handle: "alice.bsky.social", Text: "Inception", IsCorrect: true, Score: 100, Position: 1, RecordedAt: now},
			{RoundID: roundID, Handle: "bob.bsky.social", Text: "Titanic", IsCorrect: false, Score: 20, Position: 2, RecordedAt: now},
			{RoundID: roundID, Handle: "carol.bsky.social", Text: "Inseption", IsCorrect: true, Score: 89, Position: 3, RecordedAt: now},
		},
		Bonuses: map[string]int{
			"alice.bsky.social": 3,
			"carol.bsky.social": 2,
		},
	}

	if err := repo.SaveRoundOutcome(ctx, outcome); err != nil {
		t.Fatalf("SaveRoundOutcome failed: %v", err)
	}

	round, err := repo.GetRound(ctx, roundID)
	if err != nil {
		t.Fatal(err)
	}
	if round.State != models.StateResults {
		t.Errorf("expected results state, got %s", round.State)
	}
	if round.Percent == nil || *round.Percent != 67 {
		t.Errorf("expected percent 67, got %v", round.Percent)
	}
	if round.Attempts == nil || *round.Attempts != 3 {
		t.Errorf("expected attempts 3, got %v", round.Attempts)
	}
	if round.EndedAt == nil {
		t.Error("expected ended_at set")
	}
	if round.Posts.Results != "at://results" {
		t.Errorf("expected results post URI set, got %q", round.Posts.Results)
	}

	responses, err := repo.ResponsesByRound(ctx, roundID)
	if err != nil {
		t.Fatal(err)
	}
	if len(responses) != 3 {
		t.Fatalf("expected 3 responses, got %d", len(responses))
	}
	if responses[0].Handle != "alice.bsky.social" || responses[0].Position != 1 {
		t.Errorf("expected alice in position 1, got %s at %d", responses[0].Handle, responses[0].Position)
	}

	alice, err := repo.GetPlayer(ctx, "alice.bsky.social")
	if err != nil {
		t.Fatal(err)
	}
	if alice.TotalPoints != 1 || alice.CorrectCount != 1 || alice.TotalCount != 1 {
		t.Errorf("unexpected alice aggregates: %+v", alice)
	}

	bob, err := repo.GetPlayer(ctx, "bob.bsky.social")
	if err != nil {
		t.Fatal(err)
	}
	if bob.TotalPoints != 0 || bob.CorrectCount != 0 || bob.TotalCount != 1 {
		t.Errorf("unexpected bob aggregates: %+v", bob)
	}

	standings, err := repo.TournamentLeaderboard(ctx, tournamentID, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(standings) != 3 {
		t.Fatalf("expected 3 standings, got %d", len(standings))
	}
	if standings[0].Handle != "alice.bsky.social" || standings[0].Points != 3 {
		t.Errorf("expected alice leading with 3 points, got %s with %d", standings[0].Handle, standings[0].Points)
	}
	if standings[1].Handle != "carol.bsky.social" || standings[1].Points != 2 {
		t.Errorf("expected carol second with 2 points, got %s with %d", standings[1].Handle, standings[1].Points)
	}

	tournaments, err := repo.ListTournaments(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if tournaments[0].RoundsCompleted != 1 {
		t.Errorf("expected rounds_completed 1, got %d", tournaments[0].RoundsCompleted)
	}
}

func TestSaveRoundOutcome_RollsBackOnFailure(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	roundID, err := repo.CreateRound(ctx, NewRound{Num: 1, State: models.StateScoring, Answer: "x"})
	if err != nil {
		t.Fatal(err)
	}

	outcome := RoundOutcome{
		RoundID: roundID,
		State:   models.StateResults,
		EndedAt: time.Now(),
		Responses: []models.Response{
			{RoundID: roundID, Handle: "alice.bsky.social", Text: "a", IsCorrect: true, Position: 1, RecordedAt: time.Now()},
			{RoundID: roundID, Handle: "bob.bsky.social", Text: "b", IsCorrect: true, Position: 2, RecordedAt: time.Now()},
		},
	}

	// Force a mid-transaction failure: the player upsert will hit a
	// missing table after the first response insert succeeded.
	if _, err := repo.db.ExecContext(ctx, `DROP TABLE players`); err != nil {
		t.Fatal(err)
	}

	if err := repo.SaveRoundOutcome(ctx, outcome); err == nil {
		t.Fatal("expected SaveRoundOutcome to fail with players table missing")
	}

	// The round must still be in scoring with no responses attached.
	responses, err := repo.ResponsesByRound(ctx, roundID)
	if err != nil {
		t.Fatal(err)
	}
	if len(responses) != 0 {
		t.Errorf("expected no responses after rollback, got %d", len(responses))
	}
	round, err := repo.GetRound(ctx, roundID)
	if err != nil {
		t.Fatal(err)
	}
	if round.State != models.StateScoring {
		t.Errorf("expected round left in scoring after rollback, got %s", round.State)
	}
}

func TestSaveRoundOutcome_BonusIgnoredForIncorrect(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tournamentID, err := repo.CreateTournament(ctx, "Cup", 10, 24*time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	roundID, err := repo.CreateRound(ctx, NewRound{Num: 1, State: models.StateScoring, Answer: "x", TournamentID: &tournamentID})
	if err != nil {
		t.Fatal(err)
	}

	outcome := RoundOutcome{
		RoundID: roundID, State: models.StateResults, EndedAt: time.Now(),
		TournamentID: &tournamentID,
		Responses: []models.Response{
			{RoundID: roundID, Handle: "mallory.bsky.social", Text: "wrong", IsCorrect: false, Position: 1, RecordedAt: time.Now()},
		},
		Bonuses: map[string]int{"mallory.bsky.social": 3},
	}
	if err := repo.SaveRoundOutcome(ctx, outcome); err != nil {
		t.Fatal(err)
	}

	standings, err := repo.TournamentLeaderboard(ctx, tournamentID, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(standings) != 1 || standings[0].Points != 0 {
		t.Errorf("expected mallory with 0 points, got %+v", standings)
	}
}

func TestSaveRoundOutcome_RepeatHandleBonusAppliedOnce(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tournamentID, err := repo.CreateTournament(ctx, "Cup", 10, 24*time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	roundID, err := repo.CreateRound(ctx, NewRound{Num: 1, State: models.StateScoring, Answer: "x", TournamentID: &tournamentID})
	if err != nil {
		t.Fatal(err)
	}

	// Alice answered correctly twice; her bonus is her accumulated
	// total for the round and must land exactly once.
	now := time.Now()
	outcome := RoundOutcome{
		RoundID: roundID, State: models.StateResults, Percent: 100, Attempts: 3,
		EndedAt: now, TournamentID: &tournamentID,
		Responses: []models.Response{
			{RoundID: roundID, Handle: "alice.bsky.social", Text: "x", IsCorrect: true, Position: 1, RecordedAt: now},
			{RoundID: roundID, Handle: "bob.bsky.social", Text: "x", IsCorrect: true, Position: 2, RecordedAt: now},
			{RoundID: roundID, Handle: "alice.bsky.social", Text: "x", IsCorrect: true, Position: 3, RecordedAt: now},
		},
		Bonuses: map[string]int{
			"alice.bsky.social": 4,
			"bob.bsky.social":   2,
		},
	}
	if err := repo.SaveRoundOutcome(ctx, outcome); err != nil {
		t.Fatal(err)
	}

	standings, err := repo.TournamentLeaderboard(ctx, tournamentID, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(standings) != 2 {
		t.Fatalf("expected 2 standings, got %d", len(standings))
	}
	if standings[0].Handle != "alice.bsky.social" || standings[0].Points != 4 {
		t.Errorf("expected alice with 4 points, got %s with %d", standings[0].Handle, standings[0].Points)
	}
	if standings[0].CorrectCount != 2 || standings[0].TotalCount != 2 {
		t.Errorf("expected alice counted per response (2/2), got %d/%d", standings[0].CorrectCount, standings[0].TotalCount)
	}
	if standings[1].Handle != "bob.bsky.social" || standings[1].Points != 2 {
		t.Errorf("expected bob with 2 points, got %s with %d", standings[1].Handle, standings[1].Points)
	}
}

// ==================== Response Tests ====================

func TestTopCorrectByRound(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	roundID, err := repo.CreateRound(ctx, NewRound{Num: 1, State: models.StateScoring, Answer: "x"})
	if err != nil {
		t.Fatal(err)
	}

	now := time.Now()
	fixtures := []models.Response{
		{RoundID: roundID, Handle: "a", Text: "x", IsCorrect: true, Position: 1, RecordedAt: now},
		{RoundID: roundID, Handle: "b", Text: "y", IsCorrect: false, Position: 2, RecordedAt: now},
		{RoundID: roundID, Handle: "c", Text: "x", IsCorrect: true, Position: 3, RecordedAt: now},
		{RoundID: roundID, Handle: "d", Text: "x", IsCorrect: true, Position: 4, RecordedAt: now},
		{RoundID: roundID, Handle: "e", Text: "x", IsCorrect: true, Position: 5, RecordedAt: now},
	}
	for _, f := range fixtures {
		if _, err := repo.CreateResponse(ctx, f); err != nil {
			t.Fatal(err)
		}
	}

	top, err := repo.TopCorrectByRound(ctx, roundID, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 3 {
		t.Fatalf("expected 3 responses, got %d", len(top))
	}
	want := []string{"a", "c", "d"}
	for i, handle := range want {
		if top[i].Handle != handle {
			t.Errorf("position %d: expected %s, got %s", i, handle, top[i].Handle)
		}
	}
}

// ==================== Player Tests ====================

func TestUpsertPlayerOnCorrectness(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.UpsertPlayerOnCorrectness(ctx, "alice.bsky.social", true); err != nil {
		t.Fatal(err)
	}
	if err := repo.UpsertPlayerOnCorrectness(ctx, "alice.bsky.social", false); err != nil {
		t.Fatal(err)
	}
	if err := repo.UpsertPlayerOnCorrectness(ctx, "alice.bsky.social", true); err != nil {
		t.Fatal(err)
	}

	p, err := repo.GetPlayer(ctx, "alice.bsky.social")
	if err != nil {
		t.Fatal(err)
	}
	if p.TotalPoints != 2 {
		t.Errorf("expected 2 points, got %d", p.TotalPoints)
	}
	if p.CorrectCount != 2 {
		t.Errorf("expected 2 correct, got %d", p.CorrectCount)
	}
	if p.TotalCount != 3 {
		t.Errorf("expected 3 total, got %d", p.TotalCount)
	}
}

func TestGetPlayer_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetPlayer(context.Background(), "nobody.bsky.social")
	if !stderrors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListPlayers_OrderedByPoints(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := repo.UpsertPlayerOnCorrectness(ctx, "top.bsky.social", true); err != nil {
			t.Fatal(err)
		}
	}
	if err := repo.UpsertPlayerOnCorrectness(ctx, "mid.bsky.social", true); err != nil {
		t.Fatal(err)
	}

	players, err := repo.ListPlayers(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(players) != 2 {
		t.Fatalf("expected 2 players, got %d", len(players))
	}
	if players[0].Handle != "top.bsky.social" {
		t.Errorf("expected top player first, got %s", players[0].Handle)
	}
}

// ==================== Tournament Tests ====================

func TestActiveTournament(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.ActiveTournament(ctx)
	if !stderrors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound with no tournaments, got %v", err)
	}

	id, err := repo.CreateTournament(ctx, "Cup", 10, 24*time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	active, err := repo.ActiveTournament(ctx)
	if err != nil {
		t.Fatalf("ActiveTournament failed: %v", err)
	}
	if active.ID != id || active.Name != "Cup" {
		t.Errorf("unexpected active tournament %+v", active)
	}
}

func TestActiveTournament_ExpiredExcluded(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.CreateTournament(ctx, "Old Cup", 10, -time.Hour); err != nil {
		t.Fatal(err)
	}

	_, err := repo.ActiveTournament(ctx)
	if !stderrors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for expired tournament, got %v", err)
	}
}

// ==================== Trivia Question Tests ====================

func TestTriviaQuestionBank(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	count, err := repo.CountTriviaQuestions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("expected empty bank, got %d", count)
	}

	_, err = repo.RandomTriviaQuestion(ctx)
	if !stderrors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound from empty bank, got %v", err)
	}

	id, err := repo.CreateTriviaQuestion(ctx, "Capital of France?", "Paris", "Geography")
	if err != nil {
		t.Fatal(err)
	}

	q, err := repo.RandomTriviaQuestion(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if q.ID != id || q.Answer != "Paris" {
		t.Errorf("unexpected question %+v", q)
	}

	media := models.MediaItem{Content: []byte{0xFF, 0xD8}, MimeType: "image/jpeg", AltText: "Eiffel Tower"}
	if err := repo.AddTriviaMedia(ctx, id, media); err != nil {
		t.Fatal(err)
	}
	items, err := repo.TriviaMediaForQuestion(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].MimeType != "image/jpeg" {
		t.Errorf("unexpected media %+v", items)
	}
}

func TestCreateTriviaQuestion_DefaultCategory(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.CreateTriviaQuestion(ctx, "q", "a", ""); err != nil {
		t.Fatal(err)
	}
	q, err := repo.RandomTriviaQuestion(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if q.Category != "General" {
		t.Errorf("expected default category General, got %q", q.Category)
	}
}
