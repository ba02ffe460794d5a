package repository

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/bluetrivia/bluetrivia/internal/models"
)

// Repository provides data access methods backed by SQLite
type Repository struct {
	db *sql.DB
}

// New creates a new Repository
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, err
	}

	// SQLite works best with a single connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	repo := &Repository{db: db}

	if err := repo.migrate(); err != nil {
		return nil, err
	}

	return repo, nil
}

// NewFromDB wraps an existing database handle. Used by tests that
// drive the repository against sqlmock.
func NewFromDB(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// DB returns the underlying database connection
func (r *Repository) DB() *sql.DB {
	return r.db
}

// Close closes the database connection
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping checks if the database connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// migrate runs database migrations
func (r *Repository) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			num INTEGER UNIQUE NOT NULL,
			state INTEGER NOT NULL,
			answer TEXT NOT NULL,
			source TEXT NOT NULL DEFAULT '',
			tournament_id INTEGER,
			percent INTEGER,
			attempts INTEGER,
			round_post_uri TEXT NOT NULL DEFAULT '',
			end_post_uri TEXT,
			results_post_uri TEXT,
			created_at DATETIME NOT NULL,
			ended_at DATETIME,
			FOREIGN KEY (tournament_id) REFERENCES tournaments(id) ON DELETE SET NULL
		)`,
		`CREATE TABLE IF NOT EXISTS responses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			round_id INTEGER NOT NULL,
			handle TEXT NOT NULL,
			text TEXT NOT NULL,
			is_correct BOOLEAN NOT NULL DEFAULT 0,
			score INTEGER NOT NULL DEFAULT 0,
			position INTEGER NOT NULL,
			recorded_at DATETIME NOT NULL,
			FOREIGN KEY (round_id) REFERENCES rounds(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS players (
			handle TEXT PRIMARY KEY,
			display_name TEXT,
			total_points INTEGER NOT NULL DEFAULT 0,
			correct_count INTEGER NOT NULL DEFAULT 0,
			total_count INTEGER NOT NULL DEFAULT 0,
			first_seen_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS tournaments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			started_at DATETIME NOT NULL,
			ends_at DATETIME NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT 1,
			rounds_total INTEGER NOT NULL DEFAULT 0,
			rounds_completed INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS tournament_players (
			tournament_id INTEGER NOT NULL,
			handle TEXT NOT NULL,
			points INTEGER NOT NULL DEFAULT 0,
			correct_count INTEGER NOT NULL DEFAULT 0,
			total_count INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (tournament_id, handle),
			FOREIGN KEY (tournament_id) REFERENCES tournaments(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS trivia_questions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			question TEXT NOT NULL,
			answer TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT 'General',
			created_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS trivia_media (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			question_id INTEGER NOT NULL,
			content BLOB NOT NULL,
			mime_type TEXT NOT NULL,
			alt_text TEXT NOT NULL DEFAULT '',
			FOREIGN KEY (question_id) REFERENCES trivia_questions(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_responses_round ON responses(round_id)`,
		`CREATE INDEX IF NOT EXISTS idx_responses_round_correct ON responses(round_id, is_correct, position)`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_num ON rounds(num)`,
		`CREATE INDEX IF NOT EXISTS idx_tournament_players_points ON tournament_players(tournament_id, points)`,
	}

	for _, migration := range migrations {
		if _, err := r.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}

// ==================== Round Methods ====================

// CreateRound inserts a new round row and returns its ID
func (r *Repository) CreateRound(ctx context.Context, round NewRound) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO rounds (num, state, answer, source, tournament_id, round_post_uri, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		round.Num, int(round.State), round.Answer, round.Source,
		round.TournamentID, round.RoundPostURI, time.Now().UTC(),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const roundColumns = `id, num, state, answer, source, tournament_id, percent, attempts,
	round_post_uri, end_post_uri, results_post_uri, created_at, ended_at`

func scanRound(row interface{ Scan(...any) error }) (*models.Round, error) {
	var round models.Round
	var state int
	var endURI, resultsURI sql.NullString
	var percent, attempts sql.NullInt64
	var tournamentID sql.NullInt64
	var endedAt sql.NullTime

	err := row.Scan(
		&round.ID, &round.Num, &state, &round.Answer, &round.Source,
		&tournamentID, &percent, &attempts,
		&round.Posts.Round, &endURI, &resultsURI,
		&round.CreatedAt, &endedAt,
	)
	if err != nil {
		return nil, err
	}

	round.State = models.RoundState(state)
	if tournamentID.Valid {
		round.TournamentID = &tournamentID.Int64
	}
	if percent.Valid {
		p := int(percent.Int64)
		round.Percent = &p
	}
	if attempts.Valid {
		a := int(attempts.Int64)
		round.Attempts = &a
	}
	round.Posts.End = endURI.String
	round.Posts.Results = resultsURI.String
	if endedAt.Valid {
		round.EndedAt = &endedAt.Time
	}
	return &round, nil
}

// GetRound returns a round by ID
func (r *Repository) GetRound(ctx context.Context, id int64) (*models.Round, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+roundColumns+` FROM rounds WHERE id = ?`, id)
	round, err := scanRound(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return round, err
}

// LastRound returns the round with the highest sequence number.
// Returns ErrNotFound when no rounds exist yet.
func (r *Repository) LastRound(ctx context.Context) (*models.Round, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+roundColumns+` FROM rounds ORDER BY num DESC LIMIT 1`)
	round, err := scanRound(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return round, err
}

// LastCompletedNum returns the highest sequence number among terminal
// rounds, or 0 when none exist. The next round continues from here, so
// a round discarded by recovery leaves a documented gap.
func (r *Repository) LastCompletedNum(ctx context.Context) (int, error) {
	var num sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		`SELECT MAX(num) FROM rounds WHERE state IN (?, ?)`,
		int(models.StateResults), int(models.StateSkipped),
	).Scan(&num)
	if err != nil {
		return 0, err
	}
	return int(num.Int64), nil
}

// ListRounds returns the most recent rounds, newest first
func (r *Repository) ListRounds(ctx context.Context, limit int) ([]models.Round, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+roundColumns+` FROM rounds ORDER BY num DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rounds []models.Round
	for rows.Next() {
		round, err := scanRound(rows)
		if err != nil {
			return nil, err
		}
		rounds = append(rounds, *round)
	}
	return rounds, rows.Err()
}

// UpdateRoundState sets the round's lifecycle state
func (r *Repository) UpdateRoundState(ctx context.Context, id int64, state models.RoundState) error {
	_, err := r.db.ExecContext(ctx, `UPDATE rounds SET state = ? WHERE id = ?`, int(state), id)
	return err
}

// UpdateRoundPercent sets the round's success percentage
func (r *Repository) UpdateRoundPercent(ctx context.Context, id int64, percent int) error {
	_, err := r.db.ExecContext(ctx, `UPDATE rounds SET percent = ? WHERE id = ?`, percent, id)
	return err
}

// UpdateRoundAttempts sets the round's total attempt count
func (r *Repository) UpdateRoundAttempts(ctx context.Context, id int64, attempts int) error {
	_, err := r.db.ExecContext(ctx, `UPDATE rounds SET attempts = ? WHERE id = ?`, attempts, id)
	return err
}

// UpdateRoundEndedAt sets the round's end timestamp
func (r *Repository) UpdateRoundEndedAt(ctx context.Context, id int64, endedAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE rounds SET ended_at = ? WHERE id = ?`, endedAt.UTC(), id)
	return err
}

// UpdateRoundPosts sets the round's post URIs. Empty End/Results URIs
// are stored as NULL so retracted posts leave no dangling reference.
func (r *Repository) UpdateRoundPosts(ctx context.Context, id int64, posts models.PostRefs) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE rounds SET round_post_uri = ?, end_post_uri = ?, results_post_uri = ? WHERE id = ?`,
		posts.Round, nullString(posts.End), nullString(posts.Results), id)
	return err
}

// DeleteRound removes a round and, via CASCADE, its responses.
// Only the recovery sweep calls this.
func (r *Repository) DeleteRound(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM rounds WHERE id = ?`, id)
	return err
}

// SaveRoundOutcome applies a complete scoring result in one transaction:
// response rows, player aggregates, tournament standings, and the
// round's terminal state all commit together or not at all.
func (r *Repository) SaveRoundOutcome(ctx context.Context, outcome RoundOutcome) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Bonuses carries one total per handle; a handle with several
	// correct rows must not collect it once per row.
	bonusApplied := make(map[string]bool, len(outcome.Bonuses))

	for _, resp := range outcome.Responses {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO responses (round_id, handle, text, is_correct, score, position, recorded_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			outcome.RoundID, resp.Handle, resp.Text, resp.IsCorrect, resp.Score,
			resp.Position, resp.RecordedAt.UTC(),
		); err != nil {
			return err
		}

		if err := upsertPlayerTx(ctx, tx, resp.Handle, resp.IsCorrect); err != nil {
			return err
		}

		if outcome.TournamentID != nil {
			bonus := 0
			if resp.IsCorrect && !bonusApplied[resp.Handle] {
				bonus = outcome.Bonuses[resp.Handle]
				bonusApplied[resp.Handle] = true
			}
			if err := addPlayerPointsTx(ctx, tx, *outcome.TournamentID, resp.Handle, bonus, resp.IsCorrect); err != nil {
				return err
			}
		}
	}

	if outcome.TournamentID != nil {
		if _, err := tx.ExecContext(ctx,
			`UPDATE tournaments SET rounds_completed = rounds_completed + 1 WHERE id = ?`,
			*outcome.TournamentID,
		); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE rounds SET state = ?, percent = ?, attempts = ?, ended_at = ?,
		 end_post_uri = NULL, results_post_uri = ? WHERE id = ?`,
		int(outcome.State), outcome.Percent, outcome.Attempts, outcome.EndedAt.UTC(),
		nullString(outcome.ResultsPostURI), outcome.RoundID,
	); err != nil {
		return err
	}

	return tx.Commit()
}

// ==================== Response Methods ====================

// CreateResponse inserts a single response row outside of a round
// outcome. The normal scoring path goes through SaveRoundOutcome.
func (r *Repository) CreateResponse(ctx context.Context, resp models.Response) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO responses (round_id, handle, text, is_correct, score, position, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		resp.RoundID, resp.Handle, resp.Text, resp.IsCorrect, resp.Score,
		resp.Position, resp.RecordedAt.UTC(),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const responseColumns = `id, round_id, handle, text, is_correct, score, position, recorded_at`

// ResponsesByRound returns all responses for a round in position order
func (r *Repository) ResponsesByRound(ctx context.Context, roundID int64) ([]models.Response, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+responseColumns+` FROM responses WHERE round_id = ? ORDER BY position`, roundID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanResponses(rows)
}

// TopCorrectByRound returns the first correct responses for a round,
// fastest first
func (r *Repository) TopCorrectByRound(ctx context.Context, roundID int64, limit int) ([]models.Response, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+responseColumns+` FROM responses
		 WHERE round_id = ? AND is_correct = 1 ORDER BY position LIMIT ?`,
		roundID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanResponses(rows)
}

func scanResponses(rows *sql.Rows) ([]models.Response, error) {
	var responses []models.Response
	for rows.Next() {
		var resp models.Response
		if err := rows.Scan(
			&resp.ID, &resp.RoundID, &resp.Handle, &resp.Text,
			&resp.IsCorrect, &resp.Score, &resp.Position, &resp.RecordedAt,
		); err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, rows.Err()
}

// ==================== Player Methods ====================

// UpsertPlayerOnCorrectness bumps a player's aggregates for one
// observed response, creating the player on first sight. Global points
// are a flat +1 per correct answer; tournament bonuses live in
// tournament_players.
func (r *Repository) UpsertPlayerOnCorrectness(ctx context.Context, handle string, isCorrect bool) error {
	return upsertPlayerTx(ctx, r.db, handle, isCorrect)
}

// execer covers both *sql.DB and *sql.Tx
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsertPlayerTx(ctx context.Context, db execer, handle string, isCorrect bool) error {
	correct := 0
	if isCorrect {
		correct = 1
	}
	_, err := db.ExecContext(ctx,
		`INSERT INTO players (handle, total_points, correct_count, total_count, first_seen_at)
		 VALUES (?, ?, ?, 1, ?)
		 ON CONFLICT(handle) DO UPDATE SET
			total_points = total_points + excluded.total_points,
			correct_count = correct_count + excluded.correct_count,
			total_count = total_count + 1`,
		handle, correct, correct, time.Now().UTC(),
	)
	return err
}

// GetPlayer returns a player by handle
func (r *Repository) GetPlayer(ctx context.Context, handle string) (*models.Player, error) {
	var p models.Player
	var displayName sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT handle, display_name, total_points, correct_count, total_count, first_seen_at
		 FROM players WHERE handle = ?`, handle,
	).Scan(&p.Handle, &displayName, &p.TotalPoints, &p.CorrectCount, &p.TotalCount, &p.FirstSeenAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p.DisplayName = displayName.String
	return &p, nil
}

// ListPlayers returns players ordered by total points, best first
func (r *Repository) ListPlayers(ctx context.Context, limit int) ([]models.Player, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT handle, display_name, total_points, correct_count, total_count, first_seen_at
		 FROM players ORDER BY total_points DESC, correct_count DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		var p models.Player
		var displayName sql.NullString
		if err := rows.Scan(&p.Handle, &displayName, &p.TotalPoints, &p.CorrectCount, &p.TotalCount, &p.FirstSeenAt); err != nil {
			return nil, err
		}
		p.DisplayName = displayName.String
		players = append(players, p)
	}
	return players, rows.Err()
}

// ==================== Tournament Methods ====================

// CreateTournament creates a tournament starting now
func (r *Repository) CreateTournament(ctx context.Context, name string, roundsTotal int, duration time.Duration) (int64, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO tournaments (name, started_at, ends_at, is_active, rounds_total)
		 VALUES (?, ?, ?, 1, ?)`,
		name, now, now.Add(duration), roundsTotal,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ActiveTournament returns the current tournament: flagged active and
// not yet past its end date. Returns ErrNotFound when there is none.
func (r *Repository) ActiveTournament(ctx context.Context) (*models.Tournament, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, started_at, ends_at, is_active, rounds_total, rounds_completed
		 FROM tournaments WHERE is_active = 1 AND ends_at > ? ORDER BY started_at DESC LIMIT 1`,
		time.Now().UTC(),
	)
	t, err := scanTournament(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return t, err
}

// ListTournaments returns all tournaments, newest first
func (r *Repository) ListTournaments(ctx context.Context) ([]models.Tournament, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, started_at, ends_at, is_active, rounds_total, rounds_completed
		 FROM tournaments ORDER BY started_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tournaments []models.Tournament
	for rows.Next() {
		t, err := scanTournament(rows)
		if err != nil {
			return nil, err
		}
		tournaments = append(tournaments, *t)
	}
	return tournaments, rows.Err()
}

func scanTournament(row interface{ Scan(...any) error }) (*models.Tournament, error) {
	var t models.Tournament
	err := row.Scan(&t.ID, &t.Name, &t.StartedAt, &t.EndsAt, &t.IsActive, &t.RoundsTotal, &t.RoundsCompleted)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// AddPlayerPoints adds tournament points for a player, creating the
// standing row on first sight
func (r *Repository) AddPlayerPoints(ctx context.Context, tournamentID int64, handle string, points int, isCorrect bool) error {
	return addPlayerPointsTx(ctx, r.db, tournamentID, handle, points, isCorrect)
}

func addPlayerPointsTx(ctx context.Context, db execer, tournamentID int64, handle string, points int, isCorrect bool) error {
	correct := 0
	if isCorrect {
		correct = 1
	}
	_, err := db.ExecContext(ctx,
		`INSERT INTO tournament_players (tournament_id, handle, points, correct_count, total_count)
		 VALUES (?, ?, ?, ?, 1)
		 ON CONFLICT(tournament_id, handle) DO UPDATE SET
			points = points + excluded.points,
			correct_count = correct_count + excluded.correct_count,
			total_count = total_count + 1`,
		tournamentID, handle, points, correct,
	)
	return err
}

// IncrementRoundsCompleted bumps a tournament's completed-round counter
func (r *Repository) IncrementRoundsCompleted(ctx context.Context, tournamentID int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tournaments SET rounds_completed = rounds_completed + 1 WHERE id = ?`, tournamentID)
	return err
}

// TournamentLeaderboard returns the top standings for a tournament
func (r *Repository) TournamentLeaderboard(ctx context.Context, tournamentID int64, limit int) ([]models.TournamentStanding, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT tournament_id, handle, points, correct_count, total_count
		 FROM tournament_players WHERE tournament_id = ?
		 ORDER BY points DESC, correct_count DESC LIMIT ?`,
		tournamentID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var standings []models.TournamentStanding
	for rows.Next() {
		var s models.TournamentStanding
		if err := rows.Scan(&s.TournamentID, &s.Handle, &s.Points, &s.CorrectCount, &s.TotalCount); err != nil {
			return nil, err
		}
		standings = append(standings, s)
	}
	return standings, rows.Err()
}

// ==================== Trivia Question Methods ====================

// CreateTriviaQuestion adds a question to the static bank
func (r *Repository) CreateTriviaQuestion(ctx context.Context, question, answer, category string) (int64, error) {
	if category == "" {
		category = "General"
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO trivia_questions (question, answer, category, created_at) VALUES (?, ?, ?, ?)`,
		question, answer, category, time.Now().UTC(),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// RandomTriviaQuestion draws one question uniformly at random.
// Returns ErrNotFound when the bank is empty.
func (r *Repository) RandomTriviaQuestion(ctx context.Context) (*models.TriviaQuestion, error) {
	var q models.TriviaQuestion
	err := r.db.QueryRowContext(ctx,
		`SELECT id, question, answer, category, created_at
		 FROM trivia_questions ORDER BY RANDOM() LIMIT 1`,
	).Scan(&q.ID, &q.Question, &q.Answer, &q.Category, &q.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// TriviaMediaForQuestion returns the media attached to a question
func (r *Repository) TriviaMediaForQuestion(ctx context.Context, questionID int64) ([]models.MediaItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT content, mime_type, alt_text FROM trivia_media WHERE question_id = ?`, questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.MediaItem
	for rows.Next() {
		var item models.MediaItem
		if err := rows.Scan(&item.Content, &item.MimeType, &item.AltText); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// AddTriviaMedia attaches a media item to a question
func (r *Repository) AddTriviaMedia(ctx context.Context, questionID int64, media models.MediaItem) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO trivia_media (question_id, content, mime_type, alt_text) VALUES (?, ?, ?, ?)`,
		questionID, media.Content, media.MimeType, media.AltText,
	)
	return err
}

// CountTriviaQuestions returns the size of the question bank
func (r *Repository) CountTriviaQuestions(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM trivia_questions`).Scan(&count)
	return count, err
}

// ListTriviaQuestions returns questions from the bank, newest first
func (r *Repository) ListTriviaQuestions(ctx context.Context, limit int) ([]models.TriviaQuestion, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, question, answer, category, created_at
		 FROM trivia_questions ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []models.TriviaQuestion
	for rows.Next() {
		var q models.TriviaQuestion
		if err := rows.Scan(&q.ID, &q.Question, &q.Answer, &q.Category, &q.CreatedAt); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
