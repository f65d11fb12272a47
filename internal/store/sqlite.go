// internal/store/sqlite.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pyqforge/backend/internal/corpus"
	"github.com/pyqforge/backend/internal/domain/attempt"
	"github.com/pyqforge/backend/internal/domain/diagnostics"
	"github.com/pyqforge/backend/internal/domain/mocktest"
	"github.com/pyqforge/backend/internal/domain/question"
)

const schema = `
CREATE TABLE IF NOT EXISTS questions (
    id TEXT PRIMARY KEY,
    exam_type TEXT NOT NULL,
    subject TEXT NOT NULL,
    chapter TEXT NOT NULL,
    year INTEGER NOT NULL,
    difficulty TEXT NOT NULL,
    type TEXT NOT NULL,
    data TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_questions_exam ON questions(exam_type);

CREATE TABLE IF NOT EXISTS mock_tests (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    exam_type TEXT NOT NULL,
    difficulty TEXT NOT NULL,
    total_questions INTEGER NOT NULL,
    total_marks REAL NOT NULL,
    time_limit_minutes INTEGER NOT NULL,
    marking TEXT NOT NULL,
    sections TEXT NOT NULL,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS mock_test_questions (
    test_id TEXT NOT NULL,
    question_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    data TEXT NOT NULL,
    PRIMARY KEY (test_id, question_id),
    FOREIGN KEY (test_id) REFERENCES mock_tests(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS attempts (
    id TEXT PRIMARY KEY,
    test_id TEXT NOT NULL,
    started_at TEXT NOT NULL,
    ended_at TEXT,
    status TEXT NOT NULL,
    obtained_marks REAL NOT NULL DEFAULT 0,
    time_spent_seconds INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (test_id) REFERENCES mock_tests(id)
);

CREATE INDEX IF NOT EXISTS idx_attempts_status ON attempts(status);

CREATE TABLE IF NOT EXISTS responses (
    attempt_id TEXT NOT NULL,
    question_id TEXT NOT NULL,
    selected TEXT NOT NULL,
    time_spent_seconds INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (attempt_id, question_id),
    FOREIGN KEY (attempt_id) REFERENCES attempts(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS analyses (
    attempt_id TEXT PRIMARY KEY,
    data TEXT NOT NULL,
    created_at TEXT NOT NULL,
    FOREIGN KEY (attempt_id) REFERENCES attempts(id) ON DELETE CASCADE
);
`

type SQLiteStore struct {
	db *sql.DB
}

var (
	_ Store           = (*SQLiteStore)(nil)
	_ corpus.Provider = (*SQLiteStore)(nil)
)

// NewSQLite opens (or creates) the database at dbPath. ":memory:" gives a
// private in-memory database, which tests use.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	// One connection: SQLite serializes writers anyway, and each
	// connection to ":memory:" would otherwise see its own database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(v string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, v)
}

// ============================================================================
// Questions
// ============================================================================

// SaveQuestions inserts or replaces questions by id.
func (s *SQLiteStore) SaveQuestions(ctx context.Context, qs []question.Question) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO questions (id, exam_type, subject, chapter, year, difficulty, type, data)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			exam_type = excluded.exam_type,
			subject = excluded.subject,
			chapter = excluded.chapter,
			year = excluded.year,
			difficulty = excluded.difficulty,
			type = excluded.type,
			data = excluded.data
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, q := range qs {
		data, err := json.Marshal(q)
		if err != nil {
			return fmt.Errorf("failed to encode question %s: %w", q.ID, err)
		}
		if _, err := stmt.ExecContext(ctx,
			q.ID, q.ExamType, q.Subject, q.Chapter, q.Year, string(q.Difficulty), string(q.Type), string(data),
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListQuestions returns the corpus for an exam in insertion order.
// An empty examType returns every question.
func (s *SQLiteStore) ListQuestions(ctx context.Context, examType string) ([]question.Question, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if examType == "" {
		rows, err = s.db.QueryContext(ctx, "SELECT data FROM questions ORDER BY rowid")
	} else {
		rows, err = s.db.QueryContext(ctx, "SELECT data FROM questions WHERE exam_type = ? ORDER BY rowid", examType)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	qs := []question.Question{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var q question.Question
		if err := json.Unmarshal([]byte(data), &q); err != nil {
			return nil, fmt.Errorf("failed to decode question: %w", err)
		}
		qs = append(qs, q)
	}
	return qs, rows.Err()
}

// Questions lets the store serve as a corpus provider.
func (s *SQLiteStore) Questions(ctx context.Context, examType string) ([]question.Question, error) {
	return s.ListQuestions(ctx, examType)
}

func (s *SQLiteStore) CountQuestions(ctx context.Context, examType string) (int, error) {
	var n int
	var err error
	if examType == "" {
		err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM questions").Scan(&n)
	} else {
		err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM questions WHERE exam_type = ?", examType).Scan(&n)
	}
	return n, err
}

// ============================================================================
// Mock tests
// ============================================================================

func (s *SQLiteStore) SaveMockTest(ctx context.Context, t *mocktest.MockTest) error {
	marking, err := json.Marshal(t.Marking)
	if err != nil {
		return err
	}
	sections, err := json.Marshal(t.Sections)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO mock_tests (id, name, exam_type, difficulty, total_questions, total_marks, time_limit_minutes, marking, sections, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.ExamType, string(t.Difficulty), t.TotalQuestions, t.TotalMarks, t.TimeLimitMinutes,
		string(marking), string(sections), formatTime(t.CreatedAt),
	)
	if err != nil {
		return err
	}

	for i, q := range t.Questions {
		data, err := json.Marshal(q)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO mock_test_questions (test_id, question_id, position, data) VALUES (?, ?, ?, ?)",
			t.ID, q.ID, i, string(data),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetMockTest(ctx context.Context, id string) (*mocktest.MockTest, error) {
	var (
		t                 mocktest.MockTest
		difficulty        string
		marking, sections string
		createdAt         string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, exam_type, difficulty, total_questions, total_marks, time_limit_minutes, marking, sections, created_at
		FROM mock_tests WHERE id = ?`, id,
	).Scan(&t.ID, &t.Name, &t.ExamType, &difficulty, &t.TotalQuestions, &t.TotalMarks, &t.TimeLimitMinutes,
		&marking, &sections, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	t.Difficulty = question.Difficulty(difficulty)
	if err := json.Unmarshal([]byte(marking), &t.Marking); err != nil {
		return nil, fmt.Errorf("failed to decode marking: %w", err)
	}
	if err := json.Unmarshal([]byte(sections), &t.Sections); err != nil {
		return nil, fmt.Errorf("failed to decode sections: %w", err)
	}
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT data FROM mock_test_questions WHERE test_id = ? ORDER BY position", id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var q question.Question
		if err := json.Unmarshal([]byte(data), &q); err != nil {
			return nil, fmt.Errorf("failed to decode test question: %w", err)
		}
		t.Questions = append(t.Questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &t, nil
}

// ============================================================================
// Attempts
// ============================================================================

const attemptColumns = "id, test_id, started_at, ended_at, status, obtained_marks, time_spent_seconds"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAttempt(row rowScanner) (*attempt.Attempt, error) {
	var (
		a         attempt.Attempt
		startedAt string
		endedAt   sql.NullString
		status    string
	)
	if err := row.Scan(&a.ID, &a.TestID, &startedAt, &endedAt, &status, &a.ObtainedMarks, &a.TimeSpentSeconds); err != nil {
		return nil, err
	}
	a.Status = attempt.Status(status)

	var err error
	if a.StartedAt, err = parseTime(startedAt); err != nil {
		return nil, err
	}
	if endedAt.Valid {
		t, err := parseTime(endedAt.String)
		if err != nil {
			return nil, err
		}
		a.EndedAt = &t
	}
	return &a, nil
}

func (s *SQLiteStore) SaveAttempt(ctx context.Context, a *attempt.Attempt) error {
	var endedAt sql.NullString
	if a.EndedAt != nil {
		endedAt = sql.NullString{String: formatTime(*a.EndedAt), Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO attempts ("+attemptColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		a.ID, a.TestID, formatTime(a.StartedAt), endedAt, string(a.Status), a.ObtainedMarks, a.TimeSpentSeconds,
	)
	return err
}

func (s *SQLiteStore) GetAttempt(ctx context.Context, id string) (*attempt.Attempt, error) {
	a, err := scanAttempt(s.db.QueryRowContext(ctx, "SELECT "+attemptColumns+" FROM attempts WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return a, err
}

func (s *SQLiteStore) ListAttemptsByStatus(ctx context.Context, status attempt.Status) ([]*attempt.Attempt, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+attemptColumns+" FROM attempts WHERE status = ? ORDER BY started_at", string(status),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []*attempt.Attempt
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

// ============================================================================
// Responses
// ============================================================================

// SaveResponses upserts draft responses for an in-progress attempt. A
// response for a question already saved replaces it.
func (s *SQLiteStore) SaveResponses(ctx context.Context, attemptID string, rs []attempt.Response) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := requireInProgress(ctx, tx, attemptID); err != nil {
		return err
	}

	for _, r := range rs {
		if err := upsertResponse(ctx, tx, attemptID, r); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetResponses(ctx context.Context, attemptID string) ([]attempt.Response, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT question_id, selected, time_spent_seconds FROM responses WHERE attempt_id = ? ORDER BY rowid",
		attemptID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rs := []attempt.Response{}
	for rows.Next() {
		var r attempt.Response
		var selected string
		if err := rows.Scan(&r.QuestionID, &selected, &r.TimeSpentSeconds); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(selected), &r.SelectedOptions); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
		rs = append(rs, r)
	}
	return rs, rows.Err()
}

func requireInProgress(ctx context.Context, tx *sql.Tx, attemptID string) error {
	var status string
	err := tx.QueryRowContext(ctx, "SELECT status FROM attempts WHERE id = ?", attemptID).Scan(&status)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if attempt.Status(status).Final() {
		return attempt.ErrAlreadyFinalized
	}
	return nil
}

func upsertResponse(ctx context.Context, tx *sql.Tx, attemptID string, r attempt.Response) error {
	selected := r.SelectedOptions
	if selected == nil {
		selected = []string{}
	}
	data, err := json.Marshal(selected)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO responses (attempt_id, question_id, selected, time_spent_seconds)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(attempt_id, question_id) DO UPDATE SET
			selected = excluded.selected,
			time_spent_seconds = excluded.time_spent_seconds`,
		attemptID, r.QuestionID, string(data), r.TimeSpentSeconds,
	)
	return err
}

// ============================================================================
// Finalization
// ============================================================================

func (s *SQLiteStore) FinalizeAttempt(ctx context.Context, a *attempt.Attempt, rs []attempt.Response, an *diagnostics.Analysis) error {
	if a.EndedAt == nil {
		return errors.New("finalize: attempt has no end time")
	}
	analysis, err := json.Marshal(an)
	if err != nil {
		return fmt.Errorf("failed to encode analysis: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// The status guard makes a racing second finalization a no-op.
	result, err := tx.ExecContext(ctx, `
		UPDATE attempts SET status = ?, ended_at = ?, obtained_marks = ?, time_spent_seconds = ?
		WHERE id = ? AND status = ?`,
		string(a.Status), formatTime(*a.EndedAt), a.ObtainedMarks, a.TimeSpentSeconds,
		a.ID, string(attempt.StatusInProgress),
	)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		if err := requireInProgress(ctx, tx, a.ID); err != nil {
			return err
		}
		return attempt.ErrAlreadyFinalized
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM responses WHERE attempt_id = ?", a.ID); err != nil {
		return err
	}
	for _, r := range rs {
		if err := upsertResponse(ctx, tx, a.ID, r); err != nil {
			return err
		}
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO analyses (attempt_id, data, created_at) VALUES (?, ?, ?)",
		a.ID, string(analysis), formatTime(an.CreatedAt),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetAnalysis(ctx context.Context, attemptID string) (*diagnostics.Analysis, error) {
	var data string
	err := s.db.QueryRowContext(ctx, "SELECT data FROM analyses WHERE attempt_id = ?", attemptID).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var an diagnostics.Analysis
	if err := json.Unmarshal([]byte(data), &an); err != nil {
		return nil, fmt.Errorf("failed to decode analysis: %w", err)
	}
	return &an, nil
}
