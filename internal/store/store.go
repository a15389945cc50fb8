// Package store persists interview sessions to Postgres when a database is
// configured. Without one every operation is a silent no-op so the CLI works
// standalone.
package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Session represents one interview from greeting to termination.
type Session struct {
	ID         string     `json:"id"`
	Persona    string     `json:"persona"`
	Difficulty string     `json:"difficulty"`
	StartedAt  time.Time  `json:"started_at"`
	EndedAt    *time.Time `json:"ended_at,omitempty"`
	EndedBy    *string    `json:"ended_by,omitempty"` // "user" or "assistant"
}

// Utterance is a single turn within a session.
type Utterance struct {
	Speaker  string `json:"speaker"` // "user" or "assistant"
	Text     string `json:"text"`
	Sequence int    `json:"sequence"`
}

// InsertSession records the start of a session.
func (s *Store) InsertSession(ctx context.Context, sess Session) error {
	if s == nil || s.db == nil {
		return nil
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO interview_sessions (id, persona, difficulty, started_at)
		VALUES ($1, $2, $3, $4)
	`, sess.ID, sess.Persona, sess.Difficulty, sess.StartedAt)
	return err
}

// EndSession marks a session finished and records which side ended it.
func (s *Store) EndSession(ctx context.Context, sessionID, endedBy string, at time.Time) error {
	if s == nil || s.db == nil {
		return nil
	}
	_, err := s.db.Exec(ctx, `
		UPDATE interview_sessions SET ended_at = $2, ended_by = $3 WHERE id = $1
	`, sessionID, at, endedBy)
	return err
}

// InsertUtterance appends one turn to a session's transcript.
func (s *Store) InsertUtterance(ctx context.Context, sessionID string, u Utterance) error {
	if s == nil || s.db == nil {
		return nil
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO session_utterances (id, session_id, speaker, text, sequence)
		VALUES (gen_random_uuid(), $1, $2, $3, $4)
	`, sessionID, u.Speaker, u.Text, u.Sequence)
	return err
}
