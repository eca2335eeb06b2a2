package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/wordflip/internal/domain"
	"github.com/phrazzld/wordflip/internal/platform/logger"
	"github.com/phrazzld/wordflip/internal/store"
)

const sessionColumns = `id, language, upload, selected_units, state, created_at, updated_at`

// SessionStore implements store.SessionStore on PostgreSQL.
type SessionStore struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

var _ store.SessionStore = (*SessionStore)(nil)

// NewSessionStore creates a store backed by db. A nil logger uses
// slog.Default().
func NewSessionStore(db *sql.DB, l *slog.Logger) *SessionStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if l == nil {
		l = slog.Default()
	}
	return &SessionStore{
		db:     db,
		logger: l.With(slog.String("component", "session_store")),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// sessionRow holds the encoded JSONB columns of one session.
type sessionRow struct {
	upload   any
	selected any
	state    string
}

func encodeSession(s *domain.StudySession) (sessionRow, error) {
	var row sessionRow
	if len(s.Upload) > 0 {
		row.upload = string(s.Upload)
	}
	if s.SelectedUnits != nil {
		b, err := json.Marshal(s.SelectedUnits)
		if err != nil {
			return row, fmt.Errorf("failed to encode selected units: %w", err)
		}
		row.selected = string(b)
	}
	b, err := json.Marshal(s.State)
	if err != nil {
		return row, fmt.Errorf("failed to encode session state: %w", err)
	}
	row.state = string(b)
	return row, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(r rowScanner) (*domain.StudySession, error) {
	var (
		s                      domain.StudySession
		upload, selected, stat []byte
	)
	if err := r.Scan(&s.ID, &s.Language, &upload, &selected, &stat, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}

	if len(upload) > 0 {
		s.Upload = json.RawMessage(upload)
	}
	if selected != nil {
		s.SelectedUnits = []string{}
		if err := json.Unmarshal(selected, &s.SelectedUnits); err != nil {
			return nil, fmt.Errorf("failed to decode selected units: %w", err)
		}
	}
	if err := json.Unmarshal(stat, &s.State); err != nil {
		return nil, fmt.Errorf("failed to decode session state: %w", err)
	}
	return &s, nil
}

// Create implements store.SessionStore.
func (s *SessionStore) Create(ctx context.Context, session *domain.StudySession) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := session.Validate(); err != nil {
		log.Warn("session validation failed during create",
			slog.String("error", err.Error()),
			slog.String("session_id", session.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	row, err := encodeSession(session)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO study_sessions (` + sessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = s.db.ExecContext(ctx, query,
		session.ID,
		session.Language,
		row.upload,
		row.selected,
		row.state,
		session.CreatedAt,
		session.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create study session",
			slog.Any("error", err),
			slog.String("session_id", session.ID.String()))
		return MapError(err)
	}

	log.Debug("study session created",
		slog.String("session_id", session.ID.String()),
		slog.String("language", session.Language))
	return nil
}

// Get implements store.SessionStore.
func (s *SessionStore) Get(ctx context.Context, id uuid.UUID) (*domain.StudySession, error) {
	return s.get(ctx, s.db, id, false)
}

func (s *SessionStore) get(
	ctx context.Context,
	db store.DBTX,
	id uuid.UUID,
	forUpdate bool,
) (*domain.StudySession, error) {
	query := `SELECT ` + sessionColumns + ` FROM study_sessions WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	session, err := scanSession(db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrSessionNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to load study session",
			slog.Any("error", err),
			slog.String("session_id", id.String()))
		return nil, MapError(err)
	}
	return session, nil
}

// Update implements store.SessionStore.
func (s *SessionStore) Update(ctx context.Context, session *domain.StudySession) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	session.UpdatedAt = s.now()
	return s.update(ctx, s.db, session)
}

func (s *SessionStore) update(ctx context.Context, db store.DBTX, session *domain.StudySession) error {
	row, err := encodeSession(session)
	if err != nil {
		return err
	}

	query := `
		UPDATE study_sessions
		SET language = $1, upload = $2, selected_units = $3, state = $4, updated_at = $5
		WHERE id = $6
	`
	result, err := db.ExecContext(ctx, query,
		session.Language,
		row.upload,
		row.selected,
		row.state,
		session.UpdatedAt,
		session.ID,
	)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to update study session",
			slog.Any("error", err),
			slog.String("session_id", session.ID.String()))
		return MapError(err)
	}
	return CheckRowsAffected(result)
}

// Modify implements store.SessionStore. The row is locked with
// SELECT ... FOR UPDATE for the duration of fn.
func (s *SessionStore) Modify(
	ctx context.Context,
	id uuid.UUID,
	fn store.ModifyFn,
) (*domain.StudySession, error) {
	var saved *domain.StudySession
	err := store.RunInTransaction(ctx, s.db, nil, func(ctx context.Context, tx *sql.Tx) error {
		session, err := s.get(ctx, tx, id, true)
		if err != nil {
			return err
		}
		if err := fn(session); err != nil {
			return err
		}
		session.ID = id
		if err := session.Validate(); err != nil {
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}
		session.UpdatedAt = s.now()
		if err := s.update(ctx, tx, session); err != nil {
			return err
		}
		saved = session
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// Delete implements store.SessionStore.
func (s *SessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM study_sessions WHERE id = $1`, id)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete study session",
			slog.Any("error", err),
			slog.String("session_id", id.String()))
		return MapError(err)
	}
	return CheckRowsAffected(result)
}

// DeleteIdleSince implements store.SessionStore.
func (s *SessionStore) DeleteIdleSince(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM study_sessions WHERE updated_at < $1`, cutoff)
	if err != nil {
		return 0, MapError(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}
