package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/phrazzld/wordflip/internal/deck"
	"github.com/phrazzld/wordflip/internal/domain"
	"github.com/phrazzld/wordflip/internal/enrich"
	"github.com/phrazzld/wordflip/internal/platform/logger"
	"github.com/phrazzld/wordflip/internal/session"
	"github.com/phrazzld/wordflip/internal/speech"
	"github.com/phrazzld/wordflip/internal/store"
)

// DeckLoader resolves the active deck for a session. *deck.Loader
// satisfies it.
type DeckLoader interface {
	Load(ctx context.Context, req deck.Request) (deck.Result, error)
}

// StudyService provides the learner-facing operations on a study session.
// Every operation except Audio returns the full Snapshot after the change.
type StudyService interface {
	// Start creates a session for language and returns its first snapshot.
	Start(ctx context.Context, language string) (*Snapshot, error)

	// View returns the current snapshot, reconciling the stored state with
	// the active deck.
	View(ctx context.Context, id uuid.UUID) (*Snapshot, error)

	// SwitchLanguage changes the study language. The upload and unit
	// selection are dropped and the state resets.
	SwitchLanguage(ctx context.Context, id uuid.UUID, language string) (*Snapshot, error)

	// UploadDeck replaces the session's deck with a JSON payload. A payload
	// that does not parse is discarded with a warning and the bundled deck
	// is used instead.
	UploadDeck(ctx context.Context, id uuid.UUID, data []byte) (*Snapshot, error)

	// ClearUpload drops the uploaded deck.
	ClearUpload(ctx context.Context, id uuid.UUID) (*Snapshot, error)

	// SelectUnits sets the active units. An empty list halts the session
	// until a unit is chosen; unknown labels return ErrUnknownUnit.
	SelectUnits(ctx context.Context, id uuid.UUID, units []string) (*Snapshot, error)

	// SetMode switches between browsing and quizzing.
	SetMode(ctx context.Context, id uuid.UUID, mode domain.StudyMode) (*Snapshot, error)

	// Flip turns the current card over while browsing.
	Flip(ctx context.Context, id uuid.UUID) (*Snapshot, error)

	// Advance moves one card forward or backward while browsing.
	Advance(ctx context.Context, id uuid.UUID, dir session.Direction) (*Snapshot, error)

	// Answer scores a quiz answer.
	Answer(ctx context.Context, id uuid.UUID, word string) (*Snapshot, error)

	// NextQuestion moves to the next quiz question after an answer.
	NextQuestion(ctx context.Context, id uuid.UUID) (*Snapshot, error)

	// Analyze attaches enrichment for the current card. Failures are
	// reported as WarningAnalysisUnavailable, not as errors.
	Analyze(ctx context.Context, id uuid.UUID) (*Snapshot, error)

	// Audio returns pronunciation audio for the current word, or
	// speech.ErrUnavailable when none can be produced.
	Audio(ctx context.Context, id uuid.UUID) (speech.Audio, error)
}

// stepFn is a state machine transition applied to a reconciled state.
type stepFn func(st session.State, d domain.Deck) (session.State, error)

type studyServiceImpl struct {
	store       store.SessionStore
	loader      DeckLoader
	analyzer    enrich.Analyzer
	synthesizer speech.Synthesizer
	rng         session.Rand
	logger      *slog.Logger
}

var _ StudyService = (*studyServiceImpl)(nil)

// Option customizes a StudyService.
type Option func(*studyServiceImpl)

// WithRand sets the randomness used for quiz options.
func WithRand(rng session.Rand) Option {
	return func(s *studyServiceImpl) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// NewStudyService creates a StudyService. A nil analyzer or synthesizer
// disables that feature.
func NewStudyService(
	sessions store.SessionStore,
	loader DeckLoader,
	analyzer enrich.Analyzer,
	synthesizer speech.Synthesizer,
	logger *slog.Logger,
	opts ...Option,
) (StudyService, error) {
	if sessions == nil {
		return nil, fmt.Errorf("%w: session store cannot be nil", domain.ErrValidation)
	}
	if loader == nil {
		return nil, fmt.Errorf("%w: deck loader cannot be nil", domain.ErrValidation)
	}
	if analyzer == nil {
		analyzer = enrich.Disabled{}
	}
	if synthesizer == nil {
		synthesizer = speech.Disabled{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &studyServiceImpl{
		store:       sessions,
		loader:      loader,
		analyzer:    analyzer,
		synthesizer: synthesizer,
		rng:         session.DefaultRand,
		logger:      logger.With(slog.String("component", "study_service")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start implements StudyService.
func (s *studyServiceImpl) Start(ctx context.Context, language string) (*Snapshot, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if language == "" {
		language = domain.DefaultLanguage
	}
	sess, err := domain.NewStudySession(language)
	if err != nil {
		return nil, err
	}

	res, err := s.reconcile(ctx, sess)
	if err != nil {
		return nil, s.wrap("start", err)
	}
	if err := s.store.Create(ctx, sess); err != nil {
		return nil, s.wrap("start", err)
	}

	log.Info("study session started",
		slog.String("session_id", sess.ID.String()),
		slog.String("language", language),
		slog.String("source", string(res.Source)))
	return newSnapshot(sess, res), nil
}

// View implements StudyService.
func (s *studyServiceImpl) View(ctx context.Context, id uuid.UUID) (*Snapshot, error) {
	return s.modify(ctx, "view", id, nil, nil)
}

// SwitchLanguage implements StudyService.
func (s *studyServiceImpl) SwitchLanguage(
	ctx context.Context,
	id uuid.UUID,
	language string,
) (*Snapshot, error) {
	if _, err := domain.LookupLanguage(language); err != nil {
		return nil, err
	}
	return s.modify(ctx, "switch_language", id, func(sess *domain.StudySession) error {
		if sess.Language == language {
			return nil
		}
		sess.Language = language
		sess.Upload = nil
		sess.SelectedUnits = nil
		return nil
	}, nil)
}

// UploadDeck implements StudyService.
func (s *studyServiceImpl) UploadDeck(ctx context.Context, id uuid.UUID, data []byte) (*Snapshot, error) {
	var warning string
	if _, err := deck.ParsePayload("upload", data); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("uploaded deck rejected",
			slog.String("session_id", id.String()),
			slog.Any("error", err))
		warning = fmt.Sprintf("uploaded deck ignored: %v", err)
		data = nil
	}

	snap, err := s.modify(ctx, "upload_deck", id, func(sess *domain.StudySession) error {
		sess.Upload = slices.Clone(data)
		sess.SelectedUnits = nil
		return nil
	}, nil)
	if err != nil {
		return nil, err
	}
	if warning != "" {
		snap.Warnings = append([]string{warning}, snap.Warnings...)
	}
	return snap, nil
}

// ClearUpload implements StudyService.
func (s *studyServiceImpl) ClearUpload(ctx context.Context, id uuid.UUID) (*Snapshot, error) {
	return s.modify(ctx, "clear_upload", id, func(sess *domain.StudySession) error {
		if len(sess.Upload) == 0 {
			return nil
		}
		sess.Upload = nil
		sess.SelectedUnits = nil
		return nil
	}, nil)
}

// SelectUnits implements StudyService.
func (s *studyServiceImpl) SelectUnits(
	ctx context.Context,
	id uuid.UUID,
	units []string,
) (*Snapshot, error) {
	requested := append([]string{}, units...)

	return s.modify(ctx, "select_units", id, func(sess *domain.StudySession) error {
		res, err := s.loader.Load(ctx, deck.Request{Language: sess.Language, Upload: sess.Upload})
		if err != nil {
			return err
		}
		known := make(map[string]bool, len(res.Units))
		for _, u := range res.Units {
			known[u.Label] = true
		}
		for _, label := range requested {
			if !known[label] {
				return fmt.Errorf("%w: %q", ErrUnknownUnit, label)
			}
		}
		sess.SelectedUnits = requested
		return nil
	}, nil)
}

// SetMode implements StudyService.
func (s *studyServiceImpl) SetMode(
	ctx context.Context,
	id uuid.UUID,
	mode domain.StudyMode,
) (*Snapshot, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", session.ErrInvalidMode, mode)
	}
	return s.modify(ctx, "set_mode", id, nil, func(st session.State, _ domain.Deck) (session.State, error) {
		return session.SetMode(st, mode)
	})
}

// Flip implements StudyService.
func (s *studyServiceImpl) Flip(ctx context.Context, id uuid.UUID) (*Snapshot, error) {
	return s.modify(ctx, "flip", id, nil, func(st session.State, _ domain.Deck) (session.State, error) {
		return session.ToggleFlip(st)
	})
}

// Advance implements StudyService.
func (s *studyServiceImpl) Advance(
	ctx context.Context,
	id uuid.UUID,
	dir session.Direction,
) (*Snapshot, error) {
	if !dir.Valid() {
		return nil, session.ErrInvalidDirection
	}
	return s.modify(ctx, "advance", id, nil, func(st session.State, d domain.Deck) (session.State, error) {
		return session.Advance(st, d, dir)
	})
}

// Answer implements StudyService.
func (s *studyServiceImpl) Answer(ctx context.Context, id uuid.UUID, word string) (*Snapshot, error) {
	return s.modify(ctx, "answer", id, nil, func(st session.State, d domain.Deck) (session.State, error) {
		return session.Answer(st, d, word)
	})
}

// NextQuestion implements StudyService.
func (s *studyServiceImpl) NextQuestion(ctx context.Context, id uuid.UUID) (*Snapshot, error) {
	return s.modify(ctx, "next_question", id, nil, func(st session.State, d domain.Deck) (session.State, error) {
		return session.Next(st, d)
	})
}

// Analyze implements StudyService. The provider is called without holding
// the session; the result is attached only if the learner is still on the
// same card.
func (s *studyServiceImpl) Analyze(ctx context.Context, id uuid.UUID) (*Snapshot, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	sess, res, err := s.peek(ctx, "analyze", id)
	if err != nil {
		return nil, err
	}
	if sess.State.Analysis != nil {
		return newSnapshot(sess, res), nil
	}

	lang, err := domain.LookupLanguage(sess.Language)
	if err != nil {
		return nil, err
	}
	entry := session.Current(sess.State, res.Deck)

	analysis, err := s.analyzer.Analyze(ctx, enrich.Request{
		Word:     entry.Word,
		Meaning:  entry.Meaning,
		Language: lang,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		log.Warn("word analysis unavailable",
			slog.String("session_id", id.String()),
			slog.String("word", entry.Word),
			slog.Any("error", err))
		return newSnapshot(sess, res, WarningAnalysisUnavailable), nil
	}

	pinned := sess.State
	return s.modify(ctx, "analyze", id, nil, func(st session.State, _ domain.Deck) (session.State, error) {
		if !sameCard(st, pinned) {
			return st, nil
		}
		return session.WithAnalysis(st, analysis), nil
	})
}

// Audio implements StudyService.
func (s *studyServiceImpl) Audio(ctx context.Context, id uuid.UUID) (speech.Audio, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	sess, res, err := s.peek(ctx, "audio", id)
	if err != nil {
		return speech.Audio{}, err
	}

	lang, err := domain.LookupLanguage(sess.Language)
	if err != nil {
		return speech.Audio{}, err
	}
	text := session.Current(sess.State, res.Deck).Word

	audio, err := s.synthesizer.Synthesize(ctx, text, lang.SpeechCode)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return speech.Audio{}, ctxErr
		}
		log.Info("pronunciation audio unavailable",
			slog.String("session_id", id.String()),
			slog.String("word", text),
			slog.Any("error", err))
		return speech.Audio{}, fmt.Errorf("%w: %v", speech.ErrUnavailable, err)
	}

	pinned := sess.State
	ref := domain.AudioRef{Text: text, LanguageCode: lang.SpeechCode}
	_, err = s.modify(ctx, "audio", id, nil, func(st session.State, _ domain.Deck) (session.State, error) {
		if !sameCard(st, pinned) {
			return st, nil
		}
		return session.WithAudio(st, ref), nil
	})
	if err != nil {
		return speech.Audio{}, err
	}
	return audio, nil
}

// modify applies edit to the stored session record, reloads its deck,
// reconciles the state and, when step is set, applies the transition. The
// whole sequence runs inside the store's per-session Modify.
func (s *studyServiceImpl) modify(
	ctx context.Context,
	op string,
	id uuid.UUID,
	edit func(*domain.StudySession) error,
	step stepFn,
) (*Snapshot, error) {
	var res deck.Result
	saved, err := s.store.Modify(ctx, id, func(sess *domain.StudySession) error {
		if edit != nil {
			if err := edit(sess); err != nil {
				return err
			}
		}

		r, err := s.reconcile(ctx, sess)
		if err != nil {
			return err
		}

		if step != nil {
			if r.Halted {
				return domain.ErrEmptySelection
			}
			next, err := step(sess.State, r.Deck)
			if err != nil {
				return err
			}
			sess.State = session.EnsureOptions(next, r.Deck, s.rng)
		}

		res = r
		return nil
	})
	if err != nil {
		return nil, s.wrap(op, err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("study session updated",
		slog.String("operation", op),
		slog.String("session_id", id.String()),
		slog.Int("index", saved.State.CurrentIndex),
		slog.String("mode", string(saved.State.Mode)))
	return newSnapshot(saved, res), nil
}

// peek loads a session and its deck without persisting anything. It fails
// with domain.ErrEmptySelection when there is no card to work on.
func (s *studyServiceImpl) peek(
	ctx context.Context,
	op string,
	id uuid.UUID,
) (*domain.StudySession, deck.Result, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, deck.Result{}, s.wrap(op, err)
	}
	res, err := s.reconcile(ctx, sess)
	if err != nil {
		return nil, deck.Result{}, s.wrap(op, err)
	}
	if res.Halted || res.Deck.IsEmpty() {
		return nil, deck.Result{}, domain.ErrEmptySelection
	}
	return sess, res, nil
}

// reconcile loads the session's deck and aligns the state with it.
func (s *studyServiceImpl) reconcile(ctx context.Context, sess *domain.StudySession) (deck.Result, error) {
	res, err := s.loader.Load(ctx, deck.Request{
		Language: sess.Language,
		Upload:   sess.Upload,
		Selected: sess.SelectedUnits,
	})
	if err != nil {
		return deck.Result{}, err
	}

	st, changed := session.Reconcile(sess.State, sess.Language, res.Deck)
	if changed {
		logger.FromContextOrDefault(ctx, s.logger).Debug("session state reset",
			slog.String("session_id", sess.ID.String()),
			slog.String("language", sess.Language))
	}
	sess.State = session.EnsureOptions(st, res.Deck, s.rng)
	return res, nil
}

// wrap passes expected errors through and wraps everything else.
func (s *studyServiceImpl) wrap(op string, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrUnknownLanguage),
		errors.Is(err, domain.ErrEmptySelection),
		errors.Is(err, domain.ErrEmptyDeck),
		errors.Is(err, session.ErrWrongMode),
		errors.Is(err, session.ErrNotAnswered),
		errors.Is(err, session.ErrAlreadyAnswered),
		errors.Is(err, session.ErrUnknownOption),
		errors.Is(err, session.ErrInvalidDirection),
		errors.Is(err, session.ErrInvalidMode),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return err
	}
	return NewStudyServiceError(op, "unexpected failure", err)
}

// sameCard reports whether st still shows the card pinned was built for.
func sameCard(st, pinned session.State) bool {
	return st.Language == pinned.Language &&
		st.DeckFingerprint == pinned.DeckFingerprint &&
		st.Mode == pinned.Mode &&
		st.CurrentIndex == pinned.CurrentIndex
}
