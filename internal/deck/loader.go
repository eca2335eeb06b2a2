// Package deck resolves vocabulary sources into the active deck a study
// session works on: it parses uploads and bundled files, partitions flat
// lists into units and applies the learner's unit selection.
package deck

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"

	"github.com/phrazzld/wordflip/internal/domain"
)

// SourceKind names where the active deck came from.
type SourceKind string

// Deck sources, in cascade order.
const (
	SourceUpload      SourceKind = "upload"
	SourceBundled     SourceKind = "bundled"
	SourcePlaceholder SourceKind = "placeholder"
)

// Annotator derives a pronunciation reading for a word, e.g. kana for
// Japanese kanji. An empty reading means none is needed.
type Annotator interface {
	Reading(ctx context.Context, word string) (string, error)
}

// Request describes one deck resolution.
type Request struct {
	Language string
	// Upload is the raw user-supplied deck, if any.
	Upload []byte
	// Selected is the learner's unit selection; nil means unset.
	Selected []string
}

// UnitSummary describes a unit available for selection.
type UnitSummary struct {
	Label string `json:"label"`
	Size  int    `json:"size"`
}

// Result is the resolved deck with everything a caller needs to present it.
type Result struct {
	Deck     domain.Deck
	Units    []UnitSummary
	Selected []string
	Source   SourceKind
	Warnings []string
	// Halted is true when every unit was deselected; Deck is then empty.
	Halted bool
}

// Option configures a Loader.
type Option func(*Loader)

// WithUnitSize sets the chunk size for flat lists.
func WithUnitSize(size int) Option {
	return func(l *Loader) {
		if size > 0 {
			l.unitSize = size
		}
	}
}

// WithAnnotator enables reading annotation for the given languages.
func WithAnnotator(a Annotator, languages ...string) Option {
	return func(l *Loader) {
		l.annotator = a
		for _, lang := range languages {
			l.annotated[lang] = true
		}
	}
}

// WithPlaceholder replaces the demo deck generator.
func WithPlaceholder(fn PlaceholderFunc) Option {
	return func(l *Loader) {
		if fn != nil {
			l.placeholder = fn
		}
	}
}

const maxCachedPayloads = 64

// Loader runs the source cascade: upload, then bundled file, then
// placeholder. Parsed payloads are cached by content hash.
type Loader struct {
	files       fs.FS
	logger      *slog.Logger
	unitSize    int
	annotator   Annotator
	annotated   map[string]bool
	placeholder PlaceholderFunc

	mu    sync.Mutex
	cache map[string]Payload
}

// NewLoader creates a Loader reading bundled decks from files. files may be
// nil, in which case only uploads and placeholders are used.
func NewLoader(files fs.FS, logger *slog.Logger, opts ...Option) *Loader {
	if logger == nil {
		logger = slog.Default()
	}

	l := &Loader{
		files:       files,
		logger:      logger.With(slog.String("component", "deck_loader")),
		unitSize:    DefaultUnitSize,
		annotated:   make(map[string]bool),
		placeholder: DemoDeck,
		cache:       make(map[string]Payload),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// BundledFileName returns the bundled deck file name for a language.
func BundledFileName(language string) string {
	return fmt.Sprintf("words_%s.json", language)
}

// Load resolves the active deck for req. It never fails on bad data: format
// problems become warnings and the cascade moves on. An empty selection
// yields a halted result with an empty deck.
func (l *Loader) Load(ctx context.Context, req Request) (Result, error) {
	if _, err := domain.LookupLanguage(req.Language); err != nil {
		return Result{}, err
	}

	payload, source, warnings := l.resolve(ctx, req)
	units := payload.UnitsOf(l.unitSize)

	res := Result{
		Units:    summarize(units),
		Source:   source,
		Warnings: warnings,
	}

	sel, err := Select(units, req.Selected)
	switch {
	case errors.Is(err, domain.ErrEmptySelection):
		res.Halted = true
		res.Selected = []string{}
		return res, nil
	case err != nil:
		return Result{}, err
	}

	if len(sel.Dropped) > 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("ignored unknown units: %v", sel.Dropped))
	}
	res.Deck = sel.Deck
	res.Selected = sel.Labels
	return res, nil
}

func (l *Loader) resolve(ctx context.Context, req Request) (Payload, SourceKind, []string) {
	var warnings []string

	if len(req.Upload) > 0 {
		p, err := l.parse(ctx, req.Language, "upload", req.Upload)
		if err == nil {
			return p, SourceUpload, warnings
		}
		l.logger.WarnContext(ctx, "uploaded deck rejected, falling back",
			slog.String("language", req.Language),
			slog.Any("error", err))
		warnings = append(warnings, fmt.Sprintf("uploaded deck ignored: %v", err))
	}

	name := BundledFileName(req.Language)
	if l.files != nil {
		data, err := fs.ReadFile(l.files, name)
		switch {
		case err == nil:
			p, perr := l.parse(ctx, req.Language, name, data)
			if perr == nil {
				return p, SourceBundled, warnings
			}
			l.logger.WarnContext(ctx, "bundled deck malformed, using placeholder",
				slog.String("file", name),
				slog.Any("error", perr))
			warnings = append(warnings, fmt.Sprintf("bundled deck ignored: %v", perr))
		case errors.Is(err, fs.ErrNotExist):
			l.logger.DebugContext(ctx, "bundled deck not found", slog.String("file", name))
		default:
			l.logger.WarnContext(ctx, "bundled deck unreadable",
				slog.String("file", name),
				slog.Any("error", err))
		}
	}

	warnings = append(warnings, fmt.Sprintf("no usable %s, showing demo words", name))
	entries := l.placeholder(req.Language)
	if len(entries) > 3 {
		entries = entries[:3]
	}
	return Payload{Kind: FlatList, Entries: l.annotate(ctx, req.Language, entries)}, SourcePlaceholder, warnings
}

func (l *Loader) parse(ctx context.Context, language, source string, data []byte) (Payload, error) {
	sum := sha256.Sum256(data)
	key := language + ":" + hex.EncodeToString(sum[:])

	l.mu.Lock()
	p, ok := l.cache[key]
	l.mu.Unlock()
	if ok {
		return p, nil
	}

	p, err := ParsePayload(source, data)
	if err != nil {
		return Payload{}, err
	}

	p.Entries = l.annotate(ctx, language, p.Entries)
	for i := range p.Units {
		p.Units[i].Entries = l.annotate(ctx, language, p.Units[i].Entries)
	}

	l.mu.Lock()
	if len(l.cache) >= maxCachedPayloads {
		for k := range l.cache {
			delete(l.cache, k)
			break
		}
	}
	l.cache[key] = p
	l.mu.Unlock()

	return p, nil
}

func (l *Loader) annotate(ctx context.Context, language string, entries []domain.WordEntry) []domain.WordEntry {
	if l.annotator == nil || !l.annotated[language] {
		return entries
	}
	for i := range entries {
		if entries[i].Reading != "" {
			continue
		}
		reading, err := l.annotator.Reading(ctx, entries[i].Word)
		if err != nil {
			l.logger.DebugContext(ctx, "reading annotation failed",
				slog.String("word", entries[i].Word),
				slog.Any("error", err))
			continue
		}
		entries[i].Reading = reading
	}
	return entries
}

func summarize(units []domain.Unit) []UnitSummary {
	out := make([]UnitSummary, len(units))
	for i, u := range units {
		out[i] = UnitSummary{Label: u.Label, Size: u.Len()}
	}
	return out
}
