package service

import (
	"github.com/google/uuid"
	"github.com/phrazzld/wordflip/internal/deck"
	"github.com/phrazzld/wordflip/internal/domain"
	"github.com/phrazzld/wordflip/internal/session"
)

// HaltedPrompt is shown when every unit has been deselected.
const HaltedPrompt = "Select at least one unit to start studying."

// Snapshot is the complete view of a session after one interaction.
type Snapshot struct {
	SessionID     uuid.UUID          `json:"session_id"`
	Language      domain.Language    `json:"language"`
	Mode          domain.StudyMode   `json:"mode"`
	Source        deck.SourceKind    `json:"source"`
	Units         []deck.UnitSummary `json:"units"`
	SelectedUnits []string           `json:"selected_units"`
	Position      int                `json:"position"`
	Total         int                `json:"total"`
	Card          *CardView          `json:"card,omitempty"`
	Analysis      *domain.Analysis   `json:"analysis,omitempty"`
	Quiz          *QuizView          `json:"quiz,omitempty"`
	AudioCached   bool               `json:"audio_cached"`
	Warnings      []string           `json:"warnings,omitempty"`
	Halted        bool               `json:"halted"`
	Prompt        string             `json:"prompt,omitempty"`
}

// CardView is the visible part of the current card. While browsing the
// front (word and reading) is always shown and the back only when flipped.
// While quizzing the meaning is the question and the word is revealed once
// answered.
type CardView struct {
	Word       string `json:"word,omitempty"`
	Reading    string `json:"reading,omitempty"`
	Meaning    string `json:"meaning,omitempty"`
	Example    string `json:"example,omitempty"`
	ExampleCN  string `json:"example_cn,omitempty"`
	SourceUnit string `json:"source_unit,omitempty"`
	Flipped    bool   `json:"flipped"`
}

// QuizOption is one choice of the current question. Meanings are revealed
// after answering.
type QuizOption struct {
	Word    string `json:"word"`
	Meaning string `json:"meaning,omitempty"`
}

// QuizView is the quiz block of a snapshot.
type QuizView struct {
	Options  []QuizOption `json:"options"`
	Answered bool         `json:"answered"`
	Correct  bool         `json:"correct"`
	Score    int          `json:"score"`
	Attempts int          `json:"attempts"`
}

func newSnapshot(s *domain.StudySession, res deck.Result, extra ...string) *Snapshot {
	lang, _ := domain.LookupLanguage(s.Language)
	st := s.State

	snap := &Snapshot{
		SessionID:     s.ID,
		Language:      lang,
		Mode:          st.Mode,
		Source:        res.Source,
		Units:         res.Units,
		SelectedUnits: res.Selected,
		Total:         res.Deck.Len(),
		Halted:        res.Halted,
	}
	if snap.Units == nil {
		snap.Units = []deck.UnitSummary{}
	}
	if snap.SelectedUnits == nil {
		snap.SelectedUnits = []string{}
	}
	snap.Warnings = append(append(snap.Warnings, res.Warnings...), extra...)

	if res.Halted || res.Deck.IsEmpty() {
		snap.Prompt = HaltedPrompt
		return snap
	}

	snap.Position = st.CurrentIndex + 1
	snap.AudioCached = st.Audio != nil
	if st.Analysis != nil {
		a := *st.Analysis
		snap.Analysis = &a
	}

	current := session.Current(st, res.Deck)
	if st.Mode == domain.ModeQuiz {
		snap.Card = quizCard(current, st.QuizAnswered)
		snap.Quiz = quizView(st)
	} else {
		snap.Card = browseCard(current, st.Flipped)
	}
	return snap
}

func browseCard(e domain.WordEntry, flipped bool) *CardView {
	card := &CardView{
		Word:       e.Word,
		Reading:    e.Reading,
		SourceUnit: e.SourceUnit,
		Flipped:    flipped,
	}
	if flipped {
		card.Meaning = e.Meaning
		card.Example = e.Example
		card.ExampleCN = e.ExampleCN
	}
	return card
}

func quizCard(e domain.WordEntry, answered bool) *CardView {
	card := &CardView{
		Meaning:    e.Meaning,
		SourceUnit: e.SourceUnit,
		Flipped:    answered,
	}
	if answered {
		card.Word = e.Word
		card.Reading = e.Reading
		card.Example = e.Example
		card.ExampleCN = e.ExampleCN
	}
	return card
}

func quizView(st session.State) *QuizView {
	q := &QuizView{
		Options:  make([]QuizOption, len(st.QuizOptions)),
		Answered: st.QuizAnswered,
		Correct:  st.QuizCorrect,
		Score:    st.QuizScore,
		Attempts: st.QuizAttempts,
	}
	for i, o := range st.QuizOptions {
		q.Options[i] = QuizOption{Word: o.Word}
		if st.QuizAnswered {
			q.Options[i].Meaning = o.Meaning
		}
	}
	return q
}
