// Package replay owns the navigation cursor and the per-position overlay
// recomputation. A Session is single-goroutine by design: navigation
// events arrive serially and each one synchronously recomputes every
// derived overlay value before the next is processed.
package replay

import (
	"errors"

	"go.uber.org/zap"

	"github.com/kapu/chess-replay-go/internal/evalscale"
	"github.com/kapu/chess-replay-go/internal/narrative"
	"github.com/kapu/chess-replay-go/internal/overlay"
	"github.com/kapu/chess-replay-go/internal/timeline"
	"github.com/kapu/chess-replay-go/pkg/replaydto"
)

var ErrNoTimeline = errors.New("no game loaded")

// Overlay bundles every derived value for one cursor position. All fields
// are recomputed together on each transition, so they are always mutually
// consistent.
type Overlay struct {
	Ply           int
	Position      timeline.PositionSnapshot
	SAN           string
	EvalFraction  float64
	IsMate        bool
	InBook        bool
	NarrativeKind overlay.NarrativeKind
	Narrative     string
	KeyMoment     *replaydto.AiContext
	Heuristics    overlay.HeuristicSet
}

type Option func(*Session)

// WithUnanalyzedNavigation lets the cursor move over a timeline that has
// no analysis attached yet; overlays degrade to neutral values.
func WithUnanalyzedNavigation() Option {
	return func(s *Session) { s.allowUnanalyzed = true }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithOrientation sets the initial board orientation (default white).
func WithOrientation(c timeline.Color) Option {
	return func(s *Session) { s.orientation = c }
}

// Session holds one loaded game, its optional analysis payload and the
// navigation cursor, and exposes the current overlay to the rendering
// collaborator. The timeline is immutable after construction and replaced
// wholesale by LoadGame.
type Session struct {
	logger          *zap.Logger
	catalog         *narrative.Catalog
	orientation     timeline.Color
	allowUnanalyzed bool

	tl      *timeline.GameTimeline
	payload *replaydto.AnalysisPayload
	cursor  *Cursor
	current Overlay
}

func NewSession(catalog *narrative.Catalog, opts ...Option) (*Session, error) {
	if catalog == nil {
		var err error
		if catalog, err = narrative.New(""); err != nil {
			return nil, err
		}
	}
	s := &Session{
		logger:      zap.NewNop(),
		catalog:     catalog,
		orientation: timeline.White,
		cursor:      NewCursor(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// LoadGame parses the movetext and replaces the timeline wholesale. On a
// parse failure the prior session state is left untouched. Any previously
// attached analysis is dropped with the old timeline.
func (s *Session) LoadGame(movetext string) error {
	tl, err := timeline.Build(movetext)
	if err != nil {
		return err
	}
	s.tl = tl
	s.payload = nil
	s.cursor = NewCursor()
	s.cursor.Reset(len(tl.Moves))
	if s.allowUnanalyzed {
		s.cursor.Enable()
	}
	s.recompute()
	s.logger.Info("game loaded",
		zap.Int("plies", len(tl.Moves)),
		zap.String("result", tl.Result),
	)
	return nil
}

// AttachAnalysis binds the analysis payload to the loaded timeline and
// enables navigation. A position-count mismatch is logged, not fatal:
// per-ply lookups already tolerate missing records.
func (s *Session) AttachAnalysis(p *replaydto.AnalysisPayload) error {
	if s.tl == nil {
		return ErrNoTimeline
	}
	if p != nil && len(p.Positions) != len(s.tl.Moves) {
		s.logger.Warn("analysis position count mismatch",
			zap.Int("analyzed", len(p.Positions)),
			zap.Int("plies", len(s.tl.Moves)),
		)
	}
	s.payload = p
	s.cursor.Enable()
	s.recompute()
	return nil
}

// SetOrientation flips the evaluation display perspective.
func (s *Session) SetOrientation(c timeline.Color) {
	s.orientation = c
	s.recompute()
}

func (s *Session) Timeline() *timeline.GameTimeline { return s.tl }

// Moves returns the ordered descriptors for the move-list view.
func (s *Session) Moves() []timeline.MoveDescriptor {
	if s.tl == nil {
		return nil
	}
	return s.tl.Moves
}

// Overlay returns the derived values for the current cursor position.
func (s *Session) Overlay() Overlay { return s.current }

func (s *Session) GoTo(index int) bool { return s.transition(s.cursor.GoTo(index)) }
func (s *Session) GoToStart() bool     { return s.transition(s.cursor.GoToStart()) }
func (s *Session) GoToEnd() bool       { return s.transition(s.cursor.GoToEnd()) }
func (s *Session) GoToNext() bool      { return s.transition(s.cursor.GoToNext()) }
func (s *Session) GoToPrevious() bool  { return s.transition(s.cursor.GoToPrevious()) }

func (s *Session) transition(moved bool) bool {
	if moved {
		s.recompute()
	}
	return moved
}

// recompute derives the full overlay for the current cursor value. Always
// a full rebuild; nothing is patched incrementally.
func (s *Session) recompute() {
	if s.tl == nil {
		s.current = Overlay{Ply: -1, EvalFraction: evalscale.Neutral}
		return
	}
	ply := s.cursor.Index()

	o := Overlay{Ply: ply, EvalFraction: evalscale.Neutral}
	if pos, ok := s.tl.PositionAt(ply); ok {
		o.Position = pos
	}
	var san string
	if mv, ok := s.tl.MoveAt(ply); ok {
		san = mv.SAN
	}
	o.SAN = san

	rec := s.payload.Record(ply)
	cls := overlay.Classify(ply, s.payload)
	o.InBook = cls.InBook
	o.NarrativeKind = cls.Kind
	o.KeyMoment = cls.KeyMoment
	o.Heuristics = overlay.Flatten(rec, cls.KeyMoment, s.payload)

	if rec != nil {
		if rec.MateIn != nil {
			o.IsMate = true
			o.EvalFraction = evalscale.Fraction(0, s.orientation, true, *rec.MateIn)
		} else if cp, ok := rec.EvalCentipawns(); ok {
			o.EvalFraction = evalscale.Fraction(cp, s.orientation, false, 0)
		}
	}

	o.Narrative = s.describe(ply, san, cls)
	s.current = o
}

func (s *Session) describe(ply int, san string, cls overlay.BookClassification) string {
	data := narrative.Data{
		SAN:        san,
		MoveNumber: overlay.MoveNumber(ply),
	}
	if s.payload != nil {
		data.Opening = s.payload.Opening.Name
		data.ECO = s.payload.Opening.ECO
	} else if ply >= 0 {
		if text, err := s.catalog.Render("narrative.unanalyzed", data); err == nil {
			return text
		}
		return ""
	}
	text, err := s.catalog.Describe(cls, data)
	if err != nil {
		s.logger.Warn("narrative render failed", zap.Error(err), zap.Int("ply", ply))
		return ""
	}
	return text
}
