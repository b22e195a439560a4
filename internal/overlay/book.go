// Package overlay derives the per-ply annotation overlay from the parsed
// timeline and the analysis payload: book-boundary classification and the
// flat heuristic indicator set. Everything here is a pure function of its
// inputs and degrades to neutral values when analysis data is absent.
package overlay

import "github.com/kapu/chess-replay-go/pkg/replaydto"

// NarrativeKind selects which narrative template describes a ply.
type NarrativeKind string

const (
	KindStart    NarrativeKind = "start"
	KindBook     NarrativeKind = "book"
	KindPostBook NarrativeKind = "post_book"
)

// BookClassification is the book-boundary verdict for one cursor value.
type BookClassification struct {
	InBook    bool
	Kind      NarrativeKind
	KeyMoment *replaydto.AiContext
}

// MoveNumber converts a zero-based ply index to the chess move number:
// ceil((ply+1)/2). Ply -1 (the starting position) maps to 0.
func MoveNumber(ply int) int {
	if ply < 0 {
		return 0
	}
	return ply/2 + 1
}

// Classify determines whether the position at a ply is still inside known
// opening theory. The lastBookMove threshold is inclusive: the position
// reached by move number N with lastBookMove == N is in book. Ply -1 is
// always the START narrative regardless of book depth.
func Classify(ply int, payload *replaydto.AnalysisPayload) BookClassification {
	if payload == nil {
		kind := KindPostBook
		if ply < 0 {
			kind = KindStart
		}
		return BookClassification{Kind: kind}
	}

	inBook := MoveNumber(ply) <= payload.Opening.LastBookMove
	switch {
	case ply < 0:
		return BookClassification{InBook: inBook, Kind: KindStart}
	case inBook:
		return BookClassification{InBook: true, Kind: KindBook, KeyMoment: payload.ContextFor(ply)}
	default:
		return BookClassification{InBook: false, Kind: KindPostBook, KeyMoment: payload.ContextFor(ply)}
	}
}
