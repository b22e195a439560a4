package overlay

import "github.com/kapu/chess-replay-go/pkg/replaydto"

// Phase is the coarse game phase shown in the overlay.
type Phase string

const (
	PhaseUnknown    Phase = ""
	PhaseOpening    Phase = "opening"
	PhaseMiddlegame Phase = "middlegame"
	PhaseEndgame    Phase = "endgame"
)

// Positions past this move number count as endgame. Fixed heuristic,
// not derived from material.
const endgameMoveNumber = 25

// HeuristicSet is the flat indicator mapping consumed by the rendering
// surface. It is recomputed in full on every cursor move; a missing
// aiContext leaves every context-dependent flag false, never stale.
type HeuristicSet struct {
	Phase Phase

	// Move quality, one-hot over the classification enum.
	BookMove   bool
	Excellent  bool
	Good       bool
	Inaccuracy bool
	Mistake    bool
	Blunder    bool

	// Tactics, mirrored from the position record.
	Capture   bool
	Check     bool
	Promotion bool

	// Derived from the move itself.
	PawnBreak      bool
	PieceTrade     bool
	HighComplexity bool

	// Key-moment type, one-hot when an aiContext is attached.
	OpeningTransition   bool
	HiddenPlan          bool
	PawnStructureChange bool
	CriticalDecision    bool
	Prophylactic        bool
	PlanSequence        bool

	// Pawn structure.
	WhitePassedPawns   bool
	BlackPassedPawns   bool
	WhiteIsolatedPawns bool
	BlackIsolatedPawns bool
	WhiteDoubledPawns  bool
	BlackDoubledPawns  bool
	WhiteBackwardPawns bool
	BlackBackwardPawns bool
	WhitePawnChains    bool
	BlackPawnChains    bool
	PawnTension        bool

	// King safety.
	WhiteCastled     bool
	BlackCastled     bool
	WhiteKingExposed bool
	BlackKingExposed bool

	// Material.
	MaterialImbalance bool

	// Positional themes.
	WhiteSpaceAdvantage   bool
	BlackSpaceAdvantage   bool
	KingsidePawnMajority  bool
	QueensidePawnMajority bool
	CenterControl         replaydto.CenterAssessment
	Outposts              bool
	WeakSquares           bool
}

// Flatten maps one position record plus an optional deep context onto the
// indicator set. All inputs may be nil; absent data yields neutral values.
func Flatten(rec *replaydto.PositionRecord, aiCtx *replaydto.AiContext, payload *replaydto.AnalysisPayload) HeuristicSet {
	var h HeuristicSet

	if rec != nil && payload != nil {
		h.Phase = phaseOf(rec.MoveNumber, payload.Opening.LastBookMove)
	}

	if rec != nil {
		switch rec.Classification {
		case replaydto.ClassBook:
			h.BookMove = true
		case replaydto.ClassExcellent:
			h.Excellent = true
		case replaydto.ClassGood:
			h.Good = true
		case replaydto.ClassInaccuracy:
			h.Inaccuracy = true
		case replaydto.ClassMistake:
			h.Mistake = true
		case replaydto.ClassBlunder:
			h.Blunder = true
		}

		h.Capture = rec.IsCapture
		h.Check = rec.IsCheck
		h.Promotion = rec.IsPromotion

		h.PawnBreak = rec.IsCapture && rec.PieceType == replaydto.PiecePawn
		h.PieceTrade = rec.IsCapture && isMinorOrMajor(rec.PieceType)

		// The classification comparison is evaluated on its own terms,
		// not folded into the magnitude check.
		notBook := rec.Classification != replaydto.ClassBook
		h.HighComplexity = notBook && rec.EvalChange >= 100
	}

	if aiCtx != nil {
		flattenContext(&h, aiCtx)
	}
	return h
}

func phaseOf(moveNumber, lastBookMove int) Phase {
	switch {
	case moveNumber <= lastBookMove:
		return PhaseOpening
	case moveNumber <= endgameMoveNumber:
		return PhaseMiddlegame
	default:
		return PhaseEndgame
	}
}

func isMinorOrMajor(p replaydto.PieceName) bool {
	switch p {
	case replaydto.PieceQueen, replaydto.PieceRook, replaydto.PieceBishop, replaydto.PieceKnight:
		return true
	}
	return false
}

func flattenContext(h *HeuristicSet, ctx *replaydto.AiContext) {
	if ctx.Meta != nil {
		switch ctx.Meta.MomentType {
		case replaydto.MomentOpeningTransition:
			h.OpeningTransition = true
		case replaydto.MomentHiddenPlan:
			h.HiddenPlan = true
		case replaydto.MomentPawnStructureChange:
			h.PawnStructureChange = true
		case replaydto.MomentCriticalDecision:
			h.CriticalDecision = true
		case replaydto.MomentProphylactic:
			h.Prophylactic = true
		case replaydto.MomentPlanSequence:
			h.PlanSequence = true
		}
	}

	if ps := ctx.PawnStructure; ps != nil {
		h.WhitePassedPawns = len(ps.White.Passed) > 0
		h.BlackPassedPawns = len(ps.Black.Passed) > 0
		h.WhiteIsolatedPawns = len(ps.White.Isolated) > 0
		h.BlackIsolatedPawns = len(ps.Black.Isolated) > 0
		h.WhiteDoubledPawns = len(ps.White.Doubled) > 0
		h.BlackDoubledPawns = len(ps.Black.Doubled) > 0
		h.WhiteBackwardPawns = len(ps.White.Backward) > 0
		h.BlackBackwardPawns = len(ps.Black.Backward) > 0
		h.WhitePawnChains = len(ps.White.Chains) > 0
		h.BlackPawnChains = len(ps.Black.Chains) > 0
		h.PawnTension = len(ps.Tension) > 0
	}

	if ks := ctx.KingSafety; ks != nil {
		h.WhiteCastled = ks.White.Castled
		h.BlackCastled = ks.Black.Castled
		h.WhiteKingExposed = ks.White.Exposed()
		h.BlackKingExposed = ks.Black.Exposed()
	}

	if m := ctx.Material; m != nil {
		diff := m.Difference
		if diff < 0 {
			diff = -diff
		}
		h.MaterialImbalance = diff > 1
	}

	for _, theme := range ctx.StrategicThemes {
		switch theme.Theme {
		case "space_advantage":
			switch theme.Side {
			case "white":
				h.WhiteSpaceAdvantage = true
			case "black":
				h.BlackSpaceAdvantage = true
			}
		case "pawn_majority":
			switch theme.Flank {
			case "kingside":
				h.KingsidePawnMajority = true
			case "queenside":
				h.QueensidePawnMajority = true
			}
		}
	}

	if bc := ctx.BoardControl; bc != nil {
		if bc.CenterControl != nil {
			h.CenterControl = bc.CenterControl.Assessment
		}
		h.Outposts = len(bc.Outposts) > 0
		h.WeakSquares = len(bc.WeakSquares) > 0
	}
}
