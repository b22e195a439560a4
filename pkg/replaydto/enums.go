package replaydto

// Classification is the per-move quality label assigned by the analysis
// service. Closed set; unknown values fail Valid().
type Classification string

const (
	ClassBook       Classification = "book"
	ClassExcellent  Classification = "excellent"
	ClassGood       Classification = "good"
	ClassInaccuracy Classification = "inaccuracy"
	ClassMistake    Classification = "mistake"
	ClassBlunder    Classification = "blunder"
)

func (c Classification) Valid() bool {
	switch c {
	case ClassBook, ClassExcellent, ClassGood, ClassInaccuracy, ClassMistake, ClassBlunder:
		return true
	}
	return false
}

// MomentType categorises a key moment flagged by the analysis service.
type MomentType string

const (
	MomentOpeningTransition   MomentType = "opening_transition"
	MomentHiddenPlan          MomentType = "hidden_plan"
	MomentPawnStructureChange MomentType = "pawn_structure_change"
	MomentCriticalDecision    MomentType = "critical_decision"
	MomentProphylactic        MomentType = "prophylactic"
	MomentPlanSequence        MomentType = "plan_sequence"
)

func (m MomentType) Valid() bool {
	switch m {
	case MomentOpeningTransition, MomentHiddenPlan, MomentPawnStructureChange,
		MomentCriticalDecision, MomentProphylactic, MomentPlanSequence:
		return true
	}
	return false
}

// CenterAssessment summarises who controls the central squares.
type CenterAssessment string

const (
	CenterWhiteControls CenterAssessment = "white_controls"
	CenterBlackControls CenterAssessment = "black_controls"
	CenterContested     CenterAssessment = "contested"
)

// PieceName identifies the moved piece on a position record.
type PieceName string

const (
	PiecePawn   PieceName = "pawn"
	PieceKnight PieceName = "knight"
	PieceBishop PieceName = "bishop"
	PieceRook   PieceName = "rook"
	PieceQueen  PieceName = "queen"
	PieceKing   PieceName = "king"
)
