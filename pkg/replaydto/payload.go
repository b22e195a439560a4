package replaydto

// AnalysisPayload is the response body of the remote analysis service,
// consumed read-only. Optional sections are pointers so that flattening
// logic can match on presence instead of chaining defaults.
type AnalysisPayload struct {
	Opening    Opening          `json:"opening"`
	Positions  []PositionRecord `json:"positions"`
	KeyMoments []KeyMoment      `json:"keyMoments,omitempty"`
	AiContexts []AiContext      `json:"aiContexts,omitempty"`
	GameInfo   *GameInfo        `json:"gameInfo,omitempty"`
}

type Opening struct {
	Name         string `json:"name"`
	ECO          string `json:"eco"`
	LastBookMove int    `json:"lastBookMove"`
	BookDepth    int    `json:"bookDepth"`
}

type GameInfo struct {
	Opening string `json:"opening"`
	ECO     string `json:"eco"`
}

// PositionRecord describes one ply. The service reports the evaluation
// either as a bare centipawn number or nested under evaluation.score.
type PositionRecord struct {
	RawEval        *float64       `json:"rawEval,omitempty"`
	Evaluation     *Evaluation    `json:"evaluation,omitempty"`
	MateIn         *int           `json:"mateIn,omitempty"`
	Classification Classification `json:"classification,omitempty"`
	IsCapture      bool           `json:"isCapture"`
	IsCheck        bool           `json:"isCheck"`
	IsPromotion    bool           `json:"isPromotion"`
	PieceType      PieceName      `json:"pieceType,omitempty"`
	EvalChange     float64        `json:"evalChange"`
	MoveNumber     int            `json:"moveNumber"`
}

type Evaluation struct {
	Score float64 `json:"score"`
}

// EvalCentipawns resolves the evaluation with rawEval taking precedence
// over evaluation.score. The second return reports whether either was set.
func (p *PositionRecord) EvalCentipawns() (float64, bool) {
	if p == nil {
		return 0, false
	}
	if p.RawEval != nil {
		return *p.RawEval, true
	}
	if p.Evaluation != nil {
		return p.Evaluation.Score, true
	}
	return 0, false
}

// KeyMoment references one or more ply indices. Entries are paired with
// AiContexts by slice position, not sorted by ply.
type KeyMoment struct {
	MoveIndex *int  `json:"moveIndex,omitempty"`
	Moves     []int `json:"moves,omitempty"`
}

// Matches reports whether the moment refers to the given ply index.
func (k KeyMoment) Matches(ply int) bool {
	if k.MoveIndex != nil && *k.MoveIndex == ply {
		return true
	}
	for _, m := range k.Moves {
		if m == ply {
			return true
		}
	}
	return false
}

// AiContext carries the deeper strategic record attached to a key moment.
type AiContext struct {
	PawnStructure   *PawnStructure   `json:"pawnStructure,omitempty"`
	KingSafety      *KingSafety      `json:"kingSafety,omitempty"`
	Material        *Material        `json:"material,omitempty"`
	StrategicThemes []StrategicTheme `json:"strategicThemes,omitempty"`
	BoardControl    *BoardControl    `json:"boardControl,omitempty"`
	Meta            *ContextMeta     `json:"meta,omitempty"`
}

type ContextMeta struct {
	MomentType MomentType `json:"momentType"`
}

type PawnStructure struct {
	White   SidePawns `json:"white"`
	Black   SidePawns `json:"black"`
	Tension []string  `json:"tension,omitempty"`
}

type SidePawns struct {
	Passed   []string   `json:"passed,omitempty"`
	Isolated []string   `json:"isolated,omitempty"`
	Doubled  []string   `json:"doubled,omitempty"`
	Backward []string   `json:"backward,omitempty"`
	Chains   [][]string `json:"chains,omitempty"`
}

type KingSafety struct {
	White SideKingSafety `json:"white"`
	Black SideKingSafety `json:"black"`
}

type SideKingSafety struct {
	Castled    bool     `json:"castled"`
	PawnShield string   `json:"pawnShield,omitempty"` // "intact" or "compromised"
	OpenFiles  []string `json:"openFiles,omitempty"`
}

// Exposed is true when the pawn shield is compromised or any file next to
// the king is open.
func (s SideKingSafety) Exposed() bool {
	return s.PawnShield == "compromised" || len(s.OpenFiles) > 0
}

type Material struct {
	White      float64 `json:"white"`
	Black      float64 `json:"black"`
	Difference float64 `json:"difference"` // pawn units, positive favours White
}

type StrategicTheme struct {
	Theme string `json:"theme"`
	Side  string `json:"side,omitempty"`  // "white" or "black"
	Flank string `json:"flank,omitempty"` // "kingside" or "queenside"
}

type BoardControl struct {
	CenterControl *CenterControl `json:"centerControl,omitempty"`
	Outposts      []string       `json:"outposts,omitempty"`
	WeakSquares   []string       `json:"weakSquares,omitempty"`
}

type CenterControl struct {
	Assessment CenterAssessment `json:"assessment"`
}

// Record returns the position record for a zero-based ply index, or nil
// when the payload carries no entry for it.
func (a *AnalysisPayload) Record(ply int) *PositionRecord {
	if a == nil || ply < 0 || ply >= len(a.Positions) {
		return nil
	}
	return &a.Positions[ply]
}

// ContextFor scans keyMoments for an entry matching the ply index and
// returns the slice-aligned aiContext. Counts are small; a linear scan
// per cursor move is fine.
func (a *AnalysisPayload) ContextFor(ply int) *AiContext {
	if a == nil {
		return nil
	}
	for i, km := range a.KeyMoments {
		if !km.Matches(ply) {
			continue
		}
		if i < len(a.AiContexts) {
			return &a.AiContexts[i]
		}
		return nil
	}
	return nil
}
