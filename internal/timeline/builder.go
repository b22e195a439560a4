package timeline

import (
	"errors"
	"fmt"
	"strings"

	nchess "github.com/corentings/chess/v2"
)

// ParseError reports a movetext that could not be replayed. The timeline
// build is all-or-nothing: no partial timeline escapes alongside it.
type ParseError struct {
	Ply   int
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("movetext parse failed at ply %d (%q): %v", e.Ply, e.Token, e.Err)
	}
	return fmt.Sprintf("movetext parse failed: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

var ErrEmptyMovetext = errors.New("movetext is empty")

var resultTokens = map[string]struct{}{
	"1-0":     {},
	"0-1":     {},
	"1/2-1/2": {},
	"*":       {},
}

// Build parses a movetext string into a GameTimeline using full legality
// replay: every SAN token is applied to the position produced by all
// prior moves, and each resulting FEN is recorded as a snapshot. Any
// illegal or malformed move aborts with *ParseError.
//
// Tag pairs are carried as metadata; a [FEN] tag seeds the starting
// position. Result markers are carried, never validated against the
// board. Annotation glyphs attached to SAN tokens are tolerated.
func Build(movetext string) (*GameTimeline, error) {
	trimmed := strings.TrimSpace(movetext)
	if trimmed == "" {
		return nil, &ParseError{Err: ErrEmptyMovetext}
	}

	headers, body := splitHeaders(trimmed)

	game, err := newGame(headers)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	tl := &GameTimeline{
		Movetext:  movetext,
		Headers:   headers,
		Positions: []PositionSnapshot{PositionSnapshot(game.FEN())},
	}
	if r, ok := headers["Result"]; ok {
		tl.Result = r
	}

	for _, tok := range tokenize(body) {
		if _, ok := resultTokens[tok]; ok {
			tl.Result = tok
			continue
		}
		san := stripGlyphs(tok)
		if san == "" {
			continue
		}

		pre := game.Position()
		side := White
		if pre.Turn() == nchess.Black {
			side = Black
		}
		if err := game.PushNotationMove(san, nchess.AlgebraicNotation{}, nil); err != nil {
			return nil, &ParseError{Ply: len(tl.Moves), Token: tok, Err: err}
		}

		moves := game.Moves()
		mv := moves[len(moves)-1]
		tl.Moves = append(tl.Moves, MoveDescriptor{
			SAN:         nchess.AlgebraicNotation{}.Encode(pre, mv),
			Side:        side,
			Piece:       pieceName(pre.Board().Piece(mv.S1()).Type()),
			IsCapture:   mv.HasTag(nchess.Capture) || mv.HasTag(nchess.EnPassant),
			IsCheck:     mv.HasTag(nchess.Check),
			IsPromotion: mv.Promo() != nchess.NoPieceType,
		})
		tl.Positions = append(tl.Positions, PositionSnapshot(game.FEN()))
	}

	if len(tl.Moves) == 0 {
		return nil, &ParseError{Err: ErrEmptyMovetext}
	}
	return tl, nil
}

func newGame(headers map[string]string) (*nchess.Game, error) {
	fen := strings.TrimSpace(headers["FEN"])
	if fen == "" {
		return nchess.NewGame(), nil
	}
	opt, err := nchess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("invalid FEN tag %q: %w", fen, err)
	}
	return nchess.NewGame(opt), nil
}

// splitHeaders separates leading [Key "Value"] tag-pair lines from the
// movetext body.
func splitHeaders(s string) (map[string]string, string) {
	headers := make(map[string]string)
	var body strings.Builder
	for _, line := range strings.Split(s, "\n") {
		t := strings.TrimSpace(line)
		if strings.HasPrefix(t, "[") && strings.HasSuffix(t, "]") {
			if k, v, ok := parseTagPair(t); ok {
				headers[k] = v
				continue
			}
		}
		body.WriteString(line)
		body.WriteString("\n")
	}
	return headers, body.String()
}

func parseTagPair(line string) (string, string, bool) {
	inner := strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
	idx := strings.IndexAny(inner, " \t")
	if idx <= 0 {
		return "", "", false
	}
	key := inner[:idx]
	val := strings.TrimSpace(inner[idx+1:])
	if len(val) >= 2 && strings.HasPrefix(val, `"`) && strings.HasSuffix(val, `"`) {
		val = val[1 : len(val)-1]
	}
	return key, val, true
}

// tokenize strips comments, variations, NAGs and move numbers, returning
// candidate SAN tokens plus any result marker in order.
func tokenize(body string) []string {
	var (
		out       []string
		tok       strings.Builder
		braces    int
		parens    int
		lineCmt   bool
		flushable = func() {
			if tok.Len() > 0 {
				out = append(out, tok.String())
				tok.Reset()
			}
		}
	)
	for _, r := range body {
		switch {
		case lineCmt:
			if r == '\n' {
				lineCmt = false
			}
		case r == '{':
			flushable()
			braces++
		case r == '}':
			if braces > 0 {
				braces--
			}
		case braces > 0:
		case r == '(':
			flushable()
			parens++
		case r == ')':
			if parens > 0 {
				parens--
			}
		case parens > 0:
		case r == ';':
			flushable()
			lineCmt = true
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			flushable()
		default:
			tok.WriteRune(r)
		}
	}
	flushable()

	filtered := out[:0]
	for _, t := range out {
		t = stripMoveNumber(t)
		if t == "" || strings.HasPrefix(t, "$") {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}

// stripMoveNumber removes a leading "12." / "12..." prefix, including the
// glued form "12.e4". A bare number token reduces to the empty string.
func stripMoveNumber(tok string) string {
	i := 0
	for i < len(tok) && tok[i] >= '0' && tok[i] <= '9' {
		i++
	}
	if i == 0 {
		return tok
	}
	j := i
	for j < len(tok) && tok[j] == '.' {
		j++
	}
	if j == i && j < len(tok) {
		// digits followed by non-dot: likely a result fragment, keep as is
		return tok
	}
	return tok[j:]
}

// stripGlyphs drops trailing annotation glyphs ("!", "?", "!?", "??") from
// a SAN token. Check and mate suffixes stay; the notation decoder owns them.
func stripGlyphs(tok string) string {
	return strings.TrimRight(tok, "!?")
}

func pieceName(pt nchess.PieceType) Piece {
	switch pt {
	case nchess.Pawn:
		return Pawn
	case nchess.Knight:
		return Knight
	case nchess.Bishop:
		return Bishop
	case nchess.Rook:
		return Rook
	case nchess.Queen:
		return Queen
	case nchess.King:
		return King
	default:
		return ""
	}
}
