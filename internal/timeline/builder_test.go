package timeline

import (
	"errors"
	"strings"
	"testing"

	nchess "github.com/corentings/chess/v2"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

const ruyLopez = "1. e4 e5 2. Nf3 Nc6 3. Bb5 a6 4. Ba4 Nf6 5. O-O Be7"

func TestBuild_RoundTripLaw(t *testing.T) {
	tl, err := Build(ruyLopez)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(tl.Positions) != len(tl.Moves)+1 {
		t.Fatalf("positions=%d moves=%d, want positions == moves+1", len(tl.Positions), len(tl.Moves))
	}
	if got := string(tl.Positions[0]); got != startFEN {
		t.Fatalf("positions[0] = %q, want standard start", got)
	}

	// Replaying moves[i] against positions[i] must reproduce positions[i+1].
	for i, mv := range tl.Moves {
		opt, err := nchess.FEN(string(tl.Positions[i]))
		if err != nil {
			t.Fatalf("ply %d: bad snapshot FEN: %v", i, err)
		}
		g := nchess.NewGame(opt)
		if err := g.PushNotationMove(mv.SAN, nchess.AlgebraicNotation{}, nil); err != nil {
			t.Fatalf("ply %d: replay %q: %v", i, mv.SAN, err)
		}
		if got := g.FEN(); got != string(tl.Positions[i+1]) {
			t.Fatalf("ply %d: replay mismatch\n got %q\nwant %q", i, got, tl.Positions[i+1])
		}
	}
}

func TestBuild_SidesAlternate(t *testing.T) {
	tl, err := Build(ruyLopez)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for i, mv := range tl.Moves {
		want := White
		if i%2 == 1 {
			want = Black
		}
		if mv.Side != want {
			t.Fatalf("ply %d side = %s, want %s", i, mv.Side, want)
		}
	}
}

func TestBuild_ToleratesGlyphsCommentsVariations(t *testing.T) {
	movetext := "1. e4! e5?? 2. Nf3!? {a fine square} Nc6 (2... d6 3. d4) 3. Bb5 $1 a6"
	tl, err := Build(movetext)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(tl.Moves) != 6 {
		t.Fatalf("moves = %d, want 6", len(tl.Moves))
	}
	if tl.Moves[4].SAN != "Bb5" {
		t.Fatalf("moves[4] = %q, want Bb5", tl.Moves[4].SAN)
	}
}

func TestBuild_IllegalMoveAborts(t *testing.T) {
	_, err := Build("1. e4 e5 2. Ke3")
	if err == nil {
		t.Fatalf("expected error for illegal move")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	if pe.Ply != 2 {
		t.Fatalf("ParseError.Ply = %d, want 2", pe.Ply)
	}
}

func TestBuild_EmptyMovetext(t *testing.T) {
	for _, in := range []string{"", "   ", "{just a comment}"} {
		if _, err := Build(in); err == nil {
			t.Fatalf("Build(%q): expected error", in)
		}
	}
}

func TestBuild_TagPairsAndResult(t *testing.T) {
	movetext := "[Event \"Casual\"]\n[Result \"1-0\"]\n\n1. e4 e5 2. Qh5 Nc6 3. Bc4 Nf6 4. Qxf7# 1-0"
	tl, err := Build(movetext)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if tl.Result != "1-0" {
		t.Fatalf("Result = %q, want 1-0", tl.Result)
	}
	if tl.Headers["Event"] != "Casual" {
		t.Fatalf("Event header = %q", tl.Headers["Event"])
	}
	last := tl.Moves[len(tl.Moves)-1]
	if !last.IsCapture || !last.IsCheck {
		t.Fatalf("Qxf7# flags = %+v, want capture and check", last)
	}
	if !strings.Contains(last.SAN, "Qxf7") {
		t.Fatalf("last SAN = %q", last.SAN)
	}
}

func TestBuild_CaptureAndPieceFlags(t *testing.T) {
	tl, err := Build("1. e4 d5 2. exd5 Qxd5")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !tl.Moves[2].IsCapture || tl.Moves[2].Piece != Pawn {
		t.Fatalf("exd5 descriptor = %+v", tl.Moves[2])
	}
	if !tl.Moves[3].IsCapture || tl.Moves[3].Piece != Queen {
		t.Fatalf("Qxd5 descriptor = %+v", tl.Moves[3])
	}
	if tl.Moves[0].IsCapture || tl.Moves[0].IsCheck {
		t.Fatalf("e4 descriptor = %+v, want quiet move", tl.Moves[0])
	}
}

func TestBuild_CustomFENAndPromotion(t *testing.T) {
	movetext := "[FEN \"7k/P7/8/8/8/8/8/K7 w - - 0 1\"]\n\n1. a8=Q+"
	tl, err := Build(movetext)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := string(tl.Positions[0]); got != "7k/P7/8/8/8/8/8/K7 w - - 0 1" {
		t.Fatalf("positions[0] = %q, want custom FEN", got)
	}
	mv := tl.Moves[0]
	if !mv.IsPromotion || !mv.IsCheck || mv.Piece != Pawn {
		t.Fatalf("a8=Q+ descriptor = %+v", mv)
	}
}

func TestTimeline_PositionAt(t *testing.T) {
	tl, err := Build("1. e4 e5")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if pos, ok := tl.PositionAt(-1); !ok || string(pos) != startFEN {
		t.Fatalf("PositionAt(-1) = %q ok=%v", pos, ok)
	}
	if _, ok := tl.PositionAt(2); ok {
		t.Fatalf("PositionAt(2) should be out of range")
	}
	if tl.LastIndex() != 1 {
		t.Fatalf("LastIndex = %d, want 1", tl.LastIndex())
	}
}
