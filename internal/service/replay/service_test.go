package replay

import (
	"context"
	"errors"
	"fmt"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"

	"github.com/kapu/chess-replay-go/internal/analysisclient"
	corereplay "github.com/kapu/chess-replay-go/internal/replay"
	"github.com/kapu/chess-replay-go/internal/timeline"
	"github.com/kapu/chess-replay-go/pkg/replaydto"
)

const ruyLopez = "1. e4 e5 2. Nf3 Nc6 3. Bb5 a6 4. Ba4 Nf6 5. O-O Be7"

type stubAnalyzer struct {
	calls int
	fn    func(req analysisclient.AnalyzeRequest) (*replaydto.AnalysisPayload, error)
}

func (a *stubAnalyzer) Analyze(_ context.Context, req analysisclient.AnalyzeRequest) (*replaydto.AnalysisPayload, error) {
	a.calls++
	return a.fn(req)
}

func okPayload() *replaydto.AnalysisPayload {
	p := &replaydto.AnalysisPayload{
		Opening: replaydto.Opening{Name: "Ruy Lopez", ECO: "C60", LastBookMove: 5},
	}
	for i := 0; i < 10; i++ {
		p.Positions = append(p.Positions, replaydto.PositionRecord{
			Classification: replaydto.ClassBook,
			MoveNumber:     i/2 + 1,
		})
	}
	return p
}

func newTestService(t *testing.T, analyzer Analyzer, withCache bool) *Service {
	t.Helper()
	session, err := corereplay.NewSession(nil)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	var rdbURL string
	if withCache {
		mr, err := miniredis.Run()
		if err != nil {
			t.Fatalf("miniredis: %v", err)
		}
		t.Cleanup(mr.Close)
		rdbURL = fmt.Sprintf("redis://%s/0", mr.Addr())
	}
	rdb, err := NewRedisCache(context.Background(), rdbURL)
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	svc, err := NewService(analyzer, rdb, session, Config{}, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestAnalyze_AttachesPayload(t *testing.T) {
	stub := &stubAnalyzer{fn: func(analysisclient.AnalyzeRequest) (*replaydto.AnalysisPayload, error) {
		return okPayload(), nil
	}}
	svc := newTestService(t, stub, false)

	if err := svc.Analyze(context.Background(), ruyLopez, 0); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	s := svc.Session()
	if !s.GoToEnd() {
		t.Fatalf("session not navigable after analysis")
	}
	if got := s.Overlay().Ply; got != 9 {
		t.Fatalf("end ply = %d, want 9", got)
	}
}

func TestAnalyze_DefaultDepthApplied(t *testing.T) {
	var gotDepth int
	stub := &stubAnalyzer{fn: func(req analysisclient.AnalyzeRequest) (*replaydto.AnalysisPayload, error) {
		gotDepth = req.Depth
		return okPayload(), nil
	}}
	svc := newTestService(t, stub, false)
	if err := svc.Analyze(context.Background(), ruyLopez, 0); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if gotDepth != 18 {
		t.Fatalf("depth = %d, want default 18", gotDepth)
	}
}

func TestAnalyze_ParseErrorSkipsUpstream(t *testing.T) {
	stub := &stubAnalyzer{fn: func(analysisclient.AnalyzeRequest) (*replaydto.AnalysisPayload, error) {
		return okPayload(), nil
	}}
	svc := newTestService(t, stub, false)

	err := svc.Analyze(context.Background(), "1. e4 e5 2. Ke3", 12)
	var pe *timeline.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if stub.calls != 0 {
		t.Fatalf("upstream called despite parse failure")
	}
}

func TestAnalyze_UpstreamFailureKeepsTimeline(t *testing.T) {
	stub := &stubAnalyzer{fn: func(analysisclient.AnalyzeRequest) (*replaydto.AnalysisPayload, error) {
		return nil, replaydto.AnalysisFailed("engine unavailable", true)
	}}
	svc := newTestService(t, stub, false)

	err := svc.Analyze(context.Background(), ruyLopez, 12)
	var de replaydto.DomainError
	if !errors.As(err, &de) {
		t.Fatalf("expected DomainError, got %v", err)
	}
	if svc.Session().Timeline() == nil {
		t.Fatalf("timeline lost on upstream failure")
	}
	// Navigation stays locked until an analysis payload arrives.
	if svc.Session().GoToNext() {
		t.Fatalf("navigation enabled without analysis")
	}
}

func TestAnalyze_CacheHitSkipsUpstream(t *testing.T) {
	stub := &stubAnalyzer{fn: func(analysisclient.AnalyzeRequest) (*replaydto.AnalysisPayload, error) {
		return okPayload(), nil
	}}
	svc := newTestService(t, stub, true)
	ctx := context.Background()

	if err := svc.Analyze(ctx, ruyLopez, 12); err != nil {
		t.Fatalf("first Analyze: %v", err)
	}
	if err := svc.Analyze(ctx, ruyLopez, 12); err != nil {
		t.Fatalf("second Analyze: %v", err)
	}
	if stub.calls != 1 {
		t.Fatalf("upstream calls = %d, want 1 (second should hit cache)", stub.calls)
	}

	// A different depth is a different cache entry.
	if err := svc.Analyze(ctx, ruyLopez, 20); err != nil {
		t.Fatalf("third Analyze: %v", err)
	}
	if stub.calls != 2 {
		t.Fatalf("upstream calls = %d, want 2", stub.calls)
	}
}

func TestAnalyze_SupersededResponseDiscarded(t *testing.T) {
	block := make(chan struct{})
	entered := make(chan struct{})
	first := true
	stub := &stubAnalyzer{fn: func(analysisclient.AnalyzeRequest) (*replaydto.AnalysisPayload, error) {
		if first {
			first = false
			close(entered)
			<-block
		}
		return okPayload(), nil
	}}
	svc := newTestService(t, stub, false)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		done <- svc.Analyze(ctx, ruyLopez, 12)
	}()
	<-entered

	// A second action supersedes the blocked one.
	if err := svc.Analyze(ctx, ruyLopez, 12); err != nil {
		t.Fatalf("second Analyze: %v", err)
	}
	close(block)

	if err := <-done; !errors.Is(err, ErrSuperseded) {
		t.Fatalf("first Analyze = %v, want ErrSuperseded", err)
	}
	if got := svc.Session(); !got.GoToEnd() || got.Overlay().Ply != 9 {
		t.Fatalf("session should reflect the newer request")
	}
}
