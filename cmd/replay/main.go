package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kapu/chess-replay-go/internal/analysisclient"
	appcfg "github.com/kapu/chess-replay-go/internal/config"
	"github.com/kapu/chess-replay-go/internal/narrative"
	"github.com/kapu/chess-replay-go/internal/obslog"
	corereplay "github.com/kapu/chess-replay-go/internal/replay"
	svcreplay "github.com/kapu/chess-replay-go/internal/service/replay"
	"github.com/kapu/chess-replay-go/internal/timeline"
)

func main() {
	depth := flag.Int("depth", 0, "engine search depth (0 = configured default)")
	mode := flag.String("mode", "dump", "dump: print every ply; step: interactive navigation")
	flag.Parse()

	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	movetext, err := readMovetext(flag.Arg(0))
	if err != nil {
		log.Fatalf("read movetext: %v", err)
	}

	catalog, err := narrative.New(cfg.NarrativeTemplateDir)
	if err != nil {
		log.Fatalf("narrative catalog error: %v", err)
	}

	offline := cfg.AnalysisBaseURL == ""
	sessionOpts := []corereplay.Option{
		corereplay.WithLogger(obslog.L()),
		corereplay.WithOrientation(timeline.Color(cfg.BoardOrientation)),
	}
	if offline || cfg.AllowUnanalyzedNav {
		sessionOpts = append(sessionOpts, corereplay.WithUnanalyzedNavigation())
	}
	session, err := corereplay.NewSession(catalog, sessionOpts...)
	if err != nil {
		log.Fatalf("session error: %v", err)
	}

	ctx := context.Background()
	if offline {
		if err := session.LoadGame(movetext); err != nil {
			log.Fatalf("parse error: %v", err)
		}
		fmt.Fprintln(os.Stderr, "ANALYSIS_BASE_URL not set; browsing without analysis")
	} else {
		client := analysisclient.NewClient(cfg.AnalysisBaseURL,
			analysisclient.WithTimeout(time.Duration(cfg.AnalysisTimeoutSec)*time.Second),
			analysisclient.WithRetry(cfg.AnalysisRetryMax),
		)
		rdb, err := svcreplay.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("redis error: %v", err)
		}
		svc, err := svcreplay.NewService(client, rdb, session, svcreplay.Config{
			DefaultDepth: cfg.AnalysisDepth,
			CacheTTL:     time.Duration(cfg.CacheTTLSec) * time.Second,
		}, obslog.L())
		if err != nil {
			log.Fatalf("service error: %v", err)
		}
		if err := svc.Analyze(ctx, movetext, *depth); err != nil {
			log.Fatalf("analysis error: %v", err)
		}
	}

	switch *mode {
	case "step":
		runStep(session)
	default:
		runDump(session)
	}
}

func readMovetext(path string) (string, error) {
	if path == "" || path == "-" {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	return string(b), err
}

func runDump(s *corereplay.Session) {
	printOverlay(s.Overlay())
	for s.GoToNext() {
		printOverlay(s.Overlay())
	}
}

func runStep(s *corereplay.Session) {
	fmt.Println("commands: next, prev, start, end, go <ply>, quit")
	printOverlay(s.Overlay())
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		moved := false
		switch fields[0] {
		case "next", "n":
			moved = s.GoToNext()
		case "prev", "p":
			moved = s.GoToPrevious()
		case "start":
			moved = s.GoToStart()
		case "end":
			moved = s.GoToEnd()
		case "go":
			if len(fields) == 2 {
				if idx, err := strconv.Atoi(fields[1]); err == nil {
					moved = s.GoTo(idx)
				}
			}
		case "quit", "q":
			return
		default:
			fmt.Println("unknown command")
			continue
		}
		if !moved {
			fmt.Println("(boundary)")
			continue
		}
		printOverlay(s.Overlay())
	}
}

func printOverlay(o corereplay.Overlay) {
	label := o.SAN
	if o.Ply < 0 {
		label = "(start)"
	}
	evalStr := fmt.Sprintf("%.3f", o.EvalFraction)
	if o.IsMate {
		evalStr += " (mate)"
	}
	fmt.Printf("ply %3d  %-8s eval=%s book=%-5v phase=%-10s %s\n",
		o.Ply, label, evalStr, o.InBook, o.Heuristics.Phase, o.Narrative)
	if flags := activeFlags(o); flags != "" {
		fmt.Printf("         flags: %s\n", flags)
	}
}

func activeFlags(o corereplay.Overlay) string {
	h := o.Heuristics
	var parts []string
	add := func(name string, set bool) {
		if set {
			parts = append(parts, name)
		}
	}
	add("capture", h.Capture)
	add("check", h.Check)
	add("promotion", h.Promotion)
	add("pawn_break", h.PawnBreak)
	add("piece_trade", h.PieceTrade)
	add("high_complexity", h.HighComplexity)
	add("mistake", h.Mistake)
	add("blunder", h.Blunder)
	add("material_imbalance", h.MaterialImbalance)
	if h.CenterControl != "" {
		parts = append(parts, "center:"+string(h.CenterControl))
	}
	return strings.Join(parts, ", ")
}
