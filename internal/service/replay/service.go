// Package replay (service) orchestrates one "Analyze" action: parse the
// movetext into a fresh timeline, fetch or reuse the analysis payload,
// and bind both to the replay session.
package replay

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kapu/chess-replay-go/internal/analysisclient"
	corereplay "github.com/kapu/chess-replay-go/internal/replay"
	"github.com/kapu/chess-replay-go/pkg/replaydto"
)

// ErrSuperseded reports that a newer Analyze action started while this
// one was in flight; its response was discarded unused.
var ErrSuperseded = errors.New("analysis superseded by a newer request")

// Analyzer abstracts the remote engine client.
type Analyzer interface {
	Analyze(ctx context.Context, req analysisclient.AnalyzeRequest) (*replaydto.AnalysisPayload, error)
}

type Config struct {
	DefaultDepth int
	CacheTTL     time.Duration
}

// Service wires the analysis client, the optional payload cache and the
// replay session. In-flight requests are superseded by generation: the
// transport call is not cancelled, but a stale response never reaches the
// session.
type Service struct {
	client  Analyzer
	rdb     *redis.Client
	session *corereplay.Session
	cfg     Config
	logger  *zap.Logger

	generation atomic.Int64
}

func NewService(client Analyzer, rdb *redis.Client, session *corereplay.Session, cfg Config, logger *zap.Logger) (*Service, error) {
	if client == nil {
		return nil, fmt.Errorf("analysis client is required")
	}
	if session == nil {
		return nil, fmt.Errorf("replay session is required")
	}
	if cfg.DefaultDepth <= 0 {
		cfg.DefaultDepth = 18
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client:  client,
		rdb:     rdb,
		session: session,
		cfg:     cfg,
		logger:  logger,
	}, nil
}

func (s *Service) Session() *corereplay.Session { return s.session }

// Analyze parses the movetext and attaches an analysis payload to the
// session. A parse failure leaves the previous session state untouched;
// an upstream failure keeps the freshly parsed timeline so the user can
// browse it unanalyzed and retry without re-entering the game.
func (s *Service) Analyze(ctx context.Context, movetext string, depth int) error {
	if depth <= 0 {
		depth = s.cfg.DefaultDepth
	}
	gen := s.generation.Add(1)
	requestID := uuid.NewString()

	if err := s.session.LoadGame(movetext); err != nil {
		return err
	}

	if payload := s.cacheGet(ctx, movetext, depth); payload != nil {
		s.logger.Info("analysis cache hit",
			zap.String("request_id", requestID),
			zap.Int("depth", depth),
		)
		return s.session.AttachAnalysis(payload)
	}

	start := time.Now()
	payload, err := s.client.Analyze(ctx, analysisclient.AnalyzeRequest{Movetext: movetext, Depth: depth})
	if err != nil {
		s.logger.Warn("analysis request failed",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return err
	}
	if s.generation.Load() != gen {
		s.logger.Info("stale analysis response discarded",
			zap.String("request_id", requestID),
			zap.Int64("generation", gen),
		)
		return ErrSuperseded
	}

	s.cacheSet(ctx, movetext, depth, payload)
	s.logger.Info("analysis complete",
		zap.String("request_id", requestID),
		zap.Int("depth", depth),
		zap.Int("positions", len(payload.Positions)),
		zap.Duration("duration", time.Since(start)),
	)
	return s.session.AttachAnalysis(payload)
}

func cacheKey(movetext string, depth int) string {
	sum := sha256.Sum256([]byte(movetext))
	return fmt.Sprintf("replay:analysis:%s:%d", hex.EncodeToString(sum[:]), depth)
}
