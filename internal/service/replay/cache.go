package replay

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kapu/chess-replay-go/pkg/replaydto"
)

// NewRedisCache connects a payload cache from a redis:// URL. An empty
// URL disables caching and returns nil without error.
func NewRedisCache(ctx context.Context, rawURL string) (*redis.Client, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, nil
	}
	opts, err := parseRedisURL(rawURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

func parseRedisURL(raw string) (*redis.Options, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "redis" && u.Scheme != "rediss" {
		return nil, fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}
	db := 0
	if p := strings.TrimPrefix(u.Path, "/"); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			db = n
		}
	}
	pass, _ := u.User.Password()
	return &redis.Options{Addr: u.Host, Password: pass, DB: db}, nil
}

// cacheGet returns a previously stored payload or nil. Cache errors are
// logged and treated as misses.
func (s *Service) cacheGet(ctx context.Context, movetext string, depth int) *replaydto.AnalysisPayload {
	if s.rdb == nil {
		return nil
	}
	raw, err := s.rdb.Get(ctx, cacheKey(movetext, depth)).Bytes()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		s.logger.Warn("analysis cache read failed", zap.Error(err))
		return nil
	}
	var payload replaydto.AnalysisPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		s.logger.Warn("analysis cache entry corrupt", zap.Error(err))
		return nil
	}
	return &payload
}

func (s *Service) cacheSet(ctx context.Context, movetext string, depth int, payload *replaydto.AnalysisPayload) {
	if s.rdb == nil || payload == nil {
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, cacheKey(movetext, depth), raw, s.cfg.CacheTTL).Err(); err != nil {
		s.logger.Warn("analysis cache write failed", zap.Error(err))
	}
}
