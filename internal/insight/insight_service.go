package insight

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	insighterrors "github.com/mohammed4122002/workflow-pro-backend/internal/insight/errors"
	"github.com/mohammed4122002/workflow-pro-backend/internal/report"
	"github.com/mohammed4122002/workflow-pro-backend/internal/shared/contextutil"
)

//go:generate mockgen -source=insight_service.go -destination=mock/insight_service_mock.go -package=mock

type Service interface {
	Generate(ctx context.Context, req GenerateInsightsRequest) (json.RawMessage, error)
	Chat(ctx context.Context, req ChatRequest) (json.RawMessage, error)
}

const (
	defaultMaxSnapshots = 10
	chatSnapshotLimit   = 10
	hotCacheTTL         = 30 * time.Minute
	dateLayout          = "2006-01-02"
)

type service struct {
	repo      Repository
	generator Generator
	rdb       *redis.Client
	group     singleflight.Group
}

func NewService(repo Repository, generator Generator, rdb *redis.Client) Service {
	return &service{repo: repo, generator: generator, rdb: rdb}
}

// SnapshotIDsHash fingerprints the exact snapshot set an insight was
// generated from.
func SnapshotIDsHash(ids []string) string {
	sum := sha256.Sum256([]byte(strings.Join(ids, "|")))
	return hex.EncodeToString(sum[:])
}

func CacheKey(reportType string, rangeFrom, rangeTo *string, hash string) string {
	from, to := "", ""
	if rangeFrom != nil {
		from = *rangeFrom
	}
	if rangeTo != nil {
		to = *rangeTo
	}
	return fmt.Sprintf("%s:%s:%s:%s", reportType, from, to, hash)
}

func HotCacheKey(cacheKey string) string {
	return "insight:" + cacheKey
}

func (s *service) Generate(ctx context.Context, req GenerateInsightsRequest) (json.RawMessage, error) {
	l := contextutil.GetLogger(ctx, nil)

	dr, err := parseRange(req.RangeFrom, req.RangeTo)
	if err != nil {
		return nil, err
	}

	limit := defaultMaxSnapshots
	if req.MaxSnapshots != nil {
		limit = *req.MaxSnapshots
	}

	snapshots, err := s.repo.FindSnapshots(ctx, report.Type(req.Type), dr, limit)
	if err != nil {
		return nil, err
	}
	if len(snapshots) == 0 {
		return nil, insighterrors.ErrNoSnapshots
	}

	ids := make([]string, len(snapshots))
	for i, snapshot := range snapshots {
		ids[i] = snapshot.ID.String()
	}
	hash := SnapshotIDsHash(ids)
	cacheKey := CacheKey(req.Type, req.RangeFrom, req.RangeTo, hash)

	if cached, ok := s.hotGet(ctx, cacheKey); ok {
		return cached, nil
	}

	// Concurrent identical requests share one generation.
	res, err, _ := s.group.Do(cacheKey, func() (any, error) {
		return s.generateUncached(ctx, req, dr, snapshots, hash, cacheKey)
	})
	if err != nil {
		return nil, err
	}

	l.Info("insights served", zap.String("cache_key", cacheKey))
	return res.(json.RawMessage), nil
}

func (s *service) generateUncached(
	ctx context.Context,
	req GenerateInsightsRequest,
	dr report.DateRange,
	snapshots []report.ReportSnapshot,
	hash string,
	cacheKey string,
) (json.RawMessage, error) {
	l := contextutil.GetLogger(ctx, nil)

	entry, err := s.repo.FindByKey(ctx, cacheKey)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err == nil && entry != nil {
		s.hotSet(ctx, cacheKey, entry.Data)
		return entry.Data, nil
	}

	prompt := buildInsightUserPrompt(req.Type, req.RangeFrom, req.RangeTo, buildSnapshotContext(snapshots))
	data, err := s.generator.Complete(ctx, insightSystemPrompt, prompt, insightSchema)
	if err != nil {
		l.Error("insight generation failed", zap.String("cache_key", cacheKey), zap.Error(err))
		return nil, err
	}
	if err := requireKeys(data, "type", "insights", "recommendations", "generatedAt"); err != nil {
		l.Error("insight payload missing required fields", zap.String("cache_key", cacheKey))
		return nil, err
	}

	if err := s.repo.Create(ctx, &InsightCacheEntry{
		Key:             cacheKey,
		Type:            report.Type(req.Type),
		RangeFrom:       dr.From,
		RangeTo:         dr.To,
		SnapshotIDsHash: hash,
		Data:            data,
	}); err != nil {
		// A concurrent writer winning the unique index race is fine,
		// the generated payload is still valid.
		l.Warn("failed to persist insight cache entry", zap.String("cache_key", cacheKey), zap.Error(err))
	}

	s.hotSet(ctx, cacheKey, data)
	return data, nil
}

func (s *service) Chat(ctx context.Context, req ChatRequest) (json.RawMessage, error) {
	l := contextutil.GetLogger(ctx, nil)

	dr, err := parseRange(req.RangeFrom, req.RangeTo)
	if err != nil {
		return nil, err
	}

	snapshots, err := s.repo.FindSnapshots(ctx, report.Type(req.Type), dr, chatSnapshotLimit)
	if err != nil {
		return nil, err
	}
	if len(snapshots) == 0 {
		return nil, insighterrors.ErrNoSnapshots
	}

	prompt := buildChatUserPrompt(req.Question, req.Type, req.RangeFrom, req.RangeTo, buildSnapshotContext(snapshots))
	data, err := s.generator.Complete(ctx, chatSystemPrompt, prompt, chatSchema)
	if err != nil {
		l.Error("chat generation failed", zap.Error(err))
		return nil, err
	}
	if err := requireKeys(data, "answer", "citations", "followUps"); err != nil {
		l.Error("chat payload missing required fields")
		return nil, err
	}

	return data, nil
}

// requireKeys rejects payloads that pass json.Valid but drop fields the
// schema marks required. Rejected payloads are never cached.
func requireKeys(data json.RawMessage, keys ...string) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return insighterrors.ErrUpstreamBadPayload
	}
	for _, key := range keys {
		if _, ok := obj[key]; !ok {
			return insighterrors.ErrUpstreamBadPayload
		}
	}
	return nil
}

func (s *service) hotGet(ctx context.Context, cacheKey string) (json.RawMessage, bool) {
	if s.rdb == nil {
		return nil, false
	}
	val, err := s.rdb.Get(ctx, HotCacheKey(cacheKey)).Bytes()
	if err != nil {
		return nil, false
	}
	return json.RawMessage(val), true
}

func (s *service) hotSet(ctx context.Context, cacheKey string, data json.RawMessage) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Set(ctx, HotCacheKey(cacheKey), []byte(data), hotCacheTTL).Err(); err != nil {
		contextutil.GetLogger(ctx, nil).Warn("failed to warm insight cache", zap.Error(err))
	}
}

func parseRange(rangeFrom, rangeTo *string) (report.DateRange, error) {
	if rangeFrom == nil && rangeTo == nil {
		return report.DateRange{}, nil
	}
	if rangeFrom == nil || rangeTo == nil {
		return report.DateRange{}, insighterrors.ErrRangeIncomplete
	}

	from, err := time.Parse(dateLayout, *rangeFrom)
	if err != nil {
		return report.DateRange{}, insighterrors.ErrInvalidDate
	}
	to, err := time.Parse(dateLayout, *rangeTo)
	if err != nil {
		return report.DateRange{}, insighterrors.ErrInvalidDate
	}
	if to.Before(from) {
		return report.DateRange{}, insighterrors.ErrInvalidRange
	}

	return report.DateRange{From: &from, To: &to}, nil
}
