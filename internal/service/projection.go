// Package service combines validation, the projection engine and the result
// cache behind one entry point for the CLI and HTTP API.
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rpgo/savings-calculator/internal/cache"
	"github.com/rpgo/savings-calculator/internal/calculation"
	"github.com/rpgo/savings-calculator/internal/domain"
)

// ProjectionService runs projections and memoizes their results.
type ProjectionService struct {
	engine *calculation.Engine
	cache  cache.Repository
	ttl    time.Duration
	logger calculation.Logger
}

// NewProjectionService creates a service. A nil repository disables caching.
func NewProjectionService(engine *calculation.Engine, repo cache.Repository, ttl time.Duration) *ProjectionService {
	if engine == nil {
		engine = calculation.NewEngine()
	}
	if repo == nil {
		repo = cache.Nop{}
	}
	return &ProjectionService{engine: engine, cache: repo, ttl: ttl, logger: calculation.NopLogger{}}
}

// SetLogger sets the logger for the service and its engine.
func (s *ProjectionService) SetLogger(l calculation.Logger) {
	if l == nil {
		l = calculation.NopLogger{}
	}
	s.logger = l
	s.engine.SetLogger(l)
}

// MaxMonths is the engine iteration ceiling.
func (s *ProjectionService) MaxMonths() int { return s.engine.Ceiling() }

// Projection is a result plus whether it was served from the cache.
type Projection struct {
	Input  domain.ProjectionInput   `json:"input"`
	Result *domain.ProjectionResult `json:"result"`
	Cached bool                     `json:"cached"`
}

// Project validates the input and returns its projection.
func (s *ProjectionService) Project(ctx context.Context, in domain.ProjectionInput) (*Projection, error) {
	if err := calculation.ValidateInput(in); err != nil {
		return nil, err
	}
	key, err := CacheKey(in, s.engine.Ceiling())
	if err != nil {
		return nil, err
	}

	if data, ok, err := s.cache.Get(ctx, key); err != nil {
		s.logger.Warnf("cache get failed: %v", err)
	} else if ok {
		var res domain.ProjectionResult
		if err := json.Unmarshal(data, &res); err == nil {
			return &Projection{Input: in, Result: &res, Cached: true}, nil
		}
		s.logger.Warnf("discarding unreadable cache entry %s", key)
	}

	res, err := s.engine.Project(in)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(res); err != nil {
		s.logger.Warnf("failed to encode result for cache: %v", err)
	} else if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		s.logger.Warnf("cache set failed: %v", err)
	}
	return &Projection{Input: in, Result: res}, nil
}

// ProjectRaw parses textual fields, for form and query-string input.
func (s *ProjectionService) ProjectRaw(ctx context.Context, raw calculation.RawInput) (*Projection, error) {
	in, err := calculation.ParseInput(raw)
	if err != nil {
		return nil, err
	}
	return s.Project(ctx, in)
}

// RunScenarios runs a batch through the engine. Batches are not cached.
func (s *ProjectionService) RunScenarios(ctx context.Context, config *domain.Configuration) (*domain.ScenarioComparison, error) {
	return s.engine.RunScenarios(ctx, config)
}

// CacheKey derives a stable key from the input with its target resolved and
// the iteration ceiling.
func CacheKey(in domain.ProjectionInput, maxMonths int) (string, error) {
	canonical := struct {
		Deposit   float64 `json:"d"`
		Rate      float64 `json:"r"`
		Inflation float64 `json:"i"`
		Initial   float64 `json:"b"`
		Target    float64 `json:"t"`
		MaxMonths int     `json:"m"`
	}{in.MonthlyContribution, in.AnnualInterestRate, in.AnnualInflationRate, in.InitialBalance, in.Target(), maxMonths}
	b, err := json.Marshal(canonical)
	if err != nil {
		return "", fmt.Errorf("failed to build cache key: %w", err)
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}
