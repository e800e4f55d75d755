package scoring

import (
	"context"
	"errors"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/sprech/internal/model"
	"github.com/verte-zerg/sprech/internal/phoneme"
	"github.com/verte-zerg/sprech/internal/transcript"
	"github.com/verte-zerg/sprech/internal/validity"
)

// ErrMalformedTiming is returned for negative, non-finite or reversed timings.
var ErrMalformedTiming = errors.New("malformed word timing")

// Option configures an Engine.
type Option func(*Engine)

// WithLimits sets the validity thresholds.
func WithLimits(limits validity.Limits) Option {
	return func(e *Engine) {
		e.limits = limits
	}
}

// WithTable sets the phoneme table.
func WithTable(table *phoneme.Table) Option {
	return func(e *Engine) {
		e.table = table
	}
}

// Engine runs the full pipeline: tokenize, classify, score words, aggregate.
// It is read-only after construction and safe for concurrent use.
type Engine struct {
	limits     validity.Limits
	table      *phoneme.Table
	classifier *validity.Classifier
	scorer     *WordScorer
}

// New returns an Engine configured with opts.
func New(opts ...Option) *Engine {
	e := &Engine{limits: validity.DefaultLimits()}
	for _, opt := range opts {
		opt(e)
	}
	e.classifier = validity.New(e.limits)
	e.scorer = NewWordScorer(e.table)
	return e
}

// Score scores one request. Invalid or empty input yields the zero-score
// result; only malformed timings are returned as errors.
func (e *Engine) Score(req model.Request) (model.SessionResult, error) {
	if err := checkTimings(req.WordTimings); err != nil {
		return model.SessionResult{}, err
	}
	tokens, verdict := e.check(req)
	if !verdict.Valid {
		return InvalidResult(), nil
	}
	words := make([]model.WordScore, 0, len(tokens))
	for _, tok := range tokens {
		words = append(words, e.scorer.Score(tok.Text, timingFor(req.WordTimings, tok.Index)))
	}
	return Aggregate(words), nil
}

// Check reports the validity verdict for req without scoring it.
func (e *Engine) Check(req model.Request) validity.Verdict {
	_, verdict := e.check(req)
	return verdict
}

func (e *Engine) check(req model.Request) ([]transcript.Token, validity.Verdict) {
	tokens, err := transcript.Tokenize(req.Transcript)
	if err != nil {
		return nil, validity.Verdict{Reason: validity.ReasonEmpty}
	}
	return tokens, e.classifier.Classify(req, tokens)
}

// ScoreAll scores reqs concurrently with at most limit workers and returns
// results in request order.
func (e *Engine) ScoreAll(ctx context.Context, reqs []model.Request, limit int) ([]model.SessionResult, error) {
	results := make([]model.SessionResult, len(reqs))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := e.Score(req)
			if err != nil {
				return fmt.Errorf("request %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func checkTimings(timings []model.WordTiming) error {
	for i, t := range timings {
		if !finite(t.Start) || !finite(t.End) || t.Start < 0 || t.End < t.Start {
			return fmt.Errorf("%w: index %d (start=%v end=%v)", ErrMalformedTiming, i, t.Start, t.End)
		}
	}
	return nil
}

func timingFor(timings []model.WordTiming, index int) *model.WordTiming {
	if index < 0 || index >= len(timings) {
		return nil
	}
	t := timings[index]
	return &t
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
