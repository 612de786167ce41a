// Package screen runs the classifier over a batch of locations.
package screen

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/location-screen/internal/model"
)

// DefaultConcurrency is used when Runner.Concurrency is not positive.
const DefaultConcurrency = 8

const progressEvery = 500

// Classifier is the per-record decision procedure.
type Classifier interface {
	Verdict(loc model.Location) model.Verdict
}

// Failure records a location whose classification panicked.
type Failure struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Error string `json:"error"`
}

// Result is the outcome of one scan.
type Result struct {
	RunID     string          `json:"run_id"`
	StartedAt time.Time       `json:"started_at"`
	Duration  time.Duration   `json:"duration"`
	Scanned   int             `json:"scanned"` // includes failures
	Flagged   []model.Verdict `json:"flagged"`
	Failures  []Failure       `json:"failures,omitempty"`
}

// Runner classifies locations concurrently. Flagged verdicts come back in
// input order.
type Runner struct {
	Classifier  Classifier
	Concurrency int
}

// NewRunner creates a Runner.
func NewRunner(c Classifier, concurrency int) *Runner {
	return &Runner{Classifier: c, Concurrency: concurrency}
}

// Run classifies every location. A record that panics is skipped and
// reported in Result.Failures; the rest of the batch still completes.
// Cancelling ctx stops scheduling and returns the context error.
func (r *Runner) Run(ctx context.Context, locations []model.Location) (*Result, error) {
	if r.Classifier == nil {
		return nil, eris.New("screen: nil classifier")
	}
	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	res := &Result{
		RunID:     uuid.New().String(),
		StartedAt: time.Now().UTC(),
	}
	log := zap.L().With(zap.String("run_id", res.RunID))
	log.Info("screen: scanning locations",
		zap.Int("locations", len(locations)),
		zap.Int("concurrency", concurrency),
	)

	// One slot per input keeps order without a shared accumulator.
	verdicts := make([]model.Verdict, len(locations))
	failures := make([]*Failure, len(locations))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var done atomic.Int64

	for i, loc := range locations {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			verdicts[i], failures[i] = r.classifyOne(loc)
			if failures[i] != nil {
				log.Error("screen: classification failed",
					zap.String("location_id", loc.ID),
					zap.String("error", failures[i].Error),
				)
			}
			if n := done.Add(1); n%progressEvery == 0 {
				log.Info("screen: progress",
					zap.Int64("completed", n),
					zap.Int("total", len(locations)),
				)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "screen: run")
	}
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "screen: run")
	}

	res.Scanned = len(locations)
	for i := range locations {
		if failures[i] != nil {
			res.Failures = append(res.Failures, *failures[i])
			continue
		}
		if verdicts[i].Flagged() {
			res.Flagged = append(res.Flagged, verdicts[i])
		}
	}
	res.Duration = time.Since(res.StartedAt)

	log.Info("screen: scan complete",
		zap.Int("scanned", res.Scanned),
		zap.Int("flagged", len(res.Flagged)),
		zap.Int("failed", len(res.Failures)),
		zap.Duration("duration", res.Duration),
	)
	return res, nil
}

// classifyOne isolates a single record so a panic cannot take down the batch.
func (r *Runner) classifyOne(loc model.Location) (v model.Verdict, f *Failure) {
	defer func() {
		if p := recover(); p != nil {
			v = model.Verdict{}
			f = &Failure{ID: loc.ID, Name: loc.Name, Error: fmt.Sprint(p)}
		}
	}()
	return r.Classifier.Verdict(loc), nil
}
