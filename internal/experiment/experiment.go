package experiment

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Intelligent-Systems-Phystech/MobileSensorData/internal/dataset"
	"github.com/Intelligent-Systems-Phystech/MobileSensorData/internal/embedding"
	"github.com/Intelligent-Systems-Phystech/MobileSensorData/internal/sensors"
	"github.com/Intelligent-Systems-Phystech/MobileSensorData/internal/storage"
)

var ErrInvalidConfig = errors.New("experiment: invalid config")

// Config describes one phase-track analysis of a single channel.
type Config struct {
	Game        string
	Sensor      string
	Axis        dataset.Axis
	Window      int
	Components  int
	Correlation bool
}

func (c Config) String() string {
	return fmt.Sprintf("%s/%s/%s L=%d n=%d", c.Game, c.Sensor, c.Axis, c.Window, c.Components)
}

func (c Config) Validate() error {
	switch {
	case c.Game == "":
		return fmt.Errorf("%w: empty game", ErrInvalidConfig)
	case !c.Axis.Valid():
		return fmt.Errorf("%w: %w %s", ErrInvalidConfig, dataset.ErrUnknownAxis, c.Axis)
	case c.Window < 1:
		return fmt.Errorf("%w: window %d < 1", ErrInvalidConfig, c.Window)
	case c.Components < 1 || c.Components > c.Window:
		return fmt.Errorf("%w: components %d outside [1, %d]", ErrInvalidConfig, c.Components, c.Window)
	}
	if _, ok := sensors.Lookup(c.Sensor); !ok {
		return fmt.Errorf("%w: %w %q", ErrInvalidConfig, dataset.ErrUnknownSensor, c.Sensor)
	}
	return nil
}

// Outcome is the result of one Config. In a batch Err holds the failure of
// this run alone.
type Outcome struct {
	Config  Config
	Samples int
	Result  *embedding.Result
	RunID   string
	Err     error
}

type Runner struct {
	data *dataset.Store
	runs *storage.Store
	rec  *registry
}

func New(store *dataset.Store) *Runner {
	return &Runner{data: store, rec: newRegistry(store)}
}

// WithRuns makes the runner persist every successful outcome.
func (r *Runner) WithRuns(runs *storage.Store) *Runner {
	r.runs = runs
	return r
}

func (r *Runner) Run(ctx context.Context, cfg Config) (*Outcome, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rec, err := r.rec.recording(cfg.Game, cfg.Sensor)
	if err != nil {
		return nil, err
	}

	res, err := embedding.PhaseTrack(rec.Channel(cfg.Axis), cfg.Window, cfg.Components, cfg.Correlation)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg, err)
	}

	out := &Outcome{Config: cfg, Samples: rec.Len(), Result: res}
	if r.runs != nil {
		out.RunID, err = r.runs.Save(storage.RunMetadata{
			Game:    cfg.Game,
			Sensor:  cfg.Sensor,
			Axis:    cfg.Axis.String(),
			Window:  cfg.Window,
			Samples: rec.Len(),
		}, res)
		if err != nil {
			return nil, fmt.Errorf("%s: save run: %w", cfg, err)
		}
	}
	return out, nil
}

// RunBatch runs cfgs with at most parallelism analyses in flight. Outcomes
// keep the order of cfgs. The returned error is only set when ctx is
// cancelled.
func (r *Runner) RunBatch(ctx context.Context, cfgs []Config, parallelism int) ([]*Outcome, error) {
	outcomes := make([]*Outcome, len(cfgs))

	g, gctx := errgroup.WithContext(ctx)
	if parallelism > 0 {
		g.SetLimit(parallelism)
	}

	for i, cfg := range cfgs {
		g.Go(func() error {
			out, err := r.Run(gctx, cfg)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				out = &Outcome{Config: cfg, Err: err}
			}
			outcomes[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// Matrix lists every sensor and axis combination for a game.
func Matrix(game string, window, components int) []Config {
	codes := sensors.Codes()
	cfgs := make([]Config, 0, len(codes)*len(dataset.Axes))
	for _, code := range codes {
		for _, axis := range dataset.Axes {
			cfgs = append(cfgs, Config{
				Game:       game,
				Sensor:     code,
				Axis:       axis,
				Window:     window,
				Components: components,
			})
		}
	}
	return cfgs
}
