// Package bench measures the cost of calling the adder through the different
// call paths: plain Go, Go -> C, and a request/response channel.
package bench

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/analogrelay/go-adder/adder"
	"github.com/analogrelay/go-adder/internal/cgoadd"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Impl string

const (
	ImplNative  Impl = "native"
	ImplCgo     Impl = "cgo"
	ImplChannel Impl = "channel"
)

// Impls lists the supported call paths.
var Impls = []Impl{ImplNative, ImplCgo, ImplChannel}

var (
	ErrNoOps          = errors.New("no operations completed")
	ErrCgoUnavailable = errors.New("cgo implementation requested but binary was built without cgo")
)

// batchSize calls are timed together so the clock read does not dominate a
// nanosecond-scale call.
const batchSize = 1024

type Config struct {
	Impl             Impl
	Workers          int
	Duration         time.Duration
	ProgressInterval time.Duration
	Logger           *zap.Logger
}

func (c *Config) Validate() error {
	switch c.Impl {
	case ImplNative, ImplChannel:
	case ImplCgo:
		if !cgoadd.Enabled {
			return ErrCgoUnavailable
		}
	default:
		return fmt.Errorf("unknown implementation %q", c.Impl)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %v", c.Duration)
	}
	return nil
}

type Results struct {
	Impl         Impl          `json:"impl"`
	Workers      int           `json:"workers"`
	TotalOps     int64         `json:"totalOps"`
	ElapsedTime  time.Duration `json:"elapsedTime"`
	OpsPerSecond float64       `json:"opsPerSecond"`
	LatencyNs    float64       `json:"latencyNs"`
}

type addFunc func(a, b int32) int32

// Run drives cfg.Workers goroutines calling the selected implementation until
// cfg.Duration elapses or ctx is canceled. Every result is checked against the
// expected wrapped sum.
func Run(ctx context.Context, cfg Config) (*Results, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	call, stop := newCaller(cfg.Impl)
	defer stop()

	startTime := time.Now()
	benchCtx, cancel := context.WithTimeout(ctx, cfg.Duration)
	defer cancel()

	log.Debug("benchmark started",
		zap.String("impl", string(cfg.Impl)),
		zap.Int("workers", cfg.Workers),
		zap.Duration("duration", cfg.Duration))

	var totalOps, totalLatency atomic.Int64

	g, gctx := errgroup.WithContext(benchCtx)
	for w := 0; w < cfg.Workers; w++ {
		g.Go(func() error {
			return worker(gctx, call, int32(w), &totalOps, &totalLatency)
		})
	}

	if cfg.ProgressInterval > 0 {
		g.Go(func() error {
			reportProgress(gctx, log, cfg, startTime, &totalOps)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("benchmark failed: %w", err)
	}

	elapsed := time.Since(startTime)
	ops := totalOps.Load()
	if ops == 0 {
		return nil, ErrNoOps
	}

	return &Results{
		Impl:         cfg.Impl,
		Workers:      cfg.Workers,
		TotalOps:     ops,
		ElapsedTime:  elapsed,
		OpsPerSecond: float64(ops) / elapsed.Seconds(),
		LatencyNs:    float64(totalLatency.Load()) / float64(ops),
	}, nil
}

func worker(ctx context.Context, call addFunc, workerID int32, totalOps, totalLatency *atomic.Int64) error {
	var i int32
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		start := time.Now()
		for n := 0; n < batchSize; n++ {
			a, b := i, workerID
			if got, want := call(a, b), adder.Add(a, b); got != want {
				return fmt.Errorf("worker %d: add(%d, %d) = %d, want %d", workerID, a, b, got, want)
			}
			i++
		}
		totalLatency.Add(time.Since(start).Nanoseconds())
		totalOps.Add(batchSize)
	}
}

func reportProgress(ctx context.Context, log *zap.Logger, cfg Config, startTime time.Time, totalOps *atomic.Int64) {
	ticker := time.NewTicker(cfg.ProgressInterval)
	defer ticker.Stop()
	endTime := startTime.Add(cfg.Duration)
	for {
		select {
		case <-ticker.C:
			ops := totalOps.Load()
			elapsed := time.Since(startTime)
			log.Info("progress",
				zap.Int64("ops", ops),
				zap.Float64("opsPerSec", float64(ops)/elapsed.Seconds()),
				zap.Duration("remaining", time.Until(endTime).Round(time.Second)))
		case <-ctx.Done():
			return
		}
	}
}

type request struct {
	a, b int32
	resp chan int32
}

func newCaller(impl Impl) (addFunc, func()) {
	switch impl {
	case ImplCgo:
		return cgoadd.AddC, func() {}
	case ImplChannel:
		reqCh := make(chan request)
		go func() {
			for req := range reqCh {
				req.resp <- adder.Add(req.a, req.b)
			}
		}()
		return channelCaller(reqCh), func() { close(reqCh) }
	default:
		return adder.Add, func() {}
	}
}

func channelCaller(reqCh chan<- request) addFunc {
	pool := make(chan chan int32, 64)
	return func(a, b int32) int32 {
		var resp chan int32
		select {
		case resp = <-pool:
		default:
			resp = make(chan int32, 1)
		}
		reqCh <- request{a: a, b: b, resp: resp}
		sum := <-resp
		select {
		case pool <- resp:
		default:
		}
		return sum
	}
}

// Print writes the summary and a markdown table row for the README.
func (r *Results) Print(w io.Writer) {
	fmt.Fprintf(w, "\n=== Benchmark Results ===\n")
	fmt.Fprintf(w, "Implementation: %s\n", r.Impl)
	fmt.Fprintf(w, "Workers: %d\n", r.Workers)
	fmt.Fprintf(w, "Total ops: %d\n", r.TotalOps)
	fmt.Fprintf(w, "Total elapsed time: %v\n", r.ElapsedTime.Round(time.Millisecond))
	fmt.Fprintf(w, "Ops/sec: %.2f\n", r.OpsPerSecond)
	fmt.Fprintf(w, "Latency (mean): %.2f ns\n", r.LatencyNs)
	fmt.Fprintf(w, "========================\n")

	fmt.Fprintf(w, "\n=== Markdown Table ===\n")
	fmt.Fprintf(w, "| Implementation | Workers | Total Ops | Duration (ms) | Ops/sec | Latency (ns) |\n")
	fmt.Fprintf(w, "|----------------|---------|-----------|---------------|---------|--------------|\n")
	fmt.Fprintf(w, "| %s | %d | %d | %d | %.2f | %.2f |\n",
		r.Impl,
		r.Workers,
		r.TotalOps,
		r.ElapsedTime.Milliseconds(),
		r.OpsPerSecond,
		r.LatencyNs)
	fmt.Fprintf(w, "======================\n")
}
