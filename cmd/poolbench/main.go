// poolbench drives concurrent Get/Put churn against a mempool.Pool and
// exposes the pool's Prometheus metrics while doing so.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	mempool "github.com/a-bronx/MemPool"
	"github.com/a-bronx/MemPool/internal/logging"
)

var (
	workers     = flag.Int("workers", 16, "Number of concurrent workers")
	iterations  = flag.Int("iterations", 1000, "Iterations per worker")
	burst       = flag.Int("burst", 1000, "Elements each worker holds before returning them all")
	source      = flag.String("source", "heap", "Chunk storage source: 'heap' or 'arrow'")
	metricsAddr = flag.String("metrics", "0.0.0.0:9090", "Address to serve Prometheus metrics on")
	logLevel    = flag.String("log-level", "info", "Log level: debug, info, warn, error")
	logFormat   = flag.String("log-format", "json", "Log format: json or text")
)

// payload is the pooled element. It is pointer-free on purpose so the run
// can exercise the Arrow-backed source as well as the heap one.
type payload struct {
	ID   uint64
	Seq  uint64
	Body [240]byte
}

func main() {
	// .env is optional; real environment wins either way.
	_ = godotenv.Load()
	flag.Parse()

	logger, err := logging.NewLogger(logging.Config{Format: *logFormat, Level: *logLevel})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	bench := benchConfig{
		Workers:     *workers,
		Iterations:  *iterations,
		Burst:       *burst,
		Source:      *source,
		MetricsAddr: *metricsAddr,
	}
	if err := validateConfig(&bench); err != nil {
		logger.Error("invalid configuration", zap.Error(err))
		os.Exit(1)
	}

	cfg, err := mempool.ConfigFromEnv("MEMPOOL")
	if err != nil {
		logger.Error("failed to read pool configuration", zap.Error(err))
		os.Exit(1)
	}

	go func() {
		logger.Info("starting metrics server", zap.String("address", bench.MetricsAddr))
		http.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(bench.MetricsAddr, nil); err != nil {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	opts := []mempool.Option[payload]{mempool.WithLogger[payload](logger)}
	if bench.Source == "arrow" {
		opts = append(opts, mempool.WithSource(mempool.NewArrowSource[payload](memory.NewGoAllocator())))
	}

	pool, err := mempool.New[payload](cfg, opts...)
	if err != nil {
		logger.Error("failed to create pool", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("starting benchmark",
		zap.Int("workers", bench.Workers),
		zap.Int("iterations", bench.Iterations),
		zap.Int("burst", bench.Burst),
		zap.String("source", bench.Source),
		zap.Int("chunk_size", pool.ChunkSize()),
	)

	var ops atomic.Int64
	start := time.Now()

	var g errgroup.Group
	for w := 0; w < bench.Workers; w++ {
		id := uint64(w)
		g.Go(func() error {
			held := make([]*payload, 0, bench.Burst)
			for i := 0; i < bench.Iterations; i++ {
				for q := 0; q < bench.Burst; q++ {
					elem, err := pool.Get()
					if err != nil {
						return fmt.Errorf("worker %d: %w", id, err)
					}
					elem.ID = id
					elem.Seq = uint64(i*bench.Burst + q)
					held = append(held, elem)
				}
				for _, elem := range held {
					if err := pool.Put(elem); err != nil {
						return fmt.Errorf("worker %d: %w", id, err)
					}
				}
				held = held[:0]
				ops.Add(int64(2 * bench.Burst))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("benchmark failed", zap.Error(err))
		os.Exit(1)
	}
	elapsed := time.Since(start)

	stats := pool.Stats()
	logger.Info("benchmark complete",
		zap.Duration("elapsed", elapsed),
		zap.Int64("ops", ops.Load()),
		zap.Float64("ops_per_sec", float64(ops.Load())/elapsed.Seconds()),
		zap.Int("chunk_count", stats.ChunkCount),
		zap.Int("capacity", stats.Capacity),
		zap.Int("allocated", stats.Allocated),
	)

	if err := pool.Close(); err != nil {
		logger.Error("pool closed with leaked elements", zap.Error(err))
		os.Exit(1)
	}
}
