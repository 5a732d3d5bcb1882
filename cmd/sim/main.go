package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hillsim.ai/internal/sim/metrics"
	"hillsim.ai/internal/sim/tuning"
	"hillsim.ai/internal/sim/world"
	"hillsim.ai/internal/sim/world/logic/rng"
	"hillsim.ai/internal/sim/world/terrain/gen"
)

func main() {
	var (
		nx          = flag.Int("nx", 32, "world size along x")
		ny          = flag.Int("ny", 32, "world size along y")
		nz          = flag.Int("nz", 12, "world size along z (vertical)")
		seed        = flag.Int64("seed", 1337, "terrain and simulation seed")
		units       = flag.Int("units", 8, "units to spawn with default behaviour")
		ticks       = flag.Int("ticks", 0, "advance this many ticks as fast as possible (0: run in real time until interrupted)")
		dt          = flag.Float64("dt", 0.1, "simulated seconds per tick")
		tickEvery   = flag.Duration("tick", 100*time.Millisecond, "wall time between ticks in real-time mode")
		tuningPath  = flag.String("tuning", "", "path to tuning.yaml (default: built-in tuning)")
		metricsAddr = flag.String("metrics", "", "serve prometheus /metrics on this address (empty to disable)")
		verbose     = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})).With("component", "sim")

	tune := tuning.Defaults()
	if *tuningPath != "" {
		t, err := tuning.Load(*tuningPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "load tuning:", err)
			os.Exit(1)
		}
		tune = t
	}

	codes, err := gen.Generate(gen.DefaultParams(*nx, *ny, *nz, *seed))
	if err != nil {
		fmt.Fprintln(os.Stderr, "generate terrain:", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	obs, err := metrics.NewPrometheus(reg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "metrics:", err)
		os.Exit(1)
	}

	var changed int
	w, err := world.New(codes, func(x, y, z int) { changed++ },
		world.WithConfig(tune.WorldConfig()),
		world.WithRand(rng.New(*seed)),
		world.WithLogger(logger),
		world.WithObserver(obs),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "world:", err)
		os.Exit(1)
	}
	for i := 0; i < *units; i++ {
		if _, err := w.SpawnUnit(true); err != nil {
			logger.Warn("spawn stopped", "spawned", i, "err", err)
			break
		}
	}

	ctx, cancel := signalContext()
	defer cancel()

	if *metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv := &http.Server{
			Addr:              *metricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			<-ctx.Done()
			ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel2()
			_ = srv.Shutdown(ctx2)
		}()
		go func() {
			logger.Info("metrics listening", "addr", *metricsAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server", "err", err)
			}
		}()
	}

	start := time.Now()
	if *ticks > 0 {
		for i := 0; i < *ticks && ctx.Err() == nil; i++ {
			if err := w.AdvanceTime(*dt); err != nil {
				logger.Warn("tick", "tick", w.Ticks(), "err", err)
			}
		}
	} else if err := w.Run(ctx, *tickEvery, *dt); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "run:", err)
		os.Exit(1)
	}

	alive := len(w.Units())
	fmt.Printf("ticks=%s simulated=%ss wall=%s units=%d factions=%d logs=%d boulders=%d terrain_changes=%s\n",
		humanize.Comma(int64(w.Ticks())), humanize.Ftoa(w.Elapsed()), time.Since(start).Round(time.Millisecond),
		alive, len(w.ActiveFactions()), len(w.Logs()), len(w.Boulders()), humanize.Comma(int64(changed)))
	fmt.Printf("digest=%s\n", w.Digest())
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
	}()
	return ctx, cancel
}
