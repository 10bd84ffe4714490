package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/session"
	"github.com/pthm-cable/drift/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Uint("seed", 0, "World seed (0 = use config)")
	maxTicks := flag.Int64("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	loadSnapshot := flag.String("load-snapshot", "", "Resume from a snapshot file")
	saveSnapshot := flag.String("save-snapshot", "", "Write a snapshot file on exit")

	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *seed != 0 {
		cfg.World.Seed = uint32(*seed)
	}

	s, err := session.New(cfg)
	if err != nil {
		slog.Error("failed to create session", "error", err)
		os.Exit(1)
	}

	if *loadSnapshot != "" {
		snap, err := session.LoadSnapshot(*loadSnapshot)
		if err != nil {
			slog.Error("failed to load snapshot", "path", *loadSnapshot, "error", err)
			os.Exit(1)
		}
		issues, err := s.Restore(snap)
		if err != nil {
			slog.Error("failed to restore snapshot", "path", *loadSnapshot, "error", err)
			os.Exit(1)
		}
		for _, issue := range issues {
			slog.Warn("snapshot degraded", "issue", issue)
		}
	}

	statsWindowSec := cfg.Telemetry.StatsWindow
	if *statsWindow > 0 {
		statsWindowSec = *statsWindow
	}

	om, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
		os.Exit(1)
	}
	defer om.Close()
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	collector := telemetry.NewCollector(statsWindowSec, cfg.Physics.DT)
	perf := telemetry.NewPerfCollector(int(collector.WindowDurationTicks()))

	slog.Info("starting simulation",
		"seed", s.Seed(),
		"cols", cfg.World.Cols,
		"rows", cfg.World.Rows,
		"max_ticks", *maxTicks,
		"stats_window", statsWindowSec,
	)

	pilot := newPatrol(s)
	pilot.start()

	for {
		perf.StartTick()
		perf.StartPhase(telemetry.PhaseAdvance)

		sig := s.Advance(cfg.Physics.DT)
		pilot.observe(sig, collector)

		perf.StartPhase(telemetry.PhaseTelemetry)
		v := s.Vehicle()
		collector.Sample(v.Speed, v.Heat, s.Divergence(), sig.Boosting)
		if sig.Arrived {
			collector.RecordArrival()
		}
		if sig.BoostEnded {
			collector.RecordBoostStop()
		}

		if collector.ShouldFlush(s.Tick()) {
			vx := int(v.X + 0.5)
			vy := int(v.Y + 0.5)
			stats := collector.Flush(s.Tick(), telemetry.EndState{
				Hull:      v.Hull,
				Shield:    v.Shield,
				Fuel:      v.Fuel,
				Resonance: s.ResonanceAt(vx, vy),
			})
			if *logStats {
				stats.LogStats()
			}

			perf.StartPhase(telemetry.PhaseOutput)
			if err := om.WriteStats(stats); err != nil {
				slog.Error("failed to write stats", "error", err)
			}
			if err := om.WritePerf(perf.Stats(), s.Tick()); err != nil {
				slog.Error("failed to write perf", "error", err)
			}
		}

		perf.EndTick()

		if *maxTicks > 0 && s.Tick() >= *maxTicks {
			slog.Info("max ticks reached", "tick", s.Tick())
			break
		}
	}

	if *saveSnapshot != "" {
		if err := session.SaveSnapshot(s.Export(), *saveSnapshot); err != nil {
			slog.Error("failed to save snapshot", "path", *saveSnapshot, "error", err)
			os.Exit(1)
		}
		slog.Info("snapshot saved", "path", *saveSnapshot, "tick", s.Tick())
	}
}
