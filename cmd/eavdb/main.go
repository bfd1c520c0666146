package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/epochdb/epoch/pkg/conn"
	"github.com/epochdb/epoch/pkg/log"
	"github.com/epochdb/epoch/pkg/metrics"
	"github.com/spf13/cobra"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "eavdb",
	Short: "eavdb - an in-memory, immutable, time-traveling EAV database",
	Long: `eavdb is a demo driver over an in-memory entity-attribute-value
database: every write produces a new immutable snapshot, and a datalog-style
query language joins across the three permutation indices kept over every
fact.

This binary is a thin CLI over the pkg/conn, pkg/query and pkg/graph
packages; it holds no state of its own beyond a single process's named
connection registry.`,
	Version: Version,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"eavdb version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))

	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().String("metrics-addr", "", "If set, serve /metrics, /health, /ready, /live on this address for the duration of the command")

	cobra.OnInitialize(initLogging, initMetrics)

	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(evolveCmd)
	rootCmd.AddCommand(traverseCmd)
}

func initLogging() {
	logLevel, _ := rootCmd.PersistentFlags().GetString("log-level")
	logJSON, _ := rootCmd.PersistentFlags().GetBool("log-json")

	log.Init(log.Config{
		Level:      log.Level(logLevel),
		JSONOutput: logJSON,
	})
}

// initMetrics starts a background Prometheus/health HTTP server for the
// life of this one command invocation, if --metrics-addr was given. A
// single-shot CLI process has nothing long-lived to report by default,
// but this is useful when eavdb is driven by something that scrapes it
// mid-run (a load test, a long apply against a large dataset).
func initMetrics() {
	addr, _ := rootCmd.PersistentFlags().GetString("metrics-addr")
	if addr == "" {
		return
	}

	metrics.SetVersion(Version)
	metrics.RegisterComponent("storage", true, "ready")
	metrics.RegisterComponent("query", true, "ready")
	metrics.RegisterComponent("index", true, "ready")

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	mux.Handle("/health", metrics.HealthHandler())
	mux.Handle("/ready", metrics.ReadyHandler())
	mux.Handle("/live", metrics.LivenessHandler())

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Logger.Error().Err(err).Msg("metrics server exited")
		}
	}()
	log.Logger.Info().Str("addr", addr).Msg("metrics server listening")

	conn.NewCollector().Start(5 * time.Second)
}
