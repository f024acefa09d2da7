// octray answers ray queries against octree scenes described in YAML.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/lukaszgryglicki/octray/internal/octray"
)

const defaultConfig = "scenes/config.yaml"

var cmdRoot = &cobra.Command{
	Use:           "octray",
	Short:         "Ray queries against octree scenes",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		on := debug || os.Getenv("DEBUG") != ""
		level := slog.LevelInfo
		if on {
			level = slog.LevelDebug
		}
		octray.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		octray.SetDebug(on)
	},
}

var debug bool

func init() {
	cmdRoot.PersistentFlags().BoolVar(&debug, "debug", false, "Verbose logging and tree invariant checks (also DEBUG=1).")
}

func configArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return defaultConfig
}

var cmdRun = &cobra.Command{
	Use:   "run [config]",
	Short: "Answer every ray configured in the scene",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return octray.Run(cmd.Context(), configArg(args), cmd.OutOrStdout())
	},
}

var (
	queryOrigin    []float64
	queryDirection []float64
)

var cmdQuery = &cobra.Command{
	Use:   "query [config]",
	Short: "Cast one ray given on the command line",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(queryOrigin) != 3 || len(queryDirection) != 3 {
			return errors.Errorf("--origin and --direction need three components, got %v and %v", queryOrigin, queryDirection)
		}
		dir := octray.Vec3{X: queryDirection[0], Y: queryDirection[1], Z: queryDirection[2]}
		if dir.Norm() == 0 {
			return errors.New("zero --direction")
		}
		scene, err := octray.LoadScene(configArg(args))
		if err != nil {
			return err
		}
		return scene.Query(cmd.OutOrStdout(), octray.NamedRay{
			Name:      "query",
			Origin:    octray.Vec3{X: queryOrigin[0], Y: queryOrigin[1], Z: queryOrigin[2]},
			Direction: dir.Normalize(),
		})
	},
}

func init() {
	cmdQuery.Flags().Float64SliceVar(&queryOrigin, "origin", nil, "Ray origin x,y,z.")
	cmdQuery.Flags().Float64SliceVar(&queryDirection, "direction", nil, "Ray direction x,y,z.")
}

var cmdDump = &cobra.Command{
	Use:   "dump [config]",
	Short: "Print the scene tree",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scene, err := octray.LoadScene(configArg(args))
		if err != nil {
			return err
		}
		return scene.Tree.Dump(cmd.OutOrStdout(), scene.Center, scene.HalfExtent)
	},
}

var (
	benchWorkers     int
	benchResolution  int
	benchStream      bool
	benchMetricsAddr string
)

var cmdBench = &cobra.Command{
	Use:   "bench [config]",
	Short: "Cast a grid of rays concurrently and report throughput",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		scene, err := octray.LoadScene(configArg(args))
		if err != nil {
			return err
		}
		if benchMetricsAddr != "" {
			srv := &http.Server{
				Addr:    benchMetricsAddr,
				Handler: promhttp.HandlerFor(octray.Registry, promhttp.HandlerOpts{}),
			}
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					slog.Error("metrics server failed", "addr", benchMetricsAddr, "error", err)
				}
			}()
			defer srv.Close()
		}

		opts := octray.BenchOptions{Workers: benchWorkers, Resolution: scene.Bench.Resolution, Stream: benchStream}
		if opts.Workers == 0 {
			opts.Workers = scene.Bench.Workers
		}
		if benchResolution > 0 {
			opts.Resolution = benchResolution
		}
		r, err := octray.Bench(ctx, scene, opts)
		if err != nil {
			return err
		}
		rate := float64(r.Rays) / r.Elapsed.Seconds()
		fmt.Fprintf(cmd.OutOrStdout(), "[BENCH] rays=%d hits=%d leaves=%d descents=%d time=%s rate=%.0f rays/s\n",
			r.Rays, r.Hits, r.Leaves, r.Descents, r.Elapsed, rate)

		if benchMetricsAddr != "" {
			slog.Info("serving metrics until interrupted", "addr", benchMetricsAddr)
			<-ctx.Done()
		}
		return nil
	},
}

func init() {
	cmdBench.Flags().IntVar(&benchWorkers, "workers", 0, "Worker goroutines (0: from config, then GOMAXPROCS).")
	cmdBench.Flags().IntVar(&benchResolution, "rays", 0, "Rays per side of the grid (0: from config).")
	cmdBench.Flags().BoolVar(&benchStream, "stream", false, "Drain the full hit stream instead of the nearest hit.")
	cmdBench.Flags().StringVar(&benchMetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090.")
}

func init() {
	cmdRoot.AddCommand(cmdRun, cmdQuery, cmdDump, cmdBench)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := cmdRoot.ExecuteContext(ctx); err != nil {
		fmt.Printf("Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
