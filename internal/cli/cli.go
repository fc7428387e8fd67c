// ============================================================================
// Async-Runtime CLI - Command Line Interface
// ============================================================================
//
// Package: internal/cli
// File: cli.go
// Purpose: Cobra-based entrypoint wiring the factorial and matrix
//          sample clients onto the worker pool / future runtime.
//
// Command Structure:
//   asyncrun                   # Root command
//   ├── factorial               # Compute n! by chaining futures
//   │   └── --n                # Read n from a flag instead of stdin
//   ├── matrix                  # Fill a k*n matrix, print row sums
//   └── --config, -c            # Config file (default configs/default.yaml)
//   └── --workers, -w           # Override pool.worker_count from config
//
// Both subcommands build one pool sized by config/flags, run the
// client logic against it, and Destroy it before returning — the
// process-wide supervisor (internal/supervisor) still gets to drain it
// if a terminal signal lands mid-computation (spec.md §8 scenario 6).
//
// ============================================================================

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ChuLiYu/go-async-runtime/internal/client"
	"github.com/ChuLiYu/go-async-runtime/internal/metrics"
	"github.com/ChuLiYu/go-async-runtime/internal/pool"
)

var (
	configFile  string
	workerCount int
)

// BuildCLI assembles the root command and its subcommands.
func BuildCLI() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "asyncrun",
		Short:   "A worker-pool and future runtime with two sample clients",
		Version: "1.0.0",
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "configs/default.yaml", "config file path")
	rootCmd.PersistentFlags().IntVarP(&workerCount, "workers", "w", 0, "override pool worker count from config")

	rootCmd.AddCommand(buildFactorialCommand())
	rootCmd.AddCommand(buildMatrixCommand())

	return rootCmd
}

// newPool loads config, starts the metrics server if enabled, and
// constructs a pool sized by --workers (falling back to the config
// file's pool.worker_count).
func newPool() (*pool.Pool, error) {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return nil, err
	}

	n := cfg.Pool.WorkerCount
	if workerCount > 0 {
		n = workerCount
	}

	var opts []pool.Option
	if cfg.Metrics.Enabled {
		collector := metrics.NewCollector()
		opts = append(opts, pool.WithMetrics(collector))
		go func() {
			if err := metrics.StartServer(cfg.Metrics.Port); err != nil {
				fmt.Fprintf(os.Stderr, "metrics server error: %v\n", err)
			}
		}()
	}

	return pool.New(n, opts...)
}

func buildFactorialCommand() *cobra.Command {
	var n uint64

	cmd := &cobra.Command{
		Use:   "factorial",
		Short: "Compute n! by chaining successive multiplications through futures",
		Long:  "Reads n from --n, or from stdin if --n is not given, and prints n!.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if n == 0 {
				if _, err := fmt.Fscan(os.Stdin, &n); err != nil {
					return fmt.Errorf("failed to read n: %w", err)
				}
			}

			p, err := newPool()
			if err != nil {
				return fmt.Errorf("failed to start pool: %w", err)
			}
			defer p.Destroy()

			result, err := client.Factorial(p, n)
			if err != nil {
				return fmt.Errorf("factorial chain failed: %w", err)
			}

			fmt.Println(result)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&n, "n", 0, "compute n! (reads from stdin if omitted)")
	return cmd
}

func buildMatrixCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Fill a k*n matrix of independent delayed computations in parallel and sum each row",
		Long:  "Reads k, n, then k*n pairs (value, delay_ms) from stdin and prints each row sum on its own line.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cells, err := readMatrixCells(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read matrix: %w", err)
			}

			p, err := newPool()
			if err != nil {
				return fmt.Errorf("failed to start pool: %w", err)
			}
			defer p.Destroy()

			sums, err := client.MatrixRowSums(p, cells)
			if err != nil {
				return fmt.Errorf("matrix computation failed: %w", err)
			}

			for _, s := range sums {
				fmt.Println(s)
			}
			return nil
		},
	}

	return cmd
}
