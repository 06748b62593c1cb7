package cmd

import (
	"encoding/json"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/analogrelay/go-adder/internal/bench"
	"github.com/spf13/cobra"
)

// benchCmd represents the bench command
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark add through native, cgo or channel calls",
	Long: `Runs concurrent workers that call add for a fixed duration and reports
throughput and mean latency per call.

  native   plain Go call
  cgo      Go -> C call
  channel  request/response over a worker goroutine`,
	Args: cobra.NoArgs,
	RunE: runBench,
}

func runBench(cmd *cobra.Command, args []string) error {
	impl, err := cmd.Flags().GetString("impl")
	if err != nil {
		return fmt.Errorf("failed to get impl: %w", err)
	}

	duration, err := cmd.Flags().GetDuration("duration")
	if err != nil {
		return fmt.Errorf("failed to get duration: %w", err)
	}

	workers, err := cmd.Flags().GetInt("workers")
	if err != nil {
		return fmt.Errorf("failed to get workers: %w", err)
	}

	progress, err := cmd.Flags().GetDuration("progress")
	if err != nil {
		return fmt.Errorf("failed to get progress: %w", err)
	}

	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("failed to get json: %w", err)
	}

	out := cmd.OutOrStdout()
	if !asJSON {
		fmt.Fprintf(out, "Starting add benchmark...\n")
		fmt.Fprintf(out, "Implementation: %s\n", impl)
		fmt.Fprintf(out, "Duration: %v\n", duration)
		fmt.Fprintf(out, "Workers: %d\n", workers)
	}

	results, err := bench.Run(cmd.Context(), bench.Config{
		Impl:             bench.Impl(impl),
		Workers:          workers,
		Duration:         duration,
		ProgressInterval: progress,
		Logger:           logger,
	})
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("failed to encode results: %w", err)
		}
		return nil
	}

	results.Print(out)
	return nil
}

func implNames() string {
	names := make([]string, len(bench.Impls))
	for i, impl := range bench.Impls {
		names[i] = string(impl)
	}
	return strings.Join(names, "|")
}

func init() {
	rootCmd.AddCommand(benchCmd)

	benchCmd.Flags().StringP("impl", "i", string(bench.ImplNative), "Call path to benchmark ("+implNames()+")")
	benchCmd.Flags().DurationP("duration", "t", 5*time.Second, "Duration to run the benchmark")
	benchCmd.Flags().IntP("workers", "w", runtime.NumCPU(), "Number of concurrent workers")
	benchCmd.Flags().Duration("progress", time.Second, "Progress log interval (0 disables)")
	benchCmd.Flags().Bool("json", false, "Print results as JSON instead of text")
}
