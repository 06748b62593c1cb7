package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/analogrelay/go-adder/internal/bench"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// resetFlags restores every flag on c and its children to its default.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs the root command with args and records log entries at the
// level the --verbose flag selects.
func execute(t *testing.T, args ...string) (string, *observer.ObservedLogs, error) {
	t.Helper()
	var logs *observer.ObservedLogs
	origNewLogger := newLogger
	newLogger = func(verbose bool) (*zap.Logger, error) {
		level := zapcore.InfoLevel
		if verbose {
			level = zapcore.DebugLevel
		}
		var core zapcore.Core
		core, logs = observer.New(level)
		return zap.New(core), nil
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		newLogger = origNewLogger
		logger = zap.NewNop()
		resetFlags(rootCmd)
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), logs, err
}

func TestAddCmd(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"add", "2", "2"}, "4"},
		{[]string{"add", "--", "-5", "5"}, "0"},
		{[]string{"add", "2147483647", "1"}, "-2147483648"},
		{[]string{"add", "--strict", "2147483646", "1"}, "2147483647"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, _, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, strings.TrimSpace(out))
		})
	}
}

func TestAddCmdStrictOverflow(t *testing.T) {
	_, _, err := execute(t, "add", "--strict", "2147483647", "1")
	assert.ErrorIs(t, err, errOverflow)
}

func TestFlagsResetBetweenRuns(t *testing.T) {
	t.Run("strict", func(t *testing.T) {
		_, _, err := execute(t, "--verbose", "add", "--strict", "2147483647", "1")
		require.ErrorIs(t, err, errOverflow)
	})
	t.Run("defaults", func(t *testing.T) {
		out, logs, err := execute(t, "add", "2147483647", "1")
		require.NoError(t, err)
		assert.Equal(t, "-2147483648", strings.TrimSpace(out))
		assert.Zero(t, logs.FilterMessage("sum wrapped").Len())
	})
}

func TestAddCmdVerboseLogsWrap(t *testing.T) {
	out, logs, err := execute(t, "--verbose", "add", "2147483647", "1")
	require.NoError(t, err)
	assert.Equal(t, "-2147483648", strings.TrimSpace(out))

	wrapped := logs.FilterMessage("sum wrapped").All()
	require.Len(t, wrapped, 1)
	assert.Equal(t, zapcore.DebugLevel, wrapped[0].Level)
	fields := wrapped[0].ContextMap()
	assert.EqualValues(t, 2147483647, fields["a"])
	assert.EqualValues(t, 1, fields["b"])
}

func TestAddCmdInvalidOperand(t *testing.T) {
	_, _, err := execute(t, "add", "2", "2147483648")
	assert.ErrorContains(t, err, `invalid int32 operand "2147483648"`)

	_, _, err = execute(t, "add", "two", "2")
	assert.ErrorContains(t, err, `invalid int32 operand "two"`)
}

func TestAddCmdArgCount(t *testing.T) {
	_, _, err := execute(t, "add", "1")
	assert.Error(t, err)
}

func TestBenchCmd(t *testing.T) {
	out, _, err := execute(t, "bench", "--impl", "channel", "--duration", "50ms", "--workers", "2", "--progress", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Implementation: channel")
	assert.Contains(t, out, "=== Benchmark Results ===")
	assert.Contains(t, out, "| channel | 2 |")
}

func TestBenchCmdJSON(t *testing.T) {
	out, _, err := execute(t, "bench", "--json", "--impl", "native", "--duration", "50ms", "--workers", "1", "--progress", "0")
	require.NoError(t, err)

	var res bench.Results
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, bench.ImplNative, res.Impl)
	assert.Equal(t, 1, res.Workers)
	assert.Positive(t, res.TotalOps)
	assert.Positive(t, res.OpsPerSecond)
}

func TestBenchCmdUnknownImpl(t *testing.T) {
	_, _, err := execute(t, "bench", "--impl", "rust", "--duration", "50ms", "--workers", "1", "--progress", "0")
	assert.ErrorContains(t, err, `unknown implementation "rust"`)
}
