package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/analogrelay/go-adder/adder"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errOverflow = errors.New("sum overflows int32")

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add A B",
	Short: "Add two int32 values",
	Long: `Prints A + B using the same addition libadder exports.
Overflow wraps unless --strict is given, in which case it is an error.`,
	Example: `  adder add 2 2
  adder add -- -5 5
  adder add --strict 2147483647 1`,
	Args: cobra.ExactArgs(2),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	a, err := parseOperand(args[0])
	if err != nil {
		return err
	}
	b, err := parseOperand(args[1])
	if err != nil {
		return err
	}

	strict, err := cmd.Flags().GetBool("strict")
	if err != nil {
		return fmt.Errorf("failed to get strict: %w", err)
	}

	overflow := adder.Overflows(a, b)
	if overflow {
		if strict {
			return fmt.Errorf("%d + %d: %w", a, b, errOverflow)
		}
		logger.Debug("sum wrapped", zap.Int32("a", a), zap.Int32("b", b))
	}

	fmt.Fprintln(cmd.OutOrStdout(), adder.Add(a, b))
	return nil
}

func parseOperand(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid int32 operand %q: %w", s, err)
	}
	return int32(v), nil
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().Bool("strict", false, "Fail instead of wrapping on overflow")
}
