package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkalinski/go-avm2/internal/runtime"
)

var opCmd = &cobra.Command{
	Use:   "op <operator> <left> [right]",
	Short: "Apply an AS3 operator to literal values",
	Long: `Applies an operator with full AS3 semantics and prints the result.

Binary operators: add, eq, seq, lt, le, gt, ge
Unary operators:  typeof

Literals: null, undefined, true, false, NaN, numbers, and (quoted) strings.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(c *cobra.Command, args []string) error {
		op := args[0]
		left := parseLiteral(args[1])

		if op == "typeof" {
			fmt.Fprintln(c.OutOrStdout(), runtime.TypeOf(left))
			return nil
		}
		if len(args) < 3 {
			return fmt.Errorf("operator %q needs two operands", op)
		}
		right := parseLiteral(args[2])

		switch op {
		case "add":
			res, err := runtime.Add(left, right)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), renderValue(res))
		case "eq":
			res, err := runtime.WeakEquals(left, right)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), res)
		case "seq":
			fmt.Fprintln(c.OutOrStdout(), runtime.StrictEquals(left, right))
		case "lt":
			res, err := runtime.LessThan(left, right)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), res)
		case "le":
			res, err := runtime.LessEquals(left, right)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), res)
		case "gt":
			res, err := runtime.GreaterThan(left, right)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), res)
		case "ge":
			res, err := runtime.GreaterEquals(left, right)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), res)
		default:
			return fmt.Errorf("unknown operator %q", op)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(opCmd)
}
