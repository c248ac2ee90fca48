package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkalinski/go-avm2/internal/runtime"
)

var coerceCmd = &cobra.Command{
	Use:   "coerce <type> <value>",
	Short: "Apply an AS3 coercion to a literal value",
	Long: `Coerces a literal through the runtime's conversion rules.

Types: number, int, uint, string, boolean`,
	Args: cobra.ExactArgs(2),
	RunE: func(c *cobra.Command, args []string) error {
		v := parseLiteral(args[1])
		out := c.OutOrStdout()
		switch args[0] {
		case "number":
			f, err := runtime.ToNumber(v)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, runtime.FormatNumber(f))
		case "int":
			i, err := runtime.ToInt32(v)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, i)
		case "uint":
			u, err := runtime.ToUint32(v)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, u)
		case "string":
			s, err := runtime.ConvertString(v)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, s)
		case "boolean":
			fmt.Fprintln(out, runtime.ToBoolean(v))
		default:
			return fmt.Errorf("unknown coercion target %q", args[0])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(coerceCmd)
}
