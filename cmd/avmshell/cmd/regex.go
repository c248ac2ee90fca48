package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkalinski/go-avm2/internal/runtime"
	"github.com/mkalinski/go-avm2/internal/types"
	"github.com/mkalinski/go-avm2/pkg/qname"
)

var regexFlags string

var regexCmd = &cobra.Command{
	Use:   "regex <pattern> <input>",
	Short: "Run an AS3 regular expression against a string",
	Long: `Compiles the pattern with the runtime's RegExp object and execs it
against the input, printing each match with its capture groups. A global
regex advances lastIndex between calls exactly as exec does.`,
	Args: cobra.ExactArgs(2),
	RunE: func(c *cobra.Command, args []string) error {
		flags, err := runtime.ParseRegExpFlags(regexFlags)
		if err != nil {
			return err
		}
		re, err := runtime.NewRegExpObject(args[0], flags)
		if err != nil {
			return err
		}
		input := args[1]
		out := c.OutOrStdout()

		prevLast := int32(-1)
		for {
			res, err := runtime.RegExpExec(re, input)
			if err != nil {
				return err
			}
			if res.IsNull() {
				fmt.Fprintln(out, "no match")
				return nil
			}
			arr := res.Object()
			idx, _, err := arr.GetPropertyQ(qname.PublicName("index"), types.BindGetDefault)
			if err != nil {
				return err
			}
			idxStr, _ := runtime.ConvertString(idx)
			whole, _ := runtime.ConvertString(arr.ValueAt(1))
			fmt.Fprintf(out, "match at %s: %q\n", idxStr, whole)
			for i := int32(1); i < runtime.ArrayLength(arr); i++ {
				g, _ := runtime.ConvertString(runtime.ArrayElements(arr)[i])
				fmt.Fprintf(out, "  group %d: %q\n", i, g)
			}
			if flags&runtime.FlagGlobal == 0 {
				return nil
			}
			// An empty match would pin lastIndex; nudge it forward.
			if last := runtime.RegExpLastIndex(re); last == prevLast {
				runtime.RegExpSetLastIndex(re, last+1)
			} else {
				prevLast = last
			}
		}
	},
}

func init() {
	regexCmd.Flags().StringVarP(&regexFlags, "flags", "f", "", "regex flags (gimsx)")
	rootCmd.AddCommand(regexCmd)
}
