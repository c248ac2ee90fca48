package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "avmshell",
	Short: "AVM2 object-model shell",
	Long: `avmshell pokes at the go-avm2 runtime core from a terminal.

It evaluates AS3 operator semantics, value coercions, and regular
expressions against the same object model the interpreter and JIT use:
dynamic properties, prototype chains, primitive boxes, and the full
weak/strict equality and addition tables.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))
}
