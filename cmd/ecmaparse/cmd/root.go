package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	traceEnabled bool
	logger       *zap.Logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "ecmaparse",
	Short: "ECMAScript tokenizer and parser",
	Long: `ecmaparse is a command-line front end over the ecma module's tokenizer
and parser: it exposes the same grammar surface (ES3 through ES2021,
script or module source type) as a script/expression, printing tokens
or the resulting ESTree-compatible syntax tree.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if traceEnabled {
			l, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			logger = l
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	defer logger.Sync()
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVar(&traceEnabled, "trace", false, "log parse/tokenize steps and scanned tokens to stderr")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}

func readInput(evalExpr string, args []string) (input, filename string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		filename = args[0]
		content, readErr := os.ReadFile(filename)
		if readErr != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", filename, readErr)
		}
		return string(content), filename, nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e flag for inline code")
}
