package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
	"go.uber.org/zap"

	"github.com/vela-lang/ecma/pkg/ecma"
)

var (
	parseExpression bool
	jsonOutput      bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse ECMAScript source and display the syntax tree",
	Long: `Parse ECMAScript source into an ESTree-compatible syntax tree.

If no file is provided, reads from stdin. Use -e to parse a single
expression from the command line. Use --json to pretty-print the tree
as JSON instead of the Go struct dump.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolVarP(&parseExpression, "expression", "e", false, "parse an expression from the command line")
	parseCmd.Flags().BoolVar(&jsonOutput, "json", false, "pretty-print the syntax tree as JSON")
	parseCmd.Flags().IntVar(&ecmaVersion, "ecma-version", 2021, "grammar version to parse against (3, 5, 6-13)")
	parseCmd.Flags().StringVar(&sourceType, "source-type", "script", `"script" or "module"`)
}

func runParse(cmd *cobra.Command, args []string) error {
	var input string
	var err error

	switch {
	case parseExpression:
		if len(args) == 0 {
			return fmt.Errorf("no expression provided")
		}
		input = args[0]
	case len(args) > 0:
		input, _, err = readInput("", args)
		if err != nil {
			return err
		}
	default:
		data, readErr := io.ReadAll(os.Stdin)
		if readErr != nil {
			return fmt.Errorf("error reading stdin: %w", readErr)
		}
		input = string(data)
	}

	logger.Debug("parsing", zap.Int("bytes", len(input)), zap.String("sourceType", sourceType))

	opts := []ecma.Option{
		ecma.WithEcmaVersion(ecmaVersion),
		ecma.WithSourceType(sourceType),
		ecma.WithLocations(jsonOutput),
	}
	var program any
	var errs []*ecma.SyntaxError
	if parseExpression {
		program, errs = ecma.ParseExpressionAt(input, 0, opts...)
	} else {
		program, errs = ecma.Parse(input, opts...)
	}

	if len(errs) > 0 {
		fmt.Fprintln(os.Stderr, "Parse errors:")
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "  %s\n", e.Error())
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	if jsonOutput {
		raw, err := json.Marshal(program)
		if err != nil {
			return fmt.Errorf("failed to marshal AST: %w", err)
		}
		os.Stdout.Write(pretty.Color(pretty.Pretty(raw), nil))
		return nil
	}

	fmt.Printf("%+v\n", program)
	return nil
}
