package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vela-lang/ecma/pkg/ecma"
)

var (
	evalExpr    string
	showPos     bool
	showType    bool
	onlyErrors  bool
	ecmaVersion int
	sourceType  string
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [file]",
	Short: "Tokenize an ECMAScript file or expression",
	Long: `Tokenize a program and print the resulting tokens.

Examples:
  # Tokenize a script file
  ecmaparse tokenize script.js

  # Tokenize inline source
  ecmaparse tokenize -e "const x = 42;"

  # Show token types and positions
  ecmaparse tokenize --show-type --show-pos script.js

  # Show only illegal tokens
  ecmaparse tokenize --only-errors script.js`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokenize,
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)

	tokenizeCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
	tokenizeCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	tokenizeCmd.Flags().BoolVar(&showType, "show-type", false, "show token type names")
	tokenizeCmd.Flags().BoolVar(&onlyErrors, "only-errors", false, "show only illegal tokens")
	tokenizeCmd.Flags().IntVar(&ecmaVersion, "ecma-version", 2021, "grammar version to tokenize against (3, 5, 6-13)")
	tokenizeCmd.Flags().StringVar(&sourceType, "source-type", "script", `"script" or "module"`)
}

func runTokenize(cmd *cobra.Command, args []string) error {
	input, filename, err := readInput(evalExpr, args)
	if err != nil {
		return err
	}

	logger.Debug("tokenizing", zap.String("file", filename), zap.Int("bytes", len(input)))

	it := ecma.Tokenizer(input,
		ecma.WithEcmaVersion(ecmaVersion),
		ecma.WithSourceType(sourceType),
		ecma.WithLocations(showPos),
	)

	tokenCount := 0
	for {
		tok, more := it.Next()
		if onlyErrors && tok.Type != "illegal" {
			if !more {
				break
			}
			continue
		}
		tokenCount++
		printToken(tok)
		logger.Debug("token", zap.String("type", tok.Type), zap.String("value", tok.Value), zap.Int("start", tok.Start))
		if !more {
			break
		}
	}

	if errs := it.Errors(); len(errs) > 0 {
		if onlyErrors {
			return fmt.Errorf("found %d illegal token(s)", len(errs))
		}
	}

	fmt.Printf("%d token(s)\n", tokenCount)
	return nil
}

func printToken(tok ecma.Token) {
	var output string
	if showType {
		output = fmt.Sprintf("[%-12s]", tok.Type)
	}
	if tok.Type == "eof" {
		output += " EOF"
	} else if tok.Type == "illegal" {
		output += fmt.Sprintf(" ILLEGAL: %q", tok.Value)
	} else {
		output += fmt.Sprintf(" %q", tok.Value)
	}
	if showPos && tok.Loc != nil {
		output += fmt.Sprintf(" @%d:%d", tok.Loc.Start.Line, tok.Loc.Start.Column)
	}
	fmt.Println(output)
}
