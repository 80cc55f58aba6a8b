package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sveltycms/tokens/pkg/token"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check token syntax in template files",
	Long: `Check template files for token syntax errors: empty tokens, nested
tokens and unbalanced delimiters. Exits non-zero if any file fails.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	failed := 0
	for _, path := range args {
		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		result := token.ValidateTokenSyntax(string(raw))
		if result.Valid {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
			continue
		}
		failed++
		for _, msg := range result.Errors {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", path, msg)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d file(s) failed validation", failed)
	}
	return nil
}

var pathsCmd = &cobra.Command{
	Use:   "paths <file>",
	Short: "List token paths used in a template file",
	Long: `List the dotted path of every well-formed token in a template file,
ignoring modifiers. This is the same feed the editor autocompletion uses.`,
	Args: cobra.ExactArgs(1),
	RunE: runPaths,
}

func runPaths(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	for _, p := range token.ExtractTokenPaths(string(raw)) {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}
