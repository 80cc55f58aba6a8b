package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sveltycms/tokens/pkg/token"
)

// renderFlagVals holds the flags for the render command.
var renderFlagVals struct {
	templatePath string
	contextPath  string
	policyPath   string
	asJSON       bool
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a token template with a JSON context",
	Example: `  # Render a template file with a context file
  tokenctl render -t welcome.txt -c context.json

  # Treat the template file as a JSON document and render its string leaves
  tokenctl render -t payload.json -c context.json --json

  # Apply a custom security policy
  tokenctl render -t welcome.txt -c context.json -p policy.yaml`,
	RunE: runRender,
}

func init() {
	f := renderCmd.Flags()
	f.StringVarP(&renderFlagVals.templatePath, "template", "t", "", "Template file path [required]")
	f.StringVarP(&renderFlagVals.contextPath, "context", "c", "", "JSON context file; top-level keys become namespaces")
	f.StringVarP(&renderFlagVals.policyPath, "policy", "p", "", "YAML security policy file (default: builtin policy)")
	f.BoolVar(&renderFlagVals.asJSON, "json", false, "Treat the template as a JSON document")
	_ = renderCmd.MarkFlagRequired("template")
}

func runRender(cmd *cobra.Command, _ []string) error {
	raw, err := os.ReadFile(renderFlagVals.templatePath)
	if err != nil {
		return err
	}
	tc, err := loadContext(renderFlagVals.contextPath)
	if err != nil {
		return err
	}
	logger, err := newLogger()
	if err != nil {
		return err
	}

	cfg := token.Config{Logger: logger}
	if renderFlagVals.policyPath != "" {
		policy, err := token.LoadPolicy(renderFlagVals.policyPath)
		if err != nil {
			return err
		}
		cfg.Policy = policy
	}
	engine := token.NewWithConfig(cfg)

	ctx := cmd.Context()
	var output string
	var issues []token.Issue
	if renderFlagVals.asJSON {
		encoded, jsonIssues, err := engine.RenderJSONBytes(ctx, raw, tc)
		if err != nil {
			return err
		}
		output, issues = string(encoded), jsonIssues
	} else {
		res, err := engine.Render(ctx, string(raw), tc)
		if err != nil {
			return err
		}
		output, issues = res.Output, res.Issues
	}

	fmt.Fprintln(cmd.OutOrStdout(), output)
	for _, issue := range issues {
		fmt.Fprintf(cmd.ErrOrStderr(), "# %s %s: %s\n", issue.Kind, issue.Path, issue.Detail)
	}
	return nil
}

// loadContext builds a render context from a JSON file. Each top-level key
// becomes a static namespace binding; the system namespace is always
// bound.
func loadContext(path string) (*token.Context, error) {
	tc := token.NewContext().Bind("system", token.SystemBinding())
	if path == "" {
		return tc, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse context: %w", err)
	}
	for namespace, value := range data {
		tc.BindValue(namespace, value)
	}
	return tc, nil
}
