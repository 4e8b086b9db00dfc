package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/fieldstack-labs/jsonvet/internal/cli/config"
	"github.com/fieldstack-labs/jsonvet/internal/cli/output"
	"github.com/fieldstack-labs/jsonvet/internal/loader"
	"github.com/fieldstack-labs/jsonvet/pkg/rules"
	_ "github.com/fieldstack-labs/jsonvet/pkg/rules/checks" // register rule families
)

// errValidationFailed signals a definite "document rejected" outcome.
// It maps to exit code 1 without a stack of wrapped causes: every reason
// has already been rendered by the time it is returned.
var errValidationFailed = errors.New("validation failed")

// ValidateOptions holds options for the validate command.
type ValidateOptions struct {
	Schema  string   // Schema file path (overrides config)
	Format  string   // Output format: text, markdown, json
	Disable []string // Rule IDs to disable
	Rules   []string // Run only specific rules
	Quiet   bool     // Suppress per-document output, keep the exit code
}

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	opts := &ValidateOptions{}
	cmd := &cobra.Command{
		Use:   "validate [document...]",
		Short: "Validate documents against a schema",
		Long: `Check one or more JSON or YAML documents against a schema of
declarative structural rules.

Rule families run in a fixed order (required fields, at-least-one-of,
either-or, exactly-one, field values) and evaluation stops at the first
failing family. Unreadable or malformed input counts as a validation
failure; the command never aborts with an unhandled error for bad input.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable report`,
		Example: `  # Validate a document
  jsonvet validate payload.json --schema schema.json

  # Validate several documents against one schema
  jsonvet validate a.json b.json c.json -s schema.json

  # Machine-readable report
  jsonvet validate payload.json -s schema.json --format json

  # Skip the field-values family
  jsonvet validate payload.json -s schema.json --disable FV01

  # Exit code only
  jsonvet validate payload.json -s schema.json --quiet`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.Schema, "schema", "s", "", "Path to the schema file")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to disable")
	cmd.Flags().StringSliceVar(&opts.Rules, "rule", nil, "Run only specific rules")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Suppress output, use exit code only")

	return cmd
}

func runValidate(cmd *cobra.Command, opts *ValidateOptions, args []string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	// Override renderer if format flag is set
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	schemaPath := opts.Schema
	if schemaPath == "" {
		schemaPath = cmdCtx.Cfg.SchemaPath
	}
	if schemaPath == "" {
		return fmt.Errorf("no schema file: pass --schema or set it in %s", config.ConfigFileName)
	}

	ld := loader.New(cmdCtx.Logger)
	schema, err := ld.LoadSchema(schemaPath)
	if err != nil {
		// Boundary failures downgrade to a validation failure: report and
		// reject instead of crashing the caller.
		reportBoundaryError(r, opts.Quiet, err)
		return errValidationFailed
	}

	ruleCfg := buildRuleConfig(cmdCtx.Cfg, opts)
	validator := rules.NewValidator(rules.WithConfig(ruleCfg), rules.WithLogger(cmdCtx.Logger))

	results := validateAll(cmd.Context(), ld, validator, args, schema)

	failed := false
	jsonResults := make([]documentResult, 0, len(args))
	for _, res := range results {
		if res.err != nil {
			failed = true
			reportBoundaryError(r, opts.Quiet, res.err)
			jsonResults = append(jsonResults, res.toJSON())
			continue
		}
		if !res.report.Valid {
			failed = true
		}
		if !opts.Quiet {
			r.Report(res.path, res.report)
		}
		jsonResults = append(jsonResults, res.toJSON())
	}

	if r.JSONMode() && !opts.Quiet {
		if err := r.JSON(jsonResults); err != nil {
			return err
		}
	}

	if failed {
		return errValidationFailed
	}
	return nil
}

// result pairs one document path with its validation outcome.
type result struct {
	path   string
	report *rules.Report
	err    error
}

// documentResult is the JSON-mode shape of one document's outcome.
type documentResult struct {
	Path   string        `json:"path"`
	Valid  bool          `json:"valid"`
	Error  string        `json:"error,omitempty"`
	Report *rules.Report `json:"report,omitempty"`
}

func (r result) toJSON() documentResult {
	dr := documentResult{Path: r.path, Report: r.report}
	if r.err != nil {
		dr.Error = r.err.Error()
		return dr
	}
	dr.Valid = r.report.Valid
	return dr
}

// validateAll runs each document through the validator. Validation calls
// are independent and side-effect-free, so documents are processed
// concurrently; results keep argument order.
func validateAll(ctx context.Context, ld *loader.Loader, v *rules.Validator, paths []string, schema *rules.Schema) []result {
	results := make([]result, len(paths))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			doc, err := ld.LoadDocument(path)
			var res result
			if err != nil {
				res = result{path: path, err: err}
			} else {
				res = result{path: path, report: v.Evaluate(doc, schema)}
			}

			mu.Lock()
			results[i] = res
			mu.Unlock()
			return nil
		})
	}
	// Workers never return errors; rejects are carried in results.
	_ = g.Wait()
	return results
}

func reportBoundaryError(r *output.Renderer, quiet bool, err error) {
	if quiet {
		return
	}
	var le *loader.Error
	if errors.As(err, &le) {
		r.Failuref("%s: %s input: %v", le.Path, le.Kind, le.Err)
		return
	}
	r.Failuref("%v", err)
}

// buildRuleConfig merges project config and CLI flags into a rule
// configuration. CLI flags win.
func buildRuleConfig(cfg *config.Config, opts *ValidateOptions) *rules.Config {
	ruleCfg := rules.NewConfig()

	// Apply project config first (lower precedence)
	if cfg != nil && cfg.Rules != nil {
		for _, id := range cfg.Rules.Disabled {
			ruleCfg.Disable(strings.TrimSpace(id))
		}
		for id, sev := range cfg.Rules.Severity {
			if s, ok := rules.ParseSeverity(sev); ok {
				ruleCfg.SetSeverity(id, s)
			}
		}
	}

	// Apply CLI overrides (higher precedence)
	for _, id := range opts.Disable {
		ruleCfg.Disable(strings.TrimSpace(id))
	}

	// --rule acts as an allowlist: everything not named is disabled
	if len(opts.Rules) > 0 {
		allowed := make(map[string]bool, len(opts.Rules))
		for _, id := range opts.Rules {
			allowed[strings.TrimSpace(id)] = true
		}
		for _, rule := range rules.Ordered() {
			if !allowed[rule.ID] {
				ruleCfg.Disable(rule.ID)
			}
		}
	}

	return ruleCfg
}
