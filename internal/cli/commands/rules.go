package commands

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/fieldstack-labs/jsonvet/internal/cli/output"
	"github.com/fieldstack-labs/jsonvet/pkg/rules"
	_ "github.com/fieldstack-labs/jsonvet/pkg/rules/checks" // register rule families
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Group   string // Filter by group
	Verbose bool   // Show full documentation
	Format  string // Output format
}

var ruleTitleStyle = lipgloss.NewStyle().Bold(true)

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List available rule families",
		Long: `List the rule families jsonvet evaluates, in evaluation order.

Use --verbose or pass a rule ID to see rationale and examples.`,
		Example: `  # List all rule families
  jsonvet rules

  # Show details for one family
  jsonvet rules ME01

  # List the choice families
  jsonvet rules --group choice

  # Output as JSON
  jsonvet rules --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0], opts)
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Filter by group")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "V", false, "Show full documentation")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")

	return cmd
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	r := newRulesRenderer(cmd, opts)

	var defs []rules.RuleDef
	if opts.Group != "" {
		defs = rules.GetByGroup(opts.Group)
	} else {
		defs = rules.Ordered()
	}

	if r.JSONMode() {
		infos := make([]rules.RuleInfo, len(defs))
		for i, def := range defs {
			infos[i] = def.Info()
		}
		return r.JSON(infos)
	}

	rows := make([][]string, len(defs))
	for i, def := range defs {
		rows[i] = []string{def.ID, def.Name, def.Group, def.Severity.String(), def.Description}
	}
	r.Table([]string{"ID", "NAME", "GROUP", "SEVERITY", "DESCRIPTION"}, rows)

	if opts.Verbose {
		for _, def := range defs {
			printRuleDetail(cmd, def)
		}
	}
	return nil
}

func showRule(cmd *cobra.Command, id string, opts *RulesOptions) error {
	r := newRulesRenderer(cmd, opts)

	def, ok := rules.GetByID(id)
	if !ok {
		return fmt.Errorf("unknown rule: %s", id)
	}

	if r.JSONMode() {
		return r.JSON(def.Info())
	}
	printRuleDetail(cmd, def)
	return nil
}

func newRulesRenderer(cmd *cobra.Command, opts *RulesOptions) *output.Renderer {
	mode := output.Mode(opts.Format)
	if opts.Format == "" {
		mode = output.Mode(getConfig().OutputFormat)
	}
	return output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)
}

func printRuleDetail(cmd *cobra.Command, def rules.RuleDef) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n%s\n", ruleTitleStyle.Render(fmt.Sprintf("%s: %s", def.ID, def.Name)))
	fmt.Fprintf(out, "  Group:    %s\n", def.Group)
	fmt.Fprintf(out, "  Severity: %s\n", def.Severity)
	fmt.Fprintf(out, "  %s\n", def.Description)
	if def.Rationale != "" {
		fmt.Fprintf(out, "  Rationale: %s\n", def.Rationale)
	}
	if def.BadExample != "" {
		fmt.Fprintf(out, "  Fails:  %s\n", def.BadExample)
	}
	if def.GoodExample != "" {
		fmt.Fprintf(out, "  Passes: %s\n", def.GoodExample)
	}
}
