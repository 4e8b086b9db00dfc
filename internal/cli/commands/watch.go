package commands

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/fieldstack-labs/jsonvet/internal/cli/output"
	"github.com/fieldstack-labs/jsonvet/internal/loader"
	"github.com/fieldstack-labs/jsonvet/pkg/rules"
	_ "github.com/fieldstack-labs/jsonvet/pkg/rules/checks" // register rule families
)

// WatchOptions holds options for the watch command.
type WatchOptions struct {
	Schema string
	Format string
}

// debounceWindow coalesces editor save bursts into one re-validation.
const debounceWindow = 200 * time.Millisecond

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	opts := &WatchOptions{}
	cmd := &cobra.Command{
		Use:   "watch <document>",
		Short: "Re-validate a document whenever it or the schema changes",
		Long: `Watch a document and its schema and re-run validation on every change.

Useful while iterating on a schema: keep the command running in a
terminal and edit either file. The watcher follows the containing
directories, so atomic save strategies (write to temp file, rename) are
picked up as well.`,
		Example: `  # Watch a document
  jsonvet watch payload.json --schema schema.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.Schema, "schema", "s", "", "Path to the schema file")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")

	return cmd
}

func runWatch(cmd *cobra.Command, opts *WatchOptions, docPath string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	schemaPath := opts.Schema
	if schemaPath == "" {
		schemaPath = cmdCtx.Cfg.SchemaPath
	}
	if schemaPath == "" {
		return fmt.Errorf("no schema file: pass --schema or set it in the config")
	}

	ld := loader.New(cmdCtx.Logger)
	ruleCfg := buildRuleConfig(cmdCtx.Cfg, &ValidateOptions{})
	validator := rules.NewValidator(rules.WithConfig(ruleCfg), rules.WithLogger(cmdCtx.Logger))

	revalidate := func() {
		schema, err := ld.LoadSchema(schemaPath)
		if err != nil {
			reportBoundaryError(r, false, err)
			return
		}
		doc, err := ld.LoadDocument(docPath)
		if err != nil {
			reportBoundaryError(r, false, err)
			return
		}
		rep := validator.Evaluate(doc, schema)
		if r.JSONMode() {
			_ = r.JSON(result{path: docPath, report: rep}.toJSON())
			return
		}
		r.Report(docPath, rep)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the parent directories: editors replace files on save, and a
	// watch on the path itself dies with the old inode.
	watched := map[string]bool{
		filepath.Clean(docPath):    true,
		filepath.Clean(schemaPath): true,
	}
	for _, dir := range []string{filepath.Dir(docPath), filepath.Dir(schemaPath)} {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r.Infof("Watching %s and %s (Ctrl+C to stop)", docPath, schemaPath)
	revalidate()

	var timer *time.Timer
	pending := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watched[filepath.Clean(event.Name)] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceWindow, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case <-pending:
			revalidate()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cmdCtx.Logger.Warn("watcher error", "error", err)
		}
	}
}
