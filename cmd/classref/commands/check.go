// Package commands implements CLI command handlers for classref.
package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/classref/classref/internal/config"
	"github.com/classref/classref/pkg/analyze"
	"github.com/classref/classref/pkg/checker"
	"github.com/classref/classref/pkg/issues"
	"github.com/classref/classref/pkg/pipeline"
	"github.com/classref/classref/pkg/report"
	"github.com/classref/classref/pkg/symbols"
)

// ErrIssuesFound signals that the scan completed and reported diagnostics.
// The CLI maps it to a dedicated exit status.
var ErrIssuesFound = errors.New("issues found")

// CheckCommand holds configuration and dependencies for the check command.
type CheckCommand struct {
	configPath  string
	symbolsPath string
	format      string
	noColor     bool
	silent      bool
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	cc := &CheckCommand{}

	cmd := &cobra.Command{
		Use:   "check [config-dir]",
		Short: "Check class references in XML configuration files",
		Long: `Check scans a directory tree for XML files, reads every class-reference
element and reports references to classes that are undeclared or malformed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: cc.run,
	}

	cmd.Flags().StringVar(&cc.configPath, "config", "", "Path to a .classref.yaml config file")
	cmd.Flags().StringVarP(&cc.symbolsPath, "symbols", "s", "", "Declared-class manifest (.json, .yaml or .yml)")
	cmd.Flags().StringVar(&cc.format, "format", "", "Output format: text, table, json")
	cmd.Flags().BoolVar(&cc.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVar(&cc.silent, "silent", false, "Disable progress output")

	registerHookFlags(cmd, checker.NewChecker())

	return cmd
}

func (cc *CheckCommand) run(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(cc.configPath)
	if err != nil {
		return err
	}

	silent := cc.isSilent(cmd, cfg)
	progressWriter := cmd.ErrOrStderr()

	hook := checker.NewChecker()
	registry := analyze.NewRegistry(hook)

	facts := registry.DefaultFacts()
	applyConfigFacts(facts, cfg)
	applyFlagFacts(facts, cmd, registry.Hooks())

	if len(args) > 0 {
		facts[checker.ConfigDirectory] = args[0]
	}

	// Configuration problems are fatal and surface before any file is read.
	err = registry.Configure(facts)
	if err != nil {
		return err
	}

	table, err := cc.loadSymbols(cfg, silent, progressWriter)
	if err != nil {
		return err
	}

	sink := issues.NewCollectingSink()
	ctx := &analyze.Context{
		Symbols: table,
		Issues:  sink,
		Warn: func(format string, warnArgs ...any) {
			fmt.Fprintf(progressWriter, "warning: "+format+"\n", warnArgs...)
		},
	}

	progressf(silent, progressWriter, "checking class references under %s", hook.ConfigDir)

	err = registry.RunBeforeAnalysis(ctx)
	if err != nil {
		return err
	}

	if cc.noColor || cfg.NoColor {
		color.NoColor = true //nolint:reassign // intentional override of library global
	}

	found := sink.Issues()

	err = report.Render(found, cc.resolveFormat(cfg), cmd.OutOrStdout())
	if err != nil {
		return err
	}

	stats := hook.Stats()
	progressf(silent, progressWriter, "%s", report.Summary(stats.FilesScanned, stats.BytesRead, len(found)))

	if len(found) > 0 {
		return ErrIssuesFound
	}

	return nil
}

func (cc *CheckCommand) loadSymbols(cfg *config.Config, silent bool, progressWriter io.Writer) (symbols.Table, error) {
	path := cc.symbolsPath
	if path == "" {
		path = cfg.Symbols
	}

	if path == "" {
		progressf(silent, progressWriter, "no symbols manifest given; every reference will be undeclared")

		return symbols.NewInMemoryTable(), nil
	}

	table, err := symbols.LoadManifest(path)
	if err != nil {
		return nil, err
	}

	progressf(silent, progressWriter, "loaded %d declared classes from %s", table.Len(), path)

	return table, nil
}

func (cc *CheckCommand) resolveFormat(cfg *config.Config) string {
	if cc.format != "" {
		return cc.format
	}

	if cfg.Format != "" {
		return cfg.Format
	}

	return report.FormatText
}

func (cc *CheckCommand) isSilent(cmd *cobra.Command, cfg *config.Config) bool {
	if cc.silent || cfg.Silent {
		return true
	}

	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return false
	}

	return quiet
}

// applyConfigFacts maps config-file values onto hook facts. Empty values keep
// the defaults.
func applyConfigFacts(facts map[string]any, cfg *config.Config) {
	if cfg.ConfigDir != "" {
		facts[checker.ConfigDirectory] = cfg.ConfigDir
	}

	if cfg.Checker.ClassElement != "" {
		facts[checker.ConfigClassElement] = cfg.Checker.ClassElement
	}

	if cfg.Checker.ExcludeFrom != "" {
		facts[checker.ConfigIgnoreFile] = cfg.Checker.ExcludeFrom
	}

	facts[checker.ConfigSuggestMaxDistance] = cfg.Checker.SuggestMaxDistance
}

// applyFlagFacts overrides facts with explicitly set CLI flags.
func applyFlagFacts(facts map[string]any, cmd *cobra.Command, hooks []analyze.Hook) {
	for _, hook := range hooks {
		for _, opt := range hook.ListConfigurationOptions() {
			if !cmd.Flags().Changed(opt.Flag) {
				continue
			}

			switch opt.Type {
			case pipeline.BoolConfigurationOption:
				if v, err := cmd.Flags().GetBool(opt.Flag); err == nil {
					facts[opt.Name] = v
				}
			case pipeline.IntConfigurationOption:
				if v, err := cmd.Flags().GetInt(opt.Flag); err == nil {
					facts[opt.Name] = v
				}
			case pipeline.StringConfigurationOption, pipeline.PathConfigurationOption:
				if v, err := cmd.Flags().GetString(opt.Flag); err == nil {
					facts[opt.Name] = v
				}
			case pipeline.StringsConfigurationOption:
				if v, err := cmd.Flags().GetStringSlice(opt.Flag); err == nil {
					facts[opt.Name] = v
				}
			}
		}
	}
}

// registerHookFlags registers one CLI flag per hook configuration option.
func registerHookFlags(cmd *cobra.Command, hooks ...analyze.Hook) {
	registered := make(map[string]bool)

	for _, hook := range hooks {
		for _, opt := range hook.ListConfigurationOptions() {
			if registered[opt.Flag] {
				continue
			}

			registered[opt.Flag] = true
			registerConfigFlag(cmd, opt)
		}
	}
}

func registerConfigFlag(cmd *cobra.Command, opt pipeline.ConfigurationOption) {
	switch opt.Type {
	case pipeline.BoolConfigurationOption:
		if v, ok := opt.Default.(bool); ok {
			cmd.Flags().Bool(opt.Flag, v, opt.Description)
		}
	case pipeline.IntConfigurationOption:
		if v, ok := opt.Default.(int); ok {
			cmd.Flags().Int(opt.Flag, v, opt.Description)
		}
	case pipeline.StringConfigurationOption, pipeline.PathConfigurationOption:
		if v, ok := opt.Default.(string); ok {
			cmd.Flags().String(opt.Flag, v, opt.Description)
		}
	case pipeline.StringsConfigurationOption:
		if v, ok := opt.Default.([]string); ok {
			cmd.Flags().StringSlice(opt.Flag, v, opt.Description)
		}
	}
}

func progressf(silent bool, writer io.Writer, format string, args ...any) {
	if silent {
		return
	}

	_, _ = fmt.Fprintf(writer, "progress: "+format+"\n", args...)
}
