package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/strrl/model-exploder/internal/config"
	"github.com/strrl/model-exploder/internal/logging"
	"github.com/strrl/model-exploder/internal/output"
	"github.com/strrl/model-exploder/internal/parser"
	"github.com/strrl/model-exploder/internal/pipeline"
)

var errMissingInput = errors.New("no file provided, please supply a JSON language model: model-exploder <input.json>")

var (
	expandOutput     string
	expandConfig     string
	expandQuote      bool
	expandUnresolved string
	expandLogLevel   string
	expandLogFormat  string
)

var rootCmd = &cobra.Command{
	Use:   "model-exploder <input.json>",
	Short: "Expand a voice assistant language model into training utterances",
	Long: `model-exploder reads an interaction model JSON file and writes every sample
utterance of its custom intents, with slot placeholders filled by each
combination of slot values, to <input>_expanded.csv as "utterance,intent" rows.

Built-in (AMAZON.) intents are skipped, as are samples that use a built-in
slot type. Utterances are lowercased and stripped of punctuation other than
apostrophes, periods and hyphens.`,
	Args:         requireInput,
	SilenceUsage: true,
	RunE:         runExpand,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	rootCmd.Flags().StringVarP(&expandOutput, "output", "o", "", "Output CSV path (default: <input>_expanded.csv)")
	rootCmd.Flags().StringVarP(&expandConfig, "config", "c", "", "Path to a YAML config file")
	rootCmd.Flags().BoolVar(&expandQuote, "quote", false, "Quote CSV fields (RFC 4180) instead of writing bare lines")
	rootCmd.Flags().StringVar(&expandUnresolved, "unresolved", "", "Handling of undeclared placeholders: skip or passthrough")
	rootCmd.Flags().StringVar(&expandLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.Flags().StringVar(&expandLogFormat, "log-format", "", "Log format: text or json")
}

func requireInput(cmd *cobra.Command, args []string) error {
	switch {
	case len(args) == 0:
		return errMissingInput
	case len(args) > 1:
		return fmt.Errorf("expected a single input file, got %d arguments", len(args))
	}
	return nil
}

func runExpand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := logging.New(cfg.Log)
	out := cmd.OutOrStdout()

	inputPath := args[0]
	fmt.Fprintf(out, "File to be expanded: %s\n", inputPath)

	lm, err := parser.LoadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to load language model: %w", err)
	}

	outputPath := expandOutput
	if outputPath == "" {
		outputPath = output.PathFor(inputPath)
	}

	writer, err := output.Create(outputPath, output.Options{Quote: cfg.Output.Quote})
	if err != nil {
		return err
	}

	p := pipeline.New(pipeline.Config{Unresolved: cfg.UnresolvedPolicy()}, logger)
	stats, err := p.Process(lm, writer)
	if closeErr := writer.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to expand utterances: %w", err)
	}

	fmt.Fprintf(out, "Output file: %s\n", outputPath)
	fmt.Fprintf(out, "Expanded %d intents (%d skipped)\n", stats.IntentsExpanded, stats.IntentsSkipped)
	fmt.Fprintf(out, "Processed %d samples:\n", stats.Samples)
	fmt.Fprintf(out, "  - %d skipped for built-in slots\n", stats.SamplesBuiltin)
	fmt.Fprintf(out, "  - %d with unresolved placeholders\n", stats.SamplesUnresolved)
	fmt.Fprintf(out, "Wrote %d rows\n", stats.Rows)

	return nil
}

// loadConfig reads file and environment settings, then applies any flag the
// user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(expandConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("quote") {
		cfg.Output.Quote = expandQuote
	}
	if flags.Changed("unresolved") {
		cfg.Expand.Unresolved = expandUnresolved
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = expandLogLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = expandLogFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
