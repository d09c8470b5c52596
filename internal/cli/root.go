package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/MrEthical07/passy"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is stamped at build time with -ldflags.
var Version = "dev"

type rootOptions struct {
	source    string
	seed      uint64
	jsonOut   bool
	verbose   bool
	in        io.Reader
	out       io.Writer
	log       *logrus.Logger
	newEngine func() (*passy.Engine, error)
}

// NewRootCommand assembles the passy command tree reading from in and
// writing results to out and diagnostics to errOut.
func NewRootCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	logger := logrus.New()
	logger.SetOutput(errOut)
	logger.SetLevel(logrus.WarnLevel)

	o := &rootOptions{in: in, out: out, log: logger}
	o.newEngine = o.buildEngine

	cmd := &cobra.Command{
		Use:   "passy",
		Short: "Generate passwords and estimate their strength",
		Long: `passy generates random passwords from a character policy and rates
passwords by an entropy estimate.

Run without arguments for an interactive prompt.

Examples:
  passy generate -l 24 --symbols=false
  passy strength --detail
  passy preview -l 12 --avoid-ambiguous
  passy token --subject shell`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRun: func(*cobra.Command, []string) {
			if o.verbose {
				logger.SetLevel(logrus.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInteractive(cmd.Context(), o)
		},
	}
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	flags := cmd.PersistentFlags()
	flags.StringVar(&o.source, "source", passy.SourceChaCha, "random source: chacha, crypto or seeded")
	flags.Uint64Var(&o.seed, "seed", 0, "seed for --source=seeded (reproducible output, not for real secrets)")
	flags.BoolVar(&o.jsonOut, "json", false, "print results as JSON")
	flags.BoolVarP(&o.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		newGenerateCommand(o),
		newStrengthCommand(o),
		newPreviewCommand(o),
		newTokenCommand(o),
	)
	return cmd
}

// buildEngine turns the persistent flags into an Engine. The CLI keeps
// metrics off; nothing scrapes a one-shot process.
func (o *rootOptions) buildEngine() (*passy.Engine, error) {
	cfg := passy.DefaultConfig()
	cfg.Generator.Source = o.source
	if o.source == passy.SourceSeeded {
		cfg.Generator.Seed = o.seed
		o.log.Warn("seeded source is deterministic; do not use its output as a real password")
	}
	cfg.Metrics.Enabled = false

	engine, err := passy.New().WithConfig(cfg).Build()
	if err != nil {
		return nil, fmt.Errorf("build engine: %w", err)
	}
	o.log.WithField("source", o.source).Debug("engine ready")
	return engine, nil
}

func (o *rootOptions) printJSON(v any) error {
	enc := json.NewEncoder(o.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
