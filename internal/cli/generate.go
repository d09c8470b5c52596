package cli

import (
	"fmt"

	"github.com/MrEthical07/passy"
	"github.com/spf13/cobra"
)

const maxCount = 1000

type generatedPassword struct {
	Password string               `json:"password"`
	Strength passy.StrengthReport `json:"strength"`
}

func newGenerateCommand(o *rootOptions) *cobra.Command {
	var (
		count     int
		showScore bool
		pf        *policyFlags
	)

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen", "g"},
		Short:   "Generate one or more passwords",
		Long: `Generate random passwords. Each character is drawn uniformly from the
charset the policy flags describe; with no class enabled the 62-character
alphanumeric set is used.

Examples:
  passy generate
  passy generate -l 32 -c 5 --symbols=false
  passy generate --alpha=false --digits -l 6`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 1 || count > maxCount {
				return fmt.Errorf("--count must be between 1 and %d", maxCount)
			}
			engine, err := o.newEngine()
			if err != nil {
				return err
			}
			defer engine.Close()

			policy := pf.resolve(cmd.Flags())
			o.log.WithField("policy", passy.OptionsFromPolicy(policy)).Debug("generating")

			results := make([]generatedPassword, 0, count)
			for range count {
				pw := engine.GeneratePassword(cmd.Context(), policy)
				results = append(results, generatedPassword{
					Password: pw,
					Strength: passy.EstimateStrength(pw),
				})
			}

			if o.jsonOut {
				return o.printJSON(results)
			}
			for _, r := range results {
				if showScore {
					fmt.Fprintf(o.out, "%s  [%s]\n", r.Password, r.Strength.Label)
					continue
				}
				fmt.Fprintln(o.out, r.Password)
			}
			return nil
		},
	}

	pf = addPolicyFlags(cmd.Flags())
	cmd.Flags().IntVarP(&count, "count", "c", 1, "number of passwords to generate")
	cmd.Flags().BoolVar(&showScore, "show-strength", false, "print the strength tier next to each password")
	return cmd
}
