package cli

import (
	"fmt"

	"github.com/MrEthical07/passy"
	"github.com/spf13/cobra"
)

type previewResult struct {
	passy.StrengthReport
	Entropy     float64 `json:"entropy"`
	CharsetSize int     `json:"charset_size"`
}

func newPreviewCommand(o *rootOptions) *cobra.Command {
	var pf *policyFlags

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Rate a policy before generating",
		Long: `Estimate how strong passwords from a policy will be, from the enabled
classes and length alone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := o.newEngine()
			if err != nil {
				return err
			}
			defer engine.Close()

			policy := pf.resolve(cmd.Flags())
			res := previewResult{
				StrengthReport: engine.EstimatePolicyStrength(cmd.Context(), policy),
				Entropy:        passy.PolicyEntropy(policy),
				CharsetSize:    passy.SamplingCharset(policy).Len(),
			}

			if o.jsonOut {
				return o.printJSON(res)
			}
			fmt.Fprintf(o.out, "%s (%.1f bits, %d-character charset, length %d)\n",
				res.Label, res.Entropy, res.CharsetSize, policy.ClampedLength())
			return nil
		},
	}

	pf = addPolicyFlags(cmd.Flags())
	return cmd
}
