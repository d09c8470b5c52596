package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MrEthical07/passy"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type strengthResult struct {
	passy.StrengthReport
	Entropy float64       `json:"entropy"`
	Advice  *passy.Advice `json:"advice,omitempty"`
}

func newStrengthCommand(o *rootOptions) *cobra.Command {
	var (
		detail bool
		hints  []string
	)

	cmd := &cobra.Command{
		Use:   "strength [password]",
		Short: "Rate a password",
		Long: `Rate a password by its entropy estimate. Without an argument the password
is read from the terminal without echo, or as one line from standard input
when it is not a terminal. Prefer that over passing it as an argument, which
lands in shell history.

--detail adds a pattern-aware opinion that penalises dictionary words,
repeats and keyboard walks.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				var err error
				if password, err = readPassword(o.in, cmd.ErrOrStderr()); err != nil {
					return err
				}
			}

			engine, err := o.newEngine()
			if err != nil {
				return err
			}
			defer engine.Close()

			res := strengthResult{
				StrengthReport: engine.EstimateStrength(cmd.Context(), password),
				Entropy:        passy.Entropy(password),
			}
			if detail {
				advice := engine.Advise(cmd.Context(), password, hints...)
				res.Advice = &advice
			}

			if o.jsonOut {
				return o.printJSON(res)
			}
			fmt.Fprintf(o.out, "%s (%.1f bits, %.0f%%)\n", res.Label, res.Entropy, res.Pct*100)
			if res.Advice != nil {
				fmt.Fprintf(o.out, "pattern score %d/4, crack time %s\n", res.Advice.Score, res.Advice.CrackTime)
				if res.Advice.Weak {
					fmt.Fprintln(o.out, "warning: predictable pattern detected")
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&detail, "detail", "d", false, "add a pattern-aware advisory")
	cmd.Flags().StringSliceVar(&hints, "hint", nil, "words the password should not be built from (user name, site)")
	return cmd
}

// readPassword prompts without echo on a terminal and otherwise reads one
// line from in.
func readPassword(in io.Reader, prompt io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(prompt, "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
