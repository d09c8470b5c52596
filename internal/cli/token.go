package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/MrEthical07/passy/jwt"
	"github.com/spf13/cobra"
)

const secretEnv = "PASSY_BRIDGE_SECRET"

func newTokenCommand(o *rootOptions) *cobra.Command {
	var (
		secret  string
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bridge token for passyd",
		Long: `Mint a bridge token the desktop shell sends as "Authorization: Bearer".
The secret defaults to $PASSY_BRIDGE_SECRET and must match the daemon's.`,
		Args: cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if secret == "" {
				secret = os.Getenv(secretEnv)
			}
			if secret == "" {
				return errors.New("no secret: pass --secret or set " + secretEnv)
			}

			mgr, err := jwt.NewManager(jwt.Config{Secret: []byte(secret), TTL: ttl})
			if err != nil {
				return err
			}
			tok, err := mgr.Issue(subject)
			if err != nil {
				return err
			}

			if o.jsonOut {
				return o.printJSON(map[string]any{
					"token":      tok,
					"subject":    subject,
					"expires_in": int(ttl.Seconds()),
				})
			}
			fmt.Fprintln(o.out, tok)
			return nil
		},
	}

	cmd.Flags().StringVar(&secret, "secret", "", "shared HS256 secret (default $"+secretEnv+")")
	cmd.Flags().StringVar(&subject, "subject", "shell", "token subject, also the rate-limit key")
	cmd.Flags().DurationVar(&ttl, "ttl", 5*time.Minute, "token lifetime")
	return cmd
}
