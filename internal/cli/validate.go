package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type validateResult struct {
	Network string `json:"network"`
	Address string `json:"address"`
	Strict  bool   `json:"strict"`
	Valid   bool   `json:"valid"`
}

// errInvalid is returned by validate so the process exits non-zero.
type errInvalid struct{ network string }

func (e errInvalid) Error() string {
	return fmt.Sprintf("address is not a valid %s address", e.network)
}

func newValidateCmd(open Opener, flags *globalFlags) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate <network> <address>",
		Short: "Check an address format without contacting any provider",
		Long: `Check that an address looks like a valid address of the given network.

By default only the address pattern is checked. With --strict the address is also
decoded with the network's codec, which catches bad checksums.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := open(cmd.Context(), flags.configPath, flags.verbose)
			if err != nil {
				return err
			}
			defer rt.Close()

			res := validateResult{
				Network: strings.ToLower(strings.TrimSpace(args[0])),
				Address: strings.TrimSpace(args[1]),
				Strict:  strict,
			}
			res.Valid = rt.Validator.Validate(res.Address, res.Network, strict)

			out := cmd.OutOrStdout()
			if flags.jsonOutput {
				if err := printJSON(out, res); err != nil {
					return err
				}
			} else if res.Valid {
				fmt.Fprintf(out, "%s %s\n", color.GreenString("valid"), res.Address)
			} else {
				fmt.Fprintf(out, "%s %s\n", color.RedString("invalid"), res.Address)
			}

			if !res.Valid {
				return errInvalid{network: res.Network}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "decode the address and verify its checksum")
	return cmd
}
