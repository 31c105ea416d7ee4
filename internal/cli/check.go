package cli

import (
	"fmt"
	"strings"

	"balance_resolver/internal/domain/entity"
	"balance_resolver/internal/pkg/utils"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type checkResult struct {
	entity.BalanceResult
	Address     string `json:"address"`
	ExplorerURL string `json:"explorerUrl,omitempty"`
}

func newCheckCmd(open Opener, flags *globalFlags) *cobra.Command {
	var includePreview bool

	cmd := &cobra.Command{
		Use:   "check <network> <address>",
		Short: "Fetch the native balance of an address and its USD value",
		Long: `Fetch the native balance of an address on one network and price it in USD.

Networks marked as coming soon are refused unless --include-preview is set.

Examples:
  balance check ethereum 0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed
  balance check solana 9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			network := strings.ToLower(strings.TrimSpace(args[0]))
			address := strings.TrimSpace(args[1])

			rt, err := open(cmd.Context(), flags.configPath, flags.verbose)
			if err != nil {
				return err
			}
			defer rt.Close()

			descriptor, err := preflight(rt, network, address, includePreview)
			if err != nil {
				return err
			}

			result, err := rt.Resolver.GetBalance(cmd.Context(), address, network)
			if err != nil {
				return err
			}

			res := checkResult{BalanceResult: result, Address: address, ExplorerURL: descriptor.ExplorerLink(address)}
			out := cmd.OutOrStdout()
			if flags.jsonOutput {
				return printJSON(out, res)
			}

			fmt.Fprintf(out, "%s (%s)\n", color.CyanString(result.Network), result.Symbol)
			fmt.Fprintf(out, "  Address:  %s\n", address)
			fmt.Fprintf(out, "  Balance:  %s %s\n", color.GreenString(utils.FormatDisplayAmount(result.Native)), result.Symbol)
			fmt.Fprintf(out, "  Value:    %s\n", utils.FormatUSD(result.USD))
			if res.ExplorerURL != "" {
				fmt.Fprintf(out, "  Explorer: %s\n", res.ExplorerURL)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&includePreview, "include-preview", false, "allow networks marked as coming soon")
	return cmd
}

// preflight applies the coming-soon gate and the advisory address pattern check.
func preflight(rt *Runtime, network, address string, includePreview bool) (entity.NetworkDescriptor, error) {
	descriptor, declared := rt.Descriptors.GetDescriptor(network)
	if declared && descriptor.ComingSoon && !includePreview {
		return descriptor, fmt.Errorf("%s support is coming soon", descriptor.Name)
	}

	if address != "" && !rt.Validator.Validate(address, network, false) {
		name := network
		if declared {
			name = descriptor.Name
		}
		return descriptor, fmt.Errorf("invalid %s address format", name)
	}
	return descriptor, nil
}
