package cli

import (
	"os"

	"balance_resolver/internal/pkg/utils"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var version = "1.0.0"

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	verbose    bool
	noColor    bool
	jsonOutput bool
}

// NewRootCommand builds the command tree. open supplies the runtime collaborators and is
// only invoked by commands that need them.
func NewRootCommand(open Opener) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:     "balance",
		Short:   "Look up native wallet balances across networks",
		Version: version,
		Long: `balance resolves the native balance of a wallet address on one of the
supported networks and prices it in USD.

Supported networks: bitcoin, ethereum, cardano, sui, solana, bnb-chain, polygon, avalanche
Coming soon: algorand, polkadot, sonic

API keys are read from the config file or from the environment:
  ETHERSCAN_API_KEY, BLOCKFROST_API_KEY, HELIUS_API_KEY,
  BSCSCAN_API_KEY, POLYGONSCAN_API_KEY, SNOWTRACE_API_KEY

Examples:
  balance networks
  balance validate ethereum 0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed --strict
  balance check bitcoin bc1qxy2kgdygjrsqtzq2n0yrf2493p83kkfjhx0wlh`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if flags.noColor || !term.IsTerminal(int(os.Stdout.Fd())) {
				color.NoColor = true
			}
		},
	}

	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", utils.GetEnv("CONFIG_PATH", "config/config.yml"), "path to the YAML config file")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "verbose output")
	root.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "disable colored output")
	root.PersistentFlags().BoolVar(&flags.jsonOutput, "json", false, "print results as JSON")

	root.AddCommand(newNetworksCmd(flags))
	root.AddCommand(newValidateCmd(open, flags))
	root.AddCommand(newCheckCmd(open, flags))
	root.AddCommand(newCheckFileCmd(open, flags))

	return root
}
