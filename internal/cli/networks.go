package cli

import (
	"fmt"

	networkdefinition "balance_resolver/internal/infrastructure/network/definition"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type networkRow struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Status      string `json:"status"`
	Placeholder string `json:"placeholder"`
}

const (
	statusAvailable  = "available"
	statusComingSoon = "coming soon"
	statusListed     = "listed"
)

func newNetworksCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "networks",
		Short: "List the selectable networks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resolvable := make(map[string]bool, len(networkdefinition.ResolvableNetworks))
			for _, def := range networkdefinition.ResolvableNetworks {
				resolvable[def.ID] = true
			}

			var rows []networkRow
			for _, d := range networkdefinition.NewDescriptorProvider().GetAllDescriptors() {
				status := statusListed
				switch {
				case d.ComingSoon:
					status = statusComingSoon
				case resolvable[d.ID]:
					status = statusAvailable
				}
				rows = append(rows, networkRow{ID: d.ID, Name: d.Name, Symbol: d.Symbol, Status: status, Placeholder: d.Placeholder})
			}

			out := cmd.OutOrStdout()
			if flags.jsonOutput {
				return printJSON(out, rows)
			}

			fmt.Fprintf(out, "%s%s%s%s\n", pad("ID", 12), pad("NAME", 12), pad("SYMBOL", 8), "STATUS")
			for _, r := range rows {
				status := r.Status
				switch r.Status {
				case statusAvailable:
					status = color.GreenString(status)
				case statusComingSoon:
					status = color.YellowString(status)
				}
				fmt.Fprintf(out, "%s%s%s%s\n", pad(r.ID, 12), pad(r.Name, 12), pad(r.Symbol, 8), status)
			}
			return nil
		},
	}
}
