package cli

import (
	"fmt"
	"strings"

	"balance_resolver/internal/app/service"
	"balance_resolver/internal/domain/entity"
	"balance_resolver/internal/infrastructure/walletloader"
	"balance_resolver/internal/pkg/utils"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type batchRow struct {
	entity.BatchItem
	Error string `json:"error,omitempty"`
	Kind  string `json:"kind,omitempty"`
}

func newCheckFileCmd(open Opener, flags *globalFlags) *cobra.Command {
	var (
		concurrency    int
		includePreview bool
	)

	cmd := &cobra.Command{
		Use:   "check-file <network> <path>",
		Short: "Fetch balances for every address listed in a file",
		Long: `Fetch balances for a list of addresses on one network. The file holds one
address per line; text after # is ignored. A failed lookup is reported and does
not stop the others.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			network := strings.ToLower(strings.TrimSpace(args[0]))
			addresses, err := walletloader.LoadWallets(args[1])
			if err != nil {
				return err
			}

			rt, err := open(cmd.Context(), flags.configPath, flags.verbose)
			if err != nil {
				return err
			}
			defer rt.Close()

			if _, err := preflight(rt, network, "", includePreview); err != nil {
				return err
			}

			rows := make([]batchRow, len(addresses))
			var pending []string
			var pendingIdx []int
			for i, address := range addresses {
				rows[i].Address = address
				if _, err := preflight(rt, network, address, includePreview); err != nil {
					rows[i].Err = err
					continue
				}
				pending = append(pending, address)
				pendingIdx = append(pendingIdx, i)
			}

			portfolio := service.NewPortfolioService(rt.Resolver, rt.Logger, concurrency)
			for j, item := range portfolio.ResolveAll(cmd.Context(), network, pending) {
				rows[pendingIdx[j]].BatchItem = item
			}

			failed := 0
			for i := range rows {
				if rows[i].Err != nil {
					failed++
					rows[i].Error = rows[i].Err.Error()
					rows[i].Kind = string(entity.KindOf(rows[i].Err))
				}
			}

			out := cmd.OutOrStdout()
			if flags.jsonOutput {
				if err := printJSON(out, rows); err != nil {
					return err
				}
			} else {
				for _, r := range rows {
					if r.Result == nil {
						fmt.Fprintf(out, "%s%s %s\n", pad(r.Address, 46), color.RedString("error:"), r.Error)
						continue
					}
					fmt.Fprintf(out, "%s%s %s  %s\n", pad(r.Address, 46),
						utils.FormatDisplayAmount(r.Result.Native), r.Result.Symbol, utils.FormatUSD(r.Result.USD))
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d lookups failed", failed, len(rows))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "maximum lookups in flight")
	cmd.Flags().BoolVar(&includePreview, "include-preview", false, "allow networks marked as coming soon")
	return cmd
}
