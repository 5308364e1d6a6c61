package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newRecomputeCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "recompute [invoice-id]",
		Short: "Recalcula paid/credit/status desde los pagos",
		Example: `  ledgerctl recompute 3f1c...
  ledgerctl recompute --all`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) == 1) {
				return errors.New("indicar un id de factura o --all")
			}
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			if all {
				n, err := e.services.Ledger.RecomputeAll(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d facturas corregidas\n", n)
				return nil
			}
			inv, err := e.services.Ledger.RecomputeInvoice(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s total=%s pagado=%s saldo=%s estado=%s\n",
				inv.InvoiceNumber, inv.TotalAmount.StringFixed(2), inv.PaidAmount.StringFixed(2),
				inv.CreditAmount.StringFixed(2), inv.PaymentStatus)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Recalcular todas las facturas")
	return cmd
}
