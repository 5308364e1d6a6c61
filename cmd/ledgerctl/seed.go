package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSeedRatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed-rates",
		Short: "Carga el catálogo inicial de tarifas si está vacío",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			n, err := e.services.Rates.Seed(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d tarifas insertadas\n", n)
			return nil
		},
	}
}
