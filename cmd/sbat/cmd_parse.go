package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ochairo/sbat/internal/domain-adapters/gateways"
	"github.com/ochairo/sbat/internal/domain/services"
)

func newParseCmd(a *app) *cobra.Command {
	var (
		efivar   bool
		capacity int
	)

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse and print a revocation list",
		Example: `  sbat parse sbatlevel.csv
  sbat parse --efivar /sys/firmware/efi/efivars/SbatLevelRT-605dab50-e046-4300-abb6-3dd810dd8b23`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			if efivar {
				data, err = gateways.NewEFIVarSource(args[0], a.logger).Fetch(cmd.Context())
			} else {
				data, err = gateways.NewFileSource(args[0], a.logger).Fetch(cmd.Context())
			}
			if err != nil {
				return &exitCodeError{code: exitError, err: err}
			}

			list, err := services.NewValidationService(capacity, 0).ParseRevocations(data)
			if err != nil {
				return &exitCodeError{code: exitError, err: fmt.Errorf("invalid revocation list: %w", err)}
			}

			w := a.stdout
			if list.HasDate {
				fmt.Fprintf(w, "Date: %s\n", list.Date)
			} else {
				fmt.Fprintf(w, "Date: (none)\n")
			}
			fmt.Fprintf(w, "Components: %d\n", len(list.Components))
			for _, c := range list.Components {
				fmt.Fprintf(w, "  %-24s >= %d\n", c.Name, c.Generation)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&efivar, "efivar", false, "treat <file> as an efivarfs variable (strip attributes)")
	cmd.Flags().IntVar(&capacity, "capacity", services.DefaultRevocationCapacity, "maximum revocation records")

	return cmd
}
