package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ochairo/sbat/internal/domain-adapters/gateways"
	serviceifaces "github.com/ochairo/sbat/internal/domain/interfaces/services"
	"github.com/ochairo/sbat/internal/domain/services"
)

func newInspectCmd(a *app) *cobra.Command {
	var capacity int

	cmd := &cobra.Command{
		Use:     "inspect <image>",
		Short:   "Show the SBAT metadata and embedded revocation levels of an image",
		Example: `  sbat inspect shimx64.efi`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sections, err := gateways.NewPEImageReader(a.logger).ReadSections(cmd.Context(), args[0])
			if err != nil {
				return &exitCodeError{code: exitError, err: err}
			}

			w := a.stdout
			svc := services.NewValidationService(0, capacity)

			if sections.SBAT == nil {
				fmt.Fprintln(w, ".sbat: (absent)")
			} else {
				entries, err := svc.ParseMetadata(sections.SBAT)
				if err != nil {
					return &exitCodeError{code: exitError, err: fmt.Errorf("invalid .sbat: %w", err)}
				}
				fmt.Fprintf(w, ".sbat: %d entries\n", len(entries))
				for _, e := range entries {
					fmt.Fprintf(w, "  %-20s %-4d %s %s %s %s\n",
						e.Component.Name, e.Component.Generation,
						e.Vendor.Name, e.Vendor.PackageName, e.Vendor.Version, e.Vendor.URL)
				}
			}

			if sections.SBATLevel == nil {
				fmt.Fprintln(w, ".sbatlevel: (absent)")
				return nil
			}
			level, err := services.ParseRevocationSection(sections.SBATLevel)
			if err != nil {
				return &exitCodeError{code: exitError, err: err}
			}
			printLevel(w, svc, "previous", level.Previous)
			printLevel(w, svc, "latest", level.Latest)
			return nil
		},
	}

	cmd.Flags().IntVar(&capacity, "capacity", services.DefaultMetadataCapacity, "maximum metadata records")

	return cmd
}

func printLevel(w io.Writer, svc serviceifaces.ValidationService, name string, data []byte) {
	list, err := svc.ParseRevocations(data)
	if err != nil {
		fmt.Fprintf(w, ".sbatlevel %s: invalid: %v\n", name, err)
		return
	}
	date := "(none)"
	if list.HasDate {
		date = list.Date.String()
	}
	fmt.Fprintf(w, ".sbatlevel %s: date %s, %d components\n", name, date, len(list.Components))
	for _, c := range list.Components {
		fmt.Fprintf(w, "  %-24s >= %d\n", c.Name, c.Generation)
	}
}
