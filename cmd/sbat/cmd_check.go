package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ochairo/sbat/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/sbat/internal/domain-orchestrators"
	"github.com/ochairo/sbat/internal/domain/entities"
	"github.com/ochairo/sbat/internal/domain/services"
	"github.com/ochairo/sbat/internal/external-adapters/jcs"
)

func newCheckCmd(a *app) *cobra.Command {
	var (
		flags       policyFlags
		rawMetadata bool
	)

	cmd := &cobra.Command{
		Use:   "check <image>",
		Short: "Check an image against a revocation list",
		Long: `Check the .sbat metadata of a PE boot image against a revocation list.

Exit status is 0 when the image is allowed, 1 when it is revoked and 2
when no trustworthy verdict could be reached (fail closed).`,
		Example: `  # Check against a revocation list file
  sbat check grubx64.efi -r sbatlevel.csv

  # Check against the running system's SbatLevel variable
  sbat check grubx64.efi --source efivar

  # Check against the latest level embedded in shim
  sbat check shimx64.efi --source image-latest

  # Require a signed revocation list and emit a JSON report
  sbat check grubx64.efi -r sbatlevel.csv --signature sbatlevel.csv.asc --keyring trusted.asc -o json

  # Check metadata that was already extracted as CSV
  sbat check grub.sbat.csv --metadata -r sbatlevel.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := flags.resolve(cmd)
			if err != nil {
				return &exitCodeError{code: exitError, err: err}
			}
			return runCheck(cmd.Context(), a, policy, args[0], rawMetadata)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&rawMetadata, "metadata", false, "treat <image> as raw .sbat CSV instead of a PE image")

	return cmd
}

func runCheck(ctx context.Context, a *app, policy *entities.Policy, image string, rawMetadata bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	reader := gateways.NewCachedImageReader(gateways.NewPEImageReader(a.logger))
	source, err := newRevocationSource(policy, image, reader, a.logger)
	if err != nil {
		return &exitCodeError{code: exitError, err: err}
	}

	validation := services.NewValidationService(policy.Revocations.Capacity, policy.Metadata.Capacity)
	orchestrator := orchestrators.NewCheckOrchestrator(validation, source, reader, a.logger)

	var result *orchestrators.CheckResult
	if rawMetadata {
		data, readErr := readMetadataFile(image)
		if readErr != nil {
			return &exitCodeError{code: exitError, err: readErr}
		}
		result, err = orchestrator.CheckMetadata(ctx, image, data)
	} else {
		result, err = orchestrator.CheckImage(ctx, image)
	}
	if err != nil {
		return &exitCodeError{code: exitError, err: err}
	}

	if err := writeReport(a.stdout, policy.Report.Format, result); err != nil {
		return &exitCodeError{code: exitError, err: err}
	}

	if result.Verdict.IsRevoked() {
		return &exitCodeError{code: exitRevoked}
	}
	return nil
}

func readMetadataFile(path string) ([]byte, error) {
	//nolint:gosec // G304: path is user-provided metadata file
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open metadata: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, gateways.MaxRevocationSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}
	if len(data) > gateways.MaxRevocationSize {
		return nil, fmt.Errorf("metadata exceeds %d bytes", gateways.MaxRevocationSize)
	}
	return data, nil
}

func writeReport(w io.Writer, format string, result *orchestrators.CheckResult) error {
	if format == entities.ReportJSON {
		sealed, err := jcs.Seal(jcs.NewReport(result.ImagePath, result.Verdict))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", sealed)
		return err
	}

	v := result.Verdict
	fmt.Fprintf(w, "Image:        %s\n", result.ImagePath)
	fmt.Fprintf(w, "Source:       %s\n", v.Source)
	if len(v.Date) > 0 {
		fmt.Fprintf(w, "Date:         %s\n", v.Date)
	}
	fmt.Fprintf(w, "Revocations:  %d\n", v.RevocationCount)
	fmt.Fprintf(w, "Entries:      %d\n", v.MetadataCount)

	if !v.IsRevoked() {
		_, err := fmt.Fprintf(w, "Verdict:      ALLOWED\n")
		return err
	}

	fmt.Fprintf(w, "Verdict:      REVOKED\n")
	fmt.Fprintf(w, "Component:    %s (generation %d)\n", v.Entry.Component.Name, v.Entry.Component.Generation)
	if v.RevokedBy != nil {
		fmt.Fprintf(w, "Minimum:      %d\n", v.RevokedBy.Generation)
	}
	if len(v.Entry.Vendor.Name) > 0 {
		fmt.Fprintf(w, "Vendor:       %s %s %s\n", v.Entry.Vendor.Name, v.Entry.Vendor.PackageName, v.Entry.Vendor.Version)
	}
	_, err := fmt.Fprintf(w, "Note:         other entries may also be revoked\n")
	return err
}
