package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ochairo/sbat/internal/domain-adapters/gateways"
	"github.com/ochairo/sbat/internal/domain/entities"
	"github.com/ochairo/sbat/internal/domain/interfaces"
	gatewayifaces "github.com/ochairo/sbat/internal/domain/interfaces/gateways"
	"github.com/ochairo/sbat/internal/external-adapters/gpg"
	"github.com/ochairo/sbat/internal/external-adapters/yaml"
)

// policyFlags are the command line overrides for a policy file
type policyFlags struct {
	policyFile         string
	source             string
	path               string
	signature          string
	keyring            string
	format             string
	revocationCapacity int
	metadataCapacity   int
}

func (f *policyFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.policyFile, "policy", "", "YAML policy file")
	fs.StringVar(&f.source, "source", entities.SourceFile, "revocation source: file, efivar, image-previous, image-latest")
	fs.StringVarP(&f.path, "revocations", "r", "", "revocation list path (file or efivar source)")
	fs.StringVar(&f.signature, "signature", "", "detached OpenPGP signature over the revocation list")
	fs.StringVar(&f.keyring, "keyring", "", "armored or binary keyring trusted to sign the revocation list")
	fs.StringVarP(&f.format, "format", "o", entities.ReportText, "report format: text or json")
	fs.IntVar(&f.revocationCapacity, "revocation-capacity", 64, "maximum revocation records")
	fs.IntVar(&f.metadataCapacity, "metadata-capacity", 32, "maximum image metadata records")
}

// resolve loads the policy file (if any) and applies explicitly set flags
func (f *policyFlags) resolve(cmd *cobra.Command) (*entities.Policy, error) {
	policy := entities.DefaultPolicy()
	if f.policyFile != "" {
		loaded, err := yaml.NewPolicyParser().ParseFile(f.policyFile)
		if err != nil {
			return nil, err
		}
		policy = *loaded
	}

	fs := cmd.Flags()
	if fs.Changed("source") {
		policy.Revocations.Source = f.source
	}
	if fs.Changed("revocations") {
		policy.Revocations.Path = f.path
	}
	if fs.Changed("signature") {
		policy.Revocations.Signature = f.signature
	}
	if fs.Changed("keyring") {
		policy.Revocations.Keyring = f.keyring
	}
	if fs.Changed("format") {
		policy.Report.Format = f.format
	}
	if fs.Changed("revocation-capacity") {
		policy.Revocations.Capacity = f.revocationCapacity
	}
	if fs.Changed("metadata-capacity") {
		policy.Metadata.Capacity = f.metadataCapacity
	}

	if err := yaml.Validate(&policy); err != nil {
		return nil, err
	}
	return &policy, nil
}

// newRevocationSource builds the source selected by policy. imagePath is
// used by the image-* sources.
func newRevocationSource(policy *entities.Policy, imagePath string, reader gatewayifaces.ImageReader, logger interfaces.Logger) (gatewayifaces.RevocationSource, error) {
	var source gatewayifaces.RevocationSource
	switch policy.Revocations.Source {
	case entities.SourceFile:
		source = gateways.NewFileSource(policy.Revocations.Path, logger)
	case entities.SourceEFIVar:
		source = gateways.NewEFIVarSource(policy.Revocations.Path, logger)
	case entities.SourceImagePrevious:
		source = gateways.NewImageSectionSource(reader, imagePath, gateways.LevelPrevious, logger)
	case entities.SourceImageLatest:
		source = gateways.NewImageSectionSource(reader, imagePath, gateways.LevelLatest, logger)
	default:
		return nil, fmt.Errorf("unknown revocation source %q", policy.Revocations.Source)
	}

	if policy.Revocations.Signature == "" {
		return source, nil
	}

	verifier := gpg.NewVerifier()
	if err := verifier.ImportKeyFromFile(policy.Revocations.Keyring); err != nil {
		return nil, fmt.Errorf("failed to load keyring: %w", err)
	}
	logger.Debug("loaded trusted keys", interfaces.F("keys", verifier.KeyringSize()))

	return gateways.NewSignedSource(source, verifier, policy.Revocations.Signature, logger), nil
}
