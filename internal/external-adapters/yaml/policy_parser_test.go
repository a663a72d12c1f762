package yaml

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ochairo/sbat/internal/domain/entities"
)

func TestPolicyParser_ParseFile(t *testing.T) {
	content := `revocations:
  source: file
  path: /etc/sbat/sbatlevel.csv
  signature: /etc/sbat/sbatlevel.csv.asc
  keyring: /etc/sbat/trusted.asc
  capacity: 128
metadata:
  capacity: 16
report:
  format: json
`
	path := filepath.Join(t.TempDir(), "policy.yml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	got, err := NewPolicyParser().ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}

	want := &entities.Policy{
		Revocations: entities.RevocationPolicy{
			Source:    entities.SourceFile,
			Path:      "/etc/sbat/sbatlevel.csv",
			Signature: "/etc/sbat/sbatlevel.csv.asc",
			Keyring:   "/etc/sbat/trusted.asc",
			Capacity:  128,
		},
		Metadata: entities.MetadataPolicy{Capacity: 16},
		Report:   entities.ReportPolicy{Format: entities.ReportJSON},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseFile() mismatch (-want +got):\n%s", diff)
	}
}

func TestPolicyParser_Defaults(t *testing.T) {
	got, err := NewPolicyParser().Parse([]byte("revocations:\n  source: efivar\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := entities.DefaultPolicy()
	want.Revocations.Source = entities.SourceEFIVar
	if diff := cmp.Diff(&want, got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestPolicyParser_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "bad yaml", content: "revocations: [", wantErr: "failed to parse YAML"},
		{name: "file without path", content: "revocations:\n  source: file\n", wantErr: "revocations.path is required"},
		{name: "unknown source", content: "revocations:\n  source: http\n", wantErr: "unknown revocations.source"},
		{name: "signature without keyring", content: "revocations:\n  source: efivar\n  signature: x.asc\n", wantErr: "keyring is required"},
		{name: "negative capacity", content: "revocations:\n  source: efivar\n  capacity: -1\n", wantErr: "revocations.capacity"},
		{name: "huge capacity", content: "revocations:\n  source: efivar\nmetadata:\n  capacity: 100000\n", wantErr: "metadata.capacity"},
		{name: "unknown format", content: "revocations:\n  source: efivar\nreport:\n  format: xml\n", wantErr: "unknown report.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPolicyParser().Parse([]byte(tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Parse() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestPolicyParser_MissingFile(t *testing.T) {
	if _, err := NewPolicyParser().ParseFile("/nonexistent/policy.yml"); err == nil {
		t.Error("expected error for missing file")
	}
}
