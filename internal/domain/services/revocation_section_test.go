package services

import (
	"encoding/binary"
	"errors"
	"testing"
)

// buildSection lays out a .sbatlevel section with previous then latest
func buildSection(version uint32, previous, latest string) []byte {
	payload := []byte(previous + "\x00" + latest + "\x00")
	data := make([]byte, headerSize, headerSize+len(payload))
	binary.LittleEndian.PutUint32(data[0:4], version)
	// Offsets count from the end of the version field: 8 header bytes first.
	binary.LittleEndian.PutUint32(data[4:8], 8)
	binary.LittleEndian.PutUint32(data[8:12], uint32(8+len(previous)+1))
	return append(data, payload...)
}

func TestParseRevocationSection(t *testing.T) {
	previous := "sbat,1,2022052400\ngrub,2\n"
	latest := "sbat,1,2024010900\nshim,4\ngrub,3\ngrub.debian,4\n"

	section, err := ParseRevocationSection(buildSection(0, previous, latest))
	if err != nil {
		t.Fatalf("ParseRevocationSection() error = %v", err)
	}
	if string(section.Previous) != previous {
		t.Errorf("Previous = %q, want %q", section.Previous, previous)
	}
	if string(section.Latest) != latest {
		t.Errorf("Latest = %q, want %q", section.Latest, latest)
	}
}

func TestParseRevocationSection_Errors(t *testing.T) {
	valid := buildSection(0, "sbat,1", "sbat,2")

	badOffset := append([]byte(nil), valid...)
	binary.LittleEndian.PutUint32(badOffset[8:12], 1000)

	unterminated := append([]byte(nil), valid[:len(valid)-1]...)

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{name: "empty", data: nil, wantErr: ErrSectionTruncated},
		{name: "short header", data: valid[:11], wantErr: ErrSectionTruncated},
		{name: "version", data: buildSection(1, "sbat,1", "sbat,2"), wantErr: ErrSectionVersion},
		{name: "offset out of range", data: badOffset, wantErr: ErrSectionOffset},
		{name: "unterminated latest", data: unterminated, wantErr: ErrSectionUnterminated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseRevocationSection(tt.data); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseRevocationSection_PayloadsParse(t *testing.T) {
	section, err := ParseRevocationSection(buildSection(0, "sbat,1,2022052400\ngrub,2\n", "sbat,1\n"))
	if err != nil {
		t.Fatal(err)
	}

	r := makeRevocations()
	if err := r.Parse(section.Previous); err != nil {
		t.Fatalf("Parse(previous) error = %v", err)
	}
	if !r.IsComponentRevoked(component("grub", 1)) {
		t.Error("expected grub,1 to be revoked by the previous level")
	}
}
