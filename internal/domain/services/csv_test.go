package services

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ochairo/sbat/internal/domain/entities"
)

func collect(t *testing.T, input string, maxFields int) ([][]string, error) {
	t.Helper()
	var records [][]string
	err := parseCSV([]byte(input), maxFields, func(rec record) error {
		fields := make([]string, 0, rec.count)
		for i := 0; i < rec.count; i++ {
			fields = append(fields, rec.fields[i].String())
		}
		records = append(records, fields)
		return nil
	})
	return records, err
}

func TestParseCSV_Records(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		maxFields int
		want      [][]string
	}{
		{
			name:      "single record",
			input:     "sbat,1",
			maxFields: 3,
			want:      [][]string{{"sbat", "1"}},
		},
		{
			name:      "trailing newline",
			input:     "sbat,1\ncompA,2\n",
			maxFields: 3,
			want:      [][]string{{"sbat", "1"}, {"compA", "2"}},
		},
		{
			name:      "crlf",
			input:     "sbat,1\r\ncompA,2\r\n",
			maxFields: 3,
			want:      [][]string{{"sbat", "1"}, {"compA", "2"}},
		},
		{
			name:      "blank lines skipped",
			input:     "\n\nsbat,1\n\r\n\ncompA,2",
			maxFields: 3,
			want:      [][]string{{"sbat", "1"}, {"compA", "2"}},
		},
		{
			name:      "extra fields ignored",
			input:     "compA,2,x,y,z",
			maxFields: 2,
			want:      [][]string{{"compA", "2"}},
		},
		{
			name:      "extra fields are not validated",
			input:     "compA,2,\"quoted\"",
			maxFields: 2,
			want:      [][]string{{"compA", "2"}},
		},
		{
			name:      "trailing comma gives empty field",
			input:     "sbat,1,",
			maxFields: 3,
			want:      [][]string{{"sbat", "1", ""}},
		},
		{
			name:      "metadata width",
			input:     "shim,3,UEFI shim,shim,15.8,https://github.com/rhboot/shim",
			maxFields: 6,
			want:      [][]string{{"shim", "3", "UEFI shim", "shim", "15.8", "https://github.com/rhboot/shim"}},
		},
		{
			name:      "width clamped",
			input:     "a,b,c,d,e,f,g",
			maxFields: 100,
			want:      [][]string{{"a", "b", "c", "d", "e", "f"}},
		},
		{
			name:      "empty input",
			input:     "",
			maxFields: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := collect(t, tt.input, tt.maxFields)
			if err != nil {
				t.Fatalf("parseCSV() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("records mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseCSV_RejectsCharacters(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  error
		wantChar byte
	}{
		{name: "utf8", input: "caf\xc3\xa9,1", wantErr: entities.ErrInvalidASCII},
		{name: "quote", input: "a\"b,1", wantErr: entities.ErrSpecialChar, wantChar: '"'},
		{name: "backslash", input: "a\\b,1", wantErr: entities.ErrSpecialChar, wantChar: '\\'},
		{name: "inner carriage return", input: "a\rb,1", wantErr: entities.ErrSpecialChar, wantChar: '\r'},
		{name: "second line", input: "a,1\nb,1\t", wantErr: entities.ErrSpecialChar, wantChar: '\t'},
		{name: "nul byte", input: "a,1\x00", wantErr: entities.ErrSpecialChar, wantChar: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := collect(t, tt.input, 3)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("parseCSV(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
			var perr *entities.Error
			if tt.wantErr == entities.ErrSpecialChar && errors.As(err, &perr) && perr.Char != tt.wantChar {
				t.Errorf("Char = %q, want %q", perr.Char, tt.wantChar)
			}
		})
	}
}

func TestParseCSV_HandlerErrorStopsWalk(t *testing.T) {
	calls := 0
	stop := errors.New("stop")
	err := parseCSV([]byte("a,1\nb,2\nc,3"), 2, func(_ record) error {
		calls++
		if calls == 2 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) {
		t.Fatalf("error = %v, want stop", err)
	}
	if calls != 2 {
		t.Errorf("handler called %d times, want 2", calls)
	}
}

func TestParseCSV_FieldsAreViewsIntoInput(t *testing.T) {
	input := []byte("sbat,1")
	var name entities.ASCIIStr
	if err := parseCSV(input, 2, func(rec record) error {
		name, _ = rec.field(0)
		return nil
	}); err != nil {
		t.Fatal(err)
	}

	input[0] = 'S'
	if name.String() != "Sbat" {
		t.Errorf("expected field to alias the input buffer, got %q", name)
	}
	if cap(name) != len(name) {
		t.Error("field view must not expose the rest of the buffer")
	}
}
