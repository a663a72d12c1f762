package services

import (
	"bytes"

	"github.com/ochairo/sbat/internal/domain/entities"
)

// maxRecordFields is the widest record any caller asks for (image metadata)
const maxRecordFields = 6

// record is one line of input split into at most maxFields fields. Fields
// are views into the input buffer.
type record struct {
	fields [maxRecordFields]entities.ASCIIStr
	count  int
}

// field returns field i, or false when the record is too short
func (r record) field(i int) (entities.ASCIIStr, bool) {
	if i >= r.count {
		return nil, false
	}
	return r.fields[i], true
}

// generation parses field i as a Generation. A missing field reports false
// with a nil error.
func (r record) generation(i int) (entities.Generation, bool, error) {
	f, ok := r.field(i)
	if !ok {
		return 0, false, nil
	}
	g, err := entities.ParseGeneration(f)
	if err != nil {
		return 0, false, err
	}
	return g, true, nil
}

// parseCSV walks input one record at a time and hands each record to handle.
//
// Records are separated by '\n'; a single trailing '\r' is stripped and
// empty lines are skipped. Only the first maxFields fields of a record are
// split out and validated; anything after them is ignored. The first error,
// from validation or from handle, stops the walk.
func parseCSV(input []byte, maxFields int, handle func(record) error) error {
	if maxFields > maxRecordFields {
		maxFields = maxRecordFields
	}

	for len(input) > 0 {
		line := input
		if i := bytes.IndexByte(input, '\n'); i >= 0 {
			line, input = input[:i], input[i+1:]
		} else {
			input = nil
		}
		if n := len(line); n > 0 && line[n-1] == '\r' {
			line = line[:n-1]
		}
		if len(line) == 0 {
			continue
		}

		var rec record
		for rec.count < maxFields {
			field := line
			sep := bytes.IndexByte(line, ',')
			if sep >= 0 {
				field = line[:sep]
			}
			if err := entities.CheckField(field); err != nil {
				return err
			}
			rec.fields[rec.count] = entities.ASCIIStr(field[:len(field):len(field)])
			rec.count++
			if sep < 0 {
				break
			}
			line = line[sep+1:]
		}

		if err := handle(rec); err != nil {
			return err
		}
	}

	return nil
}
