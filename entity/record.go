package entity

import (
	"context"
	"errors"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/klauspost/readahead"
)

// Record is the serialized form of an entity.
type Record struct {
	Location `yaml:",inline"`
	State    `yaml:",inline"`
}

// Snapshot returns the record of e, or false if e has no state.
func Snapshot(e Entity) (Record, bool) {
	st, ok := e.State()
	if !ok {
		return Record{}, false
	}

	return Record{Location: e.Location(), State: st}, true
}

// ReadRecords decodes a YAML sequence of records from r.
func ReadRecords(ctx context.Context, r io.Reader) ([]Record, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	var recs []Record

	dec := yaml.NewDecoder(ra)
	if err := dec.DecodeContext(ctx, &recs); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}

		return nil, ErrReadRecords.Wrap(err)
	}

	return recs, nil
}

// WriteRecords encodes recs to w as a YAML sequence.
func WriteRecords(ctx context.Context, w io.Writer, recs []Record) error {
	b, err := yaml.MarshalContext(ctx, recs)
	if err != nil {
		return err
	}

	_, err = w.Write(b)

	return err
}

// Load adds every record to s and returns the created entities. Records
// the space refuses are skipped.
func Load(s Space, recs []Record) []Entity {
	out := make([]Entity, 0, len(recs))

	for _, r := range recs {
		if e := s.CreateEntity(r.Location, r.State); e != nil {
			out = append(out, e)
		}
	}

	return out
}
