package entity

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ardnew/xform/vec"
)

const recordsYAML = `
- position: {x: 1.5, y: 0, z: 0.5}
  direction: {x: 1, y: 0, z: 0}
  type: painting
  tags:
    TileX: 5
    TileY: 10
    TileZ: 5
    Facing: 2
- position: {x: -3, y: 64, z: 2.25}
  direction: {x: 0, y: 0, z: 1}
  type: cow
`

func TestReadRecords(t *testing.T) {
	recs, err := ReadRecords(t.Context(), strings.NewReader(recordsYAML))
	if err != nil {
		t.Fatal(err)
	}

	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}

	if recs[0].Type != "painting" ||
		recs[0].Position != (vec.Vector3{X: 1.5, Z: 0.5}) {
		t.Errorf("unexpected first record: %+v", recs[0])
	}

	if v, ok := recs[0].Tags.Int(TagTileY); !ok || v != 10 {
		t.Errorf("TileY: expected 10, got %v", recs[0].Tags[TagTileY])
	}

	if recs[1].Direction != (vec.Vector3{Z: 1}) || recs[1].Tags != nil {
		t.Errorf("unexpected second record: %+v", recs[1])
	}
}

func TestReadRecords_Empty(t *testing.T) {
	recs, err := ReadRecords(t.Context(), strings.NewReader(""))
	if err != nil || recs != nil {
		t.Errorf("expected no records, got %v, %v", recs, err)
	}
}

func TestReadRecords_Invalid(t *testing.T) {
	_, err := ReadRecords(t.Context(), strings.NewReader("- position: [1, 2"))
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestRecords_LoadCopyWrite(t *testing.T) {
	recs, err := ReadRecords(t.Context(), strings.NewReader(recordsYAML))
	if err != nil {
		t.Fatal(err)
	}

	src, dst := NewMemory(nil), NewMemory(nil)
	entities := Load(src, recs)

	c := NewCopier(dst, nil, vec.Zero, vec.Vector3{X: 10})
	if _, err := c.CopyAll(t.Context(), entities, 1); err != nil {
		t.Fatal(err)
	}

	out := make([]Record, 0, dst.Len())
	for _, e := range dst.Entities() {
		if r, ok := Snapshot(e); ok {
			out = append(out, r)
		}
	}

	var buf bytes.Buffer
	if err := WriteRecords(t.Context(), &buf, out); err != nil {
		t.Fatal(err)
	}

	back, err := ReadRecords(t.Context(), &buf)
	if err != nil {
		t.Fatal(err)
	}

	if len(back) != 2 {
		t.Fatalf("expected 2 records, got %d", len(back))
	}

	if v, _ := back[0].Tags.Int(TagTileX); v != 15 {
		t.Errorf("TileX: expected 15, got %v", back[0].Tags[TagTileX])
	}

	if want := (vec.Vector3{X: 11.5, Z: 0.5}); back[0].Position != want {
		t.Errorf("expected %v, got %v", want, back[0].Position)
	}
}
