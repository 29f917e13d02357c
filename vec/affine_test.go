package vec

import "testing"

func TestAffine_Apply(t *testing.T) {
	p := Vector3{1, 2, 3}

	tests := []struct {
		name string
		a    Affine
		want Vector3
	}{
		{"identity", Identity(), p},
		{"translate", Translate(1, -1, 0.5), Vector3{2, 1, 3.5}},
		{"scale", Scale(2, 1, -1), Vector3{2, 2, -3}},
		{"rotate y 90", RotateY(90), Vector3{3, 2, -1}},
		{"rotate y -90", RotateY(-90), Vector3{-3, 2, 1}},
		{"rotate y 180", RotateY(180), Vector3{-1, 2, -3}},
		{"rotate x 90", RotateX(90), Vector3{1, -3, 2}},
		{"rotate z 90", RotateZ(90), Vector3{-2, 1, 3}},
		{"rotate y 450", RotateY(450), Vector3{3, 2, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Apply(p); !got.ApproxEqual(tt.want, 1e-12) {
				t.Errorf("Apply(%v) = %v, want %v", p, got, tt.want)
			}
		})
	}
}

func TestAffine_IsIdentity(t *testing.T) {
	if !Identity().IsIdentity() || !RotateY(360).IsIdentity() {
		t.Error("expected identity")
	}

	if RotateY(90).IsIdentity() || Translate(0, 0, 1).IsIdentity() {
		t.Error("expected non-identity")
	}

	if (Affine{}).IsIdentity() {
		t.Error("zero value must not be identity")
	}
}

func TestAffine_Then(t *testing.T) {
	p := Vector3{1, 0, 0}

	a := RotateY(90).Then(Translate(5, 0, 0))
	if got := a.Apply(p); !got.ApproxEqual(Vector3{5, 0, -1}, 1e-12) {
		t.Errorf("rotate then translate = %v", got)
	}

	b := Translate(5, 0, 0).Then(RotateY(90))
	if got := b.Apply(p); !got.ApproxEqual(Vector3{0, 0, -6}, 1e-12) {
		t.Errorf("translate then rotate = %v", got)
	}

	if !RotateY(90).Then(RotateY(-90)).IsIdentity() {
		t.Error("expected inverse rotations to cancel")
	}
}
