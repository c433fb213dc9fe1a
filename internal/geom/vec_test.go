package geom

import (
	"math"
	"testing"
)

func TestVec2_Arithmetic(t *testing.T) {
	a := V(1, 2)
	b := V(4, 6)

	if got := a.Add(b); got != V(5, 8) {
		t.Errorf("Add failed: got %v", got)
	}
	if got := b.Sub(a); got != V(3, 4) {
		t.Errorf("Sub failed: got %v", got)
	}
	if got := a.Scale(2.5); got != V(2.5, 5) {
		t.Errorf("Scale failed: got %v", got)
	}
}

func TestVec2_Len(t *testing.T) {
	tests := []struct {
		v        Vec2
		expected float64
	}{
		{V(3, 4), 5.0},
		{V(1, 0), 1.0},
		{V(0, 0), 0.0},
		{V(-3, 4), 5.0},
	}

	for _, tt := range tests {
		if got := tt.v.Len(); math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("Len(%v) = %v, want %v", tt.v, got, tt.expected)
		}
		if got := tt.v.LenSq(); math.Abs(got-tt.expected*tt.expected) > 1e-12 {
			t.Errorf("LenSq(%v) = %v, want %v", tt.v, got, tt.expected*tt.expected)
		}
	}
}

func TestVec2_DotCross(t *testing.T) {
	a := V(1, 0)
	b := V(0, 1)

	if got := a.Dot(b); got != 0 {
		t.Errorf("Dot of perpendicular vectors = %v, want 0", got)
	}
	if got := a.Cross(b); got != 1 {
		t.Errorf("Cross(%v, %v) = %v, want 1", a, b, got)
	}
	if got := b.Cross(a); got != -1 {
		t.Errorf("Cross is not antisymmetric: got %v", got)
	}
	if got := V(2, 3).Dot(V(4, 5)); got != 23 {
		t.Errorf("Dot = %v, want 23", got)
	}
}

func TestVec2_Norm(t *testing.T) {
	n := V(3, 4).Norm()
	if math.Abs(n.Len()-1.0) > 1e-12 {
		t.Errorf("Norm length = %v, want 1", n.Len())
	}
	if math.Abs(n.X-0.6) > 1e-12 || math.Abs(n.Y-0.8) > 1e-12 {
		t.Errorf("Norm direction = %v, want (0.6, 0.8)", n)
	}

	if got := V(0, 0).Norm(); got != V(0, 0) {
		t.Errorf("Norm of zero vector = %v, want zero", got)
	}
}

func TestVec2_Dist(t *testing.T) {
	if got := V(1, 1).Dist(V(4, 5)); math.Abs(got-5.0) > 1e-12 {
		t.Errorf("Dist = %v, want 5", got)
	}
}

func TestVec2_IsFinite(t *testing.T) {
	tests := []struct {
		name  string
		v     Vec2
		valid bool
	}{
		{"zero", V(0, 0), true},
		{"normal", V(1.5, -2.5), true},
		{"NaN x", V(math.NaN(), 0), false},
		{"+Inf y", V(0, math.Inf(1)), false},
		{"-Inf x", V(math.Inf(-1), 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsFinite(); got != tt.valid {
				t.Errorf("IsFinite() = %v, want %v", got, tt.valid)
			}
		})
	}
}
