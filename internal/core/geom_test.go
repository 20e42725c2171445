package core

import "testing"

func TestRectIntersects(t *testing.T) {
	runner := NewRect(140, 365, 56, 56) // standing on a 421 ground line

	tests := []struct {
		name string
		b    Rect
		want bool
	}{
		{"block straight ahead", NewRect(150, 341, 120, 80), true},
		{"block touching right edge", NewRect(196, 341, 120, 80), false},
		{"block behind", NewRect(20, 341, 120, 80), false},
		{"runner resting on block top", NewRect(100, 421, 120, 80), false},
		{"sub-unit overlap", NewRect(195.5, 420.5, 10, 10), true},
		{"contained", NewRect(150, 370, 10, 10), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := runner.Intersects(tt.b); got != tt.want {
				t.Errorf("Intersects() = %v, want %v", got, tt.want)
			}
			if got := tt.b.Intersects(runner); got != tt.want {
				t.Errorf("reverse Intersects() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectOverlapsSpan(t *testing.T) {
	gap := NewRect(500, 421, 100, 119)

	tests := []struct {
		name        string
		left, right float64
		want        bool
	}{
		{"runner over gap", 520, 576, true},
		{"runner ends at gap start", 444, 500, false},
		{"runner starts at gap end", 600, 656, false},
		{"runner spans whole gap", 480, 620, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gap.OverlapsSpan(tt.left, tt.right); got != tt.want {
				t.Errorf("OverlapsSpan(%v, %v) = %v, want %v", tt.left, tt.right, got, tt.want)
			}
		})
	}
}

func TestRectEdgesAndTranslate(t *testing.T) {
	r := NewRect(10, 20, 30, 40)
	if r.Right() != 40 || r.Bottom() != 60 {
		t.Errorf("edges = (%v, %v), want (40, 60)", r.Right(), r.Bottom())
	}
	if cx, cy := r.Center(); cx != 25 || cy != 40 {
		t.Errorf("Center() = (%v, %v)", cx, cy)
	}

	moved := r.Translate(-15, 5)
	if moved != NewRect(-5, 25, 30, 40) {
		t.Errorf("Translate() = %+v", moved)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct{ v, lo, hi, want int }{
		{5, 0, 10, 5},
		{-3, 0, 10, 0},
		{12, 0, 10, 10},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, want %d", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}

	if got := ClampF(1.5, 0, 1); got != 1 {
		t.Errorf("ClampF() = %v, want 1", got)
	}
	if got := Round(2.5); got != 3 {
		t.Errorf("Round(2.5) = %d, want 3", got)
	}
}
