package level

import (
	"errors"
	"testing"
)

func TestNormalizeDefaults(t *testing.T) {
	tests := []struct {
		name string
		in   ObstacleSpec
		want ObstacleSpec
	}{
		{
			name: "missing everything",
			in:   ObstacleSpec{Type: Block, X: 300},
			want: ObstacleSpec{Type: Block, X: 300, W: 120, H: 80, Color: "#ff6b6b"},
		},
		{
			name: "unknown type becomes block",
			in:   ObstacleSpec{Type: "lava", X: 10, W: 50, H: 20, Color: "#fff"},
			want: ObstacleSpec{Type: Block, X: 10, W: 50, H: 20, Color: "#fff"},
		},
		{
			name: "gap keeps width",
			in:   ObstacleSpec{Type: Gap, X: 500, W: 100},
			want: ObstacleSpec{Type: Gap, X: 500, W: 100, H: 80, Color: "#ff6b6b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Normalize(); got != tt.want {
				t.Errorf("Normalize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEffectiveLength(t *testing.T) {
	tests := []struct {
		length float64
		want   float64
	}{
		{0, 2200},
		{-5, 2200},
		{1000, 1000},
	}
	for _, tt := range tests {
		if got := (Level{Length: tt.length}).EffectiveLength(); got != tt.want {
			t.Errorf("EffectiveLength(%v) = %v, want %v", tt.length, got, tt.want)
		}
	}
}

func TestLengthOr(t *testing.T) {
	tests := []struct {
		length float64
		def    float64
		want   float64
	}{
		{0, 1000, 1000},
		{0, 0, 2200},
		{0, -1, 2200},
		{1500, 1000, 1500},
	}
	for _, tt := range tests {
		if got := (Level{Length: tt.length}).LengthOr(tt.def); got != tt.want {
			t.Errorf("LengthOr(%v) with length %v = %v, want %v", tt.def, tt.length, got, tt.want)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := Level{ID: "a", Obstacles: []ObstacleSpec{{Type: Block, X: 100}}}
	c := orig.Clone()
	c.Obstacles[0].X = 999
	c.Obstacles = append(c.Obstacles, ObstacleSpec{Type: Gap})

	if orig.Obstacles[0].X != 100 {
		t.Errorf("original mutated: X = %v", orig.Obstacles[0].X)
	}
	if len(orig.Obstacles) != 1 {
		t.Errorf("original length = %d, want 1", len(orig.Obstacles))
	}

	empty := Level{ID: "e"}.Clone()
	if empty.Obstacles == nil {
		t.Error("Clone() of empty level should have non-nil obstacles")
	}
}

func TestContainsX(t *testing.T) {
	o := ObstacleSpec{X: 100, W: 50}
	cases := map[float64]bool{99.9: false, 100: true, 149.9: true, 150: false}
	for x, want := range cases {
		if got := o.ContainsX(x); got != want {
			t.Errorf("ContainsX(%v) = %v, want %v", x, got, want)
		}
	}
}

func TestOverlapsX(t *testing.T) {
	o := ObstacleSpec{X: 100, W: 50}
	tests := []struct {
		lo, hi float64
		want   bool
	}{
		{80, 100, false},
		{80, 101, true},
		{120, 130, true},
		{149, 160, true},
		{150, 160, false},
		{120, 120, true}, // empty range is a point
		{150, 150, false},
	}
	for _, tt := range tests {
		if got := o.OverlapsX(tt.lo, tt.hi); got != tt.want {
			t.Errorf("OverlapsX(%v, %v) = %v, want %v", tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestFindAndUpsert(t *testing.T) {
	levels := []Level{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}

	if _, err := Find(levels, "zzz"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Find(missing) error = %v, want ErrNotFound", err)
	}

	updated := Upsert(levels, Level{ID: "b", Name: "B2"})
	if len(updated) != 2 {
		t.Fatalf("Upsert(existing) len = %d, want 2", len(updated))
	}
	if got, _ := Find(updated, "b"); got.Name != "B2" {
		t.Errorf("Upsert did not replace: name = %q", got.Name)
	}
	if levels[1].Name != "B" {
		t.Error("Upsert mutated input slice")
	}

	added := Upsert(levels, Level{ID: "c"})
	if len(added) != 3 {
		t.Errorf("Upsert(new) len = %d, want 3", len(added))
	}
}

func TestSamples(t *testing.T) {
	s := Samples()
	if len(s) != 3 {
		t.Fatalf("Samples() = %d levels, want 3", len(s))
	}

	want := map[string]struct {
		name      string
		length    float64
		obstacles int
	}{
		"level-1": {"Sunny Start", 3500, 8},
		"level-2": {"Bouncy Blocks", 4200, 9},
		"level-3": {"Spiky Rush", 2800, 6},
	}
	for _, l := range s {
		w, ok := want[l.ID]
		if !ok {
			t.Errorf("unexpected sample %q", l.ID)
			continue
		}
		if l.Name != w.name || l.Length != w.length || len(l.Obstacles) != w.obstacles {
			t.Errorf("sample %s = {%q %v %d}, want %+v", l.ID, l.Name, l.Length, len(l.Obstacles), w)
		}
	}

	// Mutating a returned sample must not leak into later calls.
	s[0].Obstacles[0].X = -1
	again, err := Sample("level-1")
	if err != nil {
		t.Fatalf("Sample() error: %v", err)
	}
	if again.Obstacles[0].X != 700 {
		t.Errorf("sample mutated: X = %v", again.Obstacles[0].X)
	}
}
