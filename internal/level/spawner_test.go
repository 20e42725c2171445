package level

import "testing"

func TestSpawnerRanges(t *testing.T) {
	s := NewSpawner(42)
	counts := map[ObstacleType]int{}

	for i := 0; i < 2000; i++ {
		o := s.At(float64(i))
		counts[o.Type]++
		switch o.Type {
		case Spike:
			if o.W < 140 || o.W >= 220 || o.H != 64 {
				t.Fatalf("spike out of range: %+v", o)
			}
		case Gap:
			if o.W < 80 || o.W >= 200 {
				t.Fatalf("gap out of range: %+v", o)
			}
		case Block:
			if o.W < 60 || o.W >= 180 || o.H < 60 || o.H >= 150 {
				t.Fatalf("block out of range: %+v", o)
			}
		}
		if o.Type != Gap && o.Color == "" {
			t.Fatalf("missing colour: %+v", o)
		}
	}

	for _, typ := range Types() {
		if counts[typ] == 0 {
			t.Errorf("no %s spawned in 2000 draws", typ)
		}
	}
	if counts[Block] < counts[Spike] || counts[Block] < counts[Gap] {
		t.Errorf("blocks should dominate: %v", counts)
	}
}

func TestSpawnerGenerateDeterministic(t *testing.T) {
	a := NewSpawner(7).Generate("e", 5000)
	b := NewSpawner(7).Generate("e", 5000)

	if len(a.Obstacles) == 0 {
		t.Fatal("Generate produced no obstacles")
	}
	if len(a.Obstacles) != len(b.Obstacles) {
		t.Fatalf("same seed, different counts: %d vs %d", len(a.Obstacles), len(b.Obstacles))
	}
	for i := range a.Obstacles {
		if a.Obstacles[i] != b.Obstacles[i] {
			t.Fatalf("obstacle %d differs: %+v vs %+v", i, a.Obstacles[i], b.Obstacles[i])
		}
	}

	prevEnd := 0.0
	for _, o := range a.Obstacles {
		if o.X < 600 || o.X >= 5000 {
			t.Errorf("obstacle outside course: %+v", o)
		}
		if o.X < prevEnd {
			t.Errorf("obstacles overlap: %+v starts before %v", o, prevEnd)
		}
		prevEnd = o.X + o.W
	}
}
