package level

import (
	"testing"
)

func TestDecodeJSONSingleAndArray(t *testing.T) {
	single := []byte(`{"id":"x","name":"X","length":1000,"obstacles":[{"type":"gap","x":500,"w":100}]}`)
	levels, err := DecodeJSON(single)
	if err != nil {
		t.Fatalf("DecodeJSON(single) error: %v", err)
	}
	if len(levels) != 1 || levels[0].ID != "x" {
		t.Fatalf("DecodeJSON(single) = %+v", levels)
	}
	if levels[0].Obstacles[0].Type != Gap || levels[0].Obstacles[0].W != 100 {
		t.Errorf("obstacle = %+v", levels[0].Obstacles[0])
	}

	array := []byte(`[{"id":"a","obstacles":[]},{"id":"b","obstacles":[{"x":300}]}]`)
	levels, err = DecodeJSON(array)
	if err != nil {
		t.Fatalf("DecodeJSON(array) error: %v", err)
	}
	if len(levels) != 2 {
		t.Fatalf("DecodeJSON(array) = %d levels, want 2", len(levels))
	}
	got := levels[1].Obstacles[0]
	if got.Type != Block || got.W != DefaultWidth || got.H != DefaultHeight || got.Color != DefaultColor {
		t.Errorf("defaults not applied: %+v", got)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		ext  string
	}{
		{"empty json", "   ", ".json"},
		{"broken json", `{"id":`, ".json"},
		{"missing id", `{"name":"nameless"}`, ".json"},
		{"broken yaml", "id: [", ".yaml"},
		{"scalar yaml", "just a string", ".yml"},
		{"unsupported", "{}", ".toml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode([]byte(tt.data), tt.ext); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDecodeYAML(t *testing.T) {
	doc := []byte(`
id: custom
name: Custom
length: 1200
obstacles:
  - { type: spike, x: 400, w: 140, h: 64, color: "#9b8cff" }
  - { type: gap, x: 800, w: 90 }
`)
	levels, err := DecodeYAML(doc)
	if err != nil {
		t.Fatalf("DecodeYAML error: %v", err)
	}
	if len(levels) != 1 || len(levels[0].Obstacles) != 2 {
		t.Fatalf("DecodeYAML = %+v", levels)
	}
	if levels[0].Obstacles[0].Type != Spike {
		t.Errorf("type = %q, want spike", levels[0].Obstacles[0].Type)
	}

	seq := []byte("- id: one\n- id: two\n")
	levels, err = DecodeYAML(seq)
	if err != nil {
		t.Fatalf("DecodeYAML(seq) error: %v", err)
	}
	if len(levels) != 2 {
		t.Errorf("DecodeYAML(seq) = %d levels, want 2", len(levels))
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	orig := Samples()

	data, err := EncodeJSON(orig)
	if err != nil {
		t.Fatalf("EncodeJSON error: %v", err)
	}
	back, err := DecodeJSON(data)
	if err != nil {
		t.Fatalf("DecodeJSON error: %v", err)
	}
	if len(back) != len(orig) {
		t.Fatalf("round trip len = %d, want %d", len(back), len(orig))
	}

	y, err := EncodeYAML(orig[2])
	if err != nil {
		t.Fatalf("EncodeYAML error: %v", err)
	}
	fromYAML, err := DecodeYAML(y)
	if err != nil {
		t.Fatalf("DecodeYAML error: %v", err)
	}
	if fromYAML[0].Name != "Spiky Rush" || len(fromYAML[0].Obstacles) != 6 {
		t.Errorf("yaml round trip = %+v", fromYAML[0])
	}
}
