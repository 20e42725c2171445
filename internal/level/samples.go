package level

import (
	_ "embed"
)

//go:embed samples.json
var samplesJSON []byte

var samples = mustDecodeSamples()

func mustDecodeSamples() []Level {
	levels, err := DecodeJSON(samplesJSON)
	if err != nil {
		panic("level: embedded samples: " + err.Error())
	}
	return levels
}

// Samples returns fresh copies of the built-in levels.
func Samples() []Level {
	out := make([]Level, len(samples))
	for i, l := range samples {
		out[i] = l.Clone()
	}
	return out
}

// Sample returns a built-in level by id.
func Sample(id string) (Level, error) {
	l, err := Find(samples, id)
	if err != nil {
		return Level{}, err
	}
	return l.Clone(), nil
}
