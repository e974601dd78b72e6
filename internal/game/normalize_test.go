package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "lowercase", in: "jaws", want: "JAWS"},
		{name: "mixed case", in: "Jaws", want: "JAWS"},
		{name: "spaces and punctuation", in: "  The  God-Father! ", want: "THEGODFATHER"},
		{name: "digits kept", in: "Apollo 13", want: "APOLLO13"},
		{name: "non-ascii stripped", in: "amélie", want: "AMLIE"},
		{name: "only punctuation", in: "?!...", want: ""},
		{name: "empty", in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, in := range []string{"Jaws", "  The  God-Father! ", "Apollo 13"} {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once))
	}
}
