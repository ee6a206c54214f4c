package collector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"PT1H2M3S", 3723},
		{"PT4M13S", 253},
		{"PT45S", 45},
		{"PT10M", 600},
		{"PT2H", 7200},
		{"PT1H30S", 3630},
		{"PT0S", 0},
		{"PT", 0},
		{"", 0},
		{"4M13S", 0},
		{"not a duration", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDuration(tt.input))
		})
	}
}
