package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/simulator"
)

func TestParseSeat(t *testing.T) {
	tests := []struct {
		spec     string
		expected simulator.Seat
		wantErr  bool
	}{
		{spec: "ana:basic", expected: simulator.Seat{Name: "ana", Strategy: "basic"}},
		{spec: "ben:advanced:500", expected: simulator.Seat{Name: "ben", Strategy: "advanced", Balance: 500}},
		{spec: "ana", wantErr: true},
		{spec: ":basic", wantErr: true},
		{spec: "ana:", wantErr: true},
		{spec: "ana:basic:lots", wantErr: true},
		{spec: "ana:basic:-5", wantErr: true},
		{spec: "a:b:c:d", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			seat, err := parseSeat(tt.spec)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, seat)
		})
	}
}
