package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fptr(v float64) *float64 { return &v }

func TestPhasePoints(t *testing.T) {
	tests := []struct {
		name        string
		rating      *float64
		weight      float64
		phaseRounds int
		totalRounds int
		bonus       float64
		want        float64
	}{
		{
			name:        "nil rating contributes nothing",
			rating:      nil,
			weight:      0.4,
			phaseRounds: 1,
			totalRounds: 4,
			want:        0,
		},
		{
			name:        "zero total rounds guards division",
			rating:      fptr(1.5),
			weight:      0.4,
			phaseRounds: 0,
			totalRounds: 0,
			want:        0,
		},
		{
			name:        "above-average rating adds points",
			rating:      fptr(1.1),
			weight:      0.4,
			phaseRounds: 1,
			totalRounds: 4,
			want:        100, // (1.1-1.0)*10000*0.4*(1/4)
		},
		{
			name:        "below-average rating subtracts points",
			rating:      fptr(0.9),
			weight:      0.4,
			phaseRounds: 1,
			totalRounds: 4,
			want:        -100,
		},
		{
			name:        "bonus lifts the effective rating",
			rating:      fptr(1.2),
			weight:      0.2,
			phaseRounds: 1,
			totalRounds: 4,
			bonus:       0.10,
			want:        150, // (1.2+0.10-1.0)*10000*0.2*(1/4)
		},
		{
			name:        "round share scales the weight",
			rating:      fptr(1.1),
			weight:      0.4,
			phaseRounds: 3,
			totalRounds: 4,
			want:        300,
		},
		{
			name:        "exactly average rating with no bonus is zero",
			rating:      fptr(1.0),
			weight:      0.5,
			phaseRounds: 2,
			totalRounds: 4,
			want:        0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PhasePoints(tt.rating, tt.weight, tt.phaseRounds, tt.totalRounds, tt.bonus)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}
