package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/evanterry/surveyor/pkg/cost"
	"github.com/evanterry/surveyor/pkg/models"
)

func TestSolutionService_List(t *testing.T) {
	api := &mockAPI{solutions: []models.Solution{{Code: "A1"}}}
	svc := NewSolutionService(api, zap.NewNop())

	got, err := svc.List(context.Background(), "P", "CBC", "Ramp")
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, []string{"solutions:P/CBC/Ramp"}, api.calls)
}

func TestSolutionService_Quote(t *testing.T) {
	svc := NewSolutionService(&mockAPI{}, zap.NewNop())
	priced := models.Solution{Code: "R1", UnitCost: "12.345", UnitType: "EA"}

	tests := []struct {
		name       string
		solution   models.Solution
		units      string
		costFactor string
		want       string
	}{
		{name: "multiplies and rounds", solution: priced, units: "3", costFactor: "1.1", want: "$40.74"},
		{name: "blank units default to one", solution: priced, units: "", costFactor: "1", want: "$12.34"},
		{name: "invalid cost factor is one", solution: priced, units: "2", costFactor: "n/a", want: "$24.69"},
		{name: "n/a unit type", solution: models.Solution{UnitCost: "50", UnitType: "N/A"}, units: "9", costFactor: "3", want: cost.NoCostLabel},
		{name: "zero cost", solution: models.Solution{UnitCost: "0", UnitType: "EA"}, units: "4", costFactor: "1", want: cost.NoCostLabel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := svc.Quote(tt.solution, tt.units, tt.costFactor)
			require.NoError(t, err)
			assert.Equal(t, tt.want, q.Display())
		})
	}
}

func TestSolutionService_QuoteNegativeUnits(t *testing.T) {
	svc := NewSolutionService(&mockAPI{}, zap.NewNop())

	_, err := svc.Quote(models.Solution{UnitCost: "1", UnitType: "EA"}, "-2", "1")
	assert.ErrorIs(t, err, cost.ErrNegativeUnits)
}
