package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
)

func TestBasisPointsFromRate(t *testing.T) {
	tests := []struct {
		name    string
		rate    float64
		want    int64
		wantErr bool
	}{
		{name: "italian vat", rate: 0.22, want: 2200},
		{name: "zero", rate: 0, want: 0},
		{name: "full rate", rate: 1, want: 10000},
		{name: "negative", rate: -0.1, wantErr: true},
		{name: "above one", rate: 1.5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := services.BasisPointsFromRate(tt.rate)

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRateCalculatorGrossTotal(t *testing.T) {
	calculator, err := services.NewRateCalculator(2200)
	require.NoError(t, err)

	tests := []struct {
		pretaxCents int64
		want        string
	}{
		{pretaxCents: 85000, want: "1037.00"},
		{pretaxCents: 78000, want: "951.60"},
		{pretaxCents: 0, want: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			pretax, err := kernel.NewMoneyFromCents(tt.pretaxCents)
			require.NoError(t, err)

			total, err := calculator.GrossTotal(pretax)

			require.NoError(t, err)
			assert.Equal(t, tt.want, total.String())
		})
	}
}

func TestNewRateCalculatorRejectsBadRates(t *testing.T) {
	_, err := services.NewRateCalculator(-1)
	require.Error(t, err)

	_, err = services.NewRateCalculator(10001)
	require.Error(t, err)
}
