package domain_test

import (
	"testing"

	"github.com/nikolayk812/shopcore/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradeFor(t *testing.T) {
	thresholds := domain.DefaultGradeThresholds()

	tests := []struct {
		points        string
		wantGrade     domain.Grade
		wantRemaining string
	}{
		{points: "0", wantGrade: domain.GradeExplorer, wantRemaining: "7"},
		{points: "4", wantGrade: domain.GradeExplorer, wantRemaining: "3"},
		{points: "6.99", wantGrade: domain.GradeExplorer, wantRemaining: "0.01"},
		{points: "7", wantGrade: domain.GradePilot, wantRemaining: "8"},
		{points: "14.5", wantGrade: domain.GradePilot, wantRemaining: "0.5"},
		{points: "15", wantGrade: domain.GradeCommander, wantRemaining: "0"},
		{points: "120", wantGrade: domain.GradeCommander, wantRemaining: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.points, func(t *testing.T) {
			points := decimal.RequireFromString(tt.points)

			assert.Equal(t, tt.wantGrade, thresholds.GradeFor(points))

			remaining := thresholds.RemainingToNextGrade(points)
			assert.True(t, remaining.Equal(decimal.RequireFromString(tt.wantRemaining)), remaining.String())
		})
	}
}

func TestNewGradeThresholds(t *testing.T) {
	sorted, err := domain.NewGradeThresholds([]domain.GradeThreshold{
		{Grade: domain.GradeCommander, MinPoint: decimal.NewFromInt(15)},
		{Grade: domain.GradeExplorer, MinPoint: decimal.Zero},
		{Grade: domain.GradePilot, MinPoint: decimal.NewFromInt(7)},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.GradeExplorer, sorted[0].Grade)
	assert.Equal(t, domain.GradeCommander, sorted[2].Grade)

	_, err = domain.NewGradeThresholds([]domain.GradeThreshold{
		{Grade: domain.GradeExplorer, MinPoint: decimal.Zero},
		{Grade: domain.GradePilot, MinPoint: decimal.Zero},
	})
	require.Error(t, err)

	_, err = domain.NewGradeThresholds(nil)
	require.Error(t, err)
}

func TestEarn(t *testing.T) {
	thresholds := domain.DefaultGradeThresholds()
	state := domain.LoyaltyState{Points: decimal.NewFromInt(5), Grade: domain.GradeExplorer}

	got := state.Earn(decimal.NewFromInt(20), thresholds)

	assert.True(t, got.Points.Equal(decimal.NewFromInt(7)))
	assert.Equal(t, domain.GradePilot, got.Grade)
	assert.True(t, state.Points.Equal(decimal.NewFromInt(5)), "receiver is not modified")
}

func TestShippingPolicies(t *testing.T) {
	policies := domain.DefaultShippingPolicies()

	p, err := policies.For(domain.GradePilot)
	require.NoError(t, err)
	assert.True(t, p.ShippingFee.Equal(decimal.NewFromInt(1)))

	_, err = policies.For(domain.Grade("ADMIRAL"))
	require.ErrorIs(t, err, domain.ErrUnknownGrade)

	sorted := policies.Sorted()
	require.Len(t, sorted, 3)
	assert.Equal(t, domain.GradeExplorer, sorted[0].Grade)
	assert.Equal(t, domain.GradeCommander, sorted[2].Grade)
}

func TestParseGrade(t *testing.T) {
	g, err := domain.ParseGrade("PILOT")
	require.NoError(t, err)
	assert.Equal(t, domain.GradePilot, g)

	_, err = domain.ParseGrade("pilot")
	require.ErrorIs(t, err, domain.ErrUnknownGrade)
}
