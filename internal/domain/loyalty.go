package domain

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

type Grade string

const (
	GradeExplorer  Grade = "EXPLORER"
	GradePilot     Grade = "PILOT"
	GradeCommander Grade = "COMMANDER"
)

func ParseGrade(s string) (Grade, error) {
	switch g := Grade(s); g {
	case GradeExplorer, GradePilot, GradeCommander:
		return g, nil
	default:
		return "", fmt.Errorf("grade[%s]: %w", s, ErrUnknownGrade)
	}
}

// pointRate is the share of committed spend credited as loyalty points.
var pointRate = decimal.RequireFromString("0.1")

type LoyaltyState struct {
	Points decimal.Decimal
	Grade  Grade
}

type GradeThreshold struct {
	Grade    Grade
	MinPoint decimal.Decimal
}

// GradeThresholds is ordered by MinPoint, strictly increasing.
type GradeThresholds []GradeThreshold

func DefaultGradeThresholds() GradeThresholds {
	return GradeThresholds{
		{Grade: GradeExplorer, MinPoint: decimal.Zero},
		{Grade: GradePilot, MinPoint: decimal.NewFromInt(7)},
		{Grade: GradeCommander, MinPoint: decimal.NewFromInt(15)},
	}
}

// NewGradeThresholds sorts list by MinPoint and rejects duplicated boundaries.
func NewGradeThresholds(list []GradeThreshold) (GradeThresholds, error) {
	if len(list) == 0 {
		return nil, fmt.Errorf("grade thresholds are empty")
	}

	t := slices.Clone(list)
	slices.SortFunc(t, func(a, b GradeThreshold) int {
		return a.MinPoint.Cmp(b.MinPoint)
	})

	for i := 1; i < len(t); i++ {
		if !t[i].MinPoint.GreaterThan(t[i-1].MinPoint) {
			return nil, fmt.Errorf("grade thresholds are not strictly increasing at %s", t[i].Grade)
		}
	}

	return t, nil
}

// GradeFor returns the highest grade whose MinPoint does not exceed points.
// Points below every threshold fall back to the lowest grade.
func (t GradeThresholds) GradeFor(points decimal.Decimal) Grade {
	for i := len(t) - 1; i >= 0; i-- {
		if t[i].MinPoint.LessThanOrEqual(points) {
			return t[i].Grade
		}
	}
	if len(t) == 0 {
		return GradeExplorer
	}
	return t[0].Grade
}

// RemainingToNextGrade is zero once points reach the top threshold.
func (t GradeThresholds) RemainingToNextGrade(points decimal.Decimal) decimal.Decimal {
	for _, threshold := range t {
		if threshold.MinPoint.GreaterThan(points) {
			return threshold.MinPoint.Sub(points)
		}
	}
	return decimal.Zero
}

// Earn returns the state after crediting points for spend.
func (s LoyaltyState) Earn(spend decimal.Decimal, t GradeThresholds) LoyaltyState {
	points := s.Points.Add(PointsEarned(spend))
	return LoyaltyState{Points: points, Grade: t.GradeFor(points)}
}

// PointsEarned is ten percent of spend in base currency.
func PointsEarned(spend decimal.Decimal) decimal.Decimal {
	return spend.Mul(pointRate)
}

type ShippingPolicy struct {
	Grade                 Grade
	ShippingFee           decimal.Decimal
	FreeShippingThreshold decimal.Decimal
}

type ShippingPolicies map[Grade]ShippingPolicy

func DefaultShippingPolicies() ShippingPolicies {
	threshold := decimal.NewFromInt(30)
	return ShippingPolicies{
		GradeExplorer:  {Grade: GradeExplorer, ShippingFee: decimal.NewFromInt(2), FreeShippingThreshold: threshold},
		GradePilot:     {Grade: GradePilot, ShippingFee: decimal.NewFromInt(1), FreeShippingThreshold: threshold},
		GradeCommander: {Grade: GradeCommander, ShippingFee: decimal.Zero, FreeShippingThreshold: threshold},
	}
}

func (p ShippingPolicies) For(grade Grade) (ShippingPolicy, error) {
	policy, ok := p[grade]
	if !ok {
		return ShippingPolicy{}, fmt.Errorf("shipping policy for %s: %w", grade, ErrUnknownGrade)
	}
	return policy, nil
}

// Sorted returns the policies ordered by grade rank.
func (p ShippingPolicies) Sorted() []ShippingPolicy {
	out := make([]ShippingPolicy, 0, len(p))
	for _, g := range []Grade{GradeExplorer, GradePilot, GradeCommander} {
		if policy, ok := p[g]; ok {
			out = append(out, policy)
		}
	}
	return out
}
