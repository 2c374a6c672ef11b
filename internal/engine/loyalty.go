package engine

import (
	"math"

	"holiday_planner/internal/domain"
)

// EvaluateLoyalty compares paying cash against redeeming pointsRequired
// points of the given program. Pure and side-effect-free; also exposed
// standalone through the API layer.
//
// Insufficient balance always recommends cash with zero savings, regardless
// of what redeeming would have saved. Otherwise savings = cash −
// points × point_value, and the threshold band around zero maps to EITHER.
func EvaluateLoyalty(cash float64, pointsRequired int, prog domain.LoyaltyProgram, balance int, threshold float64) domain.LoyaltyEvaluation {
	ev := domain.LoyaltyEvaluation{
		Recommendation: domain.UseCash,
		PointsRequired: pointsRequired,
		Program:        prog.Code,
	}
	if pointsRequired > balance {
		return ev
	}

	pointsCost := float64(pointsRequired) * prog.PointValue
	ev.Savings = cash - pointsCost
	switch {
	case ev.Savings > threshold:
		ev.Recommendation = domain.UsePoints
	case ev.Savings < -threshold:
		ev.Recommendation = domain.UseCash
	default:
		ev.Recommendation = domain.Either
	}
	if pointsRequired > 0 {
		v := ev.Savings / float64(pointsRequired)
		ev.ValuePerPoint = &v
	}
	return ev
}

// PointsRequired derives how many points a cash price costs to redeem under
// a program's conversion rate (points per currency unit), rounded up.
func PointsRequired(cash float64, prog domain.LoyaltyProgram) int {
	if prog.ConversionRate <= 0 || cash <= 0 {
		return 0
	}
	return int(math.Ceil(cash * prog.ConversionRate))
}
