package domain

// Recommendation is the outcome of a cash-vs-points comparison.
type Recommendation string

const (
	UseCash   Recommendation = "USE_CASH"
	UsePoints Recommendation = "USE_POINTS"
	Either    Recommendation = "EITHER"
)

// LoyaltyProgram is a static reference entry: how much one point is worth
// in cash, and how many points one currency unit costs to redeem.
// The table is read-only after process initialization.
type LoyaltyProgram struct {
	Code           string  `json:"code" yaml:"code"`
	Name           string  `json:"name" yaml:"name"`
	PointValue     float64 `json:"point_value" yaml:"point_value"`
	ConversionRate float64 `json:"conversion_rate" yaml:"conversion_rate"`
}

// LoyaltyEvaluation compares paying cash against redeeming points for the
// same package. ValuePerPoint is nil when points_required is zero
// (not applicable, never divide-by-zero). Computed fresh per
// (package, program, balance) triple.
type LoyaltyEvaluation struct {
	Recommendation Recommendation `json:"recommendation"`
	ValuePerPoint  *float64       `json:"effective_value_per_point"`
	Savings        float64        `json:"savings"`
	PointsRequired int            `json:"points_required"`
	Program        string         `json:"program"`
}
