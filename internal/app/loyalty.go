package app

import (
	"fmt"

	"holiday_planner/internal/domain"
	"holiday_planner/internal/engine"
)

// LoyaltyService answers standalone cash-vs-points queries against the
// configured program table.
type LoyaltyService struct {
	programs  domain.ProgramTable
	threshold float64
}

func NewLoyaltyService(programs domain.ProgramTable, threshold float64) *LoyaltyService {
	return &LoyaltyService{programs: programs, threshold: threshold}
}

func (s *LoyaltyService) Evaluate(cash float64, pointsPrice int, programCode string, balance int) (domain.LoyaltyEvaluation, error) {
	if cash < 0 || pointsPrice < 0 || balance < 0 {
		return domain.LoyaltyEvaluation{}, fmt.Errorf("%w: negative loyalty inputs", domain.ErrInvalidIntent)
	}
	prog, ok := s.programs.Lookup(programCode)
	if !ok {
		return domain.LoyaltyEvaluation{}, fmt.Errorf("%w: %q", domain.ErrUnknownProgram, programCode)
	}
	return engine.EvaluateLoyalty(cash, pointsPrice, prog, balance, s.threshold), nil
}

func (s *LoyaltyService) Programs() []domain.LoyaltyProgram {
	return s.programs.List()
}
