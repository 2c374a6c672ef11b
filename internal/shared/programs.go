package shared

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"holiday_planner/internal/domain"
)

// Programs is the in-memory loyalty program table. Read-only after
// LoadPrograms, so no locking is needed.
type Programs struct {
	byCode map[string]domain.LoyaltyProgram
}

func (p *Programs) Lookup(code string) (domain.LoyaltyProgram, bool) {
	prog, ok := p.byCode[code]
	return prog, ok
}

func (p *Programs) List() []domain.LoyaltyProgram {
	out := make([]domain.LoyaltyProgram, 0, len(p.byCode))
	for _, prog := range p.byCode {
		out = append(out, prog)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

type programsFile struct {
	Programs []domain.LoyaltyProgram `yaml:"programs"`
}

// LoadPrograms reads the loyalty table from a YAML file. A missing file
// falls back to the built-in defaults; a malformed file is an error.
func LoadPrograms(path string) (*Programs, error) {
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultPrograms(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read programs file: %w", err)
	}

	var f programsFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse programs file %s: %w", path, err)
	}
	if len(f.Programs) == 0 {
		return nil, fmt.Errorf("programs file %s has no programs", path)
	}

	byCode := make(map[string]domain.LoyaltyProgram, len(f.Programs))
	for _, prog := range f.Programs {
		if prog.Code == "" || prog.PointValue <= 0 || prog.ConversionRate <= 0 {
			return nil, fmt.Errorf("program %q has invalid valuation fields", prog.Code)
		}
		byCode[prog.Code] = prog
	}
	return &Programs{byCode: byCode}, nil
}

// DefaultPrograms is the built-in loyalty table used when no YAML file is
// configured.
func DefaultPrograms() *Programs {
	defs := []domain.LoyaltyProgram{
		{Code: "avios", Name: "British Airways Avios", PointValue: 0.010, ConversionRate: 100},
		{Code: "virgin", Name: "Virgin Points", PointValue: 0.012, ConversionRate: 90},
		{Code: "ihg", Name: "IHG One Rewards", PointValue: 0.005, ConversionRate: 200},
		{Code: "bonvoy", Name: "Marriott Bonvoy", PointValue: 0.007, ConversionRate: 150},
	}
	byCode := make(map[string]domain.LoyaltyProgram, len(defs))
	for _, p := range defs {
		byCode[p.Code] = p
	}
	return &Programs{byCode: byCode}
}
