package engine

import "time"

// Policy carries the tunable constants of the optimization pipeline.
// Zero-value fields are replaced with defaults by Normalize.
type Policy struct {
	// MaxWindows caps enumerated travel windows to bound downstream
	// combinatorial work. Precision/performance trade-off, not a
	// correctness requirement.
	MaxWindows int

	// PerSourceLimit truncates each source's result list per call.
	PerSourceLimit int

	// SourceTimeout is the independent timeout for each source fetch.
	SourceTimeout time.Duration

	// WindowWorkers bounds how many windows are processed concurrently.
	WindowWorkers int

	// TopK is how many ranked packages Optimize returns.
	TopK int

	// MaxExpectedCost anchors cost normalization; packages at or above it
	// get a zero cost sub-score.
	MaxExpectedCost float64

	// LoyaltyThreshold is the savings band (currency units) within which
	// cash and points are considered equivalent.
	LoyaltyThreshold float64
}

func DefaultPolicy() Policy {
	return Policy{
		MaxWindows:       10,
		PerSourceLimit:   5,
		SourceTimeout:    15 * time.Second,
		WindowWorkers:    4,
		TopK:             3,
		MaxExpectedCost:  2000,
		LoyaltyThreshold: 10,
	}
}

// Normalize fills unset fields from DefaultPolicy.
func (p Policy) Normalize() Policy {
	def := DefaultPolicy()
	if p.MaxWindows <= 0 {
		p.MaxWindows = def.MaxWindows
	}
	if p.PerSourceLimit <= 0 {
		p.PerSourceLimit = def.PerSourceLimit
	}
	if p.SourceTimeout <= 0 {
		p.SourceTimeout = def.SourceTimeout
	}
	if p.WindowWorkers <= 0 {
		p.WindowWorkers = def.WindowWorkers
	}
	if p.TopK <= 0 {
		p.TopK = def.TopK
	}
	if p.MaxExpectedCost <= 0 {
		p.MaxExpectedCost = def.MaxExpectedCost
	}
	if p.LoyaltyThreshold <= 0 {
		p.LoyaltyThreshold = def.LoyaltyThreshold
	}
	return p
}
