package planner

import (
	"github.com/imaahil/dhonipass/internal/core/domain"
)

// Catalog is the materialized transport catalog the engine plans over.
// Callers fetch it once (static table or a single database round trip) and
// pass it in; the engine itself never does I/O.
type Catalog struct {
	Locations []domain.Location
	Segments  []domain.TransportSegment
}

// Engine plans inter-island trips over a materialized catalog. The zero
// value is not usable; construct with DefaultEngine or wire the fields from
// config. All methods are pure and safe for concurrent use.
//
// Hub, TransferBufferMinutes and the balanced-score weights are long-standing
// business constants. They are exposed as fields so deployments can tune
// them, but the defaults must be preserved for compatible results.
type Engine struct {
	// Hub is the fixed interchange location used to compose a two-leg
	// route when no direct segment exists.
	Hub string

	// TransferBufferMinutes is added to the total duration of every
	// hub-composed route to cover the interchange wait.
	TransferBufferMinutes int

	// BalancedPriceUnit and BalancedTimeUnit define the balanced score
	// price/priceUnit + minutes/timeUnit: with the defaults, $100 of fare
	// weighs the same as one hour of travel.
	BalancedPriceUnit float64
	BalancedTimeUnit  float64
}

// DefaultEngine returns an engine with the compatible defaults:
// hub Malé, 120-minute interchange buffer, $100 ≈ 1h balanced weighting.
func DefaultEngine() Engine {
	return Engine{
		Hub:                   "Malé",
		TransferBufferMinutes: 120,
		BalancedPriceUnit:     100,
		BalancedTimeUnit:      60,
	}
}
