package services

import (
	"math/rand"
	"sync"
	"time"
)

// ChargeResult is the gateway's answer for one charge attempt.
type ChargeResult struct {
	Succeeded bool
	Reference string
}

// PaymentGateway decides the outcome of a charge. The production
// implementation would call out to a real provider; the simulated one
// stands in until a gateway integration exists.
type PaymentGateway interface {
	Charge(reference string, amount float64) ChargeResult
}

// SimulatedGateway resolves charges by a weighted coin flip.
type SimulatedGateway struct {
	SuccessRate float64

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulatedGateway returns a gateway that approves ~90% of charges.
func NewSimulatedGateway() *SimulatedGateway {
	return &SimulatedGateway{
		SuccessRate: 0.9,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (g *SimulatedGateway) Charge(reference string, amount float64) ChargeResult {
	g.mu.Lock()
	roll := g.rng.Float64()
	g.mu.Unlock()

	return ChargeResult{
		Succeeded: roll < g.SuccessRate,
		Reference: reference,
	}
}

// StaticGateway always returns the configured outcome. Used in tests
// to make payment completion deterministic.
type StaticGateway struct {
	Succeed bool
}

func (g StaticGateway) Charge(reference string, amount float64) ChargeResult {
	return ChargeResult{Succeeded: g.Succeed, Reference: reference}
}
