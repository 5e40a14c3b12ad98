package adversarial

import (
	"fmt"
	"math/rand"

	"github.com/timpalpant/go-search/internal/f64"
)

// ActionEvaluationFunc scores taking action in state for agent 0.
type ActionEvaluationFunc[A any] func(state GameState[A], action A) float64

// Reflex chooses the action with the best immediate score, without
// looking ahead at the adversaries' replies.
type Reflex[A any] struct {
	evaluate ActionEvaluationFunc[A]
	rng      *rand.Rand
	stats    Stats
}

var _ Agent[int] = &Reflex[int]{}

// NewReflex returns a new reflex agent. Ties between equally scored actions
// are broken uniformly at random using rng; if rng is nil the first best
// action is chosen.
func NewReflex[A any](evaluate ActionEvaluationFunc[A], rng *rand.Rand) *Reflex[A] {
	if evaluate == nil {
		panic(fmt.Errorf("reflex agent requires an evaluation function"))
	}

	return &Reflex[A]{evaluate: evaluate, rng: rng}
}

// GetAction implements Agent.
func (r *Reflex[A]) GetAction(state GameState[A]) (action A, ok bool) {
	r.stats = Stats{}
	actions := state.LegalActions(0)
	if len(actions) == 0 {
		return action, false
	}

	r.stats.Expanded++
	scores := make([]float64, len(actions))
	for i, a := range actions {
		scores[i] = r.evaluate(state, a)
		r.stats.Evaluated++
	}

	bestScore := scores[f64.ArgMax(scores)]
	var best []int
	for i, s := range scores {
		if s == bestScore {
			best = append(best, i)
		}
	}

	chosen := best[0]
	if r.rng != nil {
		chosen = best[r.rng.Intn(len(best))]
	}

	return actions[chosen], true
}

// Stats implements Agent.
func (r *Reflex[A]) Stats() Stats {
	return r.stats
}
