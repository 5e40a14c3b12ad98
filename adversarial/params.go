package adversarial

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Params configure a depth-limited game-tree search.
type Params[A any] struct {
	// Depth is the number of plies (full rounds of moves) to search.
	Depth int
	// Evaluation scores states at the depth limit and terminal states.
	Evaluation EvaluationFunc[A]
}

func (p Params[A]) mustValidate() {
	if p.Evaluation == nil {
		panic(fmt.Errorf("adversarial search requires an evaluation function"))
	}

	if p.Depth < 0 {
		panic(fmt.Errorf("adversarial search depth must be non-negative, got %d", p.Depth))
	}
}

// NextTurn returns the agent to move after agent, and the remaining depth.
// The depth decreases only when play returns to agent 0.
func NextTurn(agent, depth, numAgents int) (nextAgent, nextDepth int) {
	nextAgent = (agent + 1) % numAgents
	nextDepth = depth
	if nextAgent == 0 {
		nextDepth--
	}

	return nextAgent, nextDepth
}

// IsTerminal returns true if search must stop at state: the depth budget
// is exhausted or the game is over, whoever's turn it is.
func IsTerminal[A any](state GameState[A], depth int) bool {
	return depth <= 0 || state.IsWin() || state.IsLose()
}

// Kind names a depth-limited search agent.
type Kind int

const (
	MinimaxKind Kind = iota
	AlphaBetaKind
	ExpectimaxKind
)

var kindNames = [...]string{
	"minimax",
	"alphabeta",
	"expectimax",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}

	return kindNames[k]
}

// ErrUnknownAgent is returned by ParseKind for unrecognized agent names.
var ErrUnknownAgent = errors.New("unknown agent")

// ParseKind returns the Kind with the given name.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, k := range kindNames {
		if k == name {
			return Kind(i), nil
		}
	}

	return 0, errors.Wrapf(ErrUnknownAgent, "%q", name)
}

// New returns a new agent of the given kind.
func New[A any](kind Kind, params Params[A]) Agent[A] {
	switch kind {
	case MinimaxKind:
		return NewMinimax(params)
	case AlphaBetaKind:
		return NewAlphaBeta(params)
	case ExpectimaxKind:
		return NewExpectimax(params)
	}

	panic(fmt.Errorf("unknown agent kind: %v", kind))
}
