package adversarial

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
)

// textbookTree is the three-way minimax example: the root's actions lead
// to adversary nodes worth min(3, 12, 8), min(2, 4, 6) and min(14, 5, 2).
func textbookTree() *treeGame {
	return node(2,
		node(2, leaf(2, 3), leaf(2, 12), leaf(2, 8)),
		node(2, leaf(2, 2), leaf(2, 4), leaf(2, 6)),
		node(2, leaf(2, 14), leaf(2, 5), leaf(2, 2)),
	)
}

// pursuitTree models a single ghost that can force a loss within two plies
// if agent 0 takes action 0, while action 1 is safe but unrewarding.
func pursuitTree() *treeGame {
	trap := func() *treeGame {
		lost := &treeGame{numAgents: 2, value: -500, lose: true}
		return node(2, node(2, lost, leaf(2, 1000)))
	}

	danger := node(2, trap(), trap())
	safe := node(2, node(2, node(2, leaf(2, -2), leaf(2, -2))))
	return node(2, danger, safe)
}

func uniformTree(numAgents, branching, height int, leafValue, interiorValue float64) *treeGame {
	if height == 0 {
		return leaf(numAgents, leafValue)
	}

	children := make([]*treeGame, branching)
	for i := range children {
		children[i] = uniformTree(numAgents, branching, height-1, leafValue, interiorValue)
	}
	return &treeGame{numAgents: numAgents, value: interiorValue, children: children}
}

func params(depth int) Params[int] {
	return Params[int]{Depth: depth, Evaluation: evaluateTree}
}

func TestMinimax_TextbookTree(t *testing.T) {
	m := NewMinimax(params(1))
	action, ok := m.GetAction(textbookTree())
	if !ok || action != 0 {
		t.Errorf("expected action 0, got %v (ok=%v)", action, ok)
	}

	if v := m.Value(textbookTree()); v != 3 {
		t.Errorf("expected value %v, got %v", 3, v)
	}

	if m.Stats().Evaluated != 9 {
		t.Errorf("expected %d evaluations, got %d", 9, m.Stats().Evaluated)
	}
}

func TestAlphaBeta_TextbookTree(t *testing.T) {
	ab := NewAlphaBeta(params(1))
	action, ok := ab.GetAction(textbookTree())
	if !ok || action != 0 {
		t.Errorf("expected action 0, got %v (ok=%v)", action, ok)
	}

	// The second adversary node is cut off after its first child.
	if ab.Stats().Evaluated != 7 {
		t.Errorf("expected %d evaluations, got %d", 7, ab.Stats().Evaluated)
	}

	if v := ab.Value(textbookTree()); v != 3 {
		t.Errorf("expected value %v, got %v", 3, v)
	}
}

func TestSafeActionAgainstPursuer(t *testing.T) {
	for _, kind := range []Kind{MinimaxKind, AlphaBetaKind} {
		agent := New(kind, params(2))
		action, ok := agent.GetAction(pursuitTree())
		if !ok || action != 1 {
			t.Errorf("%v: expected safe action 1, got %v (ok=%v)", kind, action, ok)
		}
	}

	// A uniformly random pursuer only catches agent 0 half the time,
	// which is worth the risk.
	e := NewExpectimax(params(2))
	if action, _ := e.GetAction(pursuitTree()); action != 0 {
		t.Errorf("expectimax: expected risky action 0, got %v", action)
	}

	if v := e.Value(pursuitTree()); v != 250 {
		t.Errorf("expectimax: expected value %v, got %v", 250, v)
	}
}

func TestAlphaBetaMatchesMinimax(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		numAgents := 1 + rng.Intn(4)
		depth := 1 + rng.Intn(6/numAgents)
		treeDepth := depth
		if rng.Intn(3) == 0 {
			treeDepth++ // Cut off by the depth budget.
		}
		root := randomTree(rng, numAgents, treeDepth*numAgents)

		m := NewMinimax(params(depth))
		ab := NewAlphaBeta(params(depth))
		mAction, mOK := m.GetAction(root)
		abAction, abOK := ab.GetAction(root)
		if mAction != abAction || mOK != abOK {
			t.Errorf("tree %d (agents=%d, depth=%d): minimax chose %v, alpha-beta chose %v",
				i, numAgents, depth, mAction, abAction)
		}

		if mv, abv := m.Value(root), ab.Value(root); mv != abv {
			t.Errorf("tree %d: minimax value %v, alpha-beta value %v", i, mv, abv)
		}

		if ab.Stats().Evaluated > m.Stats().Evaluated {
			t.Errorf("tree %d: alpha-beta evaluated %d states, minimax only %d",
				i, ab.Stats().Evaluated, m.Stats().Evaluated)
		}
	}
}

func TestExpectimax_ChanceNodeIsMean(t *testing.T) {
	root := node(2, node(2, leaf(2, 1), leaf(2, 2), leaf(2, 6)))

	if v := NewExpectimax(params(1)).Value(root); v != 3 {
		t.Errorf("expected mean %v, got %v", 3, v)
	}

	if v := NewMinimax(params(1)).Value(root); v != 1 {
		t.Errorf("expected minimum %v, got %v", 1, v)
	}
}

func TestExpectimax_EveryAdversaryAverages(t *testing.T) {
	root := node(3,
		node(3,
			node(3, leaf(3, 0), leaf(3, 6)),
			node(3, leaf(3, 3)),
		),
	)

	if v := NewExpectimax(params(1)).Value(root); v != 3 {
		t.Errorf("expected %v, got %v", 3, v)
	}
}

func TestDepthCountsFullRounds(t *testing.T) {
	for numAgents := 1; numAgents <= 4; numAgents++ {
		for depth := 1; depth <= 2; depth++ {
			// Interior states are worth 100 and states at the depth limit 1.
			// A deeper tree would be evaluated at interior states.
			root := uniformTree(numAgents, 2, depth*numAgents, 1, 100)
			for _, kind := range []Kind{MinimaxKind, AlphaBetaKind, ExpectimaxKind} {
				agent := New(kind, params(depth))
				if v := agent.(interface{ Value(GameState[int]) float64 }).Value(root); v != 1 {
					t.Errorf("%v (agents=%d, depth=%d): expected value 1, got %v",
						kind, numAgents, depth, v)
				}
			}

			deeper := uniformTree(numAgents, 2, (depth+1)*numAgents, 1, 100)
			if v := NewMinimax(params(depth)).Value(deeper); v != 100 {
				t.Errorf("minimax (agents=%d, depth=%d): expected cutoff value 100, got %v",
					numAgents, depth, v)
			}
		}
	}
}

func TestTerminalStopsMidRound(t *testing.T) {
	won := &treeGame{numAgents: 3, value: 42, win: true}
	root := node(3, node(3, won))

	m := NewMinimax(params(3))
	if v := m.Value(root); v != 42 {
		t.Errorf("expected %v, got %v", 42, v)
	}

	if m.Stats().Evaluated != 1 {
		t.Errorf("expected %d evaluation, got %d", 1, m.Stats().Evaluated)
	}
}

func TestTiesPreferFirstAction(t *testing.T) {
	root := node(2,
		node(2, leaf(2, 5)),
		node(2, leaf(2, 5)),
		node(2, leaf(2, 5)),
	)

	for _, kind := range []Kind{MinimaxKind, AlphaBetaKind, ExpectimaxKind} {
		if action, _ := New(kind, params(1)).GetAction(root); action != 0 {
			t.Errorf("%v: expected first action, got %v", kind, action)
		}
	}
}

func TestNoLegalActions(t *testing.T) {
	root := leaf(2, 7)
	for _, kind := range []Kind{MinimaxKind, AlphaBetaKind, ExpectimaxKind} {
		if _, ok := New(kind, params(2)).GetAction(root); ok {
			t.Errorf("%v: expected no action", kind)
		}
	}
}

func TestReflex(t *testing.T) {
	root := node(2, leaf(2, 1), leaf(2, 9), leaf(2, 4), leaf(2, 9))
	score := func(state GameState[int], action int) float64 {
		return evaluateTree(state.GenerateSuccessor(0, action))
	}

	if action, _ := NewReflex(score, nil).GetAction(root); action != 1 {
		t.Errorf("expected first best action 1, got %v", action)
	}

	r := NewReflex(score, rand.New(rand.NewSource(1)))
	seen := make(map[int]bool)
	for i := 0; i < 100; i++ {
		action, ok := r.GetAction(root)
		if !ok {
			t.Fatal("expected an action")
		}
		seen[action] = true
	}

	if len(seen) != 2 || !seen[1] || !seen[3] {
		t.Errorf("expected random ties between actions 1 and 3, got %v", seen)
	}
}

func TestParseKind(t *testing.T) {
	for _, kind := range []Kind{MinimaxKind, AlphaBetaKind, ExpectimaxKind} {
		parsed, err := ParseKind(kind.String())
		if err != nil || parsed != kind {
			t.Errorf("expected %v, got %v (err=%v)", kind, parsed, err)
		}
	}

	if _, err := ParseKind("montecarlo"); errors.Cause(err) != ErrUnknownAgent {
		t.Errorf("expected ErrUnknownAgent, got %v", err)
	}
}

func TestMissingEvaluationPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()

	NewMinimax(Params[int]{Depth: 2})
}

func BenchmarkMinimax(b *testing.B) {
	root := randomTree(rand.New(rand.NewSource(7)), 3, 9)
	m := NewMinimax(params(3))
	for i := 0; i < b.N; i++ {
		m.GetAction(root)
	}
}

func BenchmarkAlphaBeta(b *testing.B) {
	root := randomTree(rand.New(rand.NewSource(7)), 3, 9)
	ab := NewAlphaBeta(params(3))
	for i := 0; i < b.N; i++ {
		ab.GetAction(root)
	}
}
