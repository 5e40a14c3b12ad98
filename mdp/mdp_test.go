package mdp

import (
	"fmt"
	"math"
	"testing"
)

type outcome struct {
	next   string
	prob   float64
	reward float64
}

// tableMDP is an MDP given by an explicit table of outcomes. States
// without actions are terminal.
type tableMDP struct {
	states  []string
	actions map[string][]string
	model   map[string]map[string][]outcome
}

func newTableMDP(states ...string) *tableMDP {
	return &tableMDP{
		states:  states,
		actions: make(map[string][]string),
		model:   make(map[string]map[string][]outcome),
	}
}

func (m *tableMDP) add(state, action string, outcomes ...outcome) *tableMDP {
	if m.model[state] == nil {
		m.model[state] = make(map[string][]outcome)
	}

	if _, ok := m.model[state][action]; !ok {
		m.actions[state] = append(m.actions[state], action)
	}

	m.model[state][action] = append(m.model[state][action], outcomes...)
	return m
}

func (m *tableMDP) States() []string                  { return m.states }
func (m *tableMDP) PossibleActions(s string) []string { return m.actions[s] }
func (m *tableMDP) IsTerminal(s string) bool          { return len(m.actions[s]) == 0 }

func (m *tableMDP) Transitions(s, a string) []Transition[string] {
	var result []Transition[string]
	for _, o := range m.model[s][a] {
		result = append(result, Transition[string]{State: o.next, Prob: o.prob})
	}

	return result
}

func (m *tableMDP) Reward(s, a, next string) float64 {
	for _, o := range m.model[s][a] {
		if o.next == next {
			return o.reward
		}
	}

	panic(fmt.Errorf("no transition %s -%s-> %s", s, a, next))
}

// chainMDP is a corridor s0 ... s4 where each state can advance for free
// or stay put at a cost, and the last state exits to T for a reward of 10.
func chainMDP() *tableMDP {
	m := newTableMDP("s0", "s1", "s2", "s3", "s4", "T")
	for i := 0; i < 4; i++ {
		s, next := fmt.Sprintf("s%d", i), fmt.Sprintf("s%d", i+1)
		m.add(s, "go", outcome{next, 1, 0})
		m.add(s, "stay", outcome{s, 1, -1})
	}

	m.add("s4", "exit", outcome{"T", 1, 10})
	return m
}

func assertClose(t *testing.T, name string, expected, actual float64) {
	t.Helper()
	if math.Abs(expected-actual) > 1e-9 {
		t.Errorf("%s: expected %v, got %v", name, expected, actual)
	}
}

func TestValueIteration_TwoStates(t *testing.T) {
	m := newTableMDP("A", "B").add("A", "go", outcome{"B", 1, 10})

	for iterations := 1; iterations <= 3; iterations++ {
		vi := NewValueIteration[string, string](m, 0.5, iterations)
		assertClose(t, "V(A)", 10, vi.Value("A"))
		assertClose(t, "V(B)", 0, vi.Value("B"))
	}

	vi := NewValueIteration[string, string](m, 0.5, 2)
	if a, ok := vi.Policy("A"); !ok || a != "go" {
		t.Errorf("expected go, got %q (ok=%v)", a, ok)
	}

	if _, ok := vi.Policy("B"); ok {
		t.Error("expected no action in terminal state")
	}
}

func TestValueIteration_SelfLoopConverges(t *testing.T) {
	m := newTableMDP("S").add("S", "stay", outcome{"S", 1, 1})

	prev := 0.0
	for _, iterations := range []int{1, 10, 50, 300} {
		v := NewValueIteration[string, string](m, 0.9, iterations).Value("S")
		expected := (1 - math.Pow(0.9, float64(iterations))) / 0.1
		assertClose(t, fmt.Sprintf("V(S) after %d", iterations), expected, v)
		if v < prev {
			t.Errorf("expected values to increase, got %v after %v", v, prev)
		}
		prev = v
	}

	if math.Abs(prev-10) > 1e-6 {
		t.Errorf("expected convergence to %v, got %v", 10, prev)
	}
}

func TestValueIteration_BatchUpdates(t *testing.T) {
	// States are listed so that an in-place update of s1 would be visible
	// to s0 within the same round.
	m := newTableMDP("T", "s1", "s0").
		add("s0", "go", outcome{"s1", 1, 0}).
		add("s1", "go", outcome{"T", 1, 1})

	vi := NewValueIteration[string, string](m, 1, 1)
	assertClose(t, "V(s0)", 0, vi.Value("s0"))
	assertClose(t, "V(s1)", 1, vi.Value("s1"))

	vi = NewValueIteration[string, string](m, 1, 2)
	assertClose(t, "V(s0)", 1, vi.Value("s0"))
}

func TestValueIteration_Stochastic(t *testing.T) {
	m := newTableMDP("A", "B", "C").
		add("A", "risky",
			outcome{"B", 0.8, 10},
			outcome{"C", 0.2, -10}).
		add("A", "safe", outcome{"C", 1, 4})

	vi := NewValueIteration[string, string](m, 0.9, 5)
	assertClose(t, "Q(A, risky)", 6, vi.QValue("A", "risky"))
	assertClose(t, "Q(A, safe)", 4, vi.QValue("A", "safe"))
	if a, _ := vi.Policy("A"); a != "risky" {
		t.Errorf("expected risky, got %q", a)
	}
}

func TestValueIteration_TerminalStatesAreZero(t *testing.T) {
	vi := NewValueIteration[string, string](chainMDP(), 0.9, 100)
	assertClose(t, "V(T)", 0, vi.Value("T"))

	expected := 10.0
	for i := 4; i >= 0; i-- {
		s := fmt.Sprintf("s%d", i)
		assertClose(t, fmt.Sprintf("V(%s)", s), expected, vi.Value(s))
		expected *= 0.9
	}

	values := vi.Values()
	if len(values) != 6 {
		t.Errorf("expected %d values, got %d", 6, len(values))
	}

	values["T"] = 42
	assertClose(t, "V(T) after modifying copy", 0, vi.Value("T"))
}

func TestPolicy_TiesPreferFirstAction(t *testing.T) {
	m := newTableMDP("A", "B").
		add("A", "left", outcome{"B", 1, 1}).
		add("A", "right", outcome{"B", 1, 1})

	for _, solver := range []Solver[string, string]{
		NewValueIteration[string, string](m, 0.9, 10),
		NewPrioritizedSweeping[string, string](m, 0.9, 10, 1e-5),
	} {
		if a, _ := solver.Policy("A"); a != "left" {
			t.Errorf("expected left, got %q", a)
		}
	}
}

func TestPrioritizedSweeping_MatchesValueIteration(t *testing.T) {
	m := chainMDP()
	vi := NewValueIteration[string, string](m, 0.9, 100)
	ps := NewPrioritizedSweeping[string, string](m, 0.9, 1000, 1e-9)

	for _, s := range m.States() {
		assertClose(t, fmt.Sprintf("V(%s)", s), vi.Value(s), ps.Value(s))

		viAction, viOK := vi.Policy(s)
		psAction, psOK := ps.Policy(s)
		if viAction != psAction || viOK != psOK {
			t.Errorf("%s: expected policy %q, got %q", s, viAction, psAction)
		}
	}
}

func TestPrioritizedSweeping_StopsWhenQueueEmpties(t *testing.T) {
	ps := NewPrioritizedSweeping[string, string](chainMDP(), 0.9, 1000, 1e-5)

	// Each state is updated once, from the exit backwards.
	if ps.Iterations() != 5 {
		t.Errorf("expected %d updates, got %d", 5, ps.Iterations())
	}
}

func TestPrioritizedSweeping_IterationLimit(t *testing.T) {
	ps := NewPrioritizedSweeping[string, string](chainMDP(), 0.9, 2, 1e-5)

	if ps.Iterations() != 2 {
		t.Errorf("expected %d updates, got %d", 2, ps.Iterations())
	}

	assertClose(t, "V(s4)", 10, ps.Value("s4"))
	assertClose(t, "V(s3)", 9, ps.Value("s3"))
	assertClose(t, "V(s2)", 0, ps.Value("s2"))
}

func TestPrioritizedSweeping_TerminalStatesAreZero(t *testing.T) {
	ps := NewPrioritizedSweeping[string, string](chainMDP(), 0.9, 1000, 1e-5)
	assertClose(t, "V(T)", 0, ps.Value("T"))
	if _, ok := ps.Policy("T"); ok {
		t.Error("expected no action in terminal state")
	}
}

func TestNegativeIterationsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()

	NewValueIteration[string, string](chainMDP(), 0.9, -1)
}

func BenchmarkValueIteration(b *testing.B) {
	m := chainMDP()
	for i := 0; i < b.N; i++ {
		NewValueIteration[string, string](m, 0.9, 100)
	}
}

func BenchmarkPrioritizedSweeping(b *testing.B) {
	m := chainMDP()
	for i := 0; i < b.N; i++ {
		NewPrioritizedSweeping[string, string](m, 0.9, 100, 1e-5)
	}
}
