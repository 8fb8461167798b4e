package reach

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwolf76/gnuSMV/internal/expr"
)

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		Forward:  "forward",
		Backward: "backward",
		Combined: "combined",
		Kind(99): "unknown",
	}
	for k, want := range cases {
		assert.Equal(t, want, k.String())
	}
}

func TestConjunctionOfEmptyListIsTrue(t *testing.T) {
	em := expr.New()
	assert.Same(t, em.MakeTrue(), conjunction(em, nil), "expected conjunction of an empty list to be the TRUE singleton")
}

func TestConjunctionOfSingleNodeIsThatNode(t *testing.T) {
	em := expr.New()
	a := em.MakeIdentifier("a")
	assert.Same(t, a, conjunction(em, []*expr.Node{a}), "expected conjunction of a single node to return it unwrapped")
}

func TestConjunctionFoldsLeftToRightWithAND(t *testing.T) {
	em := expr.New()
	a := em.MakeIdentifier("a")
	b := em.MakeIdentifier("b")
	c := em.MakeIdentifier("c")

	got := conjunction(em, []*expr.Node{a, b, c})
	want := em.MakeBinary(expr.AND, em.MakeBinary(expr.AND, a, b), c)
	assert.Same(t, want, got, "expected conjunction to fold left-associatively through AND")
}

func TestConcatFlattensInOrder(t *testing.T) {
	em := expr.New()
	a := em.MakeIdentifier("a")
	b := em.MakeIdentifier("b")
	c := em.MakeIdentifier("c")

	got := concat([]*expr.Node{a}, nil, []*expr.Node{b, c})
	require.Len(t, got, 3)
	assert.Equal(t, []*expr.Node{a, b, c}, got)
}

func TestSharedStatusTrySetIsSetOnce(t *testing.T) {
	s := newSharedStatus()
	require.Equal(t, StatusUnknown, s.Get(), "expected a fresh SharedStatus to start Unknown")

	require.True(t, s.TrySet(StatusReachable, nil, Forward, nil), "expected the first TrySet to win")
	assert.False(t, s.TrySet(StatusUnreachable, nil, Backward, nil), "expected a second TrySet to lose once the cell is no longer Unknown")

	st, _, by, _ := s.snapshot()
	assert.Equal(t, StatusReachable, st)
	assert.Equal(t, Forward, by)
}

func TestSharedStatusConcurrentTrySetHasExactlyOneWinner(t *testing.T) {
	s := newSharedStatus()
	done := make(chan bool, 2)
	go func() { done <- s.TrySet(StatusReachable, nil, Forward, nil) }()
	go func() { done <- s.TrySet(StatusUnreachable, nil, Backward, nil) }()

	w1, w2 := <-done, <-done
	assert.NotEqual(t, w1, w2, "expected exactly one of two concurrent TrySet calls to win")
	assert.NotEqual(t, StatusUnknown, s.Get(), "expected status to be decided after both goroutines finish")
}
