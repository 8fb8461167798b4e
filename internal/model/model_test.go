package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwolf76/gnuSMV/internal/expr"
	"github.com/mwolf76/gnuSMV/internal/typesys"
)

func TestModuleAccumulatesDeclarationsInOrder(t *testing.T) {
	em := expr.New()
	tm := typesys.New()

	m := NewModule("counter")
	m.AddVariable("x", tm.FindUnsigned(1))
	m.AddVariable("y", tm.FindBoolean())

	assert.Equal(t, "counter", m.Name())

	vars := m.Variables()
	require.Len(t, vars, 2)
	gotNames := []string{vars[0].Name, vars[1].Name}
	if diff := cmp.Diff([]string{"x", "y"}, gotNames); diff != "" {
		t.Errorf("Variables() order mismatch (-want +got):\n%s", diff)
	}

	initExpr := em.MakeTrue()
	m.AddInit(initExpr)
	require.Len(t, m.InitList(), 1)
	assert.Same(t, initExpr, m.InitList()[0])

	assert.Empty(t, m.TransList(), "expected TRANS to start empty until explicitly added")
	assert.Empty(t, m.InvarList(), "expected INVAR to start empty until explicitly added")
}

func TestModelPreservesInsertionOrderAndOverwritesByName(t *testing.T) {
	mm := NewModel()
	a := NewModule("a")
	b := NewModule("b")
	mm.AddModule(a)
	mm.AddModule(b)

	mods := mm.Modules()
	require.Len(t, mods, 2)
	if diff := cmp.Diff([]string{"a", "b"}, []string{mods[0].Name(), mods[1].Name()}); diff != "" {
		t.Errorf("Modules() order mismatch (-want +got):\n%s", diff)
	}

	// Re-adding "a" overwrites its entry but keeps its original position.
	a2 := NewModule("a")
	a2.AddVariable("z", nil)
	mm.AddModule(a2)

	mods = mm.Modules()
	require.Len(t, mods, 2)
	assert.Equal(t, "a", mods[0].Name())
	assert.Len(t, mods[0].Variables(), 1, "expected re-adding %q to overwrite in place", "a")

	_, ok := mm.Module("missing")
	assert.False(t, ok, "expected lookup of an unregistered module to report not-found")

	got, ok := mm.Module("b")
	assert.True(t, ok, "expected lookup of a registered module to succeed")
	assert.Equal(t, "b", got.Name())
}
