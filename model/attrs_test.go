package model_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Marohn-Group/mrfmsim-yaml/model"
)

func TestAttrs_Order(t *testing.T) {
	t.Parallel()
	a := model.NewAttrs()
	a.Set("c", 3).Set("a", 1).Set("b", 2)

	require.Equal(t, []string{"c", "a", "b"}, a.Keys())
	require.Equal(t, []model.KV{
		{Key: "c", Value: 3},
		{Key: "a", Value: 1},
		{Key: "b", Value: 2},
	}, a.Items())
}

func TestAttrs_OverwriteKeepsPosition(t *testing.T) {
	t.Parallel()
	a := model.AttrsOf(
		model.KV{Key: "x", Value: 1},
		model.KV{Key: "y", Value: 2},
	)
	a.Set("x", 10)

	require.Equal(t, []string{"x", "y"}, a.Keys())
	v, ok := a.Get("x")
	require.True(t, ok)
	require.Equal(t, 10, v)
}

func TestAttrs_Pop(t *testing.T) {
	t.Parallel()
	a := model.AttrsOf(
		model.KV{Key: "x", Value: 1},
		model.KV{Key: "y", Value: 2},
		model.KV{Key: "z", Value: 3},
	)

	v, ok := a.Pop("y")
	require.True(t, ok)
	require.Equal(t, 2, v)
	require.Equal(t, []string{"x", "z"}, a.Keys())

	_, ok = a.Pop("y")
	require.False(t, ok)
}

func TestAttrs_NilSafe(t *testing.T) {
	t.Parallel()
	var a *model.Attrs

	require.Equal(t, 0, a.Len())
	require.Nil(t, a.Keys())
	require.Nil(t, a.Items())
	_, ok := a.Get("x")
	require.False(t, ok)
	_, ok = a.Pop("x")
	require.False(t, ok)
}
