package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLightboxStartsClosed(t *testing.T) {
	t.Parallel()

	lb := NewLightbox()
	_, ok := lb.State()
	require.False(t, ok)

	view := lb.View()
	require.False(t, view.Visible)
	require.Empty(t, view.Dots)

	lb.Next()
	lb.SetIndex(3)
	require.False(t, lb.HandleKey(KeyArrowRight), "keys are ignored while hidden")
	_, ok = lb.State()
	require.False(t, ok)
}

func TestLightboxOpenCopiesList(t *testing.T) {
	t.Parallel()

	lb := NewLightbox()
	list := []string{"a", "b"}
	require.True(t, lb.Open(list, 1))
	list[0] = "mutated"

	state, ok := lb.State()
	require.True(t, ok)
	require.Equal(t, []string{"a", "b"}, state.List)
	require.Equal(t, 1, state.Index)

	view := lb.View()
	require.True(t, view.Visible)
	require.Equal(t, "b", view.Src)
	require.Len(t, view.Dots, 2)
	require.True(t, view.Dots[1].Active)
	require.False(t, view.Dots[0].Active)
}

func TestLightboxOpenWrapsIndexAndRejectsEmpty(t *testing.T) {
	t.Parallel()

	lb := NewLightbox()
	require.False(t, lb.Open(nil, 0))
	_, ok := lb.State()
	require.False(t, ok)

	require.True(t, lb.Open([]string{"a", "b", "c"}, -1))
	state, _ := lb.State()
	require.Equal(t, 2, state.Index)
}

func TestLightboxNavigationAndKeys(t *testing.T) {
	t.Parallel()

	lb := NewLightbox()
	lb.Open([]string{"a", "b", "c"}, 0)

	require.True(t, lb.HandleKey(KeyArrowLeft))
	state, _ := lb.State()
	require.Equal(t, 2, state.Index)

	require.True(t, lb.HandleKey(KeyArrowRight))
	state, _ = lb.State()
	require.Equal(t, 0, state.Index)

	lb.SetIndex(4)
	state, _ = lb.State()
	require.Equal(t, 1, state.Index)

	lb.Prev()
	lb.Prev()
	state, _ = lb.State()
	require.Equal(t, 2, state.Index)

	require.False(t, lb.HandleKey("Enter"))

	require.True(t, lb.HandleKey(KeyEscape))
	_, ok := lb.State()
	require.False(t, ok)
}

func TestLightboxClickTargets(t *testing.T) {
	t.Parallel()

	lb := NewLightbox()
	lb.Open([]string{"a"}, 0)

	lb.Click(TargetImage)
	_, ok := lb.State()
	require.True(t, ok, "clicking the image keeps the overlay open")

	lb.Click(TargetOverlay)
	_, ok = lb.State()
	require.False(t, ok)
}

func TestLightboxReopenReplacesSession(t *testing.T) {
	t.Parallel()

	lb := NewLightbox()
	lb.Open([]string{"a", "b"}, 1)
	lb.Open([]string{"x", "y", "z"}, 0)

	state, ok := lb.State()
	require.True(t, ok)
	require.Equal(t, []string{"x", "y", "z"}, state.List)
	require.Equal(t, 0, state.Index)

	lb.Close()
	lb.Close()
	require.False(t, lb.View().Visible)
}
