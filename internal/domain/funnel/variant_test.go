package funnel

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVariantFor_Deterministico(t *testing.T) {
	for _, seed := range []string{"", "abc", "9b2d8e1a-0f4c-4b7e-9c6d-2a1b3c4d5e6f"} {
		assert.Equal(t, VariantFor(seed), VariantFor(seed), "semente %q", seed)
	}
}

func TestVariantFor_DistribuiOsDoisBracos(t *testing.T) {
	counts := map[Variant]int{}
	for i := 0; i < 200; i++ {
		counts[VariantFor(fmt.Sprintf("session-%d", i))]++
	}

	assert.Greater(t, counts[VariantA], 0)
	assert.Greater(t, counts[VariantB], 0)
	assert.Equal(t, 200, counts[VariantA]+counts[VariantB])
}

func TestParseVariant(t *testing.T) {
	v, ok := ParseVariant("A")
	assert.True(t, ok)
	assert.Equal(t, VariantA, v)

	v, ok = ParseVariant("B")
	assert.True(t, ok)
	assert.Equal(t, VariantB, v)

	for _, in := range []string{"", "a", "C", "AB"} {
		_, ok := ParseVariant(in)
		assert.False(t, ok, in)
	}
}

func TestNewEvent(t *testing.T) {
	e := NewEvent("sess-1", EventQuizStep, 4, map[string]string{"to": "6"})
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "sess-1", e.SessionID)
	assert.Equal(t, EventQuizStep, e.Name)
	assert.Equal(t, 4, e.Step)
	assert.Equal(t, "6", e.Props["to"])
	assert.False(t, e.CreatedAt.IsZero())
}
