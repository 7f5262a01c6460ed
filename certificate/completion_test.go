package certificate

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func outlineOf(sizes ...int) Outline {
	var o Outline
	id := 0
	for s, n := range sizes {
		sec := Section{Title: fmt.Sprintf("s%d", s)}
		for i := 0; i < n; i++ {
			id++
			sec.Items = append(sec.Items, strconv.Itoa(id))
		}
		o.Sections = append(o.Sections, sec)
	}
	return o
}

func TestOutlineFlatten(t *testing.T) {
	o := outlineOf(2, 0, 3)

	assert.Equal(t, 5, o.ItemCount())
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, o.Flatten())
	assert.Empty(t, Outline{}.Flatten())
}

func TestEvaluateMissingProgress(t *testing.T) {
	err := Evaluate(outlineOf(1), nil)
	require.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, ErrNoProgress)
	assert.NotErrorIs(t, err, ErrIncomplete)
}

func TestEvaluateGate(t *testing.T) {
	for n := 1; n <= 6; n++ {
		o := outlineOf(n/2, n-n/2)
		items := o.Flatten()
		for done := 0; done < n; done++ {
			err := Evaluate(o, &Progress{CompletedItems: items[:done]})
			assert.ErrorIs(t, err, ErrIncomplete, "n=%d done=%d", n, done)
		}
		assert.NoError(t, Evaluate(o, &Progress{CompletedItems: items}), "n=%d", n)
	}
}

func TestEvaluateCountsOnly(t *testing.T) {
	// Identifiers outside the outline still count toward completion.
	o := outlineOf(2)
	err := Evaluate(o, &Progress{CompletedItems: []string{"x", "y"}})
	assert.NoError(t, err)
}

func TestEvaluateEmptyCourse(t *testing.T) {
	assert.NoError(t, Evaluate(Outline{}, &Progress{}))
}
