package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStep(t *testing.T) {
	items := []Product{
		{ID: "1", Name: "Prato raso", Category: "pratos", ImageURL: "p.jpg"},
		{ID: "2", Name: "Prato fundo", Category: "Pratos"},
		{ID: "3", Name: "Vaso", Category: "Vasos"},
	}

	step, ok := Step(0, items)
	require.True(t, ok)
	assert.Equal(t, 1, step.Number)
	assert.Equal(t, len(PartySteps), step.Total)
	assert.Equal(t, "Pratos", step.Category)
	assert.Equal(t, "Suportes", step.Next)
	assert.False(t, step.Last)
	require.Len(t, step.Items, 2)
	assert.Equal(t, "p.jpg", step.Items[0].ImageURL)
	assert.Equal(t, PlaceholderImage(ImageWizard), step.Items[1].ImageURL)
	assert.Empty(t, items[1].ImageURL)

	last, ok := Step(len(PartySteps)-1, items)
	require.True(t, ok)
	assert.True(t, last.Last)
	assert.Equal(t, "Finalizar", last.Next)
	assert.Equal(t, float64(100), last.Progress)
	assert.NotNil(t, last.Items)
	assert.Empty(t, last.Items)

	_, ok = Step(-1, items)
	assert.False(t, ok)
	_, ok = Step(len(PartySteps), items)
	assert.False(t, ok)
}
