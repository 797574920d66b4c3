package colors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForDescription(t *testing.T) {
	t.Run("keyword match", func(t *testing.T) {
		assert.Equal(t, "dark", ForDescription("a Dark gaming community hub").Name)
		assert.Equal(t, "green", ForDescription("an eco-friendly garden shop").Name)
		assert.Equal(t, "navy", ForDescription("a corporate law firm").Name)
	})

	t.Run("first matching rule wins", func(t *testing.T) {
		// "dark" rule precedes "nature" in the table.
		assert.Equal(t, "dark", ForDescription("a dark nature photography site").Name)
	})

	t.Run("no match falls back to default", func(t *testing.T) {
		got := ForDescription("an online store")
		assert.Equal(t, Default(), got)
		assert.NotEmpty(t, got.Primary)
		assert.NotEmpty(t, got.Background)
	})
}
