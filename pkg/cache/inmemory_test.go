package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInMemorySetGet(t *testing.T) {
	c := NewInMemory[string]()

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("key", "value", time.Minute)
	got, ok := c.Get("key")
	assert.True(t, ok)
	assert.Equal(t, "value", got)
}

func TestInMemoryOverwrite(t *testing.T) {
	c := NewInMemory[int]()

	c.Set("key", 1, time.Minute)
	c.Set("key", 2, time.Minute)

	got, ok := c.Get("key")
	assert.True(t, ok)
	assert.Equal(t, 2, got)
}

func TestInMemoryStructValues(t *testing.T) {
	type movie struct {
		Title string
		Year  int
	}

	c := NewInMemory[movie]()
	c.Set("key", movie{Title: "Jaws", Year: 1975}, time.Minute)

	got, ok := c.Get("key")
	assert.True(t, ok)
	assert.Equal(t, movie{Title: "Jaws", Year: 1975}, got)
}
