package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLCache_SetGet(t *testing.T) {
	cache := NewTTLCache()

	cache.Set("k", "v", time.Minute)
	value, ok := cache.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", value)

	_, ok = cache.Get("missing")
	assert.False(t, ok)
}

func TestTTLCache_Expiry(t *testing.T) {
	cache := NewTTLCache()

	cache.Set("k", "v", -time.Second)
	_, ok := cache.Get("k")
	assert.False(t, ok)

	// Still resident until swept.
	assert.Equal(t, 1, cache.Len())
	assert.Equal(t, 1, cache.Sweep())
	assert.Equal(t, 0, cache.Len())
}

func TestTTLCache_SweepKeepsLiveEntries(t *testing.T) {
	cache := NewTTLCache()

	cache.Set("live", 1, time.Minute)
	cache.Set("dead", 2, -time.Second)

	assert.Equal(t, 1, cache.Sweep())
	value, ok := cache.Get("live")
	assert.True(t, ok)
	assert.Equal(t, 1, value)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "go-for-beginners", Slugify("Go for Beginners"))
	assert.Equal(t, "c-programming-101", Slugify("  C++ Programming 101! "))
	assert.Equal(t, "", Slugify("!!!"))
}
