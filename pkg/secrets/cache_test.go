package secrets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_PutGet(t *testing.T) {
	c := NewCache[map[string]string](time.Minute)
	c.Put("plaid", map[string]string{"client_id": "abc"})

	got, ok := c.Get("plaid")
	assert.True(t, ok)
	assert.Equal(t, "abc", got["client_id"])
}

func TestCache_MissOnUnknownKey(t *testing.T) {
	c := NewCache[string](time.Minute)
	_, ok := c.Get("nope")
	assert.False(t, ok)
}

func TestCache_Expiry(t *testing.T) {
	c := NewCache[string](10 * time.Millisecond)
	c.Put("k", "v")

	time.Sleep(25 * time.Millisecond)
	_, ok := c.Get("k")
	assert.False(t, ok, "expired entry must miss")
}

func TestCache_Bust(t *testing.T) {
	c := NewCache[string](time.Minute)
	c.Put("k", "v")
	c.Bust("k")

	_, ok := c.Get("k")
	assert.False(t, ok)
}
