package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "analytics:acct-1:summary:last30d", Key("acct-1", "summary", "last30d"))
	assert.Equal(t, "analytics:acct-1:risk:all", Key("acct-1", "risk", ""))
	assert.Equal(t, "analytics:acct-2:buckets-hour:all", Key("acct-2", "buckets-hour", "all"))
}
