package landmarkid_test

import (
	"testing"

	"github.com/hugohadfield/locomapper-agent/pkg/landmarkid"
	"github.com/stretchr/testify/assert"
)

// TestFromNetwork_KnownDigest pins the identifier derivation so persisted
// stores keep resolving after upgrades.
func TestFromNetwork_KnownDigest(t *testing.T) {
	id := landmarkid.FromNetwork("HomeNetwork", "00:14:22:01:23:45")
	assert.Equal(t, "cf7979b5e0d3a2b965c9e6824bb44c9d", id)
}

// TestFromNetwork_Stable tests that the same network always maps to the same
// identifier and different networks to different ones.
func TestFromNetwork_Stable(t *testing.T) {
	a := landmarkid.FromNetwork("HomeNetwork", "00:14:22:01:23:45")
	b := landmarkid.FromNetwork("HomeNetwork", "00:14:22:01:23:45")
	c := landmarkid.FromNetwork("OtherNetwork", "00:14:22:01:23:45")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
