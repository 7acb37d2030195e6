package validators_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sundaydevr/astral-databank-core/pkg/ledger/models"
	"github.com/sundaydevr/astral-databank-core/pkg/ledger/validators"
)

func TestLimits_TextFields(t *testing.T) {
	l := validators.DefaultLimits

	assert.True(t, l.Label("a"))
	assert.True(t, l.Label(strings.Repeat("x", 50)))
	assert.False(t, l.Label(""))
	assert.False(t, l.Label(strings.Repeat("x", 51)))

	assert.True(t, l.Hash(strings.Repeat("h", 64)))
	assert.False(t, l.Hash(strings.Repeat("h", 63)))
	assert.False(t, l.Hash(strings.Repeat("h", 65)))

	assert.True(t, l.Content(strings.Repeat("c", 200)))
	assert.False(t, l.Content(""))
	assert.False(t, l.Content(strings.Repeat("c", 201)))

	assert.True(t, l.Category(strings.Repeat("k", 20)))
	assert.False(t, l.Category(strings.Repeat("k", 21)))
}

func TestLimits_Tags(t *testing.T) {
	l := validators.DefaultLimits

	assert.True(t, l.TagShape([]string{"one"}))
	assert.True(t, l.TagShape([]string{"1", "2", "3", "4", "5"}))
	assert.False(t, l.TagShape(nil))
	assert.False(t, l.TagShape([]string{"1", "2", "3", "4", "5", "6"}))

	assert.True(t, l.TagElements([]string{strings.Repeat("t", 30)}))
	assert.False(t, l.TagElements([]string{""}))
	assert.False(t, l.TagElements([]string{"ok", strings.Repeat("t", 31)}))
}

func TestLimits_Duration(t *testing.T) {
	l := validators.DefaultLimits

	assert.False(t, l.Duration(0))
	assert.True(t, l.Duration(1))
	assert.True(t, l.Duration(52560))
	assert.False(t, l.Duration(52561))
}

func TestTier(t *testing.T) {
	assert.True(t, validators.Tier(models.TierViewer))
	assert.True(t, validators.Tier(models.TierEditor))
	assert.True(t, validators.Tier(models.TierManager))
	assert.False(t, validators.Tier(models.GrantTier("root")))
	assert.False(t, validators.Tier(models.GrantTier("")))
}

func TestGrantee(t *testing.T) {
	assert.True(t, validators.Grantee("alice", "bob"))
	assert.False(t, validators.Grantee("alice", "alice"))
	assert.False(t, validators.Grantee("alice", ""))
}
