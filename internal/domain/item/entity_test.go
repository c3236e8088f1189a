//go:build unit

package item_test

import (
	"strings"
	"testing"

	"shareit/internal/domain/item"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	cases := []struct {
		name        string
		itemName    string
		description string
		errIs       error
	}{
		{name: "valid item OK", itemName: "Drill", description: "Cordless drill"},
		{name: "name at limit OK", itemName: strings.Repeat("a", 255), description: "d"},
		{name: "blank name NG", itemName: "  ", description: "d", errIs: item.ErrEmptyName},
		{name: "name too long NG", itemName: strings.Repeat("a", 256), description: "d", errIs: item.ErrNameTooLong},
		{name: "blank description NG", itemName: "Drill", description: "", errIs: item.ErrEmptyDescription},
		{name: "description too long NG", itemName: "Drill", description: strings.Repeat("a", 1001), errIs: item.ErrDescriptionTooLong},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			it, err := item.NewItem(c.itemName, c.description, true, 1, nil)
			if c.errIs == nil {
				require.NoError(t, err)
				assert.True(t, it.Available())
				assert.True(t, it.IsOwnedBy(1))
			} else {
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}

func TestItemPatch(t *testing.T) {
	strPtr := func(s string) *string { return &s }
	boolPtr := func(b bool) *bool { return &b }

	t.Run("nil fields are untouched", func(t *testing.T) {
		it := item.Reconstruct(1, "Drill", "Cordless drill", true, 1, nil)
		require.NoError(t, it.Patch(nil, nil, nil, nil))
		assert.Equal(t, "Drill", it.Name())
		assert.Equal(t, "Cordless drill", it.Description())
		assert.True(t, it.Available())
	})

	t.Run("partial update", func(t *testing.T) {
		it := item.Reconstruct(1, "Drill", "Cordless drill", true, 1, nil)
		require.NoError(t, it.Patch(strPtr("Hammer"), nil, boolPtr(false), nil))
		assert.Equal(t, "Hammer", it.Name())
		assert.Equal(t, "Cordless drill", it.Description())
		assert.False(t, it.Available())
	})

	t.Run("invalid patch leaves item unchanged", func(t *testing.T) {
		it := item.Reconstruct(1, "Drill", "Cordless drill", true, 1, nil)
		require.ErrorIs(t, it.Patch(strPtr("  "), nil, nil, nil), item.ErrEmptyName)
		assert.Equal(t, "Drill", it.Name())
	})
}

func TestItemMatchesText(t *testing.T) {
	it := item.Reconstruct(1, "Power Drill", "Makes holes in WALLS", true, 1, nil)

	assert.True(t, it.MatchesText("drill"))
	assert.True(t, it.MatchesText("walls"))
	assert.True(t, it.MatchesText("power d"))
	assert.False(t, it.MatchesText("saw"))
}
