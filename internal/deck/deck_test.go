package deck

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextID(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 1, NextID(nil))
	assert.Equal(t, 8, NextID([]UserDeck{userDeck(7), userDeck(2)}))
}

func TestFirstFreeID(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		ids  []int
		want int
	}{
		{name: "empty", want: 1},
		{name: "gap", ids: []int{1, 3}, want: 2},
		{name: "dense", ids: []int{2, 1, 3}, want: 4},
		{name: "missing one", ids: []int{2, 3}, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var decks []UserDeck
			for _, id := range tt.ids {
				decks = append(decks, userDeck(id))
			}
			assert.Equal(t, tt.want, FirstFreeID(decks))
		})
	}
}

func TestUserDeck_JSONShape(t *testing.T) {
	t.Parallel()
	d := UserDeck{Base: Base{ID: 3, Name: "n", Description: "d"}, CardIDs: []int{1, 1}, Kind: KindUser}

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"name":"n","description":"d","cardIds":[1,1],"entityType":"userDeck"}`, string(raw))
}

func TestClone_DetachesSlices(t *testing.T) {
	t.Parallel()
	d := userDeck(1, 1, 2)
	c := d.Clone()
	c.CardIDs[0] = 9
	assert.Equal(t, []int{1, 2}, d.CardIDs)
}

func TestExportText(t *testing.T) {
	t.Parallel()
	d := userDeck(1, 2, 1, 2, 9)
	d.Name = "Mix"
	names := map[int]string{1: "Fire", 2: "Ice"}

	assert.Equal(t, "# Mix\n2x2 Ice\n1x1 Fire\n1x9", ExportText(d, names))
}

func TestExportYAML(t *testing.T) {
	t.Parallel()
	d := userDeck(1, 1, 1)
	d.Name = "Mono"

	out, err := Export(d, map[int]string{1: "Fire"}, FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, out, "name: Mono")
	assert.Contains(t, out, "count: 2")

	_, err = Export(d, nil, "xml")
	assert.Error(t, err)
}
