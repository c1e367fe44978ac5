package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/dragdrop/pkg/config"
	"github.com/matzehuels/dragdrop/pkg/errors"
)

func TestResetAll(t *testing.T) {
	cfg := fruitConfig()
	cfg.DropAreas[2].Disabled = true
	b := newBoard(t, cfg)
	initial := b.Snapshot()

	place(t, b, "apple", "basket")
	place(t, b, "carrot", "crate")
	place(t, b, "pear", "crate")
	require.NoError(t, b.SetCorrect(item(t, b, "apple"), true))
	require.NoError(t, b.SetAreaDisabled(area(t, b, "bin"), false))
	require.NoError(t, b.SetItemDisabled(item(t, b, "rock"), true))

	rep := b.ResetAll()
	assert.Equal(t, []string{"apple", "carrot", "pear"}, itemIDs(b, rep.Evicted))
	assert.Equal(t, []string{"basket", "crate"}, areaIDs(b, rep.Emptied))
	assert.Equal(t, initial, b.Snapshot())
	assert.Equal(t, []string{"basket", "crate"}, areaIDs(b, b.Allowed()))
	assert.NoError(t, b.Check())
}

func TestResetAllRestoresShuffledOrder(t *testing.T) {
	b := newBoard(t, listConfig(config.ShuffleShift, "a", "b", "c"))
	b.Shuffle(item(t, b, "a"), item(t, b, "c"))
	require.Equal(t, []string{"b", "c", "a"}, itemIDs(b, b.Items()))

	b.ResetAll()
	assert.Equal(t, []string{"a", "b", "c"}, itemIDs(b, b.Items()))
	assert.Equal(t, item(t, b, "a"), b.FirstRemaining())
}

func TestResetIncorrect(t *testing.T) {
	b := newBoard(t, fruitConfig())
	place(t, b, "apple", "basket")
	place(t, b, "pear", "crate")
	place(t, b, "carrot", "crate")
	place(t, b, "rock", "bin")
	require.NoError(t, b.SetCorrect(item(t, b, "apple"), true))
	require.NoError(t, b.SetCorrect(item(t, b, "carrot"), true))

	rep := b.ResetIncorrect()
	assert.Equal(t, []string{"pear", "rock"}, itemIDs(b, rep.Evicted))
	assert.Equal(t, []string{"bin"}, areaIDs(b, rep.Emptied))
	assert.Equal(t, []string{"pear", "rock"}, itemIDs(b, b.Remaining()))
	assert.Equal(t, []ItemRef{item(t, b, "carrot")}, b.Area(area(t, b, "crate")).InnerItems())
	assert.NoError(t, b.Check())
}

func TestResetIncorrectKeepsCorrectNeighbours(t *testing.T) {
	b := newBoard(t, fruitConfig())
	place(t, b, "apple", "bin")
	place(t, b, "pear", "bin")
	place(t, b, "carrot", "bin")
	require.NoError(t, b.SetCorrect(item(t, b, "apple"), true))
	require.NoError(t, b.SetCorrect(item(t, b, "carrot"), true))

	rep := b.ResetIncorrect()
	assert.Equal(t, []string{"pear"}, itemIDs(b, rep.Evicted))
	assert.Empty(t, rep.Emptied)
	assert.Equal(t, []string{"apple", "carrot"}, itemIDs(b, b.Area(area(t, b, "bin")).InnerItems()))
	assert.Equal(t, []string{"pear", "rock"}, itemIDs(b, b.Remaining()))
	assert.Equal(t, area(t, b, "bin"), b.Item(item(t, b, "carrot")).ChosenDropArea())
	assert.NoError(t, b.Check())
}

func TestDisableCorrectItems(t *testing.T) {
	b := newBoard(t, listConfig(config.ShuffleSwap, "a", "b", "c"))
	require.NoError(t, b.SetCorrect(item(t, b, "a"), true))
	require.NoError(t, b.SetCorrect(item(t, b, "c"), true))

	rep, err := b.DisableCorrectItems()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, itemIDs(b, rep.Disabled))
	assert.Equal(t, []string{"b"}, itemIDs(b, b.Remaining()))
	assert.Equal(t, item(t, b, "b"), b.FirstRemaining())
	assert.NoError(t, b.Check())

	again, err := b.DisableCorrectItems()
	require.NoError(t, err)
	assert.Empty(t, again.Disabled)
}

func TestDisableCorrectItemsNeedsNoAreas(t *testing.T) {
	b := newBoard(t, fruitConfig())
	_, err := b.DisableCorrectItems()
	assert.True(t, errors.Is(err, errors.ErrCodeUnsupported))
}
