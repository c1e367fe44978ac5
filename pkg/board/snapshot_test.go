package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/dragdrop/pkg/config"
	"github.com/matzehuels/dragdrop/pkg/errors"
)

func TestSnapshotRestore(t *testing.T) {
	b := newBoard(t, fruitConfig())
	place(t, b, "pear", "crate")
	place(t, b, "apple", "crate")
	place(t, b, "rock", "bin")
	require.NoError(t, b.SetCorrect(item(t, b, "apple"), true))
	require.NoError(t, b.SetAreaDisabled(area(t, b, "basket"), true))
	saved := b.Snapshot()

	other := newBoard(t, fruitConfig())
	require.NoError(t, other.Restore(saved))

	assert.Equal(t, saved, other.Snapshot())
	assert.Equal(t,
		[]string{"pear", "apple"},
		itemIDs(other, other.Area(area(t, other, "crate")).InnerItems()),
		"drop order survives")
	assert.Equal(t, []string{"carrot"}, itemIDs(other, other.Remaining()))
	assert.Equal(t, []string{"crate", "bin"}, areaIDs(other, other.Allowed()))
	assert.NoError(t, other.Check())
}

func TestRestoreShuffledOrder(t *testing.T) {
	b := newBoard(t, listConfig(config.ShuffleShift, "a", "b", "c"))
	b.Shuffle(item(t, b, "c"), item(t, b, "a"))
	saved := b.Snapshot()

	other := newBoard(t, listConfig(config.ShuffleShift, "a", "b", "c"))
	require.NoError(t, other.Restore(saved))
	assert.Equal(t, []string{"c", "a", "b"}, itemIDs(other, other.Remaining()))
}

func TestRestoreRejectsInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Snapshot)
	}{
		{"Missing item", func(s *Snapshot) { s.Items = s.Items[1:] }},
		{"Unknown item", func(s *Snapshot) { s.Items[0].ID = "banana" }},
		{"Duplicate item", func(s *Snapshot) { s.Items[1].ID = s.Items[0].ID }},
		{"Duplicate order", func(s *Snapshot) { s.Items[1].Order = s.Items[0].Order }},
		{"Order out of range", func(s *Snapshot) { s.Items[0].Order = 99 }},
		{"Unknown area", func(s *Snapshot) { s.Items[0].Area = "shelf" }},
		{"Not accepted", func(s *Snapshot) { s.Items[2].Area = "basket" }},
		{"Over capacity", func(s *Snapshot) { s.Items[0].Area = "basket"; s.Items[1].Area = "basket" }},
		{"Unknown area state", func(s *Snapshot) { s.Areas = append(s.Areas, AreaState{ID: "shelf"}) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBoard(t, fruitConfig())
			place(t, b, "apple", "bin")
			before := b.Snapshot()

			s := b.Snapshot()
			tt.mutate(&s)
			err := b.Restore(s)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidSnapshot), "got %v", err)
			assert.Equal(t, before, b.Snapshot(), "board changed by rejected restore")
		})
	}
}
