package board

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/dragdrop/pkg/config"
)

// TestRandomOperationsKeepInvariants drives boards through long random
// sequences of every mutating operation and checks the full invariant set
// after each step.
func TestRandomOperationsKeepInvariants(t *testing.T) {
	configs := map[string]config.Config{
		"areas": fruitConfig(),
		"replace and forbid": func() config.Config {
			c := fruitConfig()
			c.PossibleToReplaceDroppedItem = true
			c.ForbidFocusOnFilledAreas = true
			return c
		}(),
		"shift": listConfig(config.ShuffleShift, "a", "b", "c", "d", "e"),
		"swap":  listConfig(config.ShuffleSwap, "a", "b", "c", "d", "e"),
	}

	for name, cfg := range configs {
		t.Run(name, func(t *testing.T) {
			b := newBoard(t, cfg)
			rng := rand.New(rand.NewPCG(1, 2))
			items, areas := b.NumItems(), b.NumAreas()

			randItem := func() ItemRef { return ItemRef(rng.IntN(items)) }
			randArea := func() AreaRef {
				if areas == 0 {
					return NoArea
				}
				return AreaRef(rng.IntN(areas))
			}

			for step := range 500 {
				switch op := rng.IntN(10); {
				case op < 5:
					if b.HasAreas() {
						b.AttemptPlace(randItem(), randArea(), PlaceContext{})
					} else {
						b.Shuffle(randItem(), randItem())
					}
				case op == 5:
					b.Evict(randItem())
				case op == 6:
					_ = b.SetCorrect(randItem(), rng.IntN(2) == 0)
				case op == 7:
					_ = b.SetItemDisabled(randItem(), rng.IntN(4) == 0)
				case op == 8:
					if b.HasAreas() {
						_ = b.SetAreaDisabled(randArea(), rng.IntN(4) == 0)
					} else {
						_, _ = b.DisableCorrectItems()
					}
				default:
					if rng.IntN(3) == 0 {
						b.ResetAll()
					} else {
						b.ResetIncorrect()
					}
				}
				require.NoError(t, b.Check(), "step %d", step)
			}
		})
	}
}

func TestCheckDetectsCorruption(t *testing.T) {
	b := newBoard(t, fruitConfig())
	place(t, b, "apple", "crate")

	// Break the relation from the area side only.
	b.areas[area(t, b, "crate")].inner = nil
	assert.Error(t, b.Check())
}
