package board_test

import (
	"fmt"

	"github.com/matzehuels/dragdrop/pkg/board"
	"github.com/matzehuels/dragdrop/pkg/config"
)

func ExampleBoard_AttemptPlace() {
	b, _ := board.New(config.Config{
		DragItems: []config.ItemConfig{
			{ID: "apple", Groups: []string{"fruit"}},
			{ID: "carrot", Groups: []string{"vegetable"}},
		},
		DropAreas: []config.AreaConfig{
			{ID: "basket", Accept: []string{"fruit"}},
		},
	}, nil)

	apple, _ := b.ItemByID("apple")
	carrot, _ := b.ItemByID("carrot")
	basket, _ := b.AreaByID("basket")

	fmt.Println(b.AttemptPlace(apple, basket, board.PlaceContext{}).Decision)
	out := b.AttemptPlace(carrot, basket, board.PlaceContext{})
	fmt.Println(out.Decision, "-", out.Reason)
	fmt.Println("remaining:", len(b.Remaining()))
	// Output:
	// place
	// reset - not accepted
	// remaining: 1
}

func ExampleBoard_Shuffle() {
	b, _ := board.New(config.Config{
		ShiftOrSwapOnNoAreas: config.ShuffleShift,
		DragItems: []config.ItemConfig{
			{ID: "one"}, {ID: "two"}, {ID: "three"},
		},
	}, nil)

	out := b.Shuffle(0, 2)
	for _, ref := range out.Order {
		fmt.Print(b.Item(ref).ID(), " ")
	}
	fmt.Println()
	// Output:
	// two three one
}
