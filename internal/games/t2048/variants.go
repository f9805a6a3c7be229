// Package t2048 adapts the board engine to the platform's Game interface.
// Each board variant is registered as its own game.
package t2048

import "github.com/vovakirdan/tui-2048/internal/board"

// Variant describes a registered board configuration.
type Variant struct {
	ID          string
	Title       string
	Description string
	Size        int // Board side length
	WinTarget   int // Tile value that wins the game
}

// Variants lists the built-in board configurations.
var Variants = []Variant{
	{
		ID:          "2048",
		Title:       "2048",
		Description: "Classic 4x4 board, reach 2048",
		Size:        board.DefaultSize,
		WinTarget:   board.DefaultWinTarget,
	},
	{
		ID:          "2048_large",
		Title:       "2048 (6x6)",
		Description: "Roomy 6x6 board, reach 2048",
		Size:        6,
		WinTarget:   board.DefaultWinTarget,
	},
	{
		ID:          "2048_quick",
		Title:       "2048 (Quick)",
		Description: "4x4 board, first 16 wins",
		Size:        board.DefaultSize,
		WinTarget:   16,
	},
}

// ClassicID is the variant that board settings from config apply to.
const ClassicID = "2048"

// VariantByID returns the variant with the given ID.
func VariantByID(id string) (Variant, bool) {
	for _, v := range Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}
