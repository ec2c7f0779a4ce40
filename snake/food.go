package snake

import (
	"math/rand"

	"github.com/hoshinonyaruko/snake-board/board"
)

// FoodPlacer 蛇吃到食物后调用一次 可以读写棋盘
type FoodPlacer func(b *board.Board) error

// NoFood never places food.
func NoFood(*board.Board) error {
	return nil
}

// FixedFood 总是在固定位置放食物
func FixedFood(row, col int) FoodPlacer {
	return func(b *board.Board) error {
		return b.Set(row, col, board.Food)
	}
}

// RandomFood places food on a uniformly chosen empty cell. A full board is
// left unchanged.
func RandomFood(rng *rand.Rand) FoodPlacer {
	return func(b *board.Board) error {
		type cell struct{ row, col int }
		var free []cell
		for row := 0; row < b.Rows(); row++ {
			for col := 0; col < b.Width(row); col++ {
				if c, _ := b.Get(row, col); c == board.Empty {
					free = append(free, cell{row, col})
				}
			}
		}
		if len(free) == 0 {
			return nil
		}
		pick := free[rng.Intn(len(free))]
		return b.Set(pick.row, pick.col, board.Food)
	}
}
