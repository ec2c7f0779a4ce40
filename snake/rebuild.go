package snake

import (
	"fmt"

	"github.com/hoshinonyaruko/snake-board/board"
	"github.com/hoshinonyaruko/snake-board/structs"
)

// Rebuild reconstructs the snake registry from the board alone. Tails are
// discovered in row-major order; each is traced through its own direction
// symbols until a head is reached. Any broken chain fails the whole rebuild.
func Rebuild(b *board.Board) ([]structs.Snake, error) {
	snakes := []structs.Snake{}
	limit := b.CellCount()

	for row := 0; row < b.Rows(); row++ {
		for col := 0; col < b.Width(row); col++ {
			c, _ := b.Get(row, col)
			if !board.IsTail(c) {
				continue
			}
			s := structs.Snake{TailRow: row, TailCol: col}
			if err := findHead(b, &s, limit); err != nil {
				return nil, err
			}
			snakes = append(snakes, s)
		}
	}
	return snakes, nil
}

// findHead 从尾巴沿着方向字符找到蛇头 最多走 limit 步
func findHead(b *board.Board, s *structs.Snake, limit int) error {
	row, col := s.TailRow, s.TailCol
	for steps := 0; steps <= limit; steps++ {
		c, err := b.Get(row, col)
		if err != nil {
			return fmt.Errorf("trace from tail (%d,%d) left the board: %w", s.TailRow, s.TailCol, board.ErrMalformedBoard)
		}
		if board.IsHead(c) {
			s.HeadRow, s.HeadCol = row, col
			// 以'x'结尾的蛇已经撞过 记为死亡 登记表才和棋盘一致
			// 对活着的蛇来说等同于一律标记为 live
			s.Live = c != board.DeadHead
			return nil
		}
		if !board.IsSnake(c) || (steps > 0 && board.IsTail(c)) {
			return fmt.Errorf("trace from tail (%d,%d) broken at (%d,%d) %q: %w",
				s.TailRow, s.TailCol, row, col, c, board.ErrMalformedBoard)
		}
		row = board.NextRow(row, c)
		col = board.NextCol(col, c)
	}
	return fmt.Errorf("trace from tail (%d,%d) exceeded %d steps: %w", s.TailRow, s.TailCol, limit, board.ErrMalformedBoard)
}
