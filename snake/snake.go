// 关于的蛇的更新
package snake

import (
	"fmt"

	"github.com/hoshinonyaruko/snake-board/board"
	"github.com/hoshinonyaruko/snake-board/structs"
)

// NewDefaultGame 创建默认棋盘和对应的蛇登记表
func NewDefaultGame() (*board.Board, []structs.Snake) {
	snakes := []structs.Snake{{
		HeadRow: board.DefaultHeadRow,
		HeadCol: board.DefaultHeadCol,
		TailRow: board.DefaultTailRow,
		TailCol: board.DefaultTailCol,
		Live:    true,
	}}
	return board.Default(), snakes
}

// Tick advances every live snake by one step, in registry order.
// A collision only flips the snake's Live flag; errors are returned for
// corrupted boards, out-of-sync registries and food placer failures.
func Tick(b *board.Board, snakes []structs.Snake, placeFood FoodPlacer) error {
	for i := range snakes {
		if !snakes[i].Live {
			continue
		}
		if err := step(b, &snakes[i], placeFood); err != nil {
			return fmt.Errorf("snake %d: %w", i, err)
		}
	}
	return nil
}

func step(b *board.Board, s *structs.Snake, placeFood FoodPlacer) error {
	head, err := b.Get(s.HeadRow, s.HeadCol)
	if err != nil {
		return err
	}
	row := board.NextRow(s.HeadRow, head)
	col := board.NextCol(s.HeadCol, head)

	// 走出棋盘之外等同于撞墙
	next, err := b.Get(row, col)
	if err != nil {
		next = board.Wall
	}

	switch next {
	case board.Empty:
		// 先算好尾巴的去向 出错时棋盘保持不变
		tailRow, tailCol, newTail, err := planTail(b, s, head)
		if err != nil {
			return err
		}
		if err := moveHead(b, s, row, col, head); err != nil {
			return err
		}
		if err := b.Set(tailRow, tailCol, newTail); err != nil {
			return err
		}
		if err := b.Set(s.TailRow, s.TailCol, board.Empty); err != nil {
			return err
		}
		s.TailRow, s.TailCol = tailRow, tailCol
		return nil
	case board.Food:
		if err := moveHead(b, s, row, col, head); err != nil {
			return err
		}
		// 不移动尾巴 蛇变长一格
		if placeFood != nil {
			if err := placeFood(b); err != nil {
				return fmt.Errorf("place food: %w", err)
			}
		}
		return nil
	default:
		s.Live = false
		return b.Set(s.HeadRow, s.HeadCol, board.DeadHead)
	}
}

// moveHead 在新位置写入蛇头 原蛇头降级为身体
func moveHead(b *board.Board, s *structs.Snake, row, col int, head byte) error {
	body, err := board.HeadToBody(head)
	if err != nil {
		return err
	}
	if err := b.Set(row, col, head); err != nil {
		return err
	}
	if err := b.Set(s.HeadRow, s.HeadCol, body); err != nil {
		return err
	}
	s.HeadRow, s.HeadCol = row, col
	return nil
}

// planTail 返回尾巴要进入的格子和那里应写入的尾巴字符 不修改棋盘
// 长度为2的蛇 尾巴进入的是即将降级为身体的蛇头
func planTail(b *board.Board, s *structs.Snake, head byte) (int, int, byte, error) {
	tail, err := b.Get(s.TailRow, s.TailCol)
	if err != nil {
		return 0, 0, 0, err
	}
	if !board.IsTail(tail) {
		return 0, 0, 0, fmt.Errorf("tail (%d,%d) holds %q: %w", s.TailRow, s.TailCol, tail, board.ErrInvalidSymbol)
	}
	row := board.NextRow(s.TailRow, tail)
	col := board.NextCol(s.TailCol, tail)
	var body byte
	if row == s.HeadRow && col == s.HeadCol {
		body, err = board.HeadToBody(head)
	} else {
		body, err = b.Get(row, col)
	}
	if err != nil {
		return 0, 0, 0, err
	}
	newTail, err := board.BodyToTail(body)
	if err != nil {
		return 0, 0, 0, err
	}
	return row, col, newTail, nil
}

// LiveCount 返回还活着的蛇的数量
func LiveCount(snakes []structs.Snake) int {
	n := 0
	for _, s := range snakes {
		if s.Live {
			n++
		}
	}
	return n
}

// GameOver reports whether at least one snake exists and none is live.
func GameOver(snakes []structs.Snake) bool {
	return len(snakes) > 0 && LiveCount(snakes) == 0
}

// Validate checks that every cached head and tail points at a matching cell.
func Validate(b *board.Board, snakes []structs.Snake) error {
	for i, s := range snakes {
		head, err := b.Get(s.HeadRow, s.HeadCol)
		if err != nil {
			return fmt.Errorf("snake %d head: %w", i, err)
		}
		if s.Live && !board.IsLiveHead(head) || !s.Live && head != board.DeadHead {
			return fmt.Errorf("snake %d head (%d,%d) holds %q, live=%v: %w",
				i, s.HeadRow, s.HeadCol, head, s.Live, board.ErrMalformedBoard)
		}
		tail, err := b.Get(s.TailRow, s.TailCol)
		if err != nil {
			return fmt.Errorf("snake %d tail: %w", i, err)
		}
		if !board.IsTail(tail) {
			return fmt.Errorf("snake %d tail (%d,%d) holds %q: %w",
				i, s.TailRow, s.TailCol, tail, board.ErrMalformedBoard)
		}
	}
	return nil
}
