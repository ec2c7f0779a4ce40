package board

import "fmt"

// 棋盘字符表 持久化格式依赖这些字符 不可更改
const (
	Empty    byte = ' '
	Wall     byte = '#'
	Food     byte = '*'
	DeadHead byte = 'x'

	BodyUp    byte = '^'
	BodyLeft  byte = '<'
	BodyDown  byte = 'v'
	BodyRight byte = '>'

	TailUp    byte = 'w'
	TailLeft  byte = 'a'
	TailDown  byte = 's'
	TailRight byte = 'd'

	HeadUp    byte = 'W'
	HeadLeft  byte = 'A'
	HeadDown  byte = 'S'
	HeadRight byte = 'D'
)

// IsTail reports whether c is a tail segment ("wasd").
func IsTail(c byte) bool {
	return c == TailUp || c == TailLeft || c == TailDown || c == TailRight
}

// IsHead reports whether c is a head segment ("WASD") or a dead head 'x'.
func IsHead(c byte) bool {
	return IsLiveHead(c) || c == DeadHead
}

// IsLiveHead reports whether c is a moving head ("WASD").
func IsLiveHead(c byte) bool {
	return c == HeadUp || c == HeadLeft || c == HeadDown || c == HeadRight
}

// IsBody reports whether c is a body segment ("^<v>").
func IsBody(c byte) bool {
	return c == BodyUp || c == BodyLeft || c == BodyDown || c == BodyRight
}

// IsSnake reports whether c belongs to any snake.
func IsSnake(c byte) bool {
	return IsTail(c) || IsHead(c) || IsBody(c)
}

// BodyToTail 把身体字符 ("^<v>") 转成对应的尾巴字符 ("wasd")
func BodyToTail(c byte) (byte, error) {
	switch c {
	case BodyUp:
		return TailUp, nil
	case BodyLeft:
		return TailLeft, nil
	case BodyDown:
		return TailDown, nil
	case BodyRight:
		return TailRight, nil
	}
	return 0, fmt.Errorf("body to tail %q: %w", c, ErrInvalidSymbol)
}

// HeadToBody 把蛇头字符 ("WASD") 转成对应的身体字符 ("^<v>")
func HeadToBody(c byte) (byte, error) {
	switch c {
	case HeadUp:
		return BodyUp, nil
	case HeadLeft:
		return BodyLeft, nil
	case HeadDown:
		return BodyDown, nil
	case HeadRight:
		return BodyRight, nil
	}
	return 0, fmt.Errorf("head to body %q: %w", c, ErrInvalidSymbol)
}

// NextRow returns row+1 for 'v' 's' 'S', row-1 for '^' 'w' 'W' (never below 0),
// and row unchanged otherwise.
func NextRow(row int, c byte) int {
	switch c {
	case BodyDown, TailDown, HeadDown:
		return row + 1
	case BodyUp, TailUp, HeadUp:
		if row == 0 {
			return 0
		}
		return row - 1
	}
	return row
}

// NextCol returns col+1 for '>' 'd' 'D', col-1 for '<' 'a' 'A' (never below 0),
// and col unchanged otherwise.
func NextCol(col int, c byte) int {
	switch c {
	case BodyRight, TailRight, HeadRight:
		return col + 1
	case BodyLeft, TailLeft, HeadLeft:
		if col == 0 {
			return 0
		}
		return col - 1
	}
	return col
}
