package board

import "errors"

var (
	// ErrOutOfBounds 访问了棋盘以外的格子
	ErrOutOfBounds = errors.New("board: cell out of bounds")
	// ErrInvalidSymbol 方向映射收到了不属于其字母表的字符
	ErrInvalidSymbol = errors.New("board: invalid symbol")
	// ErrMalformedBoard 从蛇尾追踪不到蛇头
	ErrMalformedBoard = errors.New("board: malformed board")
)
