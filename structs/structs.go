package structs

import "github.com/hoshinonyaruko/snake-board/board"

// Snake 蛇的缓存记录 形状以棋盘为准 这里只存头尾坐标
type Snake struct {
	HeadRow int  `json:"head_row"`
	HeadCol int  `json:"head_col"`
	TailRow int  `json:"tail_row"`
	TailCol int  `json:"tail_col"`
	Live    bool `json:"live"` // 撞到东西后变为false 不会再变回true
}

// Game 描述一个游戏实例 包括棋盘和蛇的登记表
type Game struct {
	GroupID         string       `json:"group_id"`         // 游戏组标识
	Board           *board.Board `json:"-"`                // 棋盘 以文本形式持久化
	Snakes          []Snake      `json:"snakes"`           // 按发现顺序排列 死蛇也保留
	LastRefresh     int64        `json:"last_refresh"`     // 最后刷新时间，时间戳
	RefreshInterval int          `json:"refresh_interval"` // 刷新间隔，单位秒 0表示只手动刷新
}
