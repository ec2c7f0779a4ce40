package snake

import (
	"github.com/hoshinonyaruko/snake-board/structs"
)

// MaxCatchUpTicks 一次补帧最多执行的移动次数
const MaxCatchUpTicks = 1000

// AdvanceIfNeeded 按距离上次刷新经过的时间计算应该执行的移动次数
// 返回实际执行的次数
func AdvanceIfNeeded(game *structs.Game, now int64, placeFood FoodPlacer) (int, error) {
	if game.RefreshInterval <= 0 {
		return 0, nil
	}
	elapsed := now - game.LastRefresh
	moveCount := elapsed / int64(game.RefreshInterval)
	if moveCount <= 0 {
		return 0, nil
	}
	if moveCount > MaxCatchUpTicks {
		moveCount = MaxCatchUpTicks
	}

	ran := 0
	for i := int64(0); i < moveCount; i++ {
		// 全部死亡后不再浪费时间
		if GameOver(game.Snakes) {
			break
		}
		if err := Tick(game.Board, game.Snakes, placeFood); err != nil {
			return ran, err
		}
		ran++
	}
	// 刷新新的时间
	game.LastRefresh = now
	return ran, nil
}
