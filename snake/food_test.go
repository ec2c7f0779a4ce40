package snake

import (
	"math/rand"
	"testing"

	"github.com/hoshinonyaruko/snake-board/board"
	"github.com/hoshinonyaruko/snake-board/structs"
)

func TestRandomFoodPicksEmptyCell(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	place := RandomFood(rng)

	for i := 0; i < 20; i++ {
		b := board.Default()
		before := b.Clone()
		if err := place(b); err != nil {
			t.Fatalf("place: %v", err)
		}
		food := b.Count(func(c byte) bool { return c == board.Food })
		if food != 2 {
			t.Fatalf("Expected 2 food cells, got %d", food)
		}
		// 只能改变一个空格子
		changed := 0
		for row := 0; row < b.Rows(); row++ {
			for col := 0; col < b.Width(row); col++ {
				was, _ := before.Get(row, col)
				now, _ := b.Get(row, col)
				if was != now {
					changed++
					if was != board.Empty {
						t.Errorf("Food replaced %q at (%d,%d)", was, row, col)
					}
				}
			}
		}
		if changed != 1 {
			t.Errorf("Expected exactly one changed cell, got %d", changed)
		}
	}
}

func TestRandomFoodFullBoard(t *testing.T) {
	b := board.Deserialize("###\n#*#\n###\n")
	before := b.Clone()
	if err := RandomFood(rand.New(rand.NewSource(1)))(b); err != nil {
		t.Fatalf("place: %v", err)
	}
	if !b.Equal(before) {
		t.Error("Expected full board to stay unchanged")
	}
}

func TestFixedFoodOutOfBounds(t *testing.T) {
	if err := FixedFood(99, 0)(board.Default()); err == nil {
		t.Error("Expected error for out of bounds food")
	}
}

func TestAdvanceIfNeeded(t *testing.T) {
	b, snakes := NewDefaultGame()
	game := &structs.Game{Board: b, Snakes: snakes, LastRefresh: 100, RefreshInterval: 10}

	// 还没到刷新时间
	n, err := AdvanceIfNeeded(game, 105, NoFood)
	if err != nil || n != 0 {
		t.Fatalf("Expected no ticks, got %d, %v", n, err)
	}
	if game.LastRefresh != 100 {
		t.Errorf("Expected LastRefresh unchanged, got %d", game.LastRefresh)
	}

	n, err = AdvanceIfNeeded(game, 131, NoFood)
	if err != nil {
		t.Fatalf("AdvanceIfNeeded: %v", err)
	}
	if n != 3 {
		t.Errorf("Expected 3 ticks, got %d", n)
	}
	if game.LastRefresh != 131 {
		t.Errorf("Expected LastRefresh 131, got %d", game.LastRefresh)
	}
	if game.Snakes[0].HeadCol != 7 {
		t.Errorf("Expected head col 7, got %d", game.Snakes[0].HeadCol)
	}
}

func TestAdvanceStopsWhenAllDead(t *testing.T) {
	b, snakes := NewDefaultGame()
	game := &structs.Game{Board: b, Snakes: snakes, LastRefresh: 0, RefreshInterval: 1}

	n, err := AdvanceIfNeeded(game, 1_000_000, NoFood)
	if err != nil {
		t.Fatalf("AdvanceIfNeeded: %v", err)
	}
	// 14步走到墙边 第15步撞墙
	if n != 15 {
		t.Errorf("Expected 15 ticks before game over, got %d", n)
	}
	if !GameOver(game.Snakes) {
		t.Error("Expected game over")
	}
}

func TestAdvanceManualOnly(t *testing.T) {
	b, snakes := NewDefaultGame()
	game := &structs.Game{Board: b, Snakes: snakes, RefreshInterval: 0}
	if n, _ := AdvanceIfNeeded(game, 1<<40, NoFood); n != 0 {
		t.Errorf("Expected manual-only game not to tick, got %d", n)
	}
}
