package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/hoshinonyaruko/snake-board/board"
	"github.com/hoshinonyaruko/snake-board/snake"
	"github.com/hoshinonyaruko/snake-board/structs"
)

// ErrGameNotFound 数据库里没有这个游戏
var ErrGameNotFound = errors.New("sqlite: game not found")

const createGamesTableSQL = `
CREATE TABLE IF NOT EXISTS Games (
    GroupID TEXT PRIMARY KEY,
    Board TEXT NOT NULL,
    LastRefresh INTEGER,
    RefreshInterval INTEGER
);
`

const createSnakesTableSQL = `
CREATE TABLE IF NOT EXISTS Snakes (
    GroupID TEXT,
    Idx INTEGER,
    HeadRow INTEGER,
    HeadCol INTEGER,
    TailRow INTEGER,
    TailCol INTEGER,
    Live INTEGER,
    PRIMARY KEY (GroupID, Idx)
);
`

const createSnakesIndexSQL = `
CREATE INDEX IF NOT EXISTS idx_snake_group ON Snakes (GroupID);
`

func executeSQL(db *sql.DB, sqlStatement string) error {
	_, err := db.Exec(sqlStatement)
	if err != nil {
		return fmt.Errorf("executing SQL statement %q: %w", sqlStatement, err)
	}
	return nil
}

func InitializeDatabase(db *sql.DB) error {
	for _, stmt := range []string{createGamesTableSQL, createSnakesTableSQL, createSnakesIndexSQL} {
		if err := executeSQL(db, stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveGame 在一个事务里写入棋盘和蛇的登记表
func SaveGame(db *sql.DB, game *structs.Game) error {
	// 开启事务
	tx, err := db.Begin()
	if err != nil {
		return err
	}

	_, err = tx.Exec("INSERT OR REPLACE INTO Games (GroupID, Board, LastRefresh, RefreshInterval) VALUES (?, ?, ?, ?)",
		game.GroupID, game.Board.Serialize(), game.LastRefresh, game.RefreshInterval)
	if err != nil {
		tx.Rollback()
		return err
	}

	// 登记表整体替换 蛇的数量可能变化
	if _, err = tx.Exec("DELETE FROM Snakes WHERE GroupID = ?", game.GroupID); err != nil {
		tx.Rollback()
		return err
	}
	for i, s := range game.Snakes {
		_, err = tx.Exec("INSERT INTO Snakes (GroupID, Idx, HeadRow, HeadCol, TailRow, TailCol, Live) VALUES (?, ?, ?, ?, ?, ?, ?)",
			game.GroupID, i, s.HeadRow, s.HeadCol, s.TailRow, s.TailCol, s.Live)
		if err != nil {
			tx.Rollback()
			return err
		}
	}

	// 提交事务
	return tx.Commit()
}

// LoadGame reads a game back. Cached snake rows are used when they agree with
// the board; otherwise the registry is rebuilt from the board text.
func LoadGame(db *sql.DB, groupID string) (*structs.Game, error) {
	game := structs.Game{GroupID: groupID}
	var text string
	err := db.QueryRow("SELECT Board, LastRefresh, RefreshInterval FROM Games WHERE GroupID = ?", groupID).Scan(
		&text, &game.LastRefresh, &game.RefreshInterval,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%s: %w", groupID, ErrGameNotFound)
	}
	if err != nil {
		return nil, err
	}
	game.Board = board.Deserialize(text)

	rows, err := db.Query("SELECT HeadRow, HeadCol, TailRow, TailCol, Live FROM Snakes WHERE GroupID = ? ORDER BY Idx", groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	game.Snakes = []structs.Snake{}
	for rows.Next() {
		var s structs.Snake
		if err := rows.Scan(&s.HeadRow, &s.HeadCol, &s.TailRow, &s.TailCol, &s.Live); err != nil {
			return nil, err
		}
		game.Snakes = append(game.Snakes, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(game.Snakes) > 0 {
		err := snake.Validate(game.Board, game.Snakes)
		if err == nil {
			return &game, nil
		}
		log.Printf("snake rows for %s out of sync, rebuilding: %v", groupID, err)
	}
	game.Snakes, err = snake.Rebuild(game.Board)
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// DeleteGame 删除游戏和它的蛇
func DeleteGame(db *sql.DB, groupID string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	res, err := tx.Exec("DELETE FROM Games WHERE GroupID = ?", groupID)
	if err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.Exec("DELETE FROM Snakes WHERE GroupID = ?", groupID); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	if count, err := res.RowsAffected(); err == nil && count == 0 {
		return fmt.Errorf("%s: %w", groupID, ErrGameNotFound)
	}
	return nil
}

// ListGames returns all stored group ids in order.
func ListGames(db *sql.DB) ([]string, error) {
	rows, err := db.Query("SELECT GroupID FROM Games ORDER BY GroupID")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
