package api

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/hoshinonyaruko/snake-board/config"
	"github.com/hoshinonyaruko/snake-board/sqlite"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// StreamHandler pushes the board text over a websocket, once on connect and
// then every stream interval, advancing the game as time passes.
func StreamHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		groupID := c.Query("groupid")
		unlock := lockGame(groupID)
		_, err := sqlite.LoadGame(db, groupID)
		unlock()
		if err != nil {
			writeError(c, err)
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("stream upgrade %s: %v", groupID, err)
			return
		}
		defer conn.Close()

		// 读循环 只用来发现客户端断开
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		interval := time.Duration(config.Get().StreamIntervalMs) * time.Millisecond
		if interval <= 0 {
			interval = 500 * time.Millisecond
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			if !pushBoard(conn, db, groupID) {
				return
			}
			select {
			case <-done:
				return
			case <-ticker.C:
			}
		}
	}
}

// pushBoard 发送一帧 返回 false 表示应该结束
func pushBoard(conn *websocket.Conn, db *sql.DB, groupID string) bool {
	game, err := withGame(db, groupID, advance)
	if err != nil {
		log.Printf("stream %s: %v", groupID, err)
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, err.Error()))
		return false
	}
	if err := conn.WriteMessage(websocket.TextMessage, []byte(game.Board.Serialize())); err != nil {
		log.Printf("stream %s disconnected: %v", groupID, err)
		return false
	}
	return true
}
