package api

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hoshinonyaruko/snake-board/board"
	"github.com/hoshinonyaruko/snake-board/config"
	"github.com/hoshinonyaruko/snake-board/memimg"
	"github.com/hoshinonyaruko/snake-board/render"
	"github.com/hoshinonyaruko/snake-board/snake"
	"github.com/hoshinonyaruko/snake-board/sqlite"
	"github.com/hoshinonyaruko/snake-board/storage"
	"github.com/hoshinonyaruko/snake-board/structs"
	_ "github.com/mattn/go-sqlite3"
)

// StaticDir 渲染结果的输出目录
var StaticDir = "./static"

// 每个游戏一把锁 保证同一个游戏的刷新不会并发
var gameLocks sync.Map

func lockGame(groupID string) func() {
	v, _ := gameLocks.LoadOrStore(groupID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := sqlite.InitializeDatabase(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// SetupRouter registers every handler on a new gin engine.
func SetupRouter(db *sql.DB) *gin.Engine {
	router := gin.Default()
	// 创建默认游戏
	router.GET("/new-game", NewGameHandler(db))
	// 上传棋盘文本 重建蛇
	router.POST("/load-board", LoadBoardHandler(db))
	// 从棋盘目录导入/导出
	router.GET("/import-board", ImportBoardHandler(db))
	router.GET("/export-board", ExportBoardHandler(db))
	router.GET("/boards", ListBoardsHandler())
	// 手动刷新
	router.GET("/tick", TickHandler(db))
	router.GET("/board", BoardHandler(db))
	router.GET("/games", ListGamesHandler(db))
	// 渲染函数 返回静态地址
	router.GET("/render-map", RenderMapHandler(db))
	// 删除地图
	router.GET("/delete-map", DeleteMapHandler(db))
	router.GET("/stream", StreamHandler(db))
	router.Static("/static", StaticDir) // 静态文件服务
	return router
}

func newFoodPlacer() snake.FoodPlacer {
	return snake.RandomFood(rand.New(rand.NewSource(time.Now().UnixNano())))
}

func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, sqlite.ErrGameNotFound), errors.Is(err, os.ErrNotExist):
		status = http.StatusNotFound
	case errors.Is(err, board.ErrMalformedBoard), errors.Is(err, board.ErrInvalidSymbol):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func gameResponse(game *structs.Game) gin.H {
	return gin.H{
		"group_id":  game.GroupID,
		"board":     game.Board.Lines(),
		"snakes":    game.Snakes,
		"live":      snake.LiveCount(game.Snakes),
		"game_over": snake.GameOver(game.Snakes),
	}
}

// withGame 加锁读出游戏 执行 fn 后写回
func withGame(db *sql.DB, groupID string, fn func(game *structs.Game) error) (*structs.Game, error) {
	unlock := lockGame(groupID)
	defer unlock()

	game, err := sqlite.LoadGame(db, groupID)
	if err != nil {
		return nil, err
	}
	if err := fn(game); err != nil {
		return nil, err
	}
	if err := sqlite.SaveGame(db, game); err != nil {
		return nil, err
	}
	return game, nil
}

// advance 按时间补齐应该执行的移动
func advance(game *structs.Game) error {
	_, err := snake.AdvanceIfNeeded(game, time.Now().Unix(), newFoodPlacer())
	return err
}

// storeNewGame 用给定的棋盘替换(或新建)一个游戏
func storeNewGame(db *sql.DB, groupID string, b *board.Board, snakes []structs.Snake, refreshInterval int) (*structs.Game, error) {
	unlock := lockGame(groupID)
	defer unlock()

	game := &structs.Game{
		GroupID:         groupID,
		Board:           b,
		Snakes:          snakes,
		LastRefresh:     time.Now().Unix(),
		RefreshInterval: refreshInterval,
	}
	if err := sqlite.SaveGame(db, game); err != nil {
		return nil, err
	}
	return game, nil
}

func refreshIntervalParam(c *gin.Context) (int, error) {
	v := c.Query("refresh_interval")
	if v == "" {
		return config.Get().RefreshInterval, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid refresh_interval %q", v)
	}
	return n, nil
}

func NewGameHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		groupID := c.Query("groupid")
		if groupID == "" {
			groupID = uuid.New().String()
		}
		interval, err := refreshIntervalParam(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		b, snakes := snake.NewDefaultGame()
		game, err := storeNewGame(db, groupID, b, snakes, interval)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gameResponse(game))
	}
}

func LoadBoardHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		groupID := c.Query("groupid")
		if groupID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required query parameter: groupid"})
			return
		}
		interval, err := refreshIntervalParam(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		b, err := board.Parse(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		snakes, err := snake.Rebuild(b)
		if err != nil {
			writeError(c, err)
			return
		}
		game, err := storeNewGame(db, groupID, b, snakes, interval)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gameResponse(game))
	}
}

func ImportBoardHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		groupID := c.Query("groupid")
		name := c.Query("name")
		if groupID == "" || name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required query parameters: groupid or name"})
			return
		}
		interval, err := refreshIntervalParam(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		b, err := storage.LoadBoard(storage.BoardPath(config.Get().BoardDir, name))
		if err != nil {
			writeError(c, err)
			return
		}
		snakes, err := snake.Rebuild(b)
		if err != nil {
			writeError(c, err)
			return
		}
		game, err := storeNewGame(db, groupID, b, snakes, interval)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gameResponse(game))
	}
}

func ExportBoardHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		groupID := c.Query("groupid")
		name := c.DefaultQuery("name", groupID)
		if groupID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required query parameter: groupid"})
			return
		}

		path := storage.BoardPath(config.Get().BoardDir, name)
		_, err := withGame(db, groupID, func(game *structs.Game) error {
			return storage.SaveBoard(path, game.Board)
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"path": path})
	}
}

// ListBoardsHandler 列出棋盘目录下可以导入的棋盘
func ListBoardsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		names, err := storage.ListBoards(config.Get().BoardDir)
		if err != nil {
			writeError(c, err)
			return
		}
		if names == nil {
			names = []string{}
		}
		c.JSON(http.StatusOK, gin.H{"boards": names})
	}
}

func TickHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		groupID := c.Query("groupid")
		count, err := strconv.Atoi(c.DefaultQuery("count", "1"))
		if groupID == "" || err != nil || count < 1 || count > snake.MaxCatchUpTicks {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Required: groupid, and count between 1 and " + strconv.Itoa(snake.MaxCatchUpTicks)})
			return
		}

		placeFood := newFoodPlacer()
		game, err := withGame(db, groupID, func(game *structs.Game) error {
			for i := 0; i < count; i++ {
				if err := snake.Tick(game.Board, game.Snakes, placeFood); err != nil {
					return err
				}
			}
			// 手动刷新后重新计时
			game.LastRefresh = time.Now().Unix()
			return nil
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gameResponse(game))
	}
}

func BoardHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		game, err := withGame(db, c.Query("groupid"), advance)
		if err != nil {
			writeError(c, err)
			return
		}
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(game.Board.Serialize()))
	}
}

func ListGamesHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ids, err := sqlite.ListGames(db)
		if err != nil {
			writeError(c, err)
			return
		}
		if ids == nil {
			ids = []string{}
		}
		c.JSON(http.StatusOK, gin.H{"games": ids})
	}
}

func RenderMapHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		groupID := c.Query("groupid")
		game, err := withGame(db, groupID, advance)
		if err != nil {
			writeError(c, err)
			return
		}

		// 绘图
		img := render.RenderBoard(game.Board, config.Get().Blocksize, memimg.GetTile)
		fileName := filepath.Base(filepath.Clean("/"+groupID)) + ".png"
		if err := os.MkdirAll(StaticDir, os.ModePerm); err != nil {
			writeError(c, err)
			return
		}
		if err := render.SavePNG(filepath.Join(StaticDir, fileName), img); err != nil {
			writeError(c, err)
			return
		}

		imageUrl := fmt.Sprintf("%s/static/%s", config.Get().SelfPath, fileName)
		c.JSON(http.StatusOK, gin.H{"image_url": imageUrl, "game_over": snake.GameOver(game.Snakes)})
	}
}

func DeleteMapHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		groupID := c.Query("groupid")
		unlock := lockGame(groupID)
		err := sqlite.DeleteGame(db, groupID)
		unlock()
		if err != nil {
			writeError(c, err)
			return
		}
		log.Printf("deleted game %s", groupID)
		c.JSON(http.StatusOK, gin.H{"message": "Map deleted successfully"})
	}
}
