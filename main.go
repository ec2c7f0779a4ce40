package main

import (
	"log"
	"os"

	"github.com/hoshinonyaruko/snake-board/api"
	"github.com/hoshinonyaruko/snake-board/config"
	"github.com/hoshinonyaruko/snake-board/memimg"
)

func main() {
	// Initialize the configuration
	cfg := config.LoadConfig("./config.json")
	EnsureFoldersExist(cfg.BoardDir, cfg.TileDir, api.StaticDir)

	// 载入贴图到内存
	if err := memimg.LoadTiles(cfg.TileDir, cfg.Blocksize); err != nil {
		log.Printf("Failed to load tiles from %s: %v", cfg.TileDir, err)
	}
	// 检测并热更新到内存 加速绘图
	go func() {
		if err := memimg.WatchTiles(cfg.TileDir, cfg.Blocksize, nil); err != nil {
			log.Printf("Tile watcher stopped: %v", err)
		}
	}()

	db, err := api.InitDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database %s: %v", cfg.DBPath, err)
	}
	defer db.Close()

	router := api.SetupRouter(db)
	// 从配置单例读取端口 监听
	if err := router.Run(":" + config.GetConfigValue("port").(string)); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// EnsureFoldersExists 检查并创建必需的文件夹
func EnsureFoldersExist(folders ...string) {
	for _, folder := range folders {
		if _, err := os.Stat(folder); os.IsNotExist(err) {
			// 文件夹不存在，尝试创建它
			err := os.MkdirAll(folder, 0755) // 使用0755权限以确保读写权限
			if err != nil {
				// 如果创建失败，则记录错误并可能退出程序
				log.Fatalf("Failed to create %s directory: %s", folder, err)
			}
			log.Printf("Created %s directory", folder)
		} else {
			// 文件夹已存在
			log.Printf("%s directory already exists", folder)
		}
	}
}
