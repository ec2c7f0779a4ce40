// 棋盘贴图的内存缓存 按格子字符索引
package memimg

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/fsnotify/fsnotify"
	"github.com/hoshinonyaruko/snake-board/board"
)

var (
	tiles      = make(map[byte]image.Image)
	tilesMutex sync.RWMutex
)

// 贴图文件名(不带扩展名)到格子字符 有方向的贴图默认朝右
var tileSymbols = map[string][]byte{
	"wall": {board.Wall},
	"food": {board.Food},
	"dead": {board.DeadHead},
	"head": {board.HeadRight, board.HeadUp, board.HeadLeft, board.HeadDown},
	"body": {board.BodyRight, board.BodyUp, board.BodyLeft, board.BodyDown},
	"tail": {board.TailRight, board.TailUp, board.TailLeft, board.TailDown},
}

// LoadTiles loads every known sprite in directory, scaled to blockSize.
// Unknown files are skipped.
func LoadTiles(directory string, blockSize int) error {
	return filepath.Walk(directory, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		_, err = loadTile(path, blockSize)
		return err
	})
}

// loadTile 加载一张贴图 返回是否是已知的贴图
func loadTile(path string, blockSize int) (bool, error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	symbols, ok := tileSymbols[name]
	if !ok {
		return false, nil
	}
	img, err := LoadImage(path)
	if err != nil {
		return false, err
	}
	img = imaging.Resize(img, blockSize, blockSize, imaging.Lanczos)

	tilesMutex.Lock()
	defer tilesMutex.Unlock()
	for i, sym := range symbols {
		// 依次是 右 上 左 下 逆时针旋转
		switch i {
		case 0:
			tiles[sym] = img
		case 1:
			tiles[sym] = imaging.Rotate90(img)
		case 2:
			tiles[sym] = imaging.Rotate180(img)
		case 3:
			tiles[sym] = imaging.Rotate270(img)
		}
	}
	return true, nil
}

func LoadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// WatchTiles 检测并热更新贴图到内存 阻塞直到 done 关闭
func WatchTiles(directory string, blockSize int, done <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(directory); err != nil {
		return err
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				if known, err := loadTile(event.Name, blockSize); err != nil {
					log.Printf("reload tile %s: %v", event.Name, err)
				} else if known {
					log.Printf("reloaded tile %s", event.Name)
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Println("tile watcher error:", err)
		case <-done:
			return nil
		}
	}
}

// GetTile returns the sprite for a cell symbol.
func GetTile(symbol byte) (image.Image, bool) {
	tilesMutex.RLock()
	img, exists := tiles[symbol]
	tilesMutex.RUnlock()
	return img, exists
}

// Reset 清空缓存
func Reset() {
	tilesMutex.Lock()
	tiles = make(map[byte]image.Image)
	tilesMutex.Unlock()
}
