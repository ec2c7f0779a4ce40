// 棋盘文本文件的读写
package storage

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hoshinonyaruko/snake-board/board"
)

// Ext 棋盘文件的扩展名
const Ext = ".txt"

// SaveBoard writes the board's text form to path.
func SaveBoard(path string, b *board.Board) error {
	return os.WriteFile(path, []byte(b.Serialize()), 0644)
}

// LoadBoard reads a board from path. File errors are returned unchanged.
func LoadBoard(path string) (*board.Board, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return board.Parse(file)
}

// ListBoards 返回目录下所有棋盘文件的名字(不带扩展名) 按字母排序
func ListBoards(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != Ext {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), Ext))
	}
	sort.Strings(names)
	return names, nil
}

// BoardPath 拼出目录下某个棋盘文件的路径 名字里的路径成分会被去掉
func BoardPath(dir, name string) string {
	return filepath.Join(dir, filepath.Base(filepath.Clean("/"+name))+Ext)
}
