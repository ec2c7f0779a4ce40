// 把棋盘画成图片
package render

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/hoshinonyaruko/snake-board/board"
)

// TileFunc 根据格子字符返回贴图
type TileFunc func(symbol byte) (image.Image, bool)

// 没有贴图时使用的颜色
var fallbackColors = map[byte]color.RGBA{
	board.Wall:     {64, 64, 64, 255},
	board.Food:     {220, 40, 40, 255},
	board.DeadHead: {0, 0, 0, 255},
}

func symbolColor(c byte) (color.RGBA, bool) {
	if col, ok := fallbackColors[c]; ok {
		return col, true
	}
	switch {
	case board.IsLiveHead(c):
		return color.RGBA{20, 120, 20, 255}, true
	case board.IsBody(c):
		return color.RGBA{60, 180, 60, 255}, true
	case board.IsTail(c):
		return color.RGBA{120, 210, 120, 255}, true
	}
	return color.RGBA{}, false
}

// RenderBoard draws one blockSize square per cell. Sprites from tiles are
// used when available, otherwise a flat color. tiles may be nil.
func RenderBoard(b *board.Board, blockSize int, tiles TileFunc) image.Image {
	cols := 0
	for row := 0; row < b.Rows(); row++ {
		if w := b.Width(row); w > cols {
			cols = w
		}
	}
	if blockSize <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	width := cols * blockSize
	height := b.Rows() * blockSize
	if width == 0 || height == 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	renderGrid(dc, width, height, blockSize)

	for row := 0; row < b.Rows(); row++ {
		for col := 0; col < b.Width(row); col++ {
			c, _ := b.Get(row, col)
			x, y := col*blockSize, row*blockSize
			if tiles != nil {
				if img, found := tiles(c); found {
					dc.DrawImage(img, x, y)
					continue
				}
			}
			if fill, ok := symbolColor(c); ok {
				dc.SetColor(fill)
				dc.DrawRectangle(float64(x), float64(y), float64(blockSize), float64(blockSize))
				dc.Fill()
			}
		}
	}
	return dc.Image()
}

func renderGrid(dc *gg.Context, width, height, blockSize int) {
	dc.SetRGB(0.9, 0.9, 0.9)
	for x := 0; x <= width; x += blockSize {
		dc.DrawLine(float64(x), 0, float64(x), float64(height))
		dc.Stroke()
	}
	for y := 0; y <= height; y += blockSize {
		dc.DrawLine(0, float64(y), float64(width), float64(y))
		dc.Stroke()
	}
}

// SavePNG 保存图片
func SavePNG(path string, img image.Image) error {
	return gg.SavePNG(path, img)
}
