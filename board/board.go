// 棋盘 每条蛇的形状只记录在这里
package board

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// 默认棋盘布局
const (
	DefaultRows = 18
	DefaultCols = 20

	DefaultHeadRow = 2
	DefaultHeadCol = 4
	DefaultBodyRow = 2
	DefaultBodyCol = 3
	DefaultTailRow = 2
	DefaultTailCol = 2
	DefaultFoodRow = 2
	DefaultFoodCol = 9
)

// Board is a grid of cell symbols. Rows may differ in length when loaded
// from text.
type Board struct {
	cells [][]byte
}

// New 创建一个 rows x cols 的空棋盘
func New(rows, cols int) *Board {
	cells := make([][]byte, rows)
	for i := range cells {
		cells[i] = bytes.Repeat([]byte{Empty}, cols)
	}
	return &Board{cells: cells}
}

// Default 创建带边框的默认棋盘 放好一条蛇和一个食物
func Default() *Board {
	b := New(DefaultRows, DefaultCols)
	for i := 0; i < DefaultRows; i++ {
		for j := 0; j < DefaultCols; j++ {
			if i == 0 || i == DefaultRows-1 || j == 0 || j == DefaultCols-1 {
				b.cells[i][j] = Wall
			}
		}
	}
	b.cells[DefaultHeadRow][DefaultHeadCol] = HeadRight
	b.cells[DefaultTailRow][DefaultTailCol] = TailRight
	b.cells[DefaultBodyRow][DefaultBodyCol] = BodyRight
	b.cells[DefaultFoodRow][DefaultFoodCol] = Food
	return b
}

// Rows returns the number of rows.
func (b *Board) Rows() int {
	return len(b.cells)
}

// Width returns the length of the given row, or 0 if the row does not exist.
func (b *Board) Width(row int) int {
	if row < 0 || row >= len(b.cells) {
		return 0
	}
	return len(b.cells[row])
}

// CellCount returns the total number of cells across all rows.
func (b *Board) CellCount() int {
	n := 0
	for _, r := range b.cells {
		n += len(r)
	}
	return n
}

// InBounds reports whether (row, col) addresses a cell.
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < len(b.cells) && col >= 0 && col < len(b.cells[row])
}

// Get returns the symbol at (row, col).
func (b *Board) Get(row, col int) (byte, error) {
	if !b.InBounds(row, col) {
		return 0, fmt.Errorf("get (%d,%d): %w", row, col, ErrOutOfBounds)
	}
	return b.cells[row][col], nil
}

// Set writes symbol at (row, col).
func (b *Board) Set(row, col int, symbol byte) error {
	if !b.InBounds(row, col) {
		return fmt.Errorf("set (%d,%d): %w", row, col, ErrOutOfBounds)
	}
	b.cells[row][col] = symbol
	return nil
}

// Count 统计满足 pred 的格子数量
func (b *Board) Count(pred func(byte) bool) int {
	n := 0
	for _, r := range b.cells {
		for _, c := range r {
			if pred(c) {
				n++
			}
		}
	}
	return n
}

// Clone returns a deep copy.
func (b *Board) Clone() *Board {
	cells := make([][]byte, len(b.cells))
	for i, r := range b.cells {
		cells[i] = append([]byte(nil), r...)
	}
	return &Board{cells: cells}
}

// Equal reports whether both boards hold the same rows symbol for symbol.
func (b *Board) Equal(o *Board) bool {
	if len(b.cells) != len(o.cells) {
		return false
	}
	for i := range b.cells {
		if !bytes.Equal(b.cells[i], o.cells[i]) {
			return false
		}
	}
	return true
}

// Lines returns one string per row.
func (b *Board) Lines() []string {
	lines := make([]string, len(b.cells))
	for i, r := range b.cells {
		lines[i] = string(r)
	}
	return lines
}

// Serialize 每行后面跟一个换行 即持久化的文本格式
func (b *Board) Serialize() string {
	var sb strings.Builder
	for _, r := range b.cells {
		sb.Write(r)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (b *Board) String() string {
	return b.Serialize()
}

// WriteTo writes the serialized board to w.
func (b *Board) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, b.Serialize())
	return int64(n), err
}

// Deserialize splits text into rows, keeping each row's length as given.
// A single trailing newline is accepted and "\r\n" line ends are normalised.
func Deserialize(text string) *Board {
	if text == "" {
		return &Board{cells: [][]byte{}}
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	cells := make([][]byte, len(lines))
	for i, line := range lines {
		cells[i] = []byte(strings.TrimSuffix(line, "\r"))
	}
	return &Board{cells: cells}
}

// Parse reads a whole board from r.
func Parse(r io.Reader) (*Board, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Deserialize(string(data)), nil
}
