package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/hoshinonyaruko/snake-board/board"
)

func TestSaveLoadBoard(t *testing.T) {
	dir := t.TempDir()
	path := BoardPath(dir, "default")

	if err := SaveBoard(path, board.Default()); err != nil {
		t.Fatalf("SaveBoard: %v", err)
	}
	b, err := LoadBoard(path)
	if err != nil {
		t.Fatalf("LoadBoard: %v", err)
	}
	if !b.Equal(board.Default()) {
		t.Errorf("Loaded board differs:\n%s", b)
	}
}

func TestLoadBoardMissing(t *testing.T) {
	_, err := LoadBoard(filepath.Join(t.TempDir(), "nope.txt"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}

func TestListBoards(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.txt", "a.txt", "notes.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("#\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.txt"), 0755); err != nil {
		t.Fatal(err)
	}

	names, err := ListBoards(dir)
	if err != nil {
		t.Fatalf("ListBoards: %v", err)
	}
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("Expected [a b], got %v", names)
	}
}

func TestBoardPathStripsDirectories(t *testing.T) {
	got := BoardPath("/data", "../../etc/passwd")
	if got != filepath.Join("/data", "passwd.txt") {
		t.Errorf("Unexpected path %s", got)
	}
}
