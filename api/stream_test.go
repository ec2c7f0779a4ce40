package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hoshinonyaruko/snake-board/board"
)

func TestStreamPushesBoard(t *testing.T) {
	router, _ := setupTest(t)
	decodeGame(t, do(t, router, "GET", "/new-game?groupid=g1", ""))

	srv := httptest.NewServer(router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/stream?groupid=g1"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	for i := 0; i < 2; i++ {
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		kind, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("ReadMessage %d: %v", i, err)
		}
		if kind != websocket.TextMessage {
			t.Fatalf("Expected text frame, got %d", kind)
		}
		// 手动刷新的游戏不会自己移动
		if string(data) != board.Default().Serialize() {
			t.Errorf("Frame %d: unexpected board\n%s", i, data)
		}
	}
}

func TestStreamMissingGame(t *testing.T) {
	router, _ := setupTest(t)
	srv := httptest.NewServer(router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/stream?groupid=nope"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("Expected dial to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404 response, got %v", resp)
	}
}
