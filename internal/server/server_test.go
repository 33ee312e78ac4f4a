package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLiveReloadWrapper_InjectsIntoHTML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Livre", "1_a.html"), "<html><body>vers</body></html>")
	writeFile(t, filepath.Join(dir, "css", "style.css"), "body{}")

	srv := httptest.NewServer(newMux(newHub(zap.NewNop()), dir))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/Livre/1_a.html")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "new WebSocket")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(string(body)), "</body></html>"))
	assert.Equal(t, "no-cache, no-store, must-revalidate", resp.Header.Get("Cache-Control"))

	resp, err = http.Get(srv.URL + "/css/style.css")
	require.NoError(t, err)
	body, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, "body{}", string(body))
}

func TestLiveReloadWrapper_PassesErrorsThrough(t *testing.T) {
	srv := httptest.NewServer(newMux(newHub(zap.NewNop()), t.TempDir()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/missing.html")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.NotContains(t, string(body), "WebSocket")
}

func TestHub_BroadcastsReload(t *testing.T) {
	hub := newHub(zap.NewNop())
	srv := httptest.NewServer(newMux(hub, t.TempDir()))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.count() == 1 }, 2*time.Second, 10*time.Millisecond)
	hub.broadcastMessage([]byte("reload"))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "reload", string(msg))
}

func TestAddWatches(t *testing.T) {
	root := t.TempDir()
	poems := filepath.Join(root, "poems")
	require.NoError(t, os.MkdirAll(filepath.Join(poems, "Livre", "Chap"), 0755))
	writeFile(t, filepath.Join(root, "site.yaml"), "title: x")

	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer watcher.Close()

	err = addWatches(watcher, []string{poems, filepath.Join(root, "site.yaml"), filepath.Join(root, "missing")}, zap.NewNop())
	require.NoError(t, err)

	list := watcher.WatchList()
	assert.ElementsMatch(t, []string{
		root,
		poems,
		filepath.Join(poems, "Livre"),
		filepath.Join(poems, "Livre", "Chap"),
	}, list)
}

func TestWatchForChanges_RebuildsOnceAfterBurst(t *testing.T) {
	dir := t.TempDir()
	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer watcher.Close()
	require.NoError(t, watcher.Add(dir))

	var builds atomic.Int32
	built := make(chan struct{}, 10)
	build := func(ctx context.Context, clean bool) error {
		assert.False(t, clean)
		builds.Add(1)
		built <- struct{}{}
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go watchForChanges(ctx, watcher, newHub(zap.NewNop()), build, 200*time.Millisecond, zap.NewNop())

	for i := 0; i < 3; i++ {
		writeFile(t, filepath.Join(dir, "1_a.txt"), strings.Repeat("vers\n", i+1))
		time.Sleep(20 * time.Millisecond)
	}

	select {
	case <-built:
	case <-time.After(3 * time.Second):
		t.Fatal("no rebuild after the last change")
	}
	time.Sleep(400 * time.Millisecond)
	assert.Equal(t, int32(1), builds.Load())

	// A change arriving after that build still gets its own rebuild.
	writeFile(t, filepath.Join(dir, "2_b.txt"), "neige")
	require.Eventually(t, func() bool { return builds.Load() == 2 }, 3*time.Second, 10*time.Millisecond)
}
