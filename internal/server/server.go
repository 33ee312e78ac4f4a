// internal/server/server.go
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const debounceDuration = 500 * time.Millisecond

// BuildFunc rebuilds the site. clean asks for the output directory to be
// emptied first.
type BuildFunc func(ctx context.Context, clean bool) error

type Options struct {
	Port       int
	OutputDir  string
	WatchPaths []string // directories are watched recursively, files via their parent
	Logger     *zap.Logger
}

// Run does a clean build, then serves OutputDir and rebuilds whenever a
// watched path changes, telling connected browsers to reload. It returns
// when ctx is cancelled or the listener fails.
func Run(ctx context.Context, build BuildFunc, opts Options) error {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if err := build(ctx, true); err != nil {
		return fmt.Errorf("initial build failed: %w", err)
	}

	hub := newHub(log)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := addWatches(watcher, opts.WatchPaths, log); err != nil {
		return err
	}
	go watchForChanges(ctx, watcher, hub, build, debounceDuration, log)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: newMux(hub, opts.OutputDir),
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("Serving site", zap.String("url", fmt.Sprintf("http://localhost%s", srv.Addr)))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func newMux(hub *Hub, outputDir string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWs(hub, w, r)
	})
	mux.Handle("/", liveReloadWrapper(http.FileServer(http.Dir(outputDir))))
	return mux
}

func addWatches(watcher *fsnotify.Watcher, paths []string, log *zap.Logger) error {
	watched := make(map[string]bool)
	addWatch := func(dir string) {
		dir = filepath.Clean(dir)
		if watched[dir] {
			return
		}
		if err := watcher.Add(dir); err != nil {
			log.Warn("Error adding watch", zap.String("dir", dir), zap.Error(err))
			return
		}
		log.Debug("Watching directory", zap.String("dir", dir))
		watched[dir] = true
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return fmt.Errorf("could not stat path %s: %w", path, err)
		}

		if !info.IsDir() {
			// Watch the parent so editors that save by rename are seen.
			addWatch(filepath.Dir(path))
			continue
		}
		if err := filepath.Walk(path, func(walkPath string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				addWatch(walkPath)
			}
			return nil
		}); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", path, err)
		}
	}
	return nil
}

// watchForChanges rebuilds once a burst of events has been quiet for
// debounce. Every event restarts the timer, so the last change of a burst
// is always part of a build.
func watchForChanges(ctx context.Context, watcher *fsnotify.Watcher, hub *Hub, build BuildFunc, debounce time.Duration, log *zap.Logger) {
	var (
		timer       *time.Timer
		lastChanged string
	)
	rebuild := make(chan struct{}, 1)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			// New book or chapter directories need their own watch.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watcher.Add(event.Name); err != nil {
						log.Warn("Error adding watch", zap.String("dir", event.Name), zap.Error(err))
					}
				}
			}
			lastChanged = event.Name
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case rebuild <- struct{}{}:
				default:
				}
			})
		case <-rebuild:
			log.Info("Change detected, rebuilding", zap.String("path", lastChanged))
			if err := build(ctx, false); err != nil {
				log.Error("Error rebuilding site", zap.Error(err))
				continue
			}
			log.Info("Site rebuilt, triggering reload", zap.Int("clients", hub.count()))
			hub.broadcastMessage([]byte("reload"))
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Warn("Watcher error", zap.Error(err))
		}
	}
}

// liveReloadWrapper disables caching and injects the reload script into
// HTML responses.
func liveReloadWrapper(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")

		isHTML := strings.HasSuffix(r.URL.Path, ".html") || strings.HasSuffix(r.URL.Path, "/")
		if !isHTML {
			next.ServeHTTP(w, r)
			return
		}

		iw := newInterceptingWriter(w)
		next.ServeHTTP(iw, r)

		for key, values := range iw.Header() {
			for _, value := range values {
				w.Header().Add(key, value)
			}
		}

		bodyBytes := iw.body.Bytes()
		if iw.statusCode != http.StatusOK {
			w.WriteHeader(iw.statusCode)
			w.Write(bodyBytes)
			return
		}

		injectedBody := bytes.Replace(bodyBytes, []byte("</body>"), []byte(liveReloadScript+"</body>"), 1)
		w.Header().Set("Content-Length", fmt.Sprint(len(injectedBody)))
		w.WriteHeader(iw.statusCode)
		w.Write(injectedBody)
	})
}

type interceptingWriter struct {
	http.ResponseWriter
	body       *bytes.Buffer
	statusCode int
	header     http.Header
}

func newInterceptingWriter(w http.ResponseWriter) *interceptingWriter {
	return &interceptingWriter{
		ResponseWriter: w,
		body:           new(bytes.Buffer),
		header:         make(http.Header),
		statusCode:     http.StatusOK,
	}
}

func (iw *interceptingWriter) Header() http.Header {
	return iw.header
}

func (iw *interceptingWriter) Write(b []byte) (int, error) {
	return iw.body.Write(b)
}

func (iw *interceptingWriter) WriteHeader(statusCode int) {
	iw.statusCode = statusCode
}

const liveReloadScript = `
<script>
  (function() {
    let socket = new WebSocket("ws://" + window.location.host + "/ws");
    socket.onmessage = function(event) {
      if (event.data === "reload") {
        window.location.reload();
      }
    };
    socket.onerror = function() {
      console.error("Live reload connection lost. Restart 'versebook serve'.");
    };
  })();
</script>
`
