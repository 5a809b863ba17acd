// Package serve is the local preview server: it serves the public directory,
// rebuilds when a template override changes and tells open pages to reload.
package serve

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"notionsite/internal/logger"
)

// RebuildFunc regenerates the public directory.
type RebuildFunc func(ctx context.Context) error

type Options struct {
	PublicDir string
	// WatchDir is watched for changes; empty or missing disables watching.
	WatchDir string
	Rebuild  RebuildFunc
	Log      *logger.Logger
	// Debounce groups bursts of file events into one rebuild.
	Debounce time.Duration
	// RebuildTimeout bounds one rebuild.
	RebuildTimeout time.Duration
}

type Server struct {
	opt Options
	log *logger.Logger

	buildMu sync.Mutex

	sseMu     sync.Mutex
	sseConns  map[chan string]struct{}
	watcher   *fsnotify.Watcher
	watchOnce sync.Once
}

const reloadScript = `<script>new EventSource("/dev/events").onmessage=function(e){if(e.data==="reload")location.reload()}</script>`

func New(opt Options) (*Server, error) {
	if opt.PublicDir == "" {
		return nil, errors.New("serve: missing public dir")
	}
	if opt.Rebuild == nil {
		return nil, errors.New("serve: missing rebuild func")
	}
	if opt.Debounce <= 0 {
		opt.Debounce = 200 * time.Millisecond
	}
	if opt.RebuildTimeout <= 0 {
		opt.RebuildTimeout = 2 * time.Minute
	}
	log := opt.Log
	if log == nil {
		log = logger.Discard()
	}
	return &Server{
		opt:      opt,
		log:      log.With("component", "serve"),
		sseConns: make(map[chan string]struct{}),
	}, nil
}

func (s *Server) Close() error {
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}

// Handler routes the reload event stream and the public directory.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/dev/events", s.handleSSE)
	mux.HandleFunc("/", s.handleFile)
	return mux
}

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if err := s.rebuild(ctx); err != nil {
		return err
	}
	if err := s.startWatch(ctx); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()

	s.log.Info("listening", "addr", addr, "dir", s.opt.PublicDir)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// rebuild runs one build at a time and broadcasts a reload when it succeeds.
func (s *Server) rebuild(ctx context.Context) error {
	s.buildMu.Lock()
	defer s.buildMu.Unlock()

	start := time.Now()
	if err := s.opt.Rebuild(ctx); err != nil {
		return fmt.Errorf("rebuild: %w", err)
	}
	s.log.Info("rebuild complete", "took", time.Since(start).Round(time.Millisecond))
	s.broadcastSSE("reload")
	return nil
}

func (s *Server) startWatch(ctx context.Context) error {
	dir := s.opt.WatchDir
	if dir == "" {
		return nil
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		s.log.Info("not watching, directory missing", "dir", dir)
		return nil
	}

	var err error
	s.watchOnce.Do(func() {
		w, e := fsnotify.NewWatcher()
		if e != nil {
			err = e
			return
		}
		s.watcher = w

		err = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return w.Add(p)
			}
			return nil
		})
		if err == nil {
			go s.watchLoop(ctx)
		}
	})
	return err
}

func (s *Server) watchLoop(ctx context.Context) {
	s.log.Info("watching for changes", "dir", s.opt.WatchDir)
	debounce := time.NewTimer(time.Hour)
	debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			debounce.Stop()
			return
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				s.log.Debug("change", "file", ev.Name, "op", ev.Op.String())
				debounce.Reset(s.opt.Debounce)
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.log.Warn("watcher error", "err", err)
		case <-debounce.C:
			ctx2, cancel := context.WithTimeout(ctx, s.opt.RebuildTimeout)
			if err := s.rebuild(ctx2); err != nil {
				s.log.Error("rebuild failed", "err", err)
			}
			cancel()
		}
	}
}

func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan string, 8)

	s.sseMu.Lock()
	s.sseConns[ch] = struct{}{}
	s.sseMu.Unlock()

	defer func() {
		s.sseMu.Lock()
		delete(s.sseConns, ch)
		close(ch)
		s.sseMu.Unlock()
	}()
	fmt.Fprintf(w, "data: %s\n\n", "hello")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func (s *Server) broadcastSSE(msg string) {
	s.sseMu.Lock()
	defer s.sseMu.Unlock()
	for ch := range s.sseConns {
		select {
		case ch <- msg:
		default:
		}
	}
}

// handleFile serves the public directory the way a static host would:
// "/x/" maps to "/x/index.html" and a missing file gets 404.html.
func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	rel := path.Clean("/" + r.URL.Path)
	if strings.HasSuffix(r.URL.Path, "/") {
		rel = path.Join(rel, "index.html")
	}
	full := filepath.Join(s.opt.PublicDir, filepath.FromSlash(rel))
	if info, err := os.Stat(full); err == nil && info.IsDir() {
		full = filepath.Join(full, "index.html")
	}

	if !strings.HasSuffix(full, ".html") {
		if _, err := os.Stat(full); err != nil {
			s.handleNotFound(w, r)
			return
		}
		http.ServeFile(w, r, full)
		return
	}

	data, err := os.ReadFile(full)
	if err != nil {
		s.handleNotFound(w, r)
		return
	}
	writeHTML(w, injectReload(data))
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(filepath.Join(s.opt.PublicDir, "404.html"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write(injectReload(data))
}

func injectReload(page []byte) []byte {
	i := bytes.LastIndex(page, []byte("</body>"))
	if i < 0 {
		return append(page, reloadScript...)
	}
	out := make([]byte, 0, len(page)+len(reloadScript))
	out = append(out, page[:i]...)
	out = append(out, reloadScript...)
	return append(out, page[i:]...)
}

func writeHTML(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(data)
}
