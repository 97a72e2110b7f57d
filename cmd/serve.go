package cmd

import (
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
	"github.com/spf13/cobra"

	"github.com/burgertron6/Guilded-NET.github.io/internal/logging"
)

const debounceDuration = 500 * time.Millisecond

var serverPort int

var serveCmd = &cobra.Command{
	Use:   "serve [source]",
	Short: "Serves the generated pages locally and rebuilds on changes",
	Long: `The serve command performs an initial build, serves the output directory
over HTTP and watches the source tree. Any change triggers a full rebuild
after a short quiet period.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Info("performing initial build")
		report, err := runBuild(args)
		if err != nil {
			return fmt.Errorf("initial build failed: %w", err)
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("failed to create file watcher: %w", err)
		}
		defer watcher.Close()

		sw := &siteWatcher{
			watcher: watcher,
			rebuild: newRebuilder(debounceDuration, func() error {
				_, err := runBuild(args)
				return err
			}, logger),
			skip: underDir(report.OutputDir),
			log:  logger,
		}
		if err := sw.addTree(report.SourceDir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", report.SourceDir, err)
		}
		go sw.run()

		addr := fmt.Sprintf(":%d", serverPort)
		logger.Info("serving site", "output", report.OutputDir, "url", "http://localhost"+addr)
		return http.ListenAndServe(addr, devHandler(report.OutputDir))
	},
}

func init() {
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 1313, "Port to serve the site on")
	rootCmd.AddCommand(serveCmd)
}

type trigger interface {
	Trigger()
}

// rebuilder debounces change notifications into full rebuilds and never
// runs two builds at once.
type rebuilder struct {
	mu    sync.Mutex
	timer *time.Timer
	delay time.Duration

	building sync.Mutex
	build    func() error
	log      logging.Logger
}

func newRebuilder(delay time.Duration, build func() error, log logging.Logger) *rebuilder {
	return &rebuilder{delay: delay, build: build, log: log}
}

func (r *rebuilder) Trigger() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.delay, r.run)
}

func (r *rebuilder) run() {
	r.building.Lock()
	defer r.building.Unlock()

	r.log.Info("rebuilding site due to changes")
	if err := r.build(); err != nil {
		r.log.Error("rebuild failed", "error", err)
		return
	}
	r.log.Info("site rebuilt")
}

type siteWatcher struct {
	watcher *fsnotify.Watcher
	rebuild trigger
	skip    func(path string) bool
	log     logging.Logger
}

// addTree watches root and every directory below it; fsnotify is not
// recursive on its own.
func (s *siteWatcher) addTree(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if s.skip != nil && s.skip(p) {
			return filepath.SkipDir
		}
		return s.watcher.Add(p)
	})
}

func (s *siteWatcher) run() {
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			s.handle(event)
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.log.Warn("watcher error", "error", err)
		}
	}
}

// handle reports whether the event scheduled a rebuild.
func (s *siteWatcher) handle(event fsnotify.Event) bool {
	if s.skip != nil && s.skip(event.Name) {
		return false
	}
	if !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)) {
		return false
	}
	s.log.Debug("change detected", "path", event.Name, "op", event.Op.String())

	if event.Has(fsnotify.Create) && isDir(event.Name) {
		if err := s.addTree(event.Name); err != nil {
			s.log.Warn("failed to watch new directory", "path", event.Name, "error", err)
		}
	}
	s.rebuild.Trigger()
	return true
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// underDir matches dir itself and anything inside it, so a build writing
// into a watched tree does not retrigger itself.
func underDir(dir string) func(string) bool {
	dir = filepath.Clean(dir)
	return func(p string) bool {
		p = filepath.Clean(p)
		return p == dir || strings.HasPrefix(p, dir+string(filepath.Separator))
	}
}

// devHandler serves the output tree without caching. Extensionless paths
// resolve to their page, so /guides/setup serves guides/setup.html.
func devHandler(dir string) http.Handler {
	files := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := r.URL.Path
		if strings.HasSuffix(p, "/") && p != "/" {
			if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(p), "index.html")); os.IsNotExist(err) {
				http.NotFound(w, r)
				return
			}
		}
		if p != "/" && !strings.HasSuffix(p, "/") && path.Ext(p) == "" {
			if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(p)+".html")); err == nil {
				r.URL.Path = p + ".html"
			}
		}

		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		files.ServeHTTP(w, r)
	})
}
