package icons

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"ai_diagram_studio/logging"
)

// Entry is one icon as served to the canvas UI.
type Entry struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Catalog lists the icons available under a directory. An icon is any .png
// or .svg file; its name is the base filename without extension. The catalog
// rescans lazily: a filesystem watcher only marks it dirty, and the next
// read re-lists the directory.
type Catalog struct {
	dir string

	mu    sync.Mutex
	files []string // sorted base filenames, extension kept
	dirty bool

	watcher *fsnotify.Watcher
}

// NewCatalog creates a catalog over dir. The directory is not read until the
// first access; a missing directory yields an empty catalog, not an error.
func NewCatalog(dir string) *Catalog {
	return &Catalog{dir: dir, dirty: true}
}

// Watch starts watching the icon directory for changes. It returns an error
// if the directory cannot be watched (e.g. it does not exist). Cancelling
// ctx stops the watcher.
func (c *Catalog) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := watcher.Add(c.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch icon directory %s: %w", c.dir, err)
	}
	c.watcher = watcher
	logging.Info("watching icon directory", "path", c.dir)

	go c.processEvents(ctx)
	return nil
}

func (c *Catalog) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			c.watcher.Close()
			return

		case event, ok := <-c.watcher.Events:
			if !ok {
				return
			}
			if isIconFile(event.Name) {
				c.markDirty()
			}

		case err, ok := <-c.watcher.Errors:
			if !ok {
				return
			}
			logging.Error("icon watcher error", "error", err)
		}
	}
}

func (c *Catalog) markDirty() {
	c.mu.Lock()
	c.dirty = true
	c.mu.Unlock()
}

// refresh rescans the directory if the catalog is dirty. Callers hold mu.
func (c *Catalog) refresh() {
	if c.dirty {
		c.files = scan(c.dir)
		c.dirty = false
	}
}

// Names returns the sorted icon names offered to the model. An icon present
// as both .png and .svg is listed once.
func (c *Catalog) Names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refresh()

	seen := make(map[string]bool, len(c.files))
	names := make([]string, 0, len(c.files))
	for _, f := range c.files {
		name := strings.TrimSuffix(f, filepath.Ext(f))
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// Entries returns the catalog as name/path pairs, the shape the canvas
// consumes. Paths point at the icon file server with extensions kept.
func (c *Catalog) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refresh()

	entries := make([]Entry, 0, len(c.files))
	for _, f := range c.files {
		entries = append(entries, Entry{
			Name: strings.TrimSuffix(f, filepath.Ext(f)),
			Path: "/icons/" + f,
		})
	}
	return entries
}

func scan(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.Warn("failed to read icon directory", "path", dir, "error", err)
		}
		return nil
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !isIconFile(entry.Name()) {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)
	return files
}

func isIconFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".svg":
		return true
	}
	return false
}
