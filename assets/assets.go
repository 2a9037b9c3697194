// package assets resolves the engine's external files: a line-oriented
// manifest declares every asset and how it behaves (Static, Dynamic,
// Optional), loaders decode images, shader source, and bitmap fonts, and an
// optional filesystem watcher re-emits Dynamic asset paths when their
// contents change so callers can hot reload.
package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/lumen2d/lumen/engine/logger"
	"github.com/lumen2d/lumen/engine/text"

	"github.com/fsnotify/fsnotify"
)

// Manager is the public interface for asset resolution. All paths are
// relative to the manager's root directory and must appear in the manifest.
type Manager interface {
	// Type looks up the declared type of a manifest entry.
	//
	// Parameters:
	//   - path: the manifest-relative asset path
	//
	// Returns:
	//   - AssetType: the declared type
	//   - bool: false if the path is not in the manifest
	Type(path string) (AssetType, bool)

	// Image loads and decodes a PNG or JPEG asset into RGBA staging data.
	//
	// Parameters:
	//   - path: the manifest-relative asset path
	//
	// Returns:
	//   - *ImageData: decoded pixels, tightly packed RGBA rows
	//   - error: an error if the asset is unknown or fails to decode
	Image(path string) (*ImageData, error)

	// ScaledImage loads an image asset and rescales it by the given factor,
	// used to match texture density to the window's DPI scale.
	//
	// Parameters:
	//   - path: the manifest-relative asset path
	//   - scale: the scale factor (1 returns the image as decoded)
	//
	// Returns:
	//   - *ImageData: decoded, rescaled pixels
	//   - error: an error if the asset is unknown or fails to decode
	ScaledImage(path string, scale float32) (*ImageData, error)

	// ShaderSource loads a WGSL asset as text.
	//
	// Parameters:
	//   - path: the manifest-relative asset path
	//
	// Returns:
	//   - string: the shader source
	//   - error: an error if the asset is unknown or unreadable
	ShaderSource(path string) (string, error)

	// Font loads a bitmap font descriptor asset.
	//
	// Parameters:
	//   - path: the manifest-relative asset path
	//
	// Returns:
	//   - *text.Font: the parsed font
	//   - error: an error if the asset is unknown or fails to parse
	Font(path string) (*text.Font, error)

	// WriteFile writes an asset's contents. Only Dynamic and Optional assets
	// are writable; Optional assets are created if missing.
	//
	// Parameters:
	//   - path: the manifest-relative asset path
	//   - data: the contents to write
	//
	// Returns:
	//   - error: an error if the asset is unknown or not writable
	WriteFile(path string, data []byte) error

	// Events returns the hot-reload channel. When watching is enabled, the
	// manifest-relative path of each changed Dynamic asset is sent here.
	//
	// Returns:
	//   - <-chan string: changed Dynamic asset paths
	Events() <-chan string

	// Close stops the watcher and releases the manager's resources.
	// Safe to call multiple times.
	//
	// Returns:
	//   - error: an error if the watcher fails to close
	Close() error
}

// manager is the implementation of the Manager interface.
type manager struct {
	mu sync.RWMutex

	root         string
	manifestFile string
	manifest     map[string]AssetType

	hotReload bool
	watcher   *fsnotify.Watcher
	events    chan string
	done      chan struct{}
	closeOnce sync.Once
}

var _ Manager = &manager{}

// NewManager creates an asset manager rooted at the given directory, parses
// its manifest, and, if hot reload is enabled, starts watching the tree for
// Dynamic asset changes.
//
// Parameters:
//   - root: the asset root directory
//   - options: functional options to configure the manager
//
// Returns:
//   - Manager: the configured manager
//   - error: an error if the manifest cannot be parsed or the watcher fails
func NewManager(root string, options ...ManagerBuilderOption) (Manager, error) {
	m := &manager{
		root:         root,
		manifestFile: "AssetLists.txt",
		events:       make(chan string, 16),
		done:         make(chan struct{}),
	}
	for _, opt := range options {
		opt(m)
	}

	f, err := os.Open(filepath.Join(m.root, m.manifestFile))
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()

	m.manifest, err = ParseManifest(f)
	if err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", m.manifestFile, err)
	}

	if m.hotReload {
		if err := m.startWatcher(); err != nil {
			return nil, fmt.Errorf("start asset watcher: %w", err)
		}
	}

	return m, nil
}

func (m *manager) Type(path string) (AssetType, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.manifest[path]
	return t, ok
}

func (m *manager) Image(path string) (*ImageData, error) {
	return m.ScaledImage(path, 1)
}

func (m *manager) ScaledImage(path string, scale float32) (*ImageData, error) {
	full, err := m.resolve(path)
	if err != nil {
		return nil, err
	}
	return loadImage(full, scale)
}

func (m *manager) ShaderSource(path string) (string, error) {
	full, err := m.resolve(path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return "", fmt.Errorf("read shader %s: %w", path, err)
	}
	return string(data), nil
}

func (m *manager) Font(path string) (*text.Font, error) {
	full, err := m.resolve(path)
	if err != nil {
		return nil, err
	}
	return text.LoadFont(full)
}

func (m *manager) WriteFile(path string, data []byte) error {
	m.mu.RLock()
	t, ok := m.manifest[path]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("asset %q is not in the manifest", path)
	}
	if !t.Writable() {
		return fmt.Errorf("asset %q is %s and not writable", path, t)
	}

	full := filepath.Join(m.root, filepath.FromSlash(path))
	if _, err := os.Stat(full); os.IsNotExist(err) && !t.Creatable() {
		return fmt.Errorf("asset %q does not exist and %s assets cannot be created", path, t)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("write asset %s: %w", path, err)
	}
	return nil
}

func (m *manager) Events() <-chan string {
	return m.events
}

func (m *manager) Close() error {
	var err error
	m.closeOnce.Do(func() {
		close(m.done)
		if m.watcher != nil {
			err = m.watcher.Close()
		}
	})
	return err
}

// resolve maps a manifest-relative path to an absolute path, enforcing that
// the asset is declared and, for non-Optional assets, that it exists.
func (m *manager) resolve(path string) (string, error) {
	m.mu.RLock()
	t, ok := m.manifest[path]
	m.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("asset %q is not in the manifest", path)
	}

	full := filepath.Join(m.root, filepath.FromSlash(path))
	if _, err := os.Stat(full); err != nil {
		if os.IsNotExist(err) && t.Creatable() {
			return "", fmt.Errorf("optional asset %q has not been created yet", path)
		}
		return "", fmt.Errorf("asset %q: %w", path, err)
	}
	return full, nil
}

// startWatcher walks the asset root adding every directory to an fsnotify
// watcher (fsnotify itself is non-recursive) and starts the event loop.
func (m *manager) startWatcher() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	m.watcher = w

	err = filepath.Walk(m.root, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return w.Add(walkPath)
		}
		return nil
	})
	if err != nil {
		w.Close()
		return err
	}

	go m.watch()
	return nil
}

// watch forwards Write and Create events for Dynamic assets onto the events
// channel. Newly created directories are added to the watch list; events for
// assets nobody registered as Dynamic are dropped.
func (m *manager) watch() {
	for {
		select {
		case e, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			if s, err := os.Stat(e.Name); err == nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					if err := m.watcher.Add(e.Name); err != nil {
						logger.Warn("asset watcher: add %s: %v", e.Name, err)
					}
				}
				continue
			}
			if e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			rel, err := filepath.Rel(m.root, e.Name)
			if err != nil {
				continue
			}
			rel = filepath.ToSlash(rel)

			m.mu.RLock()
			t, registered := m.manifest[rel]
			m.mu.RUnlock()
			if !registered || t != AssetTypeDynamic {
				continue
			}

			logger.Debug("asset changed: %s", rel)
			select {
			case m.events <- rel:
			default:
				// A slow consumer drops reload notifications rather than
				// stalling the watcher.
				logger.Warn("asset watcher: event channel full, dropping %s", rel)
			}

		case err, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
			logger.Error("asset watcher: %v", err)

		case <-m.done:
			return
		}
	}
}
