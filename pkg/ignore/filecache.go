package ignore

import (
	"fmt"
	"os"
	"sync"

	"github.com/edsrzf/mmap-go"
)

// FileCache memory-maps source files so a watch-mode rerun that touches
// only a handful of files doesn't pay a fresh read cost for the rest of
// the tree on every event. Falls back to os.ReadFile when mmap fails (e.g.
// on a filesystem that doesn't support it).
type FileCache struct {
	mu    sync.RWMutex
	files map[string]*mappedFile
}

type mappedFile struct {
	data mmap.MMap
	file *os.File
	raw  []byte // set instead of data/file when mmap fell back
}

// NewFileCache returns an empty cache.
func NewFileCache() *FileCache {
	return &FileCache{files: make(map[string]*mappedFile)}
}

// Read returns path's contents, mapping it on first access.
func (c *FileCache) Read(path string) ([]byte, error) {
	c.mu.RLock()
	if mf, ok := c.files[path]; ok {
		c.mu.RUnlock()
		return mf.bytes(), nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if mf, ok := c.files[path]; ok {
		return mf.bytes(), nil
	}

	mf, err := loadMapped(path)
	if err != nil {
		return nil, err
	}
	c.files[path] = mf
	return mf.bytes(), nil
}

// Invalidate drops path from the cache, so the next Read re-maps it — used
// by watch mode after a change event.
func (c *FileCache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if mf, ok := c.files[path]; ok {
		mf.close()
		delete(c.files, path)
	}
}

// Close unmaps every cached file.
func (c *FileCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var firstErr error
	for path, mf := range c.files {
		if err := mf.close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("unmap %q: %w", path, err)
		}
	}
	c.files = make(map[string]*mappedFile)
	return firstErr
}

func loadMapped(path string) (*mappedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat %q: %w", path, err)
	}
	if stat.Size() == 0 {
		f.Close()
		return &mappedFile{raw: []byte{}}, nil
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		raw, readErr := os.ReadFile(path)
		f.Close()
		if readErr != nil {
			return nil, fmt.Errorf("mmap failed (%v) and fallback read failed for %q: %w", err, path, readErr)
		}
		return &mappedFile{raw: raw}, nil
	}

	return &mappedFile{data: data, file: f}, nil
}

func (mf *mappedFile) bytes() []byte {
	if mf.raw != nil {
		return mf.raw
	}
	return mf.data
}

func (mf *mappedFile) close() error {
	if mf.file == nil {
		return nil
	}
	if err := mf.data.Unmap(); err != nil {
		mf.file.Close()
		return err
	}
	return mf.file.Close()
}
