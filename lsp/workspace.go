package lsp

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Workspace holds the analyzed signature documents below a root
// directory, plus any document the editor has open.
type Workspace struct {
	mu      sync.RWMutex
	rootDir string
	files   map[string]*Document
}

func NewWorkspace(rootDir string) *Workspace {
	return &Workspace{
		rootDir: rootDir,
		files:   make(map[string]*Document),
	}
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

func (w *Workspace) ScanAll() error {
	return filepath.WalkDir(w.rootDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if entry.IsDir() {
			if path != w.rootDir && isHidden(entry.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == Ext {
			w.ScanFile(path)
		}
		return nil
	})
}

func (w *Workspace) ScanFile(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return w.UpdateFile(path, content), nil
}

func (w *Workspace) UpdateFile(path string, content []byte) *Document {
	doc := Analyze(path, content)
	w.mu.Lock()
	w.files[path] = doc
	w.mu.Unlock()
	log.Debugf("analyzed %s: %d entries", path, len(doc.Entries))
	return doc
}

func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.files, path)
}

func (w *Workspace) GetFile(path string) *Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[path]
}

// Documents returns all documents sorted by path.
func (w *Workspace) Documents() []*Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	docs := make([]*Document, 0, len(w.files))
	for _, d := range w.files {
		docs = append(docs, d)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	return docs
}

func isHidden(name string) bool {
	return len(name) > 1 && name[0] == '.'
}
