package java

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/dhamidi/jsig/classfile"
	"github.com/dhamidi/jsig/internal/metrics"
	"golang.org/x/sync/singleflight"
)

// ClassPath loads classes from directories and jar or zip archives, in
// order. Loaded classes are cached, and concurrent loads of one name
// share a single read.
type ClassPath struct {
	entries []classPathEntry
	parent  ClassLoader

	classes sync.Map // binary name -> *Class
	group   singleflight.Group
}

type classPathEntry interface {
	open(internalName string) (io.ReadCloser, error)
	list() ([]string, error)
	close() error
	String() string
}

// NewClassPath opens every entry. parent, if not nil, is asked first.
func NewClassPath(parent ClassLoader, paths ...string) (*ClassPath, error) {
	cp := &ClassPath{parent: parent}
	for _, path := range paths {
		entry, err := openEntry(path)
		if err != nil {
			cp.Close()
			return nil, err
		}
		cp.entries = append(cp.entries, entry)
	}
	return cp, nil
}

func openEntry(path string) (classPathEntry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("class path entry %s: %w", path, err)
	}
	if info.IsDir() {
		return dirEntry(path), nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jar", ".zip":
		r, err := zip.OpenReader(path)
		if err != nil {
			return nil, fmt.Errorf("class path entry %s: %w", path, err)
		}
		files := make(map[string]*zip.File, len(r.File))
		for _, f := range r.File {
			files[f.Name] = f
		}
		return &jarEntry{path: path, r: r, files: files}, nil
	}
	return nil, fmt.Errorf("class path entry %s: not a directory, jar or zip file", path)
}

func (cp *ClassPath) Close() error {
	var errs []error
	for _, e := range cp.entries {
		if err := e.close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (cp *ClassPath) String() string {
	parts := make([]string, len(cp.entries))
	for i, e := range cp.entries {
		parts[i] = e.String()
	}
	return strings.Join(parts, string(os.PathListSeparator))
}

func (cp *ClassPath) LoadClass(name string) (*Class, error) {
	if c, ok := cp.classes.Load(name); ok {
		metrics.ClassLoads.WithLabelValues("cached").Inc()
		return c.(*Class), nil
	}
	if cp.parent != nil {
		c, err := cp.parent.LoadClass(name)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, ErrClassNotFound) {
			return nil, err
		}
	}

	v, err, _ := cp.group.Do(name, func() (any, error) {
		if c, ok := cp.classes.Load(name); ok {
			return c, nil
		}
		c, err := cp.find(name)
		if err != nil {
			return nil, err
		}
		actual, _ := cp.classes.LoadOrStore(name, c)
		return actual, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Class), nil
}

func (cp *ClassPath) find(name string) (*Class, error) {
	internal := classfile.BinaryToInternalName(name)
	for _, e := range cp.entries {
		rc, err := e.open(internal)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			metrics.ClassLoads.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("failed to open %s in %s: %w", name, e, err)
		}
		cf, err := classfile.Parse(rc)
		rc.Close()
		if err != nil {
			metrics.ClassLoads.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("failed to read %s from %s: %w", name, e, err)
		}
		if got := cf.ClassName(); got != internal {
			metrics.ClassLoads.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("%s in %s declares class %s", name, e, got)
		}
		metrics.ClassLoads.WithLabelValues("loaded").Inc()
		log.Debugf("loaded %s from %s", name, e)
		return NewClass(cf, cp), nil
	}
	metrics.ClassLoads.WithLabelValues("missing").Inc()
	return nil, fmt.Errorf("%w: %s", ErrClassNotFound, name)
}

// ClassNames lists the binary names of every class on the path, sorted.
// A name present in several entries is listed once.
func (cp *ClassPath) ClassNames() ([]string, error) {
	seen := map[string]bool{}
	var names []string
	for _, e := range cp.entries {
		internal, err := e.list()
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", e, err)
		}
		for _, n := range internal {
			name := classfile.InternalToBinaryName(n)
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names, nil
}

type dirEntry string

func (d dirEntry) String() string { return string(d) }
func (d dirEntry) close() error   { return nil }

func (d dirEntry) open(internalName string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(string(d), filepath.FromSlash(internalName)+".class"))
}

func (d dirEntry) list() ([]string, error) {
	var names []string
	err := filepath.WalkDir(string(d), func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || filepath.Ext(path) != ".class" {
			return nil
		}
		rel, err := filepath.Rel(string(d), path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		names = append(names, strings.TrimSuffix(rel, ".class"))
		return nil
	})
	return names, err
}

type jarEntry struct {
	path  string
	r     *zip.ReadCloser
	files map[string]*zip.File
}

func (j *jarEntry) String() string { return j.path }
func (j *jarEntry) close() error   { return j.r.Close() }

func (j *jarEntry) open(internalName string) (io.ReadCloser, error) {
	f, ok := j.files[internalName+".class"]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return f.Open()
}

func (j *jarEntry) list() ([]string, error) {
	var names []string
	for name, f := range j.files {
		if f.FileInfo().IsDir() || !strings.HasSuffix(name, ".class") {
			continue
		}
		if strings.HasPrefix(name, "META-INF/") {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ".class"))
	}
	return names, nil
}
