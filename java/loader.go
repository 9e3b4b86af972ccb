package java

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dhamidi/jsig/classfile"
	"github.com/dhamidi/jsig/internal/metrics"
)

// ClassLoader finds classes by binary name, e.g. "java.util.Map$Entry".
// Implementations return an error wrapping ErrClassNotFound for unknown
// names and must be safe for concurrent use.
type ClassLoader interface {
	LoadClass(name string) (*Class, error)
}

// MemoryLoader holds classes defined at run time. Lookups go to the
// parent first, if there is one.
type MemoryLoader struct {
	parent ClassLoader

	mu      sync.RWMutex
	classes map[string]*Class
}

func NewMemoryLoader(parent ClassLoader) *MemoryLoader {
	return &MemoryLoader{parent: parent, classes: map[string]*Class{}}
}

// Define adds a class and returns it. Defining a name twice replaces
// the earlier class for later lookups.
func (l *MemoryLoader) Define(cf *classfile.ClassFile) *Class {
	c := NewClass(cf, l)
	l.mu.Lock()
	l.classes[c.Name()] = c
	l.mu.Unlock()
	return c
}

// DefineBytes parses and defines a class file.
func (l *MemoryLoader) DefineBytes(data []byte) (*Class, error) {
	c, err := ReadClass(data, l)
	if err != nil {
		return nil, fmt.Errorf("failed to define class: %w", err)
	}
	l.mu.Lock()
	l.classes[c.Name()] = c
	l.mu.Unlock()
	return c, nil
}

func (l *MemoryLoader) LoadClass(name string) (*Class, error) {
	if l.parent != nil {
		c, err := l.parent.LoadClass(name)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, ErrClassNotFound) {
			return nil, err
		}
	}

	l.mu.RLock()
	c, ok := l.classes[name]
	l.mu.RUnlock()
	if !ok {
		metrics.ClassLoads.WithLabelValues("missing").Inc()
		return nil, fmt.Errorf("%w: %s", ErrClassNotFound, name)
	}
	metrics.ClassLoads.WithLabelValues("cached").Inc()
	return c, nil
}

// Names lists the defined classes.
func (l *MemoryLoader) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := make([]string, 0, len(l.classes))
	for name := range l.classes {
		names = append(names, name)
	}
	return names
}
