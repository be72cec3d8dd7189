// Package layermanager maintains the ordered list of layers visible to
// the editor, supporting bulk replace for script re-runs.
package layermanager

import (
	"sync"

	"github.com/lucidforge/sbcoord/sbcontext"
)

// key identifies a layer for matching purposes across a Replace call.
type key struct {
	id      string
	unnamed bool
}

func keyOf(l *sbcontext.Layer) key {
	return key{id: l.Identifier(), unnamed: l.IsUnnamed()}
}

// Manager holds the ordered, editor-visible layer list.
type Manager struct {
	mu     sync.Mutex
	layers []*sbcontext.Layer
}

// New returns an empty manager.
func New() *Manager {
	return &Manager{}
}

// Add appends layer to the end of the list.
func (m *Manager) Add(layer *sbcontext.Layer) {
	if layer == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.layers = append(m.layers, layer)
}

// Remove drops layer from the list, if present.
func (m *Manager) Remove(layer *sbcontext.Layer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, l := range m.layers {
		if l == layer {
			m.layers = append(m.layers[:i], m.layers[i+1:]...)
			return
		}
	}
}

// Layers returns a copy of the current ordered layer list.
func (m *Manager) Layers() []*sbcontext.Layer {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*sbcontext.Layer, len(m.layers))
	copy(out, m.layers)
	return out
}

// ReplacePlaceholder inlines replacements in place of placeholder,
// preserving the order of replacements and the position placeholder
// held. A no-op if placeholder is not present.
func (m *Manager) ReplacePlaceholder(placeholder *sbcontext.Layer, replacements []*sbcontext.Layer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, l := range m.layers {
		if l == placeholder {
			next := make([]*sbcontext.Layer, 0, len(m.layers)-1+len(replacements))
			next = append(next, m.layers[:i]...)
			next = append(next, replacements...)
			next = append(next, m.layers[i+1:]...)
			m.layers = next
			return
		}
	}
}

// ReplaceAll replaces the entire list with newLayers, matching by
// identifier: an old layer whose identifier (and unnamed-ness) appears
// in newLayers's identifier set is reused in place of its
// newLayers-supplied counterpart, so shared coordinator state survives
// a re-run. Layers present in newLayers but not matched by an old
// layer are inserted as given. Old layers with no match in newLayers
// are dropped. Ordering follows newLayers.
func (m *Manager) ReplaceAll(newLayers []*sbcontext.Layer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existingByKey := make(map[key]*sbcontext.Layer, len(m.layers))
	for _, l := range m.layers {
		existingByKey[keyOf(l)] = l
	}

	next := make([]*sbcontext.Layer, len(newLayers))
	for i, l := range newLayers {
		if existing, ok := existingByKey[keyOf(l)]; ok {
			next[i] = existing
			continue
		}
		next[i] = l
	}
	m.layers = next
}
