package sbcontext

import "github.com/lucidforge/sbcoord/coordinator"

// Layer is a named, ordered container of storyboard objects, carrying
// its own LayerCommandCoordinator.
type Layer struct {
	identifier  string
	unnamed     bool
	Coordinator *coordinator.Coordinator
}

// Identifier returns the layer's external identifier, or "" for the
// unnamed slot (use IsUnnamed to distinguish that from a layer
// literally identified by the empty string).
func (l *Layer) Identifier() string { return l.identifier }

// IsUnnamed reports whether l is the single reserved unnamed slot.
func (l *Layer) IsUnnamed() bool { return l.unnamed }
