// Package scene holds the interactive objects of a running scene and the
// ordered registry the frame runner walks.
package scene

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/elliotchance/orderedmap/v2"

	"github.com/zeusync/vrscene/internal/core/frame"
	"github.com/zeusync/vrscene/internal/core/geom"
)

// ObjectID is a stable identifier derived from an object's name.
type ObjectID uint64

func IDOf(name string) ObjectID {
	return ObjectID(xxhash.Sum64String(name))
}

func (id ObjectID) String() string {
	return fmt.Sprintf("%016x", uint64(id))
}

// View is a read-only description of an object for renderers.
type View struct {
	ID    ObjectID
	Name  string
	Kind  string
	Pose  geom.Pose
	State string
	Value float64
}

// Describer is implemented by objects that can be drawn.
type Describer interface {
	Describe() []View
}

type entry struct {
	name string
	obj  frame.Object
}

// Registry keeps objects in insertion order, which is the order they submit
// in every frame. It is owned by the frame loop goroutine.
type Registry struct {
	objects *orderedmap.OrderedMap[ObjectID, entry]
}

var _ frame.Objects = (*Registry)(nil)

func NewRegistry() *Registry {
	return &Registry{objects: orderedmap.NewOrderedMap[ObjectID, entry]()}
}

func (r *Registry) Add(name string, obj frame.Object) (ObjectID, error) {
	if name == "" {
		return 0, ErrEmptyName
	}
	if obj == nil {
		return 0, fmt.Errorf("%w: %q", ErrNilObject, name)
	}
	id := IDOf(name)
	if existing, ok := r.objects.Get(id); ok {
		return 0, fmt.Errorf("%w: %q collides with %q", ErrDuplicateObject, name, existing.name)
	}
	r.objects.Set(id, entry{name: name, obj: obj})
	return id, nil
}

func (r *Registry) Remove(name string) bool {
	return r.objects.Delete(IDOf(name))
}

func (r *Registry) Get(name string) (frame.Object, bool) {
	e, ok := r.objects.Get(IDOf(name))
	if !ok {
		return nil, false
	}
	return e.obj, true
}

func (r *Registry) Len() int {
	return r.objects.Len()
}

func (r *Registry) Range(fn func(name string, obj frame.Object) bool) {
	for el := r.objects.Front(); el != nil; el = el.Next() {
		if !fn(el.Value.name, el.Value.obj) {
			return
		}
	}
}

// Views describes every drawable object in registration order.
func (r *Registry) Views() []View {
	var out []View
	r.Range(func(name string, obj frame.Object) bool {
		d, ok := obj.(Describer)
		if !ok {
			return true
		}
		for _, v := range d.Describe() {
			if v.Name == "" {
				v.Name = name
			}
			v.ID = IDOf(v.Name)
			out = append(out, v)
		}
		return true
	})
	return out
}
