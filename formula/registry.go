package formula

import (
	"fmt"
	"strings"

	"github.com/elliotchance/orderedmap/v3"
)

// Func computes a formula from its argument text. Nested calls have already
// been replaced by their results when it is called.
type Func func(args string, ctx Context) (float64, error)

type Builtin struct {
	Name string
	Help string
	Call Func
}

// Registry keeps the formulas in the order they were registered.
type Registry struct {
	funcs *orderedmap.OrderedMap[string, Builtin]
}

func NewRegistry() *Registry {
	return &Registry{
		funcs: orderedmap.NewOrderedMap[string, Builtin](),
	}
}

func (r *Registry) Register(name, help string, fn Func) error {
	name = strings.ToUpper(name)
	if name == "" || !isName(name) {
		return fmt.Errorf("%s: invalid formula name", name)
	}
	if _, ok := r.funcs.Get(name); ok {
		return fmt.Errorf("%s: formula already registered", name)
	}
	r.funcs.Set(name, Builtin{
		Name: name,
		Help: help,
		Call: fn,
	})
	return nil
}

func (r *Registry) Lookup(name string) (Builtin, bool) {
	return r.funcs.Get(strings.ToUpper(name))
}

func (r *Registry) Len() int {
	return r.funcs.Len()
}

func (r *Registry) Builtins() []Builtin {
	list := make([]Builtin, 0, r.funcs.Len())
	for _, b := range r.funcs.AllFromFront() {
		list = append(list, b)
	}
	return list
}

func isName(str string) bool {
	for i := 0; i < len(str); i++ {
		c := str[i]
		if !(c >= 'a' && c <= 'z') && !(c >= 'A' && c <= 'Z') {
			return false
		}
	}
	return len(str) > 0
}
