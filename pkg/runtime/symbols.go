package runtime

import (
	"fmt"
	"sort"
)

// Variables is the flat, process-wide variable table. There is no scope chain:
// function bodies run against the same table as top-level code.
type Variables struct {
	values map[string]Value
}

// NewVariables creates an empty table.
func NewVariables() *Variables {
	return &Variables{values: make(map[string]Value)}
}

// Define binds name, replacing any previous value. Duplicate declarations are
// rejected when statements are synthesized, so a body that declares a name
// and runs twice simply rebinds it.
func (v *Variables) Define(name string, value Value) {
	v.values[name] = value
}

// Assign updates an existing binding.
func (v *Variables) Assign(name string, value Value) error {
	if _, ok := v.values[name]; !ok {
		return fmt.Errorf("undefined variable '%s'", name)
	}
	v.values[name] = value
	return nil
}

// Get retrieves a binding.
func (v *Variables) Get(name string) (Value, bool) {
	val, ok := v.values[name]
	return val, ok
}

// Has reports whether name has been declared.
func (v *Variables) Has(name string) bool {
	_, ok := v.values[name]
	return ok
}

// Keys returns the declared names in sorted order.
func (v *Variables) Keys() []string {
	return sortedKeys(v.values)
}

// Snapshot returns a copy of the current bindings.
func (v *Variables) Snapshot() map[string]Value {
	out := make(map[string]Value, len(v.values))
	for k, val := range v.values {
		out[k] = val
	}
	return out
}

// Functions maps function names to their synthesized bodies.
type Functions struct {
	bodies map[string]Body
}

// NewFunctions creates an empty table.
func NewFunctions() *Functions {
	return &Functions{bodies: make(map[string]Body)}
}

// Register records name with an empty body. It happens on the func line,
// before the body is filled in.
func (f *Functions) Register(name string) {
	f.bodies[name] = nil
}

// Commit stores the final body for name.
func (f *Functions) Commit(name string, body Body) {
	f.bodies[name] = body.Clone()
}

// Get returns a copy of the stored body.
func (f *Functions) Get(name string) (Body, bool) {
	body, ok := f.bodies[name]
	if !ok {
		return nil, false
	}
	return body.Clone(), true
}

// Has reports whether name is a registered function.
func (f *Functions) Has(name string) bool {
	_, ok := f.bodies[name]
	return ok
}

// Keys returns the function names in sorted order.
func (f *Functions) Keys() []string {
	return sortedKeys(f.bodies)
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
