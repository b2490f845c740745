package rule

import "reflect"

// CloneRule returns an independent copy of r so settings can be applied
// per file without touching the registered instance. Configurable rules
// are rebuilt from a zero value with their DefaultSettings; other pointer
// rules are copied field by field.
func CloneRule(r Rule) Rule {
	rv := reflect.ValueOf(r)
	if rv.Kind() != reflect.Ptr {
		return r
	}

	newPtr := reflect.New(rv.Elem().Type())
	clone := newPtr.Interface().(Rule)

	if c, ok := r.(Configurable); ok {
		if cc, ok := clone.(Configurable); ok {
			_ = cc.ApplySettings(c.DefaultSettings())
			return clone
		}
	}

	newPtr.Elem().Set(rv.Elem())
	return clone
}
