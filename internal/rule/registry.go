package rule

import "sort"

var registry []Rule

// Register adds a rule to the global registry. Registering a second rule
// with an ID already present panics, since rule packages register from
// init and a clash is a programming error.
func Register(r Rule) {
	if ByID(r.ID()) != nil {
		panic("rule: duplicate registration of " + r.ID())
	}
	registry = append(registry, r)
}

// All returns a copy of all registered rules sorted by ID.
func All() []Rule {
	result := make([]Rule, len(registry))
	copy(result, registry)
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID() < result[j].ID()
	})
	return result
}

// Defaults returns the registered rules that are enabled by default,
// sorted by ID.
func Defaults() []Rule {
	var result []Rule
	for _, r := range All() {
		if EnabledByDefault(r) {
			result = append(result, r)
		}
	}
	return result
}

// ByID returns the registered rule with the given ID, or nil.
func ByID(id string) Rule {
	for _, r := range registry {
		if r.ID() == id {
			return r
		}
	}
	return nil
}

// ByName returns the registered rule with the given name, or nil.
func ByName(name string) Rule {
	for _, r := range registry {
		if r.Name() == name {
			return r
		}
	}
	return nil
}

// Reset clears the registry. Used for testing.
func Reset() {
	registry = nil
}
