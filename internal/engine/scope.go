// Package engine implements the cost aggregation and classification engine.
// It is a pure computation layer: every query takes an immutable Snapshot of
// cost, task, feature and resource records and returns plain result rows.
// The engine performs no I/O and holds no state, so concurrent calls are safe.
package engine

type filterKind int

const (
	filterAll filterKind = iota
	filterProductLevel
	filterModule
)

// ScopeFilter is the tri-state module filter applied to every entity before
// aggregation: all entities, product-level entities only (no module), or the
// entities of one specific module.
type ScopeFilter struct {
	kind     filterKind
	moduleID string
}

// FilterAll passes every entity.
func FilterAll() ScopeFilter {
	return ScopeFilter{kind: filterAll}
}

// FilterProductLevel passes only entities with no module association.
func FilterProductLevel() ScopeFilter {
	return ScopeFilter{kind: filterProductLevel}
}

// FilterModule passes only entities belonging to the given module. An empty
// module id means "no module", so it normalizes to the product-level filter.
func FilterModule(moduleID string) ScopeFilter {
	if moduleID == "" {
		return ScopeFilter{kind: filterProductLevel}
	}
	return ScopeFilter{kind: filterModule, moduleID: moduleID}
}

// ParseFilter converts the wire form of the module filter into a ScopeFilter.
// An absent parameter or "all" selects everything; the "product-level"
// sentinel selects unassigned entities; any other value is a module id.
func ParseFilter(param string) ScopeFilter {
	switch param {
	case "", "all":
		return FilterAll()
	case "product-level":
		return FilterProductLevel()
	default:
		return FilterModule(param)
	}
}

// InScope reports whether an entity with the given module id passes the
// filter. A stored empty string is treated the same as an absent module.
func (f ScopeFilter) InScope(moduleID string) bool {
	switch f.kind {
	case filterProductLevel:
		return moduleID == ""
	case filterModule:
		return moduleID == f.moduleID
	default:
		return true
	}
}

// Kind returns the filter's shape without the module id, suitable as a
// low-cardinality metrics label.
func (f ScopeFilter) Kind() string {
	switch f.kind {
	case filterProductLevel:
		return "product-level"
	case filterModule:
		return "module"
	default:
		return "all"
	}
}

// String returns the wire form of the filter, for logging.
func (f ScopeFilter) String() string {
	switch f.kind {
	case filterProductLevel:
		return "product-level"
	case filterModule:
		return f.moduleID
	default:
		return "all"
	}
}
