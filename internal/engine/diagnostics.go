package engine

import "fmt"

// DiagnosticKind classifies a soft failure encountered during aggregation.
type DiagnosticKind string

const (
	DiagMissingResource    DiagnosticKind = "missing_resource"
	DiagMissingScopeEntity DiagnosticKind = "missing_scope_entity"
)

// Diagnostic reports a reference the engine could not resolve. The affected
// contribution is counted as zero; the computation itself never aborts.
type Diagnostic struct {
	Kind     DiagnosticKind `json:"kind"`
	EntityID string         `json:"entity_id"`
	Detail   string         `json:"detail"`
}

// collector accumulates diagnostics, deduplicating by kind and entity so a
// resource missing from fifty tasks is reported once.
type collector struct {
	seen  map[string]struct{}
	diags []Diagnostic
}

func newCollector() *collector {
	return &collector{seen: make(map[string]struct{})}
}

func (c *collector) add(kind DiagnosticKind, entityID, format string, args ...any) {
	key := string(kind) + "/" + entityID
	if _, ok := c.seen[key]; ok {
		return
	}
	c.seen[key] = struct{}{}
	c.diags = append(c.diags, Diagnostic{
		Kind:     kind,
		EntityID: entityID,
		Detail:   fmt.Sprintf(format, args...),
	})
}

func (c *collector) list() []Diagnostic {
	return c.diags
}
