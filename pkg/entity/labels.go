package entity

import "strings"

// Graph labels shared by the loader and exporter.
const (
	// LabelEntity is the generic label carried by every loaded node.
	LabelEntity = "AngularEntity"

	// LabelPlaceholder marks stand-in nodes for relationship targets that
	// could not be resolved to a loaded entity.
	LabelPlaceholder = "ExternalOrUnresolved"

	// LabelUnknown is the type-specific label for unrecognized entity types.
	LabelUnknown = "UnknownEntity"
)

// ReservedPrefixes are the target-id prefixes that mark a relationship
// target as unresolvable. A prefixed target is materialized as a
// placeholder node instead of being matched by business id.
var ReservedPrefixes = []string{"Unresolved:", "Ambiguous:", "External:"}

// labelTable maps each entity type to its ordered label set. Every entry
// leads with the generic label followed by the type-specific one.
var labelTable = map[string][]string{
	"File":      {LabelEntity, "File"},
	"Component": {LabelEntity, "Component"},
	"Service":   {LabelEntity, "Service"},
	"Module":    {LabelEntity, "Module"},
	"Pipe":      {LabelEntity, "Pipe"},
	"Directive": {LabelEntity, "Directive"},
	"Interface": {LabelEntity, "Interface"},
	"Class":     {LabelEntity, "Class"},
	"Unknown":   {LabelEntity, LabelUnknown},
}

// Labels resolves an entity type to its ordered label set. Unmapped types
// resolve to the generic/unknown pair; there is no error case.
func Labels(entityType string) []string {
	if labels, ok := labelTable[entityType]; ok {
		return labels
	}
	return []string{LabelEntity, LabelUnknown}
}

// SplitReservedPrefix checks targetID for a reserved prefix. When one is
// present it returns the prefix tag (without the trailing colon), the
// remainder of the id, and true.
func SplitReservedPrefix(targetID string) (status, name string, ok bool) {
	for _, prefix := range ReservedPrefixes {
		if strings.HasPrefix(targetID, prefix) {
			return strings.TrimSuffix(prefix, ":"), targetID[len(prefix):], true
		}
	}
	return "", "", false
}
