package domain

import "sort"

// PathMap maps a '/'-separated repository-relative path to its blob id
type PathMap map[string]ObjectID

// Paths returns the map keys in lexical order
func (m PathMap) Paths() []string {
	paths := make([]string, 0, len(m))
	for p := range m {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// ChangeStatus classifies a path in a change-set
type ChangeStatus string

const (
	ChangeAdded    ChangeStatus = "added"
	ChangeDeleted  ChangeStatus = "deleted"
	ChangeModified ChangeStatus = "modified"
)

// ChangeEntry is one classified path of a change-set.
// Content is only ever populated for added and modified entries.
type ChangeEntry struct {
	Content *string      `json:"content,omitempty" yaml:"content,omitempty"`
	Path    string       `json:"path" yaml:"path"`
	Status  ChangeStatus `json:"status" yaml:"status"`
}

// HasContent reports whether the entry can carry file content
func (e ChangeEntry) HasContent() bool {
	return e.Status == ChangeAdded || e.Status == ChangeModified
}

// ChangeSet is the classified difference between two path maps
type ChangeSet []ChangeEntry

// IsEmpty reports whether there is nothing to apply
func (cs ChangeSet) IsEmpty() bool {
	return len(cs) == 0
}

// Paths returns the paths of all entries in change-set order
func (cs ChangeSet) Paths() []string {
	paths := make([]string, len(cs))
	for i, e := range cs {
		paths[i] = e.Path
	}
	return paths
}

// Count returns the number of entries with the given status
func (cs ChangeSet) Count(status ChangeStatus) int {
	n := 0
	for _, e := range cs {
		if e.Status == status {
			n++
		}
	}
	return n
}

// SortByPath orders entries by path in place
func (cs ChangeSet) SortByPath() {
	sort.Slice(cs, func(i, j int) bool {
		return cs[i].Path < cs[j].Path
	})
}

// Diff classifies every path of base and head.
// Paths only in base are deleted, paths only in head are added and paths present
// in both with a different blob id are modified. Equal ids produce no entry.
// The result is sorted by path.
func Diff(base, head PathMap) ChangeSet {
	changes := ChangeSet{}

	for path, baseID := range base {
		headID, ok := head[path]
		switch {
		case !ok:
			changes = append(changes, ChangeEntry{Path: path, Status: ChangeDeleted})
		case headID != baseID:
			changes = append(changes, ChangeEntry{Path: path, Status: ChangeModified})
		}
	}

	for path := range head {
		if _, ok := base[path]; !ok {
			changes = append(changes, ChangeEntry{Path: path, Status: ChangeAdded})
		}
	}

	changes.SortByPath()
	return changes
}
