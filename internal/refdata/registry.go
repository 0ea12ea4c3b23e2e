package refdata

import "sort"

// Registry holds all controlled lists for a deployment. It is built once at
// startup and treated as immutable afterwards, so it can be shared across
// concurrent submissions without locking.
type Registry struct {
	lists  map[string][]Entry
	pinned map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		lists:  make(map[string][]Entry),
		pinned: make(map[string]string),
	}
}

// Register adds (or replaces) a list. pinnedCode designates the entry that
// always sorts first in Options; pass "" for plain ordering.
func (r *Registry) Register(name string, entries []Entry, pinnedCode string) {
	copied := make([]Entry, len(entries))
	copy(copied, entries)
	r.lists[name] = copied
	if pinnedCode != "" {
		r.pinned[name] = pinnedCode
	} else {
		delete(r.pinned, name)
	}
}

// Lists returns the registered list names, sorted.
func (r *Registry) Lists() []string {
	names := make([]string, 0, len(r.lists))
	for name := range r.lists {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve maps a code to its display label. Inactive entries still resolve so
// that historic submissions keep their labels.
func (r *Registry) Resolve(list, code string) (string, error) {
	entries, ok := r.lists[list]
	if !ok {
		return "", &UnknownListError{List: list}
	}
	for _, e := range entries {
		if e.Code == code {
			return e.Label, nil
		}
	}
	return "", &UnknownCodeError{List: list, Code: code}
}

// Contains reports whether an active entry with the code exists in the list.
func (r *Registry) Contains(list, code string) (bool, error) {
	entries, ok := r.lists[list]
	if !ok {
		return false, &UnknownListError{List: list}
	}
	for _, e := range entries {
		if e.Code == code {
			return e.IsActive, nil
		}
	}
	return false, nil
}

// Options returns the active entries of a list in presentation order: the
// pinned entry first, then ascending sort_order, ties broken alphabetically
// by label.
func (r *Registry) Options(list string) ([]Option, error) {
	entries, ok := r.lists[list]
	if !ok {
		return nil, &UnknownListError{List: list}
	}
	pinned := r.pinned[list]

	active := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.IsActive {
			active = append(active, e)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		a, b := active[i], active[j]
		if (a.Code == pinned) != (b.Code == pinned) {
			return a.Code == pinned
		}
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		return a.Label < b.Label
	})

	options := make([]Option, len(active))
	for i, e := range active {
		options[i] = Option{Code: e.Code, Label: e.Label}
	}
	return options, nil
}
