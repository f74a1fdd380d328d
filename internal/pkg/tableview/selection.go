package tableview

// SelectionType chooses between multi and single row selection.
type SelectionType string

const (
	SelectionCheckbox SelectionType = "checkbox"
	SelectionRadio    SelectionType = "radio"
)

// Selection tracks selected row keys in insertion order.
// Under radio type the selection never holds more than one key.
type Selection struct {
	typ  SelectionType
	keys []string
	set  map[string]bool
}

// NewSelection creates an empty selection.
func NewSelection(typ SelectionType) *Selection {
	if typ != SelectionRadio {
		typ = SelectionCheckbox
	}
	return &Selection{typ: typ, set: make(map[string]bool)}
}

// Type returns the selection type.
func (s *Selection) Type() SelectionType { return s.typ }

// Toggle flips one row's selected state. Radio selections replace the
// previous key instead of accumulating.
func (s *Selection) Toggle(key string) {
	if s.set[key] {
		s.remove(key)
		return
	}
	if s.typ == SelectionRadio {
		s.Clear()
	}
	s.keys = append(s.keys, key)
	s.set[key] = true
}

// SelectAll toggles selection of exactly the rows visible on the current
// page: if every page key is already selected they are deselected, otherwise
// the missing ones are added. A no-op for radio selections.
func (s *Selection) SelectAll(pageKeys []string) {
	if s.typ == SelectionRadio {
		return
	}

	all := len(pageKeys) > 0
	for _, key := range pageKeys {
		if !s.set[key] {
			all = false
			break
		}
	}

	if all {
		for _, key := range pageKeys {
			s.remove(key)
		}
		return
	}
	for _, key := range pageKeys {
		if !s.set[key] {
			s.keys = append(s.keys, key)
			s.set[key] = true
		}
	}
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.keys = s.keys[:0]
	s.set = make(map[string]bool)
}

// Keys returns the selected keys in selection order.
func (s *Selection) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Contains reports whether the key is selected.
func (s *Selection) Contains(key string) bool { return s.set[key] }

func (s *Selection) remove(key string) {
	if !s.set[key] {
		return
	}
	delete(s.set, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
}
