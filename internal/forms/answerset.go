package forms

// AnswerSet holds every captured value for one onboarding submission. Keys are
// unique; insertion order is irrelevant because section ordering comes from the
// rule tables, not the capture sequence. The validation and serialization
// engines only read from it.
type AnswerSet struct {
	values map[Key]Value
}

// NewAnswerSet creates an empty answer set.
func NewAnswerSet() *AnswerSet {
	return &AnswerSet{values: make(map[Key]Value)}
}

// Put records a value, replacing any previous value under the same key.
func (a *AnswerSet) Put(k Key, v Value) {
	a.values[k] = v
}

// Get returns the value stored under the key.
func (a *AnswerSet) Get(k Key) (Value, bool) {
	v, ok := a.values[k]
	return v, ok
}

// Field looks up a singleton-section field.
func (a *AnswerSet) Field(section, field string) (Value, bool) {
	return a.Get(NewKey(section, field))
}

// InstanceField looks up a field on one instance of a repeating section.
func (a *AnswerSet) InstanceField(section string, instance int, field string) (Value, bool) {
	return a.Get(NewInstanceKey(section, instance, field))
}

// HasValue reports whether a non-blank value exists under the key.
func (a *AnswerSet) HasValue(k Key) bool {
	v, ok := a.values[k]
	return ok && !v.IsBlank()
}

// InstanceCount returns the number of instances captured for a repeating
// section: the highest instance index with at least one non-blank field, plus
// one. A section with no values has zero instances.
func (a *AnswerSet) InstanceCount(section string) int {
	count := 0
	for k, v := range a.values {
		if k.Section != section || v.IsBlank() {
			continue
		}
		if k.Instance+1 > count {
			count = k.Instance + 1
		}
	}
	return count
}

// Len returns the number of stored values.
func (a *AnswerSet) Len() int {
	return len(a.values)
}
