package forms

import "fmt"

// Key addresses one captured value inside a submission. Singleton sections use
// instance 0; person-collection sections use the 0-based instance index.
type Key struct {
	Section  string
	Instance int
	Field    string
}

// NewKey builds a key for a singleton section field.
func NewKey(section, field string) Key {
	return Key{Section: section, Field: field}
}

// NewInstanceKey builds a key for a field on one instance of a repeating section.
func NewInstanceKey(section string, instance int, field string) Key {
	return Key{Section: section, Instance: instance, Field: field}
}

func (k Key) String() string {
	return fmt.Sprintf("%s[%d].%s", k.Section, k.Instance, k.Field)
}
