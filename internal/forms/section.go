package forms

// SectionKind is the closed set of section behaviours. Each kind has its own
// validate/serialize path; there is no open-ended component dispatch.
type SectionKind int

const (
	// SectionPlainFields is a singleton block of ordinary fields.
	SectionPlainFields SectionKind = iota
	// SectionAddressBlock is a singleton address block.
	SectionAddressBlock
	// SectionContactBlock is a singleton contact block (email + phone).
	SectionContactBlock
	// SectionPersonCollection is a repeating block of role-bearing participants.
	SectionPersonCollection
	// SectionRepresentative is the Authorised Representative person block.
	SectionRepresentative
)

// Section is one declared block of a submission. For person collections Role
// carries the role label and MinCount/MaxCount the participant bounds
// (MaxCount 0 means unbounded).
type Section struct {
	ID       string
	Title    string
	Kind     SectionKind
	Role     string
	MinCount int
	MaxCount int
}

// Repeating reports whether the section captures per-instance records.
func (s Section) Repeating() bool {
	return s.Kind == SectionPersonCollection || s.Kind == SectionRepresentative
}
