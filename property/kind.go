package property

import "fmt"

// Kind classifies an entity property.
type Kind uint8

// The zero Kind is invalid; every descriptor carries one of these.
const (
	Identifier Kind = iota + 1
	Column
	ReferenceOne
	ReferenceMany
)

var kindNames = [...]string{
	Identifier:    "identifier",
	Column:        "column",
	ReferenceOne:  "reference_one",
	ReferenceMany: "reference_many",
}

// String returns the kind name.
func (k Kind) String() string {
	if k.IsValid() {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// IsValid reports whether k is one of the declared kinds.
func (k Kind) IsValid() bool {
	return k >= Identifier && k <= ReferenceMany
}

// IsReference reports whether values of this kind are other entities.
func (k Kind) IsReference() bool {
	return k == ReferenceOne || k == ReferenceMany
}

// ParseKind returns the Kind with the given name.
func ParseKind(s string) (Kind, error) {
	for k := Identifier; k <= ReferenceMany; k++ {
		if kindNames[k] == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("property: unknown kind %q", s)
}

// Mode selects the representation produced by Normalize.
type Mode uint8

const (
	// Display produces human-readable values.
	Display Mode = iota
	// Form produces edit-friendly values; references become identifiers.
	Form
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Display:
		return "display"
	case Form:
		return "form"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}
