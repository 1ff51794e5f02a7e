// Package nxdl holds the parsed NXDL document model: one Definition per
// schema file, with its members and attribute declarations in document
// order. Definitions are immutable once parsed.
package nxdl

// Category distinguishes the two schema families. Base classes are
// optional-by-default contracts; application definitions are
// required-by-default.
type Category uint8

const (
	CategoryBase Category = iota
	CategoryApplication
)

// String returns the category name as it appears in schema markup.
func (c Category) String() string {
	if c == CategoryApplication {
		return "application"
	}
	return "base"
}

// Kind distinguishes field members from group members.
type Kind uint8

const (
	KindField Kind = iota
	KindGroup
)

// String returns the member kind name.
func (k Kind) String() string {
	if k == KindGroup {
		return "group"
	}
	return "field"
}

// NameType controls how a member's local name matches data node names.
type NameType uint8

const (
	// NameSpecified requires exact case-sensitive equality.
	NameSpecified NameType = iota
	// NamePartial permits the uppercase placeholder segment of the local
	// name to bind to any sibling name fragment.
	NamePartial
)

// RootClass is the universal ancestor; every base class implicitly
// extends it and inheritance resolution stops there.
const RootClass = "NXobject"

// Definition is one parsed schema definition.
type Definition struct {
	Name     string
	Category Category
	Extends  string
	File     string

	IgnoreExtraGroups     bool
	IgnoreExtraFields     bool
	IgnoreExtraAttributes bool

	Members    []Member
	Attributes []Attribute
}

// Member is one declared field or group.
type Member struct {
	// LocalName is the declared name. It may be a literal, a placeholder
	// template such as FIELDNAME_set, or empty for a group declared only
	// by class (a class wildcard).
	LocalName   string
	Kind        Kind
	TypeOrClass string
	NameType    NameType

	MinOccurs    Occurs
	MaxOccurs    Occurs
	HasMinOccurs bool
	Optional     bool

	Units       string
	Enumeration []string
	Rank        int
	HasRank     bool
	Deprecated  string

	Attributes []Attribute

	// Members holds nested declarations. Application definitions nest
	// their full required tree inside group members.
	Members []Member
}

// DisplayName returns the name used in listings and diagnostics: the
// local name when declared, otherwise the group class.
func (m *Member) DisplayName() string {
	if m.LocalName != "" {
		return m.LocalName
	}
	return m.TypeOrClass
}

// EffectiveMinOccurs returns the lower occurrence bound under the given
// schema category: an explicit minOccurs wins, an optional marking means
// zero, and otherwise application definitions require one occurrence
// while base classes require none.
func (m *Member) EffectiveMinOccurs(cat Category) int {
	if m.HasMinOccurs {
		return m.MinOccurs.Value()
	}
	if m.Optional {
		return 0
	}
	if cat == CategoryApplication {
		return 1
	}
	return 0
}

// Attribute is one declared attribute on a definition, group, or field.
type Attribute struct {
	Name        string
	Type        string
	Enumeration []string
	Optional    bool
}

// Required reports whether the attribute must be present under the given
// schema category.
func (a *Attribute) Required(cat Category) bool {
	if a.Optional {
		return false
	}
	return cat == CategoryApplication
}
