// Package namematch decides whether a data-tree node name satisfies a
// schema member. The three match kinds form a closed set so the
// tie-break rule between them lives in one place.
package namematch

import (
	"strings"

	"github.com/nxvalidate/nxvalidate/internal/nxdl"
)

// Kind classifies how a member matches names. Declaration order is the
// tie-break priority: a specified name always beats a partial template,
// which beats a class wildcard.
type Kind uint8

const (
	// KindSpecified matches by exact case-sensitive equality.
	KindSpecified Kind = iota
	// KindPartial matches a template with one placeholder segment.
	KindPartial
	// KindClassWildcard matches any group of the declared class.
	KindClassWildcard
)

// Template is a partial name split around its placeholder token.
type Template struct {
	Placeholder string
	Prefix      string
	Suffix      string
}

// ParseTemplate splits a local name around its single uppercase
// placeholder token (FIELDNAME_errors, sample_GROUPNAME). It returns
// false when the name has no placeholder or more than one.
func ParseTemplate(local string) (Template, bool) {
	start := -1
	end := -1
	for i := 0; i < len(local); i++ {
		if local[i] >= 'A' && local[i] <= 'Z' {
			if start == -1 {
				start = i
				end = i + 1
				continue
			}
			if i != end {
				// a second uppercase run is not a usable template
				return Template{}, false
			}
			end = i + 1
		}
	}
	if start == -1 {
		return Template{}, false
	}
	return Template{
		Placeholder: local[start:end],
		Prefix:      local[:start],
		Suffix:      local[end:],
	}, true
}

// Bind decomposes a data node name against the template, returning the
// text bound to the placeholder. The bound text must be non-empty and a
// plain lowercase name fragment.
func (t Template) Bind(name string) (string, bool) {
	if len(name) < len(t.Prefix)+len(t.Suffix) {
		return "", false
	}
	if !strings.HasPrefix(name, t.Prefix) || !strings.HasSuffix(name, t.Suffix) {
		return "", false
	}
	bound := name[len(t.Prefix) : len(name)-len(t.Suffix)]
	if bound == "" || !validFragment(bound) {
		return "", false
	}
	return bound, true
}

func validFragment(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_' {
			continue
		}
		return false
	}
	return true
}

// Classify returns the match kind of a member.
func Classify(m *nxdl.Member) Kind {
	if m.LocalName == "" {
		return KindClassWildcard
	}
	if m.NameType == nxdl.NamePartial {
		if _, ok := ParseTemplate(m.LocalName); ok {
			return KindPartial
		}
	}
	return KindSpecified
}

// Matches reports whether a data node with the given name (and class,
// for groups) satisfies the member.
func Matches(m *nxdl.Member, name, class string) bool {
	switch Classify(m) {
	case KindSpecified:
		return m.LocalName == name
	case KindPartial:
		t, ok := ParseTemplate(m.LocalName)
		if !ok {
			return false
		}
		_, ok = t.Bind(name)
		return ok
	case KindClassWildcard:
		return m.Kind == nxdl.KindGroup && class == m.TypeOrClass
	default:
		return false
	}
}

// Binding returns the placeholder binding of a successful partial-name
// match.
func Binding(m *nxdl.Member, name string) (string, bool) {
	if Classify(m) != KindPartial {
		return "", false
	}
	t, ok := ParseTemplate(m.LocalName)
	if !ok {
		return "", false
	}
	return t.Bind(name)
}

// Best returns the index of the contract member that wins the data node,
// applying the kind priority so partial templates never steal matches
// intended for exact members. Members of a different kind never match.
func Best(members []nxdl.Member, kind nxdl.Kind, name, class string) (int, bool) {
	best := -1
	var bestKind Kind
	for i := range members {
		m := &members[i]
		if m.Kind != kind {
			continue
		}
		if !Matches(m, name, class) {
			continue
		}
		k := Classify(m)
		if best == -1 || k < bestKind {
			best = i
			bestKind = k
			if bestKind == KindSpecified {
				break
			}
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}
