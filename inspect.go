package nxvalidate

import (
	"fmt"
	"strings"

	"github.com/nxvalidate/nxvalidate/internal/inherit"
	"github.com/nxvalidate/nxvalidate/internal/nxdl"
)

// Inspect renders the fully resolved contract for a schema name as a
// human-readable listing: inherited members included, overrides already
// applied.
func (v *Validator) Inspect(name string) (string, error) {
	contract, err := v.resolver.Resolve(name)
	if err != nil {
		return "", err
	}
	return renderContract(contract), nil
}

// InspectBaseClass is Inspect restricted to the base-class catalog.
func (v *Validator) InspectBaseClass(name string) (string, error) {
	contract, err := v.resolver.ResolveCategory(name, nxdl.CategoryBase)
	if err != nil {
		return "", err
	}
	return renderContract(contract), nil
}

func renderContract(contract *inherit.Contract) string {
	var b strings.Builder
	switch contract.Category {
	case nxdl.CategoryApplication:
		fmt.Fprintf(&b, "Application Definition: %s\n", contract.Name)
	default:
		fmt.Fprintf(&b, "Base Class: %s\n", contract.Name)
	}

	if len(contract.Attributes) > 0 {
		b.WriteString("  Attributes\n")
		for _, a := range contract.Attributes {
			fmt.Fprintf(&b, "    @%s%s\n", a.Name, attributeSuffix(&a, contract.Category))
		}
	}

	var groups, fields []*nxdl.Member
	for i := range contract.Members {
		m := &contract.Members[i]
		if m.Kind == nxdl.KindGroup {
			groups = append(groups, m)
		} else {
			fields = append(fields, m)
		}
	}

	if len(groups) > 0 {
		b.WriteString("  Groups\n")
		for _, m := range groups {
			fmt.Fprintf(&b, "    %s%s\n", groupLabel(m), memberSuffix(m, contract.Category))
		}
	}
	if len(fields) > 0 {
		b.WriteString("  Fields\n")
		for _, m := range fields {
			fmt.Fprintf(&b, "    %s%s\n", fieldLabel(m), memberSuffix(m, contract.Category))
		}
	}
	return b.String()
}

func groupLabel(m *nxdl.Member) string {
	if m.LocalName == "" {
		return m.TypeOrClass
	}
	return fmt.Sprintf("%s[%s]", m.LocalName, m.TypeOrClass)
}

func fieldLabel(m *nxdl.Member) string {
	var parts []string
	if m.TypeOrClass != "" {
		parts = append(parts, m.TypeOrClass)
	}
	if m.Units != "" {
		parts = append(parts, "units "+m.Units)
	}
	if len(m.Enumeration) > 0 {
		parts = append(parts, "one of "+strings.Join(m.Enumeration, "|"))
	}
	if len(parts) == 0 {
		return m.LocalName
	}
	return fmt.Sprintf("%s: %s", m.LocalName, strings.Join(parts, ", "))
}

func memberSuffix(m *nxdl.Member, cat nxdl.Category) string {
	var tags []string
	if m.EffectiveMinOccurs(cat) > 0 {
		tags = append(tags, "required")
	}
	if m.Deprecated != "" {
		tags = append(tags, "deprecated")
	}
	if len(tags) == 0 {
		return ""
	}
	return " (" + strings.Join(tags, ", ") + ")"
}

func attributeSuffix(a *nxdl.Attribute, cat nxdl.Category) string {
	var parts []string
	if a.Type != "" {
		parts = append(parts, a.Type)
	}
	if len(a.Enumeration) > 0 {
		parts = append(parts, "one of "+strings.Join(a.Enumeration, "|"))
	}
	if a.Required(cat) {
		parts = append(parts, "required")
	}
	if len(parts) == 0 {
		return ""
	}
	return ": " + strings.Join(parts, ", ")
}
