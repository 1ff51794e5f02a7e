// Package validator walks a data subtree against a resolved contract,
// applying occurrence, type, and attribute rules and accumulating
// diagnostics in traversal order. Structural findings never abort a run;
// only unresolvable schemas do.
package validator

import (
	"fmt"
	"sort"
	"strings"

	nxerrors "github.com/nxvalidate/nxvalidate/errors"
	"github.com/nxvalidate/nxvalidate/internal/inherit"
	"github.com/nxvalidate/nxvalidate/internal/namematch"
	"github.com/nxvalidate/nxvalidate/internal/nxdl"
	"github.com/nxvalidate/nxvalidate/internal/nxtype"
	"github.com/nxvalidate/nxvalidate/pkg/nxtree"
)

// Session is one validation run. Sessions are single-use and not safe
// for concurrent use; the resolver behind them is.
type Session struct {
	resolver *inherit.Resolver
	report   nxerrors.Report
}

// New creates a session over the given resolver.
func New(r *inherit.Resolver) *Session {
	return &Session{resolver: r}
}

// Report returns the accumulated diagnostics in traversal order.
func (s *Session) Report() nxerrors.Report { return s.report }

// Validate walks node against contract, rooting diagnostic paths at
// path. It returns a fatal error only when a schema needed during the
// walk cannot be resolved.
func (s *Session) Validate(node nxtree.Node, contract *inherit.Contract, path string) error {
	if node.NodeKind() != nxtree.KindGroup {
		return fmt.Errorf("validate %s: node is a field, want a group", path)
	}
	if !nxtype.ValidName(node.Name()) {
		s.emit(nxerrors.SeverityError, path, "%q is an invalid name", node.Name())
	}
	return s.group(node, contract, path)
}

// ValidateByClass validates node against its own declared class.
func (s *Session) ValidateByClass(node nxtree.Node, path string) error {
	if node.NodeKind() != nxtree.KindGroup {
		return fmt.Errorf("validate %s: node is a field, want a group", path)
	}
	if !nxtype.ValidName(node.Name()) {
		s.emit(nxerrors.SeverityError, path, "%q is an invalid name", node.Name())
	}
	return s.recurseClass(node, path)
}

func (s *Session) emit(sev nxerrors.Severity, path, format string, args ...any) {
	s.report = append(s.report, nxerrors.Diagnostic{
		Severity: sev,
		Path:     path,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (s *Session) group(node nxtree.Node, contract *inherit.Contract, path string) error {
	s.checkAttributes(node, contract, path)
	if node.Class() == "NXdata" {
		s.checkDataGroup(node, path)
	}

	counts := make([]int, len(contract.Members))
	for _, child := range node.Children() {
		childPath := joinPath(path, child.Name())
		if !nxtype.ValidName(child.Name()) {
			s.emit(nxerrors.SeverityError, childPath, "%q is an invalid name", child.Name())
		}

		kind := nxdl.KindField
		if child.NodeKind() == nxtree.KindGroup {
			kind = nxdl.KindGroup
		}
		idx, ok := namematch.Best(contract.Members, kind, child.Name(), child.Class())
		if !ok {
			if err := s.undeclared(child, contract, childPath); err != nil {
				return err
			}
			continue
		}
		counts[idx]++
		member := &contract.Members[idx]

		if kind == nxdl.KindField {
			s.checkField(child, member, contract.Category, childPath)
			continue
		}
		if err := s.matchedGroup(child, member, contract, childPath); err != nil {
			return err
		}
	}

	for i := range contract.Members {
		s.checkOccurrence(&contract.Members[i], counts[i], contract.Category, path)
	}
	return nil
}

// undeclared handles a child no contract member matches. Open contracts
// downgrade the finding to info. Undeclared groups are still descended
// into against their own class so nested findings are not lost.
func (s *Session) undeclared(child nxtree.Node, contract *inherit.Contract, childPath string) error {
	if child.NodeKind() == nxtree.KindGroup {
		if contract.IgnoreExtraGroups {
			s.emit(nxerrors.SeverityInfo, childPath,
				"group %q is not declared in %s, additional groups are allowed", child.Name(), contract.Name)
		} else {
			s.emit(nxerrors.SeverityWarning, childPath,
				"group %q (%s) is not declared in %s", child.Name(), child.Class(), contract.Name)
		}
		if contract.Category == nxdl.CategoryApplication {
			return nil
		}
		return s.recurseClass(child, childPath)
	}

	if contract.IgnoreExtraFields {
		s.emit(nxerrors.SeverityInfo, childPath,
			"field %q is not declared in %s, additional fields are allowed", child.Name(), contract.Name)
	} else {
		s.emit(nxerrors.SeverityWarning, childPath,
			"field %q is not declared in %s", child.Name(), contract.Name)
	}
	return nil
}

// matchedGroup checks a group child against the member that matched it
// and recurses. Base-class validation descends into the child's own
// class contract; application definitions carry the required subtree
// inline, so recursion uses the member body instead.
func (s *Session) matchedGroup(child nxtree.Node, member *nxdl.Member, contract *inherit.Contract, childPath string) error {
	if member.LocalName != "" && member.TypeOrClass != "" && child.Class() != member.TypeOrClass {
		s.emit(nxerrors.SeverityError, childPath,
			"group class is %q, expected %q", child.Class(), member.TypeOrClass)
	}
	if member.Deprecated != "" {
		s.emit(nxerrors.SeverityWarning, childPath, "group is deprecated: %s", member.Deprecated)
	}

	if contract.Category == nxdl.CategoryApplication {
		// a leaf member with no declarations of its own constrains nothing
		// beyond its presence
		if len(member.Members) == 0 && len(member.Attributes) == 0 {
			return nil
		}
		sub := inherit.FromMember(member, contract.Category)
		return s.group(child, sub, childPath)
	}
	return s.recurseClass(child, childPath)
}

// recurseClass resolves the child's own class and walks into it. An
// unknown class is a structural finding, not a fatal error.
func (s *Session) recurseClass(child nxtree.Node, childPath string) error {
	class := child.Class()
	if class == "" {
		s.emit(nxerrors.SeverityError, childPath, "group has no class attribute")
		return nil
	}
	sub, err := s.resolver.ResolveCategory(class, nxdl.CategoryBase)
	if err != nil {
		if nxerrors.IsCode(err, nxerrors.CodeSchemaNotFound) {
			s.emit(nxerrors.SeverityError, childPath, "%q is not a valid base class", class)
			return nil
		}
		return err
	}
	return s.group(child, sub, childPath)
}

func (s *Session) checkOccurrence(m *nxdl.Member, count int, cat nxdl.Category, path string) {
	memberPath := joinPath(path, m.DisplayName())
	min := m.EffectiveMinOccurs(cat)
	if count < min {
		sev := nxerrors.SeverityInfo
		if cat == nxdl.CategoryApplication {
			sev = nxerrors.SeverityError
		}
		if count == 0 && min == 1 {
			s.emit(sev, memberPath, "required %s %q is not present", m.Kind, m.DisplayName())
		} else {
			s.emit(sev, memberPath, "%s %q occurs %d time(s), at least %d required", m.Kind, m.DisplayName(), count, min)
		}
		return
	}
	if min == 0 && count == 0 && cat == nxdl.CategoryApplication {
		s.emit(nxerrors.SeverityInfo, memberPath, "optional %s %q is not present", m.Kind, m.DisplayName())
		return
	}
	if count > 0 && m.MaxOccurs.Exceeds(count) {
		s.emit(nxerrors.SeverityWarning, memberPath,
			"%s %q occurs %d time(s), maxOccurs is %s", m.Kind, m.DisplayName(), count, m.MaxOccurs)
	}
}

func (s *Session) checkField(node nxtree.Node, member *nxdl.Member, cat nxdl.Category, path string) {
	if member.Deprecated != "" {
		s.emit(nxerrors.SeverityWarning, path, "field is deprecated: %s", member.Deprecated)
	}

	if member.TypeOrClass != "" && !nxtype.Compatible(member.TypeOrClass, node.ValueType()) {
		s.emit(nxerrors.SeverityError, path,
			"value type %q does not satisfy %s", node.ValueType(), member.TypeOrClass)
	}
	if member.TypeOrClass == "NX_DATE_TIME" && node.Value() != "" && !nxtype.IsISO8601(node.Value()) {
		s.emit(nxerrors.SeverityWarning, path, "value %q is not a valid ISO 8601 date", node.Value())
	}

	if member.HasRank && node.Rank() != member.Rank {
		s.emit(nxerrors.SeverityError, path,
			"rank is %d, declared rank is %d", node.Rank(), member.Rank)
	}

	if len(member.Enumeration) > 0 && node.Value() != "" && !contains(member.Enumeration, node.Value()) {
		s.emit(nxerrors.SeverityError, path,
			"value %q is not one of the enumerated values [%s]", node.Value(), strings.Join(member.Enumeration, ", "))
	}

	s.checkFieldUnits(node, member, path)
	s.checkFieldAttributes(node, member, cat, path)
}

func (s *Session) checkFieldUnits(node nxtree.Node, member *nxdl.Member, path string) {
	if member.Units == "" {
		return
	}
	units := node.Attributes()["units"]
	if units == "" {
		s.emit(nxerrors.SeverityWarning, path, "units of %s not specified", member.Units)
		return
	}
	if nxtype.CheckUnits(member.Units, units) == nxtype.UnitsMismatch {
		s.emit(nxerrors.SeverityWarning, path, "units %q do not match %s", units, member.Units)
	}
}

func (s *Session) checkFieldAttributes(node nxtree.Node, member *nxdl.Member, cat nxdl.Category, path string) {
	attrs := node.Attributes()

	// the signal/axis markers moved from fields to the enclosing group
	if _, ok := attrs["signal"]; ok {
		s.emit(nxerrors.SeverityError, path,
			`"@signal" is no longer valid as a field attribute, use the group attribute "@signal"`)
	}
	if _, ok := attrs["axis"]; ok {
		s.emit(nxerrors.SeverityError, path,
			`"@axis" is no longer valid as a field attribute, use the group attribute "@axes"`)
	}

	for i := range member.Attributes {
		a := &member.Attributes[i]
		value, present := attrs[a.Name]
		if !present {
			if a.Required(cat) {
				s.emit(nxerrors.SeverityError, path, "required attribute %q is missing", "@"+a.Name)
			}
			continue
		}
		if len(a.Enumeration) > 0 && !contains(a.Enumeration, value) {
			s.emit(nxerrors.SeverityError, path,
				"attribute %q value %q is not one of the enumerated values [%s]",
				"@"+a.Name, value, strings.Join(a.Enumeration, ", "))
		}
	}
}

// checkAttributes applies the contract's attribute declarations to a
// group node. Undeclared attributes are commonly facility-specific and
// never a structural violation.
func (s *Session) checkAttributes(node nxtree.Node, contract *inherit.Contract, path string) {
	attrs := node.Attributes()

	declared := make(map[string]bool, len(contract.Attributes))
	for i := range contract.Attributes {
		a := &contract.Attributes[i]
		declared[a.Name] = true
		value, present := attrs[a.Name]
		if !present {
			if a.Required(contract.Category) {
				s.emit(nxerrors.SeverityError, path, "required attribute %q is missing", "@"+a.Name)
			}
			continue
		}
		if len(a.Enumeration) > 0 && !contains(a.Enumeration, value) {
			s.emit(nxerrors.SeverityError, path,
				"attribute %q value %q is not one of the enumerated values [%s]",
				"@"+a.Name, value, strings.Join(a.Enumeration, ", "))
		}
	}

	var extra []string
	for name := range attrs {
		if name == "NX_class" || declared[name] {
			continue
		}
		extra = append(extra, name)
	}
	sort.Strings(extra)
	for _, name := range extra {
		s.emit(nxerrors.SeverityInfo, path, "attribute %q is not declared in %s", "@"+name, contract.Name)
	}
}

// checkDataGroup applies the signal/axes coherence rules specific to
// NXdata groups.
func (s *Session) checkDataGroup(node nxtree.Node, path string) {
	attrs := node.Attributes()
	children := make(map[string]nxtree.Node, len(node.Children()))
	for _, child := range node.Children() {
		children[child.Name()] = child
	}

	signal, hasSignal := attrs["signal"]
	if !hasSignal {
		s.emit(nxerrors.SeverityError, path, `"@signal" is not defined in the NXdata group`)
	} else if _, ok := children[signal]; !ok {
		s.emit(nxerrors.SeverityError, path, "signal %q is not present in the group", signal)
	}

	axes, hasAxes := attrs["axes"]
	if !hasAxes {
		s.emit(nxerrors.SeverityError, path, `"@axes" is not defined in the NXdata group`)
		return
	}
	names := readAxes(axes)
	for _, axis := range names {
		if axis == "." {
			continue
		}
		if _, ok := children[axis]; !ok {
			s.emit(nxerrors.SeverityError, path, "axis %q is not present in the group", axis)
		}
	}
	if hasSignal {
		if signalNode, ok := children[signal]; ok && signalNode.Rank() > 0 && len(names) != signalNode.Rank() {
			s.emit(nxerrors.SeverityError, path,
				`"@axes" length %d does not match the signal rank %d`, len(names), signalNode.Rank())
		}
	}
}

// readAxes splits an axes attribute into axis names. Separators may be
// whitespace, commas, colons, or semicolons, with optional surrounding
// brackets.
func readAxes(axes string) []string {
	trimmed := strings.Trim(axes, "[]()")
	return strings.FieldsFunc(trimmed, func(r rune) bool {
		return r == ',' || r == ':' || r == ';' || r == ' '
	})
}

func joinPath(base, name string) string {
	if base == "" || base == "/" {
		return "/" + name
	}
	return base + "/" + name
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
