package nxvalidate

import (
	"fmt"
	"strings"

	nxerrors "github.com/nxvalidate/nxvalidate/errors"
	"github.com/nxvalidate/nxvalidate/internal/inherit"
	"github.com/nxvalidate/nxvalidate/internal/nxdl"
	"github.com/nxvalidate/nxvalidate/internal/validator"
	"github.com/nxvalidate/nxvalidate/pkg/nxtree"
)

const schemaFileSuffix = ".nxdl.xml"

// ValidateApplication validates an entry group against an application
// definition. entryPath selects the entry within root; when empty the
// first NXentry or NXsubentry child is used (or root itself when it is
// one). application names the definition; when empty it is read from
// the entry's "definition" field. A value ending in .nxdl.xml is loaded
// as a schema file instead of a catalog lookup.
func (v *Validator) ValidateApplication(root nxtree.Node, entryPath, application string) (nxerrors.Report, error) {
	entry, err := selectEntry(root, entryPath)
	if err != nil {
		return nil, err
	}

	if application == "" {
		application = definitionName(entry)
		if application == "" {
			return nil, fmt.Errorf("validate application: entry %q has no definition field", entry.Name())
		}
	}

	var contract *inherit.Contract
	if strings.HasSuffix(application, schemaFileSuffix) {
		def, err := v.catalog.LoadFile(application)
		if err != nil {
			return nil, err
		}
		contract, err = v.resolver.ResolveDefinition(def)
		if err != nil {
			return nil, err
		}
	} else {
		contract, err = v.resolver.ResolveCategory(application, nxdl.CategoryApplication)
		if err != nil {
			return nil, err
		}
	}

	s := validator.New(v.resolver)
	if err := s.Validate(entry, entryContract(contract), "/"+entry.Name()); err != nil {
		return nil, err
	}
	return s.Report(), nil
}

// selectEntry locates the entry group the application definition
// constrains.
func selectEntry(root nxtree.Node, entryPath string) (nxtree.Node, error) {
	if entryPath != "" {
		entry, ok := nxtree.Find(root, entryPath)
		if !ok {
			return nil, fmt.Errorf("validate application: no node at %q", entryPath)
		}
		if !isEntry(entry) {
			return nil, fmt.Errorf("validate application: node at %q is a %s, want an NXentry or NXsubentry group",
				entryPath, entry.Class())
		}
		return entry, nil
	}
	if isEntry(root) {
		return root, nil
	}
	for _, child := range root.Children() {
		if isEntry(child) {
			return child, nil
		}
	}
	return nil, fmt.Errorf("validate application: tree has no NXentry group")
}

func isEntry(node nxtree.Node) bool {
	if node.NodeKind() != nxtree.KindGroup {
		return false
	}
	return node.Class() == "NXentry" || node.Class() == "NXsubentry"
}

// definitionName reads the entry's "definition" field value.
func definitionName(entry nxtree.Node) string {
	for _, child := range entry.Children() {
		if child.NodeKind() == nxtree.KindField && child.Name() == "definition" {
			return strings.TrimSpace(child.Value())
		}
	}
	return ""
}

// entryContract unwraps an application contract down to the entry
// body. Application definitions wrap their requirements in a single
// NXentry (or NXsubentry) group; the data tree's entry is validated
// against that group's members, not against the wrapper.
func entryContract(contract *inherit.Contract) *inherit.Contract {
	if contract.Category != nxdl.CategoryApplication {
		return contract
	}
	var entry *nxdl.Member
	for i := range contract.Members {
		m := &contract.Members[i]
		if m.Kind == nxdl.KindGroup && (m.TypeOrClass == "NXentry" || m.TypeOrClass == "NXsubentry") {
			if entry != nil {
				return contract
			}
			entry = m
		}
	}
	if entry == nil || len(entry.Members) == 0 {
		return contract
	}
	return inherit.FromMember(entry, contract.Category)
}
