package nxdl

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
)

// Parse reads one NXDL definition document. file names the source in
// parse errors. Document order of members and attributes is preserved;
// diagnostics and printed listings downstream must match input order.
func Parse(r io.Reader, file string) (*Definition, error) {
	dec := xml.NewDecoder(r)

	root, err := nextElement(dec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	if root.Name.Local != "definition" {
		return nil, fmt.Errorf("%s: root element is %q, want \"definition\"", file, root.Name.Local)
	}

	def := &Definition{File: file, Extends: RootClass}
	for _, a := range root.Attr {
		switch a.Name.Local {
		case "name":
			def.Name = a.Value
		case "extends":
			if a.Value != "" {
				def.Extends = a.Value
			}
		case "category":
			switch a.Value {
			case "base":
				def.Category = CategoryBase
			case "application":
				def.Category = CategoryApplication
			default:
				return nil, fmt.Errorf("%s: unknown category %q", file, a.Value)
			}
		case "ignoreExtraGroups":
			def.IgnoreExtraGroups = isTrue(a.Value)
		case "ignoreExtraFields":
			def.IgnoreExtraFields = isTrue(a.Value)
		case "ignoreExtraAttributes":
			def.IgnoreExtraAttributes = isTrue(a.Value)
		}
	}
	if def.Name == "" {
		return nil, fmt.Errorf("%s: definition has no name", file)
	}
	if def.Name == RootClass {
		def.Extends = ""
	}

	members, attrs, err := parseBody(dec, root)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	def.Members = members
	def.Attributes = attrs
	return def, nil
}

// parseBody consumes the children of start until its end element,
// collecting field/group members and attribute declarations in order.
func parseBody(dec *xml.Decoder, start xml.StartElement) ([]Member, []Attribute, error) {
	var members []Member
	var attrs []Attribute
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "field":
				m, err := parseMember(dec, t, KindField)
				if err != nil {
					return nil, nil, err
				}
				members = append(members, m)
			case "group":
				m, err := parseMember(dec, t, KindGroup)
				if err != nil {
					return nil, nil, err
				}
				members = append(members, m)
			case "attribute":
				a, err := parseAttribute(dec, t)
				if err != nil {
					return nil, nil, err
				}
				attrs = append(attrs, a)
			default:
				// doc, symbols, links and anything else are not part of
				// the structural contract.
				if err := dec.Skip(); err != nil {
					return nil, nil, err
				}
			}
		case xml.EndElement:
			return members, attrs, nil
		}
	}
}

func parseMember(dec *xml.Decoder, start xml.StartElement, kind Kind) (Member, error) {
	m := Member{
		Kind:      kind,
		MinOccurs: OccursFromInt(0),
		MaxOccurs: OccursUnbounded,
	}
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "name":
			m.LocalName = a.Value
		case "type":
			m.TypeOrClass = a.Value
		case "nameType":
			switch a.Value {
			case "partial", "any":
				m.NameType = NamePartial
			case "specified":
				m.NameType = NameSpecified
			default:
				return m, fmt.Errorf("%s %q: unknown nameType %q", kind, m.LocalName, a.Value)
			}
		case "minOccurs":
			o, err := ParseOccurs("minOccurs", a.Value)
			if err != nil {
				return m, fmt.Errorf("%s %q: %w", kind, m.LocalName, err)
			}
			m.MinOccurs = o
			m.HasMinOccurs = true
		case "maxOccurs":
			o, err := ParseOccurs("maxOccurs", a.Value)
			if err != nil {
				return m, fmt.Errorf("%s %q: %w", kind, m.LocalName, err)
			}
			m.MaxOccurs = o
		case "optional", "recommended":
			if isTrue(a.Value) {
				m.Optional = true
			}
		case "required":
			if !isTrue(a.Value) {
				m.Optional = true
			}
		case "units":
			m.Units = a.Value
		case "deprecated":
			m.Deprecated = a.Value
		}
	}
	if kind == KindGroup && m.TypeOrClass == "" {
		return m, fmt.Errorf("group %q has no type", m.LocalName)
	}
	if kind == KindField && m.LocalName == "" {
		return m, fmt.Errorf("field with no name")
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			return m, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "field":
				child, err := parseMember(dec, t, KindField)
				if err != nil {
					return m, err
				}
				m.Members = append(m.Members, child)
			case "group":
				child, err := parseMember(dec, t, KindGroup)
				if err != nil {
					return m, err
				}
				m.Members = append(m.Members, child)
			case "attribute":
				a, err := parseAttribute(dec, t)
				if err != nil {
					return m, err
				}
				m.Attributes = append(m.Attributes, a)
			case "enumeration":
				values, err := parseEnumeration(dec)
				if err != nil {
					return m, err
				}
				m.Enumeration = values
			case "dimensions":
				rank, hasRank, err := parseDimensions(dec, t)
				if err != nil {
					return m, err
				}
				m.Rank = rank
				m.HasRank = hasRank
			default:
				if err := dec.Skip(); err != nil {
					return m, err
				}
			}
		case xml.EndElement:
			return m, nil
		}
	}
}

func parseAttribute(dec *xml.Decoder, start xml.StartElement) (Attribute, error) {
	var a Attribute
	for _, at := range start.Attr {
		switch at.Name.Local {
		case "name":
			a.Name = at.Value
		case "type":
			a.Type = at.Value
		case "optional", "recommended":
			if isTrue(at.Value) {
				a.Optional = true
			}
		case "required":
			if !isTrue(at.Value) {
				a.Optional = true
			}
		}
	}
	if a.Name == "" {
		return a, fmt.Errorf("attribute with no name")
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			return a, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "enumeration" {
				values, err := parseEnumeration(dec)
				if err != nil {
					return a, err
				}
				a.Enumeration = values
				continue
			}
			if err := dec.Skip(); err != nil {
				return a, err
			}
		case xml.EndElement:
			return a, nil
		}
	}
}

func parseEnumeration(dec *xml.Decoder) ([]string, error) {
	var values []string
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "item" {
				for _, a := range t.Attr {
					if a.Name.Local == "value" {
						values = append(values, a.Value)
					}
				}
			}
			if err := dec.Skip(); err != nil {
				return nil, err
			}
		case xml.EndElement:
			return values, nil
		}
	}
}

func parseDimensions(dec *xml.Decoder, start xml.StartElement) (rank int, hasRank bool, err error) {
	for _, a := range start.Attr {
		if a.Name.Local == "rank" {
			// symbolic ranks such as "dataRank" are not checkable
			n, convErr := strconv.Atoi(a.Value)
			if convErr == nil {
				rank = n
				hasRank = true
			}
		}
	}
	if err := dec.Skip(); err != nil {
		return 0, false, err
	}
	return rank, hasRank, nil
}

// nextElement returns the first start element of the document.
func nextElement(dec *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				return xml.StartElement{}, fmt.Errorf("empty document")
			}
			return xml.StartElement{}, err
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start, nil
		}
	}
}

func isTrue(v string) bool {
	return v == "true" || v == "1" || v == "yes"
}
