package nxdl

import (
	"fmt"
	"strconv"
)

// Occurs is an occurrence bound: a non-negative count or unbounded.
type Occurs struct {
	n         uint32
	unbounded bool
}

// OccursUnbounded is the unbounded maxOccurs value.
var OccursUnbounded = Occurs{unbounded: true}

// OccursFromInt returns a bounded occurrence value. Negative values clamp
// to zero.
func OccursFromInt(n int) Occurs {
	if n < 0 {
		n = 0
	}
	return Occurs{n: uint32(n)}
}

// IsUnbounded reports whether the value is unbounded.
func (o Occurs) IsUnbounded() bool { return o.unbounded }

// Value returns the bounded count. It is meaningless for unbounded values.
func (o Occurs) Value() int { return int(o.n) }

// Exceeds reports whether count exceeds this bound.
func (o Occurs) Exceeds(count int) bool {
	if o.unbounded {
		return false
	}
	return count > int(o.n)
}

// String renders the bound the way it appears in schema markup.
func (o Occurs) String() string {
	if o.unbounded {
		return "unbounded"
	}
	return strconv.FormatUint(uint64(o.n), 10)
}

// ParseOccurs parses a minOccurs/maxOccurs attribute value. "unbounded"
// is only legal for maxOccurs.
func ParseOccurs(attr, value string) (Occurs, error) {
	if value == "unbounded" {
		if attr == "minOccurs" {
			return Occurs{}, fmt.Errorf("minOccurs attribute cannot be 'unbounded'")
		}
		return OccursUnbounded, nil
	}
	u, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return Occurs{}, fmt.Errorf("invalid %s attribute value %q", attr, value)
	}
	return Occurs{n: uint32(u)}, nil
}
