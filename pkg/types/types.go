package types

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind tags the underlying representation of a Value.
type Kind string

const (
	KindInt  Kind = "int"
	KindReal Kind = "real"
	KindText Kind = "text"
	KindBool Kind = "bool"
	KindRef  Kind = "ref"
	KindSet  Kind = "set"
)

// Value is a tagged scalar, a reference to another entity, or a set of
// values (used for multi-cardinality attributes). Only one of the typed
// fields is meaningful for a given Kind.
type Value struct {
	Kind Kind
	Int  int64
	Real float64
	Text string
	Bool bool
	Ref  string
	Set  []Value
}

// Int builds an integer Value.
func Int(v int64) Value { return Value{Kind: KindInt, Int: v} }

// Real builds a floating point Value.
func Real(v float64) Value { return Value{Kind: KindReal, Real: v} }

// Text builds a string Value.
func Text(v string) Value { return Value{Kind: KindText, Text: v} }

// Bool builds a boolean Value.
func Bool(v bool) Value { return Value{Kind: KindBool, Bool: v} }

// Ref builds a reference Value pointing at another entity id.
func Ref(id string) Value { return Value{Kind: KindRef, Ref: id} }

// NewSet builds a set-of-value Value, deduplicating its members.
func NewSet(vs ...Value) Value {
	seen := make(map[string]struct{}, len(vs))
	out := make([]Value, 0, len(vs))
	for _, v := range vs {
		k := v.HashKey()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].HashKey() < out[j].HashKey() })
	return Value{Kind: KindSet, Set: out}
}

// Zero returns the zero Value for a given declared attribute type.
func Zero(t AttrType) Value {
	switch t {
	case TypeNumber:
		return Int(0)
	case TypeBoolean:
		return Bool(false)
	case TypeRef:
		return Ref("")
	default:
		return Text("")
	}
}

// HashKey returns a canonical string encoding used for equality, map keys
// and deterministic set ordering. Not meant to be parsed back.
func (v Value) HashKey() string {
	var b strings.Builder
	v.writeKey(&b)
	return b.String()
}

func (v Value) writeKey(b *strings.Builder) {
	switch v.Kind {
	case KindInt:
		b.WriteString("i:")
		b.WriteString(strconv.FormatInt(v.Int, 10))
	case KindReal:
		b.WriteString("r:")
		b.WriteString(strconv.FormatFloat(v.Real, 'g', -1, 64))
	case KindText:
		b.WriteString("s:")
		b.WriteString(v.Text)
	case KindBool:
		b.WriteString("b:")
		b.WriteString(strconv.FormatBool(v.Bool))
	case KindRef:
		b.WriteString("e:")
		b.WriteString(v.Ref)
	case KindSet:
		b.WriteString("{")
		for i, m := range v.Set {
			if i > 0 {
				b.WriteString(",")
			}
			m.writeKey(b)
		}
		b.WriteString("}")
	default:
		b.WriteString("?")
	}
}

// Equal reports whether two values are structurally identical.
func (v Value) Equal(o Value) bool {
	return v.HashKey() == o.HashKey()
}

// Less gives a total, deterministic order over values of any kind, used to
// keep set members and index traversal order stable.
func (v Value) Less(o Value) bool {
	return v.HashKey() < o.HashKey()
}

// IsRef reports whether this value (or, for a set, every member) carries a
// reference-typed entity id.
func (v Value) IsRef() bool {
	if v.Kind == KindRef {
		return true
	}
	if v.Kind == KindSet {
		for _, m := range v.Set {
			if m.Kind != KindRef {
				return false
			}
		}
		return len(v.Set) > 0
	}
	return false
}

// Members returns the scalar values carried by v: a one-element slice for a
// scalar, the expanded members for a set.
func (v Value) Members() []Value {
	if v.Kind == KindSet {
		return v.Set
	}
	return []Value{v}
}

// Union returns a new set Value containing every member of v and o.
func (v Value) Union(o Value) Value {
	return NewSet(append(append([]Value{}, v.Members()...), o.Members()...)...)
}

// Subtract returns a new set Value containing the members of v not present
// in o. Removing an absent member is a no-op.
func (v Value) Subtract(o Value) Value {
	remove := make(map[string]struct{}, len(o.Members()))
	for _, m := range o.Members() {
		remove[m.HashKey()] = struct{}{}
	}
	out := make([]Value, 0, len(v.Members()))
	for _, m := range v.Members() {
		if _, ok := remove[m.HashKey()]; ok {
			continue
		}
		out = append(out, m)
	}
	return NewSet(out...)
}

func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindReal:
		return strconv.FormatFloat(v.Real, 'g', -1, 64)
	case KindText:
		return v.Text
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindRef:
		return v.Ref
	case KindSet:
		parts := make([]string, len(v.Set))
		for i, m := range v.Set {
			parts[i] = m.String()
		}
		return "#{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("<invalid value kind %q>", v.Kind)
	}
}

// AttrType is the declared type of an attribute, independent of Go's
// runtime Kind tag (a string-typed attribute always carries KindText
// values, a ref-typed one always carries KindRef, and so on).
type AttrType string

const (
	TypeString  AttrType = "string"
	TypeNumber  AttrType = "number"
	TypeBoolean AttrType = "boolean"
	TypeRef     AttrType = "ref"
)

// Cardinality controls whether an attribute holds a single value or a set.
type Cardinality string

const (
	CardinalityOne  Cardinality = "single"
	CardinalityMany Cardinality = "multiple"
)

// NoTimestamp marks an attribute version with no predecessor.
const NoTimestamp = -1

// Attribute is a single named, typed, optionally indexed property of an
// entity, versioned across snapshots via PrevTS/CurrTS.
type Attribute struct {
	Name        string
	Value       Value
	Type        AttrType
	Cardinality Cardinality
	Indexed     bool
	PrevTS      int64 // NoTimestamp if this is the first version
	CurrTS      int64
}

// AttrOptions configures MakeAttr; the zero value means single-cardinality,
// unindexed.
type AttrOptions struct {
	Indexed     bool
	Cardinality Cardinality
}

// MakeAttr constructs a fresh, not-yet-committed attribute. PrevTS/CurrTS
// are assigned by the transactor when the attribute is actually written
// into a snapshot.
func MakeAttr(name string, value Value, t AttrType, opts AttrOptions) *Attribute {
	card := opts.Cardinality
	if card == "" {
		card = CardinalityOne
	}
	v := value
	if card == CardinalityMany && v.Kind != KindSet {
		v = NewSet(v)
	}
	return &Attribute{
		Name:        name,
		Value:       v,
		Type:        t,
		Cardinality: card,
		Indexed:     opts.Indexed,
		PrevTS:      NoTimestamp,
		CurrTS:      NoTimestamp,
	}
}

// Clone returns a shallow, independent copy of the attribute (the Value
// itself is immutable so sharing its Set slice is safe).
func (a *Attribute) Clone() *Attribute {
	cp := *a
	return &cp
}

// Entity is an opaquely identified record carrying named attributes.
// Entity values are never mutated in place once reachable from a Snapshot;
// Transactor operations always clone-on-write.
type Entity struct {
	ID    string
	Attrs map[string]*Attribute
}

// MakeEntity constructs a fresh entity with no attributes.
func MakeEntity(id string) *Entity {
	return &Entity{ID: id, Attrs: make(map[string]*Attribute)}
}

// Clone returns a deep-enough copy of the entity for copy-on-write update:
// the attribute map is copied, the *Attribute pointers inside are replaced
// one at a time by whichever caller mutates them.
func (e *Entity) Clone() *Entity {
	cp := &Entity{ID: e.ID, Attrs: make(map[string]*Attribute, len(e.Attrs))}
	for k, v := range e.Attrs {
		cp.Attrs[k] = v
	}
	return cp
}
