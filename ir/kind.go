package ir

import "fmt"

// Kind is the tag of a document node (spec §3). It is a closed set of
// seven variants; there is no eighth kind and no subclassing.
type Kind int

const (
	Str Kind = iota
	Int
	Float
	Bool
	Null
	Obj
	List
)

// Tag is the SISL type-tag spelling for a Kind, e.g. "str", "obj".
// It is also the XML "type" attribute spelling (spec §4.G).
func (k Kind) Tag() string {
	switch k {
	case Str:
		return "str"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Null:
		return "null"
	case Obj:
		return "obj"
	case List:
		return "list"
	default:
		return fmt.Sprintf("<kind %d>", int(k))
	}
}

func (k Kind) String() string { return k.Tag() }

// KindForTag maps a SISL/XML type-tag spelling back to a Kind. ok is
// false for anything not in the closed set of seven tags.
func KindForTag(tag string) (Kind, bool) {
	switch tag {
	case "str":
		return Str, true
	case "int":
		return Int, true
	case "float":
		return Float, true
	case "bool":
		return Bool, true
	case "null":
		return Null, true
	case "obj":
		return Obj, true
	case "list":
		return List, true
	default:
		return 0, false
	}
}

// IsContainer reports whether nodes of this kind hold children rather
// than a scalar payload.
func (k Kind) IsContainer() bool { return k == Obj || k == List }
