// Package wireformat enumerates the concrete wire formats this module
// converts between (spec §6). It is adapted from the teacher
// lineage's format.Format enum (tony/yaml/json), trimmed to this
// module's three formats.
package wireformat

import "fmt"

type Format int

const (
	JSON Format = iota
	SISL
	XML
)

func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case SISL:
		return "sisl"
	case XML:
		return "xml"
	default:
		return fmt.Sprintf("<format %d>", int(f))
	}
}

// ParseFormat maps a lowercase format name back to a Format.
func ParseFormat(v string) (Format, error) {
	switch v {
	case "json":
		return JSON, nil
	case "sisl":
		return SISL, nil
	case "xml":
		return XML, nil
	default:
		return 0, fmt.Errorf("wireformat: unknown format %q", v)
	}
}

// Suffix returns the conventional file extension for f, including the
// leading dot.
func (f Format) Suffix() string {
	switch f {
	case JSON:
		return ".json"
	case SISL:
		return ".sisl"
	case XML:
		return ".xml"
	default:
		return ""
	}
}
