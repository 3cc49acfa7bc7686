// Package sislerr defines the error-kind taxonomy of spec §7. Every
// failure surfaced by the codecs, splitter, joiner, and CLI wraps
// exactly one of these sentinels
// with fmt.Errorf's %w, so callers can classify an error with
// errors.Is while still getting a human-readable message carrying an
// offset, line, or element name.
package sislerr

import "errors"

var (
	// ErrCLIUsage: unknown flag, missing required argument, mutually
	// exclusive flags.
	ErrCLIUsage = errors.New("cli-usage")

	// ErrInputIO: cannot open or read the input file.
	ErrInputIO = errors.New("input-io")

	// ErrOutputIO: cannot open or write the output file.
	ErrOutputIO = errors.New("output-io")

	// ErrJSONParse: malformed JSON source.
	ErrJSONParse = errors.New("json-parse")

	// ErrSISLParse: malformed SISL source (grammar violation).
	ErrSISLParse = errors.New("sisl-parse")

	// ErrXMLParse: malformed XML source.
	ErrXMLParse = errors.New("xml-parse")

	// ErrSISLTag: unknown SISL tag, or a payload that does not match
	// its tag (e.g. !bool "yes").
	ErrSISLTag = errors.New("sisl-tag")

	// ErrSISLListIndex: a !list body contains a key not matching _N,
	// or a duplicate _N.
	ErrSISLListIndex = errors.New("sisl-list-index")

	// ErrXMLTyped: typed XML missing <root>, missing type, unknown
	// type, or a payload that does not validate for its type.
	ErrXMLTyped = errors.New("xml-typed")

	// ErrFragmentTooLarge: a value's minimal encoded path exceeds
	// --max-length.
	ErrFragmentTooLarge = errors.New("fragment-too-large")
)

// Prefix returns the stderr diagnostic prefix for an error produced by
// this module, e.g. "sisl-parse: unexpected token '}' at line 3". It
// returns "" for errors not classified under this taxonomy.
func Prefix(err error) string {
	for _, kind := range []error{
		ErrCLIUsage, ErrInputIO, ErrOutputIO, ErrJSONParse, ErrSISLParse,
		ErrXMLParse, ErrSISLTag, ErrSISLListIndex, ErrXMLTyped, ErrFragmentTooLarge,
	} {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return ""
}
