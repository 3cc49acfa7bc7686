package token

import (
	"fmt"

	"github.com/signadot/sisl/sislerr"
)

// Unescape interprets the escape alphabet of spec §4.B: \" \\ \r \t \n,
// \xHH, \uHHHH, \UHHHHHHHH. Anything else, byte-for-byte, including a
// raw newline, passes through unchanged — SISL permits an unescaped
// raw newline inside a quoted string (spec §4.B).
func Unescape(raw string) (string, error) {
	var out []byte
	i := 0
	for i < len(raw) {
		c := raw[i]
		if c != '\\' || i+1 >= len(raw) {
			out = append(out, c)
			i++
			continue
		}
		i++ // skip backslash
		switch raw[i] {
		case '"':
			out = append(out, '"')
			i++
		case '\\':
			out = append(out, '\\')
			i++
		case 'r':
			out = append(out, '\r')
			i++
		case 't':
			out = append(out, '\t')
			i++
		case 'n':
			out = append(out, '\n')
			i++
		case 'x':
			i++
			v, n, err := parseHex(raw, i, 2)
			if err != nil {
				return "", err
			}
			out = append(out, byte(v))
			i += n
		case 'u':
			i++
			v, n, err := parseHex(raw, i, 4)
			if err != nil {
				return "", err
			}
			out = append(out, encodeUTF8(v)...)
			i += n
		case 'U':
			i++
			v, n, err := parseHex(raw, i, 8)
			if err != nil {
				return "", err
			}
			out = append(out, encodeUTF8(v)...)
			i += n
		default:
			return "", fmt.Errorf("%w: invalid escape sequence '\\%c'", sislerr.ErrSISLParse, raw[i])
		}
	}
	return string(out), nil
}

func parseHex(s string, pos, count int) (uint32, int, error) {
	if pos+count > len(s) {
		return 0, 0, fmt.Errorf("%w: invalid hex escape sequence", sislerr.ErrSISLParse)
	}
	var v uint32
	for i := 0; i < count; i++ {
		c := s[pos+i]
		var d uint32
		switch {
		case c >= '0' && c <= '9':
			d = uint32(c - '0')
		case c >= 'a' && c <= 'f':
			d = uint32(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = uint32(c-'A') + 10
		default:
			return 0, 0, fmt.Errorf("%w: invalid hex escape sequence", sislerr.ErrSISLParse)
		}
		v = v<<4 | d
	}
	return v, count, nil
}

// encodeUTF8 mirrors the original codepoint_to_utf8: it encodes a raw
// 32-bit value as UTF-8 without requiring it to be a valid Unicode
// scalar value, so a \uD800-range escape round-trips as the
// corresponding (technically invalid) byte sequence rather than being
// rejected or replaced.
func encodeUTF8(cp uint32) []byte {
	switch {
	case cp < 0x80:
		return []byte{byte(cp)}
	case cp < 0x800:
		return []byte{
			byte(0xC0 | (cp >> 6)),
			byte(0x80 | (cp & 0x3F)),
		}
	case cp < 0x10000:
		return []byte{
			byte(0xE0 | (cp >> 12)),
			byte(0x80 | ((cp >> 6) & 0x3F)),
			byte(0x80 | (cp & 0x3F)),
		}
	default:
		return []byte{
			byte(0xF0 | (cp >> 18)),
			byte(0x80 | ((cp >> 12) & 0x3F)),
			byte(0x80 | ((cp >> 6) & 0x3F)),
			byte(0x80 | (cp & 0x3F)),
		}
	}
}

// Escape produces the minimal escape set of spec §4.D: " \\ CR LF TAB
// escaped, everything else emitted verbatim (including UTF-8
// multi-byte sequences, which pass through untouched).
func Escape(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			out = append(out, '\\', '"')
		case '\\':
			out = append(out, '\\', '\\')
		case '\r':
			out = append(out, '\\', 'r')
		case '\n':
			out = append(out, '\\', 'n')
		case '\t':
			out = append(out, '\\', 't')
		default:
			out = append(out, c)
		}
	}
	return string(out)
}
