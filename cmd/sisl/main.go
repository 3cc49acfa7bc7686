// Command sisl is the CLI surface of spec §6: --dumps converts a
// source document (JSON, or XML under --xml) to SISL text; --loads
// converts SISL text (or, if the input starts with '[', a JSON array
// of SISL fragments fed to the joiner) to a target document.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/signadot/sisl/encode"
	"github.com/signadot/sisl/ir"
	"github.com/signadot/sisl/jsonconv"
	"github.com/signadot/sisl/merge"
	"github.com/signadot/sisl/parse"
	"github.com/signadot/sisl/sislerr"
	"github.com/signadot/sisl/split"
	"github.com/signadot/sisl/wireformat"
	"github.com/signadot/sisl/xmlcodec"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) int {
	var opts struct {
		dumps, loads, useXML  bool
		maxLength             int
		inputPath, outputPath string
	}

	fs := flag.NewFlagSet("sisl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&opts.dumps, "dumps", false, "read source, emit SISL")
	fs.BoolVar(&opts.loads, "loads", false, "read SISL, emit target")
	fs.BoolVar(&opts.useXML, "xml", false, "source (with --dumps) or target (with --loads) is XML, not JSON")
	fs.IntVar(&opts.maxLength, "max-length", 0, "with --dumps, split output into fragments of at most N bytes")
	fs.StringVar(&opts.inputPath, "input", "", "read from this file instead of stdin")
	fs.StringVar(&opts.outputPath, "output", "", "write atomically to this file instead of stdout")

	if err := fs.Parse(args); err != nil {
		return reportErr(stderr, fmt.Errorf("%w: %v", sislerr.ErrCLIUsage, err))
	}
	if opts.dumps == opts.loads {
		return reportErr(stderr, fmt.Errorf("%w: exactly one of --dumps or --loads is required", sislerr.ErrCLIUsage))
	}
	if opts.maxLength != 0 && !opts.dumps {
		return reportErr(stderr, fmt.Errorf("%w: --max-length is only valid with --dumps", sislerr.ErrCLIUsage))
	}
	if opts.maxLength < 0 {
		return reportErr(stderr, fmt.Errorf("%w: --max-length must be positive", sislerr.ErrCLIUsage))
	}

	data, err := readInput(opts.inputPath, stdin)
	if err != nil {
		return reportErr(stderr, err)
	}

	otherSide := wireformat.JSON
	if opts.useXML {
		otherSide = wireformat.XML
	}

	var out []byte
	if opts.dumps {
		out, err = doDumps(data, otherSide, opts.maxLength)
	} else {
		out, err = doLoads(data, otherSide)
	}
	if err != nil {
		return reportErr(stderr, err)
	}

	if err := writeOutput(opts.outputPath, out, stdout); err != nil {
		return reportErr(stderr, err)
	}
	return 0
}

func doDumps(data []byte, sourceFormat wireformat.Format, maxLength int) ([]byte, error) {
	var doc *ir.Node
	var err error
	switch sourceFormat {
	case wireformat.XML:
		doc, err = xmlcodec.FromXML(data)
	default:
		doc, err = jsonconv.FromJSON(data)
	}
	if err != nil {
		return nil, err
	}

	if maxLength > 0 {
		frags, err := split.Split(doc, maxLength)
		if err != nil {
			return nil, err
		}
		if len(frags) == 1 {
			return []byte(frags[0]), nil
		}
		// Splitting was required: output becomes a JSON array of SISL
		// strings (spec §6). The array holds only strings, so
		// encoding/json's generic marshaler needs no customization.
		b, err := json.Marshal(frags)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", sislerr.ErrOutputIO, err)
		}
		return b, nil
	}
	return []byte(encode.Encode(doc)), nil
}

func doLoads(data []byte, targetFormat wireformat.Format) ([]byte, error) {
	var doc *ir.Node
	trimmed := bytes.TrimSpace(data)

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var frags []string
		if err := json.Unmarshal(trimmed, &frags); err != nil {
			return nil, fmt.Errorf("%w: input starting with '[' must be a JSON array of strings: %v", sislerr.ErrJSONParse, err)
		}
		d, err := merge.Join(frags)
		if err != nil {
			return nil, err
		}
		doc = d
	} else {
		d, err := parse.Parse(string(data))
		if err != nil {
			return nil, err
		}
		doc = d
	}

	if targetFormat == wireformat.XML {
		s, err := xmlcodec.ToXML(doc)
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	}
	return jsonconv.ToJSON(doc), nil
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", sislerr.ErrInputIO, err)
		}
		return data, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sislerr.ErrInputIO, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sislerr.ErrInputIO, err)
	}
	return data, nil
}

// writeOutput implements spec §5's atomic-output guarantee: a failed
// run leaves no partial file. With no --output path it just writes
// to stdout, trailed by a newline for readability on a terminal.
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == "" {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("%w: %v", sislerr.ErrOutputIO, err)
		}
		_, err := stdout.Write([]byte("\n"))
		if err != nil {
			return fmt.Errorf("%w: %v", sislerr.ErrOutputIO, err)
		}
		return nil
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".sisl-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", sislerr.ErrOutputIO, err)
	}
	tmpPath := tmp.Name()
	succeeded := false
	defer func() {
		if !succeeded {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", sislerr.ErrOutputIO, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", sislerr.ErrOutputIO, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("%w: %v", sislerr.ErrOutputIO, err)
	}
	succeeded = true
	return nil
}

// reportErr writes a classified diagnostic to stderr (spec §7), with
// the error-kind prefix highlighted in red when stderr is a terminal
// (the same isatty-gated convention the teacher lineage's "o" command
// uses to decide whether to color its output at all).
func reportErr(stderr io.Writer, err error) int {
	msg := err.Error()
	prefix := sislerr.Prefix(err)
	if prefix != "" && stderrIsTerminal(stderr) {
		bold := color.New(color.FgRed, color.Bold).SprintFunc()
		msg = bold(prefix) + strings.TrimPrefix(msg, prefix)
	}
	fmt.Fprintln(stderr, msg)
	return 1
}

func stderrIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}
