//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package spiralizer

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Reader needs io.ReaderAt for random access decoders
type Reader interface {
	io.Reader
	io.ReaderAt
}

// Writer
type Writer interface {
	io.Writer
}

// ErrUnsupported is returned by a format that only reads, or only writes
type ErrUnsupported string

func (e ErrUnsupported) Error() string {
	return fmt.Sprintf("%s: operation not supported by this format", string(e))
}

// Mesh and path file format
type Formatter interface {
	Parse(args []string) (err error)
	Parsed() bool
	Args() (args []string)
	NArg() int
	PrintDefaults()

	Decode(reader Reader, size int64) (mesh *Mesh, err error)
	Encode(writer Writer, path *Path) (err error)
}

// Formatter for a file suffix
type NewFormatter func(suffix string) (formatter Formatter)

var formatterMap map[string]NewFormatter

// Suffixes of files that are generated rather than read
var generatedSuffix = map[string]bool{}

func RegisterFormatter(suffix string, newFormatter NewFormatter) {
	if formatterMap == nil {
		formatterMap = make(map[string]NewFormatter)
	}

	formatterMap[suffix] = newFormatter
}

// RegisterGenerator registers a formatter whose decoder synthesizes a
// mesh, and which is named by its bare suffix instead of a file.
func RegisterGenerator(suffix string, newFormatter NewFormatter) {
	RegisterFormatter(suffix, newFormatter)
	generatedSuffix[suffix] = true
}

func FormatterUsage() {
	if formatterMap != nil {
		list := []string{}
		for suffix := range formatterMap {
			list = append(list, suffix)
		}
		sort.Strings(list)

		for _, suffix := range list {
			newFormatter := formatterMap[suffix]
			fmt.Fprintln(os.Stderr)
			fmt.Fprintf(os.Stderr, "Options for '%s':\n", suffix)
			fmt.Fprintln(os.Stderr)
			newFormatter(suffix).PrintDefaults()
		}
	}
}

type Format struct {
	Formatter
	Suffix   string
	Filename string
}

// IsFormat reports whether filename has a registered suffix
func IsFormat(filename string) bool {
	_, ok := matchSuffix(filename)
	return ok
}

// matchSuffix picks the longest registered suffix of filename
func matchSuffix(filename string) (suffix string, ok bool) {
	for candidate := range formatterMap {
		if strings.HasSuffix(filename, candidate) && len(candidate) > len(suffix) {
			suffix = candidate
			ok = true
		}
	}

	return
}

func NewFormat(filename string, args []string) (format *Format, err error) {
	suffix, ok := matchSuffix(filename)
	if !ok {
		err = fmt.Errorf("%s: File extension unknown", filename)
		return
	}

	// Get formatter, and parse arguments
	formatter := formatterMap[suffix](suffix)

	err = formatter.Parse(args)
	if err != nil {
		return
	}

	format = &Format{
		Formatter: formatter,
		Suffix:    suffix,
		Filename:  filename,
	}
	return
}

// Mesh reads the mesh from the file, and validates it
func (format *Format) Mesh() (mesh *Mesh, err error) {
	var reader *os.File
	var filesize int64

	if !generatedSuffix[format.Suffix] {
		reader, err = os.Open(format.Filename)
		if err != nil {
			return
		}
		defer func() { reader.Close() }()

		filesize, err = reader.Seek(0, io.SeekEnd)
		if err != nil {
			return
		}

		_, err = reader.Seek(0, io.SeekStart)
		if err != nil {
			return
		}
	}

	decoded, err := format.Decode(reader, filesize)
	if err != nil {
		err = errors.Wrapf(err, "%s", format.Filename)
		return
	}

	err = decoded.Validate()
	if err != nil {
		err = errors.Wrapf(err, "%s", format.Filename)
		return
	}

	mesh = decoded
	return
}

// SetPath writes a path to the file format
func (format *Format) SetPath(path *Path) (err error) {
	writer, err := os.Create(format.Filename)
	if err != nil {
		return
	}
	defer func() { writer.Close() }()

	err = format.Encode(writer, path)
	if err != nil {
		err = errors.Wrapf(err, "%s", format.Filename)
		return
	}

	return
}
