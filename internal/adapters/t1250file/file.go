// Package t1250file opens T1250 consignment files and decodes their names.
package t1250file

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

const (
	namePrefix      = "T1250_"
	nameSuffix      = ".txt"
	timestampLayout = "20060102150405"
)

// ErrBadName is returned for file names that do not follow T1250_<BU>_<YYYYMMDDHHMMSS>.txt.
var ErrBadName = errors.New("not a T1250 file name")

// Encoding is the character set of a T1250 file.
type Encoding string

const (
	EncodingLatin1 Encoding = "latin1"
	EncodingUTF8   Encoding = "utf8"
)

// ParseEncoding accepts the common spellings of the supported encodings.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		return EncodingLatin1, nil
	case "utf8", "utf-8":
		return EncodingUTF8, nil
	default:
		return "", fmt.Errorf("unsupported file encoding %q", s)
	}
}

// Name is the decoded name of a T1250 file.
type Name struct {
	Token     string
	Timestamp time.Time
}

// ParseName decodes the base name of path. The timestamp is read as UTC.
func ParseName(path string) (Name, error) {
	base := filepath.Base(path)
	if len(base) < len(namePrefix)+len(nameSuffix) ||
		!strings.EqualFold(base[:len(namePrefix)], namePrefix) ||
		!strings.EqualFold(base[len(base)-len(nameSuffix):], nameSuffix) {
		return Name{}, fmt.Errorf("%s: %w", base, ErrBadName)
	}
	stem := base[len(namePrefix) : len(base)-len(nameSuffix)]

	i := strings.LastIndexByte(stem, '_')
	if i <= 0 {
		return Name{}, fmt.Errorf("%s: %w", base, ErrBadName)
	}
	ts, err := time.ParseInLocation(timestampLayout, stem[i+1:], time.UTC)
	if err != nil {
		return Name{}, fmt.Errorf("%s: %w: bad timestamp", base, ErrBadName)
	}
	return Name{Token: strings.ToUpper(stem[:i]), Timestamp: ts}, nil
}

// NewReader returns a reader yielding UTF-8 text from r.
func NewReader(r io.Reader, enc Encoding) io.Reader {
	if enc == EncodingUTF8 {
		return r
	}
	return transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
}

// File is an open T1250 file.
type File struct {
	Path string
	Name Name
	io.Reader
	f *os.File
}

// Open opens path for reading after validating its name.
func Open(path string, enc Encoding) (*File, error) {
	name, err := ParseName(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &File{Path: path, Name: name, Reader: NewReader(f, enc), f: f}, nil
}

// Close closes the underlying file.
func (f *File) Close() error {
	return f.f.Close()
}
