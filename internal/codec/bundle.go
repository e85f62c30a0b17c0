package codec

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack"
	"gopkg.in/yaml.v3"
)

// BundleVersion is the only bundle layout this package reads and writes.
const BundleVersion = 1

// Format names an encoding for bundles.
type Format string

// Supported formats.
const (
	FormatMsgpack Format = "msgpack"
	FormatYAML    Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatMsgpack, FormatYAML:
		return f, nil
	default:
		return "", errors.Wrapf(ErrUnknownFormat, "%q", name)
	}
}

// FormatForPath picks a format from a file extension.
// .yaml and .yml map to YAML, everything else to msgpack.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatMsgpack
	}
}

// Entry is a named document inside a bundle.
type Entry struct {
	Name   string   `yaml:"name" msgpack:"name"`
	Tensor Document `yaml:"tensor" msgpack:"tensor"`
}

// Bundle is an ordered collection of named tensors.
type Bundle struct {
	Version int     `yaml:"version" msgpack:"version"`
	Entries []Entry `yaml:"tensors" msgpack:"tensors"`
}

// NewBundle returns an empty bundle at the current version.
func NewBundle() *Bundle {
	return &Bundle{Version: BundleVersion}
}

// Add appends a document, replacing any existing entry with the same name.
func (b *Bundle) Add(name string, d Document) {
	for i := range b.Entries {
		if b.Entries[i].Name == name {
			b.Entries[i].Tensor = d
			return
		}
	}
	b.Entries = append(b.Entries, Entry{Name: name, Tensor: d})
}

// Get returns the document stored under name.
func (b *Bundle) Get(name string) (Document, bool) {
	for _, e := range b.Entries {
		if e.Name == name {
			return e.Tensor, true
		}
	}
	return Document{}, false
}

// Names returns the entry names in insertion order.
func (b *Bundle) Names() []string {
	names := make([]string, len(b.Entries))
	for i, e := range b.Entries {
		names[i] = e.Name
	}
	return names
}

// Validate checks the version and every document.
func (b *Bundle) Validate() error {
	if b.Version != BundleVersion {
		return errors.Wrapf(ErrUnsupportedVersion, "got %d, want %d", b.Version, BundleVersion)
	}
	for _, e := range b.Entries {
		if err := e.Tensor.Verify(); err != nil {
			return &DocumentError{Name: e.Name, Err: err}
		}
	}
	return nil
}

// Encode writes b to w in the given format.
func Encode(w io.Writer, b *Bundle, format Format) error {
	switch format {
	case FormatMsgpack:
		return errors.Wrap(msgpack.NewEncoder(w).Encode(b), "encode msgpack bundle")
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(b); err != nil {
			return errors.Wrap(err, "encode yaml bundle")
		}
		return errors.Wrap(enc.Close(), "encode yaml bundle")
	default:
		return errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
}

// Decode reads a bundle from r and validates it.
func Decode(r io.Reader, format Format) (*Bundle, error) {
	var b Bundle
	switch format {
	case FormatMsgpack:
		if err := msgpack.NewDecoder(r).Decode(&b); err != nil {
			return nil, errors.Wrap(err, "decode msgpack bundle")
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&b); err != nil {
			return nil, errors.Wrap(err, "decode yaml bundle")
		}
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", format)
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// Marshal encodes b into a byte slice.
func Marshal(b *Bundle, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, b, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes and validates a bundle from data.
func Unmarshal(data []byte, format Format) (*Bundle, error) {
	return Decode(bytes.NewReader(data), format)
}
