package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/stackorder/pkg/errors"
)

// Supported manifest formats.
const (
	FormatTOML = "toml"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats returns the supported manifest formats.
func Formats() []string {
	return []string{FormatTOML, FormatJSON, FormatYAML}
}

var formatByExt = map[string]string{
	".toml": FormatTOML,
	".json": FormatJSON,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
}

// FormatFromPath returns the manifest format implied by the file extension.
func FormatFromPath(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := formatByExt[ext]; ok {
		return f, nil
	}
	return "", errs.New(errs.ErrCodeInvalidFormat, "cannot infer manifest format from %q (want .toml, .json, .yaml or .yml)", path)
}

// Load reads and decodes the manifest at path, inferring the format from
// the extension.
func Load(path string) (*Manifest, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	m, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.Source = path
	return m, nil
}

// LoadAll loads every path in order. It stops at the first failure.
func LoadAll(paths ...string) ([]*Manifest, error) {
	ms := make([]*Manifest, 0, len(paths))
	for _, p := range paths {
		m, err := Load(p)
		if err != nil {
			return nil, err
		}
		ms = append(ms, m)
	}
	return ms, nil
}

// Read decodes a manifest of the given format from r.
// Read does not close r.
func Read(r io.Reader, format string) (*Manifest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(data, format)
}

// Parse decodes and validates a manifest of the given format.
func Parse(data []byte, format string) (*Manifest, error) {
	var m Manifest
	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&m)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidManifest, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			if key := firstUnknownKey(undecoded); key != "" {
				return nil, errs.New(errs.ErrCodeInvalidManifest, "unknown key %q", key)
			}
		}
	case FormatJSON:
		if err := DecodeJSON(data, &m); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidManifest, err, "decode json")
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
			return nil, errs.Wrap(errs.ErrCodeInvalidManifest, err, "decode yaml")
		}
	default:
		return nil, errs.ValidateOneOf(errs.ErrCodeInvalidFormat, "manifest format", format, Formats()...)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	m.Source = "inline"
	return &m, nil
}

// DecodeJSON decodes a single JSON value into v, rejecting unknown fields
// and trailing data. Free-form maps such as element meta accept any key.
func DecodeJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("unexpected data after JSON value")
	}
	return nil
}

// firstUnknownKey returns the first undecoded key outside element.meta,
// which is free-form.
func firstUnknownKey(keys []toml.Key) string {
	for _, k := range keys {
		if len(k) >= 2 && k[0] == "element" && k[1] == "meta" {
			continue
		}
		return k.String()
	}
	return ""
}

// Validate checks every element ID and every referenced ID.
func (m *Manifest) Validate() error {
	for i, e := range m.Elements {
		if err := errs.ValidateElementID(e.ID); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidManifest, err, "element %d", i)
		}
		for _, ref := range e.Before {
			if err := errs.ValidateElementID(ref); err != nil {
				return errs.Wrap(errs.ErrCodeInvalidManifest, err, "element %s: before", e.ID)
			}
		}
		for _, ref := range e.After {
			if err := errs.ValidateElementID(ref); err != nil {
				return errs.Wrap(errs.ErrCodeInvalidManifest, err, "element %s: after", e.ID)
			}
		}
	}
	return nil
}
