package records

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/coursemap/pkg/errors"
)

// Format is a dataset serialization.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the format from a file extension: .yaml and .yml are
// YAML, .json is JSON.
func FormatFor(path string) (Format, error) {
	if err := errors.ValidateExtension(path, ".json", ".yaml", ".yml"); err != nil {
		return "", err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return FormatJSON, nil
	}
}

// Decode reads a dataset in the given format.
func Decode(r io.Reader, format Format) (*Dataset, error) {
	ds := New()
	var err error
	switch format {
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(ds)
	default:
		err = json.NewDecoder(r).Decode(ds)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s dataset", format)
	}
	return ds, nil
}

// Encode writes a dataset in the given format. JSON is indented by two
// spaces.
func Encode(w io.Writer, ds *Dataset, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(ds); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode yaml dataset")
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(ds); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode json dataset")
		}
		return nil
	}
}

// ReadFile loads a dataset, choosing the format by extension.
func ReadFile(path string) (*Dataset, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return Decode(bytes.NewReader(data), format)
}

// WriteFile saves a dataset, choosing the format by extension.
func WriteFile(path string, ds *Dataset) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, ds, format); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}
