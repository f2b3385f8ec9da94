// Package output manages the artifact directory and JSON file writers
// shared by the export pipeline.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/angraph/angraph/pkg/errors"
)

// Artifact filenames written into the output directory.
const (
	FileArchitecture       = "architecture.json"
	FileArchitectureSchema = "architecture_schema.json"
	FileDataModel          = "data_model.json"
	FileDataModelSchema    = "data_model_schema.json"
	FileArchitectureDOT    = "architecture.dot"
	FileArchitectureSVG    = "architecture.svg"

	probeFile = "startup_test_output.txt"
)

// Dir is a prepared, writable artifact directory.
type Dir struct {
	Path string
}

// Prepare creates the output directory if needed and probes it for
// writability by creating and deleting a scratch file. An unwritable
// directory fails the whole run before any real work begins.
func Prepare(path string) (*Dir, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeOutputUnwritable, err, "create output directory %s", path)
	}

	probe := filepath.Join(path, probeFile)
	if err := os.WriteFile(probe, []byte("angraph startup probe\n"), 0o644); err != nil {
		return nil, errors.Wrap(errors.ErrCodeOutputUnwritable, err, "output directory %s is not writable", path)
	}
	if err := os.Remove(probe); err != nil {
		return nil, errors.Wrap(errors.ErrCodeOutputUnwritable, err, "clean up probe file in %s", path)
	}

	return &Dir{Path: path}, nil
}

// Join resolves name inside the directory.
func (d *Dir) Join(name string) string {
	return filepath.Join(d.Path, name)
}

// WriteJSON encodes v with two-space indentation into the named file.
func (d *Dir) WriteJSON(name string, v any) error {
	f, err := os.Create(d.Join(name))
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer f.Close()
	return EncodeJSON(f, v)
}

// WriteBytes writes raw artifact bytes into the named file.
func (d *Dir) WriteBytes(name string, data []byte) error {
	if err := os.WriteFile(d.Join(name), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// EncodeJSON writes v to w as indented JSON.
func EncodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
