// Package export writes a cart to a JSON file.
//
// The document is an object keyed by product name in cart order. In the
// legacy format each value is a string holding the product's JSON record;
// in the nested format the record is embedded as an object.
package export

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/basket/pkg/types"
)

// Filename errors.
var (
	ErrEmptyFilename   = errors.New("file name must not be empty")
	ErrInvalidFilename = errors.New("file name must not contain a path separator")
)

// FileExt is appended to every export file name.
const FileExt = ".json"

// Marshal encodes products in the given format. A product whose name
// repeats an earlier one replaces that entry's value and keeps its
// position.
func Marshal(products []types.Product, format string) ([]byte, error) {
	var order []string
	values := make(map[string]json.RawMessage, len(products))

	for _, p := range products {
		record, err := json.Marshal(p.View())
		if err != nil {
			return nil, fmt.Errorf("encoding %q: %w", p.Info().Name, err)
		}

		var value json.RawMessage
		switch format {
		case types.ExportLegacy:
			value, err = json.Marshal(string(record))
			if err != nil {
				return nil, fmt.Errorf("quoting %q: %w", p.Info().Name, err)
			}
		case types.ExportNested:
			value = record
		default:
			return nil, fmt.Errorf("%q: %w", format, types.ErrExportFormatUnknown)
		}

		name := p.Info().Name
		if _, seen := values[name]; !seen {
			order = append(order, name)
		}
		values[name] = value
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, fmt.Errorf("encoding key %q: %w", name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(values[name])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Path returns dir/name.json after checking name.
func Path(dir, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyFilename
	}
	if strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%q: %w", name, ErrInvalidFilename)
	}
	return filepath.Join(dir, name+FileExt), nil
}

// WriteFile encodes products and writes them to dir/name.json, replacing
// any existing file. It returns the path written.
func WriteFile(dir, name, format string, products []types.Product) (string, error) {
	path, err := Path(dir, name)
	if err != nil {
		return "", err
	}
	data, err := Marshal(products, format)
	if err != nil {
		return "", err
	}
	if err := writeAtomic(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// writeAtomic writes data to path using the temp-file, fsync, rename
// pattern so a failed export never leaves a truncated file behind.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".export-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	if _, err := w.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing export: %w", err)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("setting file mode: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
