package main

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/kitmi/k-utils/pkg/errors"
	"github.com/kitmi/k-utils/pkg/fsutil"
)

// docFs is swapped for an in-memory filesystem in tests.
var docFs = fsutil.OsFs

// loadDocument reads a JSON, YAML, or TOML file into a nested mapping.
func loadDocument(path string) (map[string]any, error) {
	data, err := afero.ReadFile(docFs, path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path)
	}

	doc := map[string]any{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &doc)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	case ".toml":
		err = toml.Unmarshal(data, &doc)
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unsupported document format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "cannot parse %s", path)
	}
	return normalize(doc).(map[string]any), nil
}

// saveDocument writes a nested mapping back in the file's own format.
func saveDocument(path string, doc map[string]any) error {
	var data []byte
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(doc, "", "  ")
		data = append(data, '\n')
	case ".yaml", ".yml":
		data, err = yaml.Marshal(doc)
	case ".toml":
		data, err = toml.Marshal(doc)
	default:
		return errors.Newf(errors.ErrInvalidInput, "unsupported document format %q", filepath.Ext(path))
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrInvalidInput, "cannot encode %s", path)
	}
	return fsutil.WriteFileAtomic(docFs, path, data, 0644)
}

// normalize rewrites decoder-specific container types (yaml's
// map[any]any, typed slices) into the map[string]any / []any shapes the
// dotpath accessor walks.
func normalize(v any) any {
	switch tv := v.(type) {
	case map[string]any:
		for k, e := range tv {
			tv[k] = normalize(e)
		}
		return tv
	case map[any]any:
		out := make(map[string]any, len(tv))
		for k, e := range tv {
			out[toString(k)] = normalize(e)
		}
		return out
	case []any:
		for i, e := range tv {
			tv[i] = normalize(e)
		}
		return tv
	default:
		return v
	}
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return strings.Trim(string(data), `"`)
}

// parseValue interprets a CLI value argument: valid JSON becomes the
// decoded value (numbers, booleans, arrays, objects), anything else
// stays a plain string.
func parseValue(arg string) any {
	var v any
	if err := json.Unmarshal([]byte(arg), &v); err == nil {
		return normalize(v)
	}
	return arg
}

// renderValue prints a value the way it would appear in a JSON document,
// with bare strings unquoted for shell friendliness.
func renderValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	return string(data)
}
