package formdef

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Library holds a set of validated form definitions keyed by name.
type Library struct {
	forms map[string]*Form
}

// Form returns the definition with the given name.
func (l *Library) Form(name string) (*Form, bool) {
	if l == nil {
		return nil, false
	}
	form, ok := l.forms[name]
	return form, ok
}

// Names returns the defined form names in sorted order.
func (l *Library) Names() []string {
	if l == nil || len(l.forms) == 0 {
		return nil
	}
	out := make([]string, 0, len(l.forms))
	for name := range l.forms {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of definitions in the library.
func (l *Library) Len() int {
	if l == nil {
		return 0
	}
	return len(l.forms)
}

// LoadFS walks fsys and parses every .json/.yaml/.yml document into a
// validated form definition. Documents parse as JSON first, then YAML.
// Two documents defining the same form name is an error.
func LoadFS(ctx context.Context, fsys fs.FS) (*Library, error) {
	lib := &Library{forms: make(map[string]*Form)}
	if fsys == nil {
		return lib, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("formdef: read %s: %w", path, err)
		}

		form, err := Parse(data, path)
		if err != nil {
			return err
		}
		if _, exists := lib.forms[form.Name]; exists {
			return fmt.Errorf("formdef: duplicate form %q (file %s)", form.Name, path)
		}
		lib.forms[form.Name] = form
		return nil
	})
	if err != nil {
		return nil, err
	}

	return lib, nil
}

// LoadFile parses a single definition document from disk.
func LoadFile(ctx context.Context, path string) (*Form, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !isDefinitionFile(path) {
		return nil, fmt.Errorf("formdef: %s is not a .json/.yaml/.yml document", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("formdef: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes one definition document and validates it. The source
// string only labels errors.
func Parse(data []byte, source string) (*Form, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("formdef: document %s is empty", source)
	}

	var form Form
	if err := json.Unmarshal(data, &form); err != nil {
		form = Form{}
		if err := yaml.Unmarshal(data, &form); err != nil {
			return nil, fmt.Errorf("formdef: parse %s: invalid JSON or YAML", source)
		}
	}

	if err := form.Validate(); err != nil {
		return nil, fmt.Errorf("formdef: document %s: %w", source, err)
	}
	return &form, nil
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
