package i18n

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// TranslationAdapter interface defines how translations are loaded
type TranslationAdapter interface {
	Load(ctx context.Context) (map[string]map[string]any, error)
}

// MapAdapter is a simple adapter that uses an in-memory map as the translation source
type MapAdapter struct {
	Data map[string]map[string]any
}

// Load implements the TranslationAdapter interface
func (a *MapAdapter) Load(_ context.Context) (map[string]map[string]any, error) {
	if a.Data == nil {
		return make(map[string]map[string]any), nil
	}
	return a.Data, nil
}

// FSAdapter loads every *.yaml / *.yml file from a directory of an fs.FS,
// typically an embed.FS. Each file holds one or more top-level language keys.
type FSAdapter struct {
	fsys fs.FS
	dir  string
}

// NewFSAdapter creates a new FSAdapter instance.
func NewFSAdapter(fsys fs.FS, dir string) *FSAdapter {
	if dir == "" {
		dir = "."
	}
	return &FSAdapter{fsys: fsys, dir: dir}
}

// Load implements the TranslationAdapter interface
func (a *FSAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingTranslationsCancelled, err)
	}
	if a.fsys == nil {
		return nil, ErrNilFilesystem
	}

	entries, err := fs.ReadDir(a.fsys, a.dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadDirectory, err)
	}

	all := make(map[string]map[string]any)
	var errs []error
	processed := 0

	for _, entry := range entries {
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrLoadingTranslationsCancelled, err)
		}

		filePath := path.Join(a.dir, entry.Name())
		if err := a.processFile(ctx, filePath, all); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", filePath, err))
			continue
		}
		processed++
	}

	if processed == 0 {
		errs = append(errs, fmt.Errorf("%w in '%s'", ErrNoTranslationFiles, a.dir))
		return nil, errors.Join(errs...)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return all, nil
}

func (a *FSAdapter) processFile(ctx context.Context, filePath string, all map[string]map[string]any) error {
	content, err := fs.ReadFile(a.fsys, filePath)
	if err != nil {
		return errors.Join(ErrFailedToReadFile, err)
	}
	if len(content) == 0 {
		return ErrEmptyTranslationFile
	}

	parsed, err := ParseYAML(ctx, content)
	if err != nil {
		return err
	}

	for lang, translations := range parsed {
		if all[lang] == nil {
			all[lang] = make(map[string]any)
		}
		maps.Copy(all[lang], translations)
	}
	return nil
}

// ParseYAML decodes a catalog whose top-level keys are language codes.
func ParseYAML(ctx context.Context, content []byte) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrYAMLParsingCancelled, err)
	}

	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}

	result := make(map[string]map[string]any, len(data))
	for lang, val := range data {
		transMap, ok := val.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("invalid YAML structure for language '%s': expected map, got %T", lang, val)
		}
		result[lang] = transMap
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("%w: no languages in YAML content", ErrFailedToParseYAML)
	}

	return result, nil
}

func isYAML(name string) bool {
	ext := strings.TrimPrefix(path.Ext(name), ".")
	return strings.EqualFold(ext, "yaml") || strings.EqualFold(ext, "yml")
}
