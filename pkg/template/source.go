package template

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileSource loads templates from YAML files on disk. The path can be a
// single file or a directory; for a directory every .yaml and .yml file
// is loaded. A file may hold either a single template document or a list
// under a top-level "templates" key.
type FileSource struct {
	path   string
	logger *slog.Logger
}

// NewFileSource creates a file-based template source.
func NewFileSource(path string, logger *slog.Logger) *FileSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileSource{
		path:   path,
		logger: logger.With("component", "template.source"),
	}
}

// Load implements Source.
func (s *FileSource) Load() ([]Template, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat template path %q: %w", s.path, err)
	}

	if !info.IsDir() {
		return s.loadFile(s.path)
	}

	var templates []Template
	err = filepath.Walk(s.path, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		loaded, err := s.loadFile(path)
		if err != nil {
			// Skip unparseable files rather than failing the whole catalog.
			s.logger.Warn("failed to load template file, skipping",
				"path", path,
				"error", err,
			)
			return nil
		}
		templates = append(templates, loaded...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk template directory %q: %w", s.path, err)
	}

	return templates, nil
}

// templateFile is the YAML document shape for template files.
type templateFile struct {
	Templates []Template `yaml:"templates"`
}

func (s *FileSource) loadFile(path string) ([]Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file %q: %w", path, err)
	}

	var file templateFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse template file %q: %w", path, err)
	}

	if len(file.Templates) == 0 {
		// Fall back to a single-template document.
		var tpl Template
		if err := yaml.Unmarshal(data, &tpl); err != nil {
			return nil, fmt.Errorf("failed to parse template file %q: %w", path, err)
		}
		if tpl.ID == "" {
			return nil, fmt.Errorf("template file %q contains no templates", path)
		}
		file.Templates = []Template{tpl}
	}

	s.logger.Debug("loaded template file",
		"path", path,
		"template_count", len(file.Templates),
	)
	return file.Templates, nil
}
