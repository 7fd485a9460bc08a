package scaffold

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/CliForge/oascaffold/pkg/errors"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// outputNames maps template names whose output name is not the template
// name without its .tmpl extension.
var outputNames = map[string]string{
	"gitignore.tmpl": ".gitignore",
}

// OutputName returns the file a template renders to.
func OutputName(template string) string {
	if name, ok := outputNames[template]; ok {
		return name
	}
	return strings.TrimSuffix(template, ".tmpl")
}

// Templates returns the names of the embedded project templates, sorted.
func Templates() ([]string, error) {
	entries, err := fs.ReadDir(templateFS, "templates")
	if err != nil {
		return nil, errors.Wrap(err, "read templates")
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// RenderTemplates renders every project template with data into dir and
// returns the written paths.
func RenderTemplates(engine *TemplateEngine, dir string, data map[string]any) ([]string, error) {
	names, err := Templates()
	if err != nil {
		return nil, err
	}

	written := make([]string, 0, len(names))
	for _, name := range names {
		content, err := templateFS.ReadFile(path.Join("templates", name))
		if err != nil {
			return written, errors.Wrapf(err, "read template %s", name)
		}
		rendered, err := engine.Render(string(content), data)
		if err != nil {
			return written, errors.Wrapf(err, "render template %s", name)
		}

		out := filepath.Join(dir, OutputName(name))
		if err := os.WriteFile(out, []byte(rendered), 0o644); err != nil {
			return written, errors.IO(err, out)
		}
		written = append(written, out)
	}
	return written, nil
}
