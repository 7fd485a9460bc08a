// Package openapi loads the OpenAPI document a project is scaffolded from.
//
// Documents may be OpenAPI 3.0, 3.1 or Swagger 2.0, encoded as JSON or YAML,
// and read from a local file or an HTTP(S) URL. The document is not
// validated here: the binding generator reports schema problems with better
// context than a second validator would.
package openapi

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/CliForge/oascaffold/pkg/errors"
)

// SpecVersion is the OpenAPI version a document declares.
type SpecVersion string

const (
	// SpecVersionSwagger2 represents Swagger 2.0 / OpenAPI 2.0
	SpecVersionSwagger2 SpecVersion = "2.0"
	// SpecVersionOpenAPI3 represents OpenAPI 3.0.x
	SpecVersionOpenAPI3 SpecVersion = "3.0"
	// SpecVersionOpenAPI31 represents OpenAPI 3.1.x
	SpecVersionOpenAPI31 SpecVersion = "3.1"
)

// Format is the encoding of a document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Info is the document metadata shown to the user and fed to the project
// templates.
type Info struct {
	Title       string `json:"title" yaml:"title"`
	Version     string `json:"version" yaml:"version"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Document is a loaded OpenAPI document.
type Document struct {
	// Data is the raw document, kept as loaded.
	Data []byte
	// Source is the file path or URL the document came from.
	Source  string
	Format  Format
	Version SpecVersion
	// Spec is the OpenAPI 3 view of the document. Swagger 2.0 documents are
	// converted.
	Spec *openapi3.T
}

// Parse decodes data and detects its format and version.
func Parse(ctx context.Context, data []byte) (*Document, error) {
	format := detectFormat(data)
	version, err := detectVersion(data)
	if err != nil {
		return nil, errors.Parse(err, "openapi document")
	}

	var spec *openapi3.T
	switch version {
	case SpecVersionSwagger2:
		spec, err = parseSwagger2(data, format)
	default:
		spec, err = parseOpenAPI3(ctx, data)
	}
	if err != nil {
		return nil, errors.Parse(err, "openapi document")
	}

	return &Document{
		Data:    data,
		Format:  format,
		Version: version,
		Spec:    spec,
	}, nil
}

// Info returns the document metadata.
func (d *Document) Info() Info {
	if d.Spec == nil || d.Spec.Info == nil {
		return Info{}
	}
	return Info{
		Title:       d.Spec.Info.Title,
		Version:     d.Spec.Info.Version,
		Description: d.Spec.Info.Description,
	}
}

// FileName is the name the document is saved under in a project.
func (d *Document) FileName() string {
	return "spec." + string(d.Format)
}

// Save writes the raw document into dir and returns its path.
func (d *Document) Save(dir string) (string, error) {
	path := filepath.Join(dir, d.FileName())
	if err := os.WriteFile(path, d.Data, 0o644); err != nil {
		return "", errors.IO(err, path)
	}
	return path, nil
}

func detectFormat(data []byte) Format {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' && json.Valid(trimmed) {
		return FormatJSON
	}
	return FormatYAML
}

// detectVersion reads the version marker. YAML is a superset of JSON, so one
// decoder covers both encodings.
func detectVersion(data []byte) (SpecVersion, error) {
	var versionCheck struct {
		Swagger string `yaml:"swagger"`
		OpenAPI string `yaml:"openapi"`
	}
	if err := yaml.Unmarshal(data, &versionCheck); err != nil {
		return "", errors.Wrap(err, "decode document")
	}

	switch {
	case versionCheck.Swagger != "":
		if strings.HasPrefix(versionCheck.Swagger, "2.") {
			return SpecVersionSwagger2, nil
		}
		return "", errors.Newf("unsupported swagger version: %s", versionCheck.Swagger)
	case strings.HasPrefix(versionCheck.OpenAPI, "3.0."):
		return SpecVersionOpenAPI3, nil
	case strings.HasPrefix(versionCheck.OpenAPI, "3.1."):
		return SpecVersionOpenAPI31, nil
	case versionCheck.OpenAPI != "":
		return "", errors.Newf("unsupported openapi version: %s", versionCheck.OpenAPI)
	}
	return "", errors.New("could not determine spec version (missing 'swagger' or 'openapi' field)")
}

func parseSwagger2(data []byte, format Format) (*openapi3.T, error) {
	if format == FormatYAML {
		// openapi2.T only decodes JSON.
		var doc map[string]any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(err, "decode Swagger 2.0")
		}
		converted, err := json.Marshal(doc)
		if err != nil {
			return nil, errors.Wrap(err, "decode Swagger 2.0")
		}
		data = converted
	}

	var spec2 openapi2.T
	if err := json.Unmarshal(data, &spec2); err != nil {
		return nil, errors.Wrap(err, "decode Swagger 2.0")
	}
	spec3, err := openapi2conv.ToV3(&spec2)
	if err != nil {
		return nil, errors.Wrap(err, "convert Swagger 2.0 to OpenAPI 3.0")
	}
	return spec3, nil
}

func parseOpenAPI3(ctx context.Context, data []byte) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, errors.Wrap(err, "load OpenAPI 3.x")
	}
	return spec, nil
}
