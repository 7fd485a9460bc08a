package openapi

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/CliForge/oascaffold/pkg/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		file    string
		format  Format
		version SpecVersion
		title   string
	}{
		{"petstore.json", FormatJSON, SpecVersionOpenAPI3, "Swagger Petstore"},
		{"petstore.yaml", FormatYAML, SpecVersionOpenAPI31, "Swagger Petstore"},
		{"swagger.yaml", FormatYAML, SpecVersionSwagger2, "Legacy Petstore"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join("testdata", tt.file))
			if err != nil {
				t.Fatal(err)
			}

			doc, err := Parse(context.Background(), data)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if doc.Format != tt.format {
				t.Errorf("Format = %q, want %q", doc.Format, tt.format)
			}
			if doc.Version != tt.version {
				t.Errorf("Version = %q, want %q", doc.Version, tt.version)
			}
			if got := doc.Info().Title; got != tt.title {
				t.Errorf("Info().Title = %q, want %q", got, tt.title)
			}
			if doc.FileName() != "spec."+string(tt.format) {
				t.Errorf("FileName() = %q", doc.FileName())
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no version", `{"info": {"title": "x"}}`},
		{"old swagger", `{"swagger": "1.2"}`},
		{"future openapi", `openapi: 4.0.0`},
		{"not a document", "{{{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(context.Background(), []byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.IsParse(err) {
				t.Errorf("expected a parse error, got %v", err)
			}
		})
	}
}

func TestDocumentSave(t *testing.T) {
	doc, err := NewLoader(nil).LoadFromFile(context.Background(), "testdata/petstore.yaml")
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	path, err := doc.Save(dir)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if path != filepath.Join(dir, "spec.yaml") {
		t.Errorf("path = %q", path)
	}

	saved, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(saved) != string(doc.Data) {
		t.Error("saved document differs from the loaded one")
	}
	if doc.Source != "testdata/petstore.yaml" {
		t.Errorf("Source = %q", doc.Source)
	}
}
