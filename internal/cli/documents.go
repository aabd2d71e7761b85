package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/objbase/objbase/record"
)

// Document is one YAML document naming a record class and the attribute
// values to construct it with.
type Document struct {
	Record string         `yaml:"record"`
	Attrs  map[string]any `yaml:"attrs"`
}

// ReadDocuments parses all YAML documents from a file. A file may hold
// several documents separated by "---".
func ReadDocuments(path string) ([]Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var docs []Document
	dec := yaml.NewDecoder(f)
	for {
		var doc Document
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("document %d: %w", len(docs)+1, err)
		}
		if doc.Record == "" {
			return nil, fmt.Errorf("document %d: missing record class name", len(docs)+1)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// BuildRecord constructs a record from a document against the named
// schema. YAML mappings are unordered, so attributes are applied in sorted
// name order for deterministic output.
func BuildRecord(schemas map[string]*record.Schema, doc Document) (*record.Mutable, error) {
	schema, ok := schemas[doc.Record]
	if !ok {
		return nil, fmt.Errorf("unknown record class %q", doc.Record)
	}

	names := make([]string, 0, len(doc.Attrs))
	for name := range doc.Attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]record.Field, 0, len(names))
	for _, name := range names {
		fields = append(fields, record.F(name, doc.Attrs[name]))
	}
	return record.New(schema, fields...)
}
