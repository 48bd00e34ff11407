package validate

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/jskinn96/signup/schemas"
)

// DocumentKind selects the JSON Schema a document is checked against.
type DocumentKind string

const (
	ConfigDocument  DocumentKind = "config"
	AnswersDocument DocumentKind = "answers"
)

type compiled struct {
	once   sync.Once
	schema *gojsonschema.Schema
	err    error
	source []byte
}

var documentSchemas = map[DocumentKind]*compiled{
	ConfigDocument:  {source: schemas.ConfigSchema},
	AnswersDocument: {source: schemas.AnswersSchema},
}

func getSchema(kind DocumentKind) (*gojsonschema.Schema, error) {
	c, ok := documentSchemas[kind]
	if !ok {
		return nil, fmt.Errorf("unknown document kind %q", kind)
	}
	c.once.Do(func() {
		c.schema, c.err = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(c.source))
	})
	return c.schema, c.err
}

// Document validates raw YAML or JSON bytes against the schema for kind. It
// returns the validation error descriptions, and an error if the document
// cannot be parsed or the schema fails to compile.
func Document(kind DocumentKind, data []byte) ([]string, error) {
	s, err := getSchema(kind)
	if err != nil {
		return nil, fmt.Errorf("compiling %s schema: %w", kind, err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s document: %w", kind, err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	jsonData, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("converting %s document to JSON: %w", kind, err)
	}

	result, err := s.Validate(gojsonschema.NewBytesLoader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("validating %s document: %w", kind, err)
	}
	if result.Valid() {
		return nil, nil
	}

	errs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		errs = append(errs, e.String())
	}
	return errs, nil
}
