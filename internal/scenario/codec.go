package scenario

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/gowebpki/jcs"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidDocument wraps every structural or syntactic import failure.
	ErrInvalidDocument = errors.New("invalid scenario document")
	// ErrUnsupportedVersion is returned for documents written by an incompatible major version.
	ErrUnsupportedVersion = errors.New("unsupported scenario version")
)

// supportedVersions is the range of document versions this package reads.
const supportedVersions = ">= 1.0.0-0, < 2.0.0-0"

const schemaURL = "https://slideplay.local/schema/scenario.schema.json"

//go:embed schema.json
var schemaSource string

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func documentSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource(schemaURL, strings.NewReader(schemaSource)); err != nil {
			schemaErr = fmt.Errorf("scenario schema load failed: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// Marshal encodes the document as canonical JSON (RFC 8785). The output is stable:
// Marshal(Unmarshal(Marshal(s))) is byte-identical to Marshal(s).
func Marshal(s *Scenario) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil document", ErrInvalidDocument)
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal scenario: %w", err)
	}
	out, err := jcs.Transform(raw)
	if err != nil {
		return nil, fmt.Errorf("canonicalize scenario: %w", err)
	}
	return out, nil
}

// MarshalIndent is Marshal followed by indentation, for files meant to be read by people.
func MarshalIndent(s *Scenario) ([]byte, error) {
	raw, err := Marshal(s)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Unmarshal parses and validates a JSON document. Nothing is returned unless the whole
// document is valid.
func Unmarshal(data []byte) (*Scenario, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after document", ErrInvalidDocument)
	}

	schema, err := documentSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(tree); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := checkVersion(s.Version); err != nil {
		return nil, err
	}
	if err := checkSlides(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

func checkVersion(v string) error {
	version, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("%w: version %q: %v", ErrInvalidDocument, v, err)
	}
	constraint, err := semver.NewConstraint(supportedVersions)
	if err != nil {
		return err
	}
	if !constraint.Check(version) {
		return fmt.Errorf("%w: %s", ErrUnsupportedVersion, v)
	}
	return nil
}

func checkSlides(s *Scenario) error {
	if len(s.Slides) == 0 {
		return fmt.Errorf("%w: no slides", ErrInvalidDocument)
	}
	seen := make(map[string]struct{}, len(s.Slides))
	for _, sl := range s.Slides {
		if _, dup := seen[sl.ID]; dup {
			return fmt.Errorf("%w: duplicate slide id %q", ErrInvalidDocument, sl.ID)
		}
		seen[sl.ID] = struct{}{}
	}
	return nil
}

// MarshalYAML encodes the document as YAML with the same field names as the JSON form.
func MarshalYAML(s *Scenario) ([]byte, error) {
	raw, err := Marshal(s)
	if err != nil {
		return nil, err
	}
	var tree any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, err
	}
	return yaml.Marshal(tree)
}

// UnmarshalYAML parses a YAML document through the JSON validation path.
func UnmarshalYAML(data []byte) (*Scenario, error) {
	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	raw, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return Unmarshal(raw)
}

// Decode sniffs the format: a leading '{' is JSON, anything else YAML.
func Decode(data []byte) (*Scenario, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidDocument)
	}
	if trimmed[0] == '{' {
		return Unmarshal(trimmed)
	}
	return UnmarshalYAML(trimmed)
}
