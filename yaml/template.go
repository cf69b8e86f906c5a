// Package yaml reads and writes prompt templates as YAML documents.
package yaml

import (
	"errors"
	"io"
	"os"

	"github.com/fwojciec/insight"
	"gopkg.in/yaml.v3"
)

// LoadTemplate reads the prompt template at path. Keys missing from the
// file keep their default values.
func LoadTemplate(path string) (insight.PromptTemplate, error) {
	f, err := os.Open(path)
	if err != nil {
		return insight.PromptTemplate{}, insight.WrapErrorf(err, insight.ECONFIG, "cannot open prompt template %s", path)
	}
	defer f.Close()

	t, err := DecodeTemplate(f)
	if err != nil {
		return insight.PromptTemplate{}, insight.WrapErrorf(err, insight.ECONFIG, "invalid prompt template %s", path)
	}
	return t, nil
}

// DecodeTemplate decodes a prompt template from r, rejecting unknown keys.
func DecodeTemplate(r io.Reader) (insight.PromptTemplate, error) {
	t := insight.DefaultPromptTemplate()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil && !errors.Is(err, io.EOF) {
		return insight.PromptTemplate{}, err
	}
	if err := t.Validate(); err != nil {
		return insight.PromptTemplate{}, err
	}
	return t, nil
}

// EncodeTemplate writes t to w as YAML.
func EncodeTemplate(w io.Writer, t insight.PromptTemplate) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return err
	}
	return enc.Close()
}
