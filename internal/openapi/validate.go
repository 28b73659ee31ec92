// Package openapi checks that rendered OpenAPI documents still load and
// validate after token substitution.
package openapi

import (
	"context"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/spf13/afero"
)

// ValidationError reports a rendered document that is not valid OpenAPI.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid OpenAPI document %s: %v", e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Summary describes a document that passed validation.
type Summary struct {
	Title   string
	Version string
	Servers []string
	Paths   int
}

// ValidateFile loads the JSON or YAML document at path from fsys and runs
// the OpenAPI 3 validator over it.
func ValidateFile(ctx context.Context, fsys afero.Fs, path string) (Summary, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return Summary{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Validate(ctx, path, data)
}

// Validate parses data as an OpenAPI 3 document. name is used in errors.
func Validate(ctx context.Context, name string, data []byte) (Summary, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(data)
	if err != nil {
		return Summary{}, &ValidationError{Path: name, Err: fmt.Errorf("load: %w", err)}
	}
	if err := doc.Validate(ctx); err != nil {
		return Summary{}, &ValidationError{Path: name, Err: err}
	}

	s := Summary{}
	if doc.Info != nil {
		s.Title = doc.Info.Title
		s.Version = doc.Info.Version
	}
	for _, srv := range doc.Servers {
		if srv != nil {
			s.Servers = append(s.Servers, srv.URL)
		}
	}
	if doc.Paths != nil {
		s.Paths = doc.Paths.Len()
	}
	return s, nil
}
