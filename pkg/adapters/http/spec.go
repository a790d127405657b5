package http

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var rawSpec []byte

var (
	specOnce sync.Once
	specDoc  *openapi3.T
	specErr  error
)

// RawSpec returns the embedded OpenAPI document.
func RawSpec() []byte {
	return rawSpec
}

// GetSwagger loads and validates the embedded OpenAPI document once.
func GetSwagger() (*openapi3.T, error) {
	specOnce.Do(func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(rawSpec)
		if err != nil {
			specErr = fmt.Errorf("failed to load openapi spec: %w", err)
			return
		}
		if err := doc.Validate(context.Background()); err != nil {
			specErr = fmt.Errorf("invalid openapi spec: %w", err)
			return
		}
		specDoc = doc
	})
	return specDoc, specErr
}

// validateSchema checks a decoded JSON value against a component schema.
func validateSchema(name string, value any) error {
	doc, err := GetSwagger()
	if err != nil {
		return err
	}
	ref, ok := doc.Components.Schemas[name]
	if !ok || ref.Value == nil {
		return fmt.Errorf("schema %s not found", name)
	}
	return ref.Value.VisitJSON(value)
}
