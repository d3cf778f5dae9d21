package session

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formflow/pkg/model"
)

//go:embed contract.yaml
var contractDocument []byte

var (
	contractOnce sync.Once
	contractDoc  *openapi3.T
	contractErr  error
)

// Contract returns the OpenAPI description of the form service. The document
// is parsed and validated once.
func Contract() (*openapi3.T, error) {
	contractOnce.Do(func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(contractDocument)
		if err != nil {
			contractErr = fmt.Errorf("session: load contract: %w", err)
			return
		}
		if err := doc.Validate(context.Background()); err != nil {
			contractErr = fmt.Errorf("session: invalid contract: %w", err)
			return
		}
		contractDoc = doc
	})
	return contractDoc, contractErr
}

func contractSchema(name string) (*openapi3.Schema, error) {
	doc, err := Contract()
	if err != nil {
		return nil, err
	}
	ref := doc.Components.Schemas[name]
	if ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("session: contract schema %q not found", name)
	}
	return ref.Value, nil
}

// DecodeFormResponse checks a fetch-form body against the contract, normalizes
// the form with model.Normalize and checks its structural rules.
func DecodeFormResponse(body []byte) (model.FormResponse, error) {
	if err := checkContract("FormResponse", body); err != nil {
		return model.FormResponse{}, err
	}
	var resp model.FormResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return model.FormResponse{}, fmt.Errorf("%w: %w", ErrContract, err)
	}
	if err := model.Decorate(&resp.Form, model.Normalize); err != nil {
		return model.FormResponse{}, fmt.Errorf("%w: %w", ErrContract, err)
	}
	if err := resp.Form.Validate(); err != nil {
		return model.FormResponse{}, fmt.Errorf("%w: %w", ErrContract, err)
	}
	return resp, nil
}

// DecodeFormStructure does the same for a bare form document, the shape
// stored in local form files.
func DecodeFormStructure(body []byte) (model.FormStructure, error) {
	if err := checkContract("FormStructure", body); err != nil {
		return model.FormStructure{}, err
	}
	var form model.FormStructure
	if err := json.Unmarshal(body, &form); err != nil {
		return model.FormStructure{}, fmt.Errorf("%w: %w", ErrContract, err)
	}
	if err := model.Decorate(&form, model.Normalize); err != nil {
		return model.FormStructure{}, fmt.Errorf("%w: %w", ErrContract, err)
	}
	if err := form.Validate(); err != nil {
		return model.FormStructure{}, fmt.Errorf("%w: %w", ErrContract, err)
	}
	return form, nil
}

func checkContract(schemaName string, body []byte) error {
	schema, err := contractSchema(schemaName)
	if err != nil {
		return err
	}
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("%w: %w", ErrContract, err)
	}
	if err := schema.VisitJSON(payload, openapi3.MultiErrors()); err != nil {
		return fmt.Errorf("%w: %w", ErrContract, err)
	}
	return nil
}
