package types

import "github.com/go-playground/validator/v10"

// MaxPromptLength bounds the request body accepted by the generation endpoint
const MaxPromptLength = 8000

// GeneratedArtifact is the synthesizer output and the full response contract of the
// generation endpoint.
type GeneratedArtifact struct {
	Code       string                `json:"code"`
	Parameters BuildingSpecification `json:"parameters"`
	Filename   string                `json:"filename"`
}

// GenerateRequest is the request body of the generation endpoint
type GenerateRequest struct {
	Prompt string `json:"prompt" validate:"max=8000"`
}

// Validate validates the GenerateRequest using the validator.
func (r *GenerateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// MaxBatchPrompts bounds the number of prompts accepted by one batch request
const MaxBatchPrompts = 64

// BatchRequest is the request body of the batch generation endpoint
type BatchRequest struct {
	Prompts []string `json:"prompts" validate:"required,min=1,max=64,dive,max=8000"`
}

// Validate validates the BatchRequest using the validator.
func (r *BatchRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
