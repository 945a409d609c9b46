package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/jonathan/architect-assistant/internal/parsing"
	"github.com/jonathan/architect-assistant/internal/pipeline"
	"github.com/jonathan/architect-assistant/internal/schemas"
	"github.com/jonathan/architect-assistant/internal/types"
	schemadocs "github.com/jonathan/architect-assistant/schemas"
)

// Request body limits
const (
	maxRequestBytes = 64 << 10
	maxBatchBytes   = 1 << 20
)

// BatchResponse represents the response for /api/generate/batch
type BatchResponse struct {
	Artifacts []*types.GeneratedArtifact `json:"artifacts"`
}

// SchemaListResponse represents the response for /api/schemas
type SchemaListResponse struct {
	Schemas []string `json:"schemas"`
}

// validatable is a request body with struct-tag validation
type validatable interface {
	Validate() error
}

// decodeRequest reads at most limit bytes, checks them against the named embedded
// schema (if any), decodes them into v and runs v's struct validation
func decodeRequest(w http.ResponseWriter, r *http.Request, limit int64, schemaName string, v validatable) error {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return maxBytesErr
		}
		return &ErrValidation{Field: "body", Message: "failed to read request body"}
	}

	if schemaName != "" {
		if err := schemas.ValidateDocument(schemaName, data); err != nil {
			return schemaRequestError(err)
		}
	}

	if err := json.Unmarshal(data, v); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	if err := v.Validate(); err != nil {
		return validatorRequestError(err)
	}
	return nil
}

func schemaRequestError(err error) error {
	var loadErr *schemas.SchemaLoadError
	if errors.As(err, &loadErr) {
		return err
	}
	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) && len(validationErr.Errors) > 0 {
		first := validationErr.Errors[0]
		return &ErrValidation{Field: first.Field, Message: first.Message}
	}
	return &ErrValidation{Field: "body", Message: "invalid JSON"}
}

func validatorRequestError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		message := "failed " + fe.Tag()
		if fe.Param() != "" {
			message += "=" + fe.Param()
		}
		// Namespace is "BatchRequest.Prompts[3]"; drop the struct name
		_, field, _ := strings.Cut(fe.Namespace(), ".")
		return &ErrValidation{Field: strings.ToLower(field), Message: message}
	}
	return &ErrValidation{Field: "body", Message: err.Error()}
}

// handleGenerate turns a prompt into a GeneratedArtifact
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req types.GenerateRequest
	if err := decodeRequest(w, r, maxRequestBytes, schemadocs.GenerateRequest, &req); err != nil {
		s.failure(w, r, err)
		return
	}

	result, err := pipeline.Generate(r.Context(), req.Prompt, pipeline.Options{})
	if err != nil {
		s.failure(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, result.Artifact)
}

// handleDownload returns the generated script itself as an attachment
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	var req types.GenerateRequest
	if err := decodeRequest(w, r, maxRequestBytes, schemadocs.GenerateRequest, &req); err != nil {
		s.failure(w, r, err)
		return
	}

	result, err := pipeline.Generate(r.Context(), req.Prompt, pipeline.Options{})
	if err != nil {
		s.failure(w, r, err)
		return
	}

	artifact := result.Artifact
	w.Header().Set("Content-Type", "text/x-python; charset=utf-8")
	// filenames are slugs, so quoting needs no escaping
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, artifact.Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, artifact.Code); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("error writing script")
	}
}

// handleGenerateStream runs a generation and reports each step as a Server-Sent Event
func (s *Server) handleGenerateStream(w http.ResponseWriter, r *http.Request) {
	var req types.GenerateRequest
	if err := decodeRequest(w, r, maxRequestBytes, schemadocs.GenerateRequest, &req); err != nil {
		s.failure(w, r, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	logger := zerolog.Ctx(r.Context())
	opts := pipeline.Options{
		OnProgress: func(event pipeline.ProgressEvent) {
			if err := sse.WriteEvent("progress", event); err != nil {
				logger.Debug().Err(err).Msg("failed to write progress event")
			}
		},
	}

	result, err := pipeline.Generate(r.Context(), req.Prompt, opts)
	if err != nil {
		logger.Error().Err(err).Msg("streamed generation failed")
		sse.WriteError(publicMessage(err))
		return
	}

	if err := sse.WriteEvent("artifact", result.Artifact); err != nil {
		logger.Debug().Err(err).Msg("failed to write artifact event")
		return
	}
	sse.WriteComplete(result.Artifact.Filename)
}

// handleBatch generates one artifact per prompt, in request order
func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req types.BatchRequest
	if err := decodeRequest(w, r, maxBatchBytes, "", &req); err != nil {
		s.failure(w, r, err)
		return
	}

	results, err := pipeline.GenerateBatch(r.Context(), req.Prompts, pipeline.Options{BatchLimit: s.cfg.BatchLimit})
	if err != nil {
		s.failure(w, r, err)
		return
	}

	resp := BatchResponse{Artifacts: make([]*types.GeneratedArtifact, len(results))}
	for i, result := range results {
		resp.Artifacts[i] = result.Artifact
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleExtract returns the specification a prompt resolves to
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req types.GenerateRequest
	if err := decodeRequest(w, r, maxRequestBytes, schemadocs.GenerateRequest, &req); err != nil {
		s.failure(w, r, err)
		return
	}

	result := parsing.ExtractDetailed(req.Prompt)
	zerolog.Ctx(r.Context()).Debug().
		Str("summary", result.Spec.Summary()).
		Strs("defaulted", result.Defaulted()).
		Msg("specification extracted")

	s.jsonResponse(w, http.StatusOK, result.Spec)
}

// handleVocabulary returns the recognized vocabulary and defaults
func (s *Server) handleVocabulary(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, parsing.Vocabulary())
}

// handleListSchemas lists the published JSON Schema documents
func (s *Server) handleListSchemas(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, SchemaListResponse{Schemas: schemadocs.Names()})
}

// handleGetSchema serves one JSON Schema document
func (s *Server) handleGetSchema(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if !strings.HasSuffix(name, ".schema.json") {
		name += ".schema.json"
	}

	content, err := schemadocs.Read(name)
	if err != nil {
		s.failure(w, r, &ErrNotFound{Resource: "schema", Name: r.PathValue("name")})
		return
	}

	w.Header().Set("Content-Type", "application/schema+json")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, content); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("error writing schema")
	}
}

// publicMessage is the client-facing text of err
func publicMessage(err error) string {
	if HTTPStatus(err) >= http.StatusInternalServerError {
		return "internal error"
	}
	return err.Error()
}
