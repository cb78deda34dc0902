package response

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"notehub/internal/contextutils"
	"notehub/internal/services"

	"go.uber.org/zap"
)

// ===============================
// RESPONSE CONFIGURATION
// ===============================

// Config holds configuration for the response system
type Config struct {
	PrettyJSON         bool   `json:"pretty_json"`
	IncludeRequestID   bool   `json:"include_request_id"`
	IncludeTimestamp   bool   `json:"include_timestamp"`
	APIVersion         string `json:"api_version"`
	MaskInternalErrors bool   `json:"mask_internal_errors"`
}

// DefaultConfig returns production-ready response configuration
func DefaultConfig() *Config {
	return &Config{
		PrettyJSON:         false,
		IncludeRequestID:   true,
		IncludeTimestamp:   true,
		APIVersion:         "v1",
		MaskInternalErrors: true,
	}
}

// ===============================
// RESPONSE TYPES
// ===============================

// APIResponse represents a standardized API response
type APIResponse struct {
	Success   bool         `json:"success"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	RequestID string       `json:"request_id,omitempty"`
	Timestamp int64        `json:"timestamp,omitempty"`
	Version   string       `json:"version,omitempty"`
}

// ErrorDetail represents error information in API responses
type ErrorDetail struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ===============================
// RESPONSE BUILDER
// ===============================

// Builder helps construct standardized responses
type Builder struct {
	config *Config
	logger *zap.Logger
}

// NewBuilder creates a new response builder
func NewBuilder(config *Config, logger *zap.Logger) *Builder {
	if config == nil {
		config = DefaultConfig()
	}
	return &Builder{
		config: config,
		logger: logger,
	}
}

// Success creates a successful API response
func (b *Builder) Success(ctx context.Context, data interface{}) *APIResponse {
	return &APIResponse{
		Success:   true,
		Data:      data,
		RequestID: b.getRequestID(ctx),
		Timestamp: b.getTimestamp(),
		Version:   b.config.APIVersion,
	}
}

// Error creates an error response from a service error
func (b *Builder) Error(ctx context.Context, err error) *APIResponse {
	detail := b.convertError(err)
	b.logger.Error("Request failed",
		zap.Error(err),
		zap.String("error_type", detail.Type),
		zap.String("request_id", b.getRequestID(ctx)),
	)
	return &APIResponse{
		Success:   false,
		Error:     detail,
		RequestID: b.getRequestID(ctx),
		Timestamp: b.getTimestamp(),
		Version:   b.config.APIVersion,
	}
}

// ===============================
// HTTP RESPONSE WRITERS
// ===============================

// WriteJSON writes a JSON response with appropriate headers
func (b *Builder) WriteJSON(w http.ResponseWriter, r *http.Request, response *APIResponse, statusCode int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(statusCode)

	encoder := json.NewEncoder(w)
	if b.config.PrettyJSON {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(response); err != nil {
		b.logger.Error("Failed to encode JSON response",
			zap.Error(err),
			zap.String("request_id", b.getRequestID(r.Context())),
		)
	}
}

// WriteSuccess writes a successful JSON response
func (b *Builder) WriteSuccess(w http.ResponseWriter, r *http.Request, data interface{}) {
	b.WriteJSON(w, r, b.Success(r.Context(), data), http.StatusOK)
}

// WriteCreated writes a successful creation response
func (b *Builder) WriteCreated(w http.ResponseWriter, r *http.Request, data interface{}) {
	b.WriteJSON(w, r, b.Success(r.Context(), data), http.StatusCreated)
}

// WriteError writes an error response with appropriate status code
func (b *Builder) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	b.WriteJSON(w, r, b.Error(r.Context(), err), b.statusCodeFor(err))
}

// WriteBadRequest writes a validation error response
func (b *Builder) WriteBadRequest(w http.ResponseWriter, r *http.Request, message string) {
	response := &APIResponse{
		Success: false,
		Error: &ErrorDetail{
			Type:    "VALIDATION_ERROR",
			Message: message,
		},
		RequestID: b.getRequestID(r.Context()),
		Timestamp: b.getTimestamp(),
		Version:   b.config.APIVersion,
	}
	b.WriteJSON(w, r, response, http.StatusBadRequest)
}

// WriteNotFound writes a not-found error response
func (b *Builder) WriteNotFound(w http.ResponseWriter, r *http.Request, message string) {
	response := &APIResponse{
		Success: false,
		Error: &ErrorDetail{
			Type:    "NOT_FOUND_ERROR",
			Message: message,
		},
		RequestID: b.getRequestID(r.Context()),
		Timestamp: b.getTimestamp(),
		Version:   b.config.APIVersion,
	}
	b.WriteJSON(w, r, response, http.StatusNotFound)
}

// ===============================
// HELPERS
// ===============================

func (b *Builder) convertError(err error) *ErrorDetail {
	if serviceErr := services.GetServiceError(err); serviceErr != nil {
		message := serviceErr.Message
		if b.config.MaskInternalErrors && serviceErr.StatusCode >= http.StatusInternalServerError {
			message = "An internal error occurred"
		}
		return &ErrorDetail{
			Type:    serviceErr.Type,
			Message: message,
			Code:    serviceErr.Code,
		}
	}
	message := err.Error()
	if b.config.MaskInternalErrors {
		message = "An internal error occurred"
	}
	return &ErrorDetail{
		Type:    "INTERNAL_ERROR",
		Message: message,
	}
}

func (b *Builder) statusCodeFor(err error) int {
	if serviceErr := services.GetServiceError(err); serviceErr != nil {
		return serviceErr.GetStatusCode()
	}
	return http.StatusInternalServerError
}

func (b *Builder) getRequestID(ctx context.Context) string {
	if !b.config.IncludeRequestID {
		return ""
	}
	return contextutils.GetRequestID(ctx)
}

func (b *Builder) getTimestamp() int64 {
	if !b.config.IncludeTimestamp {
		return 0
	}
	return time.Now().Unix()
}
