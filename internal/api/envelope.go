package api

import (
	"github.com/danielgtaylor/huma/v2"
)

// Envelope is the uniform wrapper for every API response body. Clients
// key off "v" and "success" before touching anything else, so those
// two field names are a wire contract.
type Envelope struct {
	V       int    `json:"v" doc:"Envelope version"`
	Success bool   `json:"success" doc:"Whether the request succeeded"`
	Data    any    `json:"data,omitempty" doc:"Response payload on success"`
	Error   string `json:"error,omitempty" doc:"Error summary on failure"`
	Code    string `json:"code,omitempty" doc:"Machine-readable error code"`
	Message string `json:"message,omitempty" doc:"Human-readable error message"`
	Details any    `json:"details,omitempty" doc:"Additional error details"`
}

// envelopeVersion is bumped only on breaking envelope changes.
const envelopeVersion = 1

// EnvelopeTransformer wraps every response body in the standard
// envelope. Registered as a huma transformer at server construction.
//
// The huma.Context is unused, which keeps the transformer callable
// from contract tests without a live request.
func EnvelopeTransformer(_ huma.Context, _ string, v any) (any, error) {
	if apiErr, ok := v.(*APIError); ok {
		env := &Envelope{
			V:       envelopeVersion,
			Success: false,
			Error:   apiErr.Message,
			Details: apiErr.Details,
		}
		// Code and message travel together. A codeless error stays a
		// bare summary.
		if apiErr.Code != "" {
			env.Code = apiErr.Code
			env.Message = apiErr.Message
		}
		return env, nil
	}

	if err, ok := v.(error); ok {
		return &Envelope{
			V:       envelopeVersion,
			Success: false,
			Error:   err.Error(),
		}, nil
	}

	return &Envelope{
		V:       envelopeVersion,
		Success: true,
		Data:    v,
	}, nil
}
