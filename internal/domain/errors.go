package domain

import (
	"errors"
	"fmt"
)

// Error kinds reported to callers and surfaced in API responses.
const (
	KindValidation = "validation"
	KindNetwork    = "network"
	KindService    = "service"
	KindDecode     = "decode"
	KindDegraded   = "degraded"
	KindUnknown    = "unknown"
)

// ValidationError reports bad or missing user input. It is raised before any
// network call is made.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return "validation: " + e.Code
	}
	return fmt.Sprintf("validation: %s: %s", e.Code, e.Message)
}

// NetworkError is a transport-level failure (dial, reset, client timeout).
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServiceError is a non-2xx response from a remote service.
type ServiceError struct {
	Op      string
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("service: %s: status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("service: %s: status %d: %s", e.Op, e.Status, e.Message)
}

// DecodeError means a response body could not be parsed into the expected shape.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode: %s: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// DegradedFeature wraps a failure of a secondary enhancement. The primary flow
// continues with a fallback or an "unavailable" placeholder.
type DegradedFeature struct {
	Feature string
	Err     error
}

func (e *DegradedFeature) Error() string {
	return fmt.Sprintf("degraded %s: %v", e.Feature, e.Err)
}

func (e *DegradedFeature) Unwrap() error { return e.Err }

// Degrade downgrades err to a DegradedFeature for the named feature.
func Degrade(feature string, err error) *DegradedFeature {
	return &DegradedFeature{Feature: feature, Err: err}
}

// Kind classifies err into one of the taxonomy kinds.
// DegradedFeature is checked first since it wraps the other kinds.
func Kind(err error) string {
	if err == nil {
		return ""
	}

	var degraded *DegradedFeature
	if errors.As(err, &degraded) {
		return KindDegraded
	}
	var validation *ValidationError
	if errors.As(err, &validation) {
		return KindValidation
	}
	var network *NetworkError
	if errors.As(err, &network) {
		return KindNetwork
	}
	var service *ServiceError
	if errors.As(err, &service) {
		return KindService
	}
	var decode *DecodeError
	if errors.As(err, &decode) {
		return KindDecode
	}

	return KindUnknown
}

// Retriable reports whether the user may resubmit after err.
func Retriable(err error) bool {
	switch Kind(err) {
	case KindNetwork, KindService, KindDecode:
		return true
	}
	return false
}
