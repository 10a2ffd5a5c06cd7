package httpError

import "net/http"

// CommonError is embedded by every typed error so handlers can render them uniformly.
type CommonError struct {
	Code    int         `json:"code"`
	Kind    string      `json:"kind"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (e *CommonError) Error() string { return e.Message }

// Status returns the HTTP status attached to the error.
func (e *CommonError) Status() int { return e.Code }

// Common exposes the embedded payload.
func (e *CommonError) Common() *CommonError { return e }

type HTTPError interface {
	error
	Status() int
	Common() *CommonError
}

type BadRequest struct{ CommonError }

func NewBadRequest() *BadRequest {
	return &BadRequest{CommonError{Code: http.StatusBadRequest, Kind: "validation_error", Message: "Bad Request"}}
}

type Unauthorized struct{ CommonError }

func NewUnauthorized() *Unauthorized {
	return &Unauthorized{CommonError{Code: http.StatusUnauthorized, Kind: "unauthorized", Message: "Unauthorized"}}
}

type Forbidden struct{ CommonError }

func NewForbidden() *Forbidden {
	return &Forbidden{CommonError{Code: http.StatusForbidden, Kind: "forbidden", Message: "Forbidden"}}
}

type NotFound struct{ CommonError }

func NewNotFound() *NotFound {
	return &NotFound{CommonError{Code: http.StatusNotFound, Kind: "not_found", Message: "Not Found"}}
}

type Conflict struct{ CommonError }

func NewConflict() *Conflict {
	return &Conflict{CommonError{Code: http.StatusConflict, Kind: "conflict", Message: "Conflict"}}
}

// UnprocessableEntity reports an entity referencing another one it is not consistent with.
type UnprocessableEntity struct{ CommonError }

func NewUnprocessableEntity() *UnprocessableEntity {
	return &UnprocessableEntity{CommonError{Code: http.StatusUnprocessableEntity, Kind: "invalid_reference", Message: "Invalid Reference"}}
}

type InternalServerError struct{ CommonError }

func NewInternalServerError() *InternalServerError {
	return &InternalServerError{CommonError{Code: http.StatusInternalServerError, Kind: "internal", Message: "Internal server error"}}
}
