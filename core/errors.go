package core

import (
	"fmt"
)

// ErrorKind is the class of a classified error.
type ErrorKind int

const (
	ErrorKindUnknown ErrorKind = iota
	ErrorKindBadRequest
	ErrorKindAuthenticationFailed
	ErrorKindNotFound
	ErrorKindClientError
	ErrorKindServerError
	ErrorKindDecoding
	ErrorKindCursorState
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindBadRequest:
		return "bad_request"
	case ErrorKindAuthenticationFailed:
		return "authentication_failed"
	case ErrorKindNotFound:
		return "not_found"
	case ErrorKindClientError:
		return "client_error"
	case ErrorKindServerError:
		return "server_error"
	case ErrorKindDecoding:
		return "decoding"
	case ErrorKindCursorState:
		return "cursor_state"
	default:
		return "unknown"
	}
}

// ResourceKind narrows a not-found error to the resource that was missing.
// ResourceAny is only meaningful as a match target.
type ResourceKind int

const (
	ResourceAny ResourceKind = iota
	ResourceGeneric
	ResourceDocument
	ResourceCollection
	ResourceIndex
)

func (r ResourceKind) String() string {
	switch r {
	case ResourceGeneric:
		return "resource"
	case ResourceDocument:
		return "document"
	case ResourceCollection:
		return "collection"
	case ResourceIndex:
		return "index"
	default:
		return ""
	}
}

// Error is the single error type produced by the response pipeline.
type Error struct {
	Kind     ErrorKind
	Resource ResourceKind
	// StatusCode is 0 for errors that did not come from a response status.
	StatusCode int
	// Num is the server error number, 0 when the server did not send one.
	Num     int
	Message string
	RawBody []byte
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches sentinel errors by kind, and by resource unless the target's
// resource is ResourceAny.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Resource == ResourceAny || t.Resource == e.Resource
}

// sentinels for errors.Is
var (
	ErrBadRequest           = &Error{Kind: ErrorKindBadRequest, Message: defaultBadRequestMessage}
	ErrAuthenticationFailed = &Error{Kind: ErrorKindAuthenticationFailed, Message: authenticationFailedMessage}
	ErrNotFound             = &Error{Kind: ErrorKindNotFound, Resource: ResourceAny, Message: "not found"}
	ErrResourceNotFound     = &Error{Kind: ErrorKindNotFound, Resource: ResourceGeneric, Message: notFoundMessage(ResourceGeneric)}
	ErrDocumentNotFound     = &Error{Kind: ErrorKindNotFound, Resource: ResourceDocument, Message: notFoundMessage(ResourceDocument)}
	ErrCollectionNotFound   = &Error{Kind: ErrorKindNotFound, Resource: ResourceCollection, Message: notFoundMessage(ResourceCollection)}
	ErrIndexNotFound        = &Error{Kind: ErrorKindNotFound, Resource: ResourceIndex, Message: notFoundMessage(ResourceIndex)}
	ErrClientError          = &Error{Kind: ErrorKindClientError, Message: "client error"}
	ErrServerError          = &Error{Kind: ErrorKindServerError, Message: "server error"}
	ErrDecoding             = &Error{Kind: ErrorKindDecoding, Message: decodingMessage}
	ErrCursorState          = &Error{Kind: ErrorKindCursorState, Message: "illegal cursor state"}
)

const (
	defaultBadRequestMessage    = "Status 400: The syntax of the request was bad"
	authenticationFailedMessage = "Status 401: Authentication failed"
	decodingMessage             = "could not parse JSON from the server"
)

func notFoundMessage(r ResourceKind) string {
	switch r {
	case ResourceDocument, ResourceCollection, ResourceIndex:
		return fmt.Sprintf("the requested %s does not exist", r)
	default:
		return "the requested resource was not found"
	}
}

func cursorStateError(msg string, cause error) *Error {
	return &Error{
		Kind:    ErrorKindCursorState,
		Message: msg,
		Err:     cause,
	}
}
