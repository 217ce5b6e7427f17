package core

import (
	"fmt"
	"net/http"
	"regexp"

	"github.com/tidwall/gjson"
)

// statusRule maps a status code to an error builder. Rules are evaluated in
// order and the first match wins: exact codes overlap the client range.
type statusRule struct {
	match func(status int) bool
	build func(resp *Response) *Error
}

var statusRules = []statusRule{
	{match: exactly(http.StatusBadRequest), build: badRequest},
	{match: exactly(http.StatusUnauthorized), build: authenticationFailed},
	{match: exactly(http.StatusNotFound), build: resourceNotFound},
	{match: between(405, 498), build: withKind(ErrorKindClientError)},
	{match: between(500, 598), build: withKind(ErrorKindServerError)},
}

// notFoundPatterns disambiguates a 404 by the request path.
var notFoundPatterns = []struct {
	pattern  *regexp.Regexp
	resource ResourceKind
}{
	{regexp.MustCompile(`^(/_db/[^/]+)?/_api/document`), ResourceDocument},
	{regexp.MustCompile(`^(/_db/[^/]+)?/_api/collection`), ResourceCollection},
	{regexp.MustCompile(`^(/_db/[^/]+)?/_api/index`), ResourceIndex},
}

// ClassifyResponse maps a completed response to a *Error, or nil when the
// status is not an error. It never fails itself.
func ClassifyResponse(resp *Response) error {
	for _, rule := range statusRules {
		if rule.match(resp.StatusCode) {
			return rule.build(resp)
		}
	}
	return nil
}

// ResourceForPath returns the resource kind a 404 on path refers to.
func ResourceForPath(path string) ResourceKind {
	for _, p := range notFoundPatterns {
		if p.pattern.MatchString(path) {
			return p.resource
		}
	}
	return ResourceGeneric
}

func exactly(code int) func(int) bool {
	return func(status int) bool { return status == code }
}

func between(low, high int) func(int) bool {
	return func(status int) bool { return status >= low && status <= high }
}

func badRequest(resp *Response) *Error {
	e := newResponseError(ErrorKindBadRequest, resp)
	if e.Message == "" {
		e.Message = defaultBadRequestMessage
	}
	return e
}

func authenticationFailed(resp *Response) *Error {
	return &Error{
		Kind:       ErrorKindAuthenticationFailed,
		StatusCode: resp.StatusCode,
		Message:    authenticationFailedMessage,
		RawBody:    resp.Body,
	}
}

func resourceNotFound(resp *Response) *Error {
	e := newResponseError(ErrorKindNotFound, resp)
	e.Resource = ResourceForPath(resp.Path)
	if e.Message == "" {
		e.Message = notFoundMessage(e.Resource)
	}
	return e
}

func withKind(kind ErrorKind) func(*Response) *Error {
	return func(resp *Response) *Error {
		e := newResponseError(kind, resp)
		if e.Message == "" {
			e.Message = fmt.Sprintf("Status %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		}
		return e
	}
}

// newResponseError fills the server supplied error number and message when
// the body carries them. Message stays empty otherwise.
func newResponseError(kind ErrorKind, resp *Response) *Error {
	e := &Error{
		Kind:       kind,
		StatusCode: resp.StatusCode,
		RawBody:    resp.Body,
	}

	if len(resp.Body) == 0 || !gjson.ValidBytes(resp.Body) {
		return e
	}

	num := gjson.GetBytes(resp.Body, "errorNum")
	msg := gjson.GetBytes(resp.Body, "errorMessage")
	if !num.Exists() && !msg.Exists() {
		return e
	}

	e.Num = int(num.Int())
	e.Message = fmt.Sprintf("%d: %s", e.Num, msg.String())
	return e
}
