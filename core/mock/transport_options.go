package mock

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kndndrj/go-arango/core"
)

type transportConfig struct {
	sideEffects map[string]func(context.Context) error
	routes      map[string][]*scripted
}

type TransportOption func(*transportConfig)

// TransportWithJSON scripts a JSON response. body is marshaled unless it is
// already a []byte or a string.
func TransportWithJSON(method, path string, status int, body any) TransportOption {
	return func(c *transportConfig) {
		c.add(method, path, &scripted{response: JSONResponse(status, mustBytes(body))})
	}
}

// TransportWithResponse scripts a response as is, e.g. one with an unusual
// content type.
func TransportWithResponse(method, path string, resp *core.Response) TransportOption {
	return func(c *transportConfig) {
		c.add(method, path, &scripted{response: resp})
	}
}

// TransportWithError scripts a transport failure.
func TransportWithError(method, path string, err error) TransportOption {
	return func(c *transportConfig) {
		c.add(method, path, &scripted{err: err})
	}
}

func TransportWithSideEffect(method, path string, sideEffect func(context.Context) error) TransportOption {
	return func(c *transportConfig) {
		key := routeKey(method, path)
		_, ok := c.sideEffects[key]
		if ok {
			panic("side effect already registered for route: " + key)
		}

		c.sideEffects[key] = sideEffect
	}
}

func (c *transportConfig) add(method, path string, s *scripted) {
	key := routeKey(method, path)
	c.routes[key] = append(c.routes[key], s)
}

func mustBytes(body any) []byte {
	switch b := body.(type) {
	case nil:
		return nil
	case []byte:
		return b
	case string:
		return []byte(b)
	}

	out, err := json.Marshal(body)
	if err != nil {
		panic(fmt.Sprintf("mock: could not marshal body: %s", err))
	}
	return out
}

// ErrorBody is the server error payload for status.
func ErrorBody(status, num int, message string) map[string]any {
	return map[string]any{
		"error":        true,
		"code":         status,
		"errorNum":     num,
		"errorMessage": message,
	}
}

// CursorBody is a query or continuation response.
func CursorBody(id string, hasMore bool, result []any, count *int) map[string]any {
	body := map[string]any{
		"hasMore": hasMore,
		"result":  result,
		"error":   false,
		"code":    http.StatusCreated,
	}
	if id != "" {
		body["id"] = id
	}
	if count != nil {
		body["count"] = *count
	}
	return body
}
