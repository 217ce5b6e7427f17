package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// JSONContentType is the only content type accepted for decoding.
const JSONContentType = "application/json; charset=utf-8"

// DecodeResponse parses the body of an already classified response into out.
func DecodeResponse(resp *Response, out any) error {
	contentType := resp.ContentType()
	if contentType != JSONContentType {
		return &Error{
			Kind:       ErrorKindDecoding,
			StatusCode: resp.StatusCode,
			Message:    decodingMessage,
			RawBody:    resp.Body,
			Err:        fmt.Errorf("unexpected content type %q", contentType),
		}
	}

	if err := unmarshal(resp.Body, out); err != nil {
		return &Error{
			Kind:       ErrorKindDecoding,
			StatusCode: resp.StatusCode,
			Message:    decodingMessage,
			RawBody:    resp.Body,
			Err:        err,
		}
	}

	return nil
}

// unmarshal decodes exactly one JSON value. Numbers in untyped targets are
// kept as json.Number.
func unmarshal(body []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	if err := dec.Decode(out); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after the JSON value")
	}
	return nil
}
