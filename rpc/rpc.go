// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package rpc encodes and decodes the request and response envelopes
// exchanged with a platform. It carries no transport.
package rpc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"go.lsp.dev/jsonrpc2"

	gerrors "github.com/tochemey/goplatform/errors"
)

// Error is the error member of a failed response
type Error = jsonrpc2.Error

var null = []byte("null")

// ID identifies a request. It is a string, a number or null, and keeps the
// JSON text it was decoded from so that it is written back unchanged.
// The zero ID is absent and encodes as null.
type ID struct {
	raw json.RawMessage
}

// StringID returns a string request id
func StringID(id string) ID {
	raw, _ := json.Marshal(id)
	return ID{raw: raw}
}

// NumberID returns a numeric request id
func NumberID(id int64) ID {
	return ID{raw: json.RawMessage(strconv.FormatInt(id, 10))}
}

// NullID returns the null request id
func NullID() ID {
	return ID{raw: json.RawMessage(null)}
}

// IsNull reports whether the id is null or absent
func (id ID) IsNull() bool {
	return len(id.raw) == 0 || bytes.Equal(id.raw, null)
}

// Number returns the id as an integer when it is one
func (id ID) Number() (int64, bool) {
	if len(id.raw) == 0 || id.raw[0] == '"' {
		return 0, false
	}
	number, err := strconv.ParseInt(string(id.raw), 10, 64)
	return number, err == nil
}

// String returns the text of a string id, the JSON text otherwise
func (id ID) String() string {
	if len(id.raw) == 0 {
		return "null"
	}
	if id.raw[0] == '"' {
		var text string
		if err := json.Unmarshal(id.raw, &text); err == nil {
			return text
		}
	}
	return string(id.raw)
}

// MarshalJSON writes the id back as it was read
func (id ID) MarshalJSON() ([]byte, error) {
	if len(id.raw) == 0 {
		return null, nil
	}
	return id.raw, nil
}

// UnmarshalJSON accepts a string, a number or null
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, null):
	case len(data) > 0 && data[0] == '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
	default:
		var number json.Number
		if err := json.Unmarshal(data, &number); err != nil {
			return fmt.Errorf("%w: id must be a string, a number or null", jsonrpc2.ErrInvalidRequest)
		}
	}
	id.raw = bytes.Clone(data)
	return nil
}

// envelope is the wire form shared by requests and responses
type envelope struct {
	Version string          `json:"jsonrpc"`
	ID      ID              `json:"id"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

func decode(data []byte) (*envelope, error) {
	env := new(envelope)
	if err := json.Unmarshal(data, env); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, fmt.Errorf("%w: %v", jsonrpc2.ErrParse, err)
		}
		return nil, fmt.Errorf("%w: %v", jsonrpc2.ErrInvalidRequest, err)
	}
	if env.Version != jsonrpc2.Version {
		return nil, fmt.Errorf("%w: unsupported version %q", jsonrpc2.ErrInvalidRequest, env.Version)
	}
	return env, nil
}

// Request is a method call
type Request struct {
	ID     ID
	Method string
	// Params holds the encoded parameters, nil when the call has none
	Params json.RawMessage
}

// NewRequest creates a request encoding params
func NewRequest(id ID, method string, params any) (Request, error) {
	request := Request{ID: id, Method: method}
	if params == nil {
		return request, nil
	}
	raw, err := json.Marshal(params)
	if err != nil {
		return Request{}, fmt.Errorf("failed to encode params: %w", err)
	}
	request.Params = raw
	return request, nil
}

// Bind decodes the request params into v
func (r Request) Bind(v any) error {
	if len(r.Params) == 0 {
		return nil
	}
	return json.Unmarshal(r.Params, v)
}

// Response is the reply to a request. Exactly one of Result and Error is set.
type Response struct {
	ID     ID
	Result json.RawMessage
	Error  *Error
}

// NewResponse creates a successful response encoding result
func NewResponse(id ID, result any) (Response, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return Response{}, fmt.Errorf("failed to encode result: %w", err)
	}
	return Response{ID: id, Result: raw}, nil
}

// NewErrorResponse creates a failed response. data is optional.
func NewErrorResponse(id ID, code jsonrpc2.Code, message string, data any) (Response, error) {
	rpcErr := jsonrpc2.NewError(code, message)
	if data != nil {
		encoded, err := json.Marshal(data)
		if err != nil {
			return Response{}, fmt.Errorf("failed to encode error data: %w", err)
		}
		raw := json.RawMessage(encoded)
		rpcErr.Data = &raw
	}
	return Response{ID: id, Error: rpcErr}, nil
}

// Bind decodes the response result into v
func (r Response) Bind(v any) error {
	if r.Error != nil {
		return r.Error
	}
	if len(r.Result) == 0 {
		return nil
	}
	return json.Unmarshal(r.Result, v)
}

// ErrorData returns the encoded data of the response error, if any
func (r Response) ErrorData() json.RawMessage {
	if r.Error == nil || r.Error.Data == nil {
		return nil
	}
	return nonNull(*r.Error.Data)
}

// MakeRequest encodes a request envelope. Params are omitted when empty.
func MakeRequest(request Request) ([]byte, error) {
	if request.Method == "" {
		return nil, fmt.Errorf("%w: method is required", jsonrpc2.ErrInvalidRequest)
	}
	return json.Marshal(envelope{
		Version: jsonrpc2.Version,
		ID:      request.ID,
		Method:  request.Method,
		Params:  nonNull(request.Params),
	})
}

// GetRequest decodes a request envelope.
// A message without an id is a notification and is rejected.
func GetRequest(data []byte) (*Request, error) {
	env, err := decode(data)
	if err != nil {
		return nil, err
	}
	switch {
	case env.Method == "":
		return nil, fmt.Errorf("%w: expected a request, got a response", jsonrpc2.ErrInvalidRequest)
	case len(env.ID.raw) == 0:
		return nil, fmt.Errorf("%w: expected a request, got a notification", jsonrpc2.ErrInvalidRequest)
	}
	return &Request{
		ID:     env.ID,
		Method: env.Method,
		Params: nonNull(env.Params),
	}, nil
}

// MakeResponse encodes a response envelope
func MakeResponse(response Response) ([]byte, error) {
	env := envelope{Version: jsonrpc2.Version, ID: response.ID}
	switch {
	case response.Error != nil:
		env.Error = response.Error
	case len(response.Result) == 0:
		env.Result = json.RawMessage(null)
	default:
		env.Result = response.Result
	}
	return json.Marshal(env)
}

// GetResponse decodes a response envelope.
// Error replies to unparsable requests carry a null id and are accepted.
func GetResponse(data []byte) (*Response, error) {
	env, err := decode(data)
	if err != nil {
		return nil, err
	}
	switch {
	case env.Method != "":
		return nil, fmt.Errorf("%w: expected a response, got a request", jsonrpc2.ErrInvalidRequest)
	case len(env.ID.raw) == 0:
		return nil, fmt.Errorf("%w: response without id", jsonrpc2.ErrInvalidRequest)
	case env.Error != nil && len(env.Result) > 0:
		return nil, fmt.Errorf("%w: response carries both result and error", jsonrpc2.ErrInvalidRequest)
	case env.Error == nil && len(env.Result) == 0:
		return nil, fmt.Errorf("%w: response carries neither result nor error", jsonrpc2.ErrInvalidRequest)
	}

	if env.Error != nil {
		return &Response{ID: env.ID, Error: env.Error}, nil
	}
	return &Response{ID: env.ID, Result: nonNull(env.Result)}, nil
}

// CodeOf maps a platform error to a JSON-RPC error code
func CodeOf(err error) jsonrpc2.Code {
	var rpcErr *jsonrpc2.Error
	switch {
	case err == nil:
		return 0
	case errors.As(err, &rpcErr):
		return rpcErr.Code
	case gerrors.IsConfigurationError(err):
		return jsonrpc2.InternalError
	case errors.Is(err, gerrors.ErrMalformedIdentifier),
		errors.Is(err, gerrors.ErrUnknownInstance),
		errors.Is(err, gerrors.ErrUnknownClass),
		errors.Is(err, gerrors.ErrUnknownAttribute),
		errors.Is(err, gerrors.ErrClassMismatch),
		errors.Is(err, gerrors.ErrCoercion):
		return jsonrpc2.InvalidParams
	default:
		return jsonrpc2.UnknownError
	}
}

// ErrorResponse creates the failed response reporting err
func ErrorResponse(id ID, err error) Response {
	return Response{ID: id, Error: jsonrpc2.NewError(CodeOf(err), err.Error())}
}

func nonNull(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 || bytes.Equal(raw, null) {
		return nil
	}
	return raw
}
