// Package proto implements the line codec for the query protocol: one JSON
// object per newline-terminated line, a single supported method, and a
// strict schema on the way in. The codec does no I/O and holds no state.
package proto

import (
	"encoding/json"
	"errors"
	"fmt"

	"primetime/internal/model"
	"primetime/internal/prime"
)

// ErrMalformed classifies a line that fails schema validation: bad syntax,
// a missing required field, a wrong field type, or an unknown method.
// Matching it with errors.Is is the only supported way to detect the case.
var ErrMalformed = errors.New("malformed request")

// malformedReply is the best-effort indicator written before a faulted
// connection is closed. Clients must not parse it as a conforming response.
var malformedReply = []byte(`{"error":"malformed"}` + "\n")

// DecodeRequest validates one line (terminator already stripped) against
// the request schema. Unrecognized extra fields are ignored; everything
// else about the shape is checked before a Request value exists.
func DecodeRequest(line []byte) (*model.Request, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(line, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	rawMethod, ok := fields["method"]
	if !ok {
		return nil, fmt.Errorf("%w: missing field %q", ErrMalformed, "method")
	}
	var method string
	if err := json.Unmarshal(rawMethod, &method); err != nil {
		return nil, fmt.Errorf("%w: field %q is not a string", ErrMalformed, "method")
	}
	if method != model.MethodIsPrime {
		return nil, fmt.Errorf("%w: unknown method %q", ErrMalformed, method)
	}

	rawNumber, ok := fields["number"]
	if !ok {
		return nil, fmt.Errorf("%w: missing field %q", ErrMalformed, "number")
	}
	// encoding/json accepts a quoted number literal into json.Number, but
	// the schema requires a numeric token: "5" is text, not a number.
	if len(rawNumber) == 0 || rawNumber[0] == '"' {
		return nil, fmt.Errorf("%w: field %q is not a number", ErrMalformed, "number")
	}
	var lit json.Number
	if err := json.Unmarshal(rawNumber, &lit); err != nil {
		return nil, fmt.Errorf("%w: field %q is not a number", ErrMalformed, "number")
	}
	num, err := prime.Parse(lit.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	return &model.Request{Method: method, Number: num}, nil
}

// EncodeResponse renders a response as one newline-terminated line. The
// field order is fixed by the Response struct, so output is deterministic.
func EncodeResponse(resp model.Response) []byte {
	out, err := json.Marshal(resp)
	if err != nil {
		// Response has only a string and a bool; Marshal cannot fail.
		panic(err)
	}
	return append(out, '\n')
}

// MalformedReply returns the indicator line sent before disconnecting a
// client that broke the protocol. The write is best-effort.
func MalformedReply() []byte {
	return malformedReply
}
