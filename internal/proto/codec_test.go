package proto

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"primetime/internal/model"
)

func TestDecodeRequestValid(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"plain integer", `{"method":"isPrime","number":7}`},
		{"inverted field order", `{"number":7,"method":"isPrime"}`},
		{"negative", `{"method":"isPrime","number":-3}`},
		{"fractional", `{"method":"isPrime","number":7.5}`},
		{"exponent", `{"method":"isPrime","number":1e3}`},
		{"extra fields ignored", `{"method":"isPrime","number":7,"trace":"abc","depth":3}`},
		{"beyond 64-bit", `{"method":"isPrime","number":162259276829213363391578010288127}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := DecodeRequest([]byte(tt.line))
			require.NoError(t, err)
			assert.Equal(t, model.MethodIsPrime, req.Method)
		})
	}
}

func TestDecodeRequestMalformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"not json", `hello`},
		{"empty line", ``},
		{"json array", `[1,2,3]`},
		{"bare number", `42`},
		{"missing number", `{"method":"isPrime"}`},
		{"missing method", `{"number":5}`},
		{"number as string", `{"method":"isPrime","number":"5"}`},
		{"fractional number as string", `{"method":"isPrime","number":"7.5"}`},
		{"number as non-numeric string", `{"method":"isPrime","number":"five"}`},
		{"number as bool", `{"method":"isPrime","number":true}`},
		{"number null", `{"method":"isPrime","number":null}`},
		{"method null", `{"method":null,"number":5}`},
		{"method not a string", `{"method":5,"number":5}`},
		{"wrong method", `{"method":"notPrime","number":5}`},
		{"case-sensitive method", `{"method":"IsPrime","number":5}`},
		{"truncated object", `{"method":"isPrime","number":5`},
		{"trailing garbage", `{"method":"isPrime","number":5} extra`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := DecodeRequest([]byte(tt.line))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformed), "error should wrap ErrMalformed: %v", err)
			assert.Nil(t, req)
		})
	}
}

func TestEncodeResponse(t *testing.T) {
	out := EncodeResponse(model.Response{Method: model.MethodIsPrime, Prime: true})
	assert.Equal(t, `{"method":"isPrime","prime":true}`+"\n", string(out))

	out = EncodeResponse(model.Response{Method: model.MethodIsPrime, Prime: false})
	assert.Equal(t, `{"method":"isPrime","prime":false}`+"\n", string(out))
}

// Encoding a response and reading the same line back must preserve both
// fields.
func TestResponseRoundTrip(t *testing.T) {
	out := EncodeResponse(model.Response{Method: model.MethodIsPrime, Prime: true})

	var decoded model.Response
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, model.MethodIsPrime, decoded.Method)
	assert.True(t, decoded.Prime)
}

func TestMalformedReplyIsOneLine(t *testing.T) {
	reply := MalformedReply()
	require.NotEmpty(t, reply)
	assert.Equal(t, byte('\n'), reply[len(reply)-1])

	// The indicator must not look like a conforming response.
	var resp struct {
		Method *string `json:"method"`
		Prime  *bool   `json:"prime"`
	}
	require.NoError(t, json.Unmarshal(reply, &resp))
	assert.Nil(t, resp.Method)
	assert.Nil(t, resp.Prime)
}
