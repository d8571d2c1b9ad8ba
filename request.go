package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"
)

// Params holds the parameters of an API command.
type Params map[string]any

// Command is a single server API command as it is encoded into the data
// field of a signed request.
type Command struct {
	Method string `json:"method"`
	Params Params `json:"params"`
}

// NewCommand returns a Command for method with the given params. A nil
// params map is replaced by an empty one so the command encodes
// "params":{} rather than null.
func NewCommand(method string, params Params) Command {
	if params == nil {
		params = Params{}
	}
	return Command{Method: method, Params: params}
}

// Encode returns the JSON encoding of the command as sent in the data field.
func (cmd Command) Encode() ([]byte, error) {
	if cmd.Params == nil {
		cmd.Params = Params{}
	}
	data, err := json.Marshal(cmd)
	if err != nil {
		return nil, fmt.Errorf("cent: encoding %s command: %w", cmd.Method, err)
	}
	return data, nil
}

// Execute encodes and signs cmd, posts it to the API endpoint and returns
// the first element of the response array.
//
// The returned element is passed through verbatim; the server's own result
// and error fields inside it are left to the caller. Transport failures are
// returned unchanged. A body that is not a JSON array with a non-null first
// element fails with ErrInvalidResponseFormat.
func (c *Client) Execute(ctx context.Context, cmd Command) (json.RawMessage, error) {
	cfg := c.snapshot()

	data, err := cmd.Encode()
	if err != nil {
		return nil, err
	}

	sign, err := c.sign(cfg.hashAlgorithm, cfg.secret, string(data))
	if err != nil {
		return nil, err
	}

	form := url.Values{
		FieldSign: {sign},
		FieldData: {string(data)},
	}

	start := time.Now()
	body, err := cfg.transport.PostForm(ctx, cfg.apiURL, form)
	if err != nil {
		c.logger.DebugContext(ctx, "api request failed",
			"method", cmd.Method,
			"url", cfg.apiURL,
			"duration", time.Since(start),
			"error", err,
		)
		return nil, err
	}
	c.logger.DebugContext(ctx, "api request",
		"method", cmd.Method,
		"url", cfg.apiURL,
		"duration", time.Since(start),
		"bytes", len(body),
	)

	return firstResult(body)
}

// firstResult extracts element 0 of a JSON array body.
func firstResult(body []byte) (json.RawMessage, error) {
	var envelope []json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponseFormat, err)
	}
	if len(envelope) == 0 {
		return nil, fmt.Errorf("%w: empty response array", ErrInvalidResponseFormat)
	}
	first := bytes.TrimSpace(envelope[0])
	if bytes.Equal(first, []byte("null")) {
		return nil, fmt.Errorf("%w: null first element", ErrInvalidResponseFormat)
	}
	return json.RawMessage(first), nil
}

// DecodeResult unmarshals a result returned by Execute or one of the command
// methods into a value of type T.
func DecodeResult[T any](raw json.RawMessage) (T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("cent: decoding result: %w", err)
	}
	return v, nil
}
