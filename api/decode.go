package api

import (
	"fmt"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// decoder turns a successful response body into an endpoint's result type
type decoder[T any] func(data []byte) (T, error)

func decodeJSON[T any](data []byte) (T, error) {
	var v T
	if json.Get(data).ValueType() == jsoniter.NilValue {
		return v, fmt.Errorf("failed to parse response: body is null")
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("failed to parse response: %w", err)
	}
	return v, nil
}

func decodeBytes(data []byte) ([]byte, error) {
	return data, nil
}

func decodeText(data []byte) (string, error) {
	return string(data), nil
}

func decodeInt(data []byte) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse integer response: %w", err)
	}
	return n, nil
}

// requireFields fails when data, a JSON object, lacks any of fields or has
// them set to null
func requireFields(data []byte, typ string, fields ...string) error {
	var raw map[string]jsoniter.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, f := range fields {
		switch json.Get(data, f).ValueType() {
		case jsoniter.InvalidValue:
			return fmt.Errorf("%s: missing required field %q", typ, f)
		case jsoniter.NilValue:
			return fmt.Errorf("%s: required field %q is null", typ, f)
		}
	}
	return nil
}
