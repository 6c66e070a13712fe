package labeler

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/itchyny/gojq"
)

// payloadField is a jq path expression that selects a single value from a
// decoded webhook payload.
type payloadField struct {
	path string
	code *gojq.Code
}

func mustCompileField(path string) *payloadField {
	query, err := gojq.Parse(path)
	if err != nil {
		panic(fmt.Sprintf("parsing jq path %q failed: %s", path, err))
	}

	code, err := gojq.Compile(query)
	if err != nil {
		panic(fmt.Sprintf("compiling jq path %q failed: %s", path, err))
	}

	return &payloadField{path: path, code: code}
}

var (
	fieldAction             = mustCompileField(".action")
	fieldRepositoryFullName = mustCompileField(".repository.full_name")
	fieldNumber             = mustCompileField(".number")
	fieldCommentAuthorID    = mustCompileField(".comment.user.id")
)

// lookup returns the value selected by the field.
// Missing values, null values and type mismatches along the path result in
// an ErrMalformedPayload error.
func (f *payloadField) lookup(ctx context.Context, payload map[string]any) (any, error) {
	iter := f.code.RunWithContext(ctx, payload)

	val, ok := iter.Next()
	if !ok {
		return nil, malformedPayloadErr(f.path, "query returned no value")
	}

	if err, isErr := val.(error); isErr {
		return nil, malformedPayloadErr(f.path, err.Error())
	}

	if val == nil {
		return nil, malformedPayloadErr(f.path, "field is missing")
	}

	return val, nil
}

func (f *payloadField) String(ctx context.Context, payload map[string]any) (string, error) {
	val, err := f.lookup(ctx, payload)
	if err != nil {
		return "", err
	}

	str, ok := val.(string)
	if !ok {
		return "", malformedPayloadErr(f.path, fmt.Sprintf("has type %T, expected string", val))
	}

	return str, nil
}

func (f *payloadField) Int(ctx context.Context, payload map[string]any) (int, error) {
	val, err := f.lookup(ctx, payload)
	if err != nil {
		return 0, err
	}

	i, ok := toInt(val)
	if !ok {
		return 0, malformedPayloadErr(f.path, fmt.Sprintf("value %v (%T) is not an integer", val, val))
	}

	return i, nil
}

// toInt converts the number types produced by encoding/json and gojq to int.
// Fractional numbers are rejected.
func toInt(val any) (int, bool) {
	switch v := val.(type) {
	case int:
		return v, true
	case int64:
		if v > math.MaxInt || v < math.MinInt {
			return 0, false
		}
		return int(v), true
	case float64:
		if v != math.Trunc(v) || v > math.MaxInt || v < math.MinInt {
			return 0, false
		}
		return int(v), true
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return toInt(i)
	default:
		return 0, false
	}
}

// DecodePayload decodes a JSON webhook body into the generic structure that
// the Processor methods expect.
func DecodePayload(data []byte) (map[string]any, error) {
	var result map[string]any

	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("%w: decoding json failed: %s", ErrMalformedPayload, err)
	}

	if result == nil {
		return nil, fmt.Errorf("%w: payload is not a json object", ErrMalformedPayload)
	}

	return result, nil
}

// RepositoryFullName returns the value of the repository.full_name field.
func RepositoryFullName(ctx context.Context, payload map[string]any) (string, error) {
	return fieldRepositoryFullName.String(ctx, payload)
}
