package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInsufficientHistory = errors.New("not enough expense history")

	fenceRe  = regexp.MustCompile("(?s)```[a-zA-Z0-9_-]*[ \\t]*\\r?\\n?(.*?)```")
	validate = validator.New(validator.WithRequiredStructEnabled())
)

// UpstreamError means the model call itself failed
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: model request failed: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// DecodeError means the model answered with something that isn't the JSON we asked for
type DecodeError struct {
	Op  string
	Raw string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: model returned an invalid response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// StripFences returns the content of the first markdown code fence in raw,
// or raw itself trimmed when there is none
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)

	if m := fenceRe.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}

	return s
}

// decode strips fences from raw, parses it into v and validates the result
func decode(op, raw string, v any) error {
	body := StripFences(raw)
	if body == "" {
		return &DecodeError{Op: op, Raw: raw, Err: errors.New("empty response")}
	}

	if !strings.HasPrefix(body, "{") {
		return &DecodeError{Op: op, Raw: raw, Err: errors.New("response is not a JSON object")}
	}

	dec := json.NewDecoder(strings.NewReader(body))
	if err := dec.Decode(v); err != nil {
		return &DecodeError{Op: op, Raw: raw, Err: err}
	}

	if dec.More() {
		return &DecodeError{Op: op, Raw: raw, Err: errors.New("trailing data after JSON object")}
	}

	if err := validate.Struct(v); err != nil {
		return &DecodeError{Op: op, Raw: raw, Err: err}
	}

	return nil
}
