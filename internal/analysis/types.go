package analysis

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Request is the body posted to the analyze endpoint
type Request struct {
	Text string `json:"text"`
}

// Result is the object returned by a successful analysis. Only the sentiment
// label is interpreted; the full object is kept verbatim in Raw.
type Result struct {
	Sentiment string
	Raw       json.RawMessage
}

// Field is one top-level member of the result object, in response order
type Field struct {
	Key   string
	Value json.RawMessage
}

// HealthStatus is the body of the health endpoint
type HealthStatus struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

// errorBody is the optional failure payload of the service
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// ParseResult decodes a success body. The body must be a JSON object with a
// string sentiment member.
func ParseResult(body []byte) (*Result, error) {
	var compact bytes.Buffer
	if err := json.Compact(&compact, body); err != nil {
		return nil, NewParsingError("", err)
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(compact.Bytes(), &members); err != nil {
		return nil, NewParsingError("response is not a JSON object", err)
	}

	rawSentiment, ok := members["sentiment"]
	if !ok {
		return nil, NewParsingError("response is missing the sentiment field", nil)
	}

	var sentiment string
	if err := json.Unmarshal(rawSentiment, &sentiment); err != nil {
		return nil, NewParsingError("sentiment field is not a string", err)
	}

	return &Result{
		Sentiment: sentiment,
		Raw:       json.RawMessage(compact.Bytes()),
	}, nil
}

// BadgeText is the label shown on the sentiment badge
func (r *Result) BadgeText() string {
	return r.Sentiment + " Sentiment"
}

// BadgeClass is the style category of the badge
func (r *Result) BadgeClass() string {
	return strings.ToLower(r.Sentiment)
}

// Pretty returns the full result object indented with two spaces
func (r *Result) Pretty() string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, r.Raw, "", "  "); err != nil {
		// Raw was compacted by ParseResult, so this only happens for hand-built results.
		return string(r.Raw)
	}
	return buf.String()
}

// Fields lists the top-level members of the result in response order
func (r *Result) Fields() ([]Field, error) {
	dec := json.NewDecoder(bytes.NewReader(r.Raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("result is not a JSON object")
	}

	var fields []Field
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", keyTok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		fields = append(fields, Field{Key: key, Value: value})
	}

	if _, err := dec.Token(); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	return fields, nil
}

// Scalar renders a field value for display: strings unquoted, everything else as JSON
func (f Field) Scalar() string {
	var s string
	if err := json.Unmarshal(f.Value, &s); err == nil {
		return s
	}
	return string(f.Value)
}

// parseDetail extracts the detail message of a failure body. Only a non-empty
// string detail counts; anything else yields "".
func parseDetail(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || len(eb.Detail) == 0 {
		return ""
	}
	var detail string
	if err := json.Unmarshal(eb.Detail, &detail); err != nil {
		return ""
	}
	return detail
}
