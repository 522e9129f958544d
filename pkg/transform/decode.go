package transform

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/techie2000/axiom/pathfinder/pkg/pact"
)

// envelope is the list response shape of the exchange API.
type envelope struct {
	Data []RawProductFootprint `json:"data" yaml:"data"`
}

// DecodeJSON reads a single footprint object, an array of footprints or a
// {"data": [...]} envelope.
func DecodeJSON(r io.Reader) ([]RawProductFootprint, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON: %w", err)
	}
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, errors.New("empty JSON document")
	}

	switch b[0] {
	case '[':
		var out []RawProductFootprint
		if err := json.Unmarshal(b, &out); err != nil {
			return nil, decodeErr(err)
		}
		return out, nil
	case '{':
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(b, &probe); err != nil {
			return nil, decodeErr(err)
		}
		if _, ok := probe["data"]; ok {
			if _, isFootprint := probe["pcf"]; !isFootprint {
				var env envelope
				if err := json.Unmarshal(b, &env); err != nil {
					return nil, decodeErr(err)
				}
				return env.Data, nil
			}
		}
		var one RawProductFootprint
		if err := json.Unmarshal(b, &one); err != nil {
			return nil, decodeErr(err)
		}
		return []RawProductFootprint{one}, nil
	}
	return nil, &pact.ValidationError{Kind: pact.ErrTypeMismatch, Message: "expected a JSON object or array"}
}

// DecodeYAML reads every document of a YAML stream. Each document may hold
// the same shapes DecodeJSON accepts.
func DecodeYAML(r io.Reader) ([]RawProductFootprint, error) {
	dec := yaml.NewDecoder(r)
	var out []RawProductFootprint
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, decodeErr(err)
		}
		if len(doc.Content) == 0 {
			continue
		}
		node := doc.Content[0]

		switch node.Kind {
		case yaml.SequenceNode:
			var list []RawProductFootprint
			if err := node.Decode(&list); err != nil {
				return nil, decodeErr(err)
			}
			out = append(out, list...)
		case yaml.MappingNode:
			if hasKey(node, "data") && !hasKey(node, "pcf") {
				var env envelope
				if err := node.Decode(&env); err != nil {
					return nil, decodeErr(err)
				}
				out = append(out, env.Data...)
				continue
			}
			var one RawProductFootprint
			if err := node.Decode(&one); err != nil {
				return nil, decodeErr(err)
			}
			out = append(out, one)
		default:
			return nil, &pact.ValidationError{Kind: pact.ErrTypeMismatch, Value: node.Value, Message: "expected a YAML mapping or sequence"}
		}
	}
	if out == nil {
		return nil, errors.New("empty YAML document")
	}
	return out, nil
}

// EncodeYAML renders v through its JSON form, so key order matches the JSON
// output.
func EncodeYAML(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("failed to convert JSON to YAML: %w", err)
	}
	blockStyle(&doc)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// blockStyle switches collections from the flow style of the JSON input to
// block style and drops quotes from strings. The encoder re-quotes any
// string that would otherwise read back as another type.
func blockStyle(n *yaml.Node) {
	switch {
	case n.Kind == yaml.MappingNode || n.Kind == yaml.SequenceNode:
		n.Style &^= yaml.FlowStyle
	case n.Kind == yaml.ScalarNode && n.ShortTag() == "!!str" && !strings.Contains(n.Value, "\n"):
		n.Style &^= yaml.DoubleQuotedStyle | yaml.SingleQuotedStyle
	}
	for _, c := range n.Content {
		blockStyle(c)
	}
}

func hasKey(mapping *yaml.Node, key string) bool {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return true
		}
	}
	return false
}

// decodeErr maps decoder type errors onto pact.ErrTypeMismatch so callers
// can classify them like validation failures.
func decodeErr(err error) error {
	var ve *pact.ValidationError
	if errors.As(err, &ve) {
		return err
	}
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) {
		return &pact.ValidationError{
			Kind:    pact.ErrTypeMismatch,
			Field:   ute.Field,
			Value:   ute.Value,
			Message: fmt.Sprintf("expected %s, got %s", ute.Type, ute.Value),
		}
	}
	var yte *yaml.TypeError
	if errors.As(err, &yte) {
		return &pact.ValidationError{Kind: pact.ErrTypeMismatch, Message: strings.Join(yte.Errors, "; ")}
	}
	var se *json.SyntaxError
	if errors.As(err, &se) {
		return fmt.Errorf("malformed JSON at offset %d: %w", se.Offset, err)
	}
	return fmt.Errorf("failed to decode document: %w", err)
}
