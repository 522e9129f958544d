package pact

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strings"
)

// DataModelExtension carries additional, schema-described data alongside a
// footprint.
type DataModelExtension struct {
	specVersion   SpecVersion
	dataSchema    string
	documentation string
	data          json.RawMessage
}

// NewDataModelExtension requires an absolute http(s) schema URL and a JSON
// object as data. documentation is optional.
func NewDataModelExtension(specVersion SpecVersion, dataSchema, documentation string, data json.RawMessage) (*DataModelExtension, error) {
	if specVersion.IsZero() {
		return nil, missingErr("specVersion")
	}
	if err := validateURL(dataSchema); err != nil {
		return nil, Prefix("dataSchema", err)
	}
	if documentation != "" {
		if err := validateURL(documentation); err != nil {
			return nil, Prefix("documentation", err)
		}
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, missingErr("data")
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil || obj == nil {
		return nil, &ValidationError{Kind: ErrTypeMismatch, Field: "data", Message: "must be a JSON object"}
	}

	return &DataModelExtension{
		specVersion:   specVersion,
		dataSchema:    strings.TrimSpace(dataSchema),
		documentation: strings.TrimSpace(documentation),
		data:          append(json.RawMessage(nil), trimmed...),
	}, nil
}

func validateURL(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return missingErr("")
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return formatErr("", s, "%q is not an absolute http(s) URL", s)
	}
	return nil
}

func (e *DataModelExtension) SpecVersion() SpecVersion { return e.specVersion }
func (e *DataModelExtension) DataSchema() string       { return e.dataSchema }
func (e *DataModelExtension) Documentation() string    { return e.documentation }

// Data returns a copy of the extension payload.
func (e *DataModelExtension) Data() json.RawMessage {
	return append(json.RawMessage(nil), e.data...)
}

func (e *DataModelExtension) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		SpecVersion   SpecVersion     `json:"specVersion"`
		DataSchema    string          `json:"dataSchema"`
		Documentation string          `json:"documentation,omitempty"`
		Data          json.RawMessage `json:"data"`
	}{e.specVersion, e.dataSchema, e.documentation, e.data})
}
