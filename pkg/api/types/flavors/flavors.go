package flavors

import "reflect"

// Response describes one registered plugin flavor for API consumers.
//
// Body is always present. Metadata carries the heavier detail (config
// schema) and is attached only when the response is hydrated.
type Response struct {
	Body     ResponseBody      `json:"body"`
	Metadata *ResponseMetadata `json:"metadata,omitempty"`
}

type ResponseBody struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	SubType string `json:"subtype"`
}

type ResponseMetadata struct {
	Description  string         `json:"description,omitempty"`
	ConfigSchema map[string]any `json:"config_schema,omitempty"`
}

func (r Response) Equal(o Response) bool {
	if r.Body != o.Body {
		return false
	}
	if (r.Metadata == nil) || (o.Metadata == nil) {
		return (r.Metadata == nil) && (o.Metadata == nil)
	}
	return r.Metadata.Equal(*o.Metadata)
}

func (m ResponseMetadata) Equal(o ResponseMetadata) bool {
	return m.Description == o.Description &&
		reflect.DeepEqual(m.ConfigSchema, o.ConfigSchema)
}
