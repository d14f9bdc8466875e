package http

import "encoding/json"

// Meta carries extra top-level fields merged into the response envelope.
type Meta map[string]interface{}

// APIResponse represents standard API response.
type APIResponse struct {
	Success bool              `json:"success" example:"true"`
	Data    interface{}       `json:"data,omitempty"`
	Message string            `json:"message,omitempty" example:"OK"`
	Errors  []ValidationError `json:"errors,omitempty"`
	Meta    Meta              `json:"-"`
}

// MarshalJSON flattens Meta next to the fixed envelope fields.
func (r APIResponse) MarshalJSON() ([]byte, error) {
	type envelope APIResponse
	base, err := json.Marshal(envelope(r))
	if err != nil || len(r.Meta) == 0 {
		return base, err
	}

	out := make(map[string]json.RawMessage, len(r.Meta)+4)
	if err := json.Unmarshal(base, &out); err != nil {
		return nil, err
	}
	for k, v := range r.Meta {
		if _, reserved := out[k]; reserved {
			continue
		}
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		out[k] = b
	}
	return json.Marshal(out)
}

// ValidationError represents validation error detail.
type ValidationError struct {
	Code    string                 `json:"code,omitempty" example:"ERR_REQUIRED"`
	Field   string                 `json:"field,omitempty" example:"symbols"`
	Message string                 `json:"message,omitempty" example:"symbols is required"`
	Params  map[string]interface{} `json:"params,omitempty"`
}
