package apikit

import "encoding/json"

// Response is the envelope every operation in apikit resolves to, on both
// sides of the wire: validation outcomes, mock results, and real backend
// replies all share this shape.
type Response struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

// SuccessResponse creates a successful envelope. A nil data map is replaced
// with an empty one so Data is always safe to index.
func SuccessResponse(message string, data map[string]any) Response {
	if data == nil {
		data = map[string]any{}
	}
	return Response{Success: true, Message: message, Data: data}
}

// ErrorResponse creates a failed envelope with an empty data map.
func ErrorResponse(message string) Response {
	return Response{Success: false, Message: message, Data: map[string]any{}}
}

// ResponseFromJSON is the boundary adapter from raw transport payloads.
// Any of the three keys may be absent or of the wrong type; missing or
// malformed fields fall back to false/""/{} rather than failing, so this
// function cannot error on valid JSON objects.
func ResponseFromJSON(raw []byte) (Response, error) {
	var partial map[string]json.RawMessage
	if err := json.Unmarshal(raw, &partial); err != nil {
		return Response{}, err
	}

	resp := Response{Data: map[string]any{}}
	if v, ok := partial["success"]; ok {
		_ = json.Unmarshal(v, &resp.Success)
	}
	if v, ok := partial["message"]; ok {
		_ = json.Unmarshal(v, &resp.Message)
	}
	if v, ok := partial["data"]; ok {
		var data map[string]any
		if err := json.Unmarshal(v, &data); err == nil && data != nil {
			resp.Data = data
		}
	}
	return resp, nil
}
