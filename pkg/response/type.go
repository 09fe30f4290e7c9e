package response

// Resp is the standard JSON response envelope.
// Code is 0 on success, otherwise the HTTP status code.
type Resp struct {
	Code    int    `json:"code"`
	Msg     string `json:"msg"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
	ErrorID string `json:"error_id,omitempty"`
}
