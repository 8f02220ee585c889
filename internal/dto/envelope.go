package dto

// Response is the envelope every endpoint answers with. Error is true only
// when the request failed; Message is human readable; Data carries the payload.
type Response struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// OK builds a successful envelope.
func OK(message string, data any) Response {
	return Response{Message: message, Data: data}
}

// Fail builds an error envelope without payload.
func Fail(message string) Response {
	return Response{Error: true, Message: message}
}
