package dto

// Response is the envelope shared by every endpoint
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Code    string      `json:"code,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// OK wraps data in a successful envelope
func OK(data interface{}) Response {
	return Response{Success: true, Data: data}
}

// List wraps a slice with its length
func List(data interface{}, count int) Response {
	return Response{Success: true, Data: data, Count: &count}
}

// Message builds a successful envelope carrying only a message
func Message(msg string) Response {
	return Response{Success: true, Message: msg}
}

// Fail builds an error envelope
func Fail(msg string) Response {
	return Response{Success: false, Message: msg}
}
