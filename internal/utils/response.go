package utils

// Response is the envelope every handler returns. Data is always serialized,
// null when there is nothing to return.
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// NewSuccessResponse wraps payload data in a 200 envelope. Handlers that
// return a different success code (e.g. 201) still use the 200 envelope
// status, matching the HTTP status only in the response line.
func NewSuccessResponse(message string, data interface{}) Response {
	return Response{
		Status:  200,
		Message: message,
		Data:    data,
	}
}

// NewErrorResponse builds an error envelope with no data.
func NewErrorResponse(status int, message string) Response {
	return Response{
		Status:  status,
		Message: message,
	}
}
