package response

// SuccessResponse is the JSON envelope every 2xx reply uses.
type SuccessResponse struct {
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data"`
}

// ErrorResponse is the JSON envelope every error reply uses.
type ErrorResponse struct {
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Errors     interface{} `json:"errors,omitempty"`
}

func Success(statusCode int, data interface{}) SuccessResponse {
	return SuccessResponse{
		StatusCode: statusCode,
		Message:    "Success",
		Data:       data,
	}
}

func Error(statusCode int, message string, errs interface{}) ErrorResponse {
	return ErrorResponse{
		StatusCode: statusCode,
		Message:    message,
		Errors:     errs,
	}
}
