package types

// APIResponse is the envelope returned by every endpoint.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// OK builds a success envelope.
func OK(message string, data interface{}) APIResponse {
	return APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// Fail builds a failure envelope.
func Fail(message string) APIResponse {
	return APIResponse{
		Success: false,
		Message: message,
	}
}

// FailWithError builds a failure envelope carrying the underlying
// error text for diagnostics.
func FailWithError(message string, err error) APIResponse {
	resp := Fail(message)
	if err != nil {
		resp.Error = err.Error()
	}
	return resp
}

// PaginationResponse carries paging information for list endpoints.
type PaginationResponse struct {
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// ListResponse is a generic paginated list payload.
type ListResponse[T any] struct {
	Rows       []T                `json:"rows"`
	Pagination PaginationResponse `json:"pagination"`
}
