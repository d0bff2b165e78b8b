package dto

// SuccessResponse represents a standard success response for API endpoints
type SuccessResponse struct {
	Message string `json:"message"`
}

// APIResponse wraps a successful payload
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int        `json:"count,omitempty"`
}

// NewListResponse wraps a list together with its length
func NewListResponse(data interface{}, count int) *APIResponse {
	return &APIResponse{Success: true, Data: data, Count: &count}
}
