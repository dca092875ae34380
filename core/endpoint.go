package core

// Endpoint describes one route independently of the HTTP framework. Adapters
// bind a handler to each endpoint by its OperationID.
type Endpoint struct {
	Path     string
	Method   string
	Metadata EndpointMetadata
}

type EndpointMetadata struct {
	OperationID string
	Description string
	// MinRole is the lowest role allowed to call the endpoint. RoleGuest
	// means no session is needed.
	MinRole Role
}

// ErrorResponse represents an error response structure
type ErrorResponse struct {
	Error   string  `json:"error"`
	Message string  `json:"message,omitempty"`
	Code    int     `json:"code,omitempty"`
	Notice  *Notice `json:"notice,omitempty"`
}
