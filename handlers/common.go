package handlers

// Error categories returned in the "error" field of every failure
// response, alongside a human-readable message.
const (
	CategoryAuth       = "auth"
	CategoryValidation = "validation"
	CategoryNotFound   = "not_found"
	CategoryTransfer   = "transfer"
	CategoryFormat     = "format"
	CategoryStorage    = "storage"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

var (
	BadCredentialsResponse = ErrorResponse{CategoryAuth, "invalid credentials"}
	DBErrorResponse        = ErrorResponse{CategoryStorage, "database error"}
)

func ValidationError(message string) ErrorResponse {
	return ErrorResponse{CategoryValidation, message}
}

func NotFoundError(message string) ErrorResponse {
	return ErrorResponse{CategoryNotFound, message}
}
