package handler

// errorResponse documents the error envelope rendered by the central HTTP
// error handler.
type errorResponse struct {
	Error string `json:"error"`
}

// acceptedResponse acknowledges fire-and-forget submissions.
type acceptedResponse struct {
	Message string `json:"message"`
}
