package handlers

// ErrorResponse is the JSON body returned for any handler error.
type ErrorResponse struct {
	Error string `json:"error"`
}
