package utils

import (
	"net/http"

	"github.com/goccy/go-json"
)

// jsonIndent keeps API output readable in a browser.
const jsonIndent = "    "

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// ResponseJSON writes data as JSON with the given status code. The returned
// error is the write error, typically a client that went away mid-response.
func ResponseJSON(w http.ResponseWriter, code int, data any) error {
	body, err := json.MarshalIndent(data, "", jsonIndent)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"encode_error","details":"failed to encode response"}`))
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, err = w.Write(append(body, '\n'))
	return err
}

// ------------- Success responses -------------

// returns 200 OK
func ResponseSuccess(w http.ResponseWriter, data any) error {
	return ResponseJSON(w, http.StatusOK, data)
}

// ------------- Error responses -------------

func ResponseError(w http.ResponseWriter, code int, errClass, details string) error {
	return ResponseJSON(w, code, ErrorResponse{Error: errClass, Details: details})
}

// returns 500 Internal Server Error
func ResponseInternalError(w http.ResponseWriter, errClass, details string) error {
	return ResponseError(w, http.StatusInternalServerError, errClass, details)
}

// returns 429 Too Many Requests
func ResponseTooManyRequests(w http.ResponseWriter, details string) error {
	return ResponseError(w, http.StatusTooManyRequests, "rate_limited", details)
}
