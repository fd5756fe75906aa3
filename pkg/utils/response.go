package utils

import (
	"encoding/json"
	"net/http"

	"github.com/mamosanhaeiyuudesu-sketch/mybot/pkg/log"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// RespondJSON 发送JSON响应
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error("failed to encode response", err)
	}
}

// RespondError writes err as an ErrorBody. Errors that are not *HTTPError become 500s.
func RespondError(w http.ResponseWriter, err error, fallback string) {
	httpErr := Classify(err, fallback)
	RespondJSON(w, httpErr.Status, ErrorBody{StatusCode: httpErr.Status, Message: httpErr.Message})
}
