package testutil

import (
	"encoding/json"
	"net/http"
)

// TelegramEnvelope is the standard Telegram API response format.
type TelegramEnvelope struct {
	OK          bool   `json:"ok"`
	Result      any    `json:"result,omitempty"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Description string `json:"description,omitempty"`
}

// ReplyOK writes a successful Telegram API response.
func ReplyOK(w http.ResponseWriter, result any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(TelegramEnvelope{
		OK:     true,
		Result: result,
	})
}

// ReplyMessage writes a successful sendMessage response.
func ReplyMessage(w http.ResponseWriter, messageID int) {
	ReplyOK(w, MessageResult(messageID))
}

// ReplyAPIError writes ok=false with HTTP 200, the shape the API uses when a
// proxy or gateway hides the real status.
func ReplyAPIError(w http.ResponseWriter, code int, description string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(TelegramEnvelope{
		OK:          false,
		ErrorCode:   code,
		Description: description,
	})
}

// ReplyStatus writes a Telegram error envelope with the given HTTP status.
func ReplyStatus(w http.ResponseWriter, status int, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(TelegramEnvelope{
		OK:          false,
		ErrorCode:   status,
		Description: description,
	})
}

// ReplyRaw writes body verbatim with HTTP 200.
func ReplyRaw(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}
