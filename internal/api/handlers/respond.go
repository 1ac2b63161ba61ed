package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorPayload тело ошибки для единообразного рендеринга на клиенте:
// машинный kind, человекочитаемые title/description и, когда применимо,
// поле запроса, вызвавшее отказ
type ErrorPayload struct {
	Kind        string `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Field       string `json:"field,omitempty"`
}

// ErrorResponse конверт ошибки
type ErrorResponse struct {
	Error ErrorPayload `json:"error"`
}

// Kind ошибки бизнес-правил и инфраструктуры
const (
	KindInvalidInput     = "InvalidInputError"
	KindInvalidSlot      = "InvalidSlotError"
	KindPastDate         = "PastDateError"
	KindPastSlot         = "PastSlotError"
	KindDuplicateBooking = "DuplicateBookingError"
	KindCapacityExceeded = "CapacityExceededError"
	KindClientUpsert     = "ClientUpsertError"
	KindBusy             = "Busy"
	KindInternal         = "InternalError"
)

// DecodeJSON декодирует тело запроса в v
func DecodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("handlers: decode request body: %w", err)
	}
	return nil
}

// RespondJSON пишет JSON ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// RespondError пишет структурированную ошибку бизнес-правила
func RespondError(w http.ResponseWriter, status int, payload ErrorPayload) {
	RespondJSON(w, status, ErrorResponse{Error: payload})
}

// RespondInternalError пишет непрозрачную ошибку без внутренних деталей
// Детали инфраструктурных сбоев остаются в логах
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, ErrorPayload{
		Kind:        KindInternal,
		Title:       "Internal error",
		Description: "something went wrong, please try again later",
	})
}

// Health GET /health
func Health(w http.ResponseWriter, _ *http.Request) {
	RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
