// Пакет errors — конструкторы стандартных ошибок в формате Craftstore.
// Единый формат: {"error": {"code": "...", "message": "..."}}.
// Все HTTP-ответы с ошибками должны использовать WriteError.
package errors //nolint:revive // конфликт имени со stdlib осознанный, пакет используется с алиасом

import (
	"encoding/json"
	"net/http"
)

// Машиночитаемые коды ошибок API.
// Коды различимы для вызывающей стороны: отсутствие записи (NOT_FOUND)
// отличается от некорректного ввода (VALIDATION_ERROR), а превышение
// размера изображения (IMAGE_TOO_LARGE) — от обоих.
const (
	CodeValidationError = "VALIDATION_ERROR"
	CodeImageTooLarge   = "IMAGE_TOO_LARGE"
	CodeNotFound        = "NOT_FOUND"
	CodeInternalError   = "INTERNAL_ERROR"
)

// errorBody — структура тела ответа ошибки.
type errorBody struct {
	Error errorDetail `json:"error"`
}

// errorDetail — детали ошибки.
type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteError записывает ответ ошибки в стандартном формате Craftstore.
// statusCode — HTTP статус-код, code — машиночитаемый код, message — описание.
func WriteError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorBody{
		Error: errorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// --- Конструкторы для типичных ошибок ---

// ValidationError — 400 некорректные входные данные.
func ValidationError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, CodeValidationError, message)
}

// ImageTooLarge — 400 изображение превышает лимит.
func ImageTooLarge(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, CodeImageTooLarge, message)
}

// NotFound — 404 запись не найдена.
func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, CodeNotFound, message)
}

// InternalError — 500 внутренняя ошибка (хранилище недоступно и т.п.).
func InternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, CodeInternalError, message)
}
