// health.go — HTTP-обработчики health-проверок.
package handlers

import (
	"net/http"
)

// ReadinessChecker — интерфейс проверки готовности зависимостей.
type ReadinessChecker interface {
	// CheckReady возвращает статус готовности и сообщение
	CheckReady() (status string, message string)
}

// HealthHandler — обработчик health-запросов.
type HealthHandler struct {
	checker ReadinessChecker
	version string
}

// NewHealthHandler создаёт обработчик health-запросов.
func NewHealthHandler(checker ReadinessChecker, version string) *HealthHandler {
	return &HealthHandler{
		checker: checker,
		version: version,
	}
}

// healthResponse — структура ответа health-проверки.
type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
	Message string `json:"message,omitempty"`
}

// Live обрабатывает GET /health/live.
// Liveness: процесс запущен и отвечает. Всегда 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Service: "craftstore",
		Version: h.version,
	})
}

// Ready обрабатывает GET /health/ready.
// Readiness: хранилище доступно. При отказе зависимости — 503.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	status, message := h.checker.CheckReady()

	statusCode := http.StatusOK
	if status != "ok" {
		statusCode = http.StatusServiceUnavailable
	}

	writeJSON(w, statusCode, healthResponse{
		Status:  status,
		Service: "craftstore",
		Version: h.version,
		Message: message,
	})
}

// StaticReadinessChecker — проверка готовности без внешних зависимостей
// (память как бэкенд хранилища). Всегда готов.
type StaticReadinessChecker struct{}

// CheckReady всегда возвращает ok.
func (StaticReadinessChecker) CheckReady() (string, string) {
	return "ok", ""
}
