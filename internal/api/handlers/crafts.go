// Пакет handlers — HTTP-обработчики Craftstore.
// crafts.go — операции каталога: разбор multipart-форм на границе,
// вся дальнейшая логика в сервисном слое.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/bigkaa/craftstore/internal/api/errors"
	"github.com/bigkaa/craftstore/internal/domain/model"
	"github.com/bigkaa/craftstore/internal/imagecodec"
	"github.com/bigkaa/craftstore/internal/service"
)

// maxFormMemory — объём multipart-формы, удерживаемый в памяти.
const maxFormMemory = 32 << 20

// CraftHandler — обработчик запросов каталога изделий.
type CraftHandler struct {
	service *service.CraftService
	logger  *slog.Logger
}

// NewCraftHandler создаёт обработчик каталога.
func NewCraftHandler(svc *service.CraftService, logger *slog.Logger) *CraftHandler {
	return &CraftHandler{
		service: svc,
		logger:  logger.With(slog.String("component", "craft_handler")),
	}
}

// craftResponse — представление записи в ответах API.
// Изображение отдаётся в отображаемой форме (data URI),
// готовой для прямой подстановки в <img src>.
type craftResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Supplies    []string  `json:"supplies"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toResponse(c *model.Craft) craftResponse {
	resp := craftResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Supplies:    c.Supplies,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if c.HasImage() {
		resp.Image = imagecodec.ToDisplayable(c.Image)
	}
	return resp
}

// List обрабатывает GET /api/crafts.
// Возвращает полный снимок каталога (пустой каталог — пустой массив).
func (h *CraftHandler) List(w http.ResponseWriter, r *http.Request) {
	crafts, cerr := h.service.List(r.Context())
	if cerr != nil {
		apierrors.WriteError(w, cerr.StatusCode, cerr.Code, cerr.Message)
		return
	}

	responses := make([]craftResponse, 0, len(crafts))
	for _, c := range crafts {
		responses = append(responses, toResponse(c))
	}

	writeJSON(w, http.StatusOK, responses)
}

// Create обрабатывает POST /api/crafts (multipart/form-data).
// Поля: name, description, supplies (повторяющееся), image (файл, опционально).
// Успех — 201 с созданной записью.
func (h *CraftHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, image, ok := h.parseForm(w, r)
	if !ok {
		return
	}

	craft, cerr := h.service.Create(r.Context(), input, image)
	if cerr != nil {
		apierrors.WriteError(w, cerr.StatusCode, cerr.Code, cerr.Message)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(craft))
}

// Update обрабатывает PUT /api/crafts/{id} (multipart/form-data).
// Полная замена пользовательских полей; новый файл image заменяет
// изображение, отсутствие файла сохраняет прежнее.
func (h *CraftHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	input, image, ok := h.parseForm(w, r)
	if !ok {
		return
	}

	craft, cerr := h.service.Update(r.Context(), id, input, image)
	if cerr != nil {
		apierrors.WriteError(w, cerr.StatusCode, cerr.Code, cerr.Message)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(craft))
}

// Delete обрабатывает DELETE /api/crafts/{id}.
// Успех — 200 с пустым телом.
func (h *CraftHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if cerr := h.service.Delete(r.Context(), id); cerr != nil {
		apierrors.WriteError(w, cerr.StatusCode, cerr.Code, cerr.Message)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// parseForm разбирает multipart-форму запроса: текстовые поля и
// опциональный файл изображения. Файл читается не далее лимита кодека,
// превышение разрешается в сервисном слое единым кодом ошибки.
// При ошибке разбора ответ уже записан, возвращается ok=false.
func (h *CraftHandler) parseForm(w http.ResponseWriter, r *http.Request) (service.CraftInput, []byte, bool) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		apierrors.ValidationError(w, "Ожидается корректная форма multipart/form-data")
		return service.CraftInput{}, nil, false
	}

	input := service.CraftInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Supplies:    r.PostForm["supplies"],
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			// Файл опционален
			return input, nil, true
		}
		apierrors.ValidationError(w, "Ошибка чтения файла изображения")
		return service.CraftInput{}, nil, false
	}
	defer file.Close()

	// Читаем на один байт больше лимита, чтобы сервис отличил
	// превышение от файла ровно на лимите
	image, err := io.ReadAll(io.LimitReader(file, imagecodec.MaxImageSize+1))
	if err != nil {
		h.logger.Error("Ошибка чтения загруженного файла", slog.String("error", err.Error()))
		apierrors.InternalError(w, "Ошибка чтения файла изображения")
		return service.CraftInput{}, nil, false
	}

	return input, image, true
}

// writeJSON записывает JSON-ответ с указанным статус-кодом.
func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
