// Пакет service — бизнес-логика Craftstore.
// craft.go — оркестрация жизненного цикла записи изделия:
// извлечённые поля → валидация → кодек изображения → хранилище → результат.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	apierrors "github.com/bigkaa/craftstore/internal/api/errors"
	"github.com/bigkaa/craftstore/internal/api/middleware"
	"github.com/bigkaa/craftstore/internal/domain/model"
	"github.com/bigkaa/craftstore/internal/imagecodec"
	"github.com/bigkaa/craftstore/internal/repository"
	"github.com/bigkaa/craftstore/internal/validation"
)

// MinSupplies — минимальное количество материалов в записи.
// Проверяется по исходному списку отдельно от схемы полей.
const MinSupplies = 2

// CraftInput — пользовательские поля записи, извлечённые на границе
// транспорта. Внутренний код не заглядывает в сырой multipart.
type CraftInput struct {
	// Name — название изделия
	Name string
	// Description — описание изделия
	Description string
	// Supplies — список материалов, как прислал клиент
	Supplies []string
}

// CraftError — типизированная ошибка операции с HTTP-кодом.
type CraftError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *CraftError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// CraftService — сервис жизненного цикла записей изделий.
type CraftService struct {
	repo   repository.CraftRepository
	logger *slog.Logger
}

// NewCraftService создаёт сервис записей изделий.
func NewCraftService(repo repository.CraftRepository, logger *slog.Logger) *CraftService {
	return &CraftService{
		repo:   repo,
		logger: logger.With(slog.String("component", "craft_service")),
	}
}

// Create проверяет поля и создаёт запись. image — сырые байты
// загруженного файла, nil — файл не прислан (запись без изображения).
//
// Валидация и проверка размера разрешаются до любого обращения
// к хранилищу: при отказе запись не создаётся даже частично.
func (s *CraftService) Create(ctx context.Context, input CraftInput, image []byte) (*model.Craft, *CraftError) {
	if cerr := s.validate(input); cerr != nil {
		return nil, cerr
	}

	encoded, cerr := s.encodeImage(image)
	if cerr != nil {
		return nil, cerr
	}

	craft := &model.Craft{
		Name:        input.Name,
		Description: input.Description,
		Supplies:    input.Supplies,
		Image:       encoded,
	}

	if err := s.repo.Create(ctx, craft); err != nil {
		s.logger.Error("Ошибка создания записи", slog.String("error", err.Error()))
		middleware.OperationsTotal.WithLabelValues("create", "error").Inc()
		return nil, storeError("Ошибка сохранения записи в хранилище")
	}

	middleware.OperationsTotal.WithLabelValues("create", "success").Inc()
	middleware.CraftsTotal.Inc()

	s.logger.Info("Запись изделия создана",
		slog.String("craft_id", craft.ID),
		slog.String("name", craft.Name),
		slog.Int("supplies", len(craft.Supplies)),
		slog.Bool("has_image", craft.HasImage()),
	)

	return craft, nil
}

// List возвращает полный снимок каталога. Хранимая форма изображения
// не преобразуется — отображаемую форму строит презентационная граница.
func (s *CraftService) List(ctx context.Context) ([]*model.Craft, *CraftError) {
	crafts, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("Ошибка получения списка", slog.String("error", err.Error()))
		return nil, storeError("Ошибка чтения каталога из хранилища")
	}
	return crafts, nil
}

// Update обновляет существующую запись: сначала поиск по id (NotFound
// для отсутствующего id), затем та же валидация, что и при создании.
// Новый файл изображения заменяет хранимое, nil сохраняет прежнее
// без изменений.
func (s *CraftService) Update(ctx context.Context, id string, input CraftInput, image []byte) (*model.Craft, *CraftError) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundError(id)
		}
		s.logger.Error("Ошибка поиска записи", slog.String("craft_id", id), slog.String("error", err.Error()))
		return nil, storeError("Ошибка чтения записи из хранилища")
	}

	if cerr := s.validate(input); cerr != nil {
		return nil, cerr
	}

	replaceImage := image != nil
	encoded := existing.Image
	if replaceImage {
		var cerr *CraftError
		encoded, cerr = s.encodeImage(image)
		if cerr != nil {
			return nil, cerr
		}
	}

	updated, err := s.repo.Update(ctx, &model.Craft{
		ID:          existing.ID,
		Name:        input.Name,
		Description: input.Description,
		Supplies:    input.Supplies,
		Image:       encoded,
	}, replaceImage)
	if err != nil {
		// Запись могла исчезнуть между поиском и обновлением
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundError(id)
		}
		s.logger.Error("Ошибка обновления записи", slog.String("craft_id", id), slog.String("error", err.Error()))
		middleware.OperationsTotal.WithLabelValues("update", "error").Inc()
		return nil, storeError("Ошибка сохранения записи в хранилище")
	}

	middleware.OperationsTotal.WithLabelValues("update", "success").Inc()

	s.logger.Info("Запись изделия обновлена",
		slog.String("craft_id", updated.ID),
		slog.Bool("image_replaced", replaceImage),
	)

	return updated, nil
}

// Delete удаляет запись безвозвратно. Повторное удаление того же id
// возвращает NotFound.
func (s *CraftService) Delete(ctx context.Context, id string) *CraftError {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFoundError(id)
		}
		s.logger.Error("Ошибка удаления записи", slog.String("craft_id", id), slog.String("error", err.Error()))
		middleware.OperationsTotal.WithLabelValues("delete", "error").Inc()
		return storeError("Ошибка удаления записи из хранилища")
	}

	middleware.OperationsTotal.WithLabelValues("delete", "success").Inc()
	middleware.CraftsTotal.Dec()

	s.logger.Info("Запись изделия удалена", slog.String("craft_id", id))
	return nil
}

// validate проверяет пользовательские поля: сначала форму по схеме,
// затем количество материалов по исходному списку.
func (s *CraftService) validate(input CraftInput) *CraftError {
	fields := validation.FieldsFromInput(input.Name, input.Description, input.Supplies)
	if ferr := validation.ValidateCraftFields(fields); ferr != nil {
		return &CraftError{
			StatusCode: 400,
			Code:       apierrors.CodeValidationError,
			Message:    fmt.Sprintf("Поле %q: %s", ferr.Field, ferr.Reason),
		}
	}

	if len(input.Supplies) < MinSupplies {
		return &CraftError{
			StatusCode: 400,
			Code:       apierrors.CodeValidationError,
			Message:    fmt.Sprintf("Поле \"supplies\": требуется минимум %d материала, получено %d", MinSupplies, len(input.Supplies)),
		}
	}

	return nil
}

// encodeImage кодирует загруженный файл в хранимую форму.
// nil означает отсутствие файла — хранится пустая кодировка.
func (s *CraftService) encodeImage(image []byte) (string, *CraftError) {
	if image == nil {
		return "", nil
	}

	encoded, err := imagecodec.Encode(image)
	if err != nil {
		if errors.Is(err, imagecodec.ErrImageTooLarge) {
			return "", &CraftError{
				StatusCode: 400,
				Code:       apierrors.CodeImageTooLarge,
				Message: fmt.Sprintf("Размер изображения %d байт превышает максимум %d байт",
					len(image), imagecodec.MaxImageSize),
			}
		}
		return "", storeError("Ошибка кодирования изображения")
	}
	return encoded, nil
}

// notFoundError — запись с указанным id отсутствует.
func notFoundError(id string) *CraftError {
	return &CraftError{
		StatusCode: 404,
		Code:       apierrors.CodeNotFound,
		Message:    fmt.Sprintf("Изделие %s не найдено", id),
	}
}

// storeError — хранилище недоступно или вернуло ошибку.
func storeError(message string) *CraftError {
	return &CraftError{
		StatusCode: 500,
		Code:       apierrors.CodeInternalError,
		Message:    message,
	}
}
