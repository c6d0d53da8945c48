// Пакет model — доменные модели Craftstore.
// Craft — единственная сущность каталога: запись изделия с материалами
// и закодированным изображением.
package model

import (
	"time"
)

// Craft — запись изделия в каталоге.
type Craft struct {
	// ID — уникальный идентификатор записи (UUID v4).
	// Присваивается хранилищем при создании, неизменяем,
	// после удаления не переиспользуется.
	ID string `json:"id"`

	// Name — название изделия (минимум 4 символа)
	Name string `json:"name"`

	// Description — описание изделия (минимум 10 символов)
	Description string `json:"description"`

	// Supplies — список материалов (минимум 2 элемента, каждый от 4 символов)
	Supplies []string `json:"supplies"`

	// Image — base64-кодированное изображение в хранимой форме.
	// Пустая строка — изображение не загружалось.
	// Ограничение размера исходных данных применяется при записи,
	// хранимое значение всегда в пределах лимита.
	Image string `json:"image"`

	// CreatedAt — дата и время создания записи (UTC)
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt — дата и время последнего изменения (UTC)
	UpdatedAt time.Time `json:"updated_at"`
}

// HasImage проверяет, было ли для записи загружено изображение.
func (c *Craft) HasImage() bool {
	return c.Image != ""
}
