// Пакет imagecodec — преобразование загруженного изображения в хранимую
// текстовую форму (base64) и обратно в отображаемый data URI.
// Чистые функции без ввода-вывода, хранилище пакет не трогает.
package imagecodec

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// MaxImageSize — максимальный размер исходного изображения в байтах
// (до кодирования). Ровно 1 000 000 байт принимается, 1 000 001 — нет.
const MaxImageSize = 1_000_000

// displayPrefix — префикс data URI, который viewer подставляет в <img src>.
const displayPrefix = "data:image/jpg;base64,"

// Ошибки кодека.
var (
	// ErrImageTooLarge — исходные данные превышают MaxImageSize.
	ErrImageTooLarge = errors.New("изображение превышает максимальный размер")

	// ErrNotDisplayable — строка не является data URI хранимого формата.
	ErrNotDisplayable = errors.New("строка не является data URI изображения")
)

// Encode кодирует бинарные данные изображения в хранимую base64-форму.
// Возвращает ErrImageTooLarge, если размер данных превышает MaxImageSize.
func Encode(data []byte) (string, error) {
	if len(data) > MaxImageSize {
		return "", fmt.Errorf("%w: %d байт при лимите %d", ErrImageTooLarge, len(data), MaxImageSize)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// Decode восстанавливает исходные байты из хранимой base64-формы.
func Decode(encoded string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("ошибка декодирования base64: %w", err)
	}
	return data, nil
}

// ToDisplayable преобразует хранимую форму в data URI,
// пригодный для прямого отображения клиентом.
// Детерминировано и обратимо (см. FromDisplayable).
func ToDisplayable(encoded string) string {
	return displayPrefix + encoded
}

// FromDisplayable извлекает хранимую base64-форму из data URI.
// Обратная операция к ToDisplayable.
func FromDisplayable(uri string) (string, error) {
	encoded, ok := strings.CutPrefix(uri, displayPrefix)
	if !ok {
		return "", ErrNotDisplayable
	}
	return encoded, nil
}
