package imagecodec

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// TestEncode_Small проверяет кодирование небольшого изображения.
func TestEncode_Small(t *testing.T) {
	data := []byte{0xFF, 0xD8, 0xFF, 0xE0} // JPEG SOI + APP0
	encoded, err := Encode(data)
	if err != nil {
		t.Fatalf("ошибка кодирования: %v", err)
	}
	if encoded == "" {
		t.Error("ожидалась непустая base64-строка")
	}
}

// TestEncode_ExactLimit проверяет, что ровно MaxImageSize байт принимается.
func TestEncode_ExactLimit(t *testing.T) {
	data := make([]byte, MaxImageSize)
	if _, err := Encode(data); err != nil {
		t.Errorf("изображение в %d байт должно приниматься: %v", MaxImageSize, err)
	}
}

// TestEncode_OverLimit проверяет отказ для MaxImageSize+1 байт.
func TestEncode_OverLimit(t *testing.T) {
	data := make([]byte, MaxImageSize+1)
	_, err := Encode(data)
	if err == nil {
		t.Fatalf("изображение в %d байт должно отклоняться", MaxImageSize+1)
	}
	if !errors.Is(err, ErrImageTooLarge) {
		t.Errorf("ожидалась ErrImageTooLarge, получено %v", err)
	}
}

// TestRoundTrip проверяет, что encode → toDisplayable → fromDisplayable →
// decode восстанавливает исходные байты без изменений.
func TestRoundTrip(t *testing.T) {
	original := []byte("\xFF\xD8\xFF\xE0 пиксельные данные \x00\x01\x02\xFE")

	encoded, err := Encode(original)
	if err != nil {
		t.Fatalf("ошибка кодирования: %v", err)
	}

	uri := ToDisplayable(encoded)

	back, err := FromDisplayable(uri)
	if err != nil {
		t.Fatalf("ошибка FromDisplayable: %v", err)
	}
	if back != encoded {
		t.Error("FromDisplayable должен возвращать исходную хранимую форму")
	}

	restored, err := Decode(back)
	if err != nil {
		t.Fatalf("ошибка декодирования: %v", err)
	}
	if !bytes.Equal(restored, original) {
		t.Error("восстановленные байты отличаются от исходных")
	}
}

// TestToDisplayable_Prefix проверяет формат data URI.
func TestToDisplayable_Prefix(t *testing.T) {
	uri := ToDisplayable("QUJD")
	if !strings.HasPrefix(uri, "data:image/jpg;base64,") {
		t.Errorf("некорректный префикс data URI: %q", uri)
	}
	if !strings.HasSuffix(uri, "QUJD") {
		t.Errorf("data URI должен оканчиваться payload: %q", uri)
	}
}

// TestFromDisplayable_InvalidPrefix проверяет отказ для посторонней строки.
func TestFromDisplayable_InvalidPrefix(t *testing.T) {
	if _, err := FromDisplayable("https://example.com/image.jpg"); !errors.Is(err, ErrNotDisplayable) {
		t.Errorf("ожидалась ErrNotDisplayable, получено %v", err)
	}
}

// TestEncode_Empty проверяет кодирование пустых данных.
func TestEncode_Empty(t *testing.T) {
	encoded, err := Encode(nil)
	if err != nil {
		t.Fatalf("ошибка: %v", err)
	}
	if encoded != "" {
		t.Errorf("пустые данные должны давать пустую строку, получено %q", encoded)
	}
}
