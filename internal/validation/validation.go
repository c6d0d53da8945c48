// Пакет validation — декларативная схема пользовательских полей записи
// изделия. Схема описана через openapi3.Schema (kin-openapi) и проверяет
// форму полей name/description/supplies. Поле id, если присутствует,
// принимается без проверки: его присваивает хранилище, а не клиент.
//
// Проверка тотальна и синхронна: возвращается первая нарушенная причина
// (поле + описание), частичное принятие не выполняется.
//
// Минимальное количество элементов supplies (>= 2) проверяется сервисным
// слоем по исходному списку — схема ограничивает только форму элементов.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Ограничения полей записи изделия.
const (
	// MinNameLength — минимальная длина названия
	MinNameLength = 4
	// MinDescriptionLength — минимальная длина описания
	MinDescriptionLength = 10
	// MinSupplyLength — минимальная длина одного материала
	MinSupplyLength = 4
)

// FieldError — первая нарушенная причина валидации.
type FieldError struct {
	// Field — имя поля, не прошедшего проверку
	Field string
	// Reason — человекочитаемая причина
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// craftSchema — декларативная схема пользовательских полей.
// Строится один раз при инициализации пакета.
var craftSchema = newCraftSchema()

// newCraftSchema описывает требуемую форму полей записи изделия.
func newCraftSchema() *openapi3.Schema {
	schema := openapi3.NewObjectSchema().
		WithProperty("name", openapi3.NewStringSchema().WithMinLength(MinNameLength)).
		WithProperty("description", openapi3.NewStringSchema().WithMinLength(MinDescriptionLength)).
		WithProperty("supplies", openapi3.NewArraySchema().
			WithItems(openapi3.NewStringSchema().WithMinLength(MinSupplyLength))).
		// id присваивается хранилищем и принимается в любом виде
		WithProperty("id", openapi3.NewSchema())
	schema.Required = []string{"name", "description", "supplies"}
	return schema
}

// ValidateCraftFields проверяет поля-кандидаты по схеме.
// Возвращает nil при успехе или первую нарушенную причину.
// supplies передаются как []any — формат значений JSON.
func ValidateCraftFields(fields map[string]any) *FieldError {
	err := craftSchema.VisitJSON(fields)
	if err == nil {
		return nil
	}

	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		return &FieldError{
			Field:  fieldFromError(schemaErr),
			Reason: schemaErr.Reason,
		}
	}
	return &FieldError{Field: "", Reason: err.Error()}
}

// FieldsFromInput собирает map для ValidateCraftFields из значений,
// извлечённых на границе транспорта.
func FieldsFromInput(name, description string, supplies []string) map[string]any {
	items := make([]any, len(supplies))
	for i, s := range supplies {
		items[i] = s
	}
	return map[string]any{
		"name":        name,
		"description": description,
		"supplies":    items,
	}
}

// fieldFromError извлекает имя поля верхнего уровня из SchemaError.
// Для ошибок вложенных элементов (supplies/0) возвращается имя массива.
func fieldFromError(err *openapi3.SchemaError) string {
	if ptr := err.JSONPointer(); len(ptr) > 0 {
		return ptr[0]
	}
	// Отсутствующее required-поле: причина вида `property "name" is missing`
	if err.SchemaField == "required" {
		if _, after, ok := strings.Cut(err.Reason, `"`); ok {
			if field, _, ok := strings.Cut(after, `"`); ok {
				return field
			}
		}
	}
	return ""
}
