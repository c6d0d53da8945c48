package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/bigkaa/craftstore/internal/domain/model"
)

// testCraft возвращает корректную запись изделия без id.
func testCraft(name string) *model.Craft {
	return &model.Craft{
		Name:        name,
		Description: "A handmade pot",
		Supplies:    []string{"clay", "glaze"},
		Image:       "QUJDREVG",
	}
}

// TestMemory_CreateAssignsID проверяет присвоение свежего id при создании.
func TestMemory_CreateAssignsID(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	craft := testCraft("Clay Pot")
	if err := repo.Create(ctx, craft); err != nil {
		t.Fatalf("ошибка создания: %v", err)
	}

	if craft.ID == "" {
		t.Fatal("Create должен присвоить id")
	}
	if craft.CreatedAt.IsZero() || craft.UpdatedAt.IsZero() {
		t.Error("Create должен заполнить CreatedAt и UpdatedAt")
	}
}

// TestMemory_CreateUniqueIDs проверяет уникальность присвоенных id,
// в том числе для одинакового содержимого.
func TestMemory_CreateUniqueIDs(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	seen := make(map[string]bool)
	for range 20 {
		craft := testCraft("Clay Pot")
		if err := repo.Create(ctx, craft); err != nil {
			t.Fatalf("ошибка создания: %v", err)
		}
		if seen[craft.ID] {
			t.Fatalf("id %s присвоен повторно", craft.ID)
		}
		seen[craft.ID] = true
	}
}

// TestMemory_RoundTrip проверяет, что GetByID сразу после Create
// возвращает идентичные поля.
func TestMemory_RoundTrip(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	craft := testCraft("Clay Pot")
	if err := repo.Create(ctx, craft); err != nil {
		t.Fatalf("ошибка создания: %v", err)
	}

	got, err := repo.GetByID(ctx, craft.ID)
	if err != nil {
		t.Fatalf("ошибка получения: %v", err)
	}

	if got.Name != craft.Name {
		t.Errorf("Name = %q, ожидалось %q", got.Name, craft.Name)
	}
	if got.Description != craft.Description {
		t.Errorf("Description = %q, ожидалось %q", got.Description, craft.Description)
	}
	if len(got.Supplies) != 2 || got.Supplies[0] != "clay" || got.Supplies[1] != "glaze" {
		t.Errorf("Supplies = %v, ожидалось [clay glaze]", got.Supplies)
	}
	if got.Image != craft.Image {
		t.Errorf("Image = %q, ожидалось %q", got.Image, craft.Image)
	}
}

// TestMemory_GetReturnsCopy проверяет, что изменение возвращённой записи
// не затрагивает хранилище.
func TestMemory_GetReturnsCopy(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	craft := testCraft("Clay Pot")
	repo.Create(ctx, craft)

	got, _ := repo.GetByID(ctx, craft.ID)
	got.Name = "испорчено"
	got.Supplies[0] = "испорчено"

	fresh, _ := repo.GetByID(ctx, craft.ID)
	if fresh.Name != "Clay Pot" {
		t.Error("GetByID должен возвращать копию, а не ссылку")
	}
	if fresh.Supplies[0] != "clay" {
		t.Error("GetByID должен копировать срез supplies")
	}
}

// TestMemory_GetNotFound проверяет поиск несуществующего id.
func TestMemory_GetNotFound(t *testing.T) {
	repo := NewMemoryRepository()

	_, err := repo.GetByID(context.Background(), "3b241101-e2bb-4255-8caf-4136c566a962")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("ожидалась ErrNotFound, получено %v", err)
	}
}

// TestMemory_GetInvalidID проверяет, что некорректный текст id
// эквивалентен отсутствию записи.
func TestMemory_GetInvalidID(t *testing.T) {
	repo := NewMemoryRepository()

	_, err := repo.GetByID(context.Background(), "не-uuid")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("ожидалась ErrNotFound, получено %v", err)
	}
}

// TestMemory_IDNormalization проверяет сопоставление id независимо
// от текстового представления (регистр hex-символов).
func TestMemory_IDNormalization(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	craft := testCraft("Clay Pot")
	repo.Create(ctx, craft)

	upper := make([]byte, len(craft.ID))
	for i := range craft.ID {
		c := craft.ID[i]
		if c >= 'a' && c <= 'f' {
			c -= 'a' - 'A'
		}
		upper[i] = c
	}

	if _, err := repo.GetByID(ctx, string(upper)); err != nil {
		t.Errorf("id в верхнем регистре должен находить запись: %v", err)
	}
}

// TestMemory_ListSnapshot проверяет полный снимок и его стабильный порядок.
func TestMemory_ListSnapshot(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	for i := range 5 {
		repo.Create(ctx, testCraft(fmt.Sprintf("Craft %d", i)))
	}

	first, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("ошибка списка: %v", err)
	}
	if len(first) != 5 {
		t.Fatalf("ожидалось 5 записей, получено %d", len(first))
	}

	second, _ := repo.List(ctx)
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatal("порядок списка должен быть стабилен между чтениями без записи")
		}
	}
}

// TestMemory_CreateGrowsListByOne проверяет, что после создания список
// содержит ровно на одну запись больше.
func TestMemory_CreateGrowsListByOne(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	before, _ := repo.List(ctx)

	craft := testCraft("Clay Pot")
	repo.Create(ctx, craft)

	after, _ := repo.List(ctx)
	if len(after) != len(before)+1 {
		t.Errorf("ожидалось %d записей, получено %d", len(before)+1, len(after))
	}
}

// TestMemory_UpdateReplacesFields проверяет полную замену
// name/description/supplies.
func TestMemory_UpdateReplacesFields(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	craft := testCraft("Clay Pot")
	repo.Create(ctx, craft)

	updated, err := repo.Update(ctx, &model.Craft{
		ID:          craft.ID,
		Name:        "Glazed Pot",
		Description: "A glazed handmade pot",
		Supplies:    []string{"clay", "glaze", "kiln time"},
	}, false)
	if err != nil {
		t.Fatalf("ошибка обновления: %v", err)
	}

	if updated.Name != "Glazed Pot" {
		t.Errorf("Name = %q, ожидалось 'Glazed Pot'", updated.Name)
	}
	if len(updated.Supplies) != 3 {
		t.Errorf("Supplies = %v, ожидалось 3 элемента", updated.Supplies)
	}
	if updated.ID != craft.ID {
		t.Error("id должен оставаться неизменным при обновлении")
	}
}

// TestMemory_UpdatePreservesImage проверяет, что без replaceImage
// хранимая кодировка изображения сохраняется байт-в-байт.
func TestMemory_UpdatePreservesImage(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	craft := testCraft("Clay Pot")
	repo.Create(ctx, craft)

	updated, err := repo.Update(ctx, &model.Craft{
		ID:          craft.ID,
		Name:        "Glazed Pot",
		Description: "A glazed handmade pot",
		Supplies:    []string{"clay", "glaze"},
		Image:       "должно-игнорироваться",
	}, false)
	if err != nil {
		t.Fatalf("ошибка обновления: %v", err)
	}

	if updated.Image != "QUJDREVG" {
		t.Errorf("Image = %q, прежняя кодировка должна сохраняться", updated.Image)
	}
}

// TestMemory_UpdateReplacesImage проверяет замену изображения с replaceImage.
func TestMemory_UpdateReplacesImage(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	craft := testCraft("Clay Pot")
	repo.Create(ctx, craft)

	updated, err := repo.Update(ctx, &model.Craft{
		ID:          craft.ID,
		Name:        "Glazed Pot",
		Description: "A glazed handmade pot",
		Supplies:    []string{"clay", "glaze"},
		Image:       "bmV3LWltYWdl",
	}, true)
	if err != nil {
		t.Fatalf("ошибка обновления: %v", err)
	}

	if updated.Image != "bmV3LWltYWdl" {
		t.Errorf("Image = %q, ожидалась новая кодировка", updated.Image)
	}
}

// TestMemory_UpdateNotFound проверяет обновление несуществующей записи.
func TestMemory_UpdateNotFound(t *testing.T) {
	repo := NewMemoryRepository()

	_, err := repo.Update(context.Background(), &model.Craft{
		ID:          "3b241101-e2bb-4255-8caf-4136c566a962",
		Name:        "Glazed Pot",
		Description: "A glazed handmade pot",
		Supplies:    []string{"clay", "glaze"},
	}, false)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("ожидалась ErrNotFound, получено %v", err)
	}
}

// TestMemory_DeleteThenNotFound проверяет жёсткое удаление:
// первый Delete успешен, повторный — ErrNotFound.
func TestMemory_DeleteThenNotFound(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	craft := testCraft("Clay Pot")
	repo.Create(ctx, craft)

	if err := repo.Delete(ctx, craft.ID); err != nil {
		t.Fatalf("первое удаление должно быть успешным: %v", err)
	}

	if _, err := repo.GetByID(ctx, craft.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("после удаления GetByID должен давать ErrNotFound, получено %v", err)
	}

	if err := repo.Delete(ctx, craft.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("повторное удаление должно давать ErrNotFound, получено %v", err)
	}
}

// TestMemory_DeleteNonexistent проверяет удаление несуществующего id.
func TestMemory_DeleteNonexistent(t *testing.T) {
	repo := NewMemoryRepository()

	err := repo.Delete(context.Background(), "3b241101-e2bb-4255-8caf-4136c566a962")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("ожидалась ErrNotFound, получено %v", err)
	}
}

// TestMemory_ConcurrentAccess проверяет потокобезопасность репозитория.
// Запускать с go test -race для обнаружения data races.
func TestMemory_ConcurrentAccess(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	seed := testCraft("Clay Pot")
	repo.Create(ctx, seed)

	var wg sync.WaitGroup
	const goroutines = 25

	wg.Add(goroutines * 3)

	for range goroutines {
		go func() {
			defer wg.Done()
			for range 50 {
				repo.List(ctx)
				repo.GetByID(ctx, seed.ID)
			}
		}()
	}

	for range goroutines {
		go func() {
			defer wg.Done()
			craft := testCraft("Concurrent Pot")
			repo.Create(ctx, craft)
			repo.Delete(ctx, craft.ID)
		}()
	}

	for range goroutines {
		go func() {
			defer wg.Done()
			repo.Update(ctx, &model.Craft{
				ID:          seed.ID,
				Name:        "Glazed Pot",
				Description: "A glazed handmade pot",
				Supplies:    []string{"clay", "glaze"},
			}, false)
		}()
	}

	wg.Wait()
}
