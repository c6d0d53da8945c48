package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bigkaa/craftstore/internal/domain/model"
)

// craftColumns — список столбцов таблицы crafts для SELECT-запросов.
// DRY: одно место для всех SELECT'ов.
const craftColumns = `id, name, description, supplies, image, created_at, updated_at`

// craftRepo — реализация CraftRepository через pgx.
type craftRepo struct {
	db DBTX
}

// NewCraftRepository создаёт репозиторий изделий поверх PostgreSQL.
func NewCraftRepository(db DBTX) CraftRepository {
	return &craftRepo{db: db}
}

// Create присваивает записи UUID и вставляет её в таблицу crafts.
func (r *craftRepo) Create(ctx context.Context, craft *model.Craft) error {
	craft.ID = uuid.New().String()

	query := `
		INSERT INTO crafts (id, name, description, supplies, image)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		craft.ID, craft.Name, craft.Description, craft.Supplies, craft.Image,
	).Scan(&craft.CreatedAt, &craft.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания записи изделия: %w", err)
	}
	return nil
}

// List возвращает все записи, отсортированные по дате создания.
func (r *craftRepo) List(ctx context.Context) ([]*model.Craft, error) {
	query := fmt.Sprintf(`SELECT %s FROM crafts ORDER BY created_at, id`, craftColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка изделий: %w", err)
	}
	defer rows.Close()

	var result []*model.Craft
	for rows.Next() {
		c := &model.Craft{}
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Description, &c.Supplies, &c.Image,
			&c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования записи изделия: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации результатов: %w", err)
	}
	return result, nil
}

// GetByID возвращает запись по UUID или ErrNotFound.
func (r *craftRepo) GetByID(ctx context.Context, id string) (*model.Craft, error) {
	normalized, ok := normalizeID(id)
	if !ok {
		return nil, ErrNotFound
	}

	query := fmt.Sprintf(`SELECT %s FROM crafts WHERE id = $1`, craftColumns)

	c := &model.Craft{}
	err := r.db.QueryRow(ctx, query, normalized).Scan(
		&c.ID, &c.Name, &c.Description, &c.Supplies, &c.Image,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения записи изделия: %w", err)
	}
	return c, nil
}

// Update заменяет поля записи одним UPDATE: либо запись обновлена целиком,
// либо не тронута (валидационные отказы сюда не доходят).
func (r *craftRepo) Update(ctx context.Context, craft *model.Craft, replaceImage bool) (*model.Craft, error) {
	normalized, ok := normalizeID(craft.ID)
	if !ok {
		return nil, ErrNotFound
	}

	query := fmt.Sprintf(`
		UPDATE crafts
		SET name = $2, description = $3, supplies = $4,
			image = CASE WHEN $5 THEN $6 ELSE image END,
			updated_at = $7
		WHERE id = $1
		RETURNING %s`, craftColumns)

	updated := &model.Craft{}
	err := r.db.QueryRow(ctx, query,
		normalized, craft.Name, craft.Description, craft.Supplies,
		replaceImage, craft.Image, time.Now().UTC(),
	).Scan(
		&updated.ID, &updated.Name, &updated.Description, &updated.Supplies,
		&updated.Image, &updated.CreatedAt, &updated.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка обновления записи изделия: %w", err)
	}
	return updated, nil
}

// Delete удаляет запись безвозвратно. RowsAffected == 0 означает,
// что записи с таким id нет (в том числе при повторном удалении).
func (r *craftRepo) Delete(ctx context.Context, id string) error {
	normalized, ok := normalizeID(id)
	if !ok {
		return ErrNotFound
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM crafts WHERE id = $1`, normalized)
	if err != nil {
		return fmt.Errorf("ошибка удаления записи изделия: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// normalizeID приводит текстовое представление id к каноничной форме UUID.
// Некорректный текст означает, что id не соответствует ни одной записи.
func normalizeID(id string) (string, bool) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return uid.String(), true
}
