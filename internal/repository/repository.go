// Пакет repository — слой доступа к данным каталога изделий.
// Контракт CraftRepository реализуют два бэкенда: PostgreSQL (pgx)
// для постоянного хранения и in-memory для тестов и dev-режима.
// Все запросы — чистый SQL через pgx, без ORM.
package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bigkaa/craftstore/internal/domain/model"
)

// Ошибки слоя репозиториев.
var (
	// ErrNotFound — запись не найдена.
	ErrNotFound = errors.New("запись не найдена")
)

// DBTX — интерфейс для выполнения SQL-запросов.
// Реализуется как *pgxpool.Pool, так и pgx.Tx, что позволяет
// использовать репозиторий как внутри, так и вне транзакций.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CraftRepository — контракт CRUD над записями изделий.
//
// Идентификаторы присваивает хранилище (Create), после удаления id не
// переиспользуются. Нормализация текстового представления id —
// ответственность реализации: id, не соответствующий ни одной записи
// (в том числе синтаксически некорректный), даёт ErrNotFound.
type CraftRepository interface {
	// Create присваивает записи свежий id и сохраняет её.
	// Заполняет ID, CreatedAt и UpdatedAt переданной записи.
	// Дубликаты содержимого не считаются ошибкой.
	Create(ctx context.Context, craft *model.Craft) error

	// List возвращает полный снимок каталога.
	// Порядок стабилен в пределах одного чтения (по дате создания).
	List(ctx context.Context) ([]*model.Craft, error)

	// GetByID возвращает запись по id или ErrNotFound.
	GetByID(ctx context.Context, id string) (*model.Craft, error)

	// Update полностью заменяет name/description/supplies записи.
	// Изображение заменяется только при replaceImage, иначе хранимая
	// кодировка остаётся без изменений. Возвращает обновлённую запись
	// или ErrNotFound.
	Update(ctx context.Context, craft *model.Craft, replaceImage bool) (*model.Craft, error)

	// Delete удаляет запись безвозвратно. Повторное удаление того же id
	// возвращает ErrNotFound.
	Delete(ctx context.Context, id string) error
}
