package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"pantrychef/constants"
	"pantrychef/internal/common"
)

// InventoryItem is one pantry row.
type InventoryItem struct {
	ID       uuid.UUID `db:"id" json:"id"`
	UserID   uuid.UUID `db:"user_id" json:"-"`
	Name     string    `db:"name" json:"name"`
	Quantity float64   `db:"quantity" json:"quantity"`
	Unit     string    `db:"unit" json:"unit"`
	Price    float64   `db:"price" json:"price"`
	Category string    `db:"category" json:"category"`
	AddedAt  time.Time `db:"added_at" json:"added_at"`
}

// InventoryRepository persists pantry contents per user.
type InventoryRepository interface {
	Insert(ctx context.Context, item *InventoryItem) error
	InsertBatch(ctx context.Context, items []*InventoryItem) (int, error)
	List(ctx context.Context, userID uuid.UUID) ([]InventoryItem, error)
	Delete(ctx context.Context, userID, itemID uuid.UUID) error
	DeleteAll(ctx context.Context, userID uuid.UUID) (int64, error)
}

type inventoryRepo struct {
	db *sqlx.DB
}

func NewInventoryRepository(db *sqlx.DB) InventoryRepository {
	return &inventoryRepo{db: db}
}

func (r *inventoryRepo) Insert(ctx context.Context, item *InventoryItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now().UTC()
	}
	if item.Category == "" {
		item.Category = string(constants.IdentifyCategory(item.Name))
	}
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO inventory_items (id, user_id, name, quantity, unit, price, category, added_at)
		VALUES (:id, :user_id, :name, :quantity, :unit, :price, :category, :added_at)`, item)
	if err != nil {
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

// InsertBatch inserts items one by one, skipping failures. Returns the
// number actually inserted.
func (r *inventoryRepo) InsertBatch(ctx context.Context, items []*InventoryItem) (int, error) {
	inserted := 0
	for _, item := range items {
		if err := r.Insert(ctx, item); err != nil {
			continue
		}
		inserted++
	}
	if inserted == 0 && len(items) > 0 {
		return 0, fmt.Errorf("insert batch: no items inserted")
	}
	return inserted, nil
}

func (r *inventoryRepo) List(ctx context.Context, userID uuid.UUID) ([]InventoryItem, error) {
	items := []InventoryItem{}
	err := r.db.SelectContext(ctx, &items, `
		SELECT * FROM inventory_items WHERE user_id = $1 ORDER BY added_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	return items, nil
}

func (r *inventoryRepo) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM inventory_items WHERE id = $1 AND user_id = $2`, itemID, userID)
	if err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: item %s", common.ErrNotFound, itemID)
	}
	return nil
}

func (r *inventoryRepo) DeleteAll(ctx context.Context, userID uuid.UUID) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM inventory_items WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("delete all inventory: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
