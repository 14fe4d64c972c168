package catalog

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Products is the catalog item repository.
type Products interface {
	List(ctx context.Context) ([]*Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	Create(ctx context.Context, record *Product) (*Product, error)
	Update(ctx context.Context, record *Product) (*Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type products struct {
	db *bun.DB
}

var _ Products = (*products)(nil)

func NewProductsRepository(db *bun.DB) Products {
	return &products{db: db}
}

func (r *products) List(ctx context.Context) ([]*Product, error) {
	var records []*Product
	err := r.db.NewSelect().
		Model(&records).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return []*Product{}, nil
		}
		return nil, WrapStoreError(err, "failed to list products")
	}
	return records, nil
}

func (r *products) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	record := &Product{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, productNotFound(id)
		}
		return nil, WrapStoreError(err, "failed to load product")
	}
	return record, nil
}

func (r *products) Create(ctx context.Context, record *Product) (*Product, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	_, err := r.db.NewInsert().
		Model(record).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, WrapStoreError(err, "failed to create product")
	}
	return record, nil
}

func (r *products) Update(ctx context.Context, record *Product) (*Product, error) {
	now := time.Now()
	record.UpdatedAt = &now

	res, err := r.db.NewUpdate().
		Model(record).
		Column("title", "description", "price", "updated_at").
		WherePK().
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, WrapStoreError(err, "failed to update product")
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, productNotFound(record.ID)
	}

	return record, nil
}

func (r *products) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*Product)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return WrapStoreError(err, "failed to delete product")
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return productNotFound(id)
	}

	return nil
}

func productNotFound(id uuid.UUID) error {
	return errors.New(errors.CategoryNotFound, "product not found").
		WithTextCode("PRODUCT_NOT_FOUND").
		WithCode(http.StatusNotFound).
		WithMetadata(map[string]any{
			"id": id.String(),
		})
}
