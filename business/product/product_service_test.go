package product

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"klontong/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockProductRepo struct {
	nextID    uint64
	createErr error
	saveErr   error
	findErr   error
	products  map[uint64]domain.Product
	saved     []domain.Product
	lastQuery struct {
		search        string
		offset, limit int
	}
	listItems []domain.Product
	listTotal int64
}

func newMockProductRepo(products ...domain.Product) *mockProductRepo {
	m := &mockProductRepo{nextID: 100, products: make(map[uint64]domain.Product)}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *mockProductRepo) Create(ctx context.Context, product *domain.Product) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	product.ID = m.nextID
	m.products[product.ID] = *product
	return nil
}

func (m *mockProductRepo) FindActiveByID(ctx context.Context, id uint64) (domain.Product, error) {
	if m.findErr != nil {
		return domain.Product{}, m.findErr
	}
	product, ok := m.products[id]
	if !ok || product.IsDeleted {
		return domain.Product{}, fmt.Errorf("%w: id %d", domain.ErrProductNotFound, id)
	}
	return product, nil
}

func (m *mockProductRepo) FindAndCount(ctx context.Context, search string, offset, limit int) ([]domain.Product, int64, error) {
	m.lastQuery.search = search
	m.lastQuery.offset = offset
	m.lastQuery.limit = limit
	return m.listItems, m.listTotal, nil
}

func (m *mockProductRepo) Save(ctx context.Context, product *domain.Product) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.products[product.ID] = *product
	m.saved = append(m.saved, *product)
	return nil
}

type mockAudit struct {
	err     error
	records []struct {
		Entity   string
		EntityID string
		Action   domain.AuditAction
		Before   interface{}
		After    interface{}
	}
}

func (m *mockAudit) Record(ctx context.Context, entity, entityID string, action domain.AuditAction, before, after interface{}) (*domain.AuditLog, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.records = append(m.records, struct {
		Entity   string
		EntityID string
		Action   domain.AuditAction
		Before   interface{}
		After    interface{}
	}{entity, entityID, action, before, after})
	return &domain.AuditLog{}, nil
}

func activeProduct(id uint64, sku, name string, harga int64) domain.Product {
	return domain.Product{
		ID:          id,
		SKU:         sku,
		Name:        name,
		Description: "desc",
		Weight:      200,
		Width:       5,
		Height:      5,
		Length:      5,
		Harga:       decimal.NewFromInt(harga),
		CategoryID:  1,
	}
}

func TestCreateProduct_RecordsCreateAudit(t *testing.T) {
	repo := newMockProductRepo()
	audit := &mockAudit{}
	svc := NewProductService(repo, audit)

	created, err := svc.CreateProduct(context.Background(), CreateInput{
		SKU:         "MIE-001",
		Name:        "Indomie Goreng",
		Description: "instant noodles",
		Weight:      85,
		Width:       10,
		Height:      2,
		Length:      15,
		Harga:       decimal.NewFromInt(3500),
		CategoryID:  1,
	})

	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.IsDeleted)

	require.Len(t, audit.records, 1)
	rec := audit.records[0]
	assert.Equal(t, "Product", rec.Entity)
	assert.Equal(t, fmt.Sprint(created.ID), rec.EntityID)
	assert.Equal(t, domain.ActionCreate, rec.Action)
	assert.Nil(t, rec.Before)
	assert.Equal(t, created, rec.After)
}

func TestCreateProduct_DuplicateSKU(t *testing.T) {
	repo := newMockProductRepo()
	repo.createErr = fmt.Errorf("%w: MIE-001", domain.ErrDuplicateSKU)
	audit := &mockAudit{}
	svc := NewProductService(repo, audit)

	created, err := svc.CreateProduct(context.Background(), CreateInput{SKU: "MIE-001"})

	assert.ErrorIs(t, err, domain.ErrDuplicateSKU)
	assert.Nil(t, created)
	assert.Empty(t, audit.records, "failed create must not be audited")
}

func TestCreateProduct_AuditFailureAborts(t *testing.T) {
	repo := newMockProductRepo()
	auditErr := errors.New("audit store down")
	svc := NewProductService(repo, &mockAudit{err: auditErr})

	created, err := svc.CreateProduct(context.Background(), CreateInput{SKU: "MIE-001"})

	assert.ErrorIs(t, err, auditErr)
	assert.Nil(t, created)
}

func TestGetProductByID(t *testing.T) {
	repo := newMockProductRepo(activeProduct(7, "MIE-001", "Indomie", 3500))
	svc := NewProductService(repo, &mockAudit{})

	found, err := svc.GetProductByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "MIE-001", found.SKU)

	_, err = svc.GetProductByID(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestGetProductByID_SoftDeletedIsNotFound(t *testing.T) {
	deleted := activeProduct(7, "MIE-001", "Indomie", 3500)
	deleted.IsDeleted = true
	repo := newMockProductRepo(deleted)
	svc := NewProductService(repo, &mockAudit{})

	_, err := svc.GetProductByID(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestGetAllProducts_Pagination(t *testing.T) {
	repo := newMockProductRepo()
	repo.listItems = []domain.Product{
		activeProduct(1, "MIE-001", "Indomie", 3500),
		activeProduct(2, "KOPI-002", "Kopi Kapal Api", 12000),
	}
	repo.listTotal = 2
	svc := NewProductService(repo, &mockAudit{})

	result, err := svc.GetAllProducts(context.Background(), 1, 10, "")

	require.NoError(t, err)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, int64(2), result.Total)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 10, result.Limit)
	assert.Equal(t, 1, result.TotalPages)
	assert.Equal(t, 0, repo.lastQuery.offset)
	assert.Equal(t, 10, repo.lastQuery.limit)
}

func TestGetAllProducts_DefaultsAndOffset(t *testing.T) {
	repo := newMockProductRepo()
	repo.listTotal = 25
	svc := NewProductService(repo, &mockAudit{})

	result, err := svc.GetAllProducts(context.Background(), 3, 10, "kopi")

	require.NoError(t, err)
	assert.Equal(t, 20, repo.lastQuery.offset)
	assert.Equal(t, "kopi", repo.lastQuery.search)
	assert.Equal(t, 3, result.TotalPages)

	result, err = svc.GetAllProducts(context.Background(), 0, 0, "")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 10, result.Limit)
	assert.Equal(t, 0, repo.lastQuery.offset)
}

func TestUpdateProduct_PartialUpdateKeepsOtherFields(t *testing.T) {
	repo := newMockProductRepo(activeProduct(7, "MIE-001", "Indomie", 3500))
	audit := &mockAudit{}
	svc := NewProductService(repo, audit)

	newName := "Indomie Goreng Jumbo"
	updated, err := svc.UpdateProduct(context.Background(), 7, UpdateInput{Name: &newName})

	require.NoError(t, err)
	assert.Equal(t, newName, updated.Name)
	assert.Equal(t, "MIE-001", updated.SKU)
	assert.True(t, updated.Harga.Equal(decimal.NewFromInt(3500)))

	require.Len(t, audit.records, 1)
	rec := audit.records[0]
	assert.Equal(t, domain.ActionUpdate, rec.Action)

	before, ok := rec.Before.(domain.Product)
	require.True(t, ok)
	assert.Equal(t, "Indomie", before.Name, "before snapshot keeps prior state")

	after, ok := rec.After.(domain.Product)
	require.True(t, ok)
	assert.Equal(t, newName, after.Name)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	repo := newMockProductRepo()
	audit := &mockAudit{}
	svc := NewProductService(repo, audit)

	name := "x"
	_, err := svc.UpdateProduct(context.Background(), 99, UpdateInput{Name: &name})

	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Empty(t, audit.records)
}

func TestDeleteProduct_SoftDeletesAndAudits(t *testing.T) {
	repo := newMockProductRepo(activeProduct(7, "MIE-001", "Indomie", 3500))
	audit := &mockAudit{}
	svc := NewProductService(repo, audit)

	err := svc.DeleteProduct(context.Background(), 7)
	require.NoError(t, err)

	stored := repo.products[7]
	assert.True(t, stored.IsDeleted)
	require.NotNil(t, stored.DeletedAt)
	assert.WithinDuration(t, time.Now(), *stored.DeletedAt, time.Minute)

	require.Len(t, audit.records, 1)
	rec := audit.records[0]
	assert.Equal(t, domain.ActionDelete, rec.Action)
	assert.Nil(t, rec.After, "DELETE audit carries no after snapshot")

	before, ok := rec.Before.(domain.Product)
	require.True(t, ok)
	assert.False(t, before.IsDeleted)

	err = svc.DeleteProduct(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrProductNotFound, "second delete sees it gone")
}
