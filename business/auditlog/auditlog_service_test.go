package auditlog

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"klontong/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAuditRepo struct {
	err     error
	entries []domain.AuditLog
	queries []string
	found   []domain.AuditLog
}

func (m *mockAuditRepo) Create(ctx context.Context, entry *domain.AuditLog) error {
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockAuditRepo) FindByEntity(ctx context.Context, entity, entityID string) ([]domain.AuditLog, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.queries = append(m.queries, entity+"/"+entityID)
	return m.found, nil
}

func TestRecord_AppendsOneRow(t *testing.T) {
	repo := &mockAuditRepo{}
	svc := NewAuditLogService(repo)

	after := map[string]interface{}{"name": "Indomie Goreng"}

	entry, err := svc.Record(context.Background(), "Product", "7", domain.ActionCreate, nil, after)

	require.NoError(t, err)
	require.Len(t, repo.entries, 1)
	assert.Equal(t, "Product", entry.Entity)
	assert.Equal(t, "7", entry.EntityID)
	assert.Equal(t, domain.ActionCreate, entry.Action)
	assert.Nil(t, entry.Before)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(entry.After, &got))
	assert.Equal(t, "Indomie Goreng", got["name"])
}

func TestRecord_NilSnapshotsStayNull(t *testing.T) {
	repo := &mockAuditRepo{}
	svc := NewAuditLogService(repo)

	entry, err := svc.Record(context.Background(), "Product", "7", domain.ActionDelete, map[string]string{"sku": "X"}, nil)

	require.NoError(t, err)
	assert.NotNil(t, entry.Before)
	assert.Nil(t, entry.After, "DELETE rows carry no after snapshot")
}

func TestRecord_RejectsBadInput(t *testing.T) {
	svc := NewAuditLogService(&mockAuditRepo{})

	testCases := []struct {
		name     string
		entity   string
		entityID string
		action   domain.AuditAction
	}{
		{"missing entity", "", "1", domain.ActionCreate},
		{"missing entity id", "Product", "", domain.ActionCreate},
		{"unknown action", "Product", "1", domain.AuditAction("UPSERT")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			entry, err := svc.Record(context.Background(), tc.entity, tc.entityID, tc.action, nil, nil)
			assert.Error(t, err)
			assert.Nil(t, entry)
		})
	}
}

func TestRecord_StoreErrorPropagatesUnmodified(t *testing.T) {
	storeErr := errors.New("insert failed")
	svc := NewAuditLogService(&mockAuditRepo{err: storeErr})

	entry, err := svc.Record(context.Background(), "Product", "1", domain.ActionUpdate, nil, map[string]int{"n": 1})

	assert.Equal(t, storeErr, err)
	assert.Nil(t, entry)
}

func TestRecord_CancelledContext(t *testing.T) {
	svc := NewAuditLogService(&mockAuditRepo{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Record(ctx, "Product", "1", domain.ActionCreate, nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFindByEntity(t *testing.T) {
	repo := &mockAuditRepo{found: []domain.AuditLog{
		{Entity: "Product", EntityID: "7", Action: domain.ActionCreate},
		{Entity: "Product", EntityID: "7", Action: domain.ActionUpdate},
	}}
	svc := NewAuditLogService(repo)

	entries, err := svc.FindByEntity(context.Background(), "Product", "7")

	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, []string{"Product/7"}, repo.queries)

	_, err = svc.FindByEntity(context.Background(), "", "7")
	assert.Error(t, err)

	_, err = svc.FindByEntity(context.Background(), "Product", "")
	assert.Error(t, err)
}
