package lead

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kycbridge/pkg/sentinel"
)

func TestInMemoryStore_CreateAndFind(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	l := New("Ana", "Lopez", "Ana.Lopez@Example.com", " 5215512345678 ", TypeIndividual, "", time.Now())
	require.NoError(t, store.Create(ctx, l))

	got, err := store.FindByExternalID(ctx, l.ExternalUserID)
	require.NoError(t, err)
	assert.Equal(t, "ana.lopez@example.com", got.Email)
	assert.Equal(t, "5215512345678", got.Phone)
	assert.Equal(t, StatusCreated, got.Status)
	require.Len(t, got.EventHistory, 1)
	assert.Equal(t, "Lead created locally", got.EventHistory[0].Details)

	byEmail, err := store.FindByEmail(ctx, "ANA.LOPEZ@example.com")
	require.NoError(t, err)
	assert.Equal(t, l.ID, byEmail.ID)

	byPhone, err := store.FindByPhone(ctx, "5215512345678")
	require.NoError(t, err)
	assert.Equal(t, l.ID, byPhone.ID)
}

func TestInMemoryStore_DuplicateEmailPhone(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	first := New("Ana", "Lopez", "ana@example.com", "5215512345678", TypeIndividual, "", time.Now())
	require.NoError(t, store.Create(ctx, first))

	dup := New("Ana Maria", "Lopez", "ana@example.com", "5215512345678", TypeIndividual, "", time.Now())
	err := store.Create(ctx, dup)
	assert.ErrorIs(t, err, sentinel.ErrDuplicate)

	// Same email with a different phone is a distinct lead.
	other := New("Ana", "Lopez", "ana@example.com", "5215599999999", TypeIndividual, "", time.Now())
	assert.NoError(t, store.Create(ctx, other))
}

func TestInMemoryStore_UpdateMissing(t *testing.T) {
	store := NewInMemoryStore()
	l := New("Ana", "Lopez", "ana@example.com", "5215512345678", TypeIndividual, "", time.Now())
	err := store.Update(context.Background(), l)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestInMemoryStore_CloneIsolation(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	l := New("Ana", "Lopez", "ana@example.com", "5215512345678", TypeIndividual, "", time.Now())
	require.NoError(t, store.Create(ctx, l))

	got, err := store.FindByExternalID(ctx, l.ExternalUserID)
	require.NoError(t, err)
	got.Status = "MUTATED"
	got.EventHistory[0].Details = "mutated"

	fresh, err := store.FindByExternalID(ctx, l.ExternalUserID)
	require.NoError(t, err)
	assert.Equal(t, StatusCreated, fresh.Status)
	assert.Equal(t, "Lead created locally", fresh.EventHistory[0].Details)
}

func TestInMemoryStore_ListOrdered(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()
	base := time.Now()

	newer := New("B", "B", "b@example.com", "2", TypeIndividual, "", base.Add(time.Minute))
	older := New("A", "A", "a@example.com", "1", TypeCompany, "Acme SA", base)
	require.NoError(t, store.Create(ctx, newer))
	require.NoError(t, store.Create(ctx, older))

	all, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a@example.com", all[0].Email)
	assert.Equal(t, "b@example.com", all[1].Email)
}
