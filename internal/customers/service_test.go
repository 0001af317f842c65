package customers

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/stockledger-backend/pkg/db/dbtest"
	pkgerrors "github.com/angelmondragon/stockledger-backend/pkg/errors"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(NewRepository(dbtest.Open(t)))
	require.NoError(t, err)
	return svc
}

func TestCustomerLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()

	alice, err := svc.Create(ctx, owner, CreateCustomerInput{Name: "Alice", Address: "1 Main St", Mobile: "555-0100"})
	require.NoError(t, err)
	assert.Equal(t, owner, alice.UserID)
	assert.WithinDuration(t, time.Now(), alice.CreatedAt, time.Minute)

	newAddress := "2 Side St"
	updated, err := svc.Update(ctx, alice.ID, UpdateCustomerInput{Address: &newAddress})
	require.NoError(t, err)
	assert.Equal(t, "Alice", updated.Name)
	assert.Equal(t, "2 Side St", updated.Address)
	assert.Equal(t, "555-0100", updated.Mobile)

	require.NoError(t, svc.Delete(ctx, alice.ID))
	_, err = svc.Get(ctx, alice.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestCustomerSearch(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, uuid.New(), CreateCustomerInput{Name: "Alice", Address: "Harbour Road", Mobile: "555-0100"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, uuid.New(), CreateCustomerInput{Name: "Bob", Address: "Hill Lane", Mobile: "555-0199"})
	require.NoError(t, err)

	byMobile, err := svc.List(ctx, "0199")
	require.NoError(t, err)
	require.Len(t, byMobile, 1)
	assert.Equal(t, "Bob", byMobile[0].Name)

	byAddress, err := svc.List(ctx, "harbour")
	require.NoError(t, err)
	require.Len(t, byAddress, 1)
	assert.Equal(t, "Alice", byAddress[0].Name)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCustomerMissingReturnsNotFound(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	name := "Nobody"

	_, err := svc.Update(ctx, uuid.New(), UpdateCustomerInput{Name: &name})
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	err = svc.Delete(ctx, uuid.New())
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
