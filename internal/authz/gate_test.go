package authz

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verlyx/hub-server/internal/models"
	"github.com/verlyx/hub-server/internal/storage"
)

type fakeMemberships struct {
	roles  map[uuid.UUID]models.Role
	owner  uuid.UUID
	err    error
	cmpErr error
}

func (f *fakeMemberships) GetMembershipRole(ctx context.Context, userID, companyID uuid.UUID) (models.Role, error) {
	if f.err != nil {
		return "", f.err
	}
	role, ok := f.roles[userID]
	if !ok {
		return "", storage.ErrNotFound
	}
	return role, nil
}

func (f *fakeMemberships) GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	if f.cmpErr != nil {
		return nil, f.cmpErr
	}
	c := &models.Company{OwnerUserID: f.owner}
	c.ID = id
	return c, nil
}

func TestGateRequire(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	t.Run("empty requirement allows everyone", func(t *testing.T) {
		gate := NewGate(&fakeMemberships{})
		assert.NoError(t, gate.Require(ctx, nil, nil))
		assert.NoError(t, gate.Require(ctx, nil, &companyID))
	})

	t.Run("nil principal is unauthenticated", func(t *testing.T) {
		gate := NewGate(&fakeMemberships{})

		err := gate.Require(ctx, nil, &companyID, models.RoleAdmin)
		require.Error(t, err)

		var authzErr *Error
		require.True(t, errors.As(err, &authzErr))
		assert.Equal(t, KindUnauthenticated, authzErr.Kind)
	})

	t.Run("member with required role passes", func(t *testing.T) {
		userID := uuid.New()
		gate := NewGate(&fakeMemberships{
			roles: map[uuid.UUID]models.Role{userID: models.RoleAdmin},
		})

		p := &Principal{UserID: userID}
		assert.NoError(t, gate.Require(ctx, p, &companyID, models.RoleOwner, models.RoleAdmin))
	})

	t.Run("member outside the required set is rejected", func(t *testing.T) {
		userID := uuid.New()
		gate := NewGate(&fakeMemberships{
			roles: map[uuid.UUID]models.Role{userID: models.RoleGuest},
		})

		p := &Principal{UserID: userID}
		err := gate.Require(ctx, p, &companyID, models.RoleOwner, models.RoleAdmin)
		require.Error(t, err)

		var authzErr *Error
		require.True(t, errors.As(err, &authzErr))
		assert.Equal(t, KindForbidden, authzErr.Kind)
	})

	t.Run("company owner bypasses every role requirement", func(t *testing.T) {
		ownerID := uuid.New()
		gate := NewGate(&fakeMemberships{owner: ownerID})
		p := &Principal{UserID: ownerID}

		for _, role := range []models.Role{
			models.RoleOwner, models.RoleAdmin, models.RoleManager,
			models.RoleOperative, models.RoleFinance, models.RoleMarketing, models.RoleGuest,
		} {
			assert.NoError(t, gate.Require(ctx, p, &companyID, role), "owner should pass requirement %s", role)
		}
	})

	t.Run("non member non owner is rejected", func(t *testing.T) {
		gate := NewGate(&fakeMemberships{owner: uuid.New()})
		p := &Principal{UserID: uuid.New()}

		err := gate.Require(ctx, p, &companyID, models.RoleOperative)
		assert.Error(t, err)
	})

	t.Run("lookup failure keeps its cause but reads as forbidden", func(t *testing.T) {
		boom := errors.New("connection refused")
		gate := NewGate(&fakeMemberships{err: boom})
		p := &Principal{UserID: uuid.New()}

		err := gate.Require(ctx, p, &companyID, models.RoleAdmin)
		require.Error(t, err)

		var authzErr *Error
		require.True(t, errors.As(err, &authzErr))
		assert.Equal(t, KindForbidden, authzErr.Kind)
		assert.True(t, errors.Is(err, boom))
	})

	t.Run("legacy role is used without company context", func(t *testing.T) {
		gate := NewGate(&fakeMemberships{})

		admin := &Principal{UserID: uuid.New(), LegacyRole: "admin"}
		assert.NoError(t, gate.Require(ctx, admin, nil, models.Role("admin")))

		user := &Principal{UserID: uuid.New(), LegacyRole: "user"}
		assert.Error(t, gate.Require(ctx, user, nil, models.Role("admin")))
	})
}

func TestGateHasAccess(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	t.Run("member has access", func(t *testing.T) {
		userID := uuid.New()
		gate := NewGate(&fakeMemberships{
			roles: map[uuid.UUID]models.Role{userID: models.RoleGuest},
		})

		ok, err := gate.HasAccess(ctx, &Principal{UserID: userID}, companyID)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("owner without membership row has access", func(t *testing.T) {
		ownerID := uuid.New()
		gate := NewGate(&fakeMemberships{owner: ownerID})

		ok, err := gate.HasAccess(ctx, &Principal{UserID: ownerID}, companyID)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("stranger has no access", func(t *testing.T) {
		gate := NewGate(&fakeMemberships{owner: uuid.New()})

		ok, err := gate.HasAccess(ctx, &Principal{UserID: uuid.New()}, companyID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("membership lookup failure falls through to the owner check", func(t *testing.T) {
		ownerID := uuid.New()
		gate := NewGate(&fakeMemberships{err: errors.New("connection refused"), owner: ownerID})

		ok, err := gate.HasAccess(ctx, &Principal{UserID: ownerID}, companyID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = gate.HasAccess(ctx, &Principal{UserID: uuid.New()}, companyID)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
