package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/medifind/internal/models"
)

func TestContextRoundTrip(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	c := Caller{ID: 7, Role: models.RolePharmacy}
	got, ok := FromContext(WithCaller(context.Background(), c))
	assert.True(t, ok)
	assert.Equal(t, c, got)
}

func TestFromUserNormalizesAlias(t *testing.T) {
	c := FromUser(&models.User{ID: 3, Email: "a@b.c", PasswordHash: "x", Role: models.RolePharmacyAdmin})

	assert.Equal(t, models.RolePharmacy, c.Role)
	assert.True(t, c.HasRole(models.RolePharmacy))
	assert.True(t, c.HasRole(models.RolePharmacyAdmin))
	assert.False(t, c.HasRole(models.RoleAdmin, models.RoleUser))
	assert.False(t, c.IsAdmin())
}
