package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"learning-service/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	user := &models.User{
		ID:   primitive.NewObjectID(),
		Role: models.RoleTeacher,
	}

	token, err := issuer.Generate(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	actor, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, actor.ID)
	assert.Equal(t, models.RoleTeacher, actor.Role)
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("secret-a", time.Hour)
	other := NewTokenIssuer("secret-b", time.Hour)

	token, err := issuer.Generate(&models.User{ID: primitive.NewObjectID(), Role: models.RoleStudent})
	require.NoError(t, err)

	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", -time.Minute)

	token, err := issuer.Generate(&models.User{ID: primitive.NewObjectID(), Role: models.RoleStudent})
	require.NoError(t, err)

	_, err = issuer.Parse(token)
	assert.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	_, err := issuer.Parse("not-a-token")
	assert.Error(t, err)
}

func TestActorIsAdmin(t *testing.T) {
	assert.True(t, Actor{Role: models.RoleAdmin}.IsAdmin())
	assert.False(t, Actor{Role: models.RoleTeacher}.IsAdmin())
	assert.False(t, Actor{Role: models.RoleStudent}.IsAdmin())
}
