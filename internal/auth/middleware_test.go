package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"learning-service/internal/models"
)

func testRouter(issuer *TokenIssuer, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := append([]gin.HandlerFunc{Authenticate(issuer)}, extra...)
	chain = append(chain, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"actor": ActorFrom(c).ID.Hex()})
	})
	r.GET("/protected", chain...)
	return r
}

func TestAuthenticateValidToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	user := &models.User{ID: primitive.NewObjectID(), Role: models.RoleStudent}
	token, err := issuer.Generate(user)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	testRouter(issuer).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), user.ID.Hex())
}

func TestAuthenticateMissingHeader(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	testRouter(issuer).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateBadToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	testRouter(issuer).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoles(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	teacherOnly := RequireRoles(models.RoleTeacher, models.RoleAdmin)

	testCases := []struct {
		role     models.Role
		expected int
	}{
		{models.RoleTeacher, http.StatusOK},
		{models.RoleAdmin, http.StatusOK},
		{models.RoleStudent, http.StatusForbidden},
	}

	for _, tc := range testCases {
		t.Run(string(tc.role), func(t *testing.T) {
			token, err := issuer.Generate(&models.User{ID: primitive.NewObjectID(), Role: tc.role})
			require.NoError(t, err)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			testRouter(issuer, teacherOnly).ServeHTTP(w, req)

			assert.Equal(t, tc.expected, w.Code)
		})
	}
}
