package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secondchance/marketplace/internal/domain/entity"
	"github.com/secondchance/marketplace/internal/domain/repository"
	"github.com/secondchance/marketplace/internal/interface/middleware"
	"github.com/secondchance/marketplace/pkg/helpers"
)

type stubUserRepo struct {
	users map[string]*entity.User
}

func (r *stubUserRepo) Create(context.Context, *entity.User) error { return nil }
func (r *stubUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}
func (r *stubUserRepo) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, repository.ErrNotFound
}
func (r *stubUserRepo) GetByVerificationToken(context.Context, string) (*entity.User, error) {
	return nil, repository.ErrNotFound
}
func (r *stubUserRepo) Update(context.Context, *entity.User) error   { return nil }
func (r *stubUserRepo) List(context.Context) ([]*entity.User, error) { return nil, nil }
func (r *stubUserRepo) Delete(context.Context, string) error         { return nil }
func (r *stubUserRepo) Count(context.Context) (int64, error)         { return 0, nil }

func setup(t *testing.T, users map[string]*entity.User, extra ...gin.HandlerFunc) (*gin.Engine, *helpers.JWTManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	jwt := helpers.NewJWTManager("test-secret", time.Hour)

	r := gin.New()
	chain := append([]gin.HandlerFunc{middleware.Auth(&stubUserRepo{users: users}, jwt)}, extra...)
	grp := r.Group("/", chain...)
	grp.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.GetString("userID"), "role": c.GetString("userRole")})
	})
	grp.GET("/cart/:userId", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, jwt
}

func doReq(r *gin.Engine, path, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: helpers.SessionCookieName, Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	alice := &entity.User{ID: "u-1", Email: "alice@example.com", Username: "alice", Role: entity.RoleUser}

	t.Run("missing cookie", func(t *testing.T) {
		r, _ := setup(t, nil)
		w := doReq(r, "/whoami", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		r, _ := setup(t, nil)
		w := doReq(r, "/whoami", "garbage")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token for deleted user", func(t *testing.T) {
		r, jwt := setup(t, map[string]*entity.User{})
		token, _, err := jwt.Issue("u-gone", "gone@example.com", "ghost")
		require.NoError(t, err)
		w := doReq(r, "/whoami", token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid session resolves identity", func(t *testing.T) {
		r, jwt := setup(t, map[string]*entity.User{"u-1": alice})
		token, _, err := jwt.Issue(alice.ID, alice.Email, alice.Username)
		require.NoError(t, err)
		w := doReq(r, "/whoami", token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"id":"u-1"`)
	})
}

func TestAdminOnly(t *testing.T) {
	t.Run("user role forbidden", func(t *testing.T) {
		u := &entity.User{ID: "u-1", Role: entity.RoleUser}
		r, jwt := setup(t, map[string]*entity.User{"u-1": u}, middleware.AdminOnly())
		token, _, err := jwt.Issue(u.ID, u.Email, u.Username)
		require.NoError(t, err)
		w := doReq(r, "/whoami", token)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin role passes", func(t *testing.T) {
		u := &entity.User{ID: "u-1", Role: entity.RoleAdmin}
		r, jwt := setup(t, map[string]*entity.User{"u-1": u}, middleware.AdminOnly())
		token, _, err := jwt.Issue(u.ID, u.Email, u.Username)
		require.NoError(t, err)
		w := doReq(r, "/whoami", token)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestOwnCartOnly(t *testing.T) {
	u := &entity.User{ID: "u-1", Role: entity.RoleUser}

	t.Run("own cart allowed", func(t *testing.T) {
		r, jwt := setup(t, map[string]*entity.User{"u-1": u}, middleware.OwnCartOnly())
		token, _, err := jwt.Issue(u.ID, u.Email, u.Username)
		require.NoError(t, err)
		w := doReq(r, "/cart/u-1", token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("someone else's cart forbidden", func(t *testing.T) {
		r, jwt := setup(t, map[string]*entity.User{"u-1": u}, middleware.OwnCartOnly())
		token, _, err := jwt.Issue(u.ID, u.Email, u.Username)
		require.NoError(t, err)
		w := doReq(r, "/cart/u-2", token)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
