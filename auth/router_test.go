package auth

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"travelworld/db"
	"travelworld/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
)

func setupRouter(t *testing.T) (*gin.Engine, models.User, models.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, db.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared&_foreign_keys=1"), zap.NewNop()))
	sqlDB, err := db.Instance.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, models.Init())

	user, err := models.UserCreate("Jane", "Doe", "555", "jane@example.com", "secret")
	require.NoError(t, err)
	_, err = models.SeedAdmin("admin@example.com", "admin")
	require.NoError(t, err)
	admin, err := models.UserByEmail("admin@example.com")
	require.NoError(t, err)

	router := gin.New()
	router.SetHTMLTemplate(template.Must(template.New("forbidden.tmpl").Parse("forbidden")))
	router.Use(sessions.Sessions("session", cookie.NewStore([]byte("test key"))))
	router.GET("/as/:id", func(c *gin.Context) {
		id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
		u, err := models.UserByID(id)
		if err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		_ = LoadSession(c).LoginUser(&u)
		c.Status(http.StatusOK)
	})
	router.GET("/out", func(c *gin.Context) {
		_ = LoadSession(c).LogoutUser()
		c.Status(http.StatusOK)
	})
	authRouter := &Router{Base: router}
	authRouter.GET("/member", func(c *gin.Context, user *models.User) {
		c.String(http.StatusOK, user.Email)
	})
	authRouter.POST("/admin", func(c *gin.Context, user *models.User) {
		c.String(http.StatusOK, "admin "+user.Email)
	}, models.RoleAdmin)
	return router, user, admin
}

func do(router *gin.Engine, method, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func loginAs(t *testing.T, router *gin.Engine, id uint64) []*http.Cookie {
	t.Helper()
	w := do(router, http.MethodGet, "/as/"+strconv.FormatUint(id, 10), nil)
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func TestRouter_Anonymous(t *testing.T) {
	router, _, _ := setupRouter(t)

	w := do(router, http.MethodGet, "/member", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = do(router, http.MethodPost, "/admin", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "forbidden", w.Body.String())
}

func TestRouter_User(t *testing.T) {
	router, user, _ := setupRouter(t)
	cookies := loginAs(t, router, user.ID)

	w := do(router, http.MethodGet, "/member", cookies)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jane@example.com", w.Body.String())

	w = do(router, http.MethodPost, "/admin", cookies)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRouter_Admin(t *testing.T) {
	router, _, admin := setupRouter(t)
	cookies := loginAs(t, router, admin.ID)

	w := do(router, http.MethodPost, "/admin", cookies)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin admin@example.com", w.Body.String())

	w = do(router, http.MethodGet, "/member", cookies)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_Logout(t *testing.T) {
	router, user, _ := setupRouter(t)
	cookies := loginAs(t, router, user.ID)

	w := do(router, http.MethodGet, "/out", cookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(router, http.MethodGet, "/member", w.Result().Cookies())
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestSession_DeletedUser(t *testing.T) {
	router, user, _ := setupRouter(t)
	cookies := loginAs(t, router, user.ID)
	require.NoError(t, db.Instance.Delete(&models.User{}, user.ID).Error)

	w := do(router, http.MethodGet, "/member", cookies)
	assert.Equal(t, http.StatusFound, w.Code)
}
