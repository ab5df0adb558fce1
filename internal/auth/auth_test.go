package auth

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"foodcost-backend/internal/config"
	"foodcost-backend/internal/database"
	"foodcost-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testCfg = &config.Config{JWTSecret: "0123456789abcdef0123456789abcdef"}

func setupDB(t *testing.T) models.User {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	org := models.Organization{Name: "Lokanta A.Ş."}
	require.NoError(t, db.Create(&org).Error)
	outlet := models.Outlet{OrganizationID: org.ID, Name: "Kadıköy"}
	require.NoError(t, db.Create(&outlet).Error)

	hash, err := bcrypt.GenerateFromPassword([]byte("gizli-sifre"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{
		OrganizationID: org.ID,
		OutletID:       &outlet.ID,
		Name:           "Ayşe",
		Email:          "ayse@example.com",
		PasswordHash:   string(hash),
		Role:           models.RoleOutletManager,
	}
	require.NoError(t, db.Omit("Organization", "Outlet").Create(&user).Error)
	return user
}

func newApp() *fiber.App {
	app := fiber.New()
	app.Post("/login", LoginHandler(testCfg))
	api := app.Group("/api", JWTMiddleware(testCfg))
	api.Get("/me", MeHandler())
	api.Get("/admin", RequireRole(models.RoleOrgAdmin), func(c *fiber.Ctx) error { return c.SendStatus(200) })
	return app
}

func login(t *testing.T, app *fiber.App, password string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("POST", "/login",
		strings.NewReader(`{"email":" AYSE@example.com ","password":"`+password+`"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var body struct {
		Token string `json:"token"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp.StatusCode, body.Token
}

func TestLoginAndMe(t *testing.T) {
	user := setupDB(t)
	app := newApp()

	status, token := login(t, app, "gizli-sifre")
	require.Equal(t, 200, status)
	require.NotEmpty(t, token)

	req := httptest.NewRequest("GET", "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var me map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&me))
	assert.EqualValues(t, user.OrganizationID, me["organization_id"])
	assert.EqualValues(t, *user.OutletID, me["outlet_id"])
	assert.Equal(t, "Kadıköy", me["outlet"].(map[string]any)["name"])

	req = httptest.NewRequest("GET", "/api/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)
}

func TestLoginWrongPassword(t *testing.T) {
	setupDB(t)
	status, token := login(t, newApp(), "yanlis")
	assert.Equal(t, 401, status)
	assert.Empty(t, token)
}

func TestMiddlewareRejectsBadTokens(t *testing.T) {
	app := newApp()
	other, err := GenerateToken("baska-bir-secret-baska-bir-secret", &models.User{ID: 1, OrganizationID: 1})
	require.NoError(t, err)
	orphan, err := GenerateToken(testCfg.JWTSecret, &models.User{ID: 1})
	require.NoError(t, err)

	for name, header := range map[string]string{
		"missing":      "",
		"format":       "Token abc",
		"signature":    "Bearer " + other,
		"organization": "Bearer " + orphan,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/admin", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, 401, resp.StatusCode)
		})
	}
}
