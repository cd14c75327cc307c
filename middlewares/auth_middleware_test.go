package middlewares

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JimmyMcBride/nutrition-tracker-be/config"
	"github.com/JimmyMcBride/nutrition-tracker-be/models"
	"github.com/JimmyMcBride/nutrition-tracker-be/utils"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupAuthTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "middleware-test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	config.DB = db

	router := gin.New()
	router.GET("/whoami", AuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetUint("userID")})
	})
	return router
}

func serveAuth(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	router.ServeHTTP(recorder, req)
	return recorder
}

func whoamiUserID(t *testing.T, recorder *httptest.ResponseRecorder) uint {
	t.Helper()
	var body struct {
		UserID uint `json:"user_id"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body.UserID
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	router := setupAuthTest(t)

	if code := serveAuth(router, "").Code; code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without Authorization header, got %d", code)
	}
	if code := serveAuth(router, "Token abc").Code; code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for non-bearer scheme, got %d", code)
	}
}

func TestAuthMiddlewareRejectsGarbageToken(t *testing.T) {
	router := setupAuthTest(t)

	if code := serveAuth(router, "Bearer not-a-jwt").Code; code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for malformed token, got %d", code)
	}
}

func TestAuthMiddlewareRejectsWrongSecret(t *testing.T) {
	router := setupAuthTest(t)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": 1,
		"exp":    time.Now().Add(time.Hour).Unix(),
	})
	signed, err := forged.SignedString([]byte("some-other-secret"))
	if err != nil {
		t.Fatalf("sign forged token: %v", err)
	}

	if code := serveAuth(router, "Bearer "+signed).Code; code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for token signed with wrong secret, got %d", code)
	}
}

func TestAuthMiddlewareResolvesUserIDClaim(t *testing.T) {
	router := setupAuthTest(t)

	token, err := utils.GenerateJWT(42, "claims@example.com")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	recorder := serveAuth(router, "Bearer "+token)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200 for valid token, got %d", recorder.Code)
	}
	if id := whoamiUserID(t, recorder); id != 42 {
		t.Fatalf("expected userID 42 from claim, got %d", id)
	}
}

func TestAuthMiddlewareFallsBackToEmailLookup(t *testing.T) {
	router := setupAuthTest(t)

	user := models.User{
		Email:    "fallback@example.com",
		Password: "irrelevant",
		HeightCm: 170,
		Sex:      "female",
		DOB:      time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := config.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	emailOnly := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": user.Email,
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := emailOnly.SignedString([]byte("middleware-test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	recorder := serveAuth(router, "Bearer "+signed)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200 for email-claim token, got %d", recorder.Code)
	}
	if id := whoamiUserID(t, recorder); id != user.ID {
		t.Fatalf("expected userID %d from email lookup, got %d", user.ID, id)
	}
}

func TestAuthMiddlewareRejectsUnknownEmail(t *testing.T) {
	router := setupAuthTest(t)

	emailOnly := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "ghost@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := emailOnly.SignedString([]byte("middleware-test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if code := serveAuth(router, "Bearer "+signed).Code; code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown email claim, got %d", code)
	}
}
