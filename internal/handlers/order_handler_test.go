package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	iauth "github.com/freshmart/storefront/internal/auth"
	"github.com/freshmart/storefront/internal/database/testutil"
	"github.com/freshmart/storefront/internal/middleware"
	"github.com/freshmart/storefront/internal/models"
	"github.com/freshmart/storefront/internal/services"
)

type orderTestEnv struct {
	db     *gorm.DB
	engine *gin.Engine
	user   *models.User
	token  string
	apples *models.Product
}

func setupOrderTestEnv(t *testing.T) orderTestEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db := testutil.MustOpenTestDB(t)

	user := &models.User{
		Email:           "buyer@example.com",
		Password:        "irrelevant-hash",
		IsEmailVerified: true,
	}
	require.NoError(t, db.Create(user).Error)

	apples := &models.Product{Name: "Fresh Apples", Price: 120, Category: "fruits", Stock: 10}
	require.NoError(t, db.Create(apples).Error)

	jwtSvc, err := iauth.NewJWTService(iauth.JWTConfig{Secret: "order-secret", Issuer: "storefront-test"})
	require.NoError(t, err)

	token, err := jwtSvc.GenerateAccessToken(iauth.AccessTokenInput{UserID: user.ID, Email: user.Email})
	require.NoError(t, err)

	orderSvc, err := services.NewOrderService(db, nil)
	require.NoError(t, err)

	handler, err := NewOrderHandler(orderSvc)
	require.NoError(t, err)

	engine := gin.New()
	orders := engine.Group("/api/orders")
	orders.Use(middleware.Auth(jwtSvc))
	orders.POST("", handler.Create)
	orders.GET("", handler.List)
	orders.GET("/:id", handler.Get)

	return orderTestEnv{db: db, engine: engine, user: user, token: token, apples: apples}
}

func (env orderTestEnv) request(t *testing.T, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.engine.ServeHTTP(rec, req)
	return rec
}

func TestOrderEndpointsRequireAuth(t *testing.T) {
	env := setupOrderTestEnv(t)

	rec := env.request(t, http.MethodGet, "/api/orders", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.request(t, http.MethodGet, "/api/orders", "not-a-jwt", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
}

func TestOrderEndpointsCreateAndFetch(t *testing.T) {
	env := setupOrderTestEnv(t)

	rec := env.request(t, http.MethodPost, "/api/orders", env.token, gin.H{
		"items": []gin.H{
			{"productId": env.apples.ID, "quantity": 2},
		},
		"shippingAddress": "42 Market Street",
		"shippingCity":    "Pune",
		"shippingZipCode": "411001",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	resp := decodeResponse(t, rec)
	require.True(t, resp.Success)
	data := resp.Data.(map[string]any)
	require.Equal(t, "pending", data["status"])
	require.InDelta(t, 240, data["total_amount"].(float64), 0.001)
	orderID := data["id"].(string)
	require.NotEmpty(t, orderID)

	rec = env.request(t, http.MethodGet, "/api/orders/"+orderID, env.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.request(t, http.MethodGet, "/api/orders", env.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decodeResponse(t, rec)
	list := resp.Data.([]any)
	require.Len(t, list, 1)
}

func TestOrderEndpointsValidation(t *testing.T) {
	env := setupOrderTestEnv(t)

	rec := env.request(t, http.MethodPost, "/api/orders", env.token, gin.H{
		"shippingAddress": "42 Market Street",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.request(t, http.MethodPost, "/api/orders", env.token, gin.H{
		"items": []gin.H{
			{"productId": env.apples.ID, "quantity": 0},
		},
		"shippingAddress": "42 Market Street",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.request(t, http.MethodPost, "/api/orders", env.token, gin.H{
		"items": []gin.H{
			{"productId": env.apples.ID, "quantity": 500},
		},
		"shippingAddress": "42 Market Street",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.Contains(t, resp.Error.Message, "insufficient stock")
}

func TestOrderEndpointsMissingOrder(t *testing.T) {
	env := setupOrderTestEnv(t)

	rec := env.request(t, http.MethodGet, "/api/orders/no-such-order", env.token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeResponse(t, rec)
	require.Equal(t, "ORDER_NOT_FOUND", resp.Error.Code)
}
