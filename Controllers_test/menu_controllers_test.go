package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/foodshop/backend/controllers"
	"github.com/foodshop/backend/middlewares"
	"github.com/foodshop/backend/models"
	"github.com/foodshop/backend/services"
)

func setupMenuRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	router := gin.New()
	itemCtrl := controllers.NewItemController(db)
	uploader := services.NewUploader(t.TempDir(), "http://localhost:8080")
	adminMenuCtrl := controllers.NewAdminMenuController(db, uploader)
	adminOnly := middlewares.RequireRoles(models.RoleAdmin)

	router.GET("/api/items", itemCtrl.ListItems)

	menu := router.Group("/api/admin/menu")
	menu.Use(middlewares.Auth(), adminOnly)
	{
		menu.GET("", adminMenuCtrl.ListItems)
		menu.POST("/save", adminMenuCtrl.SaveItem)
		menu.PATCH("/:id", adminMenuCtrl.UpdateItem)
		menu.DELETE("/:id", adminMenuCtrl.DeleteItem)
	}
	return router
}

// postForm sends a multipart form the way the admin dashboard does.
func postForm(t *testing.T, router *gin.Engine, method, url, token string, fields map[string]string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var parsed map[string]interface{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &parsed); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
	}
	return w, parsed
}

func TestAdminMenuCRUD(t *testing.T) {
	db := setupTestDB(t)
	router := setupMenuRouter(t, db)
	_, adminToken := seedUser(t, db, "menu-admin@test.com", models.RoleAdmin)
	_, userToken := seedUser(t, db, "menu-user@test.com", models.RoleUser)

	// Non-admin is rejected before any handler runs.
	w, _ := postForm(t, router, "POST", "/api/admin/menu/save", userToken, map[string]string{
		"title": "x", "description": "y", "price": "1",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Create.
	w, resp := postForm(t, router, "POST", "/api/admin/menu/save", adminToken, map[string]string{
		"title":       "Carbonara",
		"description": "classic",
		"price":       "11.5",
		"category":    "pasta",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	data := dataOf(t, resp)
	assert.Equal(t, "Carbonara", data["title"])
	itemID := uint(data["id"].(float64))

	// Missing required fields.
	w, resp = postForm(t, router, "POST", "/api/admin/menu/save", adminToken, map[string]string{
		"title": "incomplete",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Title, description, and price are required", resp["message"])

	// Partial update keeps absent fields.
	w, resp = postForm(t, router, "PATCH", fmt.Sprintf("/api/admin/menu/%d", itemID), adminToken, map[string]string{
		"price": "12.0",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	data = dataOf(t, resp)
	assert.Equal(t, "Carbonara", data["title"])
	assert.Equal(t, 12.0, data["price"])

	// Delete.
	w, _ = postForm(t, router, "DELETE", fmt.Sprintf("/api/admin/menu/%d", itemID), adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Item{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestPublicItemListing(t *testing.T) {
	db := setupTestDB(t)
	router := setupMenuRouter(t, db)

	seed := []models.Item{
		{Title: "Margherita Pizza", Description: "d", Price: 9, Category: "pizza"},
		{Title: "Diavola Pizza", Description: "d", Price: 12, Category: "pizza"},
		{Title: "Caesar Salad", Description: "d", Price: 7, Category: "salad"},
		{Title: "Truffle Pasta", Description: "d", Price: 60, Category: "pasta"},
	}
	for i := range seed {
		assert.NoError(t, db.Create(&seed[i]).Error)
	}

	// Default price ceiling hides the truffle pasta.
	w, resp := doJSON(t, router, "GET", "/api/items", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), resp["totalCount"])
	assert.Equal(t, float64(1), resp["page"])

	// Case-insensitive substring search.
	w, resp = doJSON(t, router, "GET", "/api/items?search=pizza", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), resp["totalCount"])

	// Category filter.
	w, resp = doJSON(t, router, "GET", "/api/items?categories=salad,pasta&maxPrice=100", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), resp["totalCount"])

	// Price sort ascending.
	w, resp = doJSON(t, router, "GET", "/api/items?sort=priceLowHigh&maxPrice=100", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	items := resp["data"].([]interface{})
	first := items[0].(map[string]interface{})
	assert.Equal(t, "Caesar Salad", first["title"])

	// Pagination.
	w, resp = doJSON(t, router, "GET", "/api/items?limit=2&page=2&maxPrice=100", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), resp["totalPages"])
	assert.Equal(t, float64(2), resp["page"])
	assert.Len(t, resp["data"].([]interface{}), 2)
}
