package router

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
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pantryloft/backend/config"
	"github.com/pantryloft/backend/internal/database"
	"github.com/pantryloft/backend/internal/service"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db, ""))

	uploadDir := t.TempDir()
	store, err := service.NewLocalStore(uploadDir)
	require.NoError(t, err)

	cfg := &config.Config{
		JWTSecret: "test-secret",
		UploadDir: uploadDir,
	}
	return SetupRouter(cfg, db, nil, store)
}

func doJSON(router *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func signup(t *testing.T, router *gin.Engine, name, email, password string) string {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"email":%q,"password":%q}`, name, email, password)
	w := doJSON(router, "POST", "/signup", body, "")
	require.Equal(t, http.StatusCreated, w.Code, "signup failed: %s", w.Body.String())

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	token, _ := resp["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestSignupLoginRecipeFlow(t *testing.T) {
	router := setupTestRouter(t)

	// Signup returns id, name, email and a usable token.
	w := doJSON(router, "POST", "/signup", `{"name":"A","email":"a@x.com","password":"secret1"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)
	var signupResp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &signupResp))
	assert.NotEmpty(t, signupResp["id"])
	assert.Equal(t, "A", signupResp["name"])
	assert.Equal(t, "a@x.com", signupResp["email"])
	assert.NotEmpty(t, signupResp["token"])

	// Login with the same credentials yields a fresh token.
	w = doJSON(router, "POST", "/login", `{"email":"a@x.com","password":"secret1"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	var loginResp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))
	token, _ := loginResp["token"].(string)
	require.NotEmpty(t, token)
	assert.Len(t, loginResp, 1, "login must return the token only")

	// Create a recipe with that token.
	w = doJSON(router, "POST", "/recipes",
		`{"title":"Soup","description":"hot","ingredients":"water","instructions":"boil"}`, token)
	require.Equal(t, http.StatusCreated, w.Code)
	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	recipeID, _ := created["id"].(string)
	assert.NotEmpty(t, recipeID)
	assert.Equal(t, "Soup", created["title"])
	assert.NotEmpty(t, created["createdAt"])

	// The list contains exactly that recipe.
	w = doJSON(router, "GET", "/recipes", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, recipeID, list[0]["id"])

	// Fetch by id round-trips every field.
	w = doJSON(router, "GET", "/recipes/"+recipeID, "", token)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, "Soup", fetched["title"])
	assert.Equal(t, "hot", fetched["description"])
	assert.Equal(t, "water", fetched["ingredients"])
	assert.Equal(t, "boil", fetched["instructions"])

	// Update succeeds with a confirmation message.
	w = doJSON(router, "PUT", "/recipes/"+recipeID,
		`{"title":"Cold Soup","description":"cold","ingredients":"water, ice","instructions":"chill"}`, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "message")

	w = doJSON(router, "GET", "/recipes/"+recipeID, "", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Cold Soup")
}

func TestSignupReportsAllViolations(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(router, "POST", "/signup", `{"name":"","email":"nope","password":"abc"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Errors []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Errors, 3)
}

func TestSignupDuplicateEmail(t *testing.T) {
	router := setupTestRouter(t)
	signup(t, router, "A", "a@x.com", "secret1")

	w := doJSON(router, "POST", "/signup", `{"name":"B","email":"a@x.com","password":"different"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Email already in use")
}

func TestLoginFailures(t *testing.T) {
	router := setupTestRouter(t)
	signup(t, router, "A", "a@x.com", "secret1")

	w := doJSON(router, "POST", "/login", `{"email":"nobody@x.com","password":"secret1"}`, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, "POST", "/login", `{"email":"a@x.com","password":"wrong-password"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, "POST", "/login", `{"email":"a@x.com"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecipesRequireAuth(t *testing.T) {
	router := setupTestRouter(t)

	for _, tc := range []struct{ method, path string }{
		{"GET", "/recipes"},
		{"GET", "/recipes/some-id"},
		{"POST", "/recipes"},
		{"PUT", "/recipes/some-id"},
	} {
		w := doJSON(router, tc.method, tc.path, "{}", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestCreateRecipeValidation(t *testing.T) {
	router := setupTestRouter(t)
	token := signup(t, router, "A", "a@x.com", "secret1")

	w := doJSON(router, "POST", "/recipes",
		`{"title":"","description":"x","ingredients":"x","instructions":"x"}`, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Errors []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors[0], "title")
}

func TestRecipeOwnerIsolation(t *testing.T) {
	router := setupTestRouter(t)
	tokenA := signup(t, router, "A", "a@x.com", "secret1")
	tokenB := signup(t, router, "B", "b@x.com", "secret2")

	w := doJSON(router, "POST", "/recipes",
		`{"title":"Soup","description":"hot","ingredients":"water","instructions":"boil"}`, tokenA)
	require.Equal(t, http.StatusCreated, w.Code)
	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	recipeID := created["id"].(string)

	// B's list is empty, and A's recipe is invisible to B on GET and PUT.
	w = doJSON(router, "GET", "/recipes", "", tokenB)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())

	w = doJSON(router, "GET", "/recipes/"+recipeID, "", tokenB)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, "PUT", "/recipes/"+recipeID, `{"title":"Hijacked"}`, tokenB)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Recipe not found or unauthorized")

	// A still sees the original title.
	w = doJSON(router, "GET", "/recipes/"+recipeID, "", tokenA)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Soup")
}

func TestUpdateUnknownID(t *testing.T) {
	router := setupTestRouter(t)
	token := signup(t, router, "A", "a@x.com", "secret1")

	w := doJSON(router, "PUT", "/recipes/999999", `{"title":"X"}`, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Recipe not found or unauthorized")
}

func TestUpload(t *testing.T) {
	router := setupTestRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "dinner.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		ImageURL string `json:"imageUrl"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ImageURL)

	// The uploaded file is retrievable under the static prefix.
	getReq := httptest.NewRequest("GET", resp.ImageURL, nil)
	getW := httptest.NewRecorder()
	router.ServeHTTP(getW, getReq)
	assert.Equal(t, http.StatusOK, getW.Code)
	assert.Equal(t, "fake image bytes", getW.Body.String())
}

func TestUploadNoFile(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(router, "POST", "/upload", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No file uploaded")
}

func TestRouteNotFound(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(router, "GET", "/definitely-not-a-route", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Route not found")
}

func TestHealth(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(router, "GET", "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
