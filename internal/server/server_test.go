package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantrychef/internal/auth"
	"pantrychef/internal/cache"
	"pantrychef/internal/common"
	"pantrychef/internal/export"
	"pantrychef/internal/llm"
	"pantrychef/internal/receipt"
	"pantrychef/internal/recipe"
	"pantrychef/internal/repository"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memUsers struct {
	byName map[string]*repository.User
}

func (m *memUsers) Create(_ context.Context, u *repository.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	m.byName[u.Username] = u
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id uuid.UUID) (*repository.User, error) {
	for _, u := range m.byName {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, fmt.Errorf("%w: user", common.ErrNotFound)
}

func (m *memUsers) GetByUsername(_ context.Context, name string) (*repository.User, error) {
	if u, ok := m.byName[name]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("%w: user", common.ErrNotFound)
}

func (m *memUsers) Exists(_ context.Context, name, email string) (bool, error) {
	for _, u := range m.byName {
		if u.Username == name || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUsers) UpdatePreferences(_ context.Context, id uuid.UUID, methods, tools []string) error {
	for _, u := range m.byName {
		if u.ID == id {
			u.CookingMethods = methods
			u.KitchenTools = tools
			return nil
		}
	}
	return fmt.Errorf("%w: user", common.ErrNotFound)
}

type memInventory struct {
	items map[uuid.UUID]*repository.InventoryItem
}

func (m *memInventory) Insert(_ context.Context, item *repository.InventoryItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now()
	}
	m.items[item.ID] = item
	return nil
}

func (m *memInventory) InsertBatch(ctx context.Context, items []*repository.InventoryItem) (int, error) {
	for _, item := range items {
		_ = m.Insert(ctx, item)
	}
	return len(items), nil
}

func (m *memInventory) List(_ context.Context, userID uuid.UUID) ([]repository.InventoryItem, error) {
	out := []repository.InventoryItem{}
	for _, item := range m.items {
		if item.UserID == userID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (m *memInventory) Delete(_ context.Context, userID, itemID uuid.UUID) error {
	if item, ok := m.items[itemID]; ok && item.UserID == userID {
		delete(m.items, itemID)
		return nil
	}
	return fmt.Errorf("%w: item", common.ErrNotFound)
}

func (m *memInventory) DeleteAll(_ context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for id, item := range m.items {
		if item.UserID == userID {
			delete(m.items, id)
			n++
		}
	}
	return n, nil
}

type memRatings struct{}

func (memRatings) Upsert(context.Context, uuid.UUID, string, bool) error { return nil }
func (memRatings) ListByUser(context.Context, uuid.UUID) ([]repository.RecipeRating, error) {
	return nil, nil
}

type memChats struct{}

func (memChats) Insert(context.Context, uuid.UUID, string, string) error { return nil }
func (memChats) ListRecent(context.Context, uuid.UUID, int) ([]repository.ChatMessage, error) {
	return nil, nil
}

type stubGenerator struct{ reply string }

func (s stubGenerator) Generate(context.Context, llm.ChatRequest) (string, error) {
	return s.reply, nil
}

type stubBackend struct{ items []receipt.Item }

func (stubBackend) Name() string { return "stub" }
func (s stubBackend) Extract(context.Context, string) ([]receipt.Item, error) {
	return s.items, nil
}

func newTestServer(t *testing.T, gen llm.Generator, backend receipt.Backend) (*gin.Engine, *memInventory) {
	t.Helper()

	cfg := &common.Config{}
	cfg.Server.MaxUploadBytes = 16 << 20
	cfg.Server.CORSOrigins = "*"
	cfg.Server.UploadDir = t.TempDir()
	cfg.Extract.MaxVisionEdge = 1600

	users := &memUsers{byName: map[string]*repository.User{}}
	inventory := &memInventory{items: map[uuid.UUID]*repository.InventoryItem{}}

	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	authSvc := auth.NewService(users, issuer, nil)
	recipes := recipe.NewService(inventory, users, memRatings{}, memChats{}, gen, cache.New("", 0, nil), nil)
	exports := export.NewService(inventory, nil)
	pipe := receipt.NewPipeline(backend, time.Second, nil)

	srv := New(cfg, authSvc, issuer, pipe, recipes, exports, users, inventory, nil)
	return srv.Router(), inventory
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/register", "", gin.H{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "longenough",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestRegisterLoginFlow(t *testing.T) {
	r, _ := newTestServer(t, stubGenerator{}, stubBackend{})
	registerUser(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/login", "", gin.H{
		"username": "alice",
		"password": "longenough",
	})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/login", "", gin.H{
		"username": "alice",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthRequired(t *testing.T) {
	r, _ := newTestServer(t, stubGenerator{}, stubBackend{})

	w := doJSON(t, r, http.MethodGet, "/api/inventory", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/inventory", "bogus-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestInventoryCRUD(t *testing.T) {
	r, _ := newTestServer(t, stubGenerator{}, stubBackend{})
	token := registerUser(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/inventory", token, gin.H{
		"name": "Rice", "quantity": 500, "unit": "g",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ItemID uuid.UUID `json:"item_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, r, http.MethodGet, "/api/inventory", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Items []repository.InventoryItem `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Rice", list.Items[0].Name)

	w = doJSON(t, r, http.MethodDelete, "/api/inventory/"+created.ItemID.String(), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/inventory/"+created.ItemID.String(), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInventoryRejectsInvalidItem(t *testing.T) {
	r, _ := newTestServer(t, stubGenerator{}, stubBackend{})
	token := registerUser(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/inventory", token, gin.H{
		"name": "Rice", "quantity": -1, "unit": "g",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeAndConfirmReceipt(t *testing.T) {
	backend := stubBackend{items: []receipt.Item{
		{Name: "Eggs", Quantity: 1, Unit: "pcs", Price: 1.98, Category: "dairy"},
	}}
	r, inv := newTestServer(t, stubGenerator{}, backend)
	token := registerUser(t, r)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "receipt.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/receipts/analyze", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var analyzed struct {
		Items []receipt.Item `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &analyzed))
	require.Len(t, analyzed.Items, 1)

	wc := doJSON(t, r, http.MethodPost, "/api/receipts/confirm", token, gin.H{
		"items": analyzed.Items,
	})
	require.Equal(t, http.StatusOK, wc.Code, wc.Body.String())
	assert.Len(t, inv.items, 1)
}

func TestAnalyzeRejectsBadExtension(t *testing.T) {
	r, _ := newTestServer(t, stubGenerator{}, stubBackend{})
	token := registerUser(t, r)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "notes.pdf")
	require.NoError(t, err)
	_, _ = part.Write([]byte("%PDF"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/receipts/analyze", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSuggestionsEndpoint(t *testing.T) {
	gen := stubGenerator{reply: "Recipe: Fried Rice\nInstructions:\n- Fry the rice.\n"}
	r, _ := newTestServer(t, gen, stubBackend{})
	token := registerUser(t, r)

	// Pantry must be non-empty for a model call.
	w := doJSON(t, r, http.MethodPost, "/api/inventory", token, gin.H{
		"name": "Rice", "quantity": 500, "unit": "g",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/recipes/suggestions", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Recipes []recipe.Recipe `json:"recipes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Recipes, 1)
	assert.Equal(t, "Fried Rice", resp.Recipes[0].Name)
}

func TestPreferencesRoundTrip(t *testing.T) {
	r, _ := newTestServer(t, stubGenerator{}, stubBackend{})
	token := registerUser(t, r)

	w := doJSON(t, r, http.MethodPut, "/api/preferences", token, gin.H{
		"cooking_methods": []string{"oven", "not_a_method"},
		"kitchen_tools":   []string{"blender"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/preferences", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		CookingMethods []string `json:"cooking_methods"`
		KitchenTools   []string `json:"kitchen_tools"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	// Unknown keys are dropped.
	assert.Equal(t, []string{"oven"}, resp.CookingMethods)
	assert.Equal(t, []string{"blender"}, resp.KitchenTools)
}

func TestRateEndpoint(t *testing.T) {
	r, _ := newTestServer(t, stubGenerator{}, stubBackend{})
	token := registerUser(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/recipes/rate", token, gin.H{
		"recipe_name": "Fried Rice",
		"rating":      true,
	})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/recipes/rate", token, gin.H{
		"recipe_name": "Fried Rice",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
