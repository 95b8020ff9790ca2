package recipe

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantrychef/internal/cache"
	"pantrychef/internal/common"
	"pantrychef/internal/llm"
	"pantrychef/internal/repository"
)

type fakeInventoryRepo struct {
	items []repository.InventoryItem
}

func (f *fakeInventoryRepo) Insert(context.Context, *repository.InventoryItem) error { return nil }
func (f *fakeInventoryRepo) InsertBatch(context.Context, []*repository.InventoryItem) (int, error) {
	return 0, nil
}
func (f *fakeInventoryRepo) List(context.Context, uuid.UUID) ([]repository.InventoryItem, error) {
	return f.items, nil
}
func (f *fakeInventoryRepo) Delete(context.Context, uuid.UUID, uuid.UUID) error { return nil }
func (f *fakeInventoryRepo) DeleteAll(context.Context, uuid.UUID) (int64, error) {
	return 0, nil
}

type fakeUserRepo struct {
	user repository.User
}

func (f *fakeUserRepo) Create(context.Context, *repository.User) error { return nil }
func (f *fakeUserRepo) GetByID(context.Context, uuid.UUID) (*repository.User, error) {
	return &f.user, nil
}
func (f *fakeUserRepo) GetByUsername(context.Context, string) (*repository.User, error) {
	return &f.user, nil
}
func (f *fakeUserRepo) Exists(context.Context, string, string) (bool, error) { return false, nil }
func (f *fakeUserRepo) UpdatePreferences(context.Context, uuid.UUID, []string, []string) error {
	return nil
}

type fakeRatingRepo struct {
	lastRecipe string
	lastLiked  bool
}

func (f *fakeRatingRepo) Upsert(_ context.Context, _ uuid.UUID, recipeName string, liked bool) error {
	f.lastRecipe = recipeName
	f.lastLiked = liked
	return nil
}
func (f *fakeRatingRepo) ListByUser(context.Context, uuid.UUID) ([]repository.RecipeRating, error) {
	return nil, nil
}

type fakeChatRepo struct {
	saved int
}

func (f *fakeChatRepo) Insert(context.Context, uuid.UUID, string, string) error {
	f.saved++
	return nil
}
func (f *fakeChatRepo) ListRecent(context.Context, uuid.UUID, int) ([]repository.ChatMessage, error) {
	return nil, nil
}

type promptCapturingGenerator struct {
	reply string
	err   error
	last  llm.ChatRequest
}

func (g *promptCapturingGenerator) Generate(_ context.Context, req llm.ChatRequest) (string, error) {
	g.last = req
	return g.reply, g.err
}

const modelRecipeReply = `Recipe: Chicken and Rice
Required Ingredients:
- 2 pieces of Chicken Breast
- 500 grams of Rice
Preparation Time: 30 minutes
Instructions:
- Cook the rice.
- Sear the chicken.
`

func pantry() []repository.InventoryItem {
	return []repository.InventoryItem{
		{ID: uuid.New(), Name: "Chicken Breast", Quantity: 2, Unit: "pcs"},
		{ID: uuid.New(), Name: "Rice", Quantity: 500, Unit: "g"},
	}
}

func newTestRecipeService(gen llm.Generator, inv *fakeInventoryRepo) (*Service, *fakeRatingRepo, *fakeChatRepo) {
	ratings := &fakeRatingRepo{}
	chats := &fakeChatRepo{}
	users := &fakeUserRepo{user: repository.User{
		ID:             uuid.New(),
		Username:       "alice",
		CookingMethods: []string{"oven", "stovetop"},
		KitchenTools:   []string{"blender"},
	}}
	svc := NewService(inv, users, ratings, chats, gen, cache.New("", 0, nil), nil)
	return svc, ratings, chats
}

func TestSuggest(t *testing.T) {
	gen := &promptCapturingGenerator{reply: modelRecipeReply}
	svc, _, _ := newTestRecipeService(gen, &fakeInventoryRepo{items: pantry()})

	recipes, err := svc.Suggest(context.Background(), uuid.New(), Filters{})
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Chicken and Rice", recipes[0].Name)

	// Prompt carries the pantry with prose units and the user's equipment.
	assert.Contains(t, gen.last.User, "2 pieces of Chicken Breast")
	assert.Contains(t, gen.last.User, "500 grams of Rice")
	assert.Contains(t, gen.last.User, "Oven")
	assert.Contains(t, gen.last.User, "Blender")
	assert.Contains(t, gen.last.User, "No specific constraints")
	assert.Equal(t, float32(0.8), gen.last.Temperature)
}

func TestSuggestEmptyInventory(t *testing.T) {
	gen := &promptCapturingGenerator{reply: modelRecipeReply}
	svc, _, _ := newTestRecipeService(gen, &fakeInventoryRepo{})

	recipes, err := svc.Suggest(context.Background(), uuid.New(), Filters{})
	require.NoError(t, err)
	assert.Empty(t, recipes)
	// No model call for an empty pantry.
	assert.Empty(t, gen.last.User)
}

func TestSuggestFilters(t *testing.T) {
	items := pantry()
	gen := &promptCapturingGenerator{reply: modelRecipeReply}
	svc, _, _ := newTestRecipeService(gen, &fakeInventoryRepo{items: items})

	_, err := svc.Suggest(context.Background(), uuid.New(), Filters{
		TimeConstraint:     30,
		PreferredMethod:    "grill",
		Dietary:            []string{"vegetarian"},
		MustUseIngredients: []string{items[0].ID.String()},
	})
	require.NoError(t, err)

	assert.Contains(t, gen.last.User, "less than 30 minutes")
	assert.Contains(t, gen.last.User, "Must use Grill as the primary cooking method")
	assert.Contains(t, gen.last.User, "Must be vegetarian")
	assert.Contains(t, gen.last.User, "Must use these ingredients: Chicken Breast")
}

func TestSuggestMalformedModelOutput(t *testing.T) {
	gen := &promptCapturingGenerator{reply: "I cannot help with that."}
	svc, _, _ := newTestRecipeService(gen, &fakeInventoryRepo{items: pantry()})

	_, err := svc.Suggest(context.Background(), uuid.New(), Filters{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrMalformedResponse))
}

func TestRefresh(t *testing.T) {
	gen := &promptCapturingGenerator{reply: modelRecipeReply}
	svc, _, _ := newTestRecipeService(gen, &fakeInventoryRepo{items: pantry()})

	r, err := svc.Refresh(context.Background(), uuid.New(), "Chicken and Rice")
	require.NoError(t, err)
	assert.Equal(t, "Chicken and Rice", r.Name)
	assert.Contains(t, gen.last.User, "new variation of the recipe 'Chicken and Rice'")
}

func TestRefreshRequiresName(t *testing.T) {
	svc, _, _ := newTestRecipeService(&promptCapturingGenerator{}, &fakeInventoryRepo{})
	_, err := svc.Refresh(context.Background(), uuid.New(), "  ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrInvalidInput))
}

func TestChatSavesExchange(t *testing.T) {
	gen := &promptCapturingGenerator{reply: "Sure!\n" + modelRecipeReply}
	svc, _, chats := newTestRecipeService(gen, &fakeInventoryRepo{items: pantry()})

	result, err := svc.Chat(context.Background(), uuid.New(), "what can I cook tonight?")
	require.NoError(t, err)
	assert.Equal(t, 1, chats.saved)
	assert.True(t, strings.HasPrefix(result.Message, "Sure!"))
	require.Len(t, result.Recipes, 1)
	assert.Equal(t, "Chicken and Rice", result.Recipes[0].Name)
}

func TestRate(t *testing.T) {
	svc, ratings, _ := newTestRecipeService(&promptCapturingGenerator{}, &fakeInventoryRepo{})

	require.NoError(t, svc.Rate(context.Background(), uuid.New(), "Chicken and Rice", true))
	assert.Equal(t, "Chicken and Rice", ratings.lastRecipe)
	assert.True(t, ratings.lastLiked)

	err := svc.Rate(context.Background(), uuid.New(), "", false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrInvalidInput))
}
