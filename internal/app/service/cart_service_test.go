package service

import (
	"sync"
	"testing"

	"github.com/hjakub/drive-backend/internal/app/model"
	"github.com/hjakub/drive-backend/internal/app/repository"
	"github.com/hjakub/drive-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (CartService, *model.Product, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	cartService := NewCartService(cartRepo, productRepo)

	product := &model.Product{
		Slug:       "cans-mango",
		Name:       "CANS Mango",
		PriceCents: 59900,
	}
	testDB.Create(product)

	return cartService, product, testDB
}

func TestCartService_EnsureCart_StablePerSession(t *testing.T) {
	cartService, _, _ := setupCartServiceTest(t)

	first, err := cartService.EnsureCart("token-a")
	require.NoError(t, err)

	second, err := cartService.EnsureCart("token-a")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestCartService_GetCart_EmptyIsNotAnError(t *testing.T) {
	cartService, _, _ := setupCartServiceTest(t)

	cart, _ := cartService.EnsureCart("token-a")

	view, err := cartService.GetCart(cart.ID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, view.CartID)
	assert.NotNil(t, view.Items)
	assert.Len(t, view.Items, 0)
	assert.Equal(t, int64(0), view.TotalCents)
}

func TestCartService_AddItem_MergesExistingLine(t *testing.T) {
	cartService, product, _ := setupCartServiceTest(t)

	cart, _ := cartService.EnsureCart("token-a")

	view, err := cartService.AddItem(cart.ID, product.ID, 2)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Quantity)

	// Adding the same product again increments, never duplicates
	view, err = cartService.AddItem(cart.ID, product.ID, 3)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 5, view.Items[0].Quantity)
	assert.Equal(t, int64(5*59900), view.TotalCents)
}

func TestCartService_AddItem_ProductNotFound(t *testing.T) {
	cartService, _, _ := setupCartServiceTest(t)

	cart, _ := cartService.EnsureCart("token-a")

	_, err := cartService.AddItem(cart.ID, 9999, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartService_AddItem_InvalidQuantity(t *testing.T) {
	cartService, product, _ := setupCartServiceTest(t)

	cart, _ := cartService.EnsureCart("token-a")

	_, err := cartService.AddItem(cart.ID, product.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = cartService.AddItem(cart.ID, product.ID, -2)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCartService_SetItemQuantity_Absolute(t *testing.T) {
	cartService, product, _ := setupCartServiceTest(t)

	cart, _ := cartService.EnsureCart("token-a")
	view, _ := cartService.AddItem(cart.ID, product.ID, 2)
	itemID := view.Items[0].ID

	// Absolute set, not a delta
	view, err := cartService.SetItemQuantity(cart.ID, itemID, 7)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 7, view.Items[0].Quantity)
	assert.Equal(t, int64(7*59900), view.TotalCents)
}

func TestCartService_SetItemQuantity_ZeroDeletes(t *testing.T) {
	cartService, product, _ := setupCartServiceTest(t)

	cart, _ := cartService.EnsureCart("token-a")
	view, _ := cartService.AddItem(cart.ID, product.ID, 2)
	itemID := view.Items[0].ID

	view, err := cartService.SetItemQuantity(cart.ID, itemID, 0)
	require.NoError(t, err)
	assert.Len(t, view.Items, 0)
	assert.Equal(t, int64(0), view.TotalCents)
}

func TestCartService_SetItemQuantity_Negative(t *testing.T) {
	cartService, product, _ := setupCartServiceTest(t)

	cart, _ := cartService.EnsureCart("token-a")
	view, _ := cartService.AddItem(cart.ID, product.ID, 2)

	_, err := cartService.SetItemQuantity(cart.ID, view.Items[0].ID, -1)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCartService_CrossCartIsolation(t *testing.T) {
	cartService, product, _ := setupCartServiceTest(t)

	cartA, _ := cartService.EnsureCart("token-a")
	cartB, _ := cartService.EnsureCart("token-b")

	viewA, _ := cartService.AddItem(cartA.ID, product.ID, 2)
	itemID := viewA.Items[0].ID

	// Updating a foreign item id through cart B is a no-op that still
	// returns cart B's current view
	viewB, err := cartService.SetItemQuantity(cartB.ID, itemID, 99)
	require.NoError(t, err)
	assert.Len(t, viewB.Items, 0)

	viewB, err = cartService.RemoveItem(cartB.ID, itemID)
	require.NoError(t, err)
	assert.Len(t, viewB.Items, 0)

	// Cart A is untouched
	viewA, _ = cartService.GetCart(cartA.ID)
	require.Len(t, viewA.Items, 1)
	assert.Equal(t, 2, viewA.Items[0].Quantity)
}

func TestCartService_RemoveItem(t *testing.T) {
	cartService, product, _ := setupCartServiceTest(t)

	cart, _ := cartService.EnsureCart("token-a")
	view, _ := cartService.AddItem(cart.ID, product.ID, 2)

	view, err := cartService.RemoveItem(cart.ID, view.Items[0].ID)
	require.NoError(t, err)
	assert.Len(t, view.Items, 0)
}

func TestCartService_Checkout_ClearsItemsKeepsCart(t *testing.T) {
	cartService, product, _ := setupCartServiceTest(t)

	cart, _ := cartService.EnsureCart("token-a")
	cartService.AddItem(cart.ID, product.ID, 3)

	view, err := cartService.Checkout(cart.ID)
	require.NoError(t, err)
	assert.Len(t, view.Items, 0)
	assert.Equal(t, int64(0), view.TotalCents)

	// The same cart keeps working after checkout
	again, err := cartService.EnsureCart("token-a")
	require.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID)

	view, err = cartService.AddItem(cart.ID, product.ID, 1)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 1, view.Items[0].Quantity)
}

func TestCartService_ConcurrentAdds_MergeToSingleLine(t *testing.T) {
	cartService, product, _ := setupCartServiceTest(t)

	cart, _ := cartService.EnsureCart("token-a")

	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cartService.AddItem(cart.ID, product.ID, 1); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	view, err := cartService.GetCart(cart.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, workers, view.Items[0].Quantity)
}

func TestCartService_ConcurrentEnsureCart_SingleCartPerSession(t *testing.T) {
	cartService, _, testDB := setupCartServiceTest(t)

	const workers = 10
	var wg sync.WaitGroup
	ids := make(chan uint, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cart, err := cartService.EnsureCart("token-race")
			if err == nil {
				ids <- cart.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[uint]bool)
	for id := range ids {
		seen[id] = true
	}
	assert.Len(t, seen, 1)

	var count int64
	testDB.Model(&model.Cart{}).Where("session_token = ?", "token-race").Count(&count)
	assert.Equal(t, int64(1), count)
}
