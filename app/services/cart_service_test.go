package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/riiqx/storefront/app/models"
	"github.com/riiqx/storefront/app/repositories"
	"github.com/riiqx/storefront/app/services"
	"github.com/riiqx/storefront/app/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// memSnapshotDB implements store.SnapshotDB over a map.
type memSnapshotDB struct {
	snaps map[string][]byte
}

func newMemSnapshotDB() *memSnapshotDB {
	return &memSnapshotDB{snaps: make(map[string][]byte)}
}

func (m *memSnapshotDB) PutSnapshot(ctx context.Context, namespace string, data []byte) error {
	m.snaps[namespace] = data
	return nil
}

func (m *memSnapshotDB) GetSnapshot(ctx context.Context, namespace string) ([]byte, error) {
	data, ok := m.snaps[namespace]
	if !ok {
		return nil, store.ErrNoSnapshot
	}
	return data, nil
}

// fakeProductRepo serves products from a map; list methods are unused
// by the cart service.
type fakeProductRepo struct {
	products     map[string]*models.Product
	decrements   int
	decrementErr error
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return product, nil
}

func (f *fakeProductRepo) GetProducts(ctx context.Context) ([]models.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) GetPaginated(ctx context.Context, limit, offset int) ([]models.Product, int64, error) {
	return nil, 0, nil
}

func (f *fakeProductRepo) GetByCategorySlugPaginated(ctx context.Context, slug string, limit, offset int) ([]models.Product, int64, error) {
	return nil, 0, nil
}

func (f *fakeProductRepo) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProductRepo) GetFeaturedProducts(ctx context.Context, limit int) ([]models.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) SearchProductsPaginated(ctx context.Context, keyword string, limit, offset int) ([]models.Product, int64, error) {
	return nil, 0, nil
}

func (f *fakeProductRepo) DecrementStock(ctx context.Context, tx *gorm.DB, productID, variantID string, qty int) error {
	if f.decrementErr != nil {
		return f.decrementErr
	}
	f.decrements++
	return nil
}

type fakePromoRepo struct {
	promos map[string]*models.PromoCode
}

func (f *fakePromoRepo) FindByCode(ctx context.Context, code string) (*models.PromoCode, error) {
	promo, ok := f.promos[code]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return promo, nil
}

func (f *fakePromoRepo) Create(ctx context.Context, promo *models.PromoCode) error {
	f.promos[promo.Code] = promo
	return nil
}

var (
	_ repositories.ProductRepositoryImpl = (*fakeProductRepo)(nil)
	_ repositories.PromoRepositoryImpl   = (*fakePromoRepo)(nil)
	_ store.SnapshotDB                   = (*memSnapshotDB)(nil)
)

func testProduct() *models.Product {
	return &models.Product{
		ID:    "p1",
		Name:  "Phantom Hoodie",
		Slug:  "phantom-hoodie",
		Price: decimal.NewFromInt(2499),
		Stock: 10,
		Variants: []models.ProductVariant{
			{ID: "v1", ProductID: "p1", Color: "Obsidian", Size: "L", Stock: 5},
			{ID: "v2", ProductID: "p1", Color: "Bone", Size: "M", Price: decimal.NewFromInt(2799), Stock: 3},
		},
		ProductImages: []models.ProductImage{
			{ID: "img1", ProductID: "p1", Path: "/images/phantom.jpg"},
		},
	}
}

func newTestCartService() (*services.CartService, *memSnapshotDB) {
	db := newMemSnapshotDB()
	svc := services.NewCartService(
		db,
		&fakeProductRepo{products: map[string]*models.Product{"p1": testProduct()}},
		&fakePromoRepo{promos: map[string]*models.PromoCode{
			"DROP10": {Code: "DROP10", Kind: models.PromoKindPercentage, Value: decimal.NewFromInt(10), Active: true},
			"DEAD":   {Code: "DEAD", Kind: models.PromoKindFixed, Value: decimal.NewFromInt(100), Active: false},
		}},
	)
	return svc, db
}

func TestAddProductDenormalizesCatalogData(t *testing.T) {
	svc, _ := newTestCartService()

	cart, err := svc.AddProduct(context.Background(), "ns1", "p1", "v1", 1)
	require.NoError(t, err)

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Phantom Hoodie", items[0].Title)
	assert.Equal(t, "/images/phantom.jpg", items[0].Image)
	assert.Equal(t, "Obsidian", items[0].Color)
	assert.Equal(t, "L", items[0].Size)
	// v1 has no price of its own, so the base price applies.
	assert.True(t, items[0].Price.Equal(decimal.NewFromInt(2499)))
}

func TestAddProductUsesVariantPriceOverride(t *testing.T) {
	svc, _ := newTestCartService()

	cart, err := svc.AddProduct(context.Background(), "ns1", "p1", "v2", 1)
	require.NoError(t, err)

	items := cart.Items()
	require.Len(t, items, 1)
	assert.True(t, items[0].Price.Equal(decimal.NewFromInt(2799)))
}

func TestAddProductUnknownProduct(t *testing.T) {
	svc, _ := newTestCartService()

	_, err := svc.AddProduct(context.Background(), "ns1", "missing", "", 1)
	assert.ErrorIs(t, err, services.ErrProductNotFound)
}

func TestAddProductUnknownVariant(t *testing.T) {
	svc, _ := newTestCartService()

	_, err := svc.AddProduct(context.Background(), "ns1", "p1", "v999", 1)
	assert.ErrorIs(t, err, services.ErrVariantNotFound)
}

func TestCartSurvivesReload(t *testing.T) {
	svc, _ := newTestCartService()
	ctx := context.Background()

	_, err := svc.AddProduct(ctx, "ns1", "p1", "v1", 1)
	require.NoError(t, err)
	_, err = svc.ApplyPromo(ctx, "ns1", "DROP10")
	require.NoError(t, err)

	reloaded := svc.LoadStore("ns1")
	require.Len(t, reloaded.Items(), 1)
	require.NotNil(t, reloaded.Discount())
	assert.Equal(t, "DROP10", reloaded.Discount().Code)
}

func TestCartsAreNamespaced(t *testing.T) {
	svc, _ := newTestCartService()
	ctx := context.Background()

	_, err := svc.AddProduct(ctx, "ns1", "p1", "", 1)
	require.NoError(t, err)

	other := svc.LoadStore("ns2")
	assert.Empty(t, other.Items())
}

func TestApplyPromoUnknownCode(t *testing.T) {
	svc, _ := newTestCartService()

	_, err := svc.ApplyPromo(context.Background(), "ns1", "NOPE")
	assert.ErrorIs(t, err, services.ErrPromoNotFound)
}

func TestApplyPromoInactiveCode(t *testing.T) {
	svc, _ := newTestCartService()

	_, err := svc.ApplyPromo(context.Background(), "ns1", "DEAD")
	assert.ErrorIs(t, err, services.ErrPromoNotUsable)
}

func TestApplyPromoExpiredCode(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	promoRepo := &fakePromoRepo{promos: map[string]*models.PromoCode{
		"GONE": {Code: "GONE", Kind: models.PromoKindFixed, Value: decimal.NewFromInt(10), Active: true, EndsAt: &past},
	}}
	svc := services.NewCartService(newMemSnapshotDB(), &fakeProductRepo{products: map[string]*models.Product{}}, promoRepo)

	_, err := svc.ApplyPromo(context.Background(), "ns1", "GONE")
	assert.ErrorIs(t, err, services.ErrPromoNotUsable)
}

func TestRemovePromoAndClear(t *testing.T) {
	svc, _ := newTestCartService()
	ctx := context.Background()

	_, err := svc.AddProduct(ctx, "ns1", "p1", "", 1)
	require.NoError(t, err)
	_, err = svc.ApplyPromo(ctx, "ns1", "DROP10")
	require.NoError(t, err)

	cart := svc.RemovePromo("ns1")
	assert.Nil(t, cart.Discount())
	assert.Len(t, cart.Items(), 1)

	cart = svc.ClearCart("ns1")
	assert.Empty(t, cart.Items())

	reloaded := svc.LoadStore("ns1")
	assert.Empty(t, reloaded.Items())
}

func TestUpdateQuantityThroughService(t *testing.T) {
	svc, _ := newTestCartService()
	ctx := context.Background()

	_, err := svc.AddProduct(ctx, "ns1", "p1", "v1", 1)
	require.NoError(t, err)

	cart := svc.UpdateQuantity("ns1", "p1", "v1", 4)
	require.Len(t, cart.Items(), 1)
	assert.Equal(t, 4, cart.Items()[0].Quantity)

	cart = svc.UpdateQuantity("ns1", "p1", "v1", 0)
	assert.Empty(t, cart.Items())
}
