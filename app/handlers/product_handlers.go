package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/riiqx/storefront/app/repositories"
	"github.com/unrolled/render"
	"gorm.io/gorm"
)

const defaultPageSize = 12

type ProductHandler struct {
	productRepo  repositories.ProductRepositoryImpl
	categoryRepo repositories.CategoryRepositoryImpl
	render       *render.Render
}

func NewProductHandler(
	productRepo repositories.ProductRepositoryImpl,
	categoryRepo repositories.CategoryRepositoryImpl,
	render *render.Render,
) *ProductHandler {
	return &ProductHandler{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		render:       render,
	}
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page, limit := paginationParams(r)
	offset := (page - 1) * limit

	keyword := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")

	var (
		products interface{}
		total    int64
		err      error
	)

	switch {
	case keyword != "":
		products, total, err = h.productRepo.SearchProductsPaginated(ctx, keyword, limit, offset)
	case category != "":
		products, total, err = h.productRepo.GetByCategorySlugPaginated(ctx, category, limit, offset)
	default:
		products, total, err = h.productRepo.GetPaginated(ctx, limit, offset)
	}

	if err != nil {
		log.Printf("ProductHandler.ListProducts: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load products"})
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	product, err := h.productRepo.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"error": "product not found"})
			return
		}
		log.Printf("ProductHandler.GetProduct: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load product"})
		return
	}

	_ = h.render.JSON(w, http.StatusOK, product)
}

func (h *ProductHandler) ListFeatured(w http.ResponseWriter, r *http.Request) {
	products, err := h.productRepo.GetFeaturedProducts(r.Context(), 8)
	if err != nil {
		log.Printf("ProductHandler.ListFeatured: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load featured products"})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"products": products})
}

func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryRepo.GetCategories(r.Context())
	if err != nil {
		log.Printf("ProductHandler.ListCategories: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load categories"})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"categories": categories})
}

func paginationParams(r *http.Request) (page, limit int) {
	page = 1
	limit = defaultPageSize

	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	return page, limit
}
