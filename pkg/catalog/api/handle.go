package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/freshmart/freshmart/pkg/catalog"
)

type Handler struct {
	service *catalog.CatalogService
}

func NewHandler(service *catalog.CatalogService) *Handler {
	return &Handler{service: service}
}

// Routes registers the catalog endpoints on the router
func Routes(r chi.Router, h *Handler) {
	r.Post("/uploadProduct", h.UploadProduct)
	r.Get("/product", h.ListProducts)
	r.Post("/uploadDiscount", h.UploadDiscount)
	r.Get("/discounts", h.ListDiscounts)
}

type MessageResponse struct {
	Message string `json:"message"`
}

// UploadProduct handles POST /uploadProduct
func (h *Handler) UploadProduct(w http.ResponseWriter, r *http.Request) {
	var product catalog.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		slog.Error("Failed to decode request body", "error", err)
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, MessageResponse{Message: "Invalid request body"})
		return
	}

	if _, err := h.service.UploadProduct(r.Context(), product); err != nil {
		if errors.Is(err, catalog.ErrMissingFields) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, MessageResponse{Message: "Missing required fields"})
			return
		}
		slog.Error("Failed to upload product", "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, MessageResponse{Message: "Failed to upload product"})
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, MessageResponse{Message: "Product uploaded successfully"})
}

// ListProducts handles GET /product
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		slog.Error("Failed to fetch products", "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, MessageResponse{Message: "Failed to fetch products"})
		return
	}

	if products == nil {
		products = []catalog.Product{}
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, products)
}

// UploadDiscount handles POST /uploadDiscount
func (h *Handler) UploadDiscount(w http.ResponseWriter, r *http.Request) {
	var discount catalog.Discount
	if err := json.NewDecoder(r.Body).Decode(&discount); err != nil {
		slog.Error("Failed to decode request body", "error", err)
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, MessageResponse{Message: "Invalid request body"})
		return
	}

	if _, err := h.service.UploadDiscount(r.Context(), discount); err != nil {
		if errors.Is(err, catalog.ErrMissingFields) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, MessageResponse{Message: "Missing required fields"})
			return
		}
		slog.Error("Failed to upload discount", "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, MessageResponse{Message: "Failed to add discount"})
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, MessageResponse{Message: "Discount added successfully!"})
}

// ListDiscounts handles GET /discounts
func (h *Handler) ListDiscounts(w http.ResponseWriter, r *http.Request) {
	discounts, err := h.service.ListDiscounts(r.Context())
	if err != nil {
		slog.Error("Failed to fetch discounts", "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, MessageResponse{Message: "Failed to fetch discounts"})
		return
	}

	if discounts == nil {
		discounts = []catalog.Discount{}
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, discounts)
}
