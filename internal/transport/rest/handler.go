// Package rest provides HTTP handlers for catalog operations.
package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	cerrors "github.com/prodcat/catalog/internal/errors"
	"github.com/prodcat/catalog/internal/export"
	"github.com/prodcat/catalog/internal/service"
	"github.com/prodcat/catalog/pkg/web"
)

type Handler struct {
	service  service.CatalogService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a new instance of the catalog API with the provided service.
func NewHandler(service service.CatalogService, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		logger:   logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the catalog service.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", h.FindAll)
		r.Post("/", h.Create)
		r.Get("/search", h.Search)
		r.Get("/export/csv", h.ExportCSV)
		r.Get("/export/pdf", h.ExportPDF)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.FindByID)
			r.Put("/", h.Update)
			r.Delete("/", h.DeleteByID)
		})
	})

	r.Get("/healthz", h.HealthCheck)
}

// FindAll retrieves the whole catalog.
func (h *Handler) FindAll(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	mLogger.DebugContext(r.Context(), "Received request to find all products")
	products, err := h.service.FindAll(r.Context())
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving product list", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved product list", "count", len(products))
	web.RespondSuccess(w, mLogger, http.StatusOK, "All products retrieved successfully",
		map[string]any{"products": products})
}

// Search runs a filtered, sorted and paginated catalog query.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	req := searchRequestFromQuery(r)
	mLogger.DebugContext(r.Context(), "Received request to search products",
		"page", req.Page, "limit", req.Limit, "sortBy", req.SortBy, "sortDirection", req.SortDir)
	result, err := h.service.Search(r.Context(), req)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error searching products", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to search products")
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully searched products",
		"total", result.Total, "totalPages", result.TotalPages)
	web.RespondSuccess(w, mLogger, http.StatusOK, "Products search completed successfully", result)
}

// FindByID retrieves a product by its ID.
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to find product by ID", "ID", id)
	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, cerrors.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found", "ID", id)
			web.RespondError(w, mLogger, http.StatusNotFound, "Product not found")
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving product", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to retrieve product")
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved product", "ID", found.ID, "Name", found.Name)
	web.RespondSuccess(w, mLogger, http.StatusOK, "Product retrieved successfully",
		map[string]any{"product": found})
}

// Create handles the creation of a new product.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	dto, ok := h.decodeProduct(w, r, mLogger)
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to create product", "Name", dto.Name)

	created, err := h.service.Create(r.Context(), *dto)
	if err != nil {
		h.respondServiceError(w, r, mLogger, err, "Failed to create product")
		return
	}
	mLogger.InfoContext(r.Context(), "Product created successfully", "ID", created.ID, "Name", created.Name)
	web.RespondSuccess(w, mLogger, http.StatusCreated, "Product created successfully",
		map[string]any{"product": created})
}

// Update modifies an existing product.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	dto, ok := h.decodeProduct(w, r, mLogger)
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to update product", "ID", id)

	updated, err := h.service.Update(r.Context(), id, *dto)
	if err != nil {
		h.respondServiceError(w, r, mLogger, err, "Failed to update product")
		return
	}
	mLogger.InfoContext(r.Context(), "Product updated successfully", "ID", updated.ID, "Name", updated.Name)
	web.RespondSuccess(w, mLogger, http.StatusOK, "Product updated successfully",
		map[string]any{"product": updated})
}

// DeleteByID deletes a product by its ID.
func (h *Handler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to delete product", "ID", id)
	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, mLogger, err, "Failed to delete product")
		return
	}
	mLogger.InfoContext(r.Context(), "Product deleted successfully", "ID", id)
	web.RespondSuccess(w, mLogger, http.StatusOK, "Product deleted successfully",
		map[string]any{"product": deleted})
}

// ExportCSV streams the filtered result set as a CSV attachment.
// Pagination parameters from the caller are deliberately ignored.
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	result, ok := h.searchForExport(w, r, mLogger)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename=products.csv`)
	if err := export.WriteCSV(w, result.Products); err != nil {
		mLogger.ErrorContext(r.Context(), "Error writing CSV export", "error", err)
		return
	}
	mLogger.InfoContext(r.Context(), "CSV export completed", "rows", len(result.Products))
}

// ExportPDF streams the filtered result set as a PDF attachment.
// Pagination parameters from the caller are deliberately ignored.
func (h *Handler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	result, ok := h.searchForExport(w, r, mLogger)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename=products.pdf`)
	if err := export.WritePDF(w, result.Products); err != nil {
		mLogger.ErrorContext(r.Context(), "Error writing PDF export", "error", err)
		return
	}
	mLogger.InfoContext(r.Context(), "PDF export completed", "rows", len(result.Products))
}

// HealthCheck reports service liveness.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// searchForExport runs the search with the export window: the incoming
// filters and ordering, first page, AllRows ceiling. An empty result is a
// 404, distinct from a search failure.
func (h *Handler) searchForExport(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger) (*service.SearchResultDto, bool) {
	req := searchRequestFromQuery(r)
	req.Page = 1
	req.Limit = export.AllRows
	result, err := h.service.Search(r.Context(), req)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error searching products for export", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to export products")
		return nil, false
	}
	if len(result.Products) == 0 {
		mLogger.WarnContext(r.Context(), "No products matched export filters")
		web.RespondError(w, mLogger, http.StatusNotFound, "No products found to export")
		return nil, false
	}
	return result, true
}

// searchRequestFromQuery parses the filter/sort/page parameters. Numeric
// filters are lenient: absent or unparsable values impose no constraint.
func searchRequestFromQuery(r *http.Request) service.SearchRequest {
	q := r.URL.Query()
	return service.SearchRequest{
		Name:     q.Get("name"),
		MinPrice: web.QueryFloat(r, "minPrice"),
		MaxPrice: web.QueryFloat(r, "maxPrice"),
		MinStock: web.QueryInt32(r, "minStock"),
		MaxStock: web.QueryInt32(r, "maxStock"),
		Page:     web.QueryIntDefault(r, "page", 0),
		Limit:    web.QueryIntDefault(r, "limit", 0),
		SortBy:   q.Get("sortBy"),
		SortDir:  q.Get("sortDirection"),
	}
}

// decodeProduct decodes and tag-validates a product payload.
func (h *Handler) decodeProduct(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger) (*service.ProductCreateDto, bool) {
	var dto service.ProductCreateDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	if err := h.validate.Struct(dto); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			message := fieldErrorMessage(validationErrors[0])
			mLogger.WarnContext(r.Context(), "Validation error", "error", message)
			web.RespondError(w, mLogger, http.StatusBadRequest, message)
			return nil, false
		}
		mLogger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	return &dto, true
}

// fieldErrorMessage maps a tag failure onto the catalog's canonical
// validation messages so the envelope text does not depend on which layer
// caught the problem.
func fieldErrorMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Field() {
	case "Name":
		if fieldErr.Tag() == "max" {
			return "Product name must be at most 100 characters"
		}
		return "Product name is required"
	case "Price":
		return "Price must be positive"
	case "Stock":
		return "Stock cannot be negative"
	default:
		return fieldErr.Field() + " failed on rule: " + fieldErr.Tag()
	}
}

// respondServiceError translates service errors onto the envelope:
// validation failures are 400, missing products 404, the rest 500.
func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger, err error, internalMsg string) {
	var ve *cerrors.ValidationError
	switch {
	case errors.As(err, &ve):
		mLogger.WarnContext(r.Context(), "Validation error", "error", ve.Message)
		web.RespondError(w, mLogger, http.StatusBadRequest, ve.Message)
	case errors.Is(err, cerrors.ErrProductNotFound):
		mLogger.WarnContext(r.Context(), "Product not found", "error", err)
		web.RespondError(w, mLogger, http.StatusNotFound, "Product not found")
	default:
		mLogger.ErrorContext(r.Context(), internalMsg, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, internalMsg)
	}
}

func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	if reqID, ok := web.GetRequestID(r.Context()); ok {
		return h.logger.With("request_id", reqID)
	}
	return h.logger
}
