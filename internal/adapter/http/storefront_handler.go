package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"resto-platform/internal/adapter/logger"
	"resto-platform/internal/domain"
	"resto-platform/internal/interfaces"
	"resto-platform/internal/pricing"
)

type StorefrontHandler struct {
	service interfaces.StorefrontService
	logger  logger.Logger
}

func NewStorefrontHandler(service interfaces.StorefrontService, lgr logger.Logger) *StorefrontHandler {
	return &StorefrontHandler{service: service, logger: lgr}
}

func (h *StorefrontHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/restaurants", h.ListRestaurants)
	r.Get("/foods", h.ListFoods)
	r.Get("/menus", h.ListMenus)
	r.Get("/recommendations", h.Recommendations)
	r.Get("/blog", h.ListBlogPosts)
	r.Post("/cart/estimate", h.EstimateCart)
	r.Post("/commands", h.PlaceCommand)
	return r
}

func (h *StorefrontHandler) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.service.ListRestaurants(r.Context())
	if err != nil {
		h.logger.Error("restaurants_list_failed", "Failed to list restaurants", "", nil, err)
		respondError(w, http.StatusInternalServerError, "failed to list restaurants")
		return
	}
	respondJSON(w, http.StatusOK, restaurants)
}

func (h *StorefrontHandler) ListFoods(w http.ResponseWriter, r *http.Request) {
	filter := domain.FoodFilter{
		Lang:     r.URL.Query().Get("lang"),
		Category: r.URL.Query().Get("category"),
	}
	if raw := r.URL.Query().Get("restaurant_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid restaurant_id")
			return
		}
		filter.RestaurantID = &id
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = limit
	}

	foods, err := h.service.ListFoods(r.Context(), filter)
	if err != nil {
		h.logger.Error("foods_list_failed", "Failed to list foods", "", nil, err)
		respondError(w, http.StatusInternalServerError, "failed to list foods")
		return
	}
	respondJSON(w, http.StatusOK, foods)
}

func (h *StorefrontHandler) ListMenus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.URL.Query().Get("restaurant_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "restaurant_id is required")
		return
	}

	menus, err := h.service.ListMenus(r.Context(), id)
	if err != nil {
		h.logger.Error("menus_list_failed", "Failed to list menus", "", nil, err)
		respondError(w, http.StatusInternalServerError, "failed to list menus")
		return
	}
	respondJSON(w, http.StatusOK, menus)
}

func (h *StorefrontHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.URL.Query().Get("restaurant_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "restaurant_id is required")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
	}

	foods, err := h.service.Recommendations(r.Context(), id, limit)
	if err != nil {
		h.logger.Error("recommendations_failed", "Failed to load recommendations", "", nil, err)
		respondError(w, http.StatusInternalServerError, "failed to load recommendations")
		return
	}
	respondJSON(w, http.StatusOK, foods)
}

func (h *StorefrontHandler) ListBlogPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListBlogPosts(r.Context())
	if err != nil {
		h.logger.Error("blog_list_failed", "Failed to list blog posts", "", nil, err)
		respondError(w, http.StatusInternalServerError, "failed to list blog posts")
		return
	}
	respondJSON(w, http.StatusOK, posts)
}

type EstimateResponse struct {
	Breakdown    *pricing.CommandBreakdown `json:"breakdown"`
	TotalDisplay string                    `json:"total_display"`
}

func (h *StorefrontHandler) EstimateCart(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.decodeDraft(w, r)
	if !ok {
		return
	}

	bd, err := h.service.EstimateCart(r.Context(), draft)
	if err != nil {
		h.respondDraftError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, EstimateResponse{
		Breakdown:    bd,
		TotalDisplay: pricing.Format(domain.NewMoney(bd.Total, bd.Currency)),
	})
}

type PlaceCommandResponse struct {
	ID           string `json:"id"`
	Code         int    `json:"code"`
	Total        int64  `json:"total"`
	TotalDisplay string `json:"total_display"`
}

func (h *StorefrontHandler) PlaceCommand(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.decodeDraft(w, r)
	if !ok {
		return
	}

	cmd, err := h.service.PlaceCommand(r.Context(), draft)
	if err != nil {
		h.respondDraftError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, PlaceCommandResponse{
		ID:           cmd.ID.String(),
		Code:         cmd.Code,
		Total:        cmd.TotalPrice.Amount,
		TotalDisplay: pricing.Format(cmd.TotalPrice),
	})
}

func (h *StorefrontHandler) decodeDraft(w http.ResponseWriter, r *http.Request) (interfaces.CommandDraft, bool) {
	var req CommandDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return interfaces.CommandDraft{}, false
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return interfaces.CommandDraft{}, false
	}
	return req.toDraft(), true
}

func (h *StorefrontHandler) respondDraftError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pricing.ErrComputationFault):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrInvalidCommandType):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("cart_action_failed", "Cart action failed", "", nil, err)
		respondError(w, http.StatusBadRequest, err.Error())
	}
}
