package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"slicesite/internal/catalog/service"
	"slicesite/internal/common/httpx"
	"slicesite/internal/domain"
)

// Guard is the authorization middleware supplied by the auth collaborator.
type Guard interface {
	RequireAdmin(next http.HandlerFunc) http.HandlerFunc
}

type MenuHandler struct {
	service service.MenuServiceInterface
}

func NewMenuHandler(s service.MenuServiceInterface) *MenuHandler {
	return &MenuHandler{service: s}
}

// RegisterRoutes mounts the menu endpoints on the /api/v1 subrouter.
// Reads are public; writes belong to the catalog administrator.
func (mh *MenuHandler) RegisterRoutes(r *mux.Router, guard Guard) {
	r.HandleFunc("/menu", mh.ListMenuItems).Methods("GET")
	r.HandleFunc("/menu/{id}", mh.GetMenuItem).Methods("GET")
	r.HandleFunc("/menu", guard.RequireAdmin(mh.CreateMenuItem)).Methods("POST")
	r.HandleFunc("/menu/{id}", guard.RequireAdmin(mh.UpdateMenuItem)).Methods("PUT")
	r.HandleFunc("/menu/{id}", guard.RequireAdmin(mh.DeleteMenuItem)).Methods("DELETE")
}

func (mh *MenuHandler) ListMenuItems(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	skip := httpx.AtoiDefault(r.URL.Query().Get("skip"), 0)
	limit := httpx.AtoiDefault(r.URL.Query().Get("limit"), 100)

	items, err := mh.service.ListMenuItems(r.Context(), category, skip, limit)
	if err != nil {
		httpx.WriteProblem(w, http.StatusInternalServerError, "storage_error", "failed to list menu items")
		return
	}
	out := make([]domain.MenuItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, domain.NewMenuItemResponse(it))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (mh *MenuHandler) GetMenuItem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	item, err := mh.service.GetMenuItem(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrMenuItemNotFound) {
			httpx.WriteProblem(w, http.StatusNotFound, "not_found", "Menu item not found")
			return
		}
		httpx.WriteProblem(w, http.StatusInternalServerError, "storage_error", "failed to get menu item")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, domain.NewMenuItemResponse(item))
}

func (mh *MenuHandler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	var req domain.MenuItemCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "invalid_json", "Invalid JSON body")
		return
	}

	item, err := mh.service.CreateMenuItem(r.Context(), domain.MenuItem{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		if errors.Is(err, domain.ErrMenuItemExists) {
			httpx.WriteProblem(w, http.StatusBadRequest, "already_exists",
				fmt.Sprintf("Menu item with ID '%s' already exists.", req.ID))
			return
		}
		httpx.WriteProblem(w, http.StatusBadRequest, "invalid_menu_item", err.Error())
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, domain.NewMenuItemResponse(item))
}

func (mh *MenuHandler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var patch domain.MenuItemUpdate
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "invalid_json", "Invalid JSON body")
		return
	}

	item, err := mh.service.UpdateMenuItem(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, domain.ErrMenuItemNotFound) {
			httpx.WriteProblem(w, http.StatusNotFound, "not_found", "Menu item not found")
			return
		}
		httpx.WriteProblem(w, http.StatusBadRequest, "invalid_menu_item", err.Error())
		return
	}
	httpx.WriteJSON(w, http.StatusOK, domain.NewMenuItemResponse(item))
}

func (mh *MenuHandler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	item, err := mh.service.DeleteMenuItem(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrMenuItemNotFound) {
			httpx.WriteProblem(w, http.StatusNotFound, "not_found", "Menu item not found")
			return
		}
		httpx.WriteProblem(w, http.StatusInternalServerError, "storage_error", "failed to delete menu item")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, domain.NewMenuItemResponse(item))
}
