package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	authhandlers "slicesite/internal/auth/handlers"
	"slicesite/internal/common/httpx"
	"slicesite/internal/common/logger"
	"slicesite/internal/domain"
	"slicesite/internal/orders/service"
)

// Guard is the authorization middleware supplied by the auth collaborator.
type Guard interface {
	RequireUser(next http.HandlerFunc) http.HandlerFunc
	RequireAdmin(next http.HandlerFunc) http.HandlerFunc
}

type OrderHandler struct {
	service service.OrderServiceInterface
	log     *logger.Logger
}

func NewOrderHandler(s service.OrderServiceInterface, log *logger.Logger) *OrderHandler {
	return &OrderHandler{service: s, log: log}
}

func (oh *OrderHandler) RegisterRoutes(r *mux.Router, guard Guard) {
	r.HandleFunc("/orders", guard.RequireUser(oh.CreateOrder)).Methods("POST")
	r.HandleFunc("/orders/me", guard.RequireUser(oh.ListMyOrders)).Methods("GET")
	r.HandleFunc("/orders/{id:[0-9]+}", guard.RequireUser(oh.GetOrder)).Methods("GET")
	r.HandleFunc("/orders", guard.RequireAdmin(oh.ListAllOrders)).Methods("GET")
}

func (oh *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	user, _ := authhandlers.UserFrom(r.Context())

	var req domain.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "invalid_json", "Invalid JSON body")
		return
	}

	order, err := oh.service.CreateOrder(r.Context(), user.ID, req.Cart())
	if err != nil {
		var notFound *domain.ItemNotFoundError
		switch {
		case errors.As(err, &notFound):
			httpx.WriteProblem(w, http.StatusBadRequest, "item_not_found", notFound.Error())
		case errors.Is(err, domain.ErrEmptyCart), errors.Is(err, domain.ErrInvalidQuantity):
			httpx.WriteProblem(w, http.StatusBadRequest, "invalid_cart", err.Error())
		default:
			oh.log.Error("create_order", err, map[string]any{"user_id": user.ID})
			httpx.WriteProblem(w, http.StatusInternalServerError, "storage_error", "failed to create order")
		}
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, domain.NewOrderResponse(order))
}

func (oh *OrderHandler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	user, _ := authhandlers.UserFrom(r.Context())
	skip := httpx.AtoiDefault(r.URL.Query().Get("skip"), 0)
	limit := httpx.AtoiDefault(r.URL.Query().Get("limit"), 100)

	orders, err := oh.service.ListMyOrders(r.Context(), user.ID, skip, limit)
	if err != nil {
		oh.log.Error("list_my_orders", err, map[string]any{"user_id": user.ID})
		httpx.WriteProblem(w, http.StatusInternalServerError, "storage_error", "failed to list orders")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, domain.NewOrderResponses(orders))
}

func (oh *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	user, _ := authhandlers.UserFrom(r.Context())
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "invalid_id", "order id must be an integer")
		return
	}

	order, err := oh.service.GetOrder(r.Context(), user.ID, id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderNotFound):
			httpx.WriteProblem(w, http.StatusNotFound, "not_found", "Order not found")
		case errors.Is(err, domain.ErrForbidden):
			httpx.WriteProblem(w, http.StatusForbidden, "forbidden", "Not authorized to access this order")
		default:
			oh.log.Error("get_order", err, map[string]any{"order_id": id})
			httpx.WriteProblem(w, http.StatusInternalServerError, "storage_error", "failed to get order")
		}
		return
	}
	httpx.WriteJSON(w, http.StatusOK, domain.NewOrderResponse(order))
}

// ListAllOrders backs the privileged listing; RequireAdmin guards the route.
func (oh *OrderHandler) ListAllOrders(w http.ResponseWriter, r *http.Request) {
	skip := httpx.AtoiDefault(r.URL.Query().Get("skip"), 0)
	limit := httpx.AtoiDefault(r.URL.Query().Get("limit"), 100)

	orders, err := oh.service.ListAllOrders(r.Context(), skip, limit)
	if err != nil {
		oh.log.Error("list_all_orders", err, nil)
		httpx.WriteProblem(w, http.StatusInternalServerError, "storage_error", "failed to list orders")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, domain.NewOrderResponses(orders))
}
