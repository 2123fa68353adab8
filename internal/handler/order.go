package handler

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/pizza-order-service/internal/authz"
	"github.com/iliyamo/pizza-order-service/internal/middleware"
	"github.com/iliyamo/pizza-order-service/internal/model"
	"github.com/iliyamo/pizza-order-service/internal/queue"
	"github.com/iliyamo/pizza-order-service/internal/repository"
	"github.com/iliyamo/pizza-order-service/internal/service"
)

// OrderHandler serves the menu and order endpoints, composing the
// persistence layer with the external fulfillment factory.
type OrderHandler struct {
	Orders  *repository.OrderRepo
	Factory *service.FactoryClient
	// Publish emits the order-placed event; swapped out in tests.
	Publish func(ctx context.Context, event queue.OrderPlacedEvent) error
}

func NewOrderHandler(o *repository.OrderRepo, f *service.FactoryClient) *OrderHandler {
	return &OrderHandler{Orders: o, Factory: f, Publish: service.PublishOrderPlaced}
}

type addMenuItemReq struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
}

type createOrderReq struct {
	FranchiseID uint64            `json:"franchiseId"`
	StoreID     uint64            `json:"storeId"`
	Items       []model.OrderItem `json:"items"`
}

type createOrderResp struct {
	Order     *model.Order `json:"order"`
	JWT       string       `json:"jwt"`
	ReportURL string       `json:"reportUrl,omitempty"`
}

// Menu returns the full menu. Public.
func (h *OrderHandler) Menu(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	menu, err := h.Orders.Menu(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, menu)
}

// AddMenuItem appends an item to the menu and returns the full menu
// afterwards. Admin only.
func (h *OrderHandler) AddMenuItem(c echo.Context) error {
	if !authz.Authorized(middleware.AuthUser(c), authz.ActionAddMenuItem, authz.Resource{}) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "unable to add menu item"})
	}
	var req addMenuItemReq
	if err := c.Bind(&req); err != nil || req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "menu item title is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Orders.AddMenuItem(ctx, &model.MenuItem{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Price:       req.Price,
	}); err != nil {
		return writeError(c, err)
	}
	menu, err := h.Orders.Menu(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, menu)
}

// History returns one page of the caller's order history. ?page
// defaults to 1 and non-numeric values behave as 1.
func (h *OrderHandler) History(c echo.Context) error {
	caller := middleware.AuthUser(c)
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		page = 1
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	history, err := h.Orders.OrdersForUser(ctx, caller.ID, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, history)
}

// Create persists the order and then asks the factory to fulfill it.
// The order row is never rolled back on factory failure: it is a
// legitimate historical record regardless of fulfillment outcome, so a
// factory error reports 500 while the order remains retrievable.
func (h *OrderHandler) Create(c echo.Context) error {
	caller := middleware.AuthUser(c)
	var req createOrderReq
	if err := c.Bind(&req); err != nil || len(req.Items) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "order items are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	order, err := h.Orders.Create(ctx, caller.ID, &model.Order{
		FranchiseID: req.FranchiseID,
		StoreID:     req.StoreID,
		Items:       req.Items,
	})
	if err != nil {
		return writeError(c, err)
	}

	h.publishPlaced(ctx, order)

	result, err := h.Factory.Fulfill(ctx, caller, order)
	if err != nil {
		resp := echo.Map{"message": "Failed to fulfill order at factory"}
		if result != nil && result.ReportURL != "" {
			resp["reportUrl"] = result.ReportURL
		}
		return c.JSON(http.StatusInternalServerError, resp)
	}
	return c.JSON(http.StatusOK, createOrderResp{Order: order, JWT: result.JWT, ReportURL: result.ReportURL})
}

// publishPlaced emits the order event; failures are logged inside the
// publisher and never affect the response.
func (h *OrderHandler) publishPlaced(ctx context.Context, order *model.Order) {
	total := 0.0
	for _, it := range order.Items {
		total += it.Price
	}
	if h.Publish == nil {
		return
	}
	if err := h.Publish(ctx, queue.OrderPlacedEvent{
		OrderID:     order.ID,
		DinerID:     order.DinerID,
		FranchiseID: order.FranchiseID,
		StoreID:     order.StoreID,
		ItemCount:   len(order.Items),
		Total:       total,
		PlacedAt:    order.Date.Format(time.RFC3339),
	}); err != nil {
		log.Printf("order %d: placed event not published", order.ID)
	}
}
