package handlers

import (
	"log"
	"net/http"

	"dealerstock/internal/common"
	"dealerstock/internal/models"
	"dealerstock/internal/services"

	"github.com/labstack/echo/v4"
)

// OrderHandlers handles HTTP requests for orders
type OrderHandlers struct {
	orderService services.OrderServiceInterface
}

func NewOrderHandlers(orderService services.OrderServiceInterface) *OrderHandlers {
	return &OrderHandlers{orderService: orderService}
}

// CreateOrder handles POST /orders
func (h *OrderHandlers) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	req := &models.OrderCreateRequest{}
	if err := c.Bind(req); err != nil {
		return common.SendClientError(c, "invalid request format")
	}

	order, err := h.orderService.CreateOrder(ctx, req)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, order)
}

// GetAllOrders handles GET /orders. Internal failures degrade to an empty
// list so list consumers stay simple.
func (h *OrderHandlers) GetAllOrders(c echo.Context) error {
	orders, err := h.orderService.GetAllOrders(c.Request().Context())
	if err != nil {
		log.Printf("list orders: %v", err)
		return c.JSON(http.StatusOK, []*models.OrderDetail{})
	}
	return c.JSON(http.StatusOK, orders)
}

// GetOrderByID handles GET /orders/:id
func (h *OrderHandlers) GetOrderByID(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}
	order, err := h.orderService.GetOrderByID(c.Request().Context(), id)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// GetOrderByNumber handles GET /orders/number/:orderNumber
func (h *OrderHandlers) GetOrderByNumber(c echo.Context) error {
	order, err := h.orderService.GetOrderByNumber(c.Request().Context(), c.Param("orderNumber"))
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// GetOrdersByUserID handles GET /orders/user/:userId. A missing user is
// still a 404; internal failures degrade like the other list endpoints.
func (h *OrderHandlers) GetOrdersByUserID(c echo.Context) error {
	userID, err := common.ValidateUUID(c.Param("userId"), "userId")
	if err != nil {
		return common.SendError(c, err)
	}
	orders, err := h.orderService.GetOrdersByUserID(c.Request().Context(), userID)
	if err != nil {
		if common.IsInternal(err) {
			log.Printf("list orders by user: %v", err)
			return c.JSON(http.StatusOK, []*models.OrderDetail{})
		}
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

// GetOrdersByStatus handles GET /orders/status/:status
func (h *OrderHandlers) GetOrdersByStatus(c echo.Context) error {
	orders, err := h.orderService.GetOrdersByStatus(c.Request().Context(), c.Param("status"))
	if err != nil {
		if common.IsInternal(err) {
			log.Printf("list orders by status: %v", err)
			return c.JSON(http.StatusOK, []*models.OrderDetail{})
		}
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

// GetOrdersByDateRange handles GET /orders/date-range?startDate&endDate
func (h *OrderHandlers) GetOrdersByDateRange(c echo.Context) error {
	startDate, err := common.ParseTimestamp(c.QueryParam("startDate"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, common.ErrorResponse{Error: "Invalid date format", Message: err.Error()})
	}
	endDate, err := common.ParseTimestamp(c.QueryParam("endDate"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, common.ErrorResponse{Error: "Invalid date format", Message: err.Error()})
	}

	orders, err := h.orderService.GetOrdersByDateRange(c.Request().Context(), startDate, endDate)
	if err != nil {
		if common.IsInternal(err) {
			log.Printf("list orders by date range: %v", err)
			return c.JSON(http.StatusOK, []*models.OrderDetail{})
		}
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

// UpdateOrder handles PUT /orders/:id. Only status, notes, payment method
// and delivery date can change.
func (h *OrderHandlers) UpdateOrder(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}
	req := &models.OrderUpdateRequest{}
	if err := c.Bind(req); err != nil {
		return common.SendClientError(c, "invalid request format")
	}

	order, err := h.orderService.UpdateOrder(c.Request().Context(), id, req)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus handles PATCH /orders/:id/status/:status
func (h *OrderHandlers) UpdateOrderStatus(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}
	order, err := h.orderService.UpdateOrderStatus(c.Request().Context(), id, c.Param("status"))
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// DeleteOrder handles DELETE /orders/:id
func (h *OrderHandlers) DeleteOrder(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}
	if err := h.orderService.DeleteOrder(c.Request().Context(), id); err != nil {
		return common.SendError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
