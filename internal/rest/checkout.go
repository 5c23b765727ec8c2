package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"klontong/domain"
	"klontong/pkg/logger"
	"klontong/pkg/response"

	"github.com/labstack/echo/v4"
)

type CheckoutService interface {
	Process(ctx context.Context, items []domain.CheckoutItem) (*domain.CheckoutResult, error)
}

type CheckoutHandler struct {
	checkoutService CheckoutService
	timeout         time.Duration
}

func NewCheckoutHandler(checkoutService CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		timeout:         10 * time.Second,
	}
}

type CheckoutItemRequest struct {
	ProductID uint64 `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type CheckoutRequest struct {
	Items []CheckoutItemRequest `json:"items"`
}

// Process leaves cart emptiness and quantity checks to the service so an
// empty cart surfaces as the same typed error everywhere.
func (h *CheckoutHandler) Process(c echo.Context) error {
	var req CheckoutRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("failed to bind checkout request", err)
		return c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error(), nil))
	}

	items := make([]domain.CheckoutItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = domain.CheckoutItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.checkoutService.Process(ctx, items)
	if err != nil {
		if errors.Is(err, domain.ErrCartEmpty) || errors.Is(err, domain.ErrInvalidQuantity) {
			return c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error(), nil))
		}
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error(), nil))
		}
		logger.Error("failed to process checkout", err)
		return c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error(), nil))
	}

	return c.JSON(http.StatusCreated, response.Success(http.StatusCreated, result))
}
