package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"modamart/internal/common"
	"modamart/internal/models"
	"modamart/internal/services"

	"github.com/labstack/echo/v4"
)

// OrderHandlers handles HTTP requests for the admin order surface
type OrderHandlers struct {
	queryService      services.OrderQueryService
	transitionService services.OrderTransitionService
	dashboardService  services.DashboardService
}

// NewOrderHandlers creates a new order handlers instance
func NewOrderHandlers(queryService services.OrderQueryService, transitionService services.OrderTransitionService, dashboardService services.DashboardService) *OrderHandlers {
	return &OrderHandlers{
		queryService:      queryService,
		transitionService: transitionService,
		dashboardService:  dashboardService,
	}
}

// respondServiceError maps service errors onto the shared error envelope.
func respondServiceError(c echo.Context, err error) error {
	var validationErr *common.ValidationError
	if errors.As(err, &validationErr) {
		return common.SendValidationError(c, validationErr.Field, validationErr.Message)
	}
	var notFoundErr *common.NotFoundError
	if errors.As(err, &notFoundErr) {
		return common.SendNotFoundError(c, notFoundErr.Resource)
	}
	log.Printf("ERROR: %v", err)
	return common.SendServerError(c, "Internal server error")
}

// GetOrders handles GET /orders
func (h *OrderHandlers) GetOrders(c echo.Context) error {
	ctx := c.Request().Context()

	statusParam := c.QueryParam("order_status_id")
	if statusParam == "" {
		return common.SendValidationError(c, "order_status_id", "order_status_id is required")
	}
	statusID, err := strconv.ParseInt(statusParam, 10, 64)
	if err != nil {
		return common.SendValidationError(c, "order_status_id", "order_status_id must be an integer")
	}

	filter := &models.OrderSearchFilter{StatusID: statusID}

	if v := c.QueryParam("seller_id"); v != "" {
		sellerID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return common.SendValidationError(c, "seller_id", "seller_id must be an integer")
		}
		filter.SellerID = &sellerID
	}

	setIfPresent := func(name string, dst **string) {
		if v := c.QueryParam(name); v != "" {
			*dst = &v
		}
	}
	setIfPresent("order_number", &filter.OrderNumber)
	setIfPresent("detail_order_number", &filter.DetailOrderNumber)
	setIfPresent("orderer_username", &filter.OrdererUsername)
	setIfPresent("orderer_phone", &filter.OrdererPhone)
	setIfPresent("product_title", &filter.ProductTitle)

	if v := c.QueryParam("start_date"); v != "" {
		if err := common.ValidateDateFormat(v, "start_date"); err != nil {
			return common.SendValidationError(c, "start_date", err.Error())
		}
		start, _ := services.ParseSearchDate(v)
		filter.StartDate = start
	}
	if v := c.QueryParam("end_date"); v != "" {
		if err := common.ValidateDateFormat(v, "end_date"); err != nil {
			return common.SendValidationError(c, "end_date", err.Error())
		}
		end, _ := services.ParseSearchDate(v)
		filter.EndDate = end
	}

	if v := c.QueryParam("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			return common.SendValidationError(c, "page", "page must be an integer")
		}
		filter.Page = page
	}
	if v := c.QueryParam("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return common.SendValidationError(c, "limit", "limit must be an integer")
		}
		filter.Limit = limit
	}

	result, err := h.queryService.ListOrders(ctx, filter)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// PatchOrders handles PATCH /orders
func (h *OrderHandlers) PatchOrders(c echo.Context) error {
	ctx := c.Request().Context()

	accountID, ok := common.GetAccountIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Account not found")
	}

	var req struct {
		OrderList []models.StatusChangeRequest `json:"order_list"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	rejected, err := h.transitionService.PatchStatuses(ctx, req.OrderList, accountID)
	if err != nil {
		return respondServiceError(c, err)
	}

	if rejected == nil {
		rejected = []models.RejectedChange{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"rejected": rejected,
	})
}

// GetOrder handles GET /order
func (h *OrderHandlers) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	detailOrderNumber := c.QueryParam("detail_order_number")
	result, err := h.queryService.GetOrder(ctx, detailOrderNumber)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// GetStatusTypes handles GET /order-status-types
func (h *OrderHandlers) GetStatusTypes(c echo.Context) error {
	types, err := h.queryService.ListStatusTypes(c.Request().Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"order_status_types": types,
	})
}

// GetSellerDashboard handles GET /dashboard/seller
func (h *OrderHandlers) GetSellerDashboard(c echo.Context) error {
	ctx := c.Request().Context()

	sellerParam := c.QueryParam("seller_id")
	if sellerParam == "" {
		return common.SendValidationError(c, "seller_id", "seller_id is required")
	}
	sellerID, err := strconv.ParseInt(sellerParam, 10, 64)
	if err != nil {
		return common.SendValidationError(c, "seller_id", "seller_id must be an integer")
	}

	dashboard, err := h.dashboardService.SellerDashboard(ctx, sellerID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dashboard)
}
