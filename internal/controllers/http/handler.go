package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront-order-service/internal/domain"
	"storefront-order-service/internal/services"
)

type Handler struct {
	cart     *services.CartService
	checkout *services.CheckoutService
	status   *services.StatusService
	feedback *services.FeedbackService
	queries  *services.OrderQueryService
}

func NewHandler(
	cart *services.CartService,
	checkout *services.CheckoutService,
	status *services.StatusService,
	feedback *services.FeedbackService,
	queries *services.OrderQueryService,
) *Handler {
	return &Handler{
		cart:     cart,
		checkout: checkout,
		status:   status,
		feedback: feedback,
		queries:  queries,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authed := r.Group("/", RequireUser())
	authed.GET("/cart", h.ListCart)
	authed.POST("/cart/items", h.AddCartLine)
	authed.DELETE("/cart/items/:lineId", h.RemoveCartLine)
	authed.POST("/checkout", h.Checkout)
	authed.GET("/orders", h.ListOrders)
	authed.GET("/orders/:orderId", h.GetOrder)
	authed.PATCH("/orders/:orderId/status", h.SetOrderStatus)
	authed.GET("/orders/:orderId/feedback/eligibility", h.FeedbackEligibility)
	authed.POST("/orders/:orderId/feedback", h.SubmitFeedback)
}

func (h *Handler) ListCart(c *gin.Context) {
	lines, err := h.cart.ListLines(c.Request.Context(), username(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lines": lines})
}

func (h *Handler) AddCartLine(c *gin.Context) {
	var req AddCartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	line, err := h.cart.AddOrMergeLine(c.Request.Context(), username(c), req.ProductID, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, line)
}

func (h *Handler) RemoveCartLine(c *gin.Context) {
	lineID, ok := parseID(c, "lineId")
	if !ok {
		return
	}
	if err := h.cart.RemoveLine(c.Request.Context(), username(c), lineID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var card *services.CardDetails
	if req.Card != nil {
		card = &services.CardDetails{
			Number: req.Card.Number,
			CVV:    req.Card.CVV,
			Expiry: req.Card.Expiry,
		}
	}

	shipping := domain.ShippingDetails{
		Name:    req.Shipping.Name,
		Address: req.Shipping.Address,
		City:    req.Shipping.City,
		State:   req.Shipping.State,
		Zip:     req.Shipping.Zip,
	}

	result, err := h.checkout.PlaceOrder(c.Request.Context(), username(c), shipping, req.PaymentMethod, card)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, CheckoutResponse{
		OrderID:    result.OrderID,
		GrandTotal: result.GrandTotal,
		Status:     result.Status,
	})
}

func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.queries.ListOrders(c.Request.Context(), username(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *Handler) GetOrder(c *gin.Context) {
	orderID, ok := parseID(c, "orderId")
	if !ok {
		return
	}
	order, err := h.queries.GetOrder(c.Request.Context(), username(c), orderID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) SetOrderStatus(c *gin.Context) {
	orderID, ok := parseID(c, "orderId")
	if !ok {
		return
	}
	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.status.SetStatus(c.Request.Context(), orderID, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, SetStatusResponse{Updated: updated, Status: req.Status})
}

func (h *Handler) FeedbackEligibility(c *gin.Context) {
	orderID, ok := parseID(c, "orderId")
	if !ok {
		return
	}
	eligible, err := h.feedback.IsEligible(c.Request.Context(), username(c), orderID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, EligibilityResponse{Eligible: eligible})
}

func (h *Handler) SubmitFeedback(c *gin.Context) {
	orderID, ok := parseID(c, "orderId")
	if !ok {
		return
	}
	var req SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fb, err := h.feedback.SubmitFeedback(c.Request.Context(), username(c), orderID, req.ProductID, req.Rating, req.Comment)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fb)
}

func parseID(c *gin.Context, param string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": param + " must be a positive integer"})
		return 0, false
	}
	return id, true
}

// writeError maps the service error taxonomy to HTTP. Validation problems
// echo their message; storage failures get a contact-support message, never
// the driver error text.
func writeError(c *gin.Context, err error) {
	var (
		ve *domain.ValidationError
		ne *domain.NotFoundError
		te *domain.TerminalStateError
		de *domain.DuplicateFeedbackError
	)
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Msg})
	case errors.As(err, &ne):
		c.JSON(http.StatusNotFound, gin.H{"error": ne.Msg})
	case errors.As(err, &te):
		c.JSON(http.StatusConflict, gin.H{"error": te.Error()})
	case errors.As(err, &de):
		c.JSON(http.StatusConflict, gin.H{"error": de.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "something went wrong on our side, please contact support",
		})
	}
}
