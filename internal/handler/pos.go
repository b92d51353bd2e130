package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"sellx/internal/apierror"
	"sellx/internal/dto"
	"sellx/internal/middleware"
	"sellx/internal/service"
)

// POSHandler exposes the checkout engine: one route per session operation.
type POSHandler struct {
	svc service.CheckoutService
}

func NewPOSHandler(svc service.CheckoutService) *POSHandler {
	return &POSHandler{svc: svc}
}

func (h *POSHandler) OpenSession(c *gin.Context) {
	var req dto.OpenSessionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	operatorID, err := uuid.Parse(middleware.GetClaims(c).UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Malformed token"))
		return
	}
	resp, err := h.svc.Open(c.Request.Context(), operatorID, req.RegisterID)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *POSHandler) GetSession(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Scan adds a scanned or typed product to the cart. Stock-guard overrides and
// open-price entries come back through the same endpoint with confirm=true or
// unit_price set.
func (h *POSHandler) Scan(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ScanRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Scan(c.Request.Context(), id, req)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *POSHandler) UpdateItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	lineID, ok := pathID(c, "lineId")
	if !ok {
		return
	}
	var req dto.UpdateItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateItem(c.Request.Context(), id, lineID, req)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *POSHandler) RemoveItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	lineID, ok := pathID(c, "lineId")
	if !ok {
		return
	}
	resp, err := h.svc.RemoveItem(c.Request.Context(), id, lineID)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *POSHandler) AttachCustomer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.AttachCustomerRequest
	if !bindAndValidate(c, &req) {
		return
	}
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid customer id"))
		return
	}
	resp, err := h.svc.AttachCustomer(c.Request.Context(), id, customerID)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *POSHandler) DetachCustomer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.DetachCustomer(c.Request.Context(), id)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *POSHandler) SetDiscount(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.DiscountRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SetDiscount(c.Request.Context(), id, req)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *POSHandler) RedeemLoyalty(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.LoyaltyRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RedeemLoyalty(c.Request.Context(), id, req.Points)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *POSHandler) AddPayment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.AddPaymentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddPayment(c.Request.Context(), id, req)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *POSHandler) RemovePayment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	paymentID, ok := pathID(c, "payId")
	if !ok {
		return
	}
	resp, err := h.svc.RemovePayment(c.Request.Context(), id, paymentID)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *POSHandler) Finalize(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.FinalizeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Finalize(c.Request.Context(), id, req)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *POSHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Cancel(c.Request.Context(), id); err != nil {
		writeEngineError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return uuid.Nil, false
	}
	return id, true
}
