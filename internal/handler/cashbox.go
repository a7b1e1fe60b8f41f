package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/muhammadcoderr/smartdokonv3-server/internal/apierror"
	"github.com/muhammadcoderr/smartdokonv3-server/internal/dto"
	"github.com/muhammadcoderr/smartdokonv3-server/internal/middleware"
	"github.com/muhammadcoderr/smartdokonv3-server/internal/service"
)

type CashboxHandler struct {
	svc       service.CashboxService
	handovers service.HandoverService
}

func NewCashboxHandler(svc service.CashboxService, handovers service.HandoverService) *CashboxHandler {
	return &CashboxHandler{svc: svc, handovers: handovers}
}

func (h *CashboxHandler) Get(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CashboxHandler) Deposit(c *gin.Context) {
	var req dto.DepositRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Deposit(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CashboxHandler) Expense(c *gin.Context) {
	var req dto.ExpenseRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Expense(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CashboxHandler) ReverseTransaction(c *gin.Context) {
	var req dto.ReverseTransactionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	id, err := uuid.Parse(req.TransactionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.Validation("invalid transactionId"))
		return
	}
	resp, err := h.svc.ReverseTransaction(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CashboxHandler) ListTransactions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	resp, err := h.svc.ListTransactions(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CashboxHandler) CreateHandover(c *gin.Context) {
	var req dto.CreateHandoverRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	employeeID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.Validation("invalid user id"))
		return
	}
	resp, err := h.handovers.Create(c.Request.Context(), employeeID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CashboxHandler) AcceptHandover(c *gin.Context) {
	var req dto.AcceptHandoverRequest
	if !bindAndValidate(c, &req) {
		return
	}
	handoverID, err := uuid.Parse(req.HandoverID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.Validation("invalid handoverId"))
		return
	}
	claims := middleware.GetClaims(c)
	supervisorID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.Validation("invalid user id"))
		return
	}
	resp, err := h.handovers.Accept(c.Request.Context(), supervisorID, handoverID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CashboxHandler) CancelHandover(c *gin.Context) {
	var req dto.CancelHandoverRequest
	if !bindAndValidate(c, &req) {
		return
	}
	handoverID, err := uuid.Parse(req.HandoverID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.Validation("invalid handoverId"))
		return
	}
	claims := middleware.GetClaims(c)
	actorID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.Validation("invalid user id"))
		return
	}
	resp, err := h.handovers.Cancel(c.Request.Context(), actorID, handoverID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CashboxHandler) ListHandovers(c *gin.Context) {
	claims := middleware.GetClaims(c)
	sellerID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.Validation("invalid user id"))
		return
	}
	resp, err := h.handovers.History(c.Request.Context(), sellerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CashboxHandler) Supervisors(c *gin.Context) {
	resp, err := h.handovers.Supervisors(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
