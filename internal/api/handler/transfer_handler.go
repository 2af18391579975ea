package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/horizonbank/banking-api/internal/api/metrics"
	"github.com/horizonbank/banking-api/internal/api/middleware"
	"github.com/horizonbank/banking-api/internal/core/ports"
)

// TransferHandler handles payments between linked accounts.
type TransferHandler struct {
	transferService ports.TransferService
	bankService     ports.BankService
}

func NewTransferHandler(transferService ports.TransferService, bankService ports.BankService) *TransferHandler {
	return &TransferHandler{transferService: transferService, bankService: bankService}
}

type transferRequest struct {
	SenderBankID string `json:"senderBankId" validate:"required"`
	ShareableID  string `json:"shareableId"  validate:"required"`
	Amount       string `json:"amount"       validate:"required"`
}

// Create initiates a transfer from one of the signed-in user's banks to the
// account behind a shareable ID.
//
// @Summary      Create a transfer
// @Tags         transfers
// @Accept       json
// @Produce      json
// @Param        body  body      transferRequest  true  "Transfer details"
// @Success      201   {object}  ports.TransferResult
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /v1/transfers [post]
func (h *TransferHandler) Create(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
	}

	var req transferRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	// The sender bank must belong to the signed-in user.
	sender, err := h.bankService.GetBank(c.Request().Context(), req.SenderBankID)
	if err != nil {
		return err
	}
	if sender.UserID != user.ID {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "bank account not found"})
	}

	result, err := h.transferService.Transfer(c.Request().Context(), ports.TransferInput{
		SenderBankDocumentID: req.SenderBankID,
		RecipientShareableID: req.ShareableID,
		Amount:               req.Amount,
	})
	if err != nil {
		metrics.TransfersTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.TransfersTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusCreated, result)
}
