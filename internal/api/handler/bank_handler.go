package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/horizonbank/banking-api/internal/api/middleware"
	"github.com/horizonbank/banking-api/internal/core/domain"
	"github.com/horizonbank/banking-api/internal/core/ports"
)

// BankHandler handles the bank-record and account-view routes.
type BankHandler struct {
	bankService ports.BankService
}

func NewBankHandler(bankService ports.BankService) *BankHandler {
	return &BankHandler{bankService: bankService}
}

type banksResponse struct {
	Banks []*domain.BankAccount `json:"banks"`
}

// ListBanks returns the signed-in user's linked bank records.
//
// @Summary      List linked banks
// @Tags         banks
// @Produce      json
// @Success      200  {object}  banksResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/banks [get]
func (h *BankHandler) ListBanks(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
	}

	banks, err := h.bankService.GetBanks(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	if banks == nil {
		banks = []*domain.BankAccount{}
	}
	return c.JSON(http.StatusOK, banksResponse{Banks: banks})
}

// GetBank returns one bank record by document ID. Records belonging to a
// different user are reported as not found.
//
// @Summary      Get a bank record
// @Tags         banks
// @Produce      json
// @Param        id   path      string  true  "Bank document ID"
// @Success      200  {object}  domain.BankAccount
// @Failure      404  {object}  errorResponse
// @Router       /v1/banks/{id} [get]
func (h *BankHandler) GetBank(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
	}

	bank, err := h.bankService.GetBank(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if bank.UserID != user.ID {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "bank account not found"})
	}
	return c.JSON(http.StatusOK, bank)
}

// ListAccounts returns the aggregator-backed home summary for the signed-in
// user.
//
// @Summary      List accounts with balances
// @Tags         accounts
// @Produce      json
// @Success      200  {object}  ports.AccountsSummary
// @Failure      401  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /v1/accounts [get]
func (h *BankHandler) ListAccounts(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
	}

	summary, err := h.bankService.GetAccounts(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

// GetAccount returns one account view with its recent transactions.
//
// @Summary      Get an account with transactions
// @Tags         accounts
// @Produce      json
// @Param        id   path      string  true  "Bank document ID"
// @Success      200  {object}  ports.AccountDetail
// @Failure      404  {object}  errorResponse
// @Router       /v1/accounts/{id} [get]
func (h *BankHandler) GetAccount(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
	}

	detail, err := h.bankService.GetAccount(c.Request().Context(), user.ID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}
