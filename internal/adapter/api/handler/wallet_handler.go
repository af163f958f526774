package handler

import (
	"log"

	"github.com/labstack/echo/v4"

	"mercato/internal/usecase"
	"mercato/pkg/response"
	"mercato/pkg/utils"
)

type WalletHandler struct {
	walletUseCase *usecase.WalletUseCase
}

func NewWalletHandler(walletUseCase *usecase.WalletUseCase) *WalletHandler {
	return &WalletHandler{
		walletUseCase: walletUseCase,
	}
}

func (h *WalletHandler) GetWallet(c echo.Context) error {
	sellerID, err := getUserID(c)
	if err != nil {
		return err
	}

	wallet, err := h.walletUseCase.GetWalletBySellerID(c.Request().Context(), sellerID)
	if err != nil {
		log.Printf("Error getting wallet: %v", err)
		return response.Error(c, err)
	}

	return response.Success(c, wallet)
}

func (h *WalletHandler) GetWalletEntries(c echo.Context) error {
	sellerID, err := getUserID(c)
	if err != nil {
		return err
	}
	pagination := utils.PaginationFromContext(c)

	entries, err := h.walletUseCase.GetWalletEntries(c.Request().Context(), sellerID, pagination)
	if err != nil {
		log.Printf("Error getting wallet entries: %v", err)
		return response.Error(c, err)
	}

	return response.Success(c, entries)
}

// Admin endpoint for platform-wide wallet monitoring.
func (h *WalletHandler) GetWalletStatistics(c echo.Context) error {
	stats, err := h.walletUseCase.GetStatistics(c.Request().Context())
	if err != nil {
		log.Printf("Error getting wallet statistics: %v", err)
		return response.Error(c, err)
	}

	return response.Success(c, stats)
}
