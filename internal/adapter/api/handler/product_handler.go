package handler

import (
	"log"
	"strconv"

	"github.com/labstack/echo/v4"

	"mercato/internal/usecase"
	"mercato/pkg/response"
	"mercato/pkg/utils"
)

type ProductHandler struct {
	productUseCase *usecase.ProductUseCase
}

func NewProductHandler(productUseCase *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{
		productUseCase: productUseCase,
	}
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req usecase.CreateProductInput
	if err := c.Bind(&req); err != nil {
		log.Printf("Error binding request: %v", err)
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		log.Printf("Validation error: %v", err)
		return response.Error(c, err)
	}

	sellerID, err := getUserID(c)
	if err != nil {
		return err
	}

	product, err := h.productUseCase.CreateProduct(c.Request().Context(), sellerID, req)
	if err != nil {
		log.Printf("Error creating product: %v", err)
		return response.Error(c, err)
	}

	return response.Created(c, product)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	var req usecase.UpdateProductInput
	if err := c.Bind(&req); err != nil {
		log.Printf("Error binding request: %v", err)
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		log.Printf("Validation error: %v", err)
		return response.Error(c, err)
	}

	sellerID, err := getUserID(c)
	if err != nil {
		return err
	}

	product, err := h.productUseCase.UpdateProduct(c.Request().Context(), sellerID, c.Param("id"), req)
	if err != nil {
		log.Printf("Error updating product: %v", err)
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	sellerID, err := getUserID(c)
	if err != nil {
		return err
	}

	if err := h.productUseCase.DeleteProduct(c.Request().Context(), sellerID, c.Param("id")); err != nil {
		log.Printf("Error deleting product: %v", err)
		return response.Error(c, err)
	}

	return response.Success(c, nil)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	product, err := h.productUseCase.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		log.Printf("Error getting product: %v", err)
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	minPrice, _ := strconv.ParseFloat(c.QueryParam("min_price"), 64)
	maxPrice, _ := strconv.ParseFloat(c.QueryParam("max_price"), 64)

	filter := usecase.ProductFilter{
		Category: c.QueryParam("category"),
		SellerID: c.QueryParam("seller_id"),
		Search:   c.QueryParam("search"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
	}
	pagination := utils.PaginationFromContext(c)

	products, total, err := h.productUseCase.ListProducts(c.Request().Context(), filter, pagination)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return response.Error(c, err)
	}

	return response.Paginated(c, products, total, pagination.Page, pagination.Limit)
}

func (h *ProductHandler) ListMyProducts(c echo.Context) error {
	sellerID, err := getUserID(c)
	if err != nil {
		return err
	}
	pagination := utils.PaginationFromContext(c)

	products, total, err := h.productUseCase.ListSellerProducts(c.Request().Context(), sellerID, pagination)
	if err != nil {
		log.Printf("Error listing seller products: %v", err)
		return response.Error(c, err)
	}

	return response.Paginated(c, products, total, pagination.Page, pagination.Limit)
}
