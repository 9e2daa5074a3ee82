package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"localmarket/internal/adapter/api/middleware"
	"localmarket/internal/usecase"
	"localmarket/pkg/errors"
	"localmarket/pkg/response"
	"localmarket/pkg/utils"
)

type ListingHandler struct {
	listingUseCase *usecase.ListingUseCase
}

func NewListingHandler(listingUseCase *usecase.ListingUseCase) *ListingHandler {
	return &ListingHandler{
		listingUseCase: listingUseCase,
	}
}

type createListingRequest struct {
	Title       string   `json:"title" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Price       float64  `json:"price" validate:"gte=0,lte=1000000000"`
	Description string   `json:"description"`
	Condition   string   `json:"condition" validate:"omitempty,oneof=new used"`
	Quantity    int      `json:"quantity" validate:"gte=0"`
	LocationLat *float64 `json:"location_lat" validate:"omitempty,gte=-90,lte=90"`
	LocationLng *float64 `json:"location_lng" validate:"omitempty,gte=-180,lte=180"`
	AddressText string   `json:"address_text"`
	Images      []string `json:"images" validate:"max=10,dive,required"`
}

type updateListingRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=1"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0,lte=1000000000"`
	Description *string  `json:"description"`
	Condition   *string  `json:"condition" validate:"omitempty,oneof=new used"`
	Quantity    *int     `json:"quantity" validate:"omitempty,gte=0"`
	Status      *string  `json:"status" validate:"omitempty,oneof=published sold"`
	LocationLat *float64 `json:"location_lat" validate:"omitempty,gte=-90,lte=90"`
	LocationLng *float64 `json:"location_lng" validate:"omitempty,gte=-180,lte=180"`
	AddressText *string  `json:"address_text"`
}

// Search serves GET /listings. Unparseable numbers are rejected rather than
// silently ignored.
func (h *ListingHandler) Search(c echo.Context) error {
	q := usecase.ListingQuery{
		Category:  c.QueryParam("category"),
		Query:     c.QueryParam("q"),
		Condition: c.QueryParam("condition"),
		Status:    c.QueryParam("status"),
	}

	var err error
	if q.MinPrice, err = floatParam(c, "minPrice"); err != nil {
		return response.Error(c, err)
	}
	if q.MaxPrice, err = floatParam(c, "maxPrice"); err != nil {
		return response.Error(c, err)
	}
	page, err := utils.GetPaginationParams(c)
	if err != nil {
		return response.Error(c, err)
	}
	q.Limit, q.Offset = page.Limit, page.Offset

	result, err := h.listingUseCase.Search(c.Request().Context(), q)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, result)
}

func (h *ListingHandler) GetListing(c echo.Context) error {
	view, err := h.listingUseCase.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, view)
}

func (h *ListingHandler) GetMyListings(c echo.Context) error {
	views, err := h.listingUseCase.ListMine(c.Request().Context(), middleware.ActorFrom(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]interface{}{
		"listings": views,
	})
}

func (h *ListingHandler) CreateListing(c echo.Context) error {
	var req createListingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	listing, err := h.listingUseCase.Create(c.Request().Context(), middleware.ActorFrom(c), usecase.CreateListingInput{
		Title:       req.Title,
		Category:    req.Category,
		Price:       req.Price,
		Description: req.Description,
		Condition:   req.Condition,
		Quantity:    req.Quantity,
		LocationLat: req.LocationLat,
		LocationLng: req.LocationLng,
		AddressText: req.AddressText,
		Images:      req.Images,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, listing)
}

func (h *ListingHandler) UpdateListing(c echo.Context) error {
	var req updateListingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	listing, err := h.listingUseCase.Update(c.Request().Context(), middleware.ActorFrom(c), c.Param("id"), usecase.ListingUpdate{
		Title:       req.Title,
		Category:    req.Category,
		Price:       req.Price,
		Description: req.Description,
		Condition:   req.Condition,
		Quantity:    req.Quantity,
		Status:      req.Status,
		LocationLat: req.LocationLat,
		LocationLng: req.LocationLng,
		AddressText: req.AddressText,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, listing)
}

func (h *ListingHandler) DeleteListing(c echo.Context) error {
	if err := h.listingUseCase.Delete(c.Request().Context(), middleware.ActorFrom(c), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]bool{
		"success": true,
	})
}

func floatParam(c echo.Context, name string) (*float64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, errors.BadRequest(name+" must be a number", err)
	}
	return &v, nil
}
