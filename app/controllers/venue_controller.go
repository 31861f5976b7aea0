package controllers

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/VenueBookHQ/VenueBook/app/models"
	"github.com/VenueBookHQ/VenueBook/app/repository"
	"github.com/VenueBookHQ/VenueBook/internal/pkg/slugify"
)

// slug allocation is retried when the store rejects a concurrent duplicate
const slugSaveAttempts = 3

type priceSlotBody struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Price     int64  `json:"price"`
}

type servicePricingBody struct {
	EventType string `json:"event_type"`
	Price     int64  `json:"price"`
}

type createVenueBody struct {
	Name            string               `json:"name"`
	Location        string               `json:"location"`
	Capacity        int                  `json:"capacity"`
	Description     string               `json:"description"`
	BasePrice       int64                `json:"base_price"`
	PriceSlots      []priceSlotBody      `json:"price_slots"`
	ServicePricings []servicePricingBody `json:"service_pricings"`
}

// HandleCreateVenue creates a venue and mints its slug. When a concurrent
// creation wins the same slug, the unique index rejects the insert and the
// allocation is retried with the next free suffix.
func HandleCreateVenue(c *fiber.Ctx) error {
	var body createVenueBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	venue := &models.Venue{
		Name:        body.Name,
		Location:    body.Location,
		Capacity:    body.Capacity,
		Description: body.Description,
		BasePrice:   body.BasePrice,
		IsActive:    true,
	}
	for _, s := range body.PriceSlots {
		venue.PriceSlots = append(venue.PriceSlots, models.PriceSlot{
			StartTime: s.StartTime, EndTime: s.EndTime, Price: s.Price,
		})
	}
	for _, sp := range body.ServicePricings {
		venue.ServicePricings = append(venue.ServicePricings, models.ServicePricing{
			EventType: sp.EventType, Price: sp.Price,
		})
	}
	if err := venue.Validate(); err != nil {
		return badRequest(c, "venue name is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	repo := repository.GetGlobalFactory().GetVenueRepository()
	allocator := slugify.NewAllocator(repo, "venue")

	var err error
	for attempt := 0; attempt < slugSaveAttempts; attempt++ {
		venue.Slug, err = allocator.Allocate(ctx, venue.Name, 0)
		if err != nil {
			return respondError(c, err)
		}
		err = repo.Create(ctx, venue)
		if err == nil {
			return respondData(c, fiber.StatusCreated, venue)
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return respondError(c, err)
		}
	}
	return respondError(c, err)
}

// HandleListVenues lists active venues.
func HandleListVenues(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	repo := repository.GetGlobalFactory().GetVenueRepository()
	venues, err := repo.List(ctx, c.QueryInt("offset", 0), c.QueryInt("limit", 50))
	if err != nil {
		return respondError(c, err)
	}
	count, err := repo.Count(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return respondList(c, venues, count)
}

// HandleGetVenueBySlug fetches a venue through its public identifier.
func HandleGetVenueBySlug(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	repo := repository.GetGlobalFactory().GetVenueRepository()
	venue, err := repo.GetBySlug(ctx, c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}
	withPricing, err := repo.GetWithPricing(ctx, venue.ID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, withPricing)
}

type updateVenueBody struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	Capacity    int    `json:"capacity"`
	Description string `json:"description"`
	BasePrice   int64  `json:"base_price"`
}

// HandleUpdateVenue updates venue attributes. The slug is re-derived only
// when the rename yields a different base slug than the stored one.
func HandleUpdateVenue(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return badRequest(c, "venue id must be numeric")
	}
	var body updateVenueBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	repo := repository.GetGlobalFactory().GetVenueRepository()
	venue, err := repo.GetByID(ctx, uint(id))
	if err != nil {
		return respondError(c, err)
	}

	if body.Name != "" {
		venue.Name = body.Name
	}
	if body.Location != "" {
		venue.Location = body.Location
	}
	if body.Capacity > 0 {
		venue.Capacity = body.Capacity
	}
	if body.Description != "" {
		venue.Description = body.Description
	}
	if body.BasePrice > 0 {
		venue.BasePrice = body.BasePrice
	}

	if slugify.ShouldReallocate(venue.Slug, venue.Name) {
		allocator := slugify.NewAllocator(repo, "venue")
		venue.Slug, err = allocator.Allocate(ctx, venue.Name, venue.ID)
		if err != nil {
			return respondError(c, err)
		}
	}

	if err := repo.Update(ctx, venue); err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, venue)
}

type createServiceItemBody struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
}

// HandleCreateServiceItem creates a catalog service with its own slug.
func HandleCreateServiceItem(c *fiber.Ctx) error {
	var body createServiceItemBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	item := &models.ServiceItem{
		Name:        body.Name,
		Category:    body.Category,
		Price:       body.Price,
		Description: body.Description,
		IsActive:    true,
	}
	if err := item.Validate(); err != nil {
		return badRequest(c, "service name is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	repo := repository.GetGlobalFactory().GetServiceItemRepository()
	allocator := slugify.NewAllocator(repo, "service")

	var err error
	for attempt := 0; attempt < slugSaveAttempts; attempt++ {
		item.Slug, err = allocator.Allocate(ctx, item.Name, 0)
		if err != nil {
			return respondError(c, err)
		}
		err = repo.Create(ctx, item)
		if err == nil {
			return respondData(c, fiber.StatusCreated, item)
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return respondError(c, err)
		}
	}
	return respondError(c, err)
}

// HandleListServiceItems lists active catalog services.
func HandleListServiceItems(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	repo := repository.GetGlobalFactory().GetServiceItemRepository()
	items, err := repo.List(ctx, c.QueryInt("offset", 0), c.QueryInt("limit", 50))
	if err != nil {
		return respondError(c, err)
	}
	count, err := repo.Count(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return respondList(c, items, count)
}
