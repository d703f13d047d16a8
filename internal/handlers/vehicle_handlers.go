package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"dealerstock/internal/common"
	"dealerstock/internal/models"
	"dealerstock/internal/services"

	"github.com/labstack/echo/v4"
)

const imageURLExpiry = 15 * time.Minute

// VehicleHandlers handles HTTP requests for vehicles
type VehicleHandlers struct {
	vehicleService services.VehicleServiceInterface
	imageService   services.ImageService
}

func NewVehicleHandlers(vehicleService services.VehicleServiceInterface, imageService services.ImageService) *VehicleHandlers {
	return &VehicleHandlers{vehicleService: vehicleService, imageService: imageService}
}

// CreateVehicle handles POST /vehicles
func (h *VehicleHandlers) CreateVehicle(c echo.Context) error {
	vehicle := &models.Vehicle{Available: true}
	if err := c.Bind(vehicle); err != nil {
		return common.SendClientError(c, "invalid request format")
	}
	created, err := h.vehicleService.CreateVehicle(c.Request().Context(), vehicle)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// GetAllVehicles handles GET /vehicles
func (h *VehicleHandlers) GetAllVehicles(c echo.Context) error {
	vehicles, err := h.vehicleService.GetAllVehicles(c.Request().Context())
	if err != nil {
		log.Printf("list vehicles: %v", err)
		return c.JSON(http.StatusOK, []*models.Vehicle{})
	}
	return c.JSON(http.StatusOK, emptyIfNil(vehicles))
}

// GetVehicleByID handles GET /vehicles/:id
func (h *VehicleHandlers) GetVehicleByID(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}
	vehicle, err := h.vehicleService.GetVehicleByID(c.Request().Context(), id)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, vehicle)
}

// UpdateVehicle handles PUT /vehicles/:id
func (h *VehicleHandlers) UpdateVehicle(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}
	vehicle := &models.Vehicle{}
	if err := c.Bind(vehicle); err != nil {
		return common.SendClientError(c, "invalid request format")
	}
	updated, err := h.vehicleService.UpdateVehicle(c.Request().Context(), id, vehicle)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteVehicle handles DELETE /vehicles/:id. Vehicles referenced by any
// order cannot be deleted and yield a 409.
func (h *VehicleHandlers) DeleteVehicle(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}
	if err := h.vehicleService.DeleteVehicle(c.Request().Context(), id); err != nil {
		return common.SendError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// FindByMake handles GET /vehicles/make/:make
func (h *VehicleHandlers) FindByMake(c echo.Context) error {
	vehicles, err := h.vehicleService.FindVehiclesByMake(c.Request().Context(), c.Param("make"))
	if err != nil {
		log.Printf("list vehicles by make: %v", err)
		return c.JSON(http.StatusOK, []*models.Vehicle{})
	}
	return c.JSON(http.StatusOK, emptyIfNil(vehicles))
}

// FindByModel handles GET /vehicles/model/:model
func (h *VehicleHandlers) FindByModel(c echo.Context) error {
	vehicles, err := h.vehicleService.FindVehiclesByModel(c.Request().Context(), c.Param("model"))
	if err != nil {
		log.Printf("list vehicles by model: %v", err)
		return c.JSON(http.StatusOK, []*models.Vehicle{})
	}
	return c.JSON(http.StatusOK, emptyIfNil(vehicles))
}

// FindByYear handles GET /vehicles/year/:year
func (h *VehicleHandlers) FindByYear(c echo.Context) error {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return common.SendClientError(c, "year must be an integer")
	}
	vehicles, err := h.vehicleService.FindVehiclesByYear(c.Request().Context(), year)
	if err != nil {
		log.Printf("list vehicles by year: %v", err)
		return c.JSON(http.StatusOK, []*models.Vehicle{})
	}
	return c.JSON(http.StatusOK, emptyIfNil(vehicles))
}

// FindAvailable handles GET /vehicles/available
func (h *VehicleHandlers) FindAvailable(c echo.Context) error {
	vehicles, err := h.vehicleService.FindVehiclesByAvailability(c.Request().Context(), true)
	if err != nil {
		log.Printf("list available vehicles: %v", err)
		return c.JSON(http.StatusOK, []*models.Vehicle{})
	}
	return c.JSON(http.StatusOK, emptyIfNil(vehicles))
}

// FindByFuelType handles GET /vehicles/fuel-type/:fuelType
func (h *VehicleHandlers) FindByFuelType(c echo.Context) error {
	vehicles, err := h.vehicleService.FindVehiclesByFuelType(c.Request().Context(), c.Param("fuelType"))
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, emptyIfNil(vehicles))
}

// FindByTransmissionType handles GET /vehicles/transmission-type/:transmissionType
func (h *VehicleHandlers) FindByTransmissionType(c echo.Context) error {
	vehicles, err := h.vehicleService.FindVehiclesByTransmissionType(c.Request().Context(), c.Param("transmissionType"))
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, emptyIfNil(vehicles))
}

// FindByPriceRange handles GET /vehicles/price-range?minPrice&maxPrice
func (h *VehicleHandlers) FindByPriceRange(c echo.Context) error {
	minPrice, err := strconv.ParseFloat(c.QueryParam("minPrice"), 64)
	if err != nil {
		return common.SendClientError(c, "minPrice must be a number")
	}
	maxPrice, err := strconv.ParseFloat(c.QueryParam("maxPrice"), 64)
	if err != nil {
		return common.SendClientError(c, "maxPrice must be a number")
	}
	vehicles, err := h.vehicleService.FindVehiclesByPriceRange(c.Request().Context(), minPrice, maxPrice)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, emptyIfNil(vehicles))
}

// FindByMaxMileage handles GET /vehicles/max-mileage/:maxMileage
func (h *VehicleHandlers) FindByMaxMileage(c echo.Context) error {
	maxMileage, err := strconv.Atoi(c.Param("maxMileage"))
	if err != nil {
		return common.SendClientError(c, "maxMileage must be an integer")
	}
	vehicles, err := h.vehicleService.FindVehiclesByMaxMileage(c.Request().Context(), maxMileage)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, emptyIfNil(vehicles))
}

// UploadImage handles POST /vehicles/:id/image
func (h *VehicleHandlers) UploadImage(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}
	if _, err := h.vehicleService.GetVehicleByID(c.Request().Context(), id); err != nil {
		return common.SendError(c, err)
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return common.SendClientError(c, "image file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return common.SendError(c, err)
	}
	defer file.Close()

	objectName, err := h.imageService.UploadVehicleImage(c.Request().Context(), id, file,
		fileHeader.Size, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		return common.SendError(c, err)
	}
	if err := h.vehicleService.SetImageURL(c.Request().Context(), id, objectName); err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"imageUrl": objectName})
}

// GetImageURL handles GET /vehicles/:id/image-url
func (h *VehicleHandlers) GetImageURL(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}
	vehicle, err := h.vehicleService.GetVehicleByID(c.Request().Context(), id)
	if err != nil {
		return common.SendError(c, err)
	}
	if vehicle.ImageURL == nil {
		return common.SendNotFoundError(c, "Vehicle image", common.NotFoundf("vehicle %s has no image", id))
	}
	url, err := h.imageService.VehicleImageURL(id, imageURLExpiry)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url})
}

// DeleteImage handles DELETE /vehicles/:id/image. Removes the stored
// object and clears the vehicle's image reference.
func (h *VehicleHandlers) DeleteImage(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}
	vehicle, err := h.vehicleService.GetVehicleByID(c.Request().Context(), id)
	if err != nil {
		return common.SendError(c, err)
	}
	if vehicle.ImageURL == nil {
		return common.SendNotFoundError(c, "Vehicle image", common.NotFoundf("vehicle %s has no image", id))
	}
	if err := h.imageService.DeleteVehicleImage(c.Request().Context(), id); err != nil {
		return common.SendError(c, err)
	}
	if err := h.vehicleService.ClearImageURL(c.Request().Context(), id); err != nil {
		return common.SendError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func emptyIfNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
