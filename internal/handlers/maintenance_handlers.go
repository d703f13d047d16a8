package handlers

import (
	"log"
	"net/http"
	"time"

	"dealerstock/internal/common"
	"dealerstock/internal/models"
	"dealerstock/internal/services"

	"github.com/labstack/echo/v4"
)

const upcomingMaintenanceWindow = 7 * 24 * time.Hour

// MaintenanceHandlers handles HTTP requests for maintenance records
type MaintenanceHandlers struct {
	maintenanceService services.MaintenanceServiceInterface
}

func NewMaintenanceHandlers(maintenanceService services.MaintenanceServiceInterface) *MaintenanceHandlers {
	return &MaintenanceHandlers{maintenanceService: maintenanceService}
}

// CreateMaintenance handles POST /maintenance
func (h *MaintenanceHandlers) CreateMaintenance(c echo.Context) error {
	record := &models.Maintenance{}
	if err := c.Bind(record); err != nil {
		return common.SendClientError(c, "invalid request format")
	}
	created, err := h.maintenanceService.CreateMaintenance(c.Request().Context(), record)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// GetAllMaintenance handles GET /maintenance
func (h *MaintenanceHandlers) GetAllMaintenance(c echo.Context) error {
	records, err := h.maintenanceService.GetAllMaintenance(c.Request().Context())
	if err != nil {
		log.Printf("list maintenance: %v", err)
		return c.JSON(http.StatusOK, []*models.Maintenance{})
	}
	return c.JSON(http.StatusOK, emptyIfNil(records))
}

// GetMaintenanceByID handles GET /maintenance/:id
func (h *MaintenanceHandlers) GetMaintenanceByID(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}
	record, err := h.maintenanceService.GetMaintenanceByID(c.Request().Context(), id)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, record)
}

// GetMaintenanceByVehicleID handles GET /maintenance/vehicle/:vehicleId
func (h *MaintenanceHandlers) GetMaintenanceByVehicleID(c echo.Context) error {
	vehicleID, err := common.ValidateUUID(c.Param("vehicleId"), "vehicleId")
	if err != nil {
		return common.SendError(c, err)
	}
	records, err := h.maintenanceService.GetMaintenanceByVehicleID(c.Request().Context(), vehicleID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, emptyIfNil(records))
}

// GetMaintenanceByStatus handles GET /maintenance/status/:status
func (h *MaintenanceHandlers) GetMaintenanceByStatus(c echo.Context) error {
	records, err := h.maintenanceService.GetMaintenanceByStatus(c.Request().Context(), c.Param("status"))
	if err != nil {
		if common.IsInternal(err) {
			log.Printf("list maintenance by status: %v", err)
			return c.JSON(http.StatusOK, []*models.Maintenance{})
		}
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, emptyIfNil(records))
}

// GetMaintenanceByDateRange handles GET /maintenance/date-range?startDate&endDate
func (h *MaintenanceHandlers) GetMaintenanceByDateRange(c echo.Context) error {
	startDate, err := common.ParseTimestamp(c.QueryParam("startDate"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, common.ErrorResponse{Error: "Invalid date format", Message: err.Error()})
	}
	endDate, err := common.ParseTimestamp(c.QueryParam("endDate"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, common.ErrorResponse{Error: "Invalid date format", Message: err.Error()})
	}

	records, err := h.maintenanceService.GetMaintenanceByDateRange(c.Request().Context(), startDate, endDate)
	if err != nil {
		if common.IsInternal(err) {
			log.Printf("list maintenance by date range: %v", err)
			return c.JSON(http.StatusOK, []*models.Maintenance{})
		}
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, emptyIfNil(records))
}

// GetUpcomingMaintenance handles GET /maintenance/upcoming. Returns records
// scheduled within the next seven days.
func (h *MaintenanceHandlers) GetUpcomingMaintenance(c echo.Context) error {
	now := time.Now()
	records, err := h.maintenanceService.GetUpcomingMaintenance(c.Request().Context(), now)
	if err != nil {
		return common.SendError(c, err)
	}
	within := make([]*models.Maintenance, 0, len(records))
	cutoff := now.Add(upcomingMaintenanceWindow)
	for _, record := range records {
		if !record.ServiceDate.After(cutoff) {
			within = append(within, record)
		}
	}
	return c.JSON(http.StatusOK, within)
}

// UpdateMaintenance handles PUT /maintenance/:id
func (h *MaintenanceHandlers) UpdateMaintenance(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}
	record := &models.Maintenance{}
	if err := c.Bind(record); err != nil {
		return common.SendClientError(c, "invalid request format")
	}
	updated, err := h.maintenanceService.UpdateMaintenance(c.Request().Context(), id, record)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// UpdateMaintenanceStatus handles PATCH /maintenance/:id/status/:status
func (h *MaintenanceHandlers) UpdateMaintenanceStatus(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}
	record, err := h.maintenanceService.UpdateMaintenanceStatus(c.Request().Context(), id, c.Param("status"))
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, record)
}

// DeleteMaintenance handles DELETE /maintenance/:id
func (h *MaintenanceHandlers) DeleteMaintenance(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}
	if err := h.maintenanceService.DeleteMaintenance(c.Request().Context(), id); err != nil {
		return common.SendError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
