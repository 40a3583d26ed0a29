package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kristins-brudesalong/salon-scheduler/internal/httperr"
	"github.com/kristins-brudesalong/salon-scheduler/internal/httpresp"
	"github.com/kristins-brudesalong/salon-scheduler/internal/models"
	"github.com/kristins-brudesalong/salon-scheduler/internal/timezone"
)

type BlackoutHandler struct {
	db *gorm.DB
	tz string
}

func NewBlackoutHandler(db *gorm.DB, tz string) *BlackoutHandler {
	return &BlackoutHandler{db: db, tz: tz}
}

type CreateBlackoutRequest struct {
	StaffID *uint `json:"staff_id"` // null = whole salon

	Start string `json:"start" binding:"required"` // YYYY-MM-DD HH:mm
	End   string `json:"end" binding:"required"`

	Reason string `json:"reason"`
}

func (h *BlackoutHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Blackout{})

	staffID, ok := optionalUintQuery(c, "staff_id")
	if !ok {
		httperr.BadRequest(c, "invalid_staff_id", "Ugyldig stylist.")
		return
	}
	if staffID != 0 {
		q = q.Where("staff_id = ? OR staff_id IS NULL", staffID)
	}

	if fromStr := c.Query("from"); fromStr != "" {
		if from, err := time.ParseInLocation("2006-01-02", fromStr, timezone.Location(h.tz)); err == nil {
			q = q.Where(`"end" > ?`, from)
		}
	}

	var blackouts []models.Blackout
	if err := q.Order(`"start" ASC`).Find(&blackouts).Error; err != nil {
		httperr.Internal(c, "failed_to_list_blackouts", "Kunne ikke hente stengte perioder.")
		return
	}

	httpresp.List(c, blackouts)
}

func (h *BlackoutHandler) Create(c *gin.Context) {
	var req CreateBlackoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Ugyldige data.")
		return
	}

	loc := timezone.Location(h.tz)
	start, errS := time.ParseInLocation("2006-01-02 15:04", req.Start, loc)
	end, errE := time.ParseInLocation("2006-01-02 15:04", req.End, loc)
	if errS != nil || errE != nil {
		httperr.BadRequest(c, "invalid_date_or_time", messageFor("invalid_date_or_time"))
		return
	}
	if !end.After(start) {
		httperr.BadRequest(c, "end_before_start", "Sluttid må være etter starttid.")
		return
	}

	if req.StaffID != nil {
		var st models.Staff
		if err := h.db.First(&st, *req.StaffID).Error; err != nil {
			httperr.NotFound(c, "staff_not_found", messageFor("staff_not_found"))
			return
		}
	}

	b := models.Blackout{
		StaffID: req.StaffID,
		Start:   start,
		End:     end,
		Reason:  req.Reason,
	}

	if err := h.db.Create(&b).Error; err != nil {
		httperr.Internal(c, "failed_to_create_blackout", "Kunne ikke opprette stengt periode.")
		return
	}

	c.JSON(http.StatusCreated, b)
}

func (h *BlackoutHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Ugyldig ID.")
		return
	}

	res := h.db.Delete(&models.Blackout{}, uint(id))
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_blackout", "Kunne ikke slette stengt periode.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "blackout_not_found", "Stengt periode ble ikke funnet.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
