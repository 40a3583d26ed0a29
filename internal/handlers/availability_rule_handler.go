package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kristins-brudesalong/salon-scheduler/internal/domain/schedule"
	"github.com/kristins-brudesalong/salon-scheduler/internal/httperr"
	"github.com/kristins-brudesalong/salon-scheduler/internal/httpresp"
	"github.com/kristins-brudesalong/salon-scheduler/internal/models"
)

type AvailabilityRuleHandler struct {
	db *gorm.DB
}

func NewAvailabilityRuleHandler(db *gorm.DB) *AvailabilityRuleHandler {
	return &AvailabilityRuleHandler{db: db}
}

type RuleConfig struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Capacity  int    `json:"capacity"`
}

type RulesUpdateRequest struct {
	Rules []RuleConfig `json:"rules" binding:"required"`
}

func (h *AvailabilityRuleHandler) Get(c *gin.Context) {
	staffID, err := strconv.ParseUint(c.Param("staffId"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_staff_id", "Ugyldig stylist.")
		return
	}

	var rules []models.AvailabilityRule
	if err := h.db.
		Where("staff_id = ?", uint(staffID)).
		Order("weekday ASC, start_time ASC").
		Find(&rules).Error; err != nil {

		httperr.Internal(c, "failed_to_get_rules", "Kunne ikke hente arbeidstider.")
		return
	}

	httpresp.List(c, rules)
}

// Update replaces the stylist's whole weekly schedule in one transaction,
// so a failed write can never leave a half-applied week.
func (h *AvailabilityRuleHandler) Update(c *gin.Context) {
	staffID64, err := strconv.ParseUint(c.Param("staffId"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_staff_id", "Ugyldig stylist.")
		return
	}
	staffID := uint(staffID64)

	var st models.Staff
	if err := h.db.First(&st, staffID).Error; err != nil {
		httperr.NotFound(c, "staff_not_found", messageFor("staff_not_found"))
		return
	}

	var req RulesUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Ugyldige data.")
		return
	}

	for _, r := range req.Rules {
		start, errS := schedule.ParseClock(r.StartTime)
		end, errE := schedule.ParseClock(r.EndTime)
		if errS != nil || errE != nil {
			httperr.BadRequest(c, "invalid_time", "Ugyldig klokkeslett.")
			return
		}
		if !end.After(start) {
			httperr.BadRequest(c, "end_before_start", "Sluttid må være etter starttid.")
			return
		}
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("staff_id = ?", staffID).
			Delete(&models.AvailabilityRule{}).Error; err != nil {
			return err
		}

		var toCreate []models.AvailabilityRule
		for _, r := range req.Rules {
			capacity := r.Capacity
			if capacity <= 0 {
				capacity = 1
			}
			id := staffID
			toCreate = append(toCreate, models.AvailabilityRule{
				StaffID:   &id,
				Weekday:   r.Weekday,
				StartTime: r.StartTime,
				EndTime:   r.EndTime,
				Capacity:  capacity,
			})
		}

		if len(toCreate) > 0 {
			return tx.Create(&toCreate).Error
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_rules", "Kunne ikke lagre arbeidstider.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
