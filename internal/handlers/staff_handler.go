package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kristins-brudesalong/salon-scheduler/internal/httperr"
	"github.com/kristins-brudesalong/salon-scheduler/internal/httpresp"
	"github.com/kristins-brudesalong/salon-scheduler/internal/models"
	"github.com/kristins-brudesalong/salon-scheduler/internal/validators"
)

type StaffHandler struct {
	db *gorm.DB
}

func NewStaffHandler(db *gorm.DB) *StaffHandler {
	return &StaffHandler{db: db}
}

// --------- Requests ---------

type CreateStaffRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone"`

	Role string `json:"role"`
	Bio  string `json:"bio"`

	CalendarColor string `json:"calendar_color"`
}

type UpdateStaffRequest struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`

	Role *string `json:"role,omitempty"`
	Bio  *string `json:"bio,omitempty"`

	CalendarColor *string `json:"calendar_color,omitempty"`
	Active        *bool   `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *StaffHandler) List(c *gin.Context) {
	activeStr := strings.TrimSpace(c.Query("active"))

	q := h.db.Model(&models.Staff{})
	if activeStr == "true" {
		q = q.Where("active = ?", true)
	} else if activeStr == "false" {
		q = q.Where("active = ?", false)
	}

	var staff []models.Staff
	if err := q.Order("id ASC").Find(&staff).Error; err != nil {
		httperr.Internal(c, "failed_to_list_staff", "Kunne ikke hente stylister.")
		return
	}

	httpresp.List(c, staff)
}

func (h *StaffHandler) Create(c *gin.Context) {
	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Ugyldige data.")
		return
	}

	if req.Phone != "" && !validators.IsPhoneValid(req.Phone) {
		httperr.Validation(c, "invalid_phone", "phone", messageFor("invalid_phone"))
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	h.db.Model(&models.Staff{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "email_already_exists", "En stylist med denne e-posten finnes allerede.")
		return
	}

	st := models.Staff{
		Name:          req.Name,
		Email:         email,
		Phone:         strings.TrimSpace(req.Phone),
		Role:          req.Role,
		Bio:           req.Bio,
		CalendarColor: req.CalendarColor,
		Active:        true,
	}
	if st.Role == "" {
		st.Role = "stylist"
	}

	if err := h.db.Create(&st).Error; err != nil {
		httperr.Internal(c, "failed_to_create_staff", "Kunne ikke opprette stylisten.")
		return
	}

	c.JSON(http.StatusCreated, st)
}

func (h *StaffHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Ugyldig ansatt-ID.")
		return
	}

	var st models.Staff
	if err := h.db.First(&st, uint(id)).Error; err != nil {
		httperr.NotFound(c, "staff_not_found", messageFor("staff_not_found"))
		return
	}

	var req UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Ugyldige data.")
		return
	}

	if req.Name != nil {
		st.Name = *req.Name
	}
	if req.Phone != nil {
		if *req.Phone != "" && !validators.IsPhoneValid(*req.Phone) {
			httperr.Validation(c, "invalid_phone", "phone", messageFor("invalid_phone"))
			return
		}
		st.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Role != nil {
		st.Role = *req.Role
	}
	if req.Bio != nil {
		st.Bio = *req.Bio
	}
	if req.CalendarColor != nil {
		st.CalendarColor = *req.CalendarColor
	}
	if req.Active != nil {
		st.Active = *req.Active
	}

	if err := h.db.Save(&st).Error; err != nil {
		httperr.Internal(c, "failed_to_update_staff", "Kunne ikke oppdatere stylisten.")
		return
	}

	c.JSON(http.StatusOK, st)
}
