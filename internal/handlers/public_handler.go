package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/kristins-brudesalong/salon-scheduler/internal/domain/appointment"
	"github.com/kristins-brudesalong/salon-scheduler/internal/httperr"
	"github.com/kristins-brudesalong/salon-scheduler/internal/httpresp"
	"github.com/kristins-brudesalong/salon-scheduler/internal/models"
	"github.com/kristins-brudesalong/salon-scheduler/internal/timezone"
	ucAppointment "github.com/kristins-brudesalong/salon-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type PublicHandler struct {
	db *gorm.DB
	tz string

	availabilityUC *ucAppointment.GetAvailability
	createUC       *ucAppointment.CreateAppointment
	cancelUC       *ucAppointment.CancelByCustomer
}

func NewPublicHandler(
	db *gorm.DB,
	tz string,
	availabilityUC *ucAppointment.GetAvailability,
	createUC *ucAppointment.CreateAppointment,
	cancelUC *ucAppointment.CancelByCustomer,
) *PublicHandler {
	return &PublicHandler{
		db:             db,
		tz:             tz,
		availabilityUC: availabilityUC,
		createUC:       createUC,
		cancelUC:       cancelUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type PublicCreateAppointmentRequest struct {
	ServiceID uint `json:"service_id" binding:"required"`
	StaffID   uint `json:"staff_id" binding:"required"`

	Date string `json:"date" binding:"required"` // YYYY-MM-DD
	Time string `json:"time" binding:"required"` // HH:mm

	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerEmail string `json:"customer_email" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`

	PreferredStyle string `json:"preferred_style"`
	Notes          string `json:"notes"`
}

type PublicCancelRequest struct {
	CustomerEmail string `json:"customer_email" binding:"required"`
}

// ======================================================
// CATALOG
// ======================================================

func (h *PublicHandler) ListServices(c *gin.Context) {
	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.Where("active = true")

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Kunne ikke hente tjenester.")
		return
	}

	httpresp.List(c, services)
}

func (h *PublicHandler) ListStaff(c *gin.Context) {
	var staff []models.Staff
	if err := h.db.
		Where("active = true").
		Order("id ASC").
		Find(&staff).Error; err != nil {

		httperr.Internal(c, "failed_to_list_staff", "Kunne ikke hente stylister.")
		return
	}

	httpresp.List(c, staff)
}

func (h *PublicHandler) ListDresses(c *gin.Context) {
	category := strings.TrimSpace(strings.ToLower(c.Query("category")))

	q := h.db.Where("active = true")
	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	var dresses []models.Dress
	if err := q.Order("id DESC").Find(&dresses).Error; err != nil {
		httperr.Internal(c, "failed_to_list_dresses", "Kunne ikke hente kjoler.")
		return
	}

	httpresp.List(c, dresses)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *PublicHandler) Availability(c *gin.Context) {
	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")

	if dateStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Dato og tjeneste er påkrevd.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Ugyldig tjeneste.")
		return
	}

	// staff_id is optional; absent means every stylist.
	var staffID uint64
	if s := c.Query("staff_id"); s != "" {
		staffID, err = strconv.ParseUint(s, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_staff_id", "Ugyldig stylist.")
			return
		}
	}

	date, err := time.ParseInLocation("2006-01-02", dateStr, timezone.Location(h.tz))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Ugyldig dato.")
		return
	}

	slots, err := h.availabilityUC.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			ServiceID: uint(serviceID),
			StaffID:   uint(staffID),
			Date:      date,
		},
	)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

// ======================================================
// APPOINTMENTS
// ======================================================

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Ugyldige data.")
		return
	}

	out, err := h.createUC.Execute(
		c.Request.Context(),
		ucAppointment.CreateAppointmentInput{
			ServiceID:      req.ServiceID,
			StaffID:        req.StaffID,
			Date:           req.Date,
			Time:           req.Time,
			CustomerName:   req.CustomerName,
			CustomerEmail:  req.CustomerEmail,
			CustomerPhone:  req.CustomerPhone,
			PreferredStyle: req.PreferredStyle,
			Notes:          req.Notes,
		},
	)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"appointment":    out.Appointment,
		"deposit_amount": out.DepositAmount,
		"currency":       out.Currency,
	})
}

// GetAppointment lets a customer check their booking. The booking email
// must come along; a mismatch reads as not found.
func (h *PublicHandler) GetAppointment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Ugyldig avtale-ID.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(c.Query("email")))
	if email == "" {
		httperr.BadRequest(c, "missing_params", "E-post er påkrevd.")
		return
	}

	var ap models.Appointment
	if err := h.db.
		Preload("Service").
		Preload("Staff").
		First(&ap, uint(id)).Error; err != nil {

		httperr.NotFound(c, "appointment_not_found", messageFor("appointment_not_found"))
		return
	}

	if ap.CustomerEmail != email {
		httperr.NotFound(c, "appointment_not_found", messageFor("appointment_not_found"))
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *PublicHandler) CancelAppointment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Ugyldig avtale-ID.")
		return
	}

	var req PublicCancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Ugyldige data.")
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), uint(id), req.CustomerEmail)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}
