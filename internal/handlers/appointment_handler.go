package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kristins-brudesalong/salon-scheduler/internal/httperr"
	"github.com/kristins-brudesalong/salon-scheduler/internal/middleware"
	"github.com/kristins-brudesalong/salon-scheduler/internal/timezone"
	ucAppointment "github.com/kristins-brudesalong/salon-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	tz string

	updateStatusUC *ucAppointment.UpdateStatus
	listByDateUC   *ucAppointment.ListAppointmentsByDate
	listByMonthUC  *ucAppointment.ListAppointmentsByMonth
}

func NewAppointmentHandler(
	tz string,
	updateStatusUC *ucAppointment.UpdateStatus,
	listByDateUC *ucAppointment.ListAppointmentsByDate,
	listByMonthUC *ucAppointment.ListAppointmentsByMonth,
) *AppointmentHandler {
	return &AppointmentHandler{
		tz:             tz,
		updateStatusUC: updateStatusUC,
		listByDateUC:   listByDateUC,
		listByMonthUC:  listByMonthUC,
	}
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Dato er påkrevd.")
		return
	}

	date, err := time.ParseInLocation("2006-01-02", dateStr, timezone.Location(h.tz))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Ugyldig dato.")
		return
	}

	staffID, ok := optionalUintQuery(c, "staff_id")
	if !ok {
		httperr.BadRequest(c, "invalid_staff_id", "Ugyldig stylist.")
		return
	}

	out, err := h.listByDateUC.Execute(c.Request.Context(), staffID, date)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Ugyldig år eller måned.")
		return
	}

	staffID, ok := optionalUintQuery(c, "staff_id")
	if !ok {
		httperr.BadRequest(c, "invalid_staff_id", "Ugyldig stylist.")
		return
	}

	out, err := h.listByMonthUC.Execute(c.Request.Context(), staffID, year, month)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

// ======================================================
// STATUS
// ======================================================

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Ugyldig avtale-ID.")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Ugyldige data.")
		return
	}

	ap, err := h.updateStatusUC.Execute(c.Request.Context(), actorID, uint(id), req.Status)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transitionTo(c, "cancelled")
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transitionTo(c, "completed")
}

func (h *AppointmentHandler) MarkNoShow(c *gin.Context) {
	h.transitionTo(c, "no-show")
}

func (h *AppointmentHandler) transitionTo(c *gin.Context, target string) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Ugyldig avtale-ID.")
		return
	}

	ap, err := h.updateStatusUC.Execute(c.Request.Context(), actorID, uint(id), target)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// optionalUintQuery returns 0 for an absent parameter and ok=false for a
// malformed one.
func optionalUintQuery(c *gin.Context, name string) (uint, bool) {
	s := c.Query(name)
	if s == "" {
		return 0, true
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}
