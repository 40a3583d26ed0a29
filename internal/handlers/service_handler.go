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
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Description string `json:"description"`

	DurationMin  int `json:"duration_min" binding:"required,min=1"`
	BufferBefore int `json:"buffer_before" binding:"min=0"`
	BufferAfter  int `json:"buffer_after" binding:"min=0"`

	Price    float64 `json:"price" binding:"required"`
	Deposit  float64 `json:"deposit"`
	Currency string  `json:"currency"`

	Category string `json:"category"`
}

type UpdateServiceRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`

	DurationMin  *int `json:"duration_min,omitempty"`
	BufferBefore *int `json:"buffer_before,omitempty"`
	BufferAfter  *int `json:"buffer_after,omitempty"`

	Price   *float64 `json:"price,omitempty"`
	Deposit *float64 `json:"deposit,omitempty"`

	Category *string `json:"category,omitempty"`
	Active   *bool   `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	activeStr := strings.TrimSpace(c.Query("active"))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Model(&models.Service{})

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}
	if activeStr == "true" {
		q = q.Where("active = ?", true)
	} else if activeStr == "false" {
		q = q.Where("active = ?", false)
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

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Ugyldige data.")
		return
	}

	if req.Deposit > req.Price {
		httperr.BadRequest(c, "deposit_exceeds_price", "Depositum kan ikke være større enn prisen.")
		return
	}

	slug := strings.ToLower(strings.TrimSpace(req.Slug))

	var count int64
	h.db.Model(&models.Service{}).Where("slug = ?", slug).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "slug_already_exists", "En tjeneste med denne slug finnes allerede.")
		return
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "NOK"
	}

	svc := models.Service{
		Name:         req.Name,
		Slug:         slug,
		Description:  req.Description,
		DurationMin:  req.DurationMin,
		BufferBefore: req.BufferBefore,
		BufferAfter:  req.BufferAfter,
		Price:        req.Price,
		Deposit:      req.Deposit,
		Currency:     currency,
		Category:     req.Category,
		Active:       true,
	}

	if err := h.db.Create(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Kunne ikke opprette tjenesten.")
		return
	}

	c.JSON(http.StatusCreated, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Ugyldig tjeneste-ID.")
		return
	}

	var svc models.Service
	if err := h.db.First(&svc, uint(id)).Error; err != nil {
		httperr.NotFound(c, "service_not_found", messageFor("service_not_found"))
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Ugyldige data.")
		return
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.DurationMin != nil {
		if *req.DurationMin <= 0 {
			httperr.BadRequest(c, "invalid_duration", "Varighet må være positiv.")
			return
		}
		svc.DurationMin = *req.DurationMin
	}
	if req.BufferBefore != nil {
		svc.BufferBefore = *req.BufferBefore
	}
	if req.BufferAfter != nil {
		svc.BufferAfter = *req.BufferAfter
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.Deposit != nil {
		svc.Deposit = *req.Deposit
	}
	if svc.Deposit > svc.Price {
		httperr.BadRequest(c, "deposit_exceeds_price", "Depositum kan ikke være større enn prisen.")
		return
	}
	if req.Category != nil {
		svc.Category = *req.Category
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := h.db.Save(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Kunne ikke oppdatere tjenesten.")
		return
	}

	c.JSON(http.StatusOK, svc)
}
