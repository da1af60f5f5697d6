package handlers

import (
	"net/http"

	resourceRepo "reservio/database/repository/resource"
	"reservio/models"
	"reservio/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ResourceHandler manages the bookable resource inventory. Creation and
// status changes are administrative; the maintenance workflow owns the
// operational status flag.
type ResourceHandler struct {
	Repo resourceRepo.ResourceRepository
}

func NewResourceHandler(repo resourceRepo.ResourceRepository) *ResourceHandler {
	return &ResourceHandler{Repo: repo}
}

func (h *ResourceHandler) CreateResource(c *gin.Context) {
	var input struct {
		Name             string `json:"name" binding:"required"`
		Category         string `json:"category" binding:"required"`
		Description      string `json:"description"`
		Location         string `json:"location"`
		Capacity         int    `json:"capacity"`
		RequiresApproval bool   `json:"requires_approval"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	resource := &models.Resource{
		ID:               uuid.New().String(),
		Name:             input.Name,
		Category:         input.Category,
		Description:      input.Description,
		Location:         input.Location,
		Capacity:         input.Capacity,
		RequiresApproval: input.RequiresApproval,
		Status:           models.ResourceAvailable,
	}
	if err := h.Repo.Create(c.Request.Context(), resource); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create resource", err.Error())
		return
	}
	c.JSON(http.StatusCreated, resource)
}

func (h *ResourceHandler) GetResource(c *gin.Context) {
	resource, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch resource", err.Error())
		return
	}
	if resource == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})
		return
	}
	c.JSON(http.StatusOK, resource)
}

func (h *ResourceHandler) ListResources(c *gin.Context) {
	resources, err := h.Repo.List(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list resources", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"resources": resources})
}

// UpdateResourceStatus is the maintenance workflow's endpoint: it changes
// only the operational status and never touches existing bookings.
func (h *ResourceHandler) UpdateResourceStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	switch input.Status {
	case models.ResourceAvailable, models.ResourceMaintenance, models.ResourceUnavailable:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be available, maintenance or unavailable"})
		return
	}

	if err := h.Repo.UpdateStatus(c.Request.Context(), c.Param("id"), input.Status); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update resource status", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "status": input.Status})
}
