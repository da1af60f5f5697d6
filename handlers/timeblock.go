package handlers

import (
	"net/http"

	timeblockRepo "reservio/database/repository/timeblock"
	"reservio/models"
	"reservio/utils"

	"github.com/gin-gonic/gin"
)

// TimeBlockHandler serves the fixed time-block catalog.
type TimeBlockHandler struct {
	Repo timeblockRepo.TimeBlockRepository
}

func NewTimeBlockHandler(repo timeblockRepo.TimeBlockRepository) *TimeBlockHandler {
	return &TimeBlockHandler{Repo: repo}
}

func (h *TimeBlockHandler) ListTimeBlocks(c *gin.Context) {
	var (
		blocks []models.TimeBlock
		err    error
	)
	if shift := c.Query("shift"); shift != "" {
		blocks, err = h.Repo.ListByShift(c.Request.Context(), shift)
	} else {
		blocks, err = h.Repo.List(c.Request.Context())
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list time blocks", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"time_blocks": blocks})
}

func (h *TimeBlockHandler) GetTimeBlock(c *gin.Context) {
	block, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch time block", err.Error())
		return
	}
	if block == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "time block not found"})
		return
	}
	c.JSON(http.StatusOK, block)
}

// SeedTimeBlocks installs the catalog. Administrative, typically run once.
func (h *TimeBlockHandler) SeedTimeBlocks(c *gin.Context) {
	var input struct {
		TimeBlocks []models.TimeBlock `json:"time_blocks" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	for _, block := range input.TimeBlocks {
		if block.ID == "" || block.End <= block.Start {
			c.JSON(http.StatusBadRequest, gin.H{"error": "each time block needs an id and end > start"})
			return
		}
		switch block.Shift {
		case models.ShiftMorning, models.ShiftAfternoon:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "shift must be morning or afternoon"})
			return
		}
	}

	if err := h.Repo.Seed(c.Request.Context(), input.TimeBlocks); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to seed time blocks", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"seeded": len(input.TimeBlocks)})
}
