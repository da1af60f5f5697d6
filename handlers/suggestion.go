package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"reservio/config"
	bookingRepo "reservio/database/repository/booking"
	timeblockRepo "reservio/database/repository/timeblock"
	"reservio/services/suggestion"
	"reservio/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// SuggestionHandler serves ranked slot suggestions. The engine itself is a
// pure function; this handler supplies it with the history and catalog and
// caches the response briefly.
type SuggestionHandler struct {
	BookingRepo   bookingRepo.BookingRepository
	TimeBlockRepo timeblockRepo.TimeBlockRepository
	Cache         *redis.Client
}

func NewSuggestionHandler(bookings bookingRepo.BookingRepository, blocks timeblockRepo.TimeBlockRepository, cache *redis.Client) *SuggestionHandler {
	return &SuggestionHandler{BookingRepo: bookings, TimeBlockRepo: blocks, Cache: cache}
}

// Suggest handles GET /api/suggestions?resource_id=...&date=...
func (h *SuggestionHandler) Suggest(c *gin.Context) {
	resourceID := c.Query("resource_id")
	date := c.Query("date")
	userID := c.GetString("userID")
	if resourceID == "" || date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resource_id and date query parameters are required"})
		return
	}

	ctx := context.Background()
	cacheKey := fmt.Sprintf("%s%s:%s:%s", utils.SuggestionCachePrefix, resourceID, userID, date)
	if cached, err := h.Cache.Get(ctx, cacheKey).Result(); err == nil {
		c.Data(http.StatusOK, "application/json", []byte(cached))
		return
	}

	history, err := h.BookingRepo.ListAll(ctx)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load booking history", err.Error())
		return
	}
	catalog, err := h.TimeBlockRepo.List(ctx)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load time block catalog", err.Error())
		return
	}

	suggestions := suggestion.Suggest(resourceID, userID, date, history, catalog)

	body, err := json.Marshal(gin.H{"suggestions": suggestions})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to encode suggestions", err.Error())
		return
	}

	ttl := time.Duration(config.AppConfig.SuggestionCacheTTLs) * time.Second
	if err := h.Cache.Set(ctx, cacheKey, body, ttl).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache suggestions", zap.Error(err))
	}

	c.Data(http.StatusOK, "application/json", body)
}
