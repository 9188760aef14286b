package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/lifeweeks-backend/internal/domain"
	"github.com/yungbote/lifeweeks-backend/internal/http/response"
	"github.com/yungbote/lifeweeks-backend/internal/services"
)

type ProfileHandler struct {
	profileService services.ProfileService
}

func NewProfileHandler(profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// POST /api/user
// body: { "birthdate": "YYYY-MM-DD", "life_expectancy": 80 }
func (ph *ProfileHandler) SaveProfile(c *gin.Context) {
	var req struct {
		Birthdate      string `json:"birthdate" binding:"required"`
		LifeExpectancy *int   `json:"life_expectancy"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	birthdate, err := parseBirthdate(req.Birthdate)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_birthdate", err)
		return
	}

	lifeExpectancy := types.DefaultLifeExpectancyYears
	if req.LifeExpectancy != nil {
		lifeExpectancy = *req.LifeExpectancy
	}

	if _, err := ph.profileService.Save(c.Request.Context(), birthdate, lifeExpectancy); err != nil {
		if errors.Is(err, types.ErrInvalidLifeExpectancy) {
			response.RespondError(c, http.StatusBadRequest, "invalid_life_expectancy", err)
			return
		}
		response.RespondError(c, http.StatusInternalServerError, "persistence_error", err)
		return
	}

	response.RespondOK(c, gin.H{"message": "User data saved successfully"})
}

// GET /api/user
func (ph *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := ph.profileService.Get(c.Request.Context())
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "persistence_error", err)
		return
	}
	if profile == nil {
		// no profile yet; clients probe for this with the null body
		c.JSON(http.StatusOK, nil)
		return
	}
	response.RespondOK(c, gin.H{
		"birthdate":       profile.Birthdate.Format("2006-01-02"),
		"life_expectancy": profile.LifeExpectancyYears,
	})
}

func parseBirthdate(raw string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("birthdate must be an ISO date, got %q", raw)
}
