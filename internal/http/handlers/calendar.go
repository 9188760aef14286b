package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/lifeweeks-backend/internal/domain"
	"github.com/yungbote/lifeweeks-backend/internal/http/response"
	"github.com/yungbote/lifeweeks-backend/internal/pkg/dbctx"
	"github.com/yungbote/lifeweeks-backend/internal/services"
)

type CalendarHandler struct {
	calendarService services.CalendarService
}

func NewCalendarHandler(calendarService services.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarService: calendarService}
}

// GET /api/calendar
func (ch *CalendarHandler) GetCalendar(c *gin.Context) {
	view, err := ch.calendarService.GetCalendar(
		dbctx.Context{Ctx: c.Request.Context()},
		time.Now(),
	)
	if err != nil {
		if errors.Is(err, types.ErrProfileMissing) {
			response.RespondError(c, http.StatusNotFound, "profile_missing",
				errors.New("user data not found, set your birthdate first"))
			return
		}
		response.RespondError(c, http.StatusInternalServerError, "persistence_error", err)
		return
	}
	response.RespondOK(c, view)
}
