package handlers

import (
	"fmt"
	"net/http"
	"time"

	"secure_notes/internal/service"

	"github.com/gin-gonic/gin"
)

// boundLayout is one accepted spelling of a range bound.
type boundLayout struct {
	layout   string
	dateOnly bool
}

var boundLayouts = []boundLayout{
	{layout: time.RFC3339},
	{layout: "2006-01-02 15:04:05"},
	{layout: "2006-01-02", dateOnly: true},
}

// parseBound reads a range bound in UTC and reports whether it named a whole day.
func parseBound(s string) (time.Time, bool, error) {
	for _, b := range boundLayouts {
		if t, err := time.Parse(b.layout, s); err == nil {
			return t.UTC(), b.dateOnly, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("unrecognized time %q", s)
}

// activityFilter builds the history filter from the query string. A date-only
// 'to' is stretched to the last microsecond of that day.
func activityFilter(c *gin.Context) (service.ActivityFilter, error) {
	f := service.ActivityFilter{Type: c.Query("type")}
	if raw := c.Query("from"); raw != "" {
		from, _, err := parseBound(raw)
		if err != nil {
			return f, fmt.Errorf("bad 'from': %w", err)
		}
		f.From = from
	}
	if raw := c.Query("to"); raw != "" {
		to, wholeDay, err := parseBound(raw)
		if err != nil {
			return f, fmt.Errorf("bad 'to': %w", err)
		}
		if wholeDay {
			to = to.AddDate(0, 0, 1).Add(-time.Microsecond)
		}
		f.To = to
	}
	return f, nil
}

// @Summary      List activity
// @Description  The caller's own audit trail. Dates accept RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'; a date-only 'to' covers the whole day.
// @Tags         activity
// @Produce      json
// @Param        from  query   string  false  "Start of range"  example(2025-08-01)
// @Param        to    query   string  false  "End of range. Date-only treated as end of day."  example(2025-08-31)
// @Param        type  query   string  false  "Event type"  Enums(REGISTER,LOGIN,LOGOUT,NOTE_CREATED,NOTE_UPDATED,NOTE_DELETED)
// @Success      200   {object}  map[string]interface{}  "count, events"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/activity [get]
// @Security     BearerAuth
func (h *Handler) getActivity(c *gin.Context) {
	uid, ok := h.userOrAbort(c)
	if !ok {
		return
	}
	filter, err := activityFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error() + "; expected RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'"})
		return
	}

	events, err := h.services.History(c.Request.Context(), uid, filter)
	if err != nil {
		h.abortWithServiceError(c, err, "activity_history_failed", "user_id", uid, "type", filter.Type)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(events), "events": events})
}
