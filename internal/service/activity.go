package service

import (
	"context"
	"strings"
	"time"

	"secure_notes/internal/logger"
	"secure_notes/internal/models"
	"secure_notes/internal/repository"
)

// recordActivity appends e to the audit log. The operation it describes has already
// been committed, so a failed append is logged rather than returned.
func recordActivity(ctx context.Context, repo repository.ActivityRepo, log *logger.Logger, e models.ActivityEvent) {
	err := repo.Append(ctx, e)
	if err == nil || log == nil {
		return
	}
	log.Errorw("activity_record_failed", "type", e.Type, "user_id", e.UserID, "err", err)
}

type ActivityService struct {
	activityRepo repository.ActivityRepo
}

func NewActivityService(activityRepo repository.ActivityRepo) *ActivityService {
	return &ActivityService{activityRepo: activityRepo}
}

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeEventType trims spaces and uppercases the event type filter.
func normalizeEventType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f ActivityFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", ErrInvalidTimeRange
	}

	eventType := normalizeEventType(f.Type)
	return from, to, eventType, nil
}

// History lists userID's own activity. Other users' events are never returned.
func (s *ActivityService) History(ctx context.Context, userID int, f ActivityFilter) ([]models.ActivityEvent, error) {
	from, to, typ, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.activityRepo.List(ctx, userID, from, to, typ)
}
