package dashboard

import (
	"context"
	"time"

	"travel-agency/logger"
	"travel-agency/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

type Store interface {
	TourStats(ctx context.Context) (total, active int64, err error)
	InquiryStats(ctx context.Context, since time.Time) (total, fresh, recent int64, err error)
}

type DashboardController struct {
	Store Store
	now   func() time.Time
}

func NewDashboardController(store Store) *DashboardController {
	return &DashboardController{Store: store, now: time.Now}
}

// Stats are the counters of the admin landing page.
type Stats struct {
	TotalTours        int64     `json:"total_tours"`
	ActiveTours       int64     `json:"active_tours"`
	TotalInquiries    int64     `json:"total_inquiries"`
	NewInquiries      int64     `json:"new_inquiries"`
	InquiriesThisWeek int64     `json:"inquiries_this_week"`
	WeekStartsAt      time.Time `json:"week_starts_at"`
}

// Stats counts tours and inquiries. The week starts on Monday.
func (dc *DashboardController) Stats(c *fiber.Ctx) error {
	cfg := &now.Config{WeekStartDay: time.Monday, TimeLocation: time.Local}
	weekStart := cfg.With(dc.now()).BeginningOfWeek()

	ctx := c.UserContext()
	totalTours, activeTours, err := dc.Store.TourStats(ctx)
	if err != nil {
		logger.Error("Failed to count tours", err)
		return utils.RespondError(c, fiber.StatusInternalServerError, "Failed to load dashboard", "persistence_failed", true)
	}
	totalInquiries, newInquiries, weekInquiries, err := dc.Store.InquiryStats(ctx, weekStart)
	if err != nil {
		logger.Error("Failed to count inquiries", err)
		return utils.RespondError(c, fiber.StatusInternalServerError, "Failed to load dashboard", "persistence_failed", true)
	}

	return utils.Respond(c, fiber.StatusOK, "Dashboard retrieved successfully", Stats{
		TotalTours:        totalTours,
		ActiveTours:       activeTours,
		TotalInquiries:    totalInquiries,
		NewInquiries:      newInquiries,
		InquiriesThisWeek: weekInquiries,
		WeekStartsAt:      weekStart,
	})
}
