package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"sportconnect/internal/middleware"
	"sportconnect/internal/models"
	"sportconnect/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type EventHandler struct {
	db *gorm.DB
}

func NewEventHandler(gdb *gorm.DB) *EventHandler {
	return &EventHandler{db: gdb}
}

type eventForm struct {
	Title    string `form:"title" binding:"required"`
	Date     string `form:"date" binding:"required"` // free-form, not validated
	Location string `form:"location" binding:"required"`
	Sport    string `form:"sport" binding:"required"`
}

// fillAttendeeCounts batch-fills attendee counts with one grouped query.
func fillAttendeeCounts(gdb *gorm.DB, events []models.Event) {
	if len(events) == 0 {
		return
	}

	eventIDs := make([]uint, len(events))
	for i, e := range events {
		eventIDs[i] = e.ID
	}

	type countResult struct {
		EventID uint
		Count   int
	}
	var results []countResult
	gdb.Model(&models.UserEvent{}).
		Select("event_id, COUNT(*) as count").
		Where("event_id IN ?", eventIDs).
		Group("event_id").
		Scan(&results)

	countMap := make(map[uint]int, len(results))
	for _, r := range results {
		countMap[r.EventID] = r.Count
	}

	for i := range events {
		events[i].AttendeeCount = countMap[events[i].ID]
	}
}

func fillJoinedEvents(gdb *gorm.DB, events []models.Event, userID uint) {
	if len(events) == 0 || userID == 0 {
		return
	}

	var memberships []models.UserEvent
	gdb.Where("user_id = ?", userID).Find(&memberships)

	joinedMap := make(map[uint]bool, len(memberships))
	for _, m := range memberships {
		joinedMap[m.EventID] = true
	}

	for i := range events {
		events[i].JoinedByMe = joinedMap[events[i].ID]
	}
}

// List shows all events ordered by their date string.
func (h *EventHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var events []models.Event
	h.db.Preload("Creator").Order("date ASC").Find(&events)

	fillAttendeeCounts(h.db, events)
	if user != nil {
		fillJoinedEvents(h.db, events, user.ID)
	}

	Render(c, http.StatusOK, "events.html", gin.H{
		"Title":  "Events",
		"Events": events,
	})
}

// Create adds an event with the current user as creator.
func (h *EventHandler) Create(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	var form eventForm
	if err := c.ShouldBind(&form); err != nil {
		Flash(c, "danger", "Title, date, location and sport are required")
		c.Redirect(http.StatusFound, "/events")
		return
	}

	event := models.Event{
		Title:     form.Title,
		Date:      form.Date,
		Location:  form.Location,
		Sport:     form.Sport,
		CreatorID: user.ID,
	}
	if err := h.db.Create(&event).Error; err != nil {
		Flash(c, "danger", "Event creation failed")
		c.Redirect(http.StatusFound, "/events")
		return
	}

	Flash(c, "success", "Event created!")
	c.Redirect(http.StatusFound, "/events")
}

// Join adds the current user as attendee. Joining twice reports "already
// joined" instead of inserting a second membership row.
func (h *EventHandler) Join(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	eventID := utils.StringToUint(c.Param("id"))

	var event models.Event
	if err := h.db.First(&event, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RenderError(c, http.StatusNotFound, "Event not found")
			return
		}
		RenderError(c, http.StatusInternalServerError, "Join failed")
		return
	}

	var existing models.UserEvent
	if err := h.db.Where("user_id = ? AND event_id = ?", user.ID, event.ID).First(&existing).Error; err == nil {
		Flash(c, "warning", "Already joined!")
		c.Redirect(http.StatusFound, "/events")
		return
	}

	membership := models.UserEvent{UserID: user.ID, EventID: event.ID}
	if err := h.db.Create(&membership).Error; err != nil {
		Flash(c, "danger", "Join failed")
		c.Redirect(http.StatusFound, "/events")
		return
	}

	Flash(c, "success", fmt.Sprintf("Joined event %s!", event.Title))
	c.Redirect(http.StatusFound, "/events")
}
