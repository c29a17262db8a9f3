package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"sportconnect/internal/middleware"
	"sportconnect/internal/models"
	"sportconnect/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CommunityHandler struct {
	db *gorm.DB
}

func NewCommunityHandler(gdb *gorm.DB) *CommunityHandler {
	return &CommunityHandler{db: gdb}
}

func fillMemberCounts(gdb *gorm.DB, communities []models.Community) {
	if len(communities) == 0 {
		return
	}

	communityIDs := make([]uint, len(communities))
	for i, cm := range communities {
		communityIDs[i] = cm.ID
	}

	type countResult struct {
		CommunityID uint
		Count       int
	}
	var results []countResult
	gdb.Model(&models.UserCommunity{}).
		Select("community_id, COUNT(*) as count").
		Where("community_id IN ?", communityIDs).
		Group("community_id").
		Scan(&results)

	countMap := make(map[uint]int, len(results))
	for _, r := range results {
		countMap[r.CommunityID] = r.Count
	}

	for i := range communities {
		communities[i].MemberCount = countMap[communities[i].ID]
	}
}

func fillJoinedCommunities(gdb *gorm.DB, communities []models.Community, userID uint) {
	if len(communities) == 0 || userID == 0 {
		return
	}

	var memberships []models.UserCommunity
	gdb.Where("user_id = ?", userID).Find(&memberships)

	joinedMap := make(map[uint]bool, len(memberships))
	for _, m := range memberships {
		joinedMap[m.CommunityID] = true
	}

	for i := range communities {
		communities[i].JoinedByMe = joinedMap[communities[i].ID]
	}
}

// List shows all communities, or those matching the search query on name
// or sport, case-insensitively.
func (h *CommunityHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)
	query := c.Query("q")

	var communities []models.Community
	if query != "" {
		// LOWER + LIKE keeps the match case-insensitive on every backend
		searchPattern := "%" + strings.ToLower(query) + "%"
		h.db.Where("LOWER(name) LIKE ? OR LOWER(sport) LIKE ?", searchPattern, searchPattern).
			Find(&communities)
	} else {
		h.db.Find(&communities)
	}

	fillMemberCounts(h.db, communities)
	if user != nil {
		fillJoinedCommunities(h.db, communities, user.ID)
	}

	Render(c, http.StatusOK, "communities.html", gin.H{
		"Title":       "Communities",
		"Communities": communities,
		"Query":       query,
	})
}

// Join adds the current user as member, idempotently.
func (h *CommunityHandler) Join(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	communityID := utils.StringToUint(c.Param("id"))

	var community models.Community
	if err := h.db.First(&community, communityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RenderError(c, http.StatusNotFound, "Community not found")
			return
		}
		RenderError(c, http.StatusInternalServerError, "Join failed")
		return
	}

	var existing models.UserCommunity
	if err := h.db.Where("user_id = ? AND community_id = ?", user.ID, community.ID).First(&existing).Error; err == nil {
		Flash(c, "warning", "Already a member!")
		c.Redirect(http.StatusFound, "/communities")
		return
	}

	membership := models.UserCommunity{UserID: user.ID, CommunityID: community.ID}
	if err := h.db.Create(&membership).Error; err != nil {
		Flash(c, "danger", "Join failed")
		c.Redirect(http.StatusFound, "/communities")
		return
	}

	Flash(c, "success", fmt.Sprintf("Joined community %s!", community.Name))
	c.Redirect(http.StatusFound, "/communities")
}
