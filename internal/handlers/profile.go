package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"sportconnect/internal/middleware"
	"sportconnect/internal/models"
	"sportconnect/internal/services"
	"sportconnect/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProfileHandler struct {
	db      *gorm.DB
	uploads *services.UploadService
}

func NewProfileHandler(gdb *gorm.DB, uploads *services.UploadService) *ProfileHandler {
	return &ProfileHandler{db: gdb, uploads: uploads}
}

type profileForm struct {
	Name     string `form:"name" binding:"required"`
	Bio      string `form:"bio"`
	Location string `form:"location"`
}

// Show renders a user's profile with count-query stats.
func (h *ProfileHandler) Show(c *gin.Context) {
	viewer := c.MustGet(middleware.CheckUserKey).(*models.User)

	var user models.User
	if err := h.db.First(&user, utils.StringToUint(c.Param("id"))).Error; err != nil {
		RenderError(c, http.StatusNotFound, "User not found")
		return
	}

	var postCount, eventCount, followerCount, followingCount int64
	h.db.Model(&models.Post{}).Where("user_id = ?", user.ID).Count(&postCount)
	h.db.Model(&models.UserEvent{}).Where("user_id = ?", user.ID).Count(&eventCount)
	h.db.Model(&models.Follow{}).Where("followed_id = ?", user.ID).Count(&followerCount)
	h.db.Model(&models.Follow{}).Where("follower_id = ?", user.ID).Count(&followingCount)

	isFollowing := false
	if user.ID != viewer.ID {
		var follow models.Follow
		isFollowing = h.db.Where("follower_id = ? AND followed_id = ?", viewer.ID, user.ID).
			First(&follow).Error == nil
	}

	Render(c, http.StatusOK, "profile.html", gin.H{
		"Title":          user.Name,
		"User":           user,
		"PostCount":      postCount,
		"EventCount":     eventCount,
		"FollowerCount":  followerCount,
		"FollowingCount": followingCount,
		"IsFollowing":    isFollowing,
	})
}

// ShowOwn redirects to the current user's profile.
func (h *ProfileHandler) ShowOwn(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	c.Redirect(http.StatusFound, "/profile/"+strconv.FormatUint(uint64(user.ID), 10))
}

// Edit updates name/bio/location and optionally the profile picture. Only
// the owner may edit their profile.
func (h *ProfileHandler) Edit(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	targetID := utils.StringToUint(c.Param("id"))

	if user.ID != targetID {
		RenderError(c, http.StatusForbidden, "You cannot edit someone else's profile")
		return
	}

	var form profileForm
	if err := c.ShouldBind(&form); err != nil {
		Flash(c, "danger", "Name is required")
		c.Redirect(http.StatusFound, "/profile/"+c.Param("id"))
		return
	}

	updates := map[string]interface{}{
		"name":     form.Name,
		"bio":      form.Bio,
		"location": form.Location,
	}

	if header, err := c.FormFile("profile_pic"); err == nil {
		filename, err := h.uploads.SaveFormFile(header, fmt.Sprintf("%d_", user.ID))
		if err != nil {
			Flash(c, "danger", "Picture upload failed")
			c.Redirect(http.StatusFound, "/profile/"+c.Param("id"))
			return
		}
		if filename != "" {
			updates["profile_pic"] = filename
		}
	}

	if err := h.db.Model(user).Updates(updates).Error; err != nil {
		Flash(c, "danger", "Profile update failed")
		c.Redirect(http.StatusFound, "/profile/"+c.Param("id"))
		return
	}

	Flash(c, "success", "Profile updated!")
	c.Redirect(http.StatusFound, "/profile/"+c.Param("id"))
}

// Follow creates the directed edge viewer -> target, idempotently.
// Following yourself is rejected with a notice, not an error page.
func (h *ProfileHandler) Follow(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	targetID := utils.StringToUint(c.Param("id"))

	if targetID == user.ID {
		Flash(c, "warning", "You can't follow yourself.")
		c.Redirect(http.StatusFound, "/profile/"+c.Param("id"))
		return
	}

	var target models.User
	if err := h.db.First(&target, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RenderError(c, http.StatusNotFound, "User not found")
			return
		}
		RenderError(c, http.StatusInternalServerError, "Follow failed")
		return
	}

	var existing models.Follow
	if err := h.db.Where("follower_id = ? AND followed_id = ?", user.ID, target.ID).First(&existing).Error; err == nil {
		Flash(c, "info", "Already following")
		c.Redirect(http.StatusFound, "/profile/"+c.Param("id"))
		return
	}

	follow := models.Follow{FollowerID: user.ID, FollowedID: target.ID}
	if err := h.db.Create(&follow).Error; err != nil {
		Flash(c, "danger", "Follow failed")
		c.Redirect(http.StatusFound, "/profile/"+c.Param("id"))
		return
	}

	Flash(c, "success", fmt.Sprintf("You are now following %s", target.Name))
	c.Redirect(http.StatusFound, "/profile/"+c.Param("id"))
}

// Unfollow deletes the edge if present; unfollowing someone you don't
// follow is a silent no-op.
func (h *ProfileHandler) Unfollow(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	targetID := utils.StringToUint(c.Param("id"))

	var follow models.Follow
	if err := h.db.Where("follower_id = ? AND followed_id = ?", user.ID, targetID).First(&follow).Error; err == nil {
		h.db.Delete(&follow)
		Flash(c, "success", "Unfollowed")
	}
	c.Redirect(http.StatusFound, "/profile/"+c.Param("id"))
}
