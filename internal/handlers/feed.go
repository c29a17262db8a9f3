package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"sportconnect/internal/middleware"
	"sportconnect/internal/models"
	"sportconnect/internal/services"
	"sportconnect/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type FeedHandler struct {
	db      *gorm.DB
	uploads *services.UploadService
}

func NewFeedHandler(gdb *gorm.DB, uploads *services.UploadService) *FeedHandler {
	return &FeedHandler{db: gdb, uploads: uploads}
}

type postForm struct {
	Content string `form:"content" binding:"required"`
}

// fillLikeCounts batch-fills like counts for a page of posts with one
// grouped query instead of one count per post.
func fillLikeCounts(gdb *gorm.DB, posts []models.Post) {
	if len(posts) == 0 {
		return
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	type countResult struct {
		PostID uint
		Count  int
	}
	var results []countResult
	gdb.Model(&models.Like{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&results)

	countMap := make(map[uint]int, len(results))
	for _, r := range results {
		countMap[r.PostID] = r.Count
	}

	for i := range posts {
		posts[i].LikeCount = countMap[posts[i].ID]
	}
}

// fillLikedByMe marks the posts the viewer has already liked.
func fillLikedByMe(gdb *gorm.DB, posts []models.Post, userID uint) {
	if len(posts) == 0 || userID == 0 {
		return
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	var liked []models.Like
	gdb.Where("user_id = ? AND post_id IN ?", userID, postIDs).Find(&liked)

	likedMap := make(map[uint]bool, len(liked))
	for _, l := range liked {
		likedMap[l.PostID] = true
	}

	for i := range posts {
		posts[i].LikedByMe = likedMap[posts[i].ID]
	}
}

// Feed lists every post newest first with its owner attached.
func (h *FeedHandler) Feed(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var posts []models.Post
	h.db.Preload("User").
		Order("created_at DESC").
		Find(&posts)

	fillLikeCounts(h.db, posts)
	if user != nil {
		fillLikedByMe(h.db, posts, user.ID)
	}
	for i := range posts {
		posts[i].ContentHTML = utils.RenderMarkdown(posts[i].Content)
	}

	// Upcoming events sidebar; dates are free-form text so this is a
	// plain text sort.
	var events []models.Event
	h.db.Order("date ASC").Find(&events)

	Render(c, http.StatusOK, "feed.html", gin.H{
		"Title":  "Feed",
		"Posts":  posts,
		"Events": events,
	})
}

// CreatePost adds a post for the current user, storing the optional image
// through the upload service.
func (h *FeedHandler) CreatePost(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	var form postForm
	if err := c.ShouldBind(&form); err != nil {
		Flash(c, "danger", "Post content is required")
		c.Redirect(http.StatusFound, "/feed")
		return
	}

	post := models.Post{
		UserID:  user.ID,
		Content: form.Content,
	}

	if header, err := c.FormFile("image"); err == nil {
		filename, err := h.uploads.SaveFormFile(header, fmt.Sprintf("post_%d_", user.ID))
		if err != nil {
			Flash(c, "danger", "Image upload failed")
			c.Redirect(http.StatusFound, "/feed")
			return
		}
		post.Image = filename
	}

	if err := h.db.Create(&post).Error; err != nil {
		Flash(c, "danger", "Posting failed")
		c.Redirect(http.StatusFound, "/feed")
		return
	}

	Flash(c, "success", "Posted!")
	c.Redirect(http.StatusFound, "/feed")
}

// LikePost toggles the caller's like on a post. API-style: answers JSON so
// the page can update in place, and 401 rather than a login redirect.
func (h *FeedHandler) LikePost(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "login required"})
		return
	}

	postID := utils.StringToUint(c.Param("id"))

	var post models.Post
	if err := h.db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "like failed"})
		return
	}

	// Toggle keyed by the unique (user, post) pair: delete if present,
	// insert otherwise.
	liked := false
	var existing models.Like
	if err := h.db.Where("user_id = ? AND post_id = ?", user.ID, post.ID).First(&existing).Error; err == nil {
		h.db.Delete(&existing)
	} else {
		like := models.Like{UserID: user.ID, PostID: post.ID}
		if err := h.db.Create(&like).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "like failed"})
			return
		}
		liked = true
	}

	var count int64
	h.db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&count)

	c.JSON(http.StatusOK, gin.H{"liked": liked, "likes_count": count})
}
