package handlers

import (
	"errors"
	"net/http"
	"strings"

	"sportconnect/internal/middleware"
	"sportconnect/internal/models"
	"sportconnect/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MessageHandler struct {
	db *gorm.DB
}

func NewMessageHandler(gdb *gorm.DB) *MessageHandler {
	return &MessageHandler{db: gdb}
}

// Directory lists everyone except the current user, optionally filtered by
// a case-insensitive name substring.
func (h *MessageHandler) Directory(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	query := c.Query("q")

	tx := h.db.Where("id != ?", user.ID)
	if query != "" {
		tx = tx.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query)+"%")
	}

	var users []models.User
	tx.Order("name ASC").Find(&users)

	Render(c, http.StatusOK, "messages.html", gin.H{
		"Title": "Messages",
		"Users": users,
		"Query": query,
	})
}

// Chat shows the thread with another user: messages in either direction
// between the two, oldest first.
func (h *MessageHandler) Chat(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	other, ok := h.otherUser(c, user)
	if !ok {
		return
	}

	var messages []models.Message
	h.db.Preload("Sender").
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			user.ID, other.ID, other.ID, user.ID).
		Order("created_at ASC").
		Find(&messages)

	Render(c, http.StatusOK, "chat.html", gin.H{
		"Title":     "Chat with " + other.Name,
		"OtherUser": other,
		"Messages":  messages,
	})
}

// Send appends a message to the thread. Blank content (after trimming) is
// dropped without an insert.
func (h *MessageHandler) Send(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	other, ok := h.otherUser(c, user)
	if !ok {
		return
	}

	content := strings.TrimSpace(c.PostForm("content"))
	if content != "" {
		message := models.Message{
			SenderID:   user.ID,
			ReceiverID: other.ID,
			Content:    content,
		}
		if err := h.db.Create(&message).Error; err != nil {
			Flash(c, "danger", "Message failed")
			c.Redirect(http.StatusFound, "/chat/"+c.Param("id"))
			return
		}
		Flash(c, "success", "Message sent!")
	}
	c.Redirect(http.StatusFound, "/chat/"+c.Param("id"))
}

// otherUser resolves the chat partner, rejecting self-chat and unknown ids.
// It writes the response itself when the partner is unusable.
func (h *MessageHandler) otherUser(c *gin.Context, user *models.User) (*models.User, bool) {
	otherID := utils.StringToUint(c.Param("id"))

	var other models.User
	if err := h.db.First(&other, otherID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RenderError(c, http.StatusNotFound, "User not found")
			return nil, false
		}
		RenderError(c, http.StatusInternalServerError, "Chat unavailable")
		return nil, false
	}

	if other.ID == user.ID {
		Flash(c, "warning", "You cannot chat with yourself.")
		c.Redirect(http.StatusFound, "/messages")
		return nil, false
	}
	return &other, true
}
