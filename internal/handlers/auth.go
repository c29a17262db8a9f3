package handlers

import (
	"errors"
	"net/http"

	"sportconnect/internal/models"
	"sportconnect/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthHandler struct {
	db *gorm.DB
}

func NewAuthHandler(gdb *gorm.DB) *AuthHandler {
	return &AuthHandler{db: gdb}
}

type signupForm struct {
	Name     string `form:"name" binding:"required"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

type loginForm struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

func (h *AuthHandler) ShowSignup(c *gin.Context) {
	Render(c, http.StatusOK, "auth/signup.html", nil)
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var form signupForm
	if err := c.ShouldBind(&form); err != nil {
		Render(c, http.StatusBadRequest, "auth/signup.html", gin.H{"Error": "Name, email and password are required"})
		return
	}

	var existing models.User
	if err := h.db.Where("email = ?", form.Email).First(&existing).Error; err == nil {
		Render(c, http.StatusConflict, "auth/signup.html", gin.H{"Error": "Email already registered"})
		return
	}

	hash, err := utils.HashPassword(form.Password)
	if err != nil {
		Render(c, http.StatusInternalServerError, "auth/signup.html", gin.H{"Error": "Signup failed"})
		return
	}

	user := models.User{
		Name:     form.Name,
		Email:    form.Email,
		Password: hash,
	}
	if err := h.db.Create(&user).Error; err != nil {
		// Unique index on email backs up the existence check above
		Render(c, http.StatusConflict, "auth/signup.html", gin.H{"Error": "Email already registered"})
		return
	}

	Render(c, http.StatusOK, "auth/login.html", gin.H{"Success": "Account created. Please login."})
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	if sessions.Default(c).Get("user_id") != nil {
		c.Redirect(http.StatusFound, "/feed")
		return
	}
	Render(c, http.StatusOK, "auth/login.html", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	session := sessions.Default(c)
	if session.Get("user_id") != nil {
		c.Redirect(http.StatusFound, "/feed")
		return
	}

	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		Render(c, http.StatusBadRequest, "auth/login.html", gin.H{"Error": "Email and password are required"})
		return
	}

	// Unknown email and wrong password produce the same message so
	// accounts cannot be enumerated.
	var user models.User
	if err := h.db.Where("email = ?", form.Email).First(&user).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			RenderError(c, http.StatusInternalServerError, "Login failed")
			return
		}
		Render(c, http.StatusUnauthorized, "auth/login.html", gin.H{"Error": "Invalid credentials"})
		return
	}
	if !utils.CheckPasswordHash(form.Password, user.Password) {
		Render(c, http.StatusUnauthorized, "auth/login.html", gin.H{"Error": "Invalid credentials"})
		return
	}

	session.Set("user_id", user.ID)
	session.Save()

	c.Redirect(http.StatusFound, "/feed")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/login")
}
