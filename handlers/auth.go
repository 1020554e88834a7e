package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"lingolink/chat"
	"lingolink/middleware"
	"lingolink/models"
	"lingolink/utils"
)

type SignupRequest struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type OnboardRequest struct {
	FullName         string `json:"fullName"`
	Bio              string `json:"bio"`
	NativeLanguage   string `json:"nativeLanguage"`
	LearningLanguage string `json:"learningLanguage"`
	Location         string `json:"location"`
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const sessionMaxAge = int(utils.SessionTTL / time.Second)

func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.SessionCookie, token, sessionMaxAge, "/", "", h.cfg.Production(), true)
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.cfg.Production(), true)
}

func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if req.Email == "" || req.FullName == "" || req.Password == "" {
		utils.BadRequest(c, "All fields are required")
		return
	}
	if len(req.Password) < 8 {
		utils.BadRequest(c, "Password must be at least 8 characters long")
		return
	}
	if !emailPattern.MatchString(req.Email) {
		utils.BadRequest(c, "Invalid email format")
		return
	}

	var exists bool
	if err := h.db.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)", req.Email).Scan(&exists); err != nil {
		h.logger.Error("signup email lookup failed", zap.Error(err))
		utils.InternalError(c, "Internal server error")
		return
	}
	if exists {
		utils.BadRequest(c, "Email already exists, please use another email")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("signup password hash failed", zap.Error(err))
		utils.InternalError(c, "Internal server error")
		return
	}

	id := utils.GenerateUUID()
	avatarURL := h.avatars.Assign()
	now := time.Now()

	_, err = h.db.Exec(
		"INSERT INTO users (id, email, full_name, password, avatar, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		id, req.Email, req.FullName, string(hashed), avatarURL, now, now,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			// lost the unique-email race to a concurrent signup
			utils.BadRequest(c, "Email already exists, please use another email")
			return
		}
		h.logger.Error("signup insert failed", zap.Error(err))
		utils.InternalError(c, "Internal server error")
		return
	}

	h.syncer.Enqueue(chat.Identity{ID: id, Name: req.FullName, Image: avatarURL})

	token, err := utils.GenerateToken(id, h.cfg.JWTSecret)
	if err != nil {
		h.logger.Error("signup token generation failed", zap.Error(err))
		utils.InternalError(c, "Internal server error")
		return
	}
	h.setSessionCookie(c, token)

	user := models.User{
		ID:        id,
		Email:     req.Email,
		FullName:  req.FullName,
		Avatar:    avatarURL,
		CreatedAt: now,
	}
	utils.Created(c, gin.H{"success": true, "user": user.ToResponse()})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if req.Email == "" || req.Password == "" {
		utils.BadRequest(c, "All fields are required")
		return
	}

	var user models.User
	err := h.db.QueryRow(`
		SELECT id, email, full_name, password, avatar, bio, native_language, learning_language, location, is_onboarded, created_at
		FROM users WHERE email = ?
	`, req.Email).Scan(
		&user.ID, &user.Email, &user.FullName, &user.Password, &user.Avatar,
		&user.Bio, &user.NativeLanguage, &user.LearningLanguage, &user.Location,
		&user.IsOnboarded, &user.CreatedAt,
	)
	// the same message for both failures so the response does not reveal
	// whether the email is registered
	if err == sql.ErrNoRows {
		utils.BadRequest(c, "Invalid email or password")
		return
	}
	if err != nil {
		h.logger.Error("login lookup failed", zap.Error(err))
		utils.InternalError(c, "Internal server error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	token, err := utils.GenerateToken(user.ID, h.cfg.JWTSecret)
	if err != nil {
		h.logger.Error("login token generation failed", zap.Error(err))
		utils.InternalError(c, "Internal server error")
		return
	}
	h.setSessionCookie(c, token)

	utils.Success(c, gin.H{"success": true, "user": user.ToResponse()})
}

func (h *Handler) Logout(c *gin.Context) {
	h.clearSessionCookie(c)
	utils.Success(c, gin.H{"success": true, "message": "Logged out successfully"})
}

func (h *Handler) Onboard(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req OnboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	var missing []string
	if req.FullName == "" {
		missing = append(missing, "fullName")
	}
	if req.Bio == "" {
		missing = append(missing, "bio")
	}
	if req.NativeLanguage == "" {
		missing = append(missing, "nativeLanguage")
	}
	if req.LearningLanguage == "" {
		missing = append(missing, "learningLanguage")
	}
	if req.Location == "" {
		missing = append(missing, "location")
	}
	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":       "All fields are required",
			"missingFields": missing,
		})
		return
	}

	_, err := h.db.Exec(`
		UPDATE users
		SET full_name = ?, bio = ?, native_language = ?, learning_language = ?, location = ?, is_onboarded = TRUE, updated_at = ?
		WHERE id = ?
	`, req.FullName, req.Bio, req.NativeLanguage, req.LearningLanguage, req.Location, time.Now(), userID)
	if err != nil {
		h.logger.Error("onboarding update failed", zap.Error(err))
		utils.InternalError(c, "Internal server error")
		return
	}

	user, err := h.getUserByID(userID)
	if err == sql.ErrNoRows {
		utils.NotFound(c, "User not found")
		return
	}
	if err != nil {
		h.logger.Error("onboarding reload failed", zap.Error(err))
		utils.InternalError(c, "Internal server error")
		return
	}

	h.syncer.Enqueue(chat.Identity{ID: user.ID, Name: user.FullName, Image: user.Avatar})

	utils.Success(c, gin.H{"success": true, "user": user.ToResponse()})
}

func (h *Handler) Me(c *gin.Context) {
	user := middleware.GetUser(c)
	if user == nil {
		utils.Unauthorized(c, "Unauthorized - user not found")
		return
	}
	utils.Success(c, gin.H{"success": true, "user": user.ToResponse()})
}

func (h *Handler) getUserByID(id string) (*models.User, error) {
	var user models.User
	err := h.db.QueryRow(`
		SELECT id, email, full_name, avatar, bio, native_language, learning_language, location, is_onboarded, created_at
		FROM users WHERE id = ?
	`, id).Scan(
		&user.ID, &user.Email, &user.FullName, &user.Avatar, &user.Bio,
		&user.NativeLanguage, &user.LearningLanguage, &user.Location,
		&user.IsOnboarded, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
