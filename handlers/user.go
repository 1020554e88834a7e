package handlers

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lingolink/middleware"
	"lingolink/models"
	"lingolink/utils"
)

const userColumns = "u.id, u.email, u.full_name, u.avatar, u.bio, u.native_language, u.learning_language, u.location, u.is_onboarded, u.created_at"

// GetRecommendedUsers returns onboarded users with no edge (pending or
// accepted) to the caller, in either direction.
func (h *Handler) GetRecommendedUsers(c *gin.Context) {
	userID := middleware.GetUserID(c)

	rows, err := h.db.Query(`
		SELECT `+userColumns+`
		FROM users u
		WHERE u.id != ? AND u.is_onboarded = TRUE
		  AND NOT EXISTS (
			SELECT 1 FROM friend_edges e
			WHERE e.user_lo = LEAST(u.id, ?) AND e.user_hi = GREATEST(u.id, ?)
		  )
		ORDER BY u.full_name
	`, userID, userID, userID)
	if err != nil {
		h.logger.Error("recommended users query failed", zap.Error(err))
		utils.InternalError(c, "Internal server error")
		return
	}
	defer rows.Close()

	users := scanUsers(rows)
	utils.Success(c, users)
}

// GetFriends returns the profiles on the far side of the caller's accepted
// edges.
func (h *Handler) GetFriends(c *gin.Context) {
	userID := middleware.GetUserID(c)

	rows, err := h.db.Query(`
		SELECT `+userColumns+`
		FROM friend_edges e
		JOIN users u ON u.id = IF(e.user_lo = ?, e.user_hi, e.user_lo)
		WHERE (e.user_lo = ? OR e.user_hi = ?) AND e.status = 'accepted'
		ORDER BY u.full_name
	`, userID, userID, userID)
	if err != nil {
		h.logger.Error("friends query failed", zap.Error(err))
		utils.InternalError(c, "Internal server error")
		return
	}
	defer rows.Close()

	friends := scanUsers(rows)
	utils.Success(c, friends)
}

func scanUsers(rows *sql.Rows) []models.UserResponse {
	users := []models.UserResponse{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID, &user.Email, &user.FullName, &user.Avatar, &user.Bio,
			&user.NativeLanguage, &user.LearningLanguage, &user.Location,
			&user.IsOnboarded, &user.CreatedAt,
		); err != nil {
			continue
		}
		users = append(users, *user.ToResponse())
	}
	return users
}
