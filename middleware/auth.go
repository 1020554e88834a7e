package middleware

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"lingolink/models"
	"lingolink/utils"
)

// SessionCookie is the name of the HTTP-only cookie carrying the session token.
const SessionCookie = "jwt"

// Auth verifies the session cookie, resolves the user behind it and attaches
// the user to the request context.
func Auth(db *sql.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(SessionCookie)
		if err != nil || tokenString == "" {
			utils.Unauthorized(c, "Unauthorized - no token provided")
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(tokenString, secret)
		if err != nil {
			utils.Unauthorized(c, "Unauthorized - invalid token")
			c.Abort()
			return
		}

		var user models.User
		err = db.QueryRow(`
			SELECT id, email, full_name, avatar, bio, native_language, learning_language, location, is_onboarded, created_at
			FROM users WHERE id = ?
		`, claims.UserID).Scan(
			&user.ID, &user.Email, &user.FullName, &user.Avatar, &user.Bio,
			&user.NativeLanguage, &user.LearningLanguage, &user.Location,
			&user.IsOnboarded, &user.CreatedAt,
		)
		if err == sql.ErrNoRows {
			utils.Unauthorized(c, "Unauthorized - user not found")
			c.Abort()
			return
		}
		if err != nil {
			utils.InternalError(c, "Internal server error")
			c.Abort()
			return
		}

		c.Set("user", &user)
		c.Set("user_id", user.ID)
		c.Next()
	}
}

func GetUserID(c *gin.Context) string {
	return c.GetString("user_id")
}

func GetUser(c *gin.Context) *models.User {
	if v, ok := c.Get("user"); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}
