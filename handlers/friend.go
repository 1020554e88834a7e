package handlers

import (
	"database/sql"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"lingolink/middleware"
	"lingolink/models"
	"lingolink/utils"
)

// SendFriendRequest creates the canonical edge for the caller/recipient pair,
// or accepts it when the recipient already asked first.
func (h *Handler) SendFriendRequest(c *gin.Context) {
	userID := middleware.GetUserID(c)
	recipientID := c.Param("id")

	if recipientID == userID {
		utils.BadRequest(c, "You can't send a friend request to yourself")
		return
	}

	var exists bool
	if err := h.db.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)", recipientID).Scan(&exists); err != nil {
		h.logger.Error("friend request recipient lookup failed", zap.Error(err))
		utils.InternalError(c, "Internal server error")
		return
	}
	if !exists {
		utils.NotFound(c, "Recipient not found")
		return
	}

	lo, hi := models.NormalizePair(userID, recipientID)

	var status models.FriendStatus
	var requesterID string
	err := h.db.QueryRow(
		"SELECT status, requester_id FROM friend_edges WHERE user_lo = ? AND user_hi = ?",
		lo, hi,
	).Scan(&status, &requesterID)

	switch {
	case err == sql.ErrNoRows:
		// no edge yet, create one below
	case err != nil:
		h.logger.Error("friend edge lookup failed", zap.Error(err))
		utils.InternalError(c, "Internal server error")
		return
	case status == models.FriendStatusAccepted:
		utils.BadRequest(c, "You are already friends with this user")
		return
	case requesterID == userID:
		utils.BadRequest(c, "A friend request already exists between you and this user")
		return
	default:
		// the other side asked first: mutual intent collapses into one friendship
		h.acceptEdge(c, lo, hi, recipientID)
		return
	}

	now := time.Now()
	_, err = h.db.Exec(
		"INSERT INTO friend_edges (id, user_lo, user_hi, requester_id, status, created_at, updated_at) VALUES (?, ?, ?, ?, 'pending', ?, ?)",
		utils.GenerateUUID(), lo, hi, userID, now, now,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			// lost the uk_pair race to a concurrent send for the same pair
			utils.BadRequest(c, "A friend request already exists between you and this user")
			return
		}
		h.logger.Error("friend edge insert failed", zap.Error(err))
		utils.InternalError(c, "Internal server error")
		return
	}

	utils.Success(c, gin.H{"success": true, "message": "Friend request sent"})
}

// AcceptFriendRequest accepts a pending request from the user in the path.
// Only the non-requester side can accept, which the requester_id condition
// enforces.
func (h *Handler) AcceptFriendRequest(c *gin.Context) {
	userID := middleware.GetUserID(c)
	senderID := c.Param("id")

	if senderID == userID {
		utils.BadRequest(c, "You can't accept your own friend request")
		return
	}

	lo, hi := models.NormalizePair(userID, senderID)
	h.acceptEdge(c, lo, hi, senderID)
}

func (h *Handler) acceptEdge(c *gin.Context, lo, hi, requesterID string) {
	result, err := h.db.Exec(
		"UPDATE friend_edges SET status = 'accepted', updated_at = ? WHERE user_lo = ? AND user_hi = ? AND status = 'pending' AND requester_id = ?",
		time.Now(), lo, hi, requesterID,
	)
	if err != nil {
		h.logger.Error("friend edge accept failed", zap.Error(err))
		utils.InternalError(c, "Internal server error")
		return
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		h.logger.Error("friend edge accept result failed", zap.Error(err))
		utils.InternalError(c, "Internal server error")
		return
	}
	if rowsAffected == 0 {
		utils.NotFound(c, "Friend request not found")
		return
	}

	utils.Success(c, gin.H{"success": true, "message": "Friend request accepted"})
}

// GetFriendRequests returns pending requests addressed to the caller along
// with the caller's own sent requests that were accepted (notification feed).
func (h *Handler) GetFriendRequests(c *gin.Context) {
	userID := middleware.GetUserID(c)

	incoming, err := h.queryEdgesWithUser(`
		SELECT e.id, e.requester_id, e.status, e.created_at, e.updated_at, `+userColumns+`
		FROM friend_edges e
		JOIN users u ON u.id = e.requester_id
		WHERE (e.user_lo = ? OR e.user_hi = ?) AND e.status = 'pending' AND e.requester_id != ?
		ORDER BY e.created_at DESC
	`, userID, userID, userID)
	if err != nil {
		h.logger.Error("incoming requests query failed", zap.Error(err))
		utils.InternalError(c, "Internal server error")
		return
	}

	accepted, err := h.queryEdgesWithUser(`
		SELECT e.id, e.requester_id, e.status, e.created_at, e.updated_at, `+userColumns+`
		FROM friend_edges e
		JOIN users u ON u.id = IF(e.user_lo = ?, e.user_hi, e.user_lo)
		WHERE e.requester_id = ? AND e.status = 'accepted'
		ORDER BY e.updated_at DESC
	`, userID, userID)
	if err != nil {
		h.logger.Error("accepted requests query failed", zap.Error(err))
		utils.InternalError(c, "Internal server error")
		return
	}

	utils.Success(c, gin.H{
		"incomingReqs": incoming,
		"acceptedReqs": accepted,
	})
}

// GetOutgoingFriendRequests returns the caller's pending requests with the
// recipient profiles. The frontend derives its outgoing-ids set from this.
func (h *Handler) GetOutgoingFriendRequests(c *gin.Context) {
	userID := middleware.GetUserID(c)

	outgoing, err := h.queryEdgesWithUser(`
		SELECT e.id, e.requester_id, e.status, e.created_at, e.updated_at, `+userColumns+`
		FROM friend_edges e
		JOIN users u ON u.id = IF(e.user_lo = ?, e.user_hi, e.user_lo)
		WHERE e.requester_id = ? AND e.status = 'pending'
		ORDER BY e.created_at DESC
	`, userID, userID)
	if err != nil {
		h.logger.Error("outgoing requests query failed", zap.Error(err))
		utils.InternalError(c, "Internal server error")
		return
	}

	utils.Success(c, outgoing)
}

func (h *Handler) queryEdgesWithUser(query string, args ...interface{}) ([]models.FriendRequestWithUser, error) {
	rows, err := h.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := []models.FriendRequestWithUser{}
	for rows.Next() {
		var r models.FriendRequestWithUser
		var user models.User
		if err := rows.Scan(
			&r.ID, &r.RequesterID, &r.Status, &r.CreatedAt, &r.UpdatedAt,
			&user.ID, &user.Email, &user.FullName, &user.Avatar, &user.Bio,
			&user.NativeLanguage, &user.LearningLanguage, &user.Location,
			&user.IsOnboarded, &user.CreatedAt,
		); err != nil {
			continue
		}
		r.User = *user.ToResponse()
		requests = append(requests, r)
	}
	return requests, rows.Err()
}
