package rest

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/qhub/qhub_api/internal/model"
)

func (api *API) InsertNotification(ctx context.Context, n model.Notification) error {
	stmt := `
        INSERT INTO notifications (
            id,
            user_id,
            message,
            link
        ) VALUES ($1, $2, $3, $4)
    `
	_, err := api.DB.Exec(ctx, stmt, n.ID, n.UserID, n.Message, n.Link)
	if err != nil {
		log.Println("error inserting notification", err)
		return err
	}
	return nil
}

func (api *API) ListNotificationsForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]model.Notification, error) {
	stmt := `
        SELECT id, user_id, message, link, read, created_at
        FROM notifications
        WHERE user_id = $1 AND ($2 = FALSE OR read = FALSE)
        ORDER BY created_at DESC
    `
	rows, err := api.DB.Query(ctx, stmt, userID, unreadOnly)
	if err != nil {
		log.Println("error listing notifications", err)
		return nil, err
	}
	defer rows.Close()

	notifications := []model.Notification{}
	for rows.Next() {
		var n model.Notification
		err := rows.Scan(
			&n.ID,
			&n.UserID,
			&n.Message,
			&n.Link,
			&n.Read,
			&n.CreatedAt,
		)
		if err != nil {
			log.Println("error scanning notification", err)
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (api *API) CountUnreadNotifications(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	stmt := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read = FALSE`

	err := api.DB.QueryRow(ctx, stmt, userID).Scan(&count)
	if err != nil {
		log.Println("error counting unread notifications", err)
		return 0, err
	}
	return count, nil
}

func (api *API) MarkNotificationsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	stmt := `UPDATE notifications SET read = TRUE WHERE user_id = $1 AND read = FALSE`

	tag, err := api.DB.Exec(ctx, stmt, userID)
	if err != nil {
		log.Println("error marking notifications read", err)
		return 0, err
	}
	return tag.RowsAffected(), nil
}
