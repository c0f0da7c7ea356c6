package rest

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/qhub/qhub_api/internal/model"
	"github.com/qhub/qhub_api/util"
	"github.com/qhub/qhub_api/util/values"
	"github.com/qhub/qhub_api/util/websockets"
)

type fanOutTarget struct {
	UserID  uuid.UUID
	Message string
}

// usernameResolver maps a mentioned username to the user's id, reporting
// false for usernames that do not resolve.
type usernameResolver func(username string) (uuid.UUID, bool)

// buildFanOut derives who gets notified about a new answer. The question's
// author is told someone answered, unless they answered their own question
// or the stored author reference is not a real user id. Each distinct
// @username in the answer body that resolves to a user other than the
// answer's author is told they were mentioned. Unresolvable mentions are
// dropped silently.
func buildFanOut(question model.Question, answer model.Answer, answerAuthorUsername string, resolve usernameResolver) []fanOutTarget {
	var targets []fanOutTarget

	if questionAuthor, err := uuid.Parse(question.UserID); err == nil && question.UserID != answer.UserID {
		targets = append(targets, fanOutTarget{
			UserID:  questionAuthor,
			Message: fmt.Sprintf("%s answered your question: %s", answerAuthorUsername, question.Title),
		})
	}

	for _, mention := range util.ExtractMentions(answer.Content) {
		mentionedID, ok := resolve(mention)
		if !ok || mentionedID.String() == answer.UserID {
			continue
		}
		targets = append(targets, fanOutTarget{
			UserID:  mentionedID,
			Message: fmt.Sprintf("%s mentioned you in an answer", answerAuthorUsername),
		})
	}
	return targets
}

// FanOutAnswerNotifications stores and pushes the notifications for a
// freshly posted answer. Every failure is logged and swallowed; fan-out
// can never fail the answer post it was triggered by.
func (api *API) FanOutAnswerNotifications(ctx context.Context, question model.Question, answer model.Answer, answerAuthorUsername string) {
	resolve := func(username string) (uuid.UUID, bool) {
		user, err := api.GetUserByUsername(ctx, username)
		if err != nil {
			return uuid.Nil, false
		}
		return user.ID, true
	}

	link := fmt.Sprintf("/questions/%s", question.ID)
	for _, target := range buildFanOut(question, answer, answerAuthorUsername, resolve) {
		notification := model.Notification{
			ID:      util.GenerateUUID(),
			UserID:  target.UserID,
			Message: target.Message,
			Link:    link,
		}
		if err := api.InsertNotification(ctx, notification); err != nil {
			log.Println("fan-out: unable to store notification for", target.UserID, err)
			continue
		}
		api.Deps.WebSocket.SendToUser(target.UserID.String(), websockets.MsgTypeNotification, notification)
	}
}

func (api *API) ListNotificationsHelper(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]model.Notification, string, string, error) {
	notifications, err := api.ListNotificationsForUser(ctx, userID, unreadOnly)
	if err != nil {
		return nil, values.Error, "unable to list notifications", err
	}
	return notifications, values.Success, "Notifications retrieved successfully", nil
}

func (api *API) UnreadCountHelper(ctx context.Context, userID uuid.UUID) (model.NotificationCountResponse, string, string, error) {
	count, err := api.CountUnreadNotifications(ctx, userID)
	if err != nil {
		return model.NotificationCountResponse{}, values.Error, "unable to count notifications", err
	}
	return model.NotificationCountResponse{UnreadCount: count}, values.Success, "Notification count retrieved successfully", nil
}

func (api *API) MarkReadHelper(ctx context.Context, userID uuid.UUID) (string, string, error) {
	if _, err := api.MarkNotificationsRead(ctx, userID); err != nil {
		return values.Error, "unable to mark notifications read", err
	}
	return values.Success, "Notifications marked as read", nil
}
