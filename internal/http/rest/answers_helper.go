package rest

import (
	"context"
	"log"
	"time"

	"github.com/pkg/errors"

	"github.com/qhub/qhub_api/internal/model"
	"github.com/qhub/qhub_api/internal/votes"
	"github.com/qhub/qhub_api/util"
	"github.com/qhub/qhub_api/util/values"
)

const fanOutTimeout = 10 * time.Second

// enrichAnswer fills the derived display fields on a stored answer. The
// is_accepted flag is recomputed from the question's accepted_answer_id
// pointer, which is the source of truth.
func (api *API) enrichAnswer(ctx context.Context, a model.Answer, acceptedID *string) model.Answer {
	a.Author, a.AuthorAvatar = resolveAuthor(ctx, a.UserID, api.GetUserByID)
	a.IsAccepted = acceptedID != nil && *acceptedID == a.ID.String()
	a.Voters = nil
	return a
}

func acceptedIDOf(q model.Question) *string {
	if q.AcceptedAnswerID == nil {
		return nil
	}
	s := q.AcceptedAnswerID.String()
	return &s
}

func (api *API) PostAnswerHelper(ctx context.Context, questionID, authorID, authorUsername string, req model.CreateAnswerRequest) (model.Answer, string, string, error) {
	if err := util.ValidateStruct(req); err != nil {
		return model.Answer{}, values.BadRequestBody, "invalid answer details", err
	}

	question, err := api.GetQuestionByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, ErrQuestionNotFound) {
			return model.Answer{}, values.NotFound, "question not found", err
		}
		return model.Answer{}, values.Error, "unable to load question", err
	}

	answer := model.Answer{
		ID:         util.GenerateUUID(),
		QuestionID: question.ID,
		Content:    req.Content,
		UserID:     authorID,
	}
	if err := api.InsertAnswer(ctx, answer); err != nil {
		return model.Answer{}, values.Error, "unable to create answer", err
	}

	// Fan-out is best effort and must never delay or fail the post, so
	// it runs off the request path on its own deadline.
	go func() {
		fanCtx, cancel := context.WithTimeout(context.Background(), fanOutTimeout)
		defer cancel()
		api.FanOutAnswerNotifications(fanCtx, question, answer, authorUsername)
	}()

	stored, err := api.GetAnswerByID(ctx, answer.ID.String())
	if err != nil {
		return model.Answer{}, values.Error, "unable to load created answer", err
	}
	return api.enrichAnswer(ctx, stored, acceptedIDOf(question)), values.Created, "Answer created successfully", nil
}

func (api *API) ListAnswersHelper(ctx context.Context, questionID string) ([]model.Answer, string, string, error) {
	question, err := api.GetQuestionByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, ErrQuestionNotFound) {
			return nil, values.NotFound, "question not found", err
		}
		return nil, values.Error, "unable to load question", err
	}

	stored, err := api.ListAnswersForQuestion(ctx, questionID)
	if err != nil {
		return nil, values.Error, "unable to list answers", err
	}

	acceptedID := acceptedIDOf(question)
	enriched := make([]model.Answer, 0, len(stored))
	for _, a := range stored {
		enriched = append(enriched, api.enrichAnswer(ctx, a, acceptedID))
	}
	return enriched, values.Success, "Answers retrieved successfully", nil
}

func (api *API) VoteAnswerHelper(ctx context.Context, answerID, voterID string, req model.VoteRequest) (model.VoteResponse, string, string, error) {
	direction, err := votes.ParseDirection(req.Direction)
	if err != nil {
		return model.VoteResponse{}, values.BadRequestBody, "direction must be 'up' or 'down'", err
	}

	total, err := api.applyVoteRepo(ctx, voteAnswers, answerID, voterID, direction)
	if err != nil {
		switch {
		case errors.Is(err, ErrAnswerNotFound):
			return model.VoteResponse{}, values.NotFound, "answer not found", err
		case errors.Is(err, votes.ErrDuplicateVote):
			return model.VoteResponse{}, values.Conflict, "you have already cast this vote", err
		default:
			return model.VoteResponse{}, values.Error, "unable to record vote", err
		}
	}
	return model.VoteResponse{Votes: total}, values.Success, "Vote recorded successfully", nil
}

func (api *API) AcceptAnswerHelper(ctx context.Context, answerID, requesterID string) (model.Answer, string, string, error) {
	answer, err := api.GetAnswerByID(ctx, answerID)
	if err != nil {
		if errors.Is(err, ErrAnswerNotFound) {
			return model.Answer{}, values.NotFound, "answer not found", err
		}
		return model.Answer{}, values.Error, "unable to load answer", err
	}

	question, err := api.GetQuestionByID(ctx, answer.QuestionID.String())
	if err != nil {
		if errors.Is(err, ErrQuestionNotFound) {
			return model.Answer{}, values.NotFound, "question not found", err
		}
		return model.Answer{}, values.Error, "unable to load question", err
	}

	if question.UserID != requesterID {
		return model.Answer{}, values.NotAllowed, "only the question author can accept an answer",
			errors.New("accept attempted by non-author")
	}

	if err := api.AcceptAnswerRepo(ctx, question.ID.String(), answer.ID.String()); err != nil {
		if errors.Is(err, ErrAlreadyAccepted) {
			return model.Answer{}, values.Conflict, "this question already has an accepted answer", err
		}
		return model.Answer{}, values.Error, "unable to accept answer", err
	}

	accepted := answer.ID.String()
	return api.enrichAnswer(ctx, answer, &accepted), values.Success, "Answer accepted successfully", nil
}

func (api *API) DeleteAnswerHelper(ctx context.Context, answerID string) (string, string, error) {
	deleted, err := api.DeleteAnswerRepo(ctx, answerID)
	if err != nil {
		return values.Error, "unable to delete answer", err
	}
	if deleted == 0 {
		return values.NotFound, "answer not found", ErrAnswerNotFound
	}
	log.Println("answer deleted by admin", answerID)
	return values.Success, "Answer deleted successfully", nil
}
