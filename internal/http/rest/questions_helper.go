package rest

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/qhub/qhub_api/internal/model"
	"github.com/qhub/qhub_api/internal/votes"
	"github.com/qhub/qhub_api/util"
	"github.com/qhub/qhub_api/util/values"
)

// enrichQuestion fills the derived display fields on a stored question and
// strips the raw vote ledger from the response.
func (api *API) enrichQuestion(ctx context.Context, q model.Question) model.Question {
	q.Author, q.AuthorAvatar = resolveAuthor(ctx, q.UserID, api.GetUserByID)

	count, err := api.CountAnswers(ctx, q.ID.String())
	if err != nil {
		log.Println("error counting answers for question", q.ID, err)
	}
	q.AnswerCount = count

	if q.Tags == nil {
		q.Tags = []string{}
	}
	q.Voters = nil
	return q
}

func (api *API) AskQuestionHelper(ctx context.Context, userID string, req model.CreateQuestionRequest) (model.Question, string, string, error) {
	if err := util.ValidateStruct(req); err != nil {
		return model.Question{}, values.BadRequestBody, "invalid question details", err
	}

	question := model.Question{
		ID:          util.GenerateUUID(),
		Title:       req.Title,
		Description: req.Description,
		Tags:        util.NormalizeTags(req.Tags),
		UserID:      userID,
	}
	if err := api.InsertQuestion(ctx, question); err != nil {
		return model.Question{}, values.Error, "unable to create question", err
	}

	created, err := api.GetQuestionByID(ctx, question.ID.String())
	if err != nil {
		return model.Question{}, values.Error, "unable to load created question", err
	}
	return api.enrichQuestion(ctx, created), values.Created, "Question created successfully", nil
}

func (api *API) ListQuestionsHelper(ctx context.Context, tag string) ([]model.Question, string, string, error) {
	stored, err := api.ListQuestions(ctx, tag)
	if err != nil {
		return nil, values.Error, "unable to list questions", err
	}

	enriched := make([]model.Question, 0, len(stored))
	for _, q := range stored {
		enriched = append(enriched, api.enrichQuestion(ctx, q))
	}
	return enriched, values.Success, "Questions retrieved successfully", nil
}

func (api *API) GetQuestionHelper(ctx context.Context, questionID string) (model.Question, string, string, error) {
	stored, err := api.GetQuestionByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, ErrQuestionNotFound) {
			return model.Question{}, values.NotFound, "question not found", err
		}
		return model.Question{}, values.Error, "unable to load question", err
	}
	return api.enrichQuestion(ctx, stored), values.Success, "Question retrieved successfully", nil
}

func (api *API) VoteQuestionHelper(ctx context.Context, questionID, voterID string, req model.VoteRequest) (model.VoteResponse, string, string, error) {
	direction, err := votes.ParseDirection(req.Direction)
	if err != nil {
		return model.VoteResponse{}, values.BadRequestBody, "direction must be 'up' or 'down'", err
	}

	total, err := api.applyVoteRepo(ctx, voteQuestions, questionID, voterID, direction)
	if err != nil {
		switch {
		case errors.Is(err, ErrQuestionNotFound):
			return model.VoteResponse{}, values.NotFound, "question not found", err
		case errors.Is(err, votes.ErrDuplicateVote):
			return model.VoteResponse{}, values.Conflict, "you have already cast this vote", err
		default:
			return model.VoteResponse{}, values.Error, "unable to record vote", err
		}
	}
	return model.VoteResponse{Votes: total}, values.Success, "Vote recorded successfully", nil
}

// DeleteQuestionHelper removes a question and every answer attached to it
// in one transaction.
func (api *API) DeleteQuestionHelper(ctx context.Context, questionID string) (string, string, error) {
	var deleted int64
	err := api.Deps.DB.RunInTx(ctx, func(tx pgx.Tx) error {
		if _, err := api.DeleteAnswersForQuestionRepo(ctx, tx, questionID); err != nil {
			return err
		}
		rows, err := api.DeleteQuestionRepo(ctx, tx, questionID)
		if err != nil {
			return err
		}
		deleted = rows
		return nil
	})
	if err != nil {
		return values.Error, "unable to delete question", err
	}
	if deleted == 0 {
		return values.NotFound, "question not found", ErrQuestionNotFound
	}
	log.Println("question deleted by admin", questionID)
	return values.Success, "Question and its answers deleted successfully", nil
}
