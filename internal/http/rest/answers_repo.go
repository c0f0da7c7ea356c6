package rest

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/qhub/qhub_api/internal/model"
)

var ErrAlreadyAccepted = errors.New("question already has an accepted answer")

func (api *API) InsertAnswer(ctx context.Context, a model.Answer) error {
	stmt := `
        INSERT INTO answers (
            id,
            question_id,
            content,
            user_id
        ) VALUES ($1, $2, $3, $4)
    `
	_, err := api.DB.Exec(ctx, stmt, a.ID, a.QuestionID, a.Content, a.UserID)
	if err != nil {
		log.Println("error inserting answer", err)
		return err
	}
	return nil
}

func (api *API) ListAnswersForQuestion(ctx context.Context, questionID string) ([]model.Answer, error) {
	stmt := `
        SELECT id, question_id, content, user_id, is_accepted, votes, voters, created_at, updated_at
        FROM answers
        WHERE question_id = $1
        ORDER BY created_at ASC
    `
	rows, err := api.DB.Query(ctx, stmt, questionID)
	if err != nil {
		log.Println("error listing answers", err)
		return nil, err
	}
	defer rows.Close()

	answers := []model.Answer{}
	for rows.Next() {
		var a model.Answer
		err := rows.Scan(
			&a.ID,
			&a.QuestionID,
			&a.Content,
			&a.UserID,
			&a.IsAccepted,
			&a.Votes,
			&a.Voters,
			&a.CreatedAt,
			&a.UpdatedAt,
		)
		if err != nil {
			log.Println("error scanning answer", err)
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

func (api *API) GetAnswerByID(ctx context.Context, answerID string) (model.Answer, error) {
	var a model.Answer
	stmt := `
        SELECT id, question_id, content, user_id, is_accepted, votes, voters, created_at, updated_at
        FROM answers
        WHERE id = $1
    `
	err := api.DB.QueryRow(ctx, stmt, answerID).Scan(
		&a.ID,
		&a.QuestionID,
		&a.Content,
		&a.UserID,
		&a.IsAccepted,
		&a.Votes,
		&a.Voters,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Answer{}, ErrAnswerNotFound
		}
		log.Println("error getting answer by ID", err)
		return model.Answer{}, err
	}
	return a, nil
}

// AcceptAnswerRepo marks an answer as the accepted one for its question.
// The question row is the source of truth: its accepted_answer_id is only
// written while still null, so a second acceptance - even a concurrent
// one - leaves the first winner in place and reports ErrAlreadyAccepted.
// The answer's is_accepted flag is a denormalised copy kept in the same
// transaction.
func (api *API) AcceptAnswerRepo(ctx context.Context, questionID, answerID string) error {
	return api.Deps.DB.RunInTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
            UPDATE questions
            SET accepted_answer_id = $2, updated_at = NOW()
            WHERE id = $1 AND accepted_answer_id IS NULL
        `, questionID, answerID)
		if err != nil {
			log.Println("error accepting answer", err)
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrAlreadyAccepted
		}

		_, err = tx.Exec(ctx, `
            UPDATE answers
            SET is_accepted = TRUE, updated_at = NOW()
            WHERE id = $1
        `, answerID)
		if err != nil {
			log.Println("error flagging accepted answer", err)
			return err
		}
		return nil
	})
}

func (api *API) DeleteAnswerRepo(ctx context.Context, answerID string) (int64, error) {
	tag, err := api.DB.Exec(ctx, `DELETE FROM answers WHERE id = $1`, answerID)
	if err != nil {
		log.Println("error deleting answer", err)
		return 0, err
	}
	return tag.RowsAffected(), nil
}
