package rest

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/qhub/qhub_api/internal/model"
	"github.com/qhub/qhub_api/internal/votes"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrAnswerNotFound   = errors.New("answer not found")
)

// voteTarget names the two tables carrying a vote ledger. Only these two
// constants ever reach applyVoteRepo, so the table name is never built from
// request input.
type voteTarget string

const (
	voteQuestions voteTarget = "questions"
	voteAnswers   voteTarget = "answers"
)

const voteRetryLimit = 5

func (api *API) InsertQuestion(ctx context.Context, q model.Question) error {
	stmt := `
        INSERT INTO questions (
            id,
            title,
            description,
            tags,
            user_id
        ) VALUES ($1, $2, $3, $4, $5)
    `
	_, err := api.DB.Exec(ctx, stmt, q.ID, q.Title, q.Description, q.Tags, q.UserID)
	if err != nil {
		log.Println("error inserting question", err)
		return err
	}
	return nil
}

func (api *API) ListQuestions(ctx context.Context, tag string) ([]model.Question, error) {
	stmt := `
        SELECT id, title, description, tags, user_id, votes, voters, accepted_answer_id, created_at, updated_at
        FROM questions
        WHERE ($1 = '' OR $1 = ANY(tags))
        ORDER BY created_at DESC
    `
	rows, err := api.DB.Query(ctx, stmt, tag)
	if err != nil {
		log.Println("error listing questions", err)
		return nil, err
	}
	defer rows.Close()

	questions := []model.Question{}
	for rows.Next() {
		var q model.Question
		err := rows.Scan(
			&q.ID,
			&q.Title,
			&q.Description,
			&q.Tags,
			&q.UserID,
			&q.Votes,
			&q.Voters,
			&q.AcceptedAnswerID,
			&q.CreatedAt,
			&q.UpdatedAt,
		)
		if err != nil {
			log.Println("error scanning question", err)
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (api *API) GetQuestionByID(ctx context.Context, questionID string) (model.Question, error) {
	var q model.Question
	stmt := `
        SELECT id, title, description, tags, user_id, votes, voters, accepted_answer_id, created_at, updated_at
        FROM questions
        WHERE id = $1
    `
	err := api.DB.QueryRow(ctx, stmt, questionID).Scan(
		&q.ID,
		&q.Title,
		&q.Description,
		&q.Tags,
		&q.UserID,
		&q.Votes,
		&q.Voters,
		&q.AcceptedAnswerID,
		&q.CreatedAt,
		&q.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Question{}, ErrQuestionNotFound
		}
		log.Println("error getting question by ID", err)
		return model.Question{}, err
	}
	return q, nil
}

func (api *API) CountAnswers(ctx context.Context, questionID string) (int, error) {
	var count int
	stmt := `SELECT COUNT(*) FROM answers WHERE question_id = $1`

	err := api.DB.QueryRow(ctx, stmt, questionID).Scan(&count)
	if err != nil {
		log.Println("error counting answers", err)
		return 0, err
	}
	return count, nil
}

// applyVoteRepo records one voter's direction on a question or answer and
// adjusts the running total by the delta between their previous and new
// direction. The update is guarded by the voter's previously observed
// direction, so two concurrent votes by the same voter can never both
// apply; a lost race re-reads and retries.
func (api *API) applyVoteRepo(ctx context.Context, target voteTarget, itemID, voterID, direction string) (int, error) {
	readStmt := `SELECT COALESCE(voters->>$2, '') FROM ` + string(target) + ` WHERE id = $1`
	updateStmt := `
        UPDATE ` + string(target) + `
        SET votes = votes + $3,
            voters = jsonb_set(voters, ARRAY[$2], to_jsonb($4::text)),
            updated_at = NOW()
        WHERE id = $1 AND COALESCE(voters->>$2, '') = $5
        RETURNING votes
    `

	for attempt := 0; attempt < voteRetryLimit; attempt++ {
		var prev string
		if err := api.DB.QueryRow(ctx, readStmt, itemID, voterID).Scan(&prev); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				if target == voteAnswers {
					return 0, ErrAnswerNotFound
				}
				return 0, ErrQuestionNotFound
			}
			log.Println("error reading vote ledger", err)
			return 0, err
		}

		delta, err := votes.Delta(prev, direction)
		if err != nil {
			return 0, err
		}

		var total int
		err = api.DB.QueryRow(ctx, updateStmt, itemID, voterID, delta, direction, prev).Scan(&total)
		if err == nil {
			return total, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			log.Println("error applying vote", err)
			return 0, err
		}
		// Another vote landed between read and update; retry from a
		// fresh read.
	}

	// The guarded update can also miss because the row was deleted after
	// the read. Tell that apart from contention before giving up.
	var exists bool
	existsStmt := `SELECT EXISTS(SELECT 1 FROM ` + string(target) + ` WHERE id = $1)`
	if err := api.DB.QueryRow(ctx, existsStmt, itemID).Scan(&exists); err == nil && !exists {
		if target == voteAnswers {
			return 0, ErrAnswerNotFound
		}
		return 0, ErrQuestionNotFound
	}
	return 0, errors.New("vote contention, retries exhausted")
}

func (api *API) DeleteQuestionRepo(ctx context.Context, tx pgx.Tx, questionID string) (int64, error) {
	tag, err := tx.Exec(ctx, `DELETE FROM questions WHERE id = $1`, questionID)
	if err != nil {
		log.Println("error deleting question", err)
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (api *API) DeleteAnswersForQuestionRepo(ctx context.Context, tx pgx.Tx, questionID string) (int64, error) {
	tag, err := tx.Exec(ctx, `DELETE FROM answers WHERE question_id = $1`, questionID)
	if err != nil {
		log.Println("error deleting answers for question", err)
		return 0, err
	}
	return tag.RowsAffected(), nil
}
