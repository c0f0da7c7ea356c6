package rest

import (
	"context"
	"log"

	"github.com/qhub/qhub_api/internal/model"
)

func (api *API) InsertFlag(ctx context.Context, f model.Flag) error {
	stmt := `
        INSERT INTO flags (
            id,
            target_type,
            target_id,
            flagged_by
        ) VALUES ($1, $2, $3, $4)
    `
	_, err := api.DB.Exec(ctx, stmt, f.ID, f.TargetType, f.TargetID, f.FlaggedBy)
	if err != nil {
		log.Println("error inserting flag", err)
		return err
	}
	return nil
}

func (api *API) ListFlags(ctx context.Context) ([]model.Flag, error) {
	stmt := `
        SELECT id, target_type, target_id, flagged_by, created_at
        FROM flags
        ORDER BY created_at DESC
    `
	rows, err := api.DB.Query(ctx, stmt)
	if err != nil {
		log.Println("error listing flags", err)
		return nil, err
	}
	defer rows.Close()

	flags := []model.Flag{}
	for rows.Next() {
		var f model.Flag
		err := rows.Scan(
			&f.ID,
			&f.TargetType,
			&f.TargetID,
			&f.FlaggedBy,
			&f.CreatedAt,
		)
		if err != nil {
			log.Println("error scanning flag", err)
			return nil, err
		}
		flags = append(flags, f)
	}
	return flags, rows.Err()
}
