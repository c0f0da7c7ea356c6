package rest

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/qhub/qhub_api/internal/model"
	"github.com/qhub/qhub_api/util"
	"github.com/qhub/qhub_api/util/values"
)

// FlagContentHelper records a moderation flag against a question or answer
// after confirming the target still exists. Flags are append-only; the same
// user may flag the same target more than once.
func (api *API) FlagContentHelper(ctx context.Context, targetType, targetID string, flaggedBy uuid.UUID) (model.Flag, string, string, error) {
	switch targetType {
	case model.FlagTargetQuestion:
		if _, err := api.GetQuestionByID(ctx, targetID); err != nil {
			if errors.Is(err, ErrQuestionNotFound) {
				return model.Flag{}, values.NotFound, "question not found", err
			}
			return model.Flag{}, values.Error, "unable to load question", err
		}
	case model.FlagTargetAnswer:
		if _, err := api.GetAnswerByID(ctx, targetID); err != nil {
			if errors.Is(err, ErrAnswerNotFound) {
				return model.Flag{}, values.NotFound, "answer not found", err
			}
			return model.Flag{}, values.Error, "unable to load answer", err
		}
	default:
		return model.Flag{}, values.BadRequestBody, "unknown flag target type", errors.Errorf("unknown flag target type %q", targetType)
	}

	flag := model.Flag{
		ID:         util.GenerateUUID(),
		TargetType: targetType,
		TargetID:   targetID,
		FlaggedBy:  flaggedBy,
	}
	if err := api.InsertFlag(ctx, flag); err != nil {
		return model.Flag{}, values.Error, "unable to record flag", err
	}
	return flag, values.Created, "Flag recorded successfully", nil
}

func (api *API) ListFlagsHelper(ctx context.Context) ([]model.Flag, string, string, error) {
	flags, err := api.ListFlags(ctx)
	if err != nil {
		return nil, values.Error, "unable to list flags", err
	}
	return flags, values.Success, "Flags retrieved successfully", nil
}
