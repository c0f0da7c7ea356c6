package rest

import (
	"context"

	"github.com/google/uuid"

	"github.com/qhub/qhub_api/internal/model"
	"github.com/qhub/qhub_api/util"
)

const (
	authorAnonymous = "Anonymous"
	authorLegacy    = "Legacy User"
	authorUnknown   = "Unknown User"
)

type userFinder func(ctx context.Context, userID string) (model.User, error)

// resolveAuthor turns a stored author reference into a display name and
// avatar initials. The reference is kept as text so rows imported from the
// legacy system still read back: blank means the author was never recorded,
// a non-UUID value is a legacy import, and a UUID that no longer resolves
// belongs to a deleted account.
func resolveAuthor(ctx context.Context, userID string, find userFinder) (string, string) {
	if userID == "" {
		return authorAnonymous, "A"
	}
	if _, err := uuid.Parse(userID); err != nil {
		return authorLegacy, "LU"
	}
	user, err := find(ctx, userID)
	if err != nil {
		return authorUnknown, "U"
	}
	return user.Username, util.AvatarInitials(user.Username)
}
