package service

import (
	"fmt"
	"slices"

	"newsroom/internal/errors"
)

// EngagementKind is a reader interaction with an article.
type EngagementKind string

const (
	EngagementLike   EngagementKind = "like"
	EngagementReview EngagementKind = "review"
)

func (k EngagementKind) pastTense() string {
	switch k {
	case EngagementLike:
		return "liked"
	case EngagementReview:
		return "reviewed"
	}
	return string(k)
}

// CheckEngagement rejects a like or review by the article's author and a
// second like or review by the same user. existingUserIDs are the users
// who already engaged with the article in the same way.
func CheckEngagement(kind EngagementKind, authorID, actorID uint, existingUserIDs []uint) error {
	if authorID == actorID {
		return errors.Validation("articleId", fmt.Sprintf("you cannot %s your own article", kind))
	}
	if slices.Contains(existingUserIDs, actorID) {
		return errors.Conflict(fmt.Sprintf("you have already %s this article", kind.pastTense()))
	}
	return nil
}
