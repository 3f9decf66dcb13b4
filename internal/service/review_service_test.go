package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"newsroom/internal/errors"
	"newsroom/internal/model"
)

func intPtr(i int) *int { return &i }

func storedReview() *model.Review {
	return &model.Review{ID: 7, Title: "Great", Content: "Loved it", Rating: intPtr(4), UserID: 3, ArticleID: 10}
}

func TestReviewService_Create(t *testing.T) {
	reviewed := storedArticle()
	reviewed.Reviews = []model.Review{{UserID: 3, ArticleID: 10}}

	tests := []struct {
		name     string
		actorID  uint
		input    ReviewInput
		article  *model.Article
		findErr  error
		wantKind error
	}{
		{
			name:    "valid review",
			actorID: 2,
			input:   ReviewInput{Title: "Sharp", Content: "Well argued", Rating: intPtr(5), ArticleID: 10},
			article: storedArticle(),
		},
		{
			name:    "rating is optional",
			actorID: 2,
			input:   ReviewInput{Title: "Sharp", Content: "Well argued", ArticleID: 10},
			article: storedArticle(),
		},
		{
			name:     "rating out of range",
			actorID:  2,
			input:    ReviewInput{Title: "Sharp", Content: "Well argued", Rating: intPtr(9), ArticleID: 10},
			wantKind: errors.ErrValidation,
		},
		{
			name:     "missing content",
			actorID:  2,
			input:    ReviewInput{Title: "Sharp", ArticleID: 10},
			wantKind: errors.ErrValidation,
		},
		{
			name:     "author reviews own article",
			actorID:  1,
			input:    ReviewInput{Title: "Mine", Content: "Obviously great", ArticleID: 10},
			article:  storedArticle(),
			wantKind: errors.ErrValidation,
		},
		{
			name:     "second review by the same user",
			actorID:  3,
			input:    ReviewInput{Title: "Again", Content: "Still good", ArticleID: 10},
			article:  reviewed,
			wantKind: errors.ErrConflict,
		},
		{
			name:     "unknown article",
			actorID:  2,
			input:    ReviewInput{Title: "Sharp", Content: "Well argued", ArticleID: 99},
			findErr:  errors.NotFound("article"),
			wantKind: errors.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			articles := new(MockArticleRepository)
			if tt.article != nil {
				articles.On("FindByID", mock.Anything, tt.input.ArticleID).Return(tt.article, nil)
			} else {
				articles.On("FindByID", mock.Anything, tt.input.ArticleID).Return(nil, tt.findErr).Maybe()
			}
			reviews := new(MockReviewRepository)
			reviews.On("Create", mock.Anything, mock.AnythingOfType("*model.Review")).Return(nil).Maybe()

			svc := NewReviewService(reviews, articles, nil)
			review, err := svc.Create(context.Background(), model.Actor{ID: tt.actorID, Role: model.RoleReader}, tt.input)
			if tt.wantKind != nil {
				assert.True(t, errors.Is(err, tt.wantKind), "got %v", err)
				reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.actorID, review.UserID)
			assert.Equal(t, tt.input.Rating, review.Rating)
			reviews.AssertExpectations(t)
		})
	}
}

func TestReviewService_Update(t *testing.T) {
	tests := []struct {
		name     string
		actor    model.Actor
		found    bool
		update   ReviewUpdate
		wantKind error
	}{
		{"owner edits rating", model.Actor{ID: 3, Role: model.RoleReader}, true, ReviewUpdate{Rating: intPtr(2)}, nil},
		{"admin edits anyone's review", model.Actor{ID: 1, Role: model.RoleAdmin}, true, ReviewUpdate{Title: strPtr("Edited")}, nil},
		{"someone else is rejected", model.Actor{ID: 4, Role: model.RoleJournalist}, true, ReviewUpdate{Title: strPtr("Hijacked")}, errors.ErrAuthorization},
		{"missing review wins over ownership", model.Actor{ID: 4, Role: model.RoleReader}, false, ReviewUpdate{}, errors.ErrNotFound},
		{"invalid rating", model.Actor{ID: 3, Role: model.RoleReader}, true, ReviewUpdate{Rating: intPtr(-1)}, errors.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reviews := new(MockReviewRepository)
			if tt.found {
				reviews.On("FindByID", mock.Anything, uint(7)).Return(storedReview(), nil)
			} else {
				reviews.On("FindByID", mock.Anything, uint(7)).Return(nil, errors.NotFound("review"))
			}
			reviews.On("Update", mock.Anything, mock.Anything).Return(nil).Maybe()
			articles := new(MockArticleRepository)
			articles.On("FindByID", mock.Anything, uint(10)).Return(storedArticle(), nil).Maybe()

			svc := NewReviewService(reviews, articles, nil)
			review, err := svc.Update(context.Background(), tt.actor, 7, tt.update)
			if tt.wantKind != nil {
				assert.True(t, errors.Is(err, tt.wantKind), "got %v", err)
				reviews.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			if tt.update.Rating != nil {
				assert.Equal(t, *tt.update.Rating, *review.Rating)
			}
			if tt.update.Title != nil {
				assert.Equal(t, *tt.update.Title, review.Title)
			}
			assert.Equal(t, "Loved it", review.Content)
		})
	}
}

func TestReviewService_Delete(t *testing.T) {
	reviews := new(MockReviewRepository)
	reviews.On("FindByID", mock.Anything, uint(7)).Return(storedReview(), nil)
	reviews.On("Delete", mock.Anything, uint(7)).Return(nil).Once()
	articles := new(MockArticleRepository)
	articles.On("FindByID", mock.Anything, uint(10)).Return(nil, errors.NotFound("article"))

	svc := NewReviewService(reviews, articles, nil)

	err := svc.Delete(context.Background(), model.Actor{ID: 4, Role: model.RoleReader}, 7)
	assert.True(t, errors.Is(err, errors.ErrAuthorization))

	require.NoError(t, svc.Delete(context.Background(), model.Actor{ID: 3, Role: model.RoleReader}, 7))
	reviews.AssertExpectations(t)
}

func TestReviewService_ListByArticle(t *testing.T) {
	articles := new(MockArticleRepository)
	articles.On("FindByID", mock.Anything, uint(10)).Return(storedArticle(), nil)
	articles.On("FindByID", mock.Anything, uint(99)).Return(nil, errors.NotFound("article"))
	reviews := new(MockReviewRepository)
	reviews.On("ListByArticle", mock.Anything, uint(10)).Return([]model.Review{*storedReview()}, nil)

	svc := NewReviewService(reviews, articles, nil)

	got, err := svc.ListByArticle(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, uint(10), got[0].ArticleID)

	_, err = svc.ListByArticle(context.Background(), 99)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
	reviews.AssertNumberOfCalls(t, "ListByArticle", 1)
}
