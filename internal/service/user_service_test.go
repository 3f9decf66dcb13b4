package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"newsroom/internal/errors"
	"newsroom/internal/model"
)

func storedUser() *model.User {
	return &model.User{ID: 3, Username: "alice", FirstName: "Alice", LastName: "Smith", Email: "alice@example.com", Role: model.RoleReader}
}

func rolePtr(r model.Role) *model.Role { return &r }

func TestUserService_Update(t *testing.T) {
	reader := model.Actor{ID: 3, Username: "alice", Role: model.RoleReader}
	admin := model.Actor{ID: 1, Username: "admin", Role: model.RoleAdmin}

	tests := []struct {
		name      string
		actor     model.Actor
		update    UserUpdate
		setupMock func(m *MockUserRepository)
		wantKind  error
		check     func(t *testing.T, u *model.User)
	}{
		{
			name:   "self edits name",
			actor:  reader,
			update: UserUpdate{FirstName: strPtr("Alicia")},
			check: func(t *testing.T, u *model.User) {
				assert.Equal(t, "Alicia Smith", u.FullName())
			},
		},
		{
			name:   "self changes password",
			actor:  reader,
			update: UserUpdate{Password: strPtr("longer-secret")},
			check: func(t *testing.T, u *model.User) {
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("longer-secret")))
			},
		},
		{
			name:     "short password",
			actor:    reader,
			update:   UserUpdate{Password: strPtr("123")},
			wantKind: errors.ErrValidation,
		},
		{
			name:     "invalid email",
			actor:    reader,
			update:   UserUpdate{Email: strPtr("not-an-email")},
			wantKind: errors.ErrValidation,
		},
		{
			name:     "reader cannot promote themselves",
			actor:    reader,
			update:   UserUpdate{Role: rolePtr(model.RoleJournalist)},
			wantKind: errors.ErrAuthorization,
		},
		{
			name:   "admin changes role",
			actor:  admin,
			update: UserUpdate{Role: rolePtr(model.RoleJournalist)},
			check: func(t *testing.T, u *model.User) {
				assert.Equal(t, model.RoleJournalist, u.Role)
			},
		},
		{
			name:     "other user is rejected",
			actor:    model.Actor{ID: 4, Role: model.RoleJournalist},
			update:   UserUpdate{FirstName: strPtr("Mallory")},
			wantKind: errors.ErrAuthorization,
		},
		{
			name:   "username already taken",
			actor:  reader,
			update: UserUpdate{Username: strPtr("bob")},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "bob").Return(&model.User{ID: 5, Username: "bob"}, nil)
			},
			wantKind: errors.ErrConflict,
		},
		{
			name:   "free username",
			actor:  reader,
			update: UserUpdate{Username: strPtr("ally")},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "ally").Return(nil, errors.NotFound("user"))
			},
			check: func(t *testing.T, u *model.User) {
				assert.Equal(t, "ally", u.Username)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			repo.On("FindByID", mock.Anything, uint(3)).Return(storedUser(), nil)
			repo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil).Maybe()
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := NewUserService(repo, new(MockReviewRepository), nil)
			user, err := svc.Update(context.Background(), tt.actor, 3, tt.update)
			if tt.wantKind != nil {
				assert.True(t, errors.Is(err, tt.wantKind), "got %v", err)
				repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			tt.check(t, user)
			repo.AssertExpectations(t)
		})
	}
}

func TestUserService_UpdateMissingUser(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByID", mock.Anything, uint(42)).Return(nil, errors.NotFound("user"))

	svc := NewUserService(repo, new(MockReviewRepository), nil)
	_, err := svc.Update(context.Background(), model.Actor{ID: 3, Role: model.RoleReader}, 42, UserUpdate{})
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestUserService_Delete(t *testing.T) {
	tests := []struct {
		name     string
		actor    model.Actor
		targetID uint
		wantKind error
	}{
		{"self deletion", model.Actor{ID: 3, Role: model.RoleReader}, 3, nil},
		{"admin deletes anyone", model.Actor{ID: 1, Role: model.RoleAdmin}, 3, nil},
		{"other user is rejected", model.Actor{ID: 4, Role: model.RoleJournalist}, 3, errors.ErrAuthorization},
		{"missing user", model.Actor{ID: 1, Role: model.RoleAdmin}, 42, errors.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			repo.On("FindByID", mock.Anything, uint(3)).Return(storedUser(), nil).Maybe()
			repo.On("FindByID", mock.Anything, uint(42)).Return(nil, errors.NotFound("user")).Maybe()
			repo.On("Delete", mock.Anything, tt.targetID).Return(nil).Maybe()

			svc := NewUserService(repo, new(MockReviewRepository), nil)
			err := svc.Delete(context.Background(), tt.actor, tt.targetID)
			if tt.wantKind != nil {
				assert.True(t, errors.Is(err, tt.wantKind), "got %v", err)
				repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			repo.AssertCalled(t, "Delete", mock.Anything, tt.targetID)
		})
	}
}

func TestUserService_ListReviews(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByID", mock.Anything, uint(3)).Return(storedUser(), nil)
	repo.On("FindByID", mock.Anything, uint(42)).Return(nil, errors.NotFound("user"))
	reviews := new(MockReviewRepository)
	reviews.On("ListByUser", mock.Anything, uint(3)).Return([]model.Review{*storedReview()}, nil)

	svc := NewUserService(repo, reviews, nil)

	got, err := svc.ListReviews(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Great", got[0].Title)

	_, err = svc.ListReviews(context.Background(), 42)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
	reviews.AssertNumberOfCalls(t, "ListByUser", 1)
}
