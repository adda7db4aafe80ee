package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
)

func ptr[T any](v T) *T { return &v }

func TestAuthService_Register(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("Success: Should register a valid account on day one", func(t *testing.T) {
		mockRepo := new(MockAccountRepository)
		service := NewAuthService(mockRepo)

		input := RegisterInput{
			Username: "runner_01",
			Password: "StrongPassword123!",
			Profile: domain.ProfilePatch{
				Email: ptr("Runner@Kanso.App"),
				Age:   ptr(31),
				Goal:  ptr("endurance"),
			},
		}

		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Account")).Return(nil)

		account, err := service.Register(ctx, input)

		require.NoError(t, err)
		assert.NotEmpty(t, account.ID)
		assert.Equal(t, "runner_01", account.Username)
		assert.Equal(t, "runner@kanso.app", account.Email)
		assert.Equal(t, 31, account.Age)
		assert.Equal(t, domain.FirstDay, account.CurrentDay)
		assert.NotEqual(t, input.Password, account.PasswordHash)
		assert.NoError(t, account.CheckPassword(input.Password))

		mockRepo.AssertExpectations(t)
	})

	t.Run("Fail: Should reject an invalid username", func(t *testing.T) {
		mockRepo := new(MockAccountRepository)
		service := NewAuthService(mockRepo)

		_, err := service.Register(ctx, RegisterInput{Username: "a b", Password: "StrongPassword123!"})

		assert.ErrorIs(t, err, domain.ErrInvalidUsername)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Fail: Should reject a short password", func(t *testing.T) {
		mockRepo := new(MockAccountRepository)
		service := NewAuthService(mockRepo)

		_, err := service.Register(ctx, RegisterInput{Username: "runner", Password: "short"})

		assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Fail: Should reject an invalid profile", func(t *testing.T) {
		mockRepo := new(MockAccountRepository)
		service := NewAuthService(mockRepo)

		_, err := service.Register(ctx, RegisterInput{
			Username: "runner",
			Password: "StrongPassword123!",
			Profile:  domain.ProfilePatch{Age: ptr(-1)},
		})

		assert.ErrorIs(t, err, domain.ErrInvalidAge)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Fail: Should propagate a taken username", func(t *testing.T) {
		mockRepo := new(MockAccountRepository)
		service := NewAuthService(mockRepo)

		mockRepo.On("Create", ctx, mock.Anything).Return(domain.ErrUsernameTaken)

		_, err := service.Register(ctx, RegisterInput{Username: "runner", Password: "StrongPassword123!"})

		assert.ErrorIs(t, err, domain.ErrUsernameTaken)
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	stored, err := domain.NewAccount("acc-1", "runner")
	require.NoError(t, err)
	require.NoError(t, stored.SetPassword("CorrectPassword!"))

	t.Run("Success: Should return the account", func(t *testing.T) {
		mockRepo := new(MockAccountRepository)
		service := NewAuthService(mockRepo)

		mockRepo.On("GetByUsername", ctx, "runner").Return(stored, nil)

		account, err := service.Login(ctx, "runner", "CorrectPassword!")

		require.NoError(t, err)
		assert.Equal(t, "acc-1", account.ID)
	})

	t.Run("Fail: Wrong password", func(t *testing.T) {
		mockRepo := new(MockAccountRepository)
		service := NewAuthService(mockRepo)

		mockRepo.On("GetByUsername", ctx, "runner").Return(stored, nil)

		account, err := service.Login(ctx, "runner", "WrongPassword!")

		assert.Nil(t, account)
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.ErrorIs(t, err, domain.ErrAuthFailed)
	})

	t.Run("Fail: Unknown username looks the same as a wrong password", func(t *testing.T) {
		mockRepo := new(MockAccountRepository)
		service := NewAuthService(mockRepo)

		mockRepo.On("GetByUsername", ctx, "ghost").Return(nil, domain.ErrAccountNotFound)

		_, err := service.Login(ctx, "ghost", "whatever-password")

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Fail: Store outage is not an auth failure", func(t *testing.T) {
		mockRepo := new(MockAccountRepository)
		service := NewAuthService(mockRepo)

		outage := errors.Join(domain.ErrUnavailable, errors.New("connection refused"))
		mockRepo.On("GetByUsername", ctx, "runner").Return(nil, outage)

		_, err := service.Login(ctx, "runner", "CorrectPassword!")

		assert.ErrorIs(t, err, domain.ErrUnavailable)
		assert.NotErrorIs(t, err, domain.ErrAuthFailed)
	})
}
