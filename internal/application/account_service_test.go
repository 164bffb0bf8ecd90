package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accountkit/account-service/internal/application"
	"github.com/accountkit/account-service/internal/domain/repository"
	"github.com/accountkit/account-service/pkg/helpers"
)

func newTestService() (*application.Service, *memAccountRepo) {
	repo := newMemAccountRepo()
	jm := helpers.NewJWTManager("test-secret", time.Hour)
	svc := application.NewService(repo, jm, nil, nil, false, nil, "")
	return svc, repo
}

func TestRegister(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	a, err := svc.Register(ctx, "Ana", "a@x.com", "Passw0rd1")
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "Ana", a.Name)
	assert.Equal(t, "a@x.com", a.Email)

	// password is stored hashed, never as plaintext
	assert.NotEqual(t, "Passw0rd1", a.PasswordHash)
	assert.True(t, helpers.CompareHashAndPassword(a.PasswordHash, "Passw0rd1"))

	// the new account is immediately visible by email
	got, err := svc.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	// second create with the same email conflicts
	_, err = svc.Register(ctx, "Other", "a@x.com", "Passw0rd2")
	assert.ErrorIs(t, err, application.ErrEmailTaken)
}

func TestRegisterRacedDuplicateMapsToEmailTaken(t *testing.T) {
	// simulate losing the check-then-insert race: the pre-check sees no
	// account, but the unique index rejects the insert
	repo := &erringAccountRepo{memAccountRepo: newMemAccountRepo(), createErr: repository.ErrDuplicateEmail}
	jm := helpers.NewJWTManager("test-secret", time.Hour)
	svc := application.NewService(repo, jm, nil, nil, false, nil, "")

	_, err := svc.Register(context.Background(), "Ana", "a@x.com", "Passw0rd1")
	assert.ErrorIs(t, err, application.ErrEmailTaken)
}

func TestRegisterEmailIsCaseSensitive(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ana", "a@x.com", "Passw0rd1")
	require.NoError(t, err)

	// a differently-cased address is a distinct account
	_, err = svc.Register(ctx, "Ana Upper", "A@x.com", "Passw0rd1")
	assert.NoError(t, err)
}

func TestGetProfile(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	a, err := svc.Register(ctx, "Ana", "a@x.com", "Passw0rd1")
	require.NoError(t, err)

	got, err := svc.GetProfile(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.Email, got.Email)

	_, err = svc.GetProfile(ctx, "no-such-id")
	assert.ErrorIs(t, err, application.ErrAccountNotFound)
}

func strPtr(s string) *string { return &s }

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	type testCase struct {
		description string
		patch       application.UpdateInput
		expectedErr error
		check       func(t *testing.T, svc *application.Service, id string)
	}

	testCases := []testCase{
		{
			description: "empty patch succeeds and changes nothing",
			patch:       application.UpdateInput{},
			check: func(t *testing.T, svc *application.Service, id string) {
				a, err := svc.GetProfile(ctx, id)
				require.NoError(t, err)
				assert.Equal(t, "Ana", a.Name)
				assert.Equal(t, "a@x.com", a.Email)
			},
		},
		{
			description: "name-only patch leaves email untouched",
			patch:       application.UpdateInput{Name: strPtr("Ana Maria")},
			check: func(t *testing.T, svc *application.Service, id string) {
				a, err := svc.GetProfile(ctx, id)
				require.NoError(t, err)
				assert.Equal(t, "Ana Maria", a.Name)
				assert.Equal(t, "a@x.com", a.Email)
			},
		},
		{
			description: "same-value email is treated as a conflict",
			patch:       application.UpdateInput{Email: strPtr("a@x.com")},
			expectedErr: application.ErrEmailTaken,
		},
		{
			description: "email owned by another account conflicts",
			patch:       application.UpdateInput{Email: strPtr("b@x.com")},
			expectedErr: application.ErrEmailTaken,
		},
		{
			description: "free email is accepted",
			patch:       application.UpdateInput{Email: strPtr("c@x.com")},
			check: func(t *testing.T, svc *application.Service, id string) {
				a, err := svc.GetProfile(ctx, id)
				require.NoError(t, err)
				assert.Equal(t, "c@x.com", a.Email)
			},
		},
		{
			description: "password patch re-hashes",
			patch:       application.UpdateInput{Password: strPtr("NewPassw0rd")},
			check: func(t *testing.T, svc *application.Service, id string) {
				a, err := svc.GetProfile(ctx, id)
				require.NoError(t, err)
				assert.True(t, helpers.CompareHashAndPassword(a.PasswordHash, "NewPassw0rd"))
				assert.False(t, helpers.CompareHashAndPassword(a.PasswordHash, "Passw0rd1"))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			svc, _ := newTestService()
			a, err := svc.Register(ctx, "Ana", "a@x.com", "Passw0rd1")
			require.NoError(t, err)
			_, err = svc.Register(ctx, "Bob", "b@x.com", "Passw0rd1")
			require.NoError(t, err)

			_, err = svc.Update(ctx, a.ID, tc.patch)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}
			require.NoError(t, err)
			if tc.check != nil {
				tc.check(t, svc, a.ID)
			}
		})
	}
}

func TestUpdateUnknownID(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Update(context.Background(), "no-such-id", application.UpdateInput{Name: strPtr("X")})
	assert.ErrorIs(t, err, application.ErrAccountNotFound)
}

func TestRemoveIsNotIdempotent(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	a, err := svc.Register(ctx, "Ana", "a@x.com", "Passw0rd1")
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, a.ID))

	// hard delete: the record is gone and a second remove fails
	_, err = svc.GetProfile(ctx, a.ID)
	assert.ErrorIs(t, err, application.ErrAccountNotFound)
	assert.ErrorIs(t, svc.Remove(ctx, a.ID), application.ErrAccountNotFound)
}
