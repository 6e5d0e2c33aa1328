package user_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"anoa.com/jobportal/internal/entity"
	"anoa.com/jobportal/internal/modules/user/dto"
	user "anoa.com/jobportal/internal/modules/user/service"
	"anoa.com/jobportal/internal/testutil"
	"anoa.com/jobportal/pkg/apperror"
	commonDto "anoa.com/jobportal/pkg/dto"
	"anoa.com/jobportal/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	service user.AuthService
	users   *testutil.UserRepo
	files   *testutil.Storage
	tokens  *token.Manager
}

func newFixture() fixture {
	store := testutil.NewStore()
	users := &testutil.UserRepo{S: store}
	files := testutil.NewStorage()
	tokens := token.NewManager("test-secret", time.Hour)
	return fixture{
		service: user.NewAuthService(users, files, tokens),
		users:   users,
		files:   files,
		tokens:  tokens,
	}
}

func validRegistration() dto.RegisterInput {
	return dto.RegisterInput{
		FullName:    "Alice Student",
		Email:       "Alice@Example.com ",
		Password:    "s3cret-pass",
		PhoneNumber: "08123456789",
		Role:        entity.RoleStudent,
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user with hashed password", func(t *testing.T) {
		f := newFixture()

		created, err := f.service.Register(ctx, validRegistration(), nil)
		require.NoError(t, err)

		assert.Equal(t, "alice@example.com", created.Email)
		assert.Equal(t, entity.RoleStudent, created.Role)
		assert.NotEqual(t, "s3cret-pass", created.PasswordHash)
		assert.True(t, strings.HasPrefix(created.PasswordHash, "$2a$10$"))
		assert.Equal(t, 1, f.users.Count())
	})

	t.Run("missing role is a validation error and stores nothing", func(t *testing.T) {
		f := newFixture()
		input := validRegistration()
		input.Role = ""

		_, err := f.service.Register(ctx, input, nil)

		assert.ErrorIs(t, err, apperror.ErrMissingField)
		assert.Equal(t, 0, f.users.Count())
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		f := newFixture()
		input := validRegistration()
		input.Role = "admin"

		_, err := f.service.Register(ctx, input, nil)

		assert.ErrorIs(t, err, apperror.ErrInvalidInput)
		assert.NotErrorIs(t, err, apperror.ErrMissingField)
		assert.Equal(t, 0, f.users.Count())
	})

	t.Run("invalid email is rejected", func(t *testing.T) {
		f := newFixture()
		input := validRegistration()
		input.Email = "not-an-email"

		_, err := f.service.Register(ctx, input, nil)

		assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	})

	t.Run("duplicate email", func(t *testing.T) {
		f := newFixture()
		_, err := f.service.Register(ctx, validRegistration(), nil)
		require.NoError(t, err)

		input := validRegistration()
		input.Email = "alice@example.com"
		_, err = f.service.Register(ctx, input, nil)

		assert.ErrorIs(t, err, apperror.ErrDuplicateUser)
		assert.Equal(t, 1, f.users.Count())
	})

	t.Run("avatar is uploaded", func(t *testing.T) {
		f := newFixture()
		avatar := &commonDto.FileUpload{Reader: strings.NewReader("png"), FileName: "me.png"}

		created, err := f.service.Register(ctx, validRegistration(), avatar)
		require.NoError(t, err)

		assert.Contains(t, created.Profile.ProfilePhoto, "avatars/")
		assert.Len(t, f.files.Uploaded, 1)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	registered, err := f.service.Register(ctx, validRegistration(), nil)
	require.NoError(t, err)

	t.Run("issues a token for the user", func(t *testing.T) {
		res, err := f.service.Login(ctx, dto.LoginInput{Email: "alice@example.com", Password: "s3cret-pass", Role: "student"})
		require.NoError(t, err)

		subject, err := f.tokens.Parse(res.Token)
		require.NoError(t, err)
		assert.Equal(t, registered.ID.String(), subject)
		assert.Equal(t, registered.ID, res.User.ID)
		assert.True(t, res.ExpiresAt.After(time.Now()))
	})

	cases := []struct {
		name  string
		input dto.LoginInput
	}{
		{"unknown email", dto.LoginInput{Email: "bob@example.com", Password: "s3cret-pass", Role: "student"}},
		{"wrong password", dto.LoginInput{Email: "alice@example.com", Password: "nope", Role: "student"}},
		{"role mismatch", dto.LoginInput{Email: "alice@example.com", Password: "s3cret-pass", Role: "recruiter"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.service.Login(ctx, tc.input)
			assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
		})
	}

	t.Run("missing fields", func(t *testing.T) {
		_, err := f.service.Login(ctx, dto.LoginInput{Email: "alice@example.com"})
		assert.ErrorIs(t, err, apperror.ErrMissingField)
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update keeps untouched fields", func(t *testing.T) {
		f := newFixture()
		registered, err := f.service.Register(ctx, validRegistration(), nil)
		require.NoError(t, err)

		updated, err := f.service.UpdateProfile(ctx, registered.ID.String(), dto.UpdateProfileInput{
			Bio:    "Go developer",
			Skills: "go, postgres, ,redis",
		}, nil)
		require.NoError(t, err)

		assert.Equal(t, "Alice Student", updated.FullName)
		assert.Equal(t, "alice@example.com", updated.Email)
		assert.Equal(t, "Go developer", updated.Profile.Bio)
		assert.Equal(t, []string{"go", "postgres", "redis"}, []string(updated.Profile.Skills))
	})

	t.Run("new resume replaces the old one", func(t *testing.T) {
		f := newFixture()
		registered, err := f.service.Register(ctx, validRegistration(), nil)
		require.NoError(t, err)

		first, err := f.service.UpdateProfile(ctx, registered.ID.String(), dto.UpdateProfileInput{},
			&commonDto.FileUpload{Reader: strings.NewReader("v1"), FileName: "cv-v1.pdf"})
		require.NoError(t, err)
		oldResume := first.Profile.Resume

		second, err := f.service.UpdateProfile(ctx, registered.ID.String(), dto.UpdateProfileInput{},
			&commonDto.FileUpload{Reader: strings.NewReader("v2"), FileName: "cv-v2.pdf"})
		require.NoError(t, err)

		assert.Equal(t, "cv-v2.pdf", second.Profile.ResumeOriginalName)
		assert.NotEqual(t, oldResume, second.Profile.Resume)
		assert.Equal(t, []string{oldResume}, f.files.Deleted)
	})

	t.Run("email taken by someone else", func(t *testing.T) {
		f := newFixture()
		alice, err := f.service.Register(ctx, validRegistration(), nil)
		require.NoError(t, err)
		bob := validRegistration()
		bob.Email = "bob@example.com"
		_, err = f.service.Register(ctx, bob, nil)
		require.NoError(t, err)

		_, err = f.service.UpdateProfile(ctx, alice.ID.String(), dto.UpdateProfileInput{Email: "BOB@example.com"}, nil)

		assert.ErrorIs(t, err, apperror.ErrDuplicateUser)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newFixture()
		_, err := f.service.UpdateProfile(ctx, "00000000-0000-0000-0000-000000000001", dto.UpdateProfileInput{Bio: "x"}, nil)
		assert.ErrorIs(t, err, apperror.ErrUserNotFound)
	})
}

func TestMe(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	registered, err := f.service.Register(ctx, validRegistration(), nil)
	require.NoError(t, err)

	me, err := f.service.Me(ctx, registered.ID.String())
	require.NoError(t, err)
	assert.Equal(t, registered.Email, me.Email)

	_, err = f.service.Me(ctx, "garbage")
	assert.ErrorIs(t, err, apperror.ErrUserNotFound)
}
