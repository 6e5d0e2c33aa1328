package company_test

import (
	"context"
	"strings"
	"testing"

	"anoa.com/jobportal/internal/modules/company/dto"
	company "anoa.com/jobportal/internal/modules/company/service"
	"anoa.com/jobportal/internal/testutil"
	"anoa.com/jobportal/pkg/apperror"
	commonDto "anoa.com/jobportal/pkg/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() (company.CompanyService, *testutil.Storage) {
	store := testutil.NewStore()
	files := testutil.NewStorage()
	return company.NewCompanyService(&testutil.CompanyRepo{S: store}, files), files
}

func TestRegisterCompany(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("creates company for owner", func(t *testing.T) {
		svc, _ := newService()

		created, err := svc.RegisterCompany(ctx, dto.RegisterCompanyInput{CompanyName: "  Acme  "}, owner)
		require.NoError(t, err)

		assert.Equal(t, "Acme", created.Name)
		assert.Equal(t, owner, created.UserID)
	})

	t.Run("missing name", func(t *testing.T) {
		svc, _ := newService()
		_, err := svc.RegisterCompany(ctx, dto.RegisterCompanyInput{CompanyName: "   "}, owner)
		assert.ErrorIs(t, err, apperror.ErrMissingName)
	})

	t.Run("duplicate name is a conflict", func(t *testing.T) {
		svc, _ := newService()
		_, err := svc.RegisterCompany(ctx, dto.RegisterCompanyInput{CompanyName: "Acme"}, owner)
		require.NoError(t, err)

		_, err = svc.RegisterCompany(ctx, dto.RegisterCompanyInput{CompanyName: "Acme"}, uuid.New())

		assert.ErrorIs(t, err, apperror.ErrDuplicateCompany)
		assert.ErrorIs(t, err, apperror.ErrConflict)
		assert.Equal(t, 400, apperror.MapErrorToStatus(err))
	})
}

func TestListOwnCompanies(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()
	owner := uuid.New()

	empty, err := svc.ListOwnCompanies(ctx, owner)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = svc.RegisterCompany(ctx, dto.RegisterCompanyInput{CompanyName: "First"}, owner)
	require.NoError(t, err)
	_, err = svc.RegisterCompany(ctx, dto.RegisterCompanyInput{CompanyName: "Second"}, owner)
	require.NoError(t, err)
	_, err = svc.RegisterCompany(ctx, dto.RegisterCompanyInput{CompanyName: "Other"}, uuid.New())
	require.NoError(t, err)

	companies, err := svc.ListOwnCompanies(ctx, owner)
	require.NoError(t, err)
	require.Len(t, companies, 2)
	assert.Equal(t, "Second", companies[0].Name)
	assert.Equal(t, "First", companies[1].Name)
}

func TestGetCompany(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	_, err := svc.GetCompany(ctx, uuid.NewString())
	assert.ErrorIs(t, err, apperror.ErrCompanyNotFound)

	_, err = svc.GetCompany(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, apperror.ErrCompanyNotFound)
}

func TestUpdateCompany(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("partial update and logo swap", func(t *testing.T) {
		svc, files := newService()
		created, err := svc.RegisterCompany(ctx, dto.RegisterCompanyInput{CompanyName: "Acme"}, owner)
		require.NoError(t, err)

		withLogo, err := svc.UpdateCompany(ctx, created.ID.String(), dto.UpdateCompanyInput{
			Description: "Rockets",
			Website:     "https://acme.test",
		}, &commonDto.FileUpload{Reader: strings.NewReader("logo"), FileName: "logo.png"}, owner)
		require.NoError(t, err)
		firstLogo := withLogo.Logo
		assert.Contains(t, firstLogo, "logos/")

		updated, err := svc.UpdateCompany(ctx, created.ID.String(), dto.UpdateCompanyInput{Location: "Jakarta"},
			&commonDto.FileUpload{Reader: strings.NewReader("logo2"), FileName: "logo2.png"}, owner)
		require.NoError(t, err)

		assert.Equal(t, "Acme", updated.Name)
		assert.Equal(t, "Rockets", updated.Description)
		assert.Equal(t, "https://acme.test", updated.Website)
		assert.Equal(t, "Jakarta", updated.Location)
		assert.NotEqual(t, firstLogo, updated.Logo)
		assert.Equal(t, []string{firstLogo}, files.Deleted)
	})

	t.Run("only the owner may update", func(t *testing.T) {
		svc, _ := newService()
		created, err := svc.RegisterCompany(ctx, dto.RegisterCompanyInput{CompanyName: "Acme"}, owner)
		require.NoError(t, err)

		_, err = svc.UpdateCompany(ctx, created.ID.String(), dto.UpdateCompanyInput{Name: "Hijacked"}, nil, uuid.New())

		assert.ErrorIs(t, err, apperror.ErrNotOwner)
		got, err := svc.GetCompany(ctx, created.ID.String())
		require.NoError(t, err)
		assert.Equal(t, "Acme", got.Name)
	})

	t.Run("rename onto an existing name", func(t *testing.T) {
		svc, _ := newService()
		_, err := svc.RegisterCompany(ctx, dto.RegisterCompanyInput{CompanyName: "Taken"}, uuid.New())
		require.NoError(t, err)
		mine, err := svc.RegisterCompany(ctx, dto.RegisterCompanyInput{CompanyName: "Mine"}, owner)
		require.NoError(t, err)

		_, err = svc.UpdateCompany(ctx, mine.ID.String(), dto.UpdateCompanyInput{Name: "Taken"}, nil, owner)

		assert.ErrorIs(t, err, apperror.ErrDuplicateCompany)
	})

	t.Run("unknown company", func(t *testing.T) {
		svc, _ := newService()
		_, err := svc.UpdateCompany(ctx, uuid.NewString(), dto.UpdateCompanyInput{}, nil, owner)
		assert.ErrorIs(t, err, apperror.ErrCompanyNotFound)
	})
}
