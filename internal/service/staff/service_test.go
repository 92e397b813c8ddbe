package staff

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/medboard/hospital-api/pkg/errors"
	"github.com/medboard/hospital-api/pkg/validator"

	"github.com/medboard/hospital-api/internal/model"
	"github.com/medboard/hospital-api/internal/overlay"
	"github.com/medboard/hospital-api/internal/store"
)

func newTestService(t *testing.T) (*Service, overlay.Store) {
	t.Helper()
	st := store.New()
	st.Seed()
	ov, err := overlay.NewFileStore(filepath.Join(t.TempDir(), "overlay.json"))
	require.NoError(t, err)
	return NewService(st, ov, validator.New()), ov
}

func TestCreateWithSubRecords(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	detail, err := svc.Create(ctx, 1, &model.CreateStaffRequest{
		FirstName:   "Ada",
		LastName:    "Bell",
		Email:       "ada@medboard.example",
		Role:        "Doctor",
		Specialties: []string{"cardiology"},
		Employment:  &model.StaffEmployment{Department: "Cardiology", BaseSalary: 200000},
		Medical:     &model.StaffMedical{BloodGroup: "O+"},
	})
	require.NoError(t, err)
	assert.Equal(t, string(model.StaffStatusActive), detail.Status)
	require.NotNil(t, detail.Employment)
	assert.Equal(t, "Cardiology", detail.Employment.Department)
	require.NotNil(t, detail.Medical)
	assert.Equal(t, "O+", detail.Medical.BloodGroup)
}

func TestCreateRequiresSpecialty(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), 1, &model.CreateStaffRequest{
		FirstName: "Ada",
		LastName:  "Bell",
		Email:     "ada@medboard.example",
		Role:      "Doctor",
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
}

func TestMergeEmploymentPreservesOmittedFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	detail, err := svc.Create(ctx, 1, &model.CreateStaffRequest{
		FirstName:   "Ada",
		LastName:    "Bell",
		Email:       "ada@medboard.example",
		Role:        "Doctor",
		Specialties: []string{"cardiology"},
		Employment:  &model.StaffEmployment{Department: "Cardiology", Designation: "Consultant"},
	})
	require.NoError(t, err)

	err = svc.MergeEmployment(ctx, detail.ID, &model.StaffEmployment{ContractType: "permanent"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, detail.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cardiology", got.Employment.Department)
	assert.Equal(t, "Consultant", got.Employment.Designation)
	assert.Equal(t, "permanent", got.Employment.ContractType)
}

func TestBankAccountReplacedWholesale(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	detail, err := svc.Create(ctx, 1, &model.CreateStaffRequest{
		FirstName:   "Ada",
		LastName:    "Bell",
		Email:       "ada@medboard.example",
		Role:        "Doctor",
		Specialties: []string{"cardiology"},
		Employment: &model.StaffEmployment{BankAccount: &model.BankAccount{
			HolderName:    "Ada Bell",
			AccountNumber: "111",
			BankName:      "First Bank",
			IFSCCode:      "FB001",
		}},
	})
	require.NoError(t, err)

	// a new bank account replaces the old one entirely; the omitted
	// IFSC code does not survive from the previous value
	err = svc.MergeEmployment(ctx, detail.ID, &model.StaffEmployment{BankAccount: &model.BankAccount{
		HolderName:    "Ada Bell",
		AccountNumber: "222",
		BankName:      "Second Bank",
	}})
	require.NoError(t, err)

	got, err := svc.Get(ctx, detail.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Employment.BankAccount)
	assert.Equal(t, "222", got.Employment.BankAccount.AccountNumber)
	assert.Equal(t, "Second Bank", got.Employment.BankAccount.BankName)
	assert.Empty(t, got.Employment.BankAccount.IFSCCode)
}

func TestSubRecordsSurviveStoreRestart(t *testing.T) {
	st := store.New()
	st.Seed()
	path := filepath.Join(t.TempDir(), "overlay.json")
	ov, err := overlay.NewFileStore(path)
	require.NoError(t, err)
	v := validator.New()
	svc := NewService(st, ov, v)

	ctx := context.Background()
	detail, err := svc.Create(ctx, 1, &model.CreateStaffRequest{
		FirstName:   "Ada",
		LastName:    "Bell",
		Email:       "ada@medboard.example",
		Role:        "Doctor",
		Specialties: []string{"cardiology"},
		Medical:     &model.StaffMedical{BloodGroup: "O+"},
	})
	require.NoError(t, err)

	// reopened overlay: the medical record persists even though the
	// staff roster itself reset
	ov2, err := overlay.NewFileStore(path)
	require.NoError(t, err)

	med, err := overlay.GetJSON[model.StaffMedical](ctx, ov2, MedicalKey(detail.ID))
	require.NoError(t, err)
	assert.Equal(t, "O+", med.BloodGroup)
}

func TestSetProfilePicture(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	detail, err := svc.Create(ctx, 1, &model.CreateStaffRequest{
		FirstName:   "Ada",
		LastName:    "Bell",
		Email:       "ada@medboard.example",
		Role:        "Doctor",
		Specialties: []string{"cardiology"},
	})
	require.NoError(t, err)

	got, err := svc.SetProfilePicture(ctx, detail.ID, "portrait.jpg")
	require.NoError(t, err)
	assert.Contains(t, got.ProfilePictureURL, "portrait.jpg")

	_, err = svc.SetProfilePicture(ctx, detail.ID, "")
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
}

func TestGetByEmailCaseInsensitive(t *testing.T) {
	svc, _ := newTestService(t)

	m, err := svc.GetByEmail(context.Background(), "ADMIN@medboard.example")
	require.NoError(t, err)
	assert.Equal(t, "admin@medboard.example", m.Email)
}
