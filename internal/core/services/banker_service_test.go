package services

import (
	"context"
	"strings"
	"testing"

	"bankerdir/internal/adapters/persistence/models"
	"bankerdir/internal/adapters/persistence/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestBankerService_ListBankers_NormalizesPagination(t *testing.T) {
	var gotOffset, gotLimit int
	mockRepo := &MockBankerRepository{
		ListFunc: func(ctx context.Context, filter *repositories.BankerFilter, offset, limit int) ([]*models.Banker, int64, error) {
			gotOffset, gotLimit = offset, limit
			return []*models.Banker{{ID: 1, Name: "A"}}, 20, nil
		},
	}

	svc := NewBankerService(mockRepo)
	out, err := svc.ListBankers(context.Background(), &ListBankersInput{Page: 3, Limit: 9})
	require.NoError(t, err)

	assert.Equal(t, 18, gotOffset)
	assert.Equal(t, 9, gotLimit)
	assert.Equal(t, 3, out.Page)
	assert.Equal(t, int64(20), out.Total)
	assert.Equal(t, 3, out.TotalPages, "ceil(20/9) = 3")
}

func TestBankerService_ListBankers_TrimsCriteria(t *testing.T) {
	var gotFilter *repositories.BankerFilter
	mockRepo := &MockBankerRepository{
		ListFunc: func(ctx context.Context, filter *repositories.BankerFilter, offset, limit int) ([]*models.Banker, int64, error) {
			gotFilter = filter
			return nil, 0, nil
		},
	}

	svc := NewBankerService(mockRepo)
	_, err := svc.ListBankers(context.Background(), &ListBankersInput{Name: "  smith  ", Location: "   "})
	require.NoError(t, err)

	assert.Equal(t, "smith", gotFilter.Name)
	assert.Equal(t, "", gotFilter.Location)
}

func TestBankerService_CreateBanker_RequiresTagCollections(t *testing.T) {
	svc := NewBankerService(&MockBankerRepository{})

	_, err := svc.CreateBanker(context.Background(), &CreateBankerInput{
		Name:        "A",
		Affiliation: "B",
		Phone:       "1",
		Locations:   []string{"Mumbai"},
		// Products missing
	})

	require.Error(t, err)
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestBankerService_CreateBanker_TrimsAndCleansTags(t *testing.T) {
	var created *models.Banker
	mockRepo := &MockBankerRepository{
		CreateFunc: func(ctx context.Context, banker *models.Banker) error {
			banker.ID = 7
			created = banker
			return nil
		},
	}

	svc := NewBankerService(mockRepo)
	banker, err := svc.CreateBanker(context.Background(), &CreateBankerInput{
		Name:        "  A  ",
		Affiliation: "B",
		Locations:   []string{" Mumbai ", "", "Pune"},
		Products:    []string{"Home Loan"},
		Phone:       "1",
	})
	require.NoError(t, err)

	assert.Equal(t, uint(7), banker.ID)
	assert.Equal(t, "A", created.Name)
	assert.Equal(t, []string{"Mumbai", "Pune"}, created.Locations)
}

func TestBankerService_UpdateBanker_AppliesOnlyProvidedFields(t *testing.T) {
	existing := &models.Banker{ID: 1, Name: "Old", Affiliation: "Bank", Phone: "1"}
	var updated *models.Banker
	mockRepo := &MockBankerRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*models.Banker, error) { return existing, nil },
		UpdateFunc: func(ctx context.Context, banker *models.Banker) error {
			updated = banker
			return nil
		},
	}

	svc := NewBankerService(mockRepo)
	name := "New"
	_, err := svc.UpdateBanker(context.Background(), 1, &UpdateBankerInput{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "New", updated.Name)
	assert.Equal(t, "Bank", updated.Affiliation, "unset fields stay put")
}

func TestBankerService_UpdateBanker_NotFound(t *testing.T) {
	mockRepo := &MockBankerRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*models.Banker, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewBankerService(mockRepo)
	_, err := svc.UpdateBanker(context.Background(), 99, &UpdateBankerInput{})
	assert.ErrorIs(t, err, ErrBankerNotFoundSvc)
}

func TestBankerService_ImportCSV_ValidFile(t *testing.T) {
	var batch []*models.Banker
	mockRepo := &MockBankerRepository{
		CreateBatchFunc: func(ctx context.Context, bankers []*models.Banker) error {
			batch = bankers
			return nil
		},
	}

	csvData := strings.Join([]string{
		"Name,Affiliation,Locations,Products,Official Email,Personal Email,Phone",
		`"Asha Rao","First National","Mumbai; Pune","Home Loan",a@bank.example,,"+91 98765"`,
		`"Vik Shah","Co-op Bank","Delhi","Gold Loan; Auto Loan",v@coop.example,,12345`,
	}, "\n")

	svc := NewBankerService(mockRepo)
	result, err := svc.ImportCSV(context.Background(), strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 0, result.Skipped)
	require.Len(t, batch, 2)
	assert.Equal(t, []string{"Mumbai", "Pune"}, batch[0].Locations)
	assert.Equal(t, []string{"Gold Loan", "Auto Loan"}, batch[1].Products)
}

func TestBankerService_ImportCSV_SkipsInvalidRowsWithLineNumbers(t *testing.T) {
	mockRepo := &MockBankerRepository{}

	csvData := strings.Join([]string{
		"Name,Affiliation,Locations,Products,Official Email,Personal Email,Phone",
		`"Valid","Bank","Mumbai","Home Loan",,,123`,
		`"","Bank","Mumbai","Home Loan",,,123`,
	}, "\n")

	svc := NewBankerService(mockRepo)
	result, err := svc.ImportCSV(context.Background(), strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.RowErrors, 1)
	assert.Contains(t, result.RowErrors[0], "line 3:")
}

func TestBankerService_ImportCSV_RejectsWrongHeader(t *testing.T) {
	svc := NewBankerService(&MockBankerRepository{})

	_, err := svc.ImportCSV(context.Background(), strings.NewReader("foo,bar\n1,2\n"))
	assert.ErrorIs(t, err, ErrBadImportHeader)
}

func TestBankerService_ImportCSV_EmptyFile(t *testing.T) {
	svc := NewBankerService(&MockBankerRepository{})

	_, err := svc.ImportCSV(context.Background(), strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyImportFile)

	_, err = svc.ImportCSV(context.Background(),
		strings.NewReader("Name,Affiliation,Locations,Products,Official Email,Personal Email,Phone\n"))
	assert.ErrorIs(t, err, ErrEmptyImportFile)
}
