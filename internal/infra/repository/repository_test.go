package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/medifind/internal/db/dbtest"
	"github.com/BruksfildServices01/medifind/internal/domain/medicine"
	"github.com/BruksfildServices01/medifind/internal/httperr"
	"github.com/BruksfildServices01/medifind/internal/models"
)

type fixture struct {
	db        *gorm.DB
	owner     models.User
	pune      models.Pharmacy
	mumbai    models.Pharmacy
	medicines *MedicineGormRepository
	pharmacy  *PharmacyGormRepository
}

func seed(t *testing.T) *fixture {
	t.Helper()
	gdb := dbtest.Open(t)

	f := &fixture{
		db:        gdb,
		medicines: NewMedicineGormRepository(gdb),
		pharmacy:  NewPharmacyGormRepository(gdb),
	}

	f.owner = models.User{Name: "Asha", Email: "asha@example.com", PasswordHash: "x", Role: models.RolePharmacy}
	require.NoError(t, gdb.Create(&f.owner).Error)
	other := models.User{Name: "Ravi", Email: "ravi@example.com", PasswordHash: "x", Role: models.RolePharmacy}
	require.NoError(t, gdb.Create(&other).Error)

	f.pune = models.Pharmacy{UserID: f.owner.ID, Name: "Apollo Pharmacy", Address: "12 FC Road, Pune", Phone: "111", Location: "411004"}
	f.mumbai = models.Pharmacy{UserID: other.ID, Name: "Wellness Forever", Address: "Linking Road", Phone: "222", Location: "Mumbai"}
	require.NoError(t, gdb.Create(&f.pune).Error)
	require.NoError(t, gdb.Create(&f.mumbai).Error)

	meds := []models.Medicine{
		{PharmacyID: f.pune.ID, Name: "Paracetamol", Category: "Tablet", Price: 5.5, Stock: 10},
		{PharmacyID: f.pune.ID, Name: "Cough Syrup", Category: "Syrup", Price: 12, Stock: 0},
		{PharmacyID: f.pune.ID, Name: "Amoxicillin", Category: "Capsule", Price: 20, Stock: 3},
		{PharmacyID: f.mumbai.ID, Name: "Ibuprofen", Category: "tablet", Price: 10, Stock: 7},
		{PharmacyID: f.mumbai.ID, Name: "Vitamin C 100%", Category: "Tablet", Price: 25, Stock: 1},
	}
	require.NoError(t, gdb.Create(&meds).Error)
	return f
}

func names(items []models.Medicine) []string {
	out := make([]string, 0, len(items))
	for _, m := range items {
		out = append(out, m.Name)
	}
	return out
}

func search(t *testing.T, f *fixture, flt medicine.Filter) ([]models.Medicine, int64) {
	t.Helper()
	flt.Normalize()
	items, total, err := f.medicines.Search(context.Background(), flt)
	require.NoError(t, err)
	return items, total
}

func ptr[T any](v T) *T { return &v }

func TestSearchSortsByName(t *testing.T) {
	f := seed(t)
	items, total := search(t, f, medicine.Filter{})

	assert.Equal(t, int64(5), total)
	assert.Equal(t, []string{"Amoxicillin", "Cough Syrup", "Ibuprofen", "Paracetamol", "Vitamin C 100%"}, names(items))
	require.NotNil(t, items[0].Pharmacy)
	assert.Equal(t, "Apollo Pharmacy", items[0].Pharmacy.Name)
}

func TestSearchPriceRangeInclusive(t *testing.T) {
	f := seed(t)

	items, _ := search(t, f, medicine.Filter{MinPrice: ptr(10.0), MaxPrice: ptr(20.0)})
	assert.Equal(t, []string{"Amoxicillin", "Cough Syrup", "Ibuprofen"}, names(items))

	items, _ = search(t, f, medicine.Filter{MinPrice: ptr(20.0)})
	assert.Equal(t, []string{"Amoxicillin", "Vitamin C 100%"}, names(items))

	items, _ = search(t, f, medicine.Filter{MaxPrice: ptr(10.0)})
	assert.Equal(t, []string{"Ibuprofen", "Paracetamol"}, names(items))
}

func TestSearchCategorySubstringIgnoresCase(t *testing.T) {
	f := seed(t)
	items, _ := search(t, f, medicine.Filter{Category: "TAB"})
	assert.Equal(t, []string{"Ibuprofen", "Paracetamol", "Vitamin C 100%"}, names(items))
}

func TestSearchInStockAndName(t *testing.T) {
	f := seed(t)

	items, _ := search(t, f, medicine.Filter{InStock: true, Name: "syrup"})
	assert.Empty(t, items)

	items, _ = search(t, f, medicine.Filter{Name: "CILL"})
	assert.Equal(t, []string{"Amoxicillin"}, names(items))
}

func TestSearchEscapesWildcards(t *testing.T) {
	f := seed(t)
	items, _ := search(t, f, medicine.Filter{Name: "%"})
	assert.Equal(t, []string{"Vitamin C 100%"}, names(items))
}

func TestSearchByPharmacy(t *testing.T) {
	f := seed(t)

	items, _ := search(t, f, medicine.Filter{PharmacyID: &f.mumbai.ID})
	assert.Equal(t, []string{"Ibuprofen", "Vitamin C 100%"}, names(items))

	items, _ = search(t, f, medicine.Filter{PharmacyIDs: []uint{f.pune.ID}, Category: "tab"})
	assert.Equal(t, []string{"Paracetamol"}, names(items))
}

func TestSearchPaginates(t *testing.T) {
	f := seed(t)
	items, total := search(t, f, medicine.Filter{Page: 2, Limit: 2})

	assert.Equal(t, int64(5), total)
	assert.Equal(t, []string{"Ibuprofen", "Paracetamol"}, names(items))
}

func TestIDsMatching(t *testing.T) {
	f := seed(t)
	ctx := context.Background()

	ids, err := f.pharmacy.IDsMatching(ctx, "pune", "")
	require.NoError(t, err)
	assert.Equal(t, []uint{f.pune.ID}, ids)

	ids, err = f.pharmacy.IDsMatching(ctx, "mumbai", "")
	require.NoError(t, err)
	assert.Equal(t, []uint{f.mumbai.ID}, ids)

	ids, err = f.pharmacy.IDsMatching(ctx, "", "WELL")
	require.NoError(t, err)
	assert.Equal(t, []uint{f.mumbai.ID}, ids)

	ids, err = f.pharmacy.IDsMatching(ctx, "pune", "wellness")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestIDsOwnedBy(t *testing.T) {
	f := seed(t)
	ctx := context.Background()

	second := models.Pharmacy{UserID: f.owner.ID, Name: "Apollo Express", Address: "Baner", Phone: "333", Location: "Pune"}
	require.NoError(t, f.db.Create(&second).Error)

	ids, err := f.pharmacy.IDsOwnedBy(ctx, f.owner.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{f.pune.ID, second.ID}, ids)

	ids, err = f.pharmacy.IDsOwnedBy(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestSearchLastPageIsEmptyPastTheEnd(t *testing.T) {
	f := seed(t)
	items, total := search(t, f, medicine.Filter{Page: medicine.MaxPage, Limit: medicine.MaxLimit})

	assert.Equal(t, int64(5), total)
	assert.Empty(t, items)
}

func TestPharmacyGetByIDIncludesOwner(t *testing.T) {
	f := seed(t)

	p, err := f.pharmacy.GetByID(context.Background(), f.pune.ID)
	require.NoError(t, err)
	require.NotNil(t, p.User)
	assert.Equal(t, "Asha", p.User.Name)
	assert.Equal(t, "asha@example.com", p.User.Email)

	_, err = f.pharmacy.GetByID(context.Background(), 999)
	assert.True(t, httperr.Is(err, "pharmacy_not_found"))
}

func TestPharmacyDeleteLeavesMedicines(t *testing.T) {
	f := seed(t)
	ctx := context.Background()

	require.NoError(t, f.pharmacy.Delete(ctx, f.pune.ID))

	items, err := f.medicines.ListByPharmacy(ctx, f.pune.ID)
	require.NoError(t, err)
	assert.Len(t, items, 3)
	assert.Nil(t, items[0].Pharmacy)

	err = f.pharmacy.Delete(ctx, f.pune.ID)
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))
}

func TestMedicineDeleteTwice(t *testing.T) {
	f := seed(t)
	ctx := context.Background()

	items, _ := search(t, f, medicine.Filter{Name: "Paracetamol"})
	require.Len(t, items, 1)

	require.NoError(t, f.medicines.Delete(ctx, items[0].ID))
	err := f.medicines.Delete(ctx, items[0].ID)
	assert.True(t, httperr.Is(err, "medicine_not_found"))
}

func TestUserRepositoryDuplicateEmail(t *testing.T) {
	f := seed(t)
	users := NewUserGormRepository(f.db)

	err := users.Create(context.Background(), &models.User{Name: "Dup", Email: "asha@example.com", PasswordHash: "x"})
	assert.Equal(t, httperr.KindValidation, httperr.KindOf(err))
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, `%tab%`, likePattern("TAB"))
	assert.Equal(t, `%50\%\_off\\%`, likePattern(`50%_off\`))
}
