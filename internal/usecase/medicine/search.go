package medicine

import (
	"context"

	medicineDomain "github.com/BruksfildServices01/medifind/internal/domain/medicine"
	pharmacyDomain "github.com/BruksfildServices01/medifind/internal/domain/pharmacy"
	"github.com/BruksfildServices01/medifind/internal/models"
)

type SearchMedicines struct {
	medicines  medicineDomain.Repository
	pharmacies pharmacyDomain.Repository
}

func NewSearchMedicines(medicines medicineDomain.Repository, pharmacies pharmacyDomain.Repository) *SearchMedicines {
	return &SearchMedicines{medicines: medicines, pharmacies: pharmacies}
}

// Execute resolves location and pharmacy-name constraints to a set of
// pharmacy ids first; when nothing matches the page is empty.
func (uc *SearchMedicines) Execute(ctx context.Context, f medicineDomain.Filter) (medicineDomain.Page, error) {
	f.Normalize()

	if f.NeedsPharmacyLookup() {
		ids, err := uc.pharmacies.IDsMatching(ctx, f.Location, f.PharmacyName)
		if err != nil {
			return medicineDomain.Page{}, err
		}
		if len(ids) == 0 {
			return medicineDomain.NewPage(nil, 0, f), nil
		}
		f.PharmacyIDs = ids
	}

	items, total, err := uc.medicines.Search(ctx, f)
	if err != nil {
		return medicineDomain.Page{}, err
	}
	return medicineDomain.NewPage(items, total, f), nil
}

type GetMedicine struct {
	medicines medicineDomain.Repository
}

func NewGetMedicine(medicines medicineDomain.Repository) *GetMedicine {
	return &GetMedicine{medicines: medicines}
}

func (uc *GetMedicine) Execute(ctx context.Context, id uint) (*models.Medicine, error) {
	return uc.medicines.GetByID(ctx, id)
}

type PharmacyMedicines struct {
	Medicines []models.Medicine        `json:"medicines"`
	Pharmacy  *models.PharmacySummary `json:"pharmacy"`
}

type ListPharmacyMedicines struct {
	medicines  medicineDomain.Repository
	pharmacies pharmacyDomain.Repository
}

func NewListPharmacyMedicines(medicines medicineDomain.Repository, pharmacies pharmacyDomain.Repository) *ListPharmacyMedicines {
	return &ListPharmacyMedicines{medicines: medicines, pharmacies: pharmacies}
}

func (uc *ListPharmacyMedicines) Execute(ctx context.Context, pharmacyID uint) (*PharmacyMedicines, error) {
	p, err := uc.pharmacies.GetByID(ctx, pharmacyID)
	if err != nil {
		return nil, err
	}

	items, err := uc.medicines.ListByPharmacy(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Medicine{}
	}

	return &PharmacyMedicines{Medicines: items, Pharmacy: p.Summary()}, nil
}
