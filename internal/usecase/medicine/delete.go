package medicine

import (
	"context"

	"github.com/BruksfildServices01/medifind/internal/audit"
	medicineDomain "github.com/BruksfildServices01/medifind/internal/domain/medicine"
	pharmacyDomain "github.com/BruksfildServices01/medifind/internal/domain/pharmacy"
	"github.com/BruksfildServices01/medifind/internal/identity"
)

type DeleteMedicine struct {
	medicines  medicineDomain.Repository
	pharmacies pharmacyDomain.Repository
	audit      audit.Sink
}

func NewDeleteMedicine(
	medicines medicineDomain.Repository,
	pharmacies pharmacyDomain.Repository,
	audit audit.Sink,
) *DeleteMedicine {
	return &DeleteMedicine{
		medicines:  medicines,
		pharmacies: pharmacies,
		audit:      audit,
	}
}

func (uc *DeleteMedicine) Execute(ctx context.Context, caller identity.Caller, id uint) error {
	m, p, err := loadOwned(ctx, uc.medicines, uc.pharmacies, caller, id, "delete")
	if err != nil {
		return err
	}

	if err := uc.medicines.Delete(ctx, m.ID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		PharmacyID: audit.Ptr(p.ID),
		UserID:     audit.Ptr(caller.ID),
		Action:     audit.ActionMedicineDeleted,
		Entity:     "medicine",
		EntityID:   audit.Ptr(m.ID),
		Metadata:   map[string]any{"name": m.Name},
	})
	return nil
}
