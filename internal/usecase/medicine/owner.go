package medicine

import (
	"context"

	medicineDomain "github.com/BruksfildServices01/medifind/internal/domain/medicine"
	pharmacyDomain "github.com/BruksfildServices01/medifind/internal/domain/pharmacy"
	"github.com/BruksfildServices01/medifind/internal/httperr"
	"github.com/BruksfildServices01/medifind/internal/identity"
	"github.com/BruksfildServices01/medifind/internal/models"
	"github.com/BruksfildServices01/medifind/internal/policy"
)

// callerPharmacy resolves the pharmacy owned by the caller.
func callerPharmacy(ctx context.Context, pharmacies pharmacyDomain.Repository, caller identity.Caller) (*models.Pharmacy, error) {
	p, err := pharmacies.GetByOwner(ctx, caller.ID)
	if err != nil {
		if httperr.KindOf(err) == httperr.KindNotFound {
			return nil, httperr.ErrNotFound("pharmacy_not_found", "Your pharmacy not found")
		}
		return nil, err
	}
	return p, nil
}

// loadOwned loads a medicine and checks that it belongs to the caller's
// pharmacy. The comparison is between pharmacy ids.
func loadOwned(
	ctx context.Context,
	medicines medicineDomain.Repository,
	pharmacies pharmacyDomain.Repository,
	caller identity.Caller,
	id uint,
	verb string,
) (*models.Medicine, *models.Pharmacy, error) {

	m, err := medicines.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	p, err := callerPharmacy(ctx, pharmacies, caller)
	if err != nil {
		return nil, nil, err
	}

	if err := policy.RequireOwner(m, p.ID, "not_medicine_owner",
		"You can only "+verb+" medicines from your own pharmacy"); err != nil {
		return nil, nil, err
	}
	return m, p, nil
}
