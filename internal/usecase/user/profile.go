package user

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/medifind/internal/audit"
	pharmacyDomain "github.com/BruksfildServices01/medifind/internal/domain/pharmacy"
	domain "github.com/BruksfildServices01/medifind/internal/domain/user"
	"github.com/BruksfildServices01/medifind/internal/httperr"
	"github.com/BruksfildServices01/medifind/internal/identity"
	"github.com/BruksfildServices01/medifind/internal/logger"
	"github.com/BruksfildServices01/medifind/internal/models"
	"github.com/BruksfildServices01/medifind/internal/validators"
)

type GetUser struct {
	repo domain.Repository
}

func NewGetUser(repo domain.Repository) *GetUser {
	return &GetUser{repo: repo}
}

func (uc *GetUser) Execute(ctx context.Context, id uint) (*models.User, error) {
	return uc.repo.GetByID(ctx, id)
}

type ListUsers struct {
	repo domain.Repository
}

func NewListUsers(repo domain.Repository) *ListUsers {
	return &ListUsers{repo: repo}
}

func (uc *ListUsers) Execute(ctx context.Context, caller identity.Caller) ([]models.User, error) {
	if !caller.IsAdmin() {
		return nil, httperr.ErrForbidden("forbidden_role", "Only administrators can list users")
	}
	out, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.User{}
	}
	return out, nil
}

type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
	Phone    *string
	Address  *string
	Role     *string
}

// OwnedPharmacies evicts cached pharmacies that embed a user's name and
// email. A nil value does nothing.
type OwnedPharmacies struct {
	Repo  pharmacyDomain.Repository
	Cache pharmacyDomain.Cache
}

func (o *OwnedPharmacies) forget(ctx context.Context, userID uint) {
	if o == nil || o.Repo == nil || o.Cache == nil {
		return
	}
	log := logger.FromContext(ctx)

	ids, err := o.Repo.IDsOwnedBy(ctx, userID)
	if err != nil {
		log.Warn("owned pharmacy lookup failed", zap.Uint("user_id", userID), zap.Error(err))
		return
	}
	for _, id := range ids {
		if err := o.Cache.Invalidate(ctx, id); err != nil {
			log.Warn("pharmacy cache invalidate failed", zap.Uint("pharmacy_id", id), zap.Error(err))
		}
	}
}

type UpdateUser struct {
	repo  domain.Repository
	audit audit.Sink
	owned *OwnedPharmacies
}

func NewUpdateUser(repo domain.Repository, audit audit.Sink, owned *OwnedPharmacies) *UpdateUser {
	return &UpdateUser{repo: repo, audit: audit, owned: owned}
}

func requireSelfOrAdmin(caller identity.Caller, id uint, verb string) error {
	if caller.ID == id || caller.IsAdmin() {
		return nil
	}
	return httperr.ErrForbidden("not_account_owner", "You are not authorized to "+verb+" this user")
}

func (uc *UpdateUser) Execute(
	ctx context.Context,
	caller identity.Caller,
	id uint,
	in UpdateUserInput,
) (*models.User, error) {

	if err := requireSelfOrAdmin(caller, id, "update"); err != nil {
		return nil, err
	}

	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, httperr.ErrValidation("invalid_name", "Name cannot be empty")
		}
		u.Name = name
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if !validators.IsEmail(email) {
			return nil, httperr.ErrValidation("invalid_email", "Email is not valid")
		}
		u.Email = email
	}
	if in.Password != nil {
		if len(*in.Password) < minPasswordLength {
			return nil, httperr.ErrValidation("password_too_short", "Password must be at least 6 characters")
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, httperr.ErrInternal("failed_to_hash_password", err)
		}
		u.PasswordHash = string(hashed)
	}
	if in.Phone != nil {
		u.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Address != nil {
		u.Address = strings.TrimSpace(*in.Address)
	}
	if in.Role != nil {
		role := models.NormalizeRole(*in.Role)
		switch role {
		case models.RoleUser, models.RolePharmacy, models.RoleAdmin:
		default:
			return nil, httperr.ErrValidation("invalid_role", "Role must be user, pharmacy or admin")
		}
		if role != models.NormalizeRole(u.Role) && !caller.IsAdmin() {
			return nil, httperr.ErrForbidden("role_change_forbidden", "Only administrators can change roles")
		}
		u.Role = role
	}

	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	uc.owned.forget(ctx, u.ID)

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(caller.ID),
		Action:   audit.ActionUserUpdated,
		Entity:   "user",
		EntityID: audit.Ptr(u.ID),
	})
	return u, nil
}

type DeleteUser struct {
	repo  domain.Repository
	audit audit.Sink
	owned *OwnedPharmacies
}

func NewDeleteUser(repo domain.Repository, audit audit.Sink, owned *OwnedPharmacies) *DeleteUser {
	return &DeleteUser{repo: repo, audit: audit, owned: owned}
}

func (uc *DeleteUser) Execute(ctx context.Context, caller identity.Caller, id uint) error {
	if err := requireSelfOrAdmin(caller, id, "delete"); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.owned.forget(ctx, id)

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(caller.ID),
		Action:   audit.ActionUserDeleted,
		Entity:   "user",
		EntityID: audit.Ptr(id),
	})
	return nil
}
