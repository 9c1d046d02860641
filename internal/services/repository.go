package services

import (
	"context"

	"github.com/ivstoyanov/rolodex/internal/models"
)

// AccountRepository defines the storage operations the services depend on.
type AccountRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, page *models.PageRequest) ([]*models.Account, int64, error)
	ListOrderedByLastNameAndDateOfBirth(ctx context.Context, page *models.PageRequest) ([]*models.Account, int64, error)
	ListByField(ctx context.Context, field models.SearchField, value string, page *models.PageRequest) ([]*models.Account, int64, error)
	Create(ctx context.Context, account *models.Account, roleIDs []int64) (*models.Account, error)
	Update(ctx context.Context, account *models.Account) (*models.Account, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

// RoleRepository defines the role lookup operations the services depend on.
type RoleRepository interface {
	GetByName(ctx context.Context, name string) (*models.Role, error)
	Count(ctx context.Context) (int64, error)
}
