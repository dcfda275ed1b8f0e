package persistence

import (
	"errors"

	"github.com/mynet/sales/internal/domain/shared"
	"gorm.io/gorm"
)

// translate maps GORM sentinel errors onto domain errors. resource names
// the entity in NOT_FOUND messages.
func translate(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.NotFound(resource)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.NewDomainError("ALREADY_EXISTS", resource+" already exists")
	}
	return err
}
