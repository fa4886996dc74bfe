package services

import (
	"errors"

	"github.com/GTBioPortal/BioPortal-Backend/internal/common"
	"github.com/GTBioPortal/BioPortal-Backend/internal/keygen"
)

// maxIDAttempts bounds the random-id retry loop on insertion conflicts.
const maxIDAttempts = 5

// insertWithFreshID draws a random entity id and calls insert with it,
// retrying with a new draw when the insert reports an id collision
// (common.ErrorConflict). A failed attempt leaves no partial row. After
// maxIDAttempts collisions it gives up with common.ErrorIDExhausted.
func insertWithFreshID(insert func(id string) error) (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id, err := keygen.EntityKey()
		if err != nil {
			return "", common.ErrorInternal
		}

		err = insert(id)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, common.ErrorConflict) {
			return "", err
		}
	}
	return "", common.ErrorIDExhausted
}
