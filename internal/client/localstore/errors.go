package localstore

import (
	"errors"
	"fmt"

	"github.com/k4jlpg/inventory/internal/common"
)

// withStorage tags errors that do not already carry a taxonomy sentinel,
// such as a failed BEGIN or COMMIT, as storage errors.
func withStorage(err error) error {
	if err == nil {
		return nil
	}
	for _, known := range []error{common.ErrStorage, common.ErrNotFound, common.ErrValidation} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", common.ErrStorage, err)
}
