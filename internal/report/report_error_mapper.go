package report

import (
	"errors"

	"gorm.io/gorm"

	reporterrors "github.com/mohammed4122002/workflow-pro-backend/internal/report/errors"
)

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return reporterrors.ErrSnapshotNotFound
	}
	return err
}
