package store

import (
	"errors"

	"airbnb-webmap/models"
)

func asDataLoadError(source string, err error) error {
	var dle *models.DataLoadError
	if errors.As(err, &dle) {
		return err
	}
	return &models.DataLoadError{Source: source, Reason: "read listings", Err: err}
}
