package scraper

import (
	"fmt"

	"github.com/skytraxdata/airline-reviews/models"
)

// CategoryError tags a failure with the review category it aborted.
type CategoryError struct {
	Category models.Category
	Err      error
}

func (e CategoryError) Error() string {
	return fmt.Sprintf("%s reviews: %v", e.Category, e.Err)
}

func (e CategoryError) Unwrap() error {
	return e.Err
}
