package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Business errors enforced by model hooks.
var (
	ErrFundingAmountNegative   = errors.New("funding source amounts must not be negative")
	ErrTableCapacityNegative   = errors.New("table capacities must not be negative")
	ErrCategoryNameNotUnique   = errors.New("category names must be unique per couple")
	ErrArrangementNotUnique    = errors.New("there is already a seating arrangement for this event")
	ErrSeatDuplicate           = errors.New("this guest is already seated at this table")
	ErrExpensePaidNegative     = errors.New("the paid amount of an expense must not be negative")
	ErrAllocationNotPositive   = errors.New("planned amounts must be larger than zero")
	ErrBaselineCategoryMissing = errors.New("a baseline needs a category ID")
)
