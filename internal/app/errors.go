package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrEmptyDrug = errors.New("empty drug name")
)
