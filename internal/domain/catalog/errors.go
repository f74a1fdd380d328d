package catalog

import "errors"

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrPackageNotFound  = errors.New("package not found")
	ErrAddonNotFound    = errors.New("addon not found")
	ErrCategoryInUse    = errors.New("category has packages and cannot be deleted")
	ErrSlugTaken        = errors.New("slug already in use")
)
