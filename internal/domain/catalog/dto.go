package catalog

// ---------- CATEGORIES ----------

type CreateCategoryRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=200"`
	Slug         string `json:"slug" validate:"required,min=2,max=200"`
	Description  string `json:"description" validate:"max=2000"`
	DisplayOrder int    `json:"display_order" validate:"gte=0"`
	IsActive     *bool  `json:"is_active"`
}

type UpdateCategoryRequest struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Slug         *string `json:"slug,omitempty" validate:"omitempty,min=2,max=200"`
	Description  *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	DisplayOrder *int    `json:"display_order,omitempty" validate:"omitempty,gte=0"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

// ---------- PACKAGES ----------

type CreatePackageRequest struct {
	CategoryID      string  `json:"category_id" validate:"required,uuid"`
	Name            string  `json:"name" validate:"required,min=2,max=200"`
	Description     string  `json:"description" validate:"max=2000"`
	Price           float64 `json:"price" validate:"gte=0"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,gt=0"`
	IsActive        *bool   `json:"is_active"`
}

type UpdatePackageRequest struct {
	CategoryID      *string  `json:"category_id,omitempty" validate:"omitempty,uuid"`
	Name            *string  `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Description     *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	Price           *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	DurationMinutes *int     `json:"duration_minutes,omitempty" validate:"omitempty,gt=0"`
	IsActive        *bool    `json:"is_active,omitempty"`
}

// ---------- ADD-ONS ----------

type CreateAddonRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=200"`
	Description string  `json:"description" validate:"max=2000"`
	Price       float64 `json:"price" validate:"gte=0"`
	IsActive    *bool   `json:"is_active"`
}

type UpdateAddonRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	IsActive    *bool    `json:"is_active,omitempty"`
}
