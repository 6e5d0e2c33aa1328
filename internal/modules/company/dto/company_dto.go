package dto

type RegisterCompanyInput struct {
	CompanyName string `json:"companyName" form:"companyName" validate:"required,max=150"`
}

// UpdateCompanyInput carries a partial update; empty fields are left alone.
type UpdateCompanyInput struct {
	Name        string `json:"name" form:"name" validate:"omitempty,max=150"`
	Description string `json:"description" form:"description"`
	Website     string `json:"website" form:"website" validate:"omitempty,url"`
	Location    string `json:"location" form:"location" validate:"omitempty,max=150"`
}
