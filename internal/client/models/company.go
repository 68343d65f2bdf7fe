package models

type Company struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	CNPJ     string `json:"cnpj"`
	IsActive bool   `json:"isActive"`
}

// CompanyInput is the body for creating or editing a company. CNPJ is sent
// unmasked.
type CompanyInput struct {
	Name string `json:"name"`
	CNPJ string `json:"cnpj"`
}
