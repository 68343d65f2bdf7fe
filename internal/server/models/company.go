package models

type Company struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	CNPJ     string `json:"cnpj"`
	IsActive bool   `json:"isActive"`
}

type CompanyInput struct {
	Name string `json:"name"`
	CNPJ string `json:"cnpj"`
}
