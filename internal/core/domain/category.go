package domain

// Category groups assets and supplies the item code prefix.
type Category struct {
	CategoryID string `json:"categoryID"` // Primary Key (UUID)
	Name       string `json:"name"`
	CodePrefix string `json:"codePrefix"` // e.g. "LPT" -> LPT-0001
	IsActive   bool   `json:"isActive"`
	AuditFields
}

// BusinessUnit scopes assets, schedules and retirement actions.
type BusinessUnit struct {
	BusinessUnitID string `json:"businessUnitID"` // Primary Key (UUID)
	Name           string `json:"name"`
	IsActive       bool   `json:"isActive"`
	AuditFields
}
