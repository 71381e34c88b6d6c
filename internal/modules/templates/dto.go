package templates

type TemplateItemInput struct {
	Label      string `json:"label" validate:"required"`
	FieldType  string `json:"field_type" validate:"required,oneof=pass_fail yes_no text number"`
	IsRequired bool   `json:"is_required"`
	IsCritical bool   `json:"is_critical"`
	SortOrder  int    `json:"sort_order"`
}

type CreateTemplateRequest struct {
	Name        string              `json:"name" validate:"required"`
	Description string              `json:"description"`
	Items       []TemplateItemInput `json:"items" validate:"required,min=1,dive"`
}
