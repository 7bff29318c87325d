package catalog

type CreateItemRequest struct {
	Category string `json:"category" binding:"required,min=1,max=100"`
	Name     string `json:"name" binding:"required,min=1,max=255"`
	Style    string `json:"style" binding:"max=100"`
	Price    string `json:"price" binding:"required"`
	ImageURL string `json:"image_url" binding:"omitempty,url"`
}

type UpdateItemRequest struct {
	Category *string `json:"category" binding:"omitempty,min=1,max=100"`
	Name     *string `json:"name" binding:"omitempty,min=1,max=255"`
	Style    *string `json:"style" binding:"omitempty,max=100"`
	Price    *string `json:"price"`
	ImageURL *string `json:"image_url" binding:"omitempty,url"`
}

type ListQuery struct {
	Category string `form:"category"`
}
