package lookups

type CreateEventTypeRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

type CreateLocationTypeRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}
