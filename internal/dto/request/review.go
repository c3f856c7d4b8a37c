package request

type CreateReviewRequest struct {
	EntityID   string `json:"entity_id" validate:"required,notblank"`
	EntityType string `json:"entity_type" validate:"required,oneof=tour tours hajj umrah"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	Comment    string `json:"comment" validate:"required,notblank,max=1000"`
}
