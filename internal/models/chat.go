package models

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

type ChatMessage struct {
	Role string `json:"role" validate:"required,oneof=user assistant"`
	Text string `json:"text" validate:"required,max=2000"`
}

type ChatRequest struct {
	Messages []ChatMessage `json:"messages" validate:"required,min=1,dive"`
}

// ProductRecommendation is an assistant-attached product card. At most three
// per reply, each referencing a product that exists in the current in-stock
// snapshot.
type ProductRecommendation struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	Price       int64  `json:"price"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

type ChatResponse struct {
	Message  string                  `json:"message"`
	Products []ProductRecommendation `json:"products"`
}

type GenerateDescriptionRequest struct {
	ProductName string `json:"productName" validate:"required,max=200"`
	Category    string `json:"category" validate:"omitempty,oneof=furniture lighting decor outdoor"`
	Price       int64  `json:"price" validate:"omitempty,gte=0"`
}

type GenerateDescriptionResponse struct {
	Description string `json:"description"`
}
