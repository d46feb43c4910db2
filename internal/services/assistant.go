package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	appErrors "github.com/sbbtt/next-mall/internal/errors"
	"github.com/sbbtt/next-mall/internal/models"
	"github.com/sbbtt/next-mall/pkg/gemini"
)

const (
	// maxRecommendations caps the product cards attached to one reply.
	maxRecommendations = 3

	// maxHistoryMessages bounds how much conversation is replayed into the
	// prompt on every turn.
	maxHistoryMessages = 10

	// maxCardDescription keeps product cards compact.
	maxCardDescription = 100

	refusalMessage = "Sorry, I can only help with furniture, lighting, decor and outdoor products. What are you looking for?"

	unavailableMessage = "Sorry, the shopping assistant is unavailable right now. Please try again in a moment."
)

var (
	chatGeneration     = gemini.GenerationConfig{Temperature: 0.7, MaxOutputTokens: 500}
	generateGeneration = gemini.GenerationConfig{Temperature: 0.9, MaxOutputTokens: 500}
)

type AssistantService interface {
	Chat(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error)
	GenerateDescription(ctx context.Context, req *models.GenerateDescriptionRequest) (*models.GenerateDescriptionResponse, error)
}

type assistantService struct {
	products ProductService
	llm      gemini.Client
}

func NewAssistantService(products ProductService, llm gemini.Client) AssistantService {
	return &assistantService{products: products, llm: llm}
}

func (s *assistantService) Chat(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error) {

	lastMessage := req.Messages[len(req.Messages)-1].Text

	// Cheap pre-filter: clearly off-topic questions never reach the model.
	if isOffTopic(lastMessage) {
		return &models.ChatResponse{Message: refusalMessage, Products: []models.ProductRecommendation{}}, nil
	}

	snapshot, err := s.products.InStockSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	prompt := buildChatPrompt(snapshot, req.Messages)

	raw, err := s.llm.GenerateContent(ctx, prompt, chatGeneration)
	if err != nil {
		slog.Error("Assistant generation failed", slog.String("error", err.Error()))

		return nil, appErrors.UpstreamError(unavailableMessage).WithError(err)
	}

	return parseAssistantReply(raw, snapshot), nil
}

func (s *assistantService) GenerateDescription(ctx context.Context, req *models.GenerateDescriptionRequest) (*models.GenerateDescriptionResponse, error) {

	var sb strings.Builder

	sb.WriteString("Write a warm, concise product description for an online home & living store.\n")
	sb.WriteString("Two to three sentences, no markdown, no quotes, plain text only.\n\n")
	fmt.Fprintf(&sb, "Product name: %s\n", req.ProductName)

	if req.Category != "" {
		fmt.Fprintf(&sb, "Category: %s\n", req.Category)
	}
	if req.Price > 0 {
		fmt.Fprintf(&sb, "Price: %d원\n", req.Price)
	}

	raw, err := s.llm.GenerateContent(ctx, sb.String(), generateGeneration)
	if err != nil {
		slog.Error("Description generation failed", slog.String("error", err.Error()))

		return nil, appErrors.UpstreamError("Failed to generate a product description").WithError(err)
	}

	return &models.GenerateDescriptionResponse{Description: strings.TrimSpace(raw)}, nil
}

// buildChatPrompt renders the grounding context the model answers from: the
// in-stock catalog grouped by category, the recent conversation, and the
// contract for the reply shape.
func buildChatPrompt(snapshot []models.Product, messages []models.ChatMessage) string {

	var sb strings.Builder

	sb.WriteString("You are the shopping assistant of a home & living store.\n")
	sb.WriteString("Only discuss the products listed below. Recommend at most three.\n")
	sb.WriteString("Reply with a single JSON object and nothing else:\n")
	sb.WriteString(`{"text": "<your answer>", "products": [<product ids>]}`)
	sb.WriteString("\n\nIn-stock products:\n")
	sb.WriteString(catalogExcerpt(snapshot))

	history := messages
	if len(history) > maxHistoryMessages {
		history = history[len(history)-maxHistoryMessages:]
	}

	sb.WriteString("\nConversation:\n")

	for _, m := range history {
		speaker := "Customer"
		if m.Role == models.ChatRoleAssistant {
			speaker = "Assistant"
		}

		fmt.Fprintf(&sb, "%s: %s\n", speaker, m.Text)
	}

	sb.WriteString("Assistant:")

	return sb.String()
}

// catalogExcerpt is deterministic: categories in their fixed order, products
// in snapshot order within each.
func catalogExcerpt(snapshot []models.Product) string {

	var sb strings.Builder

	for _, category := range models.Categories {
		var lines []string

		for _, p := range snapshot {
			if p.Category == category {
				lines = append(lines, fmt.Sprintf("ID:%d %s %d원", p.ID, p.Name, p.Price))
			}
		}

		if len(lines) == 0 {
			continue
		}

		fmt.Fprintf(&sb, "[%s]\n", category)
		sb.WriteString(strings.Join(lines, "\n"))
		sb.WriteString("\n")
	}

	return sb.String()
}

var (
	fencedJSONPattern = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")
	jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)
)

// assistantReply is the contract the prompt demands. The products list is kept
// raw because models return bare numbers and {"id": n} objects interchangeably.
type assistantReply struct {
	Text     string            `json:"text"`
	Products []json.RawMessage `json:"products"`
}

// parseAssistantReply turns raw model output into a response. It never fails:
// output that does not parse as the expected JSON is returned verbatim with no
// product cards.
func parseAssistantReply(raw string, snapshot []models.Product) *models.ChatResponse {

	payload := strings.TrimSpace(raw)

	if match := fencedJSONPattern.FindStringSubmatch(payload); match != nil {
		payload = match[1]
	}

	if match := jsonObjectPattern.FindString(payload); match != "" {
		payload = match
	}

	var reply assistantReply
	if err := json.Unmarshal([]byte(payload), &reply); err != nil || reply.Text == "" {
		return &models.ChatResponse{Message: strings.TrimSpace(raw), Products: []models.ProductRecommendation{}}
	}

	byID := make(map[int64]models.Product, len(snapshot))
	for _, p := range snapshot {
		byID[p.ID] = p
	}

	products := []models.ProductRecommendation{}
	seen := make(map[int64]bool)

	for _, rawRef := range reply.Products {
		id, ok := parseProductRef(rawRef)
		if !ok || seen[id] {
			continue
		}

		product, inStock := byID[id]
		if !inStock {
			continue
		}

		seen[id] = true
		products = append(products, recommendationCard(product))

		if len(products) == maxRecommendations {
			break
		}
	}

	return &models.ChatResponse{Message: reply.Text, Products: products}
}

// parseProductRef accepts either a bare number or an object carrying an id.
func parseProductRef(raw json.RawMessage) (int64, bool) {

	var id int64
	if err := json.Unmarshal(raw, &id); err == nil {
		return id, true
	}

	var ref struct {
		ID int64 `json:"id"`
	}

	if err := json.Unmarshal(raw, &ref); err == nil && ref.ID > 0 {
		return ref.ID, true
	}

	return 0, false
}

func recommendationCard(p models.Product) models.ProductRecommendation {

	description := p.Description
	if runes := []rune(description); len(runes) > maxCardDescription {
		description = string(runes[:maxCardDescription])
	}

	return models.ProductRecommendation{
		ID:          p.ID,
		Name:        p.Name,
		Image:       p.Image,
		Price:       p.Price,
		Category:    p.Category,
		Description: description,
	}
}

var shoppingKeywords = []string{
	"furniture", "sofa", "couch", "chair", "table", "desk", "bed", "shelf",
	"lamp", "light", "lighting", "decor", "mirror", "vase", "cushion", "rug",
	"outdoor", "garden", "patio", "recommend", "looking for", "find", "show",
	"buy", "price", "cheap", "budget", "gift", "style", "cozy", "modern",
}

var offTopicKeywords = []string{
	"weather", "news", "politics", "math", "calculate", "sports", "stock",
	"crypto", "homework", "translate", "recipe",
}

// isOffTopic flags messages that match a deny-list keyword without matching
// any shopping keyword. Anything ambiguous goes to the model.
func isOffTopic(message string) bool {

	lowered := strings.ToLower(message)

	for _, keyword := range shoppingKeywords {
		if strings.Contains(lowered, keyword) {
			return false
		}
	}

	for _, keyword := range offTopicKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}

	return false
}
