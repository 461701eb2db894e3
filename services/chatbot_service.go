package services

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"lms/config"
	analyticsModels "lms/models/analytics"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/go-resty/resty/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Completer produces an answer for a learner question, optionally scoped to a
// course title for context.
type Completer interface {
	Complete(question, courseTitle string) (string, error)
}

// ChatClient calls an OpenAI-compatible chat completion endpoint.
type ChatClient struct {
	client *resty.Client
}

func NewChatClient() *ChatClient {
	return &ChatClient{
		client: resty.New().
			SetBaseURL(config.AppConfig.ChatApiURL).
			SetAuthToken(config.AppConfig.ChatApiKey).
			SetTimeout(30 * time.Second),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *ChatClient) Complete(question, courseTitle string) (string, error) {
	system := "You are a helpful learning assistant for an online course platform. Answer concisely."
	if courseTitle != "" {
		system += " The learner is currently studying the course: " + courseTitle + "."
	}

	var result chatResponse
	resp, err := c.client.R().
		SetBody(chatRequest{
			Model: config.AppConfig.ChatModel,
			Messages: []chatMessage{
				{Role: "system", Content: system},
				{Role: "user", Content: question},
			},
		}).
		SetResult(&result).
		Post("/chat/completions")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		if result.Error != nil {
			return "", fmt.Errorf("chat api error: %s", result.Error.Message)
		}
		return "", fmt.Errorf("chat api error: status %d", resp.StatusCode())
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("chat api returned no choices")
	}
	return result.Choices[0].Message.Content, nil
}

// ChatAnswer is the outcome of one question, with where the answer came from.
type ChatAnswer struct {
	Interaction *analyticsModels.ChatbotInteraction
	Source      string // "cache" or "api"
}

func chatCacheKey(question string, courseID *uint) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(question))))
	key := hex.EncodeToString(sum[:])
	if courseID != nil {
		key = fmt.Sprintf("%s:%d", key, *courseID)
	}
	return key
}

// Ask answers a learner question, serving repeats from the cache for up to
// ttl. Every ask is logged as an interaction regardless of where the answer
// came from.
func Ask(db *gorm.DB, cache *utils.TTLCache, completer Completer, actor Identity, question string, courseID *uint, ttl time.Duration) (*ChatAnswer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, InvalidArgument("Question cannot be empty!")
	}

	courseTitle := ""
	if courseID != nil {
		var crs courseModels.Course
		if err := db.Where("id = ? AND is_deleted = ?", *courseID, false).First(&crs).Error; err != nil {
			return nil, NotFound("Course not found!")
		}
		courseTitle = crs.Title
	}

	key := chatCacheKey(question, courseID)
	source := "api"

	var answer string
	if cached, ok := cache.Get(key); ok {
		answer = cached.(string)
		source = "cache"
	} else {
		var err error
		answer, err = completer.Complete(question, courseTitle)
		if err != nil {
			return nil, err
		}
		cache.Set(key, answer, ttl)
	}

	contextJSON, _ := json.Marshal(map[string]interface{}{
		"course_title": courseTitle,
		"source":       source,
	})

	interaction := analyticsModels.ChatbotInteraction{
		UserID:    actor.UserID,
		CourseID:  courseID,
		Question:  question,
		Answer:    answer,
		Context:   datatypes.JSON(contextJSON),
		Timestamp: time.Now(),
	}
	if err := db.Create(&interaction).Error; err != nil {
		return nil, err
	}

	return &ChatAnswer{Interaction: &interaction, Source: source}, nil
}

// SubmitFeedback records a 1-5 rating on one of the caller's own interactions.
func SubmitFeedback(db *gorm.DB, actor Identity, interactionID uint, rating int) (*analyticsModels.ChatbotInteraction, error) {
	if rating < 1 || rating > 5 {
		return nil, InvalidArgument("Feedback rating must be between 1 and 5!")
	}

	var interaction analyticsModels.ChatbotInteraction
	if err := db.Where("id = ?", interactionID).First(&interaction).Error; err != nil {
		return nil, NotFound("Chatbot interaction not found!")
	}

	if interaction.UserID != actor.UserID && !actor.IsAdmin() {
		return nil, PermissionDenied("You can only rate your own interactions!")
	}

	interaction.Feedback = &rating
	if err := db.Save(&interaction).Error; err != nil {
		return nil, err
	}
	return &interaction, nil
}

// RecentInteractions lists a user's latest chatbot exchanges.
func RecentInteractions(db *gorm.DB, actor Identity, targetUserID uint, limit int) ([]analyticsModels.ChatbotInteraction, error) {
	if targetUserID == 0 {
		targetUserID = actor.UserID
	}
	if targetUserID != actor.UserID && !actor.IsAdmin() {
		return nil, PermissionDenied("You do not have permission to view these interactions!")
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var interactions []analyticsModels.ChatbotInteraction
	db.Where("user_id = ?", targetUserID).Order("timestamp desc").Limit(limit).Find(&interactions)
	return interactions, nil
}
