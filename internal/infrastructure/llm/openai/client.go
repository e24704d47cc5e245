// Package openai provides an EventSearcher implementation using OpenAI.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/ersonp/fightnight/internal/domain/entities"
	"github.com/ersonp/fightnight/internal/domain/ports"
	"github.com/ersonp/fightnight/internal/domain/services"
	"github.com/ersonp/fightnight/internal/infrastructure/config"
)

const (
	defaultModel       = "gpt-4o-mini"
	defaultSearchModel = "gpt-4o-search-preview"
	defaultMonths      = 3
)

const searchPrompt = `Today is %s.
Find major upcoming MMA fight cards for %s scheduled within the next %d months.
Search for the specific main card start time in GMT/UTC.
Include promotion name, event title, venue name, and city/country location.
Identify the main event and co-main event matchups, with weight classes.
Cite the pages you used as markdown links.`

const structurePrompt = `Convert the following MMA event data into JSON matching the schema.
CRITICAL: The "date" field MUST be a full ISO 8601 string in UTC (e.g., "2025-05-15T22:00:00Z").
If a specific time isn't mentioned, use a likely start time (e.g., 22:00 UTC for Europe events, 03:00 UTC for US PPVs).
The "promotion" field MUST be one of: %s.
List fightCard bouts in card order. Mark isMainEvent and isCoMainEvent only when the data says so.

Data:
%s`

// Client implements ports.EventSearcher with a search pass followed by a
// structured-output pass.
type Client struct {
	client      *openai.Client
	model       string
	searchModel string
	months      int
	now         func() time.Time
	logger      *slog.Logger
}

// NewClient creates a new OpenAI event search client.
func NewClient(cfg config.LLMConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	model := defaultModel
	if cfg.Model != "" {
		model = cfg.Model
	}
	searchModel := defaultSearchModel
	if cfg.SearchModel != "" {
		searchModel = cfg.SearchModel
	}
	months := defaultMonths
	if cfg.Months > 0 {
		months = cfg.Months
	}

	return &Client{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       model,
		searchModel: searchModel,
		months:      months,
		now:         time.Now,
		logger:      slog.Default(),
	}, nil
}

// SetLogger replaces the client logger.
func (c *Client) SetLogger(logger *slog.Logger) {
	c.logger = logger
}

// SearchEvents finds upcoming events and their grounding citations.
func (c *Client) SearchEvents(ctx context.Context) (*ports.SearchResult, error) {
	promotions := strings.Join(entities.PromotionNames(), ", ")

	prompt := fmt.Sprintf(searchPrompt, c.now().UTC().Format("January 2, 2006"), promotions, c.months)
	searchResp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.searchModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("calling OpenAI search: %w", err)
	}
	if len(searchResp.Choices) == 0 {
		return nil, errors.New("no search response from OpenAI")
	}

	contextText := searchResp.Choices[0].Message.Content
	citations := extractCitations(contextText)

	structResp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(structurePrompt, promotions, contextText),
			},
		},
		Temperature: 0.1,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "fight_events",
				Schema: eventSchema(),
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("calling OpenAI: %w", err)
	}
	if len(structResp.Choices) == 0 {
		return nil, errors.New("no response from OpenAI")
	}

	events, err := c.parseEvents(structResp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	return &ports.SearchResult{
		Events:    events,
		Citations: citations,
	}, nil
}

// rawEvent is the JSON structure for generated events.
type rawEvent struct {
	Promotion string       `json:"promotion"`
	EventName string       `json:"eventName"`
	Date      string       `json:"date"`
	Venue     string       `json:"venue"`
	Location  string       `json:"location"`
	FightCard []rawMatchup `json:"fightCard"`
}

// rawMatchup is the JSON structure for a generated bout.
type rawMatchup struct {
	Fighter1      string `json:"fighter1"`
	Fighter2      string `json:"fighter2"`
	WeightClass   string `json:"weightClass"`
	IsMainEvent   bool   `json:"isMainEvent"`
	IsCoMainEvent bool   `json:"isCoMainEvent"`
}

// rawEventList is the top-level structured output.
type rawEventList struct {
	Events []rawEvent `json:"events"`
}

// parseEvents decodes the structured output. A bare array is also accepted.
// Events with an unparseable date are dropped.
func (c *Client) parseEvents(content string) ([]entities.FightEvent, error) {
	content = cleanJSONResponse(content)

	var rawEvents []rawEvent
	if strings.HasPrefix(content, "[") {
		if err := json.Unmarshal([]byte(content), &rawEvents); err != nil {
			return nil, fmt.Errorf("%w: parsing events JSON: %v (response: %s)", services.ErrParseFailure, err, content)
		}
	} else {
		var list rawEventList
		if err := json.Unmarshal([]byte(content), &list); err != nil {
			return nil, fmt.Errorf("%w: parsing events JSON: %v (response: %s)", services.ErrParseFailure, err, content)
		}
		rawEvents = list.Events
	}

	events := make([]entities.FightEvent, 0, len(rawEvents))
	for _, re := range rawEvents {
		date, err := services.ParseInstant(strings.TrimSpace(re.Date))
		if err != nil {
			c.logger.Warn("dropping event with invalid date", "event", re.EventName, "err", err)
			continue
		}
		events = append(events, entities.FightEvent{
			Promotion: normalizePromotion(re.Promotion),
			EventName: re.EventName,
			Date:      date,
			Venue:     re.Venue,
			Location:  re.Location,
			FightCard: matchupsFromRaw(re.FightCard),
		})
	}

	return events, nil
}

// normalizePromotion maps aliases onto known promotions. Unknown names are
// passed through so the caller can reject them.
func normalizePromotion(name string) entities.Promotion {
	p, err := entities.ParsePromotion(name)
	if err != nil {
		return entities.Promotion(name)
	}
	return p
}

func matchupsFromRaw(raw []rawMatchup) []entities.Matchup {
	matchups := make([]entities.Matchup, 0, len(raw))
	for _, rm := range raw {
		matchups = append(matchups, entities.Matchup{
			Fighter1:      rm.Fighter1,
			Fighter2:      rm.Fighter2,
			WeightClass:   rm.WeightClass,
			IsMainEvent:   rm.IsMainEvent,
			IsCoMainEvent: rm.IsCoMainEvent,
		})
	}
	return matchups
}

// cleanJSONResponse removes markdown code blocks if present.
func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}

	return strings.TrimSpace(content)
}
