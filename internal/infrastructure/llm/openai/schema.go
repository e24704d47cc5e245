package openai

import (
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/ersonp/fightnight/internal/domain/entities"
)

// eventSchema describes the structured-output shape: {"events": [FightEvent...]}.
func eventSchema() *jsonschema.Definition {
	matchup := jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"fighter1":      {Type: jsonschema.String},
			"fighter2":      {Type: jsonschema.String},
			"weightClass":   {Type: jsonschema.String},
			"isMainEvent":   {Type: jsonschema.Boolean},
			"isCoMainEvent": {Type: jsonschema.Boolean},
		},
		Required: []string{"fighter1", "fighter2", "weightClass", "isMainEvent"},
	}

	event := jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"promotion": {Type: jsonschema.String, Enum: entities.PromotionNames()},
			"eventName": {Type: jsonschema.String},
			"date":      {Type: jsonschema.String, Description: "ISO 8601 UTC string"},
			"venue":     {Type: jsonschema.String},
			"location":  {Type: jsonschema.String},
			"fightCard": {Type: jsonschema.Array, Items: &matchup},
		},
		Required: []string{"promotion", "eventName", "date", "venue", "location", "fightCard"},
	}

	return &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"events": {Type: jsonschema.Array, Items: &event},
		},
		Required: []string{"events"},
	}
}
