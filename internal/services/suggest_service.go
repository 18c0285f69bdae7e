package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/go-openapi/inflect"
	"go.uber.org/zap"

	"classforge/compiler/gen"
	"classforge/compiler/load"
	"classforge/internal/llm"
)

// SuggestService proposes relation types and attribute lists for the
// canvas. With a completion service configured it asks there first; any
// failure falls back to the local heuristics, so suggestions always
// succeed.
type SuggestService struct {
	llm *llm.Client
	log *zap.Logger
}

func NewSuggestService(client *llm.Client, log *zap.Logger) *SuggestService {
	if log == nil {
		log = zap.NewNop()
	}
	return &SuggestService{llm: client, log: log}
}

// RelationSuggestion is the answer to a relation query.
type RelationSuggestion struct {
	Type          string `json:"type"`
	Bidirectional bool   `json:"bidirectional"`
}

const relationSystemPrompt = `You classify UML relations for a Java backend generator.
Answer with JSON only: {"type": "<ONE_TO_ONE|ONE_TO_MANY|MANY_TO_ONE|MANY_TO_MANY>", "bidirectional": <bool>}.`

// SuggestRelation proposes a relation type between two classes. An
// explicit qualitative kind takes precedence over everything else.
func (s *SuggestService) SuggestRelation(ctx context.Context, source, target, kind string) *RelationSuggestion {
	if rel, ok := load.KindRelation(kind); ok {
		return &RelationSuggestion{Type: rel}
	}

	if s.llm.Configured() {
		prompt := "Relation from class " + source + " to class " + target + "."
		if answer, err := s.llm.Complete(ctx, relationSystemPrompt, prompt); err == nil {
			if suggestion := parseRelationAnswer(answer); suggestion != nil {
				return suggestion
			}
			s.log.Warn("unusable relation completion", zap.String("answer", answer))
		} else {
			s.log.Warn("relation completion failed", zap.Error(err))
		}
	}
	return localRelation(source, target)
}

func parseRelationAnswer(answer string) *RelationSuggestion {
	answer = strings.TrimSpace(answer)
	answer = strings.TrimPrefix(answer, "```json")
	answer = strings.TrimPrefix(answer, "```")
	answer = strings.TrimSuffix(answer, "```")

	var suggestion RelationSuggestion
	if err := json.Unmarshal([]byte(answer), &suggestion); err != nil {
		return nil
	}
	rel := gen.ParseRel(suggestion.Type)
	if rel == gen.Unk {
		return nil
	}
	suggestion.Type = rel.String()
	return &suggestion
}

// localRelation reads multiplicity off the class names: a plural name
// stands for the many side.
func localRelation(source, target string) *RelationSuggestion {
	srcMany := plural(source)
	dstMany := plural(target)
	switch {
	case srcMany && dstMany:
		return &RelationSuggestion{Type: "MANY_TO_MANY"}
	case srcMany:
		return &RelationSuggestion{Type: "MANY_TO_ONE"}
	case dstMany:
		return &RelationSuggestion{Type: "ONE_TO_MANY"}
	default:
		// Plain association between two singular classes.
		return &RelationSuggestion{Type: "ONE_TO_MANY"}
	}
}

func plural(name string) bool {
	name = strings.TrimSpace(strings.ToLower(name))
	return name != "" && inflect.Singularize(name) != name
}

const attributeSystemPrompt = `You propose attributes for a class in a Java backend generator.
Answer with one attribute per line in the form "name: Type" where Type is one of
String, Integer, Long, Double, BigDecimal, Boolean, Date, DateTime, UUID. No prose.`

// SuggestAttributes proposes attribute lines for a class name.
func (s *SuggestService) SuggestAttributes(ctx context.Context, name string) []string {
	if s.llm.Configured() {
		if answer, err := s.llm.Complete(ctx, attributeSystemPrompt, "Class: "+name); err == nil {
			if lines := parseAttributeAnswer(answer); len(lines) > 0 {
				return lines
			}
			s.log.Warn("unusable attribute completion", zap.String("answer", answer))
		} else {
			s.log.Warn("attribute completion failed", zap.Error(err))
		}
	}
	return localAttributes(name)
}

const maxSuggestedAttributes = 10

func parseAttributeAnswer(answer string) []string {
	var lines []string
	for _, line := range strings.Split(answer, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "-"))
		if line == "" || line == "```" || !strings.Contains(line, ":") {
			continue
		}
		lines = append(lines, line)
		if len(lines) == maxSuggestedAttributes {
			break
		}
	}
	return lines
}

// attributeTable holds starter attributes for common entity names, keyed
// by the singularized lower-case class name.
var attributeTable = map[string][]string{
	"user":     {"username: String", "email: String", "createdAt: DateTime"},
	"customer": {"name: String", "email: String", "phone: String"},
	"author":   {"name: String", "email: String"},
	"product":  {"name: String", "price: BigDecimal", "stock: Integer"},
	"item":     {"name: String", "price: BigDecimal", "quantity: Integer"},
	"book":     {"title: String", "isbn: String", "pages: Integer"},
	"order":    {"orderDate: DateTime", "status: String", "total: BigDecimal"},
	"invoice":  {"number: String", "issuedAt: DateTime", "amount: BigDecimal"},
	"event":    {"title: String", "startsAt: DateTime", "endsAt: DateTime"},
}

func localAttributes(name string) []string {
	key := strings.ToLower(strings.TrimSpace(name))
	if key != "" {
		key = inflect.Singularize(key)
	}
	if lines, ok := attributeTable[key]; ok {
		out := make([]string, len(lines))
		copy(out, lines)
		return out
	}
	return []string{"name: String", "description: String", "createdAt: DateTime"}
}
