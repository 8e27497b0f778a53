package remote

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/makeadle/dle-service/internal/domain/catalog"
	"github.com/makeadle/dle-service/internal/domain/dailygame"
	"github.com/makeadle/dle-service/internal/providers"
)

func malformed(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), providers.ErrMalformedResponse)
}

func parseID(raw json.Number, field string) (int64, error) {
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw.String(), 10, 64)
	if err != nil {
		return 0, malformed("%s %q is not an integer", field, raw)
	}
	return id, nil
}

func parseValueType(raw string) (catalog.ValueType, error) {
	vt := catalog.ValueType(strings.ToLower(strings.TrimSpace(raw)))
	if !vt.IsValid() {
		return "", malformed("unknown value type %q", raw)
	}
	return vt, nil
}

func mapTopic(p *topicPayload) (catalog.Topic, error) {
	if p == nil {
		return catalog.Topic{}, providers.ErrNotFound
	}
	id, err := parseID(p.ID, "topic id")
	if err != nil {
		return catalog.Topic{}, err
	}
	return catalog.Topic{
		ID:            id,
		Title:         p.Title,
		Slug:          p.Slug,
		Description:   p.Description,
		TitleImageURL: p.TitleImageURL,
		IconURL:       p.IconURL,
		BannerURL:     p.BannerURL,
	}, nil
}

func mapModes(payload []modePayload) ([]catalog.Mode, error) {
	modes := make([]catalog.Mode, 0, len(payload))
	for _, p := range payload {
		kind, ok := catalog.ParseModeKind(p.Type)
		if !ok {
			return nil, malformed("mode %s has unknown type %q", p.ID, p.Type)
		}
		id, err := parseID(p.ID, "mode id")
		if err != nil {
			return nil, err
		}
		topicID, err := parseID(p.TopicID, "topic id")
		if err != nil {
			return nil, err
		}
		modes = append(modes, catalog.Mode{
			ID:            id,
			TopicID:       topicID,
			Title:         p.Title,
			Description:   p.Description,
			Kind:          kind,
			AnswerTypes:   append([]string(nil), p.AnswerTypes...),
			Categories:    append([]string(nil), p.Categories...),
			IconURL:       p.IconURL,
			BackgroundURL: p.BackgroundURL,
		})
	}
	return modes, nil
}

func mapAnswer(p answerPayload) (catalog.Answer, error) {
	id, err := parseID(p.ID, "answer id")
	if err != nil {
		return catalog.Answer{}, err
	}
	attrs := make([]catalog.AttributeValue, 0, len(p.Categories))
	for _, a := range p.Categories {
		vt, err := parseValueType(a.Type)
		if err != nil {
			return catalog.Answer{}, err
		}
		attrs = append(attrs, catalog.AttributeValue{Name: a.Name, Type: vt, Value: a.Value})
	}
	return catalog.Answer{
		ID:         id,
		Name:       p.Name,
		IconURL:    p.IconURL,
		AnswerType: p.Type,
		Attributes: attrs,
	}, nil
}

func mapAnswers(payload []answerPayload) ([]catalog.Answer, error) {
	answers := make([]catalog.Answer, 0, len(payload))
	for _, p := range payload {
		a, err := mapAnswer(p)
		if err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, nil
}

func mapDailyGame(p *dailyGamePayload, clues []cluePayload) (dailygame.DailyGame, error) {
	if p == nil || p.ID == "" {
		return dailygame.DailyGame{}, providers.ErrNotFound
	}
	modeID, err := parseID(p.ModeID, "mode id")
	if err != nil {
		return dailygame.DailyGame{}, err
	}
	mapped, err := mapClues(clues)
	if err != nil {
		return dailygame.DailyGame{}, err
	}
	return dailygame.DailyGame{ID: p.ID, ModeID: modeID, Date: p.Date, Clues: mapped}, nil
}

// mapAttempt validates every scored category: the value type must be known and
// the correctness code must be present and inside the closed alphabet.
func mapAttempt(p *attemptPayload) (dailygame.Attempt, error) {
	if p == nil {
		return dailygame.Attempt{}, malformed("attempt missing")
	}
	answer, err := mapAnswer(p.Answer)
	if err != nil {
		return dailygame.Attempt{}, err
	}
	cats := make([]dailygame.ScoredCategory, 0, len(p.AnswerCategories))
	for _, c := range p.AnswerCategories {
		vt, err := parseValueType(c.Type)
		if err != nil {
			return dailygame.Attempt{}, err
		}
		if c.Correctness == nil {
			return dailygame.Attempt{}, malformed("category %q missing correctness", c.Name)
		}
		if !dailygame.ValidCode(*c.Correctness) {
			return dailygame.Attempt{}, malformed("category %q correctness %d out of range", c.Name, *c.Correctness)
		}
		cats = append(cats, dailygame.ScoredCategory{
			Name:        c.Name,
			Type:        vt,
			Correctness: *c.Correctness,
			Value:       c.Value,
		})
	}
	return dailygame.Attempt{Answer: answer, Categories: cats, IsCorrect: p.IsCorrect}, nil
}

func mapClues(payload []cluePayload) ([]dailygame.Clue, error) {
	if len(payload) == 0 {
		return nil, nil
	}
	clues := make([]dailygame.Clue, 0, len(payload))
	for _, c := range payload {
		ct := dailygame.ClueType(strings.ToLower(c.Type))
		switch ct {
		case dailygame.ClueAudio, dailygame.ClueImage, dailygame.ClueText:
		default:
			return nil, malformed("unknown clue type %q", c.Type)
		}
		clues = append(clues, dailygame.Clue{Name: c.Name, Type: ct, Value: c.Value})
	}
	return clues, nil
}
