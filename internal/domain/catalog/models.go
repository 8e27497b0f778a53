package catalog

import "strings"

// ModeKind tags the variant of a game mode.
type ModeKind string

const (
	KindWordle  ModeKind = "WORDLE"
	KindAudio   ModeKind = "AUDIO"
	KindBlurred ModeKind = "BLURRED"
)

// IsValid reports whether the kind is one of the supported variants.
func (k ModeKind) IsValid() bool {
	switch k {
	case KindWordle, KindAudio, KindBlurred:
		return true
	default:
		return false
	}
}

// PathSegment is the URL segment used for the mode under a topic page.
func (k ModeKind) PathSegment() string {
	return strings.ToLower(string(k))
}

// ParseModeKind accepts either the tag or its path segment.
func ParseModeKind(raw string) (ModeKind, bool) {
	k := ModeKind(strings.ToUpper(strings.TrimSpace(raw)))
	return k, k.IsValid()
}

// ValueType tags how an attribute value compares against the secret answer.
type ValueType string

const (
	ValueString ValueType = "string"
	ValueNumber ValueType = "number"
)

// IsValid reports whether the value type is known.
func (v ValueType) IsValid() bool {
	return v == ValueString || v == ValueNumber
}

// Topic is a themed collection of guessable answers.
type Topic struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Slug          string `json:"slug"`
	Description   string `json:"description"`
	TitleImageURL string `json:"titleImageUrl,omitempty"`
	IconURL       string `json:"iconUrl,omitempty"`
	BannerURL     string `json:"bannerUrl,omitempty"`
}

// Mode is one game variant inside a topic.
type Mode struct {
	ID            int64    `json:"id"`
	TopicID       int64    `json:"topicId"`
	Title         string   `json:"title"`
	Description   string   `json:"description,omitempty"`
	Kind          ModeKind `json:"kind"`
	AnswerTypes   []string `json:"answerTypes"`
	Categories    []string `json:"categories"`
	IconURL       string   `json:"iconUrl,omitempty"`
	BackgroundURL string   `json:"backgroundUrl,omitempty"`
}

// Accepts reports whether answers of the given type may be guessed in this mode.
// A mode without type tags accepts every answer.
func (m Mode) Accepts(answerType string) bool {
	if len(m.AnswerTypes) == 0 {
		return true
	}
	for _, t := range m.AnswerTypes {
		if t == answerType {
			return true
		}
	}
	return false
}

// AttributeValue is one named attribute of an answer.
type AttributeValue struct {
	Name  string    `json:"name"`
	Type  ValueType `json:"type"`
	Value string    `json:"value"`
}

// Answer is one guessable entity.
type Answer struct {
	ID         int64            `json:"id"`
	Name       string           `json:"name"`
	IconURL    string           `json:"iconUrl,omitempty"`
	AnswerType string           `json:"answerType"`
	Attributes []AttributeValue `json:"attributes,omitempty"`
}

// ModePath builds the navigable path of a mode under its topic.
func ModePath(slug string, mode Mode) string {
	return "/g/" + slug + "/" + mode.Kind.PathSegment()
}

// ModeByPath finds the mode whose path segment matches segment.
// An empty segment resolves to the first mode.
func ModeByPath(modes []Mode, segment string) (Mode, bool) {
	if len(modes) == 0 {
		return Mode{}, false
	}
	if strings.TrimSpace(segment) == "" {
		return modes[0], true
	}
	for _, m := range modes {
		if strings.EqualFold(m.Kind.PathSegment(), strings.TrimSpace(segment)) {
			return m, true
		}
	}
	return Mode{}, false
}

// NextMode returns the mode following current in display order.
func NextMode(modes []Mode, currentID int64) (Mode, bool) {
	for i, m := range modes {
		if m.ID == currentID && i+1 < len(modes) {
			return modes[i+1], true
		}
	}
	return Mode{}, false
}
