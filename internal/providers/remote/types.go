package remote

import "encoding/json"

type baseResponse struct {
	Code string `json:"code"`
	Desc string `json:"desc"`
}

// enveloped is implemented by every response body; all replies carry a base.
type enveloped interface {
	envelope() *baseResponse
}

type wireEnvelope struct {
	Base *baseResponse `json:"base"`
}

func (e *wireEnvelope) envelope() *baseResponse { return e.Base }

type slugRequest struct {
	Slug string `json:"slug"`
}

type topicIDRequest struct {
	TopicID int64 `json:"topic_id,string"`
}

type modeIDRequest struct {
	ModeID int64 `json:"mode_id,string"`
}

type dailyGameRequest struct {
	DailyGameID string `json:"daily_game_id"`
}

type attemptRequest struct {
	DailyGameID string `json:"daily_game_id"`
	AnswerID    int64  `json:"answer_id,string"`
}

type topicPayload struct {
	ID            json.Number `json:"id"`
	Title         string      `json:"title"`
	Slug          string      `json:"slug"`
	Description   string      `json:"description"`
	TitleImageURL string      `json:"title_image_url"`
	IconURL       string      `json:"icon_url"`
	BannerURL     string      `json:"banner_url"`
}

type topicResponse struct {
	wireEnvelope
	Topic *topicPayload `json:"topic"`
}

type modePayload struct {
	ID            json.Number `json:"id"`
	TopicID       json.Number `json:"topic_id"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	Type          string      `json:"type"`
	AnswerTypes   []string    `json:"answer_types"`
	Categories    []string    `json:"categories"`
	IconURL       string      `json:"icon_url"`
	BackgroundURL string      `json:"background_url"`
}

type modesResponse struct {
	wireEnvelope
	Modes []modePayload `json:"modes"`
}

type attributePayload struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

type answerPayload struct {
	ID         json.Number        `json:"id"`
	Name       string             `json:"name"`
	IconURL    string             `json:"icon_url"`
	Type       string             `json:"type"`
	Categories []attributePayload `json:"answer_categories"`
}

type answersResponse struct {
	wireEnvelope
	DetailAnswers []answerPayload `json:"detail_answers"`
}

type dailyGamePayload struct {
	ID     string      `json:"id"`
	ModeID json.Number `json:"mode_id"`
	Date   string      `json:"date"`
}

type dailyGameResponse struct {
	wireEnvelope
	DailyGame *dailyGamePayload `json:"daily_game"`
	Clues     []cluePayload     `json:"clues"`
}

type scoredCategoryPayload struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Correctness *int   `json:"correctness"`
	Value       string `json:"value"`
}

type attemptPayload struct {
	Answer           answerPayload           `json:"answer"`
	AnswerCategories []scoredCategoryPayload `json:"answer_categories"`
	IsCorrect        bool                    `json:"is_correct"`
}

type cluePayload struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

type attemptResponse struct {
	wireEnvelope
	AttemptDetailAnswer *attemptPayload `json:"attempt_detail_answer"`
	Clues               []cluePayload   `json:"clues"`
}

type historyResponse struct {
	wireEnvelope
	Attempts []attemptPayload `json:"attempts"`
}
