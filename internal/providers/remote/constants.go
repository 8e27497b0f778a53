package remote

import "time"

const (
	defaultBaseURL     = "http://localhost:31500"
	defaultHTTPTimeout = 10 * time.Second
	successCode        = "00"
	maxErrorBody       = 512
)

// Connect service paths exposed by the scorer.
const (
	topicService     = "janus.plato.PlatoTopicService"
	modeService      = "janus.plato.PlatoModeService"
	answerService    = "janus.plato.PlatoAnswerService"
	dailyGameService = "janus.plato.PlatoDailyGameService"
)
