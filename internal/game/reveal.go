package game

var (
	blurSteps       = []float64{15, 13, 10, 8, 6, 4, 2, 1, 0.5, 0}
	saturationSteps = []float64{0, 10, 20, 30, 45, 60, 75, 85, 95, 100}
)

const (
	minBrightness  = 60.0
	maxBrightness  = 100.0
	revealAttempts = 10
)

// Reveal is how much of a blurred image clue to show after a number of attempts.
type Reveal struct {
	Blur       float64 `json:"blur"`
	Saturation float64 `json:"saturation"`
	Brightness float64 `json:"brightness"`
}

// RevealFor returns the image filter after attempts guesses. A won game is
// fully revealed.
func RevealFor(attempts int, won bool) Reveal {
	if won {
		attempts = revealAttempts
	}
	if attempts < 0 {
		attempts = 0
	}
	step := min(attempts, len(blurSteps)-1)
	brightness := min(maxBrightness, minBrightness+float64(attempts)/revealAttempts*(maxBrightness-minBrightness))
	return Reveal{
		Blur:       blurSteps[step],
		Saturation: saturationSteps[step],
		Brightness: brightness,
	}
}
