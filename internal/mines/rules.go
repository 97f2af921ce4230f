package mines

const (
	RevealPoints = 1
	EventPoints  = 10

	SpecialModePreparationDuration = 5
	XrayActiveDuration             = 8
	SuperheroActiveDuration        = 8
	FunnyBoomPlayDuration          = 8
	TileScorePulseDuration         = 2

	SpecialTriggerProbability = 0.36
	ClownDensity              = 0.18
	MinClownCount             = 6

	TopScoresLimit = 10
)

// FinalScore rewards points and, on top of that, a board-sized time bonus
// that shrinks by 5 every elapsed second.
func FinalScore(points, elapsedSeconds int, dimensions Dimensions) int {
	boardBonus := dimensions.CellCount() * 3
	timeBonus := max(0, boardBonus-elapsedSeconds*5)
	return max(0, points*100+timeBonus)
}
