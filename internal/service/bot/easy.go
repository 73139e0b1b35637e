package bot

const (
	EASY_WIN_LINE      = 100
	EASY_BLOCK_LINE    = 50 // opponent has three, line still open
	EASY_NEAR_WIN_LINE = 25
	EASY_TWO_LINE      = 10

	EASY_WIN_SQUARE      = 200
	EASY_NEAR_WIN_SQUARE = 50
	EASY_TWO_SQUARE      = 20

	EASY_CORNER = 15
)

// Easy scores with small weights and searches the full tree, corners first.
func Easy() Profile {
	return Profile{
		Name: "easy",
		Evaluator: &PatternEvaluator{
			Lines: Weights{
				{Own: 4}: EASY_WIN_LINE,
				{Opp: 3}: EASY_BLOCK_LINE,
				{Own: 3}: EASY_NEAR_WIN_LINE,
				{Own: 2}: EASY_TWO_LINE,
			},
			Squares: Weights{
				{Own: 4}: EASY_WIN_SQUARE,
				{Own: 3}: EASY_NEAR_WIN_SQUARE,
				{Own: 2}: EASY_TWO_SQUARE,
			},
			CornerOwn: EASY_CORNER,
		},
	}
}
