package bot

const (
	// Score priorities (from highest to lowest)
	HARD_WIN_LINE        = 10000
	HARD_LOST_LINE       = -10000
	HARD_BLOCK_LINE      = -5000 // opponent needs one more cell
	HARD_NEAR_WIN_LINE   = 4000
	HARD_OPP_TWO_LINE    = -2000
	HARD_TWO_LINE        = 1500
	HARD_ONE_LINE        = 500
	HARD_OPP_ONE_LINE    = -400
	HARD_WIN_SQUARE      = 20000
	HARD_LOST_SQUARE     = -20000
	HARD_BLOCK_SQUARE    = -8000
	HARD_NEAR_WIN_SQUARE = 6000
	HARD_OPP_TWO_SQUARE  = -3000
	HARD_TWO_SQUARE      = 2000

	HARD_CORNER          = 1000
	HARD_OPP_CORNER      = -1200
	HARD_THREAT_PLACING  = 15000
	HARD_THREAT_MOVEMENT = 10000 // pieces can still be relocated to cover
)

// Hard scores with large weights and a threat penalty, orders threat
// cells first and prunes with alpha-beta.
func Hard() Profile {
	return Profile{
		Name: "hard",
		Evaluator: &PatternEvaluator{
			Lines: Weights{
				{Own: 4}: HARD_WIN_LINE,
				{Opp: 4}: HARD_LOST_LINE,
				{Opp: 3}: HARD_BLOCK_LINE,
				{Own: 3}: HARD_NEAR_WIN_LINE,
				{Opp: 2}: HARD_OPP_TWO_LINE,
				{Own: 2}: HARD_TWO_LINE,
				{Own: 1}: HARD_ONE_LINE,
				{Opp: 1}: HARD_OPP_ONE_LINE,
			},
			Squares: Weights{
				{Own: 4}: HARD_WIN_SQUARE,
				{Opp: 4}: HARD_LOST_SQUARE,
				{Opp: 3}: HARD_BLOCK_SQUARE,
				{Own: 3}: HARD_NEAR_WIN_SQUARE,
				{Opp: 2}: HARD_OPP_TWO_SQUARE,
				{Own: 2}: HARD_TWO_SQUARE,
			},
			CornerOwn:      HARD_CORNER,
			CornerOpponent: HARD_OPP_CORNER,
			Threats: &ThreatPenalty{
				Placement: HARD_THREAT_PLACING,
				Movement:  HARD_THREAT_MOVEMENT,
			},
		},
		Pruning:        true,
		ThreatOrdering: true,
	}
}
