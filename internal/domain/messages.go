package domain

type ClientMessage struct {
	Type        string `json:"type"`
	Difficulty  string `json:"difficulty,omitempty"`
	HumanPlayer int    `json:"humanPlayer,omitempty"`
	Action      Action `json:"action"`
}

type ServerMessage struct {
	Type          string     `json:"type"`
	Message       string     `json:"message,omitempty"`
	GameID        string     `json:"gameId,omitempty"`
	YourPlayer    int        `json:"yourPlayer,omitempty"`
	CurrentPlayer int        `json:"currentPlayer,omitempty"`
	Board         *BoardView `json:"board,omitempty"`
	Status        GameStatus `json:"status,omitempty"`
	Winner        int        `json:"winner,omitempty"`
	BotAction     *Action    `json:"botAction,omitempty"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
