package entity

// Player is a persistent profile with cumulative match counters. The
// counters are bumped by the gameplay service as shots resolve; everything
// else is profile data.
type Player struct {
	ID              string `json:"id"`
	ScreenName      string `json:"screen_name,omitempty"`
	ColorPreference string `json:"color_preference,omitempty"`

	IsAI     bool   `json:"is_ai,omitempty"`
	Strategy string `json:"strategy,omitempty"`

	Wins      int `json:"wins"`
	Losses    int `json:"losses"`
	ShipsSunk int `json:"ships_sunk"`
}
