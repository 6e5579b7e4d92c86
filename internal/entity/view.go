package entity

// PlayerState is the pull view served to one player. Fleet fields come
// from the caller's own board; targeting fields (attack grid and last-shot
// metadata) come from the opponent's board, because that is where the
// caller's shots land. It is idempotent to read and is the
// resynchronisation path for polling clients.
type PlayerState struct {
	PlayerID           string `json:"player_id"`
	OpponentID         string `json:"opponent_id"`
	PlayerShipStatus   bool   `json:"player_ship_status"`
	OpponentShipStatus bool   `json:"opponent_ship_status"`

	ShipGrid     string `json:"ship_grid"`
	AttackGrid   string `json:"attack_grid"`
	CombinedGrid string `json:"combined_grid"`

	LastHit     int `json:"last_hit"`
	LastSunk    int `json:"last_sunk"`
	LastShotRow int `json:"last_shot_row"`
	LastShotCol int `json:"last_shot_col"`

	Turn   int `json:"turn"`
	Status int `json:"status"`
}

// StateFor builds the pull view for one player.
func (that *Game) StateFor(playerID string) (*PlayerState, error) {
	seat, err := that.Seat(playerID)
	if err != nil {
		return nil, err
	}

	opponentID, err := that.OpponentID(playerID)
	if err != nil {
		return nil, err
	}

	own := that.BoardFor(seat)
	opponent := that.BoardFor(otherSeat(seat))

	return &PlayerState{
		PlayerID:           playerID,
		OpponentID:         opponentID,
		PlayerShipStatus:   that.ConfirmedFor(seat),
		OpponentShipStatus: that.ConfirmedFor(otherSeat(seat)),
		ShipGrid:           own.ShipGrid.String(),
		CombinedGrid:       own.CombinedGrid.String(),
		AttackGrid:         opponent.AttackGrid.String(),
		LastHit:            opponent.LastHit,
		LastSunk:           opponent.LastSunk,
		LastShotRow:        opponent.LastShotRow,
		LastShotCol:        opponent.LastShotCol,
		Turn:               that.Turn,
		Status:             that.Status,
	}, nil
}

// Snapshot is the board-centric push payload broadcast to every subscriber
// of a game after a state change. After a shot the defender's snapshot goes
// out, carrying the freshly marked board.
type Snapshot struct {
	GameID   string `json:"game_id"`
	PlayerID string `json:"player_id"`

	Player1ID         string `json:"player1_id"`
	Player2ID         string `json:"player2_id"`
	Player1ShipStatus bool   `json:"player1_ship_status"`
	Player2ShipStatus bool   `json:"player2_ship_status"`

	ShipGrid     string `json:"ship_grid"`
	AttackGrid   string `json:"attack_grid"`
	CombinedGrid string `json:"combined_grid"`

	LastHit     int `json:"last_hit"`
	LastSunk    int `json:"last_sunk"`
	LastShotRow int `json:"last_shot_row"`
	LastShotCol int `json:"last_shot_col"`

	Turn   int `json:"turn"`
	Status int `json:"status"`
}

// SnapshotFor builds the push payload around one player's board.
func (that *Game) SnapshotFor(playerID string) (*Snapshot, error) {
	seat, err := that.Seat(playerID)
	if err != nil {
		return nil, err
	}

	board := that.BoardFor(seat)

	return &Snapshot{
		GameID:            that.ID,
		PlayerID:          playerID,
		Player1ID:         that.Player1ID,
		Player2ID:         that.Player2ID,
		Player1ShipStatus: that.Player1Confirmed,
		Player2ShipStatus: that.Player2Confirmed,
		ShipGrid:          board.ShipGrid.String(),
		AttackGrid:        board.AttackGrid.String(),
		CombinedGrid:      board.CombinedGrid.String(),
		LastHit:           board.LastHit,
		LastSunk:          board.LastSunk,
		LastShotRow:       board.LastShotRow,
		LastShotCol:       board.LastShotCol,
		Turn:              that.Turn,
		Status:            that.Status,
	}, nil
}
