package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

var ErrPlayerNotFound = errors.New("player not found")

type PlayerRepository interface {
	Save(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
	UpdatePreferences(ctx context.Context, id, screenName, colorPreference string) error

	AddShipSunk(ctx context.Context, id string) error
	RecordResult(ctx context.Context, winnerID, loserID string) error
}

type dbPlayer struct {
	conn *sql.DB
}

func NewPlayerRepository(conn *sql.DB) PlayerRepository {
	return &dbPlayer{
		conn: conn,
	}
}

func (that *dbPlayer) Save(ctx context.Context, player *entity.Player) error {
	query := `INSERT INTO players (id, screen_name, color_preference, is_ai, strategy, wins, losses, ships_sunk)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			screen_name = excluded.screen_name,
			color_preference = excluded.color_preference,
			is_ai = excluded.is_ai,
			strategy = excluded.strategy`

	_, err := that.conn.ExecContext(ctx, query,
		player.ID, player.ScreenName, player.ColorPreference, player.IsAI, player.Strategy,
		player.Wins, player.Losses, player.ShipsSunk)
	if err != nil {
		return fmt.Errorf("can't save player: %w", err)
	}

	return nil
}

func (that *dbPlayer) GetByID(ctx context.Context, id string) (*entity.Player, error) {
	query := `SELECT id, screen_name, color_preference, is_ai, strategy, wins, losses, ships_sunk
		FROM players WHERE id = ?`

	var player entity.Player

	err := that.conn.QueryRowContext(ctx, query, id).Scan(
		&player.ID, &player.ScreenName, &player.ColorPreference, &player.IsAI, &player.Strategy,
		&player.Wins, &player.Losses, &player.ShipsSunk)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlayerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't find player: %w", err)
	}

	return &player, nil
}

func (that *dbPlayer) UpdatePreferences(ctx context.Context, id, screenName, colorPreference string) error {
	query := `UPDATE players SET screen_name = ?, color_preference = ? WHERE id = ?`

	result, err := that.conn.ExecContext(ctx, query, screenName, colorPreference, id)
	if err != nil {
		return fmt.Errorf("can't update player preferences: %w", err)
	}

	return checkAffected(result)
}

// AddShipSunk bumps the shooter's sunk-ships counter. The increment is a
// single statement, so concurrent games never lose updates.
func (that *dbPlayer) AddShipSunk(ctx context.Context, id string) error {
	query := `UPDATE players SET ships_sunk = ships_sunk + 1 WHERE id = ?`

	result, err := that.conn.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("can't increment ships sunk: %w", err)
	}

	return checkAffected(result)
}

// RecordResult applies a finished game to both profiles in one transaction,
// so a win is never recorded without the matching loss.
func (that *dbPlayer) RecordResult(ctx context.Context, winnerID, loserID string) error {
	tx, err := that.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("can't begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint: errcheck // no-op after commit

	result, err := tx.ExecContext(ctx, `UPDATE players SET wins = wins + 1 WHERE id = ?`, winnerID)
	if err != nil {
		return fmt.Errorf("can't increment wins: %w", err)
	}
	if err = checkAffected(result); err != nil {
		return err
	}

	result, err = tx.ExecContext(ctx, `UPDATE players SET losses = losses + 1 WHERE id = ?`, loserID)
	if err != nil {
		return fmt.Errorf("can't increment losses: %w", err)
	}
	if err = checkAffected(result); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("can't commit result: %w", err)
	}

	return nil
}

func checkAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("can't check affected rows: %w", err)
	}

	if affected == 0 {
		return ErrPlayerNotFound
	}

	return nil
}
