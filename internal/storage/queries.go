package storage

import (
	"database/sql"
	"fmt"

	"github.com/pable/go-shot-metrics/internal/model"
)

// MatchExists returns true if an archive with the given hash is already stored.
func (db *DB) MatchExists(hash string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM matches WHERE hash = ?", hash).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertMatch inserts a match record. Uses INSERT OR REPLACE for idempotency.
func (db *DB) InsertMatch(s model.MatchSummary) error {
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO matches(hash, season, tournament_id, draw_code, source_file, row_count, stored_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ArchiveHash, s.Season, s.TournamentID, s.DrawCode,
		s.SourceFile, s.RowCount, s.StoredAt,
	)
	return err
}

// InsertRows bulk-inserts the rows of one archive in a transaction,
// replacing any previous rows stored under the same hash.
func (db *DB) InsertRows(hash string, rows []model.Row) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM shot_rows WHERE archive_hash = ?", hash); err != nil {
		return fmt.Errorf("clear rows for %s: %w", hash, err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO shot_rows(
			archive_hash, seq,
			season, tournament_id, draw_code,
			set_no, game, point, serve, rally,
			shot_n, hitter_external_id,
			stroke, spin_type, spin_rpm, call,
			shot_start_timestamp, shot_end_timestamp,
			ball_hit_x, ball_hit_y, ball_hit_z,
			ball_bounce_x, ball_bounce_y,
			hitter_x, hitter_y, receiver_x, receiver_y
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range rows {
		_, err = stmt.Exec(
			hash, i,
			r.Season, r.TournamentID, r.DrawCode,
			r.Set, r.Game, r.Point, r.Serve, r.Rally,
			r.ShotN, r.HitterExternalID,
			r.Stroke, r.SpinType, r.SpinRPM, r.Call,
			r.ShotStartTimestamp, r.ShotEndTimestamp,
			r.BallHitX, r.BallHitY, r.BallHitZ,
			r.BallBounceX, r.BallBounceY,
			r.HitterX, r.HitterY, r.ReceiverX, r.ReceiverY,
		)
		if err != nil {
			return fmt.Errorf("insert shot_rows row %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// ListMatches returns all stored matches, newest first.
func (db *DB) ListMatches() ([]model.MatchSummary, error) {
	rows, err := db.conn.Query(`
		SELECT hash, season, tournament_id, draw_code, source_file, row_count, stored_at
		FROM matches ORDER BY stored_at DESC, hash`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MatchSummary
	for rows.Next() {
		var s model.MatchSummary
		if err := rows.Scan(&s.ArchiveHash, &s.Season, &s.TournamentID, &s.DrawCode,
			&s.SourceFile, &s.RowCount, &s.StoredAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetMatchByPrefix returns the stored match whose hash starts with
// prefix, or nil if there is no match.
func (db *DB) GetMatchByPrefix(prefix string) (*model.MatchSummary, error) {
	var s model.MatchSummary
	err := db.conn.QueryRow(`
		SELECT hash, season, tournament_id, draw_code, source_file, row_count, stored_at
		FROM matches WHERE hash LIKE ? || '%' LIMIT 1`, prefix).
		Scan(&s.ArchiveHash, &s.Season, &s.TournamentID, &s.DrawCode,
			&s.SourceFile, &s.RowCount, &s.StoredAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetRows returns the stored rows for one archive in output order.
func (db *DB) GetRows(hash string) ([]model.Row, error) {
	rows, err := db.conn.Query(`
		SELECT season, tournament_id, draw_code,
			set_no, game, point, serve, rally,
			shot_n, hitter_external_id,
			stroke, spin_type, spin_rpm, call,
			shot_start_timestamp, shot_end_timestamp,
			ball_hit_x, ball_hit_y, ball_hit_z,
			ball_bounce_x, ball_bounce_y,
			hitter_x, hitter_y, receiver_x, receiver_y
		FROM shot_rows WHERE archive_hash = ? ORDER BY seq`, hash)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Row
	for rows.Next() {
		var r model.Row
		if err := rows.Scan(
			&r.Season, &r.TournamentID, &r.DrawCode,
			&r.Set, &r.Game, &r.Point, &r.Serve, &r.Rally,
			&r.ShotN, &r.HitterExternalID,
			&r.Stroke, &r.SpinType, &r.SpinRPM, &r.Call,
			&r.ShotStartTimestamp, &r.ShotEndTimestamp,
			&r.BallHitX, &r.BallHitY, &r.BallHitZ,
			&r.BallBounceX, &r.BallBounceY,
			&r.HitterX, &r.HitterY, &r.ReceiverX, &r.ReceiverY,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
