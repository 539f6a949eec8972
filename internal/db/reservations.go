package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/courtline/courtline/internal/reservation"
)

// ErrNoMatchingReservation is returned when a cancellation or status
// update finds no pending row for the given uid.
var ErrNoMatchingReservation = errors.New("no matching reservation")

// InsertReservation stores a new pending reservation and returns its
// server-assigned uid. reserveOn is the date the dispatcher should act on
// the request, in the service date layout.
func (db *DB) InsertReservation(ctx context.Context, d reservation.Draft, reserveOn string) (int64, error) {
	prefs, err := json.Marshal(d.Preferences)
	if err != nil {
		return 0, fmt.Errorf("error encoding preferences: %w", err)
	}
	res, err := db.ExecContext(ctx,
		`INSERT INTO reservations (date, site, preferences, priority, reserve_on) VALUES (?, ?, ?, ?, ?)`,
		d.Date, d.Site, string(prefs), d.Priority, reserveOn,
	)
	if err != nil {
		return 0, fmt.Errorf("error inserting reservation: %w", err)
	}
	uid, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("error reading insert id: %w", err)
	}
	return uid, nil
}

// ListReservations returns the total record count plus one 0-based page of
// records, newest first.
func (db *DB) ListReservations(ctx context.Context, page, limit int) (int, []reservation.Record, error) {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(uid) FROM reservations`).Scan(&count); err != nil {
		return 0, nil, fmt.Errorf("error counting reservations: %w", err)
	}

	rows, err := db.QueryContext(ctx,
		`SELECT uid, date, site, preferences, priority, status_code, msg, court_time
		 FROM reservations ORDER BY created_at DESC, uid DESC LIMIT ? OFFSET ?`,
		limit, page*limit,
	)
	if err != nil {
		return 0, nil, fmt.Errorf("error listing reservations: %w", err)
	}
	defer rows.Close()

	// Capacity grows with the rows actually returned, never from the
	// caller-supplied limit. An empty page stays a non-nil slice so it
	// serializes as [].
	records := []reservation.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return 0, nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return 0, nil, fmt.Errorf("error iterating reservations: %w", err)
	}
	return count, records, nil
}

// CancelPending deletes the reservation with the given uid, but only while
// it is still pending. Terminal records cannot be removed.
func (db *DB) CancelPending(ctx context.Context, uid int64) error {
	res, err := db.ExecContext(ctx,
		`DELETE FROM reservations WHERE uid = ? AND status_code = ?`,
		uid, int(reservation.Pending),
	)
	if err != nil {
		return fmt.Errorf("error cancelling reservation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading rows affected: %w", err)
	}
	if n == 0 {
		return ErrNoMatchingReservation
	}
	return nil
}

// UpdateStatus writes a resolution status back onto a reservation.
func (db *DB) UpdateStatus(ctx context.Context, uid int64, status reservation.Status) error {
	courtTime := status.CourtTime
	if courtTime == nil {
		courtTime = map[string]string{}
	}
	ct, err := json.Marshal(courtTime)
	if err != nil {
		return fmt.Errorf("error encoding court times: %w", err)
	}
	res, err := db.ExecContext(ctx,
		`UPDATE reservations SET status_code = ?, msg = ?, court_time = ? WHERE uid = ?`,
		int(status.Code), status.Msg, string(ct), uid,
	)
	if err != nil {
		return fmt.Errorf("error updating reservation status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading rows affected: %w", err)
	}
	if n == 0 {
		return ErrNoMatchingReservation
	}
	return nil
}

// DuePending returns pending reservations whose booking window opens on
// reserveOn, highest priority (lowest value) first.
func (db *DB) DuePending(ctx context.Context, reserveOn string) ([]reservation.Record, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT uid, date, site, preferences, priority, status_code, msg, court_time
		 FROM reservations WHERE status_code = ? AND reserve_on = ? ORDER BY priority ASC, uid ASC`,
		int(reservation.Pending), reserveOn,
	)
	if err != nil {
		return nil, fmt.Errorf("error selecting due reservations: %w", err)
	}
	defer rows.Close()

	var records []reservation.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating due reservations: %w", err)
	}
	return records, nil
}

func scanRecord(rows *sql.Rows) (reservation.Record, error) {
	var (
		rec        reservation.Record
		prefs      string
		statusCode int
		courtTime  string
	)
	if err := rows.Scan(&rec.Uid, &rec.Reservation.Date, &rec.Reservation.Site, &prefs,
		&rec.Reservation.Priority, &statusCode, &rec.Status.Msg, &courtTime); err != nil {
		return reservation.Record{}, fmt.Errorf("error scanning reservation: %w", err)
	}
	if err := json.Unmarshal([]byte(prefs), &rec.Reservation.Preferences); err != nil {
		return reservation.Record{}, fmt.Errorf("error decoding preferences: %w", err)
	}
	if err := json.Unmarshal([]byte(courtTime), &rec.Status.CourtTime); err != nil {
		return reservation.Record{}, fmt.Errorf("error decoding court times: %w", err)
	}
	rec.Status.Code = reservation.StatusCode(statusCode)
	return rec, nil
}
