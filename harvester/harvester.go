// ════════════════════════════════════════════════════════════════════════════════════════════════
// Trace Harvester
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Dual-Clock FIFO Verification Environment
// Component: SQLite Run & Event Trace Store
//
// Description:
//   Persists verification runs and their per-tick event traces so verdicts can be
//   audited and replayed offline.  Events insert in batched transactions through a
//   prepared statement; run summaries additionally export as JSON next to the
//   database.
//
// Features:
//   - One row per run with counters, verdict, and JSON-encoded violations
//   - Batched transactional event inserts, flush threshold from constants
//   - Sequence-ordered event replay feeding the harness scoreboard
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package harvester

import (
	"database/sql"
	"os"
	"time"

	"main/constants"
	"main/harness"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sugawarayuuta/sonnet"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	scenario        TEXT    NOT NULL,
	data_bits       INTEGER NOT NULL,
	addr_bits       INTEGER NOT NULL,
	depth           INTEGER NOT NULL,
	write_period    INTEGER NOT NULL,
	read_period     INTEGER NOT NULL,
	seed            INTEGER NOT NULL,
	accepted_pushes INTEGER NOT NULL,
	rejected_pushes INTEGER NOT NULL,
	accepted_pops   INTEGER NOT NULL,
	rejected_pops   INTEGER NOT NULL,
	max_in_flight   INTEGER NOT NULL,
	passed          INTEGER NOT NULL,
	violations      TEXT    NOT NULL,
	recorded_at     INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS events (
	run_id   INTEGER NOT NULL,
	seq      INTEGER NOT NULL,
	t        INTEGER NOT NULL,
	domain   TEXT    NOT NULL,
	req      INTEGER NOT NULL,
	accepted INTEGER NOT NULL,
	data     INTEGER NOT NULL,
	full     INTEGER NOT NULL,
	empty    INTEGER NOT NULL,
	PRIMARY KEY (run_id, seq)
);`

// RunRecord is one persisted run row.
type RunRecord struct {
	ID             int64    `json:"id"`
	Scenario       string   `json:"scenario"`
	DataBits       uint     `json:"data_bits"`
	AddrBits       uint     `json:"addr_bits"`
	Depth          int      `json:"depth"`
	WritePeriod    uint64   `json:"write_period"`
	ReadPeriod     uint64   `json:"read_period"`
	Seed           uint64   `json:"seed"`
	AcceptedPushes uint64   `json:"accepted_pushes"`
	RejectedPushes uint64   `json:"rejected_pushes"`
	AcceptedPops   uint64   `json:"accepted_pops"`
	RejectedPops   uint64   `json:"rejected_pops"`
	MaxInFlight    int      `json:"max_in_flight"`
	Passed         bool     `json:"passed"`
	Violations     []string `json:"violations,omitempty"`
	RecordedAt     int64    `json:"recorded_at"`
}

// Store is an open trace database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the trace database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// PersistRun writes one report plus its captured events and returns the new
// run id.  Events go through a prepared insert inside batched transactions
// so multi-hundred-thousand-tick traces commit in bounded chunks.
func (s *Store) PersistRun(rep *harness.Report) (int64, error) {
	vjson, err := sonnet.Marshal(rep.Violations)
	if err != nil {
		return 0, err
	}

	sc := rep.Scenario
	res, err := s.db.Exec(`INSERT INTO runs
		(scenario, data_bits, addr_bits, depth, write_period, read_period, seed,
		 accepted_pushes, rejected_pushes, accepted_pops, rejected_pops,
		 max_in_flight, passed, violations, recorded_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		sc.Name, sc.DataBits, sc.AddrBits, rep.Depth,
		int64(sc.WritePeriod), int64(sc.ReadPeriod), int64(sc.Seed),
		int64(rep.AcceptedPushes), int64(rep.RejectedPushes),
		int64(rep.AcceptedPops), int64(rep.RejectedPops),
		rep.MaxInFlight, boolInt(rep.Passed), string(vjson),
		time.Now().Unix())
	if err != nil {
		return 0, err
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for base := 0; base < len(rep.Events); base += constants.EventFlushThreshold {
		end := base + constants.EventFlushThreshold
		if end > len(rep.Events) {
			end = len(rep.Events)
		}
		if err := s.insertBatch(runID, rep.Events[base:end]); err != nil {
			return 0, err
		}
	}
	return runID, nil
}

func (s *Store) insertBatch(runID int64, events []harness.Event) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO events
		(run_id, seq, t, domain, req, accepted, data, full, empty)
		VALUES (?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	for i := range events {
		ev := &events[i]
		if _, err := stmt.Exec(runID, int64(ev.Seq), int64(ev.Time),
			string(ev.Domain), boolInt(ev.Req), boolInt(ev.Accepted),
			int64(ev.Data), boolInt(ev.Full), boolInt(ev.Empty)); err != nil {
			stmt.Close()
			tx.Rollback()
			return err
		}
	}
	stmt.Close()
	return tx.Commit()
}

// LoadRun fetches one run row.
func (s *Store) LoadRun(id int64) (*RunRecord, error) {
	var r RunRecord
	var passed int
	var vjson string
	err := s.db.QueryRow(`SELECT id, scenario, data_bits, addr_bits, depth,
		write_period, read_period, seed,
		accepted_pushes, rejected_pushes, accepted_pops, rejected_pops,
		max_in_flight, passed, violations, recorded_at
		FROM runs WHERE id = ?`, id).Scan(
		&r.ID, &r.Scenario, &r.DataBits, &r.AddrBits, &r.Depth,
		&r.WritePeriod, &r.ReadPeriod, &r.Seed,
		&r.AcceptedPushes, &r.RejectedPushes, &r.AcceptedPops, &r.RejectedPops,
		&r.MaxInFlight, &passed, &vjson, &r.RecordedAt)
	if err != nil {
		return nil, err
	}
	r.Passed = passed != 0
	if err := sonnet.Unmarshal([]byte(vjson), &r.Violations); err != nil {
		return nil, err
	}
	return &r, nil
}

// LoadEvents fetches a run's event trace in sequence order, the form
// harness.Replay consumes.
func (s *Store) LoadEvents(runID int64) ([]harness.Event, error) {
	rows, err := s.db.Query(`SELECT seq, t, domain, req, accepted, data, full, empty
		FROM events WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []harness.Event
	for rows.Next() {
		var ev harness.Event
		var domain string
		var req, accepted, full, empty int
		var seq, t, data int64
		if err := rows.Scan(&seq, &t, &domain, &req, &accepted, &data, &full, &empty); err != nil {
			return nil, err
		}
		ev.Seq, ev.Time, ev.Data = uint64(seq), uint64(t), uint64(data)
		if domain != "" {
			ev.Domain = domain[0]
		}
		ev.Req, ev.Accepted = req != 0, accepted != 0
		ev.Full, ev.Empty = full != 0, empty != 0
		events = append(events, ev)
	}
	return events, rows.Err()
}

// WriteSummary exports a report as a standalone JSON file.
func WriteSummary(path string, rep *harness.Report) error {
	data, err := sonnet.Marshal(rep)
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
