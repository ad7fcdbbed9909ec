package repository

import (
	"database/sql"
	"encoding/json"

	"shoedex/internal/model"
)

type SyncRepository struct {
	db *sql.DB
}

func NewSyncRepository(db *sql.DB) *SyncRepository {
	return &SyncRepository{db: db}
}

// GetState reads the watermark row. A missing row means no run has completed
// yet and is returned as an empty state, not an error.
func (r *SyncRepository) GetState() (*model.SyncState, error) {
	var s model.SyncState
	var counters []byte

	err := r.db.QueryRow(`
		SELECT last_source_position, last_run_at, counters
		FROM sync_state
		WHERE id = 1
	`).Scan(&s.LastSourcePosition, &s.LastRunAt, &counters)

	if err == sql.ErrNoRows {
		return &model.SyncState{}, nil
	}

	if err != nil {
		return nil, err
	}

	if len(counters) > 0 {
		if err := json.Unmarshal(counters, &s.Counters); err != nil {
			return nil, err
		}
	}

	return &s, nil
}

func (r *SyncRepository) SaveState(s *model.SyncState) error {
	counters, err := json.Marshal(s.Counters)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(`
		INSERT INTO sync_state(id, last_source_position, last_run_at, counters)
		VALUES(1, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			last_source_position = EXCLUDED.last_source_position,
			last_run_at = EXCLUDED.last_run_at,
			counters = EXCLUDED.counters
	`, s.LastSourcePosition, s.LastRunAt, counters)
	return err
}

func (r *SyncRepository) SaveRun(summary *model.RunSummary) error {
	counters, err := json.Marshal(summary)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(`
		INSERT INTO run_log(run_id, counters)
		VALUES($1, $2)
	`, summary.RunID, counters)
	return err
}

func (r *SyncRepository) GetRecentRuns(limit int) ([]model.RunSummary, error) {
	rows, err := r.db.Query(`
		SELECT counters FROM run_log
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []model.RunSummary
	for rows.Next() {
		var counters []byte
		if err := rows.Scan(&counters); err != nil {
			return nil, err
		}
		var s model.RunSummary
		if err := json.Unmarshal(counters, &s); err != nil {
			return nil, err
		}
		runs = append(runs, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return runs, nil
}
