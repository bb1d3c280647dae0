package repos

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"snapfind/internal/kv"
)

// KVRepo implements kv.Store on the kv table.
type KVRepo struct{ db *sqlx.DB }

func NewKVRepo(db *sqlx.DB) *KVRepo { return &KVRepo{db: db} }

func (r *KVRepo) Get(key string) (string, bool, error) {
	var v string
	err := r.db.Get(&v, `SELECT value FROM kv WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *KVRepo) Set(key, value string) error {
	_, err := r.db.Exec(`
		INSERT INTO kv(key, value, created_at, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	return err
}

func (r *KVRepo) Delete(key string) error {
	_, err := r.db.Exec(`DELETE FROM kv WHERE key = ?`, key)
	return err
}

// PurgeBefore drops transient slots not written since cutoff. History rows
// are never purged. The sqlite backend has no TTL of its own, so the server
// runs this periodically.
func (r *KVRepo) PurgeBefore(cutoff time.Time) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM kv WHERE datetime(updated_at) < datetime(?) AND key NOT LIKE ?`,
		cutoff.UTC().Format("2006-01-02 15:04:05"), kv.HistoryPrefix+"%")
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
