package migrations

import (
	"github.com/jmoiron/sqlx"
)

func init() {
	m.addMigration(&migration{
		version: "20260118083000",
		up:      mig_20260118083000_google_identity_up,
		down:    mig_20260118083000_google_identity_down,
	})
}

func mig_20260118083000_google_identity_up(tx *sqlx.Tx) error {
	_, err := tx.Exec(`
        ALTER TABLE subscriber_users
        ADD COLUMN IF NOT EXISTS google_id VARCHAR(255);
    `)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
        CREATE INDEX IF NOT EXISTS idx_subscriber_users_google_id
        ON subscriber_users(google_id)
        WHERE google_id IS NOT NULL;
    `)

	return err
}

func mig_20260118083000_google_identity_down(tx *sqlx.Tx) error {
	_, err := tx.Exec(`
        ALTER TABLE subscriber_users
        DROP COLUMN IF EXISTS google_id;
    `)
	return err
}
