package migrations

import (
	"github.com/jmoiron/sqlx"
)

func init() {
	m.addMigration(&migration{
		version: "20260105090000",
		up:      mig_20260105090000_subscribers_up,
		down:    mig_20260105090000_subscribers_down,
	})
}

func mig_20260105090000_subscribers_up(tx *sqlx.Tx) error {
	_, err := tx.Exec(`
        CREATE TABLE IF NOT EXISTS subscribers (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            username VARCHAR(255) NOT NULL,
            email VARCHAR(255) NOT NULL,
            password_hash TEXT,
            company_type VARCHAR(100),
            jurisdiction VARCHAR(100),
            contact_phone VARCHAR(50),
            created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
            updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
            CONSTRAINT subscribers_username_key UNIQUE (username),
            CONSTRAINT subscribers_email_key UNIQUE (email)
        );
    `)

	return err
}

func mig_20260105090000_subscribers_down(tx *sqlx.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS subscribers;`)
	return err
}
