package migrations

import (
	"github.com/jmoiron/sqlx"
)

func init() {
	m.addMigration(&migration{
		version: "20260105091500",
		up:      mig_20260105091500_subscriber_users_up,
		down:    mig_20260105091500_subscriber_users_down,
	})
}

func mig_20260105091500_subscriber_users_up(tx *sqlx.Tx) error {
	_, err := tx.Exec(`
        CREATE TABLE IF NOT EXISTS subscriber_users (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            subscriber_id UUID NOT NULL REFERENCES subscribers(id),
            email VARCHAR(255) NOT NULL,
            first_name VARCHAR(255) NOT NULL,
            last_name VARCHAR(255) NOT NULL DEFAULT '',
            phone VARCHAR(50),
            password_hash TEXT,
            role VARCHAR(50) NOT NULL CHECK (role IN ('admin', 'manager', 'analyst', 'viewer')),
            status VARCHAR(50) NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'active', 'inactive', 'suspended')),
            failed_login_attempts INT NOT NULL DEFAULT 0,
            locked_until TIMESTAMP WITH TIME ZONE,
            hashed_refresh_token TEXT,
            reset_token TEXT,
            reset_token_expires_at TIMESTAMP WITH TIME ZONE,
            last_login_at TIMESTAMP WITH TIME ZONE,
            last_login_ip VARCHAR(45),
            is_active BOOLEAN NOT NULL DEFAULT TRUE,
            deleted_at TIMESTAMP WITH TIME ZONE,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
            updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
            CONSTRAINT subscriber_users_email_key UNIQUE (email)
        );
    `)
	if err != nil {
		return err
	}

	// Reset tokens are looked up by exact value during password reset
	_, err = tx.Exec(`
        CREATE INDEX IF NOT EXISTS idx_subscriber_users_reset_token ON subscriber_users(reset_token);
    `)

	return err
}

func mig_20260105091500_subscriber_users_down(tx *sqlx.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS subscriber_users;`)
	return err
}
