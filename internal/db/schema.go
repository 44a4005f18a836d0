package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

// EnsureSchema creates the clinic tables if they do not exist yet. The DDL
// carries the invariants the application depends on: unique username/email,
// one profile per account, restrict-on-delete for everything referencing an
// account-derived row, and cascade only from appointment to prescription.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	tables := []string{
		createAccountsTable,
		createPatientsTable,
		createDoctorsTable,
		createReceptionsTable,
		createAdminsTable,
		createAppointmentsTable,
		createPrescriptionsTable,
		createAdminActivationLogsTable,
	}

	for _, ddl := range tables {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	indexes := []string{
		createAppointmentsIndexes,
		createPrescriptionsIndexes,
	}
	for _, ddl := range indexes {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("failed to create indexes: %w", err)
		}
	}

	log.Println("✓ Database schema ensured")
	return nil
}

const (
	createAccountsTable = `
		CREATE TABLE IF NOT EXISTS accounts (
			id BIGSERIAL PRIMARY KEY,
			username VARCHAR(50) UNIQUE NOT NULL,
			email VARCHAR(100) UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			role VARCHAR(20) NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			last_login TIMESTAMPTZ
		);`

	createPatientsTable = `
		CREATE TABLE IF NOT EXISTS patients (
			id BIGSERIAL PRIMARY KEY,
			account_id BIGINT UNIQUE NOT NULL REFERENCES accounts(id) ON DELETE RESTRICT,
			full_name VARCHAR(100) NOT NULL,
			date_of_birth DATE,
			gender VARCHAR(20),
			phone VARCHAR(30),
			address VARCHAR(200)
		);`

	createDoctorsTable = `
		CREATE TABLE IF NOT EXISTS doctors (
			id BIGSERIAL PRIMARY KEY,
			account_id BIGINT UNIQUE NOT NULL REFERENCES accounts(id) ON DELETE RESTRICT,
			specialization VARCHAR(100) NOT NULL,
			availability_schedule VARCHAR(200),
			phone VARCHAR(30)
		);`

	createReceptionsTable = `
		CREATE TABLE IF NOT EXISTS receptions (
			id BIGSERIAL PRIMARY KEY,
			account_id BIGINT UNIQUE NOT NULL REFERENCES accounts(id) ON DELETE RESTRICT,
			full_name VARCHAR(100) NOT NULL,
			phone VARCHAR(30)
		);`

	createAdminsTable = `
		CREATE TABLE IF NOT EXISTS admins (
			id BIGSERIAL PRIMARY KEY,
			account_id BIGINT UNIQUE NOT NULL REFERENCES accounts(id) ON DELETE RESTRICT,
			full_name VARCHAR(100) NOT NULL,
			phone VARCHAR(30),
			is_super BOOLEAN NOT NULL DEFAULT FALSE
		);`

	createAppointmentsTable = `
		CREATE TABLE IF NOT EXISTS appointments (
			id BIGSERIAL PRIMARY KEY,
			patient_id BIGINT NOT NULL REFERENCES patients(id) ON DELETE RESTRICT,
			doctor_id BIGINT NOT NULL REFERENCES doctors(id) ON DELETE RESTRICT,
			reception_id BIGINT NOT NULL REFERENCES receptions(id) ON DELETE RESTRICT,
			appointment_time TIMESTAMPTZ NOT NULL,
			status VARCHAR(30) NOT NULL,
			notes VARCHAR(500),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`

	createPrescriptionsTable = `
		CREATE TABLE IF NOT EXISTS prescriptions (
			id BIGSERIAL PRIMARY KEY,
			appointment_id BIGINT NOT NULL REFERENCES appointments(id) ON DELETE CASCADE,
			doctor_id BIGINT NOT NULL REFERENCES doctors(id) ON DELETE RESTRICT,
			patient_id BIGINT NOT NULL REFERENCES patients(id) ON DELETE RESTRICT,
			medication_details TEXT NOT NULL,
			dosage VARCHAR(100) NOT NULL,
			instructions VARCHAR(500),
			issued_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`

	createAdminActivationLogsTable = `
		CREATE TABLE IF NOT EXISTS admin_activation_logs (
			id BIGSERIAL PRIMARY KEY,
			activated_admin_id BIGINT NOT NULL REFERENCES admins(id) ON DELETE RESTRICT,
			activated_by_admin_id BIGINT NOT NULL REFERENCES admins(id) ON DELETE RESTRICT,
			activated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`

	createAppointmentsIndexes = `
		CREATE INDEX IF NOT EXISTS idx_appointments_patient ON appointments(patient_id);
		CREATE INDEX IF NOT EXISTS idx_appointments_doctor ON appointments(doctor_id);
		CREATE INDEX IF NOT EXISTS idx_appointments_time ON appointments(appointment_time DESC);`

	createPrescriptionsIndexes = `
		CREATE INDEX IF NOT EXISTS idx_prescriptions_doctor ON prescriptions(doctor_id);
		CREATE INDEX IF NOT EXISTS idx_prescriptions_patient ON prescriptions(patient_id);`
)
