package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ctxKey string

// PatientIDKey is the context key for the requester's patient ID.
// Set by the auth middleware for users holding the patient role; users
// with staff roles never carry it.
const PatientIDKey ctxKey = "patient_id"

// PatientScope returns a GORM scope that restricts patient-owned rows
// (visits, invoices, reports, appointments) to the requester's own
// records when the request is made by a patient account.
func PatientScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		patientID, ok := ctx.Value(PatientIDKey).(uuid.UUID)
		if !ok {
			return db
		}
		return db.Where("patient_id = ?", patientID)
	}
}

// WithPatient adds the requester's patient ID to the context
func WithPatient(ctx context.Context, patientID uuid.UUID) context.Context {
	return context.WithValue(ctx, PatientIDKey, patientID)
}

// GetPatientID extracts the requester's patient ID from the context
func GetPatientID(ctx context.Context) (uuid.UUID, bool) {
	patientID, ok := ctx.Value(PatientIDKey).(uuid.UUID)
	return patientID, ok
}
