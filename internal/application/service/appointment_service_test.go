package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/medicore/hms-api/internal/domain/entity"
	"github.com/medicore/hms-api/internal/domain/enum"
	"github.com/medicore/hms-api/pkg/apperror"
)

func newTestAppointmentService() (*AppointmentService, *mockPatientRepo, *mockStaffRepo) {
	patientRepo := newMockPatientRepo()
	staffRepo := newMockStaffRepo()
	svc := NewAppointmentService(newMockAppointmentRepo(), patientRepo, staffRepo, nil, nil)
	return svc, patientRepo, staffRepo
}

func seedDoctor(repo *mockStaffRepo) *entity.Staff {
	doctor := &entity.Staff{
		StaffNo: "EMP-TEST01",
		UserID:  uuid.New(),
		Active:  true,
		User:    entity.User{FirstName: "Meera", LastName: "Iyer", Role: enum.RoleDoctor},
	}
	repo.Create(context.Background(), doctor)
	return doctor
}

func TestBookAppointment(t *testing.T) {
	svc, patientRepo, staffRepo := newTestAppointmentService()
	patient := seedPatient(patientRepo)
	doctor := seedDoctor(staffRepo)

	appt, err := svc.BookAppointment(context.Background(), &BookAppointmentInput{
		PatientID:   patient.ID,
		DoctorID:    doctor.ID,
		ScheduledAt: time.Now().Add(24 * time.Hour),
		CreatedByID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appt.Status != enum.AppointmentStatusScheduled {
		t.Errorf("expected scheduled status, got %s", appt.Status)
	}
	if appt.DurationMin != 30 {
		t.Errorf("expected default duration 30, got %d", appt.DurationMin)
	}
}

func TestBookAppointment_PastRejected(t *testing.T) {
	svc, patientRepo, staffRepo := newTestAppointmentService()
	patient := seedPatient(patientRepo)
	doctor := seedDoctor(staffRepo)

	_, err := svc.BookAppointment(context.Background(), &BookAppointmentInput{
		PatientID:   patient.ID,
		DoctorID:    doctor.ID,
		ScheduledAt: time.Now().Add(-time.Hour),
		CreatedByID: uuid.New(),
	})
	if err == nil {
		t.Error("expected error for booking in the past")
	}
}

func TestBookAppointment_InactiveDoctorRejected(t *testing.T) {
	svc, patientRepo, staffRepo := newTestAppointmentService()
	patient := seedPatient(patientRepo)
	doctor := seedDoctor(staffRepo)
	doctor.Active = false

	_, err := svc.BookAppointment(context.Background(), &BookAppointmentInput{
		PatientID:   patient.ID,
		DoctorID:    doctor.ID,
		ScheduledAt: time.Now().Add(24 * time.Hour),
		CreatedByID: uuid.New(),
	})
	if err == nil {
		t.Error("expected error for inactive doctor")
	}
}

func TestBookAppointment_OverlapRejected(t *testing.T) {
	svc, patientRepo, staffRepo := newTestAppointmentService()
	patient := seedPatient(patientRepo)
	doctor := seedDoctor(staffRepo)
	slot := time.Now().Add(24 * time.Hour)

	if _, err := svc.BookAppointment(context.Background(), &BookAppointmentInput{
		PatientID:   patient.ID,
		DoctorID:    doctor.ID,
		ScheduledAt: slot,
		DurationMin: 30,
		CreatedByID: uuid.New(),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// second booking starts halfway through the first slot
	_, err := svc.BookAppointment(context.Background(), &BookAppointmentInput{
		PatientID:   patient.ID,
		DoctorID:    doctor.ID,
		ScheduledAt: slot.Add(15 * time.Minute),
		DurationMin: 30,
		CreatedByID: uuid.New(),
	})
	if !errors.Is(err, apperror.ErrSlotTaken) {
		t.Errorf("expected ErrSlotTaken, got %v", err)
	}
}

func TestBookAppointment_BackToBackAllowed(t *testing.T) {
	svc, patientRepo, staffRepo := newTestAppointmentService()
	patient := seedPatient(patientRepo)
	doctor := seedDoctor(staffRepo)
	slot := time.Now().Add(24 * time.Hour)

	svc.BookAppointment(context.Background(), &BookAppointmentInput{
		PatientID:   patient.ID,
		DoctorID:    doctor.ID,
		ScheduledAt: slot,
		DurationMin: 30,
		CreatedByID: uuid.New(),
	})

	// starts exactly when the first one ends
	_, err := svc.BookAppointment(context.Background(), &BookAppointmentInput{
		PatientID:   patient.ID,
		DoctorID:    doctor.ID,
		ScheduledAt: slot.Add(30 * time.Minute),
		DurationMin: 30,
		CreatedByID: uuid.New(),
	})
	if err != nil {
		t.Errorf("expected back-to-back booking to succeed, got %v", err)
	}
}

func TestBookAppointment_CancelledSlotReusable(t *testing.T) {
	svc, patientRepo, staffRepo := newTestAppointmentService()
	patient := seedPatient(patientRepo)
	doctor := seedDoctor(staffRepo)
	slot := time.Now().Add(24 * time.Hour)

	first, _ := svc.BookAppointment(context.Background(), &BookAppointmentInput{
		PatientID:   patient.ID,
		DoctorID:    doctor.ID,
		ScheduledAt: slot,
		CreatedByID: uuid.New(),
	})
	if err := svc.CancelAppointment(context.Background(), first.ID, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.BookAppointment(context.Background(), &BookAppointmentInput{
		PatientID:   patient.ID,
		DoctorID:    doctor.ID,
		ScheduledAt: slot,
		CreatedByID: uuid.New(),
	})
	if err != nil {
		t.Errorf("expected cancelled slot to be bookable, got %v", err)
	}
}

func TestReschedule_ExcludesSelf(t *testing.T) {
	svc, patientRepo, staffRepo := newTestAppointmentService()
	patient := seedPatient(patientRepo)
	doctor := seedDoctor(staffRepo)
	slot := time.Now().Add(24 * time.Hour)

	appt, _ := svc.BookAppointment(context.Background(), &BookAppointmentInput{
		PatientID:   patient.ID,
		DoctorID:    doctor.ID,
		ScheduledAt: slot,
		DurationMin: 30,
		CreatedByID: uuid.New(),
	})

	// shifting within its own slot must not conflict with itself
	moved, err := svc.Reschedule(context.Background(), appt.ID, &RescheduleInput{
		ScheduledAt: slot.Add(10 * time.Minute),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !moved.ScheduledAt.Equal(slot.Add(10 * time.Minute)) {
		t.Error("expected appointment to move to the new slot")
	}
}

func TestUpdateStatus_InvalidTransition(t *testing.T) {
	svc, patientRepo, staffRepo := newTestAppointmentService()
	patient := seedPatient(patientRepo)
	doctor := seedDoctor(staffRepo)

	appt, _ := svc.BookAppointment(context.Background(), &BookAppointmentInput{
		PatientID:   patient.ID,
		DoctorID:    doctor.ID,
		ScheduledAt: time.Now().Add(24 * time.Hour),
		CreatedByID: uuid.New(),
	})

	// scheduled cannot jump straight to completed
	_, err := svc.UpdateStatus(context.Background(), appt.ID, enum.AppointmentStatusCompleted, nil)
	if err == nil {
		t.Error("expected error for invalid status transition")
	}
}

func TestUpdateStatus_Lifecycle(t *testing.T) {
	svc, patientRepo, staffRepo := newTestAppointmentService()
	patient := seedPatient(patientRepo)
	doctor := seedDoctor(staffRepo)

	appt, _ := svc.BookAppointment(context.Background(), &BookAppointmentInput{
		PatientID:   patient.ID,
		DoctorID:    doctor.ID,
		ScheduledAt: time.Now().Add(24 * time.Hour),
		CreatedByID: uuid.New(),
	})

	for _, status := range []enum.AppointmentStatus{
		enum.AppointmentStatusConfirmed,
		enum.AppointmentStatusInProgress,
		enum.AppointmentStatusCompleted,
	} {
		if _, err := svc.UpdateStatus(context.Background(), appt.ID, status, nil); err != nil {
			t.Fatalf("transition to %s failed: %v", status, err)
		}
	}

	// completed is terminal
	if err := svc.CancelAppointment(context.Background(), appt.ID, nil); err == nil {
		t.Error("expected error when cancelling a completed appointment")
	}
}
