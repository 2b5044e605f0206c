package service

import (
	"context"
	"testing"

	"github.com/medicore/hms-api/internal/domain/entity"
	"github.com/medicore/hms-api/internal/domain/enum"
)

func newTestVisitService() (*VisitService, *mockPatientRepo, *mockStaffRepo) {
	patientRepo := newMockPatientRepo()
	staffRepo := newMockStaffRepo()
	svc := NewVisitService(newMockVisitRepo(), patientRepo, staffRepo, newMockAppointmentRepo())
	return svc, patientRepo, staffRepo
}

func seedNurse(repo *mockStaffRepo) *entity.Staff {
	nurse := &entity.Staff{
		StaffNo: "EMP-TEST02",
		Active:  true,
		User:    entity.User{FirstName: "Kavya", LastName: "Nair", Role: enum.RoleNurse},
	}
	repo.Create(context.Background(), nurse)
	return nurse
}

func TestOpenVisit(t *testing.T) {
	svc, patientRepo, staffRepo := newTestVisitService()
	patient := seedPatient(patientRepo)
	nurse := seedNurse(staffRepo)

	visit, err := svc.OpenVisit(context.Background(), &OpenVisitInput{
		PatientID: patient.ID,
		StaffID:   nurse.ID,
		Type:      enum.VisitTypeOPD,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if visit.Status != enum.VisitStatusAdmitted {
		t.Errorf("expected admitted status, got %s", visit.Status)
	}
	if visit.VisitNo == "" {
		t.Error("expected a generated visit number")
	}
	if visit.AdmittedAt.IsZero() {
		t.Error("expected admission timestamp to be set")
	}
}

func TestOpenVisit_SecondAdmissionRejected(t *testing.T) {
	svc, patientRepo, staffRepo := newTestVisitService()
	patient := seedPatient(patientRepo)
	nurse := seedNurse(staffRepo)

	if _, err := svc.OpenVisit(context.Background(), &OpenVisitInput{
		PatientID: patient.ID,
		StaffID:   nurse.ID,
		Type:      enum.VisitTypeIPD,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.OpenVisit(context.Background(), &OpenVisitInput{
		PatientID: patient.ID,
		StaffID:   nurse.ID,
		Type:      enum.VisitTypeIPD,
	})
	if err == nil {
		t.Error("expected error for second open admission")
	}

	// an outpatient visit alongside the admission is fine
	if _, err := svc.OpenVisit(context.Background(), &OpenVisitInput{
		PatientID: patient.ID,
		StaffID:   nurse.ID,
		Type:      enum.VisitTypeOPD,
	}); err != nil {
		t.Errorf("expected OPD visit during admission to succeed, got %v", err)
	}
}

func TestOpenVisit_DeceasedPatientRejected(t *testing.T) {
	svc, patientRepo, staffRepo := newTestVisitService()
	patient := seedPatient(patientRepo)
	patient.Status = enum.PatientStatusDeceased
	nurse := seedNurse(staffRepo)

	_, err := svc.OpenVisit(context.Background(), &OpenVisitInput{
		PatientID: patient.ID,
		StaffID:   nurse.ID,
		Type:      enum.VisitTypeOPD,
	})
	if err == nil {
		t.Error("expected error for deceased patient")
	}
}

func TestDischarge(t *testing.T) {
	svc, patientRepo, staffRepo := newTestVisitService()
	patient := seedPatient(patientRepo)
	nurse := seedNurse(staffRepo)

	visit, _ := svc.OpenVisit(context.Background(), &OpenVisitInput{
		PatientID: patient.ID,
		StaffID:   nurse.ID,
		Type:      enum.VisitTypeIPD,
	})

	discharged, err := svc.Discharge(context.Background(), visit.ID, enum.VisitStatusDischarged, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if discharged.DischargedAt == nil {
		t.Error("expected discharge timestamp to be set")
	}

	// the bed is free again
	if _, err := svc.OpenVisit(context.Background(), &OpenVisitInput{
		PatientID: patient.ID,
		StaffID:   nurse.ID,
		Type:      enum.VisitTypeIPD,
	}); err != nil {
		t.Errorf("expected re-admission after discharge to succeed, got %v", err)
	}
}

func TestDischarge_OpenStatusRejected(t *testing.T) {
	svc, patientRepo, staffRepo := newTestVisitService()
	patient := seedPatient(patientRepo)
	nurse := seedNurse(staffRepo)

	visit, _ := svc.OpenVisit(context.Background(), &OpenVisitInput{
		PatientID: patient.ID,
		StaffID:   nurse.ID,
		Type:      enum.VisitTypeIPD,
	})

	_, err := svc.Discharge(context.Background(), visit.ID, enum.VisitStatusAdmitted, nil)
	if err == nil {
		t.Error("expected error for discharging to an open status")
	}
}
