package service

import (
	"context"
	"log"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"github.com/medicore/hms-api/internal/domain/entity"
	"github.com/medicore/hms-api/internal/domain/enum"
	"github.com/medicore/hms-api/internal/domain/repository"
	"github.com/medicore/hms-api/pkg/apperror"
	"github.com/medicore/hms-api/pkg/pagination"
	"github.com/medicore/hms-api/pkg/storage"
)

// ReportService handles medical report documents
type ReportService struct {
	reportRepo          repository.ReportRepository
	patientRepo         repository.PatientRepository
	visitRepo           repository.VisitRepository
	storage             *storage.LocalStorage
	notificationService *NotificationService
}

// NewReportService creates a new report service
func NewReportService(
	reportRepo repository.ReportRepository,
	patientRepo repository.PatientRepository,
	visitRepo repository.VisitRepository,
	st *storage.LocalStorage,
	notificationService *NotificationService,
) *ReportService {
	return &ReportService{
		reportRepo:          reportRepo,
		patientRepo:         patientRepo,
		visitRepo:           visitRepo,
		storage:             st,
		notificationService: notificationService,
	}
}

// CreateReportInput represents the create report input
type CreateReportInput struct {
	PatientID    uuid.UUID
	VisitID      *uuid.UUID
	Type         enum.ReportType
	Title        string
	Findings     *string
	File         *multipart.FileHeader
	UploadedByID uuid.UUID
}

// CreateReport stores report metadata and, when provided, the attachment
// on local disk.
func (s *ReportService) CreateReport(ctx context.Context, input *CreateReportInput) (*entity.MedicalReport, error) {
	patient, err := s.patientRepo.GetByID(ctx, input.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, apperror.NewNotFoundError("Patient")
	}

	if input.VisitID != nil {
		visit, err := s.visitRepo.GetByID(ctx, *input.VisitID)
		if err != nil {
			return nil, err
		}
		if visit == nil {
			return nil, apperror.NewNotFoundError("Visit")
		}
		if visit.PatientID != input.PatientID {
			return nil, apperror.NewBadRequestError("Visit belongs to a different patient")
		}
	}

	report := &entity.MedicalReport{
		PatientID:    input.PatientID,
		VisitID:      input.VisitID,
		Type:         input.Type,
		Status:       enum.ReportStatusPending,
		Title:        input.Title,
		Findings:     input.Findings,
		UploadedByID: input.UploadedByID,
	}

	if input.File != nil {
		relPath, err := s.storage.Save(input.File, "reports")
		if err != nil {
			return nil, err
		}
		report.FileName = &input.File.Filename
		report.FilePath = &relPath
		size := input.File.Size
		report.FileSize = &size
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		if report.FilePath != nil {
			if rmErr := s.storage.Delete(*report.FilePath); rmErr != nil {
				log.Printf("Warning: failed to remove orphaned report file %s: %v", *report.FilePath, rmErr)
			}
		}
		return nil, err
	}

	return report, nil
}

// GetReport retrieves a report by ID
func (s *ReportService) GetReport(ctx context.Context, id uuid.UUID) (*entity.MedicalReport, error) {
	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, apperror.NewNotFoundError("Report")
	}
	return report, nil
}

// ReportFilePath resolves the on-disk path of a report's attachment
func (s *ReportService) ReportFilePath(ctx context.Context, id uuid.UUID) (string, string, error) {
	report, err := s.GetReport(ctx, id)
	if err != nil {
		return "", "", err
	}
	if !report.HasFile() {
		return "", "", apperror.NewNotFoundError("Report file")
	}

	fileName := "report"
	if report.FileName != nil {
		fileName = *report.FileName
	}
	return s.storage.FullPath(*report.FilePath), fileName, nil
}

// ListReports lists reports with filtering
func (s *ReportService) ListReports(ctx context.Context, params *repository.ReportFilterParams) (*pagination.PaginatedResult[entity.MedicalReport], error) {
	reports, total, err := s.reportRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(reports, pag), nil
}

// UpdateReportInput represents the update report input
type UpdateReportInput struct {
	Type     *enum.ReportType
	Title    *string
	Findings *string
}

// UpdateReport updates report metadata. Reviewed reports are read-only.
func (s *ReportService) UpdateReport(ctx context.Context, id uuid.UUID, input *UpdateReportInput) (*entity.MedicalReport, error) {
	report, err := s.GetReport(ctx, id)
	if err != nil {
		return nil, err
	}
	if report.Status == enum.ReportStatusReviewed {
		return nil, apperror.NewConflictError("Reviewed reports cannot be modified")
	}

	if input.Type != nil {
		report.Type = *input.Type
	}
	if input.Title != nil {
		report.Title = *input.Title
	}
	if input.Findings != nil {
		report.Findings = input.Findings
	}

	if err := s.reportRepo.Update(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// CompleteReport marks a pending report as completed
func (s *ReportService) CompleteReport(ctx context.Context, id uuid.UUID) (*entity.MedicalReport, error) {
	report, err := s.GetReport(ctx, id)
	if err != nil {
		return nil, err
	}
	if report.Status != enum.ReportStatusPending {
		return nil, apperror.NewConflictError("Only pending reports can be completed")
	}

	report.Status = enum.ReportStatusCompleted
	if err := s.reportRepo.Update(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// ReviewReport signs off a completed report
func (s *ReportService) ReviewReport(ctx context.Context, id, reviewerID uuid.UUID) (*entity.MedicalReport, error) {
	report, err := s.GetReport(ctx, id)
	if err != nil {
		return nil, err
	}
	if report.Status != enum.ReportStatusCompleted {
		return nil, apperror.NewConflictError("Only completed reports can be reviewed")
	}

	now := time.Now()
	report.Status = enum.ReportStatusReviewed
	report.ReviewedByID = &reviewerID
	report.ReviewedAt = &now

	if err := s.reportRepo.Update(ctx, report); err != nil {
		return nil, err
	}

	s.notifyPatient(ctx, report)
	return report, nil
}

func (s *ReportService) notifyPatient(ctx context.Context, report *entity.MedicalReport) {
	if s.notificationService == nil {
		return
	}
	patient, err := s.patientRepo.GetByID(ctx, report.PatientID)
	if err != nil || patient == nil || patient.UserID == nil {
		return
	}

	title := "Report ready: " + report.Title
	body := "Your " + report.Type.String() + " report has been reviewed and is available."
	if err := s.notificationService.Notify(ctx, *patient.UserID, enum.NotificationKindReport, title, body, &report.ID); err != nil {
		log.Printf("Warning: failed to notify patient about report %s: %v", report.ID, err)
	}
}

// DeleteReport removes a report and its attachment
func (s *ReportService) DeleteReport(ctx context.Context, id uuid.UUID) error {
	report, err := s.GetReport(ctx, id)
	if err != nil {
		return err
	}

	if err := s.reportRepo.Delete(ctx, id); err != nil {
		return err
	}

	if report.HasFile() {
		if err := s.storage.Delete(*report.FilePath); err != nil {
			log.Printf("Warning: failed to delete report file %s: %v", *report.FilePath, err)
		}
	}
	return nil
}
