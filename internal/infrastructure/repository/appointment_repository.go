package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/medicore/hms-api/internal/domain/entity"
	"github.com/medicore/hms-api/internal/domain/enum"
	domainRepo "github.com/medicore/hms-api/internal/domain/repository"
	"gorm.io/gorm"
)

type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository creates a new appointment repository
func NewAppointmentRepository(db *gorm.DB) domainRepo.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	return r.db.WithContext(ctx).Create(appointment).Error
}

func (r *appointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := r.db.WithContext(ctx).
		Scopes(PatientScope(ctx)).
		Preload("Patient").
		Preload("Doctor.User").
		First(&appointment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &appointment, err
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *entity.Appointment) error {
	return r.db.WithContext(ctx).Save(appointment).Error
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Appointment{}, "id = ?", id).Error
}

func (r *appointmentRepository) List(ctx context.Context, params *domainRepo.AppointmentFilterParams) ([]entity.Appointment, int64, error) {
	var appointments []entity.Appointment
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Appointment{}).Scopes(PatientScope(ctx))

	if params.Search != "" {
		query = query.
			Joins("JOIN patients ON patients.id = appointments.patient_id").
			Where("patients.first_name ILIKE ? OR patients.last_name ILIKE ? OR patients.patient_no ILIKE ?",
				"%"+params.Search+"%", "%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("appointments.status = ?", *params.Status)
	}

	if params.Type != nil {
		query = query.Where("appointments.type = ?", *params.Type)
	}

	if params.PatientID != nil {
		query = query.Where("appointments.patient_id = ?", *params.PatientID)
	}

	if params.DoctorID != nil {
		query = query.Where("appointments.doctor_id = ?", *params.DoctorID)
	}

	if params.From != nil {
		query = query.Where("appointments.scheduled_at >= ?", *params.From)
	}

	if params.To != nil {
		query = query.Where("appointments.scheduled_at <= ?", *params.To)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Patient").
		Preload("Doctor.User").
		Order("appointments.scheduled_at ASC").
		Find(&appointments).Error

	return appointments, total, err
}

func (r *appointmentRepository) ListAll(ctx context.Context) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := r.db.WithContext(ctx).Order("scheduled_at ASC").Find(&appointments).Error
	return appointments, err
}

// ListForDoctorBetween loads the doctor's live appointments that could
// intersect the [from, to) window. Slot end is derived from duration, so the
// window start is widened by the longest slot we book rather than computed
// in SQL.
func (r *appointmentRepository) ListForDoctorBetween(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]entity.Appointment, error) {
	const maxSlot = 4 * time.Hour

	var appointments []entity.Appointment
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND scheduled_at >= ? AND scheduled_at < ?", doctorID, from.Add(-maxSlot), to).
		Where("status NOT IN ?", []enum.AppointmentStatus{
			enum.AppointmentStatusCompleted,
			enum.AppointmentStatusCancelled,
			enum.AppointmentStatusNoShow,
		}).
		Order("scheduled_at ASC").
		Find(&appointments).Error
	return appointments, err
}
