package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/medicore/hms-api/internal/domain/entity"
	"github.com/medicore/hms-api/internal/domain/enum"
	"github.com/medicore/hms-api/internal/domain/repository"
	"github.com/medicore/hms-api/pkg/pagination"
)

// -- Mock repositories --

type mockPatientRepo struct {
	patients map[uuid.UUID]*entity.Patient
}

func newMockPatientRepo() *mockPatientRepo {
	return &mockPatientRepo{patients: make(map[uuid.UUID]*entity.Patient)}
}

func (m *mockPatientRepo) Create(_ context.Context, p *entity.Patient) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	m.patients[p.ID] = p
	return nil
}

func (m *mockPatientRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Patient, error) {
	return m.patients[id], nil
}

func (m *mockPatientRepo) GetByPatientNo(_ context.Context, patientNo string) (*entity.Patient, error) {
	for _, p := range m.patients {
		if p.PatientNo == patientNo {
			return p, nil
		}
	}
	return nil, nil
}

func (m *mockPatientRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*entity.Patient, error) {
	for _, p := range m.patients {
		if p.UserID != nil && *p.UserID == userID {
			return p, nil
		}
	}
	return nil, nil
}

func (m *mockPatientRepo) Update(_ context.Context, p *entity.Patient) error {
	m.patients[p.ID] = p
	return nil
}

func (m *mockPatientRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.patients, id)
	return nil
}

func (m *mockPatientRepo) List(_ context.Context, _ *repository.PatientFilterParams) ([]entity.Patient, int64, error) {
	all, _ := m.ListAll(context.Background())
	return all, int64(len(all)), nil
}

func (m *mockPatientRepo) ListAll(_ context.Context) ([]entity.Patient, error) {
	out := make([]entity.Patient, 0, len(m.patients))
	for _, p := range m.patients {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockPatientRepo) CountCreatedSince(_ context.Context, since time.Time) (int64, error) {
	var n int64
	for _, p := range m.patients {
		if p.CreatedAt.After(since) {
			n++
		}
	}
	return n, nil
}

type mockSettingsRepo struct {
	settings *entity.HospitalSettings
}

func newMockSettingsRepo() *mockSettingsRepo {
	return &mockSettingsRepo{settings: &entity.HospitalSettings{
		ID:               uuid.New(),
		HospitalName:     "Test Hospital",
		Currency:         "INR",
		DefaultTaxPct:    5,
		InvoiceDueDays:   14,
		InvoicePrefix:    "INV",
		ExpiryWindowDays: 30,
		DefaultMinStock:  10,
	}}
}

func (m *mockSettingsRepo) Get(_ context.Context) (*entity.HospitalSettings, error) {
	return m.settings, nil
}

func (m *mockSettingsRepo) Update(_ context.Context, s *entity.HospitalSettings) error {
	m.settings = s
	return nil
}

type mockInvoiceRepo struct {
	invoices map[uuid.UUID]*entity.Invoice
	payments map[uuid.UUID][]entity.Payment
}

func newMockInvoiceRepo() *mockInvoiceRepo {
	return &mockInvoiceRepo{
		invoices: make(map[uuid.UUID]*entity.Invoice),
		payments: make(map[uuid.UUID][]entity.Payment),
	}
}

func (m *mockInvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	inv.CreatedAt = time.Now()
	m.invoices[inv.ID] = inv
	return nil
}

func (m *mockInvoiceRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Invoice, error) {
	inv, ok := m.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	cp.Payments = m.payments[id]
	return &cp, nil
}

func (m *mockInvoiceRepo) GetByInvoiceNo(_ context.Context, invoiceNo string) (*entity.Invoice, error) {
	for _, inv := range m.invoices {
		if inv.InvoiceNo == invoiceNo {
			return inv, nil
		}
	}
	return nil, nil
}

func (m *mockInvoiceRepo) Update(_ context.Context, inv *entity.Invoice) error {
	m.invoices[inv.ID] = inv
	return nil
}

func (m *mockInvoiceRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.invoices, id)
	return nil
}

func (m *mockInvoiceRepo) List(_ context.Context, _ *repository.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	all, _ := m.ListAll(context.Background())
	return all, int64(len(all)), nil
}

func (m *mockInvoiceRepo) ListAll(_ context.Context) ([]entity.Invoice, error) {
	out := make([]entity.Invoice, 0, len(m.invoices))
	for _, inv := range m.invoices {
		out = append(out, *inv)
	}
	return out, nil
}

func (m *mockInvoiceRepo) RecordPayment(_ context.Context, inv *entity.Invoice, p *entity.Payment) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	m.payments[inv.ID] = append(m.payments[inv.ID], *p)
	m.invoices[inv.ID] = inv
	return nil
}

func (m *mockInvoiceRepo) MarkOverdue(_ context.Context, asOf time.Time) (int64, error) {
	var n int64
	for _, inv := range m.invoices {
		if (inv.Status == enum.InvoiceStatusPending || inv.Status == enum.InvoiceStatusPartiallyPaid) &&
			inv.DueDate.Before(asOf) {
			inv.Status = enum.InvoiceStatusOverdue
			n++
		}
	}
	return n, nil
}

func (m *mockInvoiceRepo) CountForDay(_ context.Context, day time.Time) (int64, error) {
	y, mo, d := day.Date()
	var n int64
	for _, inv := range m.invoices {
		iy, imo, id := inv.CreatedAt.Date()
		if iy == y && imo == mo && id == d {
			n++
		}
	}
	return n, nil
}

type mockPaymentRepo struct {
	invoiceRepo *mockInvoiceRepo
}

func (m *mockPaymentRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Payment, error) {
	for _, ps := range m.invoiceRepo.payments {
		for i := range ps {
			if ps[i].ID == id {
				return &ps[i], nil
			}
		}
	}
	return nil, nil
}

func (m *mockPaymentRepo) ListByInvoice(_ context.Context, invoiceID uuid.UUID) ([]entity.Payment, error) {
	return m.invoiceRepo.payments[invoiceID], nil
}

func (m *mockPaymentRepo) ListBetween(_ context.Context, from, to time.Time) ([]entity.Payment, error) {
	var out []entity.Payment
	for _, ps := range m.invoiceRepo.payments {
		for _, p := range ps {
			if !p.PaidAt.Before(from) && p.PaidAt.Before(to) {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

type mockVisitRepo struct {
	visits map[uuid.UUID]*entity.Visit
}

func newMockVisitRepo() *mockVisitRepo {
	return &mockVisitRepo{visits: make(map[uuid.UUID]*entity.Visit)}
}

func (m *mockVisitRepo) Create(_ context.Context, v *entity.Visit) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	m.visits[v.ID] = v
	return nil
}

func (m *mockVisitRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Visit, error) {
	return m.visits[id], nil
}

func (m *mockVisitRepo) GetByVisitNo(_ context.Context, visitNo string) (*entity.Visit, error) {
	for _, v := range m.visits {
		if v.VisitNo == visitNo {
			return v, nil
		}
	}
	return nil, nil
}

func (m *mockVisitRepo) Update(_ context.Context, v *entity.Visit) error {
	m.visits[v.ID] = v
	return nil
}

func (m *mockVisitRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.visits, id)
	return nil
}

func (m *mockVisitRepo) List(_ context.Context, _ *repository.VisitFilterParams) ([]entity.Visit, int64, error) {
	all, _ := m.ListAll(context.Background())
	return all, int64(len(all)), nil
}

func (m *mockVisitRepo) ListAll(_ context.Context) ([]entity.Visit, error) {
	out := make([]entity.Visit, 0, len(m.visits))
	for _, v := range m.visits {
		out = append(out, *v)
	}
	return out, nil
}

func (m *mockVisitRepo) ListOpenByPatient(_ context.Context, patientID uuid.UUID) ([]entity.Visit, error) {
	var out []entity.Visit
	for _, v := range m.visits {
		if v.PatientID == patientID && !v.Status.IsClosed() {
			out = append(out, *v)
		}
	}
	return out, nil
}

type mockAppointmentRepo struct {
	appointments map[uuid.UUID]*entity.Appointment
}

func newMockAppointmentRepo() *mockAppointmentRepo {
	return &mockAppointmentRepo{appointments: make(map[uuid.UUID]*entity.Appointment)}
}

func (m *mockAppointmentRepo) Create(_ context.Context, a *entity.Appointment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	m.appointments[a.ID] = a
	return nil
}

func (m *mockAppointmentRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Appointment, error) {
	return m.appointments[id], nil
}

func (m *mockAppointmentRepo) Update(_ context.Context, a *entity.Appointment) error {
	m.appointments[a.ID] = a
	return nil
}

func (m *mockAppointmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.appointments, id)
	return nil
}

func (m *mockAppointmentRepo) List(_ context.Context, _ *repository.AppointmentFilterParams) ([]entity.Appointment, int64, error) {
	all, _ := m.ListAll(context.Background())
	return all, int64(len(all)), nil
}

func (m *mockAppointmentRepo) ListAll(_ context.Context) ([]entity.Appointment, error) {
	out := make([]entity.Appointment, 0, len(m.appointments))
	for _, a := range m.appointments {
		out = append(out, *a)
	}
	return out, nil
}

func (m *mockAppointmentRepo) ListForDoctorBetween(_ context.Context, doctorID uuid.UUID, from, to time.Time) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, a := range m.appointments {
		if a.DoctorID != doctorID || a.Status.IsTerminal() {
			continue
		}
		if a.EndsAt().After(from) && a.ScheduledAt.Before(to) {
			out = append(out, *a)
		}
	}
	return out, nil
}

type mockStaffRepo struct {
	staff map[uuid.UUID]*entity.Staff
}

func newMockStaffRepo() *mockStaffRepo {
	return &mockStaffRepo{staff: make(map[uuid.UUID]*entity.Staff)}
}

func (m *mockStaffRepo) Create(_ context.Context, s *entity.Staff) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	m.staff[s.ID] = s
	return nil
}

func (m *mockStaffRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Staff, error) {
	return m.staff[id], nil
}

func (m *mockStaffRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*entity.Staff, error) {
	for _, s := range m.staff {
		if s.UserID == userID {
			return s, nil
		}
	}
	return nil, nil
}

func (m *mockStaffRepo) GetByStaffNo(_ context.Context, staffNo string) (*entity.Staff, error) {
	for _, s := range m.staff {
		if s.StaffNo == staffNo {
			return s, nil
		}
	}
	return nil, nil
}

func (m *mockStaffRepo) Update(_ context.Context, s *entity.Staff) error {
	m.staff[s.ID] = s
	return nil
}

func (m *mockStaffRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.staff, id)
	return nil
}

func (m *mockStaffRepo) List(_ context.Context, _ *repository.StaffFilterParams) ([]entity.Staff, int64, error) {
	out := make([]entity.Staff, 0, len(m.staff))
	for _, s := range m.staff {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (m *mockStaffRepo) ListDoctors(_ context.Context) ([]entity.Staff, error) {
	var out []entity.Staff
	for _, s := range m.staff {
		if s.Active && s.User.Role == enum.RoleDoctor {
			out = append(out, *s)
		}
	}
	return out, nil
}

type mockMedicineRepo struct {
	medicines map[uuid.UUID]*entity.Medicine
	dispenses []entity.DispenseRecord
}

func newMockMedicineRepo() *mockMedicineRepo {
	return &mockMedicineRepo{medicines: make(map[uuid.UUID]*entity.Medicine)}
}

func (m *mockMedicineRepo) Create(_ context.Context, med *entity.Medicine) error {
	if med.ID == uuid.Nil {
		med.ID = uuid.New()
	}
	m.medicines[med.ID] = med
	return nil
}

func (m *mockMedicineRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Medicine, error) {
	med, ok := m.medicines[id]
	if !ok {
		return nil, nil
	}
	// Return a copy, like the real repository: callers must not observe
	// later in-store mutations (e.g. Dispense) through this pointer.
	cp := *med
	return &cp, nil
}

func (m *mockMedicineRepo) GetByCode(_ context.Context, code string) (*entity.Medicine, error) {
	for _, med := range m.medicines {
		if med.Code == code {
			return med, nil
		}
	}
	return nil, nil
}

func (m *mockMedicineRepo) Update(_ context.Context, med *entity.Medicine) error {
	m.medicines[med.ID] = med
	return nil
}

func (m *mockMedicineRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.medicines, id)
	return nil
}

func (m *mockMedicineRepo) List(_ context.Context, _ *repository.MedicineFilterParams) ([]entity.Medicine, int64, error) {
	all, _ := m.ListAll(context.Background())
	return all, int64(len(all)), nil
}

func (m *mockMedicineRepo) ListAll(_ context.Context) ([]entity.Medicine, error) {
	out := make([]entity.Medicine, 0, len(m.medicines))
	for _, med := range m.medicines {
		out = append(out, *med)
	}
	return out, nil
}

func (m *mockMedicineRepo) ListLowStock(_ context.Context) ([]entity.Medicine, error) {
	var out []entity.Medicine
	for _, med := range m.medicines {
		if med.Quantity <= med.MinThreshold {
			out = append(out, *med)
		}
	}
	return out, nil
}

func (m *mockMedicineRepo) ListExpiringBefore(_ context.Context, cutoff time.Time) ([]entity.Medicine, error) {
	var out []entity.Medicine
	for _, med := range m.medicines {
		if med.ExpiryDate.Before(cutoff) {
			out = append(out, *med)
		}
	}
	return out, nil
}

func (m *mockMedicineRepo) Restock(_ context.Context, id uuid.UUID, quantity int) (int, error) {
	med, ok := m.medicines[id]
	if !ok {
		return 0, nil
	}
	med.Quantity += quantity
	return med.Quantity, nil
}

func (m *mockMedicineRepo) Dispense(_ context.Context, record *entity.DispenseRecord) (int, error) {
	med, ok := m.medicines[record.MedicineID]
	if !ok || med.Quantity < record.Quantity {
		return 0, repository.ErrInsufficientStock
	}
	med.Quantity -= record.Quantity
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	m.dispenses = append(m.dispenses, *record)
	return med.Quantity, nil
}

type mockDispenseRepo struct {
	medicineRepo *mockMedicineRepo
}

func (m *mockDispenseRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.DispenseRecord, error) {
	for i := range m.medicineRepo.dispenses {
		if m.medicineRepo.dispenses[i].ID == id {
			return &m.medicineRepo.dispenses[i], nil
		}
	}
	return nil, nil
}

func (m *mockDispenseRepo) ListByMedicine(_ context.Context, medicineID uuid.UUID, _ *pagination.PaginationParams) ([]entity.DispenseRecord, int64, error) {
	var out []entity.DispenseRecord
	for _, d := range m.medicineRepo.dispenses {
		if d.MedicineID == medicineID {
			out = append(out, d)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockDispenseRepo) ListByPatient(_ context.Context, patientID uuid.UUID, _ *pagination.PaginationParams) ([]entity.DispenseRecord, int64, error) {
	var out []entity.DispenseRecord
	for _, d := range m.medicineRepo.dispenses {
		if d.PatientID == patientID {
			out = append(out, d)
		}
	}
	return out, int64(len(out)), nil
}

type mockUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (m *mockUserRepo) Create(_ context.Context, u *entity.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return m.users[id], nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) Update(_ context.Context, u *entity.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) List(_ context.Context, _ *pagination.PaginationParams, _ string, _ *enum.Role) ([]entity.User, int64, error) {
	out := make([]entity.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (m *mockUserRepo) ListByRole(_ context.Context, roles ...enum.Role) ([]entity.User, error) {
	var out []entity.User
	for _, u := range m.users {
		if !u.Active {
			continue
		}
		for _, r := range roles {
			if u.Role == r {
				out = append(out, *u)
				break
			}
		}
	}
	return out, nil
}

type mockNotificationRepo struct {
	notifications []entity.Notification
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{}
}

func (m *mockNotificationRepo) Create(_ context.Context, n *entity.Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	m.notifications = append(m.notifications, *n)
	return nil
}

func (m *mockNotificationRepo) CreateBatch(_ context.Context, ns []entity.Notification) error {
	for i := range ns {
		if ns[i].ID == uuid.Nil {
			ns[i].ID = uuid.New()
		}
		m.notifications = append(m.notifications, ns[i])
	}
	return nil
}

func (m *mockNotificationRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Notification, error) {
	for i := range m.notifications {
		if m.notifications[i].ID == id {
			return &m.notifications[i], nil
		}
	}
	return nil, nil
}

func (m *mockNotificationRepo) ListByUser(_ context.Context, userID uuid.UUID, _ *pagination.PaginationParams, unreadOnly bool) ([]entity.Notification, int64, error) {
	var out []entity.Notification
	for _, n := range m.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.Read {
			continue
		}
		out = append(out, n)
	}
	return out, int64(len(out)), nil
}

func (m *mockNotificationRepo) CountUnread(_ context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for _, notif := range m.notifications {
		if notif.UserID == userID && !notif.Read {
			n++
		}
	}
	return n, nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, id, userID uuid.UUID) error {
	for i := range m.notifications {
		if m.notifications[i].ID == id && m.notifications[i].UserID == userID {
			m.notifications[i].Read = true
		}
	}
	return nil
}

func (m *mockNotificationRepo) MarkAllRead(_ context.Context, userID uuid.UUID) error {
	for i := range m.notifications {
		if m.notifications[i].UserID == userID {
			m.notifications[i].Read = true
		}
	}
	return nil
}

func (m *mockNotificationRepo) Delete(_ context.Context, id, userID uuid.UUID) error {
	for i := range m.notifications {
		if m.notifications[i].ID == id && m.notifications[i].UserID == userID {
			m.notifications = append(m.notifications[:i], m.notifications[i+1:]...)
			return nil
		}
	}
	return nil
}
