package middleware

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/medicore/hms-api/internal/domain/entity"
	"github.com/medicore/hms-api/internal/domain/repository"
)

type mockPatientRepo struct {
	byUserID map[uuid.UUID]*entity.Patient
}

func newMockPatientRepo() *mockPatientRepo {
	return &mockPatientRepo{byUserID: make(map[uuid.UUID]*entity.Patient)}
}

func (m *mockPatientRepo) Create(_ context.Context, p *entity.Patient) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.UserID != nil {
		m.byUserID[*p.UserID] = p
	}
	return nil
}

func (m *mockPatientRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Patient, error) {
	for _, p := range m.byUserID {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (m *mockPatientRepo) GetByPatientNo(_ context.Context, _ string) (*entity.Patient, error) {
	return nil, nil
}

func (m *mockPatientRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*entity.Patient, error) {
	return m.byUserID[userID], nil
}

func (m *mockPatientRepo) Update(_ context.Context, _ *entity.Patient) error { return nil }
func (m *mockPatientRepo) Delete(_ context.Context, _ uuid.UUID) error       { return nil }

func (m *mockPatientRepo) List(_ context.Context, _ *repository.PatientFilterParams) ([]entity.Patient, int64, error) {
	return nil, 0, nil
}

func (m *mockPatientRepo) ListAll(_ context.Context) ([]entity.Patient, error) {
	return nil, nil
}

func (m *mockPatientRepo) CountCreatedSince(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

type mockIdempotencyRepo struct {
	keys map[string]*entity.IdempotencyKey
}

func newMockIdempotencyRepo() *mockIdempotencyRepo {
	return &mockIdempotencyRepo{keys: make(map[string]*entity.IdempotencyKey)}
}

func (m *mockIdempotencyRepo) GetByKey(_ context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	ikey, ok := m.keys[key+"/"+userID.String()]
	if !ok {
		return nil, nil
	}
	return ikey, nil
}

func (m *mockIdempotencyRepo) Create(_ context.Context, ikey *entity.IdempotencyKey) error {
	m.keys[ikey.Key+"/"+ikey.UserID.String()] = ikey
	return nil
}

func (m *mockIdempotencyRepo) DeleteExpired(_ context.Context) error { return nil }
