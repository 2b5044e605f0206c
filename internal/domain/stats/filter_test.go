package stats

import (
	"reflect"
	"testing"
	"time"

	"github.com/medicore/hms-api/internal/domain/entity"
	"github.com/medicore/hms-api/internal/domain/enum"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func testPatients() []entity.Patient {
	dob := func(y int) time.Time { return time.Date(y, 6, 1, 0, 0, 0, 0, time.UTC) }
	return []entity.Patient{
		{PatientNo: "PAT-001", FirstName: "Asha", LastName: "Verma", Gender: enum.GenderFemale, Status: enum.PatientStatusActive, DateOfBirth: dob(1990), Email: strPtr("asha@example.com")},
		{PatientNo: "PAT-002", FirstName: "Rahul", LastName: "Mehta", Gender: enum.GenderMale, Status: enum.PatientStatusActive, DateOfBirth: dob(1955)},
		{PatientNo: "PAT-003", FirstName: "Sameer", LastName: "Khan", Gender: enum.GenderMale, Status: enum.PatientStatusInactive, DateOfBirth: dob(2015)},
	}
}

func TestFilterPatientsEmptyFilterIsIdentity(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	patients := testPatients()

	got := FilterPatients(patients, PatientFilter{}, now)

	if !reflect.DeepEqual(got, patients) {
		t.Errorf("empty filter changed the collection: got %d items, want %d in original order", len(got), len(patients))
	}
}

func TestFilterPatientsAllSentinel(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	patients := testPatients()

	got := FilterPatients(patients, PatientFilter{Gender: "all", Status: "all"}, now)

	if len(got) != len(patients) {
		t.Errorf("'all' sentinel filtered items: got %d, want %d", len(got), len(patients))
	}
}

func TestFilterPatientsDimensionsAreANDed(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	patients := testPatients()

	got := FilterPatients(patients, PatientFilter{Gender: "male", Status: "active"}, now)

	if len(got) != 1 || got[0].PatientNo != "PAT-002" {
		t.Errorf("got %d items, want exactly PAT-002", len(got))
	}
}

func TestFilterPatientsSearchIsCaseInsensitiveSubstring(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	patients := testPatients()

	for _, search := range []string{"asha", "ASHA", "sha", "pat-001", "asha@example"} {
		got := FilterPatients(patients, PatientFilter{Search: search}, now)
		if len(got) != 1 || got[0].PatientNo != "PAT-001" {
			t.Errorf("search %q: got %d items, want PAT-001", search, len(got))
		}
	}
}

func TestFilterPatientsAgeRangeInclusive(t *testing.T) {
	now := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	patients := testPatients() // ages: 36, 71, 11

	got := FilterPatients(patients, PatientFilter{MinAge: intPtr(11), MaxAge: intPtr(36)}, now)

	if len(got) != 2 {
		t.Fatalf("got %d items, want 2 (bounds inclusive)", len(got))
	}
	if got[0].PatientNo != "PAT-001" || got[1].PatientNo != "PAT-003" {
		t.Errorf("wrong subset: %s, %s", got[0].PatientNo, got[1].PatientNo)
	}
}

func TestFilterPatientsIdempotent(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	patients := testPatients()
	f := PatientFilter{Gender: "male"}

	once := FilterPatients(patients, f, now)
	twice := FilterPatients(once, f, now)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("filter not idempotent: %d items then %d", len(once), len(twice))
	}
}

func TestFilterInvoicesOverdueOnly(t *testing.T) {
	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	invoices := []entity.Invoice{
		{InvoiceNo: "INV-1", Status: enum.InvoiceStatusPending, DueDate: now.AddDate(0, 0, -2)},
		{InvoiceNo: "INV-2", Status: enum.InvoiceStatusPaid, DueDate: now.AddDate(0, 0, -2)},
		{InvoiceNo: "INV-3", Status: enum.InvoiceStatusPending, DueDate: now.AddDate(0, 0, 2)},
	}

	got := FilterInvoices(invoices, InvoiceFilter{OverdueOnly: true}, now)

	if len(got) != 1 || got[0].InvoiceNo != "INV-1" {
		t.Errorf("got %d items, want only INV-1 (paid never overdue)", len(got))
	}
}

func TestFilterInvoicesTotalRange(t *testing.T) {
	now := time.Now()
	min, max := 100.0, 500.0
	invoices := []entity.Invoice{
		{InvoiceNo: "INV-1", Total: 9999},  // 99.99
		{InvoiceNo: "INV-2", Total: 10000}, // 100.00, on the bound
		{InvoiceNo: "INV-3", Total: 50000}, // 500.00, on the bound
		{InvoiceNo: "INV-4", Total: 50001}, // 500.01
	}

	got := FilterInvoices(invoices, InvoiceFilter{MinTotal: &min, MaxTotal: &max}, now)

	if len(got) != 2 || got[0].InvoiceNo != "INV-2" || got[1].InvoiceNo != "INV-3" {
		t.Errorf("got %d items, want INV-2 and INV-3 (bounds inclusive)", len(got))
	}
}

func TestFilterMedicinesByDerivedStatus(t *testing.T) {
	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	medicines := []entity.Medicine{
		{Code: "MED-1", Name: "Paracetamol", Quantity: 100, MinThreshold: 10, ExpiryDate: now.AddDate(1, 0, 0)},
		{Code: "MED-2", Name: "Amoxicillin", Quantity: 0, MinThreshold: 10, ExpiryDate: now.AddDate(1, 0, 0)},
		{Code: "MED-3", Name: "Insulin", Quantity: 20, MinThreshold: 10, ExpiryDate: now.AddDate(0, 0, -1)},
	}

	got := FilterMedicines(medicines, MedicineFilter{Status: "out_of_stock"}, now)

	if len(got) != 1 || got[0].Code != "MED-2" {
		t.Errorf("got %d items, want only MED-2", len(got))
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	tests := []struct {
		name    string
		page    int
		perPage int
		want    []int
	}{
		{"first page", 1, 3, []int{1, 2, 3}},
		{"middle page", 2, 3, []int{4, 5, 6}},
		{"short last page", 3, 3, []int{7}},
		{"past the end", 4, 3, []int{}},
		{"invalid page clamps to first", 0, 3, []int{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Paginate(items, tt.page, tt.perPage); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Paginate(%d, %d) = %v, want %v", tt.page, tt.perPage, got, tt.want)
			}
		})
	}
}
