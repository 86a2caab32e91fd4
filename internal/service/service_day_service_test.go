package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/dto"
	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/model"
	"github.com/suplidoraindustrial6s-lab/caritas-app/pkg/calendar"
)

// Fe roster: Ana, Beto, Carla active, Dora inactive. Eva belongs to Amor.
type closeDayFixture struct {
	svc    ServiceDayService
	store  *mockStore
	locker *mockLocker
	fe     *model.Group
	ana    *model.Beneficiary
}

func setupTestCloseDay(t *testing.T) *closeDayFixture {
	t.Helper()
	store := newMockStore()
	fe := store.groups.add("Fe")
	amor := store.groups.add("Amor")

	ana := store.beneficiaries.add("Ana", "V-1", fe.GroupID, model.StatusActive)
	store.beneficiaries.add("Beto", "V-2", fe.GroupID, model.StatusActive)
	store.beneficiaries.add("Carla", "V-3", fe.GroupID, model.StatusActive)
	store.beneficiaries.add("Dora", "V-4", fe.GroupID, model.StatusInactive)
	store.beneficiaries.add("Eva", "V-5", amor.GroupID, model.StatusActive)

	_ = store.attendances.Create(context.Background(), &model.Attendance{
		BeneficiaryID:   ana.BeneficiaryID,
		Date:            day(2026, 2, 3),
		Status:          model.AttendancePresent,
		ReceivedFood:    true,
		FoodQuantity:    2,
		ReceivedClothes: true,
		ClothesQuantity: 3,
		ReceivedMedical: true,
	})

	locker := newMockLocker()
	svc := NewServiceDayService(store.repository(), locker, 0, nil, zap.NewNop())
	return &closeDayFixture{svc: svc, store: store, locker: locker, fe: fe, ana: ana}
}

// ── CloseDay ──

func TestServiceDayService_CloseDay_CreatesAbsences(t *testing.T) {
	f := setupTestCloseDay(t)

	resp, err := f.svc.CloseDay(context.Background(), &dto.CloseDayRequest{GroupID: f.fe.GroupID, Date: "2026-02-03"})
	if err != nil {
		t.Fatalf("CloseDay failed: %v", err)
	}
	if resp.Total != 3 || resp.Present != 1 || resp.Absent != 2 {
		t.Errorf("expected {3,1,2}, got {%d,%d,%d}", resp.Total, resp.Present, resp.Absent)
	}

	absent := 0
	for _, a := range f.store.attendances.rows {
		if !a.IsAbsent() {
			continue
		}
		absent++
		if a.FoodQuantity != 0 || a.ClothesQuantity != 0 || a.ReceivedMedical {
			t.Errorf("absence row must carry zeroed deliveries: %+v", a)
		}
		if calendar.FormatDay(a.Date) != "2026-02-03" {
			t.Errorf("absence on wrong date %s", calendar.FormatDay(a.Date))
		}
		b := f.store.beneficiaries.rows[a.BeneficiaryID]
		if b.FullName != "Beto" && b.FullName != "Carla" {
			t.Errorf("unexpected absentee %s", b.FullName)
		}
	}
	if absent != 2 {
		t.Errorf("expected 2 absence rows, got %d", absent)
	}
}

func TestServiceDayService_CloseDay_Idempotent(t *testing.T) {
	f := setupTestCloseDay(t)
	ctx := context.Background()
	req := &dto.CloseDayRequest{GroupID: f.fe.GroupID, Date: "2026-02-03"}

	if _, err := f.svc.CloseDay(ctx, req); err != nil {
		t.Fatalf("first CloseDay failed: %v", err)
	}
	rowsAfterFirst := len(f.store.attendances.rows)

	resp, err := f.svc.CloseDay(ctx, req)
	if err != nil {
		t.Fatalf("second CloseDay failed: %v", err)
	}
	if resp.Absent != 0 {
		t.Errorf("second run must not add absences, got %d", resp.Absent)
	}
	if len(f.store.attendances.rows) != rowsAfterFirst {
		t.Errorf("second run wrote rows: %d -> %d", rowsAfterFirst, len(f.store.attendances.rows))
	}
}

func TestServiceDayService_CloseDay_InactiveNeverCounted(t *testing.T) {
	f := setupTestCloseDay(t)

	if _, err := f.svc.CloseDay(context.Background(), &dto.CloseDayRequest{GroupID: f.fe.GroupID, Date: "2026-02-03"}); err != nil {
		t.Fatalf("CloseDay failed: %v", err)
	}
	for _, a := range f.store.attendances.rows {
		if f.store.beneficiaries.rows[a.BeneficiaryID].FullName == "Dora" {
			t.Fatal("inactive beneficiary received an absence row")
		}
	}
}

func TestServiceDayService_CloseDay_InactivePresenceNotCounted(t *testing.T) {
	f := setupTestCloseDay(t)
	ctx := context.Background()

	var doraID string
	for id, b := range f.store.beneficiaries.rows {
		if b.FullName == "Dora" {
			doraID = id
		}
	}
	if err := f.store.attendances.Create(ctx, &model.Attendance{
		BeneficiaryID: doraID,
		Date:          day(2026, 2, 3),
		Status:        model.AttendancePresent,
		ReceivedFood:  true,
		FoodQuantity:  1,
	}); err != nil {
		t.Fatalf("seed attendance failed: %v", err)
	}

	resp, err := f.svc.CloseDay(ctx, &dto.CloseDayRequest{GroupID: f.fe.GroupID, Date: "2026-02-03"})
	if err != nil {
		t.Fatalf("CloseDay failed: %v", err)
	}
	if resp.Total != 3 || resp.Present != 1 || resp.Absent != 2 {
		t.Errorf("expected {3,1,2}, got {%d,%d,%d}", resp.Total, resp.Present, resp.Absent)
	}
}

func TestServiceDayService_CloseDay_GroupNotFound(t *testing.T) {
	f := setupTestCloseDay(t)

	_, err := f.svc.CloseDay(context.Background(), &dto.CloseDayRequest{GroupID: "missing", Date: "2026-02-03"})
	if !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("expected ErrGroupNotFound, got %v", err)
	}
	if len(f.store.attendances.rows) != 1 {
		t.Error("failed close must not write rows")
	}
}

func TestServiceDayService_CloseDay_LockHeld(t *testing.T) {
	f := setupTestCloseDay(t)
	f.locker.held["close_day:"+f.fe.GroupID+":2026-02-03"] = "other"

	_, err := f.svc.CloseDay(context.Background(), &dto.CloseDayRequest{GroupID: f.fe.GroupID, Date: "2026-02-03"})
	if !errors.Is(err, ErrCloseDayInProgress) {
		t.Errorf("expected ErrCloseDayInProgress, got %v", err)
	}
}

func TestServiceDayService_CloseDay_ReleasesLock(t *testing.T) {
	f := setupTestCloseDay(t)

	if _, err := f.svc.CloseDay(context.Background(), &dto.CloseDayRequest{GroupID: f.fe.GroupID, Date: "2026-02-03"}); err != nil {
		t.Fatalf("CloseDay failed: %v", err)
	}
	if f.locker.acquired != 1 || f.locker.released != 1 || len(f.locker.held) != 0 {
		t.Errorf("lock not released: acquired=%d released=%d held=%v",
			f.locker.acquired, f.locker.released, f.locker.held)
	}
}

func TestServiceDayService_CloseDay_WithoutLocker(t *testing.T) {
	f := setupTestCloseDay(t)
	svc := NewServiceDayService(f.store.repository(), nil, 0, nil, zap.NewNop())

	resp, err := svc.CloseDay(context.Background(), &dto.CloseDayRequest{GroupID: f.fe.GroupID, Date: "2026-02-03"})
	if err != nil {
		t.Fatalf("CloseDay failed: %v", err)
	}
	if resp.Absent != 2 {
		t.Errorf("expected 2 absences, got %d", resp.Absent)
	}
}

func TestServiceDayService_CloseDay_InvalidDate(t *testing.T) {
	f := setupTestCloseDay(t)

	_, err := f.svc.CloseDay(context.Background(), &dto.CloseDayRequest{GroupID: f.fe.GroupID, Date: "2026-13-40"})
	if !errors.Is(err, ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
}

// ── GetDayReport ──

func TestServiceDayService_GetDayReport_Stats(t *testing.T) {
	f := setupTestCloseDay(t)
	ctx := context.Background()

	if _, err := f.svc.CloseDay(ctx, &dto.CloseDayRequest{GroupID: f.fe.GroupID, Date: "2026-02-03"}); err != nil {
		t.Fatalf("CloseDay failed: %v", err)
	}

	report, err := f.svc.GetDayReport(ctx, &dto.DayReportQuery{GroupID: f.fe.GroupID, Date: "2026-02-03"})
	if err != nil {
		t.Fatalf("GetDayReport failed: %v", err)
	}
	want := dto.DayReportStats{
		TotalBeneficiaries: 3,
		Present:            1,
		Absent:             2,
		FoodPacks:          2,
		ClothesPieces:      3,
		MedicalAttention:   1,
	}
	if report.Stats != want {
		t.Errorf("expected %+v, got %+v", want, report.Stats)
	}
	if report.GroupName != "Fe" || len(report.Records) != 3 {
		t.Errorf("unexpected report header: %s with %d records", report.GroupName, len(report.Records))
	}
	if report.Records[0].Beneficiary == nil || report.Records[0].Beneficiary.FullName != "Ana" {
		t.Error("records must be ordered by beneficiary name with beneficiary info")
	}
}

func TestServiceDayService_GetDayReport_EmptyDay(t *testing.T) {
	f := setupTestCloseDay(t)

	report, err := f.svc.GetDayReport(context.Background(), &dto.DayReportQuery{GroupID: f.fe.GroupID, Date: "2026-02-10"})
	if err != nil {
		t.Fatalf("GetDayReport failed: %v", err)
	}
	if len(report.Records) != 0 || report.Stats.TotalBeneficiaries != 0 {
		t.Errorf("expected empty report, got %+v", report.Stats)
	}
}
