package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/dto"
	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/model"
)

func setupTestBeneficiary() (BeneficiaryService, *mockStore, *model.Group) {
	store := newMockStore()
	fe := store.groups.add("Fe")
	return NewBeneficiaryService(store.repository(), zap.NewNop()), store, fe
}

func TestBeneficiaryService_Create(t *testing.T) {
	svc, _, fe := setupTestBeneficiary()

	resp, err := svc.Create(context.Background(), &dto.CreateBeneficiaryRequest{
		FullName:   " María Gómez ",
		NationalID: "V-100",
		BirthDate:  "1960-05-10",
		GroupID:    &fe.GroupID,
		Children:   []dto.ChildRequest{{FullName: "Pedro"}},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if resp.FullName != "María Gómez" {
		t.Errorf("expected trimmed name, got %q", resp.FullName)
	}
	if resp.Status != model.StatusActive || resp.Gender != "U" || !resp.HasChildren {
		t.Errorf("unexpected defaults %+v", resp)
	}
	if resp.Group == nil || resp.Group.Name != "Fe" {
		t.Errorf("expected group Fe, got %+v", resp.Group)
	}
}

func TestBeneficiaryService_Create_DuplicateNationalID(t *testing.T) {
	svc, store, _ := setupTestBeneficiary()
	store.beneficiaries.add("Ana", "V-1", "", model.StatusActive)

	_, err := svc.Create(context.Background(), &dto.CreateBeneficiaryRequest{FullName: "Otra", NationalID: "V-1"})
	if !errors.Is(err, ErrBeneficiaryNationalIDUse) {
		t.Errorf("expected ErrBeneficiaryNationalIDUse, got %v", err)
	}
}

func TestBeneficiaryService_Create_UnknownGroup(t *testing.T) {
	svc, _, _ := setupTestBeneficiary()

	_, err := svc.Create(context.Background(), &dto.CreateBeneficiaryRequest{FullName: "Ana", NationalID: "V-1", GroupID: strPtr("missing")})
	if !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("expected ErrGroupNotFound, got %v", err)
	}
}

func TestBeneficiaryService_Update_StaleVersion(t *testing.T) {
	svc, store, _ := setupTestBeneficiary()
	b := store.beneficiaries.add("Ana", "V-1", "", model.StatusActive)
	ctx := context.Background()

	resp, err := svc.Update(ctx, b.BeneficiaryID, &dto.UpdateBeneficiaryRequest{Version: 1, Zone: strPtr("Norte")})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if resp.Zone != "Norte" || resp.Version != 2 {
		t.Errorf("unexpected update result zone=%s version=%d", resp.Zone, resp.Version)
	}

	_, err = svc.Update(ctx, b.BeneficiaryID, &dto.UpdateBeneficiaryRequest{Version: 1, Zone: strPtr("Sur")})
	if !errors.Is(err, ErrBeneficiaryVersionStale) {
		t.Errorf("expected ErrBeneficiaryVersionStale, got %v", err)
	}
}

func TestBeneficiaryService_Update_ReplacesChildren(t *testing.T) {
	svc, store, _ := setupTestBeneficiary()
	b := store.beneficiaries.add("Ana", "V-1", "", model.StatusActive)

	children := []dto.ChildRequest{{FullName: "Luis"}, {FullName: "Sofía", Gender: "F"}}
	if _, err := svc.Update(context.Background(), b.BeneficiaryID, &dto.UpdateBeneficiaryRequest{Version: 1, Children: &children}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got := len(store.beneficiaries.rows[b.BeneficiaryID].Children); got != 2 {
		t.Errorf("expected 2 children, got %d", got)
	}
}

func TestBeneficiaryService_MoveAndStatus(t *testing.T) {
	svc, store, fe := setupTestBeneficiary()
	b := store.beneficiaries.add("Ana", "V-1", "", model.StatusActive)
	ctx := context.Background()

	resp, err := svc.Move(ctx, b.BeneficiaryID, &dto.MoveBeneficiaryRequest{GroupID: &fe.GroupID})
	if err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if resp.Group == nil || resp.Group.ID != fe.GroupID {
		t.Error("expected beneficiary in Fe")
	}

	resp, err = svc.Move(ctx, b.BeneficiaryID, &dto.MoveBeneficiaryRequest{})
	if err != nil {
		t.Fatalf("Move to unassigned failed: %v", err)
	}
	if resp.Group != nil {
		t.Error("expected unassigned beneficiary")
	}

	resp, err = svc.SetStatus(ctx, b.BeneficiaryID, &dto.SetStatusRequest{Status: model.StatusInactive})
	if err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if resp.Status != model.StatusInactive {
		t.Errorf("expected Inactivo, got %s", resp.Status)
	}

	if _, err := svc.SetStatus(ctx, "missing", &dto.SetStatusRequest{Status: model.StatusActive}); !errors.Is(err, ErrBeneficiaryNotFound) {
		t.Errorf("expected ErrBeneficiaryNotFound, got %v", err)
	}
}

func TestBeneficiaryService_GetByID_RecentAttendances(t *testing.T) {
	svc, store, fe := setupTestBeneficiary()
	b := store.beneficiaries.add("Ana", "V-1", fe.GroupID, model.StatusActive)
	for d := 1; d <= 12; d++ {
		_ = store.attendances.Create(context.Background(), &model.Attendance{
			BeneficiaryID: b.BeneficiaryID,
			Date:          day(2026, 1, d),
			Status:        model.AttendancePresent,
		})
	}

	resp, err := svc.GetByID(context.Background(), b.BeneficiaryID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(resp.RecentAttendances) != recentAttendanceLimit {
		t.Errorf("expected %d attendances, got %d", recentAttendanceLimit, len(resp.RecentAttendances))
	}
	if resp.RecentAttendances[0].Date != "2026-01-12" {
		t.Errorf("expected newest first, got %s", resp.RecentAttendances[0].Date)
	}
}

func TestBeneficiaryService_List_Filters(t *testing.T) {
	svc, store, fe := setupTestBeneficiary()
	store.beneficiaries.add("Ana", "V-1", fe.GroupID, model.StatusActive)
	store.beneficiaries.add("Beto", "V-2", "", model.StatusActive)
	store.beneficiaries.add("Carla", "V-3", fe.GroupID, model.StatusInactive)

	list, total, err := svc.List(context.Background(), &dto.ListBeneficiariesRequest{GroupID: fe.GroupID, Status: model.StatusActive})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 1 || list[0].FullName != "Ana" {
		t.Errorf("unexpected filtered list total=%d", total)
	}

	list, total, _ = svc.List(context.Background(), &dto.ListBeneficiariesRequest{Unassigned: true})
	if total != 1 || list[0].FullName != "Beto" {
		t.Errorf("expected only Beto unassigned, total=%d", total)
	}
}
