package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/model"
	"github.com/suplidoraindustrial6s-lab/caritas-app/pkg/calendar"
)

func TestGroupService_Seed_Idempotent(t *testing.T) {
	store := newMockStore()
	svc := NewGroupService(store.repository(), calendar.DefaultRotation, zap.NewNop())
	ctx := context.Background()

	first, err := svc.Seed(ctx)
	if err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if len(first) != 5 {
		t.Fatalf("expected 5 groups, got %d", len(first))
	}
	if first[4].Name != WaitingListGroup {
		t.Errorf("expected waiting list last, got %s", first[4].Name)
	}

	second, err := svc.Seed(ctx)
	if err != nil {
		t.Fatalf("second Seed failed: %v", err)
	}
	if len(store.groups.groups) != 5 {
		t.Errorf("seed must not duplicate groups, have %d", len(store.groups.groups))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("group %s changed id", first[i].Name)
		}
	}
}

func TestGroupService_GetWithRoster(t *testing.T) {
	store := newMockStore()
	fe := store.groups.add("Fe")
	store.beneficiaries.add("Zoe", "V-2", fe.GroupID, model.StatusActive)
	store.beneficiaries.add("Ana", "V-1", fe.GroupID, model.StatusActive)
	store.beneficiaries.add("Inés", "V-3", fe.GroupID, model.StatusInactive)
	svc := NewGroupService(store.repository(), calendar.DefaultRotation, zap.NewNop())

	resp, err := svc.GetWithRoster(context.Background(), fe.GroupID)
	if err != nil {
		t.Fatalf("GetWithRoster failed: %v", err)
	}
	if len(resp.Beneficiaries) != 2 || resp.Beneficiaries[0].FullName != "Ana" {
		t.Errorf("expected active roster ordered by name, got %+v", resp.Beneficiaries)
	}

	if _, err := svc.GetWithRoster(context.Background(), "missing"); !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("expected ErrGroupNotFound, got %v", err)
	}
}
