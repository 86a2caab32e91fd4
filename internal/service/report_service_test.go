package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/model"
)

func TestReportService_GetReports(t *testing.T) {
	store := newMockStore()
	fe := store.groups.add("Fe")
	amor := store.groups.add("Amor")
	ana := store.beneficiaries.add("Ana", "V-1", fe.GroupID, model.StatusActive)
	beto := store.beneficiaries.add("Beto", "V-2", amor.GroupID, model.StatusActive)
	store.beneficiaries.rows[ana.BeneficiaryID].Zone = "Centro"

	ctx := context.Background()
	_ = store.attendances.Create(ctx, &model.Attendance{
		BeneficiaryID: ana.BeneficiaryID, Date: day(2026, 2, 3), Status: model.AttendancePresent,
		ReceivedFood: true, ReceivedMedical: true, ClothesQuantity: 4,
	})
	_ = store.attendances.Create(ctx, &model.Attendance{
		BeneficiaryID: beto.BeneficiaryID, Date: day(2026, 2, 12), Status: model.AttendancePresent,
		ReceivedFood: true,
	})

	svc := NewReportService(store.repository(), zap.NewNop())
	resp, err := svc.GetReports(ctx)
	if err != nil {
		t.Fatalf("GetReports failed: %v", err)
	}

	if resp.General.Beneficiaries != 2 || resp.General.Food != 2 || resp.General.Medical != 1 || resp.General.Clothes != 4 {
		t.Errorf("unexpected general stats %+v", resp.General)
	}

	zones := map[string]int64{}
	for _, z := range resp.Zones {
		zones[z.Name] = z.Value
	}
	if zones["Centro"] != 1 || zones[model.ZoneUnknown] != 1 {
		t.Errorf("unexpected zones %v", zones)
	}

	for _, g := range resp.Groups {
		switch g.Name {
		case "Fe":
			if g.Food != 1 || g.Medical != 1 || g.ClothesItems != 4 {
				t.Errorf("unexpected Fe stats %+v", g)
			}
		case "Amor":
			if g.Food != 1 || g.Medical != 0 || g.ClothesItems != 0 {
				t.Errorf("unexpected Amor stats %+v", g)
			}
		}
	}
}

func TestReportService_GetDashboard(t *testing.T) {
	store := newMockStore()
	fe := store.groups.add("Fe")
	ana := store.beneficiaries.add("Ana", "V-1", fe.GroupID, model.StatusActive)
	for d := 1; d <= 7; d++ {
		_ = store.attendances.Create(context.Background(), &model.Attendance{
			BeneficiaryID: ana.BeneficiaryID, Date: day(2026, 3, d), Status: model.AttendancePresent,
		})
	}

	svc := NewReportService(store.repository(), zap.NewNop())
	resp, err := svc.GetDashboard(context.Background())
	if err != nil {
		t.Fatalf("GetDashboard failed: %v", err)
	}
	if resp.TotalBeneficiaries != 1 || len(resp.Groups) != 1 {
		t.Errorf("unexpected dashboard header %+v", resp)
	}
	if len(resp.RecentAttendances) != dashboardRecentLimit {
		t.Fatalf("expected %d recent attendances, got %d", dashboardRecentLimit, len(resp.RecentAttendances))
	}
	recent := resp.RecentAttendances[0]
	if recent.Date != "2026-03-07" || recent.Beneficiary == nil || recent.Group == nil || recent.Group.Name != "Fe" {
		t.Errorf("unexpected most recent attendance %+v", recent)
	}
}
