package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"dieselx/internal/repository"
)

// fakeRepo returns canned rows; the aggregation logic under test lives in
// the service.
type fakeRepo struct {
	activeEquipment int64
	activeTasks     int64
	completed       int64
	dueForService   int64
	overdueCount    int64

	created    []repository.AttentionTaskRow
	overdue    []repository.AttentionTaskRow
	defects    []repository.CriticalDefectRow
	down       []repository.EquipmentAlertRow
	candidates []repository.EquipmentAlertRow
	recent     []repository.RecentTaskRow

	completedSince  time.Time
	attentionLimits []int
}

func (f *fakeRepo) CountActiveEquipment(ctx context.Context, orgID string) (int64, error) {
	return f.activeEquipment, nil
}

func (f *fakeRepo) CountActiveTasks(ctx context.Context, orgID string) (int64, error) {
	return f.activeTasks, nil
}

func (f *fakeRepo) CountCompletedSince(ctx context.Context, orgID string, since time.Time) (int64, error) {
	f.completedSince = since
	return f.completed, nil
}

func (f *fakeRepo) CountDueForService(ctx context.Context, orgID string) (int64, error) {
	return f.dueForService, nil
}

func (f *fakeRepo) CountOverdueTasks(ctx context.Context, orgID string, now time.Time) (int64, error) {
	return f.overdueCount, nil
}

func (f *fakeRepo) CreatedTasks(ctx context.Context, orgID string, limit int) ([]repository.AttentionTaskRow, error) {
	f.attentionLimits = append(f.attentionLimits, limit)
	return f.created, nil
}

func (f *fakeRepo) OverdueTasks(ctx context.Context, orgID string, now time.Time, limit int) ([]repository.AttentionTaskRow, error) {
	f.attentionLimits = append(f.attentionLimits, limit)
	return f.overdue, nil
}

func (f *fakeRepo) UnlinkedCriticalDefects(ctx context.Context, orgID string, limit int) ([]repository.CriticalDefectRow, error) {
	f.attentionLimits = append(f.attentionLimits, limit)
	return f.defects, nil
}

func (f *fakeRepo) BrokenDownEquipment(ctx context.Context, orgID string, limit int) ([]repository.EquipmentAlertRow, error) {
	return f.down, nil
}

func (f *fakeRepo) ServiceCandidates(ctx context.Context, orgID string) ([]repository.EquipmentAlertRow, error) {
	return f.candidates, nil
}

func (f *fakeRepo) RecentTasks(ctx context.Context, orgID string, limit int) ([]repository.RecentTaskRow, error) {
	return f.recent, nil
}

func intPtr(v int) *int { return &v }

func hoursCandidate(id string, reading, due, interval int) repository.EquipmentAlertRow {
	return repository.EquipmentAlertRow{
		EquipmentID:          id,
		EquipmentName:        id,
		CustomerName:         "Westgate Quarry",
		TrackingUnit:         "hours",
		CurrentReading:       reading,
		NextServiceDue:       intPtr(due),
		ServiceIntervalHours: intPtr(interval),
	}
}

func TestEquipmentAlertsApproachingThreshold(t *testing.T) {
	repo := &fakeRepo{
		candidates: []repository.EquipmentAlertRow{
			// interval 100: included at 10 remaining, excluded at 11.
			hoursCandidate("at-threshold", 990, 1000, 100),
			hoursCandidate("just-over", 989, 1000, 100),
			hoursCandidate("close", 995, 1000, 100),
			hoursCandidate("far-away", 915, 1000, 100),
		},
	}
	svc := NewService(repo)

	alerts, err := svc.EquipmentAlerts(context.Background(), "org-1")
	assert.NoError(t, err)

	ids := make([]string, 0, len(alerts))
	for _, a := range alerts {
		assert.Equal(t, "approaching_service", a.AlertType)
		ids = append(ids, a.EquipmentID)
	}
	assert.ElementsMatch(t, []string{"at-threshold", "close"}, ids)
}

func TestEquipmentAlertsKilometerUnitsUseKmInterval(t *testing.T) {
	row := repository.EquipmentAlertRow{
		EquipmentID:          "truck",
		TrackingUnit:         "kilometers",
		CurrentReading:       9950,
		NextServiceDue:       intPtr(10000),
		ServiceIntervalHours: intPtr(100), // wrong-unit interval must be ignored
		ServiceIntervalKms:   intPtr(1000),
	}
	svc := NewService(&fakeRepo{candidates: []repository.EquipmentAlertRow{row}})

	alerts, err := svc.EquipmentAlerts(context.Background(), "org-1")
	assert.NoError(t, err)
	if assert.Len(t, alerts, 1) {
		assert.Equal(t, "truck", alerts[0].EquipmentID)
		assert.Equal(t, 50, *alerts[0].RemainingToDue)
	}
}

func TestEquipmentAlertsNoIntervalSkipped(t *testing.T) {
	row := hoursCandidate("no-interval", 995, 1000, 0)
	row.ServiceIntervalHours = nil
	svc := NewService(&fakeRepo{candidates: []repository.EquipmentAlertRow{row}})

	alerts, err := svc.EquipmentAlerts(context.Background(), "org-1")
	assert.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestEquipmentAlertsBrokenDownTakesPriority(t *testing.T) {
	downRow := hoursCandidate("dual", 995, 1000, 100)
	repo := &fakeRepo{
		down:       []repository.EquipmentAlertRow{downRow},
		candidates: []repository.EquipmentAlertRow{downRow, hoursCandidate("other", 992, 1000, 100)},
	}
	svc := NewService(repo)

	alerts, err := svc.EquipmentAlerts(context.Background(), "org-1")
	assert.NoError(t, err)
	assert.Len(t, alerts, 2)
	assert.Equal(t, "dual", alerts[0].EquipmentID)
	assert.Equal(t, "broken_down", alerts[0].AlertType)
	assert.Equal(t, "other", alerts[1].EquipmentID)
	assert.Equal(t, "approaching_service", alerts[1].AlertType)
}

func TestViewAssemblesSections(t *testing.T) {
	now := time.Now()
	repo := &fakeRepo{
		activeEquipment: 12,
		activeTasks:     7,
		completed:       30,
		dueForService:   2,
		overdueCount:    3,
		created: []repository.AttentionTaskRow{
			{ID: "t1", Description: "Needs approval", Status: "created", CreatedAt: now},
		},
		overdue: []repository.AttentionTaskRow{
			{ID: "t2", Description: "Past due", Status: "approved", CreatedAt: now},
		},
		defects: []repository.CriticalDefectRow{
			{ID: "d1", OperatorName: "Dave Hill", Description: "Unlinked critical", CreatedAt: now},
		},
		recent: []repository.RecentTaskRow{
			{ID: "t3", TaskType: "defect", Status: "in_progress", CreatedAt: now, UpdatedAt: now},
		},
	}
	svc := NewService(repo)

	view, err := svc.View(context.Background(), "org-1", 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(12), view.Stats.ActiveEquipment)
	assert.Equal(t, int64(7), view.Stats.ActiveTasks)
	assert.Equal(t, int64(30), view.Stats.CompletedThisMonth)
	assert.Equal(t, int64(2), view.Stats.DueForService)
	assert.Equal(t, int64(3), view.Stats.OverdueTasks)
	assert.Len(t, view.Attention.AwaitingApproval, 1)
	assert.Len(t, view.Attention.Overdue, 1)
	assert.Len(t, view.Attention.CriticalDefects, 1)
	assert.Len(t, view.RecentActivity, 1)
	assert.False(t, view.GeneratedAt.IsZero())
}

func TestStatsCountCompletedFromStartOfMonth(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)
	svc.now = func() time.Time {
		return time.Date(2026, time.August, 29, 12, 0, 0, 0, time.UTC)
	}

	_, err := svc.Stats(context.Background(), "org-1")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC), repo.completedSince)
}

func TestViewAttentionLimitDefaultsAndClamps(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	_, err := svc.View(context.Background(), "org-1", 0)
	assert.NoError(t, err)
	assert.Equal(t, []int{8, 8, 8}, repo.attentionLimits)

	repo.attentionLimits = nil
	_, err = svc.View(context.Background(), "org-1", 3)
	assert.NoError(t, err)
	assert.Equal(t, []int{3, 3, 3}, repo.attentionLimits)

	repo.attentionLimits = nil
	_, err = svc.View(context.Background(), "org-1", 100)
	assert.NoError(t, err)
	assert.Equal(t, []int{25, 25, 25}, repo.attentionLimits)
}
