package dashboard

import (
	"context"
	"time"

	"dieselx/internal/repository"
)

type Repository interface {
	CountActiveEquipment(ctx context.Context, orgID string) (int64, error)
	CountActiveTasks(ctx context.Context, orgID string) (int64, error)
	CountCompletedSince(ctx context.Context, orgID string, since time.Time) (int64, error)
	CountDueForService(ctx context.Context, orgID string) (int64, error)
	CountOverdueTasks(ctx context.Context, orgID string, now time.Time) (int64, error)

	CreatedTasks(ctx context.Context, orgID string, limit int) ([]repository.AttentionTaskRow, error)
	OverdueTasks(ctx context.Context, orgID string, now time.Time, limit int) ([]repository.AttentionTaskRow, error)
	UnlinkedCriticalDefects(ctx context.Context, orgID string, limit int) ([]repository.CriticalDefectRow, error)

	BrokenDownEquipment(ctx context.Context, orgID string, limit int) ([]repository.EquipmentAlertRow, error)
	ServiceCandidates(ctx context.Context, orgID string) ([]repository.EquipmentAlertRow, error)

	RecentTasks(ctx context.Context, orgID string, limit int) ([]repository.RecentTaskRow, error)
}
