package dashboard

import (
	"context"
	"time"

	"dieselx/internal/domain"
	"dieselx/internal/repository"
)

const (
	defaultAttentionLimit = 8
	maxAttentionLimit     = 25
	alertLimit            = 10
	recentLimit           = 10
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// View assembles the full overview. attentionLimit caps each attention
// list; zero or negative means the default.
func (s *Service) View(ctx context.Context, orgID string, attentionLimit int) (*View, error) {
	now := s.now()

	stats, err := s.Stats(ctx, orgID)
	if err != nil {
		return nil, err
	}

	attention, err := s.attention(ctx, orgID, now, attentionLimit)
	if err != nil {
		return nil, err
	}

	alerts, err := s.EquipmentAlerts(ctx, orgID)
	if err != nil {
		return nil, err
	}

	recentRows, err := s.repo.RecentTasks(ctx, orgID, recentLimit)
	if err != nil {
		return nil, err
	}
	recent := make([]RecentTask, 0, len(recentRows))
	for _, r := range recentRows {
		recent = append(recent, RecentTask{
			ID:            r.ID,
			Description:   r.Description,
			TaskType:      r.TaskType,
			Status:        r.Status,
			EquipmentID:   r.EquipmentID,
			EquipmentName: r.EquipmentName,
			CreatedAt:     r.CreatedAt,
			UpdatedAt:     r.UpdatedAt,
		})
	}

	return &View{
		Stats:           *stats,
		Attention:       *attention,
		EquipmentAlerts: alerts,
		RecentActivity:  recent,
		GeneratedAt:     now,
	}, nil
}

func (s *Service) Stats(ctx context.Context, orgID string) (*Stats, error) {
	now := s.now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	var (
		stats Stats
		err   error
	)
	if stats.ActiveEquipment, err = s.repo.CountActiveEquipment(ctx, orgID); err != nil {
		return nil, err
	}
	if stats.ActiveTasks, err = s.repo.CountActiveTasks(ctx, orgID); err != nil {
		return nil, err
	}
	if stats.CompletedThisMonth, err = s.repo.CountCompletedSince(ctx, orgID, monthStart); err != nil {
		return nil, err
	}
	if stats.DueForService, err = s.repo.CountDueForService(ctx, orgID); err != nil {
		return nil, err
	}
	if stats.OverdueTasks, err = s.repo.CountOverdueTasks(ctx, orgID, now); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *Service) attention(ctx context.Context, orgID string, now time.Time, limit int) (*Attention, error) {
	limit = clampAttentionLimit(limit)

	created, err := s.repo.CreatedTasks(ctx, orgID, limit)
	if err != nil {
		return nil, err
	}
	overdue, err := s.repo.OverdueTasks(ctx, orgID, now, limit)
	if err != nil {
		return nil, err
	}
	defects, err := s.repo.UnlinkedCriticalDefects(ctx, orgID, limit)
	if err != nil {
		return nil, err
	}

	att := &Attention{
		AwaitingApproval: make([]AttentionTask, 0, len(created)),
		Overdue:          make([]AttentionTask, 0, len(overdue)),
		CriticalDefects:  make([]CriticalDefect, 0, len(defects)),
	}
	for _, r := range created {
		att.AwaitingApproval = append(att.AwaitingApproval, toAttentionTask(r))
	}
	for _, r := range overdue {
		att.Overdue = append(att.Overdue, toAttentionTask(r))
	}
	for _, r := range defects {
		att.CriticalDefects = append(att.CriticalDefects, CriticalDefect{
			ID:            r.ID,
			EquipmentID:   r.EquipmentID,
			EquipmentName: r.EquipmentName,
			CustomerName:  r.CustomerName,
			OperatorName:  r.OperatorName,
			Description:   r.Description,
			CreatedAt:     r.CreatedAt,
		})
	}
	return att, nil
}

// EquipmentAlerts returns broken-down units first, then units approaching
// their next service. A unit counts as approaching when the remaining
// reading is within 10% of its service interval. A broken-down unit never
// appears twice.
func (s *Service) EquipmentAlerts(ctx context.Context, orgID string) ([]EquipmentAlert, error) {
	down, err := s.repo.BrokenDownEquipment(ctx, orgID, alertLimit)
	if err != nil {
		return nil, err
	}

	alerts := make([]EquipmentAlert, 0, len(down))
	seen := make(map[string]bool, len(down))
	for _, r := range down {
		seen[r.EquipmentID] = true
		alerts = append(alerts, EquipmentAlert{
			EquipmentID:    r.EquipmentID,
			EquipmentName:  r.EquipmentName,
			CustomerName:   r.CustomerName,
			AlertType:      "broken_down",
			TrackingUnit:   r.TrackingUnit,
			CurrentReading: r.CurrentReading,
			NextServiceDue: r.NextServiceDue,
		})
	}

	candidates, err := s.repo.ServiceCandidates(ctx, orgID)
	if err != nil {
		return nil, err
	}
	approaching := 0
	for _, r := range candidates {
		if approaching >= alertLimit {
			break
		}
		if seen[r.EquipmentID] {
			continue
		}
		interval := serviceInterval(r)
		if interval == nil || *interval <= 0 || r.NextServiceDue == nil {
			continue
		}
		remaining := *r.NextServiceDue - r.CurrentReading
		if remaining*10 > *interval {
			continue
		}
		alerts = append(alerts, EquipmentAlert{
			EquipmentID:    r.EquipmentID,
			EquipmentName:  r.EquipmentName,
			CustomerName:   r.CustomerName,
			AlertType:      "approaching_service",
			TrackingUnit:   r.TrackingUnit,
			CurrentReading: r.CurrentReading,
			NextServiceDue: r.NextServiceDue,
			RemainingToDue: &remaining,
		})
		approaching++
	}
	return alerts, nil
}

func clampAttentionLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultAttentionLimit
	case limit > maxAttentionLimit:
		return maxAttentionLimit
	}
	return limit
}

func serviceInterval(r repository.EquipmentAlertRow) *int {
	if r.TrackingUnit == string(domain.TrackingKilometers) {
		return r.ServiceIntervalKms
	}
	return r.ServiceIntervalHours
}

func toAttentionTask(r repository.AttentionTaskRow) AttentionTask {
	return AttentionTask{
		ID:            r.ID,
		Description:   r.Description,
		EquipmentID:   r.EquipmentID,
		EquipmentName: r.EquipmentName,
		CustomerName:  r.CustomerName,
		Status:        r.Status,
		ScheduledDate: r.ScheduledDate,
		CreatedAt:     r.CreatedAt,
	}
}
