package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dieselx/internal/domain"
)

// PortalTx is the transaction-scoped write surface for the QR portal intake
// flows. Everything called through one InTx callback commits or rolls back
// together.
type PortalTx interface {
	CreateSubmission(ctx context.Context, s *domain.PrestartSubmission) error
	CreateSubmissionItem(ctx context.Context, item *domain.PrestartSubmissionItem) error
	AddItemMedia(ctx context.Context, m *domain.PrestartItemMedia) error
	CreateDefectReport(ctx context.Context, rep *domain.DefectReport) error
	AddReportMedia(ctx context.Context, m *domain.DefectReportMedia) error
	LinkGeneratedTask(ctx context.Context, reportID, taskID string) error
	CreateTask(ctx context.Context, t *domain.Task) error
	MarkEquipmentDown(ctx context.Context, equipmentID string) error
	AdvanceReading(ctx context.Context, equipmentID string, reading int) error
}

type PortalStore struct {
	db *gorm.DB
}

func NewPortalStore(db *gorm.DB) *PortalStore {
	return &PortalStore{db: db}
}

func (s *PortalStore) InTx(ctx context.Context, fn func(tx PortalTx) error) error {
	return s.db.WithContext(ctx).Transaction(func(txdb *gorm.DB) error {
		return fn(&portalTx{db: txdb})
	})
}

type portalTx struct {
	db *gorm.DB
}

func (t *portalTx) CreateSubmission(ctx context.Context, s *domain.PrestartSubmission) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	m := prestartSubmissionModel{
		ID:               s.ID,
		OrganizationID:   s.OrganizationID,
		EquipmentID:      s.EquipmentID,
		TemplateID:       s.TemplateID,
		OperatorName:     s.OperatorName,
		OperatorPhone:    strPtr(s.OperatorPhone),
		EquipmentReading: s.EquipmentReading,
	}
	if err := t.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	s.CreatedAt = m.CreatedAt
	return nil
}

func (t *portalTx) CreateSubmissionItem(ctx context.Context, item *domain.PrestartSubmissionItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	m := prestartSubmissionItemModel{
		ID:                 item.ID,
		SubmissionID:       item.SubmissionID,
		TemplateItemID:     item.TemplateItemID,
		Result:             item.Result,
		FailureDescription: strPtr(item.FailureDescription),
		GeneratedTaskID:    item.GeneratedTaskID,
	}
	if err := t.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	item.CreatedAt = m.CreatedAt
	return nil
}

func (t *portalTx) AddItemMedia(ctx context.Context, media *domain.PrestartItemMedia) error {
	if media.ID == "" {
		media.ID = uuid.New().String()
	}
	m := prestartItemMediaModel{
		ID:               media.ID,
		SubmissionItemID: media.SubmissionItemID,
		FileURL:          media.FileURL,
		FileType:         media.FileType,
		FileName:         strPtr(media.FileName),
	}
	if err := t.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	media.CreatedAt = m.CreatedAt
	return nil
}

func (t *portalTx) CreateDefectReport(ctx context.Context, rep *domain.DefectReport) error {
	if rep.ID == "" {
		rep.ID = uuid.New().String()
	}
	m := defectReportModel{
		ID:               rep.ID,
		OrganizationID:   rep.OrganizationID,
		EquipmentID:      rep.EquipmentID,
		OperatorName:     rep.OperatorName,
		OperatorPhone:    strPtr(rep.OperatorPhone),
		EquipmentReading: rep.EquipmentReading,
		Description:      rep.Description,
		Severity:         string(rep.Severity),
		IsEquipmentDown:  rep.IsEquipmentDown,
		GeneratedTaskID:  rep.GeneratedTaskID,
	}
	if err := t.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	rep.CreatedAt = m.CreatedAt
	return nil
}

func (t *portalTx) AddReportMedia(ctx context.Context, media *domain.DefectReportMedia) error {
	if media.ID == "" {
		media.ID = uuid.New().String()
	}
	m := defectReportMediaModel{
		ID:       media.ID,
		ReportID: media.ReportID,
		FileURL:  media.FileURL,
		FileType: media.FileType,
		FileName: strPtr(media.FileName),
	}
	if err := t.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	media.CreatedAt = m.CreatedAt
	return nil
}

func (t *portalTx) LinkGeneratedTask(ctx context.Context, reportID, taskID string) error {
	return t.db.WithContext(ctx).
		Model(&defectReportModel{}).
		Where("id = ?", reportID).
		Update("generated_task_id", taskID).Error
}

func (t *portalTx) CreateTask(ctx context.Context, task *domain.Task) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	m := toTaskModel(task)
	if err := t.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*task = *toDomainTask(m)
	return nil
}

func (t *portalTx) MarkEquipmentDown(ctx context.Context, equipmentID string) error {
	return t.db.WithContext(ctx).
		Model(&equipmentModel{}).
		Where("id = ?", equipmentID).
		Updates(map[string]any{"operating_status": string(domain.OperatingDown), "updated_at": time.Now()}).Error
}

func (t *portalTx) AdvanceReading(ctx context.Context, equipmentID string, reading int) error {
	return t.db.WithContext(ctx).
		Model(&equipmentModel{}).
		Where("id = ? AND current_reading < ?", equipmentID, reading).
		Updates(map[string]any{"current_reading": reading, "updated_at": time.Now()}).Error
}
