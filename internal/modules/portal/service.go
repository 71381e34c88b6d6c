package portal

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/gorm"

	"dieselx/internal/domain"
	"dieselx/internal/repository"
	"dieselx/internal/storage"
)

const (
	maxImageSizeBytes = 10 << 20
	maxVideoSizeBytes = 80 << 20

	maxFilesPerItem  = 5
	maxVideosPerItem = 2
	maxReportPhotos  = 5
	maxReportVideos  = 2

	minReportDescriptionLen = 10

	historyWindow     = 30 * 24 * time.Hour
	historyMaxEntries = 25
)

type Service struct {
	equipment EquipmentRepository
	templates TemplateRepository
	history   HistoryRepository
	store     TxRunner
	files     storage.Store

	prestartBucket string
	reportBucket   string
}

func NewService(
	equipment EquipmentRepository,
	templates TemplateRepository,
	history HistoryRepository,
	store TxRunner,
	files storage.Store,
	prestartBucket string,
	reportBucket string,
) *Service {
	return &Service{
		equipment:      equipment,
		templates:      templates,
		history:        history,
		store:          store,
		files:          files,
		prestartBucket: prestartBucket,
		reportBucket:   reportBucket,
	}
}

// GetEquipment returns the public portal view for a scanned QR code.
// Inactive equipment is reported as not found so a retired unit's code
// stops resolving.
func (s *Service) GetEquipment(ctx context.Context, equipmentID string) (*EquipmentView, error) {
	if _, err := s.activeEquipment(ctx, equipmentID); err != nil {
		return nil, err
	}

	row, err := s.equipment.GetPortalView(ctx, equipmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEquipmentNotFound
		}
		return nil, err
	}

	return &EquipmentView{
		ID:               row.ID,
		UnitName:         row.UnitName,
		Make:             row.Make,
		Model:            row.Model,
		TrackingUnit:     row.TrackingUnit,
		CurrentReading:   row.CurrentReading,
		OperatingStatus:  row.OperatingStatus,
		NextServiceType:  row.NextServiceType,
		CustomerName:     row.CustomerName,
		OrganizationName: row.OrganizationName,
		OrganizationLogo: row.OrganizationLogo,
	}, nil
}

// GetTemplate returns the checklist assigned to the equipment.
func (s *Service) GetTemplate(ctx context.Context, equipmentID string) (*domain.PrestartTemplate, error) {
	if _, err := s.activeEquipment(ctx, equipmentID); err != nil {
		return nil, err
	}

	tpl, err := s.templates.GetForEquipment(ctx, equipmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoTemplate
		}
		return nil, err
	}
	return tpl, nil
}

// GetHistory returns recent submissions for the equipment, newest first.
func (s *Service) GetHistory(ctx context.Context, equipmentID string) ([]HistoryEntryView, error) {
	if _, err := s.activeEquipment(ctx, equipmentID); err != nil {
		return nil, err
	}

	entries, err := s.history.History(ctx, equipmentID, time.Now().Add(-historyWindow), historyMaxEntries)
	if err != nil {
		return nil, err
	}

	out := make([]HistoryEntryView, 0, len(entries))
	for _, e := range entries {
		items := make([]HistoryItemView, 0, len(e.Items))
		for _, it := range e.Items {
			media := make([]HistoryMediaView, 0, len(it.Media))
			for _, m := range it.Media {
				media = append(media, HistoryMediaView{ID: m.ID, FileURL: m.FileURL, FileType: m.FileType})
			}
			items = append(items, HistoryItemView{
				ID:                 it.ID,
				Label:              it.Label,
				Result:             it.Result,
				FailureDescription: it.FailureDescription,
				IsCritical:         it.IsCritical,
				Media:              media,
			})
		}
		out = append(out, HistoryEntryView{
			ID:               e.ID,
			OperatorName:     e.OperatorName,
			EquipmentReading: e.EquipmentReading,
			CreatedAt:        e.CreatedAt,
			Items:            items,
		})
	}
	return out, nil
}

// UpdateReading advances the equipment reading. A value below the recorded
// one is rejected, an equal value is acknowledged without a write.
func (s *Service) UpdateReading(ctx context.Context, equipmentID string, reading int) (*ReadingResult, error) {
	eq, err := s.activeEquipment(ctx, equipmentID)
	if err != nil {
		return nil, err
	}

	switch {
	case reading < eq.CurrentReading:
		return nil, fmt.Errorf("%w: recorded value is %d", ErrReadingRegression, eq.CurrentReading)
	case reading == eq.CurrentReading:
		return &ReadingResult{
			Updated:        false,
			CurrentReading: eq.CurrentReading,
			Message:        "Reading unchanged",
		}, nil
	}

	if err := s.equipment.AdvanceReading(ctx, equipmentID, reading); err != nil {
		return nil, err
	}
	return &ReadingResult{
		Updated:        true,
		CurrentReading: reading,
		Message:        "Reading updated",
	}, nil
}

// SubmitPrestart validates and persists a completed checklist. Every failing
// item generates a maintenance task; a failing critical item generates a
// breakdown task and marks the equipment down. All writes share one
// transaction, so a rejected submission leaves no partial rows behind.
func (s *Service) SubmitPrestart(ctx context.Context, equipmentID string, req *PrestartRequest) (*SubmitResult, error) {
	eq, err := s.activeEquipment(ctx, equipmentID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.OperatorName) == "" {
		return nil, validationf("operator name is required")
	}
	if req.EquipmentReading < eq.CurrentReading {
		return nil, fmt.Errorf("%w: recorded value is %d", ErrReadingRegression, eq.CurrentReading)
	}

	tpl, err := s.templates.GetForEquipment(ctx, equipmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoTemplate
		}
		return nil, err
	}

	templateItems := make(map[string]domain.PrestartTemplateItem, len(tpl.Items))
	for _, item := range tpl.Items {
		templateItems[item.ID] = item
	}

	answered := make(map[string]bool, len(req.Items))
	for i := range req.Items {
		input := &req.Items[i]
		tplItem, ok := templateItems[input.TemplateItemID]
		if !ok {
			return nil, validationf("unknown checklist item %q", input.TemplateItemID)
		}
		answered[input.TemplateItemID] = true

		input.Result = strings.TrimSpace(input.Result)
		input.FailureDescription = strings.TrimSpace(input.FailureDescription)

		if tplItem.IsRequired && input.Result == "" {
			return nil, validationf("%q is required", tplItem.Label)
		}
		if itemFails(tplItem.FieldType, input.Result) && input.FailureDescription == "" {
			return nil, validationf("%q failed: a description of the problem is required", tplItem.Label)
		}

		if len(input.Media) > maxFilesPerItem {
			return nil, validationf("Up to %d files are allowed per checklist item", maxFilesPerItem)
		}
		if countVideos(input.Media) > maxVideosPerItem {
			return nil, validationf("Up to %d videos are allowed per checklist item", maxVideosPerItem)
		}
	}

	for _, tplItem := range tpl.Items {
		if tplItem.IsRequired && !answered[tplItem.ID] {
			return nil, validationf("%q is required", tplItem.Label)
		}
	}

	// Media goes to storage before the transaction opens. A later rollback
	// can orphan a blob but never leaves a row pointing at a missing file.
	type uploadedMedia struct {
		url, kind, name string
	}
	itemUploads := make(map[string][]uploadedMedia, len(req.Items))
	for _, input := range req.Items {
		for _, fh := range input.Media {
			kind := mediaKind(fh)
			res, err := s.uploadFile(ctx, s.prestartBucket, equipmentID, fh, kind)
			if err != nil {
				return nil, err
			}
			itemUploads[input.TemplateItemID] = append(itemUploads[input.TemplateItemID], uploadedMedia{
				url:  res.URL,
				kind: kind,
				name: fh.Filename,
			})
		}
	}

	result := &SubmitResult{}
	err = s.store.InTx(ctx, func(tx repository.PortalTx) error {
		submission := &domain.PrestartSubmission{
			OrganizationID:   eq.OrganizationID,
			EquipmentID:      eq.ID,
			TemplateID:       tpl.ID,
			OperatorName:     strings.TrimSpace(req.OperatorName),
			OperatorPhone:    strings.TrimSpace(req.OperatorPhone),
			EquipmentReading: req.EquipmentReading,
		}
		if err := tx.CreateSubmission(ctx, submission); err != nil {
			return err
		}
		result.SubmissionID = submission.ID

		for _, input := range req.Items {
			tplItem := templateItems[input.TemplateItemID]

			var generatedTaskID *string
			if itemFails(tplItem.FieldType, input.Result) {
				taskType := domain.TaskDefect
				if tplItem.IsCritical {
					taskType = domain.TaskBreakdown
				}
				description := fmt.Sprintf("Pre-start check failed: %s. %s", tplItem.Label, input.FailureDescription)
				task, err := s.createTask(ctx, tx, eq, taskType, description, req)
				if err != nil {
					return err
				}
				generatedTaskID = &task.ID
				result.GeneratedTaskIDs = append(result.GeneratedTaskIDs, task.ID)
				if taskType == domain.TaskBreakdown {
					result.EquipmentDown = true
				}
			}

			item := &domain.PrestartSubmissionItem{
				SubmissionID:       submission.ID,
				TemplateItemID:     input.TemplateItemID,
				Result:             input.Result,
				FailureDescription: input.FailureDescription,
				GeneratedTaskID:    generatedTaskID,
			}
			if err := tx.CreateSubmissionItem(ctx, item); err != nil {
				return err
			}

			for _, up := range itemUploads[input.TemplateItemID] {
				media := &domain.PrestartItemMedia{
					SubmissionItemID: item.ID,
					FileURL:          up.url,
					FileType:         up.kind,
					FileName:         up.name,
				}
				if err := tx.AddItemMedia(ctx, media); err != nil {
					return err
				}
			}
		}

		if req.EquipmentReading > eq.CurrentReading {
			if err := tx.AdvanceReading(ctx, eq.ID, req.EquipmentReading); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	switch {
	case result.EquipmentDown:
		result.Message = "Pre-start recorded. A critical item failed, so the equipment was marked as down and an urgent task was created."
	case len(result.GeneratedTaskIDs) > 0:
		result.Message = fmt.Sprintf("Pre-start recorded. %d maintenance task(s) were created for the failed items.", len(result.GeneratedTaskIDs))
	default:
		result.Message = "Pre-start recorded. All checks passed."
	}
	return result, nil
}

// SubmitDefectReport records an operator-reported issue and creates a task
// for it. A critical severity escalates the task to a breakdown.
func (s *Service) SubmitDefectReport(ctx context.Context, equipmentID string, req *ReportRequest) (*SubmitResult, error) {
	return s.submitReport(ctx, equipmentID, req, false)
}

// SubmitBreakdownReport records a breakdown. Severity is forced to critical
// and the equipment is marked as down regardless of the request fields.
func (s *Service) SubmitBreakdownReport(ctx context.Context, equipmentID string, req *ReportRequest) (*SubmitResult, error) {
	return s.submitReport(ctx, equipmentID, req, true)
}

func (s *Service) submitReport(ctx context.Context, equipmentID string, req *ReportRequest, forceBreakdown bool) (*SubmitResult, error) {
	eq, err := s.activeEquipment(ctx, equipmentID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.OperatorName) == "" {
		return nil, validationf("operator name is required")
	}
	description := strings.TrimSpace(req.Description)
	if len(description) < minReportDescriptionLen {
		return nil, validationf("Description must be at least %d characters", minReportDescriptionLen)
	}
	if req.EquipmentReading < eq.CurrentReading {
		return nil, fmt.Errorf("%w: recorded value is %d", ErrReadingRegression, eq.CurrentReading)
	}

	severity := domain.Severity(strings.TrimSpace(req.Severity))
	if forceBreakdown {
		severity = domain.SeverityCritical
	} else {
		switch severity {
		case domain.SeverityLow, domain.SeverityMedium, domain.SeverityHigh, domain.SeverityCritical:
		case "":
			return nil, validationf("severity is required")
		default:
			return nil, validationf("unknown severity %q", req.Severity)
		}
	}

	if len(req.Photos) > maxReportPhotos {
		return nil, validationf("Up to %d photos are allowed", maxReportPhotos)
	}
	if len(req.Videos) > maxReportVideos {
		return nil, validationf("Up to %d videos are allowed", maxReportVideos)
	}

	type uploadedMedia struct {
		url, kind, name string
	}
	var uploads []uploadedMedia
	for _, fh := range req.Photos {
		res, err := s.uploadFile(ctx, s.reportBucket, equipmentID, fh, "image")
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, uploadedMedia{url: res.URL, kind: "image", name: fh.Filename})
	}
	for _, fh := range req.Videos {
		res, err := s.uploadFile(ctx, s.reportBucket, equipmentID, fh, "video")
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, uploadedMedia{url: res.URL, kind: "video", name: fh.Filename})
	}

	// The report's down flag is the computed outcome, not an operator claim.
	isBreakdown := forceBreakdown || severity == domain.SeverityCritical

	result := &SubmitResult{}
	err = s.store.InTx(ctx, func(tx repository.PortalTx) error {
		report := &domain.DefectReport{
			OrganizationID:   eq.OrganizationID,
			EquipmentID:      eq.ID,
			OperatorName:     strings.TrimSpace(req.OperatorName),
			OperatorPhone:    strings.TrimSpace(req.OperatorPhone),
			EquipmentReading: req.EquipmentReading,
			Description:      description,
			Severity:         severity,
			IsEquipmentDown:  isBreakdown,
		}
		if err := tx.CreateDefectReport(ctx, report); err != nil {
			return err
		}
		result.ReportID = report.ID

		taskType := domain.TaskDefect
		if isBreakdown {
			taskType = domain.TaskBreakdown
		}
		task, err := s.createTask(ctx, tx, eq, taskType, report.Description, &PrestartRequest{
			OperatorName:     req.OperatorName,
			OperatorPhone:    req.OperatorPhone,
			EquipmentReading: req.EquipmentReading,
		})
		if err != nil {
			return err
		}
		result.GeneratedTaskIDs = append(result.GeneratedTaskIDs, task.ID)
		result.EquipmentDown = isBreakdown

		if err := tx.LinkGeneratedTask(ctx, report.ID, task.ID); err != nil {
			return err
		}

		for _, up := range uploads {
			media := &domain.DefectReportMedia{
				ReportID: report.ID,
				FileURL:  up.url,
				FileType: up.kind,
				FileName: up.name,
			}
			if err := tx.AddReportMedia(ctx, media); err != nil {
				return err
			}
		}

		if req.EquipmentReading > eq.CurrentReading {
			if err := tx.AdvanceReading(ctx, eq.ID, req.EquipmentReading); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if isBreakdown {
		result.Message = "Breakdown reported. The equipment was marked as down and an urgent task was created."
	} else {
		result.Message = "Defect report received. A task was created for the maintenance team."
	}
	return result, nil
}

// createTask builds a task from a field submission. Breakdown tasks also
// mark the equipment as down within the same transaction.
func (s *Service) createTask(ctx context.Context, tx repository.PortalTx, eq *domain.Equipment, taskType domain.TaskType, description string, req *PrestartRequest) (*domain.Task, error) {
	reading := req.EquipmentReading
	task := &domain.Task{
		OrganizationID:           eq.OrganizationID,
		EquipmentID:              eq.ID,
		CustomerID:               eq.CustomerID,
		Type:                     taskType,
		Status:                   domain.TaskCreated,
		Description:              description,
		ReportedByName:           strings.TrimSpace(req.OperatorName),
		ReportedByPhone:          strings.TrimSpace(req.OperatorPhone),
		EquipmentReadingAtReport: &reading,
	}
	if err := tx.CreateTask(ctx, task); err != nil {
		return nil, err
	}
	if taskType == domain.TaskBreakdown {
		if err := tx.MarkEquipmentDown(ctx, eq.ID); err != nil {
			return nil, err
		}
	}
	return task, nil
}

func (s *Service) activeEquipment(ctx context.Context, equipmentID string) (*domain.Equipment, error) {
	eq, err := s.equipment.GetByID(ctx, equipmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEquipmentNotFound
		}
		return nil, err
	}
	if eq.Status != domain.EquipmentActive {
		return nil, ErrEquipmentNotFound
	}
	return eq, nil
}

func (s *Service) uploadFile(ctx context.Context, bucket, folder string, fh *multipart.FileHeader, kind string) (*storage.UploadResult, error) {
	maxSize := int64(maxImageSizeBytes)
	if kind == "video" {
		maxSize = maxVideoSizeBytes
	}
	return s.files.Upload(ctx, storage.UploadParams{
		Bucket:       bucket,
		File:         fh,
		Folder:       folder,
		MaxSizeBytes: maxSize,
	})
}

// itemFails reports whether a result counts as a failed check. Text and
// number fields never fail automatically.
func itemFails(fieldType domain.PrestartFieldType, result string) bool {
	switch fieldType {
	case domain.FieldPassFail:
		return result == "fail"
	case domain.FieldYesNo:
		return result == "no"
	default:
		return false
	}
}

var videoExtensions = map[string]bool{
	".mp4": true, ".mov": true, ".avi": true, ".webm": true, ".mkv": true,
}

func mediaKind(fh *multipart.FileHeader) string {
	if strings.HasPrefix(fh.Header.Get("Content-Type"), "video/") {
		return "video"
	}
	if videoExtensions[strings.ToLower(filepath.Ext(fh.Filename))] {
		return "video"
	}
	return "image"
}

func countVideos(files []*multipart.FileHeader) int {
	n := 0
	for _, fh := range files {
		if mediaKind(fh) == "video" {
			n++
		}
	}
	return n
}
