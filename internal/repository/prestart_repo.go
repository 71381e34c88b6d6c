package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type PrestartRepository struct {
	db *gorm.DB
}

func NewPrestartRepository(db *gorm.DB) *PrestartRepository {
	return &PrestartRepository{db: db}
}

// HistoryEntry is one past submission with its items and media, as shown on
// the portal history page.
type HistoryEntry struct {
	ID               string
	OperatorName     string
	OperatorPhone    string
	EquipmentReading int
	CreatedAt        time.Time
	Items            []HistoryItem
}

type HistoryItem struct {
	ID                 string
	Label              string
	Result             string
	FailureDescription string
	IsCritical         bool
	Media              []HistoryMedia
}

type HistoryMedia struct {
	ID       string
	FileURL  string
	FileType string
}

// History returns submissions for the equipment since the given time, newest
// first, with items joined to their template labels.
func (r *PrestartRepository) History(ctx context.Context, equipmentID string, since time.Time, limit int) ([]HistoryEntry, error) {
	var submissions []prestartSubmissionModel
	tx := r.db.WithContext(ctx).
		Where("equipment_id = ? AND created_at >= ?", equipmentID, since).
		Order("created_at DESC").
		Limit(limit).
		Find(&submissions)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if len(submissions) == 0 {
		return []HistoryEntry{}, nil
	}

	ids := make([]string, 0, len(submissions))
	entries := make([]HistoryEntry, 0, len(submissions))
	byID := make(map[string]*HistoryEntry, len(submissions))
	for _, s := range submissions {
		ids = append(ids, s.ID)
		entries = append(entries, HistoryEntry{
			ID:               s.ID,
			OperatorName:     s.OperatorName,
			OperatorPhone:    strVal(s.OperatorPhone),
			EquipmentReading: s.EquipmentReading,
			CreatedAt:        s.CreatedAt,
			Items:            []HistoryItem{},
		})
	}
	for i := range entries {
		byID[entries[i].ID] = &entries[i]
	}

	type itemRow struct {
		SubmissionID       string
		ItemID             string
		Result             string
		FailureDescription *string
		Label              string
		IsCritical         bool
	}
	var itemRows []itemRow
	tx = r.db.WithContext(ctx).
		Table("prestart_submission_items").
		Select(`prestart_submission_items.submission_id,
			prestart_submission_items.id AS item_id,
			prestart_submission_items.result,
			prestart_submission_items.failure_description,
			prestart_template_items.label,
			prestart_template_items.is_critical`).
		Joins("INNER JOIN prestart_template_items ON prestart_template_items.id = prestart_submission_items.template_item_id").
		Where("prestart_submission_items.submission_id IN ?", ids).
		Order("prestart_template_items.sort_order ASC").
		Scan(&itemRows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	itemIDs := make([]string, 0, len(itemRows))
	for _, row := range itemRows {
		itemIDs = append(itemIDs, row.ItemID)
	}

	mediaByItem := make(map[string][]HistoryMedia)
	if len(itemIDs) > 0 {
		var mediaRows []prestartItemMediaModel
		tx = r.db.WithContext(ctx).
			Where("submission_item_id IN ?", itemIDs).
			Order("created_at ASC").
			Find(&mediaRows)
		if tx.Error != nil {
			return nil, tx.Error
		}
		for _, m := range mediaRows {
			mediaByItem[m.SubmissionItemID] = append(mediaByItem[m.SubmissionItemID], HistoryMedia{
				ID:       m.ID,
				FileURL:  m.FileURL,
				FileType: m.FileType,
			})
		}
	}

	for _, row := range itemRows {
		entry, ok := byID[row.SubmissionID]
		if !ok {
			continue
		}
		media := mediaByItem[row.ItemID]
		if media == nil {
			media = []HistoryMedia{}
		}
		entry.Items = append(entry.Items, HistoryItem{
			ID:                 row.ItemID,
			Label:              row.Label,
			Result:             row.Result,
			FailureDescription: strVal(row.FailureDescription),
			IsCritical:         row.IsCritical,
			Media:              media,
		})
	}

	return entries, nil
}
