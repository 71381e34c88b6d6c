package portal

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"dieselx/internal/domain"
	"dieselx/internal/repository"
	"dieselx/internal/storage"
)

// Mock repositories

type MockEquipmentRepository struct {
	mock.Mock
}

func (m *MockEquipmentRepository) GetByID(ctx context.Context, id string) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}

func (m *MockEquipmentRepository) GetPortalView(ctx context.Context, id string) (*repository.PortalEquipmentRow, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PortalEquipmentRow), args.Error(1)
}

func (m *MockEquipmentRepository) AdvanceReading(ctx context.Context, id string, reading int) error {
	args := m.Called(ctx, id, reading)
	return args.Error(0)
}

type MockTemplateRepository struct {
	mock.Mock
}

func (m *MockTemplateRepository) GetForEquipment(ctx context.Context, equipmentID string) (*domain.PrestartTemplate, error) {
	args := m.Called(ctx, equipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PrestartTemplate), args.Error(1)
}

type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) History(ctx context.Context, equipmentID string, since time.Time, limit int) ([]repository.HistoryEntry, error) {
	args := m.Called(ctx, equipmentID, since, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.HistoryEntry), args.Error(1)
}

// fakePortalTx records every write made inside the transaction.

type fakePortalTx struct {
	submissions []*domain.PrestartSubmission
	items       []*domain.PrestartSubmissionItem
	itemMedia   []*domain.PrestartItemMedia
	reports     []*domain.DefectReport
	reportMedia []*domain.DefectReportMedia
	tasks       []*domain.Task
	taskLinks   map[string]string
	downMarks   []string
	readings    []int
}

func newFakePortalTx() *fakePortalTx {
	return &fakePortalTx{taskLinks: map[string]string{}}
}

func (f *fakePortalTx) CreateSubmission(ctx context.Context, s *domain.PrestartSubmission) error {
	s.ID = fmt.Sprintf("sub-%d", len(f.submissions)+1)
	f.submissions = append(f.submissions, s)
	return nil
}

func (f *fakePortalTx) CreateSubmissionItem(ctx context.Context, item *domain.PrestartSubmissionItem) error {
	item.ID = fmt.Sprintf("item-%d", len(f.items)+1)
	f.items = append(f.items, item)
	return nil
}

func (f *fakePortalTx) AddItemMedia(ctx context.Context, m *domain.PrestartItemMedia) error {
	f.itemMedia = append(f.itemMedia, m)
	return nil
}

func (f *fakePortalTx) CreateDefectReport(ctx context.Context, rep *domain.DefectReport) error {
	rep.ID = fmt.Sprintf("rep-%d", len(f.reports)+1)
	f.reports = append(f.reports, rep)
	return nil
}

func (f *fakePortalTx) AddReportMedia(ctx context.Context, m *domain.DefectReportMedia) error {
	f.reportMedia = append(f.reportMedia, m)
	return nil
}

func (f *fakePortalTx) LinkGeneratedTask(ctx context.Context, reportID, taskID string) error {
	f.taskLinks[reportID] = taskID
	return nil
}

func (f *fakePortalTx) CreateTask(ctx context.Context, t *domain.Task) error {
	t.ID = fmt.Sprintf("task-%d", len(f.tasks)+1)
	f.tasks = append(f.tasks, t)
	return nil
}

func (f *fakePortalTx) MarkEquipmentDown(ctx context.Context, equipmentID string) error {
	f.downMarks = append(f.downMarks, equipmentID)
	return nil
}

func (f *fakePortalTx) AdvanceReading(ctx context.Context, equipmentID string, reading int) error {
	f.readings = append(f.readings, reading)
	return nil
}

type fakeTxRunner struct {
	tx      *fakePortalTx
	started bool
}

func (r *fakeTxRunner) InTx(ctx context.Context, fn func(tx repository.PortalTx) error) error {
	r.started = true
	return fn(r.tx)
}

type fakeStore struct {
	uploads int
	bytes   int
}

func (s *fakeStore) Upload(ctx context.Context, p storage.UploadParams) (*storage.UploadResult, error) {
	s.uploads++
	return &storage.UploadResult{
		URL:  "https://files.test/" + p.Bucket + "/" + p.File.Filename,
		Path: p.File.Filename,
	}, nil
}

func (s *fakeStore) UploadBytes(ctx context.Context, bucket, folder, filename string, data []byte) (*storage.UploadResult, error) {
	s.bytes++
	return &storage.UploadResult{URL: "https://files.test/" + bucket + "/" + filename, Path: filename}, nil
}

// helpers

func testEquipment() *domain.Equipment {
	return &domain.Equipment{
		ID:              "eq-1",
		OrganizationID:  "org-1",
		CustomerID:      "cust-1",
		UnitName:        "EXC-014",
		TrackingUnit:    domain.TrackingHours,
		CurrentReading:  500,
		Status:          domain.EquipmentActive,
		OperatingStatus: domain.OperatingUp,
	}
}

func testTemplate() *domain.PrestartTemplate {
	return &domain.PrestartTemplate{
		ID:             "tpl-1",
		OrganizationID: "org-1",
		Name:           "Daily pre-start",
		Items: []domain.PrestartTemplateItem{
			{ID: "ti-brakes", Label: "Brakes operational", FieldType: domain.FieldPassFail, IsRequired: true, IsCritical: true, SortOrder: 1},
			{ID: "ti-leaks", Label: "Hydraulic leaks", FieldType: domain.FieldPassFail, IsRequired: true, SortOrder: 2},
			{ID: "ti-belt", Label: "Seatbelt in good condition", FieldType: domain.FieldYesNo, SortOrder: 3},
			{ID: "ti-notes", Label: "General remarks", FieldType: domain.FieldText, SortOrder: 4},
		},
	}
}

func fileHeader(name, contentType string) *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: name,
		Header:   textproto.MIMEHeader{"Content-Type": []string{contentType}},
		Size:     100,
	}
}

func newTestService(eq *MockEquipmentRepository, tpl *MockTemplateRepository, runner *fakeTxRunner, store *fakeStore) *Service {
	return NewService(eq, tpl, &MockHistoryRepository{}, runner, store, "prestart-checks", "qr-reports")
}

// UpdateReading

func TestUpdateReadingRejectsRegression(t *testing.T) {
	eqRepo := new(MockEquipmentRepository)
	eqRepo.On("GetByID", mock.Anything, "eq-1").Return(testEquipment(), nil)

	svc := newTestService(eqRepo, new(MockTemplateRepository), &fakeTxRunner{tx: newFakePortalTx()}, &fakeStore{})

	_, err := svc.UpdateReading(context.Background(), "eq-1", 499)
	assert.ErrorIs(t, err, ErrReadingRegression)
	eqRepo.AssertNotCalled(t, "AdvanceReading", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateReadingUnchangedIsNoop(t *testing.T) {
	eqRepo := new(MockEquipmentRepository)
	eqRepo.On("GetByID", mock.Anything, "eq-1").Return(testEquipment(), nil)

	svc := newTestService(eqRepo, new(MockTemplateRepository), &fakeTxRunner{tx: newFakePortalTx()}, &fakeStore{})

	res, err := svc.UpdateReading(context.Background(), "eq-1", 500)
	assert.NoError(t, err)
	assert.False(t, res.Updated)
	assert.Equal(t, 500, res.CurrentReading)
	eqRepo.AssertNotCalled(t, "AdvanceReading", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateReadingAdvances(t *testing.T) {
	eqRepo := new(MockEquipmentRepository)
	eqRepo.On("GetByID", mock.Anything, "eq-1").Return(testEquipment(), nil)
	eqRepo.On("AdvanceReading", mock.Anything, "eq-1", 510).Return(nil)

	svc := newTestService(eqRepo, new(MockTemplateRepository), &fakeTxRunner{tx: newFakePortalTx()}, &fakeStore{})

	res, err := svc.UpdateReading(context.Background(), "eq-1", 510)
	assert.NoError(t, err)
	assert.True(t, res.Updated)
	assert.Equal(t, 510, res.CurrentReading)
	eqRepo.AssertExpectations(t)
}

// SubmitPrestart

func passingRequest() *PrestartRequest {
	return &PrestartRequest{
		OperatorName:     "Dave Hill",
		OperatorPhone:    "+61 400 000 000",
		EquipmentReading: 510,
		Items: []PrestartItemInput{
			{TemplateItemID: "ti-brakes", Result: "pass"},
			{TemplateItemID: "ti-leaks", Result: "pass"},
			{TemplateItemID: "ti-belt", Result: "yes"},
			{TemplateItemID: "ti-notes", Result: "all good"},
		},
	}
}

func TestSubmitPrestartAllPass(t *testing.T) {
	eqRepo := new(MockEquipmentRepository)
	eqRepo.On("GetByID", mock.Anything, "eq-1").Return(testEquipment(), nil)
	tplRepo := new(MockTemplateRepository)
	tplRepo.On("GetForEquipment", mock.Anything, "eq-1").Return(testTemplate(), nil)

	runner := &fakeTxRunner{tx: newFakePortalTx()}
	svc := newTestService(eqRepo, tplRepo, runner, &fakeStore{})

	res, err := svc.SubmitPrestart(context.Background(), "eq-1", passingRequest())
	assert.NoError(t, err)
	assert.Empty(t, res.GeneratedTaskIDs)
	assert.False(t, res.EquipmentDown)
	assert.Len(t, runner.tx.submissions, 1)
	assert.Len(t, runner.tx.items, 4)
	assert.Empty(t, runner.tx.tasks)
	assert.Empty(t, runner.tx.downMarks)
	assert.Equal(t, []int{510}, runner.tx.readings)
}

func TestSubmitPrestartFailingItemCreatesDefectTask(t *testing.T) {
	eqRepo := new(MockEquipmentRepository)
	eqRepo.On("GetByID", mock.Anything, "eq-1").Return(testEquipment(), nil)
	tplRepo := new(MockTemplateRepository)
	tplRepo.On("GetForEquipment", mock.Anything, "eq-1").Return(testTemplate(), nil)

	runner := &fakeTxRunner{tx: newFakePortalTx()}
	svc := newTestService(eqRepo, tplRepo, runner, &fakeStore{})

	req := passingRequest()
	req.Items[1].Result = "fail"
	req.Items[1].FailureDescription = "hose weeping at the boom"

	res, err := svc.SubmitPrestart(context.Background(), "eq-1", req)
	assert.NoError(t, err)
	assert.Len(t, res.GeneratedTaskIDs, 1)
	assert.False(t, res.EquipmentDown)

	assert.Len(t, runner.tx.tasks, 1)
	task := runner.tx.tasks[0]
	assert.Equal(t, domain.TaskDefect, task.Type)
	assert.Equal(t, domain.TaskCreated, task.Status)
	assert.Equal(t, "cust-1", task.CustomerID)
	assert.Contains(t, task.Description, "Hydraulic leaks")
	assert.Contains(t, task.Description, "hose weeping")
	assert.Empty(t, runner.tx.downMarks)

	// The failing item must point at its generated task.
	var failed *domain.PrestartSubmissionItem
	for _, item := range runner.tx.items {
		if item.TemplateItemID == "ti-leaks" {
			failed = item
		}
	}
	if assert.NotNil(t, failed) && assert.NotNil(t, failed.GeneratedTaskID) {
		assert.Equal(t, task.ID, *failed.GeneratedTaskID)
	}
}

func TestSubmitPrestartCriticalFailureCreatesBreakdown(t *testing.T) {
	eqRepo := new(MockEquipmentRepository)
	eqRepo.On("GetByID", mock.Anything, "eq-1").Return(testEquipment(), nil)
	tplRepo := new(MockTemplateRepository)
	tplRepo.On("GetForEquipment", mock.Anything, "eq-1").Return(testTemplate(), nil)

	runner := &fakeTxRunner{tx: newFakePortalTx()}
	svc := newTestService(eqRepo, tplRepo, runner, &fakeStore{})

	req := passingRequest()
	req.Items[0].Result = "fail"
	req.Items[0].FailureDescription = "pedal goes to the floor"

	res, err := svc.SubmitPrestart(context.Background(), "eq-1", req)
	assert.NoError(t, err)
	assert.True(t, res.EquipmentDown)
	assert.Len(t, runner.tx.tasks, 1)
	assert.Equal(t, domain.TaskBreakdown, runner.tx.tasks[0].Type)
	assert.Equal(t, []string{"eq-1"}, runner.tx.downMarks)
}

func TestSubmitPrestartFailureWithoutDescriptionWritesNothing(t *testing.T) {
	eqRepo := new(MockEquipmentRepository)
	eqRepo.On("GetByID", mock.Anything, "eq-1").Return(testEquipment(), nil)
	tplRepo := new(MockTemplateRepository)
	tplRepo.On("GetForEquipment", mock.Anything, "eq-1").Return(testTemplate(), nil)

	runner := &fakeTxRunner{tx: newFakePortalTx()}
	store := &fakeStore{}
	svc := newTestService(eqRepo, tplRepo, runner, store)

	req := passingRequest()
	req.Items[1].Result = "fail"
	req.Items[1].Media = []*multipart.FileHeader{fileHeader("leak.jpg", "image/jpeg")}

	_, err := svc.SubmitPrestart(context.Background(), "eq-1", req)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "Hydraulic leaks")

	assert.False(t, runner.started, "no transaction may start for a rejected submission")
	assert.Zero(t, store.uploads, "no media may upload for a rejected submission")
}

func TestSubmitPrestartRequiredItemMissing(t *testing.T) {
	eqRepo := new(MockEquipmentRepository)
	eqRepo.On("GetByID", mock.Anything, "eq-1").Return(testEquipment(), nil)
	tplRepo := new(MockTemplateRepository)
	tplRepo.On("GetForEquipment", mock.Anything, "eq-1").Return(testTemplate(), nil)

	runner := &fakeTxRunner{tx: newFakePortalTx()}
	svc := newTestService(eqRepo, tplRepo, runner, &fakeStore{})

	req := passingRequest()
	req.Items = req.Items[1:] // drop the brakes answer

	_, err := svc.SubmitPrestart(context.Background(), "eq-1", req)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "Brakes operational")
	assert.False(t, runner.started)
}

func TestSubmitPrestartMediaCaps(t *testing.T) {
	eqRepo := new(MockEquipmentRepository)
	eqRepo.On("GetByID", mock.Anything, "eq-1").Return(testEquipment(), nil)
	tplRepo := new(MockTemplateRepository)
	tplRepo.On("GetForEquipment", mock.Anything, "eq-1").Return(testTemplate(), nil)

	runner := &fakeTxRunner{tx: newFakePortalTx()}
	svc := newTestService(eqRepo, tplRepo, runner, &fakeStore{})

	req := passingRequest()
	for i := 0; i < 6; i++ {
		req.Items[3].Media = append(req.Items[3].Media, fileHeader(fmt.Sprintf("p%d.jpg", i), "image/jpeg"))
	}
	_, err := svc.SubmitPrestart(context.Background(), "eq-1", req)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "Up to 5 files")

	req = passingRequest()
	req.Items[3].Media = []*multipart.FileHeader{
		fileHeader("a.mp4", "video/mp4"),
		fileHeader("b.mp4", "video/mp4"),
		fileHeader("c.mov", "video/quicktime"),
	}
	_, err = svc.SubmitPrestart(context.Background(), "eq-1", req)
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "Up to 2 videos")
	assert.False(t, runner.started)
}

func TestSubmitPrestartNoTemplate(t *testing.T) {
	eqRepo := new(MockEquipmentRepository)
	eqRepo.On("GetByID", mock.Anything, "eq-1").Return(testEquipment(), nil)
	tplRepo := new(MockTemplateRepository)
	tplRepo.On("GetForEquipment", mock.Anything, "eq-1").Return(nil, gorm.ErrRecordNotFound)

	svc := newTestService(eqRepo, tplRepo, &fakeTxRunner{tx: newFakePortalTx()}, &fakeStore{})

	_, err := svc.SubmitPrestart(context.Background(), "eq-1", passingRequest())
	assert.ErrorIs(t, err, ErrNoTemplate)
}

func TestSubmitPrestartInactiveEquipmentHidden(t *testing.T) {
	eq := testEquipment()
	eq.Status = domain.EquipmentInactive
	eqRepo := new(MockEquipmentRepository)
	eqRepo.On("GetByID", mock.Anything, "eq-1").Return(eq, nil)

	svc := newTestService(eqRepo, new(MockTemplateRepository), &fakeTxRunner{tx: newFakePortalTx()}, &fakeStore{})

	_, err := svc.SubmitPrestart(context.Background(), "eq-1", passingRequest())
	assert.ErrorIs(t, err, ErrEquipmentNotFound)
}

// Defect and breakdown reports

func reportRequest() *ReportRequest {
	return &ReportRequest{
		OperatorName:     "Dave Hill",
		EquipmentReading: 505,
		Description:      "Oil light flickering at idle",
		Severity:         "medium",
	}
}

func TestSubmitDefectReportCreatesDefectTask(t *testing.T) {
	eqRepo := new(MockEquipmentRepository)
	eqRepo.On("GetByID", mock.Anything, "eq-1").Return(testEquipment(), nil)

	runner := &fakeTxRunner{tx: newFakePortalTx()}
	svc := newTestService(eqRepo, new(MockTemplateRepository), runner, &fakeStore{})

	res, err := svc.SubmitDefectReport(context.Background(), "eq-1", reportRequest())
	assert.NoError(t, err)
	assert.False(t, res.EquipmentDown)
	assert.False(t, runner.tx.reports[0].IsEquipmentDown)
	assert.Len(t, runner.tx.tasks, 1)
	assert.Equal(t, domain.TaskDefect, runner.tx.tasks[0].Type)
	assert.Empty(t, runner.tx.downMarks)
	assert.Equal(t, runner.tx.tasks[0].ID, runner.tx.taskLinks["rep-1"])
	assert.Equal(t, []int{505}, runner.tx.readings)
}

func TestSubmitDefectReportCriticalEscalates(t *testing.T) {
	eqRepo := new(MockEquipmentRepository)
	eqRepo.On("GetByID", mock.Anything, "eq-1").Return(testEquipment(), nil)

	runner := &fakeTxRunner{tx: newFakePortalTx()}
	svc := newTestService(eqRepo, new(MockTemplateRepository), runner, &fakeStore{})

	req := reportRequest()
	req.Severity = "critical"

	res, err := svc.SubmitDefectReport(context.Background(), "eq-1", req)
	assert.NoError(t, err)
	assert.True(t, res.EquipmentDown)
	assert.True(t, runner.tx.reports[0].IsEquipmentDown)
	assert.Equal(t, domain.TaskBreakdown, runner.tx.tasks[0].Type)
	assert.Equal(t, []string{"eq-1"}, runner.tx.downMarks)
}

func TestSubmitDefectReportShortDescriptionRejected(t *testing.T) {
	eqRepo := new(MockEquipmentRepository)
	eqRepo.On("GetByID", mock.Anything, "eq-1").Return(testEquipment(), nil)

	runner := &fakeTxRunner{tx: newFakePortalTx()}
	svc := newTestService(eqRepo, new(MockTemplateRepository), runner, &fakeStore{})

	req := reportRequest()
	req.Description = "Bad"

	_, err := svc.SubmitDefectReport(context.Background(), "eq-1", req)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "at least 10 characters")
	assert.False(t, runner.started)
}

func TestSubmitBreakdownReportForcesCritical(t *testing.T) {
	eqRepo := new(MockEquipmentRepository)
	eqRepo.On("GetByID", mock.Anything, "eq-1").Return(testEquipment(), nil)

	runner := &fakeTxRunner{tx: newFakePortalTx()}
	svc := newTestService(eqRepo, new(MockTemplateRepository), runner, &fakeStore{})

	req := reportRequest()
	req.Severity = "low"

	res, err := svc.SubmitBreakdownReport(context.Background(), "eq-1", req)
	assert.NoError(t, err)
	assert.True(t, res.EquipmentDown)
	assert.Equal(t, domain.SeverityCritical, runner.tx.reports[0].Severity)
	assert.True(t, runner.tx.reports[0].IsEquipmentDown)
	assert.Equal(t, domain.TaskBreakdown, runner.tx.tasks[0].Type)
	assert.Equal(t, []string{"eq-1"}, runner.tx.downMarks)
}

func TestSubmitDefectReportMediaCaps(t *testing.T) {
	eqRepo := new(MockEquipmentRepository)
	eqRepo.On("GetByID", mock.Anything, "eq-1").Return(testEquipment(), nil)

	runner := &fakeTxRunner{tx: newFakePortalTx()}
	svc := newTestService(eqRepo, new(MockTemplateRepository), runner, &fakeStore{})

	req := reportRequest()
	for i := 0; i < 6; i++ {
		req.Photos = append(req.Photos, fileHeader(fmt.Sprintf("p%d.jpg", i), "image/jpeg"))
	}
	_, err := svc.SubmitDefectReport(context.Background(), "eq-1", req)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "Up to 5 photos")

	req = reportRequest()
	req.Videos = []*multipart.FileHeader{
		fileHeader("a.mp4", "video/mp4"),
		fileHeader("b.mp4", "video/mp4"),
		fileHeader("c.mp4", "video/mp4"),
	}
	_, err = svc.SubmitDefectReport(context.Background(), "eq-1", req)
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "Up to 2 videos")
	assert.False(t, runner.started)
}

func TestSubmitDefectReportReadingRegression(t *testing.T) {
	eqRepo := new(MockEquipmentRepository)
	eqRepo.On("GetByID", mock.Anything, "eq-1").Return(testEquipment(), nil)

	runner := &fakeTxRunner{tx: newFakePortalTx()}
	svc := newTestService(eqRepo, new(MockTemplateRepository), runner, &fakeStore{})

	req := reportRequest()
	req.EquipmentReading = 10

	_, err := svc.SubmitDefectReport(context.Background(), "eq-1", req)
	assert.ErrorIs(t, err, ErrReadingRegression)
	assert.False(t, runner.started)
}

func TestSubmitDefectReportEqualReadingSkipsAdvance(t *testing.T) {
	eqRepo := new(MockEquipmentRepository)
	eqRepo.On("GetByID", mock.Anything, "eq-1").Return(testEquipment(), nil)

	runner := &fakeTxRunner{tx: newFakePortalTx()}
	svc := newTestService(eqRepo, new(MockTemplateRepository), runner, &fakeStore{})

	req := reportRequest()
	req.EquipmentReading = 500

	_, err := svc.SubmitDefectReport(context.Background(), "eq-1", req)
	assert.NoError(t, err)
	assert.Empty(t, runner.tx.readings)
}
