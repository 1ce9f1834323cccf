package approval

import (
	"context"
	"sync"
	"testing"

	"project-tracker/internal/catalog"
	"project-tracker/internal/common/errors"
	"project-tracker/internal/common/logger"
	"project-tracker/internal/generator"
	"project-tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCatalog struct {
	*catalog.Service
	mu       sync.Mutex
	applied  int
	applyErr error
}

func (c *countingCatalog) ApplyChange(ctx context.Context, id string, ch models.ProjectChange) (models.Project, error) {
	if c.applyErr != nil {
		return models.Project{}, c.applyErr
	}
	c.mu.Lock()
	c.applied++
	c.mu.Unlock()
	return c.Service.ApplyChange(ctx, id, ch)
}

type memRecorder struct {
	saved []models.ChangeRequest
}

func (m *memRecorder) SaveChangeRequest(_ context.Context, r models.ChangeRequest) error {
	m.saved = append(m.saved, r)
	return nil
}

func testDirectory() *Directory {
	return NewDirectory([]models.UserProfile{
		{Name: "张总", EmployeeID: "NEPDI-S-001", Role: models.RoleAdmin},
		{Name: "王主任", EmployeeID: "NEPDI-S-020", Role: models.RoleManager},
		{Name: "李工", EmployeeID: "NEPDI-S-042", Role: models.RoleUser},
	})
}

func createTestService(t *testing.T) (*Service, *countingCatalog, *memRecorder) {
	log := logger.NewTestLogger(t)
	svc := catalog.NewService(catalog.NewStore(generator.SeedProjects()), catalog.Backends{},
		generator.DefaultCatalogOptions(), nil, log)
	cat := &countingCatalog{Service: svc}
	rec := &memRecorder{}
	return NewService(cat, testDirectory(), rec, log), cat, rec
}

// ==========================
// Submit
// ==========================

func TestSubmit_TakesOldValueFromRecord(t *testing.T) {
	s, _, rec := createTestService(t)

	req, err := s.Submit(context.Background(), "p1", "李工", models.NewProgressChange(0, 40))
	require.NoError(t, err)

	assert.NotEmpty(t, req.ID)
	assert.Equal(t, models.ApprovalPendingLevel2, req.Status)
	assert.Equal(t, "NEPDI-S-042", req.ApplicantID)
	assert.Equal(t, 25, req.Change.Progress.Old)
	assert.Equal(t, 40, req.Change.Progress.New)
	assert.Len(t, rec.saved, 1)
}

func TestSubmit_NewestFirst(t *testing.T) {
	s, _, _ := createTestService(t)
	ctx := context.Background()

	first, err := s.Submit(ctx, "p1", "李工", models.NewProgressChange(0, 30))
	require.NoError(t, err)
	second, err := s.Submit(ctx, "p1_2", "李工", models.NewStatusChange("", models.StatusProposal))
	require.NoError(t, err)

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestSubmit_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		projectID string
		applicant string
		change    models.ProjectChange
		wantCode  errors.ErrorCode
	}{
		{"unknown project", "nope", "李工", models.NewProgressChange(0, 10), errors.ErrCodeProjectNotFound},
		{"progress over 100", "p1", "李工", models.NewProgressChange(0, 120), errors.ErrCodeChangeRequestInvalid},
		{"unknown status", "p1", "李工", models.NewStatusChange("", "未知"), errors.ErrCodeChangeRequestInvalid},
		{"payment over contract", "p1_2", "李工", models.NewPaymentChange(0, 5000), errors.ErrCodeChangeRequestInvalid},
		{"negative payment", "p1", "李工", models.NewPaymentChange(0, -1), errors.ErrCodeChangeRequestInvalid},
		{"missing applicant", "p1", "", models.NewProgressChange(0, 10), errors.ErrCodeInvalidInput},
		{"progress below status band", "p1", "李工", models.NewProgressChange(0, 5), errors.ErrCodeChangeRequestInvalid},
		{"status band excludes progress", "p1", "李工", models.NewStatusChange("", models.StatusCompleted), errors.ErrCodeChangeRequestInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := createTestService(t)
			_, err := s.Submit(context.Background(), tt.projectID, tt.applicant, tt.change)
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, tt.wantCode), "got %v", err)
			assert.Empty(t, s.List())
		})
	}
}

// ==========================
// Approve / Reject
// ==========================

func TestApprove_TwoLevelsAppliesOnce(t *testing.T) {
	s, cat, rec := createTestService(t)
	ctx := context.Background()

	req, err := s.Submit(ctx, "p1", "李工", models.NewProgressChange(0, 55))
	require.NoError(t, err)

	req, err = s.Approve(ctx, req.ID, "王主任")
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalPendingLevel3, req.Status)
	assert.Equal(t, "王主任", req.Level2Approver)
	assert.NotEmpty(t, req.Level2Date)
	assert.Equal(t, 0, cat.applied)

	p, _ := cat.Get("p1")
	assert.Equal(t, 25, p.Progress)

	_, err = s.Approve(ctx, req.ID, "王主任")
	assert.True(t, errors.HasCode(err, errors.ErrCodeApproverNotAuthorized))

	req, err = s.Approve(ctx, req.ID, "NEPDI-S-001")
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalApproved, req.Status)
	assert.Equal(t, "张总", req.Level3Approver)
	assert.Equal(t, 1, cat.applied)

	p, _ = cat.Get("p1")
	assert.Equal(t, 55, p.Progress)

	_, err = s.Approve(ctx, req.ID, "张总")
	assert.True(t, errors.HasCode(err, errors.ErrCodeApprovalTransitionInvalid))
	assert.Equal(t, 1, cat.applied)

	assert.Len(t, rec.saved, 3)
}

func TestApprove_RoleMatrix(t *testing.T) {
	tests := []struct {
		approver string
		ok       bool
	}{
		{"张总", true},
		{"王主任", true},
		{"李工", false},
		{"陌生人", false},
	}

	for _, tt := range tests {
		t.Run(tt.approver, func(t *testing.T) {
			s, _, _ := createTestService(t)
			req, err := s.Submit(context.Background(), "p1", "李工", models.NewProgressChange(0, 30))
			require.NoError(t, err)

			_, err = s.Approve(context.Background(), req.ID, tt.approver)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.HasCode(err, errors.ErrCodeApproverNotAuthorized))
		})
	}
}

func TestApprove_ApplyFailureKeepsLevel3(t *testing.T) {
	s, cat, _ := createTestService(t)
	ctx := context.Background()

	req, err := s.Submit(ctx, "p1", "李工", models.NewPaymentChange(0, 1000))
	require.NoError(t, err)
	_, err = s.Approve(ctx, req.ID, "王主任")
	require.NoError(t, err)

	cat.applyErr = errors.NewProjectNotFoundError("p1")
	_, err = s.Approve(ctx, req.ID, "张总")
	require.Error(t, err)

	got, err := s.Get(req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalPendingLevel3, got.Status)
	assert.Empty(t, got.Level3Approver)

	cat.applyErr = nil
	got, err = s.Approve(ctx, req.ID, "张总")
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalApproved, got.Status)
	p, _ := cat.Get("p1")
	assert.Equal(t, int64(1000), p.PaymentReceived)
}

func TestApprove_RechecksBandAtApply(t *testing.T) {
	s, cat, _ := createTestService(t)
	ctx := context.Background()

	progress, err := s.Submit(ctx, "p1", "李工", models.NewProgressChange(0, 90))
	require.NoError(t, err)
	status, err := s.Submit(ctx, "p1", "李工", models.NewStatusChange("", models.StatusFeasibility))
	require.NoError(t, err, "25 sits inside the feasibility band at submit time")

	for _, approver := range []string{"王主任", "张总"} {
		_, err = s.Approve(ctx, progress.ID, approver)
		require.NoError(t, err)
	}
	_, err = s.Approve(ctx, status.ID, "王主任")
	require.NoError(t, err)
	_, err = s.Approve(ctx, status.ID, "张总")
	assert.True(t, errors.HasCode(err, errors.ErrCodeChangeRequestInvalid))

	got, err := s.Get(status.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalPendingLevel3, got.Status)

	p, _ := cat.Get("p1")
	assert.Equal(t, 90, p.Progress)
	assert.Equal(t, models.StatusConstruction, p.Status)
	assert.Empty(t, generator.Validate(p))
}

func TestReject(t *testing.T) {
	s, cat, _ := createTestService(t)
	ctx := context.Background()

	req, err := s.Submit(ctx, "p1", "李工", models.NewStatusChange("", models.StatusFeasibility))
	require.NoError(t, err)

	_, err = s.Reject(ctx, req.ID, "王主任", "")
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidInput))

	_, err = s.Reject(ctx, req.ID, "李工", "不同意")
	assert.True(t, errors.HasCode(err, errors.ErrCodeApproverNotAuthorized))

	req, err = s.Reject(ctx, req.ID, "王主任", "进度不符，请核实")
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalRejected, req.Status)
	assert.Equal(t, "王主任", req.Level2Approver)
	assert.Equal(t, "进度不符，请核实", req.RejectReason)

	_, err = s.Approve(ctx, req.ID, "张总")
	assert.True(t, errors.HasCode(err, errors.ErrCodeApprovalTransitionInvalid))
	assert.Equal(t, 0, cat.applied)

	p, _ := cat.Get("p1")
	assert.Equal(t, models.StatusConstruction, p.Status)
}

func TestReject_AtLevel3(t *testing.T) {
	s, _, _ := createTestService(t)
	ctx := context.Background()

	req, err := s.Submit(ctx, "p1", "李工", models.NewProgressChange(0, 90))
	require.NoError(t, err)
	_, err = s.Approve(ctx, req.ID, "王主任")
	require.NoError(t, err)

	_, err = s.Reject(ctx, req.ID, "王主任", "no")
	assert.True(t, errors.HasCode(err, errors.ErrCodeApproverNotAuthorized))

	req, err = s.Reject(ctx, req.ID, "张总", "预算未落实")
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalRejected, req.Status)
	assert.Equal(t, "张总", req.Level3Approver)
}

func TestUnknownRequest(t *testing.T) {
	s, _, _ := createTestService(t)

	_, err := s.Approve(context.Background(), "missing", "张总")
	assert.True(t, errors.HasCode(err, errors.ErrCodeChangeRequestNotFound))
	_, err = s.Reject(context.Background(), "missing", "张总", "x")
	assert.True(t, errors.HasCode(err, errors.ErrCodeChangeRequestNotFound))
}

func TestPendingFor(t *testing.T) {
	s, _, _ := createTestService(t)
	ctx := context.Background()

	a, _ := s.Submit(ctx, "p1", "李工", models.NewProgressChange(0, 30))
	b, _ := s.Submit(ctx, "p1_2", "李工", models.NewProgressChange(0, 20))
	_, err := s.Approve(ctx, b.ID, "王主任")
	require.NoError(t, err)

	manager := s.PendingFor("王主任")
	require.Len(t, manager, 1)
	assert.Equal(t, a.ID, manager[0].ID)

	assert.Len(t, s.PendingFor("张总"), 2)
	assert.Empty(t, s.PendingFor("李工"))
	assert.Empty(t, s.PendingFor("nobody"))
}

func TestDirectory_Signers(t *testing.T) {
	d := testDirectory()
	assert.Len(t, d.Signers(models.ApprovalPendingLevel2), 2)
	l3 := d.Signers(models.ApprovalPendingLevel3)
	require.Len(t, l3, 1)
	assert.Equal(t, "张总", l3[0].Name)
	assert.Empty(t, d.Signers(models.ApprovalApproved))
}
