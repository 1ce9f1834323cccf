// internal/approval/service.go
package approval

import (
	"context"
	"sync"
	"time"

	"project-tracker/internal/catalog"
	"project-tracker/internal/common/errors"
	"project-tracker/internal/common/logger"
	"project-tracker/internal/common/metrics"
	"project-tracker/internal/models"

	"github.com/google/uuid"
)

// Catalog is the slice of the catalog service approvals depend on.
type Catalog interface {
	Get(projectID string) (models.Project, error)
	ApplyChange(ctx context.Context, projectID string, change models.ProjectChange) (models.Project, error)
}

// Recorder persists request state after every transition. Optional.
type Recorder interface {
	SaveChangeRequest(ctx context.Context, req models.ChangeRequest) error
}

// Service runs change requests through department review (level 2) and
// general manager sign-off (level 3). The change is written to the
// catalog only on the transition into approved.
type Service struct {
	mu       sync.Mutex
	requests []*models.ChangeRequest // newest first
	catalog  Catalog
	recorder Recorder
	dir      *Directory
	now      func() time.Time
	log      logger.Logger
}

func NewService(catalog Catalog, dir *Directory, recorder Recorder, log logger.Logger) *Service {
	return &Service{
		catalog:  catalog,
		recorder: recorder,
		dir:      dir,
		now:      time.Now,
		log:      log.WithFields(map[string]interface{}{"component": "approval"}),
	}
}

func (s *Service) Directory() *Directory { return s.dir }

// Submit opens a request at pending level 2. The old value is taken from
// the current record, not from the caller.
func (s *Service) Submit(ctx context.Context, projectID, applicant string, change models.ProjectChange) (models.ChangeRequest, error) {
	if applicant == "" {
		return models.ChangeRequest{}, errors.NewInvalidInputError("applicant is required")
	}
	if err := change.Validate(); err != nil {
		return models.ChangeRequest{}, errors.NewChangeRequestInvalidError(err)
	}

	project, err := s.catalog.Get(projectID)
	if err != nil {
		return models.ChangeRequest{}, err
	}

	switch change.Kind {
	case models.ChangeProgress:
		change = models.NewProgressChange(project.Progress, change.Progress.New)
	case models.ChangeStatus:
		change = models.NewStatusChange(project.Status, change.Status.New)
	case models.ChangePayment:
		change = models.NewPaymentChange(project.PaymentReceived, change.Payment.New)
	}
	if err := catalog.CheckChange(project, change); err != nil {
		return models.ChangeRequest{}, err
	}

	req := models.ChangeRequest{
		ID:          uuid.NewString(),
		ProjectID:   project.ID,
		ProjectName: project.Name,
		Applicant:   applicant,
		SubmitDate:  models.DateString(s.now()),
		Status:      models.ApprovalPendingLevel2,
		Change:      change,
	}
	if u, ok := s.dir.Lookup(applicant); ok {
		req.Applicant = u.Name
		req.ApplicantID = u.EmployeeID
	}

	if err := s.record(ctx, req); err != nil {
		return models.ChangeRequest{}, err
	}

	s.mu.Lock()
	s.requests = append([]*models.ChangeRequest{&req}, s.requests...)
	s.mu.Unlock()

	metrics.ApprovalDecisions.WithLabelValues("submit", string(req.Status)).Inc()
	s.log.Info("Change request submitted", map[string]interface{}{
		"requestId": req.ID,
		"projectId": req.ProjectID,
		"kind":      string(change.Kind),
		"applicant": req.Applicant,
	})
	return req, nil
}

// Approve advances a request one level. At level 3 the change is applied.
func (s *Service) Approve(ctx context.Context, requestID, approver string) (models.ChangeRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, user, err := s.authorize(requestID, approver, "approve")
	if err != nil {
		return models.ChangeRequest{}, err
	}

	next := *req
	date := models.DateString(s.now())
	switch req.Status {
	case models.ApprovalPendingLevel2:
		next.Level2Approver = user.Name
		next.Level2Date = date
		next.Status = models.ApprovalPendingLevel3
	case models.ApprovalPendingLevel3:
		if _, err := s.catalog.ApplyChange(ctx, req.ProjectID, req.Change); err != nil {
			return models.ChangeRequest{}, err
		}
		next.Level3Approver = user.Name
		next.Level3Date = date
		next.Status = models.ApprovalApproved
	}

	*req = next
	s.afterTransition(ctx, next, "approve", user.Name)
	return next, nil
}

// Reject closes a pending request at either level.
func (s *Service) Reject(ctx context.Context, requestID, approver, reason string) (models.ChangeRequest, error) {
	if reason == "" {
		return models.ChangeRequest{}, errors.NewInvalidInputError("reject reason is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	req, user, err := s.authorize(requestID, approver, "reject")
	if err != nil {
		return models.ChangeRequest{}, err
	}

	next := *req
	date := models.DateString(s.now())
	if req.Status == models.ApprovalPendingLevel2 {
		next.Level2Approver, next.Level2Date = user.Name, date
	} else {
		next.Level3Approver, next.Level3Date = user.Name, date
	}
	next.Status = models.ApprovalRejected
	next.RejectReason = reason

	*req = next
	s.afterTransition(ctx, next, "reject", user.Name)
	return next, nil
}

// authorize must be called with mu held.
func (s *Service) authorize(requestID, approver, action string) (*models.ChangeRequest, models.UserProfile, error) {
	req := s.find(requestID)
	if req == nil {
		return nil, models.UserProfile{}, errors.NewChangeRequestNotFoundError(requestID)
	}
	if req.Status.Terminal() {
		return nil, models.UserProfile{}, errors.NewApprovalTransitionInvalidError(requestID, string(req.Status), action)
	}

	user, ok := s.dir.Lookup(approver)
	if !ok || !CanSign(user.Role, req.Status) {
		return nil, models.UserProfile{}, errors.NewApproverNotAuthorizedError(approver, string(user.Role), string(req.Status))
	}
	return req, user, nil
}

func (s *Service) afterTransition(ctx context.Context, req models.ChangeRequest, action, approver string) {
	metrics.ApprovalDecisions.WithLabelValues(action, string(req.Status)).Inc()
	if err := s.record(ctx, req); err != nil {
		s.log.Error("Failed to record change request", map[string]interface{}{
			"requestId": req.ID,
			"error":     err.Error(),
		})
	}
	s.log.Info("Change request decided", map[string]interface{}{
		"requestId": req.ID,
		"action":    action,
		"status":    string(req.Status),
		"approver":  approver,
	})
}

func (s *Service) record(ctx context.Context, req models.ChangeRequest) error {
	if s.recorder == nil {
		return nil
	}
	return s.recorder.SaveChangeRequest(ctx, req)
}

func (s *Service) find(requestID string) *models.ChangeRequest {
	for _, r := range s.requests {
		if r.ID == requestID {
			return r
		}
	}
	return nil
}

func (s *Service) Get(requestID string) (models.ChangeRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req := s.find(requestID)
	if req == nil {
		return models.ChangeRequest{}, errors.NewChangeRequestNotFoundError(requestID)
	}
	return *req, nil
}

// List returns all requests, newest first.
func (s *Service) List() []models.ChangeRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.ChangeRequest, len(s.requests))
	for i, r := range s.requests {
		out[i] = *r
	}
	return out
}

// PendingFor returns the requests the given user may act on now.
func (s *Service) PendingFor(user string) []models.ChangeRequest {
	u, ok := s.dir.Lookup(user)
	if !ok {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.ChangeRequest
	for _, r := range s.requests {
		if CanSign(u.Role, r.Status) {
			out = append(out, *r)
		}
	}
	return out
}
