// internal/catalog/store.go
package catalog

import (
	"fmt"
	"strings"
	"sync"

	"project-tracker/internal/common/errors"
	"project-tracker/internal/generator"
	"project-tracker/internal/models"
)

// Store is the shared in-memory record set. Reads hand out copies.
type Store struct {
	mu        sync.RWMutex
	projects  []models.Project
	index     map[string]int
	feedbacks []models.Feedback
}

func NewStore(projects []models.Project) *Store {
	s := &Store{}
	s.Replace(projects)
	return s
}

// Replace swaps the whole catalog, keeping input order.
func (s *Store) Replace(projects []models.Project) {
	next := make([]models.Project, len(projects))
	index := make(map[string]int, len(projects))
	for i, p := range projects {
		next[i] = p.Clone()
		index[p.ID] = i
	}

	s.mu.Lock()
	s.projects = next
	s.index = index
	s.mu.Unlock()
}

func (s *Store) SetFeedbacks(items []models.Feedback) {
	s.mu.Lock()
	s.feedbacks = append([]models.Feedback(nil), items...)
	s.mu.Unlock()
}

func (s *Store) Feedbacks() []models.Feedback {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Feedback(nil), s.feedbacks...)
}

func (s *Store) Feedback(id string) (models.Feedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.feedbacks {
		if f.ID == id {
			return f, nil
		}
	}
	return models.Feedback{}, errors.NewFeedbackNotFoundError(id)
}

// RespondFeedback records a reply on a feedback item. An empty status
// moves the item to in progress.
func (s *Store) RespondFeedback(id, response string, status models.FeedbackStatus) (models.Feedback, error) {
	if strings.TrimSpace(response) == "" {
		return models.Feedback{}, errors.NewInvalidInputError("response is required")
	}
	if status == "" {
		status = models.FeedbackInProgress
	}
	if !status.Valid() {
		return models.Feedback{}, errors.NewInvalidInputError(fmt.Sprintf("unknown feedback status %q", status))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.feedbacks {
		if s.feedbacks[i].ID == id {
			s.feedbacks[i].Response = response
			s.feedbacks[i].Status = status
			return s.feedbacks[i], nil
		}
	}
	return models.Feedback{}, errors.NewFeedbackNotFoundError(id)
}

func (s *Store) All() []models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Project, len(s.projects))
	for i, p := range s.projects {
		out[i] = p.Clone()
	}
	return out
}

func (s *Store) ByCategory(category models.ProjectCategory) []models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Project
	for _, p := range s.projects {
		if p.Type == category {
			out = append(out, p.Clone())
		}
	}
	return out
}

func (s *Store) Get(id string) (models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return models.Project{}, errors.NewProjectNotFoundError(id)
	}
	return s.projects[i].Clone(), nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.projects)
}

// Stats backs the dashboard counters.
type Stats struct {
	Projects         int `json:"projects"`
	ActiveProjects   int `json:"activeProjects"`
	PendingFeedbacks int `json:"pendingFeedbacks"`
}

func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{Projects: len(s.projects)}
	for i := range s.projects {
		if s.projects[i].IsActive() {
			st.ActiveProjects++
		}
	}
	for _, f := range s.feedbacks {
		if f.Status == models.FeedbackPending {
			st.PendingFeedbacks++
		}
	}
	return st
}

// ApplyChange writes the new value of an approved change and returns the
// updated record.
func (s *Store) ApplyChange(projectID string, change models.ProjectChange) (models.Project, error) {
	if err := change.Validate(); err != nil {
		return models.Project{}, errors.NewChangeRequestInvalidError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[projectID]
	if !ok {
		return models.Project{}, errors.NewProjectNotFoundError(projectID)
	}
	p := &s.projects[i]
	if err := CheckChange(*p, change); err != nil {
		return models.Project{}, err
	}

	switch change.Kind {
	case models.ChangeProgress:
		p.Progress = change.Progress.New
	case models.ChangeStatus:
		p.Status = change.Status.New
	case models.ChangePayment:
		p.PaymentReceived = change.Payment.New
	}
	return p.Clone(), nil
}

// CheckChange reports whether applying change to p keeps the record
// consistent: progress stays inside the band of its status and payment
// stays within the contract value.
func CheckChange(p models.Project, change models.ProjectChange) error {
	switch change.Kind {
	case models.ChangeProgress:
		lo, hi := generator.ProgressBand(p.Status)
		if change.Progress.New < lo || change.Progress.New > hi {
			return errors.NewChangeRequestInvalidError(
				fmt.Errorf("progress %d outside %s band [%d, %d]", change.Progress.New, p.Status, lo, hi))
		}
	case models.ChangeStatus:
		lo, hi := generator.ProgressBand(change.Status.New)
		if p.Progress < lo || p.Progress > hi {
			return errors.NewChangeRequestInvalidError(
				fmt.Errorf("progress %d outside %s band [%d, %d]", p.Progress, change.Status.New, lo, hi))
		}
	case models.ChangePayment:
		if change.Payment.New > p.ContractValue {
			return errors.NewChangeRequestInvalidError(
				fmt.Errorf("payment %d exceeds contract value %d", change.Payment.New, p.ContractValue))
		}
	}
	return nil
}
