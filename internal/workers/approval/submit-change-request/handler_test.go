// internal/workers/approval/submit-change-request/handler_test.go
package submitchangerequest

import (
	"context"
	"testing"
	"time"

	"project-tracker/internal/approval"
	"project-tracker/internal/catalog"
	"project-tracker/internal/common/errors"
	"project-tracker/internal/common/logger"
	"project-tracker/internal/generator"
	"project-tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestHandler(t *testing.T) (*Handler, *approval.Service) {
	log := logger.NewTestLogger(t)
	cat := catalog.NewService(catalog.NewStore(generator.SeedProjects()), catalog.Backends{},
		generator.DefaultCatalogOptions(), nil, log)
	dir := approval.NewDirectory([]models.UserProfile{
		{Name: "李工", EmployeeID: "NEPDI-S-042", Role: models.RoleUser},
	})
	svc := approval.NewService(cat, dir, nil, log)
	return NewHandler(&Config{Timeout: 5 * time.Second}, svc, log), svc
}

// ==========================
// Input Parsing Tests
// ==========================

func TestParseInput(t *testing.T) {
	tests := []struct {
		name      string
		variables string
		wantErr   bool
		validate  func(t *testing.T, in *Input)
	}{
		{
			name:      "payment change",
			variables: `{"projectId":"p1","applicant":"李工","change":{"kind":"payment","payment":{"old":0,"new":1200}}}`,
			validate: func(t *testing.T, in *Input) {
				assert.Equal(t, models.ChangePayment, in.Change.Kind)
				require.NotNil(t, in.Change.Payment)
				assert.Equal(t, int64(1200), in.Change.Payment.New)
			},
		},
		{
			name:      "missing applicant",
			variables: `{"projectId":"p1","change":{"kind":"progress","progress":{"new":10}}}`,
			wantErr:   true,
		},
		{
			name:      "unknown kind",
			variables: `{"projectId":"p1","applicant":"李工","change":{"kind":"budget"}}`,
			wantErr:   true,
		},
		{
			name:      "not json",
			variables: `{`,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := ParseInput(tt.variables)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidInput))
				return
			}
			require.NoError(t, err)
			tt.validate(t, in)
		})
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	h, svc := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{
		ProjectID: "p1",
		Applicant: "李工",
		Change:    models.NewProgressChange(0, 45),
	})
	require.NoError(t, err)

	assert.Equal(t, models.ApprovalPendingLevel2, out.Status)
	assert.Equal(t, "项目进度", out.Field)
	assert.Equal(t, "25%", out.OldValue)
	assert.Equal(t, "45%", out.NewValue)
	assert.Len(t, svc.List(), 1)
}

func TestHandler_Execute_InvalidChange(t *testing.T) {
	h, svc := createTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{
		ProjectID: "p1",
		Applicant: "李工",
		Change:    models.ProjectChange{Kind: models.ChangeProgress},
	})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeChangeRequestInvalid))
	assert.Empty(t, svc.List())
}
