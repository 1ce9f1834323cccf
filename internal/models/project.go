// internal/models/project.go
package models

import "strings"

// ProjectCategory is one of the institute's fixed business lines.
type ProjectCategory string

const (
	CategoryGeneration    ProjectCategory = "发电工程公司"
	CategoryGrid          ProjectCategory = "电网工程公司"
	CategoryNewEnergy     ProjectCategory = "新能源工程公司"
	CategoryInternational ProjectCategory = "国际工程公司"
	CategoryMunicipal     ProjectCategory = "市政工程公司"
	CategoryEnvironment   ProjectCategory = "环境工程公司"
	CategorySurvey        ProjectCategory = "勘测工程公司"
	CategoryDigital       ProjectCategory = "数字化工程公司"
	CategoryGreenChem     ProjectCategory = "绿色能源化工工程公司"
)

var allCategories = []ProjectCategory{
	CategoryGeneration,
	CategoryGrid,
	CategoryNewEnergy,
	CategoryInternational,
	CategoryMunicipal,
	CategoryEnvironment,
	CategorySurvey,
	CategoryDigital,
	CategoryGreenChem,
}

// AllCategories returns every category in enumeration order.
func AllCategories() []ProjectCategory {
	out := make([]ProjectCategory, len(allCategories))
	copy(out, allCategories)
	return out
}

// ShortName drops the company suffix, e.g. 发电工程公司 -> 发电.
func (c ProjectCategory) ShortName() string {
	return strings.TrimSuffix(string(c), "工程公司")
}

func (c ProjectCategory) Valid() bool {
	for _, known := range allCategories {
		if c == known {
			return true
		}
	}
	return false
}

// IsInternational reports whether projects in the category are located abroad.
func (c ProjectCategory) IsInternational() bool {
	return c == CategoryInternational
}

// ProjectStatus is an ordered lifecycle stage.
type ProjectStatus string

const (
	StatusProposal     ProjectStatus = "项目建议书"
	StatusFeasibility  ProjectStatus = "可研"
	StatusPrelimDesign ProjectStatus = "初步设计"
	StatusDrawing      ProjectStatus = "施工图"
	StatusConstruction ProjectStatus = "在建"
	StatusCompleted    ProjectStatus = "已完工"
)

var allStatuses = []ProjectStatus{
	StatusProposal,
	StatusFeasibility,
	StatusPrelimDesign,
	StatusDrawing,
	StatusConstruction,
	StatusCompleted,
}

// AllStatuses returns the lifecycle stages in order.
func AllStatuses() []ProjectStatus {
	out := make([]ProjectStatus, len(allStatuses))
	copy(out, allStatuses)
	return out
}

// Rank is the position of the status in the lifecycle, or -1 when unknown.
func (s ProjectStatus) Rank() int {
	for i, known := range allStatuses {
		if s == known {
			return i
		}
	}
	return -1
}

func (s ProjectStatus) Valid() bool {
	return s.Rank() >= 0
}

// BusinessType gates the financial magnitude of a project.
type BusinessType string

const (
	BusinessDesign BusinessType = "设计"
	BusinessEPC    BusinessType = "总包"
)

func (b BusinessType) Valid() bool {
	return b == BusinessDesign || b == BusinessEPC
}

// Project is one tracked engagement. Money fields are in 万元.
type Project struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Type            ProjectCategory `json:"type"`
	BusinessType    BusinessType    `json:"businessType"`
	Status          ProjectStatus   `json:"status"`
	Location        string          `json:"location"`
	Investor        InvestorProfile `json:"investor"`
	Capacity        string          `json:"capacity"`
	Manager         string          `json:"manager"`
	Stakeholders    []Stakeholder   `json:"stakeholders"`
	Progress        int             `json:"progress"`
	ContractValue   int64           `json:"contractValue"`
	PaymentReceived int64           `json:"paymentReceived"`
}

// IsActive matches the dashboard's "在建项目" counter.
func (p *Project) IsActive() bool {
	return p.Progress < 100
}

// Clone returns a deep copy so callers can't mutate shared records.
func (p Project) Clone() Project {
	out := p
	out.Investor.Shareholders = append([]Shareholder(nil), p.Investor.Shareholders...)
	if p.Stakeholders != nil {
		out.Stakeholders = make([]Stakeholder, len(p.Stakeholders))
		for i, s := range p.Stakeholders {
			out.Stakeholders[i] = s.Clone()
		}
	}
	return out
}
