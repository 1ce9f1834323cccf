// internal/models/stakeholder.go
package models

type Influence string

const (
	InfluenceHigh   Influence = "High"
	InfluenceMedium Influence = "Medium"
	InfluenceLow    Influence = "Low"
)

type Gender string

const (
	GenderMale   Gender = "男"
	GenderFemale Gender = "女"
)

type EducationEntry struct {
	School   string `json:"school"`
	Degree   string `json:"degree"`
	GradYear string `json:"gradYear"`
	Major    string `json:"major,omitempty"`
}

type CareerEntry struct {
	Start       string `json:"start"`
	End         string `json:"end"`
	Company     string `json:"company"`
	Role        string `json:"role"`
	Description string `json:"description,omitempty"`
}

type SpouseInfo struct {
	Name string `json:"name"`
	Info string `json:"info,omitempty"` // employer or remark
}

type ChildInfo struct {
	Gender Gender `json:"gender"`
	Age    int    `json:"age"`
	Status string `json:"status"` // school or employer
}

// Stakeholder is a client-side contact with an optional personal dossier.
type Stakeholder struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	Phone       string    `json:"phone"`
	AvatarURL   string    `json:"avatarUrl"`
	Influence   Influence `json:"influence"`
	Email       string    `json:"email,omitempty"`
	Address     string    `json:"address,omitempty"`
	WechatQRURL string    `json:"wechatQrUrl,omitempty"`

	Age        *int             `json:"age,omitempty"`
	Birthplace string           `json:"birthplace,omitempty"`
	Hobbies    []string         `json:"hobbies,omitempty"`
	Education  []EducationEntry `json:"education,omitempty"`
	Career     []CareerEntry    `json:"career,omitempty"`
	Spouse     *SpouseInfo      `json:"spouse,omitempty"`
	Children   []ChildInfo      `json:"children,omitempty"`
}

func (s Stakeholder) Clone() Stakeholder {
	out := s
	if s.Age != nil {
		age := *s.Age
		out.Age = &age
	}
	if s.Spouse != nil {
		spouse := *s.Spouse
		out.Spouse = &spouse
	}
	out.Hobbies = append([]string(nil), s.Hobbies...)
	out.Education = append([]EducationEntry(nil), s.Education...)
	out.Career = append([]CareerEntry(nil), s.Career...)
	out.Children = append([]ChildInfo(nil), s.Children...)
	return out
}
