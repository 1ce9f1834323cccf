package generator

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mozillazg/go-pinyin"

	"project-tracker/internal/models"
)

const (
	avatarURLFormat = "https://randomuser.me/api/portraits/men/%d.jpg"
	wechatQRFormat  = "https://api.qrserver.com/v1/create-qr-code/?size=150x150&data=wxid_%s_nepdi"
)

// WechatQRURL is derived from the stakeholder ID only.
func WechatQRURL(id string) string {
	return fmt.Sprintf(wechatQRFormat, id)
}

// Name draws a person name for the locale. Abroad the sub-region is read
// from the location to pick a matching name pool.
func (g *Generator) Name(international bool, location string) string {
	if !international {
		return g.s.Pick(cnLastNames) + g.s.Pick(cnFirstNames)
	}
	pool := genericIntlNames
	for _, p := range regionalNamePools {
		if containsAny(location, p.keywords) {
			pool = p
			break
		}
	}
	return g.s.Pick(pool.first) + " " + g.s.Pick(pool.last)
}

// Stakeholder synthesizes one contact with a full personal dossier.
func (g *Generator) Stakeholder(idPrefix string, index int, international bool, location string) models.Stakeholder {
	id := fmt.Sprintf("%s_s_%d", idPrefix, index)
	name := g.Name(international, location)

	roles := domesticRoles
	if international {
		roles = internationalRoles
	}
	role := g.s.Pick(roles)
	age := g.s.IntRange(38, 58)

	var spouse *models.SpouseInfo
	var children []models.ChildInfo
	if !international {
		spouse = &models.SpouseInfo{Name: g.Name(false, location), Info: g.s.Pick(spouseJobs)}
		children = g.Children(age)
	} else {
		if g.s.Chance(0.3) {
			spouse = &models.SpouseInfo{Name: "Partner", Info: "Housewife / Professional"}
		}
		if g.s.Chance(0.2) {
			children = g.Children(age)
		}
	}

	influence := models.InfluenceMedium
	if g.s.Chance(0.3) {
		influence = models.InfluenceHigh
	}

	hobbyPool := domesticHobbies
	if international {
		hobbyPool = intlHobbies
	}

	st := models.Stakeholder{
		ID:          id,
		Name:        name,
		Role:        role,
		AvatarURL:   fmt.Sprintf(avatarURLFormat, g.s.IntRange(1, 99)),
		Phone:       g.phone(international),
		Influence:   influence,
		Email:       g.email(name, international),
		Address:     g.address(international, location),
		WechatQRURL: WechatQRURL(id),
		Hobbies:     g.s.Subset(hobbyPool, g.s.IntRange(2, 4)),
		Age:         &age,
		Birthplace:  g.birthplace(international, location),
		Spouse:      spouse,
		Children:    children,
		Education:   []models.EducationEntry{g.education(international)},
		Career:      careerHistory(international, role),
	}
	return st
}

func (g *Generator) phone(international bool) string {
	if international {
		return fmt.Sprintf("+%d %d %d", g.s.IntRange(1, 99), g.s.IntRange(100, 999), g.s.IntRange(1000, 9999))
	}
	return fmt.Sprintf("13%d%d", g.s.IntRange(0, 9), g.s.IntRange(10000000, 99999999))
}

func (g *Generator) address(international bool, location string) string {
	if international {
		city := location
		if _, area, ok := strings.Cut(location, "·"); ok {
			city = area
		}
		return fmt.Sprintf("10%d Park Avenue, %s", g.s.IntRange(1, 9), city)
	}
	city := location
	if !strings.Contains(city, "市") {
		city = g.s.Pick(domesticLocations)
	}
	return fmt.Sprintf("%s%s%d号%s%d栋%d室",
		city, g.s.Pick(roadNames), g.s.IntRange(1, 999),
		g.s.Pick(residentialAreas), g.s.IntRange(1, 15), g.s.IntRange(101, 3002))
}

func (g *Generator) email(name string, international bool) string {
	var local string
	if international {
		local = strings.ReplaceAll(strings.ToLower(name), " ", ".")
	} else if translit, ok := transliterate(name); ok {
		local = translit
	} else {
		local = fmt.Sprintf("user.%d", g.s.IntRange(1000, 9999))
	}
	return local + "@" + g.s.Pick(emailDomains)
}

// transliterate renders a Chinese name as "surname.given" in pinyin,
// e.g. 李建华 -> li.jianhua. It fails when any glyph has no reading.
func transliterate(name string) (string, bool) {
	syllables := pinyin.LazyPinyin(name, pinyin.NewArgs())
	if len(syllables) < 2 || len(syllables) != utf8.RuneCountInString(name) {
		return "", false
	}
	return syllables[0] + "." + strings.Join(syllables[1:], ""), true
}

func (g *Generator) birthplace(international bool, location string) string {
	if international {
		return countryOf(location)
	}
	return g.s.Pick(domesticLocations)
}

func (g *Generator) education(international bool) models.EducationEntry {
	if international {
		return models.EducationEntry{
			School:   g.s.Pick(intlUniversities),
			Degree:   "Master",
			GradYear: fmt.Sprint(g.s.IntRange(1990, 2010)),
			Major:    g.s.Pick(majors),
		}
	}
	return models.EducationEntry{
		School:   g.s.Pick(domesticUniversities),
		Degree:   "本科",
		GradYear: fmt.Sprint(g.s.IntRange(1990, 2010)),
		Major:    g.s.Pick(majors),
	}
}

func careerHistory(international bool, role string) []models.CareerEntry {
	if international {
		return []models.CareerEntry{
			{Start: "2015", End: "Present", Company: "International Energy Corp", Role: role, Description: "Leading the project execution."},
			{Start: "2005", End: "2015", Company: "Global Infrastructure Ltd", Role: "Manager", Description: "Accumulated extensive experience."},
		}
	}
	return []models.CareerEntry{
		{Start: "2015", End: "Present", Company: "项目建设单位", Role: role, Description: "负责项目全过程管理。"},
		{Start: "2005", End: "2015", Company: "某大型国企", Role: "Manager", Description: "Accumulated extensive experience."},
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
