package generator

import "strings"

// place is a pool location split into a coarse region (province or country)
// and a finer area (city or sub-region) used for substring matching.
type place struct {
	full   string
	region string
	area   string
}

var regionAliases = map[string][]string{
	"印度尼西亚": {"印尼"},
}

func firstRunes(s string, n int) string {
	r := []rune(s)
	if len(r) < n {
		return s
	}
	return string(r[:n])
}

// afterProvince strips the province or autonomous-region prefix.
func afterProvince(loc string) string {
	for _, marker := range []string{"自治区", "省"} {
		if i := strings.Index(loc, marker); i >= 0 {
			return loc[i+len(marker):]
		}
	}
	return loc
}

func splitDomestic(loc string) place {
	return place{full: loc, region: firstRunes(loc, 2), area: firstRunes(afterProvince(loc), 2)}
}

func splitInternational(loc string) place {
	country, area, _ := strings.Cut(loc, "·")
	return place{full: loc, region: country, area: firstRunes(area, 2)}
}

var (
	domesticPlaces      = splitAll(domesticLocations, splitDomestic)
	internationalPlaces = splitAll(internationalLocations, splitInternational)
)

func splitAll(locs []string, split func(string) place) []place {
	out := make([]place, len(locs))
	for i, l := range locs {
		out[i] = split(l)
	}
	return out
}

// InferLocation guesses a pool location from a project name. City and
// sub-region names win over province and country names; within each tier
// the first pool entry found in the name is used. The heuristic is best
// effort: names that mention no known place report false.
func InferLocation(name string, international bool) (string, bool) {
	places := domesticPlaces
	if international {
		places = internationalPlaces
	}
	for _, p := range places {
		if p.area != "" && strings.Contains(name, p.area) {
			return p.full, true
		}
	}
	for _, p := range places {
		if strings.Contains(name, p.region) {
			return p.full, true
		}
		for _, alias := range regionAliases[p.region] {
			if strings.Contains(name, alias) {
				return p.full, true
			}
		}
	}
	return "", false
}

// placeName is the short place used in synthesized project names:
// the sub-region abroad, the city at home.
func placeName(location string) string {
	if _, area, ok := strings.Cut(location, "·"); ok {
		return area
	}
	rest := afterProvince(location)
	if city, _, ok := strings.Cut(rest, "市"); ok && city != "" {
		return city
	}
	return firstRunes(rest, 2)
}

// countryOf returns the part before "·", or the whole string.
func countryOf(location string) string {
	country, _, _ := strings.Cut(location, "·")
	return country
}
