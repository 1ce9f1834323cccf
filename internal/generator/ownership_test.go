package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project-tracker/internal/models"
)

func TestInvestorProfile_Invariants(t *testing.T) {
	tests := []struct {
		name          string
		international bool
		location      string
		majors        []string
	}{
		{"domestic", false, "广东省湛江市", domesticMajorShareholders},
		{"international", true, "越南·平顺省", intlMajorShareholders},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(NewSource(21))
			sizes := map[int]bool{}
			for i := 0; i < 2000; i++ {
				profile := g.InvestorProfile(tt.international, tt.location)
				require.Empty(t, profile.Validate())

				holders := profile.Shareholders
				require.GreaterOrEqual(t, len(holders), 2)
				require.LessOrEqual(t, len(holders), 4)
				sizes[len(holders)] = true

				assert.Equal(t, models.ShareholderControlling, holders[0].Type)
				assert.Contains(t, tt.majors, holders[0].Name)

				names := map[string]bool{}
				for _, h := range holders {
					assert.False(t, names[h.Name], "duplicate holder %q", h.Name)
					names[h.Name] = true
					if h.Type == models.ShareholderMinority {
						pct, err := h.Percent()
						require.NoError(t, err)
						assert.GreaterOrEqual(t, pct, 5)
					}
				}
			}
			assert.Len(t, sizes, 3, "every holder count from 2 to 4 occurs")
		})
	}
}

func TestInvestorProfile_Names(t *testing.T) {
	g := New(NewSource(22))

	domestic := g.InvestorProfile(false, "广东省湛江市")
	last := domestic.Shareholders[len(domestic.Shareholders)-1]
	assert.Equal(t, "广东省城市建设投资集团", last.Name)
	assert.True(t, strings.HasSuffix(domestic.Name, "广东发电有限公司"), domestic.Name)

	intl := g.InvestorProfile(true, "越南·平顺省")
	last = intl.Shareholders[len(intl.Shareholders)-1]
	assert.Equal(t, "Local Gov Investment", last.Name)
	assert.True(t, strings.HasSuffix(intl.Name, "越南Power Company Ltd."), intl.Name)
	assert.Equal(t, firstRunes(intl.Shareholders[0].Name, 4)+"越南Power Company Ltd.", intl.Name)
}

func TestCompanyName(t *testing.T) {
	assert.Equal(t, "深圳能源广东发电有限公司", companyName("深圳能源集团股份有限公司", "广东省惠州市", false))
	assert.Equal(t, "ACWA越南Power Company Ltd.", companyName("ACWA Power", "越南·平顺省", true))
	assert.Equal(t, "EDF 乌兹Power Company Ltd.", companyName("EDF International", "乌兹别克斯坦·撒马尔罕", true))
}
