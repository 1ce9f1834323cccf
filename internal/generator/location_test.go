package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferLocation(t *testing.T) {
	tests := []struct {
		name          string
		project       string
		international bool
		want          string
		wantOK        bool
	}{
		{"domestic city", "广东阳江沙扒300MW海上风电场项目", false, "广东省阳江市", true},
		{"city beats province", "广东惠州燃气热电联产项目", false, "广东省惠州市", true},
		{"autonomous region city", "广西防城港核电三期工程岩土工程勘察", false, "广西壮族自治区防城港市", true},
		{"province only", "云南楚雄100MW农光互补光伏电站", false, "云南省昆明市", true},
		{"island province", "海南东方CZ8场址500MW海上风电项目", false, "海南省海口市", true},
		{"no domestic place", "500kV 穗东输变电工程配套线路项目", false, "", false},
		{"sub-region abroad", "越南海阳2×600MW燃煤电厂工程", true, "越南·海阳省", true},
		{"country only", "乌兹别克斯坦安集延200MW光伏+储能项目", true, "乌兹别克斯坦·锡尔河州", true},
		{"full country name", "印度尼西亚爪哇7号2×1050MW燃煤发电工程", true, "印度尼西亚·爪哇岛", true},
		{"country alias", "印尼某燃煤电站", true, "印度尼西亚·爪哇岛", true},
		{"laos", "老挝南恩2号水电站项目", true, "老挝·万象", true},
		{"no foreign place", "Some Unknown Plant", true, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := InferLocation(tt.project, tt.international)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlaceName(t *testing.T) {
	assert.Equal(t, "广州", placeName("广东省广州市"))
	assert.Equal(t, "防城港", placeName("广西壮族自治区防城港市"))
	assert.Equal(t, "大理", placeName("云南省大理白族自治州"))
	assert.Equal(t, "海阳省", placeName("越南·海阳省"))
}
