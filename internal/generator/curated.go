package generator

import "project-tracker/internal/models"

// curatedNames are real project names used before any name is synthesized.
var curatedNames = map[models.ProjectCategory][]string{
	models.CategoryGeneration: {
		"东莞宁洲3×700MW燃气-蒸汽联合循环热电冷联产工程",
		"佛山三水燃气热电联产扩建项目",
		"广州珠江电厂2×1000MW燃煤机组灵活性改造项目",
		"茂名博贺电厂2×1000MW上大压小工程",
		"湛江京信2×600MW“上大压小”热电联产燃煤机组工程",
		"清远石角天然气分布式能源站项目",
		"深圳能源光明电源基地项目",
		"肇庆鼎湖天然气热电联产项目",
	},
	models.CategoryGrid: {
		"大湾区中通道直流背靠背工程(东莞侧)",
		"500kV 穗东输变电工程配套线路项目",
		"深圳中西部电网网架优化工程",
		"500kV 蝴蝶岭变电站扩建主变工程",
		"粤港澳大湾区外环西段输电线路工程",
		"海南联网二回500kV海缆陆地段工程",
	},
	models.CategoryNewEnergy: {
		"广东阳江沙扒300MW海上风电场项目",
		"中广核惠州港口二PA海上风电项目",
		"湛江徐闻600MW海上风电场工程",
		"广西钦州恒科30MW分布式光伏发电项目",
		"云南楚雄100MW农光互补光伏电站",
		"海南东方CZ8场址500MW海上风电项目",
		"广东粤电阳江青洲一海上风电场项目",
	},
	models.CategoryInternational: {
		"乌兹别克斯坦锡尔河1500MW燃气联合循环独立发电项目",
		"乌兹别克斯坦安集延200MW光伏+储能项目",
		"越南海阳2×600MW燃煤电厂工程",
		"菲律宾瓦瓦500MW抽水蓄能电站项目",
		"印度尼西亚爪哇7号2×1050MW燃煤发电工程",
		"老挝南恩2号水电站项目",
		"孟加拉国帕亚拉2×660MW超超临界燃煤电站",
		"马来西亚沙巴州大型太阳能光伏电站项目",
	},
	models.CategoryMunicipal: {
		"广州南沙新区综合管廊工程",
		"深圳市东部垃圾焚烧处理厂配套市政工程",
		"东莞市中心城区供水管网升级改造工程",
		"珠海横琴新区能源站市政配套管网项目",
	},
	models.CategoryEnvironment: {
		"广州市第三资源热力电厂二期工程",
		"湛江市全地埋式污水处理厂项目",
		"茂名市工业园区工业废水零排放改造工程",
	},
	models.CategorySurvey: {
		"粤东海上风电基地海底地形地貌勘察项目",
		"广西防城港核电三期工程岩土工程勘察",
		"深中通道海底隧道段专项地质勘察",
	},
	models.CategoryDigital: {
		"南方电网数字孪生变电站试点项目",
		"广东能源集团智慧电厂管理平台建设项目",
		"海上风电场全生命周期数字化管理系统",
	},
	models.CategoryGreenChem: {
		"湛江巴斯夫一体化基地可再生能源供电项目",
		"茂名石化炼化转型升级绿色供能配套工程",
		"惠州大亚湾石化区绿氢制备示范项目",
	},
}

// CuratedNames returns a copy of the curated list for a category.
func CuratedNames(category models.ProjectCategory) []string {
	return append([]string(nil), curatedNames[category]...)
}
