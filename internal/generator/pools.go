package generator

// Vocabulary the synthesizers sample from. Every pool must be non-empty;
// pools_test.go enforces it.

var domesticLocations = []string{
	"广东省广州市", "广东省深圳市", "广东省珠海市", "广东省佛山市", "广东省惠州市", "广东省东莞市",
	"广东省中山市", "广东省江门市", "广东省湛江市", "广东省茂名市", "广东省阳江市", "广东省清远市",
	"广西壮族自治区南宁市", "广西壮族自治区钦州市", "广西壮族自治区防城港市",
	"云南省昆明市", "云南省大理白族自治州",
	"贵州省贵阳市", "海南省海口市", "海南省三亚市",
}

var internationalLocations = []string{
	"乌兹别克斯坦·锡尔河州", "乌兹别克斯坦·塔什干", "乌兹别克斯坦·撒马尔罕",
	"越南·海阳省", "越南·平顺省",
	"印度尼西亚·爪哇岛", "印度尼西亚·雅加达",
	"菲律宾·马尼拉", "菲律宾·吕宋岛",
	"老挝·万象", "老挝·琅勃拉邦",
	"孟加拉国·吉大港", "马来西亚·沙巴州",
}

var (
	residentialAreas = []string{"幸福花园", "阳光小区", "碧桂园", "万科城", "滨江一号", "中央公馆", "山水华府"}
	roadNames        = []string{"建设路", "人民路", "中山路", "解放路", "和平路", "迎宾大道"}
)

var (
	cnLastNames  = []string{"王", "李", "张", "刘", "陈", "杨", "黄", "赵", "吴", "周", "徐", "孙", "马", "朱", "胡", "林", "郭", "何", "高", "罗"}
	cnFirstNames = []string{"伟", "强", "磊", "洋", "勇", "军", "杰", "涛", "明", "超", "秀英", "娜", "静", "丽", "敏", "燕", "鹏", "华", "波", "刚"}
)

// namePool is a first/last pair for one international sub-region.
type namePool struct {
	keywords []string
	first    []string
	last     []string
}

var regionalNamePools = []namePool{
	{
		keywords: []string{"乌兹别克斯坦"},
		first:    []string{"Dmitry", "Aleksandr", "Rustam", "Aziz", "Islam"},
		last:     []string{"Karimov", "Ivanov", "Petrov", "Yuldashev"},
	},
	{
		keywords: []string{"越南"},
		first:    []string{"Nguyen", "Tran", "Le", "Pham"},
		last:     []string{"Van A", "Thi B", "Minh", "Quoc"},
	},
	{
		keywords: []string{"菲律宾", "印尼", "印度尼西亚"},
		first:    []string{"Jose", "Maria", "Budi", "Agus"},
		last:     []string{"Santos", "Reyes", "Wijaya", "Susanto"},
	},
}

var genericIntlNames = namePool{
	first: []string{"David", "Michael", "James", "Robert", "John", "Dmitry", "Igor", "Sergey", "Nguyen", "Tran", "Le", "Siti", "Budi", "Antonio", "Jose"},
	last:  []string{"Smith", "Johnson", "Williams", "Brown", "Ivanov", "Petrov", "Smirnov", "Van", "Pham", "Santoso", "Wijaya", "Cruz", "Reyes", "Singh"},
}

var (
	domesticRoles      = []string{"总经理", "副总经理", "总工程师", "项目总监", "工程部主任", "前期部经理", "基建部主任", "安监部部长", "技术总监", "董事长"}
	internationalRoles = []string{"Project Director", "Chief Engineer", "General Manager", "Site Manager", "Technical Director", "Operations Manager"}
)

// Child status pools, one per age band. They are disjoint so a status
// identifies its band.
var (
	childPreschool = []string{"市机关幼儿园", "国际幼儿园", "省委机关幼儿园"}
	childPrimary   = []string{"市实验小学", "外国语学校小学部", "师大附属小学", "市第一小学"}
	childSecondary = []string{"市第一中学", "省实验中学", "华师附中", "雅礼中学", "执信中学", "深圳中学"}
	childTertiary  = []string{"北京大学", "清华大学", "中山大学", "浙江大学", "复旦大学", "美国加州大学(UCSD)", "英国曼彻斯特大学", "香港大学"}
	childEmployed  = []string{"市税务局", "电网公司", "建设银行", "市设计院", "市人民医院", "高校任教"}
)

var spouseJobs = []string{"市中心医院 主任医师", "市财政局 科长", "某高校 教授", "建设银行 支行行长", "市教育局 干部", "某国企 财务总监", "市文旅局 副局长"}

var (
	domesticMajorShareholders = []string{"广东省能源集团", "中国华能集团", "中国大唐集团", "国家能源投资集团", "国家电力投资集团", "华润电力控股有限公司", "南方电网综合能源股份有限公司"}
	domesticMinorShareholders = []string{"广州产业投资控股集团", "深圳市投资控股有限公司", "广东省电力开发公司", "XX市城市建设投资集团", "XX省交通投资集团", "中国能建集团投资公司"}

	intlMajorShareholders = []string{"ACWA Power", "Masdar (Abu Dhabi Future Energy Company)", "Korea Electric Power Corp (KEPCO)", "EDF International", "PowerChina International"}
	intlMinorShareholders = []string{"Silk Road Fund (丝路基金)", "Asian Infrastructure Investment Bank (AIIB)", "Local Ministry of Energy", "Local Sovereign Wealth Fund", "International Finance Corporation (IFC)"}
)

var (
	domesticHobbies = []string{"高尔夫", "海钓", "普洱茶", "书法", "马拉松", "摄影", "游泳", "网球", "羽毛球", "古典音乐", "登山", "自驾游", "红酒收藏", "围棋", "太极拳"}
	intlHobbies     = []string{"Golf", "Sailing", "Fishing", "Tennis", "Marathon", "Photography", "Swimming", "Hiking", "Classical Music", "Wine Tasting", "Chess", "Scuba Diving"}
)

var (
	domesticUniversities = []string{"清华大学", "华南理工大学", "武汉大学", "浙江大学", "西安交通大学", "华北电力大学"}
	intlUniversities     = []string{"MIT", "NUS", "Moscow State Univ", "University of Melbourne"}
	majors               = []string{"电气工程", "热能工程", "土木工程", "工程管理"}
)

var emailDomains = []string{"163.com", "qq.com", "gmail.com", "energy-group.com", "project-corp.net"}

var (
	domesticNameSuffixes = []string{"扩建工程", "新建项目", "改造工程", "示范项目", "配套工程"}
	intlNameSuffixes     = []string{" Phase I", " Expansion", " Power Plant"}
)
