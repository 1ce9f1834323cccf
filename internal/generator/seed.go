package generator

import (
	"strings"

	"project-tracker/internal/models"
)

func intPtr(v int) *int { return &v }

// SeedProjects returns the hand-authored records that head every catalog.
func SeedProjects() []models.Project {
	return []models.Project{
		{
			ID:           "p1",
			Name:         "广东惠州燃气热电联产项目",
			Type:         models.CategoryGeneration,
			BusinessType: models.BusinessEPC,
			Status:       models.StatusConstruction,
			Location:     "广东省惠州市",
			Investor: models.InvestorProfile{
				Name: "惠州深能源丰达电力有限公司",
				Shareholders: []models.Shareholder{
					{Name: "深圳能源集团股份有限公司", Type: models.ShareholderControlling, Percentage: "65%"},
					{Name: "惠州市电力集团有限公司", Type: models.ShareholderMinority, Percentage: "25%"},
					{Name: "广东省电力开发有限公司", Type: models.ShareholderMinority, Percentage: "10%"},
				},
			},
			Capacity:        "2×460MW",
			Manager:         "张伟",
			Progress:        25,
			ContractValue:   285000,
			PaymentReceived: 56000,
			Stakeholders: []models.Stakeholder{
				{
					ID:          "s1",
					Name:        "李建华",
					Role:        "董事长",
					AvatarURL:   "https://randomuser.me/api/portraits/men/32.jpg",
					Phone:       "13800138000",
					Email:       "li.jianhua@energy-group.com",
					Address:     "广东省惠州市惠城区江北街道云山路18号帝景湾3栋802",
					WechatQRURL: WechatQRURL("s1"),
					Influence:   models.InfluenceHigh,
					Age:         intPtr(54),
					Birthplace:  "湖南长沙",
					Hobbies:     []string{"高尔夫", "普洱茶", "书法"},
					Spouse:      &models.SpouseInfo{Name: "刘女士", Info: "惠州市中心医院 心内科主任"},
					Children: []models.ChildInfo{
						{Gender: models.GenderFemale, Age: 24, Status: "美国哥伦比亚大学 硕士在读"},
					},
					Education: []models.EducationEntry{
						{School: "清华大学", Major: "热能工程", Degree: "硕士", GradYear: "1995"},
					},
					Career: []models.CareerEntry{
						{Start: "2018", End: "至今", Company: "惠州燃气热电项目公司", Role: "董事长", Description: "全面负责项目建设及运营管理。"},
					},
				},
				{
					ID:          "s2",
					Name:        "王强",
					Role:        "工程部主任",
					AvatarURL:   "https://randomuser.me/api/portraits/men/85.jpg",
					Phone:       "13900139000",
					Email:       "wang.qiang@hz-power.com",
					Address:     "广东省惠州市麦地南路麦地花园5栋301",
					WechatQRURL: WechatQRURL("s2"),
					Influence:   models.InfluenceMedium,
					Age:         intPtr(42),
					Birthplace:  "广东梅州",
					Hobbies:     []string{"海钓", "马拉松"},
					Spouse:      &models.SpouseInfo{Name: "张护士", Info: "惠州市第一人民医院 急诊科护士长"},
					Children: []models.ChildInfo{
						{Gender: models.GenderMale, Age: 12, Status: "惠州市第一小学 六年级"},
						{Gender: models.GenderFemale, Age: 6, Status: "机关幼儿园 大班"},
					},
					Education: []models.EducationEntry{
						{School: "华南理工大学", Major: "电力系统自动化", Degree: "本科", GradYear: "2004"},
					},
					Career: []models.CareerEntry{
						{Start: "2019", End: "至今", Company: "惠州燃气热电项目公司", Role: "工程部主任", Description: "负责现场施工进度协调。"},
					},
				},
			},
		},
		{
			ID:           "p1_2",
			Name:         "珠海洪湾燃机热电联产扩建工程",
			Type:         models.CategoryGeneration,
			BusinessType: models.BusinessDesign,
			Status:       models.StatusFeasibility,
			Location:     "广东省珠海市",
			Investor: models.InvestorProfile{
				Name: "珠海洪湾电力有限公司",
				Shareholders: []models.Shareholder{
					{Name: "珠海港控股集团有限公司", Type: models.ShareholderControlling, Percentage: "51%"},
					{Name: "中国南方电网有限责任公司", Type: models.ShareholderMinority, Percentage: "29%"},
					{Name: "广东省能源集团有限公司", Type: models.ShareholderMinority, Percentage: "20%"},
				},
			},
			Capacity:        "2×9F级",
			Manager:         "林峰",
			Progress:        10,
			ContractValue:   4800,
			PaymentReceived: 500,
			Stakeholders: []models.Stakeholder{
				{
					ID:          "s_gen_1",
					Name:        "刘志远",
					Role:        "总经理",
					AvatarURL:   "https://randomuser.me/api/portraits/men/22.jpg",
					Phone:       "13900001111",
					Email:       "liu.zhiyuan@zhuhai-port.com",
					Address:     "广东省珠海市香洲区情侣中路88号海滨花园1栋1201",
					WechatQRURL: WechatQRURL("s_gen_1"),
					Influence:   models.InfluenceHigh,
					Age:         intPtr(52),
					Birthplace:  "广东珠海",
					Hobbies:     []string{"摄影", "网球", "红酒收藏"},
					Spouse:      &models.SpouseInfo{Name: "陈女士", Info: "珠海市税务局 税政科科长"},
					Children: []models.ChildInfo{
						{Gender: models.GenderMale, Age: 22, Status: "中山大学 本科在读"},
					},
					Education: []models.EducationEntry{
						{School: "武汉大学", Degree: "本科", GradYear: "1994", Major: "电厂化学"},
					},
					Career: []models.CareerEntry{
						{Start: "2015", End: "至今", Company: "洪湾电力", Role: "总经理", Description: "负责扩建工程前期筹备。"},
					},
				},
			},
		},
	}
}

// FindProjectID returns the first project whose name contains part, or the
// first project's ID when none does. It returns "" for an empty list.
func FindProjectID(projects []models.Project, part string) string {
	for _, p := range projects {
		if strings.Contains(p.Name, part) {
			return p.ID
		}
	}
	if len(projects) == 0 {
		return ""
	}
	return projects[0].ID
}

// firstStakeholderID is "unknown" when the project has no stakeholders.
func firstStakeholderID(projects []models.Project, projectID string) string {
	for _, p := range projects {
		if p.ID == projectID && len(p.Stakeholders) > 0 {
			return p.Stakeholders[0].ID
		}
	}
	return "unknown"
}

// SeedFeedbacks builds the canned client feedback, linked to catalog
// projects by name fragments.
func SeedFeedbacks(projects []models.Project) []models.Feedback {
	linked := func(part string) (string, string) {
		id := FindProjectID(projects, part)
		return id, firstStakeholderID(projects, id)
	}
	uzbek, uzbekContact := linked("乌兹别克斯坦")
	vietnam, vietnamContact := linked("越南")
	wind, windContact := linked("阳江沙扒")
	digital, digitalContact := linked("智慧电厂")
	phil, philContact := linked("菲律宾")
	indo, indoContact := linked("印度尼西亚")

	return []models.Feedback{
		{ID: "f1", ProjectID: "p1", StakeholderID: "s1", Content: "关于2号机组的主变压器选型，希望能再对比一下国产和进口品牌的运维成本，下周三前给反馈。", ReceivedDate: "2023-10-25", Status: models.FeedbackPending, AssignedTo: "张伟", IsUrgent: true},
		{ID: "f2", ProjectID: "p1_2", StakeholderID: "s_gen_1", Content: "需补充海洋环评对周边渔业影响的详细数据报告，环保局那边催得紧。", ReceivedDate: "2023-10-24", Status: models.FeedbackInProgress, AssignedTo: "刘洋"},
		{ID: "f3", ProjectID: uzbek, StakeholderID: uzbekContact, Content: "Project financing approval from the local ministry is delayed. We need NEPDI to provide the updated feasibility study report in Russian by Friday.", ReceivedDate: "2023-10-26", Status: models.FeedbackPending, AssignedTo: "Wang (Intl Dept)"},
		{ID: "f4", ProjectID: wind, StakeholderID: windContact, Content: "海上风机基础施工遇到海底孤石，原打桩方案不可行，请求设计院派驻现场代表协助制定处理方案。", ReceivedDate: "2023-10-26", Status: models.FeedbackPending, AssignedTo: "陈工", IsUrgent: true},
		{ID: "f5", ProjectID: vietnam, StakeholderID: vietnamContact, Content: "The local grid operator requires a revision on the connection voltage level parameters. Please check the attachment.", ReceivedDate: "2023-10-23", Status: models.FeedbackAssigned, AssignedTo: "Li (Design)"},
		{ID: "f6", ProjectID: digital, StakeholderID: digitalContact, Content: "智慧工地系统的视频监控模块与现有安防系统接口不兼容，请数字化公司技术人员下周到现场调试。", ReceivedDate: "2023-10-22", Status: models.FeedbackPending, AssignedTo: "周经理"},
		{ID: "f7", ProjectID: "p1", StakeholderID: "s2", Content: "施工单位反馈侧煤仓钢结构图纸与现场土建基础有3处偏差，急需变更通知单。", ReceivedDate: "2023-10-27", Status: models.FeedbackPending, AssignedTo: "赵工"},
		{ID: "f8", ProjectID: phil, StakeholderID: philContact, Content: "Site access road is blocked by local community protest regarding dust issues. Need urgent mitigation plan review.", ReceivedDate: "2023-10-21", Status: models.FeedbackResolved, AssignedTo: "Manager Zhang"},
		{ID: "f9", ProjectID: indo, StakeholderID: indoContact, Content: "Coal supply agreement draft needs technical specification review for the boiler compatibility.", ReceivedDate: "2023-10-20", Status: models.FeedbackInProgress, AssignedTo: "Tech Lead Wu"},
	}
}
