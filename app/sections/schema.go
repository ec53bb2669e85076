package sections

// WorshipRow is one line of a worship schedule table.
type WorshipRow struct {
	ID      int64  `json:"id" form:"id" yaml:"id"`
	Name    string `json:"name" form:"name" yaml:"name"`
	Time    string `json:"time" form:"time" yaml:"time"`
	Place   string `json:"place" form:"place" yaml:"place"`
	Teacher string `json:"teacher,omitempty" form:"teacher" yaml:"teacher,omitempty"` // church-school rows only
}

func (r WorshipRow) RowID() int64 { return r.ID }

func (r WorshipRow) WithID(id int64) WorshipRow {
	r.ID = id
	return r
}

// OfferingAccount is a bank account shown on the online offering page.
type OfferingAccount struct {
	ID            int64  `json:"id" form:"id" yaml:"id"`
	BankName      string `json:"bankName" form:"bankName" yaml:"bankName"`
	AccountNumber string `json:"accountNumber" form:"accountNumber" yaml:"accountNumber"`
	AccountHolder string `json:"accountHolder" form:"accountHolder" yaml:"accountHolder"`
}

func (a OfferingAccount) RowID() int64 { return a.ID }

func (a OfferingAccount) WithID(id int64) OfferingAccount {
	a.ID = id
	return a
}

// Sermon is one entry of the sermon archive. StartTime and EndTime are seconds
// into the video.
type Sermon struct {
	ID         int64  `json:"id" form:"id" yaml:"id"`
	Title      string `json:"title" form:"title" yaml:"title"`
	Pastor     string `json:"pastor" form:"pastor" yaml:"pastor"`
	Passage    string `json:"passage" form:"passage" yaml:"passage"`
	Series     string `json:"series" form:"series" yaml:"series"`
	Date       string `json:"date" form:"date" yaml:"date"`
	YoutubeURL string `json:"youtubeUrl" form:"youtubeUrl" yaml:"youtubeUrl"`
	StartTime  int    `json:"startTime" form:"-" yaml:"startTime"`
	EndTime    int    `json:"endTime" form:"-" yaml:"endTime"`
	Duration   string `json:"duration" form:"duration" yaml:"duration"`
	Thumbnail  string `json:"thumbnail" form:"thumbnail" yaml:"thumbnail"`
}

func (s Sermon) RowID() int64 { return s.ID }

func (s Sermon) WithID(id int64) Sermon {
	s.ID = id
	return s
}

// PastorProfile is the senior pastor's greeting page.
type PastorProfile struct {
	Name       string   `json:"name" form:"name" yaml:"name"`
	Headline   string   `json:"headline" form:"headline" yaml:"headline"`
	Greeting   string   `json:"greeting" form:"greeting" yaml:"greeting"`
	Email      string   `json:"email" form:"email" yaml:"email"`
	Photo      string   `json:"photo" form:"photo" yaml:"photo"`
	Paragraphs []string `json:"paragraphs" form:"-" yaml:"paragraphs"`
	Verse      string   `json:"verse" form:"verse" yaml:"verse"`
}

const (
	ChurchName    = "성남신광교회"
	ChurchAddress = "경기도 성남시 중원구 둔촌대로 148"
	SeniorPastor  = "이현용 담임목사"
)

var (
	HeroTitle = newSection[string]("hero_title", KindText, "메인 제목", TextCodec{}, func() string {
		return "하나님을 기쁘시게,\n 사람을 행복하게"
	})
	HeroSub = newSection[string]("hero_sub", KindText, "메인 부제목", TextCodec{}, func() string {
		return "성남신광교회에 오신 여러분을 환영합니다.\n온 성도가 사랑으로 여러분을 맞이합니다."
	})
	HeroImg = newSection[string]("hero_img", KindText, "배경 이미지 URL", TextCodec{}, func() string {
		return "https://images.unsplash.com/photo-1438232992991-995b7058bbb3?auto=format&fit=crop&q=80&w=1600"
	})
	WorshipBadge = newSection[string]("worship_badge", KindText, "예배 안내 배지", TextCodec{}, func() string {
		return "주일 대예배 오전 11:00"
	})

	Pastor = newSection[PastorProfile]("pastor_profile", KindObject, "담임목사 인사말", JSONCodec[PastorProfile]{}, func() PastorProfile {
		return PastorProfile{
			Name:     SeniorPastor,
			Headline: "환영합니다. 성남신광교회 홈페이지를 방문해주신 여러분을 축복합니다.",
			Greeting: "주님의 사랑으로 여러분을 환영합니다",
			Email:    "pastor@sn-shinkwang.org",
			Photo:    "https://raw.githubusercontent.com/1004aimbot-dev/images/main/leehy.png",
			Paragraphs: []string{
				"성남신광교회는 하나님의 사랑 안에서 지역사회를 섬기고, 복음의 기쁨을 나누는 신앙 공동체입니다.",
				"우리 교회는 오직 말씀 위에 서서, 성령의 인도하심을 따라 나아가고 있습니다.",
				"이곳을 방문하신 모든 분들이 주님의 한량없는 은혜를 경험하고, 새로운 소망과 비전을 품게 되시기를 기도합니다.",
			},
			Verse: "오직 여호와를 앙망하는 자는 새 힘을 얻으리니 독수리가 날개치며 올라감 같을 것이요",
		}
	})

	GeneralWorship = newListSection[WorshipRow]("general_worship", "예배 안내", false, func() []WorshipRow {
		return []WorshipRow{
			{ID: 1, Name: "주일오전1부예배", Place: "본당", Time: "오전 9시"},
			{ID: 2, Name: "주일오전2부예배", Place: "본당", Time: "오전 11시"},
			{ID: 3, Name: "주일오후찬양예배", Place: "본당", Time: "오후 2시"},
			{ID: 4, Name: "수요예배", Place: "본당", Time: "오후 7시"},
			{ID: 5, Name: "금요성령집회", Place: "본당", Time: "오후 8시"},
			{ID: 6, Name: "새벽기도회", Place: "비전센터 2층", Time: "오전 5시(월~토)"},
		}
	})
	SchoolWorship = newListSection[WorshipRow]("school_worship", "교회학교", false, func() []WorshipRow {
		return []WorshipRow{
			{ID: 101, Name: "영유아유치부", Place: "비전센터 2층", Time: "주일 오전 11시", Teacher: "민진홍 교육전도사"},
			{ID: 102, Name: "초등부", Place: "비전센터 3층", Time: "주일 오전 11시", Teacher: "박종우 교육전도사"},
			{ID: 103, Name: "청소년부", Place: "비전센터 4층", Time: "주일 오전 11시", Teacher: "오정신 교육전도사"},
			{ID: 104, Name: "청년부", Place: "비전센터 2층", Time: "주일 오후 2시", Teacher: "최찬규 목사"},
		}
	})
	OfferingAccounts = newListSection[OfferingAccount]("offering_accounts", "헌금 계좌", false, func() []OfferingAccount {
		return []OfferingAccount{
			{ID: 1, BankName: "농협은행", AccountNumber: "351-0191-2603-13", AccountHolder: ChurchName},
		}
	})
	Sermons = newListSection[Sermon]("sermons_list", "설교 목록", true, func() []Sermon {
		return []Sermon{
			{
				ID:         1,
				Title:      "오직 믿음으로 사는 삶",
				Pastor:     SeniorPastor,
				Passage:    "요한복음 3:16",
				Series:     "믿음의 능력 시리즈",
				Date:       "2026.01.04",
				YoutubeURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
				StartTime:  0,
				EndTime:    300,
				Duration:   "05:00",
				Thumbnail:  "https://images.unsplash.com/photo-1490730141103-6cac27aaab94?auto=format&fit=crop&q=80&w=1200",
			},
		}
	})
)

// Home is the view model of the landing page.
type Home struct {
	HeroTitle    string
	HeroSub      string
	HeroImg      string
	WorshipBadge string
}

func LoadHome(content map[string]string) Home {
	return Home{
		HeroTitle:    HeroTitle.From(content),
		HeroSub:      HeroSub.From(content),
		HeroImg:      HeroImg.From(content),
		WorshipBadge: WorshipBadge.From(content),
	}
}

// Worship is the view model of the worship schedule page.
type Worship struct {
	General []WorshipRow
	School  []WorshipRow
}

func LoadWorship(content map[string]string) Worship {
	return Worship{
		General: GeneralWorship.From(content),
		School:  SchoolWorship.From(content),
	}
}

// Online is the view model of the online worship page.
type Online struct {
	Sermons  []Sermon
	Accounts []OfferingAccount
	Active   *Sermon
}

// LoadOnline picks the sermon with activeID, falling back to the newest one.
func LoadOnline(content map[string]string, activeID int64) Online {
	o := Online{
		Sermons:  Sermons.From(content),
		Accounts: OfferingAccounts.From(content),
	}
	if i := Index(o.Sermons, activeID); i >= 0 {
		o.Active = &o.Sermons[i]
	} else if len(o.Sermons) > 0 {
		o.Active = &o.Sermons[0]
	}
	return o
}
