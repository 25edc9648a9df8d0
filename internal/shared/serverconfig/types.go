package serverconfig

type Config struct {
	MySQL      MySQLConfig      `yaml:"mysql" mapstructure:"mysql"`
	HTTPServer HTTPServerConfig `yaml:"httpserver" mapstructure:"httpserver"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	Campaign   CampaignConfig   `yaml:"campaign" mapstructure:"campaign"`
	JWTSecret  string           `yaml:"jwt_secret" mapstructure:"jwt_secret"`
}

type MySQLConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	DBName   string `yaml:"dbname" mapstructure:"dbname"`
	Charset  string `yaml:"charset" mapstructure:"charset"`
	MaxIdle  int    `yaml:"max_idle" mapstructure:"max_idle"`
	MaxConn  int    `yaml:"max_conn" mapstructure:"max_conn"`
}

type HTTPServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
}

type LogConfig struct {
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"` // days
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Level      string `yaml:"level" mapstructure:"level"` // debug/info/warn/error...
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
}

// CampaignConfig 是战役地图的数值参数，全部可热调。
type CampaignConfig struct {
	// ViewDistance 是部队的可见半径，地图坐标单位。
	ViewDistance float64 `yaml:"view_distance" mapstructure:"view_distance"`
	// InteractionDistance 是发起攻击/交易等交互的最大距离。
	InteractionDistance float64 `yaml:"interaction_distance" mapstructure:"interaction_distance"`
	// BattleSlots 是一场战斗每一方的参战名额上限（含指挥官本人）。
	BattleSlots int `yaml:"battle_slots" mapstructure:"battle_slots"`
	// TroopRecruitmentPerHour 是驻扎招募时每小时新增的兵力。
	TroopRecruitmentPerHour float64 `yaml:"troop_recruitment_per_hour" mapstructure:"troop_recruitment_per_hour"`
	MaxPartyTroops          float64 `yaml:"max_party_troops" mapstructure:"max_party_troops"`
	MinPartyTroops          float64 `yaml:"min_party_troops" mapstructure:"min_party_troops"`
	// BattleInitiationHours 是战斗从 Preparation 进入 Hiring 所需小时数。
	BattleInitiationHours float64 `yaml:"battle_initiation_hours" mapstructure:"battle_initiation_hours"`
	// BattleHiringHours 是 Hiring 阶段的持续小时数。
	BattleHiringHours float64 `yaml:"battle_hiring_hours" mapstructure:"battle_hiring_hours"`
	// BattleScheduleMinLeadHours 是排期时刻距当前的最小提前量。
	BattleScheduleMinLeadHours float64 `yaml:"battle_schedule_min_lead_hours" mapstructure:"battle_schedule_min_lead_hours"`
}
