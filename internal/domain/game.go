package domain

import "time"

type Manager struct {
	ID               string `gorm:"primaryKey;size:36" json:"id"`
	FirstName        string `gorm:"size:15;not null" json:"firstName"`
	LastName         string `gorm:"size:15;not null" json:"lastName"`
	Cash             int    `json:"cash"`
	ExperiencePoints int    `json:"experiencePoints"`
	LeaguePoints     int    `json:"leaguePoints"`
	TrainingPoints   int    `json:"trainingPoints"`

	UserID string `gorm:"size:36;not null;uniqueIndex" json:"userId"`
	User   *User  `gorm:"foreignKey:UserID" json:"-"`

	Team        *Team    `gorm:"foreignKey:ManagerID;constraint:OnDelete:CASCADE" json:"team,omitempty"`
	MyLeagues   []League `gorm:"foreignKey:CreatorID" json:"-"`
	Leagues     []League `gorm:"many2many:league_participants" json:"-"`
	HomeMatches []Match  `gorm:"foreignKey:ManagerHomeID;constraint:OnDelete:CASCADE" json:"-"`
	AwayMatches []Match  `gorm:"foreignKey:ManagerAwayID;constraint:OnDelete:CASCADE" json:"-"`

	DeletableEntity
}

func (Manager) TableName() string { return "managers" }

type Team struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	Name       string `gorm:"size:20;not null" json:"name"`
	IconURL    string `json:"iconUrl,omitempty"`
	TeamColour int    `json:"teamColour"`

	ManagerID string   `gorm:"size:36;not null;uniqueIndex" json:"managerId"`
	Manager   *Manager `gorm:"foreignKey:ManagerID" json:"-"`
	Roster    []Player `gorm:"foreignKey:TeamID" json:"roster,omitempty"`

	DeletableEntity
}

func (Team) TableName() string { return "teams" }

type League struct {
	ID   string `gorm:"primaryKey;size:36" json:"id"`
	Name string `gorm:"size:64" json:"name"`

	CreatorID    *string   `gorm:"size:36;index" json:"creatorId,omitempty"`
	Creator      *Manager  `gorm:"foreignKey:CreatorID" json:"-"`
	Participants []Manager `gorm:"many2many:league_participants" json:"participants,omitempty"`
	Matches      []Match   `gorm:"foreignKey:LeagueID" json:"matches,omitempty"`

	DeletableEntity
}

func (League) TableName() string { return "leagues" }

type Match struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Date       time.Time `json:"date"`
	Team1Score int       `json:"team1Score"`
	Team2Score int       `json:"team2Score"`

	LeagueID      *string  `gorm:"size:36;index" json:"leagueId,omitempty"`
	League        *League  `gorm:"foreignKey:LeagueID" json:"-"`
	ManagerHomeID string   `gorm:"size:36;not null;index" json:"managerHomeId"`
	ManagerHome   *Manager `gorm:"foreignKey:ManagerHomeID" json:"-"`
	ManagerAwayID string   `gorm:"size:36;not null;index" json:"managerAwayId"`
	ManagerAway   *Manager `gorm:"foreignKey:ManagerAwayID" json:"-"`

	DeletableEntity
}

func (Match) TableName() string { return "matches" }

type Player struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	FullName  string `gorm:"not null" json:"fullName"`
	Position  string `json:"position"`
	Level     int    `json:"level"`
	CashPrice int    `json:"cashPrice"`
	TPPrice   int    `gorm:"column:tp_price" json:"tpPrice"`

	TeamID       *string     `gorm:"size:36;index" json:"teamId,omitempty"`
	Team         *Team       `gorm:"foreignKey:TeamID" json:"-"`
	AttributesID uint        `gorm:"not null;index" json:"attributesId"`
	Attributes   *Attributes `gorm:"foreignKey:AttributesID;constraint:OnDelete:CASCADE" json:"attributes,omitempty"`

	DeletableEntity
}

func (Player) TableName() string { return "players" }

type Attributes struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Level      int    `json:"level"`
	Position   string `gorm:"not null" json:"position"`
	Shooting   int    `json:"shooting"`
	Rebounding int    `json:"rebounding"`
	Assisting  int    `json:"assisting"`
	Stealing   int    `json:"stealing"`
	Blocking   int    `json:"blocking"`

	DeletableEntity
}

func (Attributes) TableName() string { return "attributes" }

type Setting struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:128" json:"name"`
	Value string `json:"value"`

	DeletableEntity
}

func (Setting) TableName() string { return "settings" }

var (
	_ Deletable = (*User)(nil)
	_ Deletable = (*Role)(nil)
	_ Deletable = (*Manager)(nil)
	_ Deletable = (*Team)(nil)
	_ Deletable = (*League)(nil)
	_ Deletable = (*Match)(nil)
	_ Deletable = (*Player)(nil)
	_ Deletable = (*Attributes)(nil)
	_ Deletable = (*Setting)(nil)
)
