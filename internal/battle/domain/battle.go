package domain

import (
	"time"

	"github.com/paulmach/orb"
)

// BattlePhase 是战斗的生命周期阶段。
type BattlePhase string

const (
	PhasePreparation BattlePhase = "Preparation"
	PhaseHiring      BattlePhase = "Hiring"
	PhaseScheduled   BattlePhase = "Scheduled"
	PhaseLive        BattlePhase = "Live"
	PhaseEnd         BattlePhase = "End"
)

// Side 表示参战方。
type Side string

const (
	SideAttacker Side = "Attacker"
	SideDefender Side = "Defender"
)

// ApplicationStatus 是入场申请的状态。
type ApplicationStatus string

const (
	ApplicationIntent   ApplicationStatus = "Intent"
	ApplicationPending  ApplicationStatus = "Pending"
	ApplicationDeclined ApplicationStatus = "Declined"
	ApplicationAccepted ApplicationStatus = "Accepted"
)

// Battle 是野战或攻城战。Fighters 为正式参战方，FighterApplications 为待决申请。
type Battle struct {
	ID           int
	Region       string
	Phase        BattlePhase
	Position     orb.Point
	ScheduledFor *time.Time
	CreatedAt    time.Time

	Fighters            []*Fighter
	FighterApplications []*FighterApplication
}

// Fighter 是战斗的一个参战方，部队或守城方二选一。
// Troops 是创建/装载时的兵力快照，名额分配以此为准。
// VulnerabilityHours 是该方可被排战的时段（部队方有效）。
type Fighter struct {
	ID           int
	BattleID     int
	PartyID      *int
	SettlementID *int
	Side         Side
	Commander    bool
	Troops       float64
	// ParticipantSlots 是分给该参战方的随从名额，不含指挥官本人。
	ParticipantSlots   int
	VulnerabilityHours []int
}

// FighterApplication 是部队申请以某一方身份参战的记录。
type FighterApplication struct {
	ID       int
	BattleID int
	PartyID  int
	Side     Side
	Status   ApplicationStatus
}

// DefenderCommander 返回守方指挥官，没有则返回 nil。
func (b *Battle) DefenderCommander() *Fighter {
	for _, f := range b.Fighters {
		if f.Side == SideDefender && f.Commander {
			return f
		}
	}
	return nil
}

// SideFighters 返回某一方的全部参战方，保持装载顺序。
func (b *Battle) SideFighters(side Side) []*Fighter {
	var out []*Fighter
	for _, f := range b.Fighters {
		if f.Side == side {
			out = append(out, f)
		}
	}
	return out
}

// PendingApplications 返回待决申请。
func (b *Battle) PendingApplications() []*FighterApplication {
	var out []*FighterApplication
	for _, a := range b.FighterApplications {
		if a.Status == ApplicationPending {
			out = append(out, a)
		}
	}
	return out
}
