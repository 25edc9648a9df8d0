package app

import (
	"time"

	"Strategus/internal/battle/domain"
)

// Scheduler 为进入排期阶段的战斗挑选开战时刻。
// now/intn 可注入，测试里用固定时钟和固定随机数。
type Scheduler struct {
	now          func() time.Time
	intn         func(n int) int
	minLeadHours float64
}

func NewScheduler(now func() time.Time, intn func(n int) int, minLeadHours float64) *Scheduler {
	return &Scheduler{now: now, intn: intn, minLeadHours: minLeadHours}
}

// ScheduleBattle 从守方的可排战时段里随机挑一个小时，换算成下一次开战时间。
// 已排期的战斗保持不变。守方没有可用时段时按全天计。
func (s *Scheduler) ScheduleBattle(b *domain.Battle) error {
	if b.ScheduledFor != nil {
		return nil
	}

	defender := b.DefenderCommander()
	if defender == nil {
		return domain.ErrNoDefender.WithData("battle_id", b.ID)
	}

	hours := defender.VulnerabilityHours
	if len(hours) == 0 {
		hours = make([]int, 24)
		for i := range hours {
			hours[i] = i
		}
	}

	at, err := s.NextBattleDateFromHour(hours[s.intn(len(hours))])
	if err != nil {
		return err
	}
	b.ScheduledFor = &at
	return nil
}

// NextBattleDateFromHour 返回下一个落在指定整点的开战时间。
// 该时刻已过、或距当前不足最小提前量时，顺延到第二天。
func (s *Scheduler) NextBattleDateFromHour(hour int) (time.Time, error) {
	if hour < 0 || hour > 23 {
		return time.Time{}, domain.ErrHourOutOfRange.WithData("hour", hour)
	}

	now := s.now().UTC()
	at := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, time.UTC)
	if !at.After(now) || at.Sub(now).Hours() < s.minLeadHours {
		at = at.AddDate(0, 0, 1)
	}
	return at, nil
}
