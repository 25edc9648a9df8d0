package app

import (
	"math"
	"sort"

	"Strategus/internal/battle/domain"
)

// DistributeParticipants 按兵力占比给每个参战方分配随从名额，两边独立计算。
//
// 规则：
//   - 兵力先截断成整数，不足 1 的零头不参与占比
//   - 每个参战方先占 1 个名额（指挥官本人），剩余名额按占比取整分配
//   - 未分完的名额按小数余额从大到小补发，余额相同时前面的参战方优先
//   - 写回 Fighter.ParticipantSlots 时扣掉指挥官自己那 1 个
//
// 某一方的名额少于该方参战方数量时返回错误，由调用方决策。
func DistributeParticipants(fighters []*domain.Fighter, battleSlots int) error {
	for _, side := range []domain.Side{domain.SideAttacker, domain.SideDefender} {
		var sideFighters []*domain.Fighter
		for _, f := range fighters {
			if f.Side == side {
				sideFighters = append(sideFighters, f)
			}
		}
		if err := distributeSide(sideFighters, battleSlots, side); err != nil {
			return err
		}
	}
	return nil
}

func distributeSide(fighters []*domain.Fighter, battleSlots int, side domain.Side) error {
	n := len(fighters)
	if n == 0 {
		return nil
	}
	if battleSlots < n {
		return domain.ErrNotEnoughSlots.
			WithData("side", string(side)).
			WithData("fighters", n).
			WithData("slots", battleSlots)
	}

	totalTroops := 0
	troops := make([]int, n)
	for i, f := range fighters {
		troops[i] = int(math.Floor(f.Troops))
		totalTroops += troops[i]
	}

	// 每人先占一个名额，剩余部分按兵力占比分
	remaining := battleSlots - n
	allocated := make([]int, n)
	remainders := make([]float64, n)
	assigned := 0
	for i := range fighters {
		allocated[i] = 1
		if totalTroops > 0 {
			raw := float64(remaining) * float64(troops[i]) / float64(totalTroops)
			share := int(math.Floor(raw))
			allocated[i] += share
			remainders[i] = raw - float64(share)
			assigned += share
		}
	}

	// 余额大的先补；余额相同时保持输入顺序
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]] > remainders[order[b]]
	})
	for leftover := remaining - assigned; leftover > 0; {
		for _, idx := range order {
			if leftover == 0 {
				break
			}
			allocated[idx]++
			leftover--
		}
	}

	for i, f := range fighters {
		f.ParticipantSlots = allocated[i] - 1
	}
	return nil
}
