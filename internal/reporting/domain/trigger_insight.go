package domain

import "sort"

// TriggerInsight is the derived record for one temptation trigger over a
// period: how often it fired, and how often the user slipped versus resisted.
type TriggerInsight struct {
	Trigger  string
	Total    int
	Slipped  int
	Resisted int
}

// SlipRate returns slipped/total, 0 when the trigger never fired.
func (i TriggerInsight) SlipRate() float64 {
	if i.Total <= 0 {
		return 0
	}
	return float64(i.Slipped) / float64(i.Total)
}

// DeriveTriggerInsights joins the all-temptations and slip-only counts into
// per-trigger insights. Triggers logged only via slip events still surface:
// their slip count doubles as the total. Ordered by total, then slipped, both
// descending, then trigger label ascending.
func DeriveTriggerInsights(all, slips map[string]int) []TriggerInsight {
	triggers := make(map[string]struct{}, len(all)+len(slips))
	for t := range all {
		triggers[t] = struct{}{}
	}
	for t := range slips {
		triggers[t] = struct{}{}
	}

	insights := make([]TriggerInsight, 0, len(triggers))
	for trigger := range triggers {
		total := all[trigger]
		if total <= 0 {
			total = slips[trigger]
		}
		if total <= 0 {
			continue
		}
		slipped := slips[trigger]
		if slipped > total {
			slipped = total
		}
		insights = append(insights, TriggerInsight{
			Trigger:  trigger,
			Total:    total,
			Slipped:  slipped,
			Resisted: total - slipped,
		})
	}

	sort.Slice(insights, func(i, j int) bool {
		if insights[i].Total != insights[j].Total {
			return insights[i].Total > insights[j].Total
		}
		if insights[i].Slipped != insights[j].Slipped {
			return insights[i].Slipped > insights[j].Slipped
		}
		return insights[i].Trigger < insights[j].Trigger
	})

	return insights
}

// HighestRiskTrigger picks the trigger with the highest slip rate among those
// seen at least twice; one-off triggers only qualify when nothing else does.
// Ties go to the higher total, then the higher slip count.
func HighestRiskTrigger(insights []TriggerInsight) (TriggerInsight, bool) {
	candidates := make([]TriggerInsight, 0, len(insights))
	for _, in := range insights {
		if in.Total >= 2 {
			candidates = append(candidates, in)
		}
	}
	if len(candidates) == 0 {
		candidates = insights
	}
	if len(candidates) == 0 {
		return TriggerInsight{}, false
	}

	best := candidates[0]
	for _, in := range candidates[1:] {
		switch {
		case in.SlipRate() > best.SlipRate():
			best = in
		case in.SlipRate() == best.SlipRate() && in.Total > best.Total:
			best = in
		case in.SlipRate() == best.SlipRate() && in.Total == best.Total && in.Slipped > best.Slipped:
			best = in
		}
	}
	return best, true
}

// StrongestResistedTrigger picks the trigger the user resisted most often.
// Ties go to the higher total, then the alphabetically first label.
func StrongestResistedTrigger(insights []TriggerInsight) (TriggerInsight, bool) {
	var best TriggerInsight
	found := false
	for _, in := range insights {
		if in.Resisted <= 0 {
			continue
		}
		if !found {
			best = in
			found = true
			continue
		}
		switch {
		case in.Resisted > best.Resisted:
			best = in
		case in.Resisted == best.Resisted && in.Total > best.Total:
			best = in
		case in.Resisted == best.Resisted && in.Total == best.Total && in.Trigger < best.Trigger:
			best = in
		}
	}
	return best, found
}

// ControlScore returns resisted-over-total across all trigger insights, or
// the fallback when no trigger events exist.
func ControlScore(insights []TriggerInsight, fallback float64) float64 {
	totalEvents, totalResisted := 0, 0
	for _, in := range insights {
		totalEvents += in.Total
		totalResisted += in.Resisted
	}
	if totalEvents == 0 {
		return fallback
	}
	return float64(totalResisted) / float64(totalEvents)
}
