package matching

import "github.com/jonathan/resume-optimizer/internal/types"

// RoundRobinSelect enforces a global cap on the total number of skills by
// drawing one skill from each non-empty category in turn, cycling, until the
// cap is reached or every category is exhausted. Category order and
// within-category order are preserved, so the result is deterministic for a
// given input. A cap of zero or less returns empty groups.
func RoundRobinSelect(groups types.SkillGroups, cap int) types.SkillGroups {
	if cap <= 0 || len(groups) == 0 {
		return types.SkillGroups{}
	}

	selected := make([][]string, len(groups))
	cursors := make([]int, len(groups))
	taken := 0

	for taken < cap {
		progressed := false
		for i, cat := range groups {
			if cursors[i] >= len(cat.Skills) {
				continue
			}
			selected[i] = append(selected[i], cat.Skills[cursors[i]])
			cursors[i]++
			taken++
			progressed = true
			if taken >= cap {
				break
			}
		}
		if !progressed {
			break
		}
	}

	result := make(types.SkillGroups, 0, len(groups))
	for i, cat := range groups {
		if len(selected[i]) == 0 {
			continue
		}
		result = append(result, types.SkillCategory{Name: cat.Name, Skills: selected[i]})
	}
	return result
}
