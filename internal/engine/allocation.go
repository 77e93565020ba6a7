package engine

import (
	"math"
	"sort"

	"workforce-planner/backend/pkg/models"
)

// Allocation distributes a role's affected employees into named categories
// with deterministic, explainable sort orders. Selection is never random:
// the same role and roster always allocate the same people.

// allocateRedeployment picks the role's redeployment pool: candidates
// ranked by redeployment score plus half their engagement score, best
// first. The pool size is the affected FTE rounded up (minimum viable FTE),
// capped at the role's actual headcount.
func allocateRedeployment(employees []models.EmployeeProfile, affected float64) []models.EmployeeRef {
	n := int(math.Ceil(affected))
	if n > len(employees) {
		n = len(employees)
	}
	if n <= 0 {
		return []models.EmployeeRef{}
	}

	ranked := sortedBy(employees, func(a, b models.EmployeeProfile) bool {
		sa, sb := redeployRank(a), redeployRank(b)
		if sa != sb {
			return sa > sb
		}
		return a.ID < b.ID
	})
	return refs(ranked[:n])
}

// splitPattern is one percentage split over the first three reduction
// categories; involuntary takes the remainder.
type splitPattern struct {
	retirement, voluntary, redeployment int
}

// The four seed-indexed split patterns. Values are fixed business
// assumptions; change them only with product sign-off.
var splitPatterns = [4]splitPattern{
	{15, 20, 25},
	{20, 30, 30},
	{15, 30, 25},
	{20, 20, 30},
}

// Category indices for the small-count coverage patterns.
const (
	catRetirement = iota
	catVoluntary
	catRedeployment
	catInvoluntary
)

// smallCountPatterns hand-specifies which categories a reduction of 1-3
// employees touches, per distribution seed, so small counts still spread
// across categories instead of collapsing into one.
var smallCountPatterns = map[int][4][]int{
	1: {
		{catVoluntary},
		{catRetirement},
		{catRedeployment},
		{catInvoluntary},
	},
	2: {
		{catVoluntary, catRedeployment},
		{catRetirement, catVoluntary},
		{catRedeployment, catInvoluntary},
		{catVoluntary, catInvoluntary},
	},
	3: {
		{catRetirement, catVoluntary, catRedeployment},
		{catVoluntary, catRedeployment, catInvoluntary},
		{catRetirement, catRedeployment, catInvoluntary},
		{catRetirement, catVoluntary, catInvoluntary},
	},
}

// distributionSeed derives a stable seed from the role name so identical
// role names always distribute identically.
func distributionSeed(roleName string) int {
	sum := 0
	for _, c := range roleName {
		sum += int(c)
	}
	return sum % 4
}

// allocateReduction splits a reduction target into disjoint categories.
// claimed employees (already in a redeployment pool) are excluded up front;
// each employee assigned to a category leaves the candidate pool, so no id
// appears twice.
func allocateReduction(employees []models.EmployeeProfile, target int, roleName string, claimed map[string]bool) models.ReductionDetails {
	details := models.ReductionDetails{
		RetirementEligible: []models.EmployeeRef{},
		VoluntaryAttrition: []models.EmployeeRef{},
		Redeployment:       []models.EmployeeRef{},
		Involuntary:        []models.EmployeeRef{},
	}

	pool := make([]models.EmployeeProfile, 0, len(employees))
	for _, emp := range employees {
		if !claimed[emp.ID] {
			pool = append(pool, emp)
		}
	}
	if target > len(pool) {
		target = len(pool)
	}
	if target <= 0 {
		return details
	}

	counts := categoryCounts(target, distributionSeed(roleName))

	take := func(n int, less func(a, b models.EmployeeProfile) bool) []models.EmployeeRef {
		if n > len(pool) {
			n = len(pool)
		}
		if n <= 0 {
			return []models.EmployeeRef{}
		}
		ranked := sortedBy(pool, less)
		taken := ranked[:n]
		pool = ranked[n:]
		return refs(taken)
	}

	details.RetirementEligible = take(counts[catRetirement], func(a, b models.EmployeeProfile) bool {
		if a.TenureMonths != b.TenureMonths {
			return a.TenureMonths > b.TenureMonths
		}
		return a.ID < b.ID
	})
	details.VoluntaryAttrition = take(counts[catVoluntary], func(a, b models.EmployeeProfile) bool {
		ra, rb := readinessScore(a), readinessScore(b)
		if ra != rb {
			return ra < rb
		}
		return a.ID < b.ID
	})
	details.Redeployment = take(counts[catRedeployment], func(a, b models.EmployeeProfile) bool {
		sa, sb := redeploymentScore(a), redeploymentScore(b)
		if sa != sb {
			return sa > sb
		}
		return a.ID < b.ID
	})
	details.Involuntary = take(counts[catInvoluntary], func(a, b models.EmployeeProfile) bool {
		sa := engagementScore(a) + readinessScore(a)
		sb := engagementScore(b) + readinessScore(b)
		if sa != sb {
			return sa < sb
		}
		return a.ID < b.ID
	})

	return details
}

// categoryCounts converts a reduction target into per-category counts.
// Targets of 1-3 use the hand-specified coverage patterns; larger targets
// use the seed's percentage split with one-per-category minimums, with any
// overflow rebalanced out of involuntary first, then redeployment, then
// voluntary, then retirement.
func categoryCounts(target, seed int) [4]int {
	var counts [4]int

	if target <= 3 {
		for _, cat := range smallCountPatterns[target][seed] {
			counts[cat]++
		}
		return counts
	}

	p := splitPatterns[seed]
	counts[catRetirement] = atLeastOne(p.retirement, target)
	counts[catVoluntary] = atLeastOne(p.voluntary, target)
	counts[catRedeployment] = atLeastOne(p.redeployment, target)
	counts[catInvoluntary] = target - counts[catRetirement] - counts[catVoluntary] - counts[catRedeployment]

	// Rebalance overflow: involuntary absorbed it by going negative; pull
	// the rest from redeployment, then voluntary, then retirement. No
	// bucket goes below zero.
	if counts[catInvoluntary] < 0 {
		deficit := -counts[catInvoluntary]
		counts[catInvoluntary] = 0
		for _, cat := range []int{catRedeployment, catVoluntary, catRetirement} {
			if deficit == 0 {
				break
			}
			cut := deficit
			if cut > counts[cat] {
				cut = counts[cat]
			}
			counts[cat] -= cut
			deficit -= cut
		}
	}
	return counts
}

func atLeastOne(percent, target int) int {
	n := int(math.Round(float64(percent) / 100 * float64(target)))
	if n < 1 {
		n = 1
	}
	return n
}

func sortedBy(employees []models.EmployeeProfile, less func(a, b models.EmployeeProfile) bool) []models.EmployeeProfile {
	ranked := make([]models.EmployeeProfile, len(employees))
	copy(ranked, employees)
	sort.SliceStable(ranked, func(i, j int) bool { return less(ranked[i], ranked[j]) })
	return ranked
}

func refs(employees []models.EmployeeProfile) []models.EmployeeRef {
	out := make([]models.EmployeeRef, len(employees))
	for i, emp := range employees {
		out[i] = models.EmployeeRef{ID: emp.ID, Name: emp.Name}
	}
	return out
}

func redeployRank(e models.EmployeeProfile) float64 {
	return redeploymentScore(e) + engagementScore(e)/2
}

func engagementScore(e models.EmployeeProfile) float64 {
	if e.Performance == nil {
		return 0
	}
	return e.Performance.EngagementScore
}

func readinessScore(e models.EmployeeProfile) float64 {
	if e.Readiness == nil {
		return 0
	}
	return e.Readiness.ReadinessScore
}

func redeploymentScore(e models.EmployeeProfile) float64 {
	if e.Redeployment == nil {
		return 0
	}
	return e.Redeployment.RedeploymentScore
}
