// Package engine implements the workforce impact simulation pipeline:
// task synthesis, scope filtering, current-state aggregation, impact
// calculation, employee allocation and skills-gap derivation. Everything in
// this package is a pure function over its inputs; the same roster, catalog
// and scenario always produce byte-identical output.
package engine

import (
	"fmt"
	"math"

	"workforce-planner/backend/internal/catalog"
	"workforce-planner/backend/pkg/models"
)

// hashString is a 32-bit polynomial hash (h = h*31 + byte). It is the only
// source of per-employee variation, which is what makes synthesis
// reproducible: same id, same tasks, every run.
func hashString(s string) uint32 {
	var h uint32
	for i := 0; i < len(s); i++ {
		h = h*31 + uint32(s[i])
	}
	return h
}

// lcg is a small linear congruential generator (Numerical Recipes
// constants) used for deterministic jitter. State is seeded from the
// employee hash.
type lcg struct {
	state uint32
}

func (r *lcg) next() uint32 {
	r.state = r.state*1664525 + 1013904223
	return r.state
}

// float returns a value in [0, 1).
func (r *lcg) float() float64 {
	return float64(r.next()) / float64(1<<32)
}

// intn returns a value in [0, n).
func (r *lcg) intn(n int) int {
	return int(r.next() % uint32(n))
}

const (
	selectionStride = 17
	minTasks        = 5
	hourJitter      = 0.2 // +/- fraction of base hours
	scoreJitter     = 5   // +/- automation score points
	minScore        = 20
	maxScore        = 95
)

// SynthesizeTasks derives every employee's weekly task list from the role
// catalog. Output order follows roster order, then selection order within
// an employee.
func SynthesizeTasks(roster []models.EmployeeProfile, cat *catalog.Catalog) []models.Task {
	var tasks []models.Task
	for _, emp := range roster {
		pool := cat.PoolFor(emp.CurrentRoleID, emp.CurrentRoleName)
		tasks = append(tasks, synthesizeEmployee(emp, pool)...)
	}
	return tasks
}

// synthesizeEmployee picks 5-7 distinct pool entries via stride-and-probe,
// jitters hours and scores, then normalizes hours to exactly 40 per week.
func synthesizeEmployee(emp models.EmployeeProfile, pool []catalog.PoolTask) []models.Task {
	seed := hashString(emp.ID)
	count := minTasks + int(seed%3)
	if count > len(pool) {
		count = len(pool)
	}

	indices := selectIndices(seed, count, len(pool))
	rng := lcg{state: seed}

	tasks := make([]models.Task, 0, count)
	for k, idx := range indices {
		base := pool[idx]
		hours := base.Hours * (1 - hourJitter + 2*hourJitter*rng.float())
		score := base.AutomationScore + rng.intn(2*scoreJitter+1) - scoreJitter
		if score < minScore {
			score = minScore
		}
		if score > maxScore {
			score = maxScore
		}
		tasks = append(tasks, models.Task{
			TaskID:            fmt.Sprintf("%s-task-%d", emp.ID, k),
			TaskName:          base.Name,
			RoleID:            emp.CurrentRoleID,
			RoleName:          emp.CurrentRoleName,
			HoursPerWeek:      hours,
			AutomationScore:   score,
			AICapabilityMatch: base.Capability,
		})
	}

	normalizeHours(tasks)
	return tasks
}

// selectIndices picks count distinct pool indices at index
// (seed + k*stride) mod poolSize, linear-probing forward on collision.
func selectIndices(seed uint32, count, poolSize int) []int {
	used := make(map[int]bool, count)
	indices := make([]int, 0, count)
	for k := 0; k < count; k++ {
		idx := int((seed + uint32(k)*selectionStride) % uint32(poolSize))
		for used[idx] {
			idx = (idx + 1) % poolSize
		}
		used[idx] = true
		indices = append(indices, idx)
	}
	return indices
}

// normalizeHours scales an employee's task hours so they sum to exactly 40:
// proportional scaling, each task floored at 1 hour and rounded to the
// nearest integer, with the rounding residual repaired one hour at a time
// starting from the largest task.
func normalizeHours(tasks []models.Task) {
	var sum float64
	for _, t := range tasks {
		sum += t.HoursPerWeek
	}
	if sum == 0 {
		return
	}

	total := 0.0
	for i := range tasks {
		h := math.Round(tasks[i].HoursPerWeek * models.HoursPerWeek / sum)
		if h < 1 {
			h = 1
		}
		tasks[i].HoursPerWeek = h
		total += h
	}

	// Repair the rounding drift. Order by hours descending (stable on
	// index) so repair targets are deterministic.
	order := make([]int, len(tasks))
	for i := range order {
		order[i] = i
	}
	for i := 0; i < len(order); i++ {
		for j := i + 1; j < len(order); j++ {
			if tasks[order[j]].HoursPerWeek > tasks[order[i]].HoursPerWeek {
				order[i], order[j] = order[j], order[i]
			}
		}
	}
	for total != models.HoursPerWeek {
		adjusted := false
		for _, i := range order {
			if total == models.HoursPerWeek {
				return
			}
			if total < models.HoursPerWeek {
				tasks[i].HoursPerWeek++
				total++
				adjusted = true
			} else if tasks[i].HoursPerWeek > 1 {
				tasks[i].HoursPerWeek--
				total--
				adjusted = true
			}
		}
		if !adjusted {
			// Every task is at the 1-hour floor and the total still
			// exceeds 40; impossible with <= 7 tasks, but do not spin.
			return
		}
	}
}
