package recommend

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

type OwnedSkill struct {
	Name     string
	Category string
	Level    Level
}

type CompletedBooking struct {
	Category     string
	InstructorID uuid.UUID
	Price        float64
}

type Post struct {
	Category string
}

// BuildProfile derives a profile from raw signals. Pure: no clock, no I/O.
// A user with no signals at all gets an empty preference list and a
// beginner skill level; scoring degrades to category-agnostic factors.
func BuildProfile(ownedSkills []OwnedSkill, bookings []CompletedBooking, posts []Post, learningGoals []string) UserProfile {
	raw := map[string]float64{}
	for _, s := range ownedSkills {
		if s.Category == "" {
			continue
		}
		raw[s.Category] += 1
	}
	for _, b := range bookings {
		if b.Category == "" {
			continue
		}
		raw[b.Category] += 2
	}
	for _, p := range posts {
		if p.Category == "" {
			continue
		}
		raw[p.Category] += 1
	}

	maxScore := 0.0
	for _, v := range raw {
		if v > maxScore {
			maxScore = v
		}
	}

	prefs := make([]CategoryWeight, 0, len(raw))
	if maxScore > 0 {
		for c, v := range raw {
			prefs = append(prefs, CategoryWeight{Category: c, Weight: v / maxScore})
		}
		sort.Slice(prefs, func(i, j int) bool {
			if prefs[i].Weight != prefs[j].Weight {
				return prefs[i].Weight > prefs[j].Weight
			}
			return prefs[i].Category < prefs[j].Category
		})
	}

	level := LevelBeginner
	for _, s := range ownedSkills {
		l := s.Level
		if l > LevelAdvanced {
			l = LevelAdvanced
		}
		if l > level {
			level = l
		}
	}

	owned := map[string]struct{}{}
	for _, s := range ownedSkills {
		owned[normalizeName(s.Name)] = struct{}{}
	}

	goals := make([]string, 0, len(learningGoals))
	goalSet := map[string]struct{}{}
	for _, g := range learningGoals {
		n := normalizeName(g)
		if n == "" {
			continue
		}
		if _, ok := owned[n]; ok {
			continue
		}
		if _, ok := goalSet[n]; ok {
			continue
		}
		goalSet[n] = struct{}{}
		goals = append(goals, strings.TrimSpace(g))
	}
	sort.Strings(goals)

	affinities := map[uuid.UUID]float64{}
	if len(bookings) > 0 {
		counts := map[uuid.UUID]int{}
		maxCount := 0
		for _, b := range bookings {
			if b.InstructorID == uuid.Nil {
				continue
			}
			counts[b.InstructorID]++
			if counts[b.InstructorID] > maxCount {
				maxCount = counts[b.InstructorID]
			}
		}
		for id, c := range counts {
			affinities[id] = float64(c) / float64(maxCount)
		}
	}

	return UserProfile{
		PreferredCategories:  prefs,
		SkillLevel:           level,
		LearningGoals:        goals,
		PriceSensitivity:     priceSensitivity(bookings),
		InstructorAffinities: affinities,
		goals:                goalSet,
	}
}

// priceSensitivity maps the median completed-booking price into (0,1]:
// no spend history or all-free bookings yield maximum sensitivity.
func priceSensitivity(bookings []CompletedBooking) float64 {
	prices := make([]float64, 0, len(bookings))
	for _, b := range bookings {
		if b.Price < 0 {
			continue
		}
		prices = append(prices, b.Price)
	}
	if len(prices) == 0 {
		return 1
	}
	sort.Float64s(prices)
	var median float64
	n := len(prices)
	if n%2 == 1 {
		median = prices[n/2]
	} else {
		median = (prices[n/2-1] + prices[n/2]) / 2
	}
	return 100 / (100 + median)
}

func (p UserProfile) hasLearningGoal(name string) bool {
	if p.goals != nil {
		_, ok := p.goals[normalizeName(name)]
		return ok
	}
	n := normalizeName(name)
	for _, g := range p.LearningGoals {
		if normalizeName(g) == n {
			return true
		}
	}
	return false
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
