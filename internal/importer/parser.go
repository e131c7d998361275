// Package importer turns a pasted free-text training log into workout records.
//
// The format is loose shorthand, e.g.
//
//	Day 1 - Peito Supino - 80(10)/85(8) Remada - 60(10)
//
// where every set is weight(reps). Parsing is best effort: anything that does
// not look like a day, an exercise or a set is skipped, and Parse never fails.
package importer

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mansoorceksport/liftlog/internal/domain"
)

const (
	DefaultSessionsPerWeek = 3.5
	DefaultBreakWeeks      = 2

	// breakAfterWeeks is the week index from which the training break is assumed
	breakAfterWeeks = 3
)

var (
	dayMarker = regexp.MustCompile(`(?i)\bday`)
	dayPrefix = regexp.MustCompile(`^\s*(\d+)\s*[-–—:.]?`)
	// A capitalised word run followed by " - " and something that looks like a set
	exerciseStart = regexp.MustCompile(`(\p{Lu}[\p{L}'’.]*(?:[ \t]+\p{Lu}[\p{L}'’.]*)*)\s*-\s*(?:\d|[^\s/()-]*\()`)
	setToken      = regexp.MustCompile(`^(\d+(?:[.,]\d+)?)\s*(?:kg)?\s*\(\s*(\d+)\s*\)`)
)

type Set struct {
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
}

type Exercise struct {
	Name string `json:"name"`
	Sets []Set  `json:"sets"`
}

// Workout is one parsed day of the log
type Workout struct {
	Day       int        `json:"day"`
	PlanName  string     `json:"planName"`
	Date      string     `json:"date"`
	Exercises []Exercise `json:"exercises"`
}

// Options control how dates are estimated
type Options struct {
	StartDate       time.Time // date of day 1
	SessionsPerWeek float64   // may be fractional; <= 0 means DefaultSessionsPerWeek
	// BreakWeeksAfterThree is the gap, in weeks, assumed after the third week of training
	BreakWeeksAfterThree int
}

// Parse returns the workouts found in text in the order they appear. Days and
// exercises without a single valid set are dropped.
func Parse(text string, opts Options) []Workout {
	workouts := []Workout{}
	lastDay := 0

	for _, fragment := range dayMarker.Split(text, -1) {
		if strings.TrimSpace(fragment) == "" {
			continue
		}

		day := lastDay + 1
		rest := fragment
		if m := dayPrefix.FindStringSubmatchIndex(fragment); m != nil {
			if n, err := strconv.Atoi(fragment[m[2]:m[3]]); err == nil {
				day = n
			}
			rest = fragment[m[1]:]
		}

		planName, exercises := parseExercises(rest)
		if len(exercises) == 0 {
			continue
		}
		if planName == "" {
			planName = "Plano " + strconv.Itoa(day)
		}

		workouts = append(workouts, Workout{
			Day:       day,
			PlanName:  planName,
			Date:      estimateDate(day, opts).Format(domain.DateLayout),
			Exercises: exercises,
		})
		lastDay = day
	}

	return workouts
}

// parseExercises splits the text after the day prefix into exercise fragments.
// Text before the first exercise is the plan name. When the first exercise
// starts the text, its first word is taken as the plan name instead.
func parseExercises(text string) (string, []Exercise) {
	matches := exerciseStart.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return "", nil
	}

	planName := cleanName(text[:matches[0][2]])
	exercises := []Exercise{}
	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][2]
		}
		fragment := text[m[2]:end]

		name, setData, _ := strings.Cut(fragment, "-")
		name = cleanName(name)
		if i == 0 && planName == "" {
			if words := strings.Fields(name); len(words) >= 2 {
				planName = words[0]
				name = strings.Join(words[1:], " ")
			}
		}

		sets := parseSets(setData)
		if name == "" || len(sets) == 0 {
			continue
		}
		exercises = append(exercises, Exercise{Name: name, Sets: sets})
	}
	return planName, exercises
}

// parseSets reads "80(10)/85(8)" style set data, skipping malformed tokens
func parseSets(text string) []Set {
	var sets []Set
	for _, token := range strings.Split(text, "/") {
		m := setToken.FindStringSubmatch(strings.TrimSpace(token))
		if m == nil {
			continue
		}
		weight, err := strconv.ParseFloat(strings.Replace(m[1], ",", ".", 1), 64)
		if err != nil {
			continue
		}
		reps, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		sets = append(sets, Set{Weight: math.Round(weight*10) / 10, Reps: reps})
	}
	return sets
}

func cleanName(s string) string {
	return strings.Trim(s, " \t\r\n-–—:.,")
}

// estimateDate spaces sessions evenly over the week and adds the training
// break once the third week is reached. It is only an approximation.
func estimateDate(day int, opts Options) time.Time {
	perWeek := opts.SessionsPerWeek
	if perWeek <= 0 || math.IsNaN(perWeek) || math.IsInf(perWeek, 0) {
		perWeek = DefaultSessionsPerWeek
	}
	breakWeeks := opts.BreakWeeksAfterThree
	if breakWeeks < 0 {
		breakWeeks = 0
	}

	step := int(math.Round(7 / perWeek))
	offset := (day - 1) * step
	if week := int(math.Floor(float64(day-1) / perWeek)); week >= breakAfterWeeks {
		offset += breakWeeks * 7
	}
	return opts.StartDate.AddDate(0, 0, offset)
}
