package problem

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInvalidCategory is returned for a category outside Categories.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrInvalidDifficulty is returned for a difficulty outside Difficulties.
	ErrInvalidDifficulty = errors.New("invalid difficulty")

	ErrMissingSubcategory = errors.New("subcategory is required")
)

// Topic is a selectable category or subcategory.
type Topic struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Categories lists the practice areas in menu order.
var Categories = []Topic{
	{"algebra", "Algebra"},
	{"geometry", "Geometry"},
	{"statistics", "Statistics"},
	{"middle-school", "Middle School"},
	{"calculus", "Calculus"},
}

// Subcategories maps a category ID to its topics.
var Subcategories = map[string][]Topic{
	"algebra": {
		{"linear", "Linear Equations"},
		{"quadratic", "Quadratic Equations"},
		{"systems", "Systems of Equations"},
		{"factoring", "Factoring"},
	},
	"geometry": {
		{"angles", "Angles & Lines"},
		{"triangles", "Triangles"},
		{"circles", "Circles"},
		{"polygons", "Polygons"},
		{"transformations", "Transformations"},
	},
	"statistics": {
		{"descriptive", "Descriptive Statistics"},
		{"probability", "Probability"},
		{"distributions", "Probability Distributions"},
		{"hypothesis", "Hypothesis Testing"},
		{"correlation", "Correlation & Regression"},
	},
	"middle-school": {
		{"ratios", "Ratios & Proportions"},
		{"fractions", "Fractions & Decimals"},
		{"basic-geometry", "Basic Geometry"},
		{"integers", "Integers & Operations"},
		{"percentages", "Percentages"},
		{"expressions", "Expressions & Equations"},
		{"area-volume", "Area & Volume"},
		{"probability", "Basic Probability"},
		{"linear-equations", "Linear Equations"},
		{"functions", "Functions"},
		{"pythagorean", "Pythagorean Theorem"},
		{"statistics", "Statistics & Data"},
	},
	"calculus": {
		{"limits", "Limits"},
		{"derivatives", "Derivatives"},
		{"integrals", "Integrals"},
		{"applications", "Applications of Derivatives"},
		{"series", "Sequences & Series"},
	},
}

// Difficulties in increasing order.
var Difficulties = []Topic{
	{"easy", "Easy"},
	{"medium", "Medium"},
	{"hard", "Hard"},
}

// Params selects what kind of problem to generate.
type Params struct {
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Difficulty  string `json:"difficulty"`
}

// Validate checks the category and difficulty. Subcategories are free-form
// prompt text and only need to be present.
func (p Params) Validate() error {
	if !hasTopic(Categories, p.Category) {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, p.Category)
	}
	if !hasTopic(Difficulties, p.Difficulty) {
		return fmt.Errorf("%w: %q", ErrInvalidDifficulty, p.Difficulty)
	}
	if p.Subcategory == "" {
		return ErrMissingSubcategory
	}
	return nil
}

// BaseStars is the star award for finishing a problem at this difficulty
// without hints.
func (p Params) BaseStars() int {
	switch p.Difficulty {
	case "medium":
		return 2
	case "hard":
		return 3
	default:
		return 1
	}
}

func hasTopic(topics []Topic, id string) bool {
	return slices.ContainsFunc(topics, func(t Topic) bool { return t.ID == id })
}

// TopicName returns the display name of id within topics, or id itself.
func TopicName(topics []Topic, id string) string {
	for _, t := range topics {
		if t.ID == id {
			return t.Name
		}
	}
	return id
}

const writeSolution = "Write your solution"

var stepPlans = map[string]map[string][]string{
	"algebra": {
		"linear":    {"Set up the equation", "Solve for the variable"},
		"quadratic": {"Set up the equation", "Solve for the variable"},
	},
	"geometry": {
		"triangles": {"Identify the given information", "Apply the appropriate theorem or formula", "Solve for the unknown value"},
	},
	"statistics": {
		"hypothesis":  {"State the null and alternative hypotheses", "Calculate the test statistic", "Make a decision and state the conclusion"},
		"probability": {"Identify the probability model", "Apply the appropriate formula", "Calculate the final probability"},
	},
	"middle-school": {
		"fractions":   {"Convert to common denominator if needed", "Perform the operation", "Simplify the result"},
		"percentages": {"Convert percentage to decimal", "Set up the equation", "Solve for the answer"},
		"ratios":      {"Identify the ratio relationship", "Set up the proportion", "Solve for the unknown value"},
		"functions":   {"Identify the function type", "Find the requested value"},
	},
}

// Steps returns the instructions the learner answers one by one. Every
// problem has at least one step.
func Steps(p Params) []string {
	if plan, ok := stepPlans[p.Category][p.Subcategory]; ok {
		return slices.Clone(plan)
	}
	return []string{writeSolution}
}
