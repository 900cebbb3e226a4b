package domain

import (
	"context"
	"sort"
)

// Callback is invoked when the player selects a choice.
type Callback func(ctx context.Context) error

// Choice is one selectable entry of a published choice list.
type Choice struct {
	Topic  string
	Label  string
	Rule   string
	Invoke Callback
}

// TopicGroup holds the choices sharing one topic, in registration order.
type TopicGroup struct {
	Topic   string
	Choices []Choice
}

// GroupChoices groups choices by topic. Topics come out in ascending lexical
// order; within a topic the input order is kept.
func GroupChoices(choices []Choice) []TopicGroup {
	sorted := make([]Choice, len(choices))
	copy(sorted, choices)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Topic < sorted[j].Topic
	})

	var groups []TopicGroup
	for _, c := range sorted {
		if n := len(groups); n > 0 && groups[n-1].Topic == c.Topic {
			groups[n-1].Choices = append(groups[n-1].Choices, c)
			continue
		}
		groups = append(groups, TopicGroup{Topic: c.Topic, Choices: []Choice{c}})
	}
	return groups
}

// CountChoices returns the number of choices across all groups.
func CountChoices(groups []TopicGroup) int {
	n := 0
	for _, g := range groups {
		n += len(g.Choices)
	}
	return n
}
