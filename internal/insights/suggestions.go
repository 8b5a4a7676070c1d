// internal/insights/suggestions.go
// Conversation starters and date ideas

package insights

import (
	"fmt"
	"strings"
)

const (
	MsgNeedInterests   = "You need to identify shared interests first. Pay more attention to what they talk about."
	MsgNeedPreferences = "You need to know their preferences before I can suggest personalized date ideas."
	MsgNovelIdea       = "Try something completely different: a ghost tour, axe throwing, or a pottery class. Novel experiences create stronger memories."
)

// Rand is the randomness a Suggester draws on. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// Suggester produces randomised suggestion lists from a caller-supplied
// random source.
type Suggester struct {
	rand Rand
}

// NewSuggester returns a Suggester drawing on r.
func NewSuggester(r Rand) *Suggester {
	return &Suggester{rand: r}
}

var starterTable = map[string][2]string{
	"travel": {
		"If you could only travel to three more countries in your lifetime, which would you choose and why?",
		"What's the most underrated destination you've been to that more people should visit?",
	},
	"food": {
		"What's the most memorable meal you've ever had, and what made it special?",
		"If you had to eat the cuisine from one country for the rest of your life, which would you choose?",
	},
	"movies": {
		"What movie do you think is totally overrated, and what would you recommend instead?",
		"If your life was a movie, which actor would play you and what genre would it be?",
	},
	"music": {
		"What concert do you wish you could have attended at any point in history?",
		"What song always puts you in a good mood, no matter what?",
	},
	"books": {
		"What book changed your perspective on something important?",
		"If you could have dinner with any author, dead or alive, who would it be and what would you ask them?",
	},
	"sports": {
		"What sport do you think takes the most overall athletic ability?",
		"If you could be professionally good at any sport, which would you choose?",
	},
	"hiking": {
		"What's the most breathtaking natural place you've ever been?",
		"If you could live in any national park for a month, which would you choose and why?",
	},
	"art": {
		"What type of art do you connect with most, and has that changed over time?",
		"If you could own any piece of art in the world, what would you choose?",
	},
	"gaming": {
		"What game world would you most want to live in, and what role would you have there?",
		"What older game do you think deserves a modern remake or sequel?",
	},
	"technology": {
		"What tech innovation do you think will most change daily life in the next decade?",
		"If you could uninvent one piece of technology, what would it be and why?",
	},
	"science": {
		"If you could instantly know the answer to one scientific mystery, what would you want to know?",
		"What scientific advancement are you most excited about or concerned about in our lifetime?",
	},
}

var starterAliases = map[string]string{
	"film":        "movies",
	"reading":     "books",
	"outdoors":    "hiking",
	"video games": "gaming",
}

// GeneralStarters are appended to every conversation starter pool.
var GeneralStarters = []string{
	"What's something you've changed your mind about completely in the last few years?",
	"What are you currently trying to improve about yourself?",
	"What's something you're proud of that you don't get to talk about much?",
}

// StartersFor returns the two questions for one interest.
func StartersFor(interest string) [2]string {
	key := strings.ToLower(strings.TrimSpace(interest))
	if alias, ok := starterAliases[key]; ok {
		key = alias
	}
	if pair, ok := starterTable[key]; ok {
		return pair
	}
	return [2]string{
		fmt.Sprintf("What first got you interested in %s?", interest),
		fmt.Sprintf("What's something about %s that most people don't appreciate or understand?", interest),
	}
}

// ConversationStarters returns up to MaxSuggestions questions for the given
// shared interests.
func (s *Suggester) ConversationStarters(interests []string) []string {
	if len(interests) == 0 {
		return []string{MsgNeedInterests}
	}

	pool := make([]string, 0, len(interests)*2+len(GeneralStarters))
	for _, interest := range interests {
		pair := StartersFor(interest)
		pool = append(pool, pair[0], pair[1])
	}
	pool = append(pool, GeneralStarters...)
	return s.pick(pool)
}

// DatePreferences describes what the other person enjoys.
type DatePreferences struct {
	ActivityLevel   string   `json:"activityLevel" validate:"omitempty,oneof=low medium high"`
	Budget          string   `json:"budget" validate:"omitempty,oneof=low medium high"`
	FoodPreferences []string `json:"foodPreferences" validate:"max=20,dive,max=50"`
	Interests       []string `json:"interests" validate:"max=20,dive,max=50"`
}

// IsEmpty reports whether no preference was supplied.
func (p DatePreferences) IsEmpty() bool {
	return p.ActivityLevel == "" && p.Budget == "" &&
		len(p.FoodPreferences) == 0 && len(p.Interests) == 0
}

var interestIdeas = map[string]string{
	"music":  "Find a small live music venue featuring a genre you both enjoy.",
	"art":    "Visit a local gallery opening - they often have free wine and interesting people.",
	"books":  "Explore a used bookstore and buy each other a book you think they'd enjoy.",
	"nature": "Visit a botanical garden or arboretum and find a quiet spot to talk.",
	"film":   "Instead of mainstream cinema, find an independent theater showing something unique.",
	"movies": "Instead of mainstream cinema, find an independent theater showing something unique.",
}

// DateIdeas returns up to MaxSuggestions date ideas matching prefs.
func (s *Suggester) DateIdeas(prefs DatePreferences) []string {
	if prefs.IsEmpty() {
		return []string{MsgNeedPreferences}
	}

	var ideas []string
	switch prefs.ActivityLevel {
	case "high":
		ideas = append(ideas,
			"Try an indoor rock climbing gym - it's active and lets you see how they handle challenges.",
			"Go hiking to a scenic spot and have a picnic at the destination.",
		)
		if prefs.Budget == "high" {
			ideas = append(ideas, "Book a kayaking or paddleboarding lesson followed by lunch at a waterfront restaurant.")
		}
	case "medium":
		ideas = append(ideas,
			"Visit a museum or art gallery, then discuss your favorite pieces over coffee.",
			"Try a cooking class together focused on a cuisine you both enjoy.",
		)
		if prefs.Budget == "low" {
			ideas = append(ideas, "Find a free outdoor concert or movie in the park.")
		}
	default:
		ideas = append(ideas,
			"Have a board game night at a cozy café with good desserts.",
			"Go to a comedy show - you'll learn about their sense of humor.",
		)
		if prefs.Budget == "high" {
			ideas = append(ideas, "Book a wine tasting at a vineyard with a scenic setting.")
		}
	}

	if len(prefs.FoodPreferences) > 0 {
		cuisine := prefs.FoodPreferences[s.rand.Intn(len(prefs.FoodPreferences))]
		ideas = append(ideas, fmt.Sprintf("Find a highly-rated %s restaurant neither of you has tried before.", cuisine))
		if prefs.Budget == "low" {
			ideas = append(ideas, fmt.Sprintf("Cook a simple %s meal together at home - it's intimate and shows effort without spending much.", cuisine))
		}
	}

	for _, interest := range prefs.Interests {
		if idea, ok := interestIdeas[strings.ToLower(strings.TrimSpace(interest))]; ok {
			ideas = append(ideas, idea)
		}
	}

	ideas = append(ideas, MsgNovelIdea)
	return s.pick(ideas)
}

// pick shuffles pool in place and returns at most MaxSuggestions entries.
func (s *Suggester) pick(pool []string) []string {
	s.rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if len(pool) > MaxSuggestions {
		pool = pool[:MaxSuggestions]
	}
	return pool
}
