// Package themes holds the fixed list of quote themes used to vary prompts.
package themes

import "math/rand/v2"

// All is the full set of themes a prompt can be biased toward.
var All = []string{
	// Achievement & Success
	"success", "achievement", "excellence", "victory", "accomplishment",

	// Personal Growth
	"growth", "development", "improvement", "transformation", "evolution",

	// Mental Strength
	"perseverance", "resilience", "determination", "persistence", "tenacity",
	"grit", "endurance", "fortitude",

	// Emotional Qualities
	"courage", "bravery", "confidence", "self-belief", "inner strength",
	"strength", "power", "boldness",

	// Vision & Aspiration
	"dreams", "ambition", "goals", "vision", "aspiration", "purpose",
	"potential", "possibilities",

	// Positive Change
	"change", "innovation", "progress", "renewal", "reinvention",
	"adaptation", "flexibility",

	// Wisdom & Learning
	"wisdom", "knowledge", "learning", "understanding", "insight",
	"awareness", "enlightenment",

	// Optimism & Hope
	"hope", "optimism", "positivity", "faith", "trust", "belief",

	// Action & Energy
	"action", "momentum", "drive", "energy", "initiative", "movement",

	// Creativity & Innovation
	"creativity", "imagination", "originality", "inspiration",

	// Leadership & Influence
	"leadership", "influence", "impact", "legacy", "contribution",

	// Balance & Peace
	"balance", "harmony", "peace", "serenity", "mindfulness",

	// Overcoming Challenges
	"obstacles", "challenges", "adversity", "struggle", "difficulty",

	// Time & Opportunity
	"opportunity", "timing", "present moment", "new beginnings", "fresh starts",

	// Passion & Purpose
	"passion", "enthusiasm", "dedication", "commitment", "devotion",
}

// Random returns a uniformly chosen theme.
func Random() string {
	return All[rand.IntN(len(All))]
}
