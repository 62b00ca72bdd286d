package account

import "strconv"

// Word lists for generated player names. New accounts get a placeholder
// name like "SwiftSeeker123" and rename at their leisure.
var nameAdjectives = []string{
	"Swift", "Mighty", "Clever", "Bold", "Wise", "Brave", "Keen", "Agile",
	"Sharp", "Quick", "Steady", "Silent", "Lucky", "Bright", "Dark", "Fierce",
	"Noble", "Wild", "Free", "Pure", "True", "Rare", "Epic", "Mystic",
	"Shadow", "Storm", "Phoenix", "Dragon", "Wolf", "Eagle", "Raven", "Tiger",
}

var nameNouns = []string{
	"Seeker", "Wanderer", "Explorer", "Guardian", "Sentinel", "Knight", "Ranger",
	"Warrior", "Hunter", "Archer", "Mage", "Sage", "Mystic", "Oracle",
	"Slayer", "Warden", "Paladin", "Rogue", "Ninja", "Assassin", "Barbarian",
	"Shaman", "Druid", "Bard", "Tracker", "Scout", "Spy", "Champion", "Hero",
}

// randomName builds an adjective+noun+number player name.
// rnd(n) must return a value in [0, n).
func randomName(rnd func(n int) int) string {
	adjective := nameAdjectives[rnd(len(nameAdjectives))]
	noun := nameNouns[rnd(len(nameNouns))]
	number := rnd(1000)
	return adjective + noun + strconv.Itoa(number)
}
