package game

import "fmt"

// wrongMessages are the flavor lines shown after an incorrect guess. Some
// incorporate the raw guess text.
var wrongMessages = []func(guess string) string{
	func(g string) string { return fmt.Sprintf("%q? Filler arc answer", g) },
	func(string) string { return "Not quite~ try again senpai" },
	func(g string) string { return fmt.Sprintf("%q has left the chat", g) },
	func(string) string { return "Needs more training arc" },
	func(g string) string { return fmt.Sprintf("Plot twist: not %q", g) },
	func(string) string { return "That got isekai'd away" },
	func(g string) string { return fmt.Sprintf("%q... nani?!", g) },
	func(string) string { return "Close but no dango" },
}

// WrongMessage picks a flavor line for an incorrect guess. idx is expected
// to come from a random source; it is reduced modulo the message count.
func WrongMessage(idx int, guess string) string {
	if idx < 0 {
		idx = -idx
	}
	return wrongMessages[idx%len(wrongMessages)](guess)
}

// RankTitle maps a correct-answer percentage to a player rank.
func RankTitle(correctPct int) string {
	switch {
	case correctPct >= 90:
		return "ANIME GOD"
	case correctPct >= 70:
		return "OTAKU KING"
	case correctPct >= 50:
		return "WEEB WARRIOR"
	case correctPct >= 30:
		return "CASUAL FAN"
	default:
		return "NORMIE"
	}
}

// resultTitles is indexed by score tier, highest first. Within a tier the
// line is chosen by total score modulo the tier size, so the same score
// always produces the same line.
var resultTitles = [][]string{
	{"Senpai noticed you!", "Main character energy!", "Omedetou! SSS rank.", "Your power level... it's over 9000!", "Nakama would be proud.", "Certified otaku. No cap.", "Kami-sama tier.", "That was very kawaii of you."},
	{"Sugoi! Solid arc.", "Your power level is acceptable.", "Worthy of a second season.", "Ara ara, not bad~", "The council of weebs approves.", "Strong protagonist energy.", "Yare yare, that was clean."},
	{"A filler arc, but we still love you.", "The training arc continues.", "Plot armor: partial. Keep grinding.", "Getting there, nakama!", "Honorable mention from the guild.", "Mid diff. Respectable.", "Your chūnibyō phase is paying off."},
	{"Even isekai protagonists had a rough start.", "The power of friendship didn't kick in yet.", "Plot armor was on break.", "Nani?! Room to grow.", "Character development arc: loading...", "We've seen worse. Barely.", "Your waifu believes in you."},
	{"At least you tried. Ganbare!", "Maybe stick to the OP/ED for now.", "Your waifu would still be proud. Probably.", "Skill issue. (We say with love.)", "The tutorial was optional, we guess.", "It's the journey, right? Right?!", "Next run: protagonist moment."},
	{"The tutorial was that way. →", "Even NPCs had a better day. Maybe.", "Certified moment. We believe in glow-ups.", "It's the thought that counts?", "We're not crying. You're crying.", "Your power level is... evolving. Slowly.", "Gacha luck will balance out. Copium."},
}

// ResultTitle returns the end-of-game headline for a total score.
func ResultTitle(total int) string {
	var tier int
	switch {
	case total >= 9000:
		tier = 0
	case total >= 8000:
		tier = 1
	case total >= 6000:
		tier = 2
	case total >= 4000:
		tier = 3
	case total >= 2000:
		tier = 4
	default:
		tier = 5
	}
	msgs := resultTitles[tier]
	return msgs[total%len(msgs)]
}
