package catalog

// Entry is a show the game knows about. MALID is the MyAnimeList anime ID
// used for Jikan lookups; Accept holds every lowercase spelling counted as
// a correct guess.
type Entry struct {
	MALID  int
	Title  string
	Accept []string
}

// All anime entries are MAL anime IDs (TV/movie). The table is process-wide
// constant data: loaded once, never mutated, safe to share between sessions.
var entries = []Entry{
	{MALID: 49596, Title: "Blue Lock", Accept: []string{"blue lock", "bluelock", "bllk"}},
	{MALID: 40748, Title: "Jujutsu Kaisen", Accept: []string{"jujutsu kaisen", "jjk"}},
	{MALID: 44511, Title: "Chainsaw Man", Accept: []string{"chainsaw man", "chainsawman", "csm"}},
	{MALID: 58939, Title: "Sakamoto Days", Accept: []string{"sakamoto days", "sakamoto", "skdy"}},
	{MALID: 41467, Title: "Bleach", Accept: []string{"bleach"}},
	{MALID: 20583, Title: "Haikyu!!", Accept: []string{"haikyu", "haikyuu", "haikyu!!"}},
	{MALID: 58811, Title: "Tougen Anki", Accept: []string{"tougen anki", "tougenanki"}},
	{MALID: 38000, Title: "Demon Slayer", Accept: []string{"demon slayer", "kimetsu no yaiba", "kny"}},
	{MALID: 52588, Title: "Kaiju No. 8", Accept: []string{"kaiju no 8", "kaiju no. 8", "kaiju no.8", "kaiju 8", "kaiju no8"}},
	{MALID: 31964, Title: "My Hero Academia", Accept: []string{"my hero academia", "bnha", "boku no hero academia", "mha"}},
	{MALID: 20, Title: "Naruto", Accept: []string{"naruto", "nrt"}},
	{MALID: 21, Title: "One Piece", Accept: []string{"one piece", "onepiece", "op"}},
	{MALID: 16498, Title: "Attack on Titan", Accept: []string{"attack on titan", "shingeki no kyojin", "aot", "snk"}},
}

// All returns the full catalog in declaration order. Callers must not modify
// the returned slice.
func All() []Entry {
	return entries
}

// Len returns the number of catalog entries.
func Len() int {
	return len(entries)
}
