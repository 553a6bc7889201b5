package game

import (
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"
)

const (
	// NumRounds is the fixed number of rounds per game.
	NumRounds = 10
	// RoundTime is the countdown length per round, in seconds.
	RoundTime = 60
)

// ErrFinished is returned for play actions on a finished session.
var ErrFinished = errors.New("game is finished")

// RoundResult records the outcome of one round. Exactly one result is
// appended per round, in round order, and never mutated afterward.
type RoundResult struct {
	Correct  bool   `json:"correct"`
	Score    int    `json:"score"`
	Answer   string `json:"answer"`
	GaveUp   bool   `json:"gaveUp"`
	TimedOut bool   `json:"timedOut"`
}

// GuessOutcome describes what a guess submission did.
type GuessOutcome struct {
	// Ignored is set when the guess was empty or the round had already
	// ended; nothing changed.
	Ignored bool
	Correct bool
	Score   int
	// WrongMessage is the flavor line for an incorrect guess.
	WrongMessage string
}

// Session drives one play-through of NumRounds rounds. All player actions
// and the timeout check funnel through a per-round one-shot latch, so a
// guess landing in the same instant the timer expires can never record two
// results. The session is safe for concurrent use.
type Session struct {
	mu sync.Mutex

	rounds   []Round
	roundIdx int
	revealed map[int]bool
	deadline time.Time
	ended    bool
	result   *RoundResult

	total    int
	streak   int
	results  []RoundResult
	finished bool

	rng *rand.Rand
	now func() time.Time
}

// NewSession starts a game over the given rounds. The first round's timer
// begins immediately.
func NewSession(rounds []Round, rng *rand.Rand) *Session {
	s := &Session{
		rounds: rounds,
		rng:    rng,
		now:    time.Now,
	}
	s.startRound()
	return s
}

// startRound resets per-round state. Caller must hold the lock (or be the
// constructor).
func (s *Session) startRound() {
	s.revealed = make(map[int]bool)
	s.deadline = s.now().Add(RoundTime * time.Second)
	s.ended = false
	s.result = nil
}

// timeLeft returns whole seconds remaining, clamped to [0, RoundTime].
func (s *Session) timeLeft() int {
	remaining := int(s.deadline.Sub(s.now()).Seconds())
	if remaining < 0 {
		return 0
	}
	if remaining > RoundTime {
		return RoundTime
	}
	return remaining
}

// checkTimeout ends the round as timed out if the deadline has passed.
// Called at the top of every action so an expired round settles before the
// action is interpreted.
func (s *Session) checkTimeout() {
	if !s.ended && !s.finished && s.timeLeft() == 0 {
		s.endRound(RoundResult{Answer: s.rounds[s.roundIdx].Hint, TimedOut: true})
	}
}

// endRound is the single place a round outcome is recorded. The first
// caller wins; later calls are silent no-ops.
func (s *Session) endRound(r RoundResult) {
	if s.ended {
		return
	}
	s.ended = true
	s.result = &r
	s.results = append(s.results, r)
	if r.Correct {
		s.total += r.Score
		s.streak++
	} else {
		s.streak = 0
	}
}

// RevealTile marks a tile as revealed. Out-of-range indexes are rejected;
// revealing an already-revealed tile or acting on an ended round changes
// nothing. There is no cap on reveals short of the full grid.
func (s *Session) RevealTile(idx int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finished {
		return ErrFinished
	}
	if idx < 0 || idx >= TotalTiles {
		return errors.New("tile index out of range")
	}
	s.checkTimeout()
	if s.ended {
		return nil
	}
	s.revealed[idx] = true
	return nil
}

// SubmitGuess normalizes the guess (trim, lowercase) and tests it against
// the round's accepted aliases with exact matching. A correct guess ends
// the round and scores it; an incorrect one leaves the round running and
// yields a flavor message. Empty guesses are ignored.
func (s *Session) SubmitGuess(text string) (GuessOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finished {
		return GuessOutcome{}, ErrFinished
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return GuessOutcome{Ignored: true}, nil
	}

	s.checkTimeout()
	if s.ended {
		return GuessOutcome{Ignored: true}, nil
	}

	round := s.rounds[s.roundIdx]
	normalized := strings.ToLower(trimmed)
	for _, alias := range round.Accept {
		if normalized == alias {
			score := Score(len(s.revealed), s.timeLeft(), RoundTime)
			s.endRound(RoundResult{Correct: true, Score: score, Answer: round.Hint})
			return GuessOutcome{Correct: true, Score: score}, nil
		}
	}

	return GuessOutcome{WrongMessage: WrongMessage(s.rng.Intn(len(wrongMessages)), trimmed)}, nil
}

// GiveUp ends the current round as incorrect with zero points.
func (s *Session) GiveUp() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finished {
		return ErrFinished
	}
	s.checkTimeout()
	if s.ended {
		return nil
	}
	s.endRound(RoundResult{Answer: s.rounds[s.roundIdx].Hint, GaveUp: true})
	return nil
}

// NextRound advances past an ended round, or finishes the session after
// the last one. Advancing a round that is still running is an error.
func (s *Session) NextRound() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finished {
		return ErrFinished
	}
	s.checkTimeout()
	if !s.ended {
		return errors.New("round still in progress")
	}
	if s.roundIdx >= len(s.rounds)-1 {
		s.finished = true
		return nil
	}
	s.roundIdx++
	s.startRound()
	return nil
}

// Snapshot is the read-only view handed to the presentation layer. The
// answer is withheld until the round has ended.
type Snapshot struct {
	RoundIndex int          `json:"round"`
	RoundCount int          `json:"roundCount"`
	TotalScore int          `json:"totalScore"`
	Streak     int          `json:"streak"`
	TimeLeft   int          `json:"timeLeft"`
	Revealed   []int        `json:"revealed"`
	Image      string       `json:"image"`
	RoundOver  bool         `json:"roundOver"`
	Result     *RoundResult `json:"result,omitempty"`
	Finished   bool         `json:"finished"`
}

// Snapshot returns the current player-visible state, settling a timeout
// first if the clock has run out.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.checkTimeout()

	revealed := make([]int, 0, len(s.revealed))
	for idx := range s.revealed {
		revealed = append(revealed, idx)
	}

	snap := Snapshot{
		RoundIndex: s.roundIdx,
		RoundCount: len(s.rounds),
		TotalScore: s.total,
		Streak:     s.streak,
		TimeLeft:   s.timeLeft(),
		Revealed:   revealed,
		Image:      s.rounds[s.roundIdx].Image,
		RoundOver:  s.ended,
		Finished:   s.finished,
	}
	if s.ended {
		snap.Result = s.result
	}
	return snap
}

// FinalResults summarizes a finished game.
type FinalResults struct {
	TotalScore   int           `json:"totalScore"`
	CorrectCount int           `json:"correctCount"`
	Rounds       []RoundResult `json:"rounds"`
	Rank         string        `json:"rank"`
	Title        string        `json:"title"`
}

// Finished reports whether the session has played out all rounds.
func (s *Session) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished
}

// Results returns the results log and summary. Valid once finished.
func (s *Session) Results() FinalResults {
	s.mu.Lock()
	defer s.mu.Unlock()

	correct := 0
	for _, r := range s.results {
		if r.Correct {
			correct++
		}
	}
	pct := 0
	if len(s.rounds) > 0 {
		pct = correct * 100 / len(s.rounds)
	}

	rounds := make([]RoundResult, len(s.results))
	copy(rounds, s.results)

	return FinalResults{
		TotalScore:   s.total,
		CorrectCount: correct,
		Rounds:       rounds,
		Rank:         RankTitle(pct),
		Title:        ResultTitle(s.total),
	}
}

// Titles lists the round titles of this game, used as the avoid list when
// the player goes again.
func (s *Session) Titles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	titles := make([]string, len(s.rounds))
	for i, r := range s.rounds {
		titles[i] = r.Hint
	}
	return titles
}
