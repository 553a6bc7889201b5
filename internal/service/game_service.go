package service

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/otterc137/GuessAnime/internal/catalog"
	"github.com/otterc137/GuessAnime/internal/game"
)

// Game build states reported to the client while the image pool loads.
const (
	StateBuilding = "building"
	StateReady    = "ready"
	StateFailed   = "failed"
)

// Error kinds for failed builds. Both are retryable.
const (
	ErrKindPoolEmpty    = "pool_empty"
	ErrKindInsufficient = "insufficient_pool"
)

var (
	// ErrNoGame is returned when the player has no game at all.
	ErrNoGame = errors.New("no active game")
	// ErrNotReady is returned for play actions while the pool is still
	// building or the build failed.
	ErrNotReady = errors.New("game is not ready")
)

// GameStatus is the player-visible build state.
type GameStatus struct {
	State     string `json:"state"`
	Progress  int    `json:"progress"`
	ErrorKind string `json:"errorKind,omitempty"`
	Got       int    `json:"got,omitempty"`
	Need      int    `json:"need,omitempty"`
}

// playerGame holds one player's game and its build status. The struct's
// own mutex guards status and session; the service map mutex only guards
// membership.
type playerGame struct {
	mu        sync.Mutex
	status    GameStatus
	session   *game.Session
	titles    []string
	lastTouch time.Time
}

func (pg *playerGame) touch() {
	pg.mu.Lock()
	pg.lastTouch = time.Now()
	pg.mu.Unlock()
}

// GameService owns the active sessions, keyed by the player's UUID cookie.
type GameService struct {
	mu      sync.Mutex
	games   map[string]*playerGame
	builder *game.Builder
	entries []catalog.Entry
	ttl     time.Duration
	newRand func() *rand.Rand
}

// NewGameService creates a game service over the given pool builder and
// catalog entries.
func NewGameService(builder *game.Builder, entries []catalog.Entry, ttl time.Duration) *GameService {
	return &GameService{
		games:   make(map[string]*playerGame),
		builder: builder,
		entries: entries,
		ttl:     ttl,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// Start begins building a new game for the player. Titles from the
// player's previous game seed the avoid list so back-to-back games don't
// repeat shows. Any existing game is replaced immediately; an in-flight
// build keeps running but its result is discarded.
func (s *GameService) Start(playerID string) {
	s.mu.Lock()
	var avoid []string
	if prev, ok := s.games[playerID]; ok {
		prev.mu.Lock()
		avoid = prev.titles
		prev.mu.Unlock()
	}

	pg := &playerGame{
		status:    GameStatus{State: StateBuilding},
		lastTouch: time.Now(),
	}
	s.games[playerID] = pg
	s.mu.Unlock()

	go s.build(pg, avoid)
}

func (s *GameService) build(pg *playerGame, avoid []string) {
	pool := s.builder.Build(context.Background(), s.entries, func(pct int) {
		pg.mu.Lock()
		if pg.status.State == StateBuilding {
			pg.status.Progress = pct
		}
		pg.mu.Unlock()
	})

	pg.mu.Lock()
	defer pg.mu.Unlock()

	if len(pool) == 0 {
		pg.status = GameStatus{State: StateFailed, ErrorKind: ErrKindPoolEmpty}
		return
	}

	rng := s.newRand()
	rounds, err := game.SelectRounds(pool, avoid, game.NumRounds, rng)
	if err != nil {
		var insufficient *game.ErrInsufficientPool
		if errors.As(err, &insufficient) {
			pg.status = GameStatus{
				State:     StateFailed,
				ErrorKind: ErrKindInsufficient,
				Got:       insufficient.Got,
				Need:      insufficient.Need,
			}
			return
		}
		log.Printf("Unexpected round selection failure: %v", err)
		pg.status = GameStatus{State: StateFailed, ErrorKind: ErrKindInsufficient}
		return
	}

	pg.session = game.NewSession(rounds, rng)
	pg.titles = make([]string, len(rounds))
	for i, r := range rounds {
		pg.titles[i] = r.Hint
	}
	pg.status = GameStatus{State: StateReady, Progress: 100}
}

// Status reports the player's build progress or failure.
func (s *GameService) Status(playerID string) (GameStatus, error) {
	pg, err := s.lookup(playerID)
	if err != nil {
		return GameStatus{}, err
	}
	pg.mu.Lock()
	defer pg.mu.Unlock()
	pg.lastTouch = time.Now()
	return pg.status, nil
}

// Session returns the player's ready session.
func (s *GameService) Session(playerID string) (*game.Session, error) {
	pg, err := s.lookup(playerID)
	if err != nil {
		return nil, err
	}
	pg.touch()
	pg.mu.Lock()
	defer pg.mu.Unlock()
	if pg.session == nil {
		return nil, ErrNotReady
	}
	return pg.session, nil
}

func (s *GameService) lookup(playerID string) (*playerGame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pg, ok := s.games[playerID]
	if !ok {
		return nil, ErrNoGame
	}
	return pg, nil
}

// StartCleanupRoutine drops games idle past the TTL, checking hourly.
func (s *GameService) StartCleanupRoutine() {
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if removed := s.cleanup(); removed > 0 {
				log.Printf("Cleaned up %d idle game sessions", removed)
			}
		}
	}()
}

func (s *GameService) cleanup() int {
	cutoff := time.Now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, pg := range s.games {
		pg.mu.Lock()
		idle := pg.lastTouch.Before(cutoff)
		pg.mu.Unlock()
		if idle {
			delete(s.games, id)
			removed++
		}
	}
	return removed
}
