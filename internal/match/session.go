package match

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/motus-games/motus/internal/game"
	"github.com/motus-games/motus/internal/protocol"
)

var (
	ErrGameStarted    = errors.New("game already started")
	ErrPlayerNotFound = errors.New("player not found")
)

// WordSource supplies target words and validates guesses.
type WordSource interface {
	RandomWord(length int) (string, error)
	Contains(word string) bool
}

type State uint8

const (
	StateLobby State = iota + 1
	StateRunning
)

// Session is one multiplayer room. Every operation takes the session lock,
// mutates state and returns the emissions the transport must deliver once
// the lock is released.
type Session struct {
	mtx sync.Mutex

	ID        string
	CreatedAt time.Time

	config        Config
	source        WordSource
	words         []string
	state         State
	gameStartTime time.Time
	adminID       string
	players       []*Player // join order, first player is admin
}

// NewSession creates a session with its creator as admin and draws the
// first word list.
func NewSession(id, adminConnID, pseudo string, config Config, source WordSource) (*Session, []protocol.Emission, error) {
	words, err := drawWords(source, config)
	if err != nil {
		return nil, nil, fmt.Errorf("draw words: %w", err)
	}

	s := &Session{
		ID:        id,
		CreatedAt: time.Now(),
		config:    config,
		source:    source,
		words:     words,
		state:     StateLobby,
		adminID:   adminConnID,
		players:   []*Player{NewPlayer(adminConnID, pseudo, config.WordCount)},
	}

	emissions := []protocol.Emission{
		protocol.ToConn(adminConnID, protocol.EvtSessionCreated, SessionCreatedPayload{
			SessionID: id,
			Config:    config,
			IsAdmin:   true,
		}),
	}
	return s, emissions, nil
}

func drawWords(source WordSource, config Config) ([]string, error) {
	words := make([]string, 0, config.WordCount)
	for i := 0; i < config.WordCount; i++ {
		word, err := source.RandomWord(config.WordLengthMode.LengthFor(i))
		if err != nil {
			return nil, err
		}
		words = append(words, word)
	}
	return words, nil
}

func (s *Session) Config() Config {
	return s.config
}

// Expired reports whether the session outlived its ttl.
func (s *Session) Expired(ttl time.Duration, now time.Time) bool {
	return now.Sub(s.CreatedAt) > ttl
}

// Empty reports whether no players remain.
func (s *Session) Empty() bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return len(s.players) == 0
}

func (s *Session) playerByConn(connID string) *Player {
	for _, p := range s.players {
		if p.ID == connID {
			return p
		}
	}
	return nil
}

func (s *Session) playerByPseudo(pseudo string) *Player {
	for _, p := range s.players {
		if p.Pseudo == pseudo {
			return p
		}
	}
	return nil
}

// Join adds a player to the lobby. Joining a running game fails.
func (s *Session) Join(connID, pseudo string) ([]protocol.Emission, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.state != StateLobby {
		return nil, ErrGameStarted
	}

	s.players = append(s.players, NewPlayer(connID, pseudo, s.config.WordCount))
	players := roster(s.players)

	return []protocol.Emission{
		protocol.ToConn(connID, protocol.EvtSessionJoined, SessionJoinedPayload{
			SessionID: s.ID,
			Config:    s.config,
			Players:   players,
			IsAdmin:   connID == s.adminID,
		}),
		protocol.ToRoom(protocol.EvtPlayerJoined, PlayerJoinedPayload{
			Pseudo:  pseudo,
			Players: players,
		}),
	}, nil
}

// Reconnect rebinds an existing player (matched by pseudo, first match
// wins) to a new connection, preserving join order, or admits a brand new
// player mid-session. The reconnecting player resumes at its own word
// index with its previous guesses.
func (s *Session) Reconnect(connID, pseudo string) ([]protocol.Emission, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	player := s.playerByPseudo(pseudo)
	if player == nil {
		player = NewPlayer(connID, pseudo, s.config.WordCount)
		if s.state == StateRunning {
			player.StartTime = time.Now()
		}
		s.players = append(s.players, player)
	} else {
		player.ID = connID
	}

	// Admin follows the first player in join order.
	if len(s.players) > 0 && s.players[0].Pseudo == pseudo {
		s.adminID = connID
	}

	players := roster(s.players)

	var hint *WordHint
	if s.state == StateRunning && player.CurrentWordIndex < len(s.words) {
		word := s.words[player.CurrentWordIndex]
		hint = &WordHint{
			Length:      len([]rune(word)),
			FirstLetter: firstLetter(word),
			WordNumber:  player.CurrentWordIndex + 1,
			TotalWords:  len(s.words),
		}
	}

	previous := []GuessRecord{}
	if player.CurrentWordIndex < len(player.Scores) {
		if score := player.Scores[player.CurrentWordIndex]; score != nil {
			previous = score.Guesses
		}
	}

	return []protocol.Emission{
		protocol.ToConn(connID, protocol.EvtReconnected, ReconnectedPayload{
			SessionID:        s.ID,
			Config:           s.config,
			Players:          players,
			IsAdmin:          connID == s.adminID,
			GameStarted:      s.state == StateRunning,
			CurrentWordIndex: player.CurrentWordIndex,
			CurrentWord:      hint,
			PreviousGuesses:  previous,
		}),
		protocol.ToRoomExcept(connID, protocol.EvtPlayerJoined, PlayerRejoinedPayload{
			Players:   players,
			NewPlayer: PlayerRef{ID: connID, Pseudo: pseudo},
		}),
	}, nil
}

// Start begins a run. Only the admin may start; anyone else is ignored.
// Restarting after a previous run draws a fresh word list.
func (s *Session) Start(connID string) ([]protocol.Emission, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if connID != s.adminID {
		return nil, nil
	}

	if s.state == StateRunning || !s.gameStartTime.IsZero() {
		words, err := drawWords(s.source, s.config)
		if err != nil {
			return nil, fmt.Errorf("draw words: %w", err)
		}
		s.words = words
	}

	s.state = StateRunning
	s.gameStartTime = time.Now()

	for _, p := range s.players {
		p.ResetForReplay(s.config.WordCount)
		p.StartTime = s.gameStartTime
	}

	first := s.words[0]
	return []protocol.Emission{
		protocol.ToRoom(protocol.EvtGameStarted, GameStartedPayload{
			WordLength:  len([]rune(first)),
			FirstLetter: firstLetter(first),
			WordNumber:  1,
			TotalWords:  len(s.words),
		}),
	}, nil
}

// Typing relays a player's in-progress input to the rest of the room.
func (s *Session) Typing(connID, currentInput string) ([]protocol.Emission, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.state != StateRunning {
		return nil, nil
	}
	player := s.playerByConn(connID)
	if player == nil {
		return nil, nil
	}

	wordLength := 6
	if player.CurrentWordIndex < len(s.words) {
		wordLength = len([]rune(s.words[player.CurrentWordIndex]))
	}

	return []protocol.Emission{
		protocol.ToRoomExcept(connID, protocol.EvtPlayerTyping, PlayerTypingPayload{
			PlayerID:     connID,
			Pseudo:       player.Pseudo,
			CurrentInput: currentInput,
			WordNumber:   player.CurrentWordIndex + 1,
			WordLength:   wordLength,
		}),
	}, nil
}

// SubmitGuess evaluates one guess against the submitter's current word and
// advances the player through completion or elimination. Guesses from
// players who already finished their run are ignored.
func (s *Session) SubmitGuess(connID, guess string) ([]protocol.Emission, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.state != StateRunning {
		return nil, nil
	}
	player := s.playerByConn(connID)
	if player == nil || player.Finished() {
		return nil, nil
	}
	if player.CurrentWordIndex >= len(s.words) {
		return nil, nil
	}

	guess = game.Normalize(guess)
	word := s.words[player.CurrentWordIndex]

	if len([]rune(guess)) != len([]rune(word)) {
		return []protocol.Emission{
			protocol.ToConn(connID, protocol.EvtInvalidWord, protocol.ErrorPayload{
				Message: fmt.Sprintf("Le mot doit contenir %d lettres", len([]rune(word))),
			}),
		}, nil
	}
	if firstLetter(guess) != firstLetter(word) {
		return []protocol.Emission{
			protocol.ToConn(connID, protocol.EvtInvalidWord, protocol.ErrorPayload{
				Message: fmt.Sprintf("Le mot doit commencer par %s", firstLetter(word)),
			}),
		}, nil
	}
	if !s.source.Contains(guess) {
		return []protocol.Emission{
			protocol.ToConn(connID, protocol.EvtInvalidWord, protocol.ErrorPayload{
				Message: "Mot non trouvé dans le dictionnaire",
			}),
		}, nil
	}

	result := game.Evaluate(word, guess)
	isCorrect := game.AllCorrect(result)

	wordIndex := player.CurrentWordIndex
	score := player.score(wordIndex)
	score.Guesses = append(score.Guesses, GuessRecord{Guess: guess, Result: result})
	score.Attempts++

	var emissions []protocol.Emission

	if isCorrect {
		score.Found = true
		player.TotalScore += game.Points(score.Attempts)

		emissions = append(emissions, protocol.ToRoom(protocol.EvtPlayerWonWord, PlayerWonWordPayload{
			Pseudo:     player.Pseudo,
			Attempts:   score.Attempts,
			WordNumber: wordIndex + 1,
			TotalWords: len(s.words),
			TotalScore: player.TotalScore,
		}))

		if s.allWordsFound(player) {
			player.State = PlayerCompleted
			player.EndTime = time.Now()
			emissions = append(emissions, s.finishEmissions(player)...)
		} else {
			player.CurrentWordIndex++
			if player.CurrentWordIndex < len(s.words) {
				next := s.words[player.CurrentWordIndex]
				emissions = append(emissions,
					protocol.ToConn(connID, protocol.EvtNextWord, NextWordPayload{
						WordLength:  len([]rune(next)),
						FirstLetter: firstLetter(next),
						WordNumber:  player.CurrentWordIndex + 1,
						TotalWords:  len(s.words),
						TotalScore:  player.TotalScore,
					}),
					protocol.ToRoomExcept(connID, protocol.EvtPlayerChangedWord, PlayerChangedWordPayload{
						PlayerID:   connID,
						Pseudo:     player.Pseudo,
						WordNumber: player.CurrentWordIndex + 1,
						TotalWords: len(s.words),
					}),
				)
			}
		}
	} else if score.Attempts >= game.MaxAttempts {
		player.State = PlayerEliminated
		player.EndTime = time.Now()
		emissions = append(emissions, s.finishEmissions(player)...)
	}

	emissions = append(emissions,
		protocol.ToConn(connID, protocol.EvtGuessResult, GuessResultPayload{
			Result:      result,
			IsCorrect:   isCorrect,
			GuessNumber: score.Attempts,
			WordNumber:  wordIndex + 1,
		}),
		protocol.ToRoomExcept(connID, protocol.EvtPlayerAttemptUpdate, PlayerAttemptPayload{
			PlayerID:         connID,
			Pseudo:           player.Pseudo,
			Result:           result,
			TotalScore:       player.TotalScore,
			CurrentWordIndex: player.CurrentWordIndex,
		}),
		protocol.ToRoom(protocol.EvtPlayersUpdate, PlayersUpdatePayload{
			PlayersData: progress(s.players),
		}),
	)

	return emissions, nil
}

func (s *Session) allWordsFound(p *Player) bool {
	found := 0
	for _, score := range p.Scores {
		if score != nil && score.Found {
			found++
		}
	}
	return found == len(s.words)
}

// finishEmissions announces a player's end of run and, when everyone is
// done, the final ranking.
func (s *Session) finishEmissions(player *Player) []protocol.Emission {
	emissions := []protocol.Emission{
		protocol.ToRoom(protocol.EvtPlayerFinished, PlayerFinishedPayload{
			Pseudo:         player.Pseudo,
			CompletionTime: player.CompletionMillis(),
			TotalScore:     player.TotalScore,
			Eliminated:     player.State == PlayerEliminated,
		}),
	}

	leaderboard := BuildLeaderboard(s.players)
	emissions = append(emissions, protocol.ToConn(player.ID, protocol.EvtPlayerCompleted, LeaderboardPayload{
		Leaderboard: leaderboard,
	}))

	allFinished := true
	for _, p := range s.players {
		if !p.Finished() {
			allFinished = false
			break
		}
	}
	if allFinished {
		emissions = append(emissions, protocol.ToRoom(protocol.EvtGameCompleted, LeaderboardPayload{
			Leaderboard: leaderboard,
		}))
	}
	return emissions
}

// Replay returns the session to the lobby with a fresh word list and all
// player progress cleared.
func (s *Session) Replay() ([]protocol.Emission, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	words, err := drawWords(s.source, s.config)
	if err != nil {
		return nil, fmt.Errorf("draw words: %w", err)
	}

	s.state = StateLobby
	s.gameStartTime = time.Time{}
	s.words = words

	for _, p := range s.players {
		p.ResetForReplay(s.config.WordCount)
	}

	return []protocol.Emission{
		protocol.ToRoom(protocol.EvtSessionReset, SessionResetPayload{
			SessionID: s.ID,
			Config:    s.config,
			Players:   roster(s.players),
		}),
	}, nil
}

// RemovePlayer drops a disconnected player. When the admin leaves, the
// next player in join order is promoted.
func (s *Session) RemovePlayer(connID string) ([]protocol.Emission, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	var removed *Player
	for i, p := range s.players {
		if p.ID == connID {
			removed = p
			s.players = append(s.players[:i], s.players[i+1:]...)
			break
		}
	}
	if removed == nil {
		return nil, ErrPlayerNotFound
	}
	if len(s.players) == 0 {
		return nil, nil
	}

	var emissions []protocol.Emission
	if connID == s.adminID {
		s.adminID = s.players[0].ID
		emissions = append(emissions, protocol.ToConn(s.adminID, protocol.EvtPromotedToAdmin, struct{}{}))
	}

	emissions = append(emissions, protocol.ToRoom(protocol.EvtPlayerLeft, PlayerLeftPayload{
		Pseudo:  removed.Pseudo,
		Players: roster(s.players),
	}))
	return emissions, nil
}

func firstLetter(word string) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return ""
	}
	return string(runes[0])
}
