package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog/log"

	"blackjack-server/internal/game"
	"blackjack-server/internal/store"
)

// Ledger is the external balance collaborator. The registry computes
// amounts; the ledger moves funds.
type Ledger interface {
	Balance(ctx context.Context, playerID string) (int64, error)
	DebitBet(ctx context.Context, playerID, roundID string, amount int64) (int64, error)
	CreditPayout(ctx context.Context, playerID, roundID string, amount int64) (int64, error)
	RefundBet(ctx context.Context, playerID, roundID string, amount int64) (int64, error)
}

// Recorder persists the immutable record of a completed round.
type Recorder interface {
	StoreRoundResult(ctx context.Context, roundID, playerID string, snap game.Snapshot, results []game.HandResult) error
}

type session struct {
	mu         sync.Mutex
	playerID   string
	round      *game.Round
	lastAction time.Time

	// creditedHands is the settlement watermark: hands below this index have
	// had their payout credited. A settle retried after a failed store write
	// resumes from here instead of crediting again.
	creditedHands int
}

// Registry maps active round IDs to their state machines. Each round is
// owned by exactly one session; at most one apply call runs per round at a
// time, a second concurrent request is rejected, never queued.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*session

	ledger      Ledger
	recorder    Recorder
	shuffler    game.Shuffler
	rules       game.Rules
	clock       quartz.Clock
	idleTimeout time.Duration
	notify      func(roundID string, snap game.Snapshot)
}

func NewRegistry(led Ledger, rec Recorder, shuffler game.Shuffler, rules game.Rules, clock quartz.Clock, idleTimeout time.Duration) *Registry {
	return &Registry{
		sessions:    map[string]*session{},
		ledger:      led,
		recorder:    rec,
		shuffler:    shuffler,
		rules:       rules,
		clock:       clock,
		idleTimeout: idleTimeout,
	}
}

// SetNotify registers a callback invoked with every snapshot the registry
// emits, for push transports.
func (r *Registry) SetNotify(fn func(roundID string, snap game.Snapshot)) {
	r.notify = fn
}

// StartRound debits the bet, deals a fresh round from a new shoe, and
// registers it. A natural blackjack on either side settles immediately.
func (r *Registry) StartRound(ctx context.Context, playerID string, bet int64) (game.Snapshot, error) {
	if playerID == "" || bet <= 0 {
		return game.Snapshot{}, ErrInvalidBet
	}
	if err := r.rules.Validate(); err != nil {
		return game.Snapshot{}, err
	}

	roundID := store.NewID()
	if _, err := r.ledger.DebitBet(ctx, playerID, roundID, bet); err != nil {
		return game.Snapshot{}, err
	}

	round, err := game.NewRound(roundID, r.rules, game.NewShoe(r.rules.Decks, r.shuffler), bet)
	if err != nil {
		if _, rerr := r.ledger.RefundBet(ctx, playerID, roundID, bet); rerr != nil {
			log.Error().Err(rerr).Str("round_id", roundID).Msg("refund after failed deal")
		}
		return game.Snapshot{}, err
	}

	sess := &session{playerID: playerID, round: round, lastAction: r.clock.Now()}
	r.mu.Lock()
	r.sessions[roundID] = sess
	r.mu.Unlock()

	if round.Status == game.StatusCompleted {
		sess.mu.Lock()
		snap, err := r.settle(ctx, sess)
		sess.mu.Unlock()
		if err != nil {
			// Session stays registered; the janitor retries the settle.
			return game.Snapshot{}, err
		}
		return snap, nil
	}

	snap := r.buildSnapshot(ctx, sess, nil)
	r.publish(roundID, snap)
	log.Info().Str("round_id", roundID).Str("player_id", playerID).Int64("bet", bet).Msg("round started")
	return snap, nil
}

// Apply validates and applies one action to the round. Double and split
// debit the matching bet before the engine mutates; a failed engine apply
// refunds it.
func (r *Registry) Apply(ctx context.Context, roundID string, handIdx int, action game.Action) (game.Snapshot, error) {
	sess, err := r.lookup(roundID)
	if err != nil {
		return game.Snapshot{}, err
	}
	if !sess.mu.TryLock() {
		return game.Snapshot{}, ErrActionInProgress
	}
	defer sess.mu.Unlock()

	balance, err := r.ledger.Balance(ctx, sess.playerID)
	if err != nil {
		return game.Snapshot{}, err
	}

	var extraDebit int64
	if action == game.ActionDouble || action == game.ActionSplit {
		legal := game.LegalActions(sess.round, handIdx, balance)
		allowed := false
		for _, a := range legal {
			if a == action {
				allowed = true
			}
		}
		if handIdx != sess.round.Current {
			return game.Snapshot{}, game.ErrInvalidTurn
		}
		if !allowed {
			return game.Snapshot{}, game.ErrIllegalAction
		}
		extraDebit = sess.round.Hands[handIdx].Bet
		if _, err := r.ledger.DebitBet(ctx, sess.playerID, roundID, extraDebit); err != nil {
			return game.Snapshot{}, err
		}
	}

	done, err := sess.round.ApplyAction(handIdx, action, balance)
	if err != nil {
		if errors.Is(err, game.ErrShoeExhausted) {
			r.abort(ctx, sess)
			return game.Snapshot{}, err
		}
		if extraDebit > 0 {
			if _, rerr := r.ledger.RefundBet(ctx, sess.playerID, roundID, extraDebit); rerr != nil {
				log.Error().Err(rerr).Str("round_id", roundID).Msg("refund after rejected action")
			}
		}
		return game.Snapshot{}, err
	}
	sess.lastAction = r.clock.Now()

	if done {
		return r.settle(ctx, sess)
	}
	snap := r.buildSnapshot(ctx, sess, nil)
	r.publish(roundID, snap)
	return snap, nil
}

// Snapshot renders the current state of a live round. It takes the same
// per-session lock as Apply, so a read never observes the round mid-mutation;
// a snapshot racing an in-flight action is rejected like a concurrent action.
func (r *Registry) Snapshot(ctx context.Context, roundID string) (game.Snapshot, error) {
	sess, err := r.lookup(roundID)
	if err != nil {
		return game.Snapshot{}, err
	}
	if !sess.mu.TryLock() {
		return game.Snapshot{}, ErrActionInProgress
	}
	defer sess.mu.Unlock()
	return r.buildSnapshot(ctx, sess, nil), nil
}

// StartJanitor force-resolves abandoned rounds: after the idle timeout the
// active hand is treated as an implicit stand, repeatedly, until the round
// completes, so funds are never left in limbo.
func (r *Registry) StartJanitor(ctx context.Context, interval time.Duration) {
	r.clock.TickerFunc(ctx, interval, func() error {
		r.sweep(ctx)
		return nil
	}, "janitor")
}

func (r *Registry) sweep(ctx context.Context) {
	r.mu.Lock()
	stale := make([]*session, 0)
	for _, sess := range r.sessions {
		if r.clock.Since(sess.lastAction) >= r.idleTimeout {
			stale = append(stale, sess)
		}
	}
	r.mu.Unlock()

	for _, sess := range stale {
		if !sess.mu.TryLock() {
			continue
		}
		r.forceResolve(ctx, sess)
		sess.mu.Unlock()
	}
}

func (r *Registry) forceResolve(ctx context.Context, sess *session) {
	round := sess.round
	log.Warn().Str("round_id", round.ID).Str("status", string(round.Status)).Msg("idle round, resolving")
	for round.Status == game.StatusPlayerTurn {
		if _, err := round.ApplyAction(round.Current, game.ActionStand, 0); err != nil {
			if errors.Is(err, game.ErrShoeExhausted) {
				r.abort(ctx, sess)
				return
			}
			log.Error().Err(err).Str("round_id", round.ID).Msg("forced stand failed")
			return
		}
	}
	if round.Status == game.StatusCompleted {
		if _, err := r.settle(ctx, sess); err != nil {
			log.Error().Err(err).Str("round_id", round.ID).Msg("settle forced round")
		}
	}
}

// settle credits each hand at most once, stores the round record exactly
// once, and drops the session. A settle that fails partway leaves the session
// registered; the janitor retries from the credited-hand watermark, so a
// failed store write never credits a hand a second time.
func (r *Registry) settle(ctx context.Context, sess *session) (game.Snapshot, error) {
	round := sess.round
	results := game.Resolve(round)
	for _, res := range results {
		if res.HandIndex < sess.creditedHands {
			continue
		}
		if res.WinAmount > 0 {
			if _, err := r.ledger.CreditPayout(ctx, sess.playerID, round.ID, res.WinAmount); err != nil {
				return game.Snapshot{}, err
			}
		}
		sess.creditedHands = res.HandIndex + 1
	}
	snap := r.buildSnapshot(ctx, sess, results)
	if err := r.recorder.StoreRoundResult(ctx, round.ID, sess.playerID, snap, results); err != nil {
		return game.Snapshot{}, err
	}
	r.drop(round.ID)
	r.publish(round.ID, snap)
	log.Info().Str("round_id", round.ID).Int("hands", len(results)).Msg("round settled")
	return snap, nil
}

// abort unwinds a fatally failed round: every debited stake is refunded and
// the session is discarded.
func (r *Registry) abort(ctx context.Context, sess *session) {
	round := sess.round
	if wagered := round.TotalWagered(); wagered > 0 {
		if _, err := r.ledger.RefundBet(ctx, sess.playerID, round.ID, wagered); err != nil {
			log.Error().Err(err).Str("round_id", round.ID).Int64("amount", wagered).Msg("refund aborted round")
		}
	}
	r.drop(round.ID)
	log.Error().Str("round_id", round.ID).Msg("round aborted")
}

func (r *Registry) lookup(roundID string) (*session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[roundID]
	if !ok {
		return nil, ErrRoundNotFound
	}
	return sess, nil
}

func (r *Registry) drop(roundID string) {
	r.mu.Lock()
	delete(r.sessions, roundID)
	r.mu.Unlock()
}

func (r *Registry) buildSnapshot(ctx context.Context, sess *session, results []game.HandResult) game.Snapshot {
	balance := int64(0)
	if bal, err := r.ledger.Balance(ctx, sess.playerID); err == nil {
		balance = bal
	}
	return game.BuildSnapshot(sess.round, balance, results)
}

func (r *Registry) publish(roundID string, snap game.Snapshot) {
	if r.notify != nil {
		r.notify(roundID, snap)
	}
}
