// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily puzzle.
// Exposes under /daily (optional auth):
//   - GET  /daily         → today's puzzle set (answers omitted)
//   - POST /daily/submit  → check a chain; persists completion when signed in
//   - POST /daily/reveal  → give up: reveal a tier's full chain
// Plus the gated handlers registered in server.go:
//   - GET /daily/summary  → today's share text
//   - GET /progress/me    → full user progress
//
// Answers never leave the server except through /daily/reveal. Completion
// writes use an optimistic version check and retry on conflict, so two
// devices finishing at once cannot lose each other's points.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/wordchain/go-server/internal/catalog"
	"github.com/wordchain/go-server/internal/game"
	"github.com/wordchain/go-server/internal/progress"
	"github.com/wordchain/go-server/internal/share"
)

// writeRetries bounds re-read/recompute attempts after a version conflict.
const writeRetries = 3

// mountDaily registers the /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Get("/", s.handleDaily)
		r.Post("/submit", s.handleSubmit)
		r.Post("/reveal", s.handleReveal)
	})
}

// today resolves the current puzzle set, day number, and the today/yesterday
// day keys through the injectable clock.
func (s *Server) today() (catalog.PuzzleSet, int, string, string) {
	now := s.now()
	set, dayNumber := s.cat.ResolveToday(now)
	return set, dayNumber, catalog.DayKey(now), catalog.Yesterday(now)
}

// loadOrCreateProgress reads the user's progress, creating the zero row on
// first contact (mirrors the client's load-or-create bootstrap).
func (s *Server) loadOrCreateProgress(r *http.Request, userID string) (game.Progress, int64, error) {
	p, ver, err := s.store.Read(r.Context(), userID)
	if errors.Is(err, progress.ErrNotFound) {
		if err := s.store.Create(r.Context(), userID, game.NewProgress()); err != nil {
			return game.Progress{}, 0, err
		}
		return s.store.Read(r.Context(), userID)
	}
	return p, ver, err
}

// -----------------------------------------------------------------------------
// GET /daily

// tierView is a tier with its answer withheld.
type tierView struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Blanks    int    `json:"blanks"`
	Hint      string `json:"hint"`
	Points    int    `json:"points"`
	Completed bool   `json:"completed"`
}

// dailyRes is returned by GET /daily.
type dailyRes struct {
	Date       string              `json:"date"`
	DayNumber  int                 `json:"dayNumber"`
	Tiers      map[string]tierView `json:"tiers"`
	TodayScore int                 `json:"todayScore"`
}

// handleDaily returns today's puzzle set. For signed-in users the per-tier
// completion flags and today's score are filled in from their progress.
func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	set, dayNumber, todayKey, _ := s.today()

	var prog game.Progress
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		p, _, err := s.loadOrCreateProgress(r, me.ID)
		if err != nil {
			log.Error().Err(err).Str("user", me.ID).Msg("load progress")
			http.Error(w, `{"error":"persistence_unavailable"}`, http.StatusServiceUnavailable)
			return
		}
		prog = p
	}

	res := dailyRes{
		Date:       todayKey,
		DayNumber:  dayNumber,
		Tiers:      make(map[string]tierView, len(catalog.TierNames)),
		TodayScore: prog.DayScore(todayKey),
	}
	for _, name := range catalog.TierNames {
		t, _ := set.Tier(name)
		res.Tiers[name] = tierView{
			Start:     t.Start,
			End:       t.End,
			Blanks:    len(t.Answer),
			Hint:      t.Hint,
			Points:    t.Points,
			Completed: prog.Completed(todayKey, name),
		}
	}
	_ = json.NewEncoder(w).Encode(res)
}

// -----------------------------------------------------------------------------
// POST /daily/submit

// submitReq is the request payload for /daily/submit.
type submitReq struct {
	Tier  string   `json:"tier"`
	Words []string `json:"words"`
}

// submitRes is the response payload for /daily/submit.
type submitRes struct {
	Correct       bool   `json:"correct"`
	Slots         []bool `json:"slots"`
	Chain         string `json:"chain,omitempty"`
	PointsAwarded int    `json:"pointsAwarded"`
	Streak        int    `json:"streak,omitempty"`
	LongestStreak int    `json:"longestStreak,omitempty"`
	TotalScore    int    `json:"totalScore,omitempty"`
	TodayScore    int    `json:"todayScore,omitempty"`
	ShareText     string `json:"shareText,omitempty"`
}

// handleSubmit validates a submitted chain for one of today's tiers.
// Guests get the verdict only. Signed-in users additionally get their
// completion folded into persisted progress:
//   - a tier already completed today is idempotent (verdict, no points);
//   - otherwise streak/score arithmetic runs on the freshest snapshot,
//     retried on concurrent-write conflicts.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	set, dayNumber, todayKey, yesterdayKey := s.today()
	tier, ok := set.Tier(req.Tier)
	if !ok {
		http.Error(w, `{"error":"unknown_tier"}`, http.StatusBadRequest)
		return
	}

	verdict := game.ValidateChain(tier, req.Words)
	if !verdict.Correct {
		_ = json.NewEncoder(w).Encode(submitRes{Correct: false, Slots: verdict.Slots})
		return
	}

	res := submitRes{
		Correct: true,
		Slots:   verdict.Slots,
		Chain:   share.ChainString(tier),
	}

	me, _ := r.Context().Value(ctxUserKey{}).(*authUser)
	if me == nil {
		_ = json.NewEncoder(w).Encode(res)
		return
	}

	for attempt := 0; attempt < writeRetries; attempt++ {
		prior, ver, err := s.loadOrCreateProgress(r, me.ID)
		if err != nil {
			log.Error().Err(err).Str("user", me.ID).Msg("load progress")
			http.Error(w, `{"error":"persistence_unavailable"}`, http.StatusServiceUnavailable)
			return
		}

		if prior.Completed(todayKey, req.Tier) {
			res.Streak = prior.CurrentStreak
			res.LongestStreak = prior.LongestStreak
			res.TotalScore = prior.TotalScore
			res.TodayScore = prior.DayScore(todayKey)
			res.ShareText = share.Text(dayNumber, prior.CurrentStreak, prior.CompletedDays[todayKey].Tiers)
			_ = json.NewEncoder(w).Encode(res)
			return
		}

		updated, streak := game.ComputeCompletion(prior, req.Tier, tier.Points, todayKey, yesterdayKey)
		err = s.store.WriteCompletion(r.Context(), me.ID, todayKey, req.Tier, tier.Points, updated, ver)
		if errors.Is(err, progress.ErrVersionConflict) {
			continue
		}
		if err != nil {
			log.Error().Err(err).Str("user", me.ID).Msg("write completion")
			http.Error(w, `{"error":"persistence_unavailable"}`, http.StatusServiceUnavailable)
			return
		}

		res.PointsAwarded = tier.Points
		res.Streak = streak
		res.LongestStreak = updated.LongestStreak
		res.TotalScore = updated.TotalScore
		res.TodayScore = updated.DayScore(todayKey)
		res.ShareText = share.Text(dayNumber, streak, updated.CompletedDays[todayKey].Tiers)
		_ = json.NewEncoder(w).Encode(res)
		return
	}

	log.Warn().Str("user", me.ID).Msg("completion write kept conflicting")
	http.Error(w, `{"error":"persistence_unavailable"}`, http.StatusServiceUnavailable)
}

// -----------------------------------------------------------------------------
// POST /daily/reveal

// revealReq/Res payloads for the give-up flow.
type revealReq struct {
	Tier string `json:"tier"`
}
type revealRes struct {
	Answer []string `json:"answer"`
	Chain  string   `json:"chain"`
}

// handleReveal returns a tier's full chain. Never awards points; the
// caller's streak is untouched.
func (s *Server) handleReveal(w http.ResponseWriter, r *http.Request) {
	var req revealReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	set, _, _, _ := s.today()
	tier, ok := set.Tier(req.Tier)
	if !ok {
		http.Error(w, `{"error":"unknown_tier"}`, http.StatusBadRequest)
		return
	}
	_ = json.NewEncoder(w).Encode(revealRes{Answer: tier.Answer, Chain: share.ChainString(tier)})
}

// -----------------------------------------------------------------------------
// Gated progress/summary handlers (registered in server.go)

// handleMyProgress returns the full persisted progress document.
func (s *Server) handleMyProgress(w http.ResponseWriter, r *http.Request) {
	me, _ := r.Context().Value(ctxUserKey{}).(*authUser)
	if me == nil {
		http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
		return
	}
	p, _, err := s.loadOrCreateProgress(r, me.ID)
	if err != nil {
		log.Error().Err(err).Str("user", me.ID).Msg("load progress")
		http.Error(w, `{"error":"persistence_unavailable"}`, http.StatusServiceUnavailable)
		return
	}
	_ = json.NewEncoder(w).Encode(p)
}

// handleSummary returns today's share text for the signed-in user.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	me, _ := r.Context().Value(ctxUserKey{}).(*authUser)
	if me == nil {
		http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
		return
	}
	_, dayNumber, todayKey, _ := s.today()
	p, _, err := s.loadOrCreateProgress(r, me.ID)
	if err != nil {
		log.Error().Err(err).Str("user", me.ID).Msg("load progress")
		http.Error(w, `{"error":"persistence_unavailable"}`, http.StatusServiceUnavailable)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{
		"shareText": share.Text(dayNumber, p.CurrentStreak, p.CompletedDays[todayKey].Tiers),
	})
}
