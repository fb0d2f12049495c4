package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Elections *ElectionHandler
	Votes     *VoteHandler
	Results   *ResultsHandler
	Auth      *Authenticator
}

// NewHandler wires the API routes. Reads are public, ballots need a voter
// identity, and lifecycle, roster and export routes need an admin.
func NewHandler(h Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/api", func(r chi.Router) {
		r.Use(h.Auth.Authenticate)

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("welcome"))
		})

		r.With(RequireAdmin).Get("/dashboard", h.Elections.Dashboard)

		r.Route("/elections", func(r chi.Router) {
			r.Get("/", h.Elections.ListElections)
			r.With(RequireAdmin).Post("/", h.Elections.CreateElection)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Elections.GetElection)
				r.Get("/candidates", h.Elections.ListCandidates)
				r.Get("/results", h.Results.GetResults)

				r.Group(func(r chi.Router) {
					r.Use(RequireAdmin)
					r.Post("/open", h.Elections.OpenElection)
					r.Post("/close", h.Elections.CloseElection)
					r.Post("/candidates", h.Elections.AddCandidate)
					r.Get("/results/export", h.Results.ExportResults)
				})

				r.Group(func(r chi.Router) {
					r.Use(RequireVoter)
					r.Post("/ballots", h.Votes.CastVote)
					r.Get("/ballots/me", h.Votes.MyBallot)
				})
			})
		})
	})

	return r
}
