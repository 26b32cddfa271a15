// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/creachadair/jtview/ast"
	"github.com/creachadair/jtview/surface/dom"
	"github.com/creachadair/jtview/view"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
)

// maxInput is the largest request body accepted by POST /render.
const maxInput = 8 << 20

func newServeCmd() *cobra.Command {
	var flags Config
	var addr string
	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve an interactive tree view over HTTP",
		Long: `Serve starts an HTTP server displaying a tree view. The view starts with
the contents of the named file, if any, and can be replaced from the page.

Routes:
  GET  /             the page
  POST /render       render the request body
  POST /toggle/{id}  fold or unfold a group
  POST /expand       expand all groups
  POST /collapse     collapse all groups
  GET  /state        the fold state as JSON
  GET  /healthz      health check`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lg := loggerFromContext(ctx)
			cfg := *configFromContext(ctx)
			if err := cfg.merge(cmd, &flags); err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}

			srv, err := newServer(cfg, lg)
			if err != nil {
				return err
			}
			if len(args) != 0 {
				raw, err := readInput(args[0], cmd.InOrStdin())
				if err != nil {
					return err
				}
				if err := cfg.load(srv.v, raw); err != nil {
					return err
				}
			}
			return srv.listenAndServe(ctx, cfg.Addr)
		},
	}
	flags.viewFlags(cmd)
	cmd.Flags().StringVar(&addr, "addr", "localhost:8080", "listen address")
	return cmd
}

// A server exposes a view over HTTP. Requests are serialized, since a view
// is not safe for concurrent use.
type server struct {
	cfg Config
	log *log.Logger

	mu  sync.Mutex
	doc *dom.Document
	v   *view.View
}

func newServer(cfg Config, lg *log.Logger) (*server, error) {
	doc, v, err := cfg.newView(lg)
	if err != nil {
		return nil, err
	}
	return &server{cfg: cfg, log: lg, doc: doc, v: v}, nil
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handlePage)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "ok\n")
	})
	r.Get("/state", s.handleState)
	r.Post("/render", s.handleRender)
	r.Post("/toggle/{id}", s.handleToggle)
	r.Post("/expand", s.update(func(v *view.View) { v.ExpandAll() }))
	r.Post("/collapse", s.update(func(v *view.View) { v.CollapseAll() }))
	return r
}

func (s *server) listenAndServe(ctx context.Context, addr string) error {
	hs := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := hs.Shutdown(sctx); err != nil {
			s.log.Warn("Shutdown failed", "err", err)
		}
	}()

	s.log.Info("Serving", "addr", addr)
	if err := hs.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-done
	return ctx.Err()
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("Request", "method", r.Method, "path", r.URL.Path,
			"status", ww.Status(), "elapsed", time.Since(start).Round(time.Microsecond))
	})
}

func (s *server) handlePage(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	body := s.doc.HTML()
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	p := page{Title: s.cfg.Title, Body: body, Hover: !s.cfg.NoHover, Interactive: true}
	if err := p.write(w); err != nil {
		s.log.Error("Writing page failed", "err", err)
	}
}

// writeView writes the current markup of the view. The caller must hold s.mu.
func (s *server) writeView(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, s.doc.HTML())
}

func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxInput))
	if err != nil {
		http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.cfg.load(s.v, raw); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	s.writeView(w)
}

func (s *server) handleToggle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.v.Toggle(id); errors.Is(err, view.ErrUnknownID) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	} else if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.writeView(w)
}

// update returns a handler that applies f to the view and writes the result.
func (s *server) update(f func(*view.View)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		f(s.v)
		s.writeView(w)
	}
}

func (s *server) handleState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	st := ast.Object{
		ast.Field("ids", stringArray(s.v.IDs())),
		ast.Field("collapsed", stringArray(slices.Sorted(maps.Keys(s.v.Collapsed())))),
		ast.Field("rows", s.v.Rows()),
		ast.Field("error", errorValue(s.v)),
	}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintln(w, st.JSON())
}

func stringArray(ss []string) ast.Array {
	out := make(ast.Array, len(ss))
	for i, s := range ss {
		out[i] = ast.String(s)
	}
	return out
}

func errorValue(v *view.View) ast.Value {
	ec := v.Err()
	if ec == nil {
		return ast.Null
	}
	return ast.Object{
		ast.Field("message", ec.Message),
		ast.Field("position", ec.Position),
	}
}
