// morlockd is a line-oriented JSON worker demonstrating pkg/engine's command
// surface: RESET/MOVE/TAKEBACK/BESTMOVE manage a position, SEARCH/STOP drive
// a background search, and CLEAR_CACHE drops the transposition table. Each
// request line gets exactly one RESULT or ERROR response line, except SEARCH,
// which streams one RESULT per completed depth until STOP.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/corvidchess/engine/pkg/board/fen"
	"github.com/corvidchess/engine/pkg/book"
	"github.com/corvidchess/engine/pkg/engine"
	"github.com/corvidchess/engine/pkg/search"
)

var (
	hash    = flag.Uint("hash", 32, "Transposition table size in MiB")
	noise   = flag.Uint("noise", 0, "Evaluation noise in millipawns (zero if deterministic)")
	useBook = flag.Bool("book", true, "Consult the opening book in BESTMOVE")
)

// request is one line of the worker protocol read from stdin.
type request struct {
	Op       string `json:"op"` // RESET, MOVE, TAKEBACK, BESTMOVE, SEARCH, STOP, CLEAR_CACHE
	Position string `json:"position,omitempty"`
	Move     string `json:"move,omitempty"`
	Depth    int    `json:"depth,omitempty"`
	TimeMs   int    `json:"timeMs,omitempty"` // BESTMOVE, SEARCH: wall-clock budget
}

// response is one line of the worker protocol written to stdout. Move and PV
// are SAN, matching the notation the rest of the engine's external surfaces
// use.
type response struct {
	Status           string `json:"status"` // RESULT or ERROR
	Op               string `json:"op"`
	Move             string `json:"move,omitempty"`
	Source           string `json:"source,omitempty"`
	PV               string `json:"pv,omitempty"`
	Score            int    `json:"score,omitempty"`
	Depth            int    `json:"depth,omitempty"`
	SelDepth         int    `json:"seldepth,omitempty"`
	Nodes            uint64 `json:"nodes,omitempty"`
	NPS              uint64 `json:"nps,omitempty"`
	TimeMs           int64  `json:"timeMs,omitempty"`
	HashFullPermille int    `json:"hashFullPermille,omitempty"`
	Aborted          bool   `json:"aborted,omitempty"`
	Error            string `json:"error,omitempty"`
}

func main() {
	flag.Parse()
	ctx := context.Background()

	opts := []engine.Option{
		engine.WithOptions(engine.Options{Hash: *hash, Noise: *noise}),
	}
	if *useBook {
		opts = append(opts, engine.WithBook(book.Lines))
	}
	e := engine.New(ctx, "morlockd", "corvidchess", opts...)

	in := engine.ReadStdinLines(ctx)
	out := make(chan string, 16)
	go engine.WriteStdoutLines(ctx, out)

	for line := range in {
		var req request
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			out <- encode(response{Status: "ERROR", Error: fmt.Sprintf("invalid request: %v", err)})
			continue
		}
		dispatch(ctx, e, req, out)
	}
	close(out)
}

func dispatch(ctx context.Context, e *engine.Engine, req request, out chan<- string) {
	switch req.Op {
	case "RESET":
		position := req.Position
		if position == "" {
			position = fen.Initial
		}
		if err := e.Reset(ctx, position); err != nil {
			out <- encode(response{Status: "ERROR", Op: req.Op, Error: err.Error()})
			return
		}
		out <- encode(response{Status: "RESULT", Op: req.Op})

	case "MOVE":
		if err := e.Move(ctx, req.Move); err != nil {
			out <- encode(response{Status: "ERROR", Op: req.Op, Error: err.Error()})
			return
		}
		out <- encode(response{Status: "RESULT", Op: req.Op})

	case "TAKEBACK":
		if err := e.TakeBack(ctx); err != nil {
			out <- encode(response{Status: "ERROR", Op: req.Op, Error: err.Error()})
			return
		}
		out <- encode(response{Status: "RESULT", Op: req.Op})

	case "BESTMOVE":
		if req.TimeMs > 0 {
			e.SetTimeMs(uint(req.TimeMs))
		}
		result, err := e.BestMove(ctx)
		if err != nil {
			out <- encode(response{Status: "ERROR", Op: req.Op, Error: err.Error()})
			return
		}
		out <- encode(response{
			Status: "RESULT", Op: req.Op,
			Move: result.SAN, Source: result.Source,
			PV: strings.Join(result.PV, " "), Score: int(result.Score),
			Depth: result.Depth, SelDepth: result.SelDepth, Nodes: result.Nodes,
			NPS: result.NPS, TimeMs: result.TimeMs, HashFullPermille: result.HashFullPermille,
			Aborted: result.Aborted,
		})

	case "SEARCH":
		opt := search.Options{DepthLimit: req.Depth, TimeLimit: time.Duration(req.TimeMs) * time.Millisecond}
		pvs, err := e.Analyze(ctx, opt)
		if err != nil {
			out <- encode(response{Status: "ERROR", Op: req.Op, Error: err.Error()})
			return
		}
		go func() {
			for pv := range pvs {
				out <- encode(response{
					Status: "RESULT", Op: req.Op,
					PV: strings.Join(e.SAN(pv), " "), Score: int(pv.Score), Depth: pv.Depth,
					SelDepth: pv.SelDepth, Nodes: pv.Nodes, NPS: pv.NPS(),
					TimeMs: pv.Time.Milliseconds(), Aborted: pv.Aborted,
				})
			}
		}()

	case "STOP":
		pv, err := e.Halt(ctx)
		if err != nil {
			out <- encode(response{Status: "ERROR", Op: req.Op, Error: err.Error()})
			return
		}
		out <- encode(response{
			Status: "RESULT", Op: req.Op,
			PV: strings.Join(e.SAN(pv), " "), Score: int(pv.Score), Depth: pv.Depth,
			SelDepth: pv.SelDepth, Nodes: pv.Nodes, NPS: pv.NPS(),
			TimeMs: pv.Time.Milliseconds(), Aborted: pv.Aborted,
		})

	case "CLEAR_CACHE":
		if err := e.ClearCache(ctx); err != nil {
			out <- encode(response{Status: "ERROR", Op: req.Op, Error: err.Error()})
			return
		}
		out <- encode(response{Status: "RESULT", Op: req.Op})

	default:
		out <- encode(response{Status: "ERROR", Op: req.Op, Error: fmt.Sprintf("unknown op: %v", req.Op)})
	}
}

func encode(r response) string {
	b, err := json.Marshal(r)
	if err != nil {
		return `{"status":"ERROR","error":"internal: failed to encode response"}`
	}
	return string(b)
}
