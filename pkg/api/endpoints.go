package api

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hazyhaar/yomikata/pkg/deinflect"
	"github.com/hazyhaar/yomikata/pkg/kit"
	"github.com/hazyhaar/yomikata/pkg/lookup"
	"github.com/hazyhaar/yomikata/pkg/termdb"
	"github.com/hazyhaar/yomikata/pkg/textproc"
)

// Shared request/response types used by both HTTP and MCP transports.

// Catalog lists the imported dictionaries; *termdb.Store implements it.
type Catalog interface {
	Dictionaries(ctx context.Context) ([]termdb.DictInfo, error)
	Count(ctx context.Context) (int, error)
}

// errBadRequest marks errors caused by the caller's input.
var errBadRequest = errors.New("bad request")

// maxTextRunes bounds text accepted by process and scan.
const maxTextRunes = 4096

// maxWordRunes bounds a single word given to deinflect.
const maxWordRunes = 64

type deinflectReq struct {
	Word       string
	Conditions []string
}

type deinflectResult struct {
	Term           string                 `json:"term"`
	Reasons        []string               `json:"reasons"`
	Conditions     []string               `json:"conditions,omitempty"`
	DictionaryForm bool                   `json:"dictionary_form"`
	Trace          []deinflect.TraceFrame `json:"trace,omitempty"`
}

type deinflectResponse struct {
	Word    string            `json:"word"`
	Results []deinflectResult `json:"results"`
}

type processReq struct {
	Text   string                 `json:"text"`
	Stages []textproc.StageConfig `json:"stages,omitempty"`
}

// processResponse carries Result when stages were given, Variants otherwise.
type processResponse struct {
	Text     string             `json:"text"`
	Result   string             `json:"result,omitempty"`
	Variants []textproc.Variant `json:"variants,omitempty"`
}

type processorsResponse struct {
	Processors []textproc.Info `json:"processors"`
}

type lookupReq struct {
	Text string `json:"text"`
}

type lookupResponse struct {
	Text  string        `json:"text"`
	Found bool          `json:"found"`
	Match *lookup.Match `json:"match,omitempty"`
}

type scanResponse struct {
	Text    string         `json:"text"`
	Matches []lookup.Match `json:"matches"`
}

type dictsResponse struct {
	Dictionaries []termdb.DictInfo `json:"dictionaries"`
}

func checkText(text string) error {
	if text == "" {
		return fmt.Errorf("%w: missing text", errBadRequest)
	}
	if n := len([]rune(text)); n > maxTextRunes {
		return fmt.Errorf("%w: text too long (max %d characters, got %d)", errBadRequest, maxTextRunes, n)
	}
	return nil
}

func deinflectEndpoint(svc *lookup.Service) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*deinflectReq)
		if req.Word == "" {
			return nil, fmt.Errorf("%w: missing word", errBadRequest)
		}
		if n := utf8.RuneCountInString(req.Word); n > maxWordRunes {
			return nil, fmt.Errorf("%w: word too long (max %d characters, got %d)", errBadRequest, maxWordRunes, n)
		}
		table := svc.Table()
		ct := table.Conditions()
		constraint, err := ct.Flags(req.Conditions)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errBadRequest, err)
		}

		results := table.DeinflectWith(req.Word, constraint)
		resp := deinflectResponse{Word: req.Word, Results: make([]deinflectResult, len(results))}
		for i, r := range results {
			reasons := r.Reasons
			if reasons == nil {
				reasons = []string{}
			}
			resp.Results[i] = deinflectResult{
				Term:           r.Term,
				Reasons:        reasons,
				Conditions:     ct.Tags(r.Conditions),
				DictionaryForm: table.IsDictionaryForm(r),
				Trace:          r.Trace,
			}
		}
		return resp, nil
	}
}

func processEndpoint(svc *lookup.Service) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*processReq)
		if err := checkText(req.Text); err != nil {
			return nil, err
		}
		if len(req.Stages) == 0 {
			return processResponse{Text: req.Text, Variants: svc.Variants(req.Text)}, nil
		}
		out, err := svc.Process(req.Text, req.Stages)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errBadRequest, err)
		}
		return processResponse{Text: req.Text, Result: out}, nil
	}
}

func listProcessorsEndpoint(svc *lookup.Service) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		return processorsResponse{Processors: svc.Processors()}, nil
	}
}

func lookupEndpoint(svc *lookup.Service) kit.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(*lookupReq)
		if err := checkText(req.Text); err != nil {
			return nil, err
		}
		m, ok, err := svc.Lookup(ctx, req.Text)
		if err != nil {
			return nil, err
		}
		resp := lookupResponse{Text: req.Text, Found: ok}
		if ok {
			resp.Match = &m
		}
		return resp, nil
	}
}

func scanEndpoint(svc *lookup.Service) kit.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(*lookupReq)
		if err := checkText(req.Text); err != nil {
			return nil, err
		}
		matches, err := svc.Scan(ctx, req.Text)
		if err != nil {
			return nil, err
		}
		if matches == nil {
			matches = []lookup.Match{}
		}
		return scanResponse{Text: req.Text, Matches: matches}, nil
	}
}

func listDictsEndpoint(cat Catalog) kit.Endpoint {
	return func(ctx context.Context, _ any) (any, error) {
		if cat == nil {
			return dictsResponse{Dictionaries: []termdb.DictInfo{}}, nil
		}
		dicts, err := cat.Dictionaries(ctx)
		if err != nil {
			return nil, err
		}
		if dicts == nil {
			dicts = []termdb.DictInfo{}
		}
		return dictsResponse{Dictionaries: dicts}, nil
	}
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
