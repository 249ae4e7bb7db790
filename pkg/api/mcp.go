package api

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hazyhaar/yomikata/pkg/kit"
	"github.com/hazyhaar/yomikata/pkg/lookup"
	"github.com/hazyhaar/yomikata/pkg/textproc"
)

// RegisterMCPTools registers the deinflect, process_text, list_processors,
// lookup and list_dicts tools on srv.
func RegisterMCPTools(srv *server.MCPServer, svc *lookup.Service, cat Catalog, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	wrap := func(name string, ep kit.Endpoint) kit.Endpoint {
		return kit.Chain(kit.Logging(logger, name), recoverPanics)(ep)
	}

	kit.RegisterMCPTool(srv, mcp.NewTool("deinflect",
		mcp.WithDescription("List every candidate dictionary form of an inflected Japanese word with the chain of inflections that leads to it."),
		mcp.WithString("word", mcp.Required(), mcp.Description("The inflected word, e.g. 食べさせられた")),
		mcp.WithString("conditions", mcp.Description("Comma-separated condition tags the word must have, e.g. -ta")),
	), wrap("deinflect", deinflectEndpoint(svc)), func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		args := req.GetArguments()
		word, _ := args["word"].(string)
		conds, _ := args["conditions"].(string)
		return &kit.MCPDecodeResult{Request: &deinflectReq{Word: word, Conditions: splitList(conds)}}, nil
	})

	kit.RegisterMCPTool(srv, mcp.NewTool("process_text",
		mcp.WithDescription("Run text through text processors. Without stages, list every distinct variant the processors produce."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Text to process")),
		mcp.WithString("stages", mcp.Description(`JSON array of {"processor": id, "option": name}, applied in order`)),
	), wrap("process_text", processEndpoint(svc)), func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		args := req.GetArguments()
		text, _ := args["text"].(string)
		r := &processReq{Text: text}
		if s, _ := args["stages"].(string); s != "" {
			var stages []textproc.StageConfig
			if err := json.Unmarshal([]byte(s), &stages); err != nil {
				return nil, fmt.Errorf("stages: %w", err)
			}
			r.Stages = stages
		}
		return &kit.MCPDecodeResult{Request: r}, nil
	})

	kit.RegisterMCPTool(srv, mcp.NewTool("list_processors",
		mcp.WithDescription("List the text processors with their option names."),
	), wrap("list_processors", listProcessorsEndpoint(svc)), noArgs)

	kit.RegisterMCPTool(srv, mcp.NewTool("lookup",
		mcp.WithDescription("Find the dictionary entries for the longest word at the start of a Japanese text, deinflecting as needed."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Text starting with the word to look up")),
	), wrap("lookup", lookupEndpoint(svc)), func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		text, _ := req.GetArguments()["text"].(string)
		return &kit.MCPDecodeResult{Request: &lookupReq{Text: text}}, nil
	})

	kit.RegisterMCPTool(srv, mcp.NewTool("list_dicts",
		mcp.WithDescription("List the imported dictionaries with their entry counts."),
	), wrap("list_dicts", listDictsEndpoint(cat)), noArgs)
}

func noArgs(mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
	return &kit.MCPDecodeResult{}, nil
}
