// Package mcp exposes read-only site content queries over the Model
// Context Protocol.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/helixml/sitekit/domain/bilingual"
	"github.com/helixml/sitekit/domain/navigation"
	"github.com/helixml/sitekit/domain/slide"
	"github.com/helixml/sitekit/domain/taxonomy"
)

// MenuReader provides the menu forest for MCP tools.
type MenuReader interface {
	Tree(ctx context.Context, location navigation.Location) ([]navigation.Node, error)
}

// SlideReader provides page and home-rotation slides for MCP tools.
type SlideReader interface {
	ForPage(ctx context.Context, pagePath string) ([]slide.Slide, error)
	HomeRotation(ctx context.Context) ([]slide.Slide, error)
}

// Previewer classifies a document title without writing.
type Previewer interface {
	Preview(title bilingual.Text, code string, year int, quarter *int) taxonomy.Decision
}

// Server wraps the MCP server with sitekit tools.
type Server struct {
	mcpServer *server.MCPServer
	menus     MenuReader
	slides    SlideReader
	previewer Previewer
	logger    *slog.Logger
}

// NewServer creates a new MCP server with the given dependencies.
func NewServer(menus MenuReader, slides SlideReader, previewer Previewer, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		menus:     menus,
		slides:    slides,
		previewer: previewer,
		logger:    logger,
	}

	mcpServer := server.NewMCPServer(
		"sitekit",
		version,
		server.WithToolCapabilities(true),
	)
	s.registerTools(mcpServer)

	s.mcpServer = mcpServer
	return s
}

func (s *Server) registerTools(mcpServer *server.MCPServer) {
	mcpServer.AddTool(mcp.NewTool("menu_tree",
		mcp.WithDescription("Return the navigation menu forest for a location"),
		mcp.WithString("location",
			mcp.Description("header or footer (default: header)"),
		),
	), s.handleMenuTree)

	mcpServer.AddTool(mcp.NewTool("page_slides",
		mcp.WithDescription("Return the active slides bound to a page, or the home rotation when no page is given"),
		mcp.WithString("page",
			mcp.Description("Site-relative page path such as /business/energy"),
		),
	), s.handlePageSlides)

	mcpServer.AddTool(mcp.NewTool("classify_title",
		mcp.WithDescription("Show how the document taxonomy would classify a title"),
		mcp.WithString("title_id",
			mcp.Required(),
			mcp.Description("Indonesian title"),
		),
		mcp.WithString("title_en",
			mcp.Description("English title"),
		),
		mcp.WithString("type",
			mcp.Description("Current document type code"),
		),
		mcp.WithNumber("year",
			mcp.Description("Document year"),
		),
		mcp.WithNumber("quarter",
			mcp.Description("Fiscal quarter, 1 to 4"),
		),
	), s.handleClassifyTitle)
}

type menuNode struct {
	ID       string     `json:"id"`
	LabelID  string     `json:"label_id"`
	LabelEN  string     `json:"label_en"`
	Path     string     `json:"path"`
	Active   bool       `json:"active"`
	Children []menuNode `json:"children,omitempty"`
}

func toMenuNodes(nodes []navigation.Node) []menuNode {
	out := make([]menuNode, len(nodes))
	for i, n := range nodes {
		out[i] = menuNode{
			ID:       n.Item.ID(),
			LabelID:  n.Item.Label().Primary(),
			LabelEN:  n.Item.Label().Secondary(),
			Path:     n.Item.Path(),
			Active:   n.Item.IsActive(),
			Children: toMenuNodes(n.Children),
		}
	}
	return out
}

func (s *Server) handleMenuTree(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	location, err := navigation.ParseLocation(request.GetString("location", string(navigation.LocationHeader)))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	tree, err := s.menus.Tree(ctx, location)
	if err != nil {
		s.logger.Error("menu tree failed", slog.Any("error", err))
		return mcp.NewToolResultError(fmt.Sprintf("menu tree failed: %v", err)), nil
	}
	return jsonResult(toMenuNodes(tree))
}

type slideResult struct {
	ID        string `json:"id"`
	TitleID   string `json:"title_id"`
	TitleEN   string `json:"title_en"`
	MediaURL  string `json:"media_url"`
	MediaType string `json:"media_type"`
	SortOrder int    `json:"sort_order"`
}

func (s *Server) handlePageSlides(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	page := request.GetString("page", "")

	var (
		slides []slide.Slide
		err    error
	)
	if page == "" || page == "/" {
		slides, err = s.slides.HomeRotation(ctx)
	} else {
		slides, err = s.slides.ForPage(ctx, page)
	}
	if err != nil {
		s.logger.Error("slide lookup failed", slog.String("page", page), slog.Any("error", err))
		return mcp.NewToolResultError(fmt.Sprintf("slide lookup failed: %v", err)), nil
	}

	results := make([]slideResult, len(slides))
	for i, sl := range slides {
		results[i] = slideResult{
			ID:        sl.ID(),
			TitleID:   sl.Title().Primary(),
			TitleEN:   sl.Title().Secondary(),
			MediaURL:  sl.MediaURL(),
			MediaType: string(sl.MediaType()),
			SortOrder: sl.SortOrder(),
		}
	}
	return jsonResult(results)
}

type decisionResult struct {
	Rule              string `json:"rule,omitempty"`
	Action            string `json:"action"`
	Code              string `json:"code"`
	TitleID           string `json:"title_id"`
	TitleEN           string `json:"title_en"`
	Retitled          bool   `json:"retitled"`
	YearConflict      bool   `json:"year_conflict"`
	AmbiguousModifier bool   `json:"ambiguous_modifier"`
}

func (s *Server) handleClassifyTitle(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	titleID, err := request.RequireString("title_id")
	if err != nil {
		return mcp.NewToolResultError("title_id is required"), nil
	}

	var quarter *int
	if q := request.GetInt("quarter", 0); q != 0 {
		if q < 1 || q > 4 {
			return mcp.NewToolResultError(fmt.Sprintf("invalid quarter: %d", q)), nil
		}
		quarter = &q
	}

	d := s.previewer.Preview(
		bilingual.New(titleID, request.GetString("title_en", "")),
		request.GetString("type", ""),
		request.GetInt("year", 0),
		quarter,
	)
	return jsonResult(decisionResult{
		Rule:              d.Rule,
		Action:            string(d.Action),
		Code:              d.Code,
		TitleID:           d.Title.Primary(),
		TitleEN:           d.Title.Secondary(),
		Retitled:          d.Retitled,
		YearConflict:      d.YearConflict,
		AmbiguousModifier: d.AmbiguousModifier,
	})
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio runs the MCP server on stdio.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
