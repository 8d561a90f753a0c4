// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the blog to LLM writing assistants via stdio transport.
//
// The transport is stdio on the admin's own machine, so the tools are
// not token-gated; the process itself is the trust boundary.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/halvard/skald/internal/blogservice"
	"github.com/halvard/skald/internal/poststore"
)

// Server wraps the MCP server with blog tools.
type Server struct {
	mcp *server.MCPServer
	svc *blogservice.Service
}

// New creates a new MCP server with all blog tools registered.
func New(svc *blogservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Skald",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_posts",
		mcp.WithDescription("List all posts, drafts included, newest first."),
		mcp.WithString("tag", mcp.Description("Optional tag to filter by")),
	), s.listPosts)

	s.mcp.AddTool(mcp.NewTool("read_post",
		mcp.WithDescription("Read the full content of a post by its slug."),
		mcp.WithString("slug", mcp.Required(), mcp.Description("Post slug (e.g. hello-world)")),
	), s.readPost)

	s.mcp.AddTool(mcp.NewTool("search_posts",
		mcp.WithDescription("Search posts by substring across title, content, and excerpt."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchPosts)

	s.mcp.AddTool(mcp.NewTool("draft_post",
		mcp.WithDescription("Create a new draft post. Drafts stay unpublished until the "+
			"admin publishes them. Read the post format contract first via the "+
			"get_post_contract tool or the skald://post-format resource."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Post title; the slug is derived from it")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Post body as HTML")),
		mcp.WithString("excerpt", mcp.Required(), mcp.Description("Short plain-text summary for listings")),
		mcp.WithString("tags", mcp.Description("Optional comma-separated tags")),
	), s.draftPost)

	s.mcp.AddTool(mcp.NewTool("list_tags",
		mcp.WithDescription("List every tag in use across all posts."),
	), s.listTags)

	s.mcp.AddTool(mcp.NewTool("get_post_contract",
		mcp.WithDescription("Returns the canonical Skald post format contract. "+
			"Call this before drafting posts to ensure correct structure."),
	), s.getPostContract)

	// Resource: post format contract.
	s.mcp.AddResource(
		mcp.NewResource("skald://post-format", "Post Format Contract",
			mcp.WithResourceDescription("Canonical post structure that drafted posts must follow."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readPostFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) listPosts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tag := req.GetString("tag", "")
	posts, err := s.svc.ListPosts(ctx, poststore.ListOptions{Tag: tag})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	type item struct {
		Slug      string   `json:"slug"`
		Title     string   `json:"title"`
		Published bool     `json:"published"`
		Tags      []string `json:"tags"`
	}
	items := make([]item, len(posts))
	for i, p := range posts {
		items[i] = item{Slug: p.Slug, Title: p.Title, Published: p.Published, Tags: p.Tags}
	}
	out, _ := json.MarshalIndent(items, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readPost(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	post, err := s.svc.GetPost(ctx, slug)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", slug)), nil
	}
	out, _ := json.MarshalIndent(post, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) searchPosts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	posts, err := s.svc.ListPosts(ctx, poststore.ListOptions{Search: query})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var lines []string
	for _, p := range posts {
		lines = append(lines, fmt.Sprintf("%s\t%s", p.Slug, p.Title))
	}
	if len(lines) == 0 {
		return mcp.NewToolResultText("no posts matched"), nil
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) draftPost(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	excerpt, err := req.RequireString("excerpt")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var tags []string
	if raw := req.GetString("tags", ""); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
	}

	post, err := s.svc.CreatePost(ctx, poststore.Draft{
		Title:   title,
		Content: content,
		Excerpt: excerpt,
		Tags:    tags,
		// Published stays false: assistants draft, the admin publishes.
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("drafted: %s", post.Slug)), nil
}

func (s *Server) listTags(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tags, err := s.svc.ListTags(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(tags) == 0 {
		return mcp.NewToolResultText("no tags in use"), nil
	}
	return mcp.NewToolResultText(strings.Join(tags, "\n")), nil
}

func (s *Server) getPostContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(PostFormatContract), nil
}

func (s *Server) readPostFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "skald://post-format",
			MIMEType: "text/markdown",
			Text:     PostFormatContract,
		},
	}, nil
}
