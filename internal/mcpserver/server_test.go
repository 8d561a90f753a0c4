package mcpserver

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/halvard/skald/internal/blogservice"
	"github.com/halvard/skald/internal/poststore"
	"github.com/halvard/skald/internal/storage"
	"github.com/halvard/skald/internal/testutil"
	"github.com/halvard/skald/internal/uploads"
)

func testServer(t *testing.T) (*Server, *poststore.Store) {
	t.Helper()

	posts := testutil.PostStore(t)
	blobs, err := storage.NewBlobDir(filepath.Join(t.TempDir(), "uploads"))
	if err != nil {
		t.Fatal(err)
	}
	svc := blogservice.NewService(posts, uploads.NewRegistrar(blobs), nil)
	return New(svc), posts
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct "call tool" test helper, so we invoke the
	// handler functions directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "list_posts":
		result, err = srv.listPosts(ctx, req)
	case "read_post":
		result, err = srv.readPost(ctx, req)
	case "search_posts":
		result, err = srv.searchPosts(ctx, req)
	case "draft_post":
		result, err = srv.draftPost(ctx, req)
	case "list_tags":
		result, err = srv.listTags(ctx, req)
	case "get_post_contract":
		result, err = srv.getPostContract(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestDraftAndReadPost(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "draft_post", map[string]interface{}{
		"title":   "Hello World",
		"content": "<p>hi</p>",
		"excerpt": "hi",
		"tags":    "golang, writing",
	})
	if text := resultText(r); text != "drafted: hello-world" {
		t.Errorf("draft result = %q", text)
	}

	r = callTool(t, srv, "read_post", map[string]interface{}{"slug": "hello-world"})
	text := resultText(r)
	if !strings.Contains(text, "<p>hi</p>") {
		t.Errorf("read result missing content: %q", text)
	}
	if !strings.Contains(text, "golang") {
		t.Errorf("read result missing tags: %q", text)
	}
}

func TestDraftsStayUnpublished(t *testing.T) {
	srv, posts := testServer(t)

	callTool(t, srv, "draft_post", map[string]interface{}{
		"title": "Draft Only", "content": "c", "excerpt": "e",
	})

	stored, err := posts.List(poststore.ListOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 1 || stored[0].Published {
		t.Errorf("expected a single unpublished draft, got %+v", stored)
	}
}

func TestListPostsIncludesDraftsAndFiltersByTag(t *testing.T) {
	srv, _ := testServer(t)

	callTool(t, srv, "draft_post", map[string]interface{}{
		"title": "Tagged", "content": "c", "excerpt": "e", "tags": "golang",
	})
	callTool(t, srv, "draft_post", map[string]interface{}{
		"title": "Untagged", "content": "c", "excerpt": "e",
	})

	r := callTool(t, srv, "list_posts", nil)
	text := resultText(r)
	if !strings.Contains(text, "tagged") || !strings.Contains(text, "untagged") {
		t.Errorf("listing should include drafts: %q", text)
	}

	r = callTool(t, srv, "list_posts", map[string]interface{}{"tag": "golang"})
	text = resultText(r)
	if !strings.Contains(text, "tagged") || strings.Contains(text, "untagged") {
		t.Errorf("tag filter result = %q", text)
	}
}

func TestSearchPosts(t *testing.T) {
	srv, _ := testServer(t)

	callTool(t, srv, "draft_post", map[string]interface{}{
		"title": "Needle post", "content": "haystack with a needle inside", "excerpt": "e",
	})
	callTool(t, srv, "draft_post", map[string]interface{}{
		"title": "Other", "content": "nothing here", "excerpt": "e",
	})

	r := callTool(t, srv, "search_posts", map[string]interface{}{"query": "needle"})
	text := resultText(r)
	if !strings.Contains(text, "needle-post") {
		t.Errorf("search result = %q", text)
	}
	if strings.Contains(text, "other") {
		t.Errorf("search matched unrelated post: %q", text)
	}

	r = callTool(t, srv, "search_posts", map[string]interface{}{"query": "zebra"})
	if text := resultText(r); text != "no posts matched" {
		t.Errorf("empty search result = %q", text)
	}
}

func TestReadPostNotFound(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "read_post", map[string]interface{}{"slug": "missing"})
	if !r.IsError {
		t.Error("missing slug should return a tool error")
	}
}

func TestListTags(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "list_tags", nil)
	if text := resultText(r); text != "no tags in use" {
		t.Errorf("empty tags result = %q", text)
	}

	callTool(t, srv, "draft_post", map[string]interface{}{
		"title": "A", "content": "c", "excerpt": "e", "tags": "Golang, food",
	})
	callTool(t, srv, "draft_post", map[string]interface{}{
		"title": "B", "content": "c", "excerpt": "e", "tags": "golang",
	})

	r = callTool(t, srv, "list_tags", nil)
	text := resultText(r)
	if text != "Golang\nfood" {
		t.Errorf("tags = %q", text)
	}
}

func TestGetPostContract(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "get_post_contract", nil)
	if text := resultText(r); !strings.Contains(text, "excerpt") {
		t.Errorf("contract missing field docs: %q", text)
	}
}
