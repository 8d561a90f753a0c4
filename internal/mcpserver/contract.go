package mcpserver

// PostFormatContract describes the post structure that LLM consumers
// should follow when drafting posts.
const PostFormatContract = `# Skald Post Format Contract

Every post drafted through the MCP tools MUST follow this structure.

## Fields

- **title** (required) — plain text, sentence case. The URL slug is derived
  from it (lower-cased, punctuation stripped, spaces become hyphens), so keep
  it short and descriptive. A duplicate title gets a numeric suffix.
- **content** (required) — the post body as HTML. Use semantic elements
  (` + "`<h2>`" + `, ` + "`<p>`" + `, ` + "`<ul>`" + `, ` + "`<blockquote>`" + `, ` + "`<pre><code>`" + `). Do not include the
  title as a heading; the frontend renders it separately.
- **excerpt** (required) — one or two plain-text sentences for listing pages
  and search results. No HTML.
- **tags** (optional) — comma-separated, lowercase, kebab-case
  (e.g. ` + "`side-projects, golang`" + `). Reuse existing tags from the
  ` + "`list_tags`" + ` tool before inventing new ones; tag comparison is
  case-insensitive.

## Rules

1. Drafts stay unpublished. Never claim a post is live; the admin reviews and
   publishes from the web interface.
2. Reference images with absolute paths (` + "`/uploads/filename.png`" + `) or full
   external URLs registered through the admin API.
3. Check ` + "`search_posts`" + ` for overlapping content before drafting something new.
4. Encoding is UTF-8. Keep paragraphs short.

## Example

` + "```" + `json
{
  "title": "Shipping my first side project",
  "content": "<p>Last weekend I finally shipped...</p><h2>What went wrong</h2><p>...</p>",
  "excerpt": "Notes from shipping a side project in one weekend.",
  "tags": "side-projects, golang"
}
` + "```" + `
`
