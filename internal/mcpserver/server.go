// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the site's content to LLM clients via stdio transport. All
// tools are read only: content lives in files and changes on disk.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kakeru/folio/internal/content"
)

// Server wraps the MCP server with the content tools.
type Server struct {
	mcp   *server.MCPServer
	store *content.Store
}

// New creates a new MCP server with all tools registered.
func New(store *content.Store) *Server {
	s := &Server{store: store}

	s.mcp = server.NewMCPServer(
		"Folio",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_posts",
		mcp.WithDescription("List blog posts, newest first. Each line is '<slug>\t<date>\t<english title>'."),
		mcp.WithString("category", mcp.Description("Optional category label to filter by")),
	), s.listPosts)

	s.mcp.AddTool(mcp.NewTool("read_post",
		mcp.WithDescription("Read a blog post as JSON, including every translation."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Post slug (e.g. git-command-notes)")),
	), s.readPost)

	s.mcp.AddTool(mcp.NewTool("list_projects",
		mcp.WithDescription("List projects, newest year first. Each line is '<slug>\t<year>\t<english title>'."),
	), s.listProjects)

	s.mcp.AddTool(mcp.NewTool("read_project",
		mcp.WithDescription("Read a project as JSON, including every translation."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Project slug")),
	), s.readProject)

	// Resource: site content overview.
	s.mcp.AddResource(
		mcp.NewResource("folio://overview", "Site Content Overview",
			mcp.WithResourceDescription("Counts and slugs of everything the content store holds."),
			mcp.WithMIMEType("application/json"),
		),
		s.readOverviewResource,
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
	category := ""
	if c, err := req.RequireString("category"); err == nil {
		category = c
	}

	posts := s.store.AllPosts()
	if category != "" {
		posts = s.store.PostsByCategory(category)
	}
	if len(posts) == 0 {
		return mcp.NewToolResultText("no posts found"), nil
	}

	var lines []string
	for _, p := range posts {
		lines = append(lines, fmt.Sprintf("%s\t%s\t%s", p.ID, p.Date, p.Title.EN))
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) readPost(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	post, err := s.store.PostByID(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	out, _ := json.MarshalIndent(post, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listProjects(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projects := s.store.AllProjects()
	if len(projects) == 0 {
		return mcp.NewToolResultText("no projects found"), nil
	}

	var lines []string
	for _, p := range projects {
		lines = append(lines, fmt.Sprintf("%s\t%s\t%s", p.ID, p.Year, p.Title.EN))
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) readProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	project, err := s.store.ProjectByID(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	out, _ := json.MarshalIndent(project, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readOverviewResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	posts := s.store.AllPosts()
	projects := s.store.AllProjects()

	postIDs := make([]string, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
	}
	projectIDs := make([]string, 0, len(projects))
	for _, p := range projects {
		projectIDs = append(projectIDs, p.ID)
	}

	overview, _ := json.MarshalIndent(map[string]any{
		"posts":       postIDs,
		"projects":    projectIDs,
		"categories":  s.store.Categories(),
		"fingerprint": s.store.Fingerprint(),
	}, "", "  ")

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "folio://overview",
			MIMEType: "application/json",
			Text:     string(overview),
		},
	}, nil
}
