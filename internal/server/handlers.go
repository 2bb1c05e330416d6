package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/png"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/mj1618/desktop-tree/internal/model"
	"github.com/mj1618/desktop-tree/internal/output"
	"github.com/mj1618/desktop-tree/internal/platform"
)

func (s *Server) handleSnapshot(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	app := stringParam(params, "app", "")
	text := stringParam(params, "text", "")
	format, err := output.ParseFormat(stringParam(params, "format", string(output.FormatYAML)))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, err := s.tree.SnapshotWithReport()
	if err != nil {
		s.logger.Error("snapshot failed", zap.Error(err))
		return mcp.NewToolResultError(err.Error()), nil
	}

	state := report.State
	if app != "" {
		state = model.FilterByApp(state, []string{app})
	}
	state = model.FilterByText(state, text)

	result := output.NewSnapshotResult(state, report.Apps, len(report.Failures))
	var v interface{} = result
	if boolParam(params, "flat", false) {
		v = result.Flat()
	}
	var b bytes.Buffer
	if err := output.Fprint(&b, format, v); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleWindows(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	windows, err := s.tree.Windows()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var b bytes.Buffer
	if err := output.WriteYAML(&b, output.WindowsResult{Windows: windows}); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleAnnotatedScreenshot(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	scale := floatParam(params, "scale", s.scale)
	app := stringParam(params, "app", "")
	maxNodes := intParam(params, "max-nodes", 0)
	if scale <= 0 || scale > 1 {
		return mcp.NewToolResultError(fmt.Sprintf("scale must be in (0, 1], got %v", scale)), nil
	}
	var region *model.BoundingBox
	if r := stringParam(params, "region", ""); r != "" {
		var err error
		if region, err = platform.ParseRegion(r); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	report, err := s.tree.SnapshotWithReport()
	if err != nil {
		s.logger.Error("snapshot failed", zap.Error(err))
		return mcp.NewToolResultError(err.Error()), nil
	}
	nodes := report.State.Interactive
	if app != "" {
		nodes = model.FilterByApp(model.TreeState{Interactive: nodes}, []string{app}).Interactive
	}
	nodes = model.FilterInteractiveByRegion(nodes, region)
	nodes = model.LimitInteractive(nodes, maxNodes)

	img, err := s.tree.AnnotatedScreenshot(nodes, scale)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode screenshot: %v", err)), nil
	}

	legend := strings.Join(model.InteractiveLines(nodes), "\n")
	return mcp.NewToolResultImage(legend, base64.StdEncoding.EncodeToString(buf.Bytes()), "image/png"), nil
}
