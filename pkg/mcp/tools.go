package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/WispAyr/signage-designer/pkg/designer"
	"github.com/WispAyr/signage-designer/pkg/sign"
	"github.com/WispAyr/signage-designer/pkg/store"
)

// toolDefinition pairs a tool's advertised schema with its handler.
type toolDefinition struct {
	Tool
	Handler func(ctx context.Context, args json.RawMessage) (any, error)
}

// decodeArgs unmarshals tool arguments into v. Absent arguments decode as
// the zero value.
func decodeArgs(args json.RawMessage, v any) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// wrapStoreErr rewords store lookup failures for tool callers.
func wrapStoreErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return errors.New("Sign not found")
	}
	return err
}

func (s *Server) toolDefinitions() []toolDefinition {
	signTypeNames := make([]any, 0, len(sign.Types()))
	for _, t := range sign.Types() {
		signTypeNames = append(signTypeNames, t.String())
	}

	metadataSchema := map[string]any{
		"type":        "object",
		"description": "Operator metadata substituted into the template",
		"properties": map[string]any{
			"siteName":          map[string]any{"type": "string"},
			"companyName":       map[string]any{"type": "string"},
			"companyNumber":     map[string]any{"type": "string"},
			"helplineNumber":    map[string]any{"type": "string"},
			"parkingCharge":     map[string]any{"type": "integer"},
			"reducedCharge":     map[string]any{"type": "integer"},
			"paymentPeriodDays": map[string]any{"type": "integer"},
			"reducedPeriodDays": map[string]any{"type": "integer"},
			"hasAnpr":           map[string]any{"type": "boolean"},
			"website":           map[string]any{"type": "string"},
		},
	}

	return []toolDefinition{
		{
			Tool: Tool{
				Name:        "check_compliance",
				Description: "Evaluate a sign against the BPA Code of Practice rulebook. Pass a stored sign reference or an inline sign document.",
				InputSchema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"reference": map[string]any{
							"type":        "string",
							"description": "Reference of a stored sign, e.g. KRS-ENT-001-v1",
						},
						"sign": map[string]any{
							"type":        "object",
							"description": "Inline sign document to evaluate instead of a stored one",
						},
					},
				},
			},
			Handler: s.toolCheckCompliance,
		},
		{
			Tool: Tool{
				Name:        "create_sign",
				Description: "Create a sign from a template. Allocates the next reference for the site and stores version 1.",
				InputSchema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"site": map[string]any{
							"type":        "string",
							"description": "Short site code, e.g. KRS",
						},
						"templateId": map[string]any{
							"type":        "string",
							"description": "Template to instantiate; omit to use the default for the sign type",
						},
						"type": map[string]any{
							"type": "string",
							"enum": signTypeNames,
						},
						"metadata": metadataSchema,
					},
					"required": []any{"site"},
				},
			},
			Handler: s.toolCreateSign,
		},
		{
			Tool: Tool{
				Name:        "revise_sign",
				Description: "Re-instantiate a stored sign with new metadata as the next version of the same reference lineage.",
				InputSchema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"reference": map[string]any{"type": "string"},
						"metadata":  metadataSchema,
					},
					"required": []any{"reference"},
				},
			},
			Handler: s.toolReviseSign,
		},
		{
			Tool: Tool{
				Name:        "get_sign",
				Description: "Fetch a stored sign by reference.",
				InputSchema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"reference": map[string]any{"type": "string"},
					},
					"required": []any{"reference"},
				},
			},
			Handler: s.toolGetSign,
		},
		{
			Tool: Tool{
				Name:        "list_signs",
				Description: "List every stored sign.",
				InputSchema: map[string]any{
					"type":       "object",
					"properties": map[string]any{},
				},
			},
			Handler: s.toolListSigns,
		},
		{
			Tool: Tool{
				Name:        "delete_sign",
				Description: "Delete a stored sign by reference.",
				InputSchema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"reference": map[string]any{"type": "string"},
					},
					"required": []any{"reference"},
				},
			},
			Handler: s.toolDeleteSign,
		},
		{
			Tool: Tool{
				Name:        "list_templates",
				Description: "List the available sign templates.",
				InputSchema: map[string]any{
					"type":       "object",
					"properties": map[string]any{},
				},
			},
			Handler: s.toolListTemplates,
		},
		{
			Tool: Tool{
				Name:        "make_reference",
				Description: "Build a sign reference from site, sign type, sequence and version without storing anything.",
				InputSchema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"site": map[string]any{"type": "string"},
						"type": map[string]any{
							"type": "string",
							"enum": signTypeNames,
						},
						"sequence": map[string]any{"type": "integer"},
						"version":  map[string]any{"type": "integer"},
					},
					"required": []any{"site", "type", "sequence", "version"},
				},
			},
			Handler: s.toolMakeReference,
		},
	}
}

func (s *Server) toolCheckCompliance(ctx context.Context, args json.RawMessage) (any, error) {
	var in struct {
		Reference string     `json:"reference"`
		Sign      *sign.Sign `json:"sign"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}

	switch {
	case in.Reference != "":
		report, err := s.service.CheckCompliance(ctx, in.Reference)
		if err != nil {
			return nil, wrapStoreErr(err)
		}
		return report, nil
	case in.Sign != nil:
		if !in.Sign.Type.IsValid() {
			return nil, fmt.Errorf("unknown sign type %q", in.Sign.Type)
		}
		return s.service.CheckSign(in.Sign), nil
	default:
		return nil, errors.New("either reference or sign is required")
	}
}

func (s *Server) toolCreateSign(ctx context.Context, args json.RawMessage) (any, error) {
	var req designer.CreateSignRequest
	if err := decodeArgs(args, &req); err != nil {
		return nil, err
	}
	return s.service.CreateSign(ctx, req)
}

func (s *Server) toolReviseSign(ctx context.Context, args json.RawMessage) (any, error) {
	var in struct {
		Reference string        `json:"reference"`
		Metadata  sign.Metadata `json:"metadata"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	revised, err := s.service.ReviseSign(ctx, in.Reference, in.Metadata)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return revised, nil
}

func (s *Server) toolGetSign(ctx context.Context, args json.RawMessage) (any, error) {
	var in struct {
		Reference string `json:"reference"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	found, err := s.service.GetSign(ctx, in.Reference)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return found, nil
}

func (s *Server) toolListSigns(ctx context.Context, args json.RawMessage) (any, error) {
	signs, err := s.service.ListSigns(ctx)
	if err != nil {
		return nil, err
	}
	if signs == nil {
		signs = []*sign.Sign{}
	}
	return signs, nil
}

func (s *Server) toolDeleteSign(ctx context.Context, args json.RawMessage) (any, error) {
	var in struct {
		Reference string `json:"reference"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	if err := s.service.DeleteSign(ctx, in.Reference); err != nil {
		return nil, wrapStoreErr(err)
	}
	return map[string]any{"deleted": in.Reference}, nil
}

func (s *Server) toolListTemplates(ctx context.Context, args json.RawMessage) (any, error) {
	return s.service.Templates(), nil
}

func (s *Server) toolMakeReference(ctx context.Context, args json.RawMessage) (any, error) {
	var in struct {
		Site     string    `json:"site"`
		Type     sign.Type `json:"type"`
		Sequence int       `json:"sequence"`
		Version  int       `json:"version"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	if in.Site == "" {
		return nil, errors.New("site is required")
	}
	if in.Sequence < 1 || in.Version < 1 {
		return nil, errors.New("sequence and version must be at least 1")
	}
	return map[string]any{
		"reference": sign.MakeReference(in.Site, in.Type, in.Sequence, in.Version),
	}, nil
}
