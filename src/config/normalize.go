package config

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// ReservedPrefix marks keys written in the Ruby-symbol style (":project_id").
const ReservedPrefix = ":"

// Normalize returns a copy of node in which every mapping key has the
// reserved prefix removed, at any depth and inside sequences. Scalars and key
// order are preserved. Anchors shared through aliases stay shared.
func Normalize(node *yaml.Node) *yaml.Node {
	return normalize(node, map[*yaml.Node]*yaml.Node{})
}

func normalize(node *yaml.Node, seen map[*yaml.Node]*yaml.Node) *yaml.Node {
	if node == nil {
		return nil
	}

	if out, ok := seen[node]; ok {
		return out
	}

	out := *node
	seen[node] = &out

	out.Alias = normalize(node.Alias, seen)

	if len(node.Content) == 0 {
		return &out
	}

	out.Content = make([]*yaml.Node, len(node.Content))

	for i, child := range node.Content {
		isKey := node.Kind == yaml.MappingNode && i%2 == 0
		if isKey && child.Kind == yaml.ScalarNode {
			key := *child
			key.Value = stripPrefix(child.Value)
			out.Content[i] = &key

			continue
		}

		out.Content[i] = normalize(child, seen)
	}

	return &out
}

func stripPrefix(key string) string {
	return strings.TrimLeft(key, ReservedPrefix)
}
