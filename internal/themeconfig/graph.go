package themeconfig

import (
	"fmt"

	"bennypowers.dev/csstheme/internal/parser/css"
)

// dependencyGraph is the directed graph of var() references between the
// variables of one theme
type dependencyGraph struct {
	// variable names in definition order
	nodes []string
	// adjacency list: variable -> variables it references
	dependencies map[string][]string
}

// buildDependencyGraph links every value to the configured variables it references
func buildDependencyGraph(names []string, values map[string]string) *dependencyGraph {
	g := &dependencyGraph{
		nodes:        names,
		dependencies: make(map[string][]string),
	}
	for _, name := range names {
		for _, call := range css.FindVarCalls(values[name]) {
			if _, ok := values[call.Name]; ok {
				g.dependencies[name] = append(g.dependencies[name], call.Name)
			}
		}
	}
	return g
}

// findCycle returns the cycle path if one exists, or nil if no cycle
func (g *dependencyGraph) findCycle() []string {
	visited := make(map[string]bool)
	recStack := make(map[string]bool)

	for _, node := range g.nodes {
		if cycle := g.findCycleDFS(node, visited, recStack, nil); cycle != nil {
			return cycle
		}
	}
	return nil
}

func (g *dependencyGraph) findCycleDFS(node string, visited, recStack map[string]bool, path []string) []string {
	if recStack[node] {
		// node is on the path because it was appended when recStack was set
		for i, n := range path {
			if n == node {
				return append(path[i:], node)
			}
		}
		panic(fmt.Sprintf("cycle detection invariant violated: %q in recStack but not in path %v", node, path))
	}
	if visited[node] {
		return nil
	}

	visited[node] = true
	recStack[node] = true
	path = append(path, node)

	for _, dep := range g.dependencies[node] {
		if cycle := g.findCycleDFS(dep, visited, recStack, path); cycle != nil {
			return cycle
		}
	}

	recStack[node] = false
	return nil
}

// topologicalSort returns the variables with dependencies first
func (g *dependencyGraph) topologicalSort(theme string) ([]string, error) {
	if cycle := g.findCycle(); cycle != nil {
		return nil, NewCircularReferenceError(theme, cycle)
	}

	visited := make(map[string]bool)
	result := make([]string, 0, len(g.nodes))
	for _, node := range g.nodes {
		if !visited[node] {
			g.topologicalSortDFS(node, visited, &result)
		}
	}
	return result, nil
}

func (g *dependencyGraph) topologicalSortDFS(node string, visited map[string]bool, stack *[]string) {
	visited[node] = true
	for _, dep := range g.dependencies[node] {
		if !visited[dep] {
			g.topologicalSortDFS(dep, visited, stack)
		}
	}
	*stack = append(*stack, node)
}
