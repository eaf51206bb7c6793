// Package catalog implements the service-option tree attached to an
// offering: creation, removal, path-addressed lookup and update, flattening
// to a path-keyed map, and validation of client answers.
//
// Trees are stored as an arena of nodes with child-ID lists; paths are the
// dot-joined node names from root to node, so node names must not contain
// the separator.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"bookable/models"
	"bookable/utils"
)

// PathSeparator joins node names into a path.
const PathSeparator = "."

// CreateNode adds a node under parentPath (empty for a new root) and
// returns its ID. Fails with conflict when a sibling already has the name.
func CreateNode(t *models.OptionTree, parentPath string, node models.OptionNode) (int, error) {
	if err := validateNode(node); err != nil {
		return 0, err
	}

	siblings := t.Roots
	parentID := -1
	if parentPath != "" {
		id, ok := resolve(t, parentPath)
		if !ok {
			return 0, utils.NotFound(fmt.Sprintf("option path %q does not exist", parentPath))
		}
		parentID = id
		siblings = nodeByID(t, id).Children
	}

	for _, sid := range siblings {
		if nodeByID(t, sid).Name == node.Name {
			return 0, utils.Conflict(fmt.Sprintf("an option named %q already exists at this level", node.Name))
		}
	}

	node.ID = t.NextID
	node.Children = nil
	t.NextID++
	t.Nodes = append(t.Nodes, node)

	if parentID < 0 {
		t.Roots = append(t.Roots, node.ID)
	} else {
		p := nodeByID(t, parentID)
		p.Children = append(p.Children, node.ID)
	}
	return node.ID, nil
}

// RemoveNode deletes the node at path and its whole subtree. Removing a
// path that does not exist is a no-op.
func RemoveNode(t *models.OptionTree, path string) {
	id, ok := resolve(t, path)
	if !ok {
		return
	}

	doomed := map[int]bool{}
	collect(t, id, doomed)

	if parent := parentOf(t, id); parent != nil {
		parent.Children = removeID(parent.Children, id)
	} else {
		t.Roots = removeID(t.Roots, id)
	}

	kept := t.Nodes[:0]
	for _, n := range t.Nodes {
		if !doomed[n.ID] {
			kept = append(kept, n)
		}
	}
	t.Nodes = kept
}

// FindNode returns the node at path.
func FindNode(t *models.OptionTree, path string) (*models.OptionNode, bool) {
	id, ok := resolve(t, path)
	if !ok {
		return nil, false
	}
	return nodeByID(t, id), true
}

// UpdateNode replaces a node's non-structural fields, leaving its name,
// children and path untouched.
func UpdateNode(t *models.OptionTree, path string, fields models.FlatNode) error {
	if err := validateFields(fields); err != nil {
		return err
	}
	node, ok := FindNode(t, path)
	if !ok {
		return utils.NotFound(fmt.Sprintf("option path %q does not exist", path))
	}
	node.Description = fields.Description
	node.AddedTime = fields.AddedTime
	node.Price = fields.Price
	node.IsRequired = fields.IsRequired
	node.ChargeType = fields.ChargeType
	node.QuestionType = fields.QuestionType
	node.MinSelection = fields.MinSelection
	return nil
}

// Flatten produces one entry per node keyed by its full dot-joined path.
func Flatten(t *models.OptionTree) map[string]models.FlatNode {
	flat := make(map[string]models.FlatNode, len(t.Nodes))
	var recurse func(id int, prefix string)
	recurse = func(id int, prefix string) {
		n := nodeByID(t, id)
		if n == nil {
			return
		}
		path := n.Name
		if prefix != "" {
			path = prefix + PathSeparator + n.Name
		}
		flat[path] = n.Flat()
		for _, cid := range n.Children {
			recurse(cid, path)
		}
	}
	for _, rid := range t.Roots {
		recurse(rid, "")
	}
	return flat
}

// Unflatten reconstructs a tree from a flattened map. Ancestors missing
// from the map are an error: flatten always emits every node, so a valid
// map is prefix-closed.
func Unflatten(flat map[string]models.FlatNode) (*models.OptionTree, error) {
	paths := make([]string, 0, len(flat))
	for p := range flat {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	t := &models.OptionTree{}
	for _, path := range paths {
		segments := strings.Split(path, PathSeparator)
		parent := ""
		if len(segments) > 1 {
			parent = strings.Join(segments[:len(segments)-1], PathSeparator)
			if _, ok := flat[parent]; !ok {
				return nil, utils.InvalidInput(fmt.Sprintf("flattened tree is missing ancestor %q", parent))
			}
		}
		node := models.OptionNode{Name: segments[len(segments)-1]}
		applyFields(&node, flat[path])
		if _, err := CreateNode(t, parent, node); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func applyFields(n *models.OptionNode, f models.FlatNode) {
	n.Description = f.Description
	n.AddedTime = f.AddedTime
	n.Price = f.Price
	n.IsRequired = f.IsRequired
	n.ChargeType = f.ChargeType
	n.QuestionType = f.QuestionType
	n.MinSelection = f.MinSelection
}

func validateNode(n models.OptionNode) error {
	if n.Name == "" {
		return utils.InvalidInput("option name must be provided")
	}
	if strings.Contains(n.Name, PathSeparator) {
		return utils.InvalidInput(fmt.Sprintf("option name %q must not contain %q", n.Name, PathSeparator))
	}
	return validateFields(n.Flat())
}

func validateFields(f models.FlatNode) error {
	if f.Price < 0 {
		return utils.InvalidInput("option price must be a non-negative integer of cents")
	}
	if f.ChargeType != "" && !models.IsValidChargeType(f.ChargeType) {
		return utils.InvalidInput(fmt.Sprintf("charge type %q is invalid", f.ChargeType))
	}
	if f.QuestionType != "" && !models.IsValidQuestionType(f.QuestionType) {
		return utils.InvalidInput(fmt.Sprintf("question type %q is invalid", f.QuestionType))
	}
	return nil
}

func nodeByID(t *models.OptionTree, id int) *models.OptionNode {
	for i := range t.Nodes {
		if t.Nodes[i].ID == id {
			return &t.Nodes[i]
		}
	}
	return nil
}

// resolve walks the path one level at a time, matching names among the
// current level's children.
func resolve(t *models.OptionTree, path string) (int, bool) {
	segments := strings.Split(path, PathSeparator)
	level := t.Roots
	id := -1
	for _, name := range segments {
		found := false
		for _, cid := range level {
			if n := nodeByID(t, cid); n != nil && n.Name == name {
				id = cid
				level = n.Children
				found = true
				break
			}
		}
		if !found {
			return 0, false
		}
	}
	return id, true
}

func parentOf(t *models.OptionTree, id int) *models.OptionNode {
	for i := range t.Nodes {
		for _, cid := range t.Nodes[i].Children {
			if cid == id {
				return &t.Nodes[i]
			}
		}
	}
	return nil
}

func collect(t *models.OptionTree, id int, into map[int]bool) {
	into[id] = true
	if n := nodeByID(t, id); n != nil {
		for _, cid := range n.Children {
			collect(t, cid, into)
		}
	}
}

func removeID(ids []int, id int) []int {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
