package vdom

import (
	"fmt"
)

// PatchOp represents the type of patch operation
type PatchOp uint8

const (
	// OpReplaceText replaces text node content
	OpReplaceText PatchOp = 0x01
	// OpSetAttribute sets or replaces an attribute
	OpSetAttribute PatchOp = 0x02
	// OpRemoveNode removes a node
	OpRemoveNode PatchOp = 0x03
	// OpInsertNode inserts a new node
	OpInsertNode PatchOp = 0x04
	// OpUpdateEvents updates event subscriptions
	OpUpdateEvents PatchOp = 0x05
	// OpRemoveAttribute removes an attribute
	OpRemoveAttribute PatchOp = 0x06
	// OpMoveNode moves a node to a new position
	OpMoveNode PatchOp = 0x07
)

// Patch represents a single DOM mutation
type Patch struct {
	Op        PatchOp
	NodeID    uint32
	ParentID  uint32 // For insert/move operations
	BeforeID  uint32 // For move operations (0 means append)
	Key       string // Attribute key for set/remove attribute
	Value     string // Text content or attribute value
	Node      *VNode // For insert operations
	EventBits uint32 // For event updates
}

// String returns a human-readable representation of the patch
func (p Patch) String() string {
	switch p.Op {
	case OpReplaceText:
		return fmt.Sprintf("ReplaceText(node=%d, text=%q)", p.NodeID, p.Value)
	case OpSetAttribute:
		return fmt.Sprintf("SetAttribute(node=%d, key=%q, value=%q)", p.NodeID, p.Key, p.Value)
	case OpRemoveAttribute:
		return fmt.Sprintf("RemoveAttribute(node=%d, key=%q)", p.NodeID, p.Key)
	case OpRemoveNode:
		return fmt.Sprintf("RemoveNode(node=%d)", p.NodeID)
	case OpInsertNode:
		return fmt.Sprintf("InsertNode(parent=%d, before=%d)", p.ParentID, p.BeforeID)
	case OpUpdateEvents:
		return fmt.Sprintf("UpdateEvents(node=%d, bits=%x)", p.NodeID, p.EventBits)
	case OpMoveNode:
		return fmt.Sprintf("MoveNode(node=%d, parent=%d, before=%d)", p.NodeID, p.ParentID, p.BeforeID)
	default:
		return fmt.Sprintf("Unknown(op=%d)", p.Op)
	}
}

// diffContext holds state during diffing
type diffContext struct {
	patches     []Patch
	nodeCounter uint32
	nodeMap     map[*VNode]uint32
}

// nodeID gets or assigns a node ID
func (ctx *diffContext) nodeID(node *VNode) uint32 {
	if node == nil {
		return 0
	}
	if id, ok := ctx.nodeMap[node]; ok {
		return id
	}
	id := ctx.nodeCounter
	ctx.nodeCounter++
	ctx.nodeMap[node] = id
	return id
}

func (ctx *diffContext) add(p Patch) {
	ctx.patches = append(ctx.patches, p)
}

// Diff computes the patches needed to transform prev into next.
// The result is never nil; an empty slice means the trees render the same.
func Diff(prev, next *VNode) []Patch {
	ctx := &diffContext{
		patches:     make([]Patch, 0, 16),
		nodeCounter: 1,
		nodeMap:     make(map[*VNode]uint32),
	}
	diffNode(ctx, prev, next, 0)
	return ctx.patches
}

func diffNode(ctx *diffContext, prev, next *VNode, parentID uint32) {
	switch {
	case prev == nil && next == nil:
		return
	case next == nil:
		ctx.add(Patch{Op: OpRemoveNode, NodeID: ctx.nodeID(prev)})
		return
	case prev == nil:
		ctx.add(Patch{Op: OpInsertNode, NodeID: ctx.nodeID(next), ParentID: parentID, Node: next})
		return
	}

	// Different node types - replace
	if prev.Kind != next.Kind || (prev.Kind == KindElement && prev.Tag != next.Tag) {
		ctx.add(Patch{Op: OpRemoveNode, NodeID: ctx.nodeID(prev)})
		ctx.add(Patch{Op: OpInsertNode, NodeID: ctx.nodeID(next), ParentID: parentID, Node: next})
		return
	}

	id := ctx.nodeID(prev)
	ctx.nodeMap[next] = id

	switch prev.Kind {
	case KindText:
		if prev.Text != next.Text {
			ctx.add(Patch{Op: OpReplaceText, NodeID: id, Value: next.Text})
		}
	case KindElement:
		diffProps(ctx, id, prev.Props, next.Props)
		diffChildren(ctx, id, prev.Kids, next.Kids)
	case KindFragment:
		diffChildren(ctx, id, prev.Kids, next.Kids)
	}
}

// diffProps diffs attributes. Handlers are compared by presence only since
// closures are recreated on every render.
func diffProps(ctx *diffContext, nodeID uint32, prevProps, nextProps Props) {
	var prevEvents, nextEvents uint32

	for key, prevVal := range prevProps {
		if key == "key" || key == "ref" {
			continue
		}
		if isEventProp(key) {
			prevEvents |= eventBit(key)
			continue
		}
		nextVal, exists := nextProps[key]
		if !exists {
			ctx.add(Patch{Op: OpRemoveAttribute, NodeID: nodeID, Key: key})
		} else if propToString(prevVal) != propToString(nextVal) {
			ctx.add(Patch{Op: OpSetAttribute, NodeID: nodeID, Key: key, Value: propToString(nextVal)})
		}
	}

	for key, nextVal := range nextProps {
		if key == "key" || key == "ref" {
			continue
		}
		if isEventProp(key) {
			nextEvents |= eventBit(key)
			continue
		}
		if _, exists := prevProps[key]; !exists {
			ctx.add(Patch{Op: OpSetAttribute, NodeID: nodeID, Key: key, Value: propToString(nextVal)})
		}
	}

	if prevEvents != nextEvents {
		ctx.add(Patch{Op: OpUpdateEvents, NodeID: nodeID, EventBits: nextEvents})
	}
}

// diffChildren diffs child nodes with keyed and unkeyed reconciliation
func diffChildren(ctx *diffContext, parentID uint32, prevKids, nextKids []VNode) {
	if len(prevKids) == 0 && len(nextKids) == 0 {
		return
	}

	for i := range nextKids {
		if nextKids[i].GetKey() != "" {
			diffKeyedChildren(ctx, parentID, prevKids, nextKids)
			return
		}
	}

	common := min(len(prevKids), len(nextKids))
	for i := 0; i < common; i++ {
		diffNode(ctx, &prevKids[i], &nextKids[i], parentID)
	}
	for i := common; i < len(prevKids); i++ {
		diffNode(ctx, &prevKids[i], nil, parentID)
	}
	for i := common; i < len(nextKids); i++ {
		diffNode(ctx, nil, &nextKids[i], parentID)
	}
}

// diffKeyedChildren matches children by key and emits moves for the ones
// whose position changed.
func diffKeyedChildren(ctx *diffContext, parentID uint32, prevKids, nextKids []VNode) {
	prevKeyed := make(map[string]int, len(prevKids))
	for i := range prevKids {
		if key := prevKids[i].GetKey(); key != "" {
			prevKeyed[key] = i
		}
	}

	matched := make([]bool, len(prevKids))
	type move struct {
		nodeID   uint32
		newIndex int
	}
	var moves []move

	for nextIdx := range nextKids {
		next := &nextKids[nextIdx]
		key := next.GetKey()

		if key == "" {
			if nextIdx < len(prevKids) && prevKids[nextIdx].GetKey() == "" && !matched[nextIdx] {
				matched[nextIdx] = true
				diffNode(ctx, &prevKids[nextIdx], next, parentID)
			} else {
				diffNode(ctx, nil, next, parentID)
			}
			continue
		}

		prevIdx, found := prevKeyed[key]
		if !found || matched[prevIdx] {
			diffNode(ctx, nil, next, parentID)
			continue
		}
		matched[prevIdx] = true
		id := ctx.nodeID(&prevKids[prevIdx])
		diffNode(ctx, &prevKids[prevIdx], next, parentID)
		if prevIdx != nextIdx {
			moves = append(moves, move{id, nextIdx})
		}
	}

	for i, ok := range matched {
		if !ok {
			diffNode(ctx, &prevKids[i], nil, parentID)
		}
	}

	for _, m := range moves {
		var beforeID uint32
		if m.newIndex+1 < len(nextKids) {
			beforeID = ctx.nodeID(&nextKids[m.newIndex+1])
		}
		ctx.add(Patch{Op: OpMoveNode, NodeID: m.nodeID, ParentID: parentID, BeforeID: beforeID})
	}
}

func isEventProp(key string) bool {
	return len(key) > 2 && key[0] == 'o' && key[1] == 'n'
}

// eventBit maps the handlers the carousel and its chrome attach
func eventBit(eventName string) uint32 {
	switch eventName {
	case "onClick", "onclick":
		return 1 << 0
	case "onMouseDown", "onmousedown":
		return 1 << 1
	case "onMouseMove", "onmousemove":
		return 1 << 2
	case "onMouseUp", "onmouseup":
		return 1 << 3
	case "onTouchStart", "ontouchstart":
		return 1 << 4
	case "onTouchMove", "ontouchmove":
		return 1 << 5
	case "onTouchEnd", "ontouchend":
		return 1 << 6
	case "onKeyDown", "onkeydown":
		return 1 << 7
	default:
		return 1 << 31
	}
}

func propToString(v any) string {
	return fmt.Sprintf("%v", v)
}
