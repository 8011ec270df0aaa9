package fptree

import (
	"fmt"
	"os"

	"fpminer/catalog"

	"github.com/awalterschulze/gographviz"
	"github.com/xlab/treeprint"
)

// LabelFunc 把项转成展示用的名字
type LabelFunc func(item catalog.Item) string

func defaultLabel(item catalog.Item) string {
	return fmt.Sprintf("%d", item)
}

// Dot 把树转成graphviz格式, 同项链用虚线画出来
func (t *Tree) Dot(label LabelFunc) (string, error) {
	if label == nil {
		label = defaultLabel
	}
	graphAst, _ := gographviz.Parse([]byte(`digraph G{}`))
	graph := gographviz.NewGraph()
	if err := gographviz.Analyse(graphAst, graph); err != nil {
		return "", err
	}

	for i := range t.nodes {
		name := fmt.Sprintf("n%d", i)
		text := "root"
		if i != int(RootId) {
			text = fmt.Sprintf("%s:%d", label(t.nodes[i].item), t.nodes[i].count)
		}
		if err := graph.AddNode("G", name, map[string]string{"label": fmt.Sprintf("%q", text)}); err != nil {
			return "", err
		}
	}
	for i := range t.nodes {
		for _, child := range t.nodes[i].children {
			if err := graph.AddEdge(fmt.Sprintf("n%d", i), fmt.Sprintf("n%d", child), true, nil); err != nil {
				return "", err
			}
		}
		if next := t.nodes[i].next; next != NilId {
			attrs := map[string]string{"style": "dashed", "constraint": "false"}
			if err := graph.AddEdge(fmt.Sprintf("n%d", i), fmt.Sprintf("n%d", next), true, attrs); err != nil {
				return "", err
			}
		}
	}
	return graph.String(), nil
}

// ToGraph 写dot文件
func (t *Tree) ToGraph(outPath string, label LabelFunc) error {
	dot, err := t.Dot(label)
	if err != nil {
		return err
	}
	return os.WriteFile(outPath, []byte(dot), 0644)
}

// Print 文本形式展示树结构
func (t *Tree) Print(label LabelFunc) string {
	if label == nil {
		label = defaultLabel
	}
	root := treeprint.NewWithRoot("root")
	t.printChildren(root, RootId, label)
	return root.String()
}

func (t *Tree) printChildren(branch treeprint.Tree, id NodeId, label LabelFunc) {
	for _, child := range t.nodes[id].children {
		node := &t.nodes[child]
		text := fmt.Sprintf("%s:%d", label(node.item), node.count)
		if len(node.children) == 0 {
			branch.AddNode(text)
			continue
		}
		t.printChildren(branch.AddBranch(text), child, label)
	}
}

func (t *Tree) String() string {
	return t.Print(nil)
}
