package wu

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/versiondb-watch/internal/domain"
)

var ErrUnexpectedLayout = errors.New("unexpected update response layout")

// node is a minimal element tree. The response has to be walked upwards from
// each SecuredFragment, which encoding/xml struct decoding cannot express.
type node struct {
	name     string
	attrs    []xml.Attr
	parent   *node
	children []*node
	text     strings.Builder
}

func parseTree(body string) (*node, error) {
	decoder := xml.NewDecoder(strings.NewReader(body))
	root := &node{}
	current := root

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			child := &node{name: t.Name.Local, attrs: t.Attr, parent: current}
			current.children = append(current.children, child)
			current = child
		case xml.EndElement:
			current = current.parent
		case xml.CharData:
			current.text.Write(t)
		}
	}

	if len(root.children) == 0 {
		return nil, fmt.Errorf("parse xml: no root element")
	}

	return root, nil
}

func (n *node) attr(local string) (string, bool) {
	for _, a := range n.attrs {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

func (n *node) firstChild() *node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

// descendants returns every element named local below n in document order.
func (n *node) descendants(local string) []*node {
	var found []*node
	var walk func(*node)
	walk = func(cur *node) {
		for _, child := range cur.children {
			if child.name == local {
				found = append(found, child)
			}
			walk(child)
		}
	}
	walk(n)
	return found
}

func (n *node) firstDescendant(local string) *node {
	if found := n.descendants(local); len(found) > 0 {
		return found[0]
	}
	return nil
}

// ExtractCookie returns the text of the first EncryptedData element of a
// GetCookie response.
func ExtractCookie(body []byte) (string, error) {
	root, err := parseTree(string(body))
	if err != nil {
		return "", err
	}

	encrypted := root.firstDescendant("EncryptedData")
	if encrypted == nil {
		return "", fmt.Errorf("%w: no EncryptedData element", ErrUnexpectedLayout)
	}

	token := strings.TrimSpace(encrypted.text.String())
	if token == "" {
		return "", fmt.Errorf("%w: empty EncryptedData element", ErrUnexpectedLayout)
	}

	return token, nil
}

// ParseUpdateRecords extracts one record per SecuredFragment, in document
// order. The fragment's grandparent is the update XML: its first child holds
// the UpdateID, its AppxMetadata the moniker, and the first child of its
// parent the internal id.
func ParseUpdateRecords(body string) ([]domain.UpdateRecord, error) {
	root, err := parseTree(body)
	if err != nil {
		return nil, err
	}

	fragments := root.descendants("SecuredFragment")
	records := make([]domain.UpdateRecord, 0, len(fragments))
	for i, fragment := range fragments {
		record, err := recordFromFragment(fragment)
		if err != nil {
			return nil, fmt.Errorf("fragment %d: %w", i, err)
		}
		records = append(records, record)
	}

	return records, nil
}

func recordFromFragment(fragment *node) (domain.UpdateRecord, error) {
	if fragment.parent == nil || fragment.parent.parent == nil {
		return domain.UpdateRecord{}, fmt.Errorf("%w: fragment has no grandparent", ErrUnexpectedLayout)
	}
	updateXML := fragment.parent.parent
	if updateXML.parent == nil {
		return domain.UpdateRecord{}, fmt.Errorf("%w: update xml has no parent", ErrUnexpectedLayout)
	}

	identity := updateXML.firstChild()
	if identity == nil {
		return domain.UpdateRecord{}, fmt.Errorf("%w: update xml has no children", ErrUnexpectedLayout)
	}
	updateID, ok := identity.attr("UpdateID")
	if !ok {
		return domain.UpdateRecord{}, fmt.Errorf("%w: %s has no UpdateID attribute", ErrUnexpectedLayout, identity.name)
	}

	appx := updateXML.firstDescendant("AppxMetadata")
	if appx == nil {
		return domain.UpdateRecord{}, fmt.Errorf("%w: update %s has no AppxMetadata", ErrUnexpectedLayout, updateID)
	}
	moniker, ok := appx.attr("PackageMoniker")
	if !ok {
		return domain.UpdateRecord{}, fmt.Errorf("%w: update %s has no PackageMoniker", ErrUnexpectedLayout, updateID)
	}

	idNode := updateXML.parent.firstChild()
	if idNode == nil {
		return domain.UpdateRecord{}, fmt.Errorf("%w: update %s has no internal id", ErrUnexpectedLayout, updateID)
	}

	return domain.UpdateRecord{
		UpdateID:       updateID,
		PackageMoniker: moniker,
		InternalID:     strings.TrimSpace(idNode.text.String()),
	}, nil
}
