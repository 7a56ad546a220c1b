package dom

import "golang.org/x/net/html"

// MutationType classifies a MutationRecord.
type MutationType string

const (
	ChildList     MutationType = "childList"
	Attributes    MutationType = "attributes"
	CharacterData MutationType = "characterData"
)

// MutationRecord describes a single change to the document.
type MutationRecord struct {
	Type          MutationType
	Target        *html.Node
	Added         []*html.Node
	Removed       []*html.Node
	AttributeName string
	OldValue      string
}

// Observer collects mutation records for a subtree.
type Observer struct {
	doc     *Document
	target  *html.Node
	subtree bool
	records []MutationRecord
}

// Observe starts recording mutations of target. With subtree set,
// mutations of any descendant are recorded too.
func (d *Document) Observe(target *html.Node, subtree bool) *Observer {
	o := &Observer{doc: d, target: target, subtree: subtree}
	d.observers = append(d.observers, o)
	return o
}

// TakeRecords returns and clears the records collected so far.
func (o *Observer) TakeRecords() []MutationRecord {
	out := o.records
	o.records = nil
	return out
}

// Disconnect stops recording. Pending records are discarded.
func (o *Observer) Disconnect() {
	o.records = nil
	obs := o.doc.observers
	for i, x := range obs {
		if x == o {
			o.doc.observers = append(obs[:i:i], obs[i+1:]...)
			return
		}
	}
}

func (o *Observer) wants(target *html.Node) bool {
	if target == o.target {
		return true
	}
	return o.subtree && Contains(o.target, target)
}

func (d *Document) notify(rec MutationRecord) {
	for _, o := range d.observers {
		if o.wants(rec.Target) {
			o.records = append(o.records, rec)
		}
	}
}

// CountInsertions returns the number of nodes added across records.
func CountInsertions(records []MutationRecord) int {
	n := 0
	for _, r := range records {
		n += len(r.Added)
	}
	return n
}
