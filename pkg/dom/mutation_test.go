package dom

import "testing"

func TestObserverRecordsSubtree(t *testing.T) {
	d := New()
	container := d.CreateElement("div")
	d.AppendChild(d.Body(), container)

	obs := d.Observe(container, true)
	span := d.CreateElement("span")
	d.AppendChild(container, span)
	d.SetAttribute(span, "id", "s")
	text := d.CreateTextNode("a")
	d.AppendChild(span, text)
	d.SetText(text, "b")
	d.SetText(text, "b")

	recs := obs.TakeRecords()
	var types []MutationType
	for _, r := range recs {
		types = append(types, r.Type)
	}
	want := []MutationType{ChildList, Attributes, ChildList, CharacterData}
	if len(types) != len(want) {
		t.Fatalf("types = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("types = %v, want %v", types, want)
		}
	}
	if CountInsertions(recs) != 2 {
		t.Errorf("insertions = %d, want 2", CountInsertions(recs))
	}
	if len(obs.TakeRecords()) != 0 {
		t.Error("TakeRecords should clear")
	}
}

func TestObserverScope(t *testing.T) {
	d := New()
	a := d.CreateElement("div")
	b := d.CreateElement("div")
	d.AppendChild(d.Body(), a)
	d.AppendChild(d.Body(), b)

	shallow := d.Observe(a, false)
	inner := d.CreateElement("p")
	d.AppendChild(a, inner)
	d.AppendChild(inner, d.CreateTextNode("x"))
	d.AppendChild(b, d.CreateElement("p"))

	if n := len(shallow.TakeRecords()); n != 1 {
		t.Errorf("shallow observer got %d records, want 1", n)
	}

	shallow.Disconnect()
	d.AppendChild(a, d.CreateElement("i"))
	if n := len(shallow.TakeRecords()); n != 0 {
		t.Errorf("disconnected observer got %d records", n)
	}
}

func TestInsertBeforeSamePositionIsNoop(t *testing.T) {
	d := New()
	div := d.CreateElement("div")
	d.AppendChild(d.Body(), div)
	first := d.CreateElement("a")
	second := d.CreateElement("b")
	d.AppendChild(div, first)
	d.AppendChild(div, second)

	obs := d.Observe(div, true)
	d.InsertBefore(div, first, second)
	d.AppendChild(div, second)
	if recs := obs.TakeRecords(); len(recs) != 0 {
		t.Errorf("expected no mutations, got %d", len(recs))
	}
}
